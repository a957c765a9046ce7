package errutil

import (
	"context"
	"errors"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Handle logs err with msg and reports it to Sentry. No-op for nil err.
func Handle(ctx context.Context, msg string, err error) {
	if err == nil {
		return
	}

	ctxlog.From(ctx).Error(msg, "error", err)
	Report(err)
}

// Report sends err to Sentry with goerr values attached as the "goerr" context. Without
// sentry.Init the capture is dropped.
func Report(err error) {
	if err == nil {
		return
	}

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		var gerr *goerr.Error
		if errors.As(err, &gerr) {
			if values := gerr.Values(); len(values) > 0 {
				scope.SetContext("goerr", sentry.Context(values))
			}
		}
	})
	hub.CaptureException(err)
}
