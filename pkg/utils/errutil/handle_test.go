package errutil_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/rkdwoals159/pr-ai-reviewer/pkg/utils/errutil"
)

func TestHandle(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := ctxlog.With(context.Background(), logger)

	t.Run("logs error", func(t *testing.T) {
		buf.Reset()
		errutil.Handle(ctx, "review failed", goerr.New("boom", goerr.V("number", 3)))
		gt.String(t, buf.String()).Contains("review failed")
		gt.String(t, buf.String()).Contains("boom")
	})

	t.Run("nil error is ignored", func(t *testing.T) {
		buf.Reset()
		errutil.Handle(ctx, "nothing", nil)
		gt.Equal(t, buf.String(), "")
	})
}

// eventRecorder is a sentry.Transport keeping events in memory
type eventRecorder struct {
	mu     sync.Mutex
	events []*sentry.Event
}

func (x *eventRecorder) Flush(timeout time.Duration) bool           { return true }
func (x *eventRecorder) FlushWithContext(ctx context.Context) bool { return true }
func (x *eventRecorder) Configure(options sentry.ClientOptions)    {}
func (x *eventRecorder) Close()                                    {}

func (x *eventRecorder) SendEvent(event *sentry.Event) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.events = append(x.events, event)
}

func (x *eventRecorder) Events() []*sentry.Event {
	x.mu.Lock()
	defer x.mu.Unlock()
	return append([]*sentry.Event(nil), x.events...)
}

func setupSentry(t *testing.T) *eventRecorder {
	t.Helper()

	recorder := &eventRecorder{}
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:       "https://public@sentry.example.com/1",
		Transport: recorder,
	})
	gt.NoError(t, err)

	hub := sentry.CurrentHub()
	prev := hub.Client()
	hub.BindClient(client)
	t.Cleanup(func() { hub.BindClient(prev) })

	return recorder
}

func TestReport(t *testing.T) {
	t.Run("goerr values become event context", func(t *testing.T) {
		recorder := setupSentry(t)

		cause := goerr.New("quota exceeded", goerr.V("status", 429))
		errutil.Report(goerr.Wrap(cause, "failed to post summary comment",
			goerr.V("repo", "octo/demo"),
			goerr.V("number", 7),
		))

		events := recorder.Events()
		gt.A(t, events).Length(1)

		values, ok := events[0].Contexts["goerr"]
		gt.True(t, ok)
		gt.Equal(t, values["repo"], any("octo/demo"))
		gt.Equal(t, values["number"], any(7))
		gt.Equal(t, values["status"], any(429))
	})

	t.Run("plain error has no goerr context", func(t *testing.T) {
		recorder := setupSentry(t)

		errutil.Report(errors.New("connection reset"))

		events := recorder.Events()
		gt.A(t, events).Length(1)
		_, ok := events[0].Contexts["goerr"]
		gt.False(t, ok)
	})

	t.Run("nil error is not reported", func(t *testing.T) {
		recorder := setupSentry(t)

		errutil.Report(nil)
		gt.A(t, recorder.Events()).Length(0)
	})

	t.Run("context does not leak into later events", func(t *testing.T) {
		recorder := setupSentry(t)

		errutil.Report(goerr.New("first", goerr.V("delivery_id", "abc")))
		errutil.Report(errors.New("second"))

		events := recorder.Events()
		gt.A(t, events).Length(2)
		_, ok := events[1].Contexts["goerr"]
		gt.False(t, ok)
	})
}

func TestHandle_ReportsToSentry(t *testing.T) {
	recorder := setupSentry(t)
	ctx := ctxlog.With(context.Background(), slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	errutil.Handle(ctx, "review failed", goerr.New("boom", goerr.V("installation_id", int64(42))))

	events := recorder.Events()
	gt.A(t, events).Length(1)
	gt.Equal(t, events[0].Contexts["goerr"]["installation_id"], any(int64(42)))
}
