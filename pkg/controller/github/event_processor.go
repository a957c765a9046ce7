package github

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/rkdwoals159/pr-ai-reviewer/pkg/domain/interfaces"
	"github.com/rkdwoals159/pr-ai-reviewer/pkg/domain/model"
)

var (
	// ErrInvalidPayload is returned when a webhook body cannot be decoded
	ErrInvalidPayload = goerr.New("invalid webhook payload")

	// ErrMissingRepository is returned when owner/repo cannot be determined
	ErrMissingRepository = goerr.New("cannot determine repository owner and name")
)

// EventProcessor converts GitHub webhook deliveries into WebhookEvents and hands
// them to the webhook use case
type EventProcessor struct {
	webhookUC interfaces.WebhookUseCase
}

// NewEventProcessor creates a new GitHub event processor
func NewEventProcessor(webhookUC interfaces.WebhookUseCase) *EventProcessor {
	return &EventProcessor{
		webhookUC: webhookUC,
	}
}

// ProcessEvent decodes a delivery and passes it to the use case. Decoding
// failures wrap ErrInvalidPayload.
func (p *EventProcessor) ProcessEvent(ctx context.Context, eventType, deliveryID string, body []byte) error {
	event, err := ParseWebhookEvent(eventType, deliveryID, body)
	if err != nil {
		return err
	}
	return p.webhookUC.ProcessEvent(ctx, event)
}

// ParseWebhookEvent builds a WebhookEvent from a raw delivery. Event types other
// than pull_request and ping are not decoded and become EventTypeUnknown.
func ParseWebhookEvent(eventType, deliveryID string, body []byte) (*model.WebhookEvent, error) {
	event := &model.WebhookEvent{
		ID:         deliveryID,
		Type:       model.WebhookEventType(eventType),
		ReceivedAt: time.Now(),
		RawPayload: body,
	}

	switch event.Type {
	case model.EventTypePullRequest:
		var e github.PullRequestEvent
		if err := json.Unmarshal(body, &e); err != nil {
			return nil, goerr.Wrap(ErrInvalidPayload, "failed to decode pull_request event",
				goerr.V("delivery_id", deliveryID),
				goerr.V("error", err.Error()),
			)
		}

		event.Action = e.GetAction()
		event.Repository = e.GetRepo().GetFullName()
		event.Sender = e.GetSender().GetLogin()
		event.InstallationID = e.GetInstallation().GetID()

		if e.PullRequest != nil {
			pr, err := ExtractPullRequest(&e, "")
			if err != nil {
				return nil, goerr.Wrap(ErrInvalidPayload, "failed to extract pull request",
					goerr.V("delivery_id", deliveryID),
					goerr.V("error", err.Error()),
				)
			}
			event.PullRequest = pr
		}

	case model.EventTypePing:
		var e github.PingEvent
		if err := json.Unmarshal(body, &e); err != nil {
			return nil, goerr.Wrap(ErrInvalidPayload, "failed to decode ping event",
				goerr.V("delivery_id", deliveryID),
				goerr.V("error", err.Error()),
			)
		}

	default:
		event.Type = model.EventTypeUnknown
	}

	return event, nil
}

// ExtractPullRequest returns the pull request coordinate of a pull_request event.
// fallbackRepository ("owner/repo") is used when the payload has no repository.
// Returns nil without error when the event carries no pull request.
func ExtractPullRequest(e *github.PullRequestEvent, fallbackRepository string) (*model.PullRequest, error) {
	if e == nil || e.PullRequest == nil {
		return nil, nil
	}

	owner := e.GetRepo().GetOwner().GetLogin()
	repo := e.GetRepo().GetName()

	if owner == "" || repo == "" {
		fallbackOwner, fallbackRepo, _ := strings.Cut(fallbackRepository, "/")
		if owner == "" {
			owner = fallbackOwner
		}
		if repo == "" {
			repo = fallbackRepo
		}
	}

	if owner == "" || repo == "" {
		return nil, goerr.Wrap(ErrMissingRepository, "pull request event has no repository",
			goerr.V("fallback_repository", fallbackRepository))
	}

	number := e.GetPullRequest().GetNumber()
	if number == 0 {
		number = e.GetNumber()
	}

	return &model.PullRequest{
		Owner:  owner,
		Repo:   repo,
		Number: number,
		Title:  e.GetPullRequest().GetTitle(),
	}, nil
}
