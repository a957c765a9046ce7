package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/rkdwoals159/pr-ai-reviewer/pkg/domain/interfaces"
	"github.com/rkdwoals159/pr-ai-reviewer/pkg/domain/model"
	"github.com/rkdwoals159/pr-ai-reviewer/pkg/utils/async"
)

// Dispatcher runs handler detached from the webhook request
type Dispatcher func(ctx context.Context, handler func(ctx context.Context) error)

type webhookUseCase struct {
	review   interfaces.ReviewUseCase
	clients  interfaces.GitHubClientFactory
	dispatch Dispatcher
}

// WebhookOption is a functional option for the webhook use case
type WebhookOption func(*webhookUseCase)

// WithDispatcher replaces async.Dispatch
func WithDispatcher(dispatch Dispatcher) WebhookOption {
	return func(uc *webhookUseCase) {
		uc.dispatch = dispatch
	}
}

// NewWebhook creates a new instance of WebhookUseCase
func NewWebhook(review interfaces.ReviewUseCase, clients interfaces.GitHubClientFactory, opts ...WebhookOption) interfaces.WebhookUseCase {
	uc := &webhookUseCase{
		review:   review,
		clients:  clients,
		dispatch: async.Dispatch,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ProcessEvent starts a risk review for opened and synchronized pull requests.
// Other events are acknowledged and ignored. Reviews of the same pull request
// are not serialized.
func (uc *webhookUseCase) ProcessEvent(ctx context.Context, event *model.WebhookEvent) error {
	logger := ctxlog.From(ctx)

	logger.Info("Processing webhook event",
		"id", event.ID,
		"type", event.Type,
		"action", event.Action,
		"repository", event.Repository,
		"sender", event.Sender,
		"supported", event.IsSupportedEvent(),
	)

	if !event.IsSupportedEvent() {
		logger.Debug("Ignoring unsupported event",
			"type", event.Type,
			"action", event.Action,
		)
		return nil
	}

	if event.PullRequest == nil {
		return goerr.New("pull request information is missing", goerr.V("delivery_id", event.ID))
	}

	if event.InstallationID == 0 {
		logger.Warn("No installation id on pull request event", "delivery_id", event.ID)
		return nil
	}

	pr := *event.PullRequest
	installationID := event.InstallationID
	deliveryID := event.ID

	uc.dispatch(ctx, func(ctx context.Context) error {
		ctx = ctxlog.With(ctx, ctxlog.From(ctx).With("delivery_id", deliveryID))

		client, err := uc.clients.ForInstallation(installationID)
		if err != nil {
			return goerr.Wrap(err, "failed to create installation client",
				goerr.V("installation_id", installationID))
		}

		return uc.review.ReviewPullRequest(ctx, client, &pr)
	})

	return nil
}
