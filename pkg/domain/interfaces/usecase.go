package interfaces

import (
	"context"

	"github.com/rkdwoals159/pr-ai-reviewer/pkg/domain/model"
)

// WebhookUseCase defines the interface for webhook event processing
type WebhookUseCase interface {
	// ProcessEvent processes a webhook event
	ProcessEvent(ctx context.Context, event *model.WebhookEvent) error
}

// ReviewUseCase assesses pull requests and publishes the summary comment
type ReviewUseCase interface {
	// Assess renders the summary document for the given files. It never fails.
	Assess(ctx context.Context, pr *model.PullRequest, files []*model.FileChange) string

	// ReviewPullRequest collects files, assesses them and posts the summary comment
	ReviewPullRequest(ctx context.Context, client GitHubClient, pr *model.PullRequest) error
}
