package interfaces

import (
	"context"

	"github.com/rkdwoals159/pr-ai-reviewer/pkg/domain/model"
)

// GitHubClient is the source-control collector and comment publisher
type GitHubClient interface {
	// ListPullRequestFiles returns the changed files of a pull request in API order
	ListPullRequestFiles(ctx context.Context, owner, repo string, number int) ([]*model.RawFileChange, error)

	// CreateComment posts body as a comment on a pull request or issue
	CreateComment(ctx context.Context, owner, repo string, number int, body string) error
}

// GitHubClientFactory builds a GitHubClient scoped to a GitHub App installation
type GitHubClientFactory interface {
	ForInstallation(installationID int64) (GitHubClient, error)
}
