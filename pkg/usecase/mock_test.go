package usecase_test

import (
	"context"
	"errors"
	"sync"

	"github.com/rkdwoals159/pr-ai-reviewer/pkg/domain/interfaces"
	"github.com/rkdwoals159/pr-ai-reviewer/pkg/domain/model"
)

type mockScorer struct {
	scoreFunc func(ctx context.Context, pr *model.PullRequest, files []*model.FileChange) *model.RiskReport
}

func (m *mockScorer) ScoreRisk(ctx context.Context, pr *model.PullRequest, files []*model.FileChange) *model.RiskReport {
	return m.scoreFunc(ctx, pr, files)
}

type mockAdviser struct {
	adviseFunc func(ctx context.Context, prTitle string, files []*model.FileChange) (string, bool)
}

func (m *mockAdviser) Advise(ctx context.Context, prTitle string, files []*model.FileChange) (string, bool) {
	return m.adviseFunc(ctx, prTitle, files)
}

type commentCall struct {
	Owner  string
	Repo   string
	Number int
	Body   string
}

// mockGitHubClient is a mock implementation of GitHubClient
type mockGitHubClient struct {
	listFilesFunc     func(ctx context.Context, owner, repo string, number int) ([]*model.RawFileChange, error)
	createCommentFunc func(ctx context.Context, owner, repo string, number int, body string) error

	mu           sync.Mutex
	commentCalls []commentCall
}

func (m *mockGitHubClient) ListPullRequestFiles(ctx context.Context, owner, repo string, number int) ([]*model.RawFileChange, error) {
	if m.listFilesFunc != nil {
		return m.listFilesFunc(ctx, owner, repo, number)
	}
	return nil, errors.New("mock not configured")
}

func (m *mockGitHubClient) CreateComment(ctx context.Context, owner, repo string, number int, body string) error {
	m.mu.Lock()
	m.commentCalls = append(m.commentCalls, commentCall{Owner: owner, Repo: repo, Number: number, Body: body})
	m.mu.Unlock()

	if m.createCommentFunc != nil {
		return m.createCommentFunc(ctx, owner, repo, number, body)
	}
	return nil
}

type mockClientFactory struct {
	client  interfaces.GitHubClient
	err     error
	mu      sync.Mutex
	callIDs []int64
}

func (m *mockClientFactory) ForInstallation(installationID int64) (interfaces.GitHubClient, error) {
	m.mu.Lock()
	m.callIDs = append(m.callIDs, installationID)
	m.mu.Unlock()
	return m.client, m.err
}

type mockReviewUseCase struct {
	reviewFunc func(ctx context.Context, client interfaces.GitHubClient, pr *model.PullRequest) error
	reviewed   []*model.PullRequest
}

func (m *mockReviewUseCase) Assess(ctx context.Context, pr *model.PullRequest, files []*model.FileChange) string {
	return ""
}

func (m *mockReviewUseCase) ReviewPullRequest(ctx context.Context, client interfaces.GitHubClient, pr *model.PullRequest) error {
	m.reviewed = append(m.reviewed, pr)
	if m.reviewFunc != nil {
		return m.reviewFunc(ctx, client, pr)
	}
	return nil
}

func syncDispatch(errs *[]error) func(ctx context.Context, handler func(ctx context.Context) error) {
	return func(ctx context.Context, handler func(ctx context.Context) error) {
		if err := handler(ctx); err != nil && errs != nil {
			*errs = append(*errs, err)
		}
	}
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
