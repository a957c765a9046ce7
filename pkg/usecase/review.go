package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/rkdwoals159/pr-ai-reviewer/pkg/domain/interfaces"
	"github.com/rkdwoals159/pr-ai-reviewer/pkg/domain/model"
	"github.com/rkdwoals159/pr-ai-reviewer/pkg/domain/types"
	"golang.org/x/sync/errgroup"
)

type reviewUseCase struct {
	scorer  interfaces.RiskScorer
	adviser interfaces.Adviser
}

// ReviewOption is a functional option for the review use case
type ReviewOption func(*reviewUseCase)

// WithAdviser enables the improvement advice section
func WithAdviser(adviser interfaces.Adviser) ReviewOption {
	return func(uc *reviewUseCase) {
		uc.adviser = adviser
	}
}

// NewReview creates a new instance of ReviewUseCase
func NewReview(scorer interfaces.RiskScorer, opts ...ReviewOption) interfaces.ReviewUseCase {
	uc := &reviewUseCase{
		scorer: scorer,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Assess scores the files and fetches advice concurrently, then renders the summary
func (uc *reviewUseCase) Assess(ctx context.Context, pr *model.PullRequest, files []*model.FileChange) string {
	var (
		report *model.RiskReport
		advice string
	)

	var title string
	if pr != nil {
		title = pr.Title
	}

	var eg errgroup.Group
	eg.Go(func() error {
		report = uc.scorer.ScoreRisk(ctx, pr, files)
		return nil
	})
	if uc.adviser != nil {
		eg.Go(func() error {
			if text, ok := uc.adviser.Advise(ctx, title, files); ok {
				advice = text
			}
			return nil
		})
	}
	// both branches resolve failures to fallbacks, so Wait never reports an error
	_ = eg.Wait()

	ctxlog.From(ctx).Info("Risk assessment completed",
		"overall_risk", report.OverallRisk,
		"level", model.LevelOf(report.OverallRisk),
		"item_count", len(report.Items),
		"has_advice", advice != "",
	)

	return RenderSummary(report, advice)
}

// ReviewPullRequest collects the changed files, assesses them and posts the summary
func (uc *reviewUseCase) ReviewPullRequest(ctx context.Context, client interfaces.GitHubClient, pr *model.PullRequest) error {
	logger := ctxlog.From(ctx).With(
		"assessment_id", types.NewAssessmentID(),
		"repo", pr.FullName(),
		"number", pr.Number,
	)
	ctx = ctxlog.With(ctx, logger)

	logger.Info("Reviewing pull request")

	raws, err := client.ListPullRequestFiles(ctx, pr.Owner, pr.Repo, pr.Number)
	if err != nil {
		return goerr.Wrap(err, "failed to list pull request files",
			goerr.V("repo", pr.FullName()),
			goerr.V("number", pr.Number),
		)
	}
	files := model.NormalizeFileChanges(raws)

	logger.Info("Collected pull request files", "file_count", len(files))

	body := uc.Assess(ctx, pr, files)

	if err := client.CreateComment(ctx, pr.Owner, pr.Repo, pr.Number, body); err != nil {
		return goerr.Wrap(err, "failed to post summary comment",
			goerr.V("repo", pr.FullName()),
			goerr.V("number", pr.Number),
		)
	}

	logger.Info("Posted risk summary comment")
	return nil
}
