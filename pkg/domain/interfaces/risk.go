package interfaces

import (
	"context"

	"github.com/rkdwoals159/pr-ai-reviewer/pkg/domain/model"
)

// RiskScorer estimates the risk of a pull request's changes. Implementations never
// fail: every problem degrades into a heuristic report.
type RiskScorer interface {
	ScoreRisk(ctx context.Context, pr *model.PullRequest, files []*model.FileChange) *model.RiskReport
}

// Adviser produces free-form improvement advice. ok is false when no advice is
// available, which is a normal outcome.
type Adviser interface {
	Advise(ctx context.Context, prTitle string, files []*model.FileChange) (advice string, ok bool)
}
