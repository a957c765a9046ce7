package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/rkdwoals159/pr-ai-reviewer/pkg/cli/config"
	"github.com/rkdwoals159/pr-ai-reviewer/pkg/domain/interfaces"
	"github.com/rkdwoals159/pr-ai-reviewer/pkg/usecase"
)

// newReviewUseCase wires the DRS scorer with Gemini advice when configured and
// DRS advice otherwise
func newReviewUseCase(ctx context.Context, drsCfg *config.DRS, geminiCfg *config.Gemini) (interfaces.ReviewUseCase, error) {
	logger := ctxlog.From(ctx)
	drsClient := drsCfg.NewClient()

	var adviser interfaces.Adviser = drsClient
	if geminiCfg.Enabled() {
		geminiAdviser, err := geminiCfg.NewAdviser(ctx, drsCfg.AdviceLanguage)
		if err != nil {
			return nil, err
		}
		adviser = geminiAdviser
	}

	logger.Info("Review pipeline configured",
		slog.Bool("drs_configured", drsClient.Configured()),
		slog.Bool("gemini_advice", geminiCfg.Enabled()),
		slog.Any("drs", drsCfg),
		slog.Any("gemini", geminiCfg),
	)

	return usecase.NewReview(drsClient, usecase.WithAdviser(adviser)), nil
}
