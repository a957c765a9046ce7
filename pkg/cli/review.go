package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/rkdwoals159/pr-ai-reviewer/pkg/cli/config"
	githubcontroller "github.com/rkdwoals159/pr-ai-reviewer/pkg/controller/github"
	"github.com/rkdwoals159/pr-ai-reviewer/pkg/domain/interfaces"
	"github.com/rkdwoals159/pr-ai-reviewer/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

func cmdReview() *cli.Command {
	var (
		actionCfg config.GitHubAction
		drsCfg    config.DRS
		geminiCfg config.Gemini
	)

	var flags []cli.Flag
	flags = append(flags, actionCfg.Flags()...)
	flags = append(flags, drsCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)

	return &cli.Command{
		Name:    "review",
		Aliases: []string{"r"},
		Usage:   "Assess the pull request of a GitHub Actions event and comment on it",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			pr, err := loadPullRequest(actionCfg.EventPath, actionCfg.Repository)
			if err != nil {
				return err
			}
			if pr == nil {
				logger.Info("Event has no pull request, nothing to review",
					slog.String("event_path", actionCfg.EventPath))
				return nil
			}

			reviewUC, err := newReviewUseCase(ctx, &drsCfg, &geminiCfg)
			if err != nil {
				return err
			}

			client, err := actionCfg.NewClient()
			if err != nil {
				return err
			}
			if actionCfg.DryRun {
				client = &dryRunClient{
					GitHubClient: client,
					out:          os.Stdout,
					banner:       os.Stderr,
				}
			}

			logger.Info("Reviewing pull request",
				slog.String("pull_request", pr.String()),
				slog.Bool("dry_run", actionCfg.DryRun),
			)

			return reviewUC.ReviewPullRequest(ctx, client, pr)
		},
	}
}

// loadPullRequest reads a GitHub Actions event payload. Returns nil without
// error when the event is not about a pull request.
func loadPullRequest(eventPath, repository string) (*model.PullRequest, error) {
	raw, err := os.ReadFile(eventPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read event payload", goerr.V("path", eventPath))
	}

	var event github.PullRequestEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, goerr.Wrap(err, "failed to decode event payload", goerr.V("path", eventPath))
	}

	return githubcontroller.ExtractPullRequest(&event, repository)
}

// dryRunClient reads from GitHub but prints the comment instead of posting it
type dryRunClient struct {
	interfaces.GitHubClient
	out    io.Writer
	banner io.Writer
}

func (x *dryRunClient) CreateComment(ctx context.Context, owner, repo string, number int, body string) error {
	banner := color.New(color.FgHiYellow, color.Bold)
	if _, err := banner.Fprintf(x.banner, "[dry-run] comment for %s/%s#%d not posted\n", owner, repo, number); err != nil {
		return goerr.Wrap(err, "failed to write dry-run banner")
	}

	if _, err := fmt.Fprintln(x.out, body); err != nil {
		return goerr.Wrap(err, "failed to write review document")
	}
	return nil
}
