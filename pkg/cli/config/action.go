package config

import (
	"github.com/rkdwoals159/pr-ai-reviewer/pkg/domain/interfaces"
	"github.com/rkdwoals159/pr-ai-reviewer/pkg/infra/github"
	"github.com/urfave/cli/v3"
)

// GitHubAction holds the environment GitHub Actions provides to a workflow step
type GitHubAction struct {
	Token      string `masq:"secret"`
	EventPath  string
	Repository string
	APIURL     string
	DryRun     bool
}

// Flags returns CLI flags for GitHub Actions configuration
func (c *GitHubAction) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token used to read files and post the comment",
			Required:    true,
			Destination: &c.Token,
			Sources:     cli.EnvVars("GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-event-path",
			Usage:       "Path to the event payload JSON",
			Required:    true,
			Destination: &c.EventPath,
			Sources:     cli.EnvVars("GITHUB_EVENT_PATH"),
		},
		&cli.StringFlag{
			Name:        "github-repository",
			Usage:       "Repository as owner/repo, used when the payload has none",
			Destination: &c.Repository,
			Sources:     cli.EnvVars("GITHUB_REPOSITORY"),
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub API base URL",
			Destination: &c.APIURL,
			Sources:     cli.EnvVars("GITHUB_API_URL"),
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Print the assessment instead of posting it",
			Destination: &c.DryRun,
			Sources:     cli.EnvVars("PR_REVIEWER_DRY_RUN"),
		},
	}
}

// NewClient creates a token-authenticated GitHub client
func (c *GitHubAction) NewClient() (interfaces.GitHubClient, error) {
	var opts []github.Option
	if c.APIURL != "" {
		opts = append(opts, github.WithBaseURL(c.APIURL))
	}
	return github.NewClientWithToken(c.Token, opts...)
}
