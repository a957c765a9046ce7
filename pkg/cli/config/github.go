package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/rkdwoals159/pr-ai-reviewer/pkg/infra/github"
	"github.com/urfave/cli/v3"
)

// GitHub holds webhook configuration
type GitHub struct {
	WebhookSecret string `masq:"secret"`
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-webhook-secret",
			Usage:       "GitHub webhook secret",
			Required:    true,
			Destination: &c.WebhookSecret,
			Sources:     cli.EnvVars("GITHUB_WEBHOOK_SECRET"),
		},
	}
}

// GitHubApp holds GitHub App credentials used to act on installations
type GitHubApp struct {
	AppID      int64
	PrivateKey string `masq:"secret"`
	APIURL     string
}

// Flags returns CLI flags for GitHub App configuration
func (c *GitHubApp) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID",
			Required:    true,
			Destination: &c.AppID,
			Sources:     cli.EnvVars("GITHUB_APP_ID"),
		},
		&cli.StringFlag{
			Name:        "github-private-key",
			Usage:       "GitHub App private key (PEM content)",
			Required:    true,
			Destination: &c.PrivateKey,
			Sources:     cli.EnvVars("GITHUB_PRIVATE_KEY"),
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub API base URL (for GitHub Enterprise Server)",
			Destination: &c.APIURL,
			Sources:     cli.EnvVars("GITHUB_API_URL"),
		},
	}
}

// NewClientFactory creates a factory of installation-scoped clients
func (c *GitHubApp) NewClientFactory() (*github.AppClientFactory, error) {
	var opts []github.Option
	if c.APIURL != "" {
		opts = append(opts, github.WithBaseURL(c.APIURL))
	}

	factory, err := github.NewAppClientFactory(c.AppID, []byte(c.PrivateKey), opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub App client factory", goerr.V("app_id", c.AppID))
	}
	return factory, nil
}
