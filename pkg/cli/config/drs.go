package config

import (
	"time"

	"github.com/rkdwoals159/pr-ai-reviewer/pkg/infra/drs"
	"github.com/urfave/cli/v3"
)

// DRS holds DRS-LLM service configuration. An empty BaseURL selects the
// heuristic scorer.
type DRS struct {
	BaseURL        string
	Token          string `masq:"secret"`
	Timeout        time.Duration
	AdviceLanguage string
}

// Flags returns CLI flags for DRS configuration
func (c *DRS) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "drs-api-base-url",
			Usage:       "DRS-LLM API base URL",
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("DRS_API_BASE_URL", "INPUT_DRS_API_BASE_URL"),
		},
		&cli.StringFlag{
			Name:        "drs-api-token",
			Usage:       "DRS-LLM API bearer token",
			Destination: &c.Token,
			Sources:     cli.EnvVars("DRS_API_TOKEN", "INPUT_DRS_API_TOKEN"),
		},
		&cli.DurationFlag{
			Name:        "drs-timeout",
			Usage:       "Timeout of each DRS-LLM API call",
			Value:       60 * time.Second,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("DRS_API_TIMEOUT"),
		},
		&cli.StringFlag{
			Name:        "advice-language",
			Usage:       "Language of the improvement advice",
			Value:       "English",
			Destination: &c.AdviceLanguage,
			Sources:     cli.EnvVars("PR_REVIEWER_ADVICE_LANGUAGE"),
		},
	}
}

// NewClient creates the DRS-LLM client
func (c *DRS) NewClient() *drs.Client {
	opts := []drs.Option{
		drs.WithAdviceLanguage(c.AdviceLanguage),
	}
	if c.Token != "" {
		opts = append(opts, drs.WithToken(c.Token))
	}
	if c.Timeout > 0 {
		opts = append(opts, drs.WithTimeout(c.Timeout))
	}
	return drs.New(c.BaseURL, opts...)
}
