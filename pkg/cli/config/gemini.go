package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/rkdwoals159/pr-ai-reviewer/pkg/infra/gemini"
	"github.com/urfave/cli/v3"
)

// Gemini holds Gemini LLM configuration. Advice comes from the DRS-LLM service
// unless ProjectID is set.
type Gemini struct {
	ProjectID string
	Location  string
	Model     string
}

// Flags returns CLI flags for Gemini configuration
func (c *Gemini) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gemini-project-id",
			Usage:       "Google Cloud Project ID for Gemini advice (optional)",
			Destination: &c.ProjectID,
			Sources:     cli.EnvVars("PR_REVIEWER_GEMINI_PROJECT_ID"),
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Vertex AI location/region",
			Value:       "us-central1",
			Destination: &c.Location,
			Sources:     cli.EnvVars("PR_REVIEWER_GEMINI_LOCATION"),
		},
		&cli.StringFlag{
			Name:        "gemini-model",
			Usage:       "Gemini model to use",
			Value:       "gemini-2.5-flash",
			Destination: &c.Model,
			Sources:     cli.EnvVars("PR_REVIEWER_GEMINI_MODEL"),
		},
	}
}

// Enabled reports whether Gemini advice is configured
func (c *Gemini) Enabled() bool {
	return c.ProjectID != ""
}

// NewAdviser creates a Vertex AI backed adviser
func (c *Gemini) NewAdviser(ctx context.Context, language string) (*gemini.Adviser, error) {
	adviser, err := gemini.NewVertexAdviser(ctx, c.ProjectID, c.Location, c.Model, language)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Gemini adviser",
			goerr.V("project_id", c.ProjectID),
			goerr.V("location", c.Location),
		)
	}
	return adviser, nil
}
