package config_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/rkdwoals159/pr-ai-reviewer/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

func runFlags(t *testing.T, flags []cli.Flag, args ...string) {
	t.Helper()
	cmd := &cli.Command{
		Name:   "test",
		Flags:  flags,
		Action: func(ctx context.Context, c *cli.Command) error { return nil },
	}
	gt.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
}

func TestDRS_Flags(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("DRS_API_BASE_URL", "")
		t.Setenv("INPUT_DRS_API_BASE_URL", "")

		var cfg config.DRS
		runFlags(t, cfg.Flags())

		gt.Equal(t, cfg.BaseURL, "")
		gt.Equal(t, cfg.Timeout, 60*time.Second)
		gt.Equal(t, cfg.AdviceLanguage, "English")
		gt.False(t, cfg.NewClient().Configured())
	})

	t.Run("actions input fallback", func(t *testing.T) {
		t.Setenv("INPUT_DRS_API_BASE_URL", "https://drs.example.com/")
		t.Setenv("INPUT_DRS_API_TOKEN", "input-token")

		var cfg config.DRS
		runFlags(t, cfg.Flags())

		gt.Equal(t, cfg.BaseURL, "https://drs.example.com/")
		gt.Equal(t, cfg.Token, "input-token")
		gt.True(t, cfg.NewClient().Configured())
	})

	t.Run("primary variable wins", func(t *testing.T) {
		t.Setenv("DRS_API_BASE_URL", "https://primary.example.com")
		t.Setenv("INPUT_DRS_API_BASE_URL", "https://input.example.com")

		var cfg config.DRS
		runFlags(t, cfg.Flags())

		gt.Equal(t, cfg.BaseURL, "https://primary.example.com")
	})

	t.Run("flags", func(t *testing.T) {
		var cfg config.DRS
		runFlags(t, cfg.Flags(),
			"--drs-api-base-url", "https://flag.example.com",
			"--drs-timeout", "5s",
			"--advice-language", "Korean",
		)

		gt.Equal(t, cfg.BaseURL, "https://flag.example.com")
		gt.Equal(t, cfg.Timeout, 5*time.Second)
		gt.Equal(t, cfg.AdviceLanguage, "Korean")
	})
}

func TestSentry_Disabled(t *testing.T) {
	cfg := config.Sentry{}
	gt.False(t, cfg.Enabled())
	gt.NoError(t, cfg.Configure())
}

func TestGemini_Enabled(t *testing.T) {
	gt.False(t, (&config.Gemini{}).Enabled())
	gt.True(t, (&config.Gemini{ProjectID: "my-project"}).Enabled())
}
