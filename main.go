package main

import (
	"context"
	"os"

	"github.com/rkdwoals159/pr-ai-reviewer/pkg/cli"
)

func main() {
	if err := cli.Run(context.Background(), os.Args); err != nil {
		os.Exit(1)
	}
}
