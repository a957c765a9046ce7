package drs

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/rkdwoals159/pr-ai-reviewer/pkg/domain/model"
)

const adviceInstructionFormat = "You are reviewing a GitHub Pull Request diff. " +
	"Explain what parts of the changes are risky and give concrete suggestions to reduce potential bugs and maintenance cost. " +
	"Respond in %s, focusing on specific code-level actions the author can take."

type clmRequest struct {
	Diff          string `json:"diff"`
	CommitMessage string `json:"commit_message"`
}

// AdviceInstruction composes the commit_message field of an advice request
func AdviceInstruction(prTitle, language string) string {
	instruction := fmt.Sprintf(adviceInstructionFormat, language)
	if prTitle == "" {
		return instruction
	}
	return prTitle + " | " + instruction
}

// Advise asks the DRS causal LM for improvement advice on the combined diff.
// ok is false when the client is offline, no file has diff text, or the call fails
// or returns an unknown shape.
func (c *Client) Advise(ctx context.Context, prTitle string, files []*model.FileChange) (string, bool) {
	logger := ctxlog.From(ctx)

	if !c.Configured() {
		return "", false
	}

	combined := model.CombineDiffs(files)
	if strings.TrimSpace(combined) == "" {
		logger.Debug("No diff text available, skipping improvement advice")
		return "", false
	}

	body, err := c.post(ctx, clmPath, &clmRequest{
		Diff:          combined,
		CommitMessage: AdviceInstruction(prTitle, c.language),
	})
	if err != nil {
		logFailure(ctx, "DRS improvement advice failed, omitting the section", err)
		return "", false
	}

	advice, ok := decodeAdvice(body)
	if !ok {
		logger.Warn("Unexpected DRS-CLM response shape, omitting improvement advice",
			"body", truncate(body))
		return "", false
	}

	if strings.TrimSpace(advice) == "" {
		return "", false
	}
	return advice, true
}

// decodeAdvice accepts a bare string or an object with a "text" or "output"
// string field. Bodies that are not JSON are taken as plain text.
func decodeAdvice(body []byte) (string, bool) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return string(body), true
	}

	switch x := v.(type) {
	case string:
		return x, true
	case map[string]any:
		if s, ok := x["text"].(string); ok {
			return s, true
		}
		if s, ok := x["output"].(string); ok {
			return s, true
		}
	}
	return "", false
}
