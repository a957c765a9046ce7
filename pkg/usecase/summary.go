package usecase

import (
	"fmt"
	"strings"

	"github.com/rkdwoals159/pr-ai-reviewer/pkg/domain/model"
)

const (
	summaryTitle   = "## 🔍 PR Risk Assessment (DRS-LLM)"
	noFilesLine    = "- **No files to analyze.** (few changed lines, or the GitHub API returned no files)"
	adviceHeading  = "### 💡 Suggestions to Reduce Risk (DRS-LLM)"
	disclaimerHead = "> This assessment is an automated analysis based on the DRS-OSS / DRS-LLM approach;"
	disclaimerTail = "> final decisions should follow reviewer judgment and your team's code standards."
)

// RenderSummary renders the review comment for a risk report. advice is omitted
// when blank. The output depends only on its arguments.
func RenderSummary(report *model.RiskReport, advice string) string {
	if report == nil {
		report = &model.RiskReport{}
	}

	lines := []string{
		summaryTitle,
		"",
		fmt.Sprintf("- **Overall risk**: **%s**", formatScore(report.OverallRisk)),
		"",
	}

	if len(report.Items) == 0 {
		lines = append(lines, noFilesLine)
	} else {
		for _, item := range report.Items {
			lines = append(lines,
				fmt.Sprintf("- **File**: `%s`", item.Filename),
				fmt.Sprintf("  - Risk: **%s**", formatScore(item.RiskScore)),
				fmt.Sprintf("  - Summary: %s", item.Summary),
			)
		}
	}

	if trimmed := strings.TrimSpace(advice); trimmed != "" {
		lines = append(lines, "", adviceHeading, "", trimmed, "")
	}

	lines = append(lines, disclaimerHead, disclaimerTail)

	return strings.Join(lines, "\n")
}

func formatScore(score float64) string {
	score = model.Clamp01(score)
	return fmt.Sprintf("%s (%d%%)", model.LevelOf(score), model.Percent(score))
}
