package usecase_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/rkdwoals159/pr-ai-reviewer/pkg/domain/model"
	"github.com/rkdwoals159/pr-ai-reviewer/pkg/usecase"
)

func TestRenderSummary_Document(t *testing.T) {
	report := &model.RiskReport{
		OverallRisk: 0.455,
		Items: []*model.RiskItem{
			{Filename: "pkg/a.go", RiskScore: 0.7, Summary: "first"},
			{Filename: "pkg/b.go", RiskScore: 0.21, Summary: "second"},
		},
	}

	got := usecase.RenderSummary(report, "\n  Extract the retry loop.  \n")
	want := strings.Join([]string{
		"## 🔍 PR Risk Assessment (DRS-LLM)",
		"",
		"- **Overall risk**: **Medium (46%)**",
		"",
		"- **File**: `pkg/a.go`",
		"  - Risk: **High (70%)**",
		"  - Summary: first",
		"- **File**: `pkg/b.go`",
		"  - Risk: **Low (21%)**",
		"  - Summary: second",
		"",
		"### 💡 Suggestions to Reduce Risk (DRS-LLM)",
		"",
		"Extract the retry loop.",
		"",
		"> This assessment is an automated analysis based on the DRS-OSS / DRS-LLM approach;",
		"> final decisions should follow reviewer judgment and your team's code standards.",
	}, "\n")

	gt.Equal(t, got, want)
}

func TestRenderSummary_EmptyItems(t *testing.T) {
	got := usecase.RenderSummary(&model.RiskReport{}, "")
	want := strings.Join([]string{
		"## 🔍 PR Risk Assessment (DRS-LLM)",
		"",
		"- **Overall risk**: **Low (0%)**",
		"",
		"- **No files to analyze.** (few changed lines, or the GitHub API returned no files)",
		"> This assessment is an automated analysis based on the DRS-OSS / DRS-LLM approach;",
		"> final decisions should follow reviewer judgment and your team's code standards.",
	}, "\n")

	gt.Equal(t, got, want)
	gt.String(t, got).NotContains("- **File**")
}

func TestRenderSummary_AdviceOmitted(t *testing.T) {
	report := &model.RiskReport{
		OverallRisk: 0.3,
		Items:       []*model.RiskItem{{Filename: "a", RiskScore: 0.3, Summary: "s"}},
	}

	for _, advice := range []string{"", "   ", "\n\t"} {
		got := usecase.RenderSummary(report, advice)
		gt.String(t, got).NotContains("Suggestions to Reduce Risk")
	}
}

func TestRenderSummary_Deterministic(t *testing.T) {
	report := &model.RiskReport{
		OverallRisk: 0.66,
		Items: []*model.RiskItem{
			{Filename: "x", RiskScore: 0.1, Summary: "a"},
			{Filename: "y", RiskScore: 0.99, Summary: "b"},
		},
	}

	first := usecase.RenderSummary(report, "advice")
	for i := 0; i < 10; i++ {
		gt.Equal(t, usecase.RenderSummary(report, "advice"), first)
	}
}

func TestRenderSummary_Levels(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{score: 0.70, want: "High (70%)"},
		{score: 0.699, want: "Medium (70%)"},
		{score: 0.40, want: "Medium (40%)"},
		{score: 0.399, want: "Low (40%)"},
		{score: 1.2, want: "High (100%)"},
		{score: -0.5, want: "Low (0%)"},
	}

	for _, tt := range tests {
		got := usecase.RenderSummary(&model.RiskReport{OverallRisk: tt.score}, "")
		gt.String(t, got).Contains("- **Overall risk**: **" + tt.want + "**")
	}
}

func TestRenderSummary_NilReport(t *testing.T) {
	got := usecase.RenderSummary(nil, "")
	gt.String(t, got).Contains("No files to analyze")
}
