package drs_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/rkdwoals159/pr-ai-reviewer/pkg/domain/model"
	"github.com/rkdwoals159/pr-ai-reviewer/pkg/infra/drs"
)

func TestBuildMockReport(t *testing.T) {
	t.Run("single file scenario", func(t *testing.T) {
		report := drs.BuildMockReport([]*model.FileChange{
			{Filename: "main.go", Additions: 50, Deletions: 10},
		}, "")

		gt.Equal(t, report.OverallRisk, 0.3)
		gt.A(t, report.Items).Length(1)
		gt.Equal(t, report.Items[0].Filename, "main.go")
		gt.Equal(t, report.Items[0].RiskScore, 0.6)
		gt.Equal(t, model.LevelOf(report.OverallRisk), model.RiskLevelLow)
		gt.Equal(t, model.LevelOf(report.Items[0].RiskScore), model.RiskLevelMedium)
		gt.String(t, report.Items[0].Summary).HasPrefix("Heuristic risk estimate")
		gt.String(t, report.Items[0].Summary).NotContains("(")
	})

	t.Run("overall risk saturates at 1", func(t *testing.T) {
		report := drs.BuildMockReport([]*model.FileChange{
			{Filename: "a", Additions: 150},
			{Filename: "b", Deletions: 120},
		}, "")

		gt.Equal(t, report.OverallRisk, 1.0)
		gt.Equal(t, report.Items[0].RiskScore, 1.0)
		gt.Equal(t, report.Items[1].RiskScore, 1.0)
	})

	t.Run("file without changed lines uses size factor", func(t *testing.T) {
		report := drs.BuildMockReport([]*model.FileChange{
			{Filename: "a", Additions: 40},
			{Filename: "renamed"},
		}, "")

		gt.Equal(t, report.OverallRisk, 0.2)
		gt.Equal(t, report.Items[1].RiskScore, 0.1)
	})

	t.Run("floor when nothing changed at all", func(t *testing.T) {
		report := drs.BuildMockReport([]*model.FileChange{
			{Filename: "binary.png"},
		}, "")

		gt.Equal(t, report.OverallRisk, 0.0)
		gt.Equal(t, report.Items[0].RiskScore, 0.1)
	})

	t.Run("reason is appended to every summary", func(t *testing.T) {
		report := drs.BuildMockReport([]*model.FileChange{
			{Filename: "a", Additions: 1},
			{Filename: "b", Additions: 2},
		}, drs.ReasonUnexpectedShape)

		for _, item := range report.Items {
			gt.String(t, item.Summary).Contains("(unexpected response shape)")
		}
	})

	t.Run("nil entry counts as empty file", func(t *testing.T) {
		report := drs.BuildMockReport([]*model.FileChange{
			nil,
			{Filename: "a", Additions: 40},
		}, "")

		gt.A(t, report.Items).Length(2)
		gt.Equal(t, report.Items[0].Filename, "")
		gt.Equal(t, report.Items[0].RiskScore, 0.1)
		gt.Equal(t, report.Items[1].RiskScore, 0.4)
		gt.Equal(t, report.OverallRisk, 0.2)
	})

	t.Run("empty input", func(t *testing.T) {
		report := drs.BuildMockReport(nil, "")
		gt.Equal(t, report.OverallRisk, 0.0)
		gt.A(t, report.Items).Length(0)
		gt.V(t, report.Raw).NotNil()
	})

	t.Run("overall risk follows size formula", func(t *testing.T) {
		for _, n := range []int{0, 1, 37, 199, 200, 201, 5000} {
			report := drs.BuildMockReport([]*model.FileChange{
				{Filename: "x", Additions: n / 2, Deletions: n - n/2},
			}, "")

			want := float64(n) / 200
			if want > 1 {
				want = 1
			}
			gt.Equal(t, report.OverallRisk, want)
			gt.True(t, report.Items[0].RiskScore >= 0 && report.Items[0].RiskScore <= 1)
		}
	})
}
