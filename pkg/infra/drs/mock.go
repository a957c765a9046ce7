package drs

import (
	"math"

	"github.com/rkdwoals159/pr-ai-reviewer/pkg/domain/model"
)

const mockSummary = "Heuristic risk estimate based on change size. Configure the DRS-LLM API endpoint for a more precise analysis."

// Reasons attached to a mock report when the remote service was not used
const (
	ReasonNotConfigured   = "DRS API not configured"
	ReasonUnexpectedShape = "unexpected response shape"
	reasonCallFailed      = "DRS API call failed: "
)

// BuildMockReport estimates risk from change volume only. reason, when not empty,
// is appended to every item summary. A nil entry counts as an empty file.
//
//	sizeFactor = min(total changed lines / 200, 1)
//	item score = min(changed lines / 100, 1), or sizeFactor*0.5, or 0.1
func BuildMockReport(files []*model.FileChange, reason string) *model.RiskReport {
	var total int
	for _, f := range files {
		if f != nil {
			total += f.ChangedLines()
		}
	}
	sizeFactor := math.Min(float64(total)/200, 1)

	summary := mockSummary
	if reason != "" {
		summary += " (" + reason + ")"
	}

	items := make([]*model.RiskItem, 0, len(files))
	for _, f := range files {
		if f == nil {
			f = &model.FileChange{}
		}
		score := float64(f.ChangedLines()) / 100
		if score == 0 {
			score = sizeFactor * 0.5
		}
		if score == 0 {
			score = 0.1
		}

		items = append(items, &model.RiskItem{
			Filename:  f.Filename,
			RiskScore: model.Clamp01(score),
			Summary:   summary,
		})
	}

	return &model.RiskReport{
		OverallRisk: model.Clamp01(sizeFactor),
		Items:       items,
		Raw:         map[string]any{"mock": true},
	}
}
