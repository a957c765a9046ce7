package model

import "math"

// RiskItem is the risk estimate for a single FileChange
type RiskItem struct {
	Filename  string  `json:"filename"`
	RiskScore float64 `json:"risk_score"`
	Summary   string  `json:"summary"`
}

// RiskReport is the combined risk estimate of a pull request. Items correspond
// positionally to the analyzed FileChange list.
type RiskReport struct {
	OverallRisk float64     `json:"overall_risk"`
	Items       []*RiskItem `json:"items"`
	Raw         any         `json:"raw,omitempty"` // diagnostics only
}

// NewRiskReport clamps every item score and sets OverallRisk to their mean (0 when empty)
func NewRiskReport(items []*RiskItem, raw any) *RiskReport {
	var total float64
	for _, item := range items {
		item.RiskScore = Clamp01(item.RiskScore)
		total += item.RiskScore
	}

	report := &RiskReport{
		Items: items,
		Raw:   raw,
	}
	if len(items) > 0 {
		report.OverallRisk = Clamp01(total / float64(len(items)))
	}
	return report
}

// RiskLevel is the human readable classification of a risk score
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "Low"
	RiskLevelMedium RiskLevel = "Medium"
	RiskLevelHigh   RiskLevel = "High"
)

// LevelOf classifies a score: >=0.70 High, >=0.40 Medium, otherwise Low
func LevelOf(score float64) RiskLevel {
	switch {
	case score >= 0.7:
		return RiskLevelHigh
	case score >= 0.4:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// Percent converts a score into an integer percentage, rounding halves up
func Percent(score float64) int {
	return int(math.Floor(score*100 + 0.5))
}

// Clamp01 limits v to [0, 1]. NaN is treated as 0.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
