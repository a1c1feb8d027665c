package domain

import (
	"errors"
	"slices"
	"strings"
)

// RiskTier is the ordered severity classification of an assessment.
type RiskTier string

const (
	TierLow    RiskTier = "Low"
	TierMedium RiskTier = "Medium"
	TierHigh   RiskTier = "High"
)

// Tier thresholds, upper bounds inclusive.
const (
	lowTierMax    = 3
	mediumTierMax = 8
)

// DisplayScale is the fixed denominator used for the progress indication.
const DisplayScale = 20

// ErrUnknownTier is returned when a tier name does not parse.
var ErrUnknownTier = errors.New("unknown risk tier")

// Tiers lists the tiers from least to most severe.
func Tiers() []RiskTier {
	return []RiskTier{TierLow, TierMedium, TierHigh}
}

// ParseRiskTier resolves a tier name case-insensitively.
func ParseRiskTier(s string) (RiskTier, error) {
	for _, t := range Tiers() {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", ErrUnknownTier
}

// AssessmentInput is the caller-owned selection state of one assessment.
// An empty WaterSourceID or RainfallID means the field is unset.
type AssessmentInput struct {
	SymptomIDs    []string `json:"symptoms"`
	WaterSourceID string   `json:"water_source"`
	RainfallID    string   `json:"rainfall"`
}

// Complete reports whether both single-select fields are populated, which is
// the condition for offering the calculate action.
func (in AssessmentInput) Complete() bool {
	return in.WaterSourceID != "" && in.RainfallID != ""
}

// HasSymptom reports whether id is selected.
func (in AssessmentInput) HasSymptom(id string) bool {
	return slices.Contains(in.SymptomIDs, id)
}

// ToggleSymptom returns a copy of the input with id selected or cleared.
func (in AssessmentInput) ToggleSymptom(id string, checked bool) AssessmentInput {
	out := in
	out.SymptomIDs = slices.DeleteFunc(slices.Clone(in.SymptomIDs), func(s string) bool { return s == id })
	if checked {
		out.SymptomIDs = append(out.SymptomIDs, id)
	}
	return out
}

// AssessmentResult is the derived outcome of scoring an input.
type AssessmentResult struct {
	TotalScore int      `json:"score"`
	Tier       RiskTier `json:"tier"`
}

// ScoreAssessment computes the weighted score and risk tier for input. It is
// a pure function: unknown identifiers contribute zero and it never fails.
func ScoreAssessment(input AssessmentInput) AssessmentResult {
	score := 0
	seen := make(map[string]struct{}, len(input.SymptomIDs))
	for _, id := range input.SymptomIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		score += symptomCatalog.Weight(id)
	}
	score += waterSourceCatalog.Weight(input.WaterSourceID)
	score += rainfallCatalog.Weight(input.RainfallID)

	return AssessmentResult{
		TotalScore: score,
		Tier:       ClassifyScore(score),
	}
}

// ClassifyScore maps a total score to its tier.
func ClassifyScore(score int) RiskTier {
	switch {
	case score <= lowTierMax:
		return TierLow
	case score <= mediumTierMax:
		return TierMedium
	default:
		return TierHigh
	}
}

// ResetAssessment returns a fresh input with no symptoms and both
// single-select fields unset.
func ResetAssessment() AssessmentInput {
	return AssessmentInput{SymptomIDs: []string{}}
}

// ScoreDisplay is the progress indication shown with a result.
type ScoreDisplay struct {
	Score   int     `json:"score"`
	Scale   int     `json:"scale"`
	Percent float64 `json:"percent"`
}

// NewScoreDisplay expresses score against DisplayScale. Percent saturates at
// 100 because reachable scores exceed the scale.
func NewScoreDisplay(score int) ScoreDisplay {
	pct := float64(score) / DisplayScale * 100
	return ScoreDisplay{
		Score:   score,
		Scale:   DisplayScale,
		Percent: min(max(pct, 0), 100),
	}
}
