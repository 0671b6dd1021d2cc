// Package types provides type definitions for structured data used throughout the smartmatch engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// QualityTier is a coarse label derived from the final score.
type QualityTier string

// The five quality tiers, from best to worst.
const (
	TierExcellent QualityTier = "excellent"
	TierVeryGood  QualityTier = "very_good"
	TierGood      QualityTier = "good"
	TierModerate  QualityTier = "moderate"
	TierPoor      QualityTier = "poor"
)

// Tier thresholds on the [0,1] scale.
const (
	thresholdExcellent = 0.90
	thresholdVeryGood  = 0.75
	thresholdGood      = 0.60
	thresholdModerate  = 0.40
)

// TierForScore maps a final score to its quality tier.
func TierForScore(score float64) QualityTier {
	switch {
	case score >= thresholdExcellent:
		return TierExcellent
	case score >= thresholdVeryGood:
		return TierVeryGood
	case score >= thresholdGood:
		return TierGood
	case score >= thresholdModerate:
		return TierModerate
	default:
		return TierPoor
	}
}

// CriterionEntry is one row of a match result's breakdown: the criterion's
// result joined with the weight it carried in the aggregate.
type CriterionEntry struct {
	Score      float64        `json:"score"`
	Weight     float64        `json:"weight"`
	Confidence float64        `json:"confidence"`
	IsFallback bool           `json:"is_fallback"`
	HardGate   bool           `json:"hard_gate,omitempty"`
	Detail     map[string]any `json:"detail,omitempty"`
}

// MatchResult is the outcome of matching one candidate against one job.
type MatchResult struct {
	ID           uuid.UUID                    `json:"id"`
	FinalScore   float64                      `json:"final_score"`    // 0.0 to 1.0
	ScorePercent int                          `json:"score_percent"`  // FinalScore x 100, rounded; display only
	Tier         QualityTier                  `json:"quality_tier"`
	Breakdown    map[Criterion]CriterionEntry `json:"breakdown"`
	Weights      WeightVector                 `json:"weights_used"`
	ComputedAt   time.Time                    `json:"computed_at"`
}

// FallbackShare returns the fraction of breakdown entries that were produced
// by fallback rather than a primary computation.
func (m *MatchResult) FallbackShare() float64 {
	if len(m.Breakdown) == 0 {
		return 0
	}
	n := 0
	for _, e := range m.Breakdown {
		if e.IsFallback {
			n++
		}
	}
	return float64(n) / float64(len(m.Breakdown))
}

// PercentFor converts a [0,1] score to a rounded integer percentage.
func PercentFor(score float64) int {
	return int(math.Round(score * 100))
}
