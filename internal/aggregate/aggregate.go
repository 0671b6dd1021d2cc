// Package aggregate combines criterion results and a weight vector into a
// final match result.
package aggregate

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/nexten/smartmatch/internal/types"
)

// hardGatePenalty is applied to the aggregate when any criterion raised a
// hard gate. 0.5 keeps the ordering among gated pairs while guaranteeing a
// final score below 0.5 regardless of the weight profile.
const hardGatePenalty = 0.5

// Aggregate computes the weighted final score over the criteria present in
// results. Criteria that produced no result at all (as opposed to a
// fallback result) are excluded from both the numerator and the weight sum,
// so a single unavailable criterion re-normalizes the rest instead of
// deflating the score. Weighted criteria absent from the weight vector
// contribute nothing.
func Aggregate(results map[types.Criterion]types.CriterionResult, weights types.WeightVector) types.MatchResult {
	weightedSum := 0.0
	weightUsed := 0.0
	gated := false
	breakdown := make(map[types.Criterion]types.CriterionEntry, len(results))

	// Summation order must not depend on map iteration: float addition is
	// not associative, so a fixed order keeps repeated calls bit-identical.
	criteria := make([]types.Criterion, 0, len(results))
	for criterion := range results {
		criteria = append(criteria, criterion)
	}
	sort.Slice(criteria, func(i, j int) bool { return criteria[i] < criteria[j] })

	for _, criterion := range criteria {
		result := results[criterion]
		weight := weights.Weight(criterion)
		breakdown[criterion] = types.CriterionEntry{
			Score:      result.Score,
			Weight:     weight,
			Confidence: result.Confidence,
			IsFallback: result.IsFallback,
			HardGate:   result.HardGate,
			Detail:     result.Detail,
		}
		if result.HardGate {
			gated = true
		}
		if weight == 0 {
			continue
		}
		weightedSum += result.Score * weight
		weightUsed += weight
	}

	finalScore := 0.0
	if weightUsed > 0 {
		finalScore = weightedSum / weightUsed
	}
	if gated {
		// A disqualifying criterion halves the aggregate so the pair can
		// never reach the good tier on the strength of the others.
		finalScore *= hardGatePenalty
	}
	if finalScore < 0 {
		finalScore = 0
	}
	if finalScore > 1 {
		finalScore = 1
	}

	return types.MatchResult{
		ID:           uuid.New(),
		FinalScore:   finalScore,
		ScorePercent: types.PercentFor(finalScore),
		Tier:         types.TierForScore(finalScore),
		Breakdown:    breakdown,
		Weights:      weights,
		ComputedAt:   time.Now().UTC(),
	}
}
