package aggregate

import (
	"testing"

	"github.com/nexten/smartmatch/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vector(weights map[types.Criterion]float64) types.WeightVector {
	return types.WeightVector{Weights: weights}
}

func TestAggregate_WeightedSum(t *testing.T) {
	results := map[types.Criterion]types.CriterionResult{
		types.CriterionSkills:     {Score: 0.8, Confidence: 1.0},
		types.CriterionExperience: {Score: 0.6, Confidence: 1.0},
	}
	weights := vector(map[types.Criterion]float64{
		types.CriterionSkills:     0.6,
		types.CriterionExperience: 0.4,
	})

	result := Aggregate(results, weights)

	assert.InDelta(t, 0.8*0.6+0.6*0.4, result.FinalScore, 1e-9)
	assert.Equal(t, types.TierForScore(result.FinalScore), result.Tier)
	assert.Equal(t, types.PercentFor(result.FinalScore), result.ScorePercent)
}

func TestAggregate_AbsentCriterionRenormalizes(t *testing.T) {
	// Location never produced a result; its weight is excluded from the
	// denominator so the score is not deflated.
	results := map[types.Criterion]types.CriterionResult{
		types.CriterionSkills:     {Score: 1.0, Confidence: 1.0},
		types.CriterionExperience: {Score: 1.0, Confidence: 1.0},
	}
	weights := vector(map[types.Criterion]float64{
		types.CriterionSkills:     0.5,
		types.CriterionExperience: 0.3,
		types.CriterionLocation:   0.2,
	})

	result := Aggregate(results, weights)

	assert.InDelta(t, 1.0, result.FinalScore, 1e-9)
	_, hasLocation := result.Breakdown[types.CriterionLocation]
	assert.False(t, hasLocation)
}

func TestAggregate_UnweightedCriterionInBreakdownOnly(t *testing.T) {
	// A scorer result for a criterion the profile gives zero weight still
	// shows up in the breakdown but cannot move the score.
	results := map[types.Criterion]types.CriterionResult{
		types.CriterionSkills:      {Score: 1.0, Confidence: 1.0},
		types.CriterionAntiPattern: {Score: 0.0, Confidence: 1.0},
	}
	weights := vector(map[types.Criterion]float64{
		types.CriterionSkills: 1.0,
	})

	result := Aggregate(results, weights)

	assert.InDelta(t, 1.0, result.FinalScore, 1e-9)
	entry, present := result.Breakdown[types.CriterionAntiPattern]
	require.True(t, present)
	assert.Equal(t, 0.0, entry.Weight)
}

func TestAggregate_HardGateHalvesScore(t *testing.T) {
	// A zero with a hard gate pulls the aggregate below what the remaining
	// weights alone would allow.
	results := map[types.Criterion]types.CriterionResult{
		types.CriterionSkills:     {Score: 0.0, Confidence: 1.0, HardGate: true},
		types.CriterionExperience: {Score: 1.0, Confidence: 1.0},
		types.CriterionLocation:   {Score: 1.0, Confidence: 1.0},
	}
	weights := vector(map[types.Criterion]float64{
		types.CriterionSkills:     0.25,
		types.CriterionExperience: 0.40,
		types.CriterionLocation:   0.35,
	})

	result := Aggregate(results, weights)

	assert.InDelta(t, 0.75*0.5, result.FinalScore, 1e-9)
	assert.True(t, result.Breakdown[types.CriterionSkills].HardGate)
	assert.Less(t, result.FinalScore, 0.6)
}

func TestAggregate_EmptyResults(t *testing.T) {
	result := Aggregate(nil, vector(map[types.Criterion]float64{types.CriterionSkills: 1.0}))

	assert.Equal(t, 0.0, result.FinalScore)
	assert.Equal(t, types.TierPoor, result.Tier)
	assert.Empty(t, result.Breakdown)
}

func TestAggregate_BreakdownCarriesFallbackFlags(t *testing.T) {
	results := map[types.Criterion]types.CriterionResult{
		types.CriterionSkills: {Score: 0.5, Confidence: 0.3, IsFallback: true,
			Detail: map[string]any{"fallback_reason": "missing data: skills"}},
	}
	weights := vector(map[types.Criterion]float64{types.CriterionSkills: 1.0})

	result := Aggregate(results, weights)

	entry := result.Breakdown[types.CriterionSkills]
	assert.True(t, entry.IsFallback)
	assert.InDelta(t, 0.3, entry.Confidence, 1e-9)
	assert.Equal(t, "missing data: skills", entry.Detail["fallback_reason"])
}

func TestAggregate_ScoreStaysInRange(t *testing.T) {
	results := map[types.Criterion]types.CriterionResult{}
	for _, criterion := range types.AllCriteria() {
		results[criterion] = types.CriterionResult{Score: 1.0, Confidence: 1.0}
	}
	weights := vector(map[types.Criterion]float64{})
	for _, criterion := range types.AllCriteria() {
		weights.Weights[criterion] = 1.0 / float64(len(types.AllCriteria()))
	}

	result := Aggregate(results, weights)

	assert.GreaterOrEqual(t, result.FinalScore, 0.0)
	assert.LessOrEqual(t, result.FinalScore, 1.0)
	assert.Equal(t, types.TierExcellent, result.Tier)
}

func TestAggregate_FreshIDPerCall(t *testing.T) {
	results := map[types.Criterion]types.CriterionResult{
		types.CriterionSkills: {Score: 0.5},
	}
	weights := vector(map[types.Criterion]float64{types.CriterionSkills: 1.0})

	first := Aggregate(results, weights)
	second := Aggregate(results, weights)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.FinalScore, second.FinalScore)
}

func TestAggregate_RepeatedCallsBitIdentical(t *testing.T) {
	// Weights that do not sum cleanly in any order expose accumulation-order
	// differences in the last ULP.
	results := make(map[types.Criterion]types.CriterionResult)
	table := make(map[types.Criterion]float64)
	for i, criterion := range types.AllCriteria() {
		results[criterion] = types.CriterionResult{Score: 1.0 / float64(i+3), Confidence: 1.0}
		table[criterion] = 0.1 / float64(i+1)
	}
	weights := vector(table)

	first := Aggregate(results, weights)
	for i := 0; i < 50; i++ {
		again := Aggregate(results, weights)
		require.Equal(t, first.FinalScore, again.FinalScore)
		require.Equal(t, first.Tier, again.Tier)
	}
}
