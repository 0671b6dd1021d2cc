package weights

import (
	"testing"

	"github.com/nexten/smartmatch/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smartmatchBase(t *testing.T) types.WeightVector {
	t.Helper()
	base, err := NewCatalog().Base(ProfileSmartMatch)
	require.NoError(t, err)
	return base
}

func TestComputeWeights_EmptyMotivationsReturnsBase(t *testing.T) {
	base := smartmatchBase(t)

	result := ComputeWeights(base, nil)

	assert.False(t, result.IsAdjusted)
	assert.Equal(t, base.Weights, result.Weights)
}

func TestComputeWeights_UnknownMotivationsIgnored(t *testing.T) {
	base := smartmatchBase(t)

	result := ComputeWeights(base, []string{"ping_pong_tables", "free_coffee"})

	assert.False(t, result.IsAdjusted)
	assert.Equal(t, base.Weights, result.Weights)
}

func TestComputeWeights_SingleCriterionMotivationBoost(t *testing.T) {
	base := smartmatchBase(t)
	baseCompensation := base.Weights[types.CriterionCompensation]

	result := ComputeWeights(base, []string{"compensation"})

	assert.True(t, result.IsAdjusted)
	require.NoError(t, result.Validate())
	// Pre-normalization the compensation weight grew by 8%; after dividing
	// by the new sum it must still exceed its base share.
	assert.Greater(t, result.Weights[types.CriterionCompensation], baseCompensation)
}

func TestComputeWeights_SumInvariantHolds(t *testing.T) {
	base := smartmatchBase(t)

	motivationSets := [][]string{
		{"compensation"},
		{"career_growth", "compensation"},
		{"remote_work", "job_security", "learning"},
		{"impact", "unknown", "team_culture"},
		{"autonomy", "autonomy", "autonomy"},
	}

	for _, motivations := range motivationSets {
		result := ComputeWeights(base, motivations)
		assert.InDelta(t, 1.0, result.Sum(), types.WeightSumTolerance, "motivations %v", motivations)
	}
}

func TestComputeWeights_RankDeterminesBoostSize(t *testing.T) {
	base := smartmatchBase(t)

	first := ComputeWeights(base, []string{"compensation"})
	third := ComputeWeights(base, []string{"team_culture", "impact", "compensation"})

	// Compensation boosted at rank 1 (8%) must end up heavier than
	// compensation boosted at rank 3 (3%).
	assert.Greater(t,
		first.Weights[types.CriterionCompensation],
		third.Weights[types.CriterionCompensation])
}

func TestComputeWeights_MultiCriterionBoostSplitEvenly(t *testing.T) {
	base := smartmatchBase(t)

	// career_growth maps to skills, company_size and sector: each gets
	// 8%/3 of its own current weight.
	result := ComputeWeights(base, []string{"career_growth"})

	rate := 0.08 / 3.0
	expectedSkills := base.Weights[types.CriterionSkills] * (1 + rate)
	expectedSize := base.Weights[types.CriterionCompanySize] * (1 + rate)
	expectedSector := base.Weights[types.CriterionSector] * (1 + rate)
	sum := 1.0 + rate*(base.Weights[types.CriterionSkills]+
		base.Weights[types.CriterionCompanySize]+
		base.Weights[types.CriterionSector])

	assert.InDelta(t, expectedSkills/sum, result.Weights[types.CriterionSkills], 1e-9)
	assert.InDelta(t, expectedSize/sum, result.Weights[types.CriterionCompanySize], 1e-9)
	assert.InDelta(t, expectedSector/sum, result.Weights[types.CriterionSector], 1e-9)
}

func TestComputeWeights_BaseVectorUnchanged(t *testing.T) {
	base := smartmatchBase(t)
	before := base.Clone()

	ComputeWeights(base, []string{"compensation", "career_growth"})

	assert.Equal(t, before.Weights, base.Weights)
}

func TestComputeWeights_MissingCriterionInProfile(t *testing.T) {
	base, err := NewCatalog().Base(ProfileV1)
	require.NoError(t, err)

	// team_culture maps only to work_environment, which v1 lacks entirely.
	result := ComputeWeights(base, []string{"team_culture"})

	assert.False(t, result.IsAdjusted)
	assert.InDelta(t, 1.0, result.Sum(), types.WeightSumTolerance)
}

func TestComputeWeights_FourthMotivationIgnored(t *testing.T) {
	base := smartmatchBase(t)

	three := ComputeWeights(base, []string{"team_culture", "impact", "learning"})
	four := ComputeWeights(base, []string{"team_culture", "impact", "learning", "compensation"})

	assert.Equal(t, three.Weights, four.Weights)
}
