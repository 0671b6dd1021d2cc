package scoring

import (
	"context"
	"testing"

	"github.com/nexten/smartmatch/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractCandidate(level string, accepted ...string) *types.CandidateProfile {
	return &types.CandidateProfile{
		ContractPreference: &types.ContractPreference{Level: level, AcceptedTypes: accepted},
	}
}

func contractJob(contractType string) *types.JobOpening {
	return &types.JobOpening{ContractType: contractType}
}

func scoreContract(t *testing.T, candidate *types.CandidateProfile, job *types.JobOpening) types.CriterionResult {
	t.Helper()
	result, err := (&ContractTypeScorer{}).Score(context.Background(), candidate, job, DefaultParams())
	require.NoError(t, err)
	return result
}

func TestContractTypeScorer_ExclusiveLevel(t *testing.T) {
	candidate := contractCandidate(types.PreferenceExclusive, "cdi")

	assert.Equal(t, 1.0, scoreContract(t, candidate, contractJob("cdi")).Score)
	assert.Equal(t, 0.0, scoreContract(t, candidate, contractJob("cdd")).Score)
}

func TestContractTypeScorer_ExclusiveIgnoresExtraListedTypes(t *testing.T) {
	// Listing more types under exclusive is a defined hard gate, not a
	// data-entry error: only the first entry counts.
	candidate := contractCandidate(types.PreferenceExclusive, "cdi", "freelance")

	assert.Equal(t, 1.0, scoreContract(t, candidate, contractJob("cdi")).Score)
	assert.Equal(t, 0.0, scoreContract(t, candidate, contractJob("freelance")).Score)
}

func TestContractTypeScorer_PreferredLevel(t *testing.T) {
	candidate := contractCandidate(types.PreferencePreferred, "freelance", "cdi")

	assert.InDelta(t, 0.9, scoreContract(t, candidate, contractJob("freelance")).Score, 1e-9)
	assert.InDelta(t, 0.8, scoreContract(t, candidate, contractJob("cdi")).Score, 1e-9)
	assert.Equal(t, 0.0, scoreContract(t, candidate, contractJob("cdd")).Score)
}

func TestContractTypeScorer_AcceptableLevel(t *testing.T) {
	candidate := contractCandidate(types.PreferenceAcceptable, "cdi", "cdd", "interim")

	assert.InDelta(t, 0.8, scoreContract(t, candidate, contractJob("cdi")).Score, 1e-9)
	assert.InDelta(t, 0.7, scoreContract(t, candidate, contractJob("cdd")).Score, 1e-9)
	assert.InDelta(t, 0.7, scoreContract(t, candidate, contractJob("interim")).Score, 1e-9)
	assert.Equal(t, 0.0, scoreContract(t, candidate, contractJob("stage")).Score)
}

func TestContractTypeScorer_FlexibleLevel(t *testing.T) {
	candidate := contractCandidate(types.PreferenceFlexible, "cdi", "freelance")

	assert.InDelta(t, 0.85, scoreContract(t, candidate, contractJob("cdi")).Score, 1e-9)
	assert.InDelta(t, 0.85, scoreContract(t, candidate, contractJob("freelance")).Score, 1e-9)
	assert.Equal(t, 0.0, scoreContract(t, candidate, contractJob("cdd")).Score)
}

func TestContractTypeScorer_UnknownLevelIsConfigError(t *testing.T) {
	candidate := contractCandidate("enthusiastic", "cdi")

	_, err := (&ContractTypeScorer{}).Score(context.Background(), candidate, contractJob("cdi"), DefaultParams())

	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "enthusiastic", configErr.Value)
}

func TestContractTypeScorer_UnknownLevelNeutralizedByCoordinator(t *testing.T) {
	coordinator := NewCoordinator(nil)
	candidate := contractCandidate("enthusiastic", "cdi")

	result := coordinator.Score(context.Background(), &ContractTypeScorer{}, candidate, contractJob("cdi"), DefaultParams())

	assert.InDelta(t, 0.6, result.Score, 1e-9)
	assert.True(t, result.IsFallback)
}

func TestContractTypeScorer_LegacySingleValue(t *testing.T) {
	candidate := &types.CandidateProfile{
		ContractPreference: &types.ContractPreference{
			Level:         types.PreferencePreferred,
			AcceptedTypes: []string{"cdi"},
			Legacy:        true,
		},
	}

	match := scoreContract(t, candidate, contractJob("cdi"))
	assert.InDelta(t, 0.9, match.Score, 1e-9)
	assert.InDelta(t, 0.95, match.Confidence, 1e-9)
	assert.False(t, match.IsFallback)

	mismatch := scoreContract(t, candidate, contractJob("cdd"))
	assert.Equal(t, 0.0, mismatch.Score)
	assert.InDelta(t, 0.6, mismatch.Confidence, 1e-9)
	assert.True(t, mismatch.IsFallback)
}

func TestContractTypeScorer_MissingInputs(t *testing.T) {
	var missing *MissingDataError

	_, err := (&ContractTypeScorer{}).Score(context.Background(),
		contractCandidate(types.PreferencePreferred, "cdi"), contractJob(""), DefaultParams())
	assert.ErrorAs(t, err, &missing)

	_, err = (&ContractTypeScorer{}).Score(context.Background(),
		&types.CandidateProfile{}, contractJob("cdi"), DefaultParams())
	assert.ErrorAs(t, err, &missing)
}
