package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/nexten/smartmatch/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingScorer always returns the configured error.
type failingScorer struct {
	criterion types.Criterion
	err       error
}

func (f *failingScorer) Name() types.Criterion { return f.criterion }

func (f *failingScorer) Score(context.Context, *types.CandidateProfile, *types.JobOpening, *Params) (types.CriterionResult, error) {
	return types.CriterionResult{}, f.err
}

// panickyScorer panics on every call.
type panickyScorer struct{}

func (p *panickyScorer) Name() types.Criterion { return types.CriterionSkills }

func (p *panickyScorer) Score(context.Context, *types.CandidateProfile, *types.JobOpening, *Params) (types.CriterionResult, error) {
	panic("nil map write")
}

func TestCoordinator_MissingDataBecomesNeutralFallback(t *testing.T) {
	coordinator := NewCoordinator(nil)
	scorer := &failingScorer{criterion: types.CriterionCompensation, err: &MissingDataError{Field: "salary"}}

	result := coordinator.Score(context.Background(), scorer, &types.CandidateProfile{}, &types.JobOpening{}, DefaultParams())

	assert.True(t, result.IsFallback)
	assert.InDelta(t, genericNeutralScore, result.Score, 1e-9)
	assert.InDelta(t, fallbackConfidence, result.Confidence, 1e-9)
	assert.Contains(t, result.Detail["fallback_reason"], "missing data")
}

func TestCoordinator_PerCriterionNeutrals(t *testing.T) {
	coordinator := NewCoordinator(nil)
	err := &MissingDataError{Field: "x"}

	contract := coordinator.Score(context.Background(),
		&failingScorer{criterion: types.CriterionContractType, err: err},
		&types.CandidateProfile{}, &types.JobOpening{}, DefaultParams())
	assert.InDelta(t, 0.6, contract.Score, 1e-9)

	antiPattern := coordinator.Score(context.Background(),
		&failingScorer{criterion: types.CriterionAntiPattern, err: err},
		&types.CandidateProfile{}, &types.JobOpening{}, DefaultParams())
	assert.InDelta(t, 1.0, antiPattern.Score, 1e-9)
}

func TestCoordinator_ExternalServiceFailureDegrades(t *testing.T) {
	coordinator := NewCoordinator(nil)
	scorer := &failingScorer{
		criterion: types.CriterionLocation,
		err:       &ExternalServiceError{Service: "geocoding", Cause: errors.New("timeout")},
	}

	result := coordinator.Score(context.Background(), scorer, &types.CandidateProfile{}, &types.JobOpening{}, DefaultParams())

	assert.True(t, result.IsFallback)
	assert.InDelta(t, genericNeutralScore, result.Score, 1e-9)
}

func TestCoordinator_PanicRecovered(t *testing.T) {
	coordinator := NewCoordinator(nil)

	result := coordinator.Score(context.Background(), &panickyScorer{}, &types.CandidateProfile{}, &types.JobOpening{}, DefaultParams())

	assert.True(t, result.IsFallback)
	assert.GreaterOrEqual(t, result.Score, 0.0)
	assert.LessOrEqual(t, result.Score, 1.0)
}

func TestCoordinator_ClampsOutOfRangeScores(t *testing.T) {
	coordinator := NewCoordinator(nil)
	scorer := &stubScorer{result: types.CriterionResult{Score: 1.7, Confidence: -0.2}}

	result := coordinator.Score(context.Background(), scorer, &types.CandidateProfile{}, &types.JobOpening{}, DefaultParams())

	assert.Equal(t, 1.0, result.Score)
	assert.Equal(t, 0.0, result.Confidence)
}

// stubScorer returns a fixed result.
type stubScorer struct {
	result types.CriterionResult
}

func (s *stubScorer) Name() types.Criterion { return types.CriterionSkills }

func (s *stubScorer) Score(context.Context, *types.CandidateProfile, *types.JobOpening, *Params) (types.CriterionResult, error) {
	return s.result, nil
}

func TestRegistry_RejectsDuplicates(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(&SkillsScorer{}))

	err := registry.Register(&SkillsScorer{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestDefaultRegistry_CoversAllCriteria(t *testing.T) {
	registry := DefaultRegistry(nil)

	assert.ElementsMatch(t, types.AllCriteria(), registry.Criteria())
	assert.Len(t, registry.Scorers(), 11)
}

func TestParams_Validation(t *testing.T) {
	assert.NoError(t, DefaultParams().Validate())

	bad := DefaultParams()
	bad.RequiredSkillWeight = -1
	assert.Error(t, bad.Validate())

	badBoost := DefaultParams()
	badBoost.BoostRates = []float64{0.9}
	assert.Error(t, badBoost.Validate())

	okBoost := DefaultParams()
	okBoost.BoostRates = []float64{0.1, 0.05, 0.02}
	assert.NoError(t, okBoost.Validate())
}

func TestAntiPatternScorer_NoConflictNeutral(t *testing.T) {
	result, err := (&AntiPatternScorer{}).Score(context.Background(),
		&types.CandidateProfile{}, &types.JobOpening{Sector: "fintech"}, DefaultParams())

	require.NoError(t, err)
	assert.Equal(t, 1.0, result.Score)
	assert.Equal(t, "no_conflict", result.Detail["reason"])
}

func TestAntiPatternScorer_AvoidedSectorPenalty(t *testing.T) {
	candidate := &types.CandidateProfile{AvoidedSectors: []string{"defense"}}
	job := &types.JobOpening{Sector: "defense"}

	result, err := (&AntiPatternScorer{}).Score(context.Background(), candidate, job, DefaultParams())

	require.NoError(t, err)
	assert.InDelta(t, 0.2, result.Score, 1e-9)
	assert.Contains(t, result.Detail["conflicts"], "avoided_sector")
}

func TestAntiPatternScorer_StackedConflictsClampAtZero(t *testing.T) {
	candidate := &types.CandidateProfile{
		AvoidedSectors: []string{"defense"},
		ContractPreference: &types.ContractPreference{
			Level:         types.PreferenceExclusive,
			AcceptedTypes: []string{"cdi"},
		},
	}
	job := &types.JobOpening{Sector: "defense", ContractType: "cdd"}

	result, err := (&AntiPatternScorer{}).Score(context.Background(), candidate, job, DefaultParams())

	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Score)
	assert.Len(t, result.Detail["conflicts"], 2)
}
