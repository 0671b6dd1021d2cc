package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/nexten/smartmatch/internal/geo"
	"github.com/nexten/smartmatch/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedDistancer returns a constant result or error.
type fixedDistancer struct {
	result geo.Result
	err    error
}

func (f *fixedDistancer) Distance(context.Context, geo.Point, geo.Point, geo.Mode) (geo.Result, error) {
	if f.err != nil {
		return geo.Result{}, f.err
	}
	return f.result, nil
}

func ptr(f float64) *float64 { return &f }

func TestLocationScorer_FullRemoteJobAlwaysFullScore(t *testing.T) {
	// Candidate on the other side of the planet, job is 100% remote.
	candidate := &types.CandidateProfile{
		Location: &types.Location{City: "sydney", Lat: ptr(-33.87), Lng: ptr(151.21)},
	}
	job := &types.JobOpening{
		RemoteMode: types.RemoteFull,
		Location:   &types.Location{City: "paris", Lat: ptr(48.86), Lng: ptr(2.35)},
	}

	result, err := (&LocationScorer{}).Score(context.Background(), candidate, job, DefaultParams())

	require.NoError(t, err)
	assert.Equal(t, 1.0, result.Score)
	assert.Equal(t, 0.0, result.Detail["travel_time_minutes"])
}

func TestLocationScorer_BothRemoteFullScore(t *testing.T) {
	candidate := &types.CandidateProfile{Location: &types.Location{RemoteOK: true}}
	job := &types.JobOpening{RemoteMode: types.RemoteFull}

	result, err := (&LocationScorer{}).Score(context.Background(), candidate, job, DefaultParams())

	require.NoError(t, err)
	assert.Equal(t, 1.0, result.Score)
}

func TestLocationScorer_SameCityFullScore(t *testing.T) {
	candidate := &types.CandidateProfile{Location: &types.Location{City: "paris"}}
	job := &types.JobOpening{Location: &types.Location{City: "paris"}}

	result, err := (&LocationScorer{}).Score(context.Background(), candidate, job, DefaultParams())

	require.NoError(t, err)
	assert.Equal(t, 1.0, result.Score)
	assert.Equal(t, "same_city", result.Detail["reason"])
}

func TestLocationScorer_RelocationWillingness(t *testing.T) {
	candidate := &types.CandidateProfile{Location: &types.Location{City: "lyon", WillRelocate: true}}
	job := &types.JobOpening{Location: &types.Location{City: "paris"}}

	result, err := (&LocationScorer{}).Score(context.Background(), candidate, job, DefaultParams())

	require.NoError(t, err)
	assert.InDelta(t, 0.8, result.Score, 1e-9)
}

func TestLocationScorer_ExternalDistanceTier(t *testing.T) {
	scorer := &LocationScorer{Distancer: &fixedDistancer{
		result: geo.Result{DistanceKm: 25, TravelTimeMinutes: 35},
	}}
	candidate := &types.CandidateProfile{
		Location: &types.Location{City: "versailles", Lat: ptr(48.80), Lng: ptr(2.13)},
	}
	job := &types.JobOpening{
		Location: &types.Location{City: "paris", Lat: ptr(48.86), Lng: ptr(2.35)},
	}

	result, err := scorer.Score(context.Background(), candidate, job, DefaultParams())

	require.NoError(t, err)
	assert.InDelta(t, 0.75, result.Score, 1e-9) // 1 - 25/100
	assert.InDelta(t, 0.95, result.Confidence, 1e-9)
	assert.Equal(t, "distance_service", result.Detail["reason"])
}

func TestLocationScorer_HaversineFallbackOnServiceFailure(t *testing.T) {
	scorer := &LocationScorer{Distancer: &fixedDistancer{err: errors.New("timeout")}}
	candidate := &types.CandidateProfile{
		Location: &types.Location{City: "versailles", Lat: ptr(48.80), Lng: ptr(2.13)},
	}
	job := &types.JobOpening{
		Location: &types.Location{City: "paris", Lat: ptr(48.86), Lng: ptr(2.35)},
	}

	result, err := scorer.Score(context.Background(), candidate, job, DefaultParams())

	require.NoError(t, err)
	assert.InDelta(t, 0.80, result.Confidence, 1e-9)
	assert.Equal(t, "coordinate_distance", result.Detail["reason"])
	assert.Greater(t, result.Score, 0.7) // ~17km apart
}

func TestLocationScorer_RegionHeuristicTier(t *testing.T) {
	candidate := &types.CandidateProfile{
		Location: &types.Location{City: "versailles", Region: "ile_de_france"},
	}
	job := &types.JobOpening{
		Location: &types.Location{City: "paris", Region: "ile_de_france"},
	}

	result, err := (&LocationScorer{}).Score(context.Background(), candidate, job, DefaultParams())

	require.NoError(t, err)
	assert.InDelta(t, 0.6, result.Score, 1e-9)
	assert.InDelta(t, 0.70, result.Confidence, 1e-9)
}

func TestLocationScorer_UnresolvableMismatch(t *testing.T) {
	candidate := &types.CandidateProfile{Location: &types.Location{City: "lyon"}}
	job := &types.JobOpening{Location: &types.Location{City: "paris"}}

	result, err := (&LocationScorer{}).Score(context.Background(), candidate, job, DefaultParams())

	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, "location_mismatch", result.Detail["reason"])
}

func TestLocationScorer_NoLocationsMissingData(t *testing.T) {
	_, err := (&LocationScorer{}).Score(context.Background(),
		&types.CandidateProfile{}, &types.JobOpening{}, DefaultParams())

	var missing *MissingDataError
	assert.ErrorAs(t, err, &missing)
}
