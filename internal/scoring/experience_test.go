package scoring

import (
	"context"
	"testing"

	"github.com/nexten/smartmatch/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExperienceScorer_ThresholdTable(t *testing.T) {
	cases := []struct {
		level string
		years float64
		score float64
	}{
		{types.LevelEntry, 0, 1.0},
		{types.LevelEntry, 10, 1.0},
		{types.LevelMid, 2, 1.0},
		{types.LevelMid, 1, 0.5},
		{types.LevelSenior, 5, 1.0},
		{types.LevelSenior, 2, 0.4},
		{types.LevelExecutive, 8, 1.0},
		{types.LevelExecutive, 4, 0.5},
		{types.LevelExecutive, 0, 0.0},
	}

	for _, tc := range cases {
		candidate := &types.CandidateProfile{ExperienceYears: tc.years}
		job := &types.JobOpening{ExperienceLevel: tc.level}

		result, err := (&ExperienceScorer{}).Score(context.Background(), candidate, job, DefaultParams())

		require.NoError(t, err, "level %s years %.0f", tc.level, tc.years)
		assert.InDelta(t, tc.score, result.Score, 1e-9, "level %s years %.0f", tc.level, tc.years)
	}
}

func TestExperienceScorer_UnknownLevelIsAutomaticPass(t *testing.T) {
	candidate := &types.CandidateProfile{ExperienceYears: 0}
	job := &types.JobOpening{ExperienceLevel: "wizard"}

	result, err := (&ExperienceScorer{}).Score(context.Background(), candidate, job, DefaultParams())

	require.NoError(t, err)
	assert.InDelta(t, 1.0, result.Score, 1e-9)
}

func TestExperienceScorer_MissingLevel(t *testing.T) {
	_, err := (&ExperienceScorer{}).Score(context.Background(),
		&types.CandidateProfile{ExperienceYears: 3}, &types.JobOpening{}, DefaultParams())

	var missing *MissingDataError
	assert.ErrorAs(t, err, &missing)
}
