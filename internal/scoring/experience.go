package scoring

import (
	"context"

	"github.com/nexten/smartmatch/internal/types"
)

// experienceThresholds maps a job's categorical experience level to the
// years of experience it implies. Unknown levels fall back to zero, which
// scores as an automatic pass.
var experienceThresholds = map[string]float64{
	types.LevelEntry:     0,
	types.LevelMid:       2,
	types.LevelSenior:    5,
	types.LevelExecutive: 8,
}

// ExperienceScorer compares the candidate's years of experience against the
// job's required level. Full score at or above the threshold, proportional
// below it.
type ExperienceScorer struct{}

// Name implements Scorer.
func (s *ExperienceScorer) Name() types.Criterion { return types.CriterionExperience }

// Score implements Scorer.
func (s *ExperienceScorer) Score(_ context.Context, candidate *types.CandidateProfile, job *types.JobOpening, _ *Params) (types.CriterionResult, error) {
	if job.ExperienceLevel == "" {
		return types.CriterionResult{}, &MissingDataError{Field: "job.experience_level"}
	}

	threshold := experienceThresholds[job.ExperienceLevel]
	confidence := candidate.Confidence("experience_years") * job.Confidence("experience_level")

	// A zero threshold (entry level or unknown) is an automatic full score
	// for any non-negative experience.
	if threshold == 0 {
		return types.CriterionResult{
			Score:      1.0,
			Confidence: confidence,
			Detail: map[string]any{
				"required_level":  job.ExperienceLevel,
				"required_years":  0.0,
				"candidate_years": candidate.ExperienceYears,
			},
		}, nil
	}

	score := 1.0
	if candidate.ExperienceYears < threshold {
		score = candidate.ExperienceYears / threshold
	}

	return types.CriterionResult{
		Score:      clamp01(score),
		Confidence: confidence,
		Detail: map[string]any{
			"required_level":  job.ExperienceLevel,
			"required_years":  threshold,
			"candidate_years": candidate.ExperienceYears,
		},
	}, nil
}
