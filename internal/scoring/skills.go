package scoring

import (
	"context"
	"sort"

	"github.com/nexten/smartmatch/internal/types"
)

// SkillsScorer scores how well the candidate's skill set covers the job's
// requirements.
//
// Any required job skill absent from the candidate forces the score to zero
// (hard gate). Otherwise the score is the weighted average of
// proficiency×importance×(requiredWeight|optionalWeight) over
// importance×(requiredWeight|optionalWeight), scaled by the proficiency
// domain (1..5) onto [0,1].
type SkillsScorer struct{}

// Name implements Scorer.
func (s *SkillsScorer) Name() types.Criterion { return types.CriterionSkills }

// Score implements Scorer.
func (s *SkillsScorer) Score(_ context.Context, candidate *types.CandidateProfile, job *types.JobOpening, params *Params) (types.CriterionResult, error) {
	if len(job.Skills) == 0 {
		return types.CriterionResult{}, &MissingDataError{Field: "job.skills"}
	}
	if len(candidate.Skills) == 0 {
		return types.CriterionResult{}, &MissingDataError{Field: "candidate.skills"}
	}

	var missingRequired []string
	weightedSum := 0.0
	weightTotal := 0.0
	matched := make([]string, 0, len(job.Skills))

	for name, req := range job.Skills {
		reqWeight := params.OptionalSkillWeight
		if req.Required {
			reqWeight = params.RequiredSkillWeight
		}
		importance := req.Importance
		if importance == 0 {
			importance = 3
		}

		level, has := candidate.Skills[name]
		if !has || level.Proficiency == 0 {
			if req.Required {
				missingRequired = append(missingRequired, name)
			}
			weightTotal += float64(importance) * reqWeight
			continue
		}

		weightedSum += float64(level.Proficiency) * float64(importance) * reqWeight
		weightTotal += float64(importance) * reqWeight
		matched = append(matched, name)
	}

	sort.Strings(matched)

	if len(missingRequired) > 0 {
		sort.Strings(missingRequired)
		return types.CriterionResult{
			Score:      0,
			HardGate:   true,
			Confidence: candidate.Confidence("skills") * job.Confidence("skills"),
			Detail: map[string]any{
				"reason":                  "missing_required_skills",
				"missing_required_skills": missingRequired,
				"matched_skills":          matched,
			},
		}, nil
	}

	// Proficiency 1..5 against a 5-point scale: weightedSum/weightTotal is
	// in [0,5]; ×20 reaches the 0..100 range, then normalized to [0,1].
	score := 0.0
	if weightTotal > 0 {
		score = (weightedSum / weightTotal) * 20
	}
	if score > 100 {
		score = 100
	}

	return types.CriterionResult{
		Score:      clamp01(score / 100),
		Confidence: candidate.Confidence("skills") * job.Confidence("skills"),
		Detail: map[string]any{
			"matched_skills": matched,
			"skill_count":    len(job.Skills),
		},
	}, nil
}
