package scoring

import (
	"context"

	"github.com/nexten/smartmatch/internal/types"
)

// AntiPatternScorer penalizes known mismatch combinations. It is a standard
// [0,1] criterion where 1.0 means "no conflict detected"; each detected
// conflict subtracts its penalty. The rule set is deliberately small and
// conservative; combinations without a concrete rule score neutral.
type AntiPatternScorer struct{}

// Name implements Scorer.
func (s *AntiPatternScorer) Name() types.Criterion { return types.CriterionAntiPattern }

// Score implements Scorer.
func (s *AntiPatternScorer) Score(_ context.Context, candidate *types.CandidateProfile, job *types.JobOpening, _ *Params) (types.CriterionResult, error) {
	score := 1.0
	var conflicts []string

	// The candidate explicitly avoids the job's sector.
	if job.Sector != "" {
		for _, avoided := range candidate.AvoidedSectors {
			if avoided == job.Sector {
				score -= 0.8
				conflicts = append(conflicts, "avoided_sector")
				break
			}
		}
	}

	// Exclusive contract preference conflicting with the job's type is a
	// declared dealbreaker beyond the contract criterion's own zero.
	if pref := candidate.ContractPreference; pref != nil &&
		pref.Level == types.PreferenceExclusive &&
		len(pref.AcceptedTypes) > 0 &&
		job.ContractType != "" &&
		job.ContractType != pref.AcceptedTypes[0] {
		score -= 0.5
		conflicts = append(conflicts, "exclusive_contract_conflict")
	}

	detail := map[string]any{"conflicts": conflicts}
	if len(conflicts) == 0 {
		detail["reason"] = "no_conflict"
	}

	return types.CriterionResult{
		Score:      clamp01(score),
		Confidence: 1.0,
		Detail:     detail,
	}, nil
}
