package scoring

import (
	"context"

	"github.com/nexten/smartmatch/internal/types"
)

// Legacy single-value contract confidences.
const (
	legacyContractMatchConfidence    = 0.95
	legacyContractMismatchConfidence = 0.6
)

// ContractTypeScorer evaluates the job's contract type against the
// candidate's ordered accepted-types list under a preference-level state
// machine:
//
//	exclusive:  1.0 for the first accepted type only, 0.0 otherwise;
//	            additional listed types are deliberately ignored
//	preferred:  0.9 first choice, 0.8 any other accepted type, else 0.0
//	acceptable: 0.8 first choice, 0.7 any other accepted type, else 0.0
//	flexible:   0.85 for any accepted type, else 0.0
//
// An unrecognized preference level surfaces as a ConfigError for the
// fallback coordinator to neutralize. Legacy single-value preferences score
// the exact match at high confidence and any mismatch at a reduced one.
type ContractTypeScorer struct{}

// Name implements Scorer.
func (s *ContractTypeScorer) Name() types.Criterion { return types.CriterionContractType }

// Score implements Scorer.
func (s *ContractTypeScorer) Score(_ context.Context, candidate *types.CandidateProfile, job *types.JobOpening, _ *Params) (types.CriterionResult, error) {
	if job.ContractType == "" {
		return types.CriterionResult{}, &MissingDataError{Field: "job.contract_type"}
	}
	pref := candidate.ContractPreference
	if pref == nil || len(pref.AcceptedTypes) == 0 {
		return types.CriterionResult{}, &MissingDataError{Field: "candidate.contract_preference"}
	}

	if pref.Legacy {
		return s.scoreLegacy(pref, job), nil
	}

	jobType := job.ContractType
	first := pref.AcceptedTypes[0]
	rest := pref.AcceptedTypes[1:]

	detail := map[string]any{
		"preference_level": pref.Level,
		"job_contract":     jobType,
		"accepted_types":   pref.AcceptedTypes,
	}

	var score float64
	switch pref.Level {
	case types.PreferenceExclusive:
		// Hard gate: only the first listed type counts, even when the
		// list holds more entries.
		if jobType == first {
			score = 1.0
		}
	case types.PreferencePreferred:
		switch {
		case jobType == first:
			score = 0.9
		case containsType(rest, jobType):
			score = 0.8
		}
	case types.PreferenceAcceptable:
		switch {
		case jobType == first:
			score = 0.8
		case containsType(rest, jobType):
			score = 0.7
		}
	case types.PreferenceFlexible:
		if containsType(pref.AcceptedTypes, jobType) {
			score = 0.85
		}
	default:
		return types.CriterionResult{}, &ConfigError{Parameter: "contract preference level", Value: pref.Level}
	}

	return types.CriterionResult{
		Score:      score,
		Confidence: candidate.Confidence("contract_preference") * job.Confidence("contract_type"),
		Detail:     detail,
	}, nil
}

// scoreLegacy handles the synthesized single-choice preference from a bare
// contract_type field.
func (s *ContractTypeScorer) scoreLegacy(pref *types.ContractPreference, job *types.JobOpening) types.CriterionResult {
	detail := map[string]any{
		"preference_level": pref.Level,
		"job_contract":     job.ContractType,
		"legacy_input":     true,
	}
	if job.ContractType == pref.AcceptedTypes[0] {
		detail["reason"] = "legacy_exact_match"
		return types.CriterionResult{Score: 0.9, Confidence: legacyContractMatchConfidence, Detail: detail}
	}
	detail["reason"] = "legacy_mismatch"
	return types.CriterionResult{
		Score:      0,
		Confidence: legacyContractMismatchConfidence,
		IsFallback: true,
		Detail:     detail,
	}
}

func containsType(list []string, t string) bool {
	for _, item := range list {
		if item == t {
			return true
		}
	}
	return false
}
