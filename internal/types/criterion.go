// Package types provides type definitions for structured data used throughout the smartmatch engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Criterion identifies one named dimension of match quality.
type Criterion string

// The criteria evaluated by the matching engine.
const (
	CriterionSkills       Criterion = "skills"
	CriterionExperience   Criterion = "experience"
	CriterionLocation     Criterion = "location"
	CriterionCompensation Criterion = "compensation"
	CriterionMotivation   Criterion = "motivation"
	CriterionCompanySize  Criterion = "company_size"
	CriterionEnvironment  Criterion = "work_environment"
	CriterionSector       Criterion = "sector"
	CriterionAvailability Criterion = "availability"
	CriterionContractType Criterion = "contract_type"
	CriterionAntiPattern  Criterion = "anti_pattern"
)

// AllCriteria lists every criterion in the canonical evaluation order.
func AllCriteria() []Criterion {
	return []Criterion{
		CriterionSkills,
		CriterionExperience,
		CriterionLocation,
		CriterionCompensation,
		CriterionMotivation,
		CriterionCompanySize,
		CriterionEnvironment,
		CriterionSector,
		CriterionAvailability,
		CriterionContractType,
		CriterionAntiPattern,
	}
}

// CriterionResult is the outcome of a single criterion scorer for one
// candidate/job pair. It is created fresh per pair and never mutated after
// being returned.
type CriterionResult struct {
	Score      float64 `json:"score"`      // 0.0 to 1.0
	Confidence float64 `json:"confidence"` // 0.0 to 1.0
	IsFallback bool    `json:"is_fallback"`
	// HardGate marks a disqualifying zero (e.g. a missing required skill)
	// that must drag the aggregate down beyond this criterion's own weight.
	HardGate bool           `json:"hard_gate,omitempty"`
	Detail   map[string]any `json:"detail,omitempty"`
}
