// Package types provides type definitions for structured data used throughout the smartmatch engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// CandidateProfile represents a normalized candidate record.
// All fields are populated by the normalizer; missing source data is
// represented by nil pointers, zero values, or empty collections, with the
// affected field names recorded in FieldConfidence.
type CandidateProfile struct {
	Skills              map[string]SkillLevel `json:"skills"`
	DesiredSalary       *SalaryRange          `json:"desired_salary,omitempty"`
	Location            *Location             `json:"location,omitempty"`
	ExperienceYears     float64               `json:"experience_years"`
	Motivations         []string              `json:"motivations,omitempty"` // ordered, at most 3, no duplicates
	PreferredSize       string                `json:"preferred_company_size,omitempty"`
	PreferredEnv        string                `json:"preferred_environment,omitempty"`
	TargetSectors       []string              `json:"target_sectors,omitempty"`
	AvoidedSectors      []string              `json:"avoided_sectors,omitempty"`
	AvailableFrom       *time.Time            `json:"available_from,omitempty"`
	ContractPreference  *ContractPreference   `json:"contract_preference,omitempty"`

	// FieldConfidence records per-field confidence in [0,1] for fields the
	// normalizer had to default, repair, or infer. Absent fields are assumed
	// fully confident (1.0).
	FieldConfidence map[string]float64 `json:"field_confidence,omitempty"`
}

// SkillLevel describes a candidate's command of one skill.
type SkillLevel struct {
	Proficiency int     `json:"proficiency"` // 1 to 5; 0 means unknown
	Years       float64 `json:"years,omitempty"`
}

// SalaryRange is an annual salary interval. Either bound may be zero when
// the source data only stated one side.
type SalaryRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Location describes where a candidate lives or a job is based.
type Location struct {
	City         string   `json:"city,omitempty"`
	Region       string   `json:"region,omitempty"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
	RemoteOK     bool     `json:"remote_ok,omitempty"`      // candidate accepts full remote
	WillRelocate bool     `json:"will_relocate,omitempty"`
}

// Preference levels for contract types.
const (
	PreferenceExclusive  = "exclusive"
	PreferencePreferred  = "preferred"
	PreferenceAcceptable = "acceptable"
	PreferenceFlexible   = "flexible"
)

// ContractPreference captures which contract types a candidate accepts and
// how strictly the ordering matters.
type ContractPreference struct {
	Level         string   `json:"level"`          // exclusive, preferred, acceptable, flexible
	AcceptedTypes []string `json:"accepted_types"` // ordered by preference
	// Legacy marks preferences synthesized from a bare contract_type field
	// rather than a structured questionnaire answer.
	Legacy bool `json:"legacy,omitempty"`
}

// Confidence returns the recorded confidence for a field, defaulting to 1.0
// when the normalizer made no note about it.
func (c *CandidateProfile) Confidence(field string) float64 {
	if c.FieldConfidence == nil {
		return 1.0
	}
	if v, ok := c.FieldConfidence[field]; ok {
		return v
	}
	return 1.0
}
