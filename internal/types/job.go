// Package types provides type definitions for structured data used throughout the smartmatch engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// Remote modes for a job opening.
const (
	RemoteFull   = "full"
	RemoteHybrid = "hybrid"
	RemoteNone   = "none"
)

// Experience levels for a job opening.
const (
	LevelEntry     = "entry"
	LevelMid       = "mid"
	LevelSenior    = "senior"
	LevelExecutive = "executive"
)

// JobOpening represents a normalized job record.
type JobOpening struct {
	Title           string                      `json:"title,omitempty"`
	Skills          map[string]SkillRequirement `json:"skills"`
	Salary          *SalaryRange                `json:"salary,omitempty"`
	Location        *Location                   `json:"location,omitempty"`
	RemoteMode      string                      `json:"remote_mode,omitempty"` // full, hybrid, none
	ExperienceLevel string                      `json:"experience_level,omitempty"`
	Sector          string                      `json:"sector,omitempty"`
	CompanySize     string                      `json:"company_size,omitempty"`
	Environment     string                      `json:"environment,omitempty"`
	ContractType    string                      `json:"contract_type,omitempty"`
	Urgency         string                      `json:"urgency,omitempty"`
	Deadline        *time.Time                  `json:"deadline,omitempty"`

	FieldConfidence map[string]float64 `json:"field_confidence,omitempty"`
}

// SkillRequirement describes how much a job values one skill.
type SkillRequirement struct {
	Importance int  `json:"importance"` // 1 to 5
	Required   bool `json:"required"`
}

// Confidence returns the recorded confidence for a field, defaulting to 1.0.
func (j *JobOpening) Confidence(field string) float64 {
	if j.FieldConfidence == nil {
		return 1.0
	}
	if v, ok := j.FieldConfidence[field]; ok {
		return v
	}
	return 1.0
}

// FullyRemote reports whether the job is offered as 100% remote.
func (j *JobOpening) FullyRemote() bool {
	return j.RemoteMode == RemoteFull
}
