package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/nexten/smartmatch/internal/types"
)

// MatchRecord is a stored match result enriched with the candidate and job
// identifiers it was computed for.
type MatchRecord struct {
	ID           uuid.UUID         `json:"id"`
	CandidateID  string            `json:"candidate_id"`
	JobID        string            `json:"job_id"`
	Profile      string            `json:"profile"`
	FinalScore   float64           `json:"final_score"`
	ScorePercent int               `json:"score_percent"`
	Tier         types.QualityTier `json:"quality_tier"`
	Breakdown    []byte            `json:"-"`
	ComputedAt   time.Time         `json:"computed_at"`
}

// CandidateRecord is a stored raw candidate payload.
type CandidateRecord struct {
	ID        string         `json:"id"`
	Payload   map[string]any `json:"payload"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// JobRecord is a stored raw job payload.
type JobRecord struct {
	ID        string         `json:"id"`
	Payload   map[string]any `json:"payload"`
	UpdatedAt time.Time      `json:"updated_at"`
}
