package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/nexten/smartmatch/internal/types"
)

// InsertMatchResult stores a computed match result. The full breakdown is
// kept as JSONB so historical scores keep their explanation even when the
// scorers evolve.
func (db *DB) InsertMatchResult(ctx context.Context, candidateID, jobID string, result *types.MatchResult) error {
	breakdown, err := json.Marshal(result.Breakdown)
	if err != nil {
		return fmt.Errorf("failed to marshal breakdown: %w", err)
	}
	weights, err := json.Marshal(result.Weights)
	if err != nil {
		return fmt.Errorf("failed to marshal weights: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO match_results (id, candidate_id, job_id, profile, final_score, score_percent, quality_tier, breakdown, weights, computed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		result.ID, candidateID, jobID, result.Weights.Profile,
		result.FinalScore, result.ScorePercent, string(result.Tier),
		breakdown, weights, result.ComputedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert match result: %w", err)
	}
	return nil
}

// GetMatchResult retrieves one stored match result by ID. Returns nil when
// no row exists.
func (db *DB) GetMatchResult(ctx context.Context, id uuid.UUID) (*MatchRecord, error) {
	var record MatchRecord
	var tier string
	err := db.pool.QueryRow(ctx,
		`SELECT id, candidate_id, job_id, profile, final_score, score_percent, quality_tier, breakdown, computed_at
		 FROM match_results WHERE id = $1`,
		id,
	).Scan(&record.ID, &record.CandidateID, &record.JobID, &record.Profile,
		&record.FinalScore, &record.ScorePercent, &tier, &record.Breakdown, &record.ComputedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get match result: %w", err)
	}
	record.Tier = types.QualityTier(tier)
	return &record, nil
}

// MatchFilters holds optional filters for listing match results.
type MatchFilters struct {
	CandidateID string
	JobID       string
	Profile     string
	MinScore    float64
	Limit       int
}

// listMatchesQuery builds the filtered SELECT for ListMatchResults. Split
// out so the argument numbering can be tested without a live database.
func listMatchesQuery(filters MatchFilters) (string, []any) {
	if filters.Limit == 0 {
		filters.Limit = 50
	}

	query := `SELECT id, candidate_id, job_id, profile, final_score, score_percent, quality_tier, breakdown, computed_at
		FROM match_results WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.CandidateID != "" {
		query += fmt.Sprintf(" AND candidate_id = $%d", argNum)
		args = append(args, filters.CandidateID)
		argNum++
	}
	if filters.JobID != "" {
		query += fmt.Sprintf(" AND job_id = $%d", argNum)
		args = append(args, filters.JobID)
		argNum++
	}
	if filters.Profile != "" {
		query += fmt.Sprintf(" AND profile = $%d", argNum)
		args = append(args, filters.Profile)
		argNum++
	}
	if filters.MinScore > 0 {
		query += fmt.Sprintf(" AND final_score >= $%d", argNum)
		args = append(args, filters.MinScore)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY final_score DESC, computed_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	return query, args
}

// ListMatchResults retrieves match results with optional filters, best score
// first.
func (db *DB) ListMatchResults(ctx context.Context, filters MatchFilters) ([]MatchRecord, error) {
	query, args := listMatchesQuery(filters)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list match results: %w", err)
	}
	defer rows.Close()

	var records []MatchRecord
	for rows.Next() {
		var record MatchRecord
		var tier string
		if err := rows.Scan(&record.ID, &record.CandidateID, &record.JobID, &record.Profile,
			&record.FinalScore, &record.ScorePercent, &tier, &record.Breakdown, &record.ComputedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match result: %w", err)
		}
		record.Tier = types.QualityTier(tier)
		records = append(records, record)
	}
	return records, nil
}

// DeleteMatchResult deletes a stored match result.
func (db *DB) DeleteMatchResult(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM match_results WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete match result: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("match result not found: %s", id)
	}
	return nil
}
