package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// SaveCandidateRecord upserts a raw candidate payload.
func (db *DB) SaveCandidateRecord(ctx context.Context, id string, payload map[string]any) error {
	return db.saveRecord(ctx, "candidates", id, payload)
}

// SaveJobRecord upserts a raw job payload.
func (db *DB) SaveJobRecord(ctx context.Context, id string, payload map[string]any) error {
	return db.saveRecord(ctx, "jobs", id, payload)
}

// GetCandidateRecord retrieves a stored candidate payload. Returns nil when
// no row exists.
func (db *DB) GetCandidateRecord(ctx context.Context, id string) (*CandidateRecord, error) {
	payload, updatedAt, err := db.getRecord(ctx, "candidates", id)
	if err != nil || payload == nil {
		return nil, err
	}
	record := &CandidateRecord{ID: id, Payload: payload}
	record.UpdatedAt = updatedAt
	return record, nil
}

// GetJobRecord retrieves a stored job payload. Returns nil when no row
// exists.
func (db *DB) GetJobRecord(ctx context.Context, id string) (*JobRecord, error) {
	payload, updatedAt, err := db.getRecord(ctx, "jobs", id)
	if err != nil || payload == nil {
		return nil, err
	}
	record := &JobRecord{ID: id, Payload: payload}
	record.UpdatedAt = updatedAt
	return record, nil
}

func (db *DB) saveRecord(ctx context.Context, table, id string, payload map[string]any) error {
	jsonBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", table, err)
	}

	_, err = db.pool.Exec(ctx,
		// table is one of the two fixed names above, never user input
		fmt.Sprintf(`INSERT INTO %s (id, payload, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (id) DO UPDATE SET payload = $2, updated_at = NOW()`, table),
		id, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save %s record %s: %w", table, id, err)
	}
	return nil
}

func (db *DB) getRecord(ctx context.Context, table, id string) (map[string]any, time.Time, error) {
	var jsonBytes []byte
	var updatedAt time.Time
	err := db.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT payload, updated_at FROM %s WHERE id = $1`, table),
		id,
	).Scan(&jsonBytes, &updatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, updatedAt, nil
		}
		return nil, updatedAt, fmt.Errorf("failed to get %s record %s: %w", table, id, err)
	}

	var payload map[string]any
	if err := json.Unmarshal(jsonBytes, &payload); err != nil {
		return nil, updatedAt, fmt.Errorf("failed to parse stored %s payload %s: %w", table, id, err)
	}
	return payload, updatedAt, nil
}
