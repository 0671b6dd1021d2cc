package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nexten/smartmatch/internal/db"
	"github.com/nexten/smartmatch/internal/schemas"
)

// handleListMatches lists stored match results, best score first. Filters:
// candidate_id, job_id, profile, min_score, limit.
func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	if s.database == nil {
		s.errorFor(w, &ErrPersistenceDisabled{})
		return
	}

	filters := db.MatchFilters{
		CandidateID: r.URL.Query().Get("candidate_id"),
		JobID:       r.URL.Query().Get("job_id"),
		Profile:     r.URL.Query().Get("profile"),
	}
	if v := r.URL.Query().Get("min_score"); v != "" {
		score, err := strconv.ParseFloat(v, 64)
		if err != nil || score < 0 || score > 1 {
			s.errorFor(w, &ErrValidation{Field: "min_score", Message: "must be a number in [0,1]"})
			return
		}
		filters.MinScore = score
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			s.errorFor(w, &ErrValidation{Field: "limit", Message: "must be a positive integer"})
			return
		}
		filters.Limit = limit
	}

	records, err := s.database.ListMatchResults(r.Context(), filters)
	if err != nil {
		s.logger.Error("failed to list match results", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to list match results")
		return
	}

	views := make([]matchResultView, 0, len(records))
	for i := range records {
		views = append(views, viewFor(&records[i]))
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"matches": views, "count": len(views)})
}

// handleGetMatch retrieves one stored match result.
func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	if s.database == nil {
		s.errorFor(w, &ErrPersistenceDisabled{})
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorFor(w, &ErrValidation{Field: "id", Message: "invalid match ID format"})
		return
	}

	record, err := s.database.GetMatchResult(r.Context(), id)
	if err != nil {
		s.logger.Error("failed to get match result", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to get match result")
		return
	}
	if record == nil {
		s.errorFor(w, &ErrMatchNotFound{ID: id})
		return
	}

	s.jsonResponse(w, http.StatusOK, viewFor(record))
}

// handleDeleteMatch deletes one stored match result.
func (s *Server) handleDeleteMatch(w http.ResponseWriter, r *http.Request) {
	if s.database == nil {
		s.errorFor(w, &ErrPersistenceDisabled{})
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorFor(w, &ErrValidation{Field: "id", Message: "invalid match ID format"})
		return
	}

	if err := s.database.DeleteMatchResult(r.Context(), id); err != nil {
		s.errorFor(w, &ErrMatchNotFound{ID: id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handlePutCandidate upserts a stored candidate payload.
func (s *Server) handlePutCandidate(w http.ResponseWriter, r *http.Request) {
	s.putRecord(w, r, "candidate")
}

// handlePutJob upserts a stored job payload.
func (s *Server) handlePutJob(w http.ResponseWriter, r *http.Request) {
	s.putRecord(w, r, "job")
}

// handleGetCandidate retrieves a stored candidate payload.
func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	s.getRecord(w, r, "candidate")
}

// handleGetJob retrieves a stored job payload.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	s.getRecord(w, r, "job")
}

func (s *Server) putRecord(w http.ResponseWriter, r *http.Request, kind string) {
	if s.database == nil {
		s.errorFor(w, &ErrPersistenceDisabled{})
		return
	}
	id := r.PathValue("id")

	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	validate := schemas.ValidateCandidate
	if kind == "job" {
		validate = schemas.ValidateJob
	}
	payload, err := decodePayload(raw, validate)
	if err != nil {
		s.errorFor(w, err)
		return
	}

	if kind == "candidate" {
		err = s.database.SaveCandidateRecord(r.Context(), id, payload)
	} else {
		err = s.database.SaveJobRecord(r.Context(), id, payload)
	}
	if err != nil {
		s.logger.Error("failed to save record", zap.String("kind", kind), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to save "+kind)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"id": id, "status": "stored"})
}

func (s *Server) getRecord(w http.ResponseWriter, r *http.Request, kind string) {
	if s.database == nil {
		s.errorFor(w, &ErrPersistenceDisabled{})
		return
	}
	id := r.PathValue("id")

	var payload map[string]any
	var updatedAt time.Time
	if kind == "candidate" {
		record, err := s.database.GetCandidateRecord(r.Context(), id)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "failed to get "+kind)
			return
		}
		if record != nil {
			payload, updatedAt = record.Payload, record.UpdatedAt
		}
	} else {
		record, err := s.database.GetJobRecord(r.Context(), id)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "failed to get "+kind)
			return
		}
		if record != nil {
			payload, updatedAt = record.Payload, record.UpdatedAt
		}
	}

	if payload == nil {
		s.errorFor(w, &ErrRecordNotFound{Kind: kind, ID: id})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"id":         id,
		"payload":    payload,
		"updated_at": updatedAt,
	})
}

// viewFor converts a stored record to its response shape, re-inflating the
// JSONB breakdown.
func viewFor(record *db.MatchRecord) matchResultView {
	view := matchResultView{
		ID:           record.ID.String(),
		CandidateID:  record.CandidateID,
		JobID:        record.JobID,
		Profile:      record.Profile,
		FinalScore:   record.FinalScore,
		ScorePercent: record.ScorePercent,
		Tier:         record.Tier,
		ComputedAt:   record.ComputedAt.Format(time.RFC3339),
	}
	if len(record.Breakdown) > 0 {
		var breakdown any
		if err := json.Unmarshal(record.Breakdown, &breakdown); err == nil {
			view.Breakdown = breakdown
		}
	}
	return view
}
