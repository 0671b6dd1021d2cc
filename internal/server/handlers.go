package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/nexten/smartmatch/internal/engine"
	"github.com/nexten/smartmatch/internal/schemas"
	"github.com/nexten/smartmatch/internal/scoring"
	"github.com/nexten/smartmatch/internal/types"
)

// MatchRequest represents the request body for /match. The candidate and
// job can be supplied inline or, when persistence is configured, referenced
// by stored record ID.
type MatchRequest struct {
	Candidate   json.RawMessage `json:"candidate,omitempty"`
	Job         json.RawMessage `json:"job,omitempty"`
	CandidateID string          `json:"candidate_id,omitempty"`
	JobID       string          `json:"job_id,omitempty"`
	Params      *scoring.Params `json:"params,omitempty"`
	Persist     bool            `json:"persist,omitempty"`
}

// BatchRequest represents the request body for /match/batch.
type BatchRequest struct {
	Candidates []json.RawMessage `json:"candidates"`
	Jobs       []json.RawMessage `json:"jobs"`
	Params     *scoring.Params   `json:"params,omitempty"`
	Parallel   int               `json:"parallel,omitempty"`
}

// BatchResponse represents the response for /match/batch.
type BatchResponse struct {
	Items []engine.BatchItem `json:"items"`
	Count int                `json:"count"`
}

// AlgorithmsResponse represents the response for /algorithms.
type AlgorithmsResponse struct {
	Algorithms []string `json:"algorithms"`
	Default    string   `json:"default"`
}

// handleMatch computes one candidate/job match.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	candidate, err := s.resolveCandidate(r, &req)
	if err != nil {
		s.errorFor(w, err)
		return
	}
	job, err := s.resolveJob(r, &req)
	if err != nil {
		s.errorFor(w, err)
		return
	}

	params := s.effectiveParams(req.Params)

	result, err := s.engine.Match(r.Context(), candidate, job, params)
	if err != nil {
		s.errorFor(w, err)
		return
	}

	if req.Persist {
		if s.database == nil {
			s.errorFor(w, &ErrPersistenceDisabled{})
			return
		}
		candidateID := recordID(req.CandidateID, candidate)
		jobID := recordID(req.JobID, job)
		if err := s.database.InsertMatchResult(r.Context(), candidateID, jobID, result); err != nil {
			s.logger.Error("failed to persist match result", zap.Error(err))
			s.errorResponse(w, http.StatusInternalServerError, "failed to persist match result")
			return
		}
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleMatchBatch computes the full cross product of the supplied
// candidates and jobs.
func (s *Server) handleMatchBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Candidates) == 0 || len(req.Jobs) == 0 {
		s.errorFor(w, &ErrValidation{Field: "candidates/jobs", Message: "both lists must be non-empty"})
		return
	}

	// The middleware charged one token; charge the rest of the pair cost
	// now that the batch size is known.
	pairs := len(req.Candidates) * len(req.Jobs)
	if pairs > 1 {
		if allowed, info := s.rateLimiter.Allow(s.extractClientID(r), pairs-1); !allowed {
			s.rateLimitResponse(w, info)
			return
		}
	}

	candidates, err := decodePayloads(req.Candidates, schemas.ValidateCandidate)
	if err != nil {
		s.errorFor(w, err)
		return
	}
	jobs, err := decodePayloads(req.Jobs, schemas.ValidateJob)
	if err != nil {
		s.errorFor(w, err)
		return
	}

	parallel := req.Parallel
	if parallel <= 0 {
		parallel = s.parallelism
	}

	items, err := s.engine.MatchBatch(r.Context(), candidates, jobs, s.effectiveParams(req.Params), parallel)
	if err != nil {
		s.errorFor(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, BatchResponse{Items: items, Count: len(items)})
}

// handleAlgorithms lists the available weight profiles.
func (s *Server) handleAlgorithms(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, AlgorithmsResponse{
		Algorithms: s.catalog.Names(),
		Default:    s.defaultProfile,
	})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// resolveCandidate returns the candidate payload from either the inline
// document or the referenced stored record.
func (s *Server) resolveCandidate(r *http.Request, req *MatchRequest) (map[string]any, error) {
	if len(req.Candidate) > 0 {
		return decodePayload(req.Candidate, schemas.ValidateCandidate)
	}
	if req.CandidateID == "" {
		return nil, &ErrValidation{Field: "candidate", Message: "candidate or candidate_id is required"}
	}
	if s.database == nil {
		return nil, &ErrPersistenceDisabled{}
	}
	record, err := s.database.GetCandidateRecord(r.Context(), req.CandidateID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, &ErrRecordNotFound{Kind: "candidate", ID: req.CandidateID}
	}
	return record.Payload, nil
}

// resolveJob is the job-side counterpart of resolveCandidate.
func (s *Server) resolveJob(r *http.Request, req *MatchRequest) (map[string]any, error) {
	if len(req.Job) > 0 {
		return decodePayload(req.Job, schemas.ValidateJob)
	}
	if req.JobID == "" {
		return nil, &ErrValidation{Field: "job", Message: "job or job_id is required"}
	}
	if s.database == nil {
		return nil, &ErrPersistenceDisabled{}
	}
	record, err := s.database.GetJobRecord(r.Context(), req.JobID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, &ErrRecordNotFound{Kind: "job", ID: req.JobID}
	}
	return record.Payload, nil
}

// effectiveParams applies the server's default profile to requests that
// name none.
func (s *Server) effectiveParams(params *scoring.Params) *scoring.Params {
	if params == nil {
		params = scoring.DefaultParams()
	}
	if params.Profile == "" {
		params.Profile = s.defaultProfile
	}
	return params
}

// decodePayload schema-validates one raw JSON document and unmarshals it.
func decodePayload(raw json.RawMessage, validate func([]byte) error) (map[string]any, error) {
	if err := validate(raw); err != nil {
		return nil, err
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &ErrValidation{Field: "(root)", Message: err.Error()}
	}
	return payload, nil
}

// decodePayloads validates and unmarshals a list of raw documents.
func decodePayloads(raws []json.RawMessage, validate func([]byte) error) ([]map[string]any, error) {
	payloads := make([]map[string]any, 0, len(raws))
	for _, raw := range raws {
		payload, err := decodePayload(raw, validate)
		if err != nil {
			return nil, err
		}
		payloads = append(payloads, payload)
	}
	return payloads, nil
}

// recordID picks the persistence identifier for a payload: the explicit
// request ID when present, otherwise the payload's own id field.
func recordID(explicit string, payload map[string]any) string {
	if explicit != "" {
		return explicit
	}
	if id, ok := payload["id"].(string); ok {
		return id
	}
	return ""
}

// matchResultView is a lightweight JSON view of a stored match, with the
// breakdown re-inflated from JSONB.
type matchResultView struct {
	ID           string            `json:"id"`
	CandidateID  string            `json:"candidate_id"`
	JobID        string            `json:"job_id"`
	Profile      string            `json:"profile"`
	FinalScore   float64           `json:"final_score"`
	ScorePercent int               `json:"score_percent"`
	Tier         types.QualityTier `json:"quality_tier"`
	Breakdown    any               `json:"breakdown,omitempty"`
	ComputedAt   string            `json:"computed_at"`
}
