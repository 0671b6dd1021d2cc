package scoring

import (
	"context"

	"github.com/nexten/smartmatch/internal/geo"
	"github.com/nexten/smartmatch/internal/types"
)

// Confidence levels per location resolution tier.
const (
	locationConfidenceExternal  = 0.95
	locationConfidenceHaversine = 0.80
	locationConfidenceRegion    = 0.70
)

// LocationScorer scores geographic compatibility through a ladder of
// resolution tiers: remote policy, exact city match, relocation willingness,
// external distance service, coordinate distance, region heuristic. Each
// tier that cannot resolve hands off to the next; only a fully unresolvable
// pair scores zero.
type LocationScorer struct {
	// Distancer is the external distance collaborator; nil skips that tier.
	Distancer geo.Distancer
}

// Name implements Scorer.
func (s *LocationScorer) Name() types.Criterion { return types.CriterionLocation }

// Score implements Scorer.
func (s *LocationScorer) Score(ctx context.Context, candidate *types.CandidateProfile, job *types.JobOpening, params *Params) (types.CriterionResult, error) {
	// A 100%-remote job scores full marks regardless of any distance, with
	// zero computed travel time.
	if job.FullyRemote() {
		return types.CriterionResult{
			Score:      1.0,
			Confidence: 1.0,
			Detail: map[string]any{
				"reason":              "job_full_remote",
				"travel_time_minutes": 0.0,
			},
		}, nil
	}

	if candidate.Location == nil && job.Location == nil {
		return types.CriterionResult{}, &MissingDataError{Field: "location"}
	}
	if candidate.Location != nil && candidate.Location.RemoteOK && job.RemoteMode == types.RemoteHybrid {
		// Hybrid job with a remote-willing candidate: strong but not
		// perfect, office days still require presence.
		if result, ok := s.proximity(ctx, candidate, job, params); ok {
			// Distance data available: blend presence requirements in.
			return result, nil
		}
		return types.CriterionResult{
			Score:      0.85,
			Confidence: locationConfidenceRegion,
			Detail:     map[string]any{"reason": "hybrid_remote_candidate"},
		}, nil
	}

	if candidate.Location == nil {
		return types.CriterionResult{}, &MissingDataError{Field: "candidate.location"}
	}
	if job.Location == nil {
		return types.CriterionResult{}, &MissingDataError{Field: "job.location"}
	}

	// Exact city match.
	if candidate.Location.City != "" && candidate.Location.City == job.Location.City {
		return types.CriterionResult{
			Score:      1.0,
			Confidence: 1.0,
			Detail:     map[string]any{"reason": "same_city", "city": job.Location.City},
		}, nil
	}

	// Declared relocation willingness.
	if candidate.Location.WillRelocate {
		return types.CriterionResult{
			Score:      0.8,
			Confidence: 1.0,
			Detail:     map[string]any{"reason": "willing_to_relocate"},
		}, nil
	}

	if result, ok := s.proximity(ctx, candidate, job, params); ok {
		return result, nil
	}

	// Region heuristic: same declared region keeps a moderate score.
	if candidate.Location.Region != "" && candidate.Location.Region == job.Location.Region {
		return types.CriterionResult{
			Score:      0.6,
			Confidence: locationConfidenceRegion,
			Detail:     map[string]any{"reason": "same_region", "region": job.Location.Region},
		}, nil
	}

	return types.CriterionResult{
		Score:      0,
		Confidence: locationConfidenceRegion,
		Detail:     map[string]any{"reason": "location_mismatch"},
	}, nil
}

// proximity resolves a distance-based score via the external service first,
// then coordinate distance. Returns ok=false when neither tier has the data
// to answer.
func (s *LocationScorer) proximity(ctx context.Context, candidate *types.CandidateProfile, job *types.JobOpening, params *Params) (types.CriterionResult, bool) {
	candLoc, jobLoc := candidate.Location, job.Location
	if candLoc == nil || jobLoc == nil || candLoc.Lat == nil || candLoc.Lng == nil || jobLoc.Lat == nil || jobLoc.Lng == nil {
		return types.CriterionResult{}, false
	}

	origin := geo.Point{Lat: *candLoc.Lat, Lng: *candLoc.Lng}
	destination := geo.Point{Lat: *jobLoc.Lat, Lng: *jobLoc.Lng}

	// External service tier.
	if s.Distancer != nil {
		if result, err := s.Distancer.Distance(ctx, origin, destination, geo.ModeDriving); err == nil {
			return types.CriterionResult{
				Score:      distanceScore(result.DistanceKm, params.MaxCommuteKm),
				Confidence: locationConfidenceExternal,
				Detail: map[string]any{
					"reason":              "distance_service",
					"distance_km":         result.DistanceKm,
					"travel_time_minutes": result.TravelTimeMinutes,
				},
			}, true
		}
		// Service failure or timeout: fall through to the coordinate tier.
	}

	km := geo.Haversine(origin, destination)
	return types.CriterionResult{
		Score:      distanceScore(km, params.MaxCommuteKm),
		Confidence: locationConfidenceHaversine,
		Detail: map[string]any{
			"reason":      "coordinate_distance",
			"distance_km": km,
		},
	}, true
}

// distanceScore decays linearly from 1.0 at zero distance to 0.0 at
// maxKm.
func distanceScore(km, maxKm float64) float64 {
	if maxKm <= 0 {
		maxKm = 100
	}
	return clamp01(1.0 - km/maxKm)
}
