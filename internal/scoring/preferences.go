package scoring

import (
	"context"

	"github.com/nexten/smartmatch/internal/types"
	"github.com/nexten/smartmatch/internal/weights"
)

// The categorical preference scorers below share one shape: compare a
// candidate preference with the job's corresponding attribute and score
// through a small match/partial/mismatch table.

// MotivationScorer scores how well the job serves the candidate's stated
// motivations: the share of significant motivations whose boosted criteria
// the job can plausibly satisfy, weighted by motivation rank.
type MotivationScorer struct{}

// Name implements Scorer.
func (s *MotivationScorer) Name() types.Criterion { return types.CriterionMotivation }

// Score implements Scorer.
func (s *MotivationScorer) Score(_ context.Context, candidate *types.CandidateProfile, job *types.JobOpening, _ *Params) (types.CriterionResult, error) {
	if len(candidate.Motivations) == 0 {
		return types.CriterionResult{}, &MissingDataError{Field: "candidate.motivations"}
	}

	// Rank weights mirror the boost ladder: earlier motivations matter more.
	rankWeights := []float64{0.5, 0.3, 0.2}
	total, satisfied := 0.0, 0.0
	served := make([]string, 0, len(candidate.Motivations))

	for rank, motivation := range candidate.Motivations {
		if rank >= len(rankWeights) {
			break
		}
		w := rankWeights[rank]
		total += w
		if motivationServed(motivation, job) {
			satisfied += w
			served = append(served, motivation)
		}
	}

	score := 0.0
	if total > 0 {
		score = satisfied / total
	}

	return types.CriterionResult{
		Score:      clamp01(score),
		Confidence: candidate.Confidence("motivations"),
		Detail: map[string]any{
			"motivations":       candidate.Motivations,
			"served_motivations": served,
		},
	}, nil
}

// motivationServed decides whether a job attribute plausibly satisfies one
// motivation. Unknown motivations count as unserved rather than erroring.
func motivationServed(motivation string, job *types.JobOpening) bool {
	if len(weights.CriteriaFor(motivation)) == 0 {
		return false
	}
	switch motivation {
	case "compensation":
		return job.Salary != nil
	case "remote_work":
		return job.RemoteMode == types.RemoteFull || job.RemoteMode == types.RemoteHybrid
	case "work_life_balance":
		return job.RemoteMode == types.RemoteFull || job.RemoteMode == types.RemoteHybrid
	case "job_security":
		return job.ContractType == "cdi" || job.ContractType == "permanent"
	case "career_growth", "learning", "technical_challenge", "team_culture", "impact", "autonomy":
		// Satisfiable by any concrete company attributes; score on presence
		// of the related field.
		return job.CompanySize != "" || job.Environment != "" || job.Sector != ""
	default:
		return false
	}
}

// CompanySizeScorer compares preferred and actual company size on an
// adjacency ladder: exact 1.0, adjacent 0.6, otherwise 0.3.
type CompanySizeScorer struct{}

// Name implements Scorer.
func (s *CompanySizeScorer) Name() types.Criterion { return types.CriterionCompanySize }

// sizeOrder ranks company sizes so "adjacent" preferences score partial
// credit.
var sizeOrder = map[string]int{
	"startup": 0, "start_up": 0,
	"small": 1, "sme": 1, "pme": 1,
	"medium": 2, "mid_size": 2, "eti": 2,
	"large": 3, "enterprise": 3, "group": 3, "grand_groupe": 3,
}

// Score implements Scorer.
func (s *CompanySizeScorer) Score(_ context.Context, candidate *types.CandidateProfile, job *types.JobOpening, _ *Params) (types.CriterionResult, error) {
	if candidate.PreferredSize == "" {
		return types.CriterionResult{}, &MissingDataError{Field: "candidate.preferred_company_size"}
	}
	if job.CompanySize == "" {
		return types.CriterionResult{}, &MissingDataError{Field: "job.company_size"}
	}

	detail := map[string]any{
		"preferred": candidate.PreferredSize,
		"actual":    job.CompanySize,
	}

	if candidate.PreferredSize == job.CompanySize {
		detail["reason"] = "exact_match"
		return types.CriterionResult{Score: 1.0, Confidence: 1.0, Detail: detail}, nil
	}

	prefRank, prefKnown := sizeOrder[candidate.PreferredSize]
	jobRank, jobKnown := sizeOrder[job.CompanySize]
	if prefKnown && jobKnown {
		if prefRank == jobRank {
			detail["reason"] = "equivalent_category"
			return types.CriterionResult{Score: 1.0, Confidence: 1.0, Detail: detail}, nil
		}
		if abs(prefRank-jobRank) == 1 {
			detail["reason"] = "adjacent_category"
			return types.CriterionResult{Score: 0.6, Confidence: 1.0, Detail: detail}, nil
		}
	}

	detail["reason"] = "category_mismatch"
	return types.CriterionResult{Score: 0.3, Confidence: 1.0, Detail: detail}, nil
}

// EnvironmentScorer compares preferred and actual work environment.
type EnvironmentScorer struct{}

// Name implements Scorer.
func (s *EnvironmentScorer) Name() types.Criterion { return types.CriterionEnvironment }

// Score implements Scorer.
func (s *EnvironmentScorer) Score(_ context.Context, candidate *types.CandidateProfile, job *types.JobOpening, _ *Params) (types.CriterionResult, error) {
	if candidate.PreferredEnv == "" {
		return types.CriterionResult{}, &MissingDataError{Field: "candidate.preferred_environment"}
	}
	if job.Environment == "" {
		return types.CriterionResult{}, &MissingDataError{Field: "job.environment"}
	}

	detail := map[string]any{"preferred": candidate.PreferredEnv, "actual": job.Environment}
	if candidate.PreferredEnv == job.Environment {
		detail["reason"] = "exact_match"
		return types.CriterionResult{Score: 1.0, Confidence: 1.0, Detail: detail}, nil
	}
	detail["reason"] = "mismatch"
	return types.CriterionResult{Score: 0.4, Confidence: 1.0, Detail: detail}, nil
}

// SectorScorer checks the job's sector against the candidate's targets.
// Target hit 1.0; no stated targets would have been MissingData; a sector
// outside the targets scores 0.4 (interest elsewhere, not a conflict;
// conflicts are the anti-pattern scorer's concern).
type SectorScorer struct{}

// Name implements Scorer.
func (s *SectorScorer) Name() types.Criterion { return types.CriterionSector }

// Score implements Scorer.
func (s *SectorScorer) Score(_ context.Context, candidate *types.CandidateProfile, job *types.JobOpening, _ *Params) (types.CriterionResult, error) {
	if job.Sector == "" {
		return types.CriterionResult{}, &MissingDataError{Field: "job.sector"}
	}
	if len(candidate.TargetSectors) == 0 {
		return types.CriterionResult{}, &MissingDataError{Field: "candidate.target_sectors"}
	}

	detail := map[string]any{"job_sector": job.Sector, "target_sectors": candidate.TargetSectors}
	for _, target := range candidate.TargetSectors {
		if target == job.Sector {
			detail["reason"] = "target_sector"
			return types.CriterionResult{Score: 1.0, Confidence: 1.0, Detail: detail}, nil
		}
	}
	detail["reason"] = "outside_targets"
	return types.CriterionResult{Score: 0.4, Confidence: 1.0, Detail: detail}, nil
}

// AvailabilityScorer compares the candidate's availability date with the
// job's deadline or start date. Available in time 1.0; late availability
// decays with the delay, floored at 0.2 inside three months.
type AvailabilityScorer struct{}

// Name implements Scorer.
func (s *AvailabilityScorer) Name() types.Criterion { return types.CriterionAvailability }

// Score implements Scorer.
func (s *AvailabilityScorer) Score(_ context.Context, candidate *types.CandidateProfile, job *types.JobOpening, _ *Params) (types.CriterionResult, error) {
	if candidate.AvailableFrom == nil {
		return types.CriterionResult{}, &MissingDataError{Field: "candidate.available_from"}
	}
	if job.Deadline == nil {
		// No deadline stated: any availability works.
		return types.CriterionResult{
			Score:      1.0,
			Confidence: 0.9,
			Detail:     map[string]any{"reason": "no_deadline"},
		}, nil
	}

	detail := map[string]any{
		"available_from": candidate.AvailableFrom.Format("2006-01-02"),
		"deadline":       job.Deadline.Format("2006-01-02"),
	}

	if !candidate.AvailableFrom.After(*job.Deadline) {
		detail["reason"] = "available_in_time"
		return types.CriterionResult{Score: 1.0, Confidence: 1.0, Detail: detail}, nil
	}

	lateDays := candidate.AvailableFrom.Sub(*job.Deadline).Hours() / 24
	detail["reason"] = "available_late"
	detail["late_days"] = lateDays

	// Linear decay over 90 days, floored at 0.2; more than a quarter late
	// scores zero.
	score := 0.0
	if lateDays <= 90 {
		score = 1.0 - lateDays/90
		if score < 0.2 {
			score = 0.2
		}
	}

	return types.CriterionResult{Score: clamp01(score), Confidence: 1.0, Detail: detail}, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
