package scoring

import (
	"context"

	"github.com/nexten/smartmatch/internal/types"
)

// CompensationScorer scores the overlap between the candidate's desired
// salary range and the job's offered range. Full score when the ranges
// overlap or the offer contains the expectation; below the desired minimum
// the score degrades with the relative gap.
type CompensationScorer struct{}

// Name implements Scorer.
func (s *CompensationScorer) Name() types.Criterion { return types.CriterionCompensation }

// Score implements Scorer.
func (s *CompensationScorer) Score(_ context.Context, candidate *types.CandidateProfile, job *types.JobOpening, _ *Params) (types.CriterionResult, error) {
	if candidate.DesiredSalary == nil {
		return types.CriterionResult{}, &MissingDataError{Field: "candidate.desired_salary"}
	}
	if job.Salary == nil {
		return types.CriterionResult{}, &MissingDataError{Field: "job.salary"}
	}

	desired, offered := candidate.DesiredSalary, job.Salary
	confidence := candidate.Confidence("desired_salary") * job.Confidence("salary")

	desiredMin := desired.Min
	if desiredMin == 0 {
		desiredMin = desired.Max
	}
	offeredMax := offered.Max
	if offeredMax == 0 {
		offeredMax = offered.Min
	}
	if desiredMin == 0 || offeredMax == 0 {
		return types.CriterionResult{}, &MissingDataError{Field: "salary_bounds"}
	}

	detail := map[string]any{
		"desired_min": desiredMin,
		"offered_max": offeredMax,
	}

	// Offer reaches the candidate's floor: ranges overlap.
	if offeredMax >= desiredMin {
		detail["reason"] = "ranges_overlap"
		return types.CriterionResult{Score: 1.0, Confidence: confidence, Detail: detail}, nil
	}

	// Offer below expectation: degrade with the relative gap. A 25% or
	// larger shortfall scores zero.
	gap := (desiredMin - offeredMax) / desiredMin
	score := clamp01(1.0 - gap*4)
	detail["reason"] = "offer_below_expectation"
	detail["gap_ratio"] = gap

	return types.CriterionResult{Score: score, Confidence: confidence, Detail: detail}, nil
}
