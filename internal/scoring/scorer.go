package scoring

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/nexten/smartmatch/internal/geo"
	"github.com/nexten/smartmatch/internal/types"
)

// Scorer evaluates one criterion for a candidate/job pair. Implementations
// are pure with respect to their inputs: same profiles and params yield the
// same result, external service availability aside.
type Scorer interface {
	Name() types.Criterion
	Score(ctx context.Context, candidate *types.CandidateProfile, job *types.JobOpening, params *Params) (types.CriterionResult, error)
}

// Params are the caller-tunable knobs of a match computation. The zero
// value is not usable; start from DefaultParams.
type Params struct {
	// Profile names the base weight table to start from. Resolved against
	// the weight catalog at match time.
	Profile string `json:"profile,omitempty"`

	// RequiredSkillWeight and OptionalSkillWeight scale a job skill's
	// importance in the skills scorer depending on its required flag.
	RequiredSkillWeight float64 `json:"required_skill_weight" validate:"gt=0,lte=2"`
	OptionalSkillWeight float64 `json:"optional_skill_weight" validate:"gte=0,lte=2"`

	// BoostRates override the per-rank motivation boost percentages.
	// Empty keeps the built-in 8%/5%/3%.
	BoostRates []float64 `json:"boost_rates,omitempty" validate:"omitempty,max=3,dive,gte=0,lte=0.5"`

	// MaxCommuteKm is the distance at which the location score reaches
	// zero when computed from distance data.
	MaxCommuteKm float64 `json:"max_commute_km" validate:"gt=0"`
}

// DefaultParams returns the documented defaults.
func DefaultParams() *Params {
	return &Params{
		RequiredSkillWeight: 1.0,
		OptionalSkillWeight: 0.5,
		MaxCommuteKm:        100,
	}
}

var validate = validator.New()

// Validate checks parameter ranges. Unknown profile names surface here
// rather than mid-computation.
func (p *Params) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}
	return nil
}

// Registry holds the scorers participating in a match computation, keyed by
// criterion. It is assembled at startup and read-only afterwards.
type Registry struct {
	scorers map[types.Criterion]Scorer
	order   []types.Criterion
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{scorers: map[types.Criterion]Scorer{}}
}

// Register adds a scorer, rejecting duplicate criteria.
func (r *Registry) Register(s Scorer) error {
	name := s.Name()
	if _, exists := r.scorers[name]; exists {
		return fmt.Errorf("scorer already registered for criterion %s", name)
	}
	r.scorers[name] = s
	r.order = append(r.order, name)
	return nil
}

// Scorers returns the registered scorers in registration order.
func (r *Registry) Scorers() []Scorer {
	out := make([]Scorer, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.scorers[name])
	}
	return out
}

// Criteria returns the registered criterion names in registration order.
func (r *Registry) Criteria() []types.Criterion {
	out := make([]types.Criterion, len(r.order))
	copy(out, r.order)
	return out
}

// DefaultRegistry assembles the full 11-criterion scorer set. The distancer
// may be nil, in which case the location scorer skips its external tier.
func DefaultRegistry(distancer geo.Distancer) *Registry {
	r := NewRegistry()
	for _, s := range []Scorer{
		&SkillsScorer{},
		&ExperienceScorer{},
		&LocationScorer{Distancer: distancer},
		&CompensationScorer{},
		&MotivationScorer{},
		&CompanySizeScorer{},
		&EnvironmentScorer{},
		&SectorScorer{},
		&AvailabilityScorer{},
		&ContractTypeScorer{},
		&AntiPatternScorer{},
	} {
		// Register only fails on duplicates, which a fixed list cannot
		// produce.
		_ = r.Register(s)
	}
	return r
}

// clamp01 bounds a score to the canonical [0,1] range.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
