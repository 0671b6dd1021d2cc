// Package weights owns the base weight profiles and the motivation-driven
// dynamic weight adjustment.
package weights

import (
	"fmt"
	"sort"

	"github.com/nexten/smartmatch/internal/types"
)

// Profile names. Each historical engine version survives as a named weight
// table behind the single aggregation path.
const (
	ProfileSmartMatch = "smartmatch"
	ProfileV1         = "v1"
	ProfileV2         = "v2"

	// DefaultProfile is used when a match call names no profile.
	DefaultProfile = ProfileSmartMatch
)

// Catalog holds the named base weight tables available to the engine. It is
// assembled once at startup (built-ins plus configuration files) and treated
// as read-only afterwards.
type Catalog struct {
	profiles map[string]map[types.Criterion]float64
}

// NewCatalog returns a catalog seeded with the built-in profiles.
func NewCatalog() *Catalog {
	c := &Catalog{profiles: map[string]map[types.Criterion]float64{}}

	// The canonical 11-criterion table.
	c.profiles[ProfileSmartMatch] = map[types.Criterion]float64{
		types.CriterionSkills:       0.25,
		types.CriterionExperience:   0.15,
		types.CriterionLocation:     0.15,
		types.CriterionCompensation: 0.10,
		types.CriterionMotivation:   0.08,
		types.CriterionSector:       0.07,
		types.CriterionCompanySize:  0.05,
		types.CriterionEnvironment:  0.05,
		types.CriterionAvailability: 0.04,
		types.CriterionContractType: 0.04,
		types.CriterionAntiPattern:  0.02,
	}

	// First-generation table: four criteria only.
	c.profiles[ProfileV1] = map[types.Criterion]float64{
		types.CriterionSkills:       0.40,
		types.CriterionExperience:   0.25,
		types.CriterionLocation:     0.20,
		types.CriterionCompensation: 0.15,
	}

	// Second generation added preference criteria with a heavier skills
	// share than the canonical table.
	c.profiles[ProfileV2] = map[types.Criterion]float64{
		types.CriterionSkills:       0.30,
		types.CriterionExperience:   0.20,
		types.CriterionLocation:     0.15,
		types.CriterionCompensation: 0.10,
		types.CriterionMotivation:   0.10,
		types.CriterionSector:       0.05,
		types.CriterionEnvironment:  0.05,
		types.CriterionContractType: 0.05,
	}

	return c
}

// Base returns the named base weight profile. The returned vector is a copy;
// callers may mutate it freely.
func (c *Catalog) Base(profile string) (types.WeightVector, error) {
	if profile == "" {
		profile = DefaultProfile
	}
	table, ok := c.profiles[profile]
	if !ok {
		return types.WeightVector{}, &UnknownProfileError{Name: profile}
	}
	weights := make(map[types.Criterion]float64, len(table))
	for criterion, w := range table {
		weights[criterion] = w
	}
	return types.WeightVector{Weights: weights, Profile: profile}, nil
}

// Register adds or replaces a named profile, validating the sum invariant.
// Called during catalog assembly only.
func (c *Catalog) Register(name string, table map[types.Criterion]float64) error {
	if name == "" {
		return fmt.Errorf("profile name is empty")
	}
	v := types.WeightVector{Weights: table, Profile: name}
	if err := v.Validate(); err != nil {
		return fmt.Errorf("profile %q: %w", name, err)
	}
	copied := make(map[types.Criterion]float64, len(table))
	for criterion, w := range table {
		copied[criterion] = w
	}
	c.profiles[name] = copied
	return nil
}

// Names lists the available profile names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.profiles))
	for name := range c.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
