package weights

import "github.com/nexten/smartmatch/internal/types"

// motivationCriteria is the declarative many-to-many mapping from a
// candidate motivation to the criteria it boosts. A motivation mapping to
// several criteria has its boost split evenly across them. Motivations
// absent from this table are ignored by the weight engine.
var motivationCriteria = map[string][]types.Criterion{
	"compensation":        {types.CriterionCompensation},
	"career_growth":       {types.CriterionSkills, types.CriterionCompanySize, types.CriterionSector},
	"technical_challenge": {types.CriterionSkills},
	"work_life_balance":   {types.CriterionEnvironment, types.CriterionLocation},
	"job_security":        {types.CriterionContractType, types.CriterionCompanySize},
	"team_culture":        {types.CriterionEnvironment},
	"remote_work":         {types.CriterionLocation, types.CriterionEnvironment},
	"impact":              {types.CriterionSector, types.CriterionMotivation},
	"autonomy":            {types.CriterionEnvironment, types.CriterionCompanySize},
	"learning":            {types.CriterionSkills, types.CriterionMotivation},
}

// boostRates are the per-rank boost percentages: the 1st-ranked motivation
// adds 8% of a criterion's current weight, the 2nd 5%, the 3rd 3%.
var boostRates = []float64{0.08, 0.05, 0.03}

// CriteriaFor returns the criteria boosted by a motivation, nil for unknown
// motivations.
func CriteriaFor(motivation string) []types.Criterion {
	return motivationCriteria[motivation]
}

// KnownMotivations lists the motivations the engine reacts to.
func KnownMotivations() []string {
	names := make([]string, 0, len(motivationCriteria))
	for name := range motivationCriteria {
		names = append(names, name)
	}
	return names
}
