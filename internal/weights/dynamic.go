package weights

import "github.com/nexten/smartmatch/internal/types"

// ComputeWeights derives a per-candidate weight vector from a base vector
// and the candidate's ordered motivations (at most three are significant).
//
// For each known motivation, every criterion it maps to receives an additive
// boost of rate×weight/len(mapped criteria), where rate depends on the
// motivation's rank (8%, 5%, 3%). Boosts compound on the current weight, in
// motivation order. Unknown motivations are skipped without error. After all
// boosts the vector is renormalized so its weights sum to 1.0.
//
// An empty or entirely-unknown motivation list returns the base vector
// unchanged with IsAdjusted=false.
func ComputeWeights(base types.WeightVector, motivations []string) types.WeightVector {
	return ComputeWeightsRates(base, motivations, nil)
}

// ComputeWeightsRates is ComputeWeights with caller-supplied per-rank boost
// rates; nil or empty rates use the built-in ladder.
func ComputeWeightsRates(base types.WeightVector, motivations []string, rates []float64) types.WeightVector {
	if len(rates) == 0 {
		rates = boostRates
	}
	adjusted := base.Clone()
	boosted := false

	for rank, motivation := range motivations {
		if rank >= len(rates) {
			break
		}
		criteria := CriteriaFor(motivation)
		if len(criteria) == 0 {
			continue
		}
		rate := rates[rank] / float64(len(criteria))
		for _, criterion := range criteria {
			current, present := adjusted.Weights[criterion]
			if !present {
				// Criterion not in this profile (e.g. the v1 table);
				// the boost share for it is simply lost.
				continue
			}
			adjusted.Weights[criterion] = current + current*rate
			boosted = true
		}
	}

	if !boosted {
		base.IsAdjusted = false
		return base
	}

	adjusted = adjusted.Normalize()
	adjusted.IsAdjusted = true
	return adjusted
}
