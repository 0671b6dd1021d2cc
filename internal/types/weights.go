// Package types provides type definitions for structured data used throughout the smartmatch engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"math"
	"sort"
)

// WeightSumTolerance is the accepted deviation of a weight vector's sum
// from 1.0.
const WeightSumTolerance = 1e-3

// WeightVector maps each criterion to its share of the final score.
// A valid vector sums to 1.0 within WeightSumTolerance.
type WeightVector struct {
	Weights map[Criterion]float64 `json:"weights"`
	// IsAdjusted is true when the vector was derived from a base profile by
	// motivation boosting, false for an unmodified base profile.
	IsAdjusted bool `json:"is_adjusted"`
	// Profile names the base weight profile this vector started from.
	Profile string `json:"profile,omitempty"`
}

// Sum returns the total of all weights. Addition runs in sorted criterion
// order so the result is bit-identical across calls regardless of map
// iteration order.
func (w WeightVector) Sum() float64 {
	criteria := make([]Criterion, 0, len(w.Weights))
	for c := range w.Weights {
		criteria = append(criteria, c)
	}
	sort.Slice(criteria, func(i, j int) bool { return criteria[i] < criteria[j] })

	total := 0.0
	for _, c := range criteria {
		total += w.Weights[c]
	}
	return total
}

// Validate checks that the vector sums to 1.0 within tolerance and holds no
// negative weight.
func (w WeightVector) Validate() error {
	if len(w.Weights) == 0 {
		return fmt.Errorf("weight vector is empty")
	}
	for c, v := range w.Weights {
		if v < 0 {
			return fmt.Errorf("negative weight for %s: %f", c, v)
		}
	}
	if sum := w.Sum(); math.Abs(sum-1.0) > WeightSumTolerance {
		return fmt.Errorf("weights sum to %.4f, must sum to 1.0", sum)
	}
	return nil
}

// Normalize returns a copy of the vector scaled so its weights sum to 1.0.
// A zero-sum vector is returned unchanged.
func (w WeightVector) Normalize() WeightVector {
	sum := w.Sum()
	if sum == 0 {
		return w.Clone()
	}
	out := w.Clone()
	for c, v := range out.Weights {
		out.Weights[c] = v / sum
	}
	return out
}

// Clone returns a deep copy of the vector.
func (w WeightVector) Clone() WeightVector {
	weights := make(map[Criterion]float64, len(w.Weights))
	for c, v := range w.Weights {
		weights[c] = v
	}
	return WeightVector{Weights: weights, IsAdjusted: w.IsAdjusted, Profile: w.Profile}
}

// Weight returns the weight assigned to a criterion, zero if absent.
func (w WeightVector) Weight(c Criterion) float64 {
	return w.Weights[c]
}
