package walks

import (
	"math"
	"math/rand"

	"github.com/vertex-lab/meritrank/pkg/models"
)

// usable returns whether a weight can carry transition mass.
func usable(weight models.Weight) bool {
	w := float64(weight)
	return w > 0 && !math.IsInf(w, 1) && !math.IsNaN(w)
}

/*
WeightedChoice picks an index i with probability weights[i] / total, where
total is the sum of the usable (strictly positive, finite) entries.

It is a total function over any input vector: instead of relying on
floating-point edge cases, a vector with no usable mass (empty, all-zero,
all-negative, NaN, or infinite) fails with ErrRandomChoice.
*/
func WeightedChoice(weights []models.Weight, rng *rand.Rand) (int, error) {

	var total float64
	for _, weight := range weights {
		if usable(weight) {
			total += float64(weight)
		}
	}

	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 1) {
		return -1, models.ErrRandomChoice
	}

	r := rng.Float64() * total
	last := -1
	for i, weight := range weights {
		if !usable(weight) {
			continue
		}

		last = i
		r -= float64(weight)
		if r < 0 {
			return i, nil
		}
	}

	// r == total can survive the loop by rounding; the last usable index takes it
	return last, nil
}
