// Package randutil provides the process-wide weighted sampling used to
// pick reactions and promoters during simulation.
package randutil

import (
	"errors"
	"math/rand/v2"
)

// ErrAllZeroWeights is returned when every weight in a sample is zero or
// negative, so no choice can be made.
var ErrAllZeroWeights = errors.New("randutil: all weights are zero")

var source = rand.New(rand.NewPCG(1, 2))

// Seed reseeds the process-wide generator. Call once at startup for a
// reproducible run; leave untouched for a run seeded from the default
// state.
func Seed(seed1, seed2 uint64) {
	source = rand.New(rand.NewPCG(seed1, seed2))
}

// Float64 draws a uniform random float64 in [0, 1) from the process-wide
// generator.
func Float64() float64 {
	return source.Float64()
}

// Sum adds up a slice of weights. Exposed separately from ChooseIndex so
// callers that only need a cached propensity total don't pay for a draw.
func Sum(weights []float64) float64 {
	var sum float64
	for _, w := range weights {
		sum += w
	}
	return sum
}

// ChooseIndex draws an index into weights with probability proportional
// to each entry's weight.
func ChooseIndex(weights []float64) (int, error) {
	sum := Sum(weights)
	if sum <= 0 {
		return -1, ErrAllZeroWeights
	}

	target := Float64() * sum
	var cumulative float64
	for i, w := range weights {
		cumulative += w
		if target < cumulative {
			return i, nil
		}
	}
	// Floating-point rounding can leave target just shy of sum; fall
	// back to the last non-zero-weight entry.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i, nil
		}
	}
	return len(weights) - 1, nil
}

// ChooseWeighted draws one of handles with probability proportional to
// the matching entry in weights. len(handles) must equal len(weights).
func ChooseWeighted[T any](handles []T, weights []float64) (T, error) {
	idx, err := ChooseIndex(weights)
	if err != nil {
		var zero T
		return zero, err
	}
	return handles[idx], nil
}
