// Package selection implements the single-objective weighting/sampling
// schemes (roulette, rank, sigma, Boltzmann, tournament) and the
// multi-objective tournament selections built on the NSGA-II
// crowded-compare and NSGA-III niched-compare relations.
package selection

import (
	"math"
	"sort"

	"github.com/aram/evolve/ga/rng"
)

// RouletteWeights computes fitness-proportional weights, shifted so they
// stay non-negative even when some fitness values are negative: offset by
// twice the population minimum (or zero, whichever is smaller).
func RouletteWeights(fitness []float64) []float64 {
	minF := 0.0
	for i, f := range fitness {
		if i == 0 || f < minF {
			minF = f
		}
	}
	offset := math.Min(0, minF)

	weights := make([]float64, len(fitness))
	for i, f := range fitness {
		weights[i] = f - 2*offset
	}
	return weights
}

// RankWeights assigns linearly interpolated weights from wmax (best) to
// wmin (worst) based on descending-fitness rank.
func RankWeights(fitness []float64, wmin, wmax float64) []float64 {
	n := len(fitness)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return fitness[order[a]] > fitness[order[b]]
	})

	weights := make([]float64, n)
	if n == 1 {
		weights[order[0]] = wmax
		return weights
	}
	for pos, idx := range order {
		t := float64(pos) / float64(n-1)
		weights[idx] = wmax - t*(wmax-wmin)
	}
	return weights
}

// SigmaWeights computes sigma-scaled weights: 1 + (f - mean) / (c * max(sd, eps)),
// floored at zero so every weight stays non-negative.
func SigmaWeights(fitness []float64, scale float64) []float64 {
	const eps = 1e-12

	mean := 0.0
	for _, f := range fitness {
		mean += f
	}
	mean /= float64(len(fitness))

	variance := 0.0
	for _, f := range fitness {
		d := f - mean
		variance += d * d
	}
	var sd float64
	if len(fitness) > 1 {
		sd = math.Sqrt(variance / float64(len(fitness)-1))
	}
	denom := scale * math.Max(sd, eps)

	weights := make([]float64, len(fitness))
	for i, f := range fitness {
		w := 1 + (f-mean)/denom
		if w < 0 {
			w = 0
		}
		weights[i] = w
	}
	return weights
}

// BoltzmannTemperature is the default annealing schedule: starts near
// tmax and decays toward tmin as generation approaches maxGen.
func BoltzmannTemperature(gen, maxGen int, tmin, tmax float64) float64 {
	t := float64(gen)
	tMax := float64(maxGen)
	return -tmax/(1+math.Exp(-10*t/tMax+3)) + tmax + tmin
}

// BoltzmannWeights min-max normalizes fitness to [0, 1] and weighs each
// candidate by exp(f' / temperature).
func BoltzmannWeights(fitness []float64, temperature float64) []float64 {
	minF, maxF := fitness[0], fitness[0]
	for _, f := range fitness[1:] {
		if f < minF {
			minF = f
		}
		if f > maxF {
			maxF = f
		}
	}
	rng := math.Max(maxF-minF, 1e-12)

	weights := make([]float64, len(fitness))
	for i, f := range fitness {
		fn := (f - minF) / rng
		weights[i] = math.Exp(fn / temperature)
	}
	return weights
}

// WeightsToCDF normalizes weights to a probability mass function and
// accumulates it into a cumulative distribution function.
func WeightsToCDF(weights []float64) []float64 {
	total := 0.0
	for _, w := range weights {
		total += w
	}

	cdf := make([]float64, len(weights))
	acc := 0.0
	for i, w := range weights {
		if total > 0 {
			acc += w / total
		} else {
			// Degenerate all-zero weights (e.g. roulette over an all-zero
			// population) fall back to a uniform draw.
			acc += 1 / float64(len(weights))
		}
		cdf[i] = acc
	}
	if n := len(cdf); n > 0 {
		cdf[n-1] = 1.0
	}
	return cdf
}

// SampleCDF draws u in [0, 1) and binary-searches cdf for the first entry
// >= u, falling back to the last index if the search runs off the end.
func SampleCDF(cdf []float64) int {
	u := rng.Float64()
	idx := sort.Search(len(cdf), func(i int) bool { return cdf[i] >= u })
	if idx >= len(cdf) {
		idx = len(cdf) - 1
	}
	return idx
}

// FitnessTournament draws size >= 2 independent uniform indices (with
// replacement) from [0, len(fitness)) and returns the one with the highest
// fitness.
func FitnessTournament(fitness []float64, size int) int {
	best := rng.Index(len(fitness))
	for i := 1; i < size; i++ {
		c := rng.Index(len(fitness))
		if fitness[c] > fitness[best] {
			best = c
		}
	}
	return best
}
