// Package real implements the default bounded real-vector encoding:
// simulated binary crossover (SBX) and Gaussian mutation, each clamped to
// per-gene bounds. Used by the KUR, DTLZ1, and DTLZ2 benchmarks.
package real

import (
	"math"

	"github.com/aram/evolve/ga/rng"
)

// Encoding is a ga.Encoding[float64] implementation. Construct with New.
type Encoding struct {
	low, high     []float64
	crossoverRate float64
	eta           float64 // SBX distribution index
	mutationRate  float64
	sigma         float64 // Gaussian mutation step, as a fraction of the gene's range
}

type Option func(*Encoding)

// WithBounds sets the per-gene [low, high] bounds; len(low) == len(high)
// fixes the chromosome length every Generate call produces.
func WithBounds(low, high []float64) Option {
	return func(e *Encoding) { e.low, e.high = low, high }
}

func WithCrossoverRate(p float64) Option { return func(e *Encoding) { e.crossoverRate = p } }
func WithDistributionIndex(eta float64) Option { return func(e *Encoding) { e.eta = eta } }
func WithMutationRate(p float64) Option  { return func(e *Encoding) { e.mutationRate = p } }
func WithSigma(sigma float64) Option     { return func(e *Encoding) { e.sigma = sigma } }

// New builds a real Encoding. Defaults: SBX at rate 0.9 with eta=15,
// Gaussian mutation at rate 0.1 per gene with sigma 0.1 (of the gene's
// range). Bounds must be supplied via WithBounds.
func New(opts ...Option) *Encoding {
	e := &Encoding{
		crossoverRate: 0.9,
		eta:           15,
		mutationRate:  0.1,
		sigma:         0.1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Encoding) Generate(length int) []float64 {
	r := rng.Get()
	defer rng.Put(r)
	out := make([]float64, length)
	for i := range out {
		lo, hi := e.bounds(i)
		out[i] = lo + r.Float64()*(hi-lo)
	}
	return out
}

func (e *Encoding) bounds(i int) (float64, float64) {
	if i < len(e.low) {
		return e.low[i], e.high[i]
	}
	return 0, 1
}

// Crossover applies SBX per gene pair, gated by crossoverRate at the whole-
// pair level: below the rate threshold, children are unperturbed parent
// copies.
func (e *Encoding) Crossover(a, b []float64) (childA, childB []float64) {
	childA = append([]float64(nil), a...)
	childB = append([]float64(nil), b...)

	if rng.Float64() >= e.crossoverRate || len(a) != len(b) {
		return childA, childB
	}

	r := rng.Get()
	defer rng.Put(r)
	for i := range childA {
		if math.Abs(a[i]-b[i]) < 1e-14 {
			continue
		}
		u := r.Float64()
		var beta float64
		if u <= 0.5 {
			beta = math.Pow(2*u, 1/(e.eta+1))
		} else {
			beta = math.Pow(1/(2*(1-u)), 1/(e.eta+1))
		}
		c1 := 0.5 * ((1+beta)*a[i] + (1-beta)*b[i])
		c2 := 0.5 * ((1-beta)*a[i] + (1+beta)*b[i])

		lo, hi := e.bounds(i)
		childA[i] = clamp(c1, lo, hi)
		childB[i] = clamp(c2, lo, hi)
	}
	return childA, childB
}

func (e *Encoding) Mutate(c []float64) {
	r := rng.Get()
	defer rng.Put(r)
	for i := range c {
		if r.Float64() >= e.mutationRate {
			continue
		}
		lo, hi := e.bounds(i)
		step := e.sigma * (hi - lo) * r.NormFloat64()
		c[i] = clamp(c[i]+step, lo, hi)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
