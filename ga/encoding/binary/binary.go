// Package binary implements the default fixed-length bit-string encoding:
// single-point or uniform crossover, bit-flip mutation. Used by the OneMax
// and binary-encoded Rastrigin benchmarks.
package binary

import "github.com/aram/evolve/ga/rng"

// CrossoverMode selects the recombination operator.
type CrossoverMode int

const (
	SinglePoint CrossoverMode = iota
	Uniform
)

// Encoding is a ga.Encoding[bool] implementation. Construct with New.
type Encoding struct {
	mode          CrossoverMode
	crossoverRate float64
	mutationRate  float64
}

// Option configures an Encoding at construction time.
type Option func(*Encoding)

func WithMode(m CrossoverMode) Option     { return func(e *Encoding) { e.mode = m } }
func WithCrossoverRate(p float64) Option  { return func(e *Encoding) { e.crossoverRate = p } }
func WithMutationRate(p float64) Option   { return func(e *Encoding) { e.mutationRate = p } }

// New builds a binary Encoding. Defaults: single-point crossover at rate
// 0.9, bit-flip mutation at rate 0.01 per gene.
func New(opts ...Option) *Encoding {
	e := &Encoding{
		mode:          SinglePoint,
		crossoverRate: 0.9,
		mutationRate:  0.01,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Encoding) Generate(length int) []bool {
	r := rng.Get()
	defer rng.Put(r)
	out := make([]bool, length)
	for i := range out {
		out[i] = r.Float64() < 0.5
	}
	return out
}

func (e *Encoding) Crossover(a, b []bool) (childA, childB []bool) {
	childA = append([]bool(nil), a...)
	childB = append([]bool(nil), b...)

	if rng.Float64() >= e.crossoverRate || len(a) != len(b) || len(a) < 2 {
		return childA, childB
	}

	switch e.mode {
	case Uniform:
		r := rng.Get()
		for i := range childA {
			if r.Float64() < 0.5 {
				childA[i], childB[i] = childB[i], childA[i]
			}
		}
		rng.Put(r)
	default:
		point := 1 + rng.Index(len(a)-1)
		for i := point; i < len(a); i++ {
			childA[i], childB[i] = childB[i], childA[i]
		}
	}
	return childA, childB
}

func (e *Encoding) Mutate(c []bool) {
	r := rng.Get()
	defer rng.Put(r)
	for i := range c {
		if r.Float64() < e.mutationRate {
			c[i] = !c[i]
		}
	}
}
