// Package integer implements a bounded-alphabet integer-vector encoding:
// uniform crossover, random-reset mutation.
package integer

import "github.com/aram/evolve/ga/rng"

// Encoding is a ga.Encoding[int] implementation over the alphabet
// [0, Alphabet). Construct with New.
type Encoding struct {
	alphabet      int
	crossoverRate float64
	mutationRate  float64
}

type Option func(*Encoding)

func WithAlphabet(n int) Option          { return func(e *Encoding) { e.alphabet = n } }
func WithCrossoverRate(p float64) Option { return func(e *Encoding) { e.crossoverRate = p } }
func WithMutationRate(p float64) Option  { return func(e *Encoding) { e.mutationRate = p } }

// New builds an integer Encoding. Defaults: alphabet size 10, uniform
// crossover at rate 0.9, random-reset mutation at rate 0.05 per gene.
func New(opts ...Option) *Encoding {
	e := &Encoding{
		alphabet:      10,
		crossoverRate: 0.9,
		mutationRate:  0.05,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Encoding) Generate(length int) []int {
	r := rng.Get()
	defer rng.Put(r)
	out := make([]int, length)
	for i := range out {
		out[i] = r.IntN(e.alphabet)
	}
	return out
}

func (e *Encoding) Crossover(a, b []int) (childA, childB []int) {
	childA = append([]int(nil), a...)
	childB = append([]int(nil), b...)

	if rng.Float64() >= e.crossoverRate || len(a) != len(b) {
		return childA, childB
	}

	r := rng.Get()
	defer rng.Put(r)
	for i := range childA {
		if r.Float64() < 0.5 {
			childA[i], childB[i] = childB[i], childA[i]
		}
	}
	return childA, childB
}

func (e *Encoding) Mutate(c []int) {
	r := rng.Get()
	defer rng.Put(r)
	for i := range c {
		if r.Float64() < e.mutationRate {
			c[i] = r.IntN(e.alphabet)
		}
	}
}
