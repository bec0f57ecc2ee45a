// Package permutation implements the default permutation encoding: order
// crossover (OX1) and inversion mutation over []int genes holding a
// permutation of [0, length). The chromosome is the permutation itself; a
// caller (ga/bench's TSP fitness function, for instance) maps it onto its
// own domain objects.
package permutation

import "github.com/aram/evolve/ga/rng"

// Encoding is a ga.Encoding[int] implementation. Construct with New.
type Encoding struct {
	crossoverRate float64
	mutationRate  float64
}

type Option func(*Encoding)

func WithCrossoverRate(p float64) Option { return func(e *Encoding) { e.crossoverRate = p } }
func WithMutationRate(p float64) Option  { return func(e *Encoding) { e.mutationRate = p } }

// New builds a permutation Encoding. Defaults: OX1 at rate 0.9, inversion
// mutation at rate 0.1.
func New(opts ...Option) *Encoding {
	e := &Encoding{
		crossoverRate: 0.9,
		mutationRate:  0.1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Generate returns a uniformly random permutation of [0, length), built by
// Fisher-Yates shuffle.
func (e *Encoding) Generate(length int) []int {
	r := rng.Get()
	defer rng.Put(r)

	out := make([]int, length)
	for i := range out {
		out[i] = i
	}
	for i := length - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Crossover performs order crossover (OX1): a random slice of parent a is
// copied verbatim into the child at the same positions, and the remaining
// positions are filled with parent b's genes in the order they appear,
// skipping any gene already placed.
func (e *Encoding) Crossover(a, b []int) (childA, childB []int) {
	if rng.Float64() >= e.crossoverRate || len(a) != len(b) || len(a) < 2 {
		return append([]int(nil), a...), append([]int(nil), b...)
	}

	r := rng.Get()
	start, end := r.IntN(len(a)), r.IntN(len(a))
	rng.Put(r)
	if start > end {
		start, end = end, start
	}

	childA = ox1(a, b, start, end)
	childB = ox1(b, a, start, end)
	return childA, childB
}

func ox1(primary, secondary []int, start, end int) []int {
	n := len(primary)
	child := make([]int, n)
	inChild := make([]bool, n)

	for i := start; i <= end; i++ {
		child[i] = primary[i]
		inChild[primary[i]] = true
	}

	pos := (end + 1) % n
	for i := 0; i < n; i++ {
		gene := secondary[(end+1+i)%n]
		if inChild[gene] {
			continue
		}
		child[pos] = gene
		inChild[gene] = true
		pos = (pos + 1) % n
	}

	return child
}

// Mutate reverses a random contiguous segment of c in place.
func (e *Encoding) Mutate(c []int) {
	if len(c) < 2 || rng.Float64() >= e.mutationRate {
		return
	}
	r := rng.Get()
	i, j := r.IntN(len(c)), r.IntN(len(c))
	rng.Put(r)
	if i > j {
		i, j = j, i
	}
	for i < j {
		c[i], c[j] = c[j], c[i]
		i++
		j--
	}
}
