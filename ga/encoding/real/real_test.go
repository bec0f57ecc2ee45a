package real

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aram/evolve/ga/rng"
)

func bounds3() ([]float64, []float64) {
	return []float64{-1, -1, -1}, []float64{1, 1, 1}
}

func TestGenerateRespectsBounds(t *testing.T) {
	rng.Seed(1)
	lo, hi := bounds3()
	e := New(WithBounds(lo, hi))
	for trial := 0; trial < 50; trial++ {
		c := e.Generate(3)
		require.Len(t, c, 3)
		for i, v := range c {
			assert.GreaterOrEqual(t, v, lo[i])
			assert.LessOrEqual(t, v, hi[i])
		}
	}
}

func TestCrossoverStaysWithinBounds(t *testing.T) {
	rng.Seed(2)
	lo, hi := bounds3()
	e := New(WithBounds(lo, hi), WithCrossoverRate(1))
	a := []float64{-1, 0, 1}
	b := []float64{1, 0.5, -1}
	for trial := 0; trial < 50; trial++ {
		childA, childB := e.Crossover(a, b)
		for i := range childA {
			assert.GreaterOrEqual(t, childA[i], lo[i])
			assert.LessOrEqual(t, childA[i], hi[i])
			assert.GreaterOrEqual(t, childB[i], lo[i])
			assert.LessOrEqual(t, childB[i], hi[i])
		}
	}
}

func TestCrossoverSkipsNearIdenticalGenes(t *testing.T) {
	rng.Seed(3)
	lo, hi := bounds3()
	e := New(WithBounds(lo, hi), WithCrossoverRate(1))
	a := []float64{0.5, 0.5, 0.5}
	b := []float64{0.5, 0.5, 0.5}
	childA, childB := e.Crossover(a, b)
	assert.Equal(t, a, childA, "SBX must leave genes unperturbed when parents are (nearly) identical")
	assert.Equal(t, b, childB)
}

func TestCrossoverBelowRateReturnsParentCopies(t *testing.T) {
	lo, hi := bounds3()
	e := New(WithBounds(lo, hi), WithCrossoverRate(0))
	a := []float64{-1, 0, 1}
	b := []float64{1, 0, -1}
	childA, childB := e.Crossover(a, b)
	assert.Equal(t, a, childA)
	assert.Equal(t, b, childB)
}

func TestMutateStaysWithinBounds(t *testing.T) {
	rng.Seed(4)
	lo, hi := bounds3()
	e := New(WithBounds(lo, hi), WithMutationRate(1), WithSigma(5))
	for trial := 0; trial < 50; trial++ {
		c := []float64{-1, 0, 1}
		e.Mutate(c)
		for i, v := range c {
			assert.GreaterOrEqual(t, v, lo[i])
			assert.LessOrEqual(t, v, hi[i])
		}
	}
}

func TestMutateAtRateZeroLeavesChromosomeUnchanged(t *testing.T) {
	lo, hi := bounds3()
	e := New(WithBounds(lo, hi), WithMutationRate(0))
	c := []float64{-1, 0, 1}
	original := append([]float64(nil), c...)
	e.Mutate(c)
	require.Equal(t, original, c)
}
