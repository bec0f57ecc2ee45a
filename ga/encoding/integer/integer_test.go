package integer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aram/evolve/ga/rng"
)

func TestGenerateStaysWithinAlphabet(t *testing.T) {
	rng.Seed(1)
	e := New(WithAlphabet(5))
	for trial := 0; trial < 30; trial++ {
		c := e.Generate(20)
		require.Len(t, c, 20)
		for _, gene := range c {
			assert.GreaterOrEqual(t, gene, 0)
			assert.Less(t, gene, 5)
		}
	}
}

func TestCrossoverBelowRateReturnsParentCopies(t *testing.T) {
	e := New(WithCrossoverRate(0))
	a := []int{1, 2, 3}
	b := []int{4, 5, 6}
	childA, childB := e.Crossover(a, b)
	assert.Equal(t, a, childA)
	assert.Equal(t, b, childB)
}

func TestCrossoverMismatchedLengthsReturnsParentsUnchanged(t *testing.T) {
	e := New(WithCrossoverRate(1))
	a := []int{1, 2}
	b := []int{1, 2, 3}
	childA, childB := e.Crossover(a, b)
	assert.Equal(t, a, childA)
	assert.Equal(t, b, childB)
}

func TestCrossoverUniformMixesGenesFromBothParents(t *testing.T) {
	rng.Seed(2)
	e := New(WithCrossoverRate(1))
	a := make([]int, 200)
	b := make([]int, 200)
	for i := range b {
		b[i] = 1
	}
	childA, _ := e.Crossover(a, b)
	zeros, ones := 0, 0
	for _, g := range childA {
		if g == 0 {
			zeros++
		} else {
			ones++
		}
	}
	assert.Greater(t, zeros, 0)
	assert.Greater(t, ones, 0)
}

func TestMutateAtRateOneAlwaysRedrawsFromAlphabet(t *testing.T) {
	rng.Seed(3)
	e := New(WithAlphabet(4), WithMutationRate(1))
	c := []int{0, 1, 2, 3}
	e.Mutate(c)
	for _, gene := range c {
		assert.GreaterOrEqual(t, gene, 0)
		assert.Less(t, gene, 4)
	}
}

func TestMutateAtRateZeroLeavesChromosomeUnchanged(t *testing.T) {
	e := New(WithMutationRate(0))
	c := []int{0, 1, 2, 3}
	original := append([]int(nil), c...)
	e.Mutate(c)
	require.Equal(t, original, c)
}
