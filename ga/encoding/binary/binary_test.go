package binary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aram/evolve/ga/rng"
)

func TestGenerateProducesTheRequestedLength(t *testing.T) {
	rng.Seed(1)
	e := New()
	c := e.Generate(64)
	assert.Len(t, c, 64)
}

func TestCrossoverSinglePointPreservesLength(t *testing.T) {
	rng.Seed(2)
	e := New(WithCrossoverRate(1))
	a := []bool{true, true, true, true, true, true}
	b := []bool{false, false, false, false, false, false}
	childA, childB := e.Crossover(a, b)
	assert.Len(t, childA, len(a))
	assert.Len(t, childB, len(b))
	assert.NotEqual(t, a, childA, "with crossover rate 1 the cut point leaves at least the last gene swapped, so the child differs from a")
}

func TestCrossoverBelowRateReturnsParentCopies(t *testing.T) {
	rng.Seed(3)
	e := New(WithCrossoverRate(0))
	a := []bool{true, false, true}
	b := []bool{false, true, false}
	childA, childB := e.Crossover(a, b)
	assert.Equal(t, a, childA)
	assert.Equal(t, b, childB)
}

func TestCrossoverUniformMixesBothParents(t *testing.T) {
	rng.Seed(4)
	e := New(WithMode(Uniform), WithCrossoverRate(1))
	a := make([]bool, 200)
	b := make([]bool, 200)
	for i := range a {
		a[i] = true
	}
	childA, _ := e.Crossover(a, b)
	trueCount, falseCount := 0, 0
	for _, g := range childA {
		if g {
			trueCount++
		} else {
			falseCount++
		}
	}
	assert.Greater(t, trueCount, 0)
	assert.Greater(t, falseCount, 0)
}

func TestCrossoverMismatchedLengthsReturnsParentsUnchanged(t *testing.T) {
	e := New(WithCrossoverRate(1))
	a := []bool{true, false}
	b := []bool{true, false, true}
	childA, childB := e.Crossover(a, b)
	assert.Equal(t, a, childA)
	assert.Equal(t, b, childB)
}

func TestMutateAtRateOneFlipsEveryBit(t *testing.T) {
	rng.Seed(5)
	e := New(WithMutationRate(1))
	c := []bool{true, false, true, false}
	original := append([]bool(nil), c...)
	e.Mutate(c)
	for i := range c {
		assert.NotEqual(t, original[i], c[i])
	}
}

func TestMutateAtRateZeroLeavesChromosomeUnchanged(t *testing.T) {
	e := New(WithMutationRate(0))
	c := []bool{true, false, true, false}
	original := append([]bool(nil), c...)
	e.Mutate(c)
	require.Equal(t, original, c)
}
