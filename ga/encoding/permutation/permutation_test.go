package permutation

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aram/evolve/ga/rng"
)

func assertIsPermutation(t *testing.T, n int, c []int) {
	t.Helper()
	require.Len(t, c, n)
	seen := make([]bool, n)
	for _, gene := range c {
		require.GreaterOrEqual(t, gene, 0)
		require.Less(t, gene, n)
		require.False(t, seen[gene], "gene %d appeared twice", gene)
		seen[gene] = true
	}
}

func TestGenerateProducesAValidPermutation(t *testing.T) {
	rng.Seed(1)
	e := New()
	for trial := 0; trial < 20; trial++ {
		assertIsPermutation(t, 10, e.Generate(10))
	}
}

func TestCrossoverAlwaysProducesValidPermutations(t *testing.T) {
	rng.Seed(2)
	e := New(WithCrossoverRate(1))
	a := []int{0, 1, 2, 3, 4, 5, 6, 7}
	b := []int{7, 6, 5, 4, 3, 2, 1, 0}
	for trial := 0; trial < 50; trial++ {
		childA, childB := e.Crossover(a, b)
		assertIsPermutation(t, len(a), childA)
		assertIsPermutation(t, len(b), childB)
	}
}

func TestCrossoverBelowRateReturnsParentCopies(t *testing.T) {
	e := New(WithCrossoverRate(0))
	a := []int{0, 1, 2, 3}
	b := []int{3, 2, 1, 0}
	childA, childB := e.Crossover(a, b)
	assert.Equal(t, a, childA)
	assert.Equal(t, b, childB)
}

func TestOX1PreservesContiguousSegmentFromPrimaryParent(t *testing.T) {
	// segment [2,3] (inclusive) copied verbatim from a; remaining filled from b in order.
	a := []int{0, 1, 2, 3, 4, 5}
	b := []int{5, 4, 3, 2, 1, 0}
	child := ox1(a, b, 2, 3)
	assert.Equal(t, a[2], child[2])
	assert.Equal(t, a[3], child[3])
	got := append([]int(nil), child...)
	sort.Ints(got)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, got)
}

func TestMutateAlwaysProducesAValidPermutation(t *testing.T) {
	rng.Seed(3)
	e := New(WithMutationRate(1))
	for trial := 0; trial < 50; trial++ {
		c := []int{0, 1, 2, 3, 4, 5, 6}
		e.Mutate(c)
		assertIsPermutation(t, len(c), c)
	}
}

func TestMutateAtRateZeroLeavesChromosomeUnchanged(t *testing.T) {
	e := New(WithMutationRate(0))
	c := []int{0, 1, 2, 3}
	original := append([]int(nil), c...)
	e.Mutate(c)
	require.Equal(t, original, c)
}
