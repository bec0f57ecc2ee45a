package pareto

import (
	"math"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDominates(t *testing.T) {
	assert.True(t, Dominates([]float64{2, 2}, []float64{1, 1}, Epsilon))
	assert.False(t, Dominates([]float64{1, 2}, []float64{2, 1}, Epsilon), "neither vector dominates the other")
	assert.False(t, Dominates([]float64{1, 1}, []float64{1, 1}, Epsilon), "identical vectors never dominate")
}

func TestNonDominatedSortRanksKnownFront(t *testing.T) {
	fitness := [][]float64{
		{3, 0}, // front 0
		{0, 3}, // front 0
		{2, 1}, // front 0
		{1, 1}, // dominated by {2, 1}
		{0, 0}, // dominated by everyone
	}
	fronts := NonDominatedSort(fitness)
	require.Equal(t, 0, fronts.Ranks[0])
	require.Equal(t, 0, fronts.Ranks[1])
	require.Equal(t, 0, fronts.Ranks[2])
	assert.Greater(t, fronts.Ranks[4], 0, "the all-zero point cannot be in the best front")
}

func TestExtract1DReturnsAllTiedMaxima(t *testing.T) {
	fitness := [][]float64{{5}, {3}, {5}, {1}}
	idxs := Extract1D(fitness)
	sort.Ints(idxs)
	assert.Equal(t, []int{0, 2}, idxs)
}

func TestExtractKungMatchesNaive(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for trial := 0; trial < 50; trial++ {
		n := 2 + r.IntN(20)
		m := 2 + r.IntN(4)
		fitness := make([][]float64, n)
		for i := range fitness {
			fitness[i] = make([]float64, m)
			for j := range fitness[i] {
				fitness[i][j] = r.Float64() * 10
			}
		}

		got := ExtractKung(fitness)
		want := ExtractNaive(fitness)
		sort.Ints(got)
		sort.Ints(want)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("trial %d: ExtractKung disagrees with ExtractNaive (-naive +kung):\n%s", trial, diff)
		}
	}
}

func TestExtractKungDropsPointsBeatenOnlyOnTheFirstObjective(t *testing.T) {
	// {1, 1} is dominated by {2, 1} purely through objective 0; the merge
	// must still drop it even though objectives 1..M-1 are tied.
	fitness := [][]float64{{2, 1}, {1, 1}}
	got := ExtractKung(fitness)
	assert.Equal(t, []int{0}, got)
}

func TestExtractKungKeepsDuplicatePoints(t *testing.T) {
	fitness := [][]float64{{1, 2}, {1, 2}, {0, 0}}
	got := ExtractKung(fitness)
	sort.Ints(got)
	assert.Equal(t, []int{0, 1}, got, "identical points do not dominate each other")
}

func TestCrowdingDistancesExtremesAreInfinite(t *testing.T) {
	fitness := [][]float64{{0, 5}, {1, 4}, {2, 3}, {3, 2}, {4, 1}, {5, 0}}
	front := []int{0, 1, 2, 3, 4, 5}
	dist := CrowdingDistances(fitness, [][]int{front})

	assert.True(t, math.IsInf(dist[0], 1))
	assert.True(t, math.IsInf(dist[5], 1))
	for i := 1; i < 5; i++ {
		assert.False(t, math.IsInf(dist[i], 1), "interior point %d should have finite crowding distance", i)
		assert.Greater(t, dist[i], 0.0)
	}
}

func TestCrowdingDistancesSmallFrontIsAllInfinite(t *testing.T) {
	fitness := [][]float64{{0, 0}, {1, 1}}
	dist := CrowdingDistances(fitness, [][]int{{0, 1}})
	assert.True(t, math.IsInf(dist[0], 1))
	assert.True(t, math.IsInf(dist[1], 1))
}

func TestGenerateRefPointsCountAndSimplex(t *testing.T) {
	refs := GenerateRefPoints(12, 3)
	require.Len(t, refs, 12)
	for _, p := range refs {
		require.Len(t, p, 3)
		sum := 0.0
		for _, v := range p {
			assert.GreaterOrEqual(t, v, 0.0)
			sum += v
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "reference points must lie on the unit simplex")
	}
}

func TestFindClosestRefPicksTheAlignedLine(t *testing.T) {
	refs := [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	idx, _ := FindClosestRef(refs, []float64{0.9, 0.05, 0.05})
	assert.Equal(t, 0, idx)
}

func TestNicheCountsSumsToPopulationSize(t *testing.T) {
	refIdx := []int{0, 0, 1, 2, 2, 2}
	perRef, perCandidate := NicheCounts(refIdx, 3)
	assert.Equal(t, []int{2, 1, 3}, perRef)
	assert.Len(t, perCandidate, len(refIdx))
	assert.Equal(t, perRef[0], perCandidate[0])
	assert.Equal(t, perRef[2], perCandidate[5])
}

func TestNadirFromExtremesIsComponentwiseMin(t *testing.T) {
	extremes := [][]float64{{1, 10}, {5, 2}}
	nadir := NadirFromExtremes(extremes)
	assert.Equal(t, []float64{1, 2}, nadir)
}
