package replace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aram/evolve/ga/pareto"
	"github.com/aram/evolve/ga/rng"
)

func TestSogaTruncateKeepsTheFittestN(t *testing.T) {
	fitness := []float64{3, 1, 4, 1, 5, 9, 2}
	selected := SogaTruncate(fitness, 3)
	require.Len(t, selected, 3)
	assert.Equal(t, []int{5, 4, 2}, selected, "must keep indices of fitness 9, 5, 4 in descending order")
}

func TestSogaTruncateClampsNToPopulationSize(t *testing.T) {
	selected := SogaTruncate([]float64{1, 2}, 10)
	assert.Len(t, selected, 2)
}

func TestNSGA2TruncateKeepsWholeFrontsBeforeTruncating(t *testing.T) {
	// two points in front 0, two dominated points in front 1: requesting 3
	// survivors must keep all of front 0 plus one of front 1.
	fitness := [][]float64{
		{3, 0}, // front 0
		{0, 3}, // front 0
		{2, 0}, // front 1, dominated by {3, 0}
		{0, 2}, // front 1, dominated by {0, 3}
	}

	selected, ranks, dists := NSGA2Truncate(fitness, 3)
	require.Len(t, selected, 3)
	require.Len(t, ranks, 3)
	require.Len(t, dists, 3)

	selSet := map[int]bool{}
	for _, idx := range selected {
		selSet[idx] = true
	}
	assert.True(t, selSet[0], "front-0 member must survive")
	assert.True(t, selSet[1], "front-0 member must survive")
}

func TestNSGA2TruncateReturnsEverythingWhenNEqualsPopulation(t *testing.T) {
	fitness := [][]float64{{3, 0}, {0, 3}, {1, 1}, {0, 0}}
	selected, ranks, dists := NSGA2Truncate(fitness, 4)
	assert.Len(t, selected, 4)
	assert.Len(t, ranks, 4)
	assert.Len(t, dists, 4)
}

func TestNSGA3TruncateReturnsExactlyNAndFillsNicheCounts(t *testing.T) {
	rng.Seed(123)

	refs := pareto.GenerateRefPoints(6, 2)
	fitness := [][]float64{
		{10, 0}, {9, 1}, {8, 2}, {7, 3}, {6, 4}, {5, 5},
		{4, 6}, {3, 7}, {2, 8}, {1, 9}, {0, 10},
	}
	ideal := pareto.NewIdeal(2)
	pareto.UpdateIdeal(ideal, fitness)
	extreme := pareto.InitExtremePoints(fitness, ideal)

	selected, ranks, refIdx, niche, dists, nadir := NSGA3Truncate(fitness, refs, ideal, extreme, 6)

	require.Len(t, selected, 6)
	assert.Len(t, ranks, 6)
	assert.Len(t, refIdx, 6)
	assert.Len(t, niche, 6)
	assert.Len(t, dists, 6)
	assert.Len(t, nadir, 2)

	seen := map[int]bool{}
	for _, idx := range selected {
		assert.False(t, seen[idx], "NSGA3Truncate must not select the same candidate twice")
		seen[idx] = true
	}
}

func TestNSGA3TruncateWholePopulationWhenNMatchesInput(t *testing.T) {
	refs := pareto.GenerateRefPoints(4, 2)
	fitness := [][]float64{{5, 0}, {4, 1}, {3, 2}, {0, 5}}
	ideal := pareto.NewIdeal(2)
	pareto.UpdateIdeal(ideal, fitness)
	extreme := pareto.InitExtremePoints(fitness, ideal)

	selected, _, _, _, _, _ := NSGA3Truncate(fitness, refs, ideal, extreme, len(fitness))
	assert.Len(t, selected, len(fitness))
}
