package replace

import (
	"sort"

	"github.com/aram/evolve/ga/pareto"
)

// NSGA2Truncate builds the next population's index set from a combined
// (previous population + children) fitness matrix: non-dominated sort,
// crowding distances per front, whole fronts emitted while they fit, and
// the first overflowing front truncated by crowded-compare. The crowding
// distances of the members added from that partial front are recomputed
// afterward so they reflect the final population's composition instead of
// the pre-truncation combined pool's.
//
// Returns the selected indices (into fitness) plus parallel rank/distance
// slices in the same order, ready to stamp onto the surviving candidates.
func NSGA2Truncate(fitness [][]float64, n int) (selected, ranks []int, dists []float64) {
	fronts := pareto.NonDominatedSort(fitness)
	allDist := pareto.CrowdingDistances(fitness, fronts.Idxs)

	selected = make([]int, 0, n)
	ranks = make([]int, 0, n)
	dists = make([]float64, 0, n)

	frontIdx := 0
	for frontIdx < len(fronts.Idxs) && len(selected)+len(fronts.Idxs[frontIdx]) <= n {
		for _, idx := range fronts.Idxs[frontIdx] {
			selected = append(selected, idx)
			ranks = append(ranks, fronts.Ranks[idx])
			dists = append(dists, allDist[idx])
		}
		frontIdx++
	}

	if len(selected) != n && frontIdx < len(fronts.Idxs) {
		partial := append([]int(nil), fronts.Idxs[frontIdx]...)
		sort.Slice(partial, func(a, b int) bool {
			return pareto.CrowdedBetter(fronts.Ranks, allDist, partial[a], partial[b])
		})

		addedStart := len(selected)
		for _, idx := range partial {
			if len(selected) == n {
				break
			}
			selected = append(selected, idx)
			ranks = append(ranks, fronts.Ranks[idx])
			dists = append(dists, allDist[idx])
		}

		newPopFitness := make([][]float64, len(selected))
		for i, idx := range selected {
			newPopFitness[i] = fitness[idx]
		}
		addedPositions := make([]int, 0, len(selected)-addedStart)
		for i := addedStart; i < len(selected); i++ {
			addedPositions = append(addedPositions, i)
		}
		recomputed := pareto.CrowdingDistances(newPopFitness, [][]int{addedPositions})
		for _, pos := range addedPositions {
			dists[pos] = recomputed[pos]
		}
	}

	return selected, ranks, dists
}
