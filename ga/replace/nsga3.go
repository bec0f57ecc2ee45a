package replace

import (
	"math"

	"github.com/aram/evolve/ga/pareto"
	"github.com/aram/evolve/ga/rng"
)

// NSGA3Truncate builds the next population's index set from a combined
// fitness matrix using reference-point niching. ideal and
// extreme are updated in place against the combined pool before
// association; nadir is recomputed from the refreshed extreme points and
// returned for the caller to keep alongside ideal/extreme.
//
// Whole fronts are emitted while they fit. The first overflowing front is
// filled one candidate at a time: find the reference(s) with the smallest
// niche count among those represented in the partial front, break ties
// uniformly at random, then take the partial front's member closest (by
// perpendicular distance) to the chosen reference. Niche counts update
// after every pick so later choices see the new state.
func NSGA3Truncate(
	fitness [][]float64,
	refs [][]float64,
	ideal []float64,
	extreme [][]float64,
	n int,
) (selected, ranks, refIdxOut, niche []int, dists, nadir []float64) {
	pareto.UpdateIdeal(ideal, fitness)
	pareto.UpdateExtremePoints(extreme, fitness, ideal)
	nadir = pareto.NadirFromExtremes(extreme)

	fronts := pareto.NonDominatedSort(fitness)
	allRefIdx, allDist := pareto.AssociateWithRefs(fitness, ideal, nadir, refs)

	selected = make([]int, 0, n)
	ranks = make([]int, 0, n)
	refIdxOut = make([]int, 0, n)
	dists = make([]float64, 0, n)

	frontIdx := 0
	for frontIdx < len(fronts.Idxs) && len(selected)+len(fronts.Idxs[frontIdx]) <= n {
		for _, idx := range fronts.Idxs[frontIdx] {
			selected = append(selected, idx)
			ranks = append(ranks, fronts.Ranks[idx])
			refIdxOut = append(refIdxOut, allRefIdx[idx])
			dists = append(dists, allDist[idx])
		}
		frontIdx++
	}

	perRef := make([]int, len(refs))
	for _, r := range refIdxOut {
		perRef[r]++
	}

	if len(selected) != n && frontIdx < len(fronts.Idxs) {
		partial := append([]int(nil), fronts.Idxs[frontIdx]...)

		for len(selected) < n {
			minCount := -1
			for _, idx := range partial {
				c := perRef[allRefIdx[idx]]
				if minCount == -1 || c < minCount {
					minCount = c
				}
			}

			var tiedRefs []int
			seen := make(map[int]bool)
			for _, idx := range partial {
				r := allRefIdx[idx]
				if perRef[r] == minCount && !seen[r] {
					tiedRefs = append(tiedRefs, r)
					seen[r] = true
				}
			}
			ref := tiedRefs[rng.Index(len(tiedRefs))]

			bestPos := -1
			bestDist := math.Inf(1)
			for pos, idx := range partial {
				if allRefIdx[idx] == ref && allDist[idx] < bestDist {
					bestDist = allDist[idx]
					bestPos = pos
				}
			}

			idx := partial[bestPos]
			selected = append(selected, idx)
			ranks = append(ranks, fronts.Ranks[idx])
			refIdxOut = append(refIdxOut, allRefIdx[idx])
			dists = append(dists, allDist[idx])

			partial = append(partial[:bestPos], partial[bestPos+1:]...)
			perRef[ref]++
		}
	}

	niche = make([]int, len(selected))
	for i, r := range refIdxOut {
		niche[i] = perRef[r]
	}

	return selected, ranks, refIdxOut, niche, dists, nadir
}
