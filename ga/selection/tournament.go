package selection

import (
	"github.com/aram/evolve/ga/pareto"
	"github.com/aram/evolve/ga/rng"
)

// NSGA2Select draws two independent uniform indices from [0, n) and
// returns the one that wins the crowded-compare relation.
func NSGA2Select(n int, rank []int, dist []float64) int {
	i, j := rng.Index(n), rng.Index(n)
	if pareto.CrowdedBetter(rank, dist, i, j) {
		return i
	}
	return j
}

// NSGA3Select draws two independent uniform indices from [0, n) and
// returns the one that wins the niched-compare relation.
func NSGA3Select(n int, rank, niche []int, dist []float64) int {
	i, j := rng.Index(n), rng.Index(n)
	if pareto.NichedBetter(rank, niche, dist, i, j) {
		return i
	}
	return j
}
