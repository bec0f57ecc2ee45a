package pareto

import (
	"math"
	"sort"
)

// CrowdingDistances computes the NSGA-II crowding distance for every
// population member named in fronts, given the full fitness matrix.
// Fronts are independent of one another (a caller may parallelize over
// them); within a front, each objective is processed independently: sort
// the front by that objective, give the two extreme members +Inf, and give
// every interior member a share of `(next - prev) / range` summed across
// objectives.
func CrowdingDistances(fitness [][]float64, fronts [][]int) []float64 {
	n := len(fitness)
	dist := make([]float64, n)

	if n == 0 || len(fitness[0]) == 0 {
		return dist
	}
	numObj := len(fitness[0])

	for _, front := range fronts {
		if len(front) == 0 {
			continue
		}
		if len(front) <= 2 {
			for _, idx := range front {
				dist[idx] = math.Inf(1)
			}
			continue
		}

		ordered := make([]int, len(front))
		copy(ordered, front)

		for d := 0; d < numObj; d++ {
			sort.Slice(ordered, func(a, b int) bool {
				return fitness[ordered[a]][d] < fitness[ordered[b]][d]
			})

			fmin := fitness[ordered[0]][d]
			fmax := fitness[ordered[len(ordered)-1]][d]
			rng := math.Max(fmax-fmin, Epsilon)

			dist[ordered[0]] = math.Inf(1)
			dist[ordered[len(ordered)-1]] = math.Inf(1)

			for i := 1; i < len(ordered)-1; i++ {
				if math.IsInf(dist[ordered[i]], 1) {
					continue
				}
				gap := fitness[ordered[i+1]][d] - fitness[ordered[i-1]][d]
				dist[ordered[i]] += gap / rng
			}
		}
	}

	return dist
}
