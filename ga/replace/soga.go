// Package replace implements the three replacement (survivor-selection)
// strategies: SOGA elitist truncation, NSGA-II front+crowding truncation,
// and NSGA-III niche-preserving truncation.
package replace

import "sort"

// SogaTruncate returns the indices of the n fittest candidates out of the
// combined previous-population-plus-children pool, sorted by descending
// fitness (elitist truncation: the least-fit members are simply dropped).
func SogaTruncate(fitness []float64, n int) []int {
	order := make([]int, len(fitness))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return fitness[order[a]] > fitness[order[b]]
	})
	if n > len(order) {
		n = len(order)
	}
	return order[:n]
}
