package pareto

import "sort"

// Extract1D returns the indices of every candidate whose first (and only)
// objective equals the population maximum. Used when the fitness arity is
// 1: Kung's algorithm degenerates for a single dimension, so the
// non-dominated set is just "everyone tied for the max".
func Extract1D(fitness [][]float64) []int {
	if len(fitness) == 0 {
		return nil
	}
	max := fitness[0][0]
	for _, f := range fitness[1:] {
		if f[0] > max {
			max = f[0]
		}
	}
	var out []int
	for i, f := range fitness {
		if FloatEqual(f[0], max, Epsilon) {
			out = append(out, i)
		}
	}
	return out
}

// ExtractKung returns the indices of the non-dominated set of fitness using
// Kung's divide-and-conquer maxima algorithm (Kung, Luccio, Preparata 1975),
// specialized to M >= 2 objectives under maximization. Runs in
// O(N log^(M-1) N): sort by the first objective descending, recursively
// split into top/bottom halves, then merge by dropping bottom-half members
// dominated by any top-half member (comparisons skip the first dimension,
// since the sort already orders it) and top-half members dominated by a
// bottom-half member that ties them on the first objective.
func ExtractKung(fitness [][]float64) []int {
	n := len(fitness)
	if n == 0 {
		return nil
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return fitness[order[a]][0] > fitness[order[b]][0]
	})

	result := kungRecurse(order, fitness)
	sort.Ints(result)
	return result
}

func kungRecurse(idxs []int, fitness [][]float64) []int {
	if len(idxs) == 1 {
		return []int{idxs[0]}
	}

	mid := len(idxs) / 2
	top := kungRecurse(idxs[:mid], fitness)
	bottom := kungRecurse(idxs[mid:], fitness)

	result := make([]int, 0, len(top)+len(bottom))

	// The sort leaves ties on the first objective unordered, so a bottom
	// member can still dominate a top member it ties with there.
	for _, r := range top {
		dominated := false
		for _, s := range bottom {
			if Dominates(fitness[s], fitness[r], Epsilon) {
				dominated = true
				break
			}
		}
		if !dominated {
			result = append(result, r)
		}
	}

	for _, s := range bottom {
		dominated := false
		for _, r := range top {
			if dominatesSkipFirst(fitness[r], fitness[s]) {
				dominated = true
				break
			}
		}
		if !dominated {
			result = append(result, s)
		}
	}

	return result
}

// dominatesSkipFirst reports whether r dominates s given that the caller's
// sort already guarantees r[0] >= s[0]: the "no component less" check can
// skip objective 0, but a strict advantage there still counts toward
// dominance (otherwise a point beaten only on the first objective would
// survive the merge).
func dominatesSkipFirst(r, s []float64) bool {
	hasGreater := FloatLess(s[0], r[0], Epsilon)
	for k := 1; k < len(r); k++ {
		if FloatLess(r[k], s[k], Epsilon) {
			return false
		}
		if FloatLess(s[k], r[k], Epsilon) {
			hasGreater = true
		}
	}
	return hasGreater
}

// ExtractNaive is the O(N^2) reference extractor: a candidate survives iff
// no other candidate dominates it. Used to cross-check ExtractKung in
// tests, never on a hot path.
func ExtractNaive(fitness [][]float64) []int {
	var out []int
	for i := range fitness {
		dominated := false
		for j := range fitness {
			if Dominates(fitness[j], fitness[i], Epsilon) {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, i)
		}
	}
	return out
}
