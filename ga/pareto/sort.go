package pareto

// Fronts is the result of a non-dominated sort: Idxs[k] holds the
// population indices belonging to front k (0 = best), and Ranks[i] is the
// front index of population member i.
type Fronts struct {
	Idxs  [][]int
	Ranks []int
}

// NonDominatedSort partitions a fitness matrix (one row per candidate) into
// ranked fronts using the classic O(N^2*M) pairwise-domination-count sweep:
// for each pair, determine which (if either) dominates the other, then peel
// successive fronts by decrementing domination counts until every
// candidate has been assigned a rank.
func NonDominatedSort(fitness [][]float64) Fronts {
	n := len(fitness)
	domCount := make([]int, n)
	domList := make([][]int, n)

	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			switch {
			case Dominates(fitness[j], fitness[i], Epsilon):
				domCount[i]++
				domList[j] = append(domList[j], i)
			case Dominates(fitness[i], fitness[j], Epsilon):
				domCount[j]++
				domList[i] = append(domList[i], j)
			}
		}
	}

	ranks := make([]int, n)
	var fronts [][]int

	var front []int
	for i := 0; i < n; i++ {
		if domCount[i] == 0 {
			front = append(front, i)
		}
	}

	rank := 0
	for len(front) > 0 {
		for _, i := range front {
			ranks[i] = rank
		}
		fronts = append(fronts, front)

		var next []int
		for _, i := range front {
			for _, j := range domList[i] {
				domCount[j]--
				if domCount[j] == 0 {
					next = append(next, j)
				}
			}
		}
		front = next
		rank++
	}

	return Fronts{Idxs: fronts, Ranks: ranks}
}
