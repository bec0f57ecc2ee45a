package pareto

// CrowdedBetter implements the NSGA-II crowded-compare relation: i beats j
// iff i has the better (lower) rank, or tied rank and i has the larger
// crowding distance (less crowded).
func CrowdedBetter(rank []int, dist []float64, i, j int) bool {
	if rank[i] != rank[j] {
		return rank[i] < rank[j]
	}
	return dist[i] > dist[j]
}

// NichedBetter implements the NSGA-III niched-compare relation: i beats j
// iff i has the better rank, else tied rank and i has the smaller niche
// count, else tied both and i has the smaller perpendicular distance to
// its associated reference line.
func NichedBetter(rank, niche []int, dist []float64, i, j int) bool {
	if rank[i] != rank[j] {
		return rank[i] < rank[j]
	}
	if niche[i] != niche[j] {
		return niche[i] < niche[j]
	}
	return dist[i] < dist[j]
}
