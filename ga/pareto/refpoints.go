package pareto

import (
	"math"

	"github.com/aram/evolve/ga/rng"
)

// randomSimplexPoint draws a uniform point on the unit simplex in dim
// dimensions via the normalized-exponential-spacings construction: draw dim
// iid Exp(1) variates (via -log(U)) and normalize them to sum to 1.
func randomSimplexPoint(dim int) []float64 {
	r := rng.Get()
	defer rng.Put(r)

	point := make([]float64, dim)
	sum := 0.0
	for i := range point {
		point[i] = -math.Log(r.Float64())
		sum += point[i]
	}
	for i := range point {
		point[i] /= sum
	}
	return point
}

// GenerateRefPoints generates n reference points on the unit simplex in dim
// dimensions (for NSGA-III), via farthest-point sampling from a pool of
// max(10, 2*dim)*n - 1 random simplex-point candidates: the pool seeds with
// one random point, then repeatedly picks the remaining candidate with the
// largest minimum distance to the points already chosen. This differs from
// the Das-Dennis lattice construction used by some NSGA-III references.
func GenerateRefPoints(n, dim int) [][]float64 {
	k := 10
	if 2*dim > k {
		k = 2 * dim
	}
	poolSize := k*n - 1
	if poolSize < 0 {
		poolSize = 0
	}

	candidates := make([][]float64, poolSize)
	for i := range candidates {
		candidates[i] = randomSimplexPoint(dim)
	}

	refs := make([][]float64, 0, n)
	refs = append(refs, randomSimplexPoint(dim))

	minDist := make([]float64, len(candidates))
	for i := range minDist {
		minDist[i] = math.Inf(1)
	}

	for len(refs) < n {
		last := refs[len(refs)-1]
		argmax := -1
		best := math.Inf(-1)
		for i, c := range candidates {
			d := EuclideanDistanceSq(c, last)
			if d < minDist[i] {
				minDist[i] = d
			}
			if minDist[i] > best {
				best = minDist[i]
				argmax = i
			}
		}
		if argmax < 0 {
			break
		}

		refs = append(refs, candidates[argmax])

		last = candidates[len(candidates)-1]
		candidates[argmax] = last
		candidates = candidates[:len(candidates)-1]

		minDist[argmax] = minDist[len(minDist)-1]
		minDist = minDist[:len(minDist)-1]
	}

	return refs
}

// FindClosestRef returns the index of, and squared perpendicular distance
// to, the reference line (through the origin and refs[i]) closest to p.
func FindClosestRef(refs [][]float64, p []float64) (int, float64) {
	best := 0
	bestDist := math.Inf(1)
	for i, line := range refs {
		d := PerpendicularDistanceSq(line, p)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best, bestDist
}
