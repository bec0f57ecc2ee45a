package pareto

import "math"

// NadirFloor is the smallest magnitude the nadir/ideal denominator is
// allowed to shrink to before normalization divides by it. Clamping here is
// an intentional smoothing, not a bug: when nadir[i]-ideal[i] is near zero or positive (pathological
// under the maximization convention used throughout), the clamp keeps the
// sign negative and the magnitude bounded away from zero.
const NadirFloor = -1e-6

// UpdateIdeal updates the running componentwise-maximum ideal point in
// place given a fresh batch of fitness vectors.
func UpdateIdeal(ideal []float64, fitness [][]float64) {
	for _, f := range fitness {
		for i, v := range f {
			if v > ideal[i] {
				ideal[i] = v
			}
		}
	}
}

// NewIdeal returns an ideal point initialized to -Inf in every objective,
// ready for UpdateIdeal.
func NewIdeal(numObjectives int) []float64 {
	ideal := make([]float64, numObjectives)
	for i := range ideal {
		ideal[i] = math.Inf(-1)
	}
	return ideal
}

// asfWeights returns the ASF weight vector used to find the extreme point
// along objective axis i: 1.0 on-axis, 1e-6 everywhere else.
func asfWeights(numObjectives, axis int) []float64 {
	w := make([]float64, numObjectives)
	for i := range w {
		w[i] = 1e-6
	}
	w[axis] = 1.0
	return w
}

// InitExtremePoints identifies the initial extreme point along each
// objective axis: the fitness vector with the lowest ASF distance to that
// axis, relative to the ideal point.
func InitExtremePoints(fitness [][]float64, ideal []float64) [][]float64 {
	numObj := len(ideal)
	extremes := make([][]float64, numObj)

	for axis := 0; axis < numObj; axis++ {
		w := asfWeights(numObj, axis)
		dmin := math.Inf(1)
		var best []float64
		for _, f := range fitness {
			d := ASF(f, ideal, w)
			if d < dmin {
				dmin = d
				best = f
			}
		}
		extremes[axis] = append([]float64(nil), best...)
	}

	return extremes
}

// UpdateExtremePoints refreshes each axis's extreme point against a fresh
// batch of fitness vectors, also considering the previously held extreme
// points as candidates (so an extreme point is never lost just because the
// current generation didn't reproduce it).
func UpdateExtremePoints(extremes [][]float64, fitness [][]float64, ideal []float64) {
	numObj := len(ideal)

	for axis := 0; axis < numObj; axis++ {
		w := asfWeights(numObj, axis)
		dmin := math.Inf(1)
		best := extremes[axis]

		for _, f := range fitness {
			d := ASF(f, ideal, w)
			if d < dmin {
				dmin = d
				best = f
			}
		}
		for _, old := range extremes {
			d := ASF(old, ideal, w)
			if d < dmin {
				dmin = d
				best = old
			}
		}

		extremes[axis] = append([]float64(nil), best...)
	}
}

// NadirFromExtremes computes the nadir point estimate: the componentwise
// minimum across the extreme points.
func NadirFromExtremes(extremes [][]float64) []float64 {
	numObj := len(extremes)
	nadir := make([]float64, numObj)
	for i := 0; i < numObj; i++ {
		nadir[i] = extremes[0][i]
		for j := 1; j < len(extremes); j++ {
			if extremes[j][i] < nadir[i] {
				nadir[i] = extremes[j][i]
			}
		}
	}
	return nadir
}

// AssociateWithRefs normalizes each fitness vector by (f-ideal)/min(nadir-ideal, NadirFloor)
// and returns, for every candidate, the index of and squared perpendicular
// distance to its closest reference line.
func AssociateWithRefs(fitness [][]float64, ideal, nadir []float64, refs [][]float64) (refIdx []int, dist []float64) {
	numObj := len(ideal)
	refIdx = make([]int, len(fitness))
	dist = make([]float64, len(fitness))

	denom := make([]float64, numObj)
	for i := 0; i < numObj; i++ {
		d := nadir[i] - ideal[i]
		if d > NadirFloor {
			d = NadirFloor
		}
		denom[i] = d
	}

	norm := make([]float64, numObj)
	for idx, f := range fitness {
		for i := 0; i < numObj; i++ {
			norm[i] = (f[i] - ideal[i]) / denom[i]
		}
		refIdx[idx], dist[idx] = FindClosestRef(refs, norm)
	}

	return refIdx, dist
}

// NicheCounts counts, for every reference index, how many candidates in
// refIdx are associated with it, then returns both the per-reference counts
// (length = len(refs)) and the per-candidate niche count (the count for
// that candidate's own reference).
func NicheCounts(refIdx []int, numRefs int) (perRef []int, perCandidate []int) {
	perRef = make([]int, numRefs)
	for _, r := range refIdx {
		perRef[r]++
	}
	perCandidate = make([]int, len(refIdx))
	for i, r := range refIdx {
		perCandidate[i] = perRef[r]
	}
	return perRef, perCandidate
}
