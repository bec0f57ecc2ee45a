package bench

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOneMaxCountsSetBits(t *testing.T) {
	assert.Equal(t, []float64{0}, OneMax([]bool{false, false, false}))
	assert.Equal(t, []float64{3}, OneMax([]bool{true, true, true}))
	assert.Equal(t, []float64{2}, OneMax([]bool{true, false, true}))
}

func TestRastriginIsZeroAtTheOrigin(t *testing.T) {
	got := Rastrigin([]float64{0, 0, 0})
	require.Len(t, got, 1)
	assert.InDelta(t, 0, got[0], 1e-9)
}

func TestRastriginIsNegativeAwayFromTheOrigin(t *testing.T) {
	got := Rastrigin([]float64{1, 2, 3})
	assert.Less(t, got[0], 0.0, "every non-origin point scores below the optimum under this maximization convention")
}

func TestKursaweReturnsTwoObjectives(t *testing.T) {
	got := Kursawe([]float64{1, -1, 2})
	assert.Len(t, got, 2)
}

func TestKursaweIsDeterministic(t *testing.T) {
	a := Kursawe([]float64{0.5, -0.5, 1.5})
	b := Kursawe([]float64{0.5, -0.5, 1.5})
	assert.Equal(t, a, b)
}

func TestDTLZ1ReturnsNumObjValuesAndIsNegatedForMaximization(t *testing.T) {
	vars := []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5}
	got := DTLZ1(vars, 3)
	require.Len(t, got, 3)
	for _, v := range got {
		assert.LessOrEqual(t, v, 0.0, "DTLZ1 is negated so maximization applies")
	}
}

func TestDTLZ1AtTheParetoOptimalTailScoresBetterThanAway(t *testing.T) {
	// head is vars[:2], tail is vars[2:] (5 elements); tail all at 0.5
	// makes g(tail) == 0, the Pareto-optimal manifold.
	optimal := DTLZ1([]float64{0.2, 0.3, 0.5, 0.5, 0.5, 0.5, 0.5}, 3)
	worse := DTLZ1([]float64{0.2, 0.3, 0.9, 0.1, 0.9, 0.1, 0.9}, 3)
	sum := func(f []float64) float64 {
		var s float64
		for _, v := range f {
			s += v
		}
		return s
	}
	assert.Greater(t, sum(optimal), sum(worse), "the g=0 manifold should score no worse in aggregate than a perturbed tail")
}

func TestDTLZ2ReturnsNumObjValuesAndIsNegatedForMaximization(t *testing.T) {
	vars := []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5}
	got := DTLZ2(vars, 3)
	require.Len(t, got, 3)
	for _, v := range got {
		assert.LessOrEqual(t, v, 0.0)
	}
}

func TestDTLZ2ParetoOptimalPointLiesOnTheUnitSphere(t *testing.T) {
	// tail at 0.5 (g=0), head chosen so cos/sin terms trace a point on the
	// sphere of radius 1 (negated, as the rest of the package maximizes).
	vars := []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5}
	got := DTLZ2(vars, 3)
	var sumSq float64
	for _, v := range got {
		sumSq += v * v
	}
	assert.InDelta(t, 1.0, sumSq, 1e-9)
}

func TestTSPTourSumsClosedTourDistance(t *testing.T) {
	cities := []City{
		{Name: "a", X: 0, Y: 0},
		{Name: "b", X: 3, Y: 0},
		{Name: "c", X: 3, Y: 4},
	}
	fitness := TSPTour(cities)
	got := fitness([]int{0, 1, 2})
	// 0->1: 3, 1->2: 4, 2->0: 5 (3-4-5 triangle), closed tour length 12.
	require.Len(t, got, 1)
	assert.InDelta(t, -12.0, got[0], 1e-9)
}

func TestTSPTourIsInvariantUnderRouteRotation(t *testing.T) {
	cities := []City{
		{Name: "a", X: 0, Y: 0},
		{Name: "b", X: 1, Y: 0},
		{Name: "c", X: 1, Y: 1},
		{Name: "d", X: 0, Y: 1},
	}
	fitness := TSPTour(cities)
	a := fitness([]int{0, 1, 2, 3})
	b := fitness([]int{1, 2, 3, 0})
	assert.InDelta(t, a[0], b[0], 1e-9, "a closed tour's length doesn't depend on its starting city")
}

func TestTSPTourDegenerateRouteIsZero(t *testing.T) {
	cities := []City{{Name: "a", X: 0, Y: 0}}
	fitness := TSPTour(cities)
	got := fitness([]int{0})
	assert.Equal(t, []float64{0}, got)
}

func TestTSPTourHandlesNaNFreeInput(t *testing.T) {
	cities := []City{{X: 0, Y: 0}, {X: 1, Y: 1}}
	fitness := TSPTour(cities)
	got := fitness([]int{0, 1})
	assert.False(t, math.IsNaN(got[0]))
}
