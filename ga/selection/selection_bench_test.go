package selection

import (
	"fmt"
	"testing"

	"github.com/aram/evolve/ga/rng"
)

// BenchmarkFitnessTournament benchmarks tournament selection across
// population sizes.
func BenchmarkFitnessTournament(b *testing.B) {
	sizes := []int{10, 100, 1000, 10000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("pop_%d", size), func(b *testing.B) {
			rng.Seed(12345)
			fitness := make([]float64, size)
			for i := range fitness {
				fitness[i] = float64(i)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = FitnessTournament(fitness, 5)
			}
		})
	}
}

// BenchmarkFitnessTournamentSizes benchmarks different tournament sizes over
// a fixed population.
func BenchmarkFitnessTournamentSizes(b *testing.B) {
	tournamentSizes := []int{2, 5, 10, 20, 50}

	rng.Seed(12345)
	fitness := make([]float64, 1000)
	for i := range fitness {
		fitness[i] = float64(i)
	}

	for _, size := range tournamentSizes {
		b.Run(fmt.Sprintf("size_%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = FitnessTournament(fitness, size)
			}
		})
	}
}

// BenchmarkWeightsToCDF benchmarks SOGA selection preparation.
func BenchmarkWeightsToCDF(b *testing.B) {
	sizes := []int{100, 1000, 10000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("pop_%d", size), func(b *testing.B) {
			fitness := make([]float64, size)
			for i := range fitness {
				fitness[i] = float64(i % 97)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = WeightsToCDF(RouletteWeights(fitness))
			}
		})
	}
}
