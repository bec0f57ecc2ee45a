package main

import (
	"fmt"

	"github.com/aram/evolve/ga"
	"github.com/aram/evolve/ga/bench"
	"github.com/aram/evolve/ga/dump"
	"github.com/aram/evolve/ga/encoding/binary"
	"github.com/aram/evolve/ga/encoding/integer"
	"github.com/aram/evolve/ga/encoding/permutation"
	"github.com/aram/evolve/ga/encoding/real"
	"github.com/aram/evolve/ga/rng"
)

// commonOptions builds the configuration shared by every scenario from
// cfg, leaving encoding, fitness function, and mode to the caller.
func commonOptions[G ga.Gene](cfg Config) []ga.Option[G] {
	opts := []ga.Option[G]{
		ga.WithPopulationSize[G](cfg.PopulationSize),
		ga.WithChromLen[G](cfg.ChromLen),
		ga.WithMaxGenerations[G](cfg.MaxGenerations),
		ga.WithMaxFitnessEvals[G](cfg.MaxFitnessEvals),
		ga.WithSogaSelection[G](sogaSelectionFromString(cfg.SogaSelection)),
		ga.WithTournamentSize[G](cfg.TournamentSize),
		ga.WithArchive[G](cfg.Archive),
	}
	if cfg.EvalConcurrency > 0 {
		opts = append(opts, ga.WithEvalConcurrency[G](cfg.EvalConcurrency))
	}
	if cfg.RefPointCount > 0 {
		opts = append(opts, ga.WithRefPointCount[G](cfg.RefPointCount))
	}
	return opts
}

// runOneMax runs roulette/tournament selection on a binary OneMax
// chromosome.
func runOneMax(cfg Config) error {
	rng.Seed(seedFor(cfg))

	if cfg.ChromLen == 0 {
		cfg.ChromLen = 100
	}
	enc := binary.New(
		binary.WithCrossoverRate(cfg.CrossoverRate),
		binary.WithMutationRate(cfg.MutationRate),
	)

	opts := commonOptions[bool](cfg)
	opts = append(opts,
		ga.WithEncoding[bool](enc),
		ga.WithFitnessFunc[bool](bench.OneMax),
	)
	_, err := runGeneric(cfg, opts)
	return err
}

// bitsPerVar is the binary-encoding width the rastrigin scenario allocates
// to each real variable.
const bitsPerVar = 32

// decodeBinaryVars maps a bitsPerVar*n-bit chromosome onto n real values
// in [lo, hi], most-significant-bit first per variable.
func decodeBinaryVars(chromosome []bool, n int, lo, hi float64) []float64 {
	vars := make([]float64, n)
	const maxVal = uint64(1)<<bitsPerVar - 1
	for i := 0; i < n; i++ {
		var bits uint64
		for j := 0; j < bitsPerVar; j++ {
			bits <<= 1
			if chromosome[i*bitsPerVar+j] {
				bits |= 1
			}
		}
		frac := float64(bits) / float64(maxVal)
		vars[i] = lo + frac*(hi-lo)
	}
	return vars
}

// runRastriginBinary runs a SOGA tournament on 10-D Rastrigin, binary
// encoded at 32 bits/variable over the standard bounds [-5.12, 5.12].
func runRastriginBinary(cfg Config) error {
	rng.Seed(seedFor(cfg))

	const numVars = 10
	cfg.ChromLen = numVars * bitsPerVar

	enc := binary.New(
		binary.WithCrossoverRate(cfg.CrossoverRate),
		binary.WithMutationRate(cfg.MutationRate),
	)
	fitness := func(chromosome []bool) []float64 {
		vars := decodeBinaryVars(chromosome, numVars, -5.12, 5.12)
		return bench.Rastrigin(vars)
	}

	opts := commonOptions[bool](cfg)
	opts = append(opts,
		ga.WithEncoding[bool](enc),
		ga.WithFitnessFunc[bool](fitness),
		ga.WithStopCondition[bool](ga.StopCondition{Kind: ga.StopFitnessMeanStall, Patience: 50, Delta: 0.005}),
	)
	_, err := runGeneric(cfg, opts)
	return err
}

// runKursawe runs NSGA-II on the 3-variable Kursawe function.
func runKursawe(cfg Config) error {
	rng.Seed(seedFor(cfg))

	const numVars = 3
	cfg.ChromLen = numVars
	low := make([]float64, numVars)
	high := make([]float64, numVars)
	for i := range low {
		low[i], high[i] = -5, 5
	}

	enc := real.New(
		real.WithBounds(low, high),
		real.WithCrossoverRate(cfg.CrossoverRate),
		real.WithMutationRate(cfg.MutationRate),
	)

	opts := commonOptions[float64](cfg)
	opts = append(opts,
		ga.WithMode[float64](ga.MultiObjectiveSorting),
		ga.WithEncoding[float64](enc),
		ga.WithFitnessFunc[float64](bench.Kursawe),
	)
	_, err := runGeneric(cfg, opts)
	return err
}

// runDTLZ buys runDTLZ1/runDTLZ2 their shared NSGA-III wiring: numVars
// real variables on [0, 1], numObj objectives via fn.
func runDTLZ(cfg Config, numVars, numObj int, fn func(vars []float64) []float64) error {
	rng.Seed(seedFor(cfg))

	cfg.ChromLen = numVars
	low := make([]float64, numVars)
	high := make([]float64, numVars)
	for i := range high {
		high[i] = 1
	}

	enc := real.New(
		real.WithBounds(low, high),
		real.WithCrossoverRate(cfg.CrossoverRate),
		real.WithMutationRate(cfg.MutationRate),
	)

	opts := commonOptions[float64](cfg)
	opts = append(opts,
		ga.WithMode[float64](ga.MultiObjectiveDecomp),
		ga.WithEncoding[float64](enc),
		ga.WithFitnessFunc[float64](fn),
	)
	_, err := runGeneric(cfg, opts)
	return err
}

// runDTLZ1 runs NSGA-III on DTLZ1 (3 objectives, 7 variables).
func runDTLZ1(cfg Config) error {
	return runDTLZ(cfg, 7, 3, func(vars []float64) []float64 { return bench.DTLZ1(vars, 3) })
}

// runDTLZ2 runs NSGA-III on DTLZ2 (3 objectives, 12 variables).
func runDTLZ2(cfg Config) error {
	return runDTLZ(cfg, 12, 3, func(vars []float64) []float64 { return bench.DTLZ2(vars, 3) })
}

// runTSP runs a permutation GA over the built-in 20-city fixture (or a CSV file
// supplied via -cities-file), order crossover, inversion mutation.
func runTSP(cfg Config) error {
	rng.Seed(seedFor(cfg))

	cities := berlin52Fixture
	if cfg.CitiesFile != "" {
		loaded, err := loadCities(cfg.CitiesFile)
		if err != nil {
			return err
		}
		cities = loaded
	}
	if len(cities) < 2 {
		return fmt.Errorf("evolve: tsp needs at least 2 cities, got %d", len(cities))
	}
	cfg.ChromLen = len(cities)

	enc := permutation.New(
		permutation.WithCrossoverRate(cfg.CrossoverRate),
		permutation.WithMutationRate(cfg.MutationRate),
	)

	opts := commonOptions[int](cfg)
	opts = append(opts,
		ga.WithEncoding[int](enc),
		ga.WithFitnessFunc[int](bench.TSPTour(cities)),
	)
	front, err := runGeneric(cfg, opts)
	if err != nil {
		return err
	}

	if cfg.OutputSVG != "" && len(front) > 0 {
		route := make([]dump.City, len(front[0].Chromosome))
		for i, cityIdx := range front[0].Chromosome {
			c := cities[cityIdx]
			route[i] = dump.City{Name: c.Name, X: c.X, Y: c.Y}
		}
		if err := dump.WriteTSPRoute(cfg.OutputSVG, route); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", cfg.OutputSVG)
	}
	return nil
}

// runCustom is a demonstration scenario: an integer-alphabet chromosome
// with a user-supplied fitness function (maximize the sum of genes),
// showing how a caller outside this package wires its own Encoding and
// FitnessFunc through the same New/Option surface every built-in scenario
// uses.
func runCustom(cfg Config) error {
	rng.Seed(seedFor(cfg))

	if cfg.ChromLen == 0 {
		cfg.ChromLen = 20
	}
	const alphabet = 10

	enc := integer.New(
		integer.WithAlphabet(alphabet),
		integer.WithCrossoverRate(cfg.CrossoverRate),
		integer.WithMutationRate(cfg.MutationRate),
	)
	fitness := func(chromosome []int) []float64 {
		var sum float64
		for _, gene := range chromosome {
			sum += float64(gene)
		}
		return []float64{sum}
	}

	opts := commonOptions[int](cfg)
	opts = append(opts,
		ga.WithEncoding[int](enc),
		ga.WithFitnessFunc[int](fitness),
	)
	_, err := runGeneric(cfg, opts)
	return err
}
