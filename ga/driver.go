package ga

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aram/evolve/ga/pareto"
	"github.com/aram/evolve/ga/replace"
	"github.com/aram/evolve/ga/selection"
)

// Run executes generations until max_gen or the configured extra stop
// condition fires, then returns the Pareto-optimal set: the archive's
// front if archiving is enabled, otherwise the final population's front.
func (g *GA[G]) Run() (Population[G], error) {
	g.logger.Info("run starting",
		zap.String("run_id", g.runID),
		zap.Stringer("mode", g.mode),
		zap.Int("population_size", g.populationSize),
		zap.Int("max_generations", g.maxGenerations),
	)

	if err := g.initPopulation(); err != nil {
		return nil, err
	}

	for {
		if g.archiveEnabled {
			g.updateArchive(g.population)
		}
		g.recordStats()
		g.fireCallback()

		if g.generation+1 >= g.maxGenerations || g.shouldStop() {
			break
		}

		if err := g.step(); err != nil {
			return nil, err
		}
		g.generation++
	}

	g.logger.Info("run finished",
		zap.String("run_id", g.runID),
		zap.Int("generations", g.generation),
		zap.Int64("fitness_evals", g.evals.Load()),
	)
	return g.paretoFront(), nil
}

// Population returns the population as of the last generation boundary.
func (g *GA[G]) Population() Population[G] { return g.population }

// NumFitnessEvals returns the cumulative fitness evaluation count.
func (g *GA[G]) NumFitnessEvals() int64 { return g.evals.Load() }

// History returns the per-generation statistics recorded so far. Populated
// only in single-objective mode.
func (g *GA[G]) History() []Stats { return g.history }

// Archive returns the accumulated non-dominated archive. Empty unless the
// run was configured with WithArchive(true).
func (g *GA[G]) Archive() Population[G] { return g.archive }

// RefPoints returns the NSGA-III reference-point set generated at
// initialization. Nil outside MultiObjectiveDecomp mode.
func (g *GA[G]) RefPoints() [][]float64 { return g.refPoints }

// IdealPoint returns the running componentwise-maximum ideal point. Nil
// outside MultiObjectiveDecomp mode.
func (g *GA[G]) IdealPoint() []float64 { return g.ideal }

// NadirPoint returns the current nadir point estimate. Nil outside
// MultiObjectiveDecomp mode.
func (g *GA[G]) NadirPoint() []float64 { return g.nadir }

func (g *GA[G]) paretoFront() Population[G] {
	source := g.population
	if g.archiveEnabled {
		source = g.archive
	}
	fitness := source.FitnessMatrix()

	var idxs []int
	if g.mode == SingleObjective {
		idxs = pareto.Extract1D(fitness)
	} else {
		idxs = pareto.ExtractKung(fitness)
	}

	out := make(Population[G], len(idxs))
	for i, idx := range idxs {
		out[i] = source[idx].Clone()
	}
	return out
}

// initPopulation builds generation 0: preset entries first, randoms to
// fill, then a full evaluation pass that also pins numObjectives and (in
// MultiObjectiveDecomp mode) generates the reference-point set.
func (g *GA[G]) initPopulation() error {
	pop := make(Population[G], 0, g.populationSize)
	for _, chrom := range g.presetPopulation {
		c := make([]G, len(chrom))
		copy(c, chrom)
		pop = append(pop, Candidate[G]{Chromosome: c})
	}
	for len(pop) < g.populationSize {
		pop = append(pop, Candidate[G]{Chromosome: g.encoding.Generate(g.chromLen)})
	}
	if len(pop) > g.populationSize {
		pop = pop[:g.populationSize]
	}

	if err := g.evaluateAll(pop); err != nil {
		return err
	}

	g.population = pop
	g.generation = 0

	if g.mode == MultiObjectiveDecomp {
		n := g.refPointCount
		if n == 0 {
			n = g.populationSize
		}
		g.refPoints = pareto.GenerateRefPoints(n, g.numObjectives)
		g.ideal = pareto.NewIdeal(g.numObjectives)
		pareto.UpdateIdeal(g.ideal, pop.FitnessMatrix())
		g.extreme = pareto.InitExtremePoints(pop.FitnessMatrix(), g.ideal)
		g.nadir = pareto.NadirFromExtremes(g.extreme)
	}

	g.stampRanking(g.population)
	return nil
}

// step runs one generation transition: select parents, recombine, mutate,
// repair, evaluate, then replace down to population_size.
func (g *GA[G]) step() error {
	// One extra child is produced and carried when populationSize is odd;
	// replacement trims the combined pool back down to populationSize.
	pairs := (g.populationSize + 1) / 2

	parents := make([][2]int, pairs)
	for i := range parents {
		parents[i] = [2]int{g.selectParent(), g.selectParent()}
	}

	children := make(Population[G], 2*pairs)
	if err := g.parallelFor(len(parents), func(i int) error {
		a := g.population[parents[i][0]]
		b := g.population[parents[i][1]]
		childA, childB := g.encoding.Crossover(a.Chromosome, b.Chromosome)

		children[2*i] = g.childFrom(childA, a, b)
		children[2*i+1] = g.childFrom(childB, a, b)
		return nil
	}); err != nil {
		return err
	}

	if err := g.parallelFor(len(children), func(i int) error {
		before := append([]G(nil), children[i].Chromosome...)
		g.encoding.Mutate(children[i].Chromosome)
		if !g.chromosomeEqual(before, children[i].Chromosome) {
			children[i].Evaluated = false
		}
		if g.repair != nil {
			repaired := g.repair(children[i].Chromosome)
			if len(repaired) != g.chromLen {
				return fmt.Errorf("repair returned chromosome of length %d, want %d: %w", len(repaired), g.chromLen, ErrContractViolation)
			}
			if !g.chromosomeEqual(children[i].Chromosome, repaired) {
				children[i].Evaluated = false
			}
			children[i].Chromosome = repaired
		}
		return nil
	}); err != nil {
		return err
	}

	if err := g.evaluateAll(children); err != nil {
		return err
	}

	combined := make(Population[G], 0, len(g.population)+len(children))
	combined = append(combined, g.population...)
	combined = append(combined, children...)

	next, err := g.replaceNext(combined)
	if err != nil {
		return err
	}
	g.population = next
	return nil
}

// childFrom builds a fresh Candidate from a crossover output chromosome,
// reusing a parent's cached fitness when the child is chromosome-identical
// to that parent.
func (g *GA[G]) childFrom(chrom []G, a, b Candidate[G]) Candidate[G] {
	c := Candidate[G]{Chromosome: chrom}
	switch {
	case g.chromosomeEqual(chrom, a.Chromosome) && a.Evaluated:
		c.Fitness = append([]float64(nil), a.Fitness...)
		c.Evaluated = true
	case g.chromosomeEqual(chrom, b.Chromosome) && b.Evaluated:
		c.Fitness = append([]float64(nil), b.Fitness...)
		c.Evaluated = true
	}
	return c
}

func (g *GA[G]) selectParent() int {
	switch g.mode {
	case MultiObjectiveSorting:
		rank := make([]int, len(g.population))
		dist := make([]float64, len(g.population))
		for i, c := range g.population {
			rank[i], dist[i] = c.Rank, c.Distance
		}
		return selection.NSGA2Select(len(g.population), rank, dist)
	case MultiObjectiveDecomp:
		rank := make([]int, len(g.population))
		niche := make([]int, len(g.population))
		dist := make([]float64, len(g.population))
		for i, c := range g.population {
			rank[i], niche[i], dist[i] = c.Rank, c.NicheCount, c.Distance
		}
		return selection.NSGA3Select(len(g.population), rank, niche, dist)
	default:
		if g.sogaSelection == SogaTournament {
			fitness := make([]float64, len(g.population))
			for i, c := range g.population {
				fitness[i] = c.Fitness[0]
			}
			return selection.FitnessTournament(fitness, g.tournamentSize)
		}
		cdf := g.sogaCDF()
		return selection.SampleCDF(cdf)
	}
}

func (g *GA[G]) sogaCDF() []float64 {
	fitness := make([]float64, len(g.population))
	for i, c := range g.population {
		fitness[i] = c.Fitness[0]
	}

	var weights []float64
	switch g.sogaSelection {
	case SogaRank:
		weights = selection.RankWeights(fitness, g.rankMin, g.rankMax)
	case SogaSigma:
		weights = selection.SigmaWeights(fitness, g.sigmaScale)
	case SogaBoltzmann:
		t := selection.BoltzmannTemperature(g.generation, g.maxGenerations, g.boltzmannTMin, g.boltzmannTMax)
		weights = selection.BoltzmannWeights(fitness, t)
	case SogaCustom:
		weights = g.customWeightFunc(fitness)
	default:
		weights = selection.RouletteWeights(fitness)
	}

	cdf := selection.WeightsToCDF(weights)
	for i := range g.population {
		g.population[i].SelectionPDF = weights[i]
		g.population[i].SelectionCDF = cdf[i]
	}
	return cdf
}

// replaceNext applies the configured replacement engine to the combined
// (previous population + children) pool and stamps the resulting
// bookkeeping fields onto the surviving candidates.
func (g *GA[G]) replaceNext(combined Population[G]) (Population[G], error) {
	fitness := combined.FitnessMatrix()

	switch g.mode {
	case SingleObjective:
		scalar := make([]float64, len(combined))
		for i, f := range fitness {
			scalar[i] = f[0]
		}
		idxs := replace.SogaTruncate(scalar, g.populationSize)
		out := make(Population[G], len(idxs))
		for i, idx := range idxs {
			out[i] = combined[idx].Clone()
		}
		return out, nil

	case MultiObjectiveSorting:
		idxs, ranks, dists := replace.NSGA2Truncate(fitness, g.populationSize)
		out := make(Population[G], len(idxs))
		for i, idx := range idxs {
			c := combined[idx].Clone()
			c.Rank, c.Distance = ranks[i], dists[i]
			out[i] = c
		}
		return out, nil

	case MultiObjectiveDecomp:
		idxs, ranks, refIdx, niche, dists, nadir := replace.NSGA3Truncate(fitness, g.refPoints, g.ideal, g.extreme, g.populationSize)
		g.nadir = nadir
		out := make(Population[G], len(idxs))
		for i, idx := range idxs {
			c := combined[idx].Clone()
			c.Rank, c.Distance, c.RefIdx, c.NicheCount = ranks[i], dists[i], refIdx[i], niche[i]
			out[i] = c
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unhandled mode %v in replaceNext: %w", g.mode, ErrInternal)
	}
}

// stampRanking computes and stores rank/distance/niche bookkeeping for a
// freshly built population (generation 0, which replaceNext never touches).
func (g *GA[G]) stampRanking(pop Population[G]) {
	if g.mode == SingleObjective {
		return
	}
	fitness := pop.FitnessMatrix()
	fronts := pareto.NonDominatedSort(fitness)

	if g.mode == MultiObjectiveSorting {
		dist := pareto.CrowdingDistances(fitness, fronts.Idxs)
		for i := range pop {
			pop[i].Rank = fronts.Ranks[i]
			pop[i].Distance = dist[i]
		}
		return
	}

	refIdx, dist := pareto.AssociateWithRefs(fitness, g.ideal, g.nadir, g.refPoints)
	_, perCandidate := pareto.NicheCounts(refIdx, len(g.refPoints))
	for i := range pop {
		pop[i].Rank = fronts.Ranks[i]
		pop[i].Distance = dist[i]
		pop[i].RefIdx = refIdx[i]
		pop[i].NicheCount = perCandidate[i]
	}
}

// evaluateAll evaluates every not-yet-evaluated candidate in pop (skipping
// already-evaluated ones whenever the fitness function is declared
// stationary), pinning numObjectives on the first evaluation and
// validating every subsequent result against it. The very first evaluation
// of a run happens serially so the arity is pinned before the parallel
// goroutines start reading it.
func (g *GA[G]) evaluateAll(pop Population[G]) error {
	start := 0
	if g.numObjectives == 0 && len(pop) > 0 {
		if err := g.evaluateOne(&pop[0]); err != nil {
			return err
		}
		start = 1
	}
	return g.parallelFor(len(pop)-start, func(i int) error {
		return g.evaluateOne(&pop[start+i])
	})
}

func (g *GA[G]) evaluateOne(c *Candidate[G]) error {
	if c.Evaluated && g.stationaryFitness {
		return nil
	}
	f := g.fitnessFn(c.Chromosome)
	if err := g.validateFitness(f); err != nil {
		return err
	}
	c.Fitness = f
	c.Evaluated = true
	g.evals.Add(1)
	return nil
}

func (g *GA[G]) validateFitness(f []float64) error {
	if len(f) == 0 {
		return fmt.Errorf("fitness vector is empty: %w", ErrContractViolation)
	}
	if g.numObjectives == 0 {
		g.numObjectives = len(f)
	} else if len(f) != g.numObjectives {
		return fmt.Errorf("fitness vector has arity %d, want %d: %w", len(f), g.numObjectives, ErrContractViolation)
	}
	for _, v := range f {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("fitness vector contains a non-finite element: %w", ErrContractViolation)
		}
	}
	return nil
}

func (g *GA[G]) recordStats() {
	if g.mode != SingleObjective || len(g.population) == 0 {
		return
	}
	var sum, min, max float64
	min = g.population[0].Fitness[0]
	max = min
	for _, c := range g.population {
		f := c.Fitness[0]
		sum += f
		if f < min {
			min = f
		}
		if f > max {
			max = f
		}
	}
	mean := sum / float64(len(g.population))

	var variance float64
	for _, c := range g.population {
		d := c.Fitness[0] - mean
		variance += d * d
	}
	stdDev := math.Sqrt(variance / float64(len(g.population)))

	g.history = append(g.history, Stats{
		Generation: g.generation,
		Mean:       mean,
		StdDev:     stdDev,
		Min:        min,
		Max:        max,
	})
}

func (g *GA[G]) fireCallback() {
	if g.callback == nil {
		return
	}
	best := g.population[0]
	for _, c := range g.population[1:] {
		if pareto.Dominates(c.Fitness, best.Fitness, pareto.Epsilon) {
			best = c
		}
	}
	g.callback(Snapshot[G]{
		RunID:      g.runID,
		Generation: g.generation,
		Evals:      g.evals.Load(),
		Population: g.population,
		Best:       best,
		History:    g.history,
		RefPoints:  g.refPoints,
		Ideal:      g.ideal,
		Nadir:      g.nadir,
	})
}

// parallelFor runs fn(i) for i in [0, n) across a bounded worker pool,
// returning the first error encountered (errgroup cancels the remaining
// work once one fails).
func (g *GA[G]) parallelFor(n int, fn func(i int) error) error {
	if n == 0 {
		return nil
	}
	eg, _ := errgroup.WithContext(context.Background())
	eg.SetLimit(g.evalConcurrency)
	for i := 0; i < n; i++ {
		i := i
		eg.Go(func() error { return fn(i) })
	}
	return eg.Wait()
}
