// Package ga implements the generation driver that coordinates selection,
// recombination, mutation, evaluation, and replacement for a population of
// candidate solutions, plus the single- and multi-objective selection and
// replacement engines it drives (ga/selection, ga/replace, ga/pareto).
//
// Concrete encodings (binary, real-vector, permutation, integer-alphabet)
// are external collaborators supplied through the Encoding interface; the
// defaults this repository ships live under ga/encoding.
package ga

import "fmt"

// Gene is the type parameter for a chromosome element. It must support
// equality so two chromosomes can be compared for memoization and archive
// deduplication. The default chromosome equality compares float64 genes
// within the relative tolerance pareto.Epsilon and every other gene type
// with Go's built-in ==; WithChromosomeEqual replaces it.
type Gene = comparable

// Candidate is the unit of population membership: a chromosome plus its
// cached fitness and the transient selection/ranking bookkeeping the
// generation driver and the selection/replacement engines stamp onto it.
type Candidate[G Gene] struct {
	Chromosome []G
	Fitness    []float64
	Evaluated  bool

	// SelectionPDF/SelectionCDF are set by SOGA weight preparation and are
	// meaningless outside single-objective mode.
	SelectionPDF float64
	SelectionCDF float64

	// Rank is the non-domination layer index (0 = best front). Meaningful
	// only in multi-objective modes.
	Rank int

	// Distance is the NSGA-II crowding distance, or the NSGA-III
	// perpendicular distance to the associated reference line.
	Distance float64

	// RefIdx and NicheCount are NSGA-III-only bookkeeping: the index of
	// the closest reference point, and how many population members share
	// it.
	RefIdx     int
	NicheCount int
}

// Clone returns a deep copy of the candidate (chromosome and fitness
// slices are copied, not aliased).
func (c Candidate[G]) Clone() Candidate[G] {
	chrom := make([]G, len(c.Chromosome))
	copy(chrom, c.Chromosome)
	var fit []float64
	if c.Fitness != nil {
		fit = make([]float64, len(c.Fitness))
		copy(fit, c.Fitness)
	}
	c.Chromosome = chrom
	c.Fitness = fit
	return c
}

// Population is a sequence of candidates. Ordering within a generation
// carries no semantic meaning outside of SOGA selection-CDF indices.
type Population[G Gene] []Candidate[G]

// FitnessMatrix extracts the fitness vectors of pop as a plain [][]float64,
// the representation the pareto/selection/replace packages operate on.
func (pop Population[G]) FitnessMatrix() [][]float64 {
	out := make([][]float64, len(pop))
	for i, c := range pop {
		out[i] = c.Fitness
	}
	return out
}

// Encoding is the external collaborator that knows how to generate,
// recombine, and perturb chromosomes of gene type G. Crossover and Mutate
// own their own internal rate knobs: the driver invokes them
// unconditionally once per child/pair, and it is the encoding's
// responsibility to decide, internally, how much (if any) of the
// chromosome actually changes.
type Encoding[G Gene] interface {
	// Generate produces a fresh, random chromosome of the given length.
	Generate(length int) []G

	// Crossover combines two parent chromosomes into two children. A
	// crossover that leaves a child chromosome identical to a parent gets
	// memoized for free: the driver detects the match via the configured
	// chromosome equality and copies the parent's fitness, and when the
	// fitness function is declared stationary (WithStationaryFitness) the
	// child is not re-evaluated.
	Crossover(a, b []G) (childA, childB []G)

	// Mutate perturbs c in place.
	Mutate(c []G)
}

// RepairFunc optionally repairs a chromosome after mutation (e.g. restoring
// permutation validity). It must return a chromosome of the same length as
// its input.
type RepairFunc[G Gene] func(chromosome []G) []G

// FitnessFunc evaluates a chromosome, returning a non-empty ordered
// sequence of finite real objective scores under maximization. Must be
// safe for concurrent invocation.
type FitnessFunc[G Gene] func(chromosome []G) []float64

// Mode selects which selection/replacement engine the driver uses.
type Mode int

const (
	SingleObjective Mode = iota
	MultiObjectiveSorting
	MultiObjectiveDecomp
)

func (m Mode) String() string {
	switch m {
	case SingleObjective:
		return "single_objective"
	case MultiObjectiveSorting:
		return "multi_objective_sorting"
	case MultiObjectiveDecomp:
		return "multi_objective_decomp"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// SogaSelection selects the single-objective weighting scheme.
type SogaSelection int

const (
	SogaRoulette SogaSelection = iota
	SogaRank
	SogaSigma
	SogaBoltzmann
	SogaTournament
	SogaCustom
)

// StopKind selects the extra stop condition checked alongside max_gen,
// which always applies.
type StopKind int

const (
	StopNone StopKind = iota
	StopFitnessValue
	StopFitnessEvals
	StopFitnessMeanStall
	StopFitnessBestStall
)

// StopCondition configures the extra stop condition evaluated after
// max_gen at every generation boundary.
type StopCondition struct {
	Kind StopKind

	// MaxEvals is used by StopFitnessEvals.
	MaxEvals int64

	// Patience (W) and Delta (δ) are used by the stall conditions.
	Patience int
	Delta    float64
}

// Stats is one generation's worth of SOGA history: summary statistics of
// the (single) objective across the population.
type Stats struct {
	Generation int
	Mean       float64
	StdDev     float64
	Min        float64
	Max        float64
}

// Snapshot is the read-only view of driver state handed to Callback at
// every generation boundary.
type Snapshot[G Gene] struct {
	RunID        string
	Generation   int
	Evals        int64
	Population   Population[G]
	Best         Candidate[G]
	History      []Stats
	RefPoints    [][]float64
	Ideal, Nadir []float64
}

// Callback is an optional observer invoked with a read-only snapshot of
// driver state at each generation boundary, for progress reporting.
type Callback[G Gene] func(Snapshot[G])
