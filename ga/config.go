package ga

import (
	"fmt"
	"math"
	"runtime"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/aram/evolve/ga/pareto"
)

// GA is the generation driver: it owns the population, the configured
// selection/replacement engine, the RNG-backed operators, and the
// multi-objective bookkeeping (reference points, ideal/nadir/extreme
// points), and exposes Run as its only entry point.
//
// Construct one with New and a list of With* options, mirroring the
// functional-options pattern of the earlier single-objective-only version
// of this package.
type GA[G Gene] struct {
	populationSize  int
	chromLen        int
	maxGenerations  int
	maxFitnessEvals int64
	mode            Mode

	stop StopCondition

	sogaSelection    SogaSelection
	tournamentSize   int
	rankMin, rankMax float64
	boltzmannTMin    float64
	boltzmannTMax    float64
	sigmaScale       float64
	customWeightFunc func([]float64) []float64

	fitnessThreshold []float64
	presetPopulation [][]G

	archiveEnabled    bool
	stationaryFitness bool
	chromosomeEqual   func(a, b []G) bool
	evalConcurrency   int
	refPointCount     int

	encoding  Encoding[G]
	fitnessFn FitnessFunc[G]
	repair    RepairFunc[G]
	callback  Callback[G]

	logger *zap.Logger
	runID  string

	// runtime state, populated by Run. evals is the only field the
	// data-parallel phases touch; everything else is serial.
	population Population[G]
	generation int
	evals      atomic.Int64
	archive    []Candidate[G]
	history    []Stats

	refPoints     [][]float64
	ideal         []float64
	nadir         []float64
	extreme       [][]float64
	numObjectives int
}

// Option configures a GA[G] at construction time.
type Option[G Gene] func(*GA[G])

func WithPopulationSize[G Gene](n int) Option[G] { return func(g *GA[G]) { g.populationSize = n } }
func WithChromLen[G Gene](n int) Option[G]       { return func(g *GA[G]) { g.chromLen = n } }
func WithMaxGenerations[G Gene](n int) Option[G] { return func(g *GA[G]) { g.maxGenerations = n } }

func WithMaxFitnessEvals[G Gene](n int64) Option[G] {
	return func(g *GA[G]) { g.maxFitnessEvals = n }
}

func WithMode[G Gene](m Mode) Option[G] { return func(g *GA[G]) { g.mode = m } }

func WithStopCondition[G Gene](s StopCondition) Option[G] {
	return func(g *GA[G]) { g.stop = s }
}

func WithSogaSelection[G Gene](s SogaSelection) Option[G] {
	return func(g *GA[G]) { g.sogaSelection = s }
}

func WithTournamentSize[G Gene](k int) Option[G] { return func(g *GA[G]) { g.tournamentSize = k } }

func WithRankWeights[G Gene](min, max float64) Option[G] {
	return func(g *GA[G]) { g.rankMin, g.rankMax = min, max }
}

func WithBoltzmann[G Gene](tmin, tmax float64) Option[G] {
	return func(g *GA[G]) { g.boltzmannTMin, g.boltzmannTMax = tmin, tmax }
}

func WithSigmaScale[G Gene](scale float64) Option[G] {
	return func(g *GA[G]) { g.sigmaScale = scale }
}

func WithCustomWeightFunc[G Gene](f func([]float64) []float64) Option[G] {
	return func(g *GA[G]) { g.customWeightFunc = f }
}

func WithFitnessThreshold[G Gene](ref []float64) Option[G] {
	return func(g *GA[G]) { g.fitnessThreshold = ref }
}

func WithPresetInitialPopulation[G Gene](preset [][]G) Option[G] {
	return func(g *GA[G]) { g.presetPopulation = preset }
}

func WithArchive[G Gene](enabled bool) Option[G] { return func(g *GA[G]) { g.archiveEnabled = enabled } }

func WithStationaryFitness[G Gene](stationary bool) Option[G] {
	return func(g *GA[G]) { g.stationaryFitness = stationary }
}

func WithChromosomeEqual[G Gene](eq func(a, b []G) bool) Option[G] {
	return func(g *GA[G]) { g.chromosomeEqual = eq }
}

func WithEvalConcurrency[G Gene](n int) Option[G] { return func(g *GA[G]) { g.evalConcurrency = n } }

// WithRefPointCount sets the number of NSGA-III reference points to
// generate; zero (the default) means "use population_size".
func WithRefPointCount[G Gene](n int) Option[G] { return func(g *GA[G]) { g.refPointCount = n } }

func WithEncoding[G Gene](enc Encoding[G]) Option[G] { return func(g *GA[G]) { g.encoding = enc } }

func WithFitnessFunc[G Gene](fn FitnessFunc[G]) Option[G] { return func(g *GA[G]) { g.fitnessFn = fn } }

func WithRepair[G Gene](fn RepairFunc[G]) Option[G] { return func(g *GA[G]) { g.repair = fn } }

func WithCallback[G Gene](cb Callback[G]) Option[G] { return func(g *GA[G]) { g.callback = cb } }

func WithLogger[G Gene](logger *zap.Logger) Option[G] { return func(g *GA[G]) { g.logger = logger } }

func defaultChromosomeEqual[G Gene]() func(a, b []G) bool {
	return func(a, b []G) bool {
		if fa, ok := any(a).([]float64); ok {
			return pareto.VectorEqual(fa, any(b).([]float64), pareto.Epsilon)
		}
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
		return true
	}
}

// New builds a GA[G] from defaults overridden by opts, then validates the
// resulting configuration. The run does not start (and New returns a
// non-nil error wrapping ErrConfiguration) if validation fails.
func New[G Gene](opts ...Option[G]) (*GA[G], error) {
	g := &GA[G]{
		populationSize:  50,
		maxGenerations:  100,
		maxFitnessEvals: math.MaxInt64,
		mode:            SingleObjective,
		sogaSelection:   SogaTournament,
		tournamentSize:  2,
		rankMin:         0.1,
		rankMax:         1.9,
		boltzmannTMin:   0.1,
		boltzmannTMax:   10,
		sigmaScale:      2.0,
		chromosomeEqual: defaultChromosomeEqual[G](),
		evalConcurrency: runtime.NumCPU(),
		logger:          zap.NewNop(),
		runID:           uuid.NewString(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.evalConcurrency < 1 {
		g.evalConcurrency = 1
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Validate checks the full configuration surface and
// aggregates every violation found (via go.uber.org/multierr) rather than
// stopping at the first, so a caller sees every problem in one pass.
func (g *GA[G]) Validate() error {
	var err error

	if g.populationSize < 1 {
		err = multierr.Append(err, fmt.Errorf("population_size must be >= 1, got %d: %w", g.populationSize, ErrConfiguration))
	}
	if g.chromLen < 1 {
		err = multierr.Append(err, fmt.Errorf("chrom_len must be >= 1, got %d: %w", g.chromLen, ErrConfiguration))
	}
	if g.maxGenerations < 1 {
		err = multierr.Append(err, fmt.Errorf("max_gen must be >= 1, got %d: %w", g.maxGenerations, ErrConfiguration))
	}
	if g.maxFitnessEvals < 1 {
		err = multierr.Append(err, fmt.Errorf("max_fitness_evals must be >= 1, got %d: %w", g.maxFitnessEvals, ErrConfiguration))
	}
	if g.mode != SingleObjective && g.mode != MultiObjectiveSorting && g.mode != MultiObjectiveDecomp {
		err = multierr.Append(err, fmt.Errorf("unknown mode %d: %w", int(g.mode), ErrConfiguration))
	}
	if g.encoding == nil {
		err = multierr.Append(err, fmt.Errorf("encoding adapter is required: %w", ErrConfiguration))
	}
	if g.fitnessFn == nil {
		err = multierr.Append(err, fmt.Errorf("fitness function is required: %w", ErrConfiguration))
	}

	switch g.stop.Kind {
	case StopNone:
	case StopFitnessValue:
		if len(g.fitnessThreshold) == 0 {
			err = multierr.Append(err, fmt.Errorf("fitness_threshold must be non-empty for a fitness_value stop condition: %w", ErrConfiguration))
		}
		for _, v := range g.fitnessThreshold {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				err = multierr.Append(err, fmt.Errorf("fitness_threshold must be finite: %w", ErrConfiguration))
				break
			}
		}
	case StopFitnessEvals:
		if g.stop.MaxEvals < 1 {
			err = multierr.Append(err, fmt.Errorf("fitness_evals stop condition requires K >= 1: %w", ErrConfiguration))
		}
	case StopFitnessMeanStall, StopFitnessBestStall:
		if g.mode != SingleObjective {
			err = multierr.Append(err, fmt.Errorf("stall stop conditions are only valid in single-objective mode: %w", ErrConfiguration))
		}
		if g.stop.Patience < 1 {
			err = multierr.Append(err, fmt.Errorf("stall patience must be >= 1, got %d: %w", g.stop.Patience, ErrConfiguration))
		}
		if math.IsNaN(g.stop.Delta) || math.IsInf(g.stop.Delta, 0) {
			err = multierr.Append(err, fmt.Errorf("stall delta must be finite: %w", ErrConfiguration))
		}
	default:
		err = multierr.Append(err, fmt.Errorf("unknown stop condition kind %d: %w", int(g.stop.Kind), ErrConfiguration))
	}

	if g.mode == SingleObjective {
		switch g.sogaSelection {
		case SogaTournament:
			if g.tournamentSize < 2 {
				err = multierr.Append(err, fmt.Errorf("tournament size must be >= 2, got %d: %w", g.tournamentSize, ErrConfiguration))
			}
		case SogaRank:
			if !(0 <= g.rankMin && g.rankMin <= g.rankMax) {
				err = multierr.Append(err, fmt.Errorf("rank weights must satisfy 0 <= min <= max, got [%g, %g]: %w", g.rankMin, g.rankMax, ErrConfiguration))
			}
		case SogaBoltzmann:
			if !(0.1 <= g.boltzmannTMin && g.boltzmannTMin < g.boltzmannTMax) {
				err = multierr.Append(err, fmt.Errorf("boltzmann temperatures must satisfy 0.1 <= Tmin < Tmax, got [%g, %g]: %w", g.boltzmannTMin, g.boltzmannTMax, ErrConfiguration))
			}
		case SogaSigma:
			if g.sigmaScale < 1 {
				err = multierr.Append(err, fmt.Errorf("sigma scale must be >= 1, got %g: %w", g.sigmaScale, ErrConfiguration))
			}
		case SogaCustom:
			if g.customWeightFunc == nil {
				err = multierr.Append(err, fmt.Errorf("custom selection requires a weight function: %w", ErrConfiguration))
			}
		case SogaRoulette:
		default:
			err = multierr.Append(err, fmt.Errorf("unknown selection method %d: %w", int(g.sogaSelection), ErrConfiguration))
		}
	}

	for i, preset := range g.presetPopulation {
		if g.chromLen >= 1 && len(preset) != g.chromLen {
			err = multierr.Append(err, fmt.Errorf("preset_initial_population[%d] has length %d, want %d: %w", i, len(preset), g.chromLen, ErrConfiguration))
		}
	}

	return err
}
