package ga

import "github.com/aram/evolve/ga/pareto"

// shouldStop evaluates the configured extra stop condition against the
// current driver state. max_gen is checked by the caller separately; it
// always applies regardless of Kind.
func (g *GA[G]) shouldStop() bool {
	if g.evals.Load() >= g.maxFitnessEvals {
		return true
	}

	switch g.stop.Kind {
	case StopNone:
		return false

	case StopFitnessValue:
		// Dominance is a partial order, so every member is checked: a
		// candidate can dominate the threshold without dominating the rest
		// of the population.
		for _, c := range g.population {
			if pareto.Dominates(c.Fitness, g.fitnessThreshold, pareto.Epsilon) ||
				pareto.VectorEqual(c.Fitness, g.fitnessThreshold, pareto.Epsilon) {
				return true
			}
		}
		return false

	case StopFitnessEvals:
		return g.evals.Load() >= g.stop.MaxEvals

	case StopFitnessMeanStall:
		return stalled(statsSeries(g.history, func(s Stats) float64 { return s.Mean }), g.stop.Patience, g.stop.Delta)

	case StopFitnessBestStall:
		// Reads the per-generation max series so the two stall conditions
		// track different statistics.
		return stalled(statsSeries(g.history, func(s Stats) float64 { return s.Max }), g.stop.Patience, g.stop.Delta)

	default:
		return false
	}
}

func statsSeries(history []Stats, pick func(Stats) float64) []float64 {
	out := make([]float64, len(history))
	for i, s := range history {
		out[i] = pick(s)
	}
	return out
}

// stalled reports whether the last `patience` entries of series have not
// improved by more than delta relative to the entry patience generations
// back.
func stalled(series []float64, patience int, delta float64) bool {
	if len(series) <= patience {
		return false
	}
	baseline := series[len(series)-1-patience]
	latest := series[len(series)-1]
	return latest-baseline <= delta
}
