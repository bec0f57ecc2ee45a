package ga

import "github.com/aram/evolve/ga/pareto"

// updateArchive merges pop into the running non-dominated archive and
// re-extracts its Pareto-optimal subset, deduplicating by chromosome so a
// candidate re-entering the population across generations does not
// accumulate duplicate archive entries.
func (g *GA[G]) updateArchive(pop Population[G]) {
	combined := make(Population[G], 0, len(g.archive)+len(pop))
	combined = append(combined, g.archive...)
	combined = append(combined, pop...)

	fitness := combined.FitnessMatrix()

	var idxs []int
	switch g.mode {
	case SingleObjective:
		idxs = pareto.Extract1D(fitness)
	default:
		idxs = pareto.ExtractKung(fitness)
	}

	deduped := make(Population[G], 0, len(idxs))
	for _, idx := range idxs {
		cand := combined[idx]
		dup := false
		for _, kept := range deduped {
			if g.chromosomeEqual(cand.Chromosome, kept.Chromosome) {
				dup = true
				break
			}
		}
		if !dup {
			deduped = append(deduped, cand.Clone())
		}
	}

	g.archive = deduped
}
