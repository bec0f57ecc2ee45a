// Package metrics wires a generation-boundary Callback into Prometheus
// instrumentation: a generation counter, an evaluation counter, gauges
// tracking the current best candidate's fitness per objective and the
// population size, and a histogram of per-generation wall time.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aram/evolve/ga"
)

// Recorder holds the Prometheus collectors for one run. Register it with a
// prometheus.Registerer, then pass Observe(recorder) as a ga.Callback.
type Recorder struct {
	generations prometheus.Counter
	evals       prometheus.Counter
	bestFitness *prometheus.GaugeVec
	popSize     prometheus.Gauge
	genDuration prometheus.Histogram
}

// NewRecorder builds a Recorder whose collectors are labeled with runID so
// multiple concurrent runs don't collide in the same registry.
func NewRecorder(runID string) *Recorder {
	constLabels := prometheus.Labels{"run_id": runID}
	return &Recorder{
		generations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "evolve",
			Name:        "generations_total",
			Help:        "Number of generations completed.",
			ConstLabels: constLabels,
		}),
		evals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "evolve",
			Name:        "fitness_evaluations_total",
			Help:        "Number of fitness function evaluations performed.",
			ConstLabels: constLabels,
		}),
		bestFitness: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   "evolve",
			Name:        "best_fitness",
			Help:        "Fitness of the current generation's best candidate, per objective index.",
			ConstLabels: constLabels,
		}, []string{"objective"}),
		popSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "evolve",
			Name:        "population_size",
			Help:        "Current population size.",
			ConstLabels: constLabels,
		}),
		genDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   "evolve",
			Name:        "generation_duration_seconds",
			Help:        "Wall time elapsed between successive generation boundaries.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}),
	}
}

// Collectors returns every metric this Recorder owns, for bulk
// registration: registry.MustRegister(recorder.Collectors()...).
func (r *Recorder) Collectors() []prometheus.Collector {
	return []prometheus.Collector{r.generations, r.evals, r.bestFitness, r.popSize, r.genDuration}
}

// Observe is a ga.Callback[G]: it updates every collector from the
// snapshot. Safe to pass directly to ga.WithCallback.
func Observe[G ga.Gene](r *Recorder) ga.Callback[G] {
	var lastEvals int64
	var lastGen int = -1
	var lastBoundary time.Time

	return func(snap ga.Snapshot[G]) {
		now := time.Now()
		if snap.Generation != lastGen {
			r.generations.Inc()
			if !lastBoundary.IsZero() {
				r.genDuration.Observe(now.Sub(lastBoundary).Seconds())
			}
			lastBoundary = now
			lastGen = snap.Generation
		}
		if snap.Evals > lastEvals {
			r.evals.Add(float64(snap.Evals - lastEvals))
			lastEvals = snap.Evals
		}
		r.popSize.Set(float64(len(snap.Population)))
		for i, f := range snap.Best.Fitness {
			r.bestFitness.WithLabelValues(strconv.Itoa(i)).Set(f)
		}
	}
}
