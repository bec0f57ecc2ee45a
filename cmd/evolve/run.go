package main

import (
	"fmt"
	"hash/fnv"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aram/evolve/ga"
	"github.com/aram/evolve/ga/dump"
	"github.com/aram/evolve/ga/metrics"
	"github.com/aram/evolve/ga/progress"
)

// seedForScenario derives a deterministic seed from a scenario name via
// FNV-1a, so a run is reproducible without a checked-in seed table (the
// same derivation ga_test.go uses for the end-to-end scenarios).
func seedForScenario(name string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return h.Sum64()
}

// seedFor returns cfg.Seed if set, otherwise a seed derived from the
// scenario name.
func seedFor(cfg Config) uint64 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return seedForScenario(cfg.Scenario)
}

// chainCallbacks combines multiple Callbacks (progress display, metrics,
// a final-result printer) into one, since ga.WithCallback only accepts a
// single observer.
func chainCallbacks[G ga.Gene](cbs ...ga.Callback[G]) ga.Callback[G] {
	return func(snap ga.Snapshot[G]) {
		for _, cb := range cbs {
			if cb != nil {
				cb(snap)
			}
		}
	}
}

// sogaSelectionFromString maps the TOML soga_selection string onto
// ga.SogaSelection, defaulting to tournament.
func sogaSelectionFromString(s string) ga.SogaSelection {
	switch s {
	case "roulette":
		return ga.SogaRoulette
	case "rank":
		return ga.SogaRank
	case "sigma":
		return ga.SogaSigma
	case "boltzmann":
		return ga.SogaBoltzmann
	default:
		return ga.SogaTournament
	}
}

// observers bundles the optional progress/metrics wiring shared by every
// scenario subcommand: a combined Callback to pass to ga.WithCallback, and
// a cleanup function to call once the run finishes.
type observers[G ga.Gene] struct {
	callback ga.Callback[G]
	cleanup  func()
}

// attachObservers wires a metrics.Recorder (if cfg.Metrics) and a
// progress.Run TUI (if cfg.Progress) into one Callback, returning a
// cleanup function the caller must defer/invoke after Run finishes.
func attachObservers[G ga.Gene](cfg Config) *observers[G] {
	runID := cfg.Scenario
	lastGen := cfg.MaxGenerations - 1
	var cbs []ga.Callback[G]
	var cleanups []func()

	if cfg.Metrics {
		recorder := metrics.NewRecorder(runID)
		registry := prometheus.NewRegistry()
		registry.MustRegister(recorder.Collectors()...)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		server := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("evolve: metrics server: %v", err)
			}
		}()
		cbs = append(cbs, metrics.Observe[G](recorder))
		cleanups = append(cleanups, func() { _ = server.Close() })
	}

	if cfg.Progress {
		ch := make(chan progress.Update, 8)
		done := make(chan struct{})
		go func() {
			defer close(done)
			if err := progress.Run(ch); err != nil {
				log.Printf("evolve: progress display: %v", err)
			}
		}()
		cbs = append(cbs, progress.Emit[G](ch, cfg.MaxGenerations, func(snap ga.Snapshot[G]) bool {
			return snap.Generation >= lastGen
		}))
		cleanups = append(cleanups, func() { close(ch); <-done })
	}

	return &observers[G]{
		callback: chainCallbacks(cbs...),
		cleanup: func() {
			for _, c := range cleanups {
				c()
			}
		},
	}
}

// runGeneric appends the observer callback to opts, constructs the GA,
// runs it to completion, and prints/dumps the result. It returns the final
// front so a caller (the tsp subcommand) can do scenario-specific output
// beyond summarize's CSV dump.
func runGeneric[G ga.Gene](cfg Config, opts []ga.Option[G]) (ga.Population[G], error) {
	obs := attachObservers[G](cfg)
	defer obs.cleanup()
	opts = append(opts, ga.WithCallback[G](obs.callback))

	g, err := ga.New(opts...)
	if err != nil {
		return nil, err
	}

	fmt.Printf("running %s: population=%d max_generations=%d\n", cfg.Scenario, cfg.PopulationSize, cfg.MaxGenerations)
	front, err := g.Run()
	if err != nil {
		return nil, fmt.Errorf("evolve: %s: %w", cfg.Scenario, err)
	}
	if err := summarize(cfg, front); err != nil {
		return nil, err
	}
	return front, nil
}

// summarize prints the final Pareto front (for single-objective runs, every
// candidate tied for the best fitness) to stdout and optionally dumps it to
// CSV.
func summarize[G ga.Gene](cfg Config, front ga.Population[G]) error {
	fmt.Printf("scenario %s: front size %d\n", cfg.Scenario, len(front))
	for i, c := range front {
		if i >= 10 {
			fmt.Printf("  ... %d more\n", len(front)-10)
			break
		}
		fmt.Printf("  fitness=%v\n", c.Fitness)
	}

	if cfg.OutputCSV != "" {
		if err := dump.WriteCSVFile(cfg.OutputCSV, front); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", cfg.OutputCSV)
	}
	return nil
}
