// Command evolve drives the evolutionary-computation library (github.com/aram/evolve/ga)
// against six reference benchmark scenarios, plus a generic
// "run" command that loads its configuration from a TOML file. Each
// scenario is a cobra subcommand wiring an encoding and fitness function
// into the library's functional options.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the evolve command tree: persistent flags shared by
// every scenario, one subcommand per reference scenario, "custom" for the
// user-operator demo, and "run" for the config-file-driven entry point.
func newRootCmd() *cobra.Command {
	cfg := DefaultConfig()

	root := &cobra.Command{
		Use:   "evolve",
		Short: "Run evolutionary-computation scenarios against the ga library",
	}

	root.PersistentFlags().IntVar(&cfg.PopulationSize, "population", cfg.PopulationSize, "population size")
	root.PersistentFlags().IntVar(&cfg.MaxGenerations, "max-generations", cfg.MaxGenerations, "maximum number of generations")
	root.PersistentFlags().Int64Var(&cfg.MaxFitnessEvals, "max-evals", cfg.MaxFitnessEvals, "maximum fitness evaluations")
	root.PersistentFlags().IntVar(&cfg.EvalConcurrency, "eval-concurrency", cfg.EvalConcurrency, "concurrent fitness evaluations (0 = runtime.NumCPU())")
	root.PersistentFlags().Float64Var(&cfg.CrossoverRate, "crossover-rate", cfg.CrossoverRate, "crossover probability")
	root.PersistentFlags().Float64Var(&cfg.MutationRate, "mutation-rate", cfg.MutationRate, "per-gene mutation probability")
	root.PersistentFlags().StringVar(&cfg.SogaSelection, "selection", cfg.SogaSelection, "single-objective selection: roulette|rank|sigma|boltzmann|tournament")
	root.PersistentFlags().IntVar(&cfg.TournamentSize, "tournament-size", cfg.TournamentSize, "tournament selection size")
	root.PersistentFlags().BoolVar(&cfg.Archive, "archive", cfg.Archive, "maintain a non-dominated archive across generations")
	root.PersistentFlags().IntVar(&cfg.RefPointCount, "ref-points", cfg.RefPointCount, "NSGA-III reference point count (0 = population size)")
	root.PersistentFlags().Uint64Var(&cfg.Seed, "seed", cfg.Seed, "RNG seed (0 = derive from scenario name)")
	root.PersistentFlags().StringVar(&cfg.OutputCSV, "output-csv", cfg.OutputCSV, "write the final front to this CSV file")
	root.PersistentFlags().StringVar(&cfg.OutputSVG, "output-svg", cfg.OutputSVG, "write the best TSP route to this SVG file (tsp only)")
	root.PersistentFlags().StringVar(&cfg.CitiesFile, "cities-file", cfg.CitiesFile, "CSV file of name,x,y rows (tsp only; default: built-in fixture)")
	root.PersistentFlags().BoolVar(&cfg.Progress, "progress", cfg.Progress, "show a live terminal progress display")
	root.PersistentFlags().BoolVar(&cfg.Metrics, "metrics", cfg.Metrics, "expose Prometheus metrics")
	root.PersistentFlags().StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "address for the Prometheus /metrics endpoint")

	scenarios := []struct {
		use, short string
		scenario   string
		run        func(Config) error
	}{
		{"onemax", "Roulette/tournament selection on binary OneMax", "onemax", runOneMax},
		{"rastrigin", "SOGA tournament on binary-encoded 10-D Rastrigin", "rastrigin", runRastriginBinary},
		{"kursawe", "NSGA-II on the 3-variable Kursawe function", "kursawe", runKursawe},
		{"dtlz1", "NSGA-III on DTLZ1 (3 objectives, 7 variables)", "dtlz1", runDTLZ1},
		{"dtlz2", "NSGA-III on DTLZ2 (3 objectives, 12 variables)", "dtlz2", runDTLZ2},
		{"tsp", "Permutation GA on the 20-city TSP fixture", "tsp", runTSP},
		{"custom", "demo: integer-alphabet encoding with a user fitness function", "custom", runCustom},
	}

	for _, s := range scenarios {
		s := s
		root.AddCommand(&cobra.Command{
			Use:   s.use,
			Short: s.short,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg.Scenario = s.scenario
				return s.run(cfg)
			},
		})
	}

	root.AddCommand(newRunCmd())
	return root
}

// newRunCmd is the generic entry point: load a TOML config (falling back
// to defaults when the file is absent) and dispatch on its scenario field.
func newRunCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the scenario named in a TOML config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if path == "" {
				path = GetConfigPath()
			}
			cfg, err := LoadConfig(path)
			if err != nil {
				return err
			}

			run, ok := scenarioByName(cfg.Scenario)
			if !ok {
				return fmt.Errorf("evolve: unknown scenario %q", cfg.Scenario)
			}
			return run(cfg)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a TOML config file (default: ./evolve.toml or ~/.config/evolve/config.toml)")
	return cmd
}

// scenarioByName maps a Config.Scenario string onto its run function,
// shared between newRunCmd and (indirectly) the named subcommands above.
func scenarioByName(name string) (func(Config) error, bool) {
	switch name {
	case "onemax":
		return runOneMax, true
	case "rastrigin":
		return runRastriginBinary, true
	case "kursawe":
		return runKursawe, true
	case "dtlz1":
		return runDTLZ1, true
	case "dtlz2":
		return runDTLZ2, true
	case "tsp":
		return runTSP, true
	case "custom":
		return runCustom, true
	default:
		return nil, false
	}
}
