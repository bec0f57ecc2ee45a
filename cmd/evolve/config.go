package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds every knob a run subcommand or the generic "run" command
// exposes, as a flat TOML-serializable struct. Loading falls back to
// defaults when the file is absent, rather than erroring.
type Config struct {
	Scenario string `toml:"scenario"`

	PopulationSize  int     `toml:"population_size"`
	ChromLen        int     `toml:"chrom_len"`
	MaxGenerations  int     `toml:"max_generations"`
	MaxFitnessEvals int64   `toml:"max_fitness_evals"`
	EvalConcurrency int     `toml:"eval_concurrency"`
	CrossoverRate   float64 `toml:"crossover_rate"`
	MutationRate    float64 `toml:"mutation_rate"`

	SogaSelection  string `toml:"soga_selection"`
	TournamentSize int    `toml:"tournament_size"`
	Archive        bool   `toml:"archive"`
	RefPointCount  int    `toml:"ref_point_count"`

	Seed uint64 `toml:"seed"`

	CitiesFile string `toml:"cities_file"`

	OutputCSV string `toml:"output_csv"`
	OutputSVG string `toml:"output_svg"`

	Progress    bool   `toml:"progress"`
	Metrics     bool   `toml:"metrics"`
	MetricsAddr string `toml:"metrics_addr"`
}

// DefaultConfig returns the OneMax scenario's configuration.
func DefaultConfig() Config {
	return Config{
		Scenario:        "onemax",
		PopulationSize:  100,
		ChromLen:        40,
		MaxGenerations:  150,
		MaxFitnessEvals: 1_000_000,
		EvalConcurrency: 0, // 0 means "let ga.New default to runtime.NumCPU()"
		CrossoverRate:   0.9,
		MutationRate:    0.01,
		SogaSelection:   "tournament",
		TournamentSize:  3,
		RefPointCount:   0,
		MetricsAddr:     ":9090",
	}
}

// GetConfigPath returns the default config file location: the current
// directory first, then ~/.config/evolve/config.toml.
func GetConfigPath() string {
	if _, err := os.Stat("./evolve.toml"); err == nil {
		return "./evolve.toml"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "./evolve.toml"
	}
	return filepath.Join(home, ".config", "evolve", "config.toml")
}

// LoadConfig loads cfg from path, returning DefaultConfig() unmodified if
// the file does not exist.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), fmt.Errorf("evolve: read config %s: %w", path, err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, &config); err != nil {
		return DefaultConfig(), fmt.Errorf("evolve: parse config %s: %w", path, err)
	}
	return config, nil
}

// SaveConfig writes config to path as TOML, creating its parent directory
// if necessary.
func SaveConfig(path string, config Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("evolve: create config dir %s: %w", dir, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("evolve: create config %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(config); err != nil {
		return fmt.Errorf("evolve: write config %s: %w", path, err)
	}
	return nil
}
