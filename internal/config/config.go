// Package config provides unified configuration loading for walklab.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/walklab/walklab/internal/walk"
)

// Dir is the per-project data directory name.
const Dir = ".walklab"

// Config contains all walklab configuration settings.
type Config struct {
	// Simulation contains default parameters for walks and ensembles.
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`

	// Logging contains settings for operational and run-trace logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`

	// Plot contains chart output settings.
	Plot PlotConfig `json:"plot" yaml:"plot"`
}

// SimulationConfig holds the default simulation parameters. Command
// line flags override these per invocation.
type SimulationConfig struct {
	// Steps is the default number of positions per trajectory.
	Steps int `json:"steps" yaml:"steps"`

	// Trials is the default number of trajectories per ensemble.
	Trials int `json:"trials" yaml:"trials"`

	// Workers caps concurrent trials in an ensemble. Values below 2
	// run sequentially.
	Workers int `json:"workers" yaml:"workers"`

	// Source selects the generator: "pcg" (default) or "mt19937".
	Source string `json:"source" yaml:"source"`

	// Distribution is the default step distribution.
	Distribution walk.StepDistribution `json:"distribution" yaml:"distribution"`
}

// LoggingConfig configures walklab's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or
	// "trace". "debug" enables run tracing to .walklab/runs.jsonl.
	Level string `json:"level" yaml:"level"`
}

// PlotConfig configures chart rendering.
type PlotConfig struct {
	// OutputDir is where rendered HTML charts are written, relative to
	// the project root.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Simulation: SimulationConfig{
			Steps:        1000,
			Trials:       500,
			Workers:      1,
			Source:       "pcg",
			Distribution: walk.Symmetric(),
		},
		Logging: LoggingConfig{Level: "info"},
		Plot:    PlotConfig{OutputDir: "plots"},
	}
}

// Path returns the config file path under root.
func Path(root string) string {
	return filepath.Join(root, Dir, "config.yaml")
}

// Load reads configuration from .walklab/config.yaml under root,
// falling back to defaults when the file is absent, then applies
// environment overrides and validates the result.
//
// Recognized environment variables: WALKLAB_LOG_LEVEL, WALKLAB_STEPS,
// WALKLAB_TRIALS, WALKLAB_WORKERS, WALKLAB_SOURCE.
func Load(root string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(Path(root))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	case os.IsNotExist(err):
		// No config file, defaults apply.
	default:
		return cfg, fmt.Errorf("read config: %w", err)
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("WALKLAB_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("WALKLAB_SOURCE"); v != "" {
		cfg.Simulation.Source = v
	}
	if n, ok := envInt("WALKLAB_STEPS"); ok {
		cfg.Simulation.Steps = n
	}
	if n, ok := envInt("WALKLAB_TRIALS"); ok {
		cfg.Simulation.Trials = n
	}
	if n, ok := envInt("WALKLAB_WORKERS"); ok {
		cfg.Simulation.Workers = n
	}
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Validate checks parameter ranges and the default distribution.
func (c Config) Validate() error {
	if c.Simulation.Steps <= 0 {
		return fmt.Errorf("%w: simulation.steps must be positive, got %d", walk.ErrInvalidArgument, c.Simulation.Steps)
	}
	if c.Simulation.Trials <= 0 {
		return fmt.Errorf("%w: simulation.trials must be positive, got %d", walk.ErrInvalidArgument, c.Simulation.Trials)
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("%w: simulation.workers must be non-negative, got %d", walk.ErrInvalidArgument, c.Simulation.Workers)
	}
	if err := c.Simulation.Distribution.Validate(); err != nil {
		return err
	}
	if _, err := walk.NewSource(c.Simulation.Source, 0); err != nil {
		return err
	}
	return nil
}

// Write marshals cfg to .walklab/config.yaml under root, creating the
// directory if needed.
func Write(root string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	dir := filepath.Join(root, Dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s directory: %w", Dir, err)
	}
	if err := os.WriteFile(Path(root), data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
