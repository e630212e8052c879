package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/walklab/walklab/internal/config"
	"github.com/walklab/walklab/internal/logging"
	"github.com/walklab/walklab/internal/montecarlo"
	"github.com/walklab/walklab/internal/stats"
	"github.com/walklab/walklab/internal/store"
)

func newEnsembleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ensemble",
		Short: "Run a Monte Carlo ensemble of random walks",
		Long: `Run many independent walks and summarize their displacements.

The base seed fixes every trial's seed, so a run is reproducible
regardless of --workers.

Examples:
  walklab ensemble --steps 1000 --trials 500 --seed 42
  walklab ensemble --trials 2000 --workers 8 --save
  walklab ensemble --up 0.4 --right 0.2 --down 0.2 --left 0.2 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")
			save, _ := cmd.Flags().GetBool("save")

			cfg, err := config.Load(root)
			if err != nil {
				return err
			}

			level := cfg.Logging.Level
			if v, _ := cmd.Flags().GetString("log-level"); v != "" {
				level = v
			}
			logger := logging.NewLogger(level, cmd.ErrOrStderr())

			mc, err := ensembleConfig(cmd, cfg)
			if err != nil {
				return err
			}

			start := time.Now()
			res, err := montecarlo.Run(mc)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)
			logger.Debug("ensemble complete",
				"steps", mc.Steps, "trials", mc.Trials, "workers", mc.Workers,
				"seed", mc.Seed, "duration", elapsed)

			runLog := logging.NewRunLogger(filepath.Join(root, config.Dir), level)
			defer runLog.Close()
			runLog.Log(logging.RunEvent{
				Kind:       "ensemble",
				Steps:      mc.Steps,
				Trials:     mc.Trials,
				Seed:       mc.Seed,
				DurationMs: elapsed.Milliseconds(),
				Mean:       res.Summary.Mean,
			})

			runID := ""
			if save {
				runID, err = saveEnsemble(cmd, root, mc, res)
				if err != nil {
					return err
				}
				logger.Debug("run saved", "run_id", runID)
			}

			out := struct {
				Steps   int           `json:"steps"`
				Trials  int           `json:"trials"`
				Seed    int64         `json:"seed"`
				Source  string        `json:"source"`
				Summary stats.Summary `json:"summary"`
				RunID   string        `json:"run_id,omitempty"`
			}{
				Steps:   mc.Steps,
				Trials:  mc.Trials,
				Seed:    mc.Seed,
				Source:  mc.Source,
				Summary: res.Summary,
				RunID:   runID,
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(out)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Ensemble: %d trials of %d positions (seed %d, %s)\n",
				out.Trials, out.Steps, out.Seed, out.Source)
			printSummary(w, res.Summary)
			if runID != "" {
				fmt.Fprintf(w, "Saved run %s\n", runID)
			}
			return nil
		},
	}

	cmd.Flags().Int("steps", 0, "Positions per trajectory (0 uses the config default)")
	cmd.Flags().Int("trials", 0, "Number of trajectories (0 uses the config default)")
	cmd.Flags().Int("workers", 0, "Concurrent trials (0 uses the config default)")
	cmd.Flags().Int64("seed", 0, "Base seed (omitted draws a crypto-random seed)")
	cmd.Flags().String("source", "", "Generator kind: pcg or mt19937 (empty uses the config default)")
	cmd.Flags().Bool("save", false, "Persist the run and its samples to the run store")
	addDistributionFlags(cmd)

	return cmd
}

// ensembleConfig merges flags with config defaults into a montecarlo
// configuration.
func ensembleConfig(cmd *cobra.Command, cfg config.Config) (montecarlo.Config, error) {
	steps, _ := cmd.Flags().GetInt("steps")
	if steps == 0 {
		steps = cfg.Simulation.Steps
	}
	trials, _ := cmd.Flags().GetInt("trials")
	if trials == 0 {
		trials = cfg.Simulation.Trials
	}
	workers, _ := cmd.Flags().GetInt("workers")
	if workers == 0 {
		workers = cfg.Simulation.Workers
	}
	sourceKind, _ := cmd.Flags().GetString("source")
	if sourceKind == "" {
		sourceKind = cfg.Simulation.Source
	}

	seed, err := seedFromFlags(cmd)
	if err != nil {
		return montecarlo.Config{}, err
	}

	return montecarlo.Config{
		Steps:        steps,
		Trials:       trials,
		Workers:      workers,
		Distribution: distributionFromFlags(cmd, cfg.Simulation.Distribution),
		Seed:         seed,
		Source:       sourceKind,
	}, nil
}

// saveEnsemble persists the ensemble result and returns the run id.
func saveEnsemble(cmd *cobra.Command, root string, mc montecarlo.Config, res *montecarlo.Result) (string, error) {
	st, err := store.Open(root)
	if err != nil {
		return "", err
	}
	defer st.Close()

	run := store.Run{
		CreatedAt:    time.Now(),
		Steps:        mc.Steps,
		Trials:       mc.Trials,
		Seed:         mc.Seed,
		Source:       mc.Source,
		Distribution: mc.Distribution,
		Mean:         res.Summary.Mean,
		StdDev:       res.Summary.StdDev,
	}
	run.ID = store.NewRunID(run.Steps, run.Trials, run.Seed, run.CreatedAt)

	samples := make([]store.Sample, len(res.Trials))
	for i, tr := range res.Trials {
		samples[i] = store.Sample{
			Trial:        tr.Trial,
			Displacement: tr.Displacement,
			FinalX:       tr.Final.X,
			FinalY:       tr.Final.Y,
		}
	}
	if err := st.SaveRun(cmd.Context(), run, samples); err != nil {
		return "", fmt.Errorf("failed to save run: %w", err)
	}
	return run.ID, nil
}
