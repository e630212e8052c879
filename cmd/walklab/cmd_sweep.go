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
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Measure RMS displacement across step counts",
		Long: `Run one ensemble per step count and report how the root-mean-square
displacement scales. For the symmetric walk it grows like sqrt(steps).

Examples:
  walklab sweep --counts 10,100,1000 --trials 500 --seed 42
  walklab sweep --counts 100,400,1600,6400 --workers 8 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")
			counts, _ := cmd.Flags().GetIntSlice("counts")

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
			points, err := montecarlo.ScalingSweep(mc, counts)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)
			logger.Debug("sweep complete",
				"counts", counts, "trials", mc.Trials, "seed", mc.Seed,
				"duration", elapsed)

			runLog := logging.NewRunLogger(filepath.Join(root, config.Dir), level)
			defer runLog.Close()
			runLog.Log(logging.RunEvent{
				Kind:       "sweep",
				Trials:     mc.Trials,
				Seed:       mc.Seed,
				DurationMs: elapsed.Milliseconds(),
			})

			out := struct {
				Trials int                     `json:"trials"`
				Seed   int64                   `json:"seed"`
				Source string                  `json:"source"`
				Points []montecarlo.SweepPoint `json:"points"`
			}{
				Trials: mc.Trials,
				Seed:   mc.Seed,
				Source: mc.Source,
				Points: points,
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(out)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Sweep: %d trials per step count (seed %d, %s)\n", out.Trials, out.Seed, out.Source)
			fmt.Fprintf(w, "%8s %12s %12s\n", "steps", "mean", "rms")
			for _, p := range points {
				fmt.Fprintf(w, "%8d %12.4f %12.4f\n", p.Steps, p.Mean, p.RMS)
			}
			return nil
		},
	}

	cmd.Flags().IntSlice("counts", []int{10, 100, 1000}, "Step counts to sweep")
	cmd.Flags().Int("trials", 0, "Trajectories per step count (0 uses the config default)")
	cmd.Flags().Int("workers", 0, "Concurrent trials (0 uses the config default)")
	cmd.Flags().Int64("seed", 0, "Base seed (omitted draws a crypto-random seed)")
	cmd.Flags().String("source", "", "Generator kind: pcg or mt19937 (empty uses the config default)")
	addDistributionFlags(cmd)

	return cmd
}
