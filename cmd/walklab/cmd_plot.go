package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/walklab/walklab/internal/config"
	"github.com/walklab/walklab/internal/logging"
	"github.com/walklab/walklab/internal/montecarlo"
	"github.com/walklab/walklab/internal/plot"
	"github.com/walklab/walklab/internal/stats"
	"github.com/walklab/walklab/internal/walk"
)

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Render walk charts to an HTML page",
		Long: `Simulate walks and render three charts into one HTML page: sample
paths in the plane, the ensemble displacement histogram, and the RMS
displacement scaling curve.

Examples:
  walklab plot --seed 42
  walklab plot --paths 8 --trials 2000 --counts 10,100,1000,10000
  walklab plot --serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")
			paths, _ := cmd.Flags().GetInt("paths")
			bins, _ := cmd.Flags().GetInt("bins")
			counts, _ := cmd.Flags().GetIntSlice("counts")
			serve, _ := cmd.Flags().GetBool("serve")

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

			// Sample paths share the ensemble's seed stream.
			trajs := make([]walk.Trajectory, paths)
			for i := range trajs {
				src, err := walk.NewSource(mc.Source, montecarlo.TrialSeed(mc.Seed, i))
				if err != nil {
					return err
				}
				trajs[i], err = walk.Simulate(mc.Steps, mc.Distribution, src)
				if err != nil {
					return err
				}
			}

			res, err := montecarlo.Run(mc)
			if err != nil {
				return err
			}
			hist := stats.NewHistogram(res.Displacements(), bins)

			points, err := montecarlo.ScalingSweep(mc, counts)
			if err != nil {
				return err
			}

			dir := filepath.Join(root, cfg.Plot.OutputDir)
			page, err := plot.WritePage(dir, "walklab.html",
				plot.TrajectoryPaths(trajs),
				plot.DisplacementHistogram(hist),
				plot.ScalingCurve(points),
			)
			if err != nil {
				return err
			}
			logger.Debug("charts rendered", "path", page, "paths", paths, "trials", mc.Trials)

			if jsonOut {
				if err := json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"page": page}); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Charts written to %s\n", page)
			}

			if !serve {
				return nil
			}

			server := plot.NewServer(dir)
			logger.Info("serving charts, press Ctrl-C to stop")
			errCh := make(chan error, 1)
			go func() { errCh <- server.ListenAndServe(cmd.Context()) }()
			for server.Addr() == "" {
				select {
				case err := <-errCh:
					return err
				case <-time.After(10 * time.Millisecond):
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Serving http://%s/walklab.html\n", server.Addr())
			if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().Int("paths", 5, "Number of sample paths to draw")
	cmd.Flags().Int("bins", 20, "Histogram bin count")
	cmd.Flags().IntSlice("counts", []int{10, 100, 1000}, "Step counts for the scaling curve")
	cmd.Flags().Bool("serve", false, "Serve the rendered page over HTTP until interrupted")
	cmd.Flags().Int("steps", 0, "Positions per trajectory (0 uses the config default)")
	cmd.Flags().Int("trials", 0, "Trajectories in the histogram ensemble (0 uses the config default)")
	cmd.Flags().Int("workers", 0, "Concurrent trials (0 uses the config default)")
	cmd.Flags().Int64("seed", 0, "Base seed (omitted draws a crypto-random seed)")
	cmd.Flags().String("source", "", "Generator kind: pcg or mt19937 (empty uses the config default)")
	addDistributionFlags(cmd)

	return cmd
}
