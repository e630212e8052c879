package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/walklab/walklab/internal/stats"
	"github.com/walklab/walklab/internal/walk"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "walklab",
		Short: "Random-walk and Markov-chain Monte Carlo lab",
		Long: `walklab simulates 2D lattice random walks and finite Markov chains,
collects displacement statistics over Monte Carlo ensembles, and renders
the results as charts.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("root", ".", "Project root directory")
	rootCmd.PersistentFlags().String("log-level", "", "Log verbosity: info, debug, or trace (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(
		newVersionCmd(),
		newInitCmd(),
		newSimulateCmd(),
		newEnsembleCmd(),
		newSweepCmd(),
		newStatsCmd(),
		newPlotCmd(),
		newExportCmd(),
		newChainCmd(),
		newMCPServerCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"version": version})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "walklab version %s\n", version)
			}
		},
	}
}

// addDistributionFlags registers the four per-direction probability
// flags shared by the simulation commands.
func addDistributionFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("up", 0, "Probability of stepping up (all four omitted means the config default)")
	cmd.Flags().Float64("right", 0, "Probability of stepping right")
	cmd.Flags().Float64("down", 0, "Probability of stepping down")
	cmd.Flags().Float64("left", 0, "Probability of stepping left")
}

// distributionFromFlags returns the distribution given on the command
// line, or fallback when none of the four flags were set.
func distributionFromFlags(cmd *cobra.Command, fallback walk.StepDistribution) walk.StepDistribution {
	if !cmd.Flags().Changed("up") && !cmd.Flags().Changed("right") &&
		!cmd.Flags().Changed("down") && !cmd.Flags().Changed("left") {
		return fallback
	}
	up, _ := cmd.Flags().GetFloat64("up")
	right, _ := cmd.Flags().GetFloat64("right")
	down, _ := cmd.Flags().GetFloat64("down")
	left, _ := cmd.Flags().GetFloat64("left")
	return walk.StepDistribution{Up: up, Right: right, Down: down, Left: left}
}

// seedFromFlags returns the --seed value, drawing a crypto-random seed
// when the flag was not given.
func seedFromFlags(cmd *cobra.Command) (int64, error) {
	if cmd.Flags().Changed("seed") {
		return cmd.Flags().GetInt64("seed")
	}
	seed, err := walk.NewSeed()
	if err != nil {
		return 0, fmt.Errorf("failed to draw seed: %w", err)
	}
	return seed, nil
}

// printSummary writes displacement statistics in the text output
// format shared by the ensemble and stats commands.
func printSummary(w io.Writer, s stats.Summary) {
	fmt.Fprintf(w, "  mean:    %.4f\n", s.Mean)
	fmt.Fprintf(w, "  std dev: %.4f\n", s.StdDev)
	fmt.Fprintf(w, "  min:     %.4f\n", s.Min)
	fmt.Fprintf(w, "  max:     %.4f\n", s.Max)
	fmt.Fprintf(w, "  p50:     %.4f\n", s.P50)
	fmt.Fprintf(w, "  p90:     %.4f\n", s.P90)
	fmt.Fprintf(w, "  p99:     %.4f\n", s.P99)
}
