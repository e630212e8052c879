package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/walklab/walklab/internal/stats"
	"github.com/walklab/walklab/internal/store"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stored runs and their displacement statistics",
		Long: `List saved ensemble runs, or recompute the full displacement summary
for one run from its stored samples.

Examples:
  walklab stats
  walklab stats --run 3fa85f64a1b2
  walklab stats --delete 3fa85f64a1b2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")
			runID, _ := cmd.Flags().GetString("run")
			deleteID, _ := cmd.Flags().GetString("delete")

			st, err := store.Open(root)
			if err != nil {
				return err
			}
			defer st.Close()

			ctx := cmd.Context()
			w := cmd.OutOrStdout()

			if deleteID != "" {
				if err := st.DeleteRun(ctx, deleteID); err != nil {
					return err
				}
				if jsonOut {
					return json.NewEncoder(w).Encode(map[string]string{"deleted": deleteID})
				}
				fmt.Fprintf(w, "Deleted run %s\n", deleteID)
				return nil
			}

			if runID != "" {
				run, err := st.GetRun(ctx, runID)
				if err != nil {
					return err
				}
				samples, err := st.Samples(ctx, runID)
				if err != nil {
					return err
				}
				displacements := make([]float64, len(samples))
				for i, sample := range samples {
					displacements[i] = sample.Displacement
				}
				summary := stats.Summarize(displacements)

				if jsonOut {
					return json.NewEncoder(w).Encode(struct {
						Run     store.Run     `json:"run"`
						Summary stats.Summary `json:"summary"`
					}{run, summary})
				}
				fmt.Fprintf(w, "Run %s: %d trials of %d positions (seed %d, %s)\n",
					run.ID, run.Trials, run.Steps, run.Seed, run.Source)
				fmt.Fprintf(w, "Created: %s\n", run.CreatedAt.Format(time.RFC3339))
				printSummary(w, summary)
				return nil
			}

			runs, err := st.ListRuns(ctx)
			if err != nil {
				return err
			}

			if jsonOut {
				if runs == nil {
					runs = []store.Run{}
				}
				return json.NewEncoder(w).Encode(runs)
			}

			if len(runs) == 0 {
				fmt.Fprintln(w, "No saved runs. Use 'walklab ensemble --save' to record one.")
				return nil
			}
			fmt.Fprintf(w, "%-12s %-20s %8s %8s %12s %10s\n",
				"id", "created", "steps", "trials", "mean", "std dev")
			for _, run := range runs {
				fmt.Fprintf(w, "%-12s %-20s %8d %8d %12.4f %10.4f\n",
					run.ID, run.CreatedAt.Format("2006-01-02 15:04:05"),
					run.Steps, run.Trials, run.Mean, run.StdDev)
			}
			return nil
		},
	}

	cmd.Flags().String("run", "", "Show the full summary for one run id")
	cmd.Flags().String("delete", "", "Delete the run with this id")

	return cmd
}
