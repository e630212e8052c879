package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/walklab/walklab/internal/store"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a saved run's samples",
		Long: `Write the displacement samples of a saved run to a file, either as
JSON lines or as an Arrow IPC file for columnar tooling.

Examples:
  walklab export --run 3fa85f64a1b2 --out samples.jsonl
  walklab export --run 3fa85f64a1b2 --format arrow --out samples.arrow`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")
			runID, _ := cmd.Flags().GetString("run")
			format, _ := cmd.Flags().GetString("format")
			outPath, _ := cmd.Flags().GetString("out")

			if runID == "" {
				return fmt.Errorf("--run is required")
			}
			if outPath == "" {
				return fmt.Errorf("--out is required")
			}

			st, err := store.Open(root)
			if err != nil {
				return err
			}
			defer st.Close()

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}
			defer f.Close()

			ctx := cmd.Context()
			switch format {
			case "jsonl":
				err = st.ExportJSONL(ctx, runID, f)
			case "arrow":
				err = st.ExportArrow(ctx, runID, f)
			default:
				return fmt.Errorf("unknown format %q (want jsonl or arrow)", format)
			}
			if err != nil {
				return err
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{
					"run":    runID,
					"format": format,
					"out":    outPath,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported run %s to %s (%s)\n", runID, outPath, format)
			return nil
		},
	}

	cmd.Flags().String("run", "", "Run id to export")
	cmd.Flags().String("format", "jsonl", "Output format: jsonl or arrow")
	cmd.Flags().String("out", "", "Output file path")

	return cmd
}
