package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/walklab/walklab/internal/config"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a walklab project in the current directory",
		Long: `Create the .walklab directory with a default config.yaml.

Existing configuration is left untouched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")

			path := config.Path(root)
			created := false
			if _, err := os.Stat(path); os.IsNotExist(err) {
				if err := config.Write(root, config.Default()); err != nil {
					return err
				}
				created = true
			} else if err != nil {
				return fmt.Errorf("stat config: %w", err)
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"config":  path,
					"created": created,
				})
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized walklab project (%s)\n", path)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "walklab project already initialized (%s)\n", path)
			}
			return nil
		},
	}
}
