package main

import (
	"github.com/spf13/cobra"

	"github.com/walklab/walklab/internal/mcp"
)

func newMCPServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-server",
		Short: "Run walklab as an MCP server over stdio",
		Long: `Expose walk simulation, Monte Carlo ensembles, and Markov-chain
analysis as MCP tools over stdio transport.

Tools:
  simulate_walk     Simulate one random walk
  run_ensemble      Run a Monte Carlo ensemble, optionally saving it
  chain_stationary  Compute a chain's stationary distribution

The server blocks until the client disconnects or it is interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")

			server, err := mcp.NewServer(&mcp.Config{
				Name:    "walklab",
				Version: version,
				Root:    root,
			})
			if err != nil {
				return err
			}
			return server.Run(cmd.Context())
		},
	}
}
