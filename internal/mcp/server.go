// Package mcp provides an MCP (Model Context Protocol) server for
// walklab. It exposes walk simulation, Monte Carlo ensembles, and
// Markov-chain analysis as tools over stdio transport.
package mcp

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/walklab/walklab/internal/store"
)

// Server wraps the MCP SDK server and provides walklab-specific
// functionality.
type Server struct {
	server *sdk.Server
	store  *store.RunStore
	audit  *AuditLogger
	root   string
}

// Config holds server configuration.
type Config struct {
	Name    string // Server name (e.g., "walklab")
	Version string // Server version
	Root    string // Project root directory
}

// NewServer creates a new MCP server with walklab tools.
func NewServer(cfg *Config) (*Server, error) {
	runStore, err := store.Open(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to open run store: %w", err)
	}

	mcpServer := sdk.NewServer(&sdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, nil)

	s := &Server{
		server: mcpServer,
		store:  runStore,
		audit:  NewAuditLogger(cfg.Root),
		root:   cfg.Root,
	}
	s.registerTools()
	return s, nil
}

// Run starts the MCP server over stdio transport. This blocks until
// the client disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	defer s.Close()
	return s.server.Run(ctx, &sdk.StdioTransport{})
}

// Close releases the server's resources.
func (s *Server) Close() error {
	s.audit.Close()
	return s.store.Close()
}
