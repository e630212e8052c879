package mcp

import (
	"context"
	"fmt"
	"strconv"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/walklab/walklab/internal/markov"
	"github.com/walklab/walklab/internal/montecarlo"
	"github.com/walklab/walklab/internal/store"
	"github.com/walklab/walklab/internal/walk"
)

// maxInlinePositions caps how many positions simulate_walk inlines in
// its output.
const maxInlinePositions = 1000

// registerTools registers all walklab MCP tools with the server.
func (s *Server) registerTools() {
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "simulate_walk",
		Description: "Simulate one 2D lattice random walk and return its displacement and final position",
	}, s.handleSimulateWalk)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "run_ensemble",
		Description: "Run a Monte Carlo ensemble of random walks and return displacement summary statistics",
	}, s.handleRunEnsemble)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "chain_stationary",
		Description: "Compute the stationary distribution of a finite Markov chain by power iteration",
	}, s.handleChainStationary)
}

// resolveSeed returns the caller's seed or draws a crypto-random one.
func resolveSeed(seed *int64) (int64, error) {
	if seed != nil {
		return *seed, nil
	}
	return walk.NewSeed()
}

// resolveDistribution maps the four optional probability fields to a
// StepDistribution, defaulting to symmetric when all are omitted.
func resolveDistribution(up, right, down, left float64) walk.StepDistribution {
	if up == 0 && right == 0 && down == 0 && left == 0 {
		return walk.Symmetric()
	}
	return walk.StepDistribution{Up: up, Right: right, Down: down, Left: left}
}

func (s *Server) handleSimulateWalk(ctx context.Context, req *sdk.CallToolRequest, args SimulateWalkInput) (_ *sdk.CallToolResult, _ SimulateWalkOutput, retErr error) {
	start := time.Now()
	defer func() {
		s.audit.Record("simulate_walk", start, retErr, map[string]string{
			"steps": strconv.Itoa(args.Steps),
		})
	}()

	seed, err := resolveSeed(args.Seed)
	if err != nil {
		return nil, SimulateWalkOutput{}, err
	}
	src, err := walk.NewSource(args.Source, seed)
	if err != nil {
		return nil, SimulateWalkOutput{}, err
	}

	traj, err := walk.Simulate(args.Steps, resolveDistribution(args.Up, args.Right, args.Down, args.Left), src)
	if err != nil {
		return nil, SimulateWalkOutput{}, err
	}

	out := SimulateWalkOutput{
		Steps:        traj.Steps(),
		Seed:         seed,
		Displacement: traj.Displacement(),
		Final:        traj.Final(),
	}
	if len(traj) <= maxInlinePositions {
		out.Positions = traj
	}
	return nil, out, nil
}

func (s *Server) handleRunEnsemble(ctx context.Context, req *sdk.CallToolRequest, args RunEnsembleInput) (_ *sdk.CallToolResult, _ RunEnsembleOutput, retErr error) {
	start := time.Now()
	defer func() {
		s.audit.Record("run_ensemble", start, retErr, map[string]string{
			"steps":  strconv.Itoa(args.Steps),
			"trials": strconv.Itoa(args.Trials),
			"save":   strconv.FormatBool(args.Save),
		})
	}()

	seed, err := resolveSeed(args.Seed)
	if err != nil {
		return nil, RunEnsembleOutput{}, err
	}

	cfg := montecarlo.Config{
		Steps:        args.Steps,
		Trials:       args.Trials,
		Distribution: resolveDistribution(args.Up, args.Right, args.Down, args.Left),
		Seed:         seed,
		Source:       args.Source,
	}
	res, err := montecarlo.Run(cfg)
	if err != nil {
		return nil, RunEnsembleOutput{}, err
	}

	out := RunEnsembleOutput{
		Steps:   args.Steps,
		Trials:  args.Trials,
		Seed:    seed,
		Summary: res.Summary,
	}

	if args.Save {
		run := store.Run{
			CreatedAt:    time.Now(),
			Steps:        args.Steps,
			Trials:       args.Trials,
			Seed:         seed,
			Source:       cfg.Source,
			Distribution: cfg.Distribution,
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
		if err := s.store.SaveRun(ctx, run, samples); err != nil {
			return nil, RunEnsembleOutput{}, fmt.Errorf("failed to save run: %w", err)
		}
		out.RunID = run.ID
	}
	return nil, out, nil
}

func (s *Server) handleChainStationary(ctx context.Context, req *sdk.CallToolRequest, args ChainStationaryInput) (_ *sdk.CallToolResult, _ ChainStationaryOutput, retErr error) {
	start := time.Now()
	defer func() {
		s.audit.Record("chain_stationary", start, retErr, map[string]string{
			"states": strconv.Itoa(len(args.States)),
		})
	}()

	maxIter := args.MaxIter
	if maxIter <= 0 {
		maxIter = 10000
	}
	tol := args.Tol
	if tol <= 0 {
		tol = 1e-10
	}

	chain := &markov.Chain{States: args.States, Transitions: args.Transitions}
	pi, err := chain.Stationary(maxIter, tol)
	if err != nil {
		return nil, ChainStationaryOutput{}, err
	}

	return nil, ChainStationaryOutput{
		States:     args.States,
		Stationary: pi,
		Iterations: maxIter,
	}, nil
}
