// Package mcp provides an MCP (Model Context Protocol) server for
// walklab.
package mcp

import (
	"github.com/walklab/walklab/internal/stats"
	"github.com/walklab/walklab/internal/walk"
)

// SimulateWalkInput defines the input for the simulate_walk tool.
type SimulateWalkInput struct {
	Steps  int     `json:"steps" jsonschema:"Number of positions in the trajectory (must be positive)"`
	Seed   *int64  `json:"seed,omitempty" jsonschema:"Generator seed; omitted draws a crypto-random seed"`
	Source string  `json:"source,omitempty" jsonschema:"Generator kind: 'pcg' (default) or 'mt19937'"`
	Up     float64 `json:"up,omitempty" jsonschema:"Probability of stepping up; all four omitted means 0.25 each"`
	Right  float64 `json:"right,omitempty" jsonschema:"Probability of stepping right"`
	Down   float64 `json:"down,omitempty" jsonschema:"Probability of stepping down"`
	Left   float64 `json:"left,omitempty" jsonschema:"Probability of stepping left"`
}

// SimulateWalkOutput defines the output for the simulate_walk tool.
type SimulateWalkOutput struct {
	Steps        int          `json:"steps" jsonschema:"Number of positions in the trajectory"`
	Seed         int64        `json:"seed" jsonschema:"Seed used for the walk"`
	Displacement float64      `json:"displacement" jsonschema:"Euclidean distance from origin to final position"`
	Final        walk.Point   `json:"final" jsonschema:"Final lattice position"`
	Positions    []walk.Point `json:"positions,omitempty" jsonschema:"Full trajectory; included for walks of at most 1000 positions"`
}

// RunEnsembleInput defines the input for the run_ensemble tool.
type RunEnsembleInput struct {
	Steps  int     `json:"steps" jsonschema:"Number of positions per trajectory"`
	Trials int     `json:"trials" jsonschema:"Number of independent trajectories"`
	Seed   *int64  `json:"seed,omitempty" jsonschema:"Base seed; omitted draws a crypto-random seed"`
	Source string  `json:"source,omitempty" jsonschema:"Generator kind: 'pcg' (default) or 'mt19937'"`
	Up     float64 `json:"up,omitempty" jsonschema:"Probability of stepping up; all four omitted means 0.25 each"`
	Right  float64 `json:"right,omitempty" jsonschema:"Probability of stepping right"`
	Down   float64 `json:"down,omitempty" jsonschema:"Probability of stepping down"`
	Left   float64 `json:"left,omitempty" jsonschema:"Probability of stepping left"`
	Save   bool    `json:"save,omitempty" jsonschema:"Persist the run and its samples to the project store"`
}

// RunEnsembleOutput defines the output for the run_ensemble tool.
type RunEnsembleOutput struct {
	Steps   int           `json:"steps"`
	Trials  int           `json:"trials"`
	Seed    int64         `json:"seed"`
	Summary stats.Summary `json:"summary" jsonschema:"Displacement summary statistics"`
	RunID   string        `json:"run_id,omitempty" jsonschema:"Store id of the persisted run when save was requested"`
}

// ChainStationaryInput defines the input for the chain_stationary tool.
type ChainStationaryInput struct {
	States      []string    `json:"states" jsonschema:"State names"`
	Transitions [][]float64 `json:"transitions" jsonschema:"Row-stochastic transition matrix; transitions[i][j] is the probability of moving from state i to state j"`
	MaxIter     int         `json:"max_iter,omitempty" jsonschema:"Power iteration budget (default 10000)"`
	Tol         float64     `json:"tol,omitempty" jsonschema:"L1 convergence tolerance (default 1e-10)"`
}

// ChainStationaryOutput defines the output for the chain_stationary
// tool.
type ChainStationaryOutput struct {
	States     []string  `json:"states"`
	Stationary []float64 `json:"stationary" jsonschema:"Stationary probability per state"`
	Iterations int       `json:"iterations,omitempty" jsonschema:"Maximum iterations allowed"`
}
