// Package markov implements finite Markov chains over named states.
//
// The lattice random walk is the i.i.d. special case: a chain whose
// rows are all the same step distribution.
package markov

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/walklab/walklab/internal/sampler"
	"github.com/walklab/walklab/internal/walk"
)

// Chain is a finite Markov chain: named states and a row-stochastic
// transition matrix. Transitions[i][j] is the probability of moving
// from state i to state j.
type Chain struct {
	States      []string    `json:"states" yaml:"states"`
	Transitions [][]float64 `json:"transitions" yaml:"transitions"`
}

// Load reads a chain definition from a YAML file and validates it.
func Load(path string) (*Chain, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chain file: %w", err)
	}
	var c Chain
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse chain file: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that the transition matrix is square, non-negative,
// and row-stochastic within walk.SumTolerance.
func (c *Chain) Validate() error {
	n := len(c.States)
	if n == 0 {
		return fmt.Errorf("%w: chain has no states", walk.ErrInvalidArgument)
	}
	if len(c.Transitions) != n {
		return fmt.Errorf("%w: %d states but %d transition rows", walk.ErrInvalidArgument, n, len(c.Transitions))
	}
	for i, row := range c.Transitions {
		if len(row) != n {
			return fmt.Errorf("%w: row %q has %d entries, want %d", walk.ErrInvalidArgument, c.States[i], len(row), n)
		}
		sum := 0.0
		for j, p := range row {
			if math.IsNaN(p) || p < 0 {
				return fmt.Errorf("%w: transition %q -> %q is invalid (%v)", walk.ErrInvalidArgument, c.States[i], c.States[j], p)
			}
			sum += p
		}
		if math.Abs(sum-1) > walk.SumTolerance {
			return fmt.Errorf("%w: row %q sums to %v, want 1", walk.ErrInvalidArgument, c.States[i], sum)
		}
	}
	return nil
}

// StateIndex returns the index of the named state, or -1 when absent.
func (c *Chain) StateIndex(name string) int {
	for i, s := range c.States {
		if s == name {
			return i
		}
	}
	return -1
}

// Walk produces a sequence of steps state indexes starting from start,
// drawing each transition from src. Like walk.Simulate it validates
// before consuming any entropy and is reproducible under a fixed
// source state.
func (c *Chain) Walk(steps, start int, src walk.Source) ([]int, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if steps <= 0 {
		return nil, fmt.Errorf("%w: steps must be positive, got %d", walk.ErrInvalidArgument, steps)
	}
	if start < 0 || start >= len(c.States) {
		return nil, fmt.Errorf("%w: start state %d out of range", walk.ErrInvalidArgument, start)
	}

	rows := make([]sampler.Cumulative, len(c.States))
	for i, row := range c.Transitions {
		if err := rows[i].Init(row); err != nil {
			return nil, fmt.Errorf("%w: row %q: %v", walk.ErrInvalidArgument, c.States[i], err)
		}
	}

	seq := make([]int, steps)
	seq[0] = start
	for i := 1; i < steps; i++ {
		next, err := rows[seq[i-1]].Draw(src.Float64())
		if err != nil {
			return nil, err
		}
		seq[i] = next
	}
	return seq, nil
}

// Occupancy returns the empirical state frequencies of seq over n
// states. The frequencies sum to 1 for a non-empty sequence.
func Occupancy(seq []int, n int) []float64 {
	freq := make([]float64, n)
	if len(seq) == 0 {
		return freq
	}
	for _, s := range seq {
		freq[s]++
	}
	for i := range freq {
		freq[i] /= float64(len(seq))
	}
	return freq
}
