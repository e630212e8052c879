// Package sampler implements categorical sampling over weighted
// distributions.
package sampler

import (
	"errors"
	"fmt"
	"math"
)

// ErrNegativeWeight indicates a weight below zero or NaN.
var ErrNegativeWeight = errors.New("negative weight")

// ErrZeroTotal indicates all weights are zero.
var ErrZeroTotal = errors.New("total weight is zero")

// ErrOutOfRange indicates a draw value outside [0, 1).
var ErrOutOfRange = errors.New("draw out of range")

// Cumulative samples indexes from a weighted distribution by a linear
// scan over cumulative weights. Initialization and each draw are O(n),
// which is fine for the small categorical distributions used here.
//
// Weights need not sum to 1; draws are scaled by the running total.
// An index with zero weight is never returned.
type Cumulative struct {
	cum   []float64
	total float64
	last  int // last index with nonzero weight
}

// Init prepares the sampler for the given weights. A previously
// initialized sampler can be reused; its buffer is recycled.
func (c *Cumulative) Init(weights []float64) error {
	if cap(c.cum) >= len(weights) {
		c.cum = c.cum[:0]
	} else {
		c.cum = make([]float64, 0, len(weights))
	}
	c.total = 0
	c.last = -1

	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("%w: weights[%d] = %v", ErrNegativeWeight, i, w)
		}
		if w > 0 {
			c.last = i
		}
		c.total += w
		c.cum = append(c.cum, c.total)
	}

	if c.total <= 0 {
		return ErrZeroTotal
	}
	return nil
}

// Draw maps a uniform variate u in [0, 1) to a weighted index.
func (c *Cumulative) Draw(u float64) (int, error) {
	if u < 0 || u >= 1 || math.IsNaN(u) {
		return 0, fmt.Errorf("%w: %v", ErrOutOfRange, u)
	}
	if c.last < 0 {
		return 0, ErrZeroTotal
	}

	value := u * c.total
	for i, cw := range c.cum {
		if value < cw {
			return i, nil
		}
	}

	// Floating rounding can push u*total up to the final cumulative
	// weight. Fall back to the last index with nonzero weight.
	return c.last, nil
}
