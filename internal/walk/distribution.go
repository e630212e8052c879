package walk

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArgument indicates a simulation request had invalid
// parameters. All validation failures wrap this error.
var ErrInvalidArgument = errors.New("invalid argument")

// SumTolerance is the floating tolerance used when checking that
// probabilities sum to 1.
const SumTolerance = 1e-9

// StepDistribution assigns a probability to each lattice direction.
// A valid distribution has non-negative probabilities summing to 1
// within SumTolerance.
type StepDistribution struct {
	Up    float64 `json:"up" yaml:"up"`
	Right float64 `json:"right" yaml:"right"`
	Down  float64 `json:"down" yaml:"down"`
	Left  float64 `json:"left" yaml:"left"`
}

// Symmetric returns the unbiased distribution (1/4 per direction).
func Symmetric() StepDistribution {
	return StepDistribution{Up: 0.25, Right: 0.25, Down: 0.25, Left: 0.25}
}

// Weights returns the probabilities indexed by Direction.
func (s StepDistribution) Weights() []float64 {
	return []float64{s.Up, s.Right, s.Down, s.Left}
}

// Validate checks that all probabilities are finite and non-negative
// and that they sum to 1 within SumTolerance.
func (s StepDistribution) Validate() error {
	sum := 0.0
	for d, p := range s.Weights() {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return fmt.Errorf("%w: probability for %s is not finite (%v)", ErrInvalidArgument, Direction(d), p)
		}
		if p < 0 {
			return fmt.Errorf("%w: probability for %s is negative (%v)", ErrInvalidArgument, Direction(d), p)
		}
		sum += p
	}
	if math.Abs(sum-1) > SumTolerance {
		return fmt.Errorf("%w: probabilities sum to %v, want 1", ErrInvalidArgument, sum)
	}
	return nil
}
