package walk

import (
	"fmt"

	"github.com/walklab/walklab/internal/sampler"
)

// Simulate produces one random-walk trajectory of numSteps positions.
//
// The trajectory starts at the origin. Every subsequent position is
// obtained by drawing a direction from dist, independently per step,
// and adding its unit vector to the previous position.
//
// # Determinism
//
// Given a Source in a fixed internal state, the result is fully
// reproducible. Each call consumes numSteps-1 draws, so calling
// Simulate again with the same Source produces a different trajectory.
//
// # Errors
//
// A non-positive numSteps or an invalid distribution returns an error
// wrapping ErrInvalidArgument. Validation happens before any entropy
// is consumed, so a failed call leaves the Source untouched.
func Simulate(numSteps int, dist StepDistribution, src Source) (Trajectory, error) {
	if numSteps <= 0 {
		return nil, fmt.Errorf("%w: num steps must be positive, got %d", ErrInvalidArgument, numSteps)
	}
	if err := dist.Validate(); err != nil {
		return nil, err
	}

	var cum sampler.Cumulative
	if err := cum.Init(dist.Weights()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	traj := make(Trajectory, numSteps)
	traj[0] = Point{}
	for i := 1; i < numSteps; i++ {
		d, err := cum.Draw(src.Float64())
		if err != nil {
			return nil, err
		}
		traj[i] = traj[i-1].Add(Direction(d).Step())
	}
	return traj, nil
}
