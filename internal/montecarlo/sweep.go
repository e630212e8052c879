package montecarlo

import (
	"fmt"

	"github.com/walklab/walklab/internal/stats"
	"github.com/walklab/walklab/internal/walk"
)

// SweepPoint records ensemble displacement statistics at one step
// count.
type SweepPoint struct {
	Steps int     `json:"steps"`
	Mean  float64 `json:"mean"`
	RMS   float64 `json:"rms"`
}

// ScalingSweep runs one ensemble per step count and records the mean
// and root-mean-square displacement. For the symmetric distribution
// the RMS displacement grows like sqrt(steps), which is what the sweep
// is meant to demonstrate.
//
// Each step count gets its own seed stream derived from cfg.Seed, so
// the sweep as a whole is reproducible.
func ScalingSweep(cfg Config, stepCounts []int) ([]SweepPoint, error) {
	if len(stepCounts) == 0 {
		return nil, fmt.Errorf("%w: no step counts", walk.ErrInvalidArgument)
	}

	points := make([]SweepPoint, len(stepCounts))
	for i, n := range stepCounts {
		c := cfg
		c.Steps = n
		c.Seed = TrialSeed(cfg.Seed, i)
		res, err := Run(c)
		if err != nil {
			return nil, err
		}
		points[i] = SweepPoint{
			Steps: n,
			Mean:  res.Summary.Mean,
			RMS:   stats.RMS(res.Displacements()),
		}
	}
	return points, nil
}
