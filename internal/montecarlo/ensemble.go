// Package montecarlo drives repeated random-walk simulations and
// collects displacement statistics over the resulting ensembles.
package montecarlo

import (
	"fmt"
	"sync"

	"github.com/walklab/walklab/internal/stats"
	"github.com/walklab/walklab/internal/walk"
)

// Config describes one Monte Carlo ensemble.
type Config struct {
	// Steps is the number of positions per trajectory.
	Steps int

	// Trials is the number of independent trajectories.
	Trials int

	// Workers caps the number of concurrent trials. Values below 2 run
	// the ensemble sequentially.
	Workers int

	// Distribution is the per-step direction distribution.
	Distribution walk.StepDistribution

	// Seed is the base seed. Trial i derives its own seed from it, so
	// results are identical regardless of Workers.
	Seed int64

	// Source names the generator kind: "pcg" (default) or "mt19937".
	Source string
}

// Trial is the outcome of a single trajectory. The trajectory itself
// is discarded once its displacement and final point are extracted.
type Trial struct {
	Trial        int        `json:"trial"`
	Displacement float64    `json:"displacement"`
	Final        walk.Point `json:"final"`
}

// Result is a completed ensemble.
type Result struct {
	Steps   int           `json:"steps"`
	Seed    int64         `json:"seed"`
	Trials  []Trial       `json:"trials"`
	Summary stats.Summary `json:"summary"`
}

// Displacements returns the displacement samples in trial order.
func (r *Result) Displacements() []float64 {
	out := make([]float64, len(r.Trials))
	for i, tr := range r.Trials {
		out[i] = tr.Displacement
	}
	return out
}

// TrialSeed derives the seed for trial i from the base seed. The
// golden-ratio stride keeps neighboring trial seeds far apart in the
// generator's seed space.
func TrialSeed(base int64, i int) int64 {
	return int64(uint64(base) + uint64(i)*0x9E3779B97F4A7C15)
}

// Run executes the ensemble described by cfg. Configuration is
// validated up front; a failed validation runs no trials.
func Run(cfg Config) (*Result, error) {
	if cfg.Steps <= 0 {
		return nil, fmt.Errorf("%w: steps must be positive, got %d", walk.ErrInvalidArgument, cfg.Steps)
	}
	if cfg.Trials <= 0 {
		return nil, fmt.Errorf("%w: trials must be positive, got %d", walk.ErrInvalidArgument, cfg.Trials)
	}
	if err := cfg.Distribution.Validate(); err != nil {
		return nil, err
	}
	if _, err := walk.NewSource(cfg.Source, 0); err != nil {
		return nil, err
	}

	trials := make([]Trial, cfg.Trials)

	runTrial := func(i int) error {
		src, err := walk.NewSource(cfg.Source, TrialSeed(cfg.Seed, i))
		if err != nil {
			return err
		}
		traj, err := walk.Simulate(cfg.Steps, cfg.Distribution, src)
		if err != nil {
			return err
		}
		trials[i] = Trial{
			Trial:        i,
			Displacement: traj.Displacement(),
			Final:        traj.Final(),
		}
		return nil
	}

	if workers := min(cfg.Workers, cfg.Trials); workers >= 2 {
		indexes := make(chan int)
		errs := make(chan error, workers)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range indexes {
					if err := runTrial(i); err != nil {
						select {
						case errs <- err:
						default:
						}
					}
				}
			}()
		}
		for i := range trials {
			indexes <- i
		}
		close(indexes)
		wg.Wait()
		close(errs)
		if err := <-errs; err != nil {
			return nil, err
		}
	} else {
		for i := range trials {
			if err := runTrial(i); err != nil {
				return nil, err
			}
		}
	}

	result := &Result{
		Steps:  cfg.Steps,
		Seed:   cfg.Seed,
		Trials: trials,
	}
	result.Summary = stats.Summarize(result.Displacements())
	return result, nil
}
