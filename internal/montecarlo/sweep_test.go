package montecarlo

import (
	"errors"
	"testing"

	"github.com/walklab/walklab/internal/walk"
)

func TestScalingSweepShape(t *testing.T) {
	cfg := Config{
		Trials:       200,
		Distribution: walk.Symmetric(),
		Seed:         3,
	}
	stepCounts := []int{101, 401}

	points, err := ScalingSweep(cfg, stepCounts)
	if err != nil {
		t.Fatalf("ScalingSweep: %v", err)
	}
	if len(points) != len(stepCounts) {
		t.Fatalf("got %d points, want %d", len(points), len(stepCounts))
	}
	for i, p := range points {
		if p.Steps != stepCounts[i] {
			t.Errorf("point %d has steps %d, want %d", i, p.Steps, stepCounts[i])
		}
	}
}

func TestScalingSweepDiffusive(t *testing.T) {
	// Quadrupling the step count should roughly double the RMS
	// displacement for the symmetric walk. Loose bound, not exact.
	cfg := Config{
		Trials:       1500,
		Workers:      4,
		Distribution: walk.Symmetric(),
		Seed:         11,
	}

	points, err := ScalingSweep(cfg, []int{101, 401})
	if err != nil {
		t.Fatalf("ScalingSweep: %v", err)
	}

	ratio := points[1].RMS / points[0].RMS
	if ratio < 1.6 || ratio > 2.4 {
		t.Errorf("RMS ratio for 4x steps = %.2f, want about 2", ratio)
	}
	if points[0].Mean <= 0 || points[1].Mean <= points[0].Mean {
		t.Errorf("mean displacement did not grow: %.2f then %.2f", points[0].Mean, points[1].Mean)
	}
}

func TestScalingSweepValidates(t *testing.T) {
	cfg := Config{Trials: 10, Distribution: walk.Symmetric()}
	if _, err := ScalingSweep(cfg, nil); !errors.Is(err, walk.ErrInvalidArgument) {
		t.Errorf("ScalingSweep(nil) = %v, want ErrInvalidArgument", err)
	}
	if _, err := ScalingSweep(cfg, []int{0}); !errors.Is(err, walk.ErrInvalidArgument) {
		t.Errorf("ScalingSweep with zero steps = %v, want ErrInvalidArgument", err)
	}
}

func TestScalingSweepReproducible(t *testing.T) {
	cfg := Config{Trials: 50, Distribution: walk.Symmetric(), Seed: 21}
	a, err := ScalingSweep(cfg, []int{51, 101})
	if err != nil {
		t.Fatalf("ScalingSweep: %v", err)
	}
	b, err := ScalingSweep(cfg, []int{51, 101})
	if err != nil {
		t.Fatalf("ScalingSweep: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sweep point %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
