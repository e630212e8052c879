package walk

import (
	"errors"
	"math"
	"testing"
)

// countingSource wraps a Source and records how many draws happened.
type countingSource struct {
	src   Source
	draws int
}

func (c *countingSource) Float64() float64 {
	c.draws++
	return c.src.Float64()
}

func TestSimulateLengthAndOrigin(t *testing.T) {
	for _, steps := range []int{1, 2, 10, 1000} {
		traj, err := Simulate(steps, Symmetric(), NewPCG(42))
		if err != nil {
			t.Fatalf("Simulate(%d): %v", steps, err)
		}
		if traj.Steps() != steps {
			t.Errorf("Simulate(%d) returned %d positions", steps, traj.Steps())
		}
		if traj[0] != (Point{}) {
			t.Errorf("Simulate(%d) starts at %v, want origin", steps, traj[0])
		}
	}
}

func TestSimulateUnitSteps(t *testing.T) {
	traj, err := Simulate(500, StepDistribution{Up: 0.3, Right: 0.3, Down: 0.3, Left: 0.1}, NewPCG(7))
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	for i := 1; i < len(traj); i++ {
		dx := traj[i].X - traj[i-1].X
		dy := traj[i].Y - traj[i-1].Y
		manhattan := abs(dx) + abs(dy)
		if manhattan != 1 {
			t.Fatalf("step %d moved from %v to %v (manhattan %d), want unit step", i, traj[i-1], traj[i], manhattan)
		}
	}
}

func TestSimulateDegenerateDistribution(t *testing.T) {
	const steps = 10
	traj, err := Simulate(steps, StepDistribution{Up: 1}, NewPCG(1))
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	for i, p := range traj {
		want := Point{X: 0, Y: i}
		if p != want {
			t.Errorf("position %d = %v, want %v", i, p, want)
		}
	}
}

func TestSimulateDeterminism(t *testing.T) {
	dist := StepDistribution{Up: 0.4, Right: 0.2, Down: 0.2, Left: 0.2}

	a, err := Simulate(200, dist, NewPCG(99))
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	b, err := Simulate(200, dist, NewPCG(99))
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if !equalTrajectories(a, b) {
		t.Error("identical seeds produced different trajectories")
	}

	// A shared source advances between calls: the second walk differs,
	// and two calls against one source replay exactly against two
	// calls against another source with the same seed.
	src1 := NewPCG(5)
	first1, _ := Simulate(50, dist, src1)
	second1, _ := Simulate(50, dist, src1)

	src2 := NewPCG(5)
	first2, _ := Simulate(50, dist, src2)
	second2, _ := Simulate(50, dist, src2)

	if !equalTrajectories(first1, first2) || !equalTrajectories(second1, second2) {
		t.Error("sequential calls did not replay deterministically")
	}
	if equalTrajectories(first1, second1) {
		t.Error("second call on an advanced source repeated the first trajectory")
	}
}

func TestSimulateInvalidArguments(t *testing.T) {
	tests := []struct {
		name  string
		steps int
		dist  StepDistribution
	}{
		{"zero steps", 0, Symmetric()},
		{"negative steps", -5, Symmetric()},
		{"sum above one", 10, StepDistribution{Up: 0.3, Right: 0.3, Down: 0.3, Left: 0.3}},
		{"sum below one", 10, StepDistribution{Up: 0.3, Right: 0.3}},
		{"negative probability", 10, StepDistribution{Up: 1.2, Right: -0.2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &countingSource{src: NewPCG(1)}
			_, err := Simulate(tt.steps, tt.dist, src)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Simulate = %v, want ErrInvalidArgument", err)
			}
			if src.draws != 0 {
				t.Errorf("failed call consumed %d draws, want 0", src.draws)
			}
		})
	}
}

func TestSimulateAcceptsExactSum(t *testing.T) {
	if _, err := Simulate(10, StepDistribution{Up: 0.3, Right: 0.3, Down: 0.3, Left: 0.2}, NewPCG(1)); err != nil {
		t.Errorf("Simulate with sum 1.0: %v", err)
	}
}

func TestSymmetricWalkDiffusiveScaling(t *testing.T) {
	// For the symmetric walk the RMS displacement after n unit steps is
	// sqrt(n). Check it as a loose bound over many trials.
	const trials = 2000
	const steps = 401 // 400 unit steps

	src := NewPCG(12345)
	var sumSq float64
	for i := 0; i < trials; i++ {
		traj, err := Simulate(steps, Symmetric(), src)
		if err != nil {
			t.Fatalf("Simulate: %v", err)
		}
		d := traj.Displacement()
		sumSq += d * d
	}

	rms := math.Sqrt(sumSq / trials)
	want := math.Sqrt(steps - 1)
	if rms < 0.85*want || rms > 1.15*want {
		t.Errorf("RMS displacement = %.2f, want about %.2f", rms, want)
	}
}

func TestTrajectoryDisplacement(t *testing.T) {
	traj := Trajectory{{0, 0}, {1, 0}, {1, 1}, {2, 1}, {3, 1}, {3, 2}}
	want := math.Hypot(3, 2)
	if got := traj.Displacement(); math.Abs(got-want) > 1e-12 {
		t.Errorf("Displacement = %v, want %v", got, want)
	}
	if got := traj.Net(); got != (Point{X: 3, Y: 2}) {
		t.Errorf("Net = %v, want (3,2)", got)
	}
	if got := traj.Final(); got != (Point{X: 3, Y: 2}) {
		t.Errorf("Final = %v, want (3,2)", got)
	}

	var empty Trajectory
	if empty.Displacement() != 0 || empty.Final() != (Point{}) {
		t.Error("empty trajectory should have zero displacement at the origin")
	}
}

func equalTrajectories(a, b Trajectory) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
