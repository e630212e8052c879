package markov

import (
	"math"
	"testing"

	"github.com/walklab/walklab/internal/walk"
)

func TestStationaryTwoState(t *testing.T) {
	c := twoStateChain()

	pi, err := c.Stationary(10000, 1e-12)
	if err != nil {
		t.Fatalf("Stationary: %v", err)
	}

	// Solving pi = pi P for the sunny/rainy chain gives (5/6, 1/6).
	want := []float64{5.0 / 6, 1.0 / 6}
	for i := range want {
		if math.Abs(pi[i]-want[i]) > 1e-6 {
			t.Errorf("pi[%d] = %v, want %v", i, pi[i], want[i])
		}
	}
}

func TestStationaryMatchesOccupancy(t *testing.T) {
	c := twoStateChain()

	pi, err := c.Stationary(10000, 1e-12)
	if err != nil {
		t.Fatalf("Stationary: %v", err)
	}

	seq, err := c.Walk(200000, 0, walk.NewPCG(31))
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	freq := Occupancy(seq, len(c.States))

	for i := range pi {
		if math.Abs(pi[i]-freq[i]) > 0.02 {
			t.Errorf("state %d: stationary %v vs empirical %v", i, pi[i], freq[i])
		}
	}
}

func TestStationaryCyclicChainIsUniform(t *testing.T) {
	// The 3-cycle is doubly stochastic, so the uniform starting point
	// is already stationary and iteration converges immediately.
	c := &Chain{
		States: []string{"a", "b", "c"},
		Transitions: [][]float64{
			{0, 1, 0},
			{0, 0, 1},
			{1, 0, 0},
		},
	}

	pi, err := c.Stationary(100, 1e-12)
	if err != nil {
		t.Fatalf("Stationary: %v", err)
	}
	for i := range pi {
		if math.Abs(pi[i]-1.0/3) > 1e-9 {
			t.Errorf("pi[%d] = %v, want 1/3", i, pi[i])
		}
	}
}

func TestStationaryValidates(t *testing.T) {
	c := &Chain{States: []string{"a"}, Transitions: [][]float64{{0.5}}}
	if _, err := c.Stationary(100, 1e-9); err == nil {
		t.Error("Stationary on invalid chain should fail")
	}

	if _, err := twoStateChain().Stationary(0, 1e-12); err == nil {
		t.Error("Stationary with no iteration budget should fail")
	}
}
