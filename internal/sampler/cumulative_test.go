package sampler

import (
	"errors"
	"testing"
)

func TestInitRejectsInvalidWeights(t *testing.T) {
	tests := []struct {
		name    string
		weights []float64
		wantErr error
	}{
		{"negative weight", []float64{0.5, -0.1, 0.6}, ErrNegativeWeight},
		{"all zero", []float64{0, 0, 0}, ErrZeroTotal},
		{"empty", nil, ErrZeroTotal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Cumulative
			err := c.Init(tt.weights)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Init(%v) = %v, want %v", tt.weights, err, tt.wantErr)
			}
		})
	}
}

func TestDrawMapsVariatesToIndexes(t *testing.T) {
	var c Cumulative
	if err := c.Init([]float64{0.5, 0.25, 0.25}); err != nil {
		t.Fatalf("Init: %v", err)
	}

	tests := []struct {
		u    float64
		want int
	}{
		{0.0, 0},
		{0.49, 0},
		{0.5, 1},
		{0.74, 1},
		{0.75, 2},
		{0.999, 2},
	}

	for _, tt := range tests {
		got, err := c.Draw(tt.u)
		if err != nil {
			t.Fatalf("Draw(%v): %v", tt.u, err)
		}
		if got != tt.want {
			t.Errorf("Draw(%v) = %d, want %d", tt.u, got, tt.want)
		}
	}
}

func TestDrawNeverReturnsZeroWeightIndex(t *testing.T) {
	var c Cumulative
	if err := c.Init([]float64{0.5, 0, 0.5, 0}); err != nil {
		t.Fatalf("Init: %v", err)
	}

	for i := 0; i < 1000; i++ {
		u := float64(i) / 1000
		got, err := c.Draw(u)
		if err != nil {
			t.Fatalf("Draw(%v): %v", u, err)
		}
		if got == 1 || got == 3 {
			t.Fatalf("Draw(%v) returned zero-weight index %d", u, got)
		}
	}
}

func TestDrawRejectsOutOfRange(t *testing.T) {
	var c Cumulative
	if err := c.Init([]float64{1}); err != nil {
		t.Fatalf("Init: %v", err)
	}

	for _, u := range []float64{-0.1, 1.0, 1.5} {
		if _, err := c.Draw(u); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Draw(%v) = %v, want ErrOutOfRange", u, err)
		}
	}
}

func TestInitReusesBuffer(t *testing.T) {
	var c Cumulative
	if err := c.Init([]float64{0.2, 0.8}); err != nil {
		t.Fatalf("first Init: %v", err)
	}
	if err := c.Init([]float64{1}); err != nil {
		t.Fatalf("second Init: %v", err)
	}

	got, err := c.Draw(0.5)
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if got != 0 {
		t.Errorf("Draw(0.5) after re-Init = %d, want 0", got)
	}
}
