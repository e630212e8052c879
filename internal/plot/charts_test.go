package plot

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/walklab/walklab/internal/montecarlo"
	"github.com/walklab/walklab/internal/stats"
	"github.com/walklab/walklab/internal/walk"
)

func sampleTrajectories(t *testing.T) []walk.Trajectory {
	t.Helper()
	var trajs []walk.Trajectory
	for seed := int64(0); seed < 3; seed++ {
		traj, err := walk.Simulate(50, walk.Symmetric(), walk.NewPCG(seed))
		if err != nil {
			t.Fatalf("Simulate: %v", err)
		}
		trajs = append(trajs, traj)
	}
	return trajs
}

func TestRenderPage(t *testing.T) {
	trajs := sampleTrajectories(t)
	hist := stats.NewHistogram([]float64{1, 2, 3, 4, 5, 6}, 3)
	sweep := []montecarlo.SweepPoint{
		{Steps: 101, Mean: 8.9, RMS: 10},
		{Steps: 401, Mean: 17.8, RMS: 20},
	}

	var buf bytes.Buffer
	err := RenderPage(&buf,
		TrajectoryPaths(trajs),
		DisplacementHistogram(hist),
		ScalingCurve(sweep),
	)
	if err != nil {
		t.Fatalf("RenderPage: %v", err)
	}

	html := buf.String()
	if !strings.Contains(html, "echarts") {
		t.Error("rendered page does not reference echarts")
	}
	for _, want := range []string{"Sample paths", "Displacement distribution", "Diffusive scaling", "sqrt(n)"} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}
}

func TestWritePage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "plots")

	path, err := WritePage(dir, "walklab.html", TrajectoryPaths(sampleTrajectories(t)))
	if err != nil {
		t.Fatalf("WritePage: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("page written to %s, want under %s", path, dir)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	if !strings.Contains(string(data), "walk 1") {
		t.Error("page missing trajectory series")
	}
}
