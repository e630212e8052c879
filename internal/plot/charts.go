// Package plot renders walk trajectories and ensemble statistics as
// HTML charts.
package plot

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/walklab/walklab/internal/montecarlo"
	"github.com/walklab/walklab/internal/stats"
	"github.com/walklab/walklab/internal/walk"
)

// palette is the chart color cycle.
var palette = opts.Colors{"#242482", "#F00D2C", "#0071BE", "#4E8F00", "#553C67", "#DA5319"}

// TrajectoryPaths plots sample paths in the plane, one series per
// trajectory.
func TrajectoryPaths(trajs []walk.Trajectory) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Sample paths",
			Subtitle: fmt.Sprintf("%d random walks on the 2D lattice", len(trajs)),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "x", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "y", Type: "value"}),
		charts.WithColorsOpts(palette),
	)

	for i, traj := range trajs {
		data := make([]opts.LineData, len(traj))
		for j, p := range traj {
			data[j] = opts.LineData{Value: []interface{}{p.X, p.Y}}
		}
		line.AddSeries(fmt.Sprintf("walk %d", i+1), data)
	}
	return line
}

// DisplacementHistogram plots binned displacement counts.
func DisplacementHistogram(h stats.Histogram) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Displacement distribution",
			Subtitle: "Euclidean distance from origin to final position",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "displacement"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "trials"}),
		charts.WithColorsOpts(palette),
	)

	labels := make([]string, len(h.Counts))
	data := make([]opts.BarData, len(h.Counts))
	for i, count := range h.Counts {
		labels[i] = fmt.Sprintf("%.1f", h.Edges[i])
		data[i] = opts.BarData{Value: count}
	}
	bar.SetXAxis(labels).AddSeries("trials", data)
	return bar
}

// ScalingCurve plots RMS displacement against step count together
// with the sqrt(n) diffusive reference.
func ScalingCurve(points []montecarlo.SweepPoint) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Diffusive scaling",
			Subtitle: "RMS displacement vs number of steps",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "steps", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "rms displacement", Type: "value"}),
		charts.WithColorsOpts(palette),
	)

	data := make([]opts.ScatterData, len(points))
	for i, p := range points {
		data[i] = opts.ScatterData{Value: []interface{}{p.Steps, p.RMS}, SymbolSize: 10}
	}
	scatter.AddSeries("measured", data)

	ref := charts.NewLine()
	refData := make([]opts.LineData, len(points))
	for i, p := range points {
		refData[i] = opts.LineData{Value: []interface{}{p.Steps, math.Sqrt(float64(p.Steps - 1))}}
	}
	ref.AddSeries("sqrt(n)", refData)
	scatter.Overlap(ref)

	return scatter
}

// RenderPage writes the given charts to w as one HTML page.
func RenderPage(w io.Writer, charters ...components.Charter) error {
	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(charters...)
	return page.Render(w)
}

// WritePage renders charts into an HTML file at dir/name, creating
// dir if needed, and returns the file path.
func WritePage(dir, name string, charters ...components.Charter) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create plot directory: %w", err)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create plot file: %w", err)
	}
	defer f.Close()

	if err := RenderPage(f, charters...); err != nil {
		return "", fmt.Errorf("render plot page: %w", err)
	}
	return path, nil
}
