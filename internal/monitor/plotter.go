// Package monitor renders a completed analysis run for humans: static PNG
// plots of the track and its safety profile, and an HTML page with the
// track scatter and an optional marker replay of the position samples.
//
// Everything here consumes the core's computed sequences and feeds nothing
// back into the pipeline.
package monitor

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/curvature.report/internal/analysis"
)

var (
	trackColor  = color.RGBA{R: 0x31, G: 0x68, B: 0x8e, A: 0xff}
	dangerColor = color.RGBA{R: 0xff, G: 0x52, B: 0x52, A: 0xff}
	limitColor  = color.RGBA{R: 0x35, G: 0xb7, B: 0x79, A: 0xff}
)

// GeneratePlots writes the track, radius and safe-speed plots for a run into
// outputDir, creating it if needed. Returns the number of files written.
func GeneratePlots(r *analysis.Result, outputDir string) (int, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create output dir: %w", err)
	}

	plots := []struct {
		name  string
		build func(*analysis.Result) (*plot.Plot, error)
	}{
		{"track.png", trackPlot},
		{"radius.png", radiusPlot},
		{"speed.png", speedPlot},
	}

	written := 0
	for _, spec := range plots {
		p, err := spec.build(r)
		if err != nil {
			return written, fmt.Errorf("%s: %w", spec.name, err)
		}
		file := filepath.Join(outputDir, spec.name)
		if err := p.Save(10*vg.Inch, 6*vg.Inch, file); err != nil {
			return written, fmt.Errorf("failed to save %s: %w", spec.name, err)
		}
		written++
	}
	return written, nil
}

// trackPlot draws the curve with danger-zone samples highlighted.
func trackPlot(r *analysis.Result) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Track Curve"
	p.X.Label.Text = "x (sim units)"
	p.Y.Label.Text = "y (sim units)"

	curve := make(plotter.XYs, 0, len(r.Samples))
	for _, s := range r.Samples {
		curve = append(curve, plotter.XY{X: s.X, Y: s.Y})
	}
	line, err := plotter.NewLine(curve)
	if err != nil {
		return nil, err
	}
	line.Color = trackColor
	line.Width = vg.Points(1.5)
	p.Add(line)
	p.Legend.Add("track", line)

	danger := make(plotter.XYs, 0, len(r.SafetySamples))
	for _, s := range r.SafetySamples {
		if s.Danger {
			danger = append(danger, plotter.XY{X: s.X, Y: r.Spec.Evaluate(s.X)})
		}
	}
	if len(danger) > 0 {
		scatter, err := plotter.NewScatter(danger)
		if err != nil {
			return nil, err
		}
		scatter.GlyphStyle.Color = dangerColor
		scatter.GlyphStyle.Radius = vg.Points(3)
		p.Add(scatter)
		p.Legend.Add("danger zone", scatter)
	}

	return p, nil
}

// radiusPlot draws the radius-of-curvature profile over the sampled points.
// Undefined samples are left out rather than drawn at a fake height.
func radiusPlot(r *analysis.Result) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Radius of Curvature"
	p.X.Label.Text = "x (sim units)"
	p.Y.Label.Text = "Radius (m)"

	pts := make(plotter.XYs, 0, len(r.SafetySamples))
	for _, s := range r.SafetySamples {
		if s.Radius.Defined {
			pts = append(pts, plotter.XY{X: s.X, Y: s.Radius.RadiusM})
		}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = trackColor
	line.Width = vg.Points(1)
	p.Add(line)

	threshold := plotter.XYs{
		{X: r.Spec.XStart, Y: r.Safety.DangerRadiusM},
		{X: r.Spec.XEnd, Y: r.Safety.DangerRadiusM},
	}
	thresholdLine, err := plotter.NewLine(threshold)
	if err != nil {
		return nil, err
	}
	thresholdLine.Color = dangerColor
	thresholdLine.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(thresholdLine)
	p.Legend.Add("danger threshold", thresholdLine)

	return p, nil
}

// speedPlot draws the per-sample safe-speed limit with the candidate test
// speeds overlaid.
func speedPlot(r *analysis.Result) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Maximum Safe Speed"
	p.X.Label.Text = "x (sim units)"
	p.Y.Label.Text = "Speed (km/h)"

	pts := make(plotter.XYs, 0, len(r.SafetySamples))
	for _, s := range r.SafetySamples {
		if s.Radius.Defined {
			pts = append(pts, plotter.XY{X: s.X, Y: s.LimitKMH})
		}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = limitColor
	line.Width = vg.Points(1.5)
	p.Add(line)
	p.Legend.Add("safe speed", line)

	for _, cr := range r.CrashResults {
		testLine, err := plotter.NewLine(plotter.XYs{
			{X: r.Spec.XStart, Y: cr.TestSpeedKMH},
			{X: r.Spec.XEnd, Y: cr.TestSpeedKMH},
		})
		if err != nil {
			return nil, err
		}
		testLine.Color = dangerColor
		testLine.Dashes = []vg.Length{vg.Points(2), vg.Points(4)}
		p.Add(testLine)
	}

	return p, nil
}
