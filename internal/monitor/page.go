package monitor

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/curvature.report/internal/analysis"
)

// WritePage renders the interactive HTML view of a run: the track scatter
// with danger points highlighted and the safe-speed profile. When animate is
// set a marker-replay series is added showing the sampled positions a moving
// marker would visit; there is no time-stepped vehicle model behind it.
func WritePage(r *analysis.Result, animate bool, w io.Writer) error {
	page := components.NewPage()
	page.AddCharts(trackChart(r, animate), speedChart(r))
	return page.Render(w)
}

func trackChart(r *analysis.Result, animate bool) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Track Curvature Safety Report", Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Track Curve",
			Subtitle: fmt.Sprintf("run=%s length=%.3f km", r.RunID, r.LengthKM),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "x (sim units)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "y (sim units)"}),
	)

	curve := make([]opts.ScatterData, 0, len(r.Samples))
	for _, s := range r.Samples {
		curve = append(curve, opts.ScatterData{Value: []any{s.X, s.Y}})
	}
	scatter.AddSeries("track", curve,
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 3}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#31688e"}))

	danger := make([]opts.ScatterData, 0, len(r.SafetySamples))
	for _, s := range r.SafetySamples {
		if s.Danger {
			danger = append(danger, opts.ScatterData{Value: []any{s.X, r.Spec.Evaluate(s.X)}})
		}
	}
	if len(danger) > 0 {
		scatter.AddSeries("danger zone", danger,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "#ff5252"}))
	}

	if animate {
		marker := make([]opts.ScatterData, 0, len(r.SafetySamples))
		for _, s := range r.SafetySamples {
			marker = append(marker, opts.ScatterData{Value: []any{s.X, r.Spec.Evaluate(s.X)}})
		}
		scatter.AddSeries("marker replay", marker,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 12}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "#fde725"}))
	}

	return scatter
}

func speedChart(r *analysis.Result) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{
			Title: "Maximum Safe Speed",
			Subtitle: fmt.Sprintf("min %.1f / max %.1f / mean %.1f km/h",
				r.Stats.MinLimitKMH, r.Stats.MaxLimitKMH, r.Stats.MeanLimitKMH),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "x (sim units)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "km/h"}),
	)

	xAxis := make([]string, 0, len(r.SafetySamples))
	limits := make([]opts.LineData, 0, len(r.SafetySamples))
	for _, s := range r.SafetySamples {
		if !s.Radius.Defined {
			continue
		}
		xAxis = append(xAxis, fmt.Sprintf("%.2f", s.X))
		limits = append(limits, opts.LineData{Value: s.LimitKMH})
	}
	line.SetXAxis(xAxis).AddSeries("safe speed", limits)

	return line
}
