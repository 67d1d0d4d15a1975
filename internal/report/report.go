// Package report renders the human-readable summary of an analysis run.
// The layout is fixed; downstream tooling scrapes it, so changes to the
// format are breaking.
package report

import (
	"fmt"
	"strings"

	"github.com/banshee-data/curvature.report/internal/analysis"
	"github.com/banshee-data/curvature.report/internal/units"
)

func speedLabel(unit string) string {
	switch unit {
	case units.MPS:
		return "m/s"
	case units.MPH:
		return "mph"
	default:
		return "km/h"
	}
}

// Render produces the text summary for a completed run, with speeds shown in
// the requested display units.
func Render(r *analysis.Result, unit string) string {
	var b strings.Builder
	label := speedLabel(unit)
	conv := func(kmh float64) float64 { return units.ConvertSpeed(kmh, unit) }

	fmt.Fprintf(&b, "Track Curvature Safety Report\n")
	fmt.Fprintf(&b, "=============================\n")
	fmt.Fprintf(&b, "Track length:         %.3f km\n", r.LengthKM)

	if len(r.CriticalPoints) == 0 {
		fmt.Fprintf(&b, "Critical points:      none\n")
	} else {
		coords := make([]string, 0, len(r.CriticalPoints))
		for _, p := range r.CriticalPoints {
			coords = append(coords, fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y))
		}
		fmt.Fprintf(&b, "Critical points:      %s\n", strings.Join(coords, ", "))
	}

	fmt.Fprintf(&b, "Minimum curve radius: %.1f m (at x=%.2f)\n", r.Stats.MinRadiusM, r.Stats.MinRadiusX)

	if r.Stats.DangerCount == 0 {
		fmt.Fprintf(&b, "Danger zones:         none of %d sampled points\n", r.Stats.Total)
	} else {
		fmt.Fprintf(&b, "Danger zones:         %d of %d sampled points (first at x=%.2f, last at x=%.2f)\n",
			r.Stats.DangerCount, r.Stats.Total, r.Stats.FirstDangerX, r.Stats.LastDangerX)
	}
	if r.Stats.Undefined > 0 {
		fmt.Fprintf(&b, "Undefined curvature:  %d sampled points (excluded from aggregates)\n", r.Stats.Undefined)
	}

	fmt.Fprintf(&b, "Safe speed (%s):    min %.1f / max %.1f / mean %.1f\n",
		label, conv(r.Stats.MinLimitKMH), conv(r.Stats.MaxLimitKMH), conv(r.Stats.MeanLimitKMH))

	fmt.Fprintf(&b, "Crash simulation:\n")
	for _, cr := range r.CrashResults {
		verdict := "SAFE"
		if cr.Crashes > 0 {
			verdict = "CRASH RISK"
		}
		fmt.Fprintf(&b, "  %6.1f %s: %d/%d points (%.1f%%) - %s\n",
			conv(cr.TestSpeedKMH), label, cr.Crashes, cr.Total, cr.Fraction*100, verdict)
	}

	return b.String()
}
