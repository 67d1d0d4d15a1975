// Package crash estimates how much of the track a constant travel speed
// would overrun, by comparing a candidate speed against the per-sample
// maximum safe speed.
package crash

import (
	"github.com/banshee-data/curvature.report/internal/safety"
)

// DefaultTestSpeedsKMH are the candidate speeds simulated when none are
// configured.
var DefaultTestSpeedsKMH = []float64{150, 200, 250, 300}

// Result is the outcome of one candidate speed over the sampled track.
type Result struct {
	TestSpeedKMH float64 `json:"test_speed_kmh"`
	Crashes      int     `json:"crash_count"`
	Total        int     `json:"total_samples"`
	Fraction     float64 `json:"crash_fraction"`
}

// Simulate counts the sampled points where the candidate speed exceeds the
// local safe-speed limit. Samples with undefined curvature never crash;
// they have no limit to exceed. The denominator is always the full sample
// count so fractions are comparable across speeds.
func Simulate(testSpeedKMH float64, samples []safety.Sample) Result {
	r := Result{TestSpeedKMH: testSpeedKMH, Total: len(samples)}
	for _, s := range samples {
		if !s.Radius.Defined {
			continue
		}
		if testSpeedKMH > s.LimitKMH {
			r.Crashes++
		}
	}
	if r.Total > 0 {
		r.Fraction = float64(r.Crashes) / float64(r.Total)
	}
	return r
}

// SimulateAll runs Simulate once per candidate speed. Runs are independent;
// the order of speeds carries through to the results unchanged.
func SimulateAll(testSpeedsKMH []float64, samples []safety.Sample) []Result {
	out := make([]Result, 0, len(testSpeedsKMH))
	for _, speed := range testSpeedsKMH {
		out = append(out, Simulate(speed, samples))
	}
	return out
}
