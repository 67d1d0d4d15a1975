// Package safety classifies sampled track geometry: danger zones where the
// radius of curvature is below a threshold, and the maximum cornering speed
// a banked curve with friction supports at each sampled point.
package safety

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/curvature.report/internal/geometry"
	"github.com/banshee-data/curvature.report/internal/track"
)

// Gravity in m/s^2, fixed for the banked-curve bound.
const Gravity = 9.81

// DefaultDangerRadiusM is the danger-zone threshold when none is configured.
const DefaultDangerRadiusM = 100.0

// Config holds the physics parameters of the safety evaluation.
type Config struct {
	FrictionCoefficient float64
	BankingAngleDeg     float64
	DangerRadiusM       float64
}

// Validate rejects physically meaningless configurations.
func (c Config) Validate() error {
	if c.FrictionCoefficient <= 0 {
		return fmt.Errorf("friction coefficient must be positive, got %v", c.FrictionCoefficient)
	}
	if c.DangerRadiusM <= 0 {
		return fmt.Errorf("danger radius threshold must be positive, got %v", c.DangerRadiusM)
	}
	return nil
}

// IsDanger reports whether a radius is inside the danger zone. The boundary
// is exclusive: a radius exactly at the threshold is not dangerous.
func (c Config) IsDanger(radiusM float64) bool {
	return radiusM < c.DangerRadiusM
}

// MaxSafeSpeedKMH returns the maximum cornering speed in km/h for a curve of
// the given radius under the configured banking and friction:
//
//	v = sqrt(g * r * (mu*cos(theta) + sin(theta)) / (cos(theta) - mu*sin(theta)))
//
// When the denominator is non-positive the friction/banking combination has
// no finite bound the model can express; 0 is returned, meaning no speed is
// safe. A non-positive radius also yields 0.
func (c Config) MaxSafeSpeedKMH(radiusM float64) float64 {
	theta := c.BankingAngleDeg * math.Pi / 180
	numerator := c.FrictionCoefficient*math.Cos(theta) + math.Sin(theta)
	denominator := math.Cos(theta) - c.FrictionCoefficient*math.Sin(theta)
	if denominator <= 0 || radiusM <= 0 {
		return 0
	}
	vms := math.Sqrt(Gravity * radiusM * numerator / denominator)
	return vms * 3.6
}

// Sample is the safety evaluation at one sampled track point. When the
// curvature is undefined (inflection) the point is neither dangerous nor
// speed-limiting; Radius.Defined is false and LimitKMH is meaningless.
type Sample struct {
	X        float64            `json:"x"`
	Radius   geometry.Curvature `json:"radius"`
	Danger   bool               `json:"is_danger"`
	LimitKMH float64            `json:"max_safe_speed_kmh"`
}

// Evaluate computes the safety sample at each index of the shared stride set.
// The same index set must be handed to the crash stage so its denominators
// match len(result).
func Evaluate(spec track.Spec, samples []track.Sample, indices []int, cfg Config) []Sample {
	out := make([]Sample, 0, len(indices))
	for _, i := range indices {
		x := samples[i].X
		curvature := geometry.RadiusAt(spec, x)
		s := Sample{X: x, Radius: curvature}
		if curvature.Defined {
			s.Danger = cfg.IsDanger(curvature.RadiusM)
			s.LimitKMH = cfg.MaxSafeSpeedKMH(curvature.RadiusM)
		}
		out = append(out, s)
	}
	return out
}

// Stats aggregates a safety evaluation. Min/max/mean cover only samples with
// defined curvature; Undefined counts the excluded ones.
type Stats struct {
	Total     int `json:"total"`
	Undefined int `json:"undefined"`

	DangerCount  int     `json:"danger_count"`
	FirstDangerX float64 `json:"first_danger_x"`
	LastDangerX  float64 `json:"last_danger_x"`

	MinRadiusM   float64 `json:"min_radius_m"`
	MinRadiusX   float64 `json:"min_radius_x"`
	MinLimitKMH  float64 `json:"min_safe_speed_kmh"`
	MaxLimitKMH  float64 `json:"max_safe_speed_kmh"`
	MeanLimitKMH float64 `json:"mean_safe_speed_kmh"`
}

// Summarize reduces a safety evaluation to its aggregate statistics.
// Returns an error when no sample has defined curvature, since min/max/mean
// would be meaningless.
func Summarize(samples []Sample) (Stats, error) {
	stats := Stats{Total: len(samples)}

	limits := make([]float64, 0, len(samples))
	minRadius := math.Inf(1)
	minRadiusX := 0.0
	for _, s := range samples {
		if !s.Radius.Defined {
			stats.Undefined++
			continue
		}
		if s.Radius.RadiusM < minRadius {
			minRadius = s.Radius.RadiusM
			minRadiusX = s.X
		}
		limits = append(limits, s.LimitKMH)
		if s.Danger {
			if stats.DangerCount == 0 {
				stats.FirstDangerX = s.X
			}
			stats.LastDangerX = s.X
			stats.DangerCount++
		}
	}

	if len(limits) == 0 {
		return stats, fmt.Errorf("no samples with defined curvature")
	}

	stats.MinRadiusM = minRadius
	stats.MinRadiusX = minRadiusX
	stats.MinLimitKMH = floats.Min(limits)
	stats.MaxLimitKMH = floats.Max(limits)
	stats.MeanLimitKMH = stat.Mean(limits, nil)
	return stats, nil
}
