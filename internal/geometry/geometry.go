// Package geometry derives per-sample geometry from the track model: arc
// length, critical points of the curve, and radius of curvature.
package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/banshee-data/curvature.report/internal/track"
	"github.com/banshee-data/curvature.report/internal/units"
)

// Curvature is the radius of curvature at one parameter value. At inflection
// points the second derivative vanishes and the radius is undefined; those
// carry Defined=false and must be skipped by consumers rather than treated
// as a zero or infinite radius.
type Curvature struct {
	RadiusM float64 `json:"radius_m"`
	Defined bool    `json:"defined"`
}

// CriticalPoint is a root of the curve's first derivative inside the domain.
//
// The coordinate pairing is deliberately (Evaluate(root), root): the
// polynomial value sits in the X slot and the derivative root in the Y slot.
// Historical reports used this layout and downstream consumers key off it,
// so it is preserved as-is.
type CriticalPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RadiusAt computes the radius of curvature at x in metres:
// (1 + y'^2)^1.5 / |y''|, converted from simulation units through the
// survey scale.
func RadiusAt(spec track.Spec, x float64) Curvature {
	concavity := spec.Concavity(x)
	if concavity == 0 {
		return Curvature{}
	}
	slope := spec.Slope(x)
	radiusSim := math.Pow(1+slope*slope, 1.5) / math.Abs(concavity)
	return Curvature{
		RadiusM: units.ToReal(radiusSim) * 1000,
		Defined: true,
	}
}

// ArcLengthKM approximates the track length by summing straight-line
// distances between consecutive samples, reported in kilometres.
func ArcLengthKM(samples []track.Sample) float64 {
	if len(samples) < 2 {
		return 0
	}
	segments := make([]float64, len(samples)-1)
	for i := 1; i < len(samples); i++ {
		segments[i-1] = math.Hypot(samples[i].X-samples[i-1].X, samples[i].Y-samples[i-1].Y)
	}
	return units.ToReal(floats.Sum(segments))
}

// CriticalPoints solves Slope(x) = 0 with the quadratic formula on the
// coefficients (3*A3, 2*A2, A1). A negative discriminant yields an empty
// slice; otherwise exactly two entries are returned, identical when the
// discriminant is zero.
func CriticalPoints(spec track.Spec) []CriticalPoint {
	a := 3 * spec.A3
	b := 2 * spec.A2
	c := spec.A1

	if a == 0 {
		// Degenerate cubic: the derivative is linear.
		if b == 0 {
			return nil
		}
		root := -c / b
		p := CriticalPoint{X: spec.Evaluate(root), Y: root}
		return []CriticalPoint{p, p}
	}

	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}

	sqrtDisc := math.Sqrt(disc)
	roots := [2]float64{
		(-b + sqrtDisc) / (2 * a),
		(-b - sqrtDisc) / (2 * a),
	}

	out := make([]CriticalPoint, 0, 2)
	for _, root := range roots {
		out = append(out, CriticalPoint{X: spec.Evaluate(root), Y: root})
	}
	return out
}

// StrideIndices returns the shared index subset used by the curvature,
// safety and crash stages. Keeping one index set guarantees the crash
// denominators line up with the safety sample count.
func StrideIndices(n, stride int) ([]int, error) {
	if stride <= 0 {
		return nil, fmt.Errorf("stride must be positive, got %d", stride)
	}
	if n <= 0 {
		return nil, fmt.Errorf("no samples to stride over")
	}
	out := make([]int, 0, n/stride+1)
	for i := 0; i < n; i += stride {
		out = append(out, i)
	}
	return out, nil
}
