// Package track defines the synthetic race-track curve: a single cubic
// polynomial in one coordinate, evaluated analytically together with its
// first and second derivatives, and sampled over a configured domain.
package track

import (
	"fmt"
	"math"
)

// Spec is the immutable description of one track: the cubic coefficients and
// the sampling domain. Create it once per run and pass it by value; nothing
// in the pipeline mutates it.
type Spec struct {
	A3, A2, A1, A0 float64

	XStart float64
	XEnd   float64
	Step   float64
}

// Sample is one evaluated point of the curve in simulation units.
type Sample struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Validate rejects domains that cannot produce a meaningful sample set.
// Aggregate statistics are undefined over zero or one samples, so those
// configurations fail here rather than downstream.
func (s Spec) Validate() error {
	if s.XStart >= s.XEnd {
		return fmt.Errorf("track domain is empty: x_start %v >= x_end %v", s.XStart, s.XEnd)
	}
	if s.Step <= 0 {
		return fmt.Errorf("track step must be positive, got %v", s.Step)
	}
	if s.SampleCount() < 2 {
		return fmt.Errorf("track domain [%v, %v] with step %v yields fewer than two samples", s.XStart, s.XEnd, s.Step)
	}
	return nil
}

// Evaluate returns the curve height A3*x^3 + A2*x^2 + A1*x + A0.
func (s Spec) Evaluate(x float64) float64 {
	return ((s.A3*x+s.A2)*x+s.A1)*x + s.A0
}

// Slope returns the first derivative 3*A3*x^2 + 2*A2*x + A1.
func (s Spec) Slope(x float64) float64 {
	return (3*s.A3*x+2*s.A2)*x + s.A1
}

// Concavity returns the second derivative 6*A3*x + 2*A2.
func (s Spec) Concavity(x float64) float64 {
	return 6*s.A3*x + 2*s.A2
}

// SampleCount returns the number of grid points from XStart to XEnd
// inclusive at the configured step.
func (s Spec) SampleCount() int {
	if s.Step <= 0 || s.XEnd < s.XStart {
		return 0
	}
	return int(math.Floor((s.XEnd-s.XStart)/s.Step+1e-9)) + 1
}

// Samples evaluates the curve over the inclusive grid, in increasing x.
// The grid point is computed as XStart + i*Step rather than by repeated
// addition so the positions do not accumulate rounding error.
func (s Spec) Samples() []Sample {
	n := s.SampleCount()
	out := make([]Sample, 0, n)
	for i := 0; i < n; i++ {
		x := s.XStart + float64(i)*s.Step
		out = append(out, Sample{X: x, Y: s.Evaluate(x)})
	}
	return out
}
