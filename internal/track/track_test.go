package track

import (
	"math"
	"testing"
)

// testSpec is the fixed survey track used across the analysis tests.
var testSpec = Spec{
	A3: 7.3558, A2: -157.43, A1: 1119.5, A0: -2631.3,
	XStart: 6, XEnd: 8, Step: 0.01,
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		spec    Spec
		wantErr bool
	}{
		{"valid survey track", testSpec, false},
		{"empty domain", Spec{XStart: 8, XEnd: 6, Step: 0.01}, true},
		{"degenerate domain", Spec{XStart: 6, XEnd: 6, Step: 0.01}, true},
		{"zero step", Spec{XStart: 6, XEnd: 8, Step: 0}, true},
		{"negative step", Spec{XStart: 6, XEnd: 8, Step: -0.5}, true},
		{"single sample", Spec{XStart: 6, XEnd: 8, Step: 5}, true},
		{"two samples", Spec{XStart: 6, XEnd: 8, Step: 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{"domain start", 6.0, 7.0728},
		{"domain middle", 7.0, 14.1694},
		{"domain end", 8.0, 15.3496},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := testSpec.Evaluate(tt.x)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("Evaluate(%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}

func TestDerivatives(t *testing.T) {
	// Slope and Concavity against the closed forms at x=7.
	x := 7.0
	wantSlope := 3*testSpec.A3*x*x + 2*testSpec.A2*x + testSpec.A1
	if got := testSpec.Slope(x); math.Abs(got-wantSlope) > 1e-9 {
		t.Errorf("Slope(%v) = %v, want %v", x, got, wantSlope)
	}
	wantConcavity := 6*testSpec.A3*x + 2*testSpec.A2
	if got := testSpec.Concavity(x); math.Abs(got-wantConcavity) > 1e-9 {
		t.Errorf("Concavity(%v) = %v, want %v", x, got, wantConcavity)
	}
}

func TestSamples(t *testing.T) {
	samples := testSpec.Samples()

	if len(samples) != 201 {
		t.Fatalf("len(samples) = %d, want 201", len(samples))
	}
	if samples[0].X != 6.0 {
		t.Errorf("first sample x = %v, want 6.0", samples[0].X)
	}
	if math.Abs(samples[200].X-8.0) > 1e-9 {
		t.Errorf("last sample x = %v, want 8.0", samples[200].X)
	}

	// Ordered, strictly increasing x, and each y matches Evaluate.
	for i, s := range samples {
		if i > 0 && s.X <= samples[i-1].X {
			t.Fatalf("samples not increasing at index %d: %v <= %v", i, s.X, samples[i-1].X)
		}
		if s.Y != testSpec.Evaluate(s.X) {
			t.Fatalf("sample %d y = %v, want Evaluate(%v) = %v", i, s.Y, s.X, testSpec.Evaluate(s.X))
		}
	}
}

func TestSampleCount(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want int
	}{
		{"fine grid", Spec{XStart: 6, XEnd: 8, Step: 0.01}, 201},
		{"coarse grid", Spec{XStart: 6, XEnd: 8, Step: 1}, 3},
		{"step past end", Spec{XStart: 0, XEnd: 1, Step: 0.4}, 3},
		{"invalid step", Spec{XStart: 0, XEnd: 1, Step: 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.spec.SampleCount(); got != tt.want {
				t.Errorf("SampleCount() = %d, want %d", got, tt.want)
			}
		})
	}
}
