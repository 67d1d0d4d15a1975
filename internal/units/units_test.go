package units

import (
	"math"
	"testing"
)

func TestToRealToSimRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
	}{
		{"zero", 0.0},
		{"unit distance", 1.0},
		{"track-scale distance", 12.558},
		{"large distance", 98765.4321},
		{"negative distance", -42.0},
		{"tiny distance", 1e-12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToSim(ToReal(tt.distance))
			if tt.distance == 0 {
				if got != 0 {
					t.Errorf("ToSim(ToReal(0)) = %v, want 0", got)
				}
				return
			}
			if rel := math.Abs(got-tt.distance) / math.Abs(tt.distance); rel > 1e-9 {
				t.Errorf("ToSim(ToReal(%v)) = %v, relative error %v", tt.distance, got, rel)
			}
		})
	}
}

func TestToReal(t *testing.T) {
	// 1 simulation unit = 0.1*16583/39370 km
	got := ToReal(1.0)
	want := 0.042120904241808
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("ToReal(1) = %v, want %v", got, want)
	}
}

func TestConvertSpeed(t *testing.T) {
	tests := []struct {
		name     string
		speedKMH float64
		units    string
		expected float64
	}{
		{"36 km/h to mps", 36.0, MPS, 10.0},
		{"100 km/h to mph", 100.0, MPH, 62.137119223733},
		{"100 km/h to kmph", 100.0, KMPH, 100.0},
		{"100 km/h to kph", 100.0, KPH, 100.0},
		{"unknown units default to kmh", 100.0, "unknown", 100.0},
		{"0 km/h to mph", 0.0, MPH, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ConvertSpeed(tt.speedKMH, tt.units)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("ConvertSpeed(%f, %s) = %f, want %f", tt.speedKMH, tt.units, result, tt.expected)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name     string
		unit     string
		expected bool
	}{
		{"valid mps", MPS, true},
		{"valid mph", MPH, true},
		{"valid kmph", KMPH, true},
		{"valid kph", KPH, true},
		{"invalid unit", "invalid", false},
		{"empty string", "", false},
		{"case sensitive", "MPH", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValid(tt.unit)
			if result != tt.expected {
				t.Errorf("IsValid(%s) = %v, want %v", tt.unit, result, tt.expected)
			}
		})
	}
}

func TestGetValidUnitsString(t *testing.T) {
	result := GetValidUnitsString()
	expected := "mps, mph, kmph, kph"
	if result != expected {
		t.Errorf("GetValidUnitsString() = %s, want %s", result, expected)
	}
}
