// Package units provides shared constants and conversion helpers for
// distances and speeds.
//
// Track geometry is computed in simulation units. ToReal and ToSim map
// between simulation units and real-world kilometres using the fixed
// survey scale of the synthetic track.
package units

// Unit constants
const (
	MPS  = "mps"
	MPH  = "mph"
	KMPH = "kmph"
	KPH  = "kph"
)

// ValidUnits contains all valid speed unit values
var ValidUnits = []string{MPS, MPH, KMPH, KPH}

// Simulation-unit to kilometre scale. One simulation unit is
// ScaleNum/ScaleDen kilometres.
const (
	ScaleNum = 0.1 * 16583
	ScaleDen = 39370
)

// ToReal converts a distance in simulation units to kilometres.
func ToReal(distance float64) float64 {
	return distance * ScaleNum / ScaleDen
}

// ToSim converts a distance in kilometres back to simulation units.
// Exact algebraic inverse of ToReal.
func ToSim(distance float64) float64 {
	return distance * ScaleDen / ScaleNum
}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "mps, mph, kmph, kph"
}

// ConvertSpeed converts a speed from kilometres per hour to the target units.
// Safe-speed limits are computed in km/h throughout the pipeline.
func ConvertSpeed(speedKMH float64, targetUnits string) float64 {
	switch targetUnits {
	case MPS:
		return speedKMH / 3.6
	case MPH:
		return speedKMH * 0.62137119223733
	case KMPH, KPH:
		return speedKMH
	default:
		return speedKMH
	}
}
