// Package units provides shared constants and validation for speed units
package units

// Unit constants
const (
	KPH = "kph"
	MPH = "mph"
	MPS = "mps"
)

// ValidUnits contains all valid unit values
var ValidUnits = []string{KPH, MPH, MPS}

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
	return "kph, mph, mps"
}

// ConvertSpeed converts a speed from km/h to the target units.
// Telemetry carries speed in km/h (kilometers per hour).
func ConvertSpeed(speedKPH float64, targetUnits string) float64 {
	switch targetUnits {
	case MPH:
		return speedKPH * 0.621371 // km/h to mph
	case MPS:
		return speedKPH / 3.6 // km/h to m/s
	case KPH:
		return speedKPH // no conversion needed
	default:
		return speedKPH // default to km/h if unknown unit
	}
}

// AxisLabel returns the speed axis label for the given unit.
func AxisLabel(unit string) string {
	switch unit {
	case MPH:
		return "Speed (mph)"
	case MPS:
		return "Speed (m/s)"
	default:
		return "Speed (km/h)"
	}
}
