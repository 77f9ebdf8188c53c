package units

import (
	"math"
	"testing"
)

func TestIsValid(t *testing.T) {
	for _, unit := range ValidUnits {
		if !IsValid(unit) {
			t.Errorf("IsValid(%q) = false, want true", unit)
		}
	}
	for _, unit := range []string{"", "knots", "KPH", "m/s"} {
		if IsValid(unit) {
			t.Errorf("IsValid(%q) = true, want false", unit)
		}
	}
}

func TestConvertSpeed(t *testing.T) {
	tests := []struct {
		speedKPH float64
		unit     string
		want     float64
	}{
		{100, KPH, 100},
		{100, MPH, 62.1371},
		{36, MPS, 10},
		{100, "unknown", 100},
		{0, MPH, 0},
	}
	for _, tc := range tests {
		got := ConvertSpeed(tc.speedKPH, tc.unit)
		if math.Abs(got-tc.want) > 1e-6 {
			t.Errorf("ConvertSpeed(%v, %q) = %v, want %v", tc.speedKPH, tc.unit, got, tc.want)
		}
	}
}

func TestAxisLabel(t *testing.T) {
	tests := []struct {
		unit string
		want string
	}{
		{KPH, "Speed (km/h)"},
		{MPH, "Speed (mph)"},
		{MPS, "Speed (m/s)"},
		{"", "Speed (km/h)"},
	}
	for _, tc := range tests {
		if got := AxisLabel(tc.unit); got != tc.want {
			t.Errorf("AxisLabel(%q) = %q, want %q", tc.unit, got, tc.want)
		}
	}
}
