package telemetry

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func lapSeries(driver string, distance, speed, brake []float64) Series {
	return Series{
		Driver:   driver,
		Distance: distance,
		Speed:    speed,
		Brake:    brake,
	}
}

func distances(turns []Turn) []float64 {
	out := make([]float64, 0, len(turns))
	for _, t := range turns {
		out = append(out, t.Distance)
	}
	return out
}

func TestDetectTurns(t *testing.T) {
	tests := []struct {
		name           string
		series         Series
		speedThreshold float64
		brakeThreshold float64
		want           []float64
	}{
		{
			name:           "empty series",
			series:         lapSeries("VER", []float64{}, []float64{}, []float64{}),
			speedThreshold: 100,
			brakeThreshold: 50,
			want:           []float64{},
		},
		{
			name: "no braking above threshold",
			series: lapSeries("VER",
				[]float64{0, 100, 200, 300},
				[]float64{80, 85, 90, 95},
				[]float64{0, 10, 50, 20}),
			speedThreshold: 100,
			brakeThreshold: 50,
			want:           []float64{},
		},
		{
			name: "braking but too fast",
			series: lapSeries("NOR",
				[]float64{0, 100, 200},
				[]float64{250, 220, 180},
				[]float64{0, 80, 90}),
			speedThreshold: 100,
			brakeThreshold: 50,
			want:           []float64{},
		},
		{
			name: "duplicate distance collapses",
			series: lapSeries("LEC",
				[]float64{0, 50, 50},
				[]float64{150, 90, 90},
				[]float64{0, 60, 70}),
			speedThreshold: 100,
			brakeThreshold: 50,
			want:           []float64{50},
		},
		{
			name: "distinct close distances each detected",
			series: lapSeries("LEC",
				[]float64{0, 50, 51, 52},
				[]float64{150, 90, 88, 86},
				[]float64{0, 60, 60, 60}),
			speedThreshold: 100,
			brakeThreshold: 50,
			want:           []float64{50, 51, 52},
		},
		{
			name: "thresholds are strict",
			series: lapSeries("HAM",
				[]float64{0, 100, 200},
				[]float64{100, 99, 100},
				[]float64{50, 51, 51}),
			speedThreshold: 100,
			brakeThreshold: 50,
			want:           []float64{100},
		},
		{
			name: "nan speed or brake treated as not met",
			series: lapSeries("HAM",
				[]float64{0, 100, 200},
				[]float64{math.NaN(), 90, 90},
				[]float64{60, math.NaN(), 60}),
			speedThreshold: 100,
			brakeThreshold: 50,
			want:           []float64{200},
		},
		{
			name: "non-positive thresholds still compared",
			series: lapSeries("PER",
				[]float64{0, 100},
				[]float64{-5, 50},
				[]float64{10, 10}),
			speedThreshold: 0,
			brakeThreshold: 0,
			want:           []float64{0},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			turns, err := DetectTurns(tc.series, tc.speedThreshold, tc.brakeThreshold)
			if err != nil {
				t.Fatalf("DetectTurns: %v", err)
			}
			if diff := cmp.Diff(tc.want, distances(turns)); diff != "" {
				t.Errorf("turn distances mismatch (-want +got):\n%s", diff)
			}
			for i, turn := range turns {
				if turn.Number != i+1 {
					t.Errorf("turn %d has Number %d, want %d", i, turn.Number, i+1)
				}
			}
		})
	}
}

// Every returned distance must come from a sample satisfying both
// conditions, and the result must be identical across repeated calls.
func TestDetectTurnsSoundAndIdempotent(t *testing.T) {
	s := lapSeries("VER",
		[]float64{0, 120, 240, 360, 480, 600, 600},
		[]float64{160, 95, 140, 80, 99, 70, 70},
		[]float64{0, 70, 20, 90, 55, 80, 85})

	first, err := DetectTurns(s, DefaultSpeedThreshold, DefaultBrakeThreshold)
	if err != nil {
		t.Fatalf("DetectTurns: %v", err)
	}

	seen := make(map[float64]bool)
	for _, turn := range first {
		if seen[turn.Distance] {
			t.Errorf("duplicate distance %v in result", turn.Distance)
		}
		seen[turn.Distance] = true

		matched := false
		for i := range s.Distance {
			if s.Distance[i] == turn.Distance &&
				s.Brake[i] > DefaultBrakeThreshold &&
				s.Speed[i] < DefaultSpeedThreshold {
				matched = true
				break
			}
		}
		if !matched {
			t.Errorf("distance %v does not correspond to a qualifying sample", turn.Distance)
		}
	}

	second, err := DetectTurns(s, DefaultSpeedThreshold, DefaultBrakeThreshold)
	if err != nil {
		t.Fatalf("second DetectTurns: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated detection differs (-first +second):\n%s", diff)
	}
}

func TestDetectTurnsMissingColumns(t *testing.T) {
	tests := []struct {
		name   string
		series Series
	}{
		{"nil distance", Series{Driver: "VER", Speed: []float64{1}, Brake: []float64{1}}},
		{"nil speed", Series{Driver: "VER", Distance: []float64{1}, Brake: []float64{1}}},
		{"nil brake", Series{Driver: "VER", Distance: []float64{1}, Speed: []float64{1}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DetectTurns(tc.series, DefaultSpeedThreshold, DefaultBrakeThreshold)
			if !errors.Is(err, ErrMissingColumn) {
				t.Errorf("error = %v, want ErrMissingColumn", err)
			}
		})
	}
}

func TestDetectTurnsDefault(t *testing.T) {
	s := lapSeries("LEC",
		[]float64{0, 50, 50},
		[]float64{150, 90, 90},
		[]float64{0, 60, 70})
	turns, err := DetectTurnsDefault(s)
	if err != nil {
		t.Fatalf("DetectTurnsDefault: %v", err)
	}
	want := []Turn{{Distance: 50, Number: 1}}
	if diff := cmp.Diff(want, turns); diff != "" {
		t.Errorf("turns mismatch (-want +got):\n%s", diff)
	}
}
