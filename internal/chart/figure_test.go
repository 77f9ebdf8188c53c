package chart

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/apex-data/lap.report/internal/telemetry"
)

// testSeries builds a complete series where throttle, rpm, gear and drs
// are filled with placeholder values of the right length.
func testSeries(driver string, distance, speed, brake []float64) telemetry.Series {
	n := len(distance)
	fill := func(v float64) []float64 {
		col := make([]float64, n)
		for i := range col {
			col[i] = v
		}
		return col
	}
	return telemetry.Series{
		Driver:   driver,
		Distance: distance,
		Speed:    speed,
		Brake:    brake,
		Throttle: fill(50),
		RPM:      fill(10000),
		Gear:     fill(4),
		DRS:      fill(0),
	}
}

func TestComposeLengthMismatch(t *testing.T) {
	series := []telemetry.Series{
		testSeries("VER", []float64{0}, []float64{200}, []float64{0}),
		testSeries("NOR", []float64{0}, []float64{200}, []float64{0}),
		testSeries("LEC", []float64{0}, []float64{200}, []float64{0}),
	}
	labels := []string{"VER", "NOR"}

	_, err := Compose(series, labels)
	if !errors.Is(err, telemetry.ErrLengthMismatch) {
		t.Errorf("Compose error = %v, want ErrLengthMismatch", err)
	}
}

func TestComposeMissingColumn(t *testing.T) {
	s := testSeries("VER", []float64{0, 100}, []float64{200, 90}, []float64{0, 60})
	s.RPM = nil

	_, err := Compose([]telemetry.Series{s}, []string{"VER"})
	if !errors.Is(err, telemetry.ErrMissingColumn) {
		t.Errorf("Compose error = %v, want ErrMissingColumn", err)
	}
}

func TestComposeTwoDriversWithTurns(t *testing.T) {
	// VER brakes into turns at 100m and 300m; HAM at 150m and 350m.
	ver := testSeries("VER",
		[]float64{0, 100, 200, 300},
		[]float64{250, 90, 240, 80},
		[]float64{0, 60, 0, 70})
	ham := testSeries("HAM",
		[]float64{0, 150, 350},
		[]float64{260, 95, 85},
		[]float64{0, 55, 65})

	fig, err := Compose([]telemetry.Series{ver, ham}, []string{"VER", "HAM"})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	if len(fig.Panels) != PanelCount {
		t.Fatalf("got %d panels, want %d", len(fig.Panels), PanelCount)
	}
	wantNames := []string{"Speed", "Throttle", "Brake", "RPM", "Gear", "DRS"}
	for i, panel := range fig.Panels {
		if panel.Name != wantNames[i] {
			t.Errorf("panel %d name = %q, want %q", i, panel.Name, wantNames[i])
		}
		if len(panel.Lines) != 2 {
			t.Errorf("panel %s has %d lines, want 2", panel.Name, len(panel.Lines))
		}
		if len(panel.Markers) != 4 {
			t.Errorf("panel %s has %d markers, want 4", panel.Name, len(panel.Markers))
		}
	}

	speed := fig.Panels[0]
	if speed.Lines[0].Label != "VER - Speed" || speed.Lines[1].Label != "HAM - Speed" {
		t.Errorf("speed line labels = %q, %q", speed.Lines[0].Label, speed.Lines[1].Label)
	}
	if speed.YLabel != "Speed (km/h)" {
		t.Errorf("speed y label = %q", speed.YLabel)
	}
	if fig.XLabel != "Distance (m)" {
		t.Errorf("x label = %q", fig.XLabel)
	}

	// Numbering restarts at 1 for each driver.
	type mark struct {
		label    string
		distance float64
	}
	want := []mark{
		{"Turn 1", 100}, {"Turn 2", 300}, // VER
		{"Turn 1", 150}, {"Turn 2", 350}, // HAM
	}
	for i, m := range speed.Markers {
		if m.Label != want[i].label || m.Distance != want[i].distance {
			t.Errorf("marker %d = {%q %v}, want {%q %v}",
				i, m.Label, m.Distance, want[i].label, want[i].distance)
		}
	}
}

func TestComposeEmptyInput(t *testing.T) {
	fig, err := Compose(nil, nil)
	if err != nil {
		t.Fatalf("Compose with no series: %v", err)
	}
	if len(fig.Panels) != PanelCount {
		t.Fatalf("got %d panels, want %d", len(fig.Panels), PanelCount)
	}
	for _, panel := range fig.Panels {
		if len(panel.Lines) != 0 || len(panel.Markers) != 0 {
			t.Errorf("panel %s not empty", panel.Name)
		}
	}
}

func TestSeriesColorWrapsAround(t *testing.T) {
	if SeriesColor(0) != SeriesColor(len(Palette)) {
		t.Error("color assignment should wrap around the palette")
	}
	if SeriesColor(1) == SeriesColor(2) {
		t.Error("adjacent series should get distinct colors")
	}
}

func TestFigureSavePNG(t *testing.T) {
	ver := testSeries("VER",
		[]float64{0, 100, 200, 300},
		[]float64{250, 90, 240, 80},
		[]float64{0, 60, 0, 70})

	fig, err := Compose([]telemetry.Series{ver}, []string{"VER"})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	path := filepath.Join(t.TempDir(), "telemetry.png")
	if err := fig.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Error("rendered PNG is empty")
	}
}
