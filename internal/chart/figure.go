// Package chart composes multi-driver telemetry figures.
//
// Compose builds a structural figure model (panels, lines, turn
// markers) that tests can inspect directly; SavePNG renders it with
// gonum/plot. The model is assembled in full before any drawing
// happens, so a failed compose leaves no partial output.
package chart

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot/plotter"

	"github.com/apex-data/lap.report/internal/telemetry"
)

// Line is one driver's trace of one quantity.
type Line struct {
	Label string // "LEC - Speed"
	Color color.Color
	XYs   plotter.XYs // x = distance (m)
}

// Marker is a vertical turn annotation, repeated on every panel.
type Marker struct {
	Label    string // "Turn 3", numbered per series
	Distance float64
}

// Panel is one stacked subplot sharing the distance axis.
type Panel struct {
	Name    string // quantity name, e.g. "Speed"
	YLabel  string
	Lines   []Line
	Markers []Marker
}

// Figure is the six-panel telemetry comparison: speed, throttle, brake,
// RPM, gear and DRS stacked over a shared distance axis.
type Figure struct {
	Panels []Panel
	XLabel string
}

// PanelCount is the number of stacked telemetry panels.
const PanelCount = 6

var panelDefs = []struct {
	name   string
	yLabel string
	column func(telemetry.Series) []float64
}{
	{"Speed", "Speed (km/h)", func(s telemetry.Series) []float64 { return s.Speed }},
	{"Throttle", "Throttle (%)", func(s telemetry.Series) []float64 { return s.Throttle }},
	{"Brake", "Brake (%)", func(s telemetry.Series) []float64 { return s.Brake }},
	{"RPM", "RPM", func(s telemetry.Series) []float64 { return s.RPM }},
	{"Gear", "Gear", func(s telemetry.Series) []float64 { return s.Gear }},
	{"DRS", "DRS", func(s telemetry.Series) []float64 { return s.DRS }},
}

// Compose builds the telemetry figure for the given series. Label i
// annotates series i; the lengths must match. Every series is run
// through turn detection with the default thresholds, and each of its
// turns is marked on all six panels with that series' own numbering.
func Compose(seriesList []telemetry.Series, labels []string) (*Figure, error) {
	if len(seriesList) != len(labels) {
		return nil, fmt.Errorf("%w: %d series, %d labels",
			telemetry.ErrLengthMismatch, len(seriesList), len(labels))
	}

	fig := &Figure{
		Panels: make([]Panel, PanelCount),
		XLabel: "Distance (m)",
	}
	for p, def := range panelDefs {
		fig.Panels[p].Name = def.name
		fig.Panels[p].YLabel = def.yLabel
	}

	for i, s := range seriesList {
		if err := s.RequireColumns("throttle", "rpm", "gear", "drs"); err != nil {
			return nil, err
		}
		turns, err := telemetry.DetectTurnsDefault(s)
		if err != nil {
			return nil, err
		}

		c := SeriesColor(i)
		for p, def := range panelDefs {
			values := def.column(s)
			xys := make(plotter.XYs, s.Len())
			for j := range xys {
				xys[j].X = s.Distance[j]
				xys[j].Y = values[j]
			}
			fig.Panels[p].Lines = append(fig.Panels[p].Lines, Line{
				Label: labels[i] + " - " + def.name,
				Color: c,
				XYs:   xys,
			})
			for _, turn := range turns {
				fig.Panels[p].Markers = append(fig.Panels[p].Markers, Marker{
					Label:    fmt.Sprintf("Turn %d", turn.Number),
					Distance: turn.Distance,
				})
			}
		}
	}

	return fig, nil
}

// DistanceRange returns the x extent covered by all lines in the figure.
func (f *Figure) DistanceRange() (min, max float64) {
	first := true
	for _, panel := range f.Panels {
		for _, line := range panel.Lines {
			for _, xy := range line.XYs {
				if first || xy.X < min {
					min = xy.X
				}
				if first || xy.X > max {
					max = xy.X
				}
				first = false
			}
		}
	}
	return min, max
}

// dataRange returns the y extent of the panel's lines, defaulting to
// the unit interval so marker lines stay drawable on empty panels.
func (p Panel) dataRange() (min, max float64) {
	first := true
	for _, line := range p.Lines {
		for _, xy := range line.XYs {
			if first || xy.Y < min {
				min = xy.Y
			}
			if first || xy.Y > max {
				max = xy.Y
			}
			first = false
		}
	}
	if first {
		return 0, 1
	}
	if min == max {
		max = min + 1
	}
	return min, max
}
