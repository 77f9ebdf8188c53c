package chart

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/apex-data/lap.report/internal/telemetry"
)

// GlyphShapes is the fixed set of point markers for tyre lines,
// assigned per distinct compound within a driver. More compounds than
// shapes wrap around to the first shape.
var GlyphShapes = []draw.GlyphDrawer{
	draw.CircleGlyph{},
	draw.BoxGlyph{},
	draw.PyramidGlyph{},
	draw.RingGlyph{},
}

// GlyphFor returns the glyph for the j-th compound of a driver.
func GlyphFor(j int) draw.GlyphDrawer {
	return GlyphShapes[j%len(GlyphShapes)]
}

// WeatherLine is one weather quantity over session time.
type WeatherLine struct {
	Label string
	Color color.Color
	XYs   plotter.XYs // x = minutes since first observation
}

// TyreLine is one (driver, compound) tyre-life trace over lap number.
type TyreLine struct {
	Driver   string
	Compound string
	Shape    int // index into GlyphShapes before wrap-around
	Color    color.Color
	XYs      plotter.XYs // x = lap number, y = tyre life in laps
	Slope    float64     // fitted tyre-life change per lap
	HasSlope bool        // false with fewer than two laps
}

// LegendLabel names the line for legends, including the fitted
// degradation slope when one exists.
func (l TyreLine) LegendLabel() string {
	if l.HasSlope {
		return fmt.Sprintf("%s - %s (%+.2f/lap)", l.Driver, l.Compound, l.Slope)
	}
	return l.Driver + " - " + l.Compound
}

// Overview is the session-level figure: weather on top, tyre
// degradation below.
type Overview struct {
	Weather []WeatherLine
	Tyres   []TyreLine
}

// ComposeOverview builds the session overview from weather observations
// and per-lap tyre records. When selected is non-nil, tyre lines are
// limited to those drivers. Weather must be non-empty and every tyre
// record must carry a driver and a compound.
func ComposeOverview(weather []telemetry.WeatherSample, stints []telemetry.TyreStint, selected []string) (*Overview, error) {
	if len(weather) == 0 {
		return nil, fmt.Errorf("%w: weather table is empty", telemetry.ErrMissingColumn)
	}
	for _, st := range stints {
		if st.Driver == "" {
			return nil, fmt.Errorf("%w: tyre record for lap %d: driver", telemetry.ErrMissingColumn, st.Lap)
		}
		if st.Compound == "" {
			return nil, fmt.Errorf("%w: tyre record for %s lap %d: compound", telemetry.ErrMissingColumn, st.Driver, st.Lap)
		}
	}

	ov := &Overview{Weather: weatherLines(weather)}

	keep := func(string) bool { return true }
	if selected != nil {
		wanted := make(map[string]bool, len(selected))
		for _, d := range selected {
			wanted[d] = true
		}
		keep = func(d string) bool { return wanted[d] }
	}

	// Group by driver, then compound, preserving first-appearance order
	// so legends read in race order.
	type byCompound struct {
		order []string
		laps  map[string]plotter.XYs
	}
	var driverOrder []string
	drivers := make(map[string]*byCompound)
	for _, st := range stints {
		if !keep(st.Driver) {
			continue
		}
		g, ok := drivers[st.Driver]
		if !ok {
			g = &byCompound{laps: make(map[string]plotter.XYs)}
			drivers[st.Driver] = g
			driverOrder = append(driverOrder, st.Driver)
		}
		if _, ok := g.laps[st.Compound]; !ok {
			g.order = append(g.order, st.Compound)
		}
		g.laps[st.Compound] = append(g.laps[st.Compound], plotter.XY{X: float64(st.Lap), Y: st.TyreLife})
	}

	for di, driver := range driverOrder {
		g := drivers[driver]
		for ci, compound := range g.order {
			xys := g.laps[compound]
			line := TyreLine{
				Driver:   driver,
				Compound: compound,
				Shape:    ci,
				Color:    SeriesColor(di),
				XYs:      xys,
			}
			if len(xys) >= 2 {
				xs := make([]float64, len(xys))
				ys := make([]float64, len(xys))
				for i, xy := range xys {
					xs[i] = xy.X
					ys[i] = xy.Y
				}
				_, beta := stat.LinearRegression(xs, ys, nil, false)
				line.Slope = beta
				line.HasSlope = true
			}
			ov.Tyres = append(ov.Tyres, line)
		}
	}

	return ov, nil
}

func weatherLines(weather []telemetry.WeatherSample) []WeatherLine {
	start := weather[0].Time
	lines := []WeatherLine{
		{Label: "Air Temp (C)", Color: color.RGBA{B: 0xff, A: 0xff}},
		{Label: "Track Temp (C)", Color: color.RGBA{R: 0xff, A: 0xff}},
		{Label: "Humidity (%)", Color: color.RGBA{G: 0x80, A: 0xff}},
	}
	for _, w := range weather {
		x := w.Time.Sub(start).Minutes()
		lines[0].XYs = append(lines[0].XYs, plotter.XY{X: x, Y: w.AirTemp})
		lines[1].XYs = append(lines[1].XYs, plotter.XY{X: x, Y: w.TrackTemp})
		lines[2].XYs = append(lines[2].XYs, plotter.XY{X: x, Y: w.Humidity})
	}
	return lines
}

// SavePNG renders the overview as a two-panel PNG: weather over session
// time, then tyre life over lap number with per-compound glyphs.
func (o *Overview) SavePNG(path string) error {
	pw := plot.New()
	pw.Title.Text = "Session Weather"
	pw.X.Label.Text = "Session Time (min)"
	pw.Y.Label.Text = "Temperature / Humidity"
	for _, wl := range o.Weather {
		line, err := plotter.NewLine(wl.XYs)
		if err != nil {
			return fmt.Errorf("weather line %s: %w", wl.Label, err)
		}
		line.Color = wl.Color
		line.Width = vg.Points(1)
		pw.Add(line)
		pw.Legend.Add(wl.Label, line)
	}
	pw.Legend.Top = true

	pt := plot.New()
	pt.Title.Text = "Tyre Degradation"
	pt.X.Label.Text = "Lap Number"
	pt.Y.Label.Text = "Tyre Life (laps)"
	for _, tl := range o.Tyres {
		line, points, err := plotter.NewLinePoints(tl.XYs)
		if err != nil {
			return fmt.Errorf("tyre line %s: %w", tl.LegendLabel(), err)
		}
		line.Color = tl.Color
		line.Width = vg.Points(1)
		points.Color = tl.Color
		points.Shape = GlyphFor(tl.Shape)
		pt.Add(line, points)
		pt.Legend.Add(tl.LegendLabel(), line, points)
	}
	pt.Legend.Top = true

	plots := [][]*plot.Plot{{pw}, {pt}}
	return saveColumn(plots, 12*vg.Inch, 10*vg.Inch, path)
}
