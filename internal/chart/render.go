package chart

import (
	"fmt"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// SavePNG renders the figure as a single stacked-panel PNG. Panels
// share the distance axis; the bottom panel carries the x label.
func (f *Figure) SavePNG(path string) error {
	xMin, xMax := f.DistanceRange()

	plots := make([][]*plot.Plot, len(f.Panels))
	for i, panel := range f.Panels {
		p, err := panelPlot(panel, xMin, xMax)
		if err != nil {
			return fmt.Errorf("panel %s: %w", panel.Name, err)
		}
		if i == len(f.Panels)-1 {
			p.X.Label.Text = f.XLabel
		}
		plots[i] = []*plot.Plot{p}
	}

	return saveColumn(plots, 12*vg.Inch, 25*vg.Inch, path)
}

// panelPlot builds one subplot: driver lines, dashed turn markers with
// their labels, and a legend listing every plotted line.
func panelPlot(panel Panel, xMin, xMax float64) (*plot.Plot, error) {
	p := plot.New()
	p.Y.Label.Text = panel.YLabel
	p.X.Min = xMin
	p.X.Max = xMax

	for _, l := range panel.Lines {
		line, err := plotter.NewLine(l.XYs)
		if err != nil {
			return nil, err
		}
		line.Color = l.Color
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(l.Label, line)
	}

	yMin, yMax := panel.dataRange()
	labelXYs := make(plotter.XYs, 0, len(panel.Markers))
	labelTexts := make([]string, 0, len(panel.Markers))
	for _, m := range panel.Markers {
		mark, err := plotter.NewLine(plotter.XYs{
			{X: m.Distance, Y: yMin},
			{X: m.Distance, Y: yMax},
		})
		if err != nil {
			return nil, err
		}
		mark.Color = markerColor
		mark.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(mark)

		labelXYs = append(labelXYs, plotter.XY{X: m.Distance, Y: yMax})
		labelTexts = append(labelTexts, m.Label)
	}
	if len(labelXYs) > 0 {
		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: labelXYs, Labels: labelTexts})
		if err != nil {
			return nil, err
		}
		p.Add(labels)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	return p, nil
}

// saveColumn aligns the plots in a single column and writes the PNG.
func saveColumn(plots [][]*plot.Plot, width, height vg.Length, path string) error {
	img := vgimg.New(width, height)
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows: len(plots),
		Cols: 1,
		PadY: vg.Millimeter * 2,
	}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	w, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer w.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
