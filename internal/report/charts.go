package report

import (
	"bytes"
	"fmt"
	"image/color"
	"net/http"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/apex-data/lap.report/internal/chart"
	"github.com/apex-data/lap.report/internal/httputil"
	"github.com/apex-data/lap.report/internal/units"
)

// handleTelemetryChart renders the six telemetry panels as stacked
// ECharts line charts. Query params:
//   - units (optional; kph, mph or mps) converts the speed panel.
func (s *Server) handleTelemetryChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	unit := r.URL.Query().Get("units")
	if unit == "" {
		unit = units.KPH
	}
	if !units.IsValid(unit) {
		httputil.WriteJSONError(w, http.StatusBadRequest,
			fmt.Sprintf("invalid units %q, valid values: %s", unit, units.GetValidUnitsString()))
		return
	}

	fig, err := chart.Compose(s.series, s.labels)
	if err != nil {
		httputil.WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("compose failed: %v", err))
		return
	}

	page := components.NewPage()
	for _, panel := range fig.Panels {
		page.AddCharts(panelChart(panel, fig.XLabel, unit))
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		httputil.WriteJSONError(w, http.StatusInternalServerError, fmt.Sprintf("render error: %v", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// panelChart builds one panel as a numeric-axis line chart with turn
// markers as vertical mark lines.
func panelChart(panel chart.Panel, xLabel, unit string) *charts.Line {
	yLabel := panel.YLabel
	convertSpeed := panel.Name == "Speed" && unit != units.KPH
	if convertSpeed {
		yLabel = units.AxisLabel(unit)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Telemetry", Width: "1200px", Height: "320px"}),
		charts.WithTitleOpts(opts.Title{Title: panel.Name}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: xLabel, NameLocation: "middle", NameGap: 30}),
		charts.WithYAxisOpts(opts.YAxis{Name: yLabel}),
	)

	markers := make([]charts.SeriesOpts, 0, len(panel.Markers))
	for _, m := range panel.Markers {
		markers = append(markers, charts.WithMarkLineNameXAxisItemOpts(
			opts.MarkLineNameXAxisItem{Name: m.Label, XAxis: m.Distance},
		))
	}

	for i, l := range panel.Lines {
		data := make([]opts.LineData, len(l.XYs))
		for j, xy := range l.XYs {
			y := xy.Y
			if convertSpeed {
				y = units.ConvertSpeed(y, unit)
			}
			data[j] = opts.LineData{Value: []interface{}{xy.X, y}}
		}

		seriesOpts := []charts.SeriesOpts{
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: hexColor(l.Color)}),
		}
		// Attach the turn mark lines to the first series only; ECharts
		// draws them across the full panel height either way.
		if i == 0 {
			seriesOpts = append(seriesOpts, markers...)
		}
		line.AddSeries(l.Label, data, seriesOpts...)
	}

	return line
}

// handleOverviewChart renders the weather and tyre-degradation panels.
// Query params:
//   - drivers (optional; comma-separated codes) filters tyre lines.
func (s *Server) handleOverviewChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	var selected []string
	if d := r.URL.Query().Get("drivers"); d != "" {
		selected = strings.Split(d, ",")
	}

	ov, err := chart.ComposeOverview(s.weather, s.stints, selected)
	if err != nil {
		httputil.WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("compose failed: %v", err))
		return
	}

	weather := charts.NewLine()
	weather.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Session Overview", Width: "1200px", Height: "400px"}),
		charts.WithTitleOpts(opts.Title{Title: "Session Weather"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Session Time (min)", NameLocation: "middle", NameGap: 30}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Temperature / Humidity"}),
	)
	for _, wl := range ov.Weather {
		data := make([]opts.LineData, len(wl.XYs))
		for j, xy := range wl.XYs {
			data[j] = opts.LineData{Value: []interface{}{xy.X, xy.Y}}
		}
		weather.AddSeries(wl.Label, data,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: hexColor(wl.Color)}),
		)
	}

	tyres := charts.NewLine()
	tyres.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "400px"}),
		charts.WithTitleOpts(opts.Title{Title: "Tyre Degradation"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Lap Number", NameLocation: "middle", NameGap: 30}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Tyre Life (laps)"}),
	)
	symbols := []string{"circle", "rect", "triangle", "diamond"}
	for _, tl := range ov.Tyres {
		data := make([]opts.LineData, len(tl.XYs))
		for j, xy := range tl.XYs {
			data[j] = opts.LineData{
				Value:  []interface{}{xy.X, xy.Y},
				Symbol: symbols[tl.Shape%len(symbols)],
			}
		}
		tyres.AddSeries(tl.LegendLabel(), data,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true), SymbolSize: 8}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: hexColor(tl.Color)}),
		)
	}

	page := components.NewPage()
	page.AddCharts(weather, tyres)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		httputil.WriteJSONError(w, http.StatusInternalServerError, fmt.Sprintf("render error: %v", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// hexColor formats a color for ECharts item styles.
func hexColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
