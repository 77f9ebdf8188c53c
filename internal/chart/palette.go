package chart

import "image/color"

// Palette is the fixed set of series colors, assigned to drivers in
// order. With more drivers than colors the assignment wraps around to
// the start, so color reuse on large grids is expected.
var Palette = []color.Color{
	color.RGBA{R: 0xff, G: 0xa5, B: 0x00, A: 0xff}, // orange
	color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}, // red
	color.RGBA{R: 0x00, G: 0x00, B: 0xff, A: 0xff}, // blue
	color.RGBA{R: 0x00, G: 0x80, B: 0x00, A: 0xff}, // green
	color.RGBA{R: 0xff, G: 0xc0, B: 0xcb, A: 0xff}, // pink
	color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}, // grey
	color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}, // black
	color.RGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}, // yellow
	color.RGBA{R: 0xa5, G: 0x2a, B: 0x2a, A: 0xff}, // brown
}

// SeriesColor returns the palette color for the i-th series.
func SeriesColor(i int) color.Color {
	return Palette[i%len(Palette)]
}

// markerColor is used for turn marker lines on every panel.
var markerColor = color.RGBA{R: 0x6e, G: 0x6e, B: 0x6e, A: 0xff}
