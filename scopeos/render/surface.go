// Package render draws the scope screen: graticule, trace, trigger level and
// a one-line readout.
package render

import "image/color"

// Color names the few inks the scope draws with.
type Color uint8

const (
	ColorBackground Color = iota
	ColorGrid
	ColorTrace
	ColorTrigger
	ColorText
)

var palette = [...]color.RGBA{
	ColorBackground: {R: 0x00, G: 0x00, B: 0x00, A: 0xff},
	ColorGrid:       {R: 0x7b, G: 0x7d, B: 0x7b, A: 0xff},
	ColorTrace:      {R: 0x00, G: 0xff, B: 0x00, A: 0xff},
	ColorTrigger:    {R: 0x00, G: 0xff, B: 0xff, A: 0xff},
	ColorText:       {R: 0xff, G: 0xff, B: 0x00, A: 0xff},
}

// RGBA returns the 8-bit-per-channel value of c.
func (c Color) RGBA() color.RGBA {
	if int(c) >= len(palette) {
		return palette[ColorText]
	}
	return palette[c]
}

// Surface is the drawing target of the renderer.
//
// Coordinates outside Size are clipped.
type Surface interface {
	Size() (width, height int)
	Clear(c Color)
	DrawLine(x0, y0, x1, y1 int, c Color)
	DrawHLine(x, y, length int, c Color)
	DrawVLine(x, y, length int, c Color)
}

// TextSurface is implemented by surfaces that can also draw text. The
// readout is skipped on surfaces without it.
type TextSurface interface {
	Surface
	// DrawText draws s with its baseline at y.
	DrawText(x, y int, s string, c Color)
}
