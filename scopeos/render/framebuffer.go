package render

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"miniscope/hal"
)

// FramebufferSurface draws into an RGB565 hal.Framebuffer.
type FramebufferSurface struct {
	fb     hal.Framebuffer
	pixels [len(palette)]uint16
	text   fbDisplay
}

// NewFramebufferSurface wraps fb. Drawing is a no-op unless fb is RGB565.
func NewFramebufferSurface(fb hal.Framebuffer) *FramebufferSurface {
	s := &FramebufferSurface{fb: fb, text: fbDisplay{fb: fb}}
	for i, c := range palette {
		s.pixels[i] = hal.RGB565(c.R, c.G, c.B)
	}
	return s
}

func (s *FramebufferSurface) ok() bool {
	return s.fb != nil && s.fb.Format() == hal.PixelFormatRGB565 && s.fb.Buffer() != nil
}

func (s *FramebufferSurface) pixel(c Color) uint16 {
	if int(c) >= len(s.pixels) {
		return s.pixels[ColorText]
	}
	return s.pixels[c]
}

func (s *FramebufferSurface) Size() (width, height int) {
	if s.fb == nil {
		return 0, 0
	}
	return s.fb.Width(), s.fb.Height()
}

func (s *FramebufferSurface) Clear(c Color) {
	if !s.ok() {
		return
	}
	rgba := c.RGBA()
	s.fb.ClearRGB(rgba.R, rgba.G, rgba.B)
}

func (s *FramebufferSurface) set(x, y int, p uint16) {
	w, h := s.fb.Width(), s.fb.Height()
	if x < 0 || x >= w || y < 0 || y >= h {
		return
	}
	buf := s.fb.Buffer()
	off := y*s.fb.StrideBytes() + x*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(p)
	buf[off+1] = byte(p >> 8)
}

// DrawLine draws a Bresenham line including both end points.
func (s *FramebufferSurface) DrawLine(x0, y0, x1, y1 int, c Color) {
	if !s.ok() {
		return
	}
	p := s.pixel(c)

	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	e := dx + dy
	for {
		s.set(x0, y0, p)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (s *FramebufferSurface) DrawHLine(x, y, length int, c Color) {
	if !s.ok() || length <= 0 {
		return
	}
	w, h := s.fb.Width(), s.fb.Height()
	if y < 0 || y >= h {
		return
	}
	x0 := clampInt(x, 0, w)
	x1 := clampInt(x+length, 0, w)
	p := s.pixel(c)
	lo, hi := byte(p), byte(p>>8)
	buf := s.fb.Buffer()
	row := y * s.fb.StrideBytes()
	for px := x0; px < x1; px++ {
		off := row + px*2
		if off+1 >= len(buf) {
			return
		}
		buf[off] = lo
		buf[off+1] = hi
	}
}

func (s *FramebufferSurface) DrawVLine(x, y, length int, c Color) {
	if !s.ok() || length <= 0 {
		return
	}
	w, h := s.fb.Width(), s.fb.Height()
	if x < 0 || x >= w {
		return
	}
	y0 := clampInt(y, 0, h)
	y1 := clampInt(y+length, 0, h)
	p := s.pixel(c)
	for py := y0; py < y1; py++ {
		s.set(x, py, p)
	}
}

// LineHeight is the vertical advance of the readout font in pixels.
const LineHeight = 10

// TextWidth returns how many pixels s spans in the readout font.
func TextWidth(s string) int {
	_, outbox := tinyfont.LineWidth(&proggy.TinySZ8pt7b, s)
	return int(outbox)
}

// DrawText writes s in the readout font with its baseline at y.
func (s *FramebufferSurface) DrawText(x, y int, str string, c Color) {
	if !s.ok() {
		return
	}
	tinyfont.WriteLine(&s.text, &proggy.TinySZ8pt7b, int16(x), int16(y), str, c.RGBA())
}

// Present pushes the finished frame to the panel.
func (s *FramebufferSurface) Present() error {
	if s.fb == nil {
		return hal.ErrNotImplemented
	}
	return s.fb.Present()
}

// fbDisplay lets tinyfont draw into the framebuffer.
type fbDisplay struct {
	fb hal.Framebuffer
}

var _ drivers.Displayer = (*fbDisplay)(nil)

func (d *fbDisplay) Size() (x, y int16) {
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}
	buf := d.fb.Buffer()
	off := iy*d.fb.StrideBytes() + ix*2
	if off+1 >= len(buf) {
		return
	}
	p := hal.RGB565(c.R, c.G, c.B)
	buf[off] = byte(p)
	buf[off+1] = byte(p >> 8)
}

// Display is a no-op; the display task presents whole frames.
func (d *fbDisplay) Display() error { return nil }

func (d *fbDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	for py := y; py < y+height; py++ {
		for px := x; px < x+width; px++ {
			d.SetPixel(px, py, c)
		}
	}
	return nil
}

func (d *fbDisplay) SetRotation(drivers.Rotation) error { return nil }

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
