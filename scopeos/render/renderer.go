package render

import (
	"fmt"

	"miniscope/internal/config"
	"miniscope/scopeos/samples"
	"miniscope/scopeos/trigger"
)

// Readout is the text shown in the status line.
type Readout struct {
	Threshold float64 // volts
	Edge      trigger.Edge
	Vpp       float64 // volts
}

func (r Readout) String() string {
	return fmt.Sprintf("T %.2fV %s Vpp %.2fV", r.Threshold, r.Edge, r.Vpp)
}

// Renderer turns a display window into drawing calls.
type Renderer struct {
	width    int
	height   int
	gridStep int
	scale    int
	overlay  bool
}

// New returns a renderer for the configured screen geometry.
func New(cfg config.Config) *Renderer {
	return &Renderer{
		width:    cfg.Width,
		height:   cfg.Height,
		gridStep: cfg.GridStep,
		scale:    cfg.Scale,
		overlay:  cfg.Overlay,
	}
}

// Y maps a sample to a screen row: 0 is the top, larger samples sit higher.
func (r *Renderer) Y(v samples.Sample) int {
	return clampInt(r.height-int(v)/r.scale, 0, r.height-1)
}

// Grid draws the graticule.
func (r *Renderer) Grid(s Surface) {
	for x := r.gridStep; x < r.width; x += r.gridStep {
		s.DrawVLine(x, 0, r.height, ColorGrid)
	}
	for y := r.gridStep; y < r.height; y += r.gridStep {
		s.DrawHLine(0, y, r.width, ColorGrid)
	}
}

// Trace joins consecutive samples of the window with line segments.
func (r *Renderer) Trace(s Surface, h trigger.History, w trigger.Window) {
	n := min(w.Width, r.width)
	if n < 2 {
		return
	}
	prev := r.Y(h.Read(w.Offset(0)))
	for i := 1; i < n; i++ {
		y := r.Y(h.Read(w.Offset(i)))
		s.DrawLine(i-1, prev, i, y, ColorTrace)
		prev = y
	}
}

// TriggerLine marks the threshold across the full width.
func (r *Renderer) TriggerLine(s Surface, threshold samples.Sample) {
	s.DrawHLine(0, r.Y(threshold), r.width, ColorTrigger)
}

// Status draws the readout in the top-left corner if the surface supports
// text and the overlay is enabled.
func (r *Renderer) Status(s Surface, ro Readout) {
	if !r.overlay {
		return
	}
	ts, ok := s.(TextSurface)
	if !ok {
		return
	}
	ts.DrawText(2, 9, ro.String(), ColorText)
}

// Frame draws a complete screen. The trigger line goes last so it stays
// visible on top of the trace.
func (r *Renderer) Frame(s Surface, h trigger.History, w trigger.Window, threshold samples.Sample, ro Readout) {
	s.Clear(ColorBackground)
	r.Grid(s)
	r.Trace(s, h, w)
	r.Status(s, ro)
	r.TriggerLine(s, threshold)
}
