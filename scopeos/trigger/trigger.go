// Package trigger picks the stretch of history to display so that a
// repeating waveform stands still from frame to frame.
package trigger

import "miniscope/scopeos/samples"

// Edge is the slope of a threshold crossing.
type Edge uint8

const (
	// None means no crossing was found and the window shows the newest samples.
	None Edge = iota
	Rising
	Falling
)

func (e Edge) String() string {
	switch e {
	case Rising:
		return "rise"
	case Falling:
		return "fall"
	default:
		return "free"
	}
}

// History is the read side of the sample store.
type History interface {
	Read(offset int) samples.Sample
	Cap() int
}

// Window selects Width consecutive samples for display.
//
// Start counts back from the write position: pixel 0 shows the sample at
// offset Start-1 and pixel Width-1 the one at offset Start-Width.
type Window struct {
	Start int
	Width int
	Edge  Edge
}

// Offset returns the store offset shown at the given pixel column.
func (w Window) Offset(pixel int) int {
	return w.Start - 1 - pixel
}

// Find scans the history from newest to oldest for the first pair of
// adjacent samples that crosses threshold and centres the window on it.
//
// The scan skips the newest width/2 samples so that the right half of the
// window is always filled with samples newer than the crossing. Without a
// crossing the window shows the newest width samples.
func Find(h History, threshold samples.Sample, width int) Window {
	half := width / 2
	for i := half; i < h.Cap(); i++ {
		older, newer := h.Read(i), h.Read(i-1)
		var edge Edge
		switch {
		case older <= threshold && newer > threshold:
			edge = Rising
		case older >= threshold && newer < threshold:
			edge = Falling
		default:
			continue
		}
		return Window{Start: i + 1 + half, Width: width, Edge: edge}
	}
	return Window{Start: width, Width: width, Edge: None}
}
