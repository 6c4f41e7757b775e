// Package measure computes voltage readouts over a display window.
package measure

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"miniscope/scopeos/samples"
)

// Stats summarises one window, in volts.
type Stats struct {
	Min  float64
	Max  float64
	Mean float64
	Vpp  float64
}

// Meter converts raw samples to volts and summarises them.
//
// A Meter reuses its scratch buffer between calls and is not safe for
// concurrent use.
type Meter struct {
	vref float64
	max  float64
	buf  []float64
}

// NewMeter returns a meter for windows of up to width samples, with max
// corresponding to vref volts.
func NewMeter(width int, vref float64, max samples.Sample) *Meter {
	return &Meter{vref: vref, max: float64(max), buf: make([]float64, 0, width)}
}

// Volts converts a raw sample to volts.
func (m *Meter) Volts(v samples.Sample) float64 {
	return float64(v) * m.vref / m.max
}

// Measure summarises window. An empty window yields zero Stats.
func (m *Meter) Measure(window []samples.Sample) Stats {
	if len(window) == 0 {
		return Stats{}
	}
	m.buf = m.buf[:0]
	for _, v := range window {
		m.buf = append(m.buf, m.Volts(v))
	}
	lo, hi := floats.Min(m.buf), floats.Max(m.buf)
	return Stats{
		Min:  lo,
		Max:  hi,
		Mean: stat.Mean(m.buf, nil),
		Vpp:  hi - lo,
	}
}
