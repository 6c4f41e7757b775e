// Package signal produces the samples the capture task stores.
package signal

import "miniscope/scopeos/samples"

// Source yields one sample per call.
//
// Next never blocks and never fails; a source with nothing new to report
// repeats its last value.
type Source interface {
	Next() samples.Sample
}

// Func adapts a plain function to the Source interface.
type Func func() samples.Sample

func (f Func) Next() samples.Sample { return f() }

func clamp(v, max int) samples.Sample {
	if v < 0 {
		return 0
	}
	if v > max {
		return samples.Sample(max)
	}
	return samples.Sample(v)
}
