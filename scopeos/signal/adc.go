package signal

import (
	"miniscope/hal"
	"miniscope/scopeos/samples"
)

// ADC samples a hardware analog input.
type ADC struct {
	in  hal.ADC
	max uint32
}

// NewADC wraps in, rescaling its 16-bit conversions to [0, max].
func NewADC(in hal.ADC, max samples.Sample) *ADC {
	return &ADC{in: in, max: uint32(max)}
}

func (a *ADC) Next() samples.Sample {
	return samples.Sample(uint32(a.in.Get()) * a.max / 0xFFFF)
}
