package measure

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"miniscope/scopeos/samples"
)

func TestVolts(t *testing.T) {
	m := NewMeter(4, 3.3, 4095)
	if got := m.Volts(4095); math.Abs(got-3.3) > 1e-12 {
		t.Fatalf("Volts(4095) = %v, want 3.3", got)
	}
	if got := m.Volts(0); got != 0 {
		t.Fatalf("Volts(0) = %v, want 0", got)
	}
}

func TestMeasure(t *testing.T) {
	m := NewMeter(4, 4.095, 4095)
	got := m.Measure([]samples.Sample{1000, 3000, 2000, 0})
	want := Stats{Min: 0, Max: 3, Mean: 1.5, Vpp: 3}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Fatalf("Measure mismatch (-want +got):\n%s", diff)
	}
}

func TestMeasureFlatAndEmpty(t *testing.T) {
	m := NewMeter(8, 3.3, 4095)
	if got := m.Measure(nil); got != (Stats{}) {
		t.Fatalf("empty window = %+v, want zero", got)
	}
	got := m.Measure([]samples.Sample{2048, 2048, 2048})
	if got.Vpp != 0 || math.Abs(got.Mean-m.Volts(2048)) > 1e-12 {
		t.Fatalf("flat window = %+v", got)
	}
}

func TestMeasureReusesBuffer(t *testing.T) {
	m := NewMeter(4, 3.3, 4095)
	window := []samples.Sample{1, 2, 3, 4}
	allocs := testing.AllocsPerRun(100, func() {
		m.Measure(window)
	})
	if allocs != 0 {
		t.Fatalf("Measure allocated %v times per call", allocs)
	}
}
