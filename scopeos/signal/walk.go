package signal

import (
	"miniscope/internal/config"
	"miniscope/scopeos/rng"
	"miniscope/scopeos/samples"
)

// RandomWalk is a synthetic waveform that drifts between two turning points.
//
// Each step moves the value by a random amount in the current direction.
// Occasionally a step is multiplied into a spike. The direction flips once
// the value has gone past the upper bound while rising or below the lower
// bound while falling, so the output looks like a noisy triangle wave.
type RandomWalk struct {
	cfg config.Walk
	max int
	rnd rng.Source

	value  int
	rising bool
}

// NewRandomWalk returns a walk starting at cfg.Initial, rising.
func NewRandomWalk(cfg config.Walk, max samples.Sample, rnd rng.Source) *RandomWalk {
	return &RandomWalk{
		cfg:    cfg,
		max:    int(max),
		rnd:    rnd,
		value:  int(cfg.Initial),
		rising: true,
	}
}

// Rising reports the current direction.
func (w *RandomWalk) Rising() bool { return w.rising }

func (w *RandomWalk) Next() samples.Sample {
	step := w.rnd.UniformInt(w.cfg.StepMin, w.cfg.StepMax)
	if w.rnd.UniformInt(0, w.cfg.SpikeOdds) == w.cfg.SpikeOdds-1 {
		step *= w.cfg.SpikeFactor
	}

	if w.rising {
		w.value += step
		if w.value > w.cfg.Upper {
			w.rising = false
		}
	} else {
		w.value -= step
		if w.value < w.cfg.Lower {
			w.rising = true
		}
	}

	v := clamp(w.value, w.max)
	w.value = int(v)
	return v
}
