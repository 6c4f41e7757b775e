// Package config holds the scope's tunables.
//
// Every value has a documented default matching the reference firmware.
// Buffer capacity and display geometry are shared by the sample store, the
// trigger search and the renderer, so they live here rather than in any one
// of them.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Walk parameterises the synthetic random-walk source.
type Walk struct {
	// Initial is the first value the walk starts from.
	Initial uint16 `yaml:"initial"`
	// StepMin and StepMax bound the step magnitude, StepMax exclusive.
	StepMin int `yaml:"step_min"`
	StepMax int `yaml:"step_max"`
	// One step in SpikeOdds is multiplied by SpikeFactor.
	SpikeOdds   int `yaml:"spike_odds"`
	SpikeFactor int `yaml:"spike_factor"`
	// The walk turns around after crossing Lower (falling) or Upper (rising).
	Lower int `yaml:"lower"`
	Upper int `yaml:"upper"`
}

// Config is the complete scope configuration.
type Config struct {
	// BufLen is the sample store capacity.
	BufLen int `yaml:"buf_len"`
	// Width and Height are the display resolution in pixels. Width is also
	// the number of samples in one display window.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// GridStep is the graticule spacing in pixels.
	GridStep int `yaml:"grid_step"`
	// Scale divides a sample value to get its height in pixels.
	Scale int `yaml:"scale"`
	// SampleMax is the largest value a source may produce (12-bit ADC).
	SampleMax uint16 `yaml:"sample_max"`
	// Fill is written to every slot of the store before the first sample.
	Fill uint16 `yaml:"fill"`

	InitialThreshold uint16 `yaml:"initial_threshold"`
	// RetriggerFrames re-randomises the threshold every N frames; 0 disables.
	RetriggerFrames int `yaml:"retrigger_frames"`

	CapturePeriod   time.Duration `yaml:"capture_period"`
	DisplayPeriod   time.Duration `yaml:"display_period"`
	BlinkPeriod     time.Duration `yaml:"blink_period"`
	HeartbeatPeriod time.Duration `yaml:"heartbeat_period"`

	// VRef is the ADC reference voltage used for readouts.
	VRef float64 `yaml:"vref"`
	// Overlay enables the status text line.
	Overlay bool `yaml:"overlay"`

	Walk Walk `yaml:"walk"`
}

// Default returns the reference configuration.
func Default() Config {
	return Config{
		BufLen:           2560,
		Width:            256,
		Height:           128,
		GridStep:         16,
		Scale:            32,
		SampleMax:        4095,
		Fill:             0,
		InitialThreshold: 3584,
		RetriggerFrames:  30,
		CapturePeriod:    10 * time.Millisecond,
		DisplayPeriod:    100 * time.Millisecond,
		BlinkPeriod:      500 * time.Millisecond,
		HeartbeatPeriod:  1 * time.Second,
		VRef:             3.3,
		Overlay:          true,
		Walk: Walk{
			Initial:     2048,
			StepMin:     20,
			StepMax:     100,
			SpikeOdds:   10,
			SpikeFactor: 3,
			Lower:       600,
			Upper:       3396,
		},
	}
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	switch {
	case c.BufLen < 2:
		return fmt.Errorf("%w: buf_len %d must be at least 2", ErrInvalid, c.BufLen)
	case c.Width < 2:
		return fmt.Errorf("%w: width %d must be at least 2", ErrInvalid, c.Width)
	case c.Width > c.BufLen:
		return fmt.Errorf("%w: width %d exceeds buf_len %d", ErrInvalid, c.Width, c.BufLen)
	case c.Height < 1:
		return fmt.Errorf("%w: height %d must be positive", ErrInvalid, c.Height)
	case c.GridStep < 1:
		return fmt.Errorf("%w: grid_step %d must be positive", ErrInvalid, c.GridStep)
	case c.Scale < 1:
		return fmt.Errorf("%w: scale %d must be positive", ErrInvalid, c.Scale)
	case c.SampleMax == 0:
		return fmt.Errorf("%w: sample_max must be positive", ErrInvalid)
	case c.InitialThreshold > c.SampleMax:
		return fmt.Errorf("%w: initial_threshold %d exceeds sample_max %d", ErrInvalid, c.InitialThreshold, c.SampleMax)
	case c.RetriggerFrames < 0:
		return fmt.Errorf("%w: retrigger_frames %d is negative", ErrInvalid, c.RetriggerFrames)
	case c.CapturePeriod <= 0, c.DisplayPeriod <= 0, c.BlinkPeriod <= 0, c.HeartbeatPeriod <= 0:
		return fmt.Errorf("%w: task periods must be positive", ErrInvalid)
	case c.VRef <= 0:
		return fmt.Errorf("%w: vref %g must be positive", ErrInvalid, c.VRef)
	}
	return c.Walk.validate(c.SampleMax)
}

func (w Walk) validate(max uint16) error {
	switch {
	case w.StepMin < 0:
		return fmt.Errorf("%w: walk.step_min %d is negative", ErrInvalid, w.StepMin)
	case w.StepMax <= w.StepMin:
		return fmt.Errorf("%w: walk.step_max %d must exceed step_min %d", ErrInvalid, w.StepMax, w.StepMin)
	case w.SpikeOdds < 1:
		return fmt.Errorf("%w: walk.spike_odds %d must be positive", ErrInvalid, w.SpikeOdds)
	case w.SpikeFactor < 1:
		return fmt.Errorf("%w: walk.spike_factor %d must be positive", ErrInvalid, w.SpikeFactor)
	case w.Lower >= w.Upper:
		return fmt.Errorf("%w: walk.lower %d must be below upper %d", ErrInvalid, w.Lower, w.Upper)
	case w.Lower < 0 || w.Upper > int(max):
		return fmt.Errorf("%w: walk bounds [%d,%d] outside [0,%d]", ErrInvalid, w.Lower, w.Upper, max)
	case w.Initial > max:
		return fmt.Errorf("%w: walk.initial %d exceeds sample_max %d", ErrInvalid, w.Initial, max)
	}
	return nil
}

// MaxStep is the largest single step the walk can take, spikes included.
func (w Walk) MaxStep() int {
	return (w.StepMax - 1) * w.SpikeFactor
}
