// Package display renders the scope screen at a fixed frame rate and owns the
// trigger threshold.
package display

import (
	"fmt"
	"sync/atomic"
	"time"

	"miniscope/hal"
	"miniscope/internal/config"
	"miniscope/scopeos/kernel"
	"miniscope/scopeos/measure"
	"miniscope/scopeos/render"
	"miniscope/scopeos/rng"
	"miniscope/scopeos/samples"
	"miniscope/scopeos/trigger"
)

// Screen is a surface whose frames are pushed out explicitly.
type Screen interface {
	render.Surface
	Present() error
}

// Task is the store's only reader.
type Task struct {
	store    *samples.Store
	screen   Screen
	renderer *render.Renderer
	meter    *measure.Meter
	rnd      rng.Source
	log      hal.Logger

	width     int
	retrigger uint64
	sampleMax int
	period    time.Duration

	threshold atomic.Uint32
	frames    atomic.Uint64
	edge      atomic.Uint32

	window         []samples.Sample
	presentFailing bool
}

func New(cfg config.Config, store *samples.Store, screen Screen, rnd rng.Source, log hal.Logger) *Task {
	t := &Task{
		store:     store,
		screen:    screen,
		renderer:  render.New(cfg),
		meter:     measure.NewMeter(cfg.Width, cfg.VRef, samples.Sample(cfg.SampleMax)),
		rnd:       rnd,
		log:       log,
		width:     cfg.Width,
		retrigger: uint64(cfg.RetriggerFrames),
		sampleMax: int(cfg.SampleMax),
		period:    cfg.DisplayPeriod,
		window:    make([]samples.Sample, cfg.Width),
	}
	t.threshold.Store(uint32(cfg.InitialThreshold))
	return t
}

// Threshold returns the current trigger level.
func (t *Task) Threshold() samples.Sample { return samples.Sample(t.threshold.Load()) }

// Frames returns the number of frames rendered so far.
func (t *Task) Frames() uint64 { return t.frames.Load() }

// Edge returns the slope that placed the most recent frame.
func (t *Task) Edge() trigger.Edge { return trigger.Edge(t.edge.Load()) }

// Step renders and presents one frame.
func (t *Task) Step() {
	level := t.Threshold()
	w := trigger.Find(t.store, level, t.width)

	t.store.Snapshot(t.window, w.Start)
	stats := t.meter.Measure(t.window)
	readout := render.Readout{
		Threshold: t.meter.Volts(level),
		Edge:      w.Edge,
		Vpp:       stats.Vpp,
	}
	t.renderer.Frame(t.screen, t.store, w, level, readout)
	t.present()

	t.edge.Store(uint32(w.Edge))
	n := t.frames.Add(1)
	if t.retrigger > 0 && n%t.retrigger == 0 {
		t.threshold.Store(uint32(t.rnd.UniformInt(0, t.sampleMax+1)))
	}
}

// present logs the first failure of a run of failures; the next frame
// simply tries again.
func (t *Task) present() {
	err := t.screen.Present()
	if err == nil {
		if t.presentFailing && t.log != nil {
			t.log.WriteLineString("display: present recovered")
		}
		t.presentFailing = false
		return
	}
	if !t.presentFailing && t.log != nil {
		t.log.WriteLineString(fmt.Sprintf("display: present: %v", err))
	}
	t.presentFailing = true
}

func (t *Task) Run(ctx *kernel.Context) {
	for {
		t.Step()
		if !ctx.Sleep(t.period) {
			return
		}
	}
}
