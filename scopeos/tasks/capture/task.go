// Package capture feeds the sample store from a signal source.
package capture

import (
	"time"

	"miniscope/scopeos/kernel"
	"miniscope/scopeos/samples"
	"miniscope/scopeos/signal"
)

// Task is the store's only writer.
type Task struct {
	src    signal.Source
	store  *samples.Store
	period time.Duration
}

func New(src signal.Source, store *samples.Store, period time.Duration) *Task {
	return &Task{src: src, store: store, period: period}
}

// Step takes one sample.
func (t *Task) Step() {
	t.store.Append(t.src.Next())
}

func (t *Task) Run(ctx *kernel.Context) {
	for {
		t.Step()
		if !ctx.Sleep(t.period) {
			return
		}
	}
}
