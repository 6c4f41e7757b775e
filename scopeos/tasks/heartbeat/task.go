// Package heartbeat periodically logs a one-line status report.
package heartbeat

import (
	"time"

	"miniscope/hal"
	"miniscope/scopeos/kernel"
)

type Task struct {
	log    hal.Logger
	period time.Duration
	report func() string
}

// New returns a task that writes report() to log once per period.
func New(log hal.Logger, period time.Duration, report func() string) *Task {
	return &Task{log: log, period: period, report: report}
}

func (t *Task) Step() {
	if t.log == nil || t.report == nil {
		return
	}
	t.log.WriteLineString(t.report())
}

func (t *Task) Run(ctx *kernel.Context) {
	for ctx.Sleep(t.period) {
		t.Step()
	}
}
