// Package blink toggles the status LED so a hung board is visible at a glance.
package blink

import (
	"time"

	"miniscope/hal"
	"miniscope/scopeos/kernel"
)

type Task struct {
	led    hal.LED
	period time.Duration
	on     bool
}

func New(led hal.LED, period time.Duration) *Task {
	return &Task{led: led, period: period}
}

// Step flips the LED.
func (t *Task) Step() {
	t.on = !t.on
	if t.on {
		t.led.High()
	} else {
		t.led.Low()
	}
}

func (t *Task) Run(ctx *kernel.Context) {
	for {
		t.Step()
		if !ctx.Sleep(t.period) {
			return
		}
	}
}
