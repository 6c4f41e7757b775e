// Package kernel runs the scope's periodic tasks.
//
// Every task gets its own goroutine and suspends itself on the kernel's
// millisecond tick stream, so a slow task never delays another one.
package kernel

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

const maxTasks = 16

// TaskID identifies a registered task.
type TaskID uint8

// Task is a long-running unit of execution.
//
// Run should loop until Context.Sleep reports that the kernel is stopping.
type Task interface {
	Run(ctx *Context)
}

// TaskFunc adapts a plain function to the Task interface.
type TaskFunc func(ctx *Context)

func (f TaskFunc) Run(ctx *Context) { f(ctx) }

// ErrTaskPanic is wrapped by the error Run returns when a task panics.
var ErrTaskPanic = errors.New("task panicked")

// ErrTooManyTasks is returned by AddTask once the task table is full.
var ErrTooManyTasks = errors.New("too many tasks")

type taskState struct {
	name string
	task Task
}

// Kernel owns the tick clock and the task table.
type Kernel struct {
	mu   sync.Mutex
	tick uint64
	wake chan struct{}

	tasks []taskState

	panicOnce    sync.Once
	panicHandler func(PanicInfo)
}

// New creates a kernel instance.
func New() *Kernel {
	return &Kernel{wake: make(chan struct{})}
}

// AddTask registers a task and returns its ID.
//
// Tasks added after Run has started are not scheduled.
func (k *Kernel) AddTask(name string, t Task) (TaskID, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if len(k.tasks) >= maxTasks {
		return 0, fmt.Errorf("kernel: add %q: %w", name, ErrTooManyTasks)
	}
	id := TaskID(len(k.tasks))
	k.tasks = append(k.tasks, taskState{name: name, task: t})
	return id, nil
}

// TickTo advances the clock to seq and wakes every sleeping task.
//
// Ticks never move backwards; a stale seq is ignored.
func (k *Kernel) TickTo(seq uint64) {
	k.mu.Lock()
	if seq <= k.tick {
		k.mu.Unlock()
		return
	}
	k.tick = seq
	ch := k.wake
	k.wake = make(chan struct{})
	k.mu.Unlock()
	close(ch)
}

// NowTick returns the last observed tick value.
func (k *Kernel) NowTick() uint64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.tick
}

// waitTick blocks until the clock moves past after or done is closed.
func (k *Kernel) waitTick(done <-chan struct{}, after uint64) (uint64, bool) {
	for {
		k.mu.Lock()
		now, ch := k.tick, k.wake
		k.mu.Unlock()
		if now > after {
			return now, true
		}
		select {
		case <-ch:
		case <-done:
			return now, false
		}
	}
}

// Run starts every registered task and blocks until all of them return.
//
// Cancelling ctx stops the tasks at their next sleep. A panicking task is
// reported to the panic handler, stops the others, and makes Run return an
// error wrapping ErrTaskPanic.
func (k *Kernel) Run(ctx context.Context) error {
	k.mu.Lock()
	tasks := append([]taskState(nil), k.tasks...)
	k.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	for i, st := range tasks {
		c := &Context{k: k, taskID: TaskID(i), name: st.name, done: gctx.Done()}
		task := st.task
		g.Go(func() error {
			return k.runTask(c, task)
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	return err
}

func (k *Kernel) runTask(c *Context, t Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			k.triggerPanic(PanicInfo{TaskID: c.taskID, TaskName: c.name, Value: r})
			err = fmt.Errorf("kernel: task %d (%s): %w: %v", c.taskID, c.name, ErrTaskPanic, r)
		}
	}()
	t.Run(c)
	return nil
}
