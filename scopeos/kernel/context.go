package kernel

import "time"

// Context provides task-local access to kernel operations.
type Context struct {
	k      *Kernel
	taskID TaskID
	name   string
	done   <-chan struct{}
}

// TaskID returns the current task ID.
func (c *Context) TaskID() TaskID { return c.taskID }

// Name returns the name the task was registered with.
func (c *Context) Name() string { return c.name }

// Done is closed when the kernel is stopping.
func (c *Context) Done() <-chan struct{} { return c.done }

// NowTick returns the last observed tick value.
func (c *Context) NowTick() uint64 {
	if c.k == nil {
		return 0
	}
	return c.k.NowTick()
}

// WaitTick blocks until tick advances past the provided value and returns the
// new tick. ok is false if the kernel stopped first.
func (c *Context) WaitTick(after uint64) (tick uint64, ok bool) {
	if c.k == nil {
		return 0, false
	}
	return c.k.waitTick(c.done, after)
}

// Sleep suspends the task for at least d, rounded up to whole ticks.
//
// It reports false if the kernel stopped while the task was asleep; the task
// should return from Run.
func (c *Context) Sleep(d time.Duration) bool {
	n := uint64((d + time.Millisecond - 1) / time.Millisecond)
	if n == 0 {
		n = 1
	}
	deadline := c.NowTick() + n
	for {
		now, ok := c.WaitTick(deadline - 1)
		if !ok {
			return false
		}
		if now >= deadline {
			return true
		}
	}
}
