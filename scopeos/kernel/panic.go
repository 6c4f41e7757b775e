package kernel

// PanicInfo contains details about a recovered panic.
type PanicInfo struct {
	TaskID   TaskID
	TaskName string
	Value    any
	Stack    []byte
}

// SetPanicHandler installs the handler for task panics.
//
// The handler is invoked at most once (on the first panic). It must not panic.
func (k *Kernel) SetPanicHandler(fn func(PanicInfo)) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.panicHandler = fn
}

func (k *Kernel) triggerPanic(info PanicInfo) {
	k.panicOnce.Do(func() {
		info.Stack = captureStack()
		k.mu.Lock()
		fn := k.panicHandler
		k.mu.Unlock()
		if fn != nil {
			fn(info)
		}
	})
}
