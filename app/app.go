// Package app wires the HAL, the scope pipeline and the kernel together.
package app

import (
	"context"
	"errors"
	"fmt"

	"miniscope/hal"
	"miniscope/internal/buildinfo"
	"miniscope/internal/config"
	"miniscope/scopeos/kernel"
	"miniscope/scopeos/render"
	"miniscope/scopeos/rng"
	"miniscope/scopeos/samples"
	"miniscope/scopeos/signal"
	"miniscope/scopeos/tasks/blink"
	"miniscope/scopeos/tasks/capture"
	"miniscope/scopeos/tasks/display"
	"miniscope/scopeos/tasks/heartbeat"
)

// ErrStopped is returned by System.Step once every task has returned
// without an error.
var ErrStopped = errors.New("app: stopped")

// ErrNoDisplay is returned when the HAL has no framebuffer to draw on.
var ErrNoDisplay = errors.New("app: no display")

// Config selects what the system runs.
type Config struct {
	Scope config.Config
	// Source overrides the sample source. When nil the HAL's ADC is used if
	// present, otherwise the synthetic random walk.
	Source signal.Source
	// Seed feeds the random walk and the retrigger draw.
	Seed uint64
}

type namedTask struct {
	name string
	task kernel.Task
}

// System owns everything that lives for the lifetime of the scope.
type System struct {
	k       *kernel.Kernel
	store   *samples.Store
	display *display.Task
	source  string

	cancel     context.CancelFunc
	done       chan struct{}
	err        error
	panicLines []string
}

// Start builds the system and launches its tasks. It returns once the tasks
// are running.
func Start(ctx context.Context, h hal.HAL, cfg Config) (*System, error) {
	sc := cfg.Scope
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	disp := h.Display()
	if disp == nil || disp.Framebuffer() == nil {
		return nil, ErrNoDisplay
	}
	fb := disp.Framebuffer()
	if fb.Width() < sc.Width || fb.Height() < sc.Height {
		return nil, fmt.Errorf("app: framebuffer %dx%d smaller than %dx%d screen", fb.Width(), fb.Height(), sc.Width, sc.Height)
	}

	log := h.Logger()
	store := samples.New(sc.BufLen, samples.Sample(sc.Fill))

	src, srcName := cfg.Source, "custom"
	if src == nil {
		if adc := h.ADC(); adc != nil {
			src, srcName = signal.NewADC(adc, samples.Sample(sc.SampleMax)), "adc"
		} else {
			src, srcName = signal.NewRandomWalk(sc.Walk, samples.Sample(sc.SampleMax), rng.New(cfg.Seed)), "walk"
		}
	}

	screen := render.NewFramebufferSurface(fb)
	dt := display.New(sc, store, screen, rng.New(cfg.Seed+1), log)

	s := &System{
		k:       kernel.New(),
		store:   store,
		display: dt,
		source:  srcName,
		done:    make(chan struct{}),
	}
	s.installPanicHandler(h)

	tasks := []namedTask{
		{"capture", capture.New(src, store, sc.CapturePeriod)},
		{"display", dt},
		{"heartbeat", heartbeat.New(log, sc.HeartbeatPeriod, s.report)},
	}
	if led := h.LED(); led != nil {
		tasks = append(tasks, namedTask{"blink", blink.New(led, sc.BlinkPeriod)})
	}
	for _, t := range tasks {
		if _, err := s.k.AddTask(t.name, t.task); err != nil {
			return nil, err
		}
	}

	summary := fmt.Sprintf("scope: source=%s buf=%d screen=%dx%d trigger=%d",
		srcName, sc.BufLen, sc.Width, sc.Height, sc.InitialThreshold)
	if log != nil {
		log.WriteLineString(buildinfo.Banner())
		log.WriteLineString(summary)
	}
	bootScreen(screen, "miniscope "+buildinfo.Short(), "source: "+srcName)

	ctx, s.cancel = context.WithCancel(ctx)
	if ht := h.Time(); ht != nil {
		if ch := ht.Ticks(); ch != nil {
			go s.pumpTicks(ctx, ch)
		}
	}
	go func() {
		s.err = s.k.Run(ctx)
		if s.panicLines != nil {
			drawPanic(screen, s.panicLines)
		}
		close(s.done)
	}()
	return s, nil
}

func (s *System) pumpTicks(ctx context.Context, ch <-chan uint64) {
	for {
		select {
		case <-ctx.Done():
			return
		case seq, ok := <-ch:
			if !ok {
				return
			}
			s.k.TickTo(seq)
		}
	}
}

// Step reports whether the system is still running. It never blocks.
func (s *System) Step() error {
	select {
	case <-s.done:
		if s.err != nil {
			return s.err
		}
		return ErrStopped
	default:
		return nil
	}
}

// Stop cancels every task and waits for them to return.
func (s *System) Stop() error {
	s.cancel()
	<-s.done
	if errors.Is(s.err, context.Canceled) {
		return nil
	}
	return s.err
}

// Done is closed once every task has returned.
func (s *System) Done() <-chan struct{} { return s.done }

// Store exposes the sample history, mainly for tests.
func (s *System) Store() *samples.Store { return s.store }

// Display exposes the display task, mainly for tests.
func (s *System) Display() *display.Task { return s.display }

func (s *System) report() string {
	level := s.display.Threshold()
	return fmt.Sprintf("scope: frames=%d samples=%d trigger=%d %s src=%s",
		s.display.Frames(), s.store.Written(), level, s.display.Edge(), s.source)
}

// New starts the system and returns a step function for the host runners.
// A startup failure is reported by the first call to the step function.
func New(h hal.HAL, cfg Config) func() error {
	s, err := Start(context.Background(), h, cfg)
	if err != nil {
		if l := h.Logger(); l != nil {
			l.WriteLineString(fmt.Sprintf("scope: start: %v", err))
		}
		return func() error { return err }
	}
	return s.Step
}

// Run starts the system and blocks forever (TinyGo entrypoint).
func Run(h hal.HAL, cfg Config) {
	s, err := Start(context.Background(), h, cfg)
	if err != nil {
		if l := h.Logger(); l != nil {
			l.WriteLineString(fmt.Sprintf("scope: start: %v", err))
		}
		select {}
	}
	<-s.Done()
	select {}
}
