package display

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"miniscope/hal"
	"miniscope/internal/config"
	"miniscope/scopeos/render"
	"miniscope/scopeos/rng"
	"miniscope/scopeos/samples"
	"miniscope/scopeos/trigger"
)

type memFB struct {
	w, h     int
	buf      []byte
	presents int
	errs     []error
}

func (f *memFB) Width() int              { return f.w }
func (f *memFB) Height() int             { return f.h }
func (f *memFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *memFB) StrideBytes() int        { return f.w * 2 }
func (f *memFB) Buffer() []byte          { return f.buf }
func (f *memFB) ClearRGB(r, g, b uint8) {
	p := hal.RGB565(r, g, b)
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i], f.buf[i+1] = byte(p), byte(p>>8)
	}
}

func (f *memFB) Present() error {
	f.presents++
	if len(f.errs) == 0 {
		return nil
	}
	err := f.errs[0]
	f.errs = f.errs[1:]
	return err
}

func (f *memFB) at(x, y int) uint16 {
	off := y*f.w*2 + x*2
	return uint16(f.buf[off]) | uint16(f.buf[off+1])<<8
}

type lines []string

func (l *lines) WriteLineString(s string) { *l = append(*l, s) }
func (l *lines) WriteLineBytes(b []byte)  { *l = append(*l, string(b)) }

func newTask(t *testing.T, cfg config.Config, rnd rng.Source) (*Task, *samples.Store, *memFB, *lines) {
	t.Helper()
	fb := &memFB{w: cfg.Width, h: cfg.Height, buf: make([]byte, cfg.Width*cfg.Height*2)}
	store := samples.New(cfg.BufLen, samples.Sample(cfg.Fill))
	log := &lines{}
	return New(cfg, store, render.NewFramebufferSurface(fb), rnd, log), store, fb, log
}

func trace() uint16 {
	c := render.ColorTrace.RGBA()
	return hal.RGB565(c.R, c.G, c.B)
}

func TestStepEndToEnd(t *testing.T) {
	cfg := config.Default()
	cfg.BufLen = 8
	cfg.Width = 4
	cfg.Overlay = false
	cfg.InitialThreshold = 1500
	task, store, fb, _ := newTask(t, cfg, rng.New(1))

	for _, v := range []samples.Sample{10, 3000, 3000, 10, 10, 3000, 3000, 10} {
		store.Append(v)
	}
	task.Step()

	if task.Edge() != trigger.Rising {
		t.Fatalf("Edge() = %v, want rise", task.Edge())
	}
	if fb.presents != 1 || task.Frames() != 1 {
		t.Fatalf("presents=%d frames=%d, want 1 and 1", fb.presents, task.Frames())
	}
	// Pixels show 3000, 10, 10, 3000: rows 128-3000/32=35 and 127.
	want := map[[2]int]bool{{0, 35}: true, {1, 127}: true, {2, 127}: true, {3, 35}: true}
	for xy := range want {
		if fb.at(xy[0], xy[1]) != trace() {
			t.Fatalf("pixel %v is not trace colored", xy)
		}
	}
}

func TestRetriggerEveryNFrames(t *testing.T) {
	cfg := config.Default()
	cfg.RetriggerFrames = 3
	task, _, _, _ := newTask(t, cfg, &rng.Fixed{Values: []int{1234, 77}})

	var got []samples.Sample
	for i := 0; i < 6; i++ {
		task.Step()
		got = append(got, task.Threshold())
	}
	want := []samples.Sample{3584, 3584, 1234, 1234, 1234, 77}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("threshold sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestRetriggerDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.RetriggerFrames = 0
	task, _, _, _ := newTask(t, cfg, &rng.Fixed{Values: []int{5}})
	for i := 0; i < 100; i++ {
		task.Step()
	}
	if task.Threshold() != samples.Sample(cfg.InitialThreshold) {
		t.Fatalf("Threshold() = %d, want unchanged %d", task.Threshold(), cfg.InitialThreshold)
	}
}

func TestRetriggerStaysInRange(t *testing.T) {
	cfg := config.Default()
	cfg.RetriggerFrames = 1
	task, _, _, _ := newTask(t, cfg, rng.New(3))
	for i := 0; i < 500; i++ {
		task.Step()
		if task.Threshold() > samples.Sample(cfg.SampleMax) {
			t.Fatalf("threshold %d out of range", task.Threshold())
		}
	}
}

func TestPresentFailureLoggedOncePerBurst(t *testing.T) {
	cfg := config.Default()
	task, _, fb, log := newTask(t, cfg, rng.New(1))

	busy := errors.New("spi busy")
	fb.errs = []error{busy, busy, busy, nil, busy}
	for i := 0; i < 5; i++ {
		task.Step()
	}

	if fb.presents != 5 {
		t.Fatalf("presents = %d, want 5 (every frame retries)", fb.presents)
	}
	want := []string{
		"display: present: spi busy",
		"display: present recovered",
		"display: present: spi busy",
	}
	if diff := cmp.Diff(want, []string(*log)); diff != "" {
		t.Fatalf("log mismatch (-want +got):\n%s", diff)
	}
}

func TestFallbackWindowOnFlatSignal(t *testing.T) {
	cfg := config.Default()
	task, store, _, _ := newTask(t, cfg, rng.New(1))
	for i := 0; i < cfg.BufLen; i++ {
		store.Append(100)
	}
	task.Step()
	if task.Edge() != trigger.None {
		t.Fatalf("Edge() = %v, want free-running", task.Edge())
	}
	if !strings.Contains(render.Readout{Edge: task.Edge()}.String(), "free") {
		t.Fatal("readout should report a free-running sweep")
	}
}
