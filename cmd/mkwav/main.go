//go:build !tinygo

// Command mkwav writes a synthetic test recording for `miniscope -source wav`.
package main

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
)

const (
	defaultOutPath    = "signal.wav"
	defaultSampleRate = 8000
)

// waveform returns the value of one period-normalised shape at phase p in [0,1).
type waveform func(p float64) float64

var shapes = map[string]waveform{
	"sine": func(p float64) float64 { return math.Sin(2 * math.Pi * p) },
	"square": func(p float64) float64 {
		if p < 0.5 {
			return 1
		}
		return -1
	},
	"triangle": func(p float64) float64 { return 1 - 4*math.Abs(p-0.5) },
	"saw":      func(p float64) float64 { return 2*p - 1 },
}

// tone streams a fixed number of frames of shape at freq Hz.
type tone struct {
	shape  waveform
	freq   float64
	amp    float64
	rate   float64
	frame  int
	frames int
}

func (t *tone) Stream(buf [][2]float64) (int, bool) {
	if t.frame >= t.frames {
		return 0, false
	}
	n := 0
	for n < len(buf) && t.frame < t.frames {
		p := math.Mod(float64(t.frame)*t.freq/t.rate, 1)
		v := t.amp * t.shape(p)
		buf[n] = [2]float64{v, v}
		n++
		t.frame++
	}
	return n, true
}

func (t *tone) Err() error { return nil }

func main() {
	var (
		outPath  string
		shape    string
		freq     float64
		amp      float64
		rate     int
		duration time.Duration
	)
	flag.StringVar(&outPath, "out", defaultOutPath, "Output WAV path.")
	flag.StringVar(&shape, "shape", "triangle", "Waveform: sine, square, triangle or saw.")
	flag.Float64Var(&freq, "freq", 1, "Frequency in Hz.")
	flag.Float64Var(&amp, "amp", 0.8, "Peak amplitude, 0..1.")
	flag.IntVar(&rate, "rate", defaultSampleRate, "Sample rate in Hz.")
	flag.DurationVar(&duration, "dur", 10*time.Second, "Recording length.")
	flag.Parse()

	if outPath == "" {
		fmt.Fprintln(os.Stderr, "error: -out is required")
		os.Exit(2)
	}

	if err := run(outPath, shape, freq, amp, rate, duration); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(outPath, shape string, freq, amp float64, rate int, duration time.Duration) error {
	fn, ok := shapes[shape]
	if !ok {
		return fmt.Errorf("unknown shape %q", shape)
	}
	switch {
	case freq <= 0:
		return errors.New("-freq must be positive")
	case amp < 0 || amp > 1:
		return fmt.Errorf("-amp %g outside 0..1", amp)
	case rate <= 0:
		return errors.New("-rate must be positive")
	}

	format := beep.Format{SampleRate: beep.SampleRate(rate), NumChannels: 1, Precision: 2}
	frames := format.SampleRate.N(duration)
	if frames <= 0 {
		return fmt.Errorf("-dur %v is too short", duration)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %q: %w", outPath, err)
	}
	defer func() { _ = f.Close() }()

	t := &tone{shape: fn, freq: freq, amp: amp, rate: float64(rate), frames: frames}
	if err := wav.Encode(f, t, format); err != nil {
		return fmt.Errorf("encode %q: %w", outPath, err)
	}
	return f.Close()
}
