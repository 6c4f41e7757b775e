//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	ossignal "os/signal"
	"time"

	"github.com/ncruces/zenity"

	"miniscope/app"
	"miniscope/hal"
	"miniscope/internal/config"
	"miniscope/scopeos/samples"
	"miniscope/scopeos/signal"
)

func main() {
	var (
		headless   hal.HeadlessConfig
		window     hal.WindowConfig
		configPath string
		source     string
		port       string
		wavPath    string
		pickWAV    bool
		seed       uint64
	)
	flag.BoolVar(&headless.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&headless.Hz, "hz", 1000, "Tick rate in headless mode.")
	flag.Uint64Var(&headless.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.IntVar(&window.Scale, "scale", 3, "Window zoom factor.")
	flag.StringVar(&configPath, "config", "", "YAML file overriding the default settings.")
	flag.StringVar(&source, "source", "walk", "Sample source: walk, serial or wav.")
	flag.StringVar(&port, "port", "", "Serial port for -source serial.")
	flag.StringVar(&wavPath, "wav", "", "WAV file for -source wav.")
	flag.BoolVar(&pickWAV, "pick-wav", false, "Choose the WAV file in a dialog (implies -source wav).")
	flag.Uint64Var(&seed, "seed", 0, "Random seed (0 = time based).")
	flag.Parse()

	if err := run(headless, window, configPath, source, port, wavPath, pickWAV, seed); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(headless hal.HeadlessConfig, window hal.WindowConfig, configPath, source, port, wavPath string, pickWAV bool, seed uint64) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	if pickWAV {
		path, err := zenity.SelectFile(
			zenity.Title("Open WAV recording"),
			zenity.FileFilters{{Name: "WAV audio", Patterns: []string{"*.wav"}}},
		)
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("pick wav: %w", err)
		}
		source, wavPath = "wav", path
	}

	src, closeSrc, err := openSource(cfg, source, port, wavPath)
	if err != nil {
		return err
	}
	defer closeSrc()

	ac := app.Config{Scope: cfg, Source: src, Seed: seed}
	newApp := func(h hal.HAL) func() error { return app.New(h, ac) }

	if headless.Enabled {
		headless.Width, headless.Height = cfg.Width, cfg.Height
		ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err := hal.RunHeadless(ctx, newApp, headless)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	window.Width, window.Height = cfg.Width, cfg.Height
	return hal.RunWindow(newApp, window)
}

// openSource builds the sample source named by -source. A nil source lets
// the app fall back to its default.
func openSource(cfg config.Config, name, port, wavPath string) (signal.Source, func(), error) {
	max := samples.Sample(cfg.SampleMax)
	switch name {
	case "", "walk":
		return nil, func() {}, nil
	case "serial":
		if port == "" {
			return nil, nil, errors.New("-source serial needs -port")
		}
		s, err := signal.OpenSerial(port, samples.Sample(cfg.Walk.Initial), max)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case "wav":
		if wavPath == "" {
			return nil, nil, errors.New("-source wav needs -wav or -pick-wav")
		}
		w, err := signal.OpenWAV(wavPath, cfg.CapturePeriod, max)
		if err != nil {
			return nil, nil, err
		}
		return w, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown -source %q (want walk, serial or wav)", name)
	}
}
