//go:build tinygo

package main

import (
	"miniscope/app"
	"miniscope/hal"
	"miniscope/internal/config"
)

func main() {
	cfg := config.Default()
	app.Run(hal.New(cfg.Width, cfg.Height), app.Config{Scope: cfg, Seed: 1})
}
