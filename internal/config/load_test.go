//go:build !tinygo

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
buf_len: 512
width: 128
capture_period: 5ms
overlay: false
walk:
  upper: 3000
`))
	require.NoError(t, err)
	require.Equal(t, 512, cfg.BufLen)
	require.Equal(t, 128, cfg.Width)
	require.Equal(t, 5*time.Millisecond, cfg.CapturePeriod)
	require.False(t, cfg.Overlay)
	require.Equal(t, 3000, cfg.Walk.Upper)

	// Untouched keys keep their defaults.
	require.Equal(t, 128, cfg.Height)
	require.Equal(t, 600, cfg.Walk.Lower)
}

func TestParseEmptyIsDefault(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("bufferlen: 10\n"))
	require.Error(t, err)
}

func TestParseRejectsWideWindow(t *testing.T) {
	_, err := Parse([]byte("buf_len: 64\nwidth: 128\n"))
	require.ErrorIs(t, err, ErrInvalid)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scope.yaml")
	require.NoError(t, os.WriteFile(path, []byte("retrigger_frames: 10\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 10, cfg.RetriggerFrames)
}

func TestLoadRejectsExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scope.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "extension")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
