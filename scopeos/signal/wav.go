//go:build !tinygo

package signal

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/faiface/beep/wav"

	"miniscope/scopeos/samples"
)

// ErrEmptyRecording is returned when a WAV file decodes to no frames.
var ErrEmptyRecording = errors.New("signal: recording has no samples")

// WAV replays a decoded recording in a loop.
//
// The recording is mixed down to mono, quantized from [-1, 1] to [0, max] and
// decimated so that one Next call advances by one capture period of audio.
type WAV struct {
	data []samples.Sample
	pos  int
}

// OpenWAV decodes the WAV file at path.
func OpenWAV(path string, period time.Duration, max samples.Sample) (*WAV, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("signal: open wav: %w", err)
	}
	defer f.Close()
	return DecodeWAV(f, period, max)
}

// DecodeWAV reads a whole WAV stream from r.
func DecodeWAV(r io.Reader, period time.Duration, max samples.Sample) (*WAV, error) {
	streamer, format, err := wav.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("signal: decode wav: %w", err)
	}
	defer streamer.Close()

	stride := format.SampleRate.N(period)
	if stride < 1 {
		stride = 1
	}

	var (
		data  []samples.Sample
		buf   = make([][2]float64, 512)
		frame int
	)
	for {
		n, ok := streamer.Stream(buf)
		for i := 0; i < n; i++ {
			if frame%stride == 0 {
				data = append(data, quantize((buf[i][0]+buf[i][1])/2, max))
			}
			frame++
		}
		if !ok {
			break
		}
	}
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("signal: decode wav: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyRecording
	}
	return &WAV{data: data}, nil
}

// Len returns the number of samples in one loop of the recording.
func (w *WAV) Len() int { return len(w.data) }

func (w *WAV) Next() samples.Sample {
	v := w.data[w.pos]
	w.pos++
	if w.pos == len(w.data) {
		w.pos = 0
	}
	return v
}

func quantize(x float64, max samples.Sample) samples.Sample {
	v := math.Round((x + 1) / 2 * float64(max))
	return clamp(int(v), int(max))
}
