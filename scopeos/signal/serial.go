//go:build !tinygo

package signal

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"go.bug.st/serial"

	"miniscope/scopeos/samples"
)

// SerialBaud is the line rate the serial sampler opens its port at.
const SerialBaud = 115200

// Serial reads newline-delimited integer samples from a stream, typically a
// USB serial port, and holds the most recent one.
//
// A reader goroutine parses lines as they arrive. Lines that are not integers
// are skipped. Once the stream fails or ends the source keeps returning the
// last value it saw.
type Serial struct {
	rc   io.ReadCloser
	max  int
	last atomic.Uint32

	mu   sync.Mutex
	err  error
	done chan struct{}
}

// OpenSerial opens the named port at 115200 8N1 and starts reading it.
func OpenSerial(port string, initial, max samples.Sample) (*Serial, error) {
	mode := &serial.Mode{
		BaudRate: SerialBaud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	p, err := serial.Open(port, mode)
	if err != nil {
		return nil, fmt.Errorf("signal: open serial %s: %w", port, err)
	}
	return NewSerial(p, initial, max), nil
}

// NewSerial starts reading samples from rc.
func NewSerial(rc io.ReadCloser, initial, max samples.Sample) *Serial {
	s := &Serial{rc: rc, max: int(max), done: make(chan struct{})}
	s.last.Store(uint32(initial))
	go s.readLoop()
	return s
}

func (s *Serial) Next() samples.Sample {
	return samples.Sample(s.last.Load())
}

// Done is closed when the reader goroutine has stopped.
func (s *Serial) Done() <-chan struct{} { return s.done }

// Err returns the error that stopped the reader, if any.
func (s *Serial) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close closes the underlying stream, which also stops the reader.
func (s *Serial) Close() error {
	return s.rc.Close()
}

func (s *Serial) readLoop() {
	defer close(s.done)

	sc := bufio.NewScanner(s.rc)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		v, err := strconv.Atoi(line)
		if err != nil {
			continue
		}
		s.last.Store(uint32(clamp(v, s.max)))
	}
	if err := sc.Err(); err != nil {
		s.mu.Lock()
		s.err = fmt.Errorf("signal: serial read: %w", err)
		s.mu.Unlock()
	}
}
