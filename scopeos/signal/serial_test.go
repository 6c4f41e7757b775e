//go:build !tinygo

package signal

import (
	"errors"
	"io"
	"testing"
	"time"
)

func waitDone(t *testing.T, s *Serial) {
	t.Helper()
	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatal("serial reader did not stop")
	}
}

func TestSerialHoldsLastValue(t *testing.T) {
	pr, pw := io.Pipe()
	s := NewSerial(pr, 64, 4095)

	if v := s.Next(); v != 64 {
		t.Fatalf("Next() before any line = %d, want 64", v)
	}

	go func() {
		io.WriteString(pw, "100\r\n")
		io.WriteString(pw, "not a number\n\n")
		io.WriteString(pw, " 1234 \n")
		pw.Close()
	}()
	waitDone(t, s)

	if v := s.Next(); v != 1234 {
		t.Fatalf("Next() = %d, want 1234", v)
	}
	if v := s.Next(); v != 1234 {
		t.Fatalf("Next() should hold the last value, got %d", v)
	}
	if err := s.Err(); err != nil {
		t.Fatalf("Err() = %v, want nil at EOF", err)
	}
}

func TestSerialClampsValues(t *testing.T) {
	pr, pw := io.Pipe()
	s := NewSerial(pr, 0, 4095)
	go func() {
		io.WriteString(pw, "9000\n")
		pw.Close()
	}()
	waitDone(t, s)
	if v := s.Next(); v != 4095 {
		t.Fatalf("Next() = %d, want 4095", v)
	}

	pr, pw = io.Pipe()
	s = NewSerial(pr, 0, 4095)
	go func() {
		io.WriteString(pw, "-7\n")
		pw.Close()
	}()
	waitDone(t, s)
	if v := s.Next(); v != 0 {
		t.Fatalf("Next() = %d, want 0", v)
	}
}

func TestSerialReadErrorStopsReader(t *testing.T) {
	pr, pw := io.Pipe()
	s := NewSerial(pr, 0, 4095)

	unplugged := errors.New("unplugged")
	go func() {
		io.WriteString(pw, "321\n")
		pw.CloseWithError(unplugged)
	}()
	waitDone(t, s)

	if !errors.Is(s.Err(), unplugged) {
		t.Fatalf("Err() = %v, want wrapped %v", s.Err(), unplugged)
	}
	if v := s.Next(); v != 321 {
		t.Fatalf("Next() = %d, want last value 321", v)
	}
}
