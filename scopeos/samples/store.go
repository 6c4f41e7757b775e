// Package samples holds the scope's capture history.
package samples

import "sync/atomic"

// Sample is one quantized amplitude reading.
type Sample uint16

// Store is a fixed-capacity ring of the most recent samples.
//
// It is safe for one appending goroutine and one reading goroutine without
// locks: each slot and the write count are published atomically, so a reader
// never observes half of a write. Once the ring has wrapped, Append overwrites
// the oldest sample.
type Store struct {
	slots []atomic.Uint32
	count atomic.Uint64
}

// New returns a store of the given capacity with every slot set to fill.
func New(capacity int, fill Sample) *Store {
	if capacity < 1 {
		capacity = 1
	}
	s := &Store{slots: make([]atomic.Uint32, capacity)}
	for i := range s.slots {
		s.slots[i].Store(uint32(fill))
	}
	return s
}

// Cap returns the number of slots.
func (s *Store) Cap() int { return len(s.slots) }

// Written returns the total number of appends since construction.
func (s *Store) Written() uint64 { return s.count.Load() }

// Append writes v at the write position and advances it.
//
// Only one goroutine may call Append.
func (s *Store) Append(v Sample) {
	n := s.count.Load()
	s.slots[n%uint64(len(s.slots))].Store(uint32(v))
	s.count.Store(n + 1)
}

// Read returns the sample offset slots older than the newest one.
//
// Read(0) is the newest sample. Offsets wrap modulo Cap, so an offset of Cap
// or more aliases newer history rather than failing.
func (s *Store) Read(offset int) Sample {
	c := len(s.slots)
	w := int(s.count.Load() % uint64(c))
	idx := (w - 1 - offset%c) % c
	if idx < 0 {
		idx += c
	}
	return Sample(s.slots[idx].Load())
}

// Snapshot copies len(dst) consecutive samples into dst in chronological
// order. start counts back from the write position: dst[0] is Read(start-1)
// and dst[len(dst)-1] is Read(start-len(dst)).
func (s *Store) Snapshot(dst []Sample, start int) {
	for i := range dst {
		dst[i] = s.Read(start - 1 - i)
	}
}
