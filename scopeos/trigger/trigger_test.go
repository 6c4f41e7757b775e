package trigger

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"miniscope/scopeos/samples"
)

func storeOf(capacity int, values ...samples.Sample) *samples.Store {
	s := samples.New(capacity, 0)
	for _, v := range values {
		s.Append(v)
	}
	return s
}

func pixels(s *samples.Store, w Window) []samples.Sample {
	out := make([]samples.Sample, w.Width)
	for j := range out {
		out[j] = s.Read(w.Offset(j))
	}
	return out
}

func TestFindFallbackShowsNewestSamples(t *testing.T) {
	s := storeOf(8, 100, 200, 300, 400, 500, 600, 700, 800)

	for _, threshold := range []samples.Sample{0, 50, 4000} {
		w := Find(s, threshold, 4)
		if diff := cmp.Diff(Window{Start: 4, Width: 4, Edge: None}, w); diff != "" {
			t.Fatalf("threshold %d: window mismatch (-want +got):\n%s", threshold, diff)
		}
		if diff := cmp.Diff([]samples.Sample{500, 600, 700, 800}, pixels(s, w)); diff != "" {
			t.Fatalf("threshold %d: pixels mismatch (-want +got):\n%s", threshold, diff)
		}
	}
}

func TestFindEndToEnd(t *testing.T) {
	s := storeOf(8, 10, 3000, 3000, 10, 10, 3000, 3000, 10)

	w := Find(s, 1500, 4)
	if diff := cmp.Diff(Window{Start: 6, Width: 4, Edge: Rising}, w); diff != "" {
		t.Fatalf("window mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]samples.Sample{3000, 10, 10, 3000}, pixels(s, w)); diff != "" {
		t.Fatalf("pixels mismatch (-want +got):\n%s", diff)
	}
}

func TestFindCrossingLandsMidWindow(t *testing.T) {
	const width = 6
	s := storeOf(32)
	for i := 0; i < 32; i++ {
		s.Append(100)
	}
	// A single falling crossing 10 samples back.
	for i := 0; i < 10; i++ {
		s.Append(50)
	}
	// 32 + 10 appends into a 32-slot ring: offsets 0..9 are 50, 10.. are 100.

	w := Find(s, 75, width)
	if w.Edge != Falling {
		t.Fatalf("Edge = %v, want fall", w.Edge)
	}
	// The scan compares Read(i) with Read(i-1); the first pair that crosses
	// is i=10 (100 -> 50).
	if want := 10 + 1 + width/2; w.Start != want {
		t.Fatalf("Start = %d, want %d", w.Start, want)
	}
	if got := s.Read(w.Offset(width / 2)); got != 100 {
		t.Fatalf("pixel width/2 shows %d, want the older crossing sample 100", got)
	}
	if got := s.Read(w.Offset(width/2 + 1)); got != 50 {
		t.Fatalf("pixel width/2+1 shows %d, want the newer crossing sample 50", got)
	}
}

func TestFindCrossingCorrectness(t *testing.T) {
	s := samples.New(64, 0)
	for i := 0; i < 200; i++ {
		s.Append(samples.Sample((i * 397) % 4096))
	}

	for _, threshold := range []samples.Sample{0, 100, 1500, 2048, 4000, 4095} {
		w := Find(s, threshold, 8)
		if w.Edge == None {
			continue
		}
		i := w.Start - 1 - 8/2
		older, newer := s.Read(i), s.Read(i-1)
		crosses := (older <= threshold && newer > threshold) ||
			(older >= threshold && newer < threshold)
		if !crosses {
			t.Fatalf("threshold %d: pair (%d,%d) at i=%d does not cross", threshold, older, newer, i)
		}
		for j := 8 / 2; j < i; j++ {
			o, n := s.Read(j), s.Read(j-1)
			if (o <= threshold && n > threshold) || (o >= threshold && n < threshold) {
				t.Fatalf("threshold %d: earlier crossing at i=%d was skipped", threshold, j)
			}
		}
	}
}

func TestFindEqualToThreshold(t *testing.T) {
	// older == threshold counts as a crossing in either direction.
	s := storeOf(8, 0, 0, 0, 0, 1500, 1600, 1600, 1600)
	w := Find(s, 1500, 4)
	if w.Edge != Rising || w.Start != 3+1+2 {
		t.Fatalf("got %+v, want rising crossing at i=3", w)
	}

	s = storeOf(8, 0, 0, 0, 0, 1500, 1400, 1400, 1400)
	w = Find(s, 1500, 4)
	if w.Edge != Falling || w.Start != 3+1+2 {
		t.Fatalf("got %+v, want falling crossing at i=3", w)
	}
}

func TestEdgeString(t *testing.T) {
	for e, want := range map[Edge]string{None: "free", Rising: "rise", Falling: "fall"} {
		if got := e.String(); got != want {
			t.Fatalf("%d.String() = %q, want %q", e, got, want)
		}
	}
}
