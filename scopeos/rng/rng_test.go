package rng

import "testing"

func TestPCGRange(t *testing.T) {
	p := New(1)
	seen := map[int]bool{}
	for i := 0; i < 10_000; i++ {
		v := p.UniformInt(20, 100)
		if v < 20 || v >= 100 {
			t.Fatalf("UniformInt(20, 100) = %d", v)
		}
		seen[v] = true
	}
	if len(seen) != 80 {
		t.Fatalf("expected all 80 values to appear, saw %d", len(seen))
	}
}

func TestPCGDeterministic(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 100; i++ {
		if x, y := a.UniformInt(0, 4096), b.UniformInt(0, 4096); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
}

func TestEmptyRange(t *testing.T) {
	if v := New(7).UniformInt(5, 5); v != 5 {
		t.Fatalf("UniformInt(5, 5) = %d, want 5", v)
	}
	f := &Fixed{Values: []int{3}}
	if v := f.UniformInt(9, 2); v != 9 {
		t.Fatalf("Fixed.UniformInt(9, 2) = %d, want 9", v)
	}
}

func TestFixedReplays(t *testing.T) {
	f := &Fixed{Values: []int{0, 79, 80, -1}}
	want := []int{20, 99, 20, 99, 20}
	for i, w := range want {
		if got := f.UniformInt(20, 100); got != w {
			t.Fatalf("draw %d = %d, want %d", i, got, w)
		}
	}
}
