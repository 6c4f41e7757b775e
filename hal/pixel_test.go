package hal

import "testing"

func TestRGB565RoundTripPrimaries(t *testing.T) {
	cases := []struct {
		r, g, b uint8
	}{
		{0, 0, 0},
		{255, 255, 255},
		{255, 0, 0},
		{0, 255, 0},
		{0, 0, 255},
	}
	for _, tc := range cases {
		r, g, b := RGB888From565(RGB565(tc.r, tc.g, tc.b))
		if r != tc.r || g != tc.g || b != tc.b {
			t.Fatalf("round trip (%d,%d,%d) = (%d,%d,%d)", tc.r, tc.g, tc.b, r, g, b)
		}
	}
}

func TestRGB565Layout(t *testing.T) {
	if got := RGB565(255, 0, 0); got != 0xF800 {
		t.Fatalf("red = %#04x, want 0xf800", got)
	}
	if got := RGB565(0, 255, 0); got != 0x07E0 {
		t.Fatalf("green = %#04x, want 0x07e0", got)
	}
	if got := RGB565(0, 0, 255); got != 0x001F {
		t.Fatalf("blue = %#04x, want 0x001f", got)
	}
}

func TestFillRGB565LittleEndian(t *testing.T) {
	buf := make([]byte, 6)
	fillRGB565(buf, 255, 0, 0)
	for i := 0; i < len(buf); i += 2 {
		if buf[i] != 0x00 || buf[i+1] != 0xF8 {
			t.Fatalf("pixel %d = %#02x %#02x, want 0x00 0xf8", i/2, buf[i], buf[i+1])
		}
	}
}
