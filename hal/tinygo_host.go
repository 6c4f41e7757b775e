//go:build tinygo && !baremetal

package hal

type tinyGoHostHAL struct {
	logger printLogger
	led    *memLED
	fb     *memFramebuffer
	t      *tinyGoTime
}

// New returns a HAL for `tinygo run` on a desktop or wasm target.
//
// Frames are drawn into memory and never shown; the scope still runs and
// logs its heartbeat through println.
func New(width, height int) HAL {
	return &tinyGoHostHAL{
		led: &memLED{},
		fb:  &memFramebuffer{w: width, h: height, buf: make([]byte, width*height*2)},
		t:   newTinyGoTime(),
	}
}

func (h *tinyGoHostHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHostHAL) LED() LED         { return h.led }
func (h *tinyGoHostHAL) Display() Display { return memDisplay{fb: h.fb} }
func (h *tinyGoHostHAL) Time() Time       { return h.t }
func (h *tinyGoHostHAL) ADC() ADC         { return nil }

type printLogger struct{}

func (printLogger) WriteLineString(s string) { println(s) }
func (printLogger) WriteLineBytes(b []byte)  { println(string(b)) }

type memLED struct{ on bool }

func (l *memLED) High() { l.on = true }
func (l *memLED) Low()  { l.on = false }

type memDisplay struct{ fb Framebuffer }

func (d memDisplay) Framebuffer() Framebuffer { return d.fb }

type memFramebuffer struct {
	w, h int
	buf  []byte
}

func (f *memFramebuffer) Width() int             { return f.w }
func (f *memFramebuffer) Height() int            { return f.h }
func (f *memFramebuffer) Format() PixelFormat    { return PixelFormatRGB565 }
func (f *memFramebuffer) StrideBytes() int       { return f.w * 2 }
func (f *memFramebuffer) Buffer() []byte         { return f.buf }
func (f *memFramebuffer) ClearRGB(r, g, b uint8) { fillRGB565(f.buf, r, g, b) }
func (f *memFramebuffer) Present() error         { return nil }
