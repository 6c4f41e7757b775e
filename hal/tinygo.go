//go:build tinygo && baremetal

package hal

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/st7789"
)

// Panel geometry of the ST7789 module (Waveshare Pico-LCD-2 wiring, landscape).
const (
	panelWidth  = 320
	panelHeight = 240

	blitRows = 16
)

type picoHAL struct {
	logger *uartLogger
	led    *pinLED
	fb     Framebuffer
	t      *tinyGoTime
	adc    *pinADC
}

// New returns a Raspberry Pi Pico HAL driving an ST7789 panel.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// LCD: SPI1 SCK GP10, SDO GP11, CS GP9, DC GP8, RST GP12, BL GP13.
// Analog input: ADC0 (GP26).
func New(width, height int) HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	logger := &uartLogger{uart: uart}
	return &picoHAL{
		logger: logger,
		led:    &pinLED{pin: ledPin},
		fb:     newST7789Framebuffer(width, height, logger),
		t:      newTinyGoTime(),
		adc:    newPinADC(machine.ADC0),
	}
}

func (h *picoHAL) Logger() Logger   { return h.logger }
func (h *picoHAL) LED() LED         { return h.led }
func (h *picoHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *picoHAL) Time() Time       { return h.t }
func (h *picoHAL) ADC() ADC         { return h.adc }

// st7789Framebuffer keeps a little-endian RGB565 frame in RAM and blits it,
// centred, to the panel on Present.
type st7789Framebuffer struct {
	w      int
	h      int
	stride int
	buf    []byte
	tx     []byte

	x0, y0 int16
	lcd    *st7789.Device
}

func newST7789Framebuffer(width, height int, log Logger) *st7789Framebuffer {
	if width > panelWidth {
		width = panelWidth
	}
	if height > panelHeight {
		height = panelHeight
	}

	machine.SPI1.Configure(machine.SPIConfig{
		SCK:       machine.GP10,
		SDO:       machine.GP11,
		Frequency: 40_000_000,
		Mode:      0,
	})
	lcd := st7789.New(machine.SPI1, machine.GP12, machine.GP8, machine.GP9, machine.GP13)
	lcd.Configure(st7789.Config{
		Width:    240,
		Height:   320,
		Rotation: drivers.Rotation90,
	})
	lcd.FillScreen(color.RGBA{A: 0xFF})
	log.WriteLineString("hal: st7789 ready")

	return &st7789Framebuffer{
		w:      width,
		h:      height,
		stride: width * 2,
		buf:    make([]byte, width*height*2),
		tx:     make([]byte, width*2*blitRows),
		x0:     int16((panelWidth - width) / 2),
		y0:     int16((panelHeight - height) / 2),
		lcd:    &lcd,
	}
}

func (f *st7789Framebuffer) Width() int          { return f.w }
func (f *st7789Framebuffer) Height() int         { return f.h }
func (f *st7789Framebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *st7789Framebuffer) StrideBytes() int    { return f.stride }
func (f *st7789Framebuffer) Buffer() []byte      { return f.buf }

func (f *st7789Framebuffer) ClearRGB(r, g, b uint8) {
	fillRGB565(f.buf, r, g, b)
}

// Present swaps each band of rows to the panel's big-endian order and writes it.
func (f *st7789Framebuffer) Present() error {
	if f.lcd == nil {
		return ErrNotImplemented
	}
	for y := 0; y < f.h; y += blitRows {
		rows := blitRows
		if y+rows > f.h {
			rows = f.h - y
		}
		src := f.buf[y*f.stride : (y+rows)*f.stride]
		dst := f.tx[:len(src)]
		for i := 0; i+1 < len(src); i += 2 {
			dst[i] = src[i+1]
			dst[i+1] = src[i]
		}
		if err := f.lcd.DrawRGBBitmap8(f.x0, f.y0+int16(y), dst, int16(f.w), int16(rows)); err != nil {
			return err
		}
	}
	return nil
}
