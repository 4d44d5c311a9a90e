// Package adalight streams frames to a microcontroller over USB serial using
// the Adalight framing: "Ada", the LED count minus one as a big-endian
// uint16, a checksum byte, then the channel bytes.
package adalight

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"ledmix/pkg/bitmap"
	"ledmix/pkg/pixel"
	"ledmix/pkg/proto"
)

type Format string

const (
	RGB888 Format = "rgb888"
	RGB565 Format = "rgb565"
)

// Port is the part of proto.Serial the transport uses.
type Port interface {
	Open(opts *proto.Options) error
	Close() error
	Write(p []byte) (int, error)
}

type Option func(a *Adalight)

func WithBaudRate(baud int) Option {
	return func(a *Adalight) {
		a.baud = baud
	}
}

func WithFormat(f Format) Option {
	return func(a *Adalight) {
		a.format = f
	}
}

func WithEncoder(enc *bitmap.Encoder) Option {
	return func(a *Adalight) {
		a.enc = enc
	}
}

func New(port Port, logger *zap.Logger, opts ...Option) *Adalight {
	a := &Adalight{
		port:   port,
		logger: logger,
		baud:   115200,
		format: RGB888,
		enc:    bitmap.NewEncoder(bitmap.RGB, 1),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

var _ proto.Transport = (*Adalight)(nil)

type Adalight struct {
	port   Port
	logger *zap.Logger
	baud   int
	format Format
	enc    *bitmap.Encoder
	buf    []byte
	open   bool
}

func (a *Adalight) Startup() error {
	if err := a.port.Open(&proto.Options{BaudRate: a.baud}); err != nil {
		return err
	}
	a.open = true
	// Most boards reset when the port opens.
	time.Sleep(10 * time.Millisecond)
	return nil
}

func (a *Adalight) Shutdown() error {
	if !a.open {
		return nil
	}
	a.open = false
	return a.port.Close()
}

func (a *Adalight) Write(frame []pixel.Pixel) error {
	if len(frame) == 0 {
		return nil
	}
	if len(frame) > 0x10000 {
		return errors.Errorf("too many leds: %d", len(frame))
	}

	a.buf = header(a.buf[:0], len(frame))
	switch a.format {
	case RGB565:
		a.buf = append(a.buf, bitmap.EncodeRGB565(frame)...)
	default:
		a.buf = a.enc.AppendTo(a.buf, frame)
	}

	return a.sendBytes(a.buf)
}

func header(dst []byte, leds int) []byte {
	n := leds - 1
	hi, lo := byte(n>>8), byte(n&0xFF)
	return append(dst, 'A', 'd', 'a', hi, lo, hi^lo^0x55)
}
