package pixel

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

func New(r, g, b float32) Pixel {
	return Pixel{R: r, G: g, B: b}
}

func Black() Pixel {
	return Pixel{}
}

func White() Pixel {
	return Pixel{R: 1, G: 1, B: 1}
}

// Pixel is a three channel color. Channels are not clamped; over-bright
// values are left for the transport encoder to clip.
type Pixel struct {
	R, G, B float32
}

func (p *Pixel) SetColor(r, g, b float32) {
	p.R, p.G, p.B = r, g, b
}

func (p *Pixel) Set(o Pixel) {
	*p = o
}

func (p *Pixel) SetBlack() {
	*p = Pixel{}
}

func (p *Pixel) Scale(factor float32) {
	p.R *= factor
	p.G *= factor
	p.B *= factor
}

// BlendWith overwrites p with op applied to (p, other, amount).
func (p *Pixel) BlendWith(other Pixel, amount float32, op BlendOp) {
	*p = op.Blend(*p, other, amount)
}

func (p Pixel) Scaled(factor float32) Pixel {
	p.Scale(factor)
	return p
}

func (p Pixel) IsBlack() bool {
	return p.R == 0 && p.G == 0 && p.B == 0
}

func (p Pixel) Colorful() colorful.Color {
	return colorful.Color{R: float64(p.R), G: float64(p.G), B: float64(p.B)}
}

func (p Pixel) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", p.R, p.G, p.B)
}

func FromColorful(c colorful.Color) Pixel {
	return Pixel{R: float32(c.R), G: float32(c.G), B: float32(c.B)}
}

// FromHex parses "#rrggbb".
func FromHex(s string) (Pixel, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Pixel{}, fmt.Errorf("parse color %q failed: %w", s, err)
	}
	return FromColorful(c), nil
}

// FromHSV takes hue in degrees, saturation and value in [0,1].
func FromHSV(h, s, v float64) Pixel {
	return FromColorful(colorful.Hsv(h, s, v))
}

func Fill(buf []Pixel, p Pixel) {
	for i := range buf {
		buf[i] = p
	}
}

func Clear(buf []Pixel) {
	for i := range buf {
		buf[i] = Pixel{}
	}
}
