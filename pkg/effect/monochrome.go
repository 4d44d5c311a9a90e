package effect

import (
	"ledmix/pkg/mixer"
	"ledmix/pkg/pixel"
	"ledmix/pkg/timing"
)

func NewMonochrome(color pixel.Pixel) *Monochrome {
	return &Monochrome{color: color}
}

// Monochrome paints every device one color.
type Monochrome struct {
	canvas
	color pixel.Pixel
}

func (e *Monochrome) Color() pixel.Pixel {
	return e.color
}

func (e *Monochrome) Animate(timing.TimePoint) {
	pixel.Fill(e.pixels, e.color)
}

func (e *Monochrome) SetState(s mixer.State) error {
	if c, ok := s.(mixer.ColorState); ok {
		e.color = c.Color
		return nil
	}
	return mismatch("monochrome", s)
}
