package effect

import (
	"ledmix/pkg/pixel"
	"ledmix/pkg/timing"
	"ledmix/pkg/wave"
)

func NewPulse(color pixel.Pixel, w wave.Wave) *Pulse {
	return &Pulse{color: color, wave: w}
}

// Pulse paints one color with its brightness following a wave.
type Pulse struct {
	canvas
	color pixel.Pixel
	wave  wave.Wave
}

func (e *Pulse) Animate(t timing.TimePoint) {
	pixel.Fill(e.pixels, e.color.Scaled(float32(e.wave.Value(t))))
}
