package cue

import (
	"ledmix/pkg/pixel"
	"ledmix/pkg/timing"
)

func NewFade(duration int64, frame *Frame, from, to pixel.Pixel) *Fade {
	return &Fade{
		base:  base{timer: NewTimer(duration)},
		frame: frame,
		From:  from,
		To:    to,
	}
}

// Fade cross-fades the frame background between two colors.
type Fade struct {
	base
	frame    *Frame
	From, To pixel.Pixel
}

func (c *Fade) Animate(t timing.TimePoint) {
	switch c.timer.State() {
	case Elapsed:
		return
	case Start:
		c.timer.Start(t)
		c.frame.Background = c.From
	}

	if c.timer.IsElapsed(t) {
		c.frame.Background = c.To
		c.timer.Stop()
		return
	}

	f := timing.FractionElapsed(t, c.timer.StartMillis(), c.timer.Duration())
	c.frame.Background = pixel.LerpOp.Blend(c.From, c.To, float32(f))
}
