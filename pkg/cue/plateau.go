package cue

import (
	"math"

	"ledmix/pkg/timing"
)

func NewPlateau(duration int64, frame *Frame) *Plateau {
	return &Plateau{
		base:  base{timer: NewTimer(duration)},
		frame: frame,
		Shape: 0.25,
	}
}

// Plateau pulses the frame background in flat-topped lumps, one lump per
// pi seconds.
type Plateau struct {
	base
	frame *Frame
	Shape float64
}

func (c *Plateau) level(seconds float64) float32 {
	return float32(math.Pow(math.Abs(math.Sin(seconds-0.5*math.Pi)), c.Shape))
}

func (c *Plateau) Animate(t timing.TimePoint) {
	switch c.timer.State() {
	case Elapsed:
		return
	case Start:
		c.timer.Start(t)
	}

	elapsed := c.timer.ElapsedMillis(t)
	if c.timer.IsElapsed(t) {
		elapsed = c.timer.Duration()
		c.timer.Stop()
	}

	y := c.level(float64(elapsed) / 1000)
	c.frame.Background.SetColor(y, y, y)
}
