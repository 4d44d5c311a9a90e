package cue

import (
	"ledmix/pkg/pixel"
	"ledmix/pkg/timing"
)

func NewWeft(duration int64, frame *Frame) *Weft {
	return &Weft{
		base:       base{timer: NewTimer(duration)},
		frame:      frame,
		Thread:     pixel.New(1, 0, 0),
		Cursor:     pixel.White(),
		Background: pixel.Black(),
	}
}

// Weft fills the frame's weft one cell at a time, row by row and column by
// column within a row. The duration is split evenly between the cells. Each
// cell fades in from black while cross-fading from the cursor color to the
// thread color, then commits: Cursor for leading columns, Thread for the
// last column of a row.
//
// Once the final cell has been reached the cue stops stepping and leaves the
// frame untouched until the duration elapses, when the final cell commits.
type Weft struct {
	base
	frame *Frame
	step  StepTimer
	x, y  int

	Thread     pixel.Pixel
	Cursor     pixel.Pixel
	Background pixel.Pixel
}

func (c *Weft) Position() (column, row int) {
	return c.x, c.y
}

func (c *Weft) startStep(t timing.TimePoint) {
	cells := int64(c.frame.Cells())
	if cells == 0 {
		cells = 1
	}
	step := c.timer.Duration() / cells
	if step < 1 {
		step = 1
	}
	c.step.Start(t, step)
}

func (c *Weft) Animate(t timing.TimePoint) {
	switch c.timer.State() {
	case Elapsed:
		return
	case Start:
		c.x, c.y = 0, 0
		c.timer.Start(t)
		c.startStep(t)
		c.frame.FillWeft(c.Background)
	}

	if c.timer.IsElapsed(t) {
		if c.frame.Cells() > 0 {
			c.frame.Weft[c.frame.Columns()-1][c.frame.Rows()-1] = c.Thread
		}
		c.timer.Stop()
		return
	}

	if c.frame.Cells() == 0 {
		return
	}

	f := c.step.Fraction(t)
	if f >= 1 {
		switch {
		case c.x+1 < c.frame.Columns():
			c.frame.Weft[c.x][c.y] = c.Cursor
			c.x++
		case c.y+1 >= c.frame.Rows():
			return
		default:
			c.frame.Weft[c.x][c.y] = c.Thread
			c.x = 0
			c.y++
		}
		c.startStep(t)
		f = c.step.Fraction(t)
	}

	brightness := float32(f)
	color := c.Thread
	color.BlendWith(c.Cursor, 1-brightness, pixel.MaxOp)
	color.Scale(brightness)
	c.frame.Weft[c.x][c.y] = color
}
