package effect

import (
	"math"

	"ledmix/pkg/pixel"
	"ledmix/pkg/timing"
	"ledmix/pkg/wave"
)

func NewChase(color pixel.Pixel, stepMillis int64) *Chase {
	return &Chase{color: color, stepMillis: stepMillis}
}

// Chase lights one device at a time in patch order, one step per
// stepMillis. Patch order is not spatial order, which makes it a useful
// patch test.
type Chase struct {
	canvas
	color      pixel.Pixel
	stepMillis int64
	pos        int
}

func (e *Chase) Position() int {
	return e.pos
}

func (e *Chase) Animate(t timing.TimePoint) {
	n := len(e.pixels)
	pixel.Clear(e.pixels)
	if n == 0 {
		return
	}

	w := wave.Linear{Start: 0, End: float64(n), Period: e.stepMillis * int64(n)}
	e.pos = int(math.Floor(w.Value(t))) % n
	e.pixels[e.pos] = e.color
}
