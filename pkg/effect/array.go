package effect

import (
	"ledmix/pkg/mixer"
	"ledmix/pkg/pixel"
	"ledmix/pkg/timing"
)

func NewArray(initial []pixel.Pixel) *Array {
	return &Array{input: append([]pixel.Pixel(nil), initial...)}
}

// Array maps an externally supplied color list directly onto the rig in
// patch order. Short inputs leave the remaining devices black.
type Array struct {
	canvas
	input []pixel.Pixel
}

func (e *Array) Animate(timing.TimePoint) {
	n := copy(e.pixels, e.input)
	pixel.Clear(e.pixels[n:])
}

func (e *Array) SetState(s mixer.State) error {
	switch v := s.(type) {
	case mixer.PixelsState:
		e.input = append(e.input[:0], v.Pixels...)
		return nil
	case mixer.ColorState:
		e.input = e.input[:0]
		for range e.pixels {
			e.input = append(e.input, v.Color)
		}
		return nil
	}
	return mismatch("array", s)
}
