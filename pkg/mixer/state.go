package mixer

import "ledmix/pkg/pixel"

// State is the closed set of state payloads components accept. Each
// component switches on the variants it understands.
type State interface {
	state()
}

type LevelState struct {
	Level float64
}

type ColorState struct {
	Color pixel.Pixel
}

type PixelsState struct {
	Pixels []pixel.Pixel
}

type MixerState struct {
	Level  float64
	Layers []float64
}

func (LevelState) state()  {}
func (ColorState) state()  {}
func (PixelsState) state() {}
func (MixerState) state()  {}
