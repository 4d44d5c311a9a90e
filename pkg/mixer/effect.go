package mixer

import (
	"ledmix/pkg/device"
	"ledmix/pkg/pixel"
	"ledmix/pkg/timing"
)

// Animator advances its internal state to the given time.
type Animator interface {
	Animate(t timing.TimePoint)
}

// Effect draws one part of a scene into its own pixel buffer.
//
// Render returns a buffer the effect owns and reuses; the caller may read it
// until the effect's next Animate or Render call.
type Effect interface {
	Animator
	Render() []pixel.Pixel
	PatchDevices(devices []device.Device)
}

// Mixable can composite itself into a shared buffer.
type Mixable interface {
	Animator
	MixWith(dst []pixel.Pixel)
	Level() float64
	SetLevel(level float64)
	BlendOp() pixel.BlendOp
	PatchDevices(devices []device.Device) error
}

// LevelListener is notified when the level of the layer holding it changes.
type LevelListener interface {
	LevelChanged(oldLevel, newLevel float64)
}

// Stateful accepts the state variants it understands and rejects the rest
// with ErrStateMismatch.
type Stateful interface {
	SetState(s State) error
}

func clampLevel(level float64) float64 {
	if level < 0 {
		return 0
	} else if level > 1 {
		return 1
	}
	return level
}
