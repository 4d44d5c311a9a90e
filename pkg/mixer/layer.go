package mixer

import (
	"fmt"

	"ledmix/pkg/device"
	"ledmix/pkg/pixel"
	"ledmix/pkg/timing"
)

func NewLayer(name string, effect Effect, op pixel.BlendOp) *Layer {
	if op == nil {
		op = pixel.MaxOp
	}
	return &Layer{
		name:    name,
		effect:  effect,
		blendOp: op,
	}
}

// Layer binds one effect to a blend mode and an opacity. The blend mode is
// fixed for the life of the layer.
type Layer struct {
	name     string
	effect   Effect
	blendOp  pixel.BlendOp
	level    float64
	onChange []func(oldLevel, newLevel float64)
}

func (l *Layer) Name() string {
	return l.name
}

func (l *Layer) Effect() Effect {
	return l.effect
}

func (l *Layer) BlendOp() pixel.BlendOp {
	return l.blendOp
}

func (l *Layer) Level() float64 {
	return l.level
}

// SetLevel clamps level to [0,1] and notifies listeners when it changed.
func (l *Layer) SetLevel(level float64) {
	level = clampLevel(level)
	old := l.level
	l.level = level
	if old != level {
		l.levelChanged(old, level)
	}
}

// OnLevelChanged registers a hook run after every level change.
func (l *Layer) OnLevelChanged(fn func(oldLevel, newLevel float64)) {
	l.onChange = append(l.onChange, fn)
}

func (l *Layer) levelChanged(oldLevel, newLevel float64) {
	if ll, ok := l.effect.(LevelListener); ok {
		ll.LevelChanged(oldLevel, newLevel)
	}
	for _, fn := range l.onChange {
		fn(oldLevel, newLevel)
	}
}

func (l *Layer) Animate(t timing.TimePoint) {
	l.effect.Animate(t)
}

// MixWith renders the effect and blends it into dst. A zero level is the
// caller's business; the layer blends regardless.
func (l *Layer) MixWith(dst []pixel.Pixel) {
	src := l.effect.Render()
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	amount := float32(l.level)
	for i := 0; i < n; i++ {
		dst[i].BlendWith(src[i], amount, l.blendOp)
	}
}

func (l *Layer) PatchDevices(devices []device.Device) error {
	l.effect.PatchDevices(devices)
	return nil
}

func (l *Layer) SetState(s State) error {
	switch v := s.(type) {
	case LevelState:
		l.SetLevel(v.Level)
		return nil
	case ColorState, PixelsState:
		if st, ok := l.effect.(Stateful); ok {
			return st.SetState(s)
		}
	}
	return stateMismatch("layer "+l.name, s)
}

func (l *Layer) String() string {
	return fmt.Sprintf("%s @%.3f (%s)", l.name, l.level, l.blendOp)
}
