package mixer

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"ledmix/pkg/device"
	"ledmix/pkg/pixel"
	"ledmix/pkg/timing"
)

func New(layers []Mixable, opts ...Option) *Mixer {
	m := &Mixer{
		layers:  append([]Mixable(nil), layers...),
		level:   1,
		blendOp: pixel.MaxOp,
		name:    "mixer",
		log:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Mixer composites an ordered stack of layers, background first. A Mixer is
// itself Mixable, so mixers nest.
//
// One goroutine owns a Mixer: Animate and Render are never called
// concurrently, and the buffer Render returns is reused on the next frame.
type Mixer struct {
	name    string
	layers  []Mixable
	pixels  []pixel.Pixel
	devices []device.Device
	patched bool
	level   float64
	blendOp pixel.BlendOp
	log     *zap.Logger

	// Subscribers run before the layers on every frame, in subscription
	// order. They may change any level but never the subscriber list.
	subscribers []Animator
	animating   bool
}

func (m *Mixer) Name() string {
	return m.name
}

func (m *Mixer) Subscribe(a Animator) error {
	if m.animating {
		return ErrSubscribeWhileAnimating
	}
	m.subscribers = append(m.subscribers, a)
	return nil
}

func (m *Mixer) Subscribers() []Animator {
	return append([]Animator(nil), m.subscribers...)
}

// Add appends a foreground layer. Layers added after patching are patched
// immediately.
func (m *Mixer) Add(layer Mixable) error {
	if m.patched {
		if err := layer.PatchDevices(m.devices); err != nil {
			return err
		}
	}
	m.layers = append(m.layers, layer)
	return nil
}

func (m *Mixer) Layer(index int) (Mixable, error) {
	if index < 0 || index >= len(m.layers) {
		return nil, errors.Wrapf(ErrLayerIndex, "index %d of %d", index, len(m.layers))
	}
	return m.layers[index], nil
}

func (m *Mixer) Layers() []Mixable {
	return append([]Mixable(nil), m.layers...)
}

func (m *Mixer) Len() int {
	return len(m.layers)
}

func (m *Mixer) Level() float64 {
	return m.level
}

func (m *Mixer) SetLevel(level float64) {
	m.level = clampLevel(level)
}

func (m *Mixer) BlendOp() pixel.BlendOp {
	return m.blendOp
}

func (m *Mixer) DeviceCount() int {
	return len(m.pixels)
}

func (m *Mixer) Animate(t timing.TimePoint) {
	m.animateSubscribers(t)

	if m.level <= 0 {
		return
	}
	for _, layer := range m.layers {
		if layer.Level() > 0 {
			layer.Animate(t)
		}
	}
}

func (m *Mixer) animateSubscribers(t timing.TimePoint) {
	m.animating = true
	defer func() { m.animating = false }()

	for _, a := range m.subscribers {
		a.Animate(t)
	}
}

// Render composites the current frame into the mixer's own buffer and
// returns it. The buffer is borrowed: it is overwritten by the next Render.
func (m *Mixer) Render() []pixel.Pixel {
	m.composite(m.pixels)
	return m.pixels
}

// MixWith renders the mixer and blends the result into dst, so a mixer can
// sit in a parent mixer's layer stack. The master level is already applied
// by the render, so the blend runs at full strength.
func (m *Mixer) MixWith(dst []pixel.Pixel) {
	src := m.Render()
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	for i := 0; i < n; i++ {
		dst[i].BlendWith(src[i], 1, m.blendOp)
	}
}

func (m *Mixer) composite(buf []pixel.Pixel) {
	pixel.Clear(buf)
	if m.level <= 0 {
		return
	}

	for _, layer := range m.layers {
		if layer.Level() > 0 {
			layer.MixWith(buf)
		}
	}

	if m.level < 1 {
		lf := float32(m.level)
		for i := range buf {
			buf[i].Scale(lf)
		}
	}
}

// PatchDevices copies devices, forwards them to every layer and allocates
// the render buffer. Patching again with the same device count is allowed;
// the buffer length never changes once set. A count mismatch anywhere in the
// tree of nested mixers is reported before any layer is touched.
func (m *Mixer) PatchDevices(devices []device.Device) error {
	devs := device.Clone(devices)
	if err := m.checkDeviceCount(len(devs)); err != nil {
		return err
	}

	for i, layer := range m.layers {
		if err := layer.PatchDevices(devs); err != nil {
			return fmt.Errorf("patch layer %d failed: %w", i, err)
		}
	}

	m.devices = devs
	m.pixels = make([]pixel.Pixel, len(devs))
	m.patched = true

	m.log.With(zap.String("mixer", m.name), zap.Int("devices", len(devs)), zap.Int("layers", len(m.layers))).Debug("patched")
	return nil
}

func (m *Mixer) checkDeviceCount(n int) error {
	if m.patched && n != len(m.pixels) {
		return errors.Wrapf(ErrDeviceCount, "%s patched with %d devices, got %d", m.name, len(m.pixels), n)
	}
	for _, layer := range m.layers {
		if sub, ok := layer.(*Mixer); ok {
			if err := sub.checkDeviceCount(n); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *Mixer) State() MixerState {
	return MixerState{
		Level:  m.level,
		Layers: lo.Map(m.layers, func(l Mixable, _ int) float64 { return l.Level() }),
	}
}

// SetState accepts a LevelState for the master fader, or a MixerState that
// also sets every layer level. A MixerState must name exactly one level per
// layer.
func (m *Mixer) SetState(s State) error {
	switch v := s.(type) {
	case LevelState:
		m.SetLevel(v.Level)
		return nil
	case MixerState:
		if v.Layers != nil && len(v.Layers) != len(m.layers) {
			return errors.Wrapf(ErrLayerIndex, "state has %d layer levels for %d layers", len(v.Layers), len(m.layers))
		}
		m.SetLevel(v.Level)
		for i, level := range v.Layers {
			m.layers[i].SetLevel(level)
		}
		return nil
	}
	return stateMismatch("mixer "+m.name, s)
}

func (m *Mixer) Description() string {
	var sb strings.Builder
	for i, layer := range m.layers {
		fmt.Fprintf(&sb, "layer%d: %s @%.3f (%s blend mode)\n", i, layerName(layer), layer.Level(), layer.BlendOp())
	}
	return sb.String()
}

func (m *Mixer) String() string {
	return m.name
}

func layerName(l Mixable) string {
	switch v := l.(type) {
	case *Layer:
		return v.Name()
	case *Mixer:
		return v.Name()
	}
	return fmt.Sprintf("%T", l)
}
