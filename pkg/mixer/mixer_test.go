package mixer

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledmix/pkg/device"
	"ledmix/pkg/pixel"
	"ledmix/pkg/timing"
)

type solid struct {
	color    pixel.Pixel
	pixels   []pixel.Pixel
	animated int
	changes  [][2]float64
}

func (s *solid) Animate(timing.TimePoint) {
	s.animated++
	pixel.Fill(s.pixels, s.color)
}

func (s *solid) Render() []pixel.Pixel { return s.pixels }

func (s *solid) PatchDevices(devices []device.Device) {
	s.pixels = make([]pixel.Pixel, len(devices))
}

func (s *solid) LevelChanged(oldLevel, newLevel float64) {
	s.changes = append(s.changes, [2]float64{oldLevel, newLevel})
}

func (s *solid) SetState(st State) error {
	if c, ok := st.(ColorState); ok {
		s.color = c.Color
		return nil
	}
	return stateMismatch("solid", st)
}

type recorder struct {
	name string
	log  *[]string
	fn   func()
}

func (r *recorder) Animate(timing.TimePoint) {
	*r.log = append(*r.log, r.name)
	if r.fn != nil {
		r.fn()
	}
}

func newLayer(name string, c pixel.Pixel, op pixel.BlendOp, level float64) (*Layer, *solid) {
	eff := &solid{color: c}
	l := NewLayer(name, eff, op)
	l.SetLevel(level)
	return l, eff
}

func frame(t *testing.T, m *Mixer, ms int64) []pixel.Pixel {
	t.Helper()
	m.Animate(timing.At(ms))
	return m.Render()
}

func TestMaxOfRedAndBlue(t *testing.T) {
	a, _ := newLayer("red", pixel.New(1, 0, 0), pixel.MaxOp, 1)
	b, _ := newLayer("blue", pixel.New(0, 0, 1), pixel.MaxOp, 1)
	m := New([]Mixable{a, b})
	require.NoError(t, m.PatchDevices(device.Grid(4, 2)))

	out := frame(t, m, 0)
	require.Len(t, out, 8)
	for i, p := range out {
		assert.Equal(t, pixel.New(1, 0, 1), p, "device %d", i)
	}
}

func TestMasterLevelIsLinear(t *testing.T) {
	a, _ := newLayer("a", pixel.New(0.8, 0.4, 0.2), pixel.MaxOp, 0.7)
	b, _ := newLayer("b", pixel.New(0.1, 0.9, 0.3), pixel.MaxOp, 0.5)
	m := New([]Mixable{a, b})
	require.NoError(t, m.PatchDevices(device.Grid(3, 1)))

	full := append([]pixel.Pixel(nil), frame(t, m, 0)...)
	for _, level := range []float64{0.1, 0.25, 0.5, 0.99} {
		m.SetLevel(level)
		out := frame(t, m, 0)
		for i := range out {
			want := full[i].Scaled(float32(level))
			assert.InDelta(t, want.R, out[i].R, 1e-6)
			assert.InDelta(t, want.G, out[i].G, 1e-6)
			assert.InDelta(t, want.B, out[i].B, 1e-6)
		}
	}
}

func TestMasterLevelZeroIsBlackAndSkipsLayers(t *testing.T) {
	a, effA := newLayer("a", pixel.White(), pixel.MaxOp, 1)
	var log []string
	m := New([]Mixable{a}, WithLevel(0))
	require.NoError(t, m.Subscribe(&recorder{name: "sub", log: &log}))
	require.NoError(t, m.PatchDevices(device.Grid(2, 2)))

	out := frame(t, m, 10)
	for _, p := range out {
		assert.True(t, p.IsBlack())
	}
	assert.Equal(t, 0, effA.animated)
	assert.Equal(t, []string{"sub"}, log, "subscribers still run")
}

func TestInvisibleLayersAreSkipped(t *testing.T) {
	a, effA := newLayer("a", pixel.White(), pixel.MaxOp, 0)
	b, effB := newLayer("b", pixel.New(0, 1, 0), pixel.MaxOp, 1)
	m := New([]Mixable{a, b})
	require.NoError(t, m.PatchDevices(device.Grid(1, 1)))

	out := frame(t, m, 0)
	assert.Equal(t, pixel.New(0, 1, 0), out[0])
	assert.Equal(t, 0, effA.animated)
	assert.Equal(t, 1, effB.animated)
}

func TestZeroDevicesRendersEmpty(t *testing.T) {
	a, _ := newLayer("a", pixel.White(), pixel.MaxOp, 1)
	m := New([]Mixable{a})
	require.NoError(t, m.PatchDevices(nil))
	assert.Empty(t, frame(t, m, 0))
}

func TestRenderReusesBuffer(t *testing.T) {
	a, _ := newLayer("a", pixel.White(), pixel.MaxOp, 1)
	m := New([]Mixable{a})
	require.NoError(t, m.PatchDevices(device.Grid(2, 1)))

	first := frame(t, m, 0)
	second := frame(t, m, 1)
	assert.Same(t, &first[0], &second[0])
}

func TestSubscribersRunFirstInOrder(t *testing.T) {
	var log []string
	a, _ := newLayer("a", pixel.White(), pixel.MaxOp, 0)
	m := New([]Mixable{a})
	require.NoError(t, m.PatchDevices(device.Grid(1, 1)))

	require.NoError(t, m.Subscribe(&recorder{name: "first", log: &log}))
	require.NoError(t, m.Subscribe(&recorder{name: "second", log: &log, fn: func() { a.SetLevel(1) }}))

	out := frame(t, m, 0)
	assert.Equal(t, []string{"first", "second"}, log)
	assert.Equal(t, pixel.White(), out[0], "level set by a subscriber applies the same frame")
	assert.Len(t, m.Subscribers(), 2)
}

func TestSubscribeWhileAnimatingFails(t *testing.T) {
	var log []string
	m := New(nil)
	var subErr error
	require.NoError(t, m.Subscribe(&recorder{name: "greedy", log: &log, fn: func() {
		subErr = m.Subscribe(&recorder{name: "late", log: &log})
	}}))

	m.Animate(timing.At(0))
	assert.True(t, errors.Is(subErr, ErrSubscribeWhileAnimating))
	assert.Len(t, m.Subscribers(), 1)
}

func TestLayerIndexOutOfRange(t *testing.T) {
	a, _ := newLayer("a", pixel.White(), pixel.MaxOp, 1)
	m := New([]Mixable{a})

	l, err := m.Layer(0)
	require.NoError(t, err)
	assert.Same(t, a, l)

	for _, idx := range []int{-1, 1, 10} {
		_, err := m.Layer(idx)
		assert.True(t, errors.Is(err, ErrLayerIndex), "index %d", idx)
	}
}

func TestPatchDevices(t *testing.T) {
	a, effA := newLayer("a", pixel.White(), pixel.MaxOp, 1)
	m := New([]Mixable{a})

	devs := device.Grid(3, 1)
	require.NoError(t, m.PatchDevices(devs))
	assert.Equal(t, 3, m.DeviceCount())
	assert.Len(t, effA.pixels, 3)

	devs[0].Address = 42
	assert.Equal(t, 0, m.devices[0].Address, "devices are copied")

	require.NoError(t, m.PatchDevices(device.Grid(1, 3)), "same count is idempotent")
	err := m.PatchDevices(device.Grid(2, 1))
	assert.True(t, errors.Is(err, ErrDeviceCount))
	assert.Equal(t, 3, m.DeviceCount())
}

func TestAddAfterPatchPatchesLayer(t *testing.T) {
	m := New(nil)
	require.NoError(t, m.PatchDevices(device.Grid(5, 1)))

	b, effB := newLayer("late", pixel.White(), pixel.MaxOp, 1)
	require.NoError(t, m.Add(b))
	assert.Len(t, effB.pixels, 5)
	assert.Equal(t, 1, m.Len())
}

func TestNestedMixer(t *testing.T) {
	bg, _ := newLayer("bg", pixel.New(0.5, 0, 0), pixel.MaxOp, 1)
	inner, _ := newLayer("inner", pixel.New(0, 0, 1), pixel.MaxOp, 1)
	sub := New([]Mixable{inner}, WithName("sub"), WithLevel(0.5))
	m := New([]Mixable{bg, sub})
	require.NoError(t, m.PatchDevices(device.Grid(2, 1)))

	out := frame(t, m, 0)
	for _, p := range out {
		assert.Equal(t, pixel.New(0.5, 0, 0.5), p)
	}

	sub.SetLevel(0)
	out = frame(t, m, 1)
	assert.Equal(t, pixel.New(0.5, 0, 0), out[0])
}

func TestMultiplyGel(t *testing.T) {
	bg, _ := newLayer("bg", pixel.New(1, 1, 1), pixel.MaxOp, 1)
	gel, _ := newLayer("gel", pixel.New(1, 0.5, 0), pixel.MultiplyOp, 1)
	m := New([]Mixable{bg, gel})
	require.NoError(t, m.PatchDevices(device.Grid(1, 1)))

	assert.Equal(t, pixel.New(1, 0.5, 0), frame(t, m, 0)[0])
}

func TestLayerLevelChanged(t *testing.T) {
	l, eff := newLayer("a", pixel.White(), pixel.MaxOp, 0)
	var hooked [][2]float64
	l.OnLevelChanged(func(o, n float64) { hooked = append(hooked, [2]float64{o, n}) })

	l.SetLevel(0.5)
	l.SetLevel(0.5)
	l.SetLevel(7)
	assert.Equal(t, 1.0, l.Level())
	assert.Equal(t, [][2]float64{{0.5, 1}}, hooked[1:])
	assert.Equal(t, [][2]float64{{0, 0.5}, {0.5, 1}}, eff.changes)
}

func TestSetState(t *testing.T) {
	l, eff := newLayer("a", pixel.White(), pixel.MaxOp, 0)
	m := New([]Mixable{l})

	require.NoError(t, l.SetState(LevelState{Level: 0.3}))
	assert.Equal(t, 0.3, l.Level())

	require.NoError(t, l.SetState(ColorState{Color: pixel.New(0, 1, 0)}))
	assert.Equal(t, pixel.New(0, 1, 0), eff.color)

	err := l.SetState(MixerState{})
	assert.True(t, errors.Is(err, ErrStateMismatch))

	require.NoError(t, m.SetState(MixerState{Level: 0.5, Layers: []float64{0.9}}))
	assert.Equal(t, MixerState{Level: 0.5, Layers: []float64{0.9}}, m.State())

	err = m.SetState(MixerState{Level: 1, Layers: []float64{1, 1}})
	assert.True(t, errors.Is(err, ErrLayerIndex))

	err = m.SetState(ColorState{})
	assert.True(t, errors.Is(err, ErrStateMismatch))
}

func TestDescription(t *testing.T) {
	a, _ := newLayer("Background", pixel.Black(), pixel.MaxOp, 1)
	gel, _ := newLayer("Gel", pixel.White(), pixel.MultiplyOp, 0)
	m := New([]Mixable{a, gel})
	assert.Equal(t, "layer0: Background @1.000 (max blend mode)\nlayer1: Gel @0.000 (multiply blend mode)\n", m.Description())
}

func TestSubscribeAfterPanickingSubscriber(t *testing.T) {
	var log []string
	m := New(nil)
	require.NoError(t, m.Subscribe(&recorder{name: "boom", log: &log, fn: func() { panic("boom") }}))

	assert.Panics(t, func() { m.Animate(timing.At(0)) })
	assert.NoError(t, m.Subscribe(&recorder{name: "next", log: &log}))
	assert.Len(t, m.Subscribers(), 2)
}

func TestPatchMismatchInNestedMixerTouchesNothing(t *testing.T) {
	inner, _ := newLayer("inner", pixel.White(), pixel.MaxOp, 1)
	sub := New([]Mixable{inner}, WithName("sub"))
	require.NoError(t, sub.PatchDevices(device.Grid(2, 1)))

	a, effA := newLayer("a", pixel.White(), pixel.MaxOp, 1)
	m := New([]Mixable{a, sub})

	err := m.PatchDevices(device.Grid(3, 1))
	assert.True(t, errors.Is(err, ErrDeviceCount))
	assert.Nil(t, effA.pixels, "earlier layers stay unpatched")
	assert.Equal(t, 0, m.DeviceCount())
	assert.Equal(t, 2, sub.DeviceCount())
}
