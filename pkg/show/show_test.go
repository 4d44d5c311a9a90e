package show

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"ledmix/pkg/device"
	"ledmix/pkg/device/virtual"
	"ledmix/pkg/effect"
	"ledmix/pkg/mixer"
	"ledmix/pkg/pixel"
	"ledmix/pkg/timing"
)

type clock struct {
	seen []timing.TimePoint
}

func (c *clock) Animate(t timing.TimePoint) {
	c.seen = append(c.seen, t)
}

func newMixer(t *testing.T, n int) (*mixer.Mixer, *clock) {
	l := mixer.NewLayer("solid", effect.NewMonochrome(pixel.New(1, 0, 0)), nil)
	l.SetLevel(1)
	m := mixer.New([]mixer.Mixable{l})
	require.NoError(t, m.PatchDevices(device.Grid(n, 1)))
	c := &clock{}
	require.NoError(t, m.Subscribe(c))
	return m, c
}

func TestStepWritesRenderedFrame(t *testing.T) {
	m, _ := newMixer(t, 3)
	out := virtual.Mock(zaptest.NewLogger(t))
	r := NewRunner(m, out, NewParams(30), zaptest.NewLogger(t))

	start := time.Unix(100, 0)
	r.Begin(start)
	require.NoError(t, r.Step(start))

	assert.Equal(t, 1, out.Frames())
	assert.Equal(t, []pixel.Pixel{pixel.New(1, 0, 0), pixel.New(1, 0, 0), pixel.New(1, 0, 0)}, out.Last())
	assert.Equal(t, out.Last(), r.History().Curr())
	assert.Equal(t, uint64(1), r.Frames())
}

func TestStepTimeNeverRunsBackwards(t *testing.T) {
	m, c := newMixer(t, 1)
	r := NewRunner(m, virtual.Mock(nil), NewParams(30), zaptest.NewLogger(t))

	start := time.Unix(100, 0)
	r.Begin(start)
	require.NoError(t, r.Step(start.Add(500*time.Millisecond)))
	require.NoError(t, r.Step(start.Add(200*time.Millisecond)))
	require.NoError(t, r.Step(start.Add(900*time.Millisecond)))

	require.Len(t, c.seen, 3)
	assert.Equal(t, int64(500), c.seen[0].SceneTimeMillis())
	assert.Equal(t, int64(500), c.seen[1].SceneTimeMillis())
	assert.Equal(t, int64(900), c.seen[2].SceneTimeMillis())
	assert.Equal(t, []uint64{0, 1, 2}, []uint64{c.seen[0].Frame(), c.seen[1].Frame(), c.seen[2].Frame()})
}

type failing struct{ writes int }

func (f *failing) Startup() error  { return nil }
func (f *failing) Shutdown() error { return nil }
func (f *failing) Write([]pixel.Pixel) error {
	f.writes++
	return errors.New("unplugged")
}

func TestRunSurvivesWriteErrors(t *testing.T) {
	m, _ := newMixer(t, 2)
	out := &failing{}
	p := NewParams(200)
	r := NewRunner(m, out, p, zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		assert.NoError(t, r.Run(ctx))
	}()

	require.Eventually(t, func() bool { return r.Frames() >= 3 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	<-r.Done()
	assert.GreaterOrEqual(t, out.writes, 3)
}

func TestRunStartsAndStopsTransport(t *testing.T) {
	m, _ := newMixer(t, 2)
	out := virtual.Mock(zaptest.NewLogger(t))
	r := NewRunner(m, out, NewParams(200), zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	go r.Run(ctx)

	require.Eventually(t, func() bool { return out.Frames() > 0 }, 2*time.Second, 5*time.Millisecond)
	assert.True(t, out.Started())
	cancel()
	<-r.Done()
	assert.False(t, out.Started())
}

func TestParamsPauseResume(t *testing.T) {
	p := NewParams(0)
	assert.Equal(t, time.Second/30, p.FrameInterval)
	assert.False(t, p.Paused())

	p.Pause()
	assert.True(t, p.Paused())

	p.Resume()
	p.Resume()
	assert.False(t, p.Paused())
	select {
	case <-p.WakeupChan():
	default:
		t.Fatal("expected wakeup")
	}
}

func TestHistoryKeepsRecentCopies(t *testing.T) {
	h := NewHistory(2)
	assert.Nil(t, h.Curr())

	frame := []pixel.Pixel{pixel.White()}
	h.Add(frame)
	frame[0] = pixel.Black()
	h.Add(frame)
	assert.Equal(t, []pixel.Pixel{pixel.White()}, h.Prev())
	assert.Equal(t, []pixel.Pixel{pixel.Black()}, h.Curr())

	frame[0] = pixel.New(1, 0, 0)
	h.Add(frame)

	assert.Equal(t, 2, h.Len())
	assert.Equal(t, []pixel.Pixel{pixel.Black()}, h.Prev())
	assert.Equal(t, []pixel.Pixel{pixel.New(1, 0, 0)}, h.Curr())
}
