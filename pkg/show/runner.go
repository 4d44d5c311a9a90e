// Package show runs the frame loop: it is the only goroutine that touches
// the mixer once the show starts.
package show

import (
	"context"
	"time"

	"github.com/rs/xid"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"ledmix/pkg/mixer"
	"ledmix/pkg/proto"
	"ledmix/pkg/timing"
)

func NewRunner(m *mixer.Mixer, out proto.Transport, params *Params, logger *zap.Logger) *Runner {
	id := xid.New()
	return &Runner{
		mixer:   m,
		out:     out,
		params:  params,
		history: NewHistory(3),
		id:      id,
		log:     logger.With(zap.String("run", id.String())),
		done:    make(chan struct{}),
	}
}

type Runner struct {
	mixer   *mixer.Mixer
	out     proto.Transport
	params  *Params
	history *History
	id      xid.ID
	log     *zap.Logger

	start  time.Time
	last   int64
	frames atomic.Uint64
	errors atomic.Uint64
	done   chan struct{}
}

func (r *Runner) ID() xid.ID {
	return r.id
}

func (r *Runner) Frames() uint64 {
	return r.frames.Load()
}

func (r *Runner) History() *History {
	return r.history
}

// Begin sets the scene clock origin.
func (r *Runner) Begin(start time.Time) {
	r.start = start
	r.last = 0
	r.frames.Store(0)
}

// Step renders and writes one frame for wall time now. Scene time never runs
// backwards, even if now does.
func (r *Runner) Step(now time.Time) error {
	frame := r.frames.Load()
	tp := timing.Since(r.start, now, frame)
	if tp.SceneTimeMillis() < r.last {
		tp = timing.New(r.last, frame)
	}
	r.last = tp.SceneTimeMillis()
	r.frames.Inc()

	r.mixer.Animate(tp)
	pixels := r.mixer.Render()
	r.history.Add(pixels)
	return r.out.Write(pixels)
}

// Run drives frames until ctx is done. Transport write failures are logged
// and the show goes on.
func (r *Runner) Run(ctx context.Context) error {
	defer close(r.done)

	if err := r.out.Startup(); err != nil {
		return err
	}
	defer func() {
		if err := r.out.Shutdown(); err != nil {
			r.log.With(zap.Error(err)).Info("shutdown failed")
		}
	}()

	r.Begin(time.Now())
	r.log.With(
		zap.Int("devices", r.mixer.DeviceCount()),
		zap.Duration("interval", r.params.FrameInterval),
	).Info("show started")

	ticker := time.NewTicker(r.params.FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.With(zap.Uint64("frames", r.frames.Load()), zap.Uint64("errors", r.errors.Load())).Info("show stopped")
			return nil
		case <-r.params.WakeupChan():
			r.log.Info("resumed")
		case now := <-ticker.C:
			if r.params.Paused() {
				continue
			}
			if err := r.Step(now); err != nil {
				r.errors.Inc()
				r.log.With(zap.Error(err), zap.Uint64("frame", r.frames.Load())).Info("write failed")
			}
		}
	}
}

// Done is closed when Run returns.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}
