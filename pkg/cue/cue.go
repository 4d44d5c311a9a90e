// Package cue implements time-bounded animations with a Start, Active,
// Elapsed lifecycle.
//
// Every cue follows the same sequence inside Animate: on the first call after
// construction or Reset it records the start time, performs its one-time
// setup and becomes Active. On any call where the elapsed time has reached
// the duration it commits its terminal look and stops. Calls after that are
// no-ops until Reset.
package cue

import (
	"fmt"

	"ledmix/pkg/timing"
)

type FadeState int

const (
	Start FadeState = iota
	Active
	Elapsed
)

func (s FadeState) String() string {
	switch s {
	case Start:
		return "start"
	case Active:
		return "active"
	case Elapsed:
		return "elapsed"
	}
	return fmt.Sprintf("FadeState(%d)", int(s))
}

type Cue interface {
	Animate(t timing.TimePoint)
	State() FadeState
	Elapsed() bool
	// Stop forces the cue into Elapsed without a final commit.
	Stop()
	Reset()
	Duration() int64
}

func NewTimer(duration int64) Timer {
	return Timer{duration: duration}
}

// Timer is the coarse cue clock shared by all cue kinds.
type Timer struct {
	duration int64
	start    int64
	state    FadeState
}

func (t *Timer) Start(tp timing.TimePoint) {
	t.start = tp.SceneTimeMillis()
	t.state = Active
}

func (t *Timer) Stop() {
	t.state = Elapsed
}

func (t *Timer) Reset() {
	t.state = Start
	t.start = 0
}

func (t *Timer) State() FadeState {
	return t.state
}

func (t *Timer) Duration() int64 {
	return t.duration
}

func (t *Timer) StartMillis() int64 {
	return t.start
}

func (t *Timer) ElapsedMillis(tp timing.TimePoint) int64 {
	return tp.Sub(t.start)
}

func (t *Timer) IsElapsed(tp timing.TimePoint) bool {
	return t.ElapsedMillis(tp) >= t.duration
}

// StepTimer measures one sub-interval of a cue.
type StepTimer struct {
	start    int64
	duration int64
}

func (s *StepTimer) Start(tp timing.TimePoint, duration int64) {
	s.start = tp.SceneTimeMillis()
	s.duration = duration
}

func (s *StepTimer) Fraction(tp timing.TimePoint) float64 {
	return timing.FractionElapsed(tp, s.start, s.duration)
}

func (s *StepTimer) Duration() int64 {
	return s.duration
}

// base carries the Timer plumbing the concrete cues share.
type base struct {
	timer Timer
}

func (b *base) State() FadeState { return b.timer.State() }
func (b *base) Elapsed() bool    { return b.timer.State() == Elapsed }
func (b *base) Stop()            { b.timer.Stop() }
func (b *base) Reset()           { b.timer.Reset() }
func (b *base) Duration() int64  { return b.timer.Duration() }
