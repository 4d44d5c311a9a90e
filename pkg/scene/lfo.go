package scene

import (
	"ledmix/pkg/timing"
	"ledmix/pkg/wave"
)

type Leveled interface {
	SetLevel(level float64)
}

func NewLFO(target Leveled, w wave.Wave) *LFO {
	return &LFO{target: target, wave: w}
}

// LFO is a subscriber that drives a level from a wave, e.g. to breathe the
// master fader.
type LFO struct {
	target Leveled
	wave   wave.Wave
}

func (l *LFO) Animate(t timing.TimePoint) {
	l.target.SetLevel(l.wave.Value(t))
}
