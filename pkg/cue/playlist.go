package cue

import (
	"github.com/samber/lo"

	"ledmix/pkg/timing"
)

func NewPlaylist(loop bool, cues ...Cue) *Playlist {
	return &Playlist{cues: cues, loop: loop}
}

// Playlist runs cues one after another. The next cue is reset when the
// current one elapses and starts on the following frame.
type Playlist struct {
	cues []Cue
	idx  int
	loop bool
	done bool
}

func (p *Playlist) Current() Cue {
	if len(p.cues) == 0 {
		return nil
	}
	return p.cues[p.idx]
}

func (p *Playlist) Index() int {
	return p.idx
}

func (p *Playlist) Animate(t timing.TimePoint) {
	c := p.Current()
	if c == nil || p.done {
		return
	}

	c.Animate(t)
	if !c.Elapsed() {
		return
	}

	if p.idx+1 < len(p.cues) {
		p.idx++
	} else if p.loop {
		p.idx = 0
	} else {
		p.done = true
		return
	}
	p.cues[p.idx].Reset()
}

func (p *Playlist) State() FadeState {
	switch {
	case p.done:
		return Elapsed
	case p.idx == 0 && p.Current() != nil && p.Current().State() == Start:
		return Start
	}
	return Active
}

func (p *Playlist) Elapsed() bool {
	return p.done
}

func (p *Playlist) Stop() {
	if c := p.Current(); c != nil {
		c.Stop()
	}
	p.done = true
}

func (p *Playlist) Reset() {
	lo.ForEach(p.cues, func(c Cue, _ int) { c.Reset() })
	p.idx = 0
	p.done = false
}

func (p *Playlist) Duration() int64 {
	return lo.Reduce(p.cues, func(sum int64, c Cue, _ int) int64 {
		return sum + c.Duration()
	}, 0)
}
