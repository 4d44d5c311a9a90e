package show

import (
	"sync"
	"time"
)

func NewParams(fps int) *Params {
	if fps <= 0 {
		fps = 30
	}
	return &Params{
		FrameInterval: time.Second / time.Duration(fps),
		wakeup:        make(chan struct{}, 1),
	}
}

// Params is the runner's control surface. It is safe to use from any
// goroutine.
type Params struct {
	l sync.RWMutex

	FrameInterval time.Duration

	paused bool
	wakeup chan struct{}
}

func (p *Params) Paused() bool {
	p.l.RLock()
	defer p.l.RUnlock()
	return p.paused
}

func (p *Params) WakeupChan() <-chan struct{} {
	return p.wakeup
}

func (p *Params) Pause() {
	p.l.Lock()
	defer p.l.Unlock()
	p.paused = true
}

func (p *Params) Resume() {
	p.l.Lock()
	p.paused = false
	p.l.Unlock()

	select {
	case p.wakeup <- struct{}{}:
	default:
	}
}
