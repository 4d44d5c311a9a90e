package virtual

import (
	"sync"

	"go.uber.org/zap"

	"ledmix/pkg/pixel"
	"ledmix/pkg/proto"
)

func Mock(logger *zap.Logger) *Mocker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mocker{l: logger}
}

var _ proto.Transport = (*Mocker)(nil)

// Mocker stands in for an LED controller. It logs and keeps a copy of the
// last frame written.
type Mocker struct {
	l *zap.Logger

	mu      sync.Mutex
	started bool
	frames  int
	last    []pixel.Pixel
}

func (m *Mocker) Startup() error {
	m.mu.Lock()
	m.started = true
	m.mu.Unlock()
	m.l.Info("startup")
	return nil
}

func (m *Mocker) Shutdown() error {
	m.mu.Lock()
	m.started = false
	m.mu.Unlock()
	m.l.Info("shutdown")
	return nil
}

func (m *Mocker) Write(frame []pixel.Pixel) error {
	m.mu.Lock()
	m.last = append(m.last[:0], frame...)
	m.frames++
	n := m.frames
	m.mu.Unlock()

	m.l.With(zap.Int("frame", n), zap.Int("devices", len(frame))).Debug("write")
	return nil
}

func (m *Mocker) Started() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.started
}

func (m *Mocker) Frames() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frames
}

// Last returns a copy of the most recent frame.
func (m *Mocker) Last() []pixel.Pixel {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]pixel.Pixel(nil), m.last...)
}
