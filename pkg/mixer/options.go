package mixer

import (
	"go.uber.org/zap"

	"ledmix/pkg/pixel"
)

type Option func(m *Mixer)

func WithLevel(level float64) Option {
	return func(m *Mixer) {
		m.level = clampLevel(level)
	}
}

// WithBlendOp sets how the mixer blends into a parent mixer.
func WithBlendOp(op pixel.BlendOp) Option {
	return func(m *Mixer) {
		m.blendOp = op
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(m *Mixer) {
		m.log = logger
	}
}

func WithName(name string) Option {
	return func(m *Mixer) {
		m.name = name
	}
}
