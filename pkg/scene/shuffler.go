package scene

import (
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"ledmix/pkg/cue"
	"ledmix/pkg/mixer"
	"ledmix/pkg/timing"
)

type ShuffleConfig struct {
	// PeriodMillis is how long each pick stays up, fades included.
	PeriodMillis int64 `yaml:"period_millis"`
	FadeMillis   int64 `yaml:"fade_millis"`
	// Every WovenEvery-th pick shows the woven layer alone; 0 disables it.
	WovenEvery int `yaml:"woven_every"`
	MaxGroup   int `yaml:"max_group"`
}

func DefaultShuffleConfig() ShuffleConfig {
	return ShuffleConfig{
		PeriodMillis: 45000,
		FadeMillis:   8000,
		WovenEvery:   4,
		MaxGroup:     3,
	}
}

// NewShuffler subscribes a shuffler to m. The woven layer and the inclusive
// range [seqStart, seqEnd] are the layers it manages; woven may be -1.
func NewShuffler(m *mixer.Mixer, woven, seqStart, seqEnd int, cfg ShuffleConfig, logger *zap.Logger) (*Shuffler, error) {
	if seqEnd < seqStart {
		return nil, fmt.Errorf("empty shuffle range %d..%d: %w", seqStart, seqEnd, mixer.ErrLayerIndex)
	}

	indices := []int{seqStart, seqEnd}
	if woven >= 0 {
		indices = append(indices, woven)
	}
	for _, idx := range indices {
		if _, err := m.Layer(idx); err != nil {
			return nil, err
		}
	}

	if cfg.MaxGroup < 1 {
		cfg.MaxGroup = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Shuffler{
		mixer:    m,
		woven:    woven,
		seqStart: seqStart,
		seqEnd:   seqEnd,
		cfg:      cfg,
		timer:    cue.NewTimer(cfg.PeriodMillis),
		enabled:  true,
		log:      logger.With(zap.String("via", "shuffler")),
	}

	if err := m.Subscribe(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Shuffler fades small groups of adjacent sequence layers in and out so
// that neighbouring looks appear together.
type Shuffler struct {
	mixer    *mixer.Mixer
	woven    int
	seqStart int
	seqEnd   int
	cfg      ShuffleConfig
	timer    cue.Timer
	enabled  bool
	picks    int
	current  []int
	previous []int
	log      *zap.Logger
}

func (s *Shuffler) SetEnabled(enabled bool) {
	s.enabled = enabled
}

func (s *Shuffler) Enabled() bool {
	return s.enabled
}

func (s *Shuffler) Current() []int {
	return append([]int(nil), s.current...)
}

func (s *Shuffler) Animate(t timing.TimePoint) {
	if !s.enabled {
		return
	}

	if s.timer.State() == cue.Start || s.timer.IsElapsed(t) {
		s.previous = s.current
		s.current = s.pick()
		s.timer.Start(t)
		s.log.With(zap.Ints("layers", s.current), zap.Int("pick", s.picks)).Debug("shuffle")
	}

	f := timing.FractionElapsed(t, s.timer.StartMillis(), s.cfg.FadeMillis)
	for _, idx := range s.managed() {
		in := lo.Contains(s.current, idx)
		out := lo.Contains(s.previous, idx)

		var level float64
		switch {
		case in && out:
			level = 1
		case in:
			level = f
		case out:
			level = 1 - f
		}

		if layer, err := s.mixer.Layer(idx); err == nil {
			layer.SetLevel(level)
		}
	}
}

func (s *Shuffler) managed() []int {
	idx := make([]int, 0, s.seqEnd-s.seqStart+2)
	if s.woven >= 0 {
		idx = append(idx, s.woven)
	}
	for i := s.seqStart; i <= s.seqEnd; i++ {
		idx = append(idx, i)
	}
	return idx
}

func (s *Shuffler) pick() []int {
	s.picks++
	if s.woven >= 0 && s.cfg.WovenEvery > 0 && s.picks%s.cfg.WovenEvery == 0 {
		return []int{s.woven}
	}

	span := s.seqEnd - s.seqStart + 1
	maxSize := s.cfg.MaxGroup
	if maxSize > span {
		maxSize = span
	}

	sizes := make([]int, 0, maxSize)
	for i := 1; i <= maxSize; i++ {
		sizes = append(sizes, i)
	}
	size := lo.Sample(sizes)

	starts := make([]int, 0, span)
	for i := s.seqStart; i+size-1 <= s.seqEnd; i++ {
		starts = append(starts, i)
	}
	if len(starts) > 1 && len(s.current) > 0 {
		starts = lo.Filter(starts, func(i int, _ int) bool { return i != s.current[0] })
	}
	start := lo.Shuffle(starts)[0]

	group := make([]int, 0, size)
	for i := start; i < start+size; i++ {
		group = append(group, i)
	}
	return group
}
