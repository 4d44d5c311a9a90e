// Package scene builds the show's layer stack. It talks to the mixer only
// through layers and patching.
package scene

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"ledmix/pkg/device"
	"ledmix/pkg/effect"
	"ledmix/pkg/mixer"
	"ledmix/pkg/pixel"
	"ledmix/pkg/wave"
)

type TextureConfig struct {
	Path          string `yaml:"path"`
	XPeriodMillis int64  `yaml:"x_period_millis"`
	YPeriodMillis int64  `yaml:"y_period_millis"`
}

type Config struct {
	// Background is an additive base color, "#rrggbb".
	Background string `yaml:"background"`
	// Gel tints everything through a multiply layer when set. The gel layer
	// starts at full level.
	Gel          string             `yaml:"gel"`
	WeftColumns  int                `yaml:"weft_columns"`
	WeftRows     int                `yaml:"weft_rows"`
	Woven        effect.WovenTiming `yaml:"woven"`
	RasterWidth  int                `yaml:"raster_width"`
	RasterHeight int                `yaml:"raster_height"`
	Textures     []TextureConfig    `yaml:"textures"`
	Shuffle      ShuffleConfig      `yaml:"shuffle"`
}

func DefaultConfig() Config {
	return Config{
		Background:   "#000000",
		WeftColumns:  2,
		WeftRows:     16,
		Woven:        effect.DefaultWovenTiming(),
		RasterWidth:  64,
		RasterHeight: 64,
		Shuffle:      DefaultShuffleConfig(),
	}
}

// Validate reports dimensions and timings that cannot build a scene.
func (c Config) Validate() error {
	var errs []string

	if c.WeftColumns < 0 || c.WeftRows < 0 {
		errs = append(errs, "scene.weft_columns and scene.weft_rows must not be negative")
	}
	if c.RasterWidth <= 0 || c.RasterHeight <= 0 {
		errs = append(errs, "scene.raster_width and scene.raster_height must be positive")
	}
	if c.Shuffle.PeriodMillis <= 0 {
		errs = append(errs, "scene.shuffle.period_millis must be positive")
	}
	if c.Shuffle.FadeMillis <= 0 {
		errs = append(errs, "scene.shuffle.fade_millis must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid scene: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Scene is a built, patched mixer plus handles to the parts other code
// drives directly.
type Scene struct {
	Mixer         *mixer.Mixer
	Shuffler      *Shuffler
	External      *effect.Array
	WovenIndex    int
	// GelIndex is -1 without a gel.
	GelIndex      int
	SequenceStart int
	SequenceEnd   int
}

// Build creates the layer stack, patches devices and starts with every layer
// faded down under a full master.
func Build(devices []device.Device, cfg Config, fs afero.Fs, logger *zap.Logger) (*Scene, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	bg, err := pixel.FromHex(lo.Ternary(cfg.Background == "", "#000000", cfg.Background))
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}

	// Background to foreground.
	var layers []mixer.Mixable
	layers = append(layers, mixer.NewLayer("Background", effect.NewMonochrome(bg), pixel.MaxOp))

	woven := effect.NewWoven(cfg.WeftColumns, cfg.WeftRows, cfg.Woven)
	wovenIndex := len(layers)
	layers = append(layers, mixer.NewLayer("Woven", woven, pixel.MaxOp))

	sequence, err := sequenceEffects(cfg, fs)
	if err != nil {
		return nil, err
	}
	seqStart := len(layers)
	for _, s := range sequence {
		layers = append(layers, mixer.NewLayer(s.name, s.effect, pixel.MaxOp))
	}
	seqEnd := len(layers) - 1

	external := effect.NewArray(nil)
	layers = append(layers, mixer.NewLayer("External input", external, pixel.MaxOp))

	gelIndex := -1
	if cfg.Gel != "" {
		gel, err := pixel.FromHex(cfg.Gel)
		if err != nil {
			return nil, fmt.Errorf("gel: %w", err)
		}
		gelIndex = len(layers)
		layers = append(layers, mixer.NewLayer("Color correction gel", effect.NewMonochrome(gel), pixel.MultiplyOp))
	}

	m := mixer.New(layers, mixer.WithName("scene"), mixer.WithLogger(logger))
	if err := m.PatchDevices(devices); err != nil {
		return nil, err
	}

	for i, l := range m.Layers() {
		l.SetLevel(lo.Ternary(i == gelIndex, 1.0, 0.0))
	}
	m.SetLevel(1)

	shuffler, err := NewShuffler(m, wovenIndex, seqStart, seqEnd, cfg.Shuffle, logger)
	if err != nil {
		return nil, err
	}

	logger.With(
		zap.Int("devices", len(devices)),
		zap.Int("layers", m.Len()),
		zap.Int("sequence-start", seqStart),
		zap.Int("sequence-end", seqEnd),
	).Info("scene built")
	logger.Debug(m.Description())

	return &Scene{
		Mixer:         m,
		Shuffler:      shuffler,
		External:      external,
		WovenIndex:    wovenIndex,
		GelIndex:      gelIndex,
		SequenceStart: seqStart,
		SequenceEnd:   seqEnd,
	}, nil
}

type namedEffect struct {
	name   string
	effect mixer.Effect
}

func sequenceEffects(cfg Config, fs afero.Fs) ([]namedEffect, error) {
	var fx []namedEffect

	for _, tc := range cfg.Textures {
		tex, err := effect.LoadTexture(fs, tc.Path, cfg.RasterWidth, cfg.RasterHeight)
		if err != nil {
			return nil, err
		}
		tex.SetXPeriodMillis(tc.XPeriodMillis)
		tex.SetYPeriodMillis(tc.YPeriodMillis)
		name := lo.Ternary(tc.XPeriodMillis > 0 || tc.YPeriodMillis > 0, "Roll ", "Texture ")
		fx = append(fx, namedEffect{name + tc.Path, tex})
	}

	fx = append(fx,
		namedEffect{"Pulse amber", effect.NewPulse(pixel.FromHSV(35, 1, 1), wave.HalfSine{Start: 0.1, End: 1, Period: 4000})},
		namedEffect{"Pulse violet", effect.NewPulse(pixel.FromHSV(275, 0.8, 1), wave.Sine{Start: 0, End: 0.8, Period: 7000})},
		namedEffect{"Pulse cyan", effect.NewPulse(pixel.FromHSV(185, 0.7, 1), wave.Triangle{Start: 0.2, End: 0.9, Period: 5000})},
		namedEffect{"Chase", effect.NewChase(pixel.White(), 50)},
	)
	return fx, nil
}
