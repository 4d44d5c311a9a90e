// Package config loads the rig description from YAML.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"ledmix/pkg/scene"
)

const envPrefix = "LEDMIX_"

var outputKinds = []string{"mock", "opc", "adalight"}

type Config struct {
	Rig     RigConfig     `yaml:"rig"`
	Output  OutputConfig  `yaml:"output"`
	Show    ShowConfig    `yaml:"show"`
	Scene   scene.Config  `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`
	// Assets is the directory texture paths are resolved against.
	Assets string `yaml:"assets"`
}

// RigConfig lays devices out on a row-major grid.
type RigConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type OutputConfig struct {
	Kind    string  `yaml:"kind"`
	Addr    string  `yaml:"addr"`
	Channel uint8   `yaml:"channel"`
	Serial  string  `yaml:"serial"`
	Baud    int     `yaml:"baud"`
	Format  string  `yaml:"format"`
	Order   string  `yaml:"order"`
	Gamma   float64 `yaml:"gamma"`
}

type ShowConfig struct {
	FPS   int     `yaml:"fps"`
	Level float64 `yaml:"level"`
}

type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Load reads path from fs on top of the defaults. An empty path yields the
// defaults with env overrides applied.
func Load(fs afero.Fs, path string) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, errors.Wrap(err, "reading config file")
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(err, "parsing config file")
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating config")
	}
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Rig: RigConfig{Width: 8, Height: 8},
		Output: OutputConfig{
			Kind:   "mock",
			Addr:   "localhost:7890",
			Serial: "ttyACM0",
			Baud:   115200,
			Format: "rgb888",
			Order:  "rgb",
			Gamma:  1,
		},
		Show:    ShowConfig{FPS: 30, Level: 1},
		Scene:   scene.DefaultConfig(),
		Logging: LoggingConfig{Level: "info"},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := env("OUTPUT"); v != "" {
		cfg.Output.Kind = v
	}
	if v := env("OUTPUT_ADDR"); v != "" {
		cfg.Output.Addr = v
	}
	if v := env("SERIAL"); v != "" {
		cfg.Output.Serial = v
	}
	if v := env("FPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Show.FPS = n
		}
	}
	if v := env("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := env("ASSETS"); v != "" {
		cfg.Assets = v
	}
}

func env(name string) string {
	return strings.TrimSpace(os.Getenv(envPrefix + name))
}

func (c *Config) Validate() error {
	var errs []string

	if c.Rig.Width <= 0 || c.Rig.Height <= 0 {
		errs = append(errs, "rig.width and rig.height must be positive")
	}
	if !lo.Contains(outputKinds, c.Output.Kind) {
		errs = append(errs, "output.kind must be one of "+strings.Join(outputKinds, ", "))
	}
	if c.Output.Kind == "opc" && c.Output.Addr == "" {
		errs = append(errs, "output.addr is required for opc")
	}
	if c.Output.Kind == "adalight" {
		if c.Output.Serial == "" {
			errs = append(errs, "output.serial is required for adalight")
		}
		if c.Output.Baud <= 0 {
			errs = append(errs, "output.baud must be positive")
		}
		if !lo.Contains([]string{"rgb888", "rgb565"}, c.Output.Format) {
			errs = append(errs, "output.format must be rgb888 or rgb565")
		}
	}
	if !lo.Contains([]string{"rgb", "grb", "bgr"}, strings.ToLower(c.Output.Order)) {
		errs = append(errs, "output.order must be rgb, grb or bgr")
	}
	if c.Output.Gamma <= 0 {
		errs = append(errs, "output.gamma must be positive")
	}
	if c.Show.FPS <= 0 || c.Show.FPS > 1000 {
		errs = append(errs, "show.fps must be in 1..1000")
	}
	if c.Show.Level < 0 || c.Show.Level > 1 {
		errs = append(errs, "show.level must be in [0, 1]")
	}
	if err := c.Scene.Validate(); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return errors.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Devices is the number of addressable lights on the rig.
func (c *Config) Devices() int {
	return c.Rig.Width * c.Rig.Height
}
