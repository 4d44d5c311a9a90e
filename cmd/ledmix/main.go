package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"ledmix/internal/config"
	"ledmix/internal/logging"
	"ledmix/pkg/bitmap"
	"ledmix/pkg/device"
	"ledmix/pkg/device/adalight"
	"ledmix/pkg/device/opc"
	"ledmix/pkg/device/virtual"
	"ledmix/pkg/mixer"
	"ledmix/pkg/proto"
	"ledmix/pkg/scene"
	"ledmix/pkg/show"
)

var configPath = flag.StringP("config", "c", "", "config file")
var output = flag.String("output", "", "output kind: mock, opc or adalight")
var addr = flag.String("addr", "", "opc server addr")
var serial = flag.String("serial", "", "serial name")
var fps = flag.Int("fps", 0, "frames per second")
var debug = flag.Bool("debug", false, "set debug")
var listPorts = flag.Bool("list-ports", false, "list serial ports and exit")

func main() {
	flag.Parse()

	if *listPorts {
		ports, err := proto.NewSerial("").Ports()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(strings.Join(ports, "\n"))
		return
	}

	fx.New(
		fx.Provide(
			loadConfig,
			func(cfg *config.Config) (*zap.Logger, error) {
				return logging.New(cfg.Logging)
			},
			func() afero.Fs {
				return afero.NewOsFs()
			},
			newTransport,
			newScene,
			func(s *scene.Scene) *mixer.Mixer {
				return s.Mixer
			},
			func(cfg *config.Config) *show.Params {
				return show.NewParams(cfg.Show.FPS)
			},
			show.NewRunner,
		),
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
		fx.Invoke(
			show.Serve,
		),
	).Run()
}

func loadConfig(fs afero.Fs) (*config.Config, error) {
	cfg, err := config.Load(fs, *configPath)
	if err != nil {
		return nil, err
	}

	if *output != "" {
		cfg.Output.Kind = *output
	}
	if *addr != "" {
		cfg.Output.Addr = *addr
	}
	if *serial != "" {
		cfg.Output.Serial = *serial
	}
	if *fps > 0 {
		cfg.Show.FPS = *fps
	}
	if *debug {
		cfg.Logging.Level = "debug"
		cfg.Logging.Development = true
	}

	return cfg, cfg.Validate()
}

func newTransport(cfg *config.Config, logger *zap.Logger) proto.Transport {
	out := cfg.Output
	enc := bitmap.NewEncoder(bitmap.Order(strings.ToLower(out.Order)), out.Gamma)
	logger = logger.With(zap.String("output", out.Kind))

	switch out.Kind {
	case "opc":
		return opc.New(out.Addr, out.Channel, logger, opc.WithEncoder(enc))
	case "adalight":
		return adalight.New(proto.NewSerial(out.Serial), logger,
			adalight.WithBaudRate(out.Baud),
			adalight.WithFormat(adalight.Format(out.Format)),
			adalight.WithEncoder(enc),
		)
	default:
		return virtual.Mock(logger)
	}
}

func newScene(cfg *config.Config, fs afero.Fs, logger *zap.Logger) (*scene.Scene, error) {
	assets, err := cfg.AssetsFs(fs)
	if err != nil {
		return nil, err
	}

	s, err := scene.Build(device.Grid(cfg.Rig.Width, cfg.Rig.Height), cfg.Scene, assets, logger)
	if err != nil {
		return nil, err
	}
	s.Mixer.SetLevel(cfg.Show.Level)
	return s, nil
}
