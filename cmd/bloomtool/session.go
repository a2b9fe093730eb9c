package main

import (
	"flag"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/bloom/internal/config"
	"github.com/Faultbox/bloom/internal/flower"
	"github.com/Faultbox/bloom/internal/logger"
	"github.com/Faultbox/bloom/internal/noise"
	"github.com/Faultbox/bloom/internal/params"
)

// session holds the options shared by the simulating commands.
type session struct {
	configPath string
	presetPath string
	petals     int
	backend    string
	parallel   bool
	debug      bool
	frames     int
	dt         float64
}

func (s *session) register(fs *flag.FlagSet, frames int) {
	fs.StringVar(&s.configPath, "config", "", "Config file")
	fs.StringVar(&s.presetPath, "preset", "", "Preset file with shape parameters")
	fs.IntVar(&s.petals, "petals", 0, "Override petal count")
	fs.StringVar(&s.backend, "noise", "", "Override noise backend (simplex, perlin)")
	fs.BoolVar(&s.parallel, "parallel", false, "Deform petals concurrently")
	fs.BoolVar(&s.debug, "debug", false, "Enable debug logging")
	fs.IntVar(&s.frames, "frames", frames, "Number of ticks to run")
	fs.Float64Var(&s.dt, "dt", 1.0/60, "Seconds per tick")
}

// build loads config, initializes logging and returns a controller with the
// parameters to drive it.
func (s *session) build() (*flower.Controller, flower.ShapeParameters, error) {
	if s.frames < 0 {
		return nil, flower.ShapeParameters{}, fmt.Errorf("%w: -frames must not be negative", errUsage)
	}

	cfg, err := config.LoadFrom(s.configPath)
	if err != nil {
		return nil, flower.ShapeParameters{}, err
	}
	if s.debug {
		cfg.Logging.Level = "debug"
	}
	if s.backend != "" {
		cfg.Noise.Backend = s.backend
	}
	if s.parallel {
		cfg.Mesh.Parallel = true
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, flower.ShapeParameters{}, fmt.Errorf("initializing logger: %w", err)
	}

	p := cfg.Flower
	if s.presetPath != "" {
		p, err = params.LoadPreset(s.presetPath)
		if err != nil {
			return nil, flower.ShapeParameters{}, fmt.Errorf("loading preset %s: %w", s.presetPath, err)
		}
	}
	if s.petals > 0 {
		p.PetalCount = s.petals
	}

	field, err := noise.NewSeeded(cfg.Noise.Backend, cfg.Noise.Seed)
	if err != nil {
		return nil, flower.ShapeParameters{}, err
	}

	ctl := flower.NewController(field,
		flower.WithMeshResolution(cfg.Mesh.WidthSegments, cfg.Mesh.HeightSegments),
		flower.WithParallel(cfg.Mesh.Parallel),
		flower.WithLogger(logger.Named("flower")),
	)

	logger.Debug("session ready",
		zap.String("noise", cfg.Noise.Backend),
		zap.Bool("parallel", cfg.Mesh.Parallel),
		zap.Int("vertices_per_petal", ctl.VerticesPerPetal()),
		zap.Any("params", p),
	)
	return ctl, p, nil
}
