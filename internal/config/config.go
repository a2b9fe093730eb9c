// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/bloom/internal/engine/lighting"
	"github.com/Faultbox/bloom/internal/engine/mesh"
	"github.com/Faultbox/bloom/internal/flower"
	"github.com/Faultbox/bloom/internal/noise"
)

// Config holds all bloom settings.
type Config struct {
	Graphics GraphicsConfig         `yaml:"graphics"`
	Flower   flower.ShapeParameters `yaml:"flower"`
	Noise    NoiseConfig            `yaml:"noise"`
	Mesh     MeshConfig             `yaml:"mesh"`
	Preset   PresetConfig           `yaml:"preset"`
	Logging  LoggingConfig          `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`

	Light         lighting.Sun `yaml:"light"`
	ScreenshotDir string       `yaml:"screenshot_dir"`
}

// NoiseConfig selects the noise field driving petal deformation.
type NoiseConfig struct {
	Backend string `yaml:"backend"` // "simplex" or "perlin"
	Seed    int64  `yaml:"seed"`
}

// MeshConfig holds petal mesh settings.
type MeshConfig struct {
	WidthSegments  int  `yaml:"width_segments"`
	HeightSegments int  `yaml:"height_segments"`
	Parallel       bool `yaml:"parallel"` // deform petals concurrently
}

// PresetConfig holds the preset file used for saving and hot reload.
type PresetConfig struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,

			Light:         lighting.DefaultSun(),
			ScreenshotDir: "screenshots",
		},
		Flower: flower.DefaultParameters(),
		Noise: NoiseConfig{
			Backend: noise.BackendSimplex,
			Seed:    noise.DefaultSeed,
		},
		Mesh: MeshConfig{
			WidthSegments:  mesh.DefaultWidthSegments,
			HeightSegments: mesh.DefaultHeightSegments,
		},
		Preset: PresetConfig{
			Path:  "preset.yaml",
			Watch: false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports settings the viewer cannot start with.
func (c *Config) Validate() error {
	var errs []error

	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("invalid window size %dx%d", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Mesh.WidthSegments <= 0 || c.Mesh.HeightSegments <= 0 {
		errs = append(errs, fmt.Errorf("invalid mesh resolution %dx%d", c.Mesh.WidthSegments, c.Mesh.HeightSegments))
	}
	if _, err := noise.New(c.Noise.Backend); err != nil {
		errs = append(errs, err)
	}
	if c.Flower.PetalCount < 1 || c.Flower.PetalCount > flower.MaxPetals {
		errs = append(errs, fmt.Errorf("petal count %d out of range [1, %d]", c.Flower.PetalCount, flower.MaxPetals))
	}

	return errors.Join(errs...)
}
