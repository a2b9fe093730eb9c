package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	gomath "math"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/bloom/internal/config"
	"github.com/Faultbox/bloom/internal/engine/mesh"
	"github.com/Faultbox/bloom/internal/flower"
	"github.com/Faultbox/bloom/internal/logger"
	"github.com/Faultbox/bloom/internal/noise"
	"github.com/Faultbox/bloom/internal/params"
)

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func cmdSimulate(ctx context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("simulate", out)
	var s session
	s.register(fs, 300)
	every := fs.Int("every", 60, "Log stats every N frames (0 = never)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctl, p, err := s.build()
	if err != nil {
		return err
	}
	log := logger.Named("simulate")

	var total, worst time.Duration
	var frame flower.Frame
	for i := 0; i < s.frames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		frame = ctl.Tick(float32(s.dt), p)
		spent := time.Since(start)
		total += spent
		worst = max(worst, spent)

		if *every > 0 && i%*every == 0 {
			size := frame.Bounds().Size()
			log.Info("frame",
				zap.Int("index", i),
				zap.Int("petals", len(frame.Petals)),
				zap.Float64("phase", ctl.Phase(0)),
				zap.Float32s("size", size[:]),
				zap.Duration("took", spent),
			)
		}
	}

	fmt.Fprintf(out, "Frames:    %d (dt %.4fs)\n", s.frames, s.dt)
	fmt.Fprintf(out, "Petals:    %d x %d vertices\n", ctl.PetalCount(), ctl.VerticesPerPetal())
	fmt.Fprintf(out, "Layouts:   %d\n", ctl.LayoutGeneration())
	if s.frames > 0 {
		size := frame.Bounds().Size()
		fmt.Fprintf(out, "Phase:     %.4f\n", ctl.Phase(0))
		fmt.Fprintf(out, "Bounds:    %.3f x %.3f x %.3f\n", size[0], size[1], size[2])
		fmt.Fprintf(out, "Tick time: avg %v, max %v\n", total/time.Duration(s.frames), worst)
	}
	return nil
}

func cmdExport(ctx context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("export", out)
	var s session
	s.register(fs, 0)
	output := fs.String("o", "flower.obj", "Output OBJ path (- for stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctl, p, err := s.build()
	if err != nil {
		return err
	}

	// Tick once more than requested so frames=0 exports the initial shape.
	var frame flower.Frame
	for i := 0; i <= s.frames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		dt := float32(s.dt)
		if i == 0 {
			dt = 0
		}
		frame = ctl.Tick(dt, p)
	}

	objects := make([]mesh.Object, len(frame.Petals))
	for i, pf := range frame.Petals {
		objects[i] = mesh.Object{
			Name:      fmt.Sprintf("petal_%02d", pf.Index),
			Mesh:      pf.Mesh,
			Transform: pf.Placement.ModelMatrix(),
		}
	}

	if *output == "-" {
		return mesh.WriteOBJ(out, objects)
	}
	if err := mesh.SaveOBJ(*output, objects); err != nil {
		return fmt.Errorf("writing %s: %w", *output, err)
	}

	logger.Info("flower exported", zap.String("path", *output), zap.Int("petals", len(objects)))
	fmt.Fprintf(out, "Wrote %d petals (%d vertices each) to %s\n", len(objects), ctl.VerticesPerPetal(), *output)
	return nil
}

func cmdNoise(args []string, out io.Writer) error {
	fs := newFlagSet("noise", out)
	backend := fs.String("backend", noise.BackendSimplex, "Noise backend (simplex, perlin)")
	seed := fs.Int64("seed", noise.DefaultSeed, "Noise seed")
	size := fs.Int("size", 8, "Grid size")
	scale := fs.Float64("scale", 0.25, "Distance between samples")
	z := fs.Float64("z", 0, "Third coordinate (time)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *size < 1 {
		return fmt.Errorf("%w: -size must be positive", errUsage)
	}

	field, err := noise.NewSeeded(*backend, *seed)
	if err != nil {
		return err
	}

	step := *scale
	lo, hi, sum := gomath.Inf(1), gomath.Inf(-1), 0.0
	for row := 0; row < *size; row++ {
		for col := 0; col < *size; col++ {
			v := field.Sample(float64(col)*step, float64(row)*step, *z)
			lo, hi, sum = gomath.Min(lo, v), gomath.Max(hi, v), sum+v
			fmt.Fprintf(out, "%7.3f", v)
		}
		fmt.Fprintln(out)
	}

	n := float64(*size * *size)
	fmt.Fprintf(out, "\n%s seed=%d: min %.3f max %.3f mean %.3f\n", *backend, *seed, lo, hi, sum/n)
	return nil
}

func cmdPreset(args []string, out io.Writer) error {
	fs := newFlagSet("preset", out)
	configPath := fs.String("config", "", "Take shape parameters from this config file")
	output := fs.String("o", "preset.yaml", "Output path (- for stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p := flower.DefaultParameters()
	if *configPath != "" {
		cfg, err := config.LoadFrom(*configPath)
		if err != nil {
			return err
		}
		p = cfg.Flower
	}

	if *output == "-" {
		data, err := yaml.Marshal(p)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	if err := params.SavePreset(*output, p); err != nil {
		return fmt.Errorf("writing %s: %w", *output, err)
	}
	fmt.Fprintf(out, "Wrote preset to %s\n", *output)
	return nil
}
