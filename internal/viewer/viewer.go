// Package viewer implements the interactive flower viewer: window, frame
// loop, keyboard editing and preset hot reload.
package viewer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/bloom/internal/config"
	"github.com/Faultbox/bloom/internal/engine/camera"
	"github.com/Faultbox/bloom/internal/engine/debug"
	"github.com/Faultbox/bloom/internal/engine/input"
	"github.com/Faultbox/bloom/internal/engine/renderer"
	"github.com/Faultbox/bloom/internal/engine/window"
	"github.com/Faultbox/bloom/internal/flower"
	"github.com/Faultbox/bloom/internal/logger"
	"github.com/Faultbox/bloom/internal/noise"
	"github.com/Faultbox/bloom/internal/params"
)

// Viewer is the main viewer instance.
type Viewer struct {
	cfg     *config.Config
	running bool

	window     *window.Window
	renderer   *renderer.Renderer
	input      *input.Input
	camera     *camera.OrbitCamera
	clock      *window.Clock
	controller *flower.Controller
	store      *params.Store
	shots      *debug.Screenshots

	showBounds     bool
	wantScreenshot bool

	log *zap.Logger
}

// New creates a viewer: window, GL renderer, controller and parameter store.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg: cfg,
		log: logger.Named("viewer"),
	}

	field, err := noise.NewSeeded(cfg.Noise.Backend, cfg.Noise.Seed)
	if err != nil {
		return nil, err
	}

	v.controller = flower.NewController(field,
		flower.WithMeshResolution(cfg.Mesh.WidthSegments, cfg.Mesh.HeightSegments),
		flower.WithParallel(cfg.Mesh.Parallel),
		flower.WithLogger(logger.Named("flower")),
	)
	v.store = params.NewStore(v.initialParameters())

	v.log.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("noise", cfg.Noise.Backend),
		zap.Int("vertices_per_petal", v.controller.VerticesPerPetal()),
	)

	// Create window (this also creates OpenGL context)
	v.window, err = window.New(window.Config{
		Title:      "bloom",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	dw, dh := v.window.GetDrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:            dw,
		Height:           dh,
		VerticesPerPetal: v.controller.VerticesPerPetal(),
		Indices:          v.controller.Indices(),
		Sun:              cfg.Graphics.Light,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.input = input.New()
	v.camera = camera.NewOrbitCamera()
	v.shots = debug.NewScreenshots(cfg.Graphics.ScreenshotDir, "bloom")

	v.log.Info("viewer initialized successfully")
	return v, nil
}

// initialParameters starts from the config and lets an existing preset file
// override it.
func (v *Viewer) initialParameters() flower.ShapeParameters {
	p := v.cfg.Flower
	if v.cfg.Preset.Path == "" {
		return p
	}

	loaded, err := params.LoadPreset(v.cfg.Preset.Path)
	if err != nil {
		v.log.Debug("no preset loaded", zap.String("path", v.cfg.Preset.Path), zap.Error(err))
		return p
	}
	v.log.Info("preset loaded", zap.String("path", v.cfg.Preset.Path))
	return loaded
}

// Run starts the main loop and blocks until the window is closed or ctx is
// cancelled.
func (v *Viewer) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if v.cfg.Preset.Watch && v.cfg.Preset.Path != "" {
		w, err := params.NewWatcher(v.cfg.Preset.Path, v.store, logger.Named("preset"))
		if err != nil {
			v.log.Warn("preset watch disabled", zap.Error(err))
		} else {
			go func() {
				if err := w.Run(ctx); err != nil {
					v.log.Warn("preset watcher stopped", zap.Error(err))
				}
			}()
		}
	}

	v.running = true
	v.clock = window.NewClock()

	frameCount := 0
	fps := 0
	fpsTimer := time.Now()
	lastVersion := ^uint64(0)
	framed := false

	v.log.Info("starting frame loop")

	for v.running {
		if ctx.Err() != nil {
			break
		}

		dt := v.clock.Tick()

		// 1. Process input
		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		// 2. Advance and draw the flower from one parameter snapshot
		ver := v.store.Version()
		p := v.store.Snapshot()
		v.renderer.SetCamera(v.camera.ViewMatrix(), v.camera.ProjectionMatrix(v.renderer.Aspect()), v.camera.Position())
		v.renderer.Begin()
		frame := v.controller.Tick(dt, p)
		if err := v.renderer.Consume(frame); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		if v.showBounds && len(frame.Petals) > 0 {
			b := frame.Bounds()
			v.renderer.DrawBounds(b.Min, b.Max)
		}
		v.renderer.End()

		if v.wantScreenshot {
			v.wantScreenshot = false
			v.screenshot()
		}

		if !framed && len(frame.Petals) > 0 {
			b := frame.Bounds()
			v.camera.FitToBounds(b.Min, b.Max)
			framed = true
		}

		// 3. Present (swap buffers)
		v.window.SwapBuffers()

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			fps = frameCount
			v.log.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
			lastVersion = ^uint64(0) // refresh fps in the title
		}

		if ver != lastVersion {
			v.window.SetTitle(Title(frame.Params, fps))
			lastVersion = ver
		}

		if limit := v.cfg.Graphics.FPSLimit; limit > 0 {
			budget := float32(1) / float32(limit)
			if spent := v.clock.Peek(); spent < budget {
				window.Delay(uint32((budget - spent) * 1000))
			}
		}
	}

	return nil
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			dw, dh := v.window.GetDrawableSize()
			v.renderer.Resize(dw, dh)
		case input.EventKeyDown:
			v.handleKey(event)
		}
	}

	if dx, dy := v.input.DragDelta(); dx != 0 || dy != 0 {
		v.camera.HandleDrag(dx, dy)
	}
	if w := v.input.WheelDelta(); w != 0 {
		v.camera.HandleZoom(w)
	}
}

func (v *Viewer) handleKey(event input.Event) {
	action, edit := keyAction(event.Key)

	switch action {
	case ActionQuit:
		v.running = false
	case ActionReset:
		v.store.Set(v.cfg.Flower)
		v.controller.Reset()
		v.log.Info("parameters reset")
	case ActionSavePreset:
		v.savePreset()
	case ActionToggleBounds:
		v.showBounds = !v.showBounds
	case ActionScreenshot:
		// Captured after the next frame is drawn, before the swap.
		v.wantScreenshot = true
	case ActionEdit:
		p := v.store.Update(edit)
		if !event.Repeat {
			v.log.Debug("parameters edited", zap.Any("params", p))
		}
	}
}

func (v *Viewer) savePreset() {
	path := v.cfg.Preset.Path
	if path == "" {
		path = "preset.yaml"
	}
	if err := params.SavePreset(path, v.store.Snapshot()); err != nil {
		v.log.Error("failed to save preset", zap.String("path", path), zap.Error(err))
		return
	}
	v.log.Info("preset saved", zap.String("path", path))
}

func (v *Viewer) screenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.shots.SavePixels(pixels, w, h)
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
