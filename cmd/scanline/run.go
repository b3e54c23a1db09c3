package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/taigrr/scanline/internal/config"
	"github.com/taigrr/scanline/internal/logger"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/platform"
	"github.com/taigrr/scanline/pkg/platform/window"
	"github.com/taigrr/scanline/pkg/render"
)

func run(ctx context.Context, cfg *config.Config) error {
	// The terminal backend owns the screen, so logs go to the file only
	console := cfg.Display.Backend != config.BackendTerminal
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File, console); err != nil {
		return err
	}
	defer logger.Sync()
	log := logger.Named("scanline")

	mesh, err := models.Load(cfg.Scene.Mesh, logger.Named("models"))
	if err != nil {
		return fmt.Errorf("load mesh: %w", err)
	}
	if cfg.Scene.Normalize > 0 {
		mesh = mesh.Normalized(cfg.Scene.Normalize)
	}
	log.Info("mesh loaded",
		zap.String("path", cfg.Scene.Mesh),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("faces", mesh.TriangleCount()),
	)

	host, err := newHost(cfg)
	if err != nil {
		return err
	}
	if err := host.Open(); err != nil {
		return fmt.Errorf("open %s host: %w", cfg.Display.Backend, err)
	}
	defer func() {
		if err := host.Close(); err != nil {
			log.Warn("close host", zap.Error(err))
		}
	}()

	v, err := newViewer(cfg, host, mesh)
	if err != nil {
		return err
	}
	loop := platform.NewLoop(v.Frame)
	loop.StopOnExit(host.Events())
	v.bind(host.Events())

	if err := host.Run(ctx, loop); err != nil {
		return err
	}
	log.Info("stopped", zap.Int("frames", loop.Frames()))
	return nil
}

func newHost(cfg *config.Config) (platform.Host, error) {
	switch cfg.Display.Backend {
	case config.BackendTerminal:
		return platform.NewTerminal(cfg.Display.FPS, logger.Named("terminal")), nil
	}

	fb, err := render.NewFramebuffer(cfg.Display.Width, cfg.Display.Height)
	if err != nil {
		return nil, err
	}
	if cfg.Display.Backend == config.BackendHeadless {
		h := platform.NewHeadless(fb, cfg.Display.Frames, cfg.Display.Output, logger.Named("headless"))
		h.Step = time.Second / time.Duration(cfg.Display.FPS)
		return h, nil
	}
	return window.New("scanline", fb, cfg.Display.Scale, cfg.Display.FPS, logger.Named("window")), nil
}

// viewer holds per-frame state: the scene, the renderer bound to the
// current framebuffer and the overlay.
type viewer struct {
	cfg    *config.Config
	host   platform.Host
	scene  *Scene
	r      *render.Renderer
	hud    *HUD
	bg     render.Color
	fg     render.Color
	bounds bool
	showUI bool
}

func newViewer(cfg *config.Config, host platform.Host, mesh *models.Mesh) (*viewer, error) {
	fg, err := render.ParseColor(cfg.Render.Color)
	if err != nil {
		return nil, err
	}
	bg, err := render.ParseColor(cfg.Render.Background)
	if err != nil {
		return nil, err
	}

	v := &viewer{
		cfg:    cfg,
		host:   host,
		scene:  NewScene(cfg, mesh),
		hud:    NewHUD(filepath.Base(cfg.Scene.Mesh), mesh.TriangleCount()),
		bg:     bg,
		fg:     fg,
		bounds: cfg.Render.Bounds,
		showUI: cfg.Render.HUD,
	}
	if err := v.reset(); err != nil {
		return nil, err
	}
	return v, nil
}

// reset builds a renderer for the host's current framebuffer, carrying
// over the mode.
func (v *viewer) reset() error {
	mode, err := render.ParseMode(v.cfg.Render.Mode)
	if err != nil {
		return err
	}
	if v.r != nil {
		mode = v.r.Mode
	}

	r := render.NewRenderer(v.host.Framebuffer(), logger.Named("render"))
	r.ViewDistance = v.cfg.View.Distance
	r.ViewWidth = v.cfg.View.Width
	if v.cfg.View.Height > 0 {
		r.ViewHeight = v.cfg.View.Height
	}
	r.Mode = mode
	r.Color = v.fg
	r.Cull = v.cfg.Render.Cull
	if err := r.Validate(); err != nil {
		return err
	}
	v.r = r
	return nil
}

func (v *viewer) bind(d *platform.Dispatcher) {
	d.Bind(platform.EventResize, func(platform.Event) {
		if err := v.reset(); err != nil {
			logger.Warn("resize", zap.Error(err))
		}
	})
	d.Bind(platform.EventKey, func(ev platform.Event) {
		v.key(strings.ToLower(ev.Key))
	})
}

func (v *viewer) key(k string) {
	const push = 1.5
	switch k {
	case "w":
		v.scene.Impulse(-push, 0, 0)
	case "s":
		v.scene.Impulse(push, 0, 0)
	case "a":
		v.scene.Impulse(0, -push, 0)
	case "d":
		v.scene.Impulse(0, push, 0)
	case "q":
		v.scene.Impulse(0, 0, -push)
	case "e":
		v.scene.Impulse(0, 0, push)
	case "space":
		v.scene.RandomImpulse()
	case "r":
		v.scene.Reset()
	case "m":
		v.r.Mode = (v.r.Mode + 1) % (render.ModeShaded + 1)
	case "b":
		v.bounds = !v.bounds
	case "h":
		v.showUI = !v.showUI
	}
}

// Frame draws one frame: clear, every model, then overlays.
func (v *viewer) Frame(dt time.Duration) error {
	v.scene.Update(dt.Seconds())

	v.r.BeginFrame(v.bg)
	if err := v.r.RenderScene(v.scene.Models, v.scene.Camera); err != nil {
		return err
	}
	if v.bounds {
		for _, m := range v.scene.Models {
			if err := v.r.DrawBounds(m, v.scene.Camera, render.ColorYellow); err != nil {
				return err
			}
		}
	}
	v.r.LogStats()

	v.hud.UpdateFPS(time.Now())
	if v.showUI {
		v.hud.Draw(v.r, render.ColorWhite)
	}
	return nil
}
