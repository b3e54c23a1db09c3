package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Display.Backend != BackendWindow {
		t.Errorf("expected window backend, got %s", cfg.Display.Backend)
	}
	if cfg.Display.Width != 640 || cfg.Display.Height != 480 {
		t.Errorf("expected 640x480, got %dx%d", cfg.Display.Width, cfg.Display.Height)
	}
	if cfg.View.Distance != 1 || cfg.View.Width != 2 {
		t.Errorf("expected view 1/2, got %g/%g", cfg.View.Distance, cfg.View.Width)
	}
	if cfg.Render.Mode != "wireframe" {
		t.Errorf("expected wireframe, got %s", cfg.Render.Mode)
	}
	if len(cfg.Scene.Models) != 1 {
		t.Fatalf("expected one model, got %d", len(cfg.Scene.Models))
	}
	if got := Vec3(cfg.Scene.Models[0].Position, math3d.Vec3{}); got != math3d.V3(-5, 1, 15) {
		t.Errorf("expected cube at (-5,1,15), got %v", got)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scanline.yaml")
	content := `
display:
  backend: headless
  frames: 10
render:
  mode: shaded
scene:
  models:
    - position: [0, 0, 5]
      spin: [0, 1, 0]
    - position: [2, 0, 8]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Display.Backend != BackendHeadless || cfg.Display.Frames != 10 {
		t.Errorf("display = %+v", cfg.Display)
	}
	// Untouched keys keep their defaults
	if cfg.Display.Width != 640 || cfg.Render.Color != "#0000ff" {
		t.Errorf("defaults lost: width=%d color=%s", cfg.Display.Width, cfg.Render.Color)
	}
	if cfg.Render.Mode != "shaded" {
		t.Errorf("mode = %s", cfg.Render.Mode)
	}
	if len(cfg.Scene.Models) != 2 {
		t.Fatalf("models = %d, want 2", len(cfg.Scene.Models))
	}
	if got := Vec3(cfg.Scene.Models[0].Spin, math3d.Vec3{}); got != math3d.V3(0, 1, 0) {
		t.Errorf("spin = %v", got)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for explicit missing file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("display: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "scanline.yaml")

	cfg := Default()
	cfg.Display.Backend = BackendTerminal
	cfg.Scene.Models = append(cfg.Scene.Models, ModelConfig{
		Position: []float64{1, 2, 3},
		Scale:    []float64{2, 2, 2},
	})

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.Display.Backend != BackendTerminal {
		t.Errorf("backend = %s", loaded.Display.Backend)
	}
	if len(loaded.Scene.Models) != 2 {
		t.Fatalf("models = %d", len(loaded.Scene.Models))
	}
	if got := Vec3(loaded.Scene.Models[1].Scale, math3d.V3(1, 1, 1)); got != math3d.V3(2, 2, 2) {
		t.Errorf("scale = %v", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown backend", func(c *Config) { c.Display.Backend = "vga" }},
		{"zero width", func(c *Config) { c.Display.Width = 0 }},
		{"zero scale", func(c *Config) { c.Display.Scale = 0 }},
		{"zero fps", func(c *Config) { c.Display.FPS = 0 }},
		{"bad mode", func(c *Config) { c.Render.Mode = "raytraced" }},
		{"bad color", func(c *Config) { c.Render.Color = "blue" }},
		{"bad background", func(c *Config) { c.Render.Background = "#12" }},
		{"no mesh", func(c *Config) { c.Scene.Mesh = "" }},
		{"no models", func(c *Config) { c.Scene.Models = nil }},
		{"short position", func(c *Config) { c.Scene.Models[0].Position = []float64{1, 2} }},
		{"long spin", func(c *Config) { c.Scene.Models[0].Spin = []float64{1, 2, 3, 4} }},
		{"camera rotation", func(c *Config) { c.Scene.Camera.Rotation = []float64{1} }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidateViewport(t *testing.T) {
	cfg := Default()
	cfg.View.Distance = 0
	if err := cfg.Validate(); !errors.Is(err, render.ErrInvalidViewport) {
		t.Errorf("err = %v, want ErrInvalidViewport", err)
	}
}

func TestValidateTerminalIgnoresSize(t *testing.T) {
	cfg := Default()
	cfg.Display.Backend = BackendTerminal
	cfg.Display.Width, cfg.Display.Height = 0, 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("terminal sizes itself: %v", err)
	}
}

func TestVec3Default(t *testing.T) {
	def := math3d.V3(1, 1, 1)
	if got := Vec3(nil, def); got != def {
		t.Errorf("Vec3(nil) = %v", got)
	}
}
