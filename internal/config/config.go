// Package config handles viewer configuration loading and validation.
package config

import (
	"errors"
	"fmt"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

// Display backends.
const (
	BackendWindow   = "window"
	BackendTerminal = "terminal"
	BackendHeadless = "headless"
)

// Config holds all viewer settings.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	View    ViewConfig    `yaml:"view"`
	Render  RenderConfig  `yaml:"render"`
	Scene   SceneConfig   `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`
}

// DisplayConfig selects where frames go.
type DisplayConfig struct {
	Backend string `yaml:"backend"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Scale   int    `yaml:"scale"` // Window zoom
	FPS     int    `yaml:"fps"`
	Frames  int    `yaml:"frames"` // Headless only
	Output  string `yaml:"output"` // Headless PNG path
}

// ViewConfig holds the frustum parameters. A zero Height follows the
// framebuffer aspect ratio.
type ViewConfig struct {
	Distance float64 `yaml:"distance"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
}

// RenderConfig holds rasterization settings. Colors are "#rrggbb".
type RenderConfig struct {
	Mode       string `yaml:"mode"`
	Color      string `yaml:"color"`
	Background string `yaml:"background"`
	Cull       bool   `yaml:"cull"`
	HUD        bool   `yaml:"hud"`
	Bounds     bool   `yaml:"bounds"`
}

// SceneConfig describes what is drawn. Every model shares the one mesh.
type SceneConfig struct {
	Mesh      string        `yaml:"mesh"`
	Normalize float64       `yaml:"normalize"` // Longest axis after load, 0 keeps the source size
	Models    []ModelConfig `yaml:"models"`
	Camera    CameraConfig  `yaml:"camera"`
}

// ModelConfig places one instance of the mesh. Vectors are [x, y, z];
// rotation and spin are in radians and radians per second.
type ModelConfig struct {
	Position []float64 `yaml:"position,flow"`
	Rotation []float64 `yaml:"rotation,flow,omitempty"`
	Scale    []float64 `yaml:"scale,flow,omitempty"`
	Spin     []float64 `yaml:"spin,flow,omitempty"`
}

// CameraConfig places the eye. Dolly is a distance the camera starts
// behind Position and glides in from over DollySeconds.
type CameraConfig struct {
	Position     []float64 `yaml:"position,flow"`
	Rotation     []float64 `yaml:"rotation,flow,omitempty"`
	Dolly        float64   `yaml:"dolly"`
	DollySeconds float64   `yaml:"dolly_seconds"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the hello-world scene: a blue wireframe cube up and to
// the left, in a 640x480 window.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Backend: BackendWindow,
			Width:   640,
			Height:  480,
			Scale:   1,
			FPS:     60,
			Frames:  1,
			Output:  "frame.png",
		},
		View: ViewConfig{
			Distance: 1,
			Width:    2,
		},
		Render: RenderConfig{
			Mode:       render.ModeWireframe.String(),
			Color:      "#0000ff",
			Background: "#000000",
			Cull:       true,
			HUD:        true,
		},
		Scene: SceneConfig{
			Mesh: "assets/cube.obj",
			Models: []ModelConfig{
				{Position: []float64{-5, 1, 15}},
			},
			Camera: CameraConfig{
				Position:     []float64{0, 0, 0},
				DollySeconds: 1.5,
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks the config for values the viewer cannot run with.
func (c *Config) Validate() error {
	var errs []error

	switch c.Display.Backend {
	case BackendWindow, BackendTerminal, BackendHeadless:
	default:
		errs = append(errs, fmt.Errorf("display.backend: unknown backend %q", c.Display.Backend))
	}
	if c.Display.Backend != BackendTerminal && (c.Display.Width <= 0 || c.Display.Height <= 0) {
		errs = append(errs, fmt.Errorf("display: size %dx%d must be positive", c.Display.Width, c.Display.Height))
	}
	if c.Display.Scale < 1 {
		errs = append(errs, fmt.Errorf("display.scale: %d must be at least 1", c.Display.Scale))
	}
	if c.Display.FPS <= 0 {
		errs = append(errs, fmt.Errorf("display.fps: %d must be positive", c.Display.FPS))
	}

	if c.View.Distance <= 0 || c.View.Width <= 0 || c.View.Height < 0 {
		errs = append(errs, fmt.Errorf("view: distance=%g width=%g height=%g: %w",
			c.View.Distance, c.View.Width, c.View.Height, render.ErrInvalidViewport))
	}

	if _, err := render.ParseMode(c.Render.Mode); err != nil {
		errs = append(errs, fmt.Errorf("render.mode: %w", err))
	}
	if _, err := render.ParseColor(c.Render.Color); err != nil {
		errs = append(errs, fmt.Errorf("render.color: %w", err))
	}
	if _, err := render.ParseColor(c.Render.Background); err != nil {
		errs = append(errs, fmt.Errorf("render.background: %w", err))
	}

	if c.Scene.Mesh == "" {
		errs = append(errs, errors.New("scene.mesh: path is required"))
	}
	if len(c.Scene.Models) == 0 {
		errs = append(errs, errors.New("scene.models: at least one model is required"))
	}
	for i, m := range c.Scene.Models {
		for _, f := range []struct {
			name string
			v    []float64
			req  bool
		}{
			{"position", m.Position, true},
			{"rotation", m.Rotation, false},
			{"scale", m.Scale, false},
			{"spin", m.Spin, false},
		} {
			if err := checkVec(f.v, f.req); err != nil {
				errs = append(errs, fmt.Errorf("scene.models[%d].%s: %w", i, f.name, err))
			}
		}
	}
	if err := checkVec(c.Scene.Camera.Position, false); err != nil {
		errs = append(errs, fmt.Errorf("scene.camera.position: %w", err))
	}
	if err := checkVec(c.Scene.Camera.Rotation, false); err != nil {
		errs = append(errs, fmt.Errorf("scene.camera.rotation: %w", err))
	}

	return errors.Join(errs...)
}

func checkVec(v []float64, required bool) error {
	if len(v) == 0 && !required {
		return nil
	}
	if len(v) != 3 {
		return fmt.Errorf("want 3 components, got %d", len(v))
	}
	return nil
}

// Vec3 converts a config vector, returning def when it is unset.
func Vec3(v []float64, def math3d.Vec3) math3d.Vec3 {
	if len(v) != 3 {
		return def
	}
	return math3d.V3(v[0], v[1], v[2])
}
