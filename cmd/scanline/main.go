// scanline - software 3D renderer demo
// Draws a mesh with the scanline pipeline into a window, the terminal or a
// PNG file.
//
// Controls:
//
//	W/S    - Pitch impulse
//	A/D    - Yaw impulse
//	Q/E    - Roll impulse
//	Space  - Random impulse
//	R      - Reset rotation
//	M      - Cycle render mode (wireframe, filled, shaded)
//	B      - Toggle bounding boxes
//	H      - Toggle HUD overlay
//	Esc    - Quit
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/taigrr/scanline/internal/config"
)

var version = "dev"

func main() {
	if err := fang.Execute(context.Background(), newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

// options holds flag values. Only flags the user set override the config.
type options struct {
	configPath string
	saveConfig string

	backend  string
	width    int
	height   int
	scale    int
	fps      int
	frames   int
	output   string
	mode     string
	color    string
	bg       string
	hud      bool
	bounds   bool
	cull     bool
	logLevel string
	logFile  string
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "scanline [mesh.obj|mesh.glb]",
		Short: "Software scanline renderer",
		Long: "scanline transforms, clips and rasterizes triangle meshes on the CPU.\n" +
			"Settings come from defaults, then the config file, then flags.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			applyFlags(cmd, cfg, &opts, args)

			if opts.saveConfig != "" {
				if err := cfg.SaveTo(opts.saveConfig); err != nil {
					return fmt.Errorf("save config: %w", err)
				}
				cmd.Printf("wrote %s\n", opts.saveConfig)
				return nil
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "config file (default ./"+config.DefaultFile+" if present)")
	f.StringVar(&opts.saveConfig, "save-config", "", "write the effective config to this path and exit")
	f.StringVarP(&opts.backend, "backend", "b", config.BackendWindow, "display backend: window, terminal or headless")
	f.IntVar(&opts.width, "width", 640, "framebuffer width")
	f.IntVar(&opts.height, "height", 480, "framebuffer height")
	f.IntVar(&opts.scale, "scale", 1, "window zoom factor")
	f.IntVar(&opts.fps, "fps", 60, "target frames per second")
	f.IntVarP(&opts.frames, "frames", "n", 1, "frames to render (headless)")
	f.StringVarP(&opts.output, "output", "o", "frame.png", "PNG path for the last frame (headless)")
	f.StringVarP(&opts.mode, "mode", "m", "wireframe", "render mode: wireframe, filled or shaded")
	f.StringVar(&opts.color, "color", "#0000ff", "line and fill color")
	f.StringVar(&opts.bg, "bg", "#000000", "background color")
	f.BoolVar(&opts.hud, "hud", true, "draw the HUD overlay")
	f.BoolVar(&opts.bounds, "bounds", false, "draw model bounding boxes")
	f.BoolVar(&opts.cull, "cull", true, "skip models whose bounds are outside the view")
	f.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	f.StringVar(&opts.logFile, "log-file", "", "also write logs to this file")

	return cmd
}

// applyFlags copies explicitly set flags and the mesh argument over cfg.
func applyFlags(cmd *cobra.Command, cfg *config.Config, opts *options, args []string) {
	set := cmd.Flags().Changed

	if len(args) > 0 {
		cfg.Scene.Mesh = args[0]
	}
	if set("backend") {
		cfg.Display.Backend = opts.backend
	}
	if set("width") {
		cfg.Display.Width = opts.width
	}
	if set("height") {
		cfg.Display.Height = opts.height
	}
	if set("scale") {
		cfg.Display.Scale = opts.scale
	}
	if set("fps") {
		cfg.Display.FPS = opts.fps
	}
	if set("frames") {
		cfg.Display.Frames = opts.frames
	}
	if set("output") {
		cfg.Display.Output = opts.output
	}
	if set("mode") {
		cfg.Render.Mode = opts.mode
	}
	if set("color") {
		cfg.Render.Color = opts.color
	}
	if set("bg") {
		cfg.Render.Background = opts.bg
	}
	if set("hud") {
		cfg.Render.HUD = opts.hud
	}
	if set("bounds") {
		cfg.Render.Bounds = opts.bounds
	}
	if set("cull") {
		cfg.Render.Cull = opts.cull
	}
	if set("log-level") {
		cfg.Logging.Level = opts.logLevel
	}
	if set("log-file") {
		cfg.Logging.File = opts.logFile
	}
}
