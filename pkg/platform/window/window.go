// Package window presents a framebuffer in a desktop window using ebiten.
package window

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/taigrr/scanline/pkg/platform"
	"github.com/taigrr/scanline/pkg/render"
)

// Window blits the framebuffer to an ebiten window each tick. Closing the
// window or pressing Escape requests exit.
type Window struct {
	Title string
	Scale int
	TPS   int

	fb     *render.Framebuffer
	events *platform.Dispatcher
	logger *zap.Logger

	loop   *platform.Loop
	rgba   []byte
	last   time.Time
	err    error
	open   bool
	closed bool
}

var _ platform.Host = (*Window)(nil)

// New creates a window host for fb. scale multiplies the window size.
func New(title string, fb *render.Framebuffer, scale, tps int, logger *zap.Logger) *Window {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Window{
		Title:  title,
		Scale:  max(scale, 1),
		TPS:    max(tps, 1),
		fb:     fb,
		events: platform.NewDispatcher(),
		logger: logger,
	}
}

// Open configures the window. The window itself appears when Run starts.
func (w *Window) Open() error {
	if w.open {
		return nil
	}
	if !hasDisplay() {
		return platform.ErrNoDisplay
	}

	ebiten.SetWindowTitle(w.Title)
	ebiten.SetWindowSize(w.fb.Width*w.Scale, w.fb.Height*w.Scale)
	ebiten.SetTPS(w.TPS)
	ebiten.SetWindowClosingHandled(true)
	w.open = true
	w.logger.Info("window host opened",
		zap.String("title", w.Title),
		zap.Int("width", w.fb.Width),
		zap.Int("height", w.fb.Height),
		zap.Int("scale", w.Scale),
	)
	return nil
}

func hasDisplay() bool {
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd", "netbsd":
		return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
	}
	return true
}

// Run blocks on the ebiten game loop until loop stops, ctx is done or a
// frame fails. It must be called from the main goroutine.
func (w *Window) Run(ctx context.Context, loop *platform.Loop) error {
	if !w.open || w.closed {
		return platform.ErrNotOpen
	}
	w.loop = loop
	w.last = time.Now()

	stop := context.AfterFunc(ctx, loop.Stop)
	defer stop()

	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return w.err
}

// Update implements ebiten.Game. It translates input to events, then runs
// one frame.
func (w *Window) Update() error {
	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		w.events.Dispatch(platform.Event{Kind: platform.EventExitRequested})
	}
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		if k == ebiten.KeyEscape {
			continue
		}
		w.events.Dispatch(platform.Event{Kind: platform.EventKey, Key: k.String()})
	}

	now := time.Now()
	ran, err := w.loop.Step(now.Sub(w.last))
	w.last = now
	if err != nil {
		w.err = err
		return ebiten.Termination
	}
	if !ran {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (w *Window) Draw(screen *ebiten.Image) {
	w.rgba = w.fb.RGBA(w.rgba)
	screen.WritePixels(w.rgba)
}

// Layout implements ebiten.Game. The logical screen is always the
// framebuffer size and ebiten scales it to the window.
func (w *Window) Layout(_, _ int) (int, int) {
	return w.fb.Width, w.fb.Height
}

// Close releases the host. Calling it more than once is a no-op.
func (w *Window) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	w.open = false
	w.logger.Info("window host closed")
	return nil
}

// Events returns the host dispatcher.
func (w *Window) Events() *platform.Dispatcher {
	return w.events
}

// Framebuffer returns the presented buffer.
func (w *Window) Framebuffer() *render.Framebuffer {
	return w.fb
}
