package platform

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/taigrr/scanline/pkg/render"
)

// Headless renders a fixed number of frames without a display and
// optionally writes the last one to a PNG file.
type Headless struct {
	// Frames is the number of frames to render. Values below 1 render one.
	Frames int
	// Output is the PNG path for the final frame. Empty skips writing.
	Output string
	// Step is the simulated time between frames.
	Step time.Duration

	fb     *render.Framebuffer
	events *Dispatcher
	logger *zap.Logger
	open   bool
	closed bool
}

// NewHeadless creates a headless host presenting fb.
func NewHeadless(fb *render.Framebuffer, frames int, output string, logger *zap.Logger) *Headless {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Headless{
		Frames: frames,
		Output: output,
		Step:   time.Second / 60,
		fb:     fb,
		events: NewDispatcher(),
		logger: logger,
	}
}

// Open prepares the host.
func (h *Headless) Open() error {
	if h.closed {
		return fmt.Errorf("headless: %w", ErrNotOpen)
	}
	h.open = true
	h.logger.Info("headless host opened",
		zap.Int("width", h.fb.Width),
		zap.Int("height", h.fb.Height),
		zap.Int("frames", max(h.Frames, 1)),
	)
	return nil
}

// Run steps loop until the frame budget is spent, the loop stops or ctx is
// done. It then writes Output and reports EventExitRequested.
func (h *Headless) Run(ctx context.Context, loop *Loop) error {
	if !h.open || h.closed {
		return ErrNotOpen
	}

	for range max(h.Frames, 1) {
		if ctx.Err() != nil {
			break
		}
		ran, err := loop.Step(h.Step)
		if err != nil {
			return fmt.Errorf("frame %d: %w", loop.Frames(), err)
		}
		if !ran {
			break
		}
	}

	if h.Output != "" {
		if err := h.fb.SavePNG(h.Output); err != nil {
			return fmt.Errorf("write %s: %w", h.Output, err)
		}
		h.logger.Info("frame written", zap.String("path", h.Output), zap.Int("frames", loop.Frames()))
	}

	h.events.Dispatch(Event{Kind: EventExitRequested})
	return nil
}

// Close releases the host. Calling it more than once is a no-op.
func (h *Headless) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	h.open = false
	h.logger.Info("headless host closed")
	return nil
}

// Events returns the host dispatcher.
func (h *Headless) Events() *Dispatcher {
	return h.events
}

// Framebuffer returns the presented buffer.
func (h *Headless) Framebuffer() *render.Framebuffer {
	return h.fb
}
