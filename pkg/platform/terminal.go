package platform

import (
	"context"
	"fmt"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/taigrr/scanline/pkg/render"
)

// Terminal presents the framebuffer in the terminal with half-block cells,
// two pixels per cell. Escape and ctrl+c request exit.
type Terminal struct {
	FPS int

	term   *uv.Terminal
	fb     *render.Framebuffer
	events *Dispatcher
	logger *zap.Logger

	cols, rows int
	open       bool
	closed     bool
}

// NewTerminal creates a terminal host. The framebuffer is allocated by Open
// to match the terminal size.
func NewTerminal(fps int, logger *zap.Logger) *Terminal {
	if logger == nil {
		logger = zap.NewNop()
	}
	if fps <= 0 {
		fps = 30
	}
	return &Terminal{
		FPS:    fps,
		events: NewDispatcher(),
		logger: logger,
	}
}

// Open takes over the terminal: alternate screen, hidden cursor, raw input.
func (t *Terminal) Open() error {
	if t.open {
		return nil
	}
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("%w: get terminal size: %w", ErrNoDisplay, err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	t.term = term
	t.open = true

	if err := t.resize(width, height); err != nil {
		_ = t.Close()
		return err
	}
	t.logger.Info("terminal host opened", zap.Int("cols", width), zap.Int("rows", height))
	return nil
}

func (t *Terminal) resize(cols, rows int) error {
	fb, err := render.NewFramebuffer(cols, rows*2)
	if err != nil {
		return fmt.Errorf("terminal framebuffer: %w", err)
	}
	t.term.Erase()
	t.term.Resize(cols, rows)
	t.cols, t.rows = cols, rows
	t.fb = fb
	return nil
}

// Run pumps terminal input on one goroutine and renders frames on another.
// Events are handed to the frame goroutine and dispatched between frames.
func (t *Terminal) Run(ctx context.Context, loop *Loop) error {
	if !t.open || t.closed {
		return ErrNotOpen
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	pending := make(chan Event, 64)

	g.Go(func() error {
		input := t.term.Events()
		for {
			select {
			case <-ctx.Done():
				return nil
			case raw, ok := <-input:
				if !ok {
					return nil
				}
				ev, ok := translateTerminalEvent(raw)
				if !ok {
					continue
				}
				select {
				case pending <- ev:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})

	g.Go(func() error {
		defer cancel()
		ticker := time.NewTicker(time.Second / time.Duration(t.FPS))
		defer ticker.Stop()
		last := time.Now()

		for {
			if err := t.drain(pending); err != nil {
				return err
			}

			now := time.Now()
			ran, err := loop.Step(now.Sub(last))
			last = now
			if err != nil {
				return err
			}
			if !ran {
				return nil
			}

			t.fb.Draw(t.term, uv.Rect(0, 0, t.cols, t.rows))
			if err := t.term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}

			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		}
	})

	return g.Wait()
}

func (t *Terminal) drain(pending <-chan Event) error {
	for {
		select {
		case ev := <-pending:
			if ev.Kind == EventResize {
				if err := t.resize(ev.Width, ev.Height/2); err != nil {
					return err
				}
			}
			t.events.Dispatch(ev)
		default:
			return nil
		}
	}
}

// translateTerminalEvent maps terminal input to host events. Resize events
// carry framebuffer pixels: one column by two rows per cell.
func translateTerminalEvent(raw uv.Event) (Event, bool) {
	switch ev := raw.(type) {
	case uv.WindowSizeEvent:
		return Event{Kind: EventResize, Width: ev.Width, Height: ev.Height * 2}, true
	case uv.KeyPressEvent:
		if ev.MatchString("escape", "ctrl+c") {
			return Event{Kind: EventExitRequested}, true
		}
		return Event{Kind: EventKey, Key: ev.String()}, true
	}
	return Event{}, false
}

// Close restores the terminal. Calling it more than once is a no-op.
func (t *Terminal) Close() error {
	if t.closed || t.term == nil {
		t.closed = true
		return nil
	}
	t.closed = true
	t.open = false

	t.term.ExitAltScreen()
	t.term.ShowCursor()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := t.term.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown terminal: %w", err)
	}
	t.logger.Info("terminal host closed")
	return nil
}

// Events returns the host dispatcher.
func (t *Terminal) Events() *Dispatcher {
	return t.events
}

// Framebuffer returns the buffer sized to the terminal. It is replaced on
// resize.
func (t *Terminal) Framebuffer() *render.Framebuffer {
	return t.fb
}
