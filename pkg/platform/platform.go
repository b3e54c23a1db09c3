// Package platform connects the renderer to a display sink and to the
// lifecycle signals of its host.
//
// A Host owns its display handle explicitly: Open acquires it, Close releases
// it, and Run drives a Loop until the loop is stopped. Hosts translate their
// native input into Events and hand them to a Dispatcher on the frame
// goroutine, so frame code never runs concurrently with event handlers.
package platform

import (
	"context"
	"errors"

	"github.com/taigrr/scanline/pkg/render"
)

var (
	// ErrNoDisplay is returned by hosts that need a display when none is
	// available.
	ErrNoDisplay = errors.New("no display available")

	// ErrNotOpen is returned by Run when Open has not succeeded.
	ErrNotOpen = errors.New("host is not open")
)

// Host presents a framebuffer and reports lifecycle events.
type Host interface {
	Open() error
	Run(ctx context.Context, loop *Loop) error
	Close() error

	// Events returns the dispatcher the host delivers events to.
	Events() *Dispatcher

	// Framebuffer returns the buffer that will be presented next. It may be
	// replaced after an EventResize.
	Framebuffer() *render.Framebuffer
}

var (
	_ Host = (*Headless)(nil)
	_ Host = (*Terminal)(nil)
)
