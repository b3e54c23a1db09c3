package platform

import (
	"sync/atomic"
	"time"
)

// FrameFunc renders one frame. dt is the time since the previous frame.
type FrameFunc func(dt time.Duration) error

// Loop runs frames until it is stopped. The stop flag is checked once per
// frame, before the frame starts, so a frame in progress always completes.
type Loop struct {
	frame   FrameFunc
	running atomic.Bool
	frames  int
}

// NewLoop creates a running loop around frame.
func NewLoop(frame FrameFunc) *Loop {
	l := &Loop{frame: frame}
	l.running.Store(true)
	return l
}

// Running reports whether the loop has not been stopped.
func (l *Loop) Running() bool {
	return l.running.Load()
}

// Stop asks the loop to finish after the current frame. Safe to call from
// any goroutine.
func (l *Loop) Stop() {
	l.running.Store(false)
}

// Frames returns the number of frames run so far.
func (l *Loop) Frames() int {
	return l.frames
}

// Step runs one frame if the loop is still running and reports whether it
// did.
func (l *Loop) Step(dt time.Duration) (bool, error) {
	if !l.Running() {
		return false, nil
	}
	l.frames++
	return true, l.frame(dt)
}

// StopOnExit binds EventExitRequested on d to Stop.
func (l *Loop) StopOnExit(d *Dispatcher) {
	d.Bind(EventExitRequested, func(Event) { l.Stop() })
}
