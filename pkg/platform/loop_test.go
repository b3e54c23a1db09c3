package platform

import (
	"errors"
	"testing"
	"time"
)

func TestLoopStepUntilStopped(t *testing.T) {
	var loop *Loop
	loop = NewLoop(func(time.Duration) error {
		if loop.Frames() == 3 {
			loop.Stop()
		}
		return nil
	})

	steps := 0
	for {
		ran, err := loop.Step(time.Millisecond)
		if err != nil {
			t.Fatal(err)
		}
		if !ran {
			break
		}
		steps++
		if steps > 10 {
			t.Fatal("loop did not stop")
		}
	}

	// Stop takes effect at the next frame boundary
	if steps != 3 || loop.Frames() != 3 {
		t.Errorf("steps=%d frames=%d, want 3", steps, loop.Frames())
	}
	if loop.Running() {
		t.Error("loop still running")
	}
}

func TestLoopPassesDelta(t *testing.T) {
	var got time.Duration
	loop := NewLoop(func(dt time.Duration) error {
		got = dt
		return nil
	})
	if _, err := loop.Step(16 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if got != 16*time.Millisecond {
		t.Errorf("dt = %v", got)
	}
}

func TestLoopFrameError(t *testing.T) {
	boom := errors.New("boom")
	loop := NewLoop(func(time.Duration) error { return boom })

	ran, err := loop.Step(0)
	if !ran || !errors.Is(err, boom) {
		t.Errorf("Step = %v, %v", ran, err)
	}
}

func TestLoopStopOnExit(t *testing.T) {
	d := NewDispatcher()
	loop := NewLoop(func(time.Duration) error { return nil })
	loop.StopOnExit(d)

	d.Dispatch(Event{Kind: EventKey, Key: "x"})
	if !loop.Running() {
		t.Fatal("key event stopped the loop")
	}

	d.Dispatch(Event{Kind: EventExitRequested})
	if loop.Running() {
		t.Error("exit request did not stop the loop")
	}
	if ran, _ := loop.Step(0); ran {
		t.Error("stopped loop ran a frame")
	}
}
