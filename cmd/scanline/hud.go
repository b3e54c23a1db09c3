package main

import (
	"fmt"
	"time"

	"github.com/taigrr/scanline/pkg/render"
)

// HUD draws frame info into the framebuffer.
type HUD struct {
	name      string
	faces     int
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

func NewHUD(name string, faces int) *HUD {
	return &HUD{name: name, faces: faces, fpsTime: time.Now()}
}

// UpdateFPS counts a frame. The rate is recomputed once per second.
func (h *HUD) UpdateFPS(now time.Time) {
	h.fpsFrames++
	if elapsed := now.Sub(h.fpsTime); elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = now
	}
}

// Lines returns the overlay text for the current frame.
func (h *HUD) Lines(r *render.Renderer) []string {
	s := r.Stats
	return []string{
		fmt.Sprintf("%.0f FPS  %s  %s", h.fps, h.name, r.Mode),
		fmt.Sprintf("%d faces  %d/%d models", h.faces, s.ModelsTested-s.ModelsCulled, s.ModelsTested),
		fmt.Sprintf("in %d  out %d  split %d  drop %d", s.FacesIn, s.TrianglesOut, s.Splits, s.Discarded),
	}
}

// Draw renders the overlay in the top left corner. Buffers too small for a
// line of text are left alone.
func (h *HUD) Draw(r *render.Renderer, c render.Color) {
	fb := r.Framebuffer()
	lh := render.TextLineHeight()
	if fb.Height < lh*2 {
		return
	}
	y := lh
	for _, line := range h.Lines(r) {
		if y > fb.Height {
			break
		}
		fb.DrawText(2, y-2, line, c)
		y += lh
	}
}
