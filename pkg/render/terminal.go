package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the framebuffer to terminal cells and draws them on the
// screen. Each cell is an upper half block with the foreground set to the top
// pixel and the background to the bottom pixel, so the framebuffer height
// should be 2x the terminal height.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		botY := topY + 1
		if topY >= fb.Height {
			break
		}

		for col := area.Min.X; col < area.Max.X; col++ {
			x := col - area.Min.X
			if x >= fb.Width {
				break
			}
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: cellColor(fb.GetPixel(x, topY)),
					Bg: cellColor(fb.GetPixel(x, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// cellColor leaves black cells uncolored so the terminal background shows
// through.
func cellColor(c Color) color.Color {
	if c == (Color{}) {
		return nil
	}
	return c
}
