package render

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette is a repeating list of vertex colors used by shaded mode.
type Palette []Color

// NewPalette returns n colors with evenly spaced hues at the given
// saturation and value (both in [0, 1]).
func NewPalette(n int, saturation, value float64) Palette {
	p := make(Palette, n)
	for i := range p {
		h := 360 * float64(i) / float64(n)
		p[i] = fromColorful(colorful.Hsv(h, saturation, value))
	}
	return p
}

// At returns the color for vertex i, wrapping around. An empty palette is
// white.
func (p Palette) At(i int) Color {
	if len(p) == 0 {
		return ColorWhite
	}
	if i < 0 {
		i = -i
	}
	return p[i%len(p)]
}

// Gradient returns n colors blended from a to b in CIE L*a*b* space.
func Gradient(a, b Color, n int) Palette {
	ca, cb := toColorful(a), toColorful(b)
	p := make(Palette, n)
	for i := range p {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		p[i] = fromColorful(ca.BlendLab(cb, t))
	}
	return p
}

// ParseColor parses a hex color such as "#4080ff".
func ParseColor(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return fromColorful(c), nil
}

// Hex formats c as "#rrggbb".
func (c Color) Hex() string {
	return toColorful(c).Hex()
}

func toColorful(c Color) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}
