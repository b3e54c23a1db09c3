package render

import (
	"image"
	"testing"
)

func TestDrawLineAxisAligned(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           [][2]int
	}{
		{"horizontal", 0, 0, 4, 0, [][2]int{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}}},
		{"horizontal reversed", 4, 0, 0, 0, [][2]int{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}}},
		{"vertical", 0, 0, 0, 4, [][2]int{{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4}}},
		{"vertical reversed", 0, 4, 0, 0, [][2]int{{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4}}},
		{"single point", 2, 2, 2, 2, [][2]int{{2, 2}}},
		{"diagonal", 0, 0, 3, 3, [][2]int{{0, 0}, {1, 1}, {2, 2}, {3, 3}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := newTestFramebuffer(t, 8, 8)
			fb.DrawLine(tc.x0, tc.y0, tc.x1, tc.y1, ColorRed)

			lit := litPixels(fb)
			if len(lit) != len(tc.want) {
				t.Errorf("lit %d pixels, want %d", len(lit), len(tc.want))
			}
			for _, p := range tc.want {
				if lit[p] != ColorRed {
					t.Errorf("pixel %v not drawn", p)
				}
			}
		})
	}
}

func TestDrawLineSteepHasNoGaps(t *testing.T) {
	fb := newTestFramebuffer(t, 8, 16)
	fb.DrawLine(0, 0, 2, 9, ColorWhite)

	for y := 0; y <= 9; y++ {
		n := 0
		for x := range fb.Width {
			if fb.GetPixel(x, y) != (Color{}) {
				n++
			}
		}
		if n != 1 {
			t.Errorf("row %d has %d pixels, want 1", y, n)
		}
	}
}

func TestDrawLineClipsToBuffer(t *testing.T) {
	fb := newTestFramebuffer(t, 4, 4)
	fb.DrawLine(-10, 1, 10, 1, ColorWhite)

	if len(litPixels(fb)) != 4 {
		t.Errorf("lit %d pixels, want the 4 in-bounds ones", len(litPixels(fb)))
	}
}

func TestDrawWireframeTriangle(t *testing.T) {
	fb := newTestFramebuffer(t, 8, 8)
	fb.DrawWireframeTriangle(image.Pt(0, 0), image.Pt(4, 0), image.Pt(0, 4), ColorGreen)

	for _, p := range [][2]int{{0, 0}, {4, 0}, {0, 4}, {2, 0}, {0, 2}, {2, 2}} {
		if fb.GetPixel(p[0], p[1]) != ColorGreen {
			t.Errorf("edge pixel %v not drawn", p)
		}
	}
	if fb.GetPixel(1, 1) != (Color{}) {
		t.Error("interior pixel (1,1) should be empty")
	}
}

func TestDrawFilledTriangleCoverage(t *testing.T) {
	pts := []image.Point{image.Pt(0, 0), image.Pt(4, 0), image.Pt(0, 4)}
	orders := [][3]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}

	for _, o := range orders {
		fb := newTestFramebuffer(t, 8, 8)
		fb.DrawFilledTriangle(pts[o[0]], pts[o[1]], pts[o[2]], ColorBlue)

		for y := range fb.Height {
			for x := range fb.Width {
				want := x+y <= 4
				got := fb.GetPixel(x, y) == ColorBlue
				if got != want {
					t.Errorf("order %v: pixel (%d,%d) lit=%v, want %v", o, x, y, got, want)
				}
			}
		}
	}
}

func TestDrawFilledTriangleDegenerate(t *testing.T) {
	fb := newTestFramebuffer(t, 8, 8)
	fb.DrawFilledTriangle(image.Pt(5, 3), image.Pt(1, 3), image.Pt(3, 3), ColorWhite)

	lit := litPixels(fb)
	if len(lit) != 5 {
		t.Errorf("flat triangle lit %d pixels, want 5", len(lit))
	}
	for x := 1; x <= 5; x++ {
		if _, ok := lit[[2]int{x, 3}]; !ok {
			t.Errorf("pixel (%d,3) missing", x)
		}
	}
}

func TestDrawFilledTriangleOffscreen(t *testing.T) {
	fb := newTestFramebuffer(t, 8, 8)
	fb.DrawFilledTriangle(image.Pt(-100, -100), image.Pt(100, -50), image.Pt(0, 200), ColorWhite)

	if fb.GetPixel(4, 4) != ColorWhite {
		t.Error("buffer center should be covered")
	}
}

func TestDrawShadedTriangleGradient(t *testing.T) {
	fb := newTestFramebuffer(t, 8, 8)
	fb.DrawShadedTriangle(
		image.Pt(0, 0), image.Pt(4, 0), image.Pt(0, 4),
		RGB(0, 0, 0), RGB(200, 0, 0), RGB(0, 0, 200),
	)

	// Top row runs from black to red
	for x, want := range []uint8{0, 50, 100, 150, 200} {
		if got := fb.GetPixel(x, 0).R; got != want {
			t.Errorf("pixel (%d,0).R = %d, want %d", x, got, want)
		}
	}
	if got := fb.GetPixel(0, 4); got != RGB(0, 0, 200) {
		t.Errorf("bottom vertex = %v, want blue", got)
	}
}

func TestDrawShadedMatchesFilledCoverage(t *testing.T) {
	p0, p1, p2 := image.Pt(1, 1), image.Pt(7, 3), image.Pt(2, 7)
	c := RGB(90, 90, 90)

	filled := newTestFramebuffer(t, 8, 8)
	filled.DrawFilledTriangle(p0, p1, p2, c)
	shaded := newTestFramebuffer(t, 8, 8)
	shaded.DrawShadedTriangle(p0, p1, p2, c, c, c)

	for i := range filled.Pix {
		if filled.Pix[i] != shaded.Pix[i] {
			t.Fatalf("byte %d differs: filled=%d shaded=%d", i, filled.Pix[i], shaded.Pix[i])
		}
	}
}

func TestInterpolate(t *testing.T) {
	got := interpolate(0, 10, 4, 0)
	want := []float64{10, 7.5, 5, 2.5, 0}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value %d = %v, want %v", i, got[i], want[i])
		}
	}

	if single := interpolate(3, 7, 3, 99); len(single) != 1 || single[0] != 7 {
		t.Errorf("collapsed range = %v, want [7]", single)
	}
}
