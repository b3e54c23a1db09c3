package render

import (
	"errors"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func newTestFramebuffer(t testing.TB, w, h int) *Framebuffer {
	t.Helper()
	fb, err := NewFramebuffer(w, h)
	if err != nil {
		t.Fatalf("NewFramebuffer(%d, %d): %v", w, h, err)
	}
	return fb
}

func litPixels(fb *Framebuffer) map[[2]int]Color {
	lit := make(map[[2]int]Color)
	for y := range fb.Height {
		for x := range fb.Width {
			if c := fb.GetPixel(x, y); c != (Color{}) {
				lit[[2]int{x, y}] = c
			}
		}
	}
	return lit
}

func TestNewFramebufferInvalidSize(t *testing.T) {
	for _, size := range [][2]int{{0, 10}, {10, 0}, {-1, 5}} {
		fb, err := NewFramebuffer(size[0], size[1])
		if !errors.Is(err, ErrInvalidSize) {
			t.Errorf("NewFramebuffer(%v) err = %v, want ErrInvalidSize", size, err)
		}
		if fb != nil {
			t.Errorf("NewFramebuffer(%v) returned a buffer", size)
		}
	}
}

func TestFramebufferLayout(t *testing.T) {
	fb := newTestFramebuffer(t, 4, 3)
	fb.SetPixel(1, 0, RGB(1, 2, 3))
	fb.SetPixel(0, 1, RGB(4, 5, 6))

	if got := fb.Pix[3:6]; got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("pixel (1,0) bytes = %v, want [1 2 3]", got)
	}
	if got := fb.Pix[12:15]; got[0] != 4 || got[1] != 5 || got[2] != 6 {
		t.Errorf("pixel (0,1) bytes = %v, want [4 5 6]", got)
	}
	if fb.GetPixel(1, 0) != RGB(1, 2, 3) {
		t.Errorf("GetPixel(1,0) = %v", fb.GetPixel(1, 0))
	}
}

func TestSetPixelOutOfBounds(t *testing.T) {
	fb := newTestFramebuffer(t, 4, 3)

	tests := []struct {
		name string
		x, y int
	}{
		{"one past width", 4, 0},
		{"one past height", 0, 3},
		{"negative x", -1, 1},
		{"negative y", 1, -1},
		{"far away", 1000, 1000},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb.SetPixel(tc.x, tc.y, ColorWhite)
			for i, b := range fb.Pix {
				if b != 0 {
					t.Fatalf("byte %d modified by write at (%d,%d)", i, tc.x, tc.y)
				}
			}
			if fb.GetPixel(tc.x, tc.y) != (Color{}) {
				t.Error("out of bounds read should be black")
			}
		})
	}
}

func TestClearAndFill(t *testing.T) {
	fb := newTestFramebuffer(t, 3, 2)
	fb.Fill(ColorCyan)
	for y := range fb.Height {
		for x := range fb.Width {
			if fb.GetPixel(x, y) != ColorCyan {
				t.Fatalf("pixel (%d,%d) = %v after Fill", x, y, fb.GetPixel(x, y))
			}
		}
	}

	fb.Clear()
	for i, b := range fb.Pix {
		if b != 0 {
			t.Fatalf("byte %d = %d after Clear", i, b)
		}
	}
}

func TestRGBAExport(t *testing.T) {
	fb := newTestFramebuffer(t, 2, 1)
	fb.SetPixel(1, 0, RGB(10, 20, 30))

	out := fb.RGBA(nil)
	want := []byte{0, 0, 0, 255, 10, 20, 30, 255}
	if len(out) != len(want) {
		t.Fatalf("len = %d, want %d", len(out), len(want))
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("byte %d = %d, want %d", i, out[i], want[i])
		}
	}

	reused := fb.RGBA(out)
	if &reused[0] != &out[0] {
		t.Error("RGBA should reuse a large enough buffer")
	}
}

func TestDrawImageInterface(t *testing.T) {
	fb := newTestFramebuffer(t, 2, 2)
	fb.Set(1, 1, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	if got := fb.GetPixel(1, 1); got != RGB(10, 20, 30) {
		t.Errorf("Set via color.RGBA = %v", got)
	}
	r, g, b, a := fb.At(1, 1).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 || a != 0xffff {
		t.Errorf("At = %d %d %d %d", r>>8, g>>8, b>>8, a)
	}
	if fb.Bounds().Dx() != 2 || fb.Bounds().Dy() != 2 {
		t.Errorf("Bounds = %v", fb.Bounds())
	}
}

func TestDrawText(t *testing.T) {
	fb := newTestFramebuffer(t, 64, 16)
	advance := fb.DrawText(0, 12, "HUD", ColorWhite)

	if advance != 3*7 {
		t.Errorf("advance = %d, want 21", advance)
	}
	lit := litPixels(fb)
	if len(lit) == 0 {
		t.Fatal("DrawText drew nothing")
	}
	for p, c := range lit {
		if p[0] >= advance {
			t.Errorf("pixel %v drawn past the advance", p)
		}
		if c != ColorWhite {
			t.Errorf("pixel %v = %v, want white", p, c)
		}
	}
}

func TestSavePNG(t *testing.T) {
	fb := newTestFramebuffer(t, 4, 4)
	fb.SetPixel(2, 3, ColorRed)

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	r, g, b, _ := img.At(2, 3).RGBA()
	if r>>8 != 255 || g != 0 || b != 0 {
		t.Errorf("decoded pixel = %d %d %d, want red", r>>8, g>>8, b>>8)
	}
}
