// Package render rasterizes triangle meshes into an RGB framebuffer.
//
// The pipeline transforms model-space triangles into camera space, clips them
// against the five planes of the view frustum, projects the survivors onto the
// view plane and scan-converts them with the primitives in draw.go.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ErrInvalidSize is returned when a framebuffer is requested with a
// non-positive dimension.
var ErrInvalidSize = errors.New("framebuffer dimensions must be positive")

// BytesPerPixel is the stride of one pixel in Framebuffer.Pix.
const BytesPerPixel = 3

// Color is a 24-bit RGB color. It implements color.Color as fully opaque.
type Color struct {
	R, G, B uint8
}

// RGB creates a color from RGB values.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// Colors for convenience
var (
	ColorBlack   = RGB(0, 0, 0)
	ColorWhite   = RGB(255, 255, 255)
	ColorRed     = RGB(255, 0, 0)
	ColorGreen   = RGB(0, 255, 0)
	ColorBlue    = RGB(0, 0, 255)
	ColorYellow  = RGB(255, 255, 0)
	ColorCyan    = RGB(0, 255, 255)
	ColorMagenta = RGB(255, 0, 255)
	ColorGray    = RGB(128, 128, 128)
)

// Framebuffer is a fixed-size grid of pixels stored row-major.
// Each pixel occupies three bytes in R, G, B order with no padding; display
// sinks convert from this layout when they blit.
type Framebuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
func NewFramebuffer(width, height int) (*Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*BytesPerPixel),
	}, nil
}

// Clear zeroes every channel.
func (fb *Framebuffer) Clear() {
	clear(fb.Pix)
}

// Fill sets every pixel to c.
func (fb *Framebuffer) Fill(c Color) {
	if c == (Color{}) {
		fb.Clear()
		return
	}
	for i := 0; i < len(fb.Pix); i += BytesPerPixel {
		fb.Pix[i] = c.R
		fb.Pix[i+1] = c.G
		fb.Pix[i+2] = c.B
	}
}

func (fb *Framebuffer) inBounds(x, y int) bool {
	return x >= 0 && x < fb.Width && y >= 0 && y < fb.Height
}

// SetPixel sets a pixel at (x, y). Writes outside the buffer are ignored.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if !fb.inBounds(x, y) {
		return
	}
	i := (y*fb.Width + x) * BytesPerPixel
	fb.Pix[i] = c.R
	fb.Pix[i+1] = c.G
	fb.Pix[i+2] = c.B
}

// GetPixel returns the color at (x, y), or black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if !fb.inBounds(x, y) {
		return Color{}
	}
	i := (y*fb.Width + x) * BytesPerPixel
	return Color{R: fb.Pix[i], G: fb.Pix[i+1], B: fb.Pix[i+2]}
}

// DrawRect draws a filled rectangle.
func (fb *Framebuffer) DrawRect(x, y, w, h int, c Color) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			fb.SetPixel(px, py, c)
		}
	}
}

// ColorModel implements draw.Image.
func (fb *Framebuffer) ColorModel() color.Model {
	return color.ModelFunc(toColor)
}

// Bounds implements draw.Image.
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.Width, fb.Height)
}

// At implements draw.Image.
func (fb *Framebuffer) At(x, y int) color.Color {
	return fb.GetPixel(x, y)
}

// Set implements draw.Image. Alpha is discarded.
func (fb *Framebuffer) Set(x, y int, c color.Color) {
	fb.SetPixel(x, y, toColor(c).(Color))
}

func toColor(c color.Color) color.Color {
	if rgb, ok := c.(Color); ok {
		return rgb
	}
	r, g, b, _ := c.RGBA()
	return Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// RGBA writes the buffer as 8-bit RGBA into dst, growing it if needed, and
// returns it. Window hosts blit the result directly.
func (fb *Framebuffer) RGBA(dst []byte) []byte {
	n := fb.Width * fb.Height * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i, j := 0, 0; i < len(fb.Pix); i, j = i+BytesPerPixel, j+4 {
		dst[j] = fb.Pix[i]
		dst[j+1] = fb.Pix[i+1]
		dst[j+2] = fb.Pix[i+2]
		dst[j+3] = 0xff
	}
	return dst
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(fb.Bounds())
	img.Pix = fb.RGBA(img.Pix)
	return img
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, fb.ToImage()); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}

// DrawText draws a single line of text with its baseline at (x, y) using a
// fixed 7x13 bitmap face. Returns the advance in pixels.
func (fb *Framebuffer) DrawText(x, y int, text string, c Color) int {
	d := font.Drawer{
		Dst:  fb,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
	return (d.Dot.X - fixed.I(x)).Round()
}

// TextLineHeight is the vertical advance between lines drawn by DrawText.
func TextLineHeight() int {
	return basicfont.Face7x13.Metrics().Height.Ceil()
}
