package render

import "image"

// interpolate returns the dependent values d for every integer i in
// [i0, i1], linearly interpolated from d0 to d1. A collapsed range yields the
// single sample d0.
func interpolate(i0 int, d0 float64, i1 int, d1 float64) []float64 {
	if i0 == i1 {
		return []float64{d0}
	}
	values := make([]float64, 0, i1-i0+1)
	a := (d1 - d0) / float64(i1-i0)
	d := d0
	for i := i0; i <= i1; i++ {
		values = append(values, d)
		d += a
	}
	return values
}

// DrawLine draws a line from (x0, y0) to (x1, y1). The axis with the larger
// extent is stepped one pixel at a time and the other is interpolated, so
// steep lines have no gaps.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	dx, dy := x1-x0, y1-y0
	if abs(dx) >= abs(dy) {
		if x0 > x1 {
			x0, y0, x1, y1 = x1, y1, x0, y0
		}
		ys := interpolate(x0, float64(y0), x1, float64(y1))
		for x := x0; x <= x1; x++ {
			fb.SetPixel(x, int(ys[x-x0]), c)
		}
		return
	}

	if y0 > y1 {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}
	xs := interpolate(y0, float64(x0), y1, float64(x1))
	for y := y0; y <= y1; y++ {
		fb.SetPixel(int(xs[y-y0]), y, c)
	}
}

// DrawWireframeTriangle draws the edges 0→1, 1→2 and 2→0.
func (fb *Framebuffer) DrawWireframeTriangle(p0, p1, p2 image.Point, c Color) {
	fb.DrawLine(p0.X, p0.Y, p1.X, p1.Y, c)
	fb.DrawLine(p1.X, p1.Y, p2.X, p2.Y, c)
	fb.DrawLine(p2.X, p2.Y, p0.X, p0.Y, c)
}

// DrawFilledTriangle fills a triangle with a flat color using horizontal
// spans between its edges.
func (fb *Framebuffer) DrawFilledTriangle(p0, p1, p2 image.Point, c Color) {
	if p1.Y < p0.Y {
		p0, p1 = p1, p0
	}
	if p2.Y < p0.Y {
		p0, p2 = p2, p0
	}
	if p2.Y < p1.Y {
		p1, p2 = p2, p1
	}

	x02 := interpolate(p0.Y, float64(p0.X), p2.Y, float64(p2.X))

	if p0.Y == p1.Y {
		fb.drawHorizontalLine(p0.X, p1.X, p0.Y, c)
	} else {
		x01 := interpolate(p0.Y, float64(p0.X), p1.Y, float64(p1.X))
		for y := p0.Y; y <= p1.Y; y++ {
			fb.drawHorizontalLine(int(x01[y-p0.Y]), int(x02[y-p0.Y]), y, c)
		}
	}

	if p1.Y == p2.Y {
		fb.drawHorizontalLine(p1.X, p2.X, p1.Y, c)
		return
	}
	x12 := interpolate(p1.Y, float64(p1.X), p2.Y, float64(p2.X))
	for y := p1.Y + 1; y <= p2.Y; y++ {
		fb.drawHorizontalLine(int(x12[y-p1.Y]), int(x02[y-p0.Y]), y, c)
	}
}

func (fb *Framebuffer) drawHorizontalLine(x0, x1, y int, c Color) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		fb.SetPixel(x, y, c)
	}
}

// shade is a color with floating-point channels. Channels are truncated to
// 8 bits only when a pixel is written.
type shade [3]float64

func shadeOf(c Color) shade {
	return shade{float64(c.R), float64(c.G), float64(c.B)}
}

func (s shade) color() Color {
	return Color{R: channel(s[0]), G: channel(s[1]), B: channel(s[2])}
}

func channel(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

// edge carries x and the three color channels interpolated down one edge of
// a triangle, indexed by y offset from the edge's first row.
type edge struct {
	x  []float64
	c  [3][]float64
	y0 int
}

func newEdge(p0 image.Point, c0 shade, p1 image.Point, c1 shade) edge {
	e := edge{
		x:  interpolate(p0.Y, float64(p0.X), p1.Y, float64(p1.X)),
		y0: p0.Y,
	}
	for ch := range e.c {
		e.c[ch] = interpolate(p0.Y, c0[ch], p1.Y, c1[ch])
	}
	return e
}

func (e edge) at(y int) (int, shade) {
	i := y - e.y0
	return int(e.x[i]), shade{e.c[0][i], e.c[1][i], e.c[2][i]}
}

// DrawShadedTriangle fills a triangle with a color gradient. Color is
// interpolated down each edge alongside x, then across each span.
func (fb *Framebuffer) DrawShadedTriangle(p0, p1, p2 image.Point, c0, c1, c2 Color) {
	if p1.Y < p0.Y {
		p0, p1 = p1, p0
		c0, c1 = c1, c0
	}
	if p2.Y < p0.Y {
		p0, p2 = p2, p0
		c0, c2 = c2, c0
	}
	if p2.Y < p1.Y {
		p1, p2 = p2, p1
		c1, c2 = c2, c1
	}
	s0, s1, s2 := shadeOf(c0), shadeOf(c1), shadeOf(c2)

	e02 := newEdge(p0, s0, p2, s2)

	if p0.Y == p1.Y {
		fb.drawHorizontalLineShaded(p0.X, p1.X, p0.Y, s0, s1)
	} else {
		e01 := newEdge(p0, s0, p1, s1)
		for y := p0.Y; y <= p1.Y; y++ {
			xa, ca := e01.at(y)
			xb, cb := e02.at(y)
			fb.drawHorizontalLineShaded(xa, xb, y, ca, cb)
		}
	}

	if p1.Y == p2.Y {
		fb.drawHorizontalLineShaded(p1.X, p2.X, p1.Y, s1, s2)
		return
	}
	e12 := newEdge(p1, s1, p2, s2)
	for y := p1.Y + 1; y <= p2.Y; y++ {
		xa, ca := e12.at(y)
		xb, cb := e02.at(y)
		fb.drawHorizontalLineShaded(xa, xb, y, ca, cb)
	}
}

func (fb *Framebuffer) drawHorizontalLineShaded(x0, x1, y int, c0, c1 shade) {
	if x0 > x1 {
		x0, x1 = x1, x0
		c0, c1 = c1, c0
	}
	var span [3][]float64
	for ch := range span {
		span[ch] = interpolate(x0, c0[ch], x1, c1[ch])
	}
	for x := x0; x <= x1; x++ {
		i := x - x0
		fb.SetPixel(x, y, shade{span[0][i], span[1][i], span[2][i]}.color())
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
