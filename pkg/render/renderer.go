package render

import (
	"errors"
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
)

// ErrInvalidViewport is returned when the view distance or view plane extent
// is not positive.
var ErrInvalidViewport = errors.New("view distance and view plane extent must be positive")

// Mode selects how projected triangles are rasterized.
type Mode uint8

const (
	ModeWireframe Mode = iota
	ModeFilled
	ModeShaded
)

func (m Mode) String() string {
	switch m {
	case ModeWireframe:
		return "wireframe"
	case ModeFilled:
		return "filled"
	case ModeShaded:
		return "shaded"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// ParseMode parses a mode name as produced by Mode.String.
func ParseMode(s string) (Mode, error) {
	for _, m := range []Mode{ModeWireframe, ModeFilled, ModeShaded} {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown render mode %q", s)
}

// Stats counts pipeline work since the last BeginFrame.
type Stats struct {
	ModelsTested int // models tested against the frustum
	ModelsCulled int // models skipped by the bounds test
	FacesIn      int // faces entering the clip pipeline
	TrianglesOut int // triangles leaving it
	Discarded    int // plane clips that dropped a triangle
	Splits       int // plane clips that produced two triangles
}

// DrawCall is one projected triangle ready for rasterization.
type DrawCall struct {
	Points [3]image.Point
	Colors [3]Color
}

// Renderer owns the viewport state and runs the transform, clip and project
// pipeline into a Framebuffer.
type Renderer struct {
	fb *Framebuffer

	// ViewDistance is the distance from the eye to the view plane, which is
	// also the near clip plane. ViewWidth and ViewHeight are the extent of
	// the view plane in world units.
	ViewDistance float64
	ViewWidth    float64
	ViewHeight   float64

	Mode    Mode
	Color   Color
	Palette Palette

	// Cull enables the per-model bounding box test.
	Cull bool

	Stats  Stats
	Logger *zap.Logger

	tris  []Triangle
	calls []DrawCall
}

// NewRenderer creates a renderer drawing into fb. The default view plane sits
// at distance 1 and is 2 units wide, with a height matching the buffer's
// aspect ratio. A nil logger discards diagnostics.
func NewRenderer(fb *Framebuffer, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{
		fb:           fb,
		ViewDistance: 1,
		ViewWidth:    2,
		ViewHeight:   2 * float64(fb.Height) / float64(fb.Width),
		Color:        ColorWhite,
		Palette:      NewPalette(8, 0.65, 1),
		Cull:         true,
		Logger:       logger,
	}
}

// Framebuffer returns the target buffer.
func (r *Renderer) Framebuffer() *Framebuffer {
	return r.fb
}

// Validate checks the viewport parameters.
func (r *Renderer) Validate() error {
	if r.ViewDistance <= 0 || r.ViewWidth <= 0 || r.ViewHeight <= 0 {
		return fmt.Errorf("%w: distance=%g width=%g height=%g",
			ErrInvalidViewport, r.ViewDistance, r.ViewWidth, r.ViewHeight)
	}
	return nil
}

// Frustum returns the clip planes for the current viewport.
func (r *Renderer) Frustum() Frustum {
	return NewFrustum(r.ViewDistance, r.ViewWidth, r.ViewHeight)
}

// BeginFrame resets the statistics and fills the buffer with bg.
func (r *Renderer) BeginFrame(bg Color) {
	r.Stats = Stats{}
	r.fb.Fill(bg)
}

// LogStats writes the frame statistics at debug level.
func (r *Renderer) LogStats() {
	r.Logger.Debug("frame",
		zap.Int("models_tested", r.Stats.ModelsTested),
		zap.Int("models_culled", r.Stats.ModelsCulled),
		zap.Int("faces_in", r.Stats.FacesIn),
		zap.Int("triangles_out", r.Stats.TrianglesOut),
		zap.Int("discarded", r.Stats.Discarded),
		zap.Int("splits", r.Stats.Splits),
	)
}

// Project maps a camera-space point in front of the eye to buffer
// coordinates. View-space (0, 0) lands on the buffer center.
func (r *Renderer) Project(v math3d.Vec4) math3d.Vec2 {
	x := v.X * r.ViewDistance / v.Z
	y := v.Y * r.ViewDistance / v.Z
	return math3d.V2(
		x*float64(r.fb.Width)/r.ViewWidth+float64(r.fb.Width)/2,
		y*float64(r.fb.Height)/r.ViewHeight+float64(r.fb.Height)/2,
	)
}

// Unproject is the inverse of Project for a point at camera-space depth z.
func (r *Renderer) Unproject(p math3d.Vec2, z float64) math3d.Vec4 {
	x := (p.X - float64(r.fb.Width)/2) * r.ViewWidth / float64(r.fb.Width)
	y := (p.Y - float64(r.fb.Height)/2) * r.ViewHeight / float64(r.fb.Height)
	return math3d.P4(x*z/r.ViewDistance, y*z/r.ViewDistance, z)
}

func (r *Renderer) projectPoint(v math3d.Vec4) image.Point {
	p := r.Project(v)
	return image.Pt(int(p.X), int(p.Y))
}

// RenderMesh transforms every face of mesh by camera·transform, clips it and
// appends the projected triangles to dst.
func (r *Renderer) RenderMesh(mesh *models.Mesh, transform math3d.Mat4, cam *Camera, dst []DrawCall) ([]DrawCall, error) {
	if err := r.Validate(); err != nil {
		return dst, err
	}
	m := cam.Transform().Mul(transform)
	f := r.Frustum()

	if r.Cull {
		r.Stats.ModelsTested++
		if !f.IntersectAABB(NewAABB(mesh.BoundsMin, mesh.BoundsMax), m) {
			r.Stats.ModelsCulled++
			return dst, nil
		}
	}

	for i, face := range mesh.Faces {
		r.Stats.FacesIn++

		var tri Triangle
		for j, vi := range face.V {
			tri[j] = m.MulVec4(mesh.Vertices[vi])
		}

		var err error
		r.tris, err = f.Clip(r.tris[:0], tri, &r.Stats)
		if err != nil {
			return dst, fmt.Errorf("clip face %d of %q: %w", i, mesh.Name, err)
		}

		for _, t := range r.tris {
			call := DrawCall{Colors: r.vertexColors(face, tri, t)}
			for j, v := range t {
				call.Points[j] = r.projectPoint(v)
			}
			dst = append(dst, call)
			r.Stats.TrianglesOut++
		}
	}
	return dst, nil
}

// Render draws one model as seen from cam.
func (r *Renderer) Render(model *models.Model, cam *Camera) error {
	var err error
	r.calls, err = r.RenderMesh(model.Mesh, model.Transform(), cam, r.calls[:0])
	if err != nil {
		return err
	}
	for _, call := range r.calls {
		r.Draw(call)
	}
	return nil
}

// RenderScene draws every model, stopping at the first error.
func (r *Renderer) RenderScene(scene []*models.Model, cam *Camera) error {
	for _, model := range scene {
		if err := r.Render(model, cam); err != nil {
			return err
		}
	}
	return nil
}

// Draw rasterizes one call according to the current mode.
func (r *Renderer) Draw(call DrawCall) {
	p := call.Points
	switch r.Mode {
	case ModeFilled:
		r.fb.DrawFilledTriangle(p[0], p[1], p[2], call.Colors[0])
	case ModeShaded:
		r.fb.DrawShadedTriangle(p[0], p[1], p[2], call.Colors[0], call.Colors[1], call.Colors[2])
	default:
		r.fb.DrawWireframeTriangle(p[0], p[1], p[2], call.Colors[0])
	}
}

// vertexColors picks the colors for a clipped triangle. In shaded mode each
// mesh vertex takes a palette color and clipped vertices blend the colors of
// the face they were cut from.
func (r *Renderer) vertexColors(face models.Face, src, clipped Triangle) [3]Color {
	if r.Mode != ModeShaded {
		return [3]Color{r.Color, r.Color, r.Color}
	}
	base := [3]Color{r.Palette.At(face.V[0]), r.Palette.At(face.V[1]), r.Palette.At(face.V[2])}
	if clipped == src {
		return base
	}
	var out [3]Color
	for i, v := range clipped {
		out[i] = blend3(base, barycentric(src, v))
	}
	return out
}

// barycentric returns the weights of p relative to triangle t. Degenerate
// triangles put all weight on the first vertex.
func barycentric(t Triangle, p math3d.Vec4) [3]float64 {
	v0 := t[1].Sub(t[0])
	v1 := t[2].Sub(t[0])
	v2 := p.Sub(t[0])
	d00 := v0.Dot3(v0)
	d01 := v0.Dot3(v1)
	d11 := v1.Dot3(v1)
	d20 := v2.Dot3(v0)
	d21 := v2.Dot3(v1)
	denom := d00*d11 - d01*d01
	if denom == 0 {
		return [3]float64{1, 0, 0}
	}
	v := (d11*d20 - d01*d21) / denom
	w := (d00*d21 - d01*d20) / denom
	return [3]float64{1 - v - w, v, w}
}

func blend3(c [3]Color, w [3]float64) Color {
	var s shade
	for i := range c {
		cs := shadeOf(c[i])
		for ch := range s {
			s[ch] += cs[ch] * w[i]
		}
	}
	return s.color()
}

// DrawLine3D draws a world-space segment, clipped to the frustum.
func (r *Renderer) DrawLine3D(a, b math3d.Vec3, cam *Camera, c Color) error {
	if err := r.Validate(); err != nil {
		return err
	}
	m := cam.Transform()
	ca, cb, ok, err := r.Frustum().ClipSegment(m.MulVec4(a.Point()), m.MulVec4(b.Point()))
	if err != nil || !ok {
		return err
	}
	pa, pb := r.projectPoint(ca), r.projectPoint(cb)
	r.fb.DrawLine(pa.X, pa.Y, pb.X, pb.Y, c)
	return nil
}

// DrawBounds draws the 12 edges of a model's bounding box.
func (r *Renderer) DrawBounds(model *models.Model, cam *Camera, c Color) error {
	box := NewAABB(model.Mesh.BoundsMin, model.Mesh.BoundsMax)
	corners := box.Corners()
	transform := model.Transform()
	for i := range corners {
		for _, bit := range []int{1, 2, 4} {
			if i&bit != 0 {
				continue
			}
			a := transform.MulVec3(corners[i])
			b := transform.MulVec3(corners[i|bit])
			if err := r.DrawLine3D(a, b, cam, c); err != nil {
				return err
			}
		}
	}
	return nil
}
