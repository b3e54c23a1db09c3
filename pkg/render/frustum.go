package render

import (
	"github.com/taigrr/scanline/pkg/math3d"
)

// Frustum represents the 5 clip planes of the view pyramid in camera space.
// Planes are ordered: Near, Left, Right, Bottom, Top. Triangles are clipped
// against them in that order.
type Frustum struct {
	Planes [5]Plane

	// Inside is a point known to be inside every plane.
	Inside math3d.Vec4
}

// FrustumPlane indices for clarity.
const (
	FrustumNear = iota
	FrustumLeft
	FrustumRight
	FrustumBottom
	FrustumTop
)

// NewFrustum builds the frustum for a view plane at distance d with the given
// extent. The side planes pass through the eye and the edges of the view
// plane; the near plane is the view plane itself.
func NewFrustum(d, viewWidth, viewHeight float64) Frustum {
	hw, hh := viewWidth/2, viewHeight/2
	origin := math3d.P4(0, 0, 0)

	// Corners of the view plane as directions from the eye
	bl := math3d.V4(-hw, -hh, d, 0)
	tl := math3d.V4(-hw, hh, d, 0)
	br := math3d.V4(hw, -hh, d, 0)
	tr := math3d.V4(hw, hh, d, 0)

	var f Frustum
	f.Planes[FrustumNear] = Plane{
		Point: math3d.P4(0, 0, d),
		Dir1:  math3d.V4(1, 0, 0, 0),
		Dir2:  math3d.V4(0, 1, 0, 0),
	}
	f.Planes[FrustumLeft] = Plane{Point: origin, Dir1: bl, Dir2: tl}
	f.Planes[FrustumRight] = Plane{Point: origin, Dir1: tr, Dir2: br}
	f.Planes[FrustumBottom] = Plane{Point: origin, Dir1: br, Dir2: bl}
	f.Planes[FrustumTop] = Plane{Point: origin, Dir1: tl, Dir2: tr}
	f.Inside = math3d.P4(0, 0, d+1)
	return f
}

// ContainsPoint tests if a camera-space point is inside the frustum.
func (f Frustum) ContainsPoint(p math3d.Vec4) bool {
	for i := range f.Planes {
		if !f.Planes[i].SameSide(p, f.Inside) {
			return false
		}
	}
	return true
}

// Clip runs tri through every plane in order and appends the surviving
// triangles to dst. stats may be nil.
func (f Frustum) Clip(dst []Triangle, tri Triangle, stats *Stats) ([]Triangle, error) {
	// Bounded by 2^5 but rarely more than 2
	cur := make([]Triangle, 1, 4)
	cur[0] = tri
	next := make([]Triangle, 0, 4)

	for i := range f.Planes {
		next = next[:0]
		for _, t := range cur {
			res, err := ClipTriangle(t, f.Planes[i], f.Inside)
			if err != nil {
				return dst, err
			}
			if stats != nil {
				switch res.Outcome {
				case Discarded:
					stats.Discarded++
				case Split:
					stats.Splits++
				}
			}
			next = res.AppendTo(next)
		}
		cur, next = next, cur
		if len(cur) == 0 {
			return dst, nil
		}
	}
	return append(dst, cur...), nil
}

// ClipSegment clips a camera-space segment against every plane.
func (f Frustum) ClipSegment(a, b math3d.Vec4) (math3d.Vec4, math3d.Vec4, bool, error) {
	for i := range f.Planes {
		var ok bool
		var err error
		a, b, ok, err = ClipSegment(a, b, f.Planes[i], f.Inside)
		if err != nil || !ok {
			return a, b, false, err
		}
	}
	return a, b, true, nil
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// NewAABB creates an AABB from min and max points.
func NewAABB(min, max math3d.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// Center returns the center of the AABB.
func (b AABB) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the dimensions of the AABB.
func (b AABB) Size() math3d.Vec3 {
	return b.Max.Sub(b.Min)
}

// HalfSize returns half the dimensions (extents from center).
func (b AABB) HalfSize() math3d.Vec3 {
	return b.Size().Scale(0.5)
}

// Corners returns the 8 corners. Bit 0 of the index selects Max.X, bit 1
// Max.Y and bit 2 Max.Z.
func (b AABB) Corners() [8]math3d.Vec3 {
	var c [8]math3d.Vec3
	for i := range c {
		c[i] = b.Min
		if i&1 != 0 {
			c[i].X = b.Max.X
		}
		if i&2 != 0 {
			c[i].Y = b.Max.Y
		}
		if i&4 != 0 {
			c[i].Z = b.Max.Z
		}
	}
	return c
}

// Transform returns an AABB that bounds the original AABB after transformation.
// This computes a new AABB that contains all 8 transformed corners.
func (b AABB) Transform(m math3d.Mat4) AABB {
	corners := b.Corners()
	newMin := m.MulVec3(corners[0])
	newMax := newMin
	for _, c := range corners[1:] {
		t := m.MulVec3(c)
		newMin = newMin.Min(t)
		newMax = newMax.Max(t)
	}
	return AABB{Min: newMin, Max: newMax}
}

// ContainsPoint returns true if the point is inside the AABB.
func (b AABB) ContainsPoint(p math3d.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// IntersectAABB tests whether a model-space box, moved into camera space by
// m, may be visible. It returns false only when all 8 transformed corners lie
// outside a single plane, so it never rejects a visible box.
func (f Frustum) IntersectAABB(box AABB, m math3d.Mat4) bool {
	var corners [8]math3d.Vec4
	for i, c := range box.Corners() {
		corners[i] = m.MulVec4(c.Point())
	}

	for i := range f.Planes {
		outside := true
		for _, c := range corners {
			if f.Planes[i].SameSide(c, f.Inside) {
				outside = false
				break
			}
		}
		if outside {
			return false
		}
	}
	return true
}
