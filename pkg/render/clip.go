package render

import (
	"errors"

	"github.com/taigrr/scanline/pkg/math3d"
)

// ErrParallelEdge is returned when an edge that crosses a clip plane turns
// out to be parallel to it, which means the geometry is degenerate.
var ErrParallelEdge = errors.New("edge is parallel to clip plane")

// Triangle is three camera-space vertices, transient during clipping.
type Triangle [3]math3d.Vec4

// Plane is a clip plane given by a point on it and two spanning directions.
type Plane struct {
	Point math3d.Vec4
	Dir1  math3d.Vec4
	Dir2  math3d.Vec4
}

// Normal returns Dir1 × Dir2. It is not normalized and its orientation says
// nothing about which side is inside.
func (p Plane) Normal() math3d.Vec4 {
	return p.Dir1.Cross3(p.Dir2)
}

// Distance returns the signed distance of v from the plane, scaled by the
// length of the normal.
func (p Plane) Distance(v math3d.Vec4) float64 {
	return v.Sub(p.Point).Dot3(p.Normal())
}

// SameSide reports whether v lies on the same side of the plane as sample.
// A point exactly on the plane always counts as the same side.
func (p Plane) SameSide(v, sample math3d.Vec4) bool {
	return p.Distance(v)*p.Distance(sample) >= 0
}

// Intersect returns the point where the line from start towards end crosses
// the plane.
func (p Plane) Intersect(start, end math3d.Vec4) (math3d.Vec4, error) {
	n := p.Normal()
	dir := end.Sub(start)
	denom := dir.Dot3(n)
	if denom == 0 {
		return math3d.Vec4{}, ErrParallelEdge
	}
	k := -start.Sub(p.Point).Dot3(n) / denom
	return start.Add(dir.Scale(k)), nil
}

// ClipOutcome tags a ClipResult.
type ClipOutcome uint8

const (
	// Discarded means the triangle was entirely outside the plane.
	Discarded ClipOutcome = iota
	// Kept means the triangle was entirely inside and is returned unchanged.
	Kept
	// Split means two vertices were inside and the remaining quad was cut
	// into two triangles.
	Split
)

func (o ClipOutcome) String() string {
	switch o {
	case Discarded:
		return "discarded"
	case Kept:
		return "kept"
	case Split:
		return "split"
	}
	return "unknown"
}

// ClipResult is the output of clipping one triangle against one plane.
// First is valid for Kept and Split, Second only for Split.
type ClipResult struct {
	Outcome ClipOutcome
	First   Triangle
	Second  Triangle
}

// AppendTo appends the surviving triangles to dst.
func (r ClipResult) AppendTo(dst []Triangle) []Triangle {
	switch r.Outcome {
	case Kept:
		return append(dst, r.First)
	case Split:
		return append(dst, r.First, r.Second)
	}
	return dst
}

// ClipTriangle clips tri against plane. sample is any point known to be
// inside the frustum and decides which side of the plane is kept.
//
// With one vertex inside, the result is Kept with a smaller triangle made of
// that vertex and the two edge intersections. Winding order is preserved in
// every case.
func ClipTriangle(tri Triangle, plane Plane, sample math3d.Vec4) (ClipResult, error) {
	var inside [3]bool
	count := 0
	for i, v := range tri {
		if plane.SameSide(v, sample) {
			inside[i] = true
			count++
		}
	}

	switch count {
	case 0:
		return ClipResult{Outcome: Discarded}, nil
	case 3:
		return ClipResult{Outcome: Kept, First: tri}, nil
	case 1:
		i := 0
		for !inside[i] {
			i++
		}
		a, b, c := tri[i], tri[(i+1)%3], tri[(i+2)%3]
		pb, err := plane.Intersect(a, b)
		if err != nil {
			return ClipResult{}, err
		}
		pc, err := plane.Intersect(a, c)
		if err != nil {
			return ClipResult{}, err
		}
		return ClipResult{Outcome: Kept, First: Triangle{a, pb, pc}}, nil
	}

	o := 0
	for inside[o] {
		o++
	}
	a, b, out := tri[(o+1)%3], tri[(o+2)%3], tri[o]
	pb, err := plane.Intersect(b, out)
	if err != nil {
		return ClipResult{}, err
	}
	pa, err := plane.Intersect(a, out)
	if err != nil {
		return ClipResult{}, err
	}
	// Quad a, b, pb, pa fanned around a
	return ClipResult{
		Outcome: Split,
		First:   Triangle{a, b, pb},
		Second:  Triangle{a, pb, pa},
	}, nil
}

// ClipSegment clips the segment a-b against plane. ok is false when the
// whole segment lies outside.
func ClipSegment(a, b math3d.Vec4, plane Plane, sample math3d.Vec4) (ca, cb math3d.Vec4, ok bool, err error) {
	inA, inB := plane.SameSide(a, sample), plane.SameSide(b, sample)
	switch {
	case inA && inB:
		return a, b, true, nil
	case !inA && !inB:
		return a, b, false, nil
	case inA:
		p, err := plane.Intersect(a, b)
		return a, p, err == nil, err
	default:
		p, err := plane.Intersect(b, a)
		return p, b, err == nil, err
	}
}
