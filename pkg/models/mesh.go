// Package models holds the geometry consumed by the scanline pipeline:
// meshes loaded once, and the positioned instances that reference them.
package models

import (
	"errors"
	"fmt"

	"github.com/taigrr/scanline/pkg/math3d"
)

var (
	// ErrEmptyMesh is returned when a source yields no vertices or no faces.
	ErrEmptyMesh = errors.New("mesh has no vertices or faces")
	// ErrFaceIndex is returned when a face references a missing vertex.
	ErrFaceIndex = errors.New("face index out of range")
)

// Mesh is an immutable list of vertices and triangular faces.
// Any number of Models may share one Mesh while rendering.
type Mesh struct {
	Name     string
	Vertices []math3d.Vec4 // Homogeneous points, W = 1
	Faces    []Face

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Face holds three 0-based indices into Mesh.Vertices. Winding is kept as
// the source wrote it.
type Face struct {
	V [3]int
}

// NewMesh builds a mesh from points and 1-based faces. Storage is sized
// exactly from the input lengths.
func NewMesh(name string, points []math3d.Vec3, faces [][3]int) (*Mesh, error) {
	if len(points) == 0 || len(faces) == 0 {
		return nil, fmt.Errorf("build mesh %q: %w", name, ErrEmptyMesh)
	}

	mesh := &Mesh{
		Name:     name,
		Vertices: make([]math3d.Vec4, len(points)),
		Faces:    make([]Face, len(faces)),
	}
	for i, p := range points {
		mesh.Vertices[i] = p.Point()
	}
	for i, f := range faces {
		for j, idx := range f {
			if idx < 1 || idx > len(points) {
				return nil, fmt.Errorf("build mesh %q: face %d vertex %d = %d: %w", name, i, j, idx, ErrFaceIndex)
			}
			mesh.Faces[i].V[j] = idx - 1
		}
	}

	mesh.CalculateBounds()
	return mesh, nil
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Vec3()
	m.BoundsMax = m.BoundsMin

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Vec3())
		m.BoundsMax = m.BoundsMax.Max(v.Vec3())
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Triangle returns the three vertices of face i in winding order.
func (m *Mesh) Triangle(i int) [3]math3d.Vec4 {
	f := m.Faces[i].V
	return [3]math3d.Vec4{m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]}
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]math3d.Vec4, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	return clone
}

// Normalized returns a copy centered on the origin whose longest axis spans
// size units. Call it at load time, before any Model references the mesh.
func (m *Mesh) Normalized(size float64) *Mesh {
	clone := m.Clone()
	dims := m.Size()
	maxDim := max(dims.X, dims.Y, dims.Z)
	if maxDim <= 0 {
		return clone
	}

	s := size / maxDim
	transform := math3d.Scale(math3d.V3(s, s, s)).Mul(math3d.Translate(m.Center().Negate()))
	for i, v := range clone.Vertices {
		clone.Vertices[i] = transform.MulVec4(v)
	}
	clone.CalculateBounds()
	return clone
}
