package models

import "github.com/taigrr/scanline/pkg/math3d"

// Model places a shared Mesh in the world. The mesh is not owned.
// Position, Scale and Rotation use X/Y/Z only; W is ignored.
type Model struct {
	Mesh     *Mesh
	Position math3d.Vec4
	Scale    math3d.Vec4
	Rotation math3d.Vec4 // Radians: X = pitch, Y = yaw, Z = roll
}

// NewModel creates a model at the origin with unit scale.
func NewModel(mesh *Mesh) *Model {
	return &Model{
		Mesh:  mesh,
		Scale: math3d.V4(1, 1, 1, 0),
	}
}

// Transform returns translate(Position) · rotate(Rotation) · scale(Scale).
func (m *Model) Transform() math3d.Mat4 {
	return math3d.Translate(m.Position.Vec3()).
		Mul(math3d.RotateEuler(m.Rotation)).
		Mul(math3d.Scale(m.Scale.Vec3()))
}

// Rotate adds the given angles to the model rotation.
func (m *Model) Rotate(pitch, yaw, roll float64) {
	m.Rotation = m.Rotation.Add(math3d.V4(pitch, yaw, roll, 0))
}
