package render

import (
	"github.com/taigrr/scanline/pkg/math3d"
)

// Camera represents the eye the scene is viewed from. It looks down +Z of
// its own space and never scales the world.
type Camera struct {
	// Position in world space
	Position math3d.Vec4

	// Euler angles in radians: X is pitch, Y is yaw, Z is roll. W is unused.
	Rotation math3d.Vec4
}

// NewCamera creates a camera at the origin with no rotation.
func NewCamera() *Camera {
	return &Camera{Position: math3d.P4(0, 0, 0)}
}

// Transform returns the world-to-camera matrix: the inverse rotation applied
// after moving the world opposite to the camera position.
func (c *Camera) Transform() math3d.Mat4 {
	rot := math3d.RotateEuler(c.Rotation.Negate())
	trans := math3d.Translate(c.Position.Vec3().Negate())
	return rot.Mul(trans)
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos.Point()
}

// Move translates the camera in world space.
func (c *Camera) Move(delta math3d.Vec3) {
	c.Position = c.Position.Add(math3d.V4FromV3(delta, 0))
}

// Rotate adds to the camera rotation (pitch, yaw, roll in radians).
func (c *Camera) Rotate(deltaPitch, deltaYaw, deltaRoll float64) {
	c.Rotation.X += deltaPitch
	c.Rotation.Y += deltaYaw
	c.Rotation.Z += deltaRoll
}
