package main

import (
	"math/rand/v2"

	"github.com/charmbracelet/harmonica"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/taigrr/scanline/internal/config"
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
)

// SpinAxis turns at a steady rate. Impulses add to the velocity and a
// spring eases it back to the steady rate.
type SpinAxis struct {
	Target   float64 // Steady velocity, radians per second
	Velocity float64
	spring   harmonica.Spring
	accel    float64
}

// NewSpinAxis creates an axis turning at target. Frequency 4 with damping 1
// settles impulses quickly without overshoot.
func NewSpinAxis(fps int, target float64) SpinAxis {
	return SpinAxis{
		Target:   target,
		Velocity: target,
		spring:   harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update returns the angle turned during dt seconds and relaxes the
// velocity one spring step.
func (a *SpinAxis) Update(dt float64) float64 {
	delta := a.Velocity * dt
	a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, a.Target)
	return delta
}

// Spin drives a model's rotation.
type Spin struct {
	Pitch, Yaw, Roll SpinAxis
	fps              int
}

func NewSpin(fps int, rate math3d.Vec3) *Spin {
	return &Spin{
		Pitch: NewSpinAxis(fps, rate.X),
		Yaw:   NewSpinAxis(fps, rate.Y),
		Roll:  NewSpinAxis(fps, rate.Z),
		fps:   fps,
	}
}

// Apply advances m by dt seconds.
func (s *Spin) Apply(m *models.Model, dt float64) {
	m.Rotate(s.Pitch.Update(dt), s.Yaw.Update(dt), s.Roll.Update(dt))
}

func (s *Spin) Impulse(pitch, yaw, roll float64) {
	s.Pitch.Velocity += pitch
	s.Yaw.Velocity += yaw
	s.Roll.Velocity += roll
}

// Reset drops any impulse and returns to the steady rate.
func (s *Spin) Reset() {
	*s = *NewSpin(s.fps, math3d.V3(s.Pitch.Target, s.Yaw.Target, s.Roll.Target))
}

// Scene is the set of models being drawn and the camera looking at them.
type Scene struct {
	Mesh   *models.Mesh
	Models []*models.Model
	Spins  []*Spin
	Camera *render.Camera

	home      []math3d.Vec4 // Initial rotations for Reset
	cameraPos math3d.Vec3
	dolly     *gween.Tween
}

// NewScene places one model per config entry. Every model shares mesh.
func NewScene(cfg *config.Config, mesh *models.Mesh) *Scene {
	s := &Scene{
		Mesh:      mesh,
		Camera:    render.NewCamera(),
		cameraPos: config.Vec3(cfg.Scene.Camera.Position, math3d.Vec3{}),
	}

	for _, mc := range cfg.Scene.Models {
		m := models.NewModel(mesh)
		m.Position = config.Vec3(mc.Position, math3d.Vec3{}).Point()
		m.Scale = math3d.V4FromV3(config.Vec3(mc.Scale, math3d.V3(1, 1, 1)), 0)
		m.Rotation = math3d.V4FromV3(config.Vec3(mc.Rotation, math3d.Vec3{}), 0)
		s.Models = append(s.Models, m)
		s.home = append(s.home, m.Rotation)
		s.Spins = append(s.Spins, NewSpin(cfg.Display.FPS, config.Vec3(mc.Spin, math3d.Vec3{})))
	}

	s.Camera.Rotation = math3d.V4FromV3(config.Vec3(cfg.Scene.Camera.Rotation, math3d.Vec3{}), 0)
	s.Camera.SetPosition(s.cameraPos)
	if d := cfg.Scene.Camera.Dolly; d != 0 && cfg.Scene.Camera.DollySeconds > 0 {
		s.dolly = gween.New(float32(d), 0, float32(cfg.Scene.Camera.DollySeconds), ease.OutCubic)
		s.Camera.SetPosition(s.cameraPos.Add(math3d.V3(0, 0, -d)))
	}
	return s
}

// Update advances spins and the camera dolly by dt seconds.
func (s *Scene) Update(dt float64) {
	for i, m := range s.Models {
		s.Spins[i].Apply(m, dt)
	}

	if s.dolly != nil {
		offset, done := s.dolly.Update(float32(dt))
		s.Camera.SetPosition(s.cameraPos.Add(math3d.V3(0, 0, -float64(offset))))
		if done {
			s.dolly = nil
		}
	}
}

// Impulse pushes every model's spin.
func (s *Scene) Impulse(pitch, yaw, roll float64) {
	for _, sp := range s.Spins {
		sp.Impulse(pitch, yaw, roll)
	}
}

// RandomImpulse pushes every model in a random direction.
func (s *Scene) RandomImpulse() {
	s.Impulse(rand.Float64()*4-2, rand.Float64()*4-2, rand.Float64()*2-1)
}

// Reset restores the initial rotations.
func (s *Scene) Reset() {
	for i, m := range s.Models {
		m.Rotation = s.home[i]
		s.Spins[i].Reset()
	}
}
