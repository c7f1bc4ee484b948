// Package camera provides the first-person camera and view-frustum
// culling math.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Pitch stays just short of straight up/down so the view basis never
// degenerates.
const maxPitch = 1.5

// Camera is a yaw/pitch first-person camera. Position is kept in
// float64 to match the physics integrator; matrices are produced in
// float32 for the GPU.
type Camera struct {
	Position mgl64.Vec3
	Yaw      float64 // radians, 0 looks toward +x
	Pitch    float64 // radians, positive looks up

	Fov         float32 // vertical field of view, degrees
	Aspect      float32
	Near        float32
	Far         float32
	Sensitivity float64
}

// New creates a camera with the given field of view and aspect ratio.
func New(fov float32, aspect float32) *Camera {
	return &Camera{
		Fov:         fov,
		Aspect:      aspect,
		Near:        0.1,
		Far:         10000.0,
		Sensitivity: 0.002,
	}
}

// SetAspect updates the aspect ratio after a window resize.
func (c *Camera) SetAspect(width, height int) {
	if height > 0 {
		c.Aspect = float32(width) / float32(height)
	}
}

// HandleMouse applies a relative mouse motion to yaw and pitch.
func (c *Camera) HandleMouse(dx, dy float64) {
	c.Yaw += dx * c.Sensitivity
	c.Pitch -= dy * c.Sensitivity
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}
}

// Direction returns the unit view direction for the current yaw and
// pitch.
func (c *Camera) Direction() mgl64.Vec3 {
	cosPitch := gomath.Cos(c.Pitch)
	return mgl64.Vec3{
		gomath.Cos(c.Yaw) * cosPitch,
		gomath.Sin(c.Pitch),
		gomath.Sin(c.Yaw) * cosPitch,
	}
}

// View returns the view matrix.
func (c *Camera) View() mgl32.Mat4 {
	eye := mgl32.Vec3{
		float32(c.Position.X()),
		float32(c.Position.Y()),
		float32(c.Position.Z()),
	}
	dir := c.Direction()
	center := eye.Add(mgl32.Vec3{float32(dir.X()), float32(dir.Y()), float32(dir.Z())})
	return mgl32.LookAtV(eye, center, mgl32.Vec3{0, 1, 0})
}

// Projection returns the perspective projection matrix.
func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Fov), c.Aspect, c.Near, c.Far)
}

// ViewProjection returns the combined matrix used for rendering and
// frustum extraction.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}
