package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

func TestDirectionFollowsYaw(t *testing.T) {
	c := New(45, 16.0/9.0)

	d := c.Direction()
	if math.Abs(d.X()-1) > 1e-9 || math.Abs(d.Y()) > 1e-9 || math.Abs(d.Z()) > 1e-9 {
		t.Errorf("zero yaw direction = %v, want +x", d)
	}

	c.Yaw = math.Pi / 2
	d = c.Direction()
	if math.Abs(d.Z()-1) > 1e-9 {
		t.Errorf("quarter-turn direction = %v, want +z", d)
	}
}

func TestPitchClamp(t *testing.T) {
	c := New(45, 1)
	c.HandleMouse(0, -10000)
	if c.Pitch != maxPitch {
		t.Errorf("pitch = %v after dragging up, want clamp at %v", c.Pitch, maxPitch)
	}
	c.HandleMouse(0, 10000)
	c.HandleMouse(0, 10000)
	if c.Pitch != -maxPitch {
		t.Errorf("pitch = %v after dragging down, want clamp at %v", c.Pitch, -maxPitch)
	}
}

func TestDirectionIsUnit(t *testing.T) {
	c := New(45, 1)
	c.Yaw = 1.3
	c.Pitch = -0.7
	if l := c.Direction().Len(); math.Abs(l-1) > 1e-9 {
		t.Errorf("direction length = %v, want 1", l)
	}
}

func TestFrustumCullsBehindCamera(t *testing.T) {
	c := New(45, 16.0/9.0)
	c.Position = mgl64.Vec3{0, 1.8, 0}
	// Looking toward +x.
	f := NewFrustum(c.ViewProjection())

	ahead := f.IntersectsAABB(mgl32.Vec3{50, 0, -10}, mgl32.Vec3{70, 30, 10})
	if !ahead {
		t.Error("box ahead of the camera was culled")
	}

	behind := f.IntersectsAABB(mgl32.Vec3{-70, 0, -10}, mgl32.Vec3{-50, 30, 10})
	if behind {
		t.Error("box behind the camera survived culling")
	}
}

func TestFrustumKeepsStraddlingBox(t *testing.T) {
	c := New(45, 16.0/9.0)
	c.Position = mgl64.Vec3{0, 1.8, 0}
	f := NewFrustum(c.ViewProjection())

	// The box surrounds the camera, so some corner is inside.
	if !f.IntersectsAABB(mgl32.Vec3{-100, -10, -100}, mgl32.Vec3{100, 100, 100}) {
		t.Error("box containing the camera was culled")
	}
}

func TestFrustumOffAxisCull(t *testing.T) {
	c := New(45, 16.0/9.0)
	c.Position = mgl64.Vec3{0, 1.8, 0}
	f := NewFrustum(c.ViewProjection())

	// Far off to the side, outside even a wide horizontal fov.
	if f.IntersectsAABB(mgl32.Vec3{10, 0, 500}, mgl32.Vec3{20, 30, 520}) {
		t.Error("box far off-axis survived culling")
	}
}

func TestDegenerateMatrixCullsEverything(t *testing.T) {
	f := NewFrustum(mgl32.Mat4{})
	if f.IntersectsAABB(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}) {
		t.Error("zero view-projection matrix must reject every box")
	}
}
