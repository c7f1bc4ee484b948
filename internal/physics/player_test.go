package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"skyroam/internal/config"
	"skyroam/internal/world"
)

// wallSet is a CollisionSource over a fixed wall list.
type wallSet []world.WallCollider

func (w wallSet) NeighborhoodWalls(x, z float64) []world.WallCollider {
	return w
}

func testCfg() config.PhysicsConfig {
	return config.Default().Physics
}

// northWall returns a wall along the x axis at z=0, 20m tall.
func northWall() world.WallCollider {
	return world.NewWallCollider(mgl32.Vec2{-10, 0}, mgl32.Vec2{10, 0}, 20, 0.5)
}

func TestStep_FloorClamp(t *testing.T) {
	cfg := testCfg()
	p := NewPlayer(cfg, mgl64.Vec3{0, 30, 0})
	p.Velocity = mgl64.Vec3{0, -5, 0}

	for i := 0; i < 300; i++ {
		p.Step(0.016, Input{}, wallSet(nil))
	}

	if p.Position.Y() != cfg.EyeHeight {
		t.Errorf("expected y to settle exactly at %f, got %f", cfg.EyeHeight, p.Position.Y())
	}
	if p.Velocity.Y() != 0 {
		t.Errorf("expected zero vertical velocity on floor, got %f", p.Velocity.Y())
	}
	if !p.OnGround {
		t.Error("expected on_ground after settling")
	}
}

func TestStep_TerminalVelocity(t *testing.T) {
	cfg := testCfg()
	p := NewPlayer(cfg, mgl64.Vec3{0, 5000, 0})

	for i := 0; i < 200; i++ {
		p.Step(0.016, Input{}, wallSet(nil))
	}

	if p.Velocity.Y() < cfg.TerminalVelocity {
		t.Errorf("vertical velocity %f fell past terminal %f", p.Velocity.Y(), cfg.TerminalVelocity)
	}
	if p.Velocity.Y() != cfg.TerminalVelocity {
		t.Errorf("expected terminal velocity %f after a long fall, got %f", cfg.TerminalVelocity, p.Velocity.Y())
	}
}

func TestStep_Jump(t *testing.T) {
	cfg := testCfg()
	p := NewPlayer(cfg, mgl64.Vec3{0, cfg.EyeHeight, 0})
	p.OnGround = true

	p.Step(0.001, Input{Jump: true}, wallSet(nil))

	if p.OnGround {
		t.Error("jump should leave the ground")
	}
	if p.Velocity.Y() <= 0 {
		t.Errorf("expected upward velocity after jump, got %f", p.Velocity.Y())
	}
}

func TestStep_InputOverridesHorizontalVelocity(t *testing.T) {
	cfg := testCfg()
	p := NewPlayer(cfg, mgl64.Vec3{0, cfg.EyeHeight, 0})
	p.OnGround = true
	p.Velocity = mgl64.Vec3{99, 0, 99} // stale velocity must not persist

	// Yaw 0: forward is +x.
	p.Step(0.016, Input{Forward: true}, wallSet(nil))

	if math.Abs(p.Velocity.X()-cfg.MoveSpeed) > 1e-9 {
		t.Errorf("expected vx=%f, got %f", cfg.MoveSpeed, p.Velocity.X())
	}
	if math.Abs(p.Velocity.Z()) > 1e-9 {
		t.Errorf("expected vz=0, got %f", p.Velocity.Z())
	}

	// Releasing all keys stops instantly.
	p.Step(0.016, Input{}, wallSet(nil))
	if p.Velocity.X() != 0 || p.Velocity.Z() != 0 {
		t.Errorf("expected instant stop, got (%f, %f)", p.Velocity.X(), p.Velocity.Z())
	}
}

func TestStep_DiagonalNotFaster(t *testing.T) {
	cfg := testCfg()
	p := NewPlayer(cfg, mgl64.Vec3{0, cfg.EyeHeight, 0})

	p.Step(0.016, Input{Forward: true, Right: true}, wallSet(nil))

	h := math.Hypot(p.Velocity.X(), p.Velocity.Z())
	if math.Abs(h-cfg.MoveSpeed) > 1e-6 {
		t.Errorf("diagonal speed %f, want %f", h, cfg.MoveSpeed)
	}
}

func TestResolve_PenetrationConverges(t *testing.T) {
	cfg := testCfg()
	walls := wallSet{northWall()}

	// Deliberately embedded: 0.1m from the wall plane, well inside the
	// 0.8m contact distance. No external forces.
	p := NewPlayer(cfg, mgl64.Vec3{0, cfg.EyeHeight, 0.1})

	resolved := p.resolveCollisions(p.Position, walls)

	dist := resolved.Z() // distance from the z=0 wall
	if dist < cfg.ContactDistance() {
		t.Errorf("penetration not resolved within pass budget: dist %f < %f",
			dist, cfg.ContactDistance())
	}
}

func TestResolve_SlideAlongWall(t *testing.T) {
	cfg := testCfg()
	walls := wallSet{northWall()}

	p := NewPlayer(cfg, mgl64.Vec3{0, cfg.EyeHeight, 0.5})
	// Moving diagonally into the wall: -z into it, +x along it.
	p.Velocity = mgl64.Vec3{5, 0, -5}

	p.resolveCollisions(p.Position, walls)

	if p.Velocity.X() != 5 {
		t.Errorf("tangential velocity should survive, got vx=%f", p.Velocity.X())
	}
	if p.Velocity.Z() < 0 {
		t.Errorf("velocity into the wall should be removed, got vz=%f", p.Velocity.Z())
	}
}

func TestResolve_AboveWallIgnored(t *testing.T) {
	cfg := testCfg()
	walls := wallSet{northWall()} // 20m tall

	p := NewPlayer(cfg, mgl64.Vec3{0, 25, 0.1})
	resolved := p.resolveCollisions(p.Position, walls)

	if resolved != p.Position {
		t.Errorf("walls below the player must not collide, moved to %v", resolved)
	}
}

func TestResolve_DegeneratePushDirection(t *testing.T) {
	cfg := testCfg()
	walls := wallSet{northWall()}

	// Exactly on the segment: push direction undefined, fixed +x
	// fallback applies instead of a NaN.
	p := NewPlayer(cfg, mgl64.Vec3{0, cfg.EyeHeight, 0})
	resolved := p.resolveCollisions(p.Position, walls)

	if math.IsNaN(resolved.X()) || math.IsNaN(resolved.Z()) {
		t.Fatal("degenerate push produced NaN")
	}
	if resolved.X() <= 0 {
		t.Errorf("expected push along +x, got %v", resolved)
	}
}

func TestStep_WalkIntoWallStops(t *testing.T) {
	cfg := testCfg()
	walls := wallSet{northWall()}

	// Walk north (-z) into the wall for two seconds.
	p := NewPlayer(cfg, mgl64.Vec3{0, cfg.EyeHeight, 5})
	for i := 0; i < 125; i++ {
		p.Step(0.016, Input{Forward: true, Yaw: -math.Pi / 2}, walls)
	}

	// The player must be held at the contact distance, not pushed through.
	if p.Position.Z() < cfg.ContactDistance()-0.01 {
		t.Errorf("player tunneled through wall: z=%f", p.Position.Z())
	}
	if p.Position.Z() > 1.5 {
		t.Errorf("player never reached the wall: z=%f", p.Position.Z())
	}
}
