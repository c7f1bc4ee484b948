// Package physics moves the first-person player through the streamed
// world with gravity, wall sliding and floor contact.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"skyroam/internal/config"
	"skyroam/internal/world"
)

// Nudge added on top of the penetration depth when pushing out of a
// wall, so the very next pass doesn't re-detect the same contact.
const pushEpsilon = 0.0001

// Hard cap on sub-steps per tick; together with the dt clamp this
// bounds worst-case collision cost after a long frame hitch.
const maxSubSteps = 32

// Input is the movement intent for one tick, with the camera yaw the
// horizontal axes are projected onto.
type Input struct {
	Forward, Back bool
	Left, Right   bool
	Jump          bool
	Yaw           float64
}

// CollisionSource yields candidate wall colliders around a point.
// *world.World implements it; tests use synthetic wall sets.
type CollisionSource interface {
	NeighborhoodWalls(x, z float64) []world.WallCollider
}

// Player is the simulated first-person entity. Position is the eye
// point, held in float64 because the world spans kilometers and
// float32 jitters visibly far from the origin.
type Player struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	OnGround bool

	cfg config.PhysicsConfig
}

// NewPlayer creates a player standing at the given eye position.
func NewPlayer(cfg config.PhysicsConfig, start mgl64.Vec3) *Player {
	return &Player{Position: start, cfg: cfg}
}

// Step advances the player by dt seconds. Horizontal velocity is set
// directly from input every tick, vertical velocity integrates
// gravity. Movement happens in fixed sub-steps, each followed by
// bounded collision resolution and the floor clamp.
func (p *Player) Step(dt float64, in Input, walls CollisionSource) {
	dt = clamp(dt, 0.0001, 0.1)

	dir := p.inputDirection(in)
	p.Velocity[0] = dir.X() * p.cfg.MoveSpeed
	p.Velocity[2] = dir.Z() * p.cfg.MoveSpeed

	p.Velocity[1] -= p.cfg.Gravity * dt
	if p.Velocity[1] < p.cfg.TerminalVelocity {
		p.Velocity[1] = p.cfg.TerminalVelocity
	}

	if p.OnGround && in.Jump {
		p.Velocity[1] = p.cfg.JumpForce
		p.OnGround = false
	}

	remaining := dt
	for steps := 0; remaining > 0 && steps < maxSubSteps; steps++ {
		step := math.Min(remaining, p.cfg.StepSize)
		next := p.Position.Add(p.Velocity.Mul(step))

		next = p.resolveCollisions(next, walls)

		if next.Y() <= p.cfg.EyeHeight {
			next[1] = p.cfg.EyeHeight
			p.Velocity[1] = 0
			p.OnGround = true
		} else {
			p.OnGround = false
		}

		p.Position = next
		remaining -= step
	}
}

// inputDirection projects the pressed movement flags onto the camera
// yaw's forward/right basis, normalized so diagonals aren't faster.
func (p *Player) inputDirection(in Input) mgl64.Vec3 {
	sinYaw, cosYaw := math.Sincos(in.Yaw)
	forward := mgl64.Vec3{cosYaw, 0, sinYaw}
	right := mgl64.Vec3{-sinYaw, 0, cosYaw}

	var dir mgl64.Vec3
	if in.Forward {
		dir = dir.Add(forward)
	}
	if in.Back {
		dir = dir.Sub(forward)
	}
	if in.Right {
		dir = dir.Add(right)
	}
	if in.Left {
		dir = dir.Sub(right)
	}
	if dir.LenSqr() > 0 {
		dir = dir.Normalize()
	}
	return dir
}

// resolveCollisions runs up to MaxSteps push-out passes, each
// resolving only the closest penetrating wall. Multi-wall concave
// corners may keep a small residual penetration; the movement tuning
// assumes that approximation.
func (p *Player) resolveCollisions(next mgl64.Vec3, walls CollisionSource) mgl64.Vec3 {
	if walls == nil {
		return next
	}
	for pass := 0; pass < p.cfg.MaxSteps; pass++ {
		normal, depth, hit := p.closestPenetration(next, walls)
		if !hit {
			break
		}
		// Kill the velocity component pointing into the wall, keeping
		// the tangential part: this is what makes walls slide.
		if dot := p.Velocity.Dot(normal); dot < 0 {
			p.Velocity = p.Velocity.Sub(normal.Mul(dot))
		}
		next = next.Add(normal.Mul(depth + pushEpsilon))
	}
	return next
}

// closestPenetration finds the nearest wall the point penetrates,
// returning the push-out normal and depth.
func (p *Player) closestPenetration(pos mgl64.Vec3, walls CollisionSource) (mgl64.Vec3, float64, bool) {
	contact := p.cfg.ContactDistance()
	minDistSq := contact * contact

	var bestNormal mgl64.Vec3
	var bestDepth float64
	hit := false

	for _, wall := range walls.NeighborhoodWalls(pos.X(), pos.Z()) {
		if pos.Y() > float64(wall.Height) {
			continue
		}

		a := mgl64.Vec2{float64(wall.Start.X()), float64(wall.Start.Y())}
		b := mgl64.Vec2{float64(wall.End.X()), float64(wall.End.Y())}
		point := mgl64.Vec2{pos.X(), pos.Z()}

		closest := closestOnSegment(point, a, b)
		push := point.Sub(closest)
		distSq := push.LenSqr()
		if distSq >= minDistSq {
			continue
		}

		minDistSq = distSq
		hit = true
		if distSq > 1e-12 {
			dist := math.Sqrt(distSq)
			bestNormal = mgl64.Vec3{push.X() / dist, 0, push.Y() / dist}
			bestDepth = contact - dist
		} else {
			// Standing exactly on the segment: push direction is
			// undefined, so pick a fixed axis rather than divide by zero.
			bestNormal = mgl64.Vec3{1, 0, 0}
			bestDepth = contact
		}
	}
	return bestNormal, bestDepth, hit
}

// closestOnSegment projects p onto segment ab, clamped to the segment.
func closestOnSegment(p, a, b mgl64.Vec2) mgl64.Vec2 {
	ab := b.Sub(a)
	lenSq := ab.LenSqr()
	if lenSq == 0 {
		return a
	}
	t := clamp(p.Sub(a).Dot(ab)/lenSq, 0, 1)
	return a.Add(ab.Mul(t))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
