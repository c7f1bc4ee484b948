package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// plane is ax+by+cz+d >= 0 for points on the visible side.
type plane struct {
	normal mgl32.Vec3
	d      float32
	ok     bool // false when the extracted normal had no length
}

// Frustum holds the six clip planes of a view-projection matrix,
// extracted row-wise (Gribb/Hartmann) and normalized.
type Frustum struct {
	planes [6]plane
}

// NewFrustum extracts the frustum planes from a view-projection
// matrix.
func NewFrustum(viewProj mgl32.Mat4) Frustum {
	r0 := viewProj.Row(0)
	r1 := viewProj.Row(1)
	r2 := viewProj.Row(2)
	r3 := viewProj.Row(3)

	var f Frustum
	f.planes[0] = newPlane(r3.Add(r0)) // left
	f.planes[1] = newPlane(r3.Sub(r0)) // right
	f.planes[2] = newPlane(r3.Add(r1)) // bottom
	f.planes[3] = newPlane(r3.Sub(r1)) // top
	f.planes[4] = newPlane(r3.Add(r2)) // near
	f.planes[5] = newPlane(r3.Sub(r2)) // far
	return f
}

func newPlane(v mgl32.Vec4) plane {
	n := mgl32.Vec3{v.X(), v.Y(), v.Z()}
	length := float32(gomath.Sqrt(float64(n.X()*n.X() + n.Y()*n.Y() + n.Z()*n.Z())))
	if length == 0 {
		return plane{}
	}
	return plane{
		normal: n.Mul(1 / length),
		d:      v.W() / length,
		ok:     true,
	}
}

// IntersectsAABB reports whether the box touches the frustum, using
// the positive-vertex test: per plane, only the corner most aligned
// with the plane normal is checked. A degenerate plane culls
// everything.
func (f Frustum) IntersectsAABB(min, max mgl32.Vec3) bool {
	for _, p := range f.planes {
		if !p.ok {
			return false
		}
		positive := mgl32.Vec3{
			pick(p.normal.X(), min.X(), max.X()),
			pick(p.normal.Y(), min.Y(), max.Y()),
			pick(p.normal.Z(), min.Z(), max.Z()),
		}
		if p.normal.Dot(positive)+p.d < 0 {
			return false
		}
	}
	return true
}

func pick(n, lo, hi float32) float32 {
	if n >= 0 {
		return hi
	}
	return lo
}
