package geom

import "github.com/go-gl/mathgl/mgl32"

// Plane is the half-space ax + by + cz + d >= 0, stored as (a, b, c, d).
// The normal points into the kept side.
type Plane mgl32.Vec4

// Normal returns the plane normal.
func (p Plane) Normal() mgl32.Vec3 { return mgl32.Vec3{p[0], p[1], p[2]} }

// Distance returns the signed distance of point from the plane. It is only
// a true distance when the plane is normalized.
func (p Plane) Distance(point mgl32.Vec3) float32 {
	return p.Normal().Dot(point) + p[3]
}

func (p Plane) normalize() Plane {
	l := p.Normal().Len()
	if l == 0 {
		return p
	}
	return Plane(mgl32.Vec4(p).Mul(1 / l))
}

// Frustum plane indices.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// Frustum is six inward-facing planes ordered left, right, bottom, top,
// near, far.
type Frustum struct {
	Planes [6]Plane
}

// FrustumFromMatrix extracts the clip planes of m. With m a model view
// projection matrix, the planes are in the model's local space.
// Each plane is row3 plus or minus row0..row2.
func FrustumFromMatrix(m mgl32.Mat4) Frustum {
	r0, r1, r2, r3 := m.Row(0), m.Row(1), m.Row(2), m.Row(3)

	f := Frustum{Planes: [6]Plane{
		FrustumLeft:   Plane(r3.Add(r0)),
		FrustumRight:  Plane(r3.Sub(r0)),
		FrustumBottom: Plane(r3.Add(r1)),
		FrustumTop:    Plane(r3.Sub(r1)),
		FrustumNear:   Plane(r3.Add(r2)),
		FrustumFar:    Plane(r3.Sub(r2)),
	}}
	for i := range f.Planes {
		f.Planes[i] = f.Planes[i].normalize()
	}
	return f
}

// IntersectsBox reports whether any part of b is on the inner side of all
// six planes. For each plane only the corner furthest along the normal is
// tested; if it is outside, the whole box is.
func (f Frustum) IntersectsBox(b Box) bool {
	if b.IsEmpty() {
		return false
	}
	for _, p := range f.Planes {
		corner := b.Min
		if p[0] >= 0 {
			corner[0] = b.Max[0]
		}
		if p[1] >= 0 {
			corner[1] = b.Max[1]
		}
		if p[2] >= 0 {
			corner[2] = b.Max[2]
		}
		if p.Distance(corner) < 0 {
			return false
		}
	}
	return true
}
