// Package geom provides the bounding volumes, rectangles and polygon tests
// shared by the scene graph and its components.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Box is an axis-aligned bounding box in 3D.
// A box whose Min exceeds its Max on any axis is empty.
type Box struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// EmptyBox returns a box that contains nothing. Merging or inserting into
// it yields the other operand.
func EmptyBox() Box {
	return Box{
		Min: mgl32.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: mgl32.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
}

// NewBox creates a box from two corners, ordering them per axis.
func NewBox(a, b mgl32.Vec3) Box {
	return Box{
		Min: mgl32.Vec3{min(a[0], b[0]), min(a[1], b[1]), min(a[2], b[2])},
		Max: mgl32.Vec3{max(a[0], b[0]), max(a[1], b[1]), max(a[2], b[2])},
	}
}

// IsEmpty reports whether the box contains no points.
func (b Box) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Merge returns the smallest box containing both boxes.
func (b Box) Merge(other Box) Box {
	if other.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return other
	}
	return Box{
		Min: mgl32.Vec3{min(b.Min[0], other.Min[0]), min(b.Min[1], other.Min[1]), min(b.Min[2], other.Min[2])},
		Max: mgl32.Vec3{max(b.Max[0], other.Max[0]), max(b.Max[1], other.Max[1]), max(b.Max[2], other.Max[2])},
	}
}

// Insert returns the box grown to contain p.
func (b Box) Insert(p mgl32.Vec3) Box {
	return Box{
		Min: mgl32.Vec3{min(b.Min[0], p[0]), min(b.Min[1], p[1]), min(b.Min[2], p[2])},
		Max: mgl32.Vec3{max(b.Max[0], p[0]), max(b.Max[1], p[1]), max(b.Max[2], p[2])},
	}
}

// Size returns the box dimensions.
func (b Box) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the box center.
func (b Box) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// HalfExtents returns half the box dimensions.
func (b Box) HalfExtents() mgl32.Vec3 {
	return b.Size().Mul(0.5)
}

// ContainsPoint reports whether p lies inside the box, borders included.
func (b Box) ContainsPoint(p mgl32.Vec3) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] &&
		p[1] >= b.Min[1] && p[1] <= b.Max[1] &&
		p[2] >= b.Min[2] && p[2] <= b.Max[2]
}

// ContainsPoint2D tests containment on the XY plane only.
func (b Box) ContainsPoint2D(p mgl32.Vec2) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] &&
		p[1] >= b.Min[1] && p[1] <= b.Max[1]
}

// Corners2D returns the four XY corners in counter-clockwise order
// starting at Min.
func (b Box) Corners2D() [4]mgl32.Vec2 {
	return [4]mgl32.Vec2{
		{b.Min[0], b.Min[1]},
		{b.Max[0], b.Min[1]},
		{b.Max[0], b.Max[1]},
		{b.Min[0], b.Max[1]},
	}
}
