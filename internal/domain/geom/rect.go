package geom

import "github.com/go-gl/mathgl/mgl32"

// Rect is an axis-aligned rectangle with its origin at the minimum corner.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// UnitRect covers the whole normalized [0,1]x[0,1] space.
var UnitRect = Rect{X: 0, Y: 0, Width: 1, Height: 1}

// ContainsPoint reports whether p lies inside the rectangle, borders included.
func (r Rect) ContainsPoint(p mgl32.Vec2) bool {
	return p[0] >= r.X && p[0] <= r.X+r.Width &&
		p[1] >= r.Y && p[1] <= r.Y+r.Height
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Scale multiplies position and size by the given factors.
// Used to map a normalized rectangle into pixels.
func (r Rect) Scale(sx, sy float32) Rect {
	return Rect{X: r.X * sx, Y: r.Y * sy, Width: r.Width * sx, Height: r.Height * sy}
}

// Size returns width and height as a vector.
func (r Rect) Size() mgl32.Vec2 {
	return mgl32.Vec2{r.Width, r.Height}
}
