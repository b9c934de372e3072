package geom

import "github.com/go-gl/mathgl/mgl32"

// PolygonsOverlap tests two convex polygons for overlap with the separating
// axis theorem. Each edge normal of both polygons is a candidate axis; the
// polygons overlap when no candidate separates their projections.
// Touching polygons overlap.
func PolygonsOverlap(a, b []mgl32.Vec2) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	if len(a) == 1 && len(b) == 1 {
		return a[0] == b[0]
	}
	if separatingAxisExists(a, a, b) {
		return false
	}
	return !separatingAxisExists(b, a, b)
}

// separatingAxisExists checks the edge normals of src against both polygons.
func separatingAxisExists(src, a, b []mgl32.Vec2) bool {
	n := len(src)
	for i := 0; i < n; i++ {
		edge := src[(i+1)%n].Sub(src[i])
		axis := mgl32.Vec2{edge[1], -edge[0]}
		if axis[0] == 0 && axis[1] == 0 {
			continue
		}
		minA, maxA := project(a, axis)
		minB, maxB := project(b, axis)
		if maxA < minB || maxB < minA {
			return true
		}
	}
	return false
}

func project(points []mgl32.Vec2, axis mgl32.Vec2) (lo, hi float32) {
	lo = points[0].Dot(axis)
	hi = lo
	for _, p := range points[1:] {
		d := p.Dot(axis)
		lo = min(lo, d)
		hi = max(hi, d)
	}
	return lo, hi
}
