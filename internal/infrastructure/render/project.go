// Package render holds the backend-independent half of the renderers:
// projecting draw commands into viewport pixels and walking their
// primitives.
package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/younwookim/scenecore/internal/domain/geom"
	"github.com/younwookim/scenecore/internal/domain/scenegraph"
)

// ScreenVertex is a projected vertex in render target pixels, y down.
type ScreenVertex struct {
	X, Y  float32
	Depth float32
	U, V  float32
	// Visible is false for vertices behind the eye.
	Visible bool
}

// Project maps every vertex of cmd through its model view projection into
// viewport pixels and appends the results to dst.
func Project(dst []ScreenVertex, cmd scenegraph.DrawCommand, viewport geom.Rect) []ScreenVertex {
	m := cmd.ModelViewProjection
	for _, v := range cmd.Vertices {
		clip := m.Mul4x1(v.Position.Vec4(1))
		sv := ScreenVertex{U: v.TexCoord[0], V: v.TexCoord[1]}
		if clip[3] > 0 {
			ndc := clip.Vec3().Mul(1 / clip[3])
			sv.X = viewport.X + (ndc[0]+1)/2*viewport.Width
			sv.Y = viewport.Y + (1-ndc[1])/2*viewport.Height
			sv.Depth = ndc[2]
			sv.Visible = true
		}
		dst = append(dst, sv)
	}
	return dst
}

// Filled reports whether cmd should be rasterized as filled triangles
// under the given fill mode.
func Filled(cmd scenegraph.DrawCommand, mode scenegraph.FillMode) bool {
	return cmd.Primitive == scenegraph.PrimitiveTriangles && !cmd.Wireframe && mode == scenegraph.FillSolid
}

// Triangles calls fn for each complete triangle of a triangle command.
// Out of range indices are skipped.
func Triangles(cmd scenegraph.DrawCommand, fn func(a, b, c int)) {
	if cmd.Primitive != scenegraph.PrimitiveTriangles {
		return
	}
	n := len(cmd.Vertices)
	for i := 0; i+2 < len(cmd.Indices); i += 3 {
		a, b, c := int(cmd.Indices[i]), int(cmd.Indices[i+1]), int(cmd.Indices[i+2])
		if a >= n || b >= n || c >= n {
			continue
		}
		fn(a, b, c)
	}
}

// Edges calls fn for each line of a line command, or for the three edges
// of each triangle of a triangle command.
func Edges(cmd scenegraph.DrawCommand, fn func(a, b int)) {
	if cmd.Primitive == scenegraph.PrimitiveTriangles {
		Triangles(cmd, func(a, b, c int) {
			fn(a, b)
			fn(b, c)
			fn(c, a)
		})
		return
	}

	n := len(cmd.Vertices)
	for i := 0; i+1 < len(cmd.Indices); i += 2 {
		a, b := int(cmd.Indices[i]), int(cmd.Indices[i+1])
		if a >= n || b >= n {
			continue
		}
		fn(a, b)
	}
}

// RGBA8 converts a [0,1] color to 8-bit channels, clamping out of range
// values.
func RGBA8(c mgl32.Vec4) (r, g, b, a uint8) {
	conv := func(v float32) uint8 {
		return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
	}
	return conv(c[0]), conv(c[1]), conv(c[2]), conv(c[3])
}
