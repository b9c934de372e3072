package component

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/younwookim/scenecore/internal/domain/geom"
	"github.com/younwookim/scenecore/internal/domain/scenegraph"
)

// Shape draws a convex polygon, filled or as an outline. Hit tests use the
// polygon itself rather than its bounding box.
type Shape struct {
	scenegraph.BaseComponent

	points []mgl32.Vec2
	color  mgl32.Vec4
	filled bool

	vertices []scenegraph.Vertex
	indices  []uint16
	outline  []uint16
}

// NewPolygon creates a shape from the vertices of a convex polygon in
// local space, in either winding order.
func NewPolygon(points []mgl32.Vec2, color mgl32.Vec4, filled bool) *Shape {
	s := &Shape{
		BaseComponent: scenegraph.NewBaseComponent(scenegraph.KindShape),
		color:         color,
		filled:        filled,
	}
	s.SetPoints(points)
	return s
}

// NewRectangle creates a rectangle centered on the actor origin.
func NewRectangle(size mgl32.Vec2, color mgl32.Vec4, filled bool) *Shape {
	hw, hh := size[0]/2, size[1]/2
	return NewPolygon([]mgl32.Vec2{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}, color, filled)
}

func (s *Shape) Points() []mgl32.Vec2 { return s.points }
func (s *Shape) Color() mgl32.Vec4    { return s.color }
func (s *Shape) Filled() bool         { return s.filled }

func (s *Shape) SetColor(color mgl32.Vec4) { s.color = color }
func (s *Shape) SetFilled(filled bool)     { s.filled = filled }

// SetPoints replaces the polygon and rebuilds its geometry.
func (s *Shape) SetPoints(points []mgl32.Vec2) {
	s.points = append(s.points[:0], points...)
	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]
	s.outline = s.outline[:0]

	box := geom.EmptyBox()
	for _, p := range s.points {
		v := mgl32.Vec3{p[0], p[1], 0}
		box = box.Insert(v)
		s.vertices = append(s.vertices, scenegraph.Vertex{Position: v})
	}
	s.SetBoundingBox(box)

	n := len(s.points)
	for i := 1; i+1 < n; i++ {
		s.indices = append(s.indices, 0, uint16(i), uint16(i+1))
	}
	for i := 0; i < n && n > 1; i++ {
		s.outline = append(s.outline, uint16(i), uint16((i+1)%n))
	}
}

// PointOn reports whether position lies inside the polygon.
func (s *Shape) PointOn(position mgl32.Vec2) bool {
	return geom.PolygonsOverlap(s.points, []mgl32.Vec2{position})
}

// ShapeOverlaps reports whether the polygon overlaps edges.
func (s *Shape) ShapeOverlaps(edges []mgl32.Vec2) bool {
	return geom.PolygonsOverlap(s.points, edges)
}

// Draw submits a triangle fan when filled, a closed line loop otherwise.
func (s *Shape) Draw(r scenegraph.Renderer, transform mgl32.Mat4, opacity float32, renderViewProjection mgl32.Mat4, wireframe bool) {
	color := s.color
	color[3] *= opacity
	if color[3] <= 0 || len(s.points) < 2 {
		return
	}

	cmd := scenegraph.DrawCommand{
		Vertices:            s.vertices,
		ModelViewProjection: renderViewProjection.Mul4(transform),
		Color:               color,
		Wireframe:           wireframe,
	}
	if s.filled && len(s.indices) > 0 {
		cmd.Indices = s.indices
		cmd.Primitive = scenegraph.PrimitiveTriangles
	} else {
		cmd.Indices = s.outline
		cmd.Primitive = scenegraph.PrimitiveLines
	}
	r.Submit(cmd)
}
