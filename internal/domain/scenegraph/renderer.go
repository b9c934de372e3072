package scenegraph

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/younwookim/scenecore/internal/domain/geom"
)

// FillMode selects solid or wireframe rasterization.
type FillMode uint8

const (
	FillSolid FillMode = iota
	FillWireframe
)

// String returns the string representation of the fill mode
func (m FillMode) String() string {
	switch m {
	case FillSolid:
		return "Solid"
	case FillWireframe:
		return "Wireframe"
	default:
		return "Unknown"
	}
}

// Primitive selects how DrawCommand.Indices are assembled.
type Primitive uint8

const (
	// PrimitiveTriangles reads indices in triples.
	PrimitiveTriangles Primitive = iota
	// PrimitiveLines reads indices in pairs.
	PrimitiveLines
)

// Texture is an opaque image handle understood by the active backend.
type Texture any

// Vertex is a local-space vertex with texture coordinates.
type Vertex struct {
	Position mgl32.Vec3
	TexCoord mgl32.Vec2
}

// DrawCommand is one draw submission produced by a component.
// Vertices are in the component's local space; ModelViewProjection maps
// them to clip space.
type DrawCommand struct {
	Vertices            []Vertex
	Indices             []uint16
	Primitive           Primitive
	ModelViewProjection mgl32.Mat4
	Color               mgl32.Vec4 // RGBA in [0,1], alpha already multiplied by opacity
	Texture             Texture

	// Wireframe asks for triangle outlines instead of filled triangles.
	Wireframe bool
}

// RenderTarget is an offscreen surface a camera can draw into.
type RenderTarget interface {
	Size() (width, height int)
}

// Renderer is the backend that consumes the ordered draw queue.
// Layer.Draw configures it once per camera and then submits commands in
// queue order.
type Renderer interface {
	// Size returns the default back buffer size in pixels.
	Size() (width, height int)
	// SetRenderTarget binds target; nil selects the back buffer.
	SetRenderTarget(target RenderTarget)
	SetViewport(viewport geom.Rect)
	SetDepthState(test, write bool)
	SetFillMode(mode FillMode)
	Submit(cmd DrawCommand)
}
