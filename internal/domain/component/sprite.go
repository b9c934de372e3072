// Package component provides the drawable components attached to actors.
package component

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/younwookim/scenecore/internal/domain/geom"
	"github.com/younwookim/scenecore/internal/domain/scenegraph"
)

var quadIndices = []uint16{0, 1, 2, 0, 2, 3}

// Sprite draws a textured quad. The quad spans size and is placed so that
// anchor (0..1 on each axis, from the bottom-left) sits on the actor's
// origin.
type Sprite struct {
	scenegraph.BaseComponent

	texture scenegraph.Texture
	size    mgl32.Vec2
	anchor  mgl32.Vec2
	color   mgl32.Vec4

	vertices [4]scenegraph.Vertex
}

// NewSprite creates a sprite of the given size, centered and untinted.
// texture may be nil for a flat colored quad.
func NewSprite(texture scenegraph.Texture, size mgl32.Vec2) *Sprite {
	s := &Sprite{
		BaseComponent: scenegraph.NewBaseComponent(scenegraph.KindSprite),
		texture:       texture,
		size:          size,
		anchor:        mgl32.Vec2{0.5, 0.5},
		color:         mgl32.Vec4{1, 1, 1, 1},
	}
	s.update()
	return s
}

func (s *Sprite) Texture() scenegraph.Texture { return s.texture }
func (s *Sprite) Size() mgl32.Vec2             { return s.size }
func (s *Sprite) Anchor() mgl32.Vec2           { return s.anchor }
func (s *Sprite) Color() mgl32.Vec4            { return s.color }

func (s *Sprite) SetTexture(texture scenegraph.Texture) { s.texture = texture }

// SetColor sets the RGBA tint in [0,1].
func (s *Sprite) SetColor(color mgl32.Vec4) { s.color = color }

// SetSize resizes the quad.
func (s *Sprite) SetSize(size mgl32.Vec2) {
	s.size = size
	s.update()
}

// SetAnchor moves the quad relative to the actor origin.
func (s *Sprite) SetAnchor(anchor mgl32.Vec2) {
	s.anchor = anchor
	s.update()
}

func (s *Sprite) update() {
	minX := -s.anchor[0] * s.size[0]
	minY := -s.anchor[1] * s.size[1]
	maxX := minX + s.size[0]
	maxY := minY + s.size[1]

	// Texture rows run top to bottom.
	s.vertices = [4]scenegraph.Vertex{
		{Position: mgl32.Vec3{minX, minY, 0}, TexCoord: mgl32.Vec2{0, 1}},
		{Position: mgl32.Vec3{maxX, minY, 0}, TexCoord: mgl32.Vec2{1, 1}},
		{Position: mgl32.Vec3{maxX, maxY, 0}, TexCoord: mgl32.Vec2{1, 0}},
		{Position: mgl32.Vec3{minX, maxY, 0}, TexCoord: mgl32.Vec2{0, 0}},
	}
	s.SetBoundingBox(geom.NewBox(mgl32.Vec3{minX, minY, 0}, mgl32.Vec3{maxX, maxY, 0}))
}

// Draw submits the quad. Fully transparent sprites submit nothing.
func (s *Sprite) Draw(r scenegraph.Renderer, transform mgl32.Mat4, opacity float32, renderViewProjection mgl32.Mat4, wireframe bool) {
	color := s.color
	color[3] *= opacity
	if color[3] <= 0 {
		return
	}

	r.Submit(scenegraph.DrawCommand{
		Vertices:            s.vertices[:],
		Indices:             quadIndices,
		Primitive:           scenegraph.PrimitiveTriangles,
		ModelViewProjection: renderViewProjection.Mul4(transform),
		Color:               color,
		Texture:             s.texture,
		Wireframe:           wireframe,
	})
}
