package scenegraph

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/younwookim/scenecore/internal/domain/geom"
	"github.com/younwookim/scenecore/internal/domain/ident"
)

// Kind tags the concrete type of a component for filtering.
type Kind uint8

const (
	KindCustom Kind = iota
	KindCamera
	KindSprite
	KindShape
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindCustom:
		return "Custom"
	case KindCamera:
		return "Camera"
	case KindSprite:
		return "Sprite"
	case KindShape:
		return "Shape"
	default:
		return "Unknown"
	}
}

// Component is a unit of behavior or rendering attached to one Actor.
//
// Implementations embed BaseComponent, which supplies attachment
// bookkeeping and the default box-based hit tests.
type Component interface {
	ID() string
	Kind() Kind

	// Actor returns the owning actor, or nil when detached.
	Actor() *Actor
	// Layer returns the layer the owning actor belongs to, or nil.
	Layer() *Layer

	Hidden() bool
	SetHidden(hidden bool)

	// BoundingBox returns the local-space bounds.
	BoundingBox() geom.Box
	// PointOn tests a local-space point against the component.
	PointOn(position mgl32.Vec2) bool
	// ShapeOverlaps tests a local-space convex polygon against the component.
	ShapeOverlaps(edges []mgl32.Vec2) bool

	// Draw submits draw commands for the given world transform.
	Draw(r Renderer, transform mgl32.Mat4, opacity float32, renderViewProjection mgl32.Mat4, wireframe bool)

	setActor(actor *Actor)
	setLayer(layer *Layer)
}

// BaseComponent implements the bookkeeping half of Component.
type BaseComponent struct {
	id     string
	kind   Kind
	actor  *Actor
	layer  *Layer
	hidden bool
	box    geom.Box
}

// NewBaseComponent returns a detached base with an empty bounding box.
func NewBaseComponent(kind Kind) BaseComponent {
	return BaseComponent{
		id:   ident.NewComponentID(),
		kind: kind,
		box:  geom.EmptyBox(),
	}
}

func (b *BaseComponent) ID() string       { return b.id }
func (b *BaseComponent) Kind() Kind       { return b.kind }
func (b *BaseComponent) Actor() *Actor    { return b.actor }
func (b *BaseComponent) Layer() *Layer    { return b.layer }
func (b *BaseComponent) Hidden() bool     { return b.hidden }
func (b *BaseComponent) SetHidden(h bool) { b.hidden = h }

// BoundingBox returns the box last set with SetBoundingBox.
func (b *BaseComponent) BoundingBox() geom.Box { return b.box }

// SetBoundingBox replaces the local-space bounds used for culling and
// hit testing.
func (b *BaseComponent) SetBoundingBox(box geom.Box) { b.box = box }

// PointOn reports whether position lies inside the bounding box on the XY plane.
func (b *BaseComponent) PointOn(position mgl32.Vec2) bool {
	return b.box.ContainsPoint2D(position)
}

// ShapeOverlaps runs a separating axis test between the bounding box
// outline and the given polygon.
func (b *BaseComponent) ShapeOverlaps(edges []mgl32.Vec2) bool {
	if b.box.IsEmpty() {
		return false
	}
	corners := b.box.Corners2D()
	return geom.PolygonsOverlap(corners[:], edges)
}

// Draw does nothing; drawable components override it.
func (b *BaseComponent) Draw(Renderer, mgl32.Mat4, float32, mgl32.Mat4, bool) {}

func (b *BaseComponent) setActor(actor *Actor) { b.actor = actor }
func (b *BaseComponent) setLayer(layer *Layer) { b.layer = layer }
