package scenegraph

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/younwookim/scenecore/internal/domain/geom"
)

// recordingRenderer records every call made by Layer.Draw.
type recordingRenderer struct {
	width, height int

	targets   []RenderTarget
	viewports []geom.Rect
	depth     [][2]bool
	fills     []FillMode
	commands  []DrawCommand
}

func newRecordingRenderer(width, height int) *recordingRenderer {
	return &recordingRenderer{width: width, height: height}
}

func (r *recordingRenderer) Size() (int, int) { return r.width, r.height }

func (r *recordingRenderer) SetRenderTarget(target RenderTarget) {
	r.targets = append(r.targets, target)
}

func (r *recordingRenderer) SetViewport(viewport geom.Rect) {
	r.viewports = append(r.viewports, viewport)
}

func (r *recordingRenderer) SetDepthState(test, write bool) {
	r.depth = append(r.depth, [2]bool{test, write})
}

func (r *recordingRenderer) SetFillMode(mode FillMode) {
	r.fills = append(r.fills, mode)
}

func (r *recordingRenderer) Submit(cmd DrawCommand) {
	r.commands = append(r.commands, cmd)
}

type fixedTarget struct{ width, height int }

func (t fixedTarget) Size() (int, int) { return t.width, t.height }

// boxComponent is a drawable component with a fixed bounding box.
type boxComponent struct {
	BaseComponent

	draws     int
	opacities []float32
}

func newBoxComponent(minX, minY, maxX, maxY float32) *boxComponent {
	c := &boxComponent{BaseComponent: NewBaseComponent(KindShape)}
	c.SetBoundingBox(geom.NewBox(mgl32.Vec3{minX, minY, 0}, mgl32.Vec3{maxX, maxY, 0}))
	return c
}

func (c *boxComponent) Draw(r Renderer, transform mgl32.Mat4, opacity float32, viewProjection mgl32.Mat4, wireframe bool) {
	c.draws++
	c.opacities = append(c.opacities, opacity)
	r.Submit(DrawCommand{
		ModelViewProjection: viewProjection.Mul4(transform),
		Color:               mgl32.Vec4{1, 1, 1, opacity},
		Wireframe:           wireframe,
	})
}

// boxActor returns an actor holding a box component centered on its origin.
func boxActor(halfWidth, halfHeight float32) *Actor {
	a := NewActor()
	a.AddComponent(newBoxComponent(-halfWidth, -halfHeight, halfWidth, halfHeight))
	return a
}

// newOrthoLayer returns a layer with one orthographic camera at the origin,
// content size equal to the render size.
func newOrthoLayer(width, height int) (*Layer, *Camera, *recordingRenderer) {
	r := newRecordingRenderer(width, height)
	l := NewLayer("main", r)
	cam := NewOrthographicCamera(mgl32.Vec2{}, ScaleNone)
	camActor := NewActor()
	camActor.AddComponent(cam)
	l.AddChild(camActor)
	return l, cam, r
}

func queued(q *DrawQueue, a *Actor) bool {
	for _, x := range q.Actors() {
		if x == a {
			return true
		}
	}
	return false
}
