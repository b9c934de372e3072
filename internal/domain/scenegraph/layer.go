package scenegraph

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/younwookim/scenecore/internal/domain/ident"
)

// Layer is the root container of an actor tree. Every frame it builds one
// draw queue per camera and submits it to the renderer.
type Layer struct {
	Container

	id       string
	name     string
	order    int32
	renderer Renderer
	cameras  []*Camera
	scene    *Scene

	framesDrawn uint64

	// OnQueueBuilt is called after a camera's queue is built and before it
	// is submitted.
	OnQueueBuilt func(camera *Camera, queue *DrawQueue)
}

// NewLayer creates an empty layer drawing into renderer.
func NewLayer(name string, renderer Renderer) *Layer {
	l := &Layer{
		id:       ident.NewLayerID(),
		name:     name,
		renderer: renderer,
	}
	l.Container.layer = l
	return l
}

func (l *Layer) ID() string   { return l.id }
func (l *Layer) Name() string { return l.name }

// Renderer returns the backend the layer draws into.
func (l *Layer) Renderer() Renderer { return l.renderer }

// Order returns the layer's position among its scene's layers.
func (l *Layer) Order() int32 { return l.order }

// SetOrder changes the draw position inside the scene. Lower orders are
// drawn first.
func (l *Layer) SetOrder(order int32) {
	l.order = order
	if l.scene != nil {
		l.scene.sortLayers()
	}
}

// Scene returns the scene the layer belongs to, or nil.
func (l *Layer) Scene() *Scene { return l.scene }

// Cameras returns the registered cameras in registration order.
func (l *Layer) Cameras() []*Camera { return l.cameras }

// FramesDrawn returns the number of completed Draw calls.
func (l *Layer) FramesDrawn() uint64 { return l.framesDrawn }

func (l *Layer) addCamera(c *Camera) {
	if slices.Contains(l.cameras, c) {
		return
	}
	l.cameras = append(l.cameras, c)
}

func (l *Layer) removeCamera(c *Camera) {
	if i := slices.Index(l.cameras, c); i >= 0 {
		l.cameras = slices.Delete(l.cameras, i, i+1)
	}
}

// Draw renders the layer once per camera, in registration order.
func (l *Layer) Draw() {
	if l.renderer == nil {
		Logger().Warn("layer has no renderer", "layer", l.name)
		return
	}

	first := l.framesDrawn == 0
	for i, camera := range l.cameras {
		camera.syncRenderSize()

		queue := &camera.queue
		queue.Reset()
		for _, root := range l.children {
			root.Visit(queue, mgl32.Ident4(), first && i == 0, camera, 0, false)
		}
		if l.OnQueueBuilt != nil {
			l.OnQueueBuilt(camera, queue)
		}

		l.renderer.SetRenderTarget(camera.renderTarget)
		l.renderer.SetViewport(camera.renderViewport)
		l.renderer.SetDepthState(camera.depthTest, camera.depthWrite)
		l.renderer.SetFillMode(FillSolid)
		for _, a := range queue.actors {
			a.Draw(l.renderer, camera, false)
		}

		if camera.wireframe {
			l.renderer.SetFillMode(FillWireframe)
			for _, a := range queue.actors {
				a.Draw(l.renderer, camera, true)
			}
			l.renderer.SetFillMode(FillSolid)
		}
	}
	l.framesDrawn++
}

// PickActors returns the actors under a normalized render target position,
// ascending by world order, using the last registered camera whose
// viewport contains the position and yields a hit.
func (l *Layer) PickActors(position mgl32.Vec2) []PickResult {
	for i := len(l.cameras) - 1; i >= 0; i-- {
		camera := l.cameras[i]
		if !camera.viewport.ContainsPoint(position) {
			continue
		}
		world := camera.ConvertNormalizedToWorld(position)
		if results := l.FindActors(world.Vec2()); len(results) > 0 {
			return results
		}
	}
	return nil
}

// PickActor returns the topmost actor under a normalized position: the
// hit with the highest world order. Among equal orders the first found
// wins, which is the child added last.
func (l *Layer) PickActor(position mgl32.Vec2) (PickResult, bool) {
	results := l.PickActors(position)
	if len(results) == 0 {
		return PickResult{}, false
	}
	return topmost(results), true
}

func topmost(results []PickResult) PickResult {
	i := len(results) - 1
	for i > 0 && results[i-1].WorldOrder == results[i].WorldOrder {
		i--
	}
	return results[i]
}

// PickActorsByShape returns the actors overlapping a polygon given in
// normalized render target coordinates.
func (l *Layer) PickActorsByShape(polygon []mgl32.Vec2) []*Actor {
	for i := len(l.cameras) - 1; i >= 0; i-- {
		camera := l.cameras[i]
		edges := make([]mgl32.Vec2, len(polygon))
		for j, p := range polygon {
			edges[j] = camera.ConvertNormalizedToWorld(p).Vec2()
		}
		if actors := l.FindActorsByShape(edges); len(actors) > 0 {
			return actors
		}
	}
	return nil
}

// Enter activates the layer's actors, firing their OnEnter hooks.
func (l *Layer) Enter() {
	if l.entered {
		return
	}
	l.entered = true
	for _, a := range slices.Clone(l.children) {
		enterTree(a)
	}
}

// Leave deactivates the layer's actors, firing their OnLeave hooks.
func (l *Layer) Leave() {
	if !l.entered {
		return
	}
	l.entered = false
	for _, a := range slices.Clone(l.children) {
		leaveTree(a)
	}
}
