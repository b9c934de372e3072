package scenegraph

import (
	"slices"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// DrawQueue is the per-camera list of visible actors, sorted by descending
// world order. Actors with equal world order keep traversal order.
type DrawQueue struct {
	actors []*Actor
	frames []visitFrame
}

// Len returns the number of queued actors.
func (q *DrawQueue) Len() int { return len(q.actors) }

// Actors returns the queued actors in draw order.
// The returned slice must not be modified.
func (q *DrawQueue) Actors() []*Actor { return q.actors }

// Reset empties the queue, keeping its storage.
func (q *DrawQueue) Reset() {
	clear(q.actors)
	q.actors = q.actors[:0]
}

func (q *DrawQueue) insert(a *Actor) {
	i := sort.Search(len(q.actors), func(i int) bool {
		return q.actors[i].worldOrder < a.worldOrder
	})
	q.actors = slices.Insert(q.actors, i, a)
}

type visitFrame struct {
	actor           *Actor
	parentTransform mgl32.Mat4
	parentDirty     bool
	parentOrder     int32
	parentHidden    bool
	parentOpacity   float32
}

// Visit walks a and its descendants depth first, refreshing world
// transforms, world order, world visibility and accumulated opacity, and
// inserting every visible actor that passes the camera's culling test into
// queue.
//
// parentTransformDirty forces a to adopt parentTransform. Below a, a child
// adopts its parent's transform only when the parent recomputed it.
// Hidden subtrees are still walked so their transforms stay current, but
// nothing in them is queued.
func (a *Actor) Visit(queue *DrawQueue, parentTransform mgl32.Mat4, parentTransformDirty bool, camera *Camera, parentOrder int32, parentHidden bool) {
	stack := append(queue.frames[:0], visitFrame{
		actor:           a,
		parentTransform: parentTransform,
		parentDirty:     parentTransformDirty,
		parentOrder:     parentOrder,
		parentHidden:    parentHidden,
		parentOpacity:   1,
	})

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cur := f.actor

		cur.worldOrder = f.parentOrder + cur.order
		cur.worldHidden = f.parentHidden || cur.hidden
		cur.worldOpacity = f.parentOpacity * cur.opacity

		if f.parentDirty {
			cur.updateTransform(f.parentTransform)
		} else if p := cur.ParentActor(); p != nil && cur.parentVersion != p.transformVersion {
			// Attached since the parent last recomputed.
			cur.updateTransform(p.transform)
		}
		transform := cur.currentTransform()

		if !cur.worldHidden && cur.visible(camera, transform) {
			queue.insert(cur)
		}

		childrenDirty := cur.updateChildrenTransform
		cur.updateChildrenTransform = false
		for i := len(cur.children) - 1; i >= 0; i-- {
			stack = append(stack, visitFrame{
				actor:           cur.children[i],
				parentTransform: transform,
				parentDirty:     childrenDirty,
				parentOrder:     cur.worldOrder,
				parentHidden:    cur.worldHidden,
				parentOpacity:   cur.worldOpacity,
			})
		}
	}

	clear(stack)
	queue.frames = stack[:0]
}

func (a *Actor) visible(camera *Camera, transform mgl32.Mat4) bool {
	if a.cullDisabled {
		return true
	}
	box := a.BoundingBox()
	if box.IsEmpty() {
		return false
	}
	return camera == nil || camera.CheckVisibility(transform, box)
}
