package scenegraph

import (
	"slices"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Container holds an ordered list of child actors. Both Actor and Layer
// embed it.
//
// A child is either owned (destroyed together with its parent) or merely
// referenced (orphaned when the parent is destroyed). The hierarchy must
// stay acyclic; re-parenting always detaches from the previous parent.
type Container struct {
	children []*Actor
	owned    map[*Actor]struct{}
	layer    *Layer
	entered  bool

	// self is the embedding actor, nil for layers.
	self *Actor
}

// Children returns the child actors in insertion order.
// The returned slice must not be modified.
func (c *Container) Children() []*Actor {
	return c.children
}

// Layer returns the layer this container belongs to.
func (c *Container) Layer() *Layer {
	return c.layer
}

// Entered reports whether the container is part of an active scene.
func (c *Container) Entered() bool {
	return c.entered
}

// AddChild attaches a referenced child. Adding a child that is already
// attached here is a no-op; attached elsewhere, it moves.
func (c *Container) AddChild(actor *Actor) {
	c.addChild(actor, false)
}

// AddOwnedChild attaches a child whose lifetime is tied to this container.
func (c *Container) AddOwnedChild(actor *Actor) {
	c.addChild(actor, true)
}

func (c *Container) addChild(actor *Actor, owned bool) {
	if actor == nil {
		Logger().Warn("AddChild called with nil actor")
		return
	}
	if actor == c.self {
		Logger().Warn("actor cannot be its own child", "actor", actor.id)
		return
	}

	if actor.parent == c {
		if owned {
			c.markOwned(actor)
		}
		return
	}
	if actor.parent != nil {
		actor.parent.RemoveChild(actor)
	}

	actor.parent = c
	actor.resetParentTransform()
	actor.setLayer(c.layer)
	c.children = append(c.children, actor)
	if owned {
		c.markOwned(actor)
	}

	if c.entered {
		enterTree(actor)
	}
}

func (c *Container) markOwned(actor *Actor) {
	if c.owned == nil {
		c.owned = make(map[*Actor]struct{})
	}
	c.owned[actor] = struct{}{}
}

// Owns reports whether actor is an owned child of this container.
func (c *Container) Owns(actor *Actor) bool {
	_, ok := c.owned[actor]
	return ok
}

// RemoveChild detaches actor. It returns false when actor is not a child.
func (c *Container) RemoveChild(actor *Actor) bool {
	if actor == nil {
		return false
	}
	i := slices.Index(c.children, actor)
	if i < 0 {
		return false
	}

	if c.entered {
		leaveTree(actor)
	}
	actor.parent = nil
	actor.resetParentTransform()
	actor.setLayer(nil)
	c.children = slices.Delete(c.children, i, i+1)
	delete(c.owned, actor)
	return true
}

// RemoveAllChildren detaches every child.
func (c *Container) RemoveAllChildren() {
	for len(c.children) > 0 {
		c.RemoveChild(c.children[len(c.children)-1])
	}
}

// HasChild reports whether actor is a direct child, or any descendant
// when recursive is set.
func (c *Container) HasChild(actor *Actor, recursive bool) bool {
	if actor == nil {
		return false
	}
	if !recursive {
		return actor.parent == c
	}
	for p := actor.parent; p != nil; {
		if p == c {
			return true
		}
		if p.self == nil {
			return false
		}
		p = p.self.parent
	}
	return false
}

// PickResult is one actor hit by a point query.
type PickResult struct {
	Actor *Actor
	// Local is the query point in the actor's local space.
	Local      mgl32.Vec3
	WorldOrder int32
}

type pickFrame struct {
	container *Container
	order     int32
}

// FindActors returns every visible, pickable descendant whose components
// contain the world-space position, sorted ascending by world order.
// Among equal orders, actors found first stay first; children are searched
// from the last added to the first.
func (c *Container) FindActors(position mgl32.Vec2) []PickResult {
	var results []PickResult
	point := mgl32.Vec3{position[0], position[1], 0}

	c.walkPickable(func(actor *Actor, order int32) {
		if !actor.PointOn(position) {
			return
		}
		i := sort.Search(len(results), func(i int) bool { return results[i].WorldOrder > order })
		results = slices.Insert(results, i, PickResult{
			Actor:      actor,
			Local:      actor.ConvertWorldToLocal(point),
			WorldOrder: order,
		})
	})
	return results
}

// FindActorsByShape returns every visible, pickable descendant overlapping
// the world-space convex polygon, sorted ascending by world order.
func (c *Container) FindActorsByShape(edges []mgl32.Vec2) []*Actor {
	var actors []*Actor
	var orders []int32

	c.walkPickable(func(actor *Actor, order int32) {
		if !actor.ShapeOverlaps(edges) {
			return
		}
		i := sort.Search(len(orders), func(i int) bool { return orders[i] > order })
		actors = slices.Insert(actors, i, actor)
		orders = slices.Insert(orders, i, order)
	})
	return actors
}

// walkPickable visits non-hidden descendants with an explicit stack,
// calling test for the pickable ones. Hidden actors prune their subtree.
func (c *Container) walkPickable(test func(actor *Actor, order int32)) {
	base := int32(0)
	if c.self != nil {
		base = c.self.computedWorldOrder()
	}
	stack := []pickFrame{{container: c, order: base}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		children := f.container.children
		for i := len(children) - 1; i >= 0; i-- {
			actor := children[i]
			if actor.hidden {
				continue
			}
			order := f.order + actor.order
			if actor.pickable {
				test(actor, order)
			}
			stack = append(stack, pickFrame{container: &actor.Container, order: order})
		}
	}
}

// enterTree marks root and its descendants active, firing OnEnter hooks
// top-down.
func enterTree(root *Actor) {
	stack := []*Actor{root}
	for len(stack) > 0 {
		a := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		a.entered = true
		if a.OnEnter != nil {
			a.OnEnter(a)
		}
		for i := len(a.children) - 1; i >= 0; i-- {
			stack = append(stack, a.children[i])
		}
	}
}

// leaveTree is the counterpart of enterTree.
func leaveTree(root *Actor) {
	stack := []*Actor{root}
	for len(stack) > 0 {
		a := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		a.entered = false
		if a.OnLeave != nil {
			a.OnLeave(a)
		}
		for i := len(a.children) - 1; i >= 0; i-- {
			stack = append(stack, a.children[i])
		}
	}
}
