package scenegraph

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/younwookim/scenecore/internal/domain/geom"
	"github.com/younwookim/scenecore/internal/domain/ident"
)

// Actor is a positioned node in the scene hierarchy. It owns a transform,
// a set of components and a set of child actors.
//
// Local, world and inverse world transforms are cached behind independent
// dirty flags and recomputed on first read. Transform mutators are the only
// way to invalidate the cache.
type Actor struct {
	Container

	id         string
	name       string
	parent     *Container
	components []Component

	position     mgl32.Vec3
	rotation     mgl32.Quat
	scale        mgl32.Vec3
	flipX        bool
	flipY        bool
	opacity      float32
	order        int32
	pickable     bool
	cullDisabled bool
	hidden       bool

	// Results of the last traversal.
	worldOrder   int32
	worldHidden  bool
	worldOpacity float32

	parentTransform  mgl32.Mat4
	localTransform   mgl32.Mat4
	transform        mgl32.Mat4
	inverseTransform mgl32.Mat4

	localTransformDirty     bool
	transformDirty          bool
	inverseTransformDirty   bool
	updateChildrenTransform bool

	// transformVersion increments on every world transform recomputation.
	// Children remember the parent version they were computed from.
	transformVersion uint64
	parentVersion    uint64

	stats transformStats

	// OnEnter and OnLeave fire when the actor joins or leaves an active scene.
	OnEnter func(a *Actor)
	OnLeave func(a *Actor)
}

// transformStats counts matrix recomputations.
type transformStats struct {
	local   int
	world   int
	inverse int
}

// NewActor creates a detached actor with an identity transform.
func NewActor() *Actor {
	a := &Actor{
		id:                    ident.NewActorID(),
		rotation:              mgl32.QuatIdent(),
		scale:                 mgl32.Vec3{1, 1, 1},
		opacity:               1,
		pickable:              true,
		worldOpacity:          1,
		parentTransform:       mgl32.Ident4(),
		localTransform:        mgl32.Ident4(),
		transform:             mgl32.Ident4(),
		inverseTransform:      mgl32.Ident4(),
		localTransformDirty:   true,
		transformDirty:        true,
		inverseTransformDirty: true,
	}
	a.self = a
	return a
}

// ID returns the actor's unique identifier.
func (a *Actor) ID() string { return a.id }

// Name returns the caller-assigned name, empty by default.
func (a *Actor) Name() string { return a.name }

func (a *Actor) SetName(name string) { a.name = name }

// Parent returns the container holding this actor, or nil.
func (a *Actor) Parent() *Container { return a.parent }

// ParentActor returns the parent when it is an actor, nil for roots.
func (a *Actor) ParentActor() *Actor {
	if a.parent == nil {
		return nil
	}
	return a.parent.self
}

// RemoveFromParent detaches the actor from its parent, if any.
func (a *Actor) RemoveFromParent() bool {
	if a.parent == nil {
		return false
	}
	return a.parent.RemoveChild(a)
}

// Destroy detaches the actor from its parent and from its components,
// destroys owned children and orphans referenced ones.
// Components are detached, not destroyed.
func (a *Actor) Destroy() {
	a.RemoveFromParent()

	stack := []*Actor{a}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		cur.RemoveAllComponents()
		for _, child := range slices.Clone(cur.children) {
			owned := cur.Owns(child)
			cur.RemoveChild(child)
			if owned {
				stack = append(stack, child)
			}
		}
	}
}

// --- transform mutators ---

func (a *Actor) invalidate() {
	a.localTransformDirty = true
	a.transformDirty = true
	a.inverseTransformDirty = true
}

// Position returns the local position.
func (a *Actor) Position() mgl32.Vec3 { return a.position }

// SetPosition sets the local position.
func (a *Actor) SetPosition(position mgl32.Vec3) {
	a.position = position
	a.invalidate()
}

// Rotation returns the local rotation.
func (a *Actor) Rotation() mgl32.Quat { return a.rotation }

// SetRotation sets the local rotation. The quaternion is normalized.
func (a *Actor) SetRotation(rotation mgl32.Quat) {
	a.rotation = rotation.Normalize()
	a.invalidate()
}

// SetRotationEuler sets the local rotation from Euler angles in radians,
// applied in X, Y, Z order.
func (a *Actor) SetRotationEuler(angles mgl32.Vec3) {
	a.rotation = mgl32.AnglesToQuat(angles[0], angles[1], angles[2], mgl32.XYZ)
	a.invalidate()
}

// SetRoll sets a rotation of angle radians around the Z axis.
func (a *Actor) SetRoll(angle float32) {
	a.rotation = mgl32.QuatRotate(angle, mgl32.Vec3{0, 0, 1})
	a.invalidate()
}

// Scale returns the local scale, without flips applied.
func (a *Actor) Scale() mgl32.Vec3 { return a.scale }

// SetScale sets the local scale.
func (a *Actor) SetScale(scale mgl32.Vec3) {
	a.scale = scale
	a.invalidate()
}

func (a *Actor) FlipX() bool { return a.flipX }
func (a *Actor) FlipY() bool { return a.flipY }

// SetFlipX mirrors the actor horizontally.
func (a *Actor) SetFlipX(flip bool) {
	a.flipX = flip
	a.invalidate()
}

// SetFlipY mirrors the actor vertically.
func (a *Actor) SetFlipY(flip bool) {
	a.flipY = flip
	a.invalidate()
}

// Opacity returns the local opacity.
func (a *Actor) Opacity() float32 { return a.opacity }

// SetOpacity sets the local opacity, clamped to [0,1].
func (a *Actor) SetOpacity(opacity float32) {
	a.opacity = mgl32.Clamp(opacity, 0, 1)
}

// Order returns the local draw priority offset.
func (a *Actor) Order() int32 { return a.order }

// SetOrder sets the local draw priority offset. The world order is the sum
// of the orders along the path from the root.
func (a *Actor) SetOrder(order int32) { a.order = order }

func (a *Actor) Pickable() bool            { return a.pickable }
func (a *Actor) SetPickable(pickable bool) { a.pickable = pickable }

func (a *Actor) CullDisabled() bool                { return a.cullDisabled }
func (a *Actor) SetCullDisabled(cullDisabled bool) { a.cullDisabled = cullDisabled }

func (a *Actor) Hidden() bool          { return a.hidden }
func (a *Actor) SetHidden(hidden bool) { a.hidden = hidden }

// WorldOrder returns the accumulated order from the last traversal.
func (a *Actor) WorldOrder() int32 { return a.worldOrder }

// WorldHidden reports whether the actor or an ancestor was hidden during
// the last traversal.
func (a *Actor) WorldHidden() bool { return a.worldHidden }

// WorldOpacity returns the accumulated opacity from the last traversal.
func (a *Actor) WorldOpacity() float32 { return a.worldOpacity }

// computedWorldOrder sums orders up the parent chain without a traversal.
func (a *Actor) computedWorldOrder() int32 {
	order := int32(0)
	for cur := a; cur != nil; cur = cur.ParentActor() {
		order += cur.order
	}
	return order
}

// --- transform cache ---

// LocalTransform returns translate * rotate * scale, with flips negating
// the X or Y scale.
func (a *Actor) LocalTransform() mgl32.Mat4 {
	if a.localTransformDirty {
		a.calculateLocalTransform()
	}
	return a.localTransform
}

func (a *Actor) calculateLocalTransform() {
	sx, sy := a.scale[0], a.scale[1]
	if a.flipX {
		sx = -sx
	}
	if a.flipY {
		sy = -sy
	}

	translation := mgl32.Translate3D(a.position[0], a.position[1], a.position[2])
	scale := mgl32.Scale3D(sx, sy, a.scale[2])
	a.localTransform = translation.Mul4(a.rotation.Mat4()).Mul4(scale)
	a.localTransformDirty = false
	a.stats.local++
}

// Transform returns the world transform, parent world * local.
// Stale ancestors are refreshed first, top-down.
func (a *Actor) Transform() mgl32.Mat4 {
	a.syncParentTransform()
	return a.currentTransform()
}

// InverseTransform returns the inverse of the world transform.
func (a *Actor) InverseTransform() mgl32.Mat4 {
	a.Transform()
	if a.inverseTransformDirty {
		a.inverseTransform = a.transform.Inv()
		a.inverseTransformDirty = false
		a.stats.inverse++
	}
	return a.inverseTransform
}

// currentTransform recomputes the world transform from the cached parent
// transform without looking at ancestors.
func (a *Actor) currentTransform() mgl32.Mat4 {
	if a.transformDirty {
		a.calculateTransform()
	}
	return a.transform
}

func (a *Actor) calculateTransform() {
	a.transform = a.parentTransform.Mul4(a.LocalTransform())
	a.transformDirty = false
	a.inverseTransformDirty = true
	a.updateChildrenTransform = true
	a.transformVersion++
	a.stats.world++
}

// updateTransform installs a new parent transform. A parent transform
// already consumed at the parent's current version is ignored, so each
// parent recomputation is applied at most once.
func (a *Actor) updateTransform(parentTransform mgl32.Mat4) {
	if p := a.ParentActor(); p != nil {
		if a.parentVersion == p.transformVersion {
			return
		}
		a.parentVersion = p.transformVersion
	}
	a.parentTransform = parentTransform
	a.transformDirty = true
	a.inverseTransformDirty = true
}

// pullFrom adopts the parent's world transform if it changed since the
// last pull.
func (a *Actor) pullFrom(parent *Actor) {
	if a.parentVersion == parent.transformVersion {
		return
	}
	a.parentTransform = parent.transform
	a.parentVersion = parent.transformVersion
	a.transformDirty = true
	a.inverseTransformDirty = true
}

// syncParentTransform refreshes the ancestor chain iteratively, from the
// root-most actor down to the direct parent.
func (a *Actor) syncParentTransform() {
	var buf [16]*Actor
	chain := buf[:0]
	for p := a.ParentActor(); p != nil; p = p.ParentActor() {
		chain = append(chain, p)
	}
	if len(chain) == 0 {
		return
	}

	for i := len(chain) - 1; i >= 0; i-- {
		p := chain[i]
		if i+1 < len(chain) {
			p.pullFrom(chain[i+1])
		}
		p.currentTransform()
	}
	a.pullFrom(chain[0])
}

// resetParentTransform forgets the cached parent state after re-parenting.
func (a *Actor) resetParentTransform() {
	a.parentTransform = mgl32.Ident4()
	a.parentVersion = 0
	a.transformDirty = true
	a.inverseTransformDirty = true
}

// ConvertWorldToLocal maps a world-space point into local space.
func (a *Actor) ConvertWorldToLocal(position mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(position, a.InverseTransform())
}

// ConvertLocalToWorld maps a local-space point into world space.
func (a *Actor) ConvertLocalToWorld(position mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(position, a.Transform())
}

// --- components ---

// Components returns the attached components in attachment order.
// The returned slice must not be modified.
func (a *Actor) Components() []Component { return a.components }

// ComponentsOfKind returns the attached components tagged kind.
func (a *Actor) ComponentsOfKind(kind Kind) []Component {
	var out []Component
	for _, c := range a.components {
		if c.Kind() == kind {
			out = append(out, c)
		}
	}
	return out
}

// AddComponent attaches c, detaching it from its previous actor first.
func (a *Actor) AddComponent(c Component) {
	if c == nil {
		Logger().Warn("AddComponent called with nil component", "actor", a.id)
		return
	}
	if owner := c.Actor(); owner != nil {
		if owner == a {
			return
		}
		owner.RemoveComponent(c)
	}

	a.components = append(a.components, c)
	c.setActor(a)
	c.setLayer(a.layer)
}

// RemoveComponent detaches c. It returns false when c is not attached here.
func (a *Actor) RemoveComponent(c Component) bool {
	for i, comp := range a.components {
		if comp != c {
			continue
		}
		comp.setLayer(nil)
		comp.setActor(nil)
		a.components = slices.Delete(a.components, i, i+1)
		return true
	}
	return false
}

// RemoveAllComponents detaches every component.
func (a *Actor) RemoveAllComponents() {
	for len(a.components) > 0 {
		a.RemoveComponent(a.components[len(a.components)-1])
	}
}

// setLayer assigns l to the actor, its components and its descendants.
func (a *Actor) setLayer(l *Layer) {
	stack := []*Actor{a}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		cur.layer = l
		for _, c := range cur.components {
			c.setLayer(l)
		}
		for i := len(cur.children) - 1; i >= 0; i-- {
			stack = append(stack, cur.children[i])
		}
	}
}

// BoundingBox returns the merged local bounds of the non-hidden
// components. Children are not included.
func (a *Actor) BoundingBox() geom.Box {
	box := geom.EmptyBox()
	for _, c := range a.components {
		if !c.Hidden() {
			box = box.Merge(c.BoundingBox())
		}
	}
	return box
}

// --- hit testing ---

// PointOn reports whether the world-space position hits any non-hidden
// component.
func (a *Actor) PointOn(position mgl32.Vec2) bool {
	local := a.ConvertWorldToLocal(mgl32.Vec3{position[0], position[1], 0})
	for _, c := range a.components {
		if !c.Hidden() && c.PointOn(local.Vec2()) {
			return true
		}
	}
	return false
}

// ShapeOverlaps reports whether the world-space convex polygon overlaps
// any non-hidden component.
func (a *Actor) ShapeOverlaps(edges []mgl32.Vec2) bool {
	inverse := a.InverseTransform()
	local := make([]mgl32.Vec2, len(edges))
	for i, e := range edges {
		local[i] = mgl32.TransformCoordinate(mgl32.Vec3{e[0], e[1], 0}, inverse).Vec2()
	}

	for _, c := range a.components {
		if !c.Hidden() && c.ShapeOverlaps(local) {
			return true
		}
	}
	return false
}

// --- drawing ---

// Draw submits every non-hidden component with the world transform, the
// accumulated opacity and the camera's view projection.
func (a *Actor) Draw(r Renderer, camera *Camera, wireframe bool) {
	transform := a.Transform()
	viewProjection := camera.RenderViewProjection()
	for _, c := range a.components {
		if !c.Hidden() {
			c.Draw(r, transform, a.worldOpacity, viewProjection, wireframe)
		}
	}
}
