package scenegraph

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayer_DrawQueueSortedDescendingAndStable(t *testing.T) {
	l, cam, _ := newOrthoLayer(800, 600)

	a1 := boxActor(5, 5)
	a1Child := boxActor(5, 5)
	a2 := boxActor(5, 5)
	b := boxActor(5, 5)
	c := boxActor(5, 5)
	b.SetOrder(5)
	c.SetOrder(-1)
	a1.AddChild(a1Child)

	l.AddChild(a1)
	l.AddChild(a2)
	l.AddChild(b)
	l.AddChild(c)

	l.Draw()
	want := []*Actor{b, a1, a1Child, a2, c}
	assert.Equal(t, want, cam.DrawQueue().Actors())

	l.Draw()
	assert.Equal(t, want, cam.DrawQueue().Actors(), "an unchanged frame yields the same queue")
}

func TestActor_WorldOrderIsAdditive(t *testing.T) {
	l, _, _ := newOrthoLayer(800, 600)

	orders := []int32{3, -5, 2, 0, -7}
	var chain []*Actor
	parent := &l.Container
	for _, o := range orders {
		a := boxActor(1, 1)
		a.SetOrder(o)
		parent.AddChild(a)
		chain = append(chain, a)
		parent = &a.Container
	}

	l.Draw()

	want := int32(0)
	for i, a := range chain {
		want += orders[i]
		assert.Equal(t, want, a.WorldOrder(), "depth %d", i)
		assert.Equal(t, want, a.computedWorldOrder(), "depth %d", i)
		if p := a.ParentActor(); p != nil {
			assert.Equal(t, p.WorldOrder()+a.Order(), a.WorldOrder())
		}
	}
}

func TestLayer_DrawRecomputesChildOncePerParentChange(t *testing.T) {
	l, _, _ := newOrthoLayer(800, 600)
	parent := NewActor()
	child := boxActor(5, 5)
	parent.AddChild(child)
	l.AddChild(parent)

	l.Draw()
	parentWorld := parent.stats.world
	childWorld := child.stats.world

	parent.SetPosition(mgl32.Vec3{10, 0, 0})
	l.Draw()
	assert.Equal(t, parentWorld+1, parent.stats.world)
	assert.Equal(t, childWorld+1, child.stats.world)
	assert.InDelta(t, 10, child.transform[12], 1e-6)

	l.Draw()
	assert.Equal(t, parentWorld+1, parent.stats.world, "clean frames do not recompute")
	assert.Equal(t, childWorld+1, child.stats.world, "clean frames do not recompute")
}

func TestLayer_DrawPicksUpLateChildren(t *testing.T) {
	l, cam, _ := newOrthoLayer(800, 600)
	parent := NewActor()
	parent.SetPosition(mgl32.Vec3{50, 0, 0})
	l.AddChild(parent)
	l.Draw()

	child := boxActor(5, 5)
	parent.AddChild(child)
	l.Draw()

	assert.True(t, queued(cam.DrawQueue(), child))
	assert.InDelta(t, 50, child.transform[12], 1e-6, "a child added after the parent settled still inherits its transform")
}

func TestLayer_HiddenSubtreeIsWalkedButNotQueued(t *testing.T) {
	l, cam, _ := newOrthoLayer(800, 600)
	parent := boxActor(5, 5)
	child := boxActor(5, 5)
	parent.AddChild(child)
	l.AddChild(parent)

	parent.SetHidden(true)
	parent.SetPosition(mgl32.Vec3{20, 0, 0})
	l.Draw()

	assert.Zero(t, cam.DrawQueue().Len())
	assert.True(t, child.WorldHidden())
	assert.InDelta(t, 20, child.transform[12], 1e-6, "hidden children still get fresh transforms")

	parent.SetHidden(false)
	child.SetHidden(true)
	l.Draw()
	assert.Equal(t, []*Actor{parent}, cam.DrawQueue().Actors())
}

func TestLayer_CullingRules(t *testing.T) {
	l, cam, _ := newOrthoLayer(800, 600)

	empty := NewActor()
	forced := NewActor()
	forced.SetCullDisabled(true)
	offscreen := boxActor(5, 5)
	offscreen.SetPosition(mgl32.Vec3{1000, 0, 0})
	forcedOffscreen := boxActor(5, 5)
	forcedOffscreen.SetPosition(mgl32.Vec3{1000, 0, 0})
	forcedOffscreen.SetCullDisabled(true)
	onscreen := boxActor(5, 5)

	for _, a := range []*Actor{empty, forced, offscreen, forcedOffscreen, onscreen} {
		l.AddChild(a)
	}
	l.Draw()

	q := cam.DrawQueue()
	assert.False(t, queued(q, empty), "actors without bounds are never queued")
	assert.True(t, queued(q, forced), "cull disabled bypasses the bounds check")
	assert.False(t, queued(q, offscreen))
	assert.True(t, queued(q, forcedOffscreen))
	assert.True(t, queued(q, onscreen))
}

func TestLayer_DrawPassesAccumulatedOpacity(t *testing.T) {
	l, _, r := newOrthoLayer(800, 600)
	parent := NewActor()
	parent.SetOpacity(0.5)
	child := NewActor()
	child.SetOpacity(0.5)
	comp := newBoxComponent(-5, -5, 5, 5)
	child.AddComponent(comp)
	parent.AddChild(child)
	l.AddChild(parent)

	l.Draw()

	require.Len(t, comp.opacities, 1)
	assert.InDelta(t, 0.25, comp.opacities[0], 1e-6)
	require.Len(t, r.commands, 1)
	assert.InDelta(t, 0.25, r.commands[0].Color[3], 1e-6)
}

func TestDrawQueue_Reset(t *testing.T) {
	var q DrawQueue
	q.insert(NewActor())
	q.insert(NewActor())
	assert.Equal(t, 2, q.Len())

	q.Reset()
	assert.Zero(t, q.Len())
	assert.Empty(t, q.Actors())
}
