package builder

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/scenecore/internal/domain/component"
	"github.com/younwookim/scenecore/internal/domain/geom"
	"github.com/younwookim/scenecore/internal/domain/scenegraph"
	"github.com/younwookim/scenecore/internal/infrastructure/config"
)

// fakeRenderer counts submissions on an 800x450 back buffer.
type fakeRenderer struct {
	submits int
}

func (f *fakeRenderer) Size() (int, int)                        { return 800, 450 }
func (f *fakeRenderer) SetRenderTarget(scenegraph.RenderTarget) {}
func (f *fakeRenderer) SetViewport(geom.Rect)                   {}
func (f *fakeRenderer) SetDepthState(bool, bool)                {}
func (f *fakeRenderer) SetFillMode(scenegraph.FillMode)         {}
func (f *fakeRenderer) Submit(scenegraph.DrawCommand)           { f.submits++ }

func ptr[T any](v T) *T { return &v }

func rect(w, h float32) config.ComponentConfig {
	return config.ComponentConfig{Type: "rectangle", Size: mgl32.Vec2{w, h}}
}

func TestBuild_DemoScene(t *testing.T) {
	cfg, err := config.NewLoader("../../../cmd/viewer/configs").LoadScene("demo")
	require.NoError(t, err)

	r := &fakeRenderer{}
	res, err := Build(cfg, r, nil)
	require.NoError(t, err)

	layers := res.Scene.Layers()
	require.Len(t, layers, 3)
	assert.Equal(t, []string{"world", "inset", "hud"}, []string{layers[0].Name(), layers[1].Name(), layers[2].Name()})

	sun := res.Actor("world", "sun")
	planet := res.Actor("world", "planet")
	moon := res.Actor("world", "moon")
	require.NotNil(t, sun)
	assert.Same(t, sun, planet.ParentActor())
	assert.Same(t, planet, moon.ParentActor())
	assert.True(t, sun.Owns(planet))
	assert.Equal(t, "planet", planet.Name())

	assert.Equal(t, 5, res.Tweens.Len())
	for _, l := range layers {
		assert.Len(t, l.Cameras(), 1, l.Name())
	}

	res.Scene.Draw()
	queue := layers[0].Cameras()[0].DrawQueue().Actors()
	assert.Contains(t, queue, sun)
	assert.Contains(t, queue, planet)
	assert.Contains(t, queue, moon)
	assert.Equal(t, int32(3), moon.WorldOrder())
	assert.Positive(t, r.submits)
}

func TestBuild_ChildDeclaredBeforeParent(t *testing.T) {
	cfg := &config.SceneConfig{
		Name: "s",
		Layers: []config.LayerConfig{{
			Name: "main",
			Actors: []config.ActorConfig{
				{ID: "child", Parent: "root"},
				{ID: "root"},
			},
		}},
	}

	res, err := Build(cfg, &fakeRenderer{}, nil)
	require.NoError(t, err)

	root := res.Actor("main", "root")
	assert.Same(t, root, res.Actor("main", "child").ParentActor())
	assert.Equal(t, []*scenegraph.Actor{root}, res.Scene.Layer("main").Children())
	assert.False(t, root.Owns(res.Actor("main", "child")))
}

func TestBuild_ActorProperties(t *testing.T) {
	cfg := &config.SceneConfig{
		Layers: []config.LayerConfig{{
			Name: "main",
			Actors: []config.ActorConfig{
				{ID: "plain"},
				{
					ID:           "custom",
					Position:     mgl32.Vec3{1, 2, 3},
					Rotation:     mgl32.Vec3{0, 0, 90},
					Scale:        &mgl32.Vec3{2, 2, 1},
					FlipY:        true,
					Opacity:      ptr[float32](0.5),
					Order:        -3,
					Pickable:     ptr(false),
					CullDisabled: true,
					Hidden:       true,
				},
			},
		}},
	}

	res, err := Build(cfg, &fakeRenderer{}, nil)
	require.NoError(t, err)

	plain := res.Actor("main", "plain")
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, plain.Scale())
	assert.Equal(t, float32(1), plain.Opacity())
	assert.True(t, plain.Pickable())

	c := res.Actor("main", "custom")
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, c.Position())
	assert.Equal(t, mgl32.Vec3{2, 2, 1}, c.Scale())
	assert.True(t, c.FlipY())
	assert.Equal(t, float32(0.5), c.Opacity())
	assert.Equal(t, int32(-3), c.Order())
	assert.False(t, c.Pickable())
	assert.True(t, c.CullDisabled())
	assert.True(t, c.Hidden())

	p := c.Rotation().Rotate(mgl32.Vec3{1, 0, 0})
	assert.InDelta(t, 0, p[0], 1e-5)
	assert.InDelta(t, 1, p[1], 1e-5)
}

func TestBuild_Components(t *testing.T) {
	var requested []string
	textures := func(name string) scenegraph.Texture {
		requested = append(requested, name)
		return name + "-handle"
	}
	cfg := &config.SceneConfig{
		Layers: []config.LayerConfig{{
			Name: "main",
			Actors: []config.ActorConfig{{
				ID: "a",
				Components: []config.ComponentConfig{
					{Type: "sprite", Size: mgl32.Vec2{10, 10}, Texture: "checker", Anchor: &mgl32.Vec2{0, 0}},
					{Type: "rectangle", Size: mgl32.Vec2{4, 2}, Color: &mgl32.Vec4{1, 0, 0, 1}, Filled: ptr(false)},
					{Type: "polygon", Points: []mgl32.Vec2{{0, 0}, {1, 0}, {0, 1}}, Hidden: true},
				},
			}},
		}},
	}

	res, err := Build(cfg, &fakeRenderer{}, textures)
	require.NoError(t, err)
	assert.Equal(t, []string{"checker"}, requested)

	comps := res.Actor("main", "a").Components()
	require.Len(t, comps, 3)

	sprite := comps[0].(*component.Sprite)
	assert.Equal(t, "checker-handle", sprite.Texture())
	assert.Equal(t, mgl32.Vec2{0, 0}, sprite.Anchor())

	shape := comps[1].(*component.Shape)
	assert.False(t, shape.Filled())
	assert.Equal(t, mgl32.Vec4{1, 0, 0, 1}, shape.Color())

	poly := comps[2].(*component.Shape)
	assert.True(t, poly.Filled())
	assert.Equal(t, white, poly.Color())
	assert.True(t, poly.Hidden())
}

func TestBuild_Cameras(t *testing.T) {
	cfg := &config.SceneConfig{
		Layers: []config.LayerConfig{{
			Name: "main",
			Cameras: []config.CameraConfig{
				{Actor: "eye", Projection: "perspective", Viewport: &config.RectConfig{X: 0.5, Width: 0.5, Height: 1}},
				{Actor: "flat", Projection: "ortho", ScaleMode: "no_border", TargetContentSize: mgl32.Vec2{400, 300}, Wireframe: true},
			},
			Actors: []config.ActorConfig{{ID: "eye"}, {ID: "flat"}},
		}},
	}

	res, err := Build(cfg, &fakeRenderer{}, nil)
	require.NoError(t, err)

	cams := res.Scene.Layer("main").Cameras()
	require.Len(t, cams, 2)

	eye := cams[0]
	assert.Equal(t, scenegraph.ProjectionPerspective, eye.ProjectionMode())
	assert.True(t, eye.DepthTest())
	assert.Equal(t, geom.Rect{X: 400, Width: 400, Height: 450}, eye.RenderViewport())

	flat := cams[1]
	assert.Equal(t, scenegraph.ScaleNoBorder, flat.ScaleMode())
	assert.True(t, flat.Wireframe())
	assert.InDelta(t, 2, flat.ContentScale()[0], 1e-6)
}

func TestBuild_Tweens(t *testing.T) {
	cfg := &config.SceneConfig{
		Layers: []config.LayerConfig{{
			Name:   "main",
			Actors: []config.ActorConfig{{ID: "a"}},
			Tweens: []config.TweenConfig{
				{Actor: "a", Property: "position", From: []float32{0, 0, 0}, To: []float32{10, 0, 0}, Duration: 1},
			},
		}},
	}

	res, err := Build(cfg, &fakeRenderer{}, nil)
	require.NoError(t, err)
	require.Equal(t, 1, res.Tweens.Len())

	res.Tweens.Update(0.5)
	assert.Equal(t, mgl32.Vec3{5, 0, 0}, res.Actor("main", "a").Position())
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name  string
		layer config.LayerConfig
		want  error
	}{
		{
			name:  "duplicate actor",
			layer: config.LayerConfig{Actors: []config.ActorConfig{{ID: "a"}, {ID: "a"}}},
			want:  ErrDuplicateActor,
		},
		{
			name:  "unknown parent",
			layer: config.LayerConfig{Actors: []config.ActorConfig{{ID: "a", Parent: "ghost"}}},
			want:  ErrUnknownParent,
		},
		{
			name:  "parent cycle",
			layer: config.LayerConfig{Actors: []config.ActorConfig{{ID: "a", Parent: "b"}, {ID: "b", Parent: "a"}}},
			want:  ErrParentCycle,
		},
		{
			name:  "self parent",
			layer: config.LayerConfig{Actors: []config.ActorConfig{{ID: "a", Parent: "a"}}},
			want:  ErrParentCycle,
		},
		{
			name: "unknown component",
			layer: config.LayerConfig{Actors: []config.ActorConfig{
				{ID: "a", Components: []config.ComponentConfig{{Type: "particles"}}},
			}},
			want: ErrUnknownComponent,
		},
		{
			name: "degenerate polygon",
			layer: config.LayerConfig{Actors: []config.ActorConfig{
				{ID: "a", Components: []config.ComponentConfig{{Type: "polygon", Points: []mgl32.Vec2{{0, 0}, {1, 1}}}}},
			}},
			want: ErrInvalidComponent,
		},
		{
			name: "empty rectangle",
			layer: config.LayerConfig{Actors: []config.ActorConfig{
				{ID: "a", Components: []config.ComponentConfig{rect(0, 1)}},
			}},
			want: ErrInvalidComponent,
		},
		{
			name: "camera on unknown actor",
			layer: config.LayerConfig{
				Cameras: []config.CameraConfig{{Actor: "ghost", Projection: "orthographic"}},
			},
			want: ErrUnknownActor,
		},
		{
			name: "custom projection",
			layer: config.LayerConfig{
				Actors:  []config.ActorConfig{{ID: "a"}},
				Cameras: []config.CameraConfig{{Actor: "a", Projection: "custom"}},
			},
			want: ErrInvalidCamera,
		},
		{
			name: "bad scale mode",
			layer: config.LayerConfig{
				Actors:  []config.ActorConfig{{ID: "a"}},
				Cameras: []config.CameraConfig{{Actor: "a", Projection: "orthographic", ScaleMode: "stretch"}},
			},
			want: ErrInvalidCamera,
		},
		{
			name: "inverted clip planes",
			layer: config.LayerConfig{
				Actors:  []config.ActorConfig{{ID: "a"}},
				Cameras: []config.CameraConfig{{Actor: "a", Projection: "perspective", Near: 10, Far: 1}},
			},
			want: ErrInvalidCamera,
		},
		{
			name: "tween value count",
			layer: config.LayerConfig{
				Actors: []config.ActorConfig{{ID: "a"}},
				Tweens: []config.TweenConfig{{Actor: "a", Property: "opacity", From: []float32{1, 0}, To: []float32{0}}},
			},
			want: ErrInvalidTween,
		},
		{
			name: "tween unknown easing",
			layer: config.LayerConfig{
				Actors: []config.ActorConfig{{ID: "a"}},
				Tweens: []config.TweenConfig{{Actor: "a", Property: "roll", From: []float32{0}, To: []float32{1}, Easing: "bounce"}},
			},
			want: ErrInvalidTween,
		},
		{
			name: "tween unknown actor",
			layer: config.LayerConfig{
				Tweens: []config.TweenConfig{{Actor: "ghost", Property: "roll"}},
			},
			want: ErrUnknownActor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.layer.Name = "main"
			_, err := Build(&config.SceneConfig{Layers: []config.LayerConfig{tt.layer}}, &fakeRenderer{}, nil)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
