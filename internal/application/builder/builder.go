// Package builder turns a loaded scene description into a live scene graph.
package builder

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/younwookim/scenecore/internal/application/tween"
	"github.com/younwookim/scenecore/internal/domain/component"
	"github.com/younwookim/scenecore/internal/domain/geom"
	"github.com/younwookim/scenecore/internal/domain/scenegraph"
	"github.com/younwookim/scenecore/internal/infrastructure/config"
)

var (
	ErrUnknownComponent = errors.New("unknown component type")
	ErrInvalidComponent = errors.New("invalid component")
	ErrUnknownParent    = errors.New("unknown parent actor")
	ErrParentCycle      = errors.New("actor parent cycle")
	ErrDuplicateActor   = errors.New("duplicate actor id")
	ErrUnknownActor     = errors.New("unknown actor")
	ErrInvalidCamera    = errors.New("invalid camera")
	ErrInvalidTween     = errors.New("invalid tween")
)

var white = mgl32.Vec4{1, 1, 1, 1}

// TextureSource resolves sprite texture names to backend textures.
// A nil source, or a nil result, leaves sprites untextured.
type TextureSource func(name string) scenegraph.Texture

// Result is a built scene plus the lookups the caller needs to drive it.
type Result struct {
	Scene  *scenegraph.Scene
	Tweens *tween.Group

	actors map[string]map[string]*scenegraph.Actor
}

// Actor returns the actor declared with id in the named layer.
func (r *Result) Actor(layer, id string) *scenegraph.Actor {
	return r.actors[layer][id]
}

// Build creates a scene from cfg. Every layer draws with renderer.
func Build(cfg *config.SceneConfig, renderer scenegraph.Renderer, textures TextureSource) (*Result, error) {
	res := &Result{
		Scene:  scenegraph.NewScene(cfg.Name),
		Tweens: &tween.Group{},
		actors: make(map[string]map[string]*scenegraph.Actor, len(cfg.Layers)),
	}

	for _, lc := range cfg.Layers {
		layer := scenegraph.NewLayer(lc.Name, renderer)
		layer.SetOrder(lc.Order)

		actors, err := buildActors(layer, lc.Actors, textures)
		if err != nil {
			return nil, fmt.Errorf("layer %s: %w", lc.Name, err)
		}
		res.actors[lc.Name] = actors

		for i, cc := range lc.Cameras {
			if err := attachCamera(actors, cc); err != nil {
				return nil, fmt.Errorf("layer %s: camera %d: %w", lc.Name, i, err)
			}
		}
		for i, tc := range lc.Tweens {
			tw, err := buildTween(actors, tc)
			if err != nil {
				return nil, fmt.Errorf("layer %s: tween %d: %w", lc.Name, i, err)
			}
			res.Tweens.Add(tw)
		}

		res.Scene.AddLayer(layer)
	}

	return res, nil
}

// buildActors creates every actor first and then links the hierarchy in
// declaration order, so children may be declared before their parents.
func buildActors(layer *scenegraph.Layer, configs []config.ActorConfig, textures TextureSource) (map[string]*scenegraph.Actor, error) {
	actors := make(map[string]*scenegraph.Actor, len(configs))
	parents := make(map[string]string, len(configs))

	for _, ac := range configs {
		if _, ok := actors[ac.ID]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateActor, ac.ID)
		}
		a, err := buildActor(ac, textures)
		if err != nil {
			return nil, fmt.Errorf("actor %s: %w", ac.ID, err)
		}
		actors[ac.ID] = a
		parents[ac.ID] = ac.Parent
	}

	for _, ac := range configs {
		if ac.Parent == "" {
			continue
		}
		if _, ok := actors[ac.Parent]; !ok {
			return nil, fmt.Errorf("%w: %q (child %q)", ErrUnknownParent, ac.Parent, ac.ID)
		}
		if hasCycle(parents, ac.ID) {
			return nil, fmt.Errorf("%w: %q", ErrParentCycle, ac.ID)
		}
	}

	for _, ac := range configs {
		a := actors[ac.ID]
		switch {
		case ac.Parent == "":
			layer.AddChild(a)
		case ac.Owned:
			actors[ac.Parent].AddOwnedChild(a)
		default:
			actors[ac.Parent].AddChild(a)
		}
	}

	return actors, nil
}

func hasCycle(parents map[string]string, id string) bool {
	seen := map[string]bool{id: true}
	for p := parents[id]; p != ""; p = parents[p] {
		if seen[p] {
			return true
		}
		seen[p] = true
	}
	return false
}

func buildActor(ac config.ActorConfig, textures TextureSource) (*scenegraph.Actor, error) {
	a := scenegraph.NewActor()
	a.SetName(ac.ID)
	a.SetPosition(ac.Position)
	if ac.Rotation != (mgl32.Vec3{}) {
		a.SetRotationEuler(mgl32.Vec3{
			mgl32.DegToRad(ac.Rotation[0]),
			mgl32.DegToRad(ac.Rotation[1]),
			mgl32.DegToRad(ac.Rotation[2]),
		})
	}
	if ac.Scale != nil {
		a.SetScale(*ac.Scale)
	}
	a.SetFlipX(ac.FlipX)
	a.SetFlipY(ac.FlipY)
	if ac.Opacity != nil {
		a.SetOpacity(*ac.Opacity)
	}
	a.SetOrder(ac.Order)
	if ac.Pickable != nil {
		a.SetPickable(*ac.Pickable)
	}
	a.SetCullDisabled(ac.CullDisabled)
	a.SetHidden(ac.Hidden)

	for i, cc := range ac.Components {
		c, err := buildComponent(cc, textures)
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
		a.AddComponent(c)
	}
	return a, nil
}

func buildComponent(cc config.ComponentConfig, textures TextureSource) (scenegraph.Component, error) {
	color := white
	if cc.Color != nil {
		color = *cc.Color
	}
	filled := cc.Filled == nil || *cc.Filled

	var c scenegraph.Component
	switch cc.Type {
	case "sprite":
		var tex scenegraph.Texture
		if cc.Texture != "" && textures != nil {
			tex = textures(cc.Texture)
		}
		s := component.NewSprite(tex, cc.Size)
		s.SetColor(color)
		if cc.Anchor != nil {
			s.SetAnchor(*cc.Anchor)
		}
		c = s
	case "rectangle":
		if cc.Size[0] <= 0 || cc.Size[1] <= 0 {
			return nil, fmt.Errorf("%w: rectangle size %v", ErrInvalidComponent, cc.Size)
		}
		c = component.NewRectangle(cc.Size, color, filled)
	case "polygon":
		if len(cc.Points) < 3 {
			return nil, fmt.Errorf("%w: polygon needs 3 points, got %d", ErrInvalidComponent, len(cc.Points))
		}
		c = component.NewPolygon(cc.Points, color, filled)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownComponent, cc.Type)
	}

	c.SetHidden(cc.Hidden)
	return c, nil
}

func attachCamera(actors map[string]*scenegraph.Actor, cc config.CameraConfig) error {
	a, ok := actors[cc.Actor]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownActor, cc.Actor)
	}

	mode, err := scenegraph.ParseProjectionMode(cc.Projection)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCamera, err)
	}

	var cam *scenegraph.Camera
	switch mode {
	case scenegraph.ProjectionOrthographic:
		scaleMode, err := scenegraph.ParseScaleMode(cc.ScaleMode)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidCamera, err)
		}
		cam = scenegraph.NewOrthographicCamera(cc.TargetContentSize, scaleMode)
		if cc.Near != 0 || cc.Far != 0 {
			cam.SetClipPlanes(cc.Near, cc.Far)
		}
	case scenegraph.ProjectionPerspective:
		fov, near, far := cc.FieldOfView, cc.Near, cc.Far
		if fov == 0 {
			fov = 60
		}
		if near == 0 && far == 0 {
			near, far = 0.1, 1000
		}
		if near <= 0 || far <= near {
			return fmt.Errorf("%w: clip planes %v..%v", ErrInvalidCamera, near, far)
		}
		cam = scenegraph.NewPerspectiveCamera(mgl32.DegToRad(fov), near, far)
	default:
		return fmt.Errorf("%w: projection %q cannot be configured from a file", ErrInvalidCamera, cc.Projection)
	}

	if v := cc.Viewport; v != nil {
		cam.SetViewport(geom.Rect{X: v.X, Y: v.Y, Width: v.Width, Height: v.Height})
	}
	cam.SetWireframe(cc.Wireframe)
	if cc.DepthTest || cc.DepthWrite {
		cam.SetDepthState(cc.DepthTest, cc.DepthWrite)
	}

	a.AddComponent(cam)
	return nil
}

func buildTween(actors map[string]*scenegraph.Actor, tc config.TweenConfig) (*tween.Tween, error) {
	a, ok := actors[tc.Actor]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownActor, tc.Actor)
	}
	prop, err := tween.ParseProperty(tc.Property)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTween, err)
	}
	easing, err := tween.ParseEasing(tc.Easing)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTween, err)
	}

	n := prop.Components()
	if len(tc.From) != n || len(tc.To) != n {
		return nil, fmt.Errorf("%w: %s takes %d values", ErrInvalidTween, prop, n)
	}
	var from, to mgl32.Vec3
	copy(from[:], tc.From)
	copy(to[:], tc.To)

	tw := tween.New(a, prop, from, to, tc.Duration, easing)
	tw.Loop = tc.Loop
	tw.Yoyo = tc.Yoyo
	return tw, nil
}
