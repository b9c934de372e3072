package scenegraph

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/younwookim/scenecore/internal/domain/ident"
)

// Scene is an ordered stack of layers drawn back to front.
type Scene struct {
	id      string
	name    string
	layers  []*Layer
	entered bool
}

// NewScene creates an empty scene.
func NewScene(name string) *Scene {
	return &Scene{id: ident.NewSceneID(), name: name}
}

func (s *Scene) ID() string   { return s.id }
func (s *Scene) Name() string { return s.name }

// Layers returns the layers in draw order.
func (s *Scene) Layers() []*Layer { return s.layers }

// Layer returns the first layer with the given name.
func (s *Scene) Layer(name string) *Layer {
	for _, l := range s.layers {
		if l.name == name {
			return l
		}
	}
	return nil
}

// AddLayer inserts l by ascending order. Layers with equal order keep
// insertion order.
func (s *Scene) AddLayer(l *Layer) {
	if l == nil || l.scene == s {
		return
	}
	if l.scene != nil {
		l.scene.RemoveLayer(l)
	}
	l.scene = s
	s.layers = append(s.layers, l)
	s.sortLayers()
	if s.entered {
		l.Enter()
	}
}

// RemoveLayer detaches l. It returns false when l is not in the scene.
func (s *Scene) RemoveLayer(l *Layer) bool {
	i := slices.Index(s.layers, l)
	if i < 0 {
		return false
	}
	if s.entered {
		l.Leave()
	}
	l.scene = nil
	s.layers = slices.Delete(s.layers, i, i+1)
	return true
}

func (s *Scene) sortLayers() {
	slices.SortStableFunc(s.layers, func(a, b *Layer) int {
		switch {
		case a.order < b.order:
			return -1
		case a.order > b.order:
			return 1
		}
		return 0
	})
}

// Draw draws every layer in ascending order.
func (s *Scene) Draw() {
	for _, l := range s.layers {
		l.Draw()
	}
}

// PickActor returns the topmost hit, searching layers front to back.
func (s *Scene) PickActor(position mgl32.Vec2) (PickResult, bool) {
	for i := len(s.layers) - 1; i >= 0; i-- {
		if r, ok := s.layers[i].PickActor(position); ok {
			return r, true
		}
	}
	return PickResult{}, false
}

// Enter activates every layer.
func (s *Scene) Enter() {
	if s.entered {
		return
	}
	s.entered = true
	for _, l := range s.layers {
		l.Enter()
	}
}

// Leave deactivates every layer.
func (s *Scene) Leave() {
	if !s.entered {
		return
	}
	s.entered = false
	for _, l := range s.layers {
		l.Leave()
	}
}

// Entered reports whether the scene is active.
func (s *Scene) Entered() bool { return s.entered }
