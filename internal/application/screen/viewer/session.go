// Package viewer provides the interactive scene viewer screen.
package viewer

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/younwookim/scenecore/internal/application/builder"
	"github.com/younwookim/scenecore/internal/application/input"
	"github.com/younwookim/scenecore/internal/application/state"
	"github.com/younwookim/scenecore/internal/application/trace"
	"github.com/younwookim/scenecore/internal/application/tween"
	"github.com/younwookim/scenecore/internal/domain/scenegraph"
	"github.com/younwookim/scenecore/internal/infrastructure/config"
)

const (
	defaultPanSpeed = 240 // world units per second
	zoomStep        = 1.1
)

// Options configures a Session.
type Options struct {
	Scene    *config.SceneConfig
	Renderer scenegraph.Renderer
	Textures builder.TextureSource

	// Recorder, when set, records every frame.
	Recorder *trace.Recorder
	// Replay, when set, drives the session from recorded input and checks
	// each frame against the recording.
	Replay *trace.Data
	// TracePath is where SaveTrace writes; empty generates a name.
	TracePath string

	Wireframe bool
	PanSpeed  float32
}

// Session drives a built scene frame by frame. It does not know which
// backend it draws into; callers bind the renderer before Draw.
type Session struct {
	scene     *scenegraph.Scene
	result    *builder.Result
	tweens    *tween.Group
	renderer  scenegraph.Renderer
	state     state.ViewerState
	wireframe bool
	panSpeed  float32

	recorder  *trace.Recorder
	tracePath string

	replayer *trace.Replayer
	actual   *trace.Recorder
	mismatch error

	frameOpen bool
	picked    *scenegraph.PickResult
	frames    int

	// OnPick is called for every click that hits an actor.
	OnPick func(result scenegraph.PickResult)
}

// NewSession builds the scene described by opts.Scene.
func NewSession(opts Options) (*Session, error) {
	if opts.Scene == nil {
		return nil, fmt.Errorf("no scene config")
	}
	res, err := builder.Build(opts.Scene, opts.Renderer, opts.Textures)
	if err != nil {
		return nil, fmt.Errorf("failed to build scene %s: %w", opts.Scene.Name, err)
	}

	s := &Session{
		scene:     res.Scene,
		result:    res,
		tweens:    res.Tweens,
		renderer:  opts.Renderer,
		state:     state.StateLoading,
		panSpeed:  opts.PanSpeed,
		recorder:  opts.Recorder,
		tracePath: opts.TracePath,
	}
	if s.panSpeed <= 0 {
		s.panSpeed = defaultPanSpeed
	}
	if s.recorder != nil {
		s.recorder.ObserveScene(s.scene)
	}
	if opts.Replay != nil {
		s.replayer = trace.NewReplayer(*opts.Replay)
		s.actual = trace.NewRecorder(opts.Scene.Name, 0)
		s.actual.ObserveScene(s.scene)
	}
	if opts.Wireframe {
		s.SetWireframe(true)
	}
	return s, nil
}

// Scene returns the live scene.
func (s *Session) Scene() *scenegraph.Scene { return s.scene }

// Actor returns the actor with the given config id.
func (s *Session) Actor(layer, id string) *scenegraph.Actor { return s.result.Actor(layer, id) }

// State returns the run state.
func (s *Session) State() state.ViewerState { return s.state }

// Frames returns the number of drawn frames.
func (s *Session) Frames() int { return s.frames }

// Picked returns the result of the last click that hit an actor.
func (s *Session) Picked() (scenegraph.PickResult, bool) {
	if s.picked == nil {
		return scenegraph.PickResult{}, false
	}
	return *s.picked, true
}

// Wireframe reports whether wireframe overlays are enabled.
func (s *Session) Wireframe() bool { return s.wireframe }

// SetWireframe toggles the wireframe overlay on every camera.
func (s *Session) SetWireframe(on bool) {
	s.wireframe = on
	for _, l := range s.scene.Layers() {
		for _, c := range l.Cameras() {
			c.SetWireframe(on)
		}
	}
}

// Enter activates the scene.
func (s *Session) Enter() {
	s.scene.Enter()
	if s.replayer != nil {
		s.state = state.StateReplaying
	} else {
		s.state = state.StateRunning
	}
}

// Leave deactivates the scene and saves a pending trace.
func (s *Session) Leave() {
	if s.recorder != nil && s.recorder.FrameCount() > 0 && s.tracePath != "" {
		s.SaveTrace()
	}
	s.scene.Leave()
}

// Step consumes one frame of input and advances tweens by dt seconds.
// During replay the recorded input replaces the pointer part of in.
func (s *Session) Step(in input.State, dt float64) {
	if s.state.Terminal() {
		return
	}
	if s.replayer != nil {
		recorded, ok := s.replayer.Next()
		if !ok {
			s.finish()
			return
		}
		recorded.ToggleWireframe = in.ToggleWireframe
		recorded.SaveTrace = in.SaveTrace
		recorded.Quit = in.Quit
		in = recorded
	}

	if in.ToggleWireframe {
		s.SetWireframe(!s.wireframe)
	}
	if in.TogglePause && s.replayer == nil {
		if s.state == state.StatePaused {
			s.state = state.StateRunning
		} else {
			s.state = state.StatePaused
		}
	}
	if in.SaveTrace {
		s.SaveTrace()
	}

	if s.state.Animating() || (s.state == state.StatePaused && in.Step) {
		s.tweens.Update(dt)
	}
	s.moveCamera(in, float32(dt))

	s.beginFrame(in)
	if in.Click {
		s.pick(in.CursorX, in.CursorY)
	}
}

func (s *Session) beginFrame(in input.State) {
	if s.recorder != nil {
		s.recorder.BeginFrame(in)
	}
	if s.actual != nil {
		s.actual.BeginFrame(in)
	}
	s.frameOpen = true
}

func (s *Session) pick(x, y int) {
	w, h := s.renderer.Size()
	if w <= 0 || h <= 0 {
		return
	}
	pos := mgl32.Vec2{(float32(x) + 0.5) / float32(w), (float32(y) + 0.5) / float32(h)}
	res, ok := s.scene.PickActor(pos)
	if !ok {
		return
	}
	s.picked = &res
	if s.recorder != nil {
		s.recorder.RecordPick(res.Actor)
	}
	if s.actual != nil {
		s.actual.RecordPick(res.Actor)
	}
	if s.OnPick != nil {
		s.OnPick(res)
	}
}

// moveCamera pans and zooms the camera actor of the first layer.
func (s *Session) moveCamera(in input.State, dt float32) {
	if in.PanX == 0 && in.PanY == 0 && in.Zoom == 0 {
		return
	}
	layers := s.scene.Layers()
	if len(layers) == 0 || len(layers[0].Cameras()) == 0 {
		return
	}
	a := layers[0].Cameras()[0].Actor()
	if a == nil {
		return
	}

	if in.PanX != 0 || in.PanY != 0 {
		step := s.panSpeed * dt * a.Scale()[0]
		// Screen y grows downward, world y upward.
		a.SetPosition(a.Position().Add(mgl32.Vec3{float32(in.PanX) * step, -float32(in.PanY) * step, 0}))
	}
	if in.Zoom != 0 {
		f := float32(zoomStep)
		if in.Zoom > 0 {
			f = 1 / f
		}
		sc := a.Scale()
		a.SetScale(mgl32.Vec3{sc[0] * f, sc[1] * f, sc[2]})
	}
}

// Draw draws every layer and closes the frame opened by Step. During
// replay the frame is compared against its recording.
func (s *Session) Draw() {
	s.scene.Draw()
	s.frames++
	if !s.frameOpen {
		return
	}
	s.frameOpen = false

	if s.recorder != nil {
		s.recorder.EndFrame()
	}
	if s.actual == nil {
		return
	}
	s.actual.EndFrame()
	got, _ := s.actual.LastFrame()
	want, ok := s.replayer.Expected(got.F)
	if !ok {
		return
	}
	if err := trace.CompareFrames(want, got); err != nil {
		s.mismatch = err
		s.state = state.StateMismatch
		log.Printf("Replay diverged: %v", err)
		return
	}
	if s.replayer.Done() {
		s.finish()
	}
}

func (s *Session) finish() {
	s.state = state.StateFinished
	if s.replayer != nil {
		log.Printf("Replay verified: %d frames", s.replayer.TotalFrames())
	}
}

// Verify returns the first replay mismatch, or nil.
func (s *Session) Verify() error { return s.mismatch }

// SaveTrace writes the recorded trace.
func (s *Session) SaveTrace() {
	if s.recorder == nil {
		return
	}

	filename := s.tracePath
	if filename == "" {
		filename = trace.GenerateFilename()
	}

	if err := s.recorder.Save(filename); err != nil {
		log.Printf("Failed to save trace: %v", err)
	} else {
		log.Printf("Trace saved: %s (%d frames)", filename, s.recorder.FrameCount())
	}
}
