package viewer

import (
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/scenecore/internal/application/input"
	"github.com/younwookim/scenecore/internal/application/state"
	"github.com/younwookim/scenecore/internal/application/trace"
	"github.com/younwookim/scenecore/internal/domain/geom"
	"github.com/younwookim/scenecore/internal/domain/scenegraph"
	"github.com/younwookim/scenecore/internal/infrastructure/config"
)

const dt = 1.0 / 60.0

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

func testScene() *config.SceneConfig {
	return &config.SceneConfig{
		Name: "test",
		Layers: []config.LayerConfig{{
			Name: "main",
			Cameras: []config.CameraConfig{{
				Actor:             "cam",
				Projection:        "orthographic",
				ScaleMode:         "exact_fit",
				TargetContentSize: mgl32.Vec2{800, 450},
			}},
			Actors: []config.ActorConfig{
				{ID: "cam"},
				{ID: "box", Order: 1, Components: []config.ComponentConfig{
					{Type: "rectangle", Size: mgl32.Vec2{100, 100}},
				}},
			},
			Tweens: []config.TweenConfig{
				{Actor: "box", Property: "opacity", From: []float32{1}, To: []float32{0}, Duration: 1},
			},
		}},
	}
}

func newSession(t *testing.T, opts Options) (*Session, *fakeRenderer) {
	t.Helper()
	r := &fakeRenderer{}
	opts.Scene = testScene()
	opts.Renderer = r
	s, err := NewSession(opts)
	require.NoError(t, err)
	return s, r
}

func camera(s *Session) *scenegraph.Camera {
	return s.Scene().Layers()[0].Cameras()[0]
}

func TestNewSession_Errors(t *testing.T) {
	_, err := NewSession(Options{})
	assert.Error(t, err)

	bad := testScene()
	bad.Layers[0].Actors[1].Parent = "nobody"
	_, err = NewSession(Options{Scene: bad, Renderer: &fakeRenderer{}})
	assert.ErrorContains(t, err, "failed to build scene test")
}

func TestSession_Lifecycle(t *testing.T) {
	s, r := newSession(t, Options{})
	assert.Equal(t, state.StateLoading, s.State())

	s.Enter()
	assert.True(t, s.Scene().Entered())
	assert.Equal(t, state.StateRunning, s.State())

	s.Step(input.State{}, dt)
	s.Draw()
	assert.Equal(t, 1, s.Frames())
	assert.Equal(t, 1, r.submits, "one visible rectangle")

	s.Leave()
	assert.False(t, s.Scene().Entered())
}

func TestSession_TweensAndPause(t *testing.T) {
	s, _ := newSession(t, Options{})
	s.Enter()
	box := s.Actor("main", "box")
	require.NotNil(t, box)

	s.Step(input.State{}, 0.25)
	assert.InDelta(t, 0.75, box.Opacity(), 1e-5)

	s.Step(input.State{TogglePause: true}, 0.25)
	assert.Equal(t, state.StatePaused, s.State())
	assert.InDelta(t, 0.75, box.Opacity(), 1e-5, "no tween step while paused")

	s.Step(input.State{Step: true}, 0.25)
	assert.InDelta(t, 0.5, box.Opacity(), 1e-5, "single step while paused")

	s.Step(input.State{TogglePause: true}, 0.25)
	assert.Equal(t, state.StateRunning, s.State())
	assert.InDelta(t, 0.25, box.Opacity(), 1e-5)
}

func TestSession_Pick(t *testing.T) {
	var picks []string
	s, _ := newSession(t, Options{})
	s.OnPick = func(r scenegraph.PickResult) { picks = append(picks, r.Actor.Name()) }
	s.Enter()
	s.Step(input.State{}, dt)
	s.Draw()

	s.Step(input.State{CursorX: 10, CursorY: 10, Click: true}, dt)
	_, ok := s.Picked()
	assert.False(t, ok, "corner is empty")

	s.Step(input.State{CursorX: 400, CursorY: 225, Click: true}, dt)
	p, ok := s.Picked()
	require.True(t, ok)
	assert.Equal(t, "box", p.Actor.Name())
	assert.Equal(t, int32(1), p.WorldOrder)
	assert.Equal(t, []string{"box"}, picks)
}

func TestSession_CameraPanAndZoom(t *testing.T) {
	s, _ := newSession(t, Options{PanSpeed: 100})
	s.Enter()
	cam := camera(s).Actor()

	s.Step(input.State{PanX: 1, PanY: 1}, 0.5)
	assert.InDelta(t, 50, cam.Position()[0], 1e-4)
	assert.InDelta(t, -50, cam.Position()[1], 1e-4, "screen down is world down")

	s.Step(input.State{Zoom: 1}, dt)
	assert.InDelta(t, 1/1.1, cam.Scale()[0], 1e-5)
	s.Step(input.State{Zoom: -1}, dt)
	assert.InDelta(t, 1, cam.Scale()[0], 1e-5)
	assert.Equal(t, float32(1), cam.Scale()[2])
}

func TestSession_Wireframe(t *testing.T) {
	s, _ := newSession(t, Options{Wireframe: true})
	assert.True(t, s.Wireframe())
	assert.True(t, camera(s).Wireframe())

	s.Enter()
	s.Step(input.State{ToggleWireframe: true}, dt)
	assert.False(t, s.Wireframe())
	assert.False(t, camera(s).Wireframe())
}

// recordRun records frames frames with a click on the box in frame 0.
func recordRun(t *testing.T, frames int) trace.Data {
	t.Helper()
	rec := trace.NewRecorder("test", 0)
	s, _ := newSession(t, Options{Recorder: rec})
	s.Enter()
	for i := 0; i < frames; i++ {
		in := input.State{CursorX: 400, CursorY: 225}
		if i == 0 {
			in.Click = true
		}
		s.Step(in, dt)
		s.Draw()
	}
	require.Equal(t, frames, rec.FrameCount())
	return rec.Data()
}

func TestSession_Record(t *testing.T) {
	data := recordRun(t, 3)

	require.NotNil(t, data.Frames[0].Pick)
	assert.Equal(t, "box", data.Frames[0].Pick.Actor)
	assert.Nil(t, data.Frames[1].Pick)
	require.Len(t, data.Frames[2].Queues, 1)
	assert.Equal(t, []trace.Entry{{Actor: "box", Order: 1}}, data.Frames[2].Queues[0].Entries)
}

func TestSession_ReplayVerifies(t *testing.T) {
	data := recordRun(t, 3)

	s, _ := newSession(t, Options{Replay: &data})
	s.Enter()
	assert.Equal(t, state.StateReplaying, s.State())

	for i := 0; i < 3; i++ {
		s.Step(input.State{}, dt)
		s.Draw()
	}

	assert.Equal(t, state.StateFinished, s.State())
	assert.NoError(t, s.Verify())
	p, ok := s.Picked()
	require.True(t, ok, "recorded click is replayed")
	assert.Equal(t, "box", p.Actor.Name())

	frames := s.Frames()
	s.Step(input.State{}, dt)
	assert.Equal(t, state.StateFinished, s.State())
	assert.Equal(t, frames, s.Frames())
}

func TestSession_ReplayMismatch(t *testing.T) {
	data := recordRun(t, 3)
	data.Frames[1].Queues[0].Entries[0].Order = 7

	s, _ := newSession(t, Options{Replay: &data})
	s.Enter()
	for i := 0; i < 3 && !s.State().Terminal(); i++ {
		s.Step(input.State{}, dt)
		s.Draw()
	}

	assert.Equal(t, state.StateMismatch, s.State())
	assert.ErrorIs(t, s.Verify(), trace.ErrTraceMismatch)
}

func TestSession_SaveTraceOnLeave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.json")
	rec := trace.NewRecorder("test", 0)
	s, _ := newSession(t, Options{Recorder: rec, TracePath: path})
	s.Enter()
	s.Step(input.State{}, dt)
	s.Draw()
	s.Leave()

	loaded, err := trace.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "test", loaded.Scene)
	assert.Len(t, loaded.Frames, 1)
}
