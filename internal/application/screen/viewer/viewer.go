package viewer

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/younwookim/scenecore/internal/application/input"
	"github.com/younwookim/scenecore/internal/application/screen"
	"github.com/younwookim/scenecore/internal/application/state"
	"github.com/younwookim/scenecore/internal/application/trace"
	"github.com/younwookim/scenecore/internal/infrastructure/render/ebitenrender"
)

// Viewer shows a Session in the ebiten window (implements screen.Screen).
type Viewer struct {
	session    *Session
	renderer   *ebitenrender.Renderer
	input      input.Source
	background color.Color
	showStats  bool
}

// New wraps session. renderer must be the renderer the session was built
// with.
func New(session *Session, renderer *ebitenrender.Renderer, source input.Source, background mgl32.Vec3, showStats bool) *Viewer {
	return &Viewer{
		session:    session,
		renderer:   renderer,
		input:      source,
		background: toColor(background),
		showStats:  showStats,
	}
}

// Session returns the wrapped session.
func (v *Viewer) Session() *Session { return v.session }

// Update reads input and steps the session. Escape ends the loop, as does
// the end of a replay.
func (v *Viewer) Update(dt float64) (screen.Screen, error) {
	in := v.input.Read()
	if in.Quit {
		return nil, ebiten.Termination
	}

	v.session.Step(in, dt)

	switch v.session.State() {
	case state.StateFinished:
		return nil, ebiten.Termination
	case state.StateMismatch:
		return nil, v.session.Verify()
	}
	return nil, nil
}

// Draw clears the window and draws the scene.
func (v *Viewer) Draw(target *ebiten.Image) {
	target.Fill(v.background)
	v.renderer.Begin(target)
	v.session.Draw()

	if v.showStats {
		ebitenutil.DebugPrintAt(target, v.status(), 4, 4)
	}
}

func (v *Viewer) status() string {
	st := v.renderer.Stats()
	msg := fmt.Sprintf("%s  frame %d  cmds %d  tris %d  lines %d",
		v.session.State(), v.session.Frames(), st.Commands, st.Triangles, st.Lines)
	if p, ok := v.session.Picked(); ok {
		msg += fmt.Sprintf("\npicked %s (order %d)", trace.ActorName(p.Actor), p.WorldOrder)
	}
	if v.session.Wireframe() {
		msg += "\nwireframe"
	}
	return msg
}

// OnEnter activates the scene.
func (v *Viewer) OnEnter() { v.session.Enter() }

// OnExit deactivates the scene and saves a pending trace.
func (v *Viewer) OnExit() { v.session.Leave() }

func toColor(c mgl32.Vec3) color.Color {
	clamp := func(f float32) uint8 {
		return uint8(mgl32.Clamp(f, 0, 1)*255 + 0.5)
	}
	return color.RGBA{R: clamp(c[0]), G: clamp(c[1]), B: clamp(c[2]), A: 255}
}
