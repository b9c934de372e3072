// Package input samples pointer and keyboard state once per frame.
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// State holds the input for a single frame
type State struct {
	CursorX int
	CursorY int
	Click   bool // Left button just pressed

	PanX int // -1, 0 or 1 from the arrow keys
	PanY int // -1 up, 1 down
	Zoom int // Wheel direction, 1 zooms in

	ToggleWireframe bool
	TogglePause     bool
	Step            bool // Advance one frame while paused
	SaveTrace       bool
	Quit            bool
}

// Idle reports whether the frame carries no input besides the cursor.
func (s State) Idle() bool {
	return s == State{CursorX: s.CursorX, CursorY: s.CursorY}
}

// Source produces one State per frame.
type Source interface {
	Read() State
}

// Ebiten reads the window's keyboard and mouse.
type Ebiten struct{}

// Read reads the current input state
func (Ebiten) Read() State {
	mx, my := ebiten.CursorPosition()
	_, wheel := ebiten.Wheel()
	return State{
		CursorX:         mx,
		CursorY:         my,
		Click:           inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		PanX:            axis(ebiten.KeyArrowLeft, ebiten.KeyArrowRight),
		PanY:            axis(ebiten.KeyArrowUp, ebiten.KeyArrowDown),
		Zoom:            sign(wheel),
		ToggleWireframe: inpututil.IsKeyJustPressed(ebiten.KeyF1),
		TogglePause:     inpututil.IsKeyJustPressed(ebiten.KeySpace),
		Step:            inpututil.IsKeyJustPressed(ebiten.KeyPeriod),
		SaveTrace:       inpututil.IsKeyJustPressed(ebiten.KeyF5),
		Quit:            inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}
}

func axis(negative, positive ebiten.Key) int {
	v := 0
	if ebiten.IsKeyPressed(negative) {
		v--
	}
	if ebiten.IsKeyPressed(positive) {
		v++
	}
	return v
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Script replays a fixed list of states, then idles at the last cursor
// position. Useful for headless runs and tests.
type Script struct {
	states []State
	next   int
}

func NewScript(states ...State) *Script {
	return &Script{states: states}
}

// Read returns the next scripted state
func (s *Script) Read() State {
	if s.next < len(s.states) {
		st := s.states[s.next]
		s.next++
		return st
	}
	if len(s.states) == 0 {
		return State{}
	}
	last := s.states[len(s.states)-1]
	return State{CursorX: last.CursorX, CursorY: last.CursorY}
}

// Done reports whether every scripted state has been read.
func (s *Script) Done() bool { return s.next >= len(s.states) }
