package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/younwookim/scenecore/internal/application/input"
)

// eventReader folds tcell events into the input of the next frame.
type eventReader struct {
	pending    input.State
	buttonDown bool
}

// handle applies ev. Cell rows map to two pixel rows.
func (r *eventReader) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		r.handleKey(ev)
	case *tcell.EventMouse:
		x, y := ev.Position()
		r.pending.CursorX, r.pending.CursorY = x, y*2
		btn := ev.Buttons()
		down := btn&tcell.Button1 != 0
		if down && !r.buttonDown {
			r.pending.Click = true
		}
		r.buttonDown = down
		switch {
		case btn&tcell.WheelUp != 0:
			r.pending.Zoom = 1
		case btn&tcell.WheelDown != 0:
			r.pending.Zoom = -1
		}
	}
}

func (r *eventReader) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		r.pending.Quit = true
	case tcell.KeyLeft:
		r.pending.PanX = -1
	case tcell.KeyRight:
		r.pending.PanX = 1
	case tcell.KeyUp:
		r.pending.PanY = -1
	case tcell.KeyDown:
		r.pending.PanY = 1
	case tcell.KeyF1:
		r.pending.ToggleWireframe = true
	case tcell.KeyF5:
		r.pending.SaveTrace = true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			r.pending.Quit = true
		case ' ':
			r.pending.TogglePause = true
		case '.':
			r.pending.Step = true
		case 'w':
			r.pending.ToggleWireframe = true
		case '+':
			r.pending.Zoom = 1
		case '-':
			r.pending.Zoom = -1
		}
	}
}

// Read returns the collected input and starts a new frame at the same
// cursor position (implements input.Source).
func (r *eventReader) Read() input.State {
	st := r.pending
	r.pending = input.State{CursorX: st.CursorX, CursorY: st.CursorY}
	return st
}
