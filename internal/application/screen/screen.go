// Package screen defines the Screen interface for viewer screens.
//
// Each screen (scene viewer, trace verifier, etc.) implements the Screen
// interface to handle its own update logic and rendering.
package screen

import "github.com/hajimehoshi/ebiten/v2"

// Screen represents one full-window view.
//
// The game loop delegates Update and Draw calls to the current screen.
// Screen transitions are handled by returning a new Screen from Update.
type Screen interface {
	// Update advances the screen state.
	// dt is the delta time in seconds (typically 1/60).
	// Returns the next screen if a transition is needed, nil to stay.
	// Returns an error to terminate the loop.
	Update(dt float64) (next Screen, err error)

	// Draw renders the screen.
	Draw(target *ebiten.Image)

	// OnEnter is called when entering this screen.
	OnEnter()

	// OnExit is called when leaving this screen.
	OnExit()
}
