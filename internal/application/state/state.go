// Package state holds the run state of a viewer session.
package state

// ViewerState represents what a session does with each frame
type ViewerState int

const (
	StateLoading ViewerState = iota
	StateRunning
	StatePaused
	StateReplaying
	StateFinished
	StateMismatch
)

// String returns the string representation of the viewer state
func (s ViewerState) String() string {
	switch s {
	case StateLoading:
		return "Loading"
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	case StateReplaying:
		return "Replaying"
	case StateFinished:
		return "Finished"
	case StateMismatch:
		return "Mismatch"
	default:
		return "Unknown"
	}
}

// Animating reports whether tweens advance in this state.
func (s ViewerState) Animating() bool {
	return s == StateRunning || s == StateReplaying
}

// Terminal reports whether the session has stopped consuming frames.
func (s ViewerState) Terminal() bool {
	return s == StateFinished || s == StateMismatch
}
