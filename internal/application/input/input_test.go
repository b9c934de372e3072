package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_Idle(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  bool
	}{
		{"zero", State{}, true},
		{"cursor only", State{CursorX: 10, CursorY: 20}, true},
		{"click", State{Click: true}, false},
		{"pan", State{PanX: -1}, false},
		{"zoom", State{Zoom: 1}, false},
		{"pause", State{TogglePause: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.Idle())
		})
	}
}

func TestSign(t *testing.T) {
	assert.Equal(t, 1, sign(0.5))
	assert.Equal(t, -1, sign(-3))
	assert.Equal(t, 0, sign(0))
}

func TestScript(t *testing.T) {
	s := NewScript(
		State{CursorX: 1, CursorY: 2, Click: true},
		State{CursorX: 5, CursorY: 6, PanX: 1},
	)

	assert.False(t, s.Done())
	assert.Equal(t, State{CursorX: 1, CursorY: 2, Click: true}, s.Read())
	assert.Equal(t, State{CursorX: 5, CursorY: 6, PanX: 1}, s.Read())
	assert.True(t, s.Done())

	assert.Equal(t, State{CursorX: 5, CursorY: 6}, s.Read(), "idles at the last cursor position")
}

func TestScript_Empty(t *testing.T) {
	s := NewScript()

	assert.True(t, s.Done())
	assert.Equal(t, State{}, s.Read())
}
