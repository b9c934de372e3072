package trace

import (
	"errors"
	"fmt"
	"slices"

	"github.com/younwookim/scenecore/internal/application/input"
)

// ErrTraceMismatch is returned when a frame differs from its recording.
var ErrTraceMismatch = errors.New("trace mismatch")

// Replayer feeds recorded input back frame by frame.
type Replayer struct {
	data  Data
	frame int
}

// NewReplayer creates a new replayer from trace data
func NewReplayer(data Data) *Replayer {
	return &Replayer{data: data}
}

// Next returns the input of the current frame and advances.
func (r *Replayer) Next() (input.State, bool) {
	if r.frame >= len(r.data.Frames) {
		return input.State{}, false
	}
	f := r.data.Frames[r.frame]
	r.frame++
	return Input(f), true
}

// Expected returns the recorded frame with the given number.
func (r *Replayer) Expected(frame int) (Frame, bool) {
	if frame < 0 || frame >= len(r.data.Frames) {
		return Frame{}, false
	}
	return r.data.Frames[frame], true
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Done reports whether every frame has been replayed.
func (r *Replayer) Done() bool {
	return r.frame >= len(r.data.Frames)
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}

// Input converts a recorded frame back into input state.
func Input(f Frame) input.State {
	return input.State{
		CursorX: f.MX,
		CursorY: f.MY,
		Click:   f.MC,
		PanX:    f.PX,
		PanY:    f.PY,
		Zoom:    f.Z,
	}
}

// CompareFrames checks that got produced the same queues and pick as want.
func CompareFrames(want, got Frame) error {
	if !pickEqual(want.Pick, got.Pick) {
		return fmt.Errorf("%w: frame %d: pick %s, recorded %s", ErrTraceMismatch, got.F, describe(got.Pick), describe(want.Pick))
	}
	if len(want.Queues) != len(got.Queues) {
		return fmt.Errorf("%w: frame %d: %d queues, recorded %d", ErrTraceMismatch, got.F, len(got.Queues), len(want.Queues))
	}
	for i := range want.Queues {
		w, g := want.Queues[i], got.Queues[i]
		if w.Layer != g.Layer || w.Camera != g.Camera {
			return fmt.Errorf("%w: frame %d: queue %d is %s/%d, recorded %s/%d", ErrTraceMismatch, got.F, i, g.Layer, g.Camera, w.Layer, w.Camera)
		}
		if !slices.Equal(w.Entries, g.Entries) {
			return fmt.Errorf("%w: frame %d: layer %s camera %d: queue %v, recorded %v", ErrTraceMismatch, got.F, g.Layer, g.Camera, g.Entries, w.Entries)
		}
	}
	return nil
}

// Compare checks two traces frame by frame. Only the frames both traces
// hold are compared.
func Compare(want, got Data) error {
	if len(want.Frames) == 0 || len(got.Frames) == 0 {
		return ErrNoFrames
	}
	n := min(len(want.Frames), len(got.Frames))
	for i := 0; i < n; i++ {
		if err := CompareFrames(want.Frames[i], got.Frames[i]); err != nil {
			return err
		}
	}
	return nil
}

func pickEqual(a, b *Entry) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func describe(e *Entry) string {
	if e == nil {
		return "none"
	}
	return fmt.Sprintf("%s@%d", e.Actor, e.Order)
}
