package trace

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/younwookim/scenecore/internal/application/input"
	"github.com/younwookim/scenecore/internal/domain/scenegraph"
)

// ErrNoFrames is returned when saving or comparing an empty trace.
var ErrNoFrames = errors.New("no frames")

// Recorder collects one Frame per BeginFrame/EndFrame pair. Queues are
// captured through the OnQueueBuilt hook of every observed layer.
type Recorder struct {
	data      Data
	maxFrames int
	recording bool

	current *Frame
}

// NewRecorder creates a recording recorder. A maxFrames of zero records
// until Stop is called.
func NewRecorder(scene string, maxFrames int) *Recorder {
	return &Recorder{
		data: Data{
			Version:   Version,
			Session:   uuid.NewString(),
			Scene:     scene,
			StartTime: time.Now().Format(time.RFC3339),
			Frames:    make([]Frame, 0, 600),
		},
		maxFrames: maxFrames,
		recording: true,
	}
}

// Observe hooks the layer's queue callback. A callback already installed
// keeps being called first.
func (r *Recorder) Observe(layer *scenegraph.Layer) {
	prev := layer.OnQueueBuilt
	name := layer.Name()
	layer.OnQueueBuilt = func(camera *scenegraph.Camera, queue *scenegraph.DrawQueue) {
		if prev != nil {
			prev(camera, queue)
		}
		r.recordQueue(name, cameraIndex(layer, camera), queue)
	}
}

// ObserveScene hooks every layer of the scene.
func (r *Recorder) ObserveScene(scene *scenegraph.Scene) {
	for _, l := range scene.Layers() {
		r.Observe(l)
	}
}

func cameraIndex(layer *scenegraph.Layer, camera *scenegraph.Camera) int {
	for i, c := range layer.Cameras() {
		if c == camera {
			return i
		}
	}
	return -1
}

// BeginFrame opens a frame holding the given input.
func (r *Recorder) BeginFrame(in input.State) {
	if !r.recording {
		return
	}
	r.current = &Frame{
		F:  len(r.data.Frames),
		MX: in.CursorX,
		MY: in.CursorY,
		MC: in.Click,
		PX: in.PanX,
		PY: in.PanY,
		Z:  in.Zoom,
	}
}

// RecordPick stores the actor picked in the open frame.
func (r *Recorder) RecordPick(actor *scenegraph.Actor) {
	if r.current == nil || actor == nil {
		return
	}
	r.current.Pick = &Entry{Actor: ActorName(actor), Order: actor.WorldOrder()}
}

func (r *Recorder) recordQueue(layer string, camera int, queue *scenegraph.DrawQueue) {
	if r.current == nil {
		return
	}
	rec := QueueRecord{
		Layer:   layer,
		Camera:  camera,
		Entries: make([]Entry, 0, queue.Len()),
	}
	for _, a := range queue.Actors() {
		rec.Entries = append(rec.Entries, Entry{Actor: ActorName(a), Order: a.WorldOrder()})
	}
	r.current.Queues = append(r.current.Queues, rec)
}

// EndFrame closes the open frame and stops once maxFrames is reached.
func (r *Recorder) EndFrame() {
	if r.current == nil {
		return
	}
	r.data.Frames = append(r.data.Frames, *r.current)
	r.current = nil
	if r.maxFrames > 0 && len(r.data.Frames) >= r.maxFrames {
		r.Stop()
	}
}

// LastFrame returns the most recently closed frame.
func (r *Recorder) LastFrame() (Frame, bool) {
	if len(r.data.Frames) == 0 {
		return Frame{}, false
	}
	return r.data.Frames[len(r.data.Frames)-1], true
}

// Save writes the trace to a file
func (r *Recorder) Save(filename string) error {
	if len(r.data.Frames) == 0 {
		return ErrNoFrames
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return r.Write(file)
}

// Write encodes the trace as indented JSON.
func (r *Recorder) Write(w io.Writer) error {
	if len(r.data.Frames) == 0 {
		return ErrNoFrames
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode trace: %w", err)
	}
	return nil
}

// Stop stops recording; an open frame is discarded.
func (r *Recorder) Stop() {
	r.recording = false
	r.current = nil
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// Data returns the recorded trace.
func (r *Recorder) Data() Data {
	return r.data
}

// ActorName identifies an actor in a trace: its name when set, otherwise
// its generated id.
func ActorName(a *scenegraph.Actor) string {
	if name := a.Name(); name != "" {
		return name
	}
	return a.ID()
}
