// Package trace records the draw queues and pick results of each frame so
// that a later run can be checked against them.
package trace

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// Version is written into every trace.
const Version = "1.0"

// Entry is one queued actor.
type Entry struct {
	Actor string `json:"a"`
	Order int32  `json:"o"`
}

// QueueRecord is the draw queue one camera of one layer built.
type QueueRecord struct {
	Layer   string  `json:"layer"`
	Camera  int     `json:"camera"`
	Entries []Entry `json:"entries"`
}

// Frame records input and output of a single frame
type Frame struct {
	F      int           `json:"f"`            // Frame number
	MX     int           `json:"mx"`           // MouseX
	MY     int           `json:"my"`           // MouseY
	MC     bool          `json:"mc,omitempty"` // MouseClick
	PX     int           `json:"px,omitempty"` // PanX
	PY     int           `json:"py,omitempty"` // PanY
	Z      int           `json:"z,omitempty"`  // Zoom
	Pick   *Entry        `json:"pick,omitempty"`
	Queues []QueueRecord `json:"queues"`
}

// Data is a complete trace.
type Data struct {
	Version   string  `json:"version"`
	Session   string  `json:"session"`
	Scene     string  `json:"scene"`
	StartTime string  `json:"startTime"`
	Frames    []Frame `json:"frames"`
}

// Load reads a trace from a file
func Load(filename string) (*Data, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Read(file)
}

// Read decodes a trace from r.
func Read(r io.Reader) (*Data, error) {
	var data Data
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode trace: %w", err)
	}
	return &data, nil
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("trace_%s.json", time.Now().Format("20060102_150405"))
}
