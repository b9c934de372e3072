package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Overrides are optional environment settings layered over viewer.json.
// Zero values leave the file's setting in place.
type Overrides struct {
	Width  int    `envconfig:"WIDTH"`
	Height int    `envconfig:"HEIGHT"`
	Scale  int    `envconfig:"SCALE"`
	Scene  string `envconfig:"SCENE"`
	Trace  string `envconfig:"TRACE"`
}

// LoadOverrides reads SCENECORE_WIDTH, SCENECORE_HEIGHT, SCENECORE_SCALE,
// SCENECORE_SCENE and SCENECORE_TRACE.
func LoadOverrides() (*Overrides, error) {
	var o Overrides
	if err := envconfig.Process("scenecore", &o); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return &o, nil
}

// Apply copies every set override into cfg.
func (o *Overrides) Apply(cfg *ViewerConfig) {
	if o.Width > 0 {
		cfg.Display.ScreenWidth = o.Width
	}
	if o.Height > 0 {
		cfg.Display.ScreenHeight = o.Height
	}
	if o.Scale > 0 {
		cfg.Display.Scale = o.Scale
	}
	if o.Scene != "" {
		cfg.Scene = o.Scene
	}
	if o.Trace != "" {
		cfg.Trace.Path = o.Trace
	}
}
