package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
)

// Config holds all loaded configurations
type Config struct {
	Viewer *ViewerConfig
	Scene  *SceneConfig
}

// Loader loads viewer configuration from JSON files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// LoadViewer loads viewer.json and fills in defaults
func (l *Loader) LoadViewer() (*ViewerConfig, error) {
	data, err := fs.ReadFile(l.fsys, "viewer.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read viewer.json: %w", err)
	}

	var cfg ViewerConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse viewer.json: %w", err)
	}
	cfg.applyDefaults()

	return &cfg, nil
}

// LoadScene loads a scene JSON file
func (l *Loader) LoadScene(name string) (*SceneConfig, error) {
	path := "scenes/" + name + ".json"
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene %s: %w", name, err)
	}

	var cfg SceneConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scene %s: %w", name, err)
	}
	if cfg.Name == "" {
		cfg.Name = name
	}

	return &cfg, nil
}

// LoadAll loads viewer.json, applies SCENECORE_* environment overrides and
// loads the scene the result names.
func (l *Loader) LoadAll() (*Config, error) {
	viewer, err := l.LoadViewer()
	if err != nil {
		return nil, err
	}

	overrides, err := LoadOverrides()
	if err != nil {
		return nil, err
	}
	overrides.Apply(viewer)

	if err := viewer.Validate(); err != nil {
		return nil, err
	}

	scene, err := l.LoadScene(viewer.Scene)
	if err != nil {
		return nil, err
	}

	return &Config{
		Viewer: viewer,
		Scene:  scene,
	}, nil
}

func (c *ViewerConfig) applyDefaults() {
	if c.Display.Scale <= 0 {
		c.Display.Scale = 1
	}
	if c.Display.Framerate <= 0 {
		c.Display.Framerate = 60
	}
	if c.Display.Title == "" {
		c.Display.Title = "scenecore"
	}
	if c.Scene == "" {
		c.Scene = "demo"
	}
}

// Validate checks the values a viewer cannot start without
func (c *ViewerConfig) Validate() error {
	if c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0 {
		return fmt.Errorf("invalid screen size %dx%d", c.Display.ScreenWidth, c.Display.ScreenHeight)
	}
	if c.Trace.MaxFrames < 0 {
		return fmt.Errorf("invalid trace maxFrames %d", c.Trace.MaxFrames)
	}
	return nil
}
