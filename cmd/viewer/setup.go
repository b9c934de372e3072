package main

import (
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"log"
	"log/slog"
	"os"

	"github.com/younwookim/scenecore/internal/application/trace"
	"github.com/younwookim/scenecore/internal/domain/scenegraph"
	"github.com/younwookim/scenecore/internal/infrastructure/config"
)

// newLoader reads configs from dir, or from the embedded copy when dir is
// empty.
func newLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

// loadConfig loads viewer.json and the scene, honoring the -scene flag.
func loadConfig(loader *config.Loader, scene string) (*config.Config, error) {
	cfg, err := loader.LoadAll()
	if err != nil {
		return nil, err
	}
	if scene != "" && scene != cfg.Scene.Name {
		sc, err := loader.LoadScene(scene)
		if err != nil {
			return nil, err
		}
		cfg.Scene = sc
		cfg.Viewer.Scene = scene
	}
	return cfg, nil
}

// setupLogger routes scene graph logs to stderr. An empty level keeps the
// scene graph silent.
func setupLogger(level string) error {
	if level == "" {
		return nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	scenegraph.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
	return nil
}

// newRecorder returns a recorder when a trace path is configured.
func newRecorder(cfg *config.Config) *trace.Recorder {
	if cfg.Viewer.Trace.Path == "" {
		return nil
	}
	log.Printf("Trace enabled: %s", cfg.Viewer.Trace.Path)
	return trace.NewRecorder(cfg.Scene.Name, cfg.Viewer.Trace.MaxFrames)
}

// checkerPixels draws a size x size checkerboard with cells of cell pixels.
func checkerPixels(size, cell int, a, b color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.Set(x, y, a)
			} else {
				img.Set(x, y, b)
			}
		}
	}
	return img
}
