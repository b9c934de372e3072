package main

import (
	"errors"
	"flag"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/scenecore/internal/application/game"
	"github.com/younwookim/scenecore/internal/application/input"
	"github.com/younwookim/scenecore/internal/application/screen/viewer"
	"github.com/younwookim/scenecore/internal/application/trace"
	"github.com/younwookim/scenecore/internal/domain/scenegraph"
	"github.com/younwookim/scenecore/internal/infrastructure/render/ebitenrender"
)

// textures builds the named textures scene files can reference.
func textures() map[string]*ebiten.Image {
	return map[string]*ebiten.Image{
		"checker": ebiten.NewImageFromImage(checkerPixels(64, 8,
			color.RGBA{230, 230, 230, 255}, color.RGBA{90, 110, 200, 255})),
	}
}

func main() {
	sceneFlag := flag.String("scene", "", "Scene to load (e.g., -scene demo)")
	traceFlag := flag.String("trace", "", "Record a frame trace to file (e.g., -trace trace.json)")
	replayFlag := flag.String("replay", "", "Replay a frame trace and verify every frame")
	configFlag := flag.String("config", "", "Config directory (default: embedded configs)")
	flag.Parse()

	loader, err := newLoader(*configFlag)
	if err != nil {
		log.Fatalf("Failed to open configs: %v", err)
	}
	cfg, err := loadConfig(loader, *sceneFlag)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *traceFlag != "" {
		cfg.Viewer.Trace.Path = *traceFlag
	}
	if err := setupLogger(cfg.Viewer.Debug.LogLevel); err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}

	var replay *trace.Data
	if *replayFlag != "" {
		replay, err = trace.Load(*replayFlag)
		if err != nil {
			log.Fatalf("Failed to load trace: %v", err)
		}
		log.Printf("Replaying %s (%d frames)", *replayFlag, len(replay.Frames))
	}

	images := textures()
	renderer := ebitenrender.New()
	session, err := viewer.NewSession(viewer.Options{
		Scene:    cfg.Scene,
		Renderer: renderer,
		Textures: func(name string) scenegraph.Texture {
			img, ok := images[name]
			if !ok {
				log.Printf("Unknown texture %q", name)
				return nil
			}
			return img
		},
		Recorder:  newRecorder(cfg),
		Replay:    replay,
		TracePath: cfg.Viewer.Trace.Path,
		Wireframe: cfg.Viewer.Debug.Wireframe,
	})
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}

	display := cfg.Viewer.Display
	screen := viewer.New(session, renderer, input.Ebiten{}, display.Background, cfg.Viewer.Debug.ShowStats)
	g := game.New(screen, display.ScreenWidth, display.ScreenHeight)
	g.SetDT(1.0 / float64(display.Framerate))

	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle(display.Title)
	ebiten.SetTPS(display.Framerate)

	err = ebiten.RunGame(g)
	g.Close()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
