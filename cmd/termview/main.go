// Command termview draws a scene into the terminal, or runs it headless
// against a simulated screen to record or verify frame traces.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/younwookim/scenecore/internal/application/input"
	"github.com/younwookim/scenecore/internal/application/screen/viewer"
	"github.com/younwookim/scenecore/internal/application/trace"
	"github.com/younwookim/scenecore/internal/domain/scenegraph"
	"github.com/younwookim/scenecore/internal/infrastructure/config"
	"github.com/younwookim/scenecore/internal/infrastructure/render/termrender"
)

func main() {
	configFlag := flag.String("config", "cmd/viewer/configs", "Config directory")
	sceneFlag := flag.String("scene", "", "Scene to load (default from viewer.json)")
	traceFlag := flag.String("trace", "", "Record a frame trace to file")
	replayFlag := flag.String("replay", "", "Replay a frame trace and verify every frame (implies -headless)")
	headless := flag.Bool("headless", false, "Draw into a simulated screen the size of the display config")
	frames := flag.Int("frames", 1, "Frames to run in headless mode without -replay")
	flag.Parse()

	loader := config.NewLoader(*configFlag)
	cfg, err := loader.LoadAll()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *sceneFlag != "" {
		if cfg.Scene, err = loader.LoadScene(*sceneFlag); err != nil {
			log.Fatalf("Failed to load scene: %v", err)
		}
	}
	if *traceFlag != "" {
		cfg.Viewer.Trace.Path = *traceFlag
	}
	if lvl := cfg.Viewer.Debug.LogLevel; lvl != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(lvl)); err != nil {
			log.Fatalf("Invalid log level %q: %v", lvl, err)
		}
		scenegraph.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
	}

	var replay *trace.Data
	if *replayFlag != "" {
		if replay, err = trace.Load(*replayFlag); err != nil {
			log.Fatalf("Failed to load trace: %v", err)
		}
		*headless = true
	}

	screen, err := newScreen(*headless, cfg.Viewer.Display)
	if err != nil {
		log.Fatalf("Failed to open screen: %v", err)
	}

	renderer := termrender.New(screen)
	renderer.SetBackground(cfg.Viewer.Display.Background)

	var recorder *trace.Recorder
	if cfg.Viewer.Trace.Path != "" {
		recorder = trace.NewRecorder(cfg.Scene.Name, cfg.Viewer.Trace.MaxFrames)
	}
	session, err := viewer.NewSession(viewer.Options{
		Scene:     cfg.Scene,
		Renderer:  renderer,
		Recorder:  recorder,
		Replay:    replay,
		TracePath: cfg.Viewer.Trace.Path,
		Wireframe: cfg.Viewer.Debug.Wireframe,
	})
	if err != nil {
		screen.Fini()
		log.Fatalf("Failed to create session: %v", err)
	}

	dt := 1.0 / float64(cfg.Viewer.Display.Framerate)
	session.Enter()
	if *headless {
		n := *frames
		if replay != nil {
			n = len(replay.Frames)
		}
		runHeadless(session, renderer, n, dt)
	} else {
		runInteractive(screen, session, renderer, dt)
	}
	session.Leave()
	screen.Fini()

	if err := session.Verify(); err != nil {
		log.Fatalf("Replay failed: %v", err)
	}
	log.Printf("%s: %d frames, state %s", cfg.Scene.Name, session.Frames(), session.State())
}

func newScreen(headless bool, display config.DisplayConfig) (tcell.Screen, error) {
	if headless {
		sim := tcell.NewSimulationScreen("UTF-8")
		if err := sim.Init(); err != nil {
			return nil, err
		}
		sim.SetSize(display.ScreenWidth, (display.ScreenHeight+1)/2)
		return sim, nil
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()
	return screen, nil
}

// runHeadless steps and draws frames frames with idle input, or until the
// session stops on its own.
func runHeadless(session *viewer.Session, renderer *termrender.Renderer, frames int, dt float64) {
	for i := 0; i < frames && !session.State().Terminal(); i++ {
		session.Step(input.State{}, dt)
		drawFrame(session, renderer)
	}
}

func runInteractive(screen tcell.Screen, session *viewer.Session, renderer *termrender.Renderer, dt float64) {
	ticker := time.NewTicker(time.Duration(dt * float64(time.Second)))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	var reader eventReader
	for {
		select {
		case ev := <-events:
			if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
			}
			reader.handle(ev)

		case <-ticker.C:
			in := reader.Read()
			if in.Quit {
				return
			}
			session.Step(in, dt)
			drawFrame(session, renderer)
			if session.State().Terminal() {
				return
			}
		}
	}
}

func drawFrame(session *viewer.Session, renderer *termrender.Renderer) {
	renderer.Begin()
	session.Draw()
	renderer.Present()
}
