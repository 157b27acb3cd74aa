package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/munch/camera"
	"github.com/pthm-cable/munch/config"
	"github.com/pthm-cable/munch/game"
	"github.com/pthm-cable/munch/ui"
)

// maxStepsPerFrame bounds catch-up after a long frame.
const maxStepsPerFrame = 5

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	autopilot := flag.Bool("autopilot", false, "Let the built-in autopilot play in graphical mode")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:        rngSeed,
		LogStats:    *logStats,
		OutputDir:   *outputDir,
		AutoRestart: *headless,
	}

	if *headless {
		os.Exit(runHeadless(cfg, opts, *maxTicks))
	}
	os.Exit(runWindowed(cfg, opts, *maxTicks, *autopilot))
}

func runHeadless(cfg *config.Config, opts game.Options, maxTicks int) int {
	r, err := game.NewRunner(cfg, opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		return 1
	}
	defer closeRunner(r)

	slog.Info("starting headless run", "seed", opts.Seed, "max_ticks", maxTicks)

	for {
		r.StepAuto()
		if maxTicks > 0 && int(r.Tick()) >= maxTicks {
			slog.Info("max ticks reached",
				"tick", r.Tick(),
				"games", len(r.Finished()),
				"top_score", r.HallOfFame().TopScore(),
			)
			return 0
		}
	}
}

func runWindowed(cfg *config.Config, opts game.Options, maxTicks int, autopilot bool) int {
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Munch")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	rl.SetExitKey(0)

	presenter := ui.NewPresenter()
	opts.Hooks = presenter
	r, err := game.NewRunner(cfg, opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		return 1
	}
	defer closeRunner(r)

	cam := camera.New(float64(cfg.Screen.Width), float64(cfg.Screen.Height), cfg.Screen.PixelsPerUnit)
	scene := ui.NewScene(cfg, cam)
	hud := ui.NewHUD()
	overlays := ui.NewOverlayRegistry()
	controls := ui.NewControlsPanel(10, 130, 220)
	perfPanel := ui.NewPerfPanel(int32(cfg.Screen.Width)-260, 90)
	gameOver := ui.NewGameOverPanel()
	keys := ui.Keyboard{}
	var latch ui.InputLatch

	dt := cfg.Physics.DT
	var acc float64

	for !rl.WindowShouldClose() {
		frame := float64(rl.GetFrameTime())
		r.RecordFrame()
		presenter.Advance(frame)

		cmd := ui.ReadCommands(keys)
		if cmd.Quit {
			break
		}
		if cmd.TogglePause {
			r.Session().SetPaused(!r.Session().Paused())
		}
		if cmd.ToggleControls {
			controls.Toggle()
		}
		if key := rl.GetKeyPressed(); key != 0 {
			overlays.HandleKeyPress(key)
		}
		if cmd.Restart && r.Session().State() == game.StateGameOver {
			r.Session().Restart()
		}
		if rl.IsWindowResized() {
			cam.Resize(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))
		}

		latch.Merge(ui.ReadInput(keys))
		acc += frame
		for steps := 0; acc >= dt && steps < maxStepsPerFrame; steps++ {
			if autopilot {
				r.StepAuto()
			} else {
				r.Step(latch.Take())
			}
			acc -= dt
		}
		if acc > dt {
			acc = 0
		}

		snap := r.Session().Snapshot()
		sw, sh := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())

		rl.BeginDrawing()
		scene.Draw(&snap, overlays)
		hud.Draw(&snap, presenter, sw, sh)
		controls.Draw(overlays)
		if overlays.IsEnabled(ui.OverlayPerf) {
			perfPanel.SetPosition(sw-260, 90)
			perfPanel.Draw(r.Perf().Stats())
		}
		if overlays.IsEnabled(ui.OverlayEventFeed) {
			hud.DrawFeed(presenter, sh)
		}
		quit := false
		if snap.State == game.StateGameOver {
			switch gameOver.Draw(&snap, presenter, r.HallOfFame().Entries(), sw, sh) {
			case ui.GameOverRestart:
				r.Session().Restart()
			case ui.GameOverQuit:
				quit = true
			}
		}
		hud.DrawControls(sw, sh, "W/S move | Space eat | 1-3 power-ups | P pause | Tab help")
		rl.EndDrawing()

		if quit || (maxTicks > 0 && int(r.Tick()) >= maxTicks) {
			break
		}
	}
	return 0
}

func closeRunner(r *game.Runner) {
	if err := r.Close(); err != nil {
		slog.Error("failed to flush output", "error", err)
	}
}
