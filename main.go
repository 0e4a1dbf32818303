package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/pthm-cable/flock/camera"
	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/game"
	"github.com/pthm-cable/flock/history"
	"github.com/pthm-cable/flock/systems"
	"github.com/pthm-cable/flock/ui"
)

// runOptions are read from FLOCK_* environment variables (and .env) first;
// flags override them.
type runOptions struct {
	Config      string  `env:"FLOCK_CONFIG"`
	Seed        int64   `env:"FLOCK_SEED"`
	Headless    bool    `env:"FLOCK_HEADLESS"`
	LogStats    bool    `env:"FLOCK_LOG_STATS"`
	StatsWindow float64 `env:"FLOCK_STATS_WINDOW"`
	OutputDir   string  `env:"FLOCK_OUTPUT_DIR"`
	History     string  `env:"FLOCK_HISTORY"`
	LogFile     string  `env:"FLOCK_LOG_FILE"`
	LogLevel    string  `env:"FLOCK_LOG_LEVEL" envDefault:"info"`
	MaxTicks    int     `env:"FLOCK_MAX_TICKS"`
}

func main() {
	// A missing .env is normal.
	_ = godotenv.Load()

	var ro runOptions
	if err := env.Parse(&ro); err != nil {
		slog.Error("failed to read environment", "error", err)
		os.Exit(1)
	}

	// CLI flags
	flag.StringVar(&ro.Config, "config", ro.Config, "Path to config.yaml (empty = use defaults)")
	flag.Int64Var(&ro.Seed, "seed", ro.Seed, "RNG seed (0 = time-based)")
	flag.BoolVar(&ro.Headless, "headless", ro.Headless, "Run autopilot sessions without graphics")
	flag.BoolVar(&ro.LogStats, "log-stats", ro.LogStats, "Output window stats via slog")
	flag.Float64Var(&ro.StatsWindow, "stats-window", ro.StatsWindow, "Stats window size in seconds (0 = use config)")
	flag.StringVar(&ro.OutputDir, "output-dir", ro.OutputDir, "Output directory for CSV logs and config snapshot")
	flag.StringVar(&ro.History, "history", ro.History, "SQLite file recording finished sessions (empty = off)")
	flag.StringVar(&ro.LogFile, "log-file", ro.LogFile, "Rotated log file (empty = stdout)")
	flag.StringVar(&ro.LogLevel, "log-level", ro.LogLevel, "Log level: debug, info, warn, error")
	flag.IntVar(&ro.MaxTicks, "max-ticks", ro.MaxTicks, "Stop after N ticks (0 = unlimited, headless: one session)")
	flag.Parse()

	setupLogging(ro)

	// Initialize config before anything else
	if err := config.Init(ro.Config); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := ro.Seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	var store *history.Store
	if ro.History != "" {
		s, err := history.Open(ro.History)
		if err != nil {
			slog.Error("failed to open history", "path", ro.History, "error", err)
			os.Exit(1)
		}
		defer s.Close()
		store = s
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       ro.LogStats,
		StatsWindowSec: ro.StatsWindow,
		OutputDir:      ro.OutputDir,
		OnGameOver: func(res game.Result) {
			if store == nil {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := store.Record(ctx, res); err != nil {
				slog.Error("failed to record session", "session", res.Session, "error", err)
			}
		},
	}

	g, err := game.NewGame(opts)
	if err != nil {
		slog.Error("failed to start game", "error", err)
		os.Exit(1)
	}
	defer g.Close()

	if ro.Headless {
		runHeadless(g, ro.MaxTicks)
		return
	}
	runWindow(g, cfg, store, ro.MaxTicks)
}

// setupLogging installs a JSON slog handler on stdout or a rotated file.
func setupLogging(ro runOptions) {
	var out io.Writer = os.Stdout
	if ro.LogFile != "" {
		out = &lumberjack.Logger{
			Filename:   ro.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(ro.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})))
}

// runHeadless plays autopilot sessions back to back. Without a tick limit
// it stops after the first session ends.
func runHeadless(g *game.Game, maxTicks int) {
	pilot := game.NewAutopilot()
	slog.Info("starting headless simulation", "max_ticks", maxTicks)

	total := 0
	for {
		g.Step(pilot.Poll(g))
		total++

		if maxTicks > 0 && total >= maxTicks {
			slog.Info("max ticks reached", "tick", total)
			return
		}
		if g.State() == game.GameOver {
			if maxTicks == 0 {
				return
			}
			g.Reset()
		}
	}
}

// runWindow drives the game from a raylib window with a fixed-step
// accumulator.
func runWindow(g *game.Game, cfg *config.Config, store *history.Store, maxTicks int) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Flock")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	// Escape clears the inspector selection instead of closing the window.
	rl.SetExitKey(0)

	cam := camera.New(cfg.Derived.ScreenW32, cfg.Derived.ScreenH32, cfg.Derived.Bounds)
	scene := ui.NewScene(cam)
	hud := ui.NewHUD()
	perfPanel := ui.NewPerfPanel(int32(cfg.Screen.Width)-270, 10, systems.NewSystemRegistry())
	gameOver := ui.NewGameOverPanel()
	inspect := ui.NewInspectorPanel(cam)
	keyboard := &ui.Keyboard{}

	best := bestLine(store)
	showPerf := false
	stepper := game.NewFixedStep(cfg.Derived.DT32)
	total := 0

	for !rl.WindowShouldClose() {
		if rl.IsWindowResized() {
			cam.Resize(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
			perfPanel.SetPosition(int32(rl.GetScreenWidth())-270, 10)
		}
		if rl.IsKeyPressed(rl.KeyF3) {
			showPerf = !showPerf
		}
		if rl.IsKeyPressed(rl.KeyF11) {
			rl.ToggleFullscreen()
		}

		if g.State() == game.Playing {
			inspect.HandleInput(g)
		}

		total += stepper.Advance(rl.GetFrameTime(), keyboard.Poll(g), g.Step)
		g.Perf().RecordFrame()

		sw, sh := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
		action := ui.ActionNone

		rl.BeginDrawing()
		scene.Draw(g)
		hud.Draw(ui.HUDData{Status: g.Status(), FPS: rl.GetFPS(), Best: best})
		hud.DrawControls(sh)
		if showPerf {
			perfPanel.Draw(g.Perf().Stats())
		}
		inspect.Draw(g, sw, sh)
		if g.State() == game.GameOver {
			action = gameOver.Draw(g.Result(), sw, sh)
		}
		rl.EndDrawing()

		switch action {
		case ui.ActionRestart:
			best = bestLine(store)
			g.Reset()
			stepper.Reset()
		case ui.ActionQuit:
			return
		}

		if maxTicks > 0 && total >= maxTicks {
			break
		}
	}
}

// bestLine summarizes the best stored session for the HUD.
func bestLine(store *history.Store) string {
	if store == nil {
		return ""
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	e, ok, err := store.Best(ctx)
	if err != nil {
		slog.Warn("failed to read best session", "error", err)
		return ""
	}
	if !ok {
		return ""
	}
	return e.Summary()
}
