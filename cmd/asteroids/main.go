package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/EngoEngine/engo"
	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-asteroids/pkg/config"
	"github.com/opd-ai/go-asteroids/pkg/engine"
	"github.com/opd-ai/go-asteroids/pkg/input"
	"github.com/opd-ai/go-asteroids/pkg/logging"
	"github.com/opd-ai/go-asteroids/pkg/render"
	engorender "github.com/opd-ai/go-asteroids/pkg/render/engo"
)

// terminalScale is world units per terminal column
const terminalScale = 2.0

func main() {
	configPath := flag.String("config", "", "Path to configuration file (JSON)")
	createDefault := flag.Bool("default", false, "Write the default configuration to -config and exit")
	rendererName := flag.String("renderer", "", "Frontend: terminal, engo or headless (overrides config)")
	logPath := flag.String("log", "", "Log file; the terminal frontend discards logs when unset")
	duration := flag.Duration("duration", time.Minute, "Simulated run length for the headless frontend")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *createDefault {
		if err := writeDefault(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *rendererName != "" {
		cfg.Frontend.Renderer = *rendererName
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	logger, closeLog, err := newLogger(cfg, *logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(ctx, cfg, logger, *duration); err != nil {
		logger.Error(ctx, "asteroids exited with error", err)
		os.Exit(1)
	}
}

func writeDefault(path string) error {
	if path == "" {
		path = "config.json"
	}
	if err := config.SaveConfig(config.DefaultConfig(), path); err != nil {
		return fmt.Errorf("creating default configuration: %w", err)
	}
	fmt.Printf("Created default configuration file %s\n", path)
	return nil
}

// newLogger picks the log destination. The terminal frontend owns stdout.
func newLogger(cfg *config.GameConfig, path string) (*logging.Logger, func(), error) {
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		return logging.NewLoggerWithWriter(f, cfg.Logging.Level), func() { f.Close() }, nil
	}
	var w io.Writer = os.Stdout
	if cfg.Frontend.Renderer == "terminal" {
		w = io.Discard
	}
	return logging.NewLoggerWithWriter(w, cfg.Logging.Level), func() {}, nil
}

func run(ctx context.Context, cfg *config.GameConfig, logger *logging.Logger, duration time.Duration) error {
	opts := []engine.Option{engine.WithLogger(logger), engine.WithContext(ctx)}

	var metrics *engine.Metrics
	if cfg.Metrics.Enabled {
		m, err := engine.NewMetrics()
		if err != nil {
			return fmt.Errorf("creating metrics: %w", err)
		}
		metrics = m
		opts = append(opts, engine.WithMetrics(metrics))
	}

	session := engine.NewSession(cfg, opts...)
	if err := metrics.Observe(session); err != nil {
		return err
	}
	defer metrics.Close()

	switch cfg.Frontend.Renderer {
	case "engo":
		runEngo(cfg, session, logger)
		return nil
	case "headless":
		return runHeadless(ctx, cfg, session, logger, duration)
	default:
		return runTerminal(ctx, cfg, session, logger)
	}
}

func runEngo(cfg *config.GameConfig, session *engine.Session, logger *logging.Logger) {
	scene := engorender.NewGameScene(session, input.NewController(cfg.Input), logger)
	engo.Run(engo.RunOptions{
		Title:    cfg.Frontend.Title,
		Width:    cfg.Frontend.Width,
		Height:   cfg.Frontend.Height,
		FPSLimit: cfg.Frontend.FPS,
		VSync:    true,
	}, scene)
}

// runHeadless steps the simulation on a fixed timestep with no player input
func runHeadless(ctx context.Context, cfg *config.GameConfig, session *engine.Session, logger *logging.Logger, duration time.Duration) error {
	renderer := render.NewNullRenderer(logger)
	step := 1.0 / float64(cfg.Frontend.FPS)
	end := duration.Seconds()

	for now := 0.0; now <= end && session.Running(); now += step {
		if ctx.Err() != nil {
			session.Quit()
			break
		}
		session.Tick(now, engine.Input{})
		session.Render(renderer)
	}

	state := session.Snapshot()
	logger.Info(ctx, "headless run finished",
		"ticks", state.Tick,
		"sim_seconds", state.Time,
		"frames", renderer.Frames(),
		"asteroids", len(state.Asteroids),
		"state", state.State.String(),
		"stale_collisions", session.StaleCollisions(),
	)
	return nil
}

// runTerminal runs the tcell frontend: a polling goroutine feeds events
// to the main loop, which ticks on a frame ticker
func runTerminal(ctx context.Context, cfg *config.GameConfig, session *engine.Session, logger *logging.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialising screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	ctrl := input.NewController(cfg.Input)
	adapter := input.NewTerminalAdapter(ctrl)
	renderer := render.NewTerminalRenderer(screen, terminalScale)

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(cfg.Frontend.FPS))
	defer ticker.Stop()
	start := time.Now()

	for {
		select {
		case <-ctx.Done():
			session.Quit()
			return nil

		case ev := <-events:
			if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
				continue
			}
			adapter.Handle(ev)

		case <-ticker.C:
			now := time.Now()
			session.Tick(now.Sub(start).Seconds(), ctrl.Frame(now))
			if !session.Running() {
				logger.Info(ctx, "player quit", "score", session.Score())
				return nil
			}
			state := session.Snapshot()
			renderer.SetCenter(state.Ship.Position)
			renderer.SetHUD(engine.NewHUD(state))
			session.Render(renderer)
		}
	}
}
