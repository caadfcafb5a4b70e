package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"actionmap/pkg/engine/device"
	"actionmap/pkg/engine/input"
	"actionmap/pkg/engine/logger"
	"actionmap/pkg/engine/settings"
	"actionmap/pkg/game/config"
	"actionmap/pkg/game/renderer"
	ebitenhost "actionmap/pkg/game/renderer/ebiten"
	"actionmap/pkg/game/renderer/tui"
	"actionmap/pkg/game/state"
)

func initGettext() {
	gotext.Configure("locales", "en", "default")
}

func loadConfig(path, backend, settingsPath string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if backend != "" {
		cfg.Host.Backend = backend
	}
	if settingsPath != "" {
		cfg.Settings.Path = settingsPath
	}
	return cfg, cfg.Validate()
}

// initLogger installs the process logger. The returned closer releases the
// log file, if one was opened.
func initLogger(cfg config.LoggingConfig) (io.Closer, error) {
	lc := logger.Config{Level: cfg.Level, Format: cfg.Format}
	if cfg.File == "" {
		lc.Output = os.Stderr
		lc.Color = color.SupportColor()
		logger.Init(lc)
		return io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	lc.Output = f
	logger.Init(lc)
	return f, nil
}

// newHost builds the input device and the host for the configured backend.
func newHost(cfg *config.Config) (input.Device, renderer.Renderer) {
	if cfg.Host.Backend == config.BackendTUI {
		dev := device.NewTerminal(os.Stdin, device.HoldTicks(device.DefaultHold, cfg.TickInterval()))
		return dev, tui.New(dev, cfg.TickInterval(), os.Stdout)
	}
	dev := ebitenhost.NewEbiten()
	return dev, ebitenhost.New(dev, cfg.Host)
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.L()

	store, err := settings.Open(cfg.Settings.Path)
	if err != nil {
		return fmt.Errorf("open settings: %w", err)
	}

	dev, host := newHost(cfg)
	renderer.SetRenderer(host)

	g, err := state.NewGame(cfg, dev,
		state.WithSettings(settings.NewBridge(store, log)),
		state.WithLogger(log),
	)
	if err != nil {
		return err
	}
	if err := g.Start(); err != nil {
		return err
	}
	log.Info("session started", "backend", cfg.Host.Backend, "settings", cfg.Settings.Path)

	runErr := host.Run(ctx, g)
	if err := g.Stop(); err != nil {
		log.Error("saving bindings failed", "err", err)
	}
	return runErr
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	backend := flag.String("backend", "", "host backend, ebiten or tui (overrides the config)")
	settingsPath := flag.String("settings", "", "bindings file, .yaml or .json (overrides the config)")
	flag.Parse()

	cfg, err := loadConfig(*configPath, *backend, *settingsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "actionmap: %v\n", err)
		os.Exit(1)
	}

	logFile, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "actionmap: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	initGettext()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.L().Error("exiting", "err", err)
		stop()
		logFile.Close()
		os.Exit(1)
	}
}
