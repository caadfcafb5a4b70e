// Package state wires one running session: the dispatcher, the gameplay
// controllers, the bindings panel and the pause toggle.
package state

import (
	"fmt"
	"log/slog"

	"github.com/leonelquinteros/gotext"

	"actionmap/pkg/engine/input"
	"actionmap/pkg/engine/logger"
	"actionmap/pkg/engine/settings"
	"actionmap/pkg/game/config"
	"actionmap/pkg/game/menu"
	"actionmap/pkg/game/player"
	"actionmap/pkg/game/ui"
)

const maxMessages = 5

// Game is one session over a device.
type Game struct {
	Registry   *input.Registry
	Dispatcher *input.Dispatcher
	Player     *player.Controller
	Camera     *player.Camera
	HUD        *menu.HUD
	UI         *ui.Controller

	Messages []string

	cfg     *config.Config
	bridge  *settings.Bridge
	log     *slog.Logger
	started bool
}

// Option configures a Game.
type Option func(*Game)

// WithSettings loads bindings from b on Start and, when cfg.Settings.SaveChanges
// is set, saves them on Stop.
func WithSettings(b *settings.Bridge) Option {
	return func(g *Game) {
		g.bridge = b
	}
}

// WithLogger sets the logger passed to every component.
func WithLogger(l *slog.Logger) Option {
	return func(g *Game) {
		g.log = l
	}
}

// NewGame registers the configured actions and builds the components over
// dev. Nothing is subscribed until Start.
func NewGame(cfg *config.Config, dev input.Device, opts ...Option) (*Game, error) {
	g := &Game{cfg: cfg}
	for _, opt := range opts {
		opt(g)
	}
	if g.log == nil {
		g.log = logger.L()
	}

	g.Registry = input.NewRegistry(input.WithRegistryLogger(g.log))
	if err := cfg.Register(g.Registry); err != nil {
		return nil, fmt.Errorf("register actions: %w", err)
	}
	g.Dispatcher = input.NewDispatcher(g.Registry, dev, input.WithLogger(g.log))

	g.Player = player.NewController(g.Dispatcher, cfg.Player)
	g.Camera = player.NewCamera(g.Dispatcher, cfg.Camera)
	g.HUD = menu.NewHUD(g.Dispatcher, menu.WithLogger(g.log))
	g.UI = ui.NewController(g.Dispatcher, g.HUD, g.Player, g.Camera)
	g.UI.SetLogger(g.log)

	g.HUD.Binder().OnBound.Subscribe(func(b menu.Bound) {
		g.AddMessage(gotext.Get("%s (%s) bound to %s", b.Action, b.Slot, b.Key))
	})
	g.UI.OnPauseChange.Subscribe(func(paused bool) {
		if paused {
			g.AddMessage(gotext.Get("Paused"))
		} else {
			g.ClearMessages()
		}
	})
	return g, nil
}

// Config returns the session configuration.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// Start loads the stored bindings and enables gameplay.
func (g *Game) Start() error {
	if g.started {
		return nil
	}
	if g.bridge != nil {
		g.bridge.Load(g.Dispatcher)
	}
	if err := g.UI.Start(); err != nil {
		return fmt.Errorf("start ui: %w", err)
	}
	g.started = true
	return nil
}

// Update runs one tick of input and moves the player by dt seconds.
func (g *Game) Update(dt float64) {
	g.Dispatcher.Tick()
	g.Player.Update(dt)
}

// Stop disables every component, saves the bindings when configured and
// closes the dispatcher.
func (g *Game) Stop() error {
	if !g.started {
		return nil
	}
	g.started = false
	g.UI.Stop()
	g.Dispatcher.Close()

	if g.bridge == nil || !g.cfg.Settings.SaveChanges {
		return nil
	}
	if err := g.bridge.Save(g.Dispatcher); err != nil {
		return err
	}
	g.log.Info("bindings saved", "path", g.cfg.Settings.Path)
	return nil
}

// AddMessage adds a message to the session's message log
func (g *Game) AddMessage(msg string) {
	g.Messages = append(g.Messages, msg)

	// Keep only the last maxMessages
	if len(g.Messages) > maxMessages {
		g.Messages = g.Messages[len(g.Messages)-maxMessages:]
	}
}

// ClearMessages clears all messages
func (g *Game) ClearMessages() {
	g.Messages = g.Messages[:0]
}
