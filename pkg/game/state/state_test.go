package state

import (
	"path/filepath"
	"testing"

	"actionmap/pkg/engine/device"
	"actionmap/pkg/engine/input/key"
	"actionmap/pkg/engine/logger"
	"actionmap/pkg/engine/settings"
	"actionmap/pkg/game/config"
)

func newGame(t *testing.T, cfg *config.Config, opts ...Option) (*Game, *device.Virtual) {
	t.Helper()
	dev := device.NewVirtual()
	opts = append([]Option{WithLogger(logger.Discard())}, opts...)
	g, err := NewGame(cfg, dev, opts...)
	if err != nil {
		t.Fatalf("NewGame() error: %v", err)
	}
	return g, dev
}

func tap(g *Game, dev *device.Virtual, k key.Key) {
	dev.Press(k)
	g.Update(0)
	dev.Release(k)
	g.Update(0)
}

func TestGame_RebindPersistsAcrossSessions(t *testing.T) {
	cfg := config.Default()
	cfg.Settings.Path = filepath.Join(t.TempDir(), "bindings.json")

	store, err := settings.Open(cfg.Settings.Path)
	if err != nil {
		t.Fatal(err)
	}
	g, dev := newGame(t, cfg, WithSettings(settings.NewBridge(store, logger.Discard())))
	if err := g.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	tap(g, dev, key.Escape) // pause, panel opens on Move Forward
	tap(g, dev, key.Enter)  // start binding
	tap(g, dev, key.I)      // bind
	if len(g.Messages) == 0 {
		t.Error("no message after binding")
	}
	if err := g.Stop(); err != nil {
		t.Fatalf("Stop() error: %v", err)
	}

	store2, err := settings.Open(cfg.Settings.Path)
	if err != nil {
		t.Fatal(err)
	}
	g2, _ := newGame(t, cfg, WithSettings(settings.NewBridge(store2, logger.Discard())))
	if err := g2.Start(); err != nil {
		t.Fatal(err)
	}
	fwd, _ := g2.Registry.GetAction("Move Forward")
	if fwd.Key() != key.I {
		t.Errorf("Move Forward key = %v in the next session, want I", fwd.Key())
	}
}

func TestGame_NoSaveWhenDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Settings.SaveChanges = false
	store := settings.NewMemory()

	g, _ := newGame(t, cfg, WithSettings(settings.NewBridge(store, logger.Discard())))
	if err := g.Start(); err != nil {
		t.Fatal(err)
	}
	if err := g.Stop(); err != nil {
		t.Fatal(err)
	}
	if store.Len() != 0 {
		t.Errorf("store has %d keys, want none written", store.Len())
	}
}

func TestGame_UpdateMovesPlayer(t *testing.T) {
	g, dev := newGame(t, config.Default())
	if err := g.Start(); err != nil {
		t.Fatal(err)
	}
	dev.Press(key.W)
	g.Update(1)
	g.Update(1)
	if z := g.Player.Position().Z; z != 5 {
		t.Errorf("Position().Z = %v, want 5", z)
	}
}

func TestGame_MessagesAreCapped(t *testing.T) {
	g, _ := newGame(t, config.Default())
	for i := 0; i < maxMessages+3; i++ {
		g.AddMessage("m")
	}
	if len(g.Messages) != maxMessages {
		t.Errorf("len(Messages) = %d, want %d", len(g.Messages), maxMessages)
	}
	g.ClearMessages()
	if len(g.Messages) != 0 {
		t.Error("ClearMessages left messages")
	}
}
