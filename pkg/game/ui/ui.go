// Package ui toggles between playing and the key binding panel.
package ui

import (
	"errors"
	"fmt"
	"log/slog"

	"actionmap/pkg/engine/input"
	"actionmap/pkg/engine/logger"
	"actionmap/pkg/game/menu"
)

// ErrNoEscape is returned by Start when the Escape static action is missing.
var ErrNoEscape = errors.New("escape action not registered")

// Toggler is a component that is switched off while the game is paused.
type Toggler interface {
	Enable() error
	Disable()
}

// Panel is the UI shown while paused.
type Panel interface {
	Enable()
	Disable()
	// Binding reports whether the panel is waiting for a key; Escape then
	// belongs to the panel.
	Binding() bool
}

// Controller flips the pause state on every Escape press. Pausing disables
// the gameplay components, releases the cursor and shows the panel;
// resuming does the opposite.
type Controller struct {
	d          *input.Dispatcher
	panel      Panel
	components []Toggler
	log        *slog.Logger

	paused bool
	handle input.Handle
	escape *input.Action

	// OnPauseChange fires with the new pause state. Hosts lock the cursor
	// while it is false.
	OnPauseChange input.Event[bool]
}

// NewController creates a controller over panel and the components paused
// with it.
func NewController(d *input.Dispatcher, panel Panel, components ...Toggler) *Controller {
	return &Controller{d: d, panel: panel, components: components, log: logger.L()}
}

// SetLogger replaces the controller's logger.
func (c *Controller) SetLogger(l *slog.Logger) {
	c.log = l
}

// Start subscribes to Escape and enables the gameplay components.
func (c *Controller) Start() error {
	esc, ok := c.d.Registry().GetStaticAction(menu.ActionEscape)
	if !ok {
		return ErrNoEscape
	}
	for _, t := range c.components {
		if err := t.Enable(); err != nil {
			return fmt.Errorf("enable component: %w", err)
		}
	}
	c.escape = esc
	c.handle = esc.OnPress.Subscribe(func(*input.Action) { c.Toggle() })
	return nil
}

// Stop unsubscribes from Escape and disables everything.
func (c *Controller) Stop() {
	if c.escape != nil {
		c.escape.OnPress.Unsubscribe(c.handle)
		c.escape = nil
	}
	c.panel.Disable()
	for _, t := range c.components {
		t.Disable()
	}
}

// Toggle flips the pause state. An Escape that cancels a binding in the
// panel does not close it.
func (c *Controller) Toggle() {
	if c.paused && c.panel.Binding() {
		return
	}
	c.SetPaused(!c.paused)
}

// SetPaused enters or leaves the pause state.
func (c *Controller) SetPaused(paused bool) {
	if c.paused == paused {
		return
	}
	c.paused = paused

	if paused {
		for _, t := range c.components {
			t.Disable()
		}
		c.panel.Enable()
	} else {
		c.panel.Disable()
		for _, t := range c.components {
			if err := t.Enable(); err != nil {
				c.log.Error("cannot resume component", "err", err)
			}
		}
	}
	c.log.Debug("pause toggled", "paused", paused)
	c.OnPauseChange.Emit(paused)
}

// Paused reports whether the panel is shown.
func (c *Controller) Paused() bool {
	return c.paused
}
