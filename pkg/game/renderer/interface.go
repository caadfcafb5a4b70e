package renderer

import (
	"context"

	"actionmap/pkg/game/state"
)

// TextStyle names a role in the HUD text. Backends map roles to colours.
type TextStyle int

const (
	StyleNormal TextStyle = iota
	StyleTitle
	StyleAction
	StyleKey
	StyleUnbound
	StyleSelected
	StyleSubtle
	StyleBinding
)

// Renderer defines the interface for host backends. A backend owns the
// frame loop: it ticks the session, draws it and returns when ctx is done
// or the user quits.
type Renderer interface {
	// Run drives g until ctx is cancelled or the window/terminal is closed.
	Run(ctx context.Context, g *state.Game) error

	// StyleText applies a style to text and returns the styled string.
	// For the TUI this applies ANSI colors; for Ebiten it returns the text.
	StyleText(text string, style TextStyle) string
}

// Current is the host whose StyleText the markup helpers use.
var Current Renderer

func SetRenderer(r Renderer) {
	Current = r
}

// StyleText styles text through Current, or returns it as is without a host.
func StyleText(text string, style TextStyle) string {
	if Current != nil {
		return Current.StyleText(text, style)
	}
	return text
}
