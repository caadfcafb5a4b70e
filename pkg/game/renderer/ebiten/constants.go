// Package ebiten runs a session in an Ebiten window.
package ebiten

import "image/color"

// Color palette for the window
var (
	colorBackground      = color.RGBA{26, 26, 46, 255}    // Dark blue-gray
	colorPanelBackground = color.RGBA{30, 30, 50, 220}    // Semi-transparent dark
	colorPanelBorder     = color.RGBA{80, 80, 100, 255}   // Muted border
	colorFocusBackground = color.RGBA{60, 80, 100, 200}   // Selected row
	colorBindingBg       = color.RGBA{100, 100, 130, 220} // Selected row while waiting for a key
	colorMessageBg       = color.RGBA{15, 15, 26, 200}    // Message log strip
)

// The debug font is a fixed 6x16 grid.
const (
	glyphWidth  = 6
	lineHeight  = 16
	panelMargin = 20
	panelPad    = 10
)
