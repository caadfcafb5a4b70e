package ebiten

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"actionmap/pkg/engine/logger"
	"actionmap/pkg/game/config"
	"actionmap/pkg/game/renderer"
	"actionmap/pkg/game/state"
)

// Host runs a session inside an Ebiten window. It implements both
// ebiten.Game and renderer.Renderer.
type Host struct {
	dev *Ebiten
	cfg config.HostConfig
	log *slog.Logger

	ctx  context.Context
	game *state.Game

	windowWidth  int
	windowHeight int

	windowOpenedLogged bool
	captured           bool
}

// New creates a host reading input from dev.
func New(dev *Ebiten, cfg config.HostConfig) *Host {
	return &Host{
		dev:          dev,
		cfg:          cfg,
		log:          logger.L(),
		windowWidth:  cfg.Window.Width,
		windowHeight: cfg.Window.Height,
	}
}

// Run opens the window and drives g until the window is closed or ctx is
// done. It must be called from the main goroutine.
func (h *Host) Run(ctx context.Context, g *state.Game) error {
	h.ctx = ctx
	h.game = g

	ebiten.SetWindowSize(h.cfg.Window.Width, h.cfg.Window.Height)
	ebiten.SetWindowTitle(h.cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(h.cfg.TickRate)

	err := ebiten.RunGame(h)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("run ebiten: %w", err)
	}
	return nil
}

// Update ticks the session (Ebiten interface)
func (h *Host) Update() error {
	if !h.windowOpenedLogged {
		h.windowOpenedLogged = true
		w, ht := ebiten.WindowSize()
		h.log.Info("window opened", "width", w, "height", ht)
	}

	select {
	case <-h.ctx.Done():
		return ebiten.Termination
	default:
	}

	h.game.Dispatcher.SetFocus(h.dev.Focused())
	h.game.Update(1 / float64(ebiten.TPS()))
	h.syncCursor()
	return nil
}

// syncCursor captures the cursor while playing and frees it while the
// bindings panel is open.
func (h *Host) syncCursor() {
	want := !h.game.UI.Paused()
	if want == h.captured {
		return
	}
	h.captured = want
	if want {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
	h.dev.ResetPointer()
}

// Draw renders the current frame (Ebiten interface)
func (h *Host) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	f := renderer.BuildFrame(h.game)
	for i, line := range f.Status {
		ebitenutil.DebugPrintAt(screen, line, panelMargin, panelMargin+i*lineHeight)
	}
	if f.Panel != nil {
		h.drawPanel(screen, f.Panel)
	}
	h.drawMessages(screen, f.Messages)
}

func (h *Host) drawPanel(screen *ebiten.Image, p *renderer.Panel) {
	lines, selected := p.Lines()

	panelWidth := textWidth(lines) + 2*panelPad
	panelHeight := len(lines)*lineHeight + 2*panelPad
	if panelWidth > h.windowWidth-2*panelMargin {
		panelWidth = h.windowWidth - 2*panelMargin
	}

	bgX := float32((h.windowWidth - panelWidth) / 2)
	bgY := float32((h.windowHeight - panelHeight) / 2)
	if bgY < 0 {
		bgY = 0
	}
	bgW := float32(panelWidth)
	bgH := float32(panelHeight)

	// Border
	vector.DrawFilledRect(screen, bgX-1, bgY-1, bgW+2, bgH+2, colorPanelBorder, false)
	// Background
	vector.DrawFilledRect(screen, bgX, bgY, bgW, bgH, colorPanelBackground, false)

	if selected >= 0 {
		rowColor := colorFocusBackground
		if p.Binding {
			rowColor = colorBindingBg
		}
		y := bgY + float32(panelPad+selected*lineHeight)
		vector.DrawFilledRect(screen, bgX+2, y, bgW-4, lineHeight, rowColor, false)
	}

	x := int(bgX) + panelPad
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, x, int(bgY)+panelPad+i*lineHeight)
	}
}

func (h *Host) drawMessages(screen *ebiten.Image, messages []string) {
	if len(messages) == 0 {
		return
	}
	height := len(messages)*lineHeight + panelPad
	y := h.windowHeight - height
	vector.DrawFilledRect(screen, 0, float32(y), float32(h.windowWidth), float32(height), colorMessageBg, false)
	for i, msg := range messages {
		ebitenutil.DebugPrintAt(screen, msg, panelMargin, y+panelPad/2+i*lineHeight)
	}
}

func textWidth(lines []string) int {
	width := 0
	for _, l := range lines {
		width = max(width, utf8.RuneCountInString(l))
	}
	return width * glyphWidth
}

// Layout returns the logical screen size (Ebiten interface)
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	h.windowWidth = outsideWidth
	h.windowHeight = outsideHeight
	return outsideWidth, outsideHeight
}

// StyleText returns text unchanged. The window draws styles as panel
// backgrounds instead of inline markup.
func (h *Host) StyleText(text string, _ renderer.TextStyle) string {
	return text
}
