// Package tui runs a session in a raw-mode terminal.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"actionmap/pkg/engine/device"
	"actionmap/pkg/engine/input"
	"actionmap/pkg/engine/terminal"
	"actionmap/pkg/game/renderer"
	"actionmap/pkg/game/state"
)

const clearScreen = "\x1b[H\x1b[2J"

// TUIRenderer is the terminal host. It ticks the session on an input.Loop
// and redraws whenever the frame changes.
type TUIRenderer struct {
	dev      *device.Terminal
	interval time.Duration
	out      io.Writer

	colorTitle    color.Style
	colorAction   color.Style
	colorKey      color.Style
	colorUnbound  color.Style
	colorSelected color.Style
	colorSubtle   color.Style
	colorBinding  color.Style

	panelStyle lipgloss.Style

	last string
}

// New creates a terminal host reading dev, ticking every interval and
// drawing to out.
func New(dev *device.Terminal, interval time.Duration, out io.Writer) *TUIRenderer {
	t := &TUIRenderer{dev: dev, interval: interval, out: out}
	t.Init()
	return t
}

// Init initializes the colors and the panel border.
func (t *TUIRenderer) Init() {
	t.colorTitle = color.Style{color.FgCyan, color.OpBold}
	t.colorAction = color.Style{color.FgMagenta}
	t.colorKey = color.Style{color.FgYellow, color.OpBold}
	t.colorUnbound = color.Style{color.FgGray}
	t.colorSelected = color.Style{color.FgBlack, color.BgYellow, color.OpBold}
	t.colorSubtle = color.Style{color.FgGray, color.OpBold}
	t.colorBinding = color.Style{color.FgRed, color.OpBold}

	t.panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.ANSIColor(8)).
		Padding(0, 1)
}

// Run enters raw mode and drives g until ctx is done, Ctrl+C is read or the
// terminal read fails.
func (t *TUIRenderer) Run(ctx context.Context, g *state.Game) error {
	if err := t.dev.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	defer t.dev.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	dt := t.interval.Seconds()
	var tick input.Group
	input.Listen(&tick, &g.Dispatcher.OnTick, func(uint64) {
		g.Player.Update(dt)
		t.draw(g)
	})
	defer tick.Close()

	readErr := make(chan error, 1)
	go func() {
		select {
		case <-t.dev.Interrupted():
		case err := <-t.dev.Err():
			readErr <- err
		case <-ctx.Done():
			return
		}
		cancel()
	}()

	err := input.NewLoop(g.Dispatcher, t.interval).Run(ctx)
	fmt.Fprint(t.out, "\r\n")

	select {
	case rerr := <-readErr:
		return fmt.Errorf("read terminal: %w", rerr)
	default:
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

func (t *TUIRenderer) draw(g *state.Game) {
	width, _ := terminal.Size()
	screen := t.compose(renderer.BuildFrame(g), width)
	if screen == t.last {
		return
	}
	t.last = screen
	fmt.Fprint(t.out, clearScreen+screen)
}

// compose lays the frame out for a terminal of the given width. Lines end
// in CRLF since raw mode disables output translation.
func (t *TUIRenderer) compose(f renderer.Frame, width int) string {
	var lines []string
	lines = append(lines, f.Status...)

	if p := f.Panel; p != nil {
		lines = append(lines, "", t.renderPanel(p, width))
	}

	lines = append(lines, "")
	lines = append(lines, t.messagesPane(f.Messages, width)...)

	return strings.ReplaceAll(strings.Join(lines, "\n"), "\n", "\r\n")
}

func (t *TUIRenderer) renderPanel(p *renderer.Panel, width int) string {
	body, _ := p.Lines()

	style := t.panelStyle
	if w := width - 2; w > 0 && lipgloss.Width(strings.Join(body, "\n")) > w {
		style = style.Width(w)
	}
	return style.Render(strings.Join(body, "\n"))
}

// messagesPane renders the messages log between two rules
func (t *TUIRenderer) messagesPane(messages []string, width int) []string {
	label := " " + gotext.Get("Messages") + " "
	labelLen := len(label)
	sideLen := (width - labelLen) / 2
	if sideLen < 1 {
		sideLen = 1
	}
	rightLen := max(width-sideLen-labelLen, 1)

	lines := []string{t.colorSubtle.Sprint(strings.Repeat("─", sideLen) + label + strings.Repeat("─", rightLen))}
	if len(messages) == 0 {
		lines = append(lines, t.colorSubtle.Sprint("  "+gotext.Get("(no messages)")))
	} else {
		for _, msg := range messages {
			lines = append(lines, "  "+msg)
		}
	}
	return append(lines, t.colorSubtle.Sprint(strings.Repeat("─", max(width, 1))))
}

// StyleText applies a style to text
func (t *TUIRenderer) StyleText(text string, style renderer.TextStyle) string {
	switch style {
	case renderer.StyleTitle:
		return t.colorTitle.Sprint(text)
	case renderer.StyleAction:
		return t.colorAction.Sprint(text)
	case renderer.StyleKey:
		return t.colorKey.Sprint(text)
	case renderer.StyleUnbound:
		return t.colorUnbound.Sprint(text)
	case renderer.StyleSelected:
		return t.colorSelected.Sprint(text)
	case renderer.StyleSubtle:
		return t.colorSubtle.Sprint(text)
	case renderer.StyleBinding:
		return t.colorBinding.Sprint(text)
	default:
		return text
	}
}
