// Package renderer builds the text frame shown by every backend and holds
// the markup shared by them.
package renderer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/leonelquinteros/gotext"

	"actionmap/pkg/engine/input"
	"actionmap/pkg/engine/input/key"
	"actionmap/pkg/game/state"
)

var regexpStringFunctions = regexp.MustCompile(`([A-Z_]*){([^{}]+)}`)

// dynamicGet translates msgids taken from markup at runtime. A variable keeps
// vet's printf check off the non-constant format.
var dynamicGet = gotext.Get

// FormatString formats a message with the markup system:
// GT{msgid} translates, ACTION{name} and KEY{name} style action and key
// names, SUBTLE{text} dims text.
func FormatString(msg string, a ...any) string {
	ret := fmt.Sprintf(msg, a...)

	for _, match := range regexpStringFunctions.FindAllStringSubmatch(ret, -1) {
		function := match[1]
		operand := match[2]

		var val string
		switch function {
		case "GT":
			val = dynamicGet(operand)
		case "ACTION":
			val = StyleText(operand, StyleAction)
		case "KEY":
			val = StyleText(operand, keyStyle(operand))
		case "SUBTLE":
			val = StyleText(operand, StyleSubtle)
		default:
			val = fmt.Sprintf("ERROR, function not found: %v -> %v", function, operand)
		}

		ret = strings.Replace(ret, match[0], val, 1)
	}

	return ret
}

func keyStyle(name string) TextStyle {
	if name == key.None.String() {
		return StyleUnbound
	}
	return StyleKey
}

// Frame is everything a backend draws for one tick.
type Frame struct {
	Status   []string
	Panel    *Panel
	Messages []string
}

// Panel is the bindings panel, present while paused.
type Panel struct {
	Title        string
	Instructions string
	Help         string
	Sensitivity  string
	Binding      bool
	Rows         []PanelRow
}

// PanelRow is one action line of the panel.
type PanelRow struct {
	Name     string
	Key      string
	AltKey   string
	Static   bool
	Selected bool
	Column   input.Slot
}

// BuildFrame captures the state of g.
func BuildFrame(g *state.Game) Frame {
	pos := g.Player.Position()
	f := Frame{
		Status: []string{
			FormatString(dynamicGet("Position %.2f, %.2f   Yaw %.0f°   Pitch %.0f°"),
				pos.X, pos.Z, g.Player.Yaw(), g.Camera.Pitch()),
		},
		Messages: append([]string(nil), g.Messages...),
	}
	if g.Player.Running() {
		f.Status = append(f.Status, FormatString("ACTION{%s}", gotext.Get("Running")))
	}

	if !g.UI.Paused() {
		f.Status = append(f.Status, FormatString(dynamicGet("Press KEY{%s} to edit key bindings"), escapeKey(g)))
		return f
	}

	m := g.HUD.Menu()
	p := &Panel{
		Title:       g.HUD.GetTitle(),
		Sensitivity: g.HUD.SensitivityLabel(),
		Binding:     g.HUD.Binding(),
	}
	if m != nil {
		p.Instructions = m.Instructions()
		p.Help = m.HelpText()
	}
	for i, r := range g.HUD.Rows() {
		p.Rows = append(p.Rows, PanelRow{
			Name:     r.Name(),
			Key:      r.KeyLabel(),
			AltKey:   r.AltKeyLabel(),
			Static:   r.Static(),
			Selected: m != nil && m.Selected() == i,
			Column:   g.HUD.Column(),
		})
	}
	f.Panel = p
	return f
}

func escapeKey(g *state.Game) string {
	if a, ok := g.Registry.GetStaticAction("Escape"); ok {
		return a.Key().String()
	}
	return key.Escape.String()
}

// Lines renders the panel body and returns the index of the selected row
// within it, or -1.
func (p *Panel) Lines() ([]string, int) {
	lines := []string{StyleText(p.Title, StyleTitle), ""}
	selected := -1
	for i, row := range p.RowLines() {
		if p.Rows[i].Selected {
			selected = len(lines)
		}
		lines = append(lines, row)
	}
	lines = append(lines, "", gotext.Get("Sensitivity: %s", p.Sensitivity))
	if p.Binding {
		lines = append(lines, StyleText(gotext.Get("Press a key..."), StyleBinding))
	}
	if p.Help != "" {
		lines = append(lines, p.Help)
	}
	if p.Instructions != "" {
		lines = append(lines, StyleText(p.Instructions, StyleSubtle))
	}
	return lines, selected
}

// RowLines renders one line per panel row. The selected row is marked and
// its active slot is styled as selected.
func (p *Panel) RowLines() []string {
	width := 0
	for _, r := range p.Rows {
		width = max(width, len(r.Name))
	}

	lines := make([]string, 0, len(p.Rows))
	for _, r := range p.Rows {
		prefix := "  "
		if r.Selected {
			prefix = "> "
		}
		name := fmt.Sprintf("%-*s", width, r.Name)
		if r.Static {
			lines = append(lines, prefix+StyleText(name+"  "+r.Key+" "+gotext.Get("(fixed)"), StyleSubtle))
			continue
		}
		primary := slotLabel(r.Key, r.Selected && r.Column == input.Primary)
		alt := slotLabel(r.AltKey, r.Selected && r.Column == input.Alternate)
		lines = append(lines, prefix+StyleText(name, StyleAction)+"  "+primary+" / "+alt)
	}
	return lines
}

func slotLabel(label string, selected bool) string {
	if selected {
		return StyleText("["+label+"]", StyleSelected)
	}
	return StyleText(label, keyStyle(label))
}
