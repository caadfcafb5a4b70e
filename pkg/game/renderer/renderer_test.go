package renderer

import (
	"strings"
	"testing"

	"actionmap/pkg/engine/device"
	"actionmap/pkg/engine/input"
	"actionmap/pkg/engine/input/key"
	"actionmap/pkg/engine/logger"
	"actionmap/pkg/game/config"
	"actionmap/pkg/game/state"
)

func TestFormatString(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		args []any
		want string
	}{
		{"plain", "hello %s", []any{"world"}, "hello world"},
		{"translate", "GT{Key Bindings}", nil, "Key Bindings"},
		{"key", "press KEY{%s}", []any{"Escape"}, "press Escape"},
		{"two functions", "ACTION{Run} on KEY{LeftShift}", nil, "Run on LeftShift"},
		{"unknown function", "FOO{bar}", nil, "ERROR, function not found: FOO -> bar"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatString(tt.msg, tt.args...); got != tt.want {
				t.Errorf("FormatString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func newGame(t *testing.T) (*state.Game, *device.Virtual) {
	t.Helper()
	dev := device.NewVirtual()
	g, err := state.NewGame(config.Default(), dev, state.WithLogger(logger.Discard()))
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Start(); err != nil {
		t.Fatal(err)
	}
	return g, dev
}

func TestBuildFrame_Playing(t *testing.T) {
	g, _ := newGame(t)
	f := BuildFrame(g)
	if f.Panel != nil {
		t.Fatal("panel present while playing")
	}
	joined := strings.Join(f.Status, "\n")
	if !strings.Contains(joined, "Press Escape to edit key bindings") {
		t.Errorf("missing pause hint in %q", joined)
	}
}

func TestBuildFrame_Paused(t *testing.T) {
	g, dev := newGame(t)
	dev.Press(key.Escape)
	g.Update(0)
	dev.Release(key.Escape)
	g.Update(0)

	f := BuildFrame(g)
	if f.Panel == nil {
		t.Fatal("no panel while paused")
	}
	if len(f.Panel.Rows) != g.Registry.Len() {
		t.Errorf("len(Rows) = %d, want %d", len(f.Panel.Rows), g.Registry.Len())
	}
	if !f.Panel.Rows[0].Selected || f.Panel.Rows[1].Selected {
		t.Error("first row not selected")
	}
	if f.Panel.Sensitivity != "1" {
		t.Errorf("Sensitivity = %q, want 1", f.Panel.Sensitivity)
	}

	lines := f.Panel.RowLines()
	if !strings.HasPrefix(lines[0], "> Move Forward") || !strings.Contains(lines[0], "[W] / None") {
		t.Errorf("first row line = %q", lines[0])
	}
	if !strings.Contains(lines[len(lines)-1], "(fixed)") {
		t.Errorf("static row line = %q", lines[len(lines)-1])
	}
}

func TestPanelLines(t *testing.T) {
	p := &Panel{
		Title:        "Key Bindings",
		Sensitivity:  "2.5",
		Binding:      true,
		Instructions: "Escape to cancel",
		Rows: []PanelRow{
			{Name: "Move Forward", Key: "W", AltKey: "None"},
			{Name: "Run", Key: "LeftShift", AltKey: "None", Selected: true, Column: input.Alternate},
		},
	}
	lines, selected := p.Lines()
	if selected != 3 {
		t.Fatalf("selected = %d, want 3 (title, blank, two rows)", selected)
	}
	if !strings.Contains(lines[selected], "[None]") {
		t.Errorf("selected line = %q, want the alternate slot marked", lines[selected])
	}
	joined := strings.Join(lines, "\n")
	for _, want := range []string{"Sensitivity: 2.5", "Press a key...", "Escape to cancel"} {
		if !strings.Contains(joined, want) {
			t.Errorf("lines missing %q:\n%s", want, joined)
		}
	}

	p.Binding = false
	p.Rows[1].Selected = false
	lines, selected = p.Lines()
	if selected != -1 {
		t.Errorf("selected = %d with no selected row, want -1", selected)
	}
	if strings.Contains(strings.Join(lines, "\n"), "Press a key...") {
		t.Error("binding prompt shown while not binding")
	}
}
