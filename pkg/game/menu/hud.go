package menu

import (
	"math"
	"strconv"

	"github.com/leonelquinteros/gotext"

	"actionmap/pkg/engine/input"
	"actionmap/pkg/engine/input/key"
)

// Static actions the panel navigates with. Any of them may be missing from
// the registry; the panel then only reacts to direct method calls.
const (
	ActionUp              = "Menu Up"
	ActionDown            = "Menu Down"
	ActionLeft            = "Menu Left"
	ActionRight           = "Menu Right"
	ActionSelect          = "Menu Select"
	ActionClear           = "Menu Clear"
	ActionSensitivityUp   = "Sensitivity Up"
	ActionSensitivityDown = "Sensitivity Down"
)

// Sensitivity slider range and step.
const (
	SensitivityMin  = 0.1
	SensitivityMax  = 10.0
	SensitivityStep = 0.1
)

// HUD is the key binding panel. Enable builds one row per action and hooks
// the navigation actions; Disable tears everything down again.
type HUD struct {
	d      *input.Dispatcher
	binder *Binder
	opts   options

	rows    []*Row
	menu    *Menu
	column  input.Slot
	subs    input.Group
	enabled bool

	sensitivityLabel string
}

// NewHUD creates a disabled panel. WithTimeout is passed on to the binder.
func NewHUD(d *input.Dispatcher, opts ...Option) *HUD {
	h := &HUD{d: d, opts: buildOptions(opts)}
	h.binder = NewBinder(d, opts...)
	return h
}

// Binder returns the panel's binder.
func (h *HUD) Binder() *Binder {
	return h.binder
}

// Enable builds the rows, rebindable actions first, and subscribes to the
// navigation actions.
func (h *HUD) Enable() {
	if h.enabled {
		return
	}
	reg := h.d.Registry()

	items := make([]MenuItem, 0, reg.Len())
	for _, a := range reg.Actions() {
		r := newRow(a, false)
		h.rows = append(h.rows, r)
		items = append(items, r)
	}
	for _, a := range reg.StaticActions() {
		r := newRow(a, true)
		h.rows = append(h.rows, r)
		items = append(items, r)
	}
	h.menu = NewMenu(items, h)
	h.column = input.Primary

	nav := map[string]func(){
		ActionUp:              h.Up,
		ActionDown:            h.Down,
		ActionLeft:            h.Left,
		ActionRight:           h.Right,
		ActionSelect:          h.Select,
		ActionClear:           h.Clear,
		ActionSensitivityUp:   func() { h.StepSensitivity(1) },
		ActionSensitivityDown: func() { h.StepSensitivity(-1) },
	}
	for name, fn := range nav {
		a, ok := reg.GetStaticAction(name)
		if !ok {
			continue
		}
		input.Listen(&h.subs, &a.OnPress, func(*input.Action) {
			// navigation keys are captured, not obeyed, while binding
			if h.binder.Active() {
				return
			}
			fn()
		})
	}

	h.sensitivityLabel = formatSensitivity(h.d.Sensitivity())
	h.enabled = true
	h.opts.log.Debug("bindings panel enabled", "rows", len(h.rows))
}

// Disable cancels a binding in progress and destroys the rows.
func (h *HUD) Disable() {
	if !h.enabled {
		return
	}
	h.binder.Cancel()
	h.subs.Close()
	for _, r := range h.rows {
		r.close()
	}
	h.rows = nil
	h.menu = nil
	h.enabled = false
}

// Enabled reports whether the panel is shown.
func (h *HUD) Enabled() bool {
	return h.enabled
}

// Rows returns the rows in display order.
func (h *HUD) Rows() []*Row {
	return h.rows
}

// Menu returns the selection state, or nil while disabled.
func (h *HUD) Menu() *Menu {
	return h.menu
}

// Column returns the slot that Select and Clear act on.
func (h *HUD) Column() input.Slot {
	return h.column
}

func (h *HUD) Up() {
	if h.menu != nil {
		h.menu.Up()
	}
}

func (h *HUD) Down() {
	if h.menu != nil {
		h.menu.Down()
	}
}

func (h *HUD) Left() {
	h.column = input.Primary
}

func (h *HUD) Right() {
	h.column = input.Alternate
}

// Select starts binding the selected row's current column.
func (h *HUD) Select() {
	if h.menu != nil {
		h.menu.Activate()
	}
}

// Clear unbinds the selected row's current column.
func (h *HUD) Clear() {
	if h.menu == nil {
		return
	}
	r, ok := h.menu.SelectedItem().(*Row)
	if !ok || r.Static() {
		return
	}
	h.d.Registry().SetActionKey(r.Name(), key.None, h.column)
}

// ChangeSensitivity sets the dispatcher sensitivity from the slider value,
// clamped to the slider range, and refreshes the label.
func (h *HUD) ChangeSensitivity(v float64) {
	v = math.Max(SensitivityMin, math.Min(SensitivityMax, v))
	h.d.SetSensitivity(v)
	h.sensitivityLabel = formatSensitivity(v)
}

// StepSensitivity moves the slider by n steps, snapping to the step grid.
func (h *HUD) StepSensitivity(n int) {
	v := h.d.Sensitivity() + float64(n)*SensitivityStep
	h.ChangeSensitivity(math.Round(v*10) / 10)
}

// SensitivityLabel returns the slider label, truncated to one decimal.
func (h *HUD) SensitivityLabel() string {
	return h.sensitivityLabel
}

// Binding reports whether the "press a key" indicator should be shown.
func (h *HUD) Binding() bool {
	return h.binder.Active()
}

// OnSelect implements MenuHandler.
func (h *HUD) OnSelect(MenuItem, int) {}

// OnActivate implements MenuHandler by starting a binding.
func (h *HUD) OnActivate(item MenuItem, _ int) (bool, string) {
	r, ok := item.(*Row)
	if !ok || r.Static() {
		return false, ""
	}
	if err := h.binder.Start(r.Name(), h.column); err != nil {
		h.opts.log.Warn("cannot start binding", "err", err)
		return false, ""
	}
	return false, r.GetHelpText()
}

// OnExit implements MenuHandler.
func (h *HUD) OnExit() {}

// GetTitle implements MenuHandler.
func (h *HUD) GetTitle() string {
	return gotext.Get("Key Bindings")
}

// GetInstructions implements MenuHandler.
func (h *HUD) GetInstructions(selected MenuItem) string {
	if h.binder.Active() {
		return gotext.Get("Press a key to bind, Escape to cancel.")
	}
	if r, ok := selected.(*Row); ok && !r.Static() {
		return gotext.Get("Up/down to select, left/right for the slot, Enter to rebind, Delete to clear.")
	}
	return gotext.Get("Up/down to select, Escape to close.")
}

func formatSensitivity(v float64) string {
	return strconv.FormatFloat(math.Trunc(v*10)/10, 'f', -1, 64)
}
