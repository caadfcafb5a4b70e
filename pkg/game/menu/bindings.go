package menu

import (
	"github.com/leonelquinteros/gotext"

	"actionmap/pkg/engine/input"
)

// Row is the menu item for one action: its name and the labels of both
// binding slots. The labels follow the action's OnChange.
type Row struct {
	action   *input.Action
	static   bool
	keyLabel string
	altLabel string
	handle   input.Handle
}

func newRow(a *input.Action, static bool) *Row {
	r := &Row{action: a, static: static}
	r.refresh(a)
	r.handle = a.OnChange.Subscribe(r.refresh)
	return r
}

func (r *Row) refresh(a *input.Action) {
	r.keyLabel = a.Key().String()
	r.altLabel = a.AltKey().String()
}

func (r *Row) close() {
	r.action.OnChange.Unsubscribe(r.handle)
}

// Action returns the action this row shows.
func (r *Row) Action() *input.Action {
	return r.action
}

// Name returns the action name.
func (r *Row) Name() string {
	return r.action.Name()
}

// KeyLabel returns the primary slot label.
func (r *Row) KeyLabel() string {
	return r.keyLabel
}

// AltKeyLabel returns the alternate slot label.
func (r *Row) AltKeyLabel() string {
	return r.altLabel
}

// Label returns the label of one slot.
func (r *Row) Label(slot input.Slot) string {
	if slot == input.Alternate {
		return r.altLabel
	}
	return r.keyLabel
}

// Static reports whether the row shows a non-rebindable action.
func (r *Row) Static() bool {
	return r.static
}

// GetLabel returns the display label for this row.
func (r *Row) GetLabel() string {
	if r.static {
		return gotext.Get("%s: %s (fixed)", r.Name(), r.keyLabel)
	}
	return gotext.Get("%s: %s / %s", r.Name(), r.keyLabel, r.altLabel)
}

// IsSelectable returns whether this row can be rebound.
func (r *Row) IsSelectable() bool {
	return !r.static
}

// GetHelpText returns help text for this row.
func (r *Row) GetHelpText() string {
	if r.static {
		return ""
	}
	return gotext.Get("Editing binding for: %s", r.Name())
}
