package input

import (
	"actionmap/pkg/engine/input/key"
)

// Slot selects one of the two key bindings of an Action.
type Slot int

const (
	Primary Slot = iota
	Alternate
)

func (s Slot) String() string {
	if s == Alternate {
		return "Alternate"
	}
	return "Primary"
}

// Action is a named logical input bound to up to two physical keys.
//
// The action is pressed while either bound key is held: it enters the pressed
// state on a down-edge of either key and leaves it once neither key is down.
// OnPress and OnRelease fire once per transition. OnHold fires on every
// processed tick the action stays pressed, never on the tick of the press.
// OnChange fires once for every binding write that changes a slot's value.
type Action struct {
	name    string
	key     key.Key
	altKey  key.Key
	pressed bool

	OnPress   Event[*Action]
	OnHold    Event[*Action]
	OnRelease Event[*Action]
	OnChange  Event[*Action]
}

func newAction(name string, k key.Key) *Action {
	return &Action{name: name, key: k, altKey: key.None}
}

// Name returns the action's unique name.
func (a *Action) Name() string {
	return a.name
}

// Key returns the primary binding.
func (a *Action) Key() key.Key {
	return a.key
}

// AltKey returns the alternate binding.
func (a *Action) AltKey() key.Key {
	return a.altKey
}

// Binding returns the key bound to slot s.
func (a *Action) Binding(s Slot) key.Key {
	if s == Alternate {
		return a.altKey
	}
	return a.key
}

// Pressed reports whether the action is in the pressed state.
func (a *Action) Pressed() bool {
	return a.pressed
}

// SetKey binds the primary slot.
func (a *Action) SetKey(k key.Key) {
	a.SetBinding(Primary, k)
}

// SetAltKey binds the alternate slot.
func (a *Action) SetAltKey(k key.Key) {
	a.SetBinding(Alternate, k)
}

// SetBinding binds slot s to k. Writing the current value is a no-op.
// The pressed state is left alone.
func (a *Action) SetBinding(s Slot, k key.Key) {
	slot := &a.key
	if s == Alternate {
		slot = &a.altKey
	}
	if *slot == k {
		return
	}
	*slot = k
	a.OnChange.Emit(a)
}

// slotOf reports which slot holds k, primary first.
func (a *Action) slotOf(k key.Key) (Slot, bool) {
	switch {
	case k == key.None:
		return Primary, false
	case a.key == k:
		return Primary, true
	case a.altKey == k:
		return Alternate, true
	}
	return Primary, false
}

// Process advances the state machine from the device state of this tick.
func (a *Action) Process(dev Device) {
	if !a.pressed {
		if justPressed(dev, a.key) || justPressed(dev, a.altKey) {
			a.SimulatePress()
		}
		return
	}

	if !isDown(dev, a.key) && !isDown(dev, a.altKey) {
		a.SimulateRelease()
		return
	}
	a.OnHold.Emit(a)
}

// SimulatePress forces the pressed state and fires OnPress.
func (a *Action) SimulatePress() {
	a.pressed = true
	a.OnPress.Emit(a)
}

// SimulateRelease forces the released state and fires OnRelease.
func (a *Action) SimulateRelease() {
	a.pressed = false
	a.OnRelease.Emit(a)
}

func justPressed(dev Device, k key.Key) bool {
	return k != key.None && dev.KeyJustPressed(k)
}

func isDown(dev Device, k key.Key) bool {
	return k != key.None && dev.KeyDown(k)
}
