package settings

import (
	"fmt"
	"log/slog"
	"strconv"

	"actionmap/pkg/engine/input"
	"actionmap/pkg/engine/input/key"
	"actionmap/pkg/engine/logger"
)

// SensitivityKey is the store key of the pointer sensitivity.
const SensitivityKey = "MouseSensitivity"

// BindingKey returns the store key for one slot of an action:
// "Action_<name>_Key" or "Action_<name>_AltKey".
func BindingKey(action string, slot input.Slot) string {
	if slot == input.Alternate {
		return "Action_" + action + "_AltKey"
	}
	return "Action_" + action + "_Key"
}

// Bridge moves bindings and sensitivity between a dispatcher and a Store.
// Hosts call Load when input is enabled and Save when it is disabled.
type Bridge struct {
	store Store
	log   *slog.Logger
}

// NewBridge creates a bridge over store. A nil logger selects logger.L().
func NewBridge(store Store, log *slog.Logger) *Bridge {
	if log == nil {
		log = logger.L()
	}
	return &Bridge{store: store, log: log}
}

// Load applies stored bindings to every rebindable action and restores the
// sensitivity. Missing keys keep the current value; unreadable values are
// logged and skipped. Bindings go through Registry.SetActionKey, so a stored
// key takes over from any action still holding it.
func (b *Bridge) Load(d *input.Dispatcher) {
	reg := d.Registry()
	for _, a := range reg.Actions() {
		for _, slot := range []input.Slot{input.Primary, input.Alternate} {
			name := BindingKey(a.Name(), slot)
			raw, ok := b.store.Get(name)
			if !ok {
				continue
			}
			k, err := key.Parse(raw)
			if err != nil {
				b.log.Warn("ignoring stored binding", "setting", name, "err", err)
				continue
			}
			reg.SetActionKey(a.Name(), k, slot)
		}
	}

	if raw, ok := b.store.Get(SensitivityKey); ok {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			b.log.Warn("ignoring stored sensitivity", "value", raw, "err", err)
			return
		}
		d.SetSensitivity(v)
	}
}

// Save writes every rebindable action's bindings and the sensitivity, then
// flushes the store.
func (b *Bridge) Save(d *input.Dispatcher) error {
	for _, a := range d.Registry().Actions() {
		b.store.Set(BindingKey(a.Name(), input.Primary), a.Key().String())
		b.store.Set(BindingKey(a.Name(), input.Alternate), a.AltKey().String())
	}
	b.store.Set(SensitivityKey, strconv.FormatFloat(d.Sensitivity(), 'g', -1, 64))

	if err := b.store.Flush(); err != nil {
		return fmt.Errorf("save bindings: %w", err)
	}
	return nil
}
