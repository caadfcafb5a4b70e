package input

import (
	"testing"

	"actionmap/pkg/engine/device"
	"actionmap/pkg/engine/logger"
)

var _ Device = (*device.Virtual)(nil)
var _ Device = (*device.Terminal)(nil)

// newRig returns a quiet registry and a dispatcher over a scripted device.
func newRig(t *testing.T) (*Registry, *device.Virtual, *Dispatcher) {
	t.Helper()
	reg := NewRegistry(WithRegistryLogger(logger.Discard()))
	dev := device.NewVirtual()
	d := NewDispatcher(reg, dev, WithLogger(logger.Discard()))
	return reg, dev, d
}

type counts struct {
	press, hold, release, change int
}

func track(a *Action) *counts {
	c := &counts{}
	a.OnPress.Subscribe(func(*Action) { c.press++ })
	a.OnHold.Subscribe(func(*Action) { c.hold++ })
	a.OnRelease.Subscribe(func(*Action) { c.release++ })
	a.OnChange.Subscribe(func(*Action) { c.change++ })
	return c
}

func (c counts) equal(press, hold, release int) bool {
	return c.press == press && c.hold == hold && c.release == release
}
