package input

import (
	"log/slog"

	"actionmap/pkg/engine/input/key"
	"actionmap/pkg/engine/logger"
)

// Device is the platform input source the dispatcher polls once per tick.
// Answers must be stable for the duration of a tick.
type Device interface {
	// KeyJustPressed reports a down-edge on k this tick.
	KeyJustPressed(k key.Key) bool
	// KeyDown reports whether k is held this tick.
	KeyDown(k key.Key) bool
	// PointerDelta returns the pointer movement since the previous tick.
	PointerDelta() (dx, dy float64)
	// AnyKeyJustPressed is the fast path that lets the dispatcher skip the
	// full key scan on quiet ticks.
	AnyKeyJustPressed() bool
}

// Poller is implemented by devices that latch their state at the start of a
// tick. Tick calls Poll before reading the device.
type Poller interface {
	Poll()
}

// PointerDelta is the raw pointer movement broadcast by the dispatcher.
type PointerDelta struct {
	X, Y float64
}

// DefaultSensitivity is the pointer sensitivity of a new dispatcher.
const DefaultSensitivity = 1.0

// Dispatcher drives the registry's actions from a Device.
//
// It also carries the process-wide input state that consumers share: the
// any-key and pointer broadcasts, the focus flag and the pointer sensitivity.
type Dispatcher struct {
	registry    *Registry
	device      Device
	log         *slog.Logger
	sensitivity float64
	focused     bool
	closed      bool
	ticks       uint64

	// OnAnyKeyDown fires once per key with a down-edge, in key.All order.
	OnAnyKeyDown Event[key.Key]
	// OnPointerMove fires once per tick with a non-zero pointer delta.
	OnPointerMove Event[PointerDelta]
	// OnFocusChange fires when SetFocus changes the focus flag.
	OnFocusChange Event[bool]
	// OnTick fires last in every tick with the tick number.
	OnTick Event[uint64]
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the dispatcher's logger.
func WithLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.log = l
	}
}

// WithSensitivity overrides DefaultSensitivity.
func WithSensitivity(v float64) DispatcherOption {
	return func(d *Dispatcher) {
		d.sensitivity = v
	}
}

// NewDispatcher creates a dispatcher for reg reading from dev.
func NewDispatcher(reg *Registry, dev Device, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry:    reg,
		device:      dev,
		sensitivity: DefaultSensitivity,
		focused:     true,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.log == nil {
		d.log = logger.L()
	}
	return d
}

// Registry returns the registry the dispatcher drives.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Device returns the polled device.
func (d *Dispatcher) Device() Device {
	return d.device
}

// Tick runs one input pass: pointer broadcast, static actions, rebindable
// actions, the any-key scan, then OnTick.
func (d *Dispatcher) Tick() {
	if d.closed {
		return
	}
	d.ticks++
	defer d.OnTick.Emit(d.ticks)

	if p, ok := d.device.(Poller); ok {
		p.Poll()
	}

	if dx, dy := d.device.PointerDelta(); dx != 0 || dy != 0 {
		d.OnPointerMove.Emit(PointerDelta{X: dx, Y: dy})
	}

	for _, a := range d.registry.StaticActions() {
		a.Process(d.device)
	}
	for _, a := range d.registry.Actions() {
		a.Process(d.device)
	}

	if !d.device.AnyKeyJustPressed() {
		return
	}
	for _, k := range key.All() {
		if d.device.KeyJustPressed(k) {
			d.OnAnyKeyDown.Emit(k)
		}
	}
}

// Ticks returns the number of ticks processed.
func (d *Dispatcher) Ticks() uint64 {
	return d.ticks
}

// SetFocus records the host window's focus. Losing focus releases every
// pressed action because the device stops reporting key releases.
func (d *Dispatcher) SetFocus(focused bool) {
	if !focused {
		d.registry.releaseAll()
	}
	if d.focused == focused {
		return
	}
	d.focused = focused
	d.log.Debug("input focus changed", "focused", focused)
	d.OnFocusChange.Emit(focused)
}

// Focused reports the last focus state given to SetFocus.
func (d *Dispatcher) Focused() bool {
	return d.focused
}

// Sensitivity returns the pointer sensitivity scalar.
func (d *Dispatcher) Sensitivity() float64 {
	return d.sensitivity
}

// SetSensitivity stores v as is. No range is enforced.
func (d *Dispatcher) SetSensitivity(v float64) {
	d.sensitivity = v
}

// Close detaches the dispatcher's listeners and stops further ticks.
func (d *Dispatcher) Close() {
	if d.closed {
		return
	}
	d.closed = true
	d.OnAnyKeyDown.Clear()
	d.OnPointerMove.Clear()
	d.OnFocusChange.Clear()
	d.OnTick.Clear()
}
