package menu

import (
	"errors"
	"fmt"
	"log/slog"

	"actionmap/pkg/engine/input"
	"actionmap/pkg/engine/input/key"
	"actionmap/pkg/engine/logger"
)

// ActionEscape is the static action that cancels a binding in progress.
const ActionEscape = "Escape"

// ErrUnknownAction is returned by Binder.Start for names that are not
// rebindable actions.
var ErrUnknownAction = errors.New("unknown action")

// Option configures a Binder or a HUD.
type Option func(*options)

type options struct {
	timeout uint64
	log     *slog.Logger
}

// WithTimeout cancels a binding that has not captured a key after ticks
// ticks. Zero disables the timeout.
func WithTimeout(ticks uint64) Option {
	return func(o *options) {
		o.timeout = ticks
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.L()
	}
	return o
}

// Binder rebinds one action slot to the next key that goes down.
//
// While a binding is in progress the first any-key down-edge is bound with
// Registry.SetActionKey. Pressing the Escape static action cancels instead,
// and because static actions run before the any-key scan, Escape itself is
// never bound. Keys that go down on the tick Start was called are ignored,
// so the key that opened the binding is not captured.
type Binder struct {
	d    *input.Dispatcher
	opts options

	active  bool
	target  string
	slot    input.Slot
	started uint64
	subs    input.Group

	// OnActiveChange fires when a binding starts or ends. Hosts show the
	// "press a key" indicator while it is true.
	OnActiveChange input.Event[bool]
	// OnBound fires after a key has been bound.
	OnBound input.Event[Bound]
}

// Bound describes a completed binding.
type Bound struct {
	Action string
	Slot   input.Slot
	Key    key.Key
}

// NewBinder creates an idle binder.
func NewBinder(d *input.Dispatcher, opts ...Option) *Binder {
	return &Binder{d: d, opts: buildOptions(opts)}
}

// Start begins binding slot of the named action. A binding already in
// progress is cancelled first.
func (b *Binder) Start(name string, slot input.Slot) error {
	if _, ok := b.d.Registry().GetAction(name); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, name)
	}
	if b.active {
		b.Cancel()
	}

	b.active = true
	b.target = name
	b.slot = slot
	b.started = b.d.Ticks()

	input.Listen(&b.subs, &b.d.OnAnyKeyDown, b.capture)
	if esc, ok := b.d.Registry().GetStaticAction(ActionEscape); ok {
		input.Listen(&b.subs, &esc.OnPress, func(*input.Action) { b.Cancel() })
	}
	if b.opts.timeout > 0 {
		input.Listen(&b.subs, &b.d.OnTick, b.expire)
	}

	b.opts.log.Debug("binding started", "action", name, "slot", slot)
	b.OnActiveChange.Emit(true)
	return nil
}

// Cancel ends a binding in progress without changing any binding.
func (b *Binder) Cancel() {
	if !b.active {
		return
	}
	b.opts.log.Debug("binding cancelled", "action", b.target, "slot", b.slot)
	b.finish()
}

// Active reports whether a binding is in progress.
func (b *Binder) Active() bool {
	return b.active
}

// Target returns the action and slot being bound.
func (b *Binder) Target() (string, input.Slot) {
	return b.target, b.slot
}

func (b *Binder) capture(k key.Key) {
	if !b.active || b.d.Ticks() == b.started {
		return
	}
	name, slot := b.target, b.slot
	b.finish()

	b.d.Registry().SetActionKey(name, k, slot)
	b.opts.log.Info("key bound", "action", name, "slot", slot, "key", k)
	b.OnBound.Emit(Bound{Action: name, Slot: slot, Key: k})
}

func (b *Binder) expire(tick uint64) {
	if b.active && tick-b.started >= b.opts.timeout {
		b.opts.log.Debug("binding timed out", "action", b.target, "slot", b.slot)
		b.finish()
	}
}

func (b *Binder) finish() {
	b.subs.Close()
	b.active = false
	b.OnActiveChange.Emit(false)
}
