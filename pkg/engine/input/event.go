package input

// Handle identifies one subscription on an Event.
type Handle uint64

type listener[T any] struct {
	id      Handle
	fn      func(T)
	removed bool
}

// Event is an ordered observer list. Listeners run in subscription order.
//
// Subscribe and Unsubscribe may be called from inside a listener while Emit
// is running: a listener removed mid-emit is not called again, and a listener
// added mid-emit is first called on the next Emit.
//
// The zero value is ready to use. Event is not safe for concurrent use; all
// calls belong to the tick-owning goroutine.
type Event[T any] struct {
	next      Handle
	listeners []*listener[T]
}

// Subscribe appends fn and returns a handle for Unsubscribe.
func (e *Event[T]) Subscribe(fn func(T)) Handle {
	e.next++
	l := &listener[T]{id: e.next, fn: fn}

	// copy-on-write so an in-flight Emit keeps iterating its own snapshot
	ls := make([]*listener[T], len(e.listeners), len(e.listeners)+1)
	copy(ls, e.listeners)
	e.listeners = append(ls, l)
	return l.id
}

// SubscribeOnce registers fn to run for the next emitted value only. The
// listener is detached before fn runs, so later emits in the same tick never
// reach it.
func (e *Event[T]) SubscribeOnce(fn func(T)) Handle {
	var h Handle
	h = e.Subscribe(func(v T) {
		e.Unsubscribe(h)
		fn(v)
	})
	return h
}

// Unsubscribe detaches the listener. It reports false when h is unknown.
func (e *Event[T]) Unsubscribe(h Handle) bool {
	for i, l := range e.listeners {
		if l.id != h {
			continue
		}
		l.removed = true
		ls := make([]*listener[T], 0, len(e.listeners)-1)
		ls = append(ls, e.listeners[:i]...)
		e.listeners = append(ls, e.listeners[i+1:]...)
		return true
	}
	return false
}

// Emit delivers v to every listener attached when Emit was called.
func (e *Event[T]) Emit(v T) {
	for _, l := range e.listeners {
		if l.removed {
			continue
		}
		l.fn(v)
	}
}

// Len returns the number of attached listeners.
func (e *Event[T]) Len() int {
	return len(e.listeners)
}

// Clear detaches every listener.
func (e *Event[T]) Clear() {
	for _, l := range e.listeners {
		l.removed = true
	}
	e.listeners = nil
}

// Group collects subscriptions on any number of events so they can be
// detached together. The zero value is ready to use.
type Group struct {
	detach []func()
}

// Listen subscribes fn to e and records the subscription in g.
func Listen[T any](g *Group, e *Event[T], fn func(T)) {
	h := e.Subscribe(fn)
	g.detach = append(g.detach, func() { e.Unsubscribe(h) })
}

// Close detaches every recorded subscription, newest first.
func (g *Group) Close() {
	for i := len(g.detach) - 1; i >= 0; i-- {
		g.detach[i]()
	}
	g.detach = nil
}

// Len returns the number of recorded subscriptions.
func (g *Group) Len() int {
	return len(g.detach)
}
