package input

import (
	"log/slog"

	"actionmap/pkg/engine/input/key"
	"actionmap/pkg/engine/logger"
)

// Registry owns the rebindable and the static actions.
//
// Names are unique across both sets. Within the rebindable set SetActionKey
// keeps every non-none key bound to at most one action.
type Registry struct {
	actions []*Action
	static  []*Action
	log     *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRegistryLogger sets the logger used for rejected operations.
func WithRegistryLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.log = l
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.L()
	}
	return r
}

// Actions returns a copy of the rebindable actions in registration order.
func (r *Registry) Actions() []*Action {
	out := make([]*Action, len(r.actions))
	copy(out, r.actions)
	return out
}

// StaticActions returns a copy of the static actions in registration order.
func (r *Registry) StaticActions() []*Action {
	out := make([]*Action, len(r.static))
	copy(out, r.static)
	return out
}

// Len returns the number of actions in both sets.
func (r *Registry) Len() int {
	return len(r.actions) + len(r.static)
}

// GetAction looks up a rebindable action.
func (r *Registry) GetAction(name string) (*Action, bool) {
	return find(r.actions, name)
}

// GetStaticAction looks up a static action.
func (r *Registry) GetStaticAction(name string) (*Action, bool) {
	return find(r.static, name)
}

// actionByKey returns the first rebindable action bound to k and the slot
// that matched. The target of a rebind is not excluded.
func (r *Registry) actionByKey(k key.Key) (*Action, Slot, bool) {
	for _, a := range r.actions {
		if s, ok := a.slotOf(k); ok {
			return a, s, true
		}
	}
	return nil, Primary, false
}

// CreateAction registers a rebindable action with k on the primary slot.
// When the name is taken in either set a warning is logged and the existing
// action is returned with created == false.
func (r *Registry) CreateAction(name string, k key.Key) (a *Action, created bool) {
	if a, ok := r.lookupAny(name); ok {
		r.log.Warn("cannot create action, name already in use", "name", name, "static", r.isStatic(a))
		return a, false
	}
	a = newAction(name, k)
	r.actions = append(r.actions, a)
	return a, true
}

// CreateStaticAction registers an action that is never rebound.
// Name collisions behave as in CreateAction.
func (r *Registry) CreateStaticAction(name string, k key.Key) (a *Action, created bool) {
	if a, ok := r.lookupAny(name); ok {
		r.log.Warn("cannot create static action, name already in use", "name", name, "static", r.isStatic(a))
		return a, false
	}
	a = newAction(name, k)
	r.static = append(r.static, a)
	return a, true
}

// SetActionKey binds k to the given slot of the named rebindable action.
// Unknown names are ignored.
//
// If another action already holds k, the slot that matched on that action is
// unbound first. If the target itself holds k in its other slot, that slot is
// cleared so the binding moves; if it already holds k in the requested slot
// nothing happens.
func (r *Registry) SetActionKey(name string, k key.Key, slot Slot) {
	target, ok := r.GetAction(name)
	if !ok {
		return
	}

	if holder, matched, ok := r.actionByKey(k); ok {
		if holder == target && matched == slot {
			return
		}
		holder.SetBinding(matched, key.None)
	}
	target.SetBinding(slot, k)
}

func (r *Registry) lookupAny(name string) (*Action, bool) {
	if a, ok := find(r.actions, name); ok {
		return a, true
	}
	return find(r.static, name)
}

func (r *Registry) isStatic(a *Action) bool {
	for _, s := range r.static {
		if s == a {
			return true
		}
	}
	return false
}

// releaseAll forces every pressed action into the released state, static
// actions first.
func (r *Registry) releaseAll() {
	for _, list := range [][]*Action{r.static, r.actions} {
		for _, a := range list {
			if a.Pressed() {
				a.SimulateRelease()
			}
		}
	}
}

func find(list []*Action, name string) (*Action, bool) {
	for _, a := range list {
		if a.name == name {
			return a, true
		}
	}
	return nil, false
}
