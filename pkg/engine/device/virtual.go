// Package device provides the platform input sources polled by the input
// dispatcher: a scripted Virtual device, a raw-mode Terminal and an Ebiten
// window.
package device

import (
	"github.com/zyedidia/generic/mapset"

	"actionmap/pkg/engine/input/key"
)

// Virtual is a scripted device. Press and Release change the live key state;
// Poll latches it, so edges are computed between consecutive polls. A press
// and release of the same key between two polls is not seen.
type Virtual struct {
	held mapset.Set[key.Key]
	cur  mapset.Set[key.Key]
	prev mapset.Set[key.Key]

	pendingX, pendingY float64
	dx, dy             float64
}

// NewVirtual creates a device with no keys held.
func NewVirtual() *Virtual {
	return &Virtual{
		held: mapset.New[key.Key](),
		cur:  mapset.New[key.Key](),
		prev: mapset.New[key.Key](),
	}
}

// Press holds keys down from the next poll on.
func (v *Virtual) Press(keys ...key.Key) {
	for _, k := range keys {
		v.held.Put(k)
	}
}

// Release lets keys go from the next poll on.
func (v *Virtual) Release(keys ...key.Key) {
	for _, k := range keys {
		v.held.Remove(k)
	}
}

// ReleaseAll lets every held key go.
func (v *Virtual) ReleaseAll() {
	clearSet(v.held)
}

// MovePointer accumulates pointer movement for the next poll.
func (v *Virtual) MovePointer(dx, dy float64) {
	v.pendingX += dx
	v.pendingY += dy
}

// Poll latches the live state as the state of the new tick.
func (v *Virtual) Poll() {
	copySet(v.prev, v.cur)
	copySet(v.cur, v.held)
	v.dx, v.dy = v.pendingX, v.pendingY
	v.pendingX, v.pendingY = 0, 0
}

func (v *Virtual) KeyJustPressed(k key.Key) bool {
	return v.cur.Has(k) && !v.prev.Has(k)
}

func (v *Virtual) KeyJustReleased(k key.Key) bool {
	return !v.cur.Has(k) && v.prev.Has(k)
}

func (v *Virtual) KeyDown(k key.Key) bool {
	return v.cur.Has(k)
}

func (v *Virtual) PointerDelta() (float64, float64) {
	return v.dx, v.dy
}

func (v *Virtual) AnyKeyJustPressed() bool {
	found := false
	v.cur.Each(func(k key.Key) {
		if !v.prev.Has(k) {
			found = true
		}
	})
	return found
}

func copySet(dst, src mapset.Set[key.Key]) {
	clearSet(dst)
	src.Each(func(k key.Key) {
		dst.Put(k)
	})
}

func clearSet(s mapset.Set[key.Key]) {
	var keys []key.Key
	s.Each(func(k key.Key) {
		keys = append(keys, k)
	})
	for _, k := range keys {
		s.Remove(k)
	}
}
