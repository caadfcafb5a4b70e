package device

import (
	"testing"

	"actionmap/pkg/engine/input/key"
)

func TestVirtual_EdgesBetweenPolls(t *testing.T) {
	v := NewVirtual()

	v.Press(key.W)
	v.Poll()
	if !v.KeyJustPressed(key.W) || !v.KeyDown(key.W) {
		t.Fatal("tick 1: W should be just pressed and down")
	}
	if !v.AnyKeyJustPressed() {
		t.Error("tick 1: AnyKeyJustPressed() = false")
	}

	v.Poll()
	if v.KeyJustPressed(key.W) {
		t.Error("tick 2: W reported just pressed while held")
	}
	if !v.KeyDown(key.W) {
		t.Error("tick 2: W not down")
	}
	if v.AnyKeyJustPressed() {
		t.Error("tick 2: AnyKeyJustPressed() = true while only holding")
	}

	v.Release(key.W)
	v.Poll()
	if !v.KeyJustReleased(key.W) || v.KeyDown(key.W) {
		t.Error("tick 3: W should be just released and up")
	}

	v.Poll()
	if v.KeyJustReleased(key.W) {
		t.Error("tick 4: release edge repeated")
	}
}

func TestVirtual_PressReleaseBetweenPollsIsInvisible(t *testing.T) {
	v := NewVirtual()
	v.Press(key.Space)
	v.Release(key.Space)
	v.Poll()
	if v.KeyJustPressed(key.Space) || v.KeyDown(key.Space) {
		t.Error("tap between polls should not be visible")
	}
}

func TestVirtual_PointerDeltaIsPerPoll(t *testing.T) {
	v := NewVirtual()
	v.MovePointer(1, 2)
	v.MovePointer(0.5, -1)
	v.Poll()
	if dx, dy := v.PointerDelta(); dx != 1.5 || dy != 1 {
		t.Errorf("PointerDelta() = (%v, %v), want (1.5, 1)", dx, dy)
	}
	v.Poll()
	if dx, dy := v.PointerDelta(); dx != 0 || dy != 0 {
		t.Errorf("PointerDelta() after quiet tick = (%v, %v), want zero", dx, dy)
	}
}

func TestVirtual_ReleaseAll(t *testing.T) {
	v := NewVirtual()
	v.Press(key.W, key.A, key.LeftShift)
	v.Poll()

	v.ReleaseAll()
	v.Poll()
	for _, k := range []key.Key{key.W, key.A, key.LeftShift} {
		if v.KeyDown(k) {
			t.Errorf("%v still down after ReleaseAll", k)
		}
		if !v.KeyJustReleased(k) {
			t.Errorf("%v has no release edge", k)
		}
	}

	v.Poll()
	if v.KeyJustReleased(key.W) {
		t.Error("release edge repeated on the next poll")
	}
}
