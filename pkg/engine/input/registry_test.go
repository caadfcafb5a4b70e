package input

import (
	"bytes"
	"strings"
	"testing"

	"actionmap/pkg/engine/input/key"
	"actionmap/pkg/engine/logger"
)

func TestRegistry_CreateDuplicateIsNoop(t *testing.T) {
	var buf bytes.Buffer
	reg := NewRegistry(WithRegistryLogger(logger.New(logger.Config{Level: "warn", Output: &buf})))

	first, created := reg.CreateAction("Jump", key.Space)
	if !created {
		t.Fatal("first CreateAction reported not created")
	}
	again, created := reg.CreateAction("Jump", key.J)
	if created {
		t.Fatal("duplicate CreateAction reported created")
	}
	if again != first {
		t.Error("duplicate CreateAction did not return the existing action")
	}
	if len(reg.Actions()) != 1 {
		t.Fatalf("len(Actions()) = %d, want 1", len(reg.Actions()))
	}
	if first.Key() != key.Space {
		t.Errorf("existing action key = %v, want Space", first.Key())
	}
	if !strings.Contains(buf.String(), "WARN") || !strings.Contains(buf.String(), "name=Jump") {
		t.Errorf("expected a warning naming Jump, got %q", buf.String())
	}
}

func TestRegistry_NamesUniqueAcrossSets(t *testing.T) {
	reg, _, _ := newRig(t)
	reg.CreateStaticAction("Escape", key.Escape)

	if _, created := reg.CreateAction("Escape", key.Q); created {
		t.Error("rebindable action shadowed a static one")
	}
	reg.CreateAction("Pause", key.P)
	if _, created := reg.CreateStaticAction("Pause", key.F1); created {
		t.Error("static action shadowed a rebindable one")
	}
	if _, ok := reg.GetAction("Escape"); ok {
		t.Error("GetAction found a static action")
	}
	if _, ok := reg.GetStaticAction("Pause"); ok {
		t.Error("GetStaticAction found a rebindable action")
	}
	if reg.Len() != 2 {
		t.Errorf("Len() = %d, want 2", reg.Len())
	}
}

func TestRegistry_LookupPaths(t *testing.T) {
	reg, _, _ := newRig(t)
	reg.CreateAction("Move Forward", key.W)
	reg.CreateStaticAction("Escape", key.Escape)

	if a, ok := reg.GetAction("Move Forward"); !ok || a.Name() != "Move Forward" {
		t.Errorf("GetAction(Move Forward) = %v, %v", a, ok)
	}
	if a, ok := reg.GetStaticAction("Escape"); !ok || a.Key() != key.Escape {
		t.Errorf("GetStaticAction(Escape) = %v, %v", a, ok)
	}
	if a, ok := reg.GetAction("Missing"); ok || a != nil {
		t.Errorf("GetAction(Missing) = %v, %v, want nil, false", a, ok)
	}
}

func TestRegistry_ActionsIsACopy(t *testing.T) {
	reg, _, _ := newRig(t)
	reg.CreateAction("A", key.A)
	reg.CreateAction("B", key.B)

	snap := reg.Actions()
	snap[0] = nil
	if got := reg.Actions(); got[0] == nil || got[0].Name() != "A" || got[1].Name() != "B" {
		t.Errorf("Actions() order or copy broken: %v", got)
	}
}

func TestRegistry_ActionByKey(t *testing.T) {
	reg, _, _ := newRig(t)
	reg.CreateAction("Fire", key.Mouse0)
	alt, _ := reg.CreateAction("Aim", key.Mouse1)
	alt.SetAltKey(key.Q)

	a, slot, ok := reg.actionByKey(key.Q)
	if !ok || a != alt || slot != Alternate {
		t.Errorf("actionByKey(Q) = %v, %v, %v", a, slot, ok)
	}
	if _, _, ok := reg.actionByKey(key.None); ok {
		t.Error("actionByKey(None) matched an unbound slot")
	}
	if _, _, ok := reg.actionByKey(key.Z); ok {
		t.Error("actionByKey(Z) matched")
	}
}

func TestRegistry_SetActionKeyTransfersConflict(t *testing.T) {
	reg, _, _ := newRig(t)
	a, _ := reg.CreateAction("A", key.None)
	b, _ := reg.CreateAction("B", key.None)
	ca, cb := track(a), track(b)

	reg.SetActionKey("A", key.K, Primary)
	reg.SetActionKey("B", key.K, Primary)

	if a.Key() != key.None {
		t.Errorf("A primary = %v, want None", a.Key())
	}
	if b.Key() != key.K {
		t.Errorf("B primary = %v, want K", b.Key())
	}
	if ca.change != 2 || cb.change != 1 {
		t.Errorf("change counts A=%d B=%d, want 2 and 1", ca.change, cb.change)
	}
}

func TestRegistry_SetActionKeyUnbindsMatchedSlot(t *testing.T) {
	reg, _, _ := newRig(t)
	move, _ := reg.CreateAction("Move Left", key.A)
	move.SetAltKey(key.Left)
	reg.CreateAction("Strafe", key.None)

	reg.SetActionKey("Strafe", key.Left, Primary)

	if move.Key() != key.A {
		t.Errorf("primary slot touched: %v", move.Key())
	}
	if move.AltKey() != key.None {
		t.Errorf("alternate slot = %v, want None", move.AltKey())
	}
}

func TestRegistry_SetActionKeySelfCollision(t *testing.T) {
	t.Run("other slot moves", func(t *testing.T) {
		reg, _, _ := newRig(t)
		a, _ := reg.CreateAction("Jump", key.Space)
		c := track(a)

		reg.SetActionKey("Jump", key.Space, Alternate)

		if a.Key() != key.None || a.AltKey() != key.Space {
			t.Errorf("bindings = %v/%v, want None/Space", a.Key(), a.AltKey())
		}
		if c.change != 2 {
			t.Errorf("change = %d, want 2", c.change)
		}
	})

	t.Run("same slot is a no-op", func(t *testing.T) {
		reg, _, _ := newRig(t)
		a, _ := reg.CreateAction("Jump", key.Space)
		c := track(a)

		reg.SetActionKey("Jump", key.Space, Primary)

		if a.Key() != key.Space || c.change != 0 {
			t.Errorf("key=%v change=%d, want Space and no events", a.Key(), c.change)
		}
	})
}

func TestRegistry_SetActionKeyUnknownIsSilent(t *testing.T) {
	var buf bytes.Buffer
	reg := NewRegistry(WithRegistryLogger(logger.New(logger.Config{Level: "debug", Output: &buf})))
	holder, _ := reg.CreateAction("Jump", key.Space)

	reg.SetActionKey("Ghost", key.Space, Primary)

	if holder.Key() != key.Space {
		t.Error("unknown target still stole the key")
	}
	if buf.Len() != 0 {
		t.Errorf("unknown target logged %q", buf.String())
	}
}

func TestRegistry_SetActionKeyNoneUnbinds(t *testing.T) {
	reg, _, _ := newRig(t)
	a, _ := reg.CreateAction("Jump", key.Space)
	b, _ := reg.CreateAction("Crouch", key.C)

	reg.SetActionKey("Jump", key.None, Primary)

	if a.Key() != key.None {
		t.Errorf("Jump = %v, want None", a.Key())
	}
	if b.Key() != key.C || b.AltKey() != key.None {
		t.Errorf("Crouch touched: %v/%v", b.Key(), b.AltKey())
	}
}

func TestRegistry_StaticActionsIgnoredByRebinding(t *testing.T) {
	reg, _, _ := newRig(t)
	esc, _ := reg.CreateStaticAction("Escape", key.Escape)
	reg.CreateAction("Menu", key.M)

	reg.SetActionKey("Escape", key.F1, Primary)
	reg.SetActionKey("Menu", key.Escape, Primary)

	if esc.Key() != key.Escape {
		t.Errorf("static action rebound to %v", esc.Key())
	}
	if m, _ := reg.GetAction("Menu"); m.Key() != key.Escape {
		t.Errorf("Menu = %v, want Escape", m.Key())
	}
}
