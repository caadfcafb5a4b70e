package input

import (
	"context"
	"errors"
	"testing"
	"time"

	"actionmap/pkg/engine/input/key"
)

func TestLoop_DoRunsOnLoopAndTicks(t *testing.T) {
	reg, dev, d := newRig(t)
	loop := NewLoop(d, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- loop.Run(ctx) }()

	pressed := make(chan struct{}, 1)
	err := loop.Do(ctx, func(d *Dispatcher) {
		a, _ := d.Registry().CreateAction("Jump", key.Space)
		a.OnPress.Subscribe(func(*Action) {
			select {
			case pressed <- struct{}{}:
			default:
			}
		})
		dev.Press(key.Space)
	})
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}

	select {
	case <-pressed:
	case <-time.After(2 * time.Second):
		t.Fatal("action never pressed by the loop")
	}

	var ticks uint64
	if err := loop.Do(ctx, func(d *Dispatcher) { ticks = d.Ticks() }); err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	if ticks == 0 {
		t.Error("Ticks() = 0 while loop running")
	}
	if _, ok := reg.GetAction("Jump"); !ok {
		t.Error("action created through Do missing from the registry")
	}

	cancel()
	if err := <-errc; !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
	if err := loop.Do(context.Background(), func(*Dispatcher) {}); !errors.Is(err, ErrLoopStopped) {
		t.Errorf("Do() after stop = %v, want ErrLoopStopped", err)
	}
}

func TestLoop_DoHonoursContext(t *testing.T) {
	_, _, d := newRig(t)
	loop := NewLoop(d, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := loop.Do(ctx, func(*Dispatcher) {}); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Do() on idle loop = %v, want DeadlineExceeded", err)
	}
}
