// Package input decouples physical keys from logical actions.
//
// A Registry holds two sets of named actions: rebindable ones, which the
// player can move between keys at runtime, and static ones such as
// "Escape". Every action has a primary and an alternate key slot and a
// press/hold/release state machine. A Dispatcher drives the state machines
// once per tick from a Device and broadcasts raw key-down edges and pointer
// movement.
//
// Basic usage:
//
//	reg := input.NewRegistry()
//	reg.CreateAction("Move Forward", key.W)
//	reg.CreateAction("Run", key.LeftShift)
//	reg.CreateStaticAction("Escape", key.Escape)
//
//	d := input.NewDispatcher(reg, dev)
//	run, _ := reg.GetAction("Run")
//	run.OnPress.Subscribe(func(*input.Action) { running = true })
//	run.OnRelease.Subscribe(func(*input.Action) { running = false })
//
//	for frame := range frames {
//		d.Tick()
//	}
//
// Everything in this package runs on one goroutine. Listeners may subscribe
// and unsubscribe from inside a handler. Hosts that poll input on another
// thread wrap the dispatcher in a Loop and route changes through Loop.Do.
package input
