// Package player turns actions and pointer movement into a moving, turning
// body and a pitching camera.
package player

import (
	"errors"
	"fmt"
	"math"

	"actionmap/pkg/engine/input"
	"actionmap/pkg/game/config"
)

// Names of the actions the controller listens to.
const (
	ActionMoveForward = "Move Forward"
	ActionMoveBack    = "Move Back"
	ActionMoveLeft    = "Move Left"
	ActionMoveRight   = "Move Right"
	ActionRun         = "Run"
)

// ErrMissingAction is returned by Enable when a required action is not
// registered.
var ErrMissingAction = errors.New("action not registered")

// Vec2 is a position or direction on the ground plane. Z points forward at
// zero yaw.
type Vec2 struct {
	X, Z float64
}

func (v Vec2) add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Z + o.Z} }

func (v Vec2) scale(s float64) Vec2 { return Vec2{v.X * s, v.Z * s} }

// Len returns the vector length.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Z) }

func (v Vec2) normalized() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return v.scale(1 / l)
}

// Controller moves the player while the move actions are held, runs while
// Run is pressed and yaws with horizontal pointer movement.
type Controller struct {
	d             *input.Dispatcher
	speed         float64
	runMultiplier float64

	position  Vec2
	yaw       float64
	direction Vec2
	running   bool

	subs    input.Group
	enabled bool
}

// NewController creates a disabled controller.
func NewController(d *input.Dispatcher, cfg config.PlayerConfig) *Controller {
	return &Controller{d: d, speed: cfg.Speed, runMultiplier: cfg.RunMultiplier}
}

// Enable subscribes to the move actions, Run and the pointer broadcast.
// Calling Enable on an enabled controller does nothing.
func (c *Controller) Enable() error {
	if c.enabled {
		return nil
	}

	reg := c.d.Registry()
	moves := []struct {
		name string
		step func() Vec2
	}{
		{ActionMoveLeft, func() Vec2 { return c.right().scale(-1) }},
		{ActionMoveRight, c.right},
		{ActionMoveForward, c.forward},
		{ActionMoveBack, func() Vec2 { return c.forward().scale(-1) }},
	}
	for _, m := range moves {
		a, ok := reg.GetAction(m.name)
		if !ok {
			c.subs.Close()
			return fmt.Errorf("%w: %s", ErrMissingAction, m.name)
		}
		step := m.step
		input.Listen(&c.subs, &a.OnHold, func(*input.Action) {
			c.direction = c.direction.add(step())
		})
	}

	run, ok := reg.GetAction(ActionRun)
	if !ok {
		c.subs.Close()
		return fmt.Errorf("%w: %s", ErrMissingAction, ActionRun)
	}
	input.Listen(&c.subs, &run.OnPress, func(*input.Action) { c.running = true })
	input.Listen(&c.subs, &run.OnRelease, func(*input.Action) { c.running = false })

	input.Listen(&c.subs, &c.d.OnPointerMove, func(p input.PointerDelta) {
		c.yaw = wrapDegrees(c.yaw + p.X*c.d.Sensitivity())
	})

	c.enabled = true
	return nil
}

// Disable detaches every subscription and drops the pending movement. The
// run flag is cleared too, since the Run release would otherwise be missed.
func (c *Controller) Disable() {
	if !c.enabled {
		return
	}
	c.subs.Close()
	c.direction = Vec2{}
	c.running = false
	c.enabled = false
}

// Enabled reports whether the controller is subscribed.
func (c *Controller) Enabled() bool {
	return c.enabled
}

// Update moves the player by the direction accumulated since the last call,
// normalized, for dt seconds, and resets the direction.
func (c *Controller) Update(dt float64) {
	mult := 1.0
	if c.running {
		mult = c.runMultiplier
	}
	c.position = c.position.add(c.direction.normalized().scale(c.speed * mult * dt))
	c.direction = Vec2{}
}

// Position returns the player's position.
func (c *Controller) Position() Vec2 {
	return c.position
}

// Yaw returns the heading in degrees, in [0, 360).
func (c *Controller) Yaw() float64 {
	return c.yaw
}

// Running reports whether Run is held.
func (c *Controller) Running() bool {
	return c.running
}

func (c *Controller) forward() Vec2 {
	r := c.yaw * math.Pi / 180
	return Vec2{X: math.Sin(r), Z: math.Cos(r)}
}

func (c *Controller) right() Vec2 {
	r := c.yaw * math.Pi / 180
	return Vec2{X: math.Cos(r), Z: -math.Sin(r)}
}

func wrapDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
