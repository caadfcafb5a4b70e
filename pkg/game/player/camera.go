package player

import (
	"actionmap/pkg/engine/input"
	"actionmap/pkg/game/config"
)

// Camera pitches with vertical pointer movement, clamped to ±MaxPitch.
type Camera struct {
	d        *input.Dispatcher
	maxPitch float64
	pitch    float64

	subs    input.Group
	enabled bool
}

// NewCamera creates a disabled camera.
func NewCamera(d *input.Dispatcher, cfg config.CameraConfig) *Camera {
	return &Camera{d: d, maxPitch: cfg.MaxPitch}
}

// Enable subscribes to the pointer broadcast. It never fails; the error
// matches Controller.Enable.
func (c *Camera) Enable() error {
	if c.enabled {
		return nil
	}
	input.Listen(&c.subs, &c.d.OnPointerMove, c.rotate)
	c.enabled = true
	return nil
}

func (c *Camera) Disable() {
	if !c.enabled {
		return
	}
	c.subs.Close()
	c.enabled = false
}

func (c *Camera) Enabled() bool {
	return c.enabled
}

// Pitch returns the camera pitch in degrees, in [-MaxPitch, MaxPitch].
// Positive values look down.
func (c *Camera) Pitch() float64 {
	return c.pitch
}

func (c *Camera) rotate(p input.PointerDelta) {
	c.pitch = clampPitch(c.pitch-p.Y*c.d.Sensitivity(), c.maxPitch)
}

// clampPitch maps x onto (-180, 180] and clamps it to ±limit.
func clampPitch(x, limit float64) float64 {
	x = wrapDegrees(x)
	if x > 180 {
		x -= 360
	}
	switch {
	case x > limit:
		return limit
	case x < -limit:
		return -limit
	}
	return x
}
