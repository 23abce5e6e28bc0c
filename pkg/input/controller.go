// Package input turns raw frontend events into one engine.Input per tick.
package input

import (
	"time"

	"github.com/opd-ai/go-asteroids/pkg/config"
	"github.com/opd-ai/go-asteroids/pkg/engine"
)

// Action is a logical control the player can trigger
type Action int

const (
	ActionAccelerate Action = iota + 1
	ActionFire
	ActionQuit
	ActionStop
	ActionResetOrientation
)

// String returns the binding name used in logs
func (a Action) String() string {
	switch a {
	case ActionAccelerate:
		return "accelerate"
	case ActionFire:
		return "fire"
	case ActionQuit:
		return "quit"
	case ActionStop:
		return "stop"
	case ActionResetOrientation:
		return "resetOrientation"
	default:
		return "unknown"
	}
}

// held reports whether an action fires once per press or stays active while
// the key is down
func (a Action) held() bool {
	return a == ActionAccelerate
}

type keyState struct {
	down     bool
	lastSeen time.Time
}

// Controller accumulates pointer motion and key state between frames.
// It is not safe for concurrent use; frontends feed it from their event
// loop and drain it with Frame.
type Controller struct {
	cfg config.InputConfig

	heading float64
	pitch   float64

	keys    map[Action]*keyState
	pressed map[Action]bool
}

// NewController creates a controller using the given input settings
func NewController(cfg config.InputConfig) *Controller {
	return &Controller{
		cfg:     cfg,
		keys:    make(map[Action]*keyState),
		pressed: make(map[Action]bool),
	}
}

// PointerDelta accumulates relative pointer motion in raw units. Moving
// right turns right and moving down is reported as positive pitch.
func (c *Controller) PointerDelta(dx, dy float64) {
	c.heading -= dx
	c.pitch += dy
}

// PointerAt accumulates the displacement of an absolute pointer position
// from the re-centre point. The frontend is expected to warp the pointer
// back to (MouseOffset, MouseOffset) after each frame.
func (c *Controller) PointerAt(x, y float64) {
	c.PointerDelta(x-c.cfg.MouseOffset, y-c.cfg.MouseOffset)
}

// KeyDown records a key press. Trigger actions fire once per press.
func (c *Controller) KeyDown(a Action, at time.Time) {
	ks := c.state(a)
	if !ks.down && !a.held() {
		c.pressed[a] = true
	}
	ks.down = true
	ks.lastSeen = at
}

// KeyUp records a key release
func (c *Controller) KeyUp(a Action) {
	ks := c.state(a)
	ks.down = false
	ks.lastSeen = time.Time{}
}

// KeyRepeat records a key event from a source that never reports release.
// The key counts as held for HoldWindow after the latest repeat. A trigger
// action fires only when the previous repeat is older than the window, so
// terminal auto-repeat does not turn into auto-fire.
func (c *Controller) KeyRepeat(a Action, at time.Time) {
	ks := c.state(a)
	if !a.held() && !c.within(ks, at) {
		c.pressed[a] = true
	}
	ks.lastSeen = at
}

// Press triggers a one-shot action such as a mouse click
func (c *Controller) Press(a Action) {
	c.pressed[a] = true
}

// Held reports whether an action is currently active at now
func (c *Controller) Held(a Action, now time.Time) bool {
	ks, ok := c.keys[a]
	if !ok {
		return false
	}
	return ks.down || c.within(ks, now)
}

// Frame drains the accumulated state into a tick input. Pointer deltas and
// one-shot presses are consumed; held keys persist.
func (c *Controller) Frame(now time.Time) engine.Input {
	in := engine.Input{
		DeltaHeading:     c.heading,
		DeltaPitch:       c.pitch,
		Accelerate:       c.Held(ActionAccelerate, now),
		Fire:             c.pressed[ActionFire],
		Quit:             c.pressed[ActionQuit],
		Stop:             c.pressed[ActionStop],
		ResetOrientation: c.pressed[ActionResetOrientation],
	}
	c.heading, c.pitch = 0, 0
	clear(c.pressed)
	return in
}

// Reset forgets all key and pointer state
func (c *Controller) Reset() {
	c.heading, c.pitch = 0, 0
	clear(c.keys)
	clear(c.pressed)
}

func (c *Controller) state(a Action) *keyState {
	ks, ok := c.keys[a]
	if !ok {
		ks = &keyState{}
		c.keys[a] = ks
	}
	return ks
}

func (c *Controller) within(ks *keyState, now time.Time) bool {
	if ks.lastSeen.IsZero() || c.cfg.HoldWindow <= 0 {
		return false
	}
	return now.Sub(ks.lastSeen) <= c.cfg.HoldWindow
}
