package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/opd-ai/go-asteroids/pkg/config"
)

func newTestController() *Controller {
	return NewController(config.DefaultConfig().Input)
}

func TestController_PointerDeltaSigns(t *testing.T) {
	c := newTestController()

	c.PointerDelta(5, -3)
	c.PointerDelta(1, 1)
	in := c.Frame(time.Unix(0, 0))

	assert.Equal(t, -6.0, in.DeltaHeading)
	assert.Equal(t, -2.0, in.DeltaPitch)

	drained := c.Frame(time.Unix(0, 0))
	assert.Zero(t, drained.DeltaHeading)
	assert.Zero(t, drained.DeltaPitch)
}

func TestController_PointerAtRecentres(t *testing.T) {
	c := newTestController()

	c.PointerAt(210, 195)
	in := c.Frame(time.Now())

	assert.Equal(t, -10.0, in.DeltaHeading)
	assert.Equal(t, -5.0, in.DeltaPitch)
}

func TestController_AccelerateHeldUntilKeyUp(t *testing.T) {
	c := newTestController()
	t0 := time.Unix(100, 0)

	c.KeyDown(ActionAccelerate, t0)
	assert.True(t, c.Frame(t0).Accelerate)
	assert.True(t, c.Frame(t0.Add(5*time.Second)).Accelerate)

	c.KeyUp(ActionAccelerate)
	assert.False(t, c.Frame(t0.Add(5*time.Second)).Accelerate)
}

func TestController_FireOncePerPress(t *testing.T) {
	c := newTestController()
	t0 := time.Unix(100, 0)

	c.KeyDown(ActionFire, t0)
	c.KeyDown(ActionFire, t0) // platform repeat while held
	assert.True(t, c.Frame(t0).Fire)
	assert.False(t, c.Frame(t0).Fire)

	c.KeyUp(ActionFire)
	c.KeyDown(ActionFire, t0)
	assert.True(t, c.Frame(t0).Fire)
}

func TestController_KeyRepeatHoldWindow(t *testing.T) {
	c := newTestController()
	t0 := time.Unix(100, 0)

	tests := []struct {
		name   string
		offset time.Duration
		want   bool
	}{
		{"at_press", 0, true},
		{"inside_window", 150 * time.Millisecond, true},
		{"after_window", 151 * time.Millisecond, false},
	}

	c.KeyRepeat(ActionAccelerate, t0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Frame(t0.Add(tt.offset)).Accelerate)
		})
	}
}

func TestController_RepeatedFireDebounced(t *testing.T) {
	c := newTestController()
	t0 := time.Unix(100, 0)

	c.KeyRepeat(ActionFire, t0)
	assert.True(t, c.Frame(t0).Fire)

	c.KeyRepeat(ActionFire, t0.Add(50*time.Millisecond))
	assert.False(t, c.Frame(t0.Add(50*time.Millisecond)).Fire, "auto-repeat inside the window")

	c.KeyRepeat(ActionFire, t0.Add(time.Second))
	assert.True(t, c.Frame(t0.Add(time.Second)).Fire, "new press after a pause")
}

func TestController_OneShotActions(t *testing.T) {
	c := newTestController()

	c.Press(ActionQuit)
	c.Press(ActionStop)
	c.Press(ActionResetOrientation)
	in := c.Frame(time.Now())

	assert.True(t, in.Quit)
	assert.True(t, in.Stop)
	assert.True(t, in.ResetOrientation)
	assert.False(t, in.Fire)
}

func TestController_Reset(t *testing.T) {
	c := newTestController()
	now := time.Now()
	c.KeyDown(ActionAccelerate, now)
	c.PointerDelta(3, 3)
	c.Press(ActionFire)

	c.Reset()
	in := c.Frame(now)

	assert.False(t, in.Accelerate)
	assert.False(t, in.Fire)
	assert.Zero(t, in.DeltaHeading)
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "accelerate", ActionAccelerate.String())
	assert.Equal(t, "fire", ActionFire.String())
	assert.Equal(t, "unknown", Action(0).String())
}
