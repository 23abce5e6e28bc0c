package input

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestTerminalAdapter_Keys(t *testing.T) {
	tests := []struct {
		name  string
		event *tcell.EventKey
		check func(t *testing.T, c *Controller)
	}{
		{
			name:  "escape_quits",
			event: tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
			check: func(t *testing.T, c *Controller) { assert.True(t, c.Frame(time.Now()).Quit) },
		},
		{
			name:  "space_fires",
			event: tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone),
			check: func(t *testing.T, c *Controller) { assert.True(t, c.Frame(time.Now()).Fire) },
		},
		{
			name:  "a_accelerates",
			event: tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone),
			check: func(t *testing.T, c *Controller) { assert.True(t, c.Frame(time.Now()).Accelerate) },
		},
		{
			name:  "left_arrow_turns_left",
			event: tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone),
			check: func(t *testing.T, c *Controller) { assert.Equal(t, ArrowStep, c.Frame(time.Now()).DeltaHeading) },
		},
		{
			name:  "down_arrow_pitches",
			event: tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone),
			check: func(t *testing.T, c *Controller) { assert.Equal(t, ArrowStep, c.Frame(time.Now()).DeltaPitch) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController()
			ta := NewTerminalAdapter(c)

			assert.True(t, ta.Handle(tt.event))
			tt.check(t, c)
		})
	}
}

func TestTerminalAdapter_UnboundRuneIgnored(t *testing.T) {
	c := newTestController()
	ta := NewTerminalAdapter(c)

	assert.False(t, ta.Handle(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone)))
	assert.Equal(t, c.Frame(time.Now()), c.Frame(time.Now()))
}

func TestTerminalAdapter_MouseMotionAndClick(t *testing.T) {
	c := newTestController()
	ta := NewTerminalAdapter(c)

	ta.Handle(tcell.NewEventMouse(10, 10, tcell.ButtonNone, tcell.ModNone))
	first := c.Frame(time.Now())
	assert.Zero(t, first.DeltaHeading, "first position only anchors")

	ta.Handle(tcell.NewEventMouse(12, 9, tcell.Button1, tcell.ModNone))
	ta.Handle(tcell.NewEventMouse(12, 9, tcell.Button1, tcell.ModNone))
	in := c.Frame(time.Now())

	assert.Equal(t, -2*CellStep, in.DeltaHeading)
	assert.Equal(t, -CellStep, in.DeltaPitch)
	assert.True(t, in.Fire)

	ta.Handle(tcell.NewEventMouse(12, 9, tcell.Button1, tcell.ModNone))
	assert.False(t, c.Frame(time.Now()).Fire, "button still held")
}
