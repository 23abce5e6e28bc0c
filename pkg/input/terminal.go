package input

import (
	"github.com/gdamore/tcell/v2"
)

// Terminal rotation steps, in the same raw units as pointer motion.
const (
	ArrowStep = 30.0
	CellStep  = 10.0
)

// RuneBindings maps printable keys to actions for terminal play
var RuneBindings = map[rune]Action{
	'a': ActionAccelerate,
	'A': ActionAccelerate,
	' ': ActionFire,
	's': ActionStop,
	'r': ActionResetOrientation,
	'q': ActionQuit,
}

// TerminalAdapter feeds tcell events into a Controller. Terminals report no
// key release, so every key event is treated as a repeat.
type TerminalAdapter struct {
	ctrl *Controller

	mouseSeen    bool
	lastX, lastY int
	buttons      tcell.ButtonMask
}

// NewTerminalAdapter wraps ctrl
func NewTerminalAdapter(ctrl *Controller) *TerminalAdapter {
	return &TerminalAdapter{ctrl: ctrl}
}

// Handle processes one terminal event and reports whether it was consumed
func (ta *TerminalAdapter) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ta.handleKey(ev)
	case *tcell.EventMouse:
		ta.handleMouse(ev)
		return true
	}
	return false
}

func (ta *TerminalAdapter) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		ta.ctrl.Press(ActionQuit)
	case tcell.KeyLeft:
		ta.ctrl.PointerDelta(-ArrowStep, 0)
	case tcell.KeyRight:
		ta.ctrl.PointerDelta(ArrowStep, 0)
	case tcell.KeyUp:
		ta.ctrl.PointerDelta(0, -ArrowStep)
	case tcell.KeyDown:
		ta.ctrl.PointerDelta(0, ArrowStep)
	case tcell.KeyRune:
		a, ok := RuneBindings[ev.Rune()]
		if !ok {
			return false
		}
		ta.ctrl.KeyRepeat(a, ev.When())
	default:
		return false
	}
	return true
}

// handleMouse turns cell-to-cell pointer motion into rotation and a fresh
// left-button press into a shot
func (ta *TerminalAdapter) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	if ta.mouseSeen {
		ta.ctrl.PointerDelta(float64(x-ta.lastX)*CellStep, float64(y-ta.lastY)*CellStep)
	}
	ta.mouseSeen = true
	ta.lastX, ta.lastY = x, y

	buttons := ev.Buttons()
	if buttons&tcell.Button1 != 0 && ta.buttons&tcell.Button1 == 0 {
		ta.ctrl.Press(ActionFire)
	}
	ta.buttons = buttons
}
