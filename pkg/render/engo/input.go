package engo

import (
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-asteroids/pkg/input"
)

// Button names registered with engo
const (
	buttonAccelerate       = "accelerate"
	buttonFire             = "fire"
	buttonQuit             = "quit"
	buttonStop             = "stop"
	buttonResetOrientation = "resetOrientation"
)

// InputSystem feeds engo keyboard and mouse state into an input.Controller
type InputSystem struct {
	ctrl *input.Controller

	mouseSeen    bool
	lastX, lastY float32
}

// NewInputSystem creates an input system driving ctrl
func NewInputSystem(ctrl *input.Controller) *InputSystem {
	return &InputSystem{ctrl: ctrl}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update samples the devices once per frame
func (is *InputSystem) Update(dt float32) {
	now := time.Now()

	if engo.Input.Button(buttonAccelerate).Down() {
		is.ctrl.KeyDown(input.ActionAccelerate, now)
	} else {
		is.ctrl.KeyUp(input.ActionAccelerate)
	}

	pressed := map[string]input.Action{
		buttonFire:             input.ActionFire,
		buttonQuit:             input.ActionQuit,
		buttonStop:             input.ActionStop,
		buttonResetOrientation: input.ActionResetOrientation,
	}
	for name, action := range pressed {
		if engo.Input.Button(name).JustPressed() {
			is.ctrl.Press(action)
		}
	}

	mouse := engo.Input.Mouse
	is.pointer(mouse.X, mouse.Y)
	if mouse.Button == engo.MouseButtonLeft && mouse.Action == engo.Press {
		is.ctrl.Press(input.ActionFire)
	}
}

// pointer converts absolute cursor positions into frame-to-frame deltas.
// The first sample only anchors.
func (is *InputSystem) pointer(x, y float32) {
	if is.mouseSeen {
		is.ctrl.PointerDelta(float64(x-is.lastX), float64(y-is.lastY))
	}
	is.mouseSeen = true
	is.lastX, is.lastY = x, y
}

// SetupInputBindings registers the key bindings
func SetupInputBindings() {
	engo.Input.RegisterButton(buttonAccelerate, engo.KeyA)
	engo.Input.RegisterButton(buttonFire, engo.KeySpace)
	engo.Input.RegisterButton(buttonQuit, engo.KeyEscape)
	engo.Input.RegisterButton(buttonStop, engo.KeyS)
	engo.Input.RegisterButton(buttonResetOrientation, engo.KeyR)
}
