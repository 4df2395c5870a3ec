package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoystickSectors(t *testing.T) {
	cases := []struct {
		name   string
		dx, dy float64
		want   ControlVector
	}{
		{"east", 50, 0, ControlVector{Right: true}},
		{"south-east", 40, 40, ControlVector{Right: true, Down: true}},
		{"south", 0, 50, ControlVector{Down: true}},
		{"south-west", -40, 40, ControlVector{Down: true, Left: true}},
		{"west", -50, 0, ControlVector{Left: true}},
		{"north-west", -40, -40, ControlVector{Left: true, Up: true}},
		{"north", 0, -50, ControlVector{Up: true}},
		{"north-east", 40, -40, ControlVector{Up: true, Right: true}},
		{"near east", 50, 10, ControlVector{Right: true}},
		{"near north", 5, -50, ControlVector{Up: true}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, JoystickVector(tc.dx, tc.dy, 12))
		})
	}
}

func TestJoystickDeadZone(t *testing.T) {
	assert.Equal(t, ControlVector{}, JoystickVector(5, 5, 12))
	assert.Equal(t, ControlVector{}, JoystickVector(0, 0, 0))
	assert.Equal(t, ControlVector{Down: true}, JoystickVector(0, 12, 12))
}

func TestDefaultControlLayout(t *testing.T) {
	l := DefaultControlLayout(800, 600)

	assert.True(t, l.InJoystick(l.JoystickX, l.JoystickY))
	assert.False(t, l.InJoystick(400, 300))
	assert.Equal(t, 12.0, l.JoystickDeadZone())

	act, ok := l.ButtonAt(800-24-45, 600-24-45)
	assert.True(t, ok)
	assert.Equal(t, ActionFire, act)

	_, ok = l.ButtonAt(10, 10)
	assert.False(t, ok)

	assert.False(t, ControlLayout{}.InJoystick(0, 0), "a layout without joystick never matches")
}

func TestTouchJoystickDrag(t *testing.T) {
	a := newTestAggregator()
	l := a.Layout()

	a.HandleTouch(TouchEvent{ID: 3, Phase: TouchStart, X: l.JoystickX, Y: l.JoystickY})
	assert.Equal(t, ControlVector{}, a.Resolve(), "touch at the center is inside the dead zone")
	assert.Equal(t, 1, a.ActiveTouches())

	a.HandleTouch(TouchEvent{ID: 3, Phase: TouchMove, X: l.JoystickX - 40, Y: l.JoystickY})
	assert.Equal(t, ControlVector{Left: true}, a.Resolve())

	// Dragging outside the joystick keeps control
	a.HandleTouch(TouchEvent{ID: 3, Phase: TouchMove, X: l.JoystickX, Y: l.JoystickY - 300})
	assert.Equal(t, ControlVector{Up: true}, a.Resolve())

	a.HandleTouch(TouchEvent{ID: 3, Phase: TouchEnd})
	assert.Equal(t, ControlVector{}, a.Resolve())
	assert.Zero(t, a.ActiveTouches())
}

func TestTouchButtonOwnership(t *testing.T) {
	a := newTestAggregator()
	fire := a.Layout().Buttons[0].Bounds

	a.HandleTouch(TouchEvent{ID: 1, Phase: TouchStart, X: fire.X + 5, Y: fire.Y + 5})
	assert.True(t, a.Resolve().Fire)

	// Moving off the button does not release it
	a.HandleTouch(TouchEvent{ID: 1, Phase: TouchMove, X: 10, Y: 10})
	assert.True(t, a.Resolve().Fire)

	// A move from a touch that owns nothing has no effect
	a.HandleTouch(TouchEvent{ID: 2, Phase: TouchStart, X: 400, Y: 300})
	a.HandleTouch(TouchEvent{ID: 2, Phase: TouchMove, X: 400, Y: 300})
	assert.Equal(t, 1, a.ActiveTouches())

	a.HandleTouch(TouchEvent{ID: 1, Phase: TouchEnd, X: 10, Y: 10})
	assert.False(t, a.Resolve().Fire)
}

func TestTouchEndUnknownIsIgnored(t *testing.T) {
	a := newTestAggregator()
	a.PressButton(ActionFire)

	a.HandleTouch(TouchEvent{ID: 77, Phase: TouchEnd})
	assert.True(t, a.Resolve().Fire)
	assert.Zero(t, a.ActiveTouches())
}

func TestTouchAndKeyboardCombine(t *testing.T) {
	a := newTestAggregator()
	l := a.Layout()
	fire := l.Buttons[0].Bounds

	a.KeyDown(keyS)
	a.HandleTouch(TouchEvent{ID: 1, Phase: TouchStart, X: l.JoystickX + 50, Y: l.JoystickY})
	a.HandleTouch(TouchEvent{ID: 2, Phase: TouchStart, X: fire.X + 1, Y: fire.Y + 1})

	assert.Equal(t, ControlVector{Down: true, Right: true, Fire: true}, a.Resolve())
	assert.Equal(t, 2, a.ActiveTouches())
}

func TestTouchRepeatedStartReleasesPreviousControl(t *testing.T) {
	a := newTestAggregator()
	l := a.Layout()
	fire := l.Buttons[0].Bounds

	a.HandleTouch(TouchEvent{ID: 1, Phase: TouchStart, X: fire.X + 5, Y: fire.Y + 5})
	a.HandleTouch(TouchEvent{ID: 1, Phase: TouchStart, X: l.JoystickX - 40, Y: l.JoystickY})
	assert.Equal(t, ControlVector{Left: true}, a.Resolve(), "the second start moved the touch to the joystick")
	assert.Equal(t, 1, a.ActiveTouches())

	a.HandleTouch(TouchEvent{ID: 1, Phase: TouchEnd})
	assert.Equal(t, ControlVector{}, a.Resolve())
	assert.Zero(t, a.ActiveTouches())

	// A repeated start somewhere empty only drops the old control
	a.HandleTouch(TouchEvent{ID: 2, Phase: TouchStart, X: fire.X + 5, Y: fire.Y + 5})
	a.HandleTouch(TouchEvent{ID: 2, Phase: TouchStart, X: 400, Y: 300})
	assert.Equal(t, ControlVector{}, a.Resolve())
	assert.Zero(t, a.ActiveTouches())
}

func TestTouchJoystickHasOneOwner(t *testing.T) {
	a := newTestAggregator()
	l := a.Layout()

	a.HandleTouch(TouchEvent{ID: 1, Phase: TouchStart, X: l.JoystickX + 40, Y: l.JoystickY})
	a.HandleTouch(TouchEvent{ID: 2, Phase: TouchStart, X: l.JoystickX - 40, Y: l.JoystickY})
	assert.Equal(t, ControlVector{Right: true}, a.Resolve(), "a second finger cannot take the joystick")
	assert.Equal(t, 1, a.ActiveTouches())

	a.HandleTouch(TouchEvent{ID: 2, Phase: TouchMove, X: l.JoystickX, Y: l.JoystickY + 40})
	assert.Equal(t, ControlVector{Right: true}, a.Resolve())

	a.HandleTouch(TouchEvent{ID: 2, Phase: TouchEnd})
	assert.Equal(t, ControlVector{Right: true}, a.Resolve(), "ending the ignored touch keeps the owner's vector")

	a.HandleTouch(TouchEvent{ID: 1, Phase: TouchEnd})
	assert.Equal(t, ControlVector{}, a.Resolve())
}

func TestTouchButtonHeldByTwoFingers(t *testing.T) {
	a := newTestAggregator()
	fire := a.Layout().Buttons[0].Bounds

	a.HandleTouch(TouchEvent{ID: 1, Phase: TouchStart, X: fire.X + 5, Y: fire.Y + 5})
	a.HandleTouch(TouchEvent{ID: 2, Phase: TouchStart, X: fire.X + 10, Y: fire.Y + 10})

	a.HandleTouch(TouchEvent{ID: 1, Phase: TouchEnd})
	assert.True(t, a.Resolve().Fire, "the other finger still holds fire")

	a.HandleTouch(TouchEvent{ID: 2, Phase: TouchEnd})
	assert.False(t, a.Resolve().Fire)
}
