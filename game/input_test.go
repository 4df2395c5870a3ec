package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	keyW Key = iota + 1
	keyA
	keyS
	keyD
	keySpace
	keyUpArrow
)

func testBindings() Bindings {
	return Bindings{
		keyW:       ActionUp,
		keyUpArrow: ActionUp,
		keyA:       ActionLeft,
		keyS:       ActionDown,
		keyD:       ActionRight,
		keySpace:   ActionFire,
	}
}

func newTestAggregator() *InputAggregator {
	return NewInputAggregator(testBindings(), DefaultControlLayout(800, 600))
}

func TestKeyboardVector(t *testing.T) {
	a := newTestAggregator()
	a.KeyDown(keyW)
	a.KeyDown(keyA)
	a.KeyDown(keySpace)

	assert.Equal(t, ControlVector{Up: true, Left: true, Fire: true}, a.Resolve())

	a.KeyUp(keyA)
	assert.Equal(t, ControlVector{Up: true, Fire: true}, a.Resolve())
}

func TestKeyUpWithoutKeyDown(t *testing.T) {
	a := newTestAggregator()
	a.KeyUp(keyW)
	assert.False(t, a.Held(keyW))
	assert.Equal(t, ControlVector{}, a.Resolve())

	a.KeyDown(keyW)
	a.KeyUp(keyS)
	assert.True(t, a.Held(keyW))
}

func TestAliasedKeys(t *testing.T) {
	a := newTestAggregator()
	a.KeyDown(keyW)
	a.KeyDown(keyUpArrow)
	a.KeyUp(keyW)

	assert.True(t, a.Resolve().Up, "the other key bound to up is still held")
}

func TestUnboundKeyIsIgnored(t *testing.T) {
	a := newTestAggregator()
	a.KeyDown(Key(999))
	assert.True(t, a.Held(Key(999)))
	assert.Equal(t, ControlVector{}, a.Resolve())
}

func TestApplyEvents(t *testing.T) {
	a := newTestAggregator()
	a.Apply(InputEvent{Key: keyD, Pressed: true})
	assert.True(t, a.Resolve().Right)
	a.Apply(InputEvent{Key: keyD, Pressed: false})
	assert.False(t, a.Resolve().Right)

	layout := a.Layout()
	a.Apply(InputEvent{Touch: &TouchEvent{ID: 1, Phase: TouchStart, X: layout.Buttons[0].Bounds.X + 1, Y: layout.Buttons[0].Bounds.Y + 1}})
	assert.True(t, a.Resolve().Fire)
}

func TestResolveMergesKeyboardAndTouch(t *testing.T) {
	a := newTestAggregator()
	a.KeyDown(keyW)
	a.PressButton(ActionFire)
	a.MoveJoystick(50, 0)

	assert.Equal(t, ControlVector{Up: true, Right: true, Fire: true}, a.Resolve())
	assert.Equal(t, ControlVector{Up: true}, a.KeyboardVector())
	assert.Equal(t, ControlVector{Right: true, Fire: true}, a.TouchVector())

	a.ReleaseButton(ActionFire)
	a.ReleaseJoystick()
	assert.Equal(t, ControlVector{Up: true}, a.Resolve())
}

func TestPressButtonOutOfRange(t *testing.T) {
	a := newTestAggregator()
	a.PressButton(ActionNone)
	a.PressButton(Action(42))
	assert.Equal(t, ControlVector{}, a.Resolve())
}

func TestReset(t *testing.T) {
	a := newTestAggregator()
	a.KeyDown(keyW)
	a.PressButton(ActionFire)
	a.MoveJoystick(0, -50)

	a.Reset()
	assert.Equal(t, ControlVector{}, a.Resolve())
	assert.False(t, a.Held(keyW))
	assert.Zero(t, a.ActiveTouches())
}

func TestToward(t *testing.T) {
	assert.Equal(t, ControlVector{Up: true}, Toward(DirUp))
	assert.Equal(t, ControlVector{Right: true}, Toward(DirRight))
	assert.Equal(t, ControlVector{Down: true}, Toward(DirDown))
	assert.Equal(t, ControlVector{Left: true}, Toward(DirLeft))
	assert.Equal(t, ControlVector{}, Toward(Direction(9)))
}
