package game

import (
	"github.com/kamstrup/intmap"
)

// ControlVector is the per-frame control request consumed by the simulation.
// It does not know which device produced it.
type ControlVector struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
	Fire  bool
}

// Or merges two control vectors axis by axis
func (c ControlVector) Or(o ControlVector) ControlVector {
	return ControlVector{
		Up:    c.Up || o.Up,
		Down:  c.Down || o.Down,
		Left:  c.Left || o.Left,
		Right: c.Right || o.Right,
		Fire:  c.Fire || o.Fire,
	}
}

// Toward returns a control vector that moves one step along a facing
func Toward(d Direction) ControlVector {
	switch d {
	case DirUp:
		return ControlVector{Up: true}
	case DirRight:
		return ControlVector{Right: true}
	case DirDown:
		return ControlVector{Down: true}
	case DirLeft:
		return ControlVector{Left: true}
	default:
		return ControlVector{}
	}
}

// Action is a logical control a key or virtual button can drive
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionFire
)

func (a Action) apply(c *ControlVector) {
	switch a {
	case ActionUp:
		c.Up = true
	case ActionDown:
		c.Down = true
	case ActionLeft:
		c.Left = true
	case ActionRight:
		c.Right = true
	case ActionFire:
		c.Fire = true
	}
}

// Key is a frontend specific key code; frontends pick their own numbering
// and supply matching Bindings.
type Key int

// Bindings maps key codes to actions
type Bindings map[Key]Action

// InputEvent is a raw key or touch event delivered by a frontend
type InputEvent struct {
	Key     Key
	Pressed bool

	// Touch is set for touch events; Key and Pressed are ignored then
	Touch *TouchEvent
}

// ControlSource produces the control vector for the next frame
type ControlSource interface {
	Resolve() ControlVector
}

// InputAggregator merges keyboard and touch state into one control vector.
// Events may arrive in any order; unmatched releases are ignored.
type InputAggregator struct {
	bindings Bindings
	held     *intmap.Map[Key, struct{}]

	layout  ControlLayout
	touches *intmap.Map[TouchID, touchOwner]

	buttons  [ActionFire + 1]bool
	joystick ControlVector
}

// NewInputAggregator creates an aggregator with the given key bindings and touch layout
func NewInputAggregator(bindings Bindings, layout ControlLayout) *InputAggregator {
	return &InputAggregator{
		bindings: bindings,
		held:     intmap.New[Key, struct{}](16),
		layout:   layout,
		touches:  intmap.New[TouchID, touchOwner](8),
	}
}

// Bindings returns the key bindings the aggregator resolves against
func (a *InputAggregator) Bindings() Bindings {
	return a.bindings
}

// Layout returns the touch control layout
func (a *InputAggregator) Layout() ControlLayout {
	return a.layout
}

// KeyDown marks a key as held
func (a *InputAggregator) KeyDown(k Key) {
	a.held.Put(k, struct{}{})
}

// KeyUp releases a key; releasing a key that is not held is a no-op
func (a *InputAggregator) KeyUp(k Key) {
	a.held.Del(k)
}

// Held reports whether a key is currently held
func (a *InputAggregator) Held(k Key) bool {
	_, ok := a.held.Get(k)
	return ok
}

// Apply dispatches a raw input event
func (a *InputAggregator) Apply(ev InputEvent) {
	if ev.Touch != nil {
		a.HandleTouch(*ev.Touch)
		return
	}
	if ev.Pressed {
		a.KeyDown(ev.Key)
	} else {
		a.KeyUp(ev.Key)
	}
}

// PressButton activates a virtual button
func (a *InputAggregator) PressButton(act Action) {
	if act > ActionNone && int(act) < len(a.buttons) {
		a.buttons[act] = true
	}
}

// ReleaseButton deactivates a virtual button
func (a *InputAggregator) ReleaseButton(act Action) {
	if act > ActionNone && int(act) < len(a.buttons) {
		a.buttons[act] = false
	}
}

// MoveJoystick sets the joystick directions from a drag offset relative to
// the joystick center. Offsets inside the dead zone clear the joystick.
func (a *InputAggregator) MoveJoystick(dx, dy float64) {
	a.joystick = JoystickVector(dx, dy, a.layout.JoystickDeadZone())
}

// ReleaseJoystick clears all joystick directions
func (a *InputAggregator) ReleaseJoystick() {
	a.joystick = ControlVector{}
}

// KeyboardVector returns the control vector derived from held keys
func (a *InputAggregator) KeyboardVector() ControlVector {
	var c ControlVector
	for k, act := range a.bindings {
		if a.Held(k) {
			act.apply(&c)
		}
	}
	return c
}

// TouchVector returns the control vector derived from virtual buttons and the joystick
func (a *InputAggregator) TouchVector() ControlVector {
	c := a.joystick
	for act, on := range a.buttons {
		if on {
			Action(act).apply(&c)
		}
	}
	return c
}

// Resolve returns the logical OR of keyboard and touch signals
func (a *InputAggregator) Resolve() ControlVector {
	return a.KeyboardVector().Or(a.TouchVector())
}

// Reset drops every held key, touch and button
func (a *InputAggregator) Reset() {
	a.held.Clear()
	a.touches.Clear()
	a.buttons = [ActionFire + 1]bool{}
	a.joystick = ControlVector{}
}
