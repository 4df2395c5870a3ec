package game

import "math"

// TouchID identifies one finger (or the mouse) across start, move and end
type TouchID int

// TouchPhase is the lifecycle phase of a touch event
type TouchPhase int

const (
	TouchStart TouchPhase = iota
	TouchMove
	TouchEnd
)

// TouchEvent is a raw touch in control-surface coordinates
type TouchEvent struct {
	ID    TouchID
	Phase TouchPhase
	X, Y  float64
}

// Rect is an axis aligned rectangle in control-surface coordinates
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether a point is inside the rectangle, edges included
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Button is a virtual button on the control surface
type Button struct {
	Action Action
	Bounds Rect
}

// ControlLayout places the virtual joystick and buttons on the control surface
type ControlLayout struct {
	JoystickX, JoystickY float64
	JoystickRadius       float64

	// DeadZone is a fraction of the joystick radius
	DeadZone float64

	Buttons []Button
}

// DefaultControlLayout puts a joystick in the bottom-left corner and a fire
// button in the bottom-right corner of a w×h surface
func DefaultControlLayout(w, h float64) ControlLayout {
	const (
		radius = 60.0
		margin = 24.0
		fire   = 90.0
	)
	return ControlLayout{
		JoystickX:      margin + radius,
		JoystickY:      h - margin - radius,
		JoystickRadius: radius,
		DeadZone:       0.2,
		Buttons: []Button{
			{Action: ActionFire, Bounds: Rect{X: w - margin - fire, Y: h - margin - fire, W: fire, H: fire}},
		},
	}
}

// JoystickDeadZone returns the dead zone radius in surface units
func (l ControlLayout) JoystickDeadZone() float64 {
	return l.JoystickRadius * l.DeadZone
}

// InJoystick reports whether a point starts a joystick drag
func (l ControlLayout) InJoystick(x, y float64) bool {
	if l.JoystickRadius <= 0 {
		return false
	}
	return math.Hypot(x-l.JoystickX, y-l.JoystickY) <= l.JoystickRadius
}

// ButtonAt returns the action of the button under a point
func (l ControlLayout) ButtonAt(x, y float64) (Action, bool) {
	for _, b := range l.Buttons {
		if b.Bounds.Contains(x, y) {
			return b.Action, true
		}
	}
	return ActionNone, false
}

// sectorDirections lists the directions of the 8 compass sectors, starting east
// and turning clockwise on screen (y grows down).
var sectorDirections = [8]ControlVector{
	{Right: true},
	{Right: true, Down: true},
	{Down: true},
	{Down: true, Left: true},
	{Left: true},
	{Left: true, Up: true},
	{Up: true},
	{Up: true, Right: true},
}

// JoystickVector buckets a drag offset into one of 8 compass sectors.
// Offsets shorter than deadZone produce no direction.
func JoystickVector(dx, dy, deadZone float64) ControlVector {
	if math.Hypot(dx, dy) < deadZone || (dx == 0 && dy == 0) {
		return ControlVector{}
	}
	sector := int(math.Round(math.Atan2(dy, dx) / (math.Pi / 4)))
	sector = ((sector % 8) + 8) % 8
	return sectorDirections[sector]
}

type touchOwner struct {
	joystick bool
	action   Action
}

// HandleTouch routes a raw touch through the control layout. A touch owns the
// control it started on until it ends; touches starting elsewhere are ignored.
// The joystick has a single owner; a button stays pressed while any touch holds it.
func (a *InputAggregator) HandleTouch(ev TouchEvent) {
	switch ev.Phase {
	case TouchStart:
		// A repeated start replaces whatever the touch held
		if owner, ok := a.touches.Get(ev.ID); ok {
			a.releaseTouch(ev.ID, owner)
		}
		if a.layout.InJoystick(ev.X, ev.Y) {
			if a.owned(touchOwner{joystick: true}) {
				return
			}
			a.touches.Put(ev.ID, touchOwner{joystick: true})
			a.MoveJoystick(ev.X-a.layout.JoystickX, ev.Y-a.layout.JoystickY)
			return
		}
		if act, ok := a.layout.ButtonAt(ev.X, ev.Y); ok {
			a.touches.Put(ev.ID, touchOwner{action: act})
			a.PressButton(act)
		}
	case TouchMove:
		owner, ok := a.touches.Get(ev.ID)
		if ok && owner.joystick {
			a.MoveJoystick(ev.X-a.layout.JoystickX, ev.Y-a.layout.JoystickY)
		}
	case TouchEnd:
		if owner, ok := a.touches.Get(ev.ID); ok {
			a.releaseTouch(ev.ID, owner)
		}
	}
}

// releaseTouch drops a touch and the control it owned
func (a *InputAggregator) releaseTouch(id TouchID, owner touchOwner) {
	a.touches.Del(id)
	switch {
	case owner.joystick:
		a.ReleaseJoystick()
	case !a.owned(owner):
		a.ReleaseButton(owner.action)
	}
}

// owned reports whether any touch currently holds the given control
func (a *InputAggregator) owned(control touchOwner) bool {
	found := false
	a.touches.ForEach(func(_ TouchID, o touchOwner) bool {
		found = o == control
		return !found
	})
	return found
}

// ActiveTouches returns the number of touches currently owning a control
func (a *InputAggregator) ActiveTouches() int {
	return a.touches.Len()
}
