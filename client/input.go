package client

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"tankbattle/game"
)

// mouseTouchID is the touch ID the left mouse button drives
const mouseTouchID game.TouchID = -1

// DefaultBindings maps WASD, the arrow keys and Space to tank controls
func DefaultBindings() game.Bindings {
	return game.Bindings{
		game.Key(ebiten.KeyW):          game.ActionUp,
		game.Key(ebiten.KeyArrowUp):    game.ActionUp,
		game.Key(ebiten.KeyS):          game.ActionDown,
		game.Key(ebiten.KeyArrowDown):  game.ActionDown,
		game.Key(ebiten.KeyA):          game.ActionLeft,
		game.Key(ebiten.KeyArrowLeft):  game.ActionLeft,
		game.Key(ebiten.KeyD):          game.ActionRight,
		game.Key(ebiten.KeyArrowRight): game.ActionRight,
		game.Key(ebiten.KeySpace):      game.ActionFire,
	}
}

// InputPoller turns ebiten's polled keyboard, touch and mouse state into
// aggregator events once per tick
type InputPoller struct {
	input  *game.InputAggregator
	layout game.ControlLayout

	keys     []ebiten.Key
	touchIDs []ebiten.TouchID

	// touchSeen is set once a real touch arrives
	touchSeen bool

	// tapped is set when a touch or click started this tick
	tapped bool

	// joystick drag state for drawing the knob
	knobOwner    game.TouchID
	knobActive   bool
	knobX, knobY float64
}

// NewInputPoller creates a poller feeding the aggregator
func NewInputPoller(input *game.InputAggregator) *InputPoller {
	return &InputPoller{
		input:    input,
		layout:   input.Layout(),
		keys:     make([]ebiten.Key, 0, 8),
		touchIDs: make([]ebiten.TouchID, 0, 8),
	}
}

// Poll reads this tick's input edges
func (p *InputPoller) Poll() {
	p.tapped = false

	p.keys = inpututil.AppendJustPressedKeys(p.keys[:0])
	for _, k := range p.keys {
		p.input.KeyDown(game.Key(k))
	}
	p.keys = inpututil.AppendJustReleasedKeys(p.keys[:0])
	for _, k := range p.keys {
		p.input.KeyUp(game.Key(k))
	}

	p.touchIDs = inpututil.AppendJustPressedTouchIDs(p.touchIDs[:0])
	for _, id := range p.touchIDs {
		x, y := ebiten.TouchPosition(id)
		p.touchSeen = true
		p.touch(game.TouchEvent{ID: game.TouchID(id), Phase: game.TouchStart, X: float64(x), Y: float64(y)})
	}
	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])
	for _, id := range p.touchIDs {
		if inpututil.IsTouchJustPressed(id) {
			continue
		}
		x, y := ebiten.TouchPosition(id)
		p.touch(game.TouchEvent{ID: game.TouchID(id), Phase: game.TouchMove, X: float64(x), Y: float64(y)})
	}
	p.touchIDs = inpututil.AppendJustReleasedTouchIDs(p.touchIDs[:0])
	for _, id := range p.touchIDs {
		x, y := inpututil.TouchPositionInPreviousTick(id)
		p.touch(game.TouchEvent{ID: game.TouchID(id), Phase: game.TouchEnd, X: float64(x), Y: float64(y)})
	}

	mx, my := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		p.touch(game.TouchEvent{ID: mouseTouchID, Phase: game.TouchStart, X: float64(mx), Y: float64(my)})
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		p.touch(game.TouchEvent{ID: mouseTouchID, Phase: game.TouchEnd, X: float64(mx), Y: float64(my)})
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		p.touch(game.TouchEvent{ID: mouseTouchID, Phase: game.TouchMove, X: float64(mx), Y: float64(my)})
	}
}

// touch forwards a touch to the aggregator and tracks the joystick knob
func (p *InputPoller) touch(ev game.TouchEvent) {
	p.input.HandleTouch(ev)

	switch ev.Phase {
	case game.TouchStart:
		p.tapped = true
		if !p.knobActive && p.layout.InJoystick(ev.X, ev.Y) {
			p.knobOwner, p.knobActive = ev.ID, true
			p.knobX, p.knobY = ev.X-p.layout.JoystickX, ev.Y-p.layout.JoystickY
		}
	case game.TouchMove:
		if p.knobActive && p.knobOwner == ev.ID {
			p.knobX, p.knobY = ev.X-p.layout.JoystickX, ev.Y-p.layout.JoystickY
		}
	case game.TouchEnd:
		if p.knobActive && p.knobOwner == ev.ID {
			p.knobActive = false
			p.knobX, p.knobY = 0, 0
		}
	}
}

// Tapped reports whether a touch or click started this tick
func (p *InputPoller) Tapped() bool {
	return p.tapped
}

// TouchSeen reports whether the device has produced a real touch
func (p *InputPoller) TouchSeen() bool {
	return p.touchSeen
}

// Knob returns the joystick drag offset
func (p *InputPoller) Knob() (float64, float64) {
	return p.knobX, p.knobY
}

// Reset drops all held input, e.g. when a new session starts
func (p *InputPoller) Reset() {
	p.input.Reset()
	p.knobActive = false
	p.knobX, p.knobY = 0, 0
}
