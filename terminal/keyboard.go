package terminal

import (
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/kamstrup/intmap"

	"tankbattle/game"
)

// DefaultHold is how long a key press counts as held. Terminals report key
// repeats but no releases, so a key is released once its repeats stop.
const DefaultHold = 150 * time.Millisecond

// specialKeyBase offsets tcell special keys away from rune key codes
const specialKeyBase = 0x110000

// KeyOf maps a terminal key event to a key code. Letters are case folded.
func KeyOf(ev *tcell.EventKey) (game.Key, bool) {
	switch ev.Key() {
	case tcell.KeyRune:
		return game.Key(unicode.ToLower(ev.Rune())), true
	case tcell.KeyUp, tcell.KeyDown, tcell.KeyLeft, tcell.KeyRight:
		return game.Key(specialKeyBase + int(ev.Key())), true
	default:
		return 0, false
	}
}

// DefaultBindings maps WASD, the arrow keys and Space to tank controls
func DefaultBindings() game.Bindings {
	special := func(k tcell.Key) game.Key { return game.Key(specialKeyBase + int(k)) }
	return game.Bindings{
		game.Key('w'):           game.ActionUp,
		special(tcell.KeyUp):    game.ActionUp,
		game.Key('s'):           game.ActionDown,
		special(tcell.KeyDown):  game.ActionDown,
		game.Key('a'):           game.ActionLeft,
		special(tcell.KeyLeft):  game.ActionLeft,
		game.Key('d'):           game.ActionRight,
		special(tcell.KeyRight): game.ActionRight,
		game.Key(' '):           game.ActionFire,
	}
}

// Keyboard turns terminal key presses into held keys on an aggregator
type Keyboard struct {
	input   *game.InputAggregator
	hold    time.Duration
	pressed *intmap.Map[game.Key, int64]
	expired []game.Key
}

// NewKeyboard creates a keyboard feeding the aggregator
func NewKeyboard(input *game.InputAggregator, hold time.Duration) *Keyboard {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Keyboard{
		input:   input,
		hold:    hold,
		pressed: intmap.New[game.Key, int64](16),
	}
}

// Press marks a key as held from now on; repeats extend the hold
func (k *Keyboard) Press(key game.Key, now time.Time) {
	k.input.KeyDown(key)
	k.pressed.Put(key, now.UnixNano())
}

// HandleEvent presses the key of a terminal event. It reports whether the
// event was a key the keyboard knows.
func (k *Keyboard) HandleEvent(ev *tcell.EventKey, now time.Time) bool {
	key, ok := KeyOf(ev)
	if !ok {
		return false
	}
	k.Press(key, now)
	return true
}

// Expire releases every key whose hold window has passed
func (k *Keyboard) Expire(now time.Time) {
	cutoff := now.Add(-k.hold).UnixNano()
	k.expired = k.expired[:0]
	k.pressed.ForEach(func(key game.Key, at int64) bool {
		if at <= cutoff {
			k.expired = append(k.expired, key)
		}
		return true
	})
	for _, key := range k.expired {
		k.pressed.Del(key)
		k.input.KeyUp(key)
	}
}

// Held returns the number of keys currently held
func (k *Keyboard) Held() int {
	return k.pressed.Len()
}

// Reset releases every key
func (k *Keyboard) Reset() {
	k.pressed.Clear()
	k.input.Reset()
}
