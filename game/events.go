package game

// EventKind identifies what happened in the simulation
type EventKind int

const (
	EventSessionStarted EventKind = iota
	EventShotFired
	EventUnitHit
	EventHostileDestroyed
	EventWaveStarted
	EventGameOver
	EventSessionStopped
)

func (k EventKind) String() string {
	switch k {
	case EventSessionStarted:
		return "session-started"
	case EventShotFired:
		return "shot-fired"
	case EventUnitHit:
		return "unit-hit"
	case EventHostileDestroyed:
		return "hostile-destroyed"
	case EventWaveStarted:
		return "wave-started"
	case EventGameOver:
		return "game-over"
	case EventSessionStopped:
		return "session-stopped"
	default:
		return "unknown"
	}
}

// Event is emitted to listeners as the simulation advances.
// For EventGameOver, Score holds the final score.
type Event struct {
	Kind  EventKind
	Frame int

	// Role of the unit that fired, was hit or was destroyed
	Role Role

	// Position of the shot or impact
	X, Y float64

	Wave   int
	Score  int
	Health int
}

// Listener receives simulation events
type Listener interface {
	OnEvent(Event)
}

// ListenerFunc adapts a function to the Listener interface
type ListenerFunc func(Event)

func (f ListenerFunc) OnEvent(e Event) { f(e) }
