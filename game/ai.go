package game

import (
	"math/rand"
)

// Decision is what a policy wants a hostile to do this frame
type Decision struct {
	Facing Direction
	Fire   bool
}

// PolicyView is the read-only game state a policy may look at
type PolicyView struct {
	Field            Bounds
	PlayerX, PlayerY float64
	Frame            int
}

// Policy decides the next facing and fire intent of a hostile unit.
// The simulation loop only depends on this interface, so the behavior can be
// replaced without touching the loop.
type Policy interface {
	Decide(unit *Unit, view PolicyView, rng *rand.Rand) Decision
}

// PolicyFunc adapts a function to the Policy interface
type PolicyFunc func(unit *Unit, view PolicyView, rng *rand.Rand) Decision

func (f PolicyFunc) Decide(unit *Unit, view PolicyView, rng *rand.Rand) Decision {
	return f(unit, view, rng)
}

// RandomPolicy is a stateless wandering behavior: it occasionally picks a new
// random facing and occasionally asks to fire. It ignores the player and any
// obstacle.
type RandomPolicy struct {
	// TurnChance is the per-frame probability of resampling the facing
	TurnChance float64

	// FireChance is the per-frame probability of a fire request
	FireChance float64
}

// NewRandomPolicy creates a random policy from the config probabilities
func NewRandomPolicy(config Config) RandomPolicy {
	return RandomPolicy{
		TurnChance: config.TurnChance,
		FireChance: config.FireChance,
	}
}

// Decide keeps moving along the current facing, with small chances to turn and fire
func (p RandomPolicy) Decide(unit *Unit, view PolicyView, rng *rand.Rand) Decision {
	facing := unit.Facing
	if rng.Float64() < p.TurnChance {
		facing = Directions[rng.Intn(len(Directions))]
	}
	return Decision{
		Facing: facing,
		Fire:   rng.Float64() < p.FireChance,
	}
}
