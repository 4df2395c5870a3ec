package game

import "slices"

// CollisionSystem resolves projectile hits against units
type CollisionSystem struct {
	config Config

	// consumed marks spent projectiles during Resolve
	consumed []bool
}

// NewCollisionSystem creates a new collision system
func NewCollisionSystem(config Config) *CollisionSystem {
	return &CollisionSystem{
		config: config,
	}
}

// Resolve culls off-field projectiles, applies player shots to hostiles, then
// hostile shots to the player, and removes spent projectiles and destroyed
// hostiles. It reports whether the player was destroyed; once that happens the
// remaining hostile shots are left untouched for the frame.
func (c *CollisionSystem) Resolve(state *SessionState, emit func(Event)) bool {
	field := c.config.Field()

	// Off-field shots never collide, whatever they overlap
	onField := state.Projectiles[:0]
	for _, p := range state.Projectiles {
		if !p.OffField(field) {
			onField = append(onField, p)
		}
	}
	clear(state.Projectiles[len(onField):])
	state.Projectiles = onField

	// Player shots resolve first so the score does not depend on firing order
	c.consumed = slices.Grow(c.consumed[:0], len(state.Projectiles))[:len(state.Projectiles)]
	clear(c.consumed)
	for i, p := range state.Projectiles {
		if p.Owner == RolePlayer {
			c.consumed[i] = c.hitHostile(state, p, emit)
		}
	}

	playerDestroyed := false
	for i, p := range state.Projectiles {
		if p.Owner != RoleHostile {
			continue
		}
		c.consumed[i], playerDestroyed = c.hitPlayer(state, p, emit)
		if playerDestroyed {
			break
		}
	}

	kept := state.Projectiles[:0]
	for i, p := range state.Projectiles {
		if !c.consumed[i] {
			kept = append(kept, p)
		}
	}
	clear(state.Projectiles[len(kept):])
	state.Projectiles = kept

	alive := state.Hostiles[:0]
	for _, h := range state.Hostiles {
		if h.Alive() {
			alive = append(alive, h)
		}
	}
	clear(state.Hostiles[len(alive):])
	state.Hostiles = alive

	return playerDestroyed
}

// hitHostile applies a player shot to the first live hostile containing it
func (c *CollisionSystem) hitHostile(state *SessionState, p *Projectile, emit func(Event)) bool {
	for _, h := range state.Hostiles {
		if !h.Alive() || !h.Contains(p.X, p.Y) {
			continue
		}

		destroyed := h.TakeDamage(c.config.PlayerShotDamage)
		emit(Event{Kind: EventUnitHit, Role: RoleHostile, X: p.X, Y: p.Y, Health: h.Health})
		if destroyed {
			state.Score += c.config.KillScore
			emit(Event{Kind: EventHostileDestroyed, Role: RoleHostile, X: p.X, Y: p.Y, Score: state.Score})
		}
		return true
	}
	return false
}

// hitPlayer applies a hostile shot to the player
func (c *CollisionSystem) hitPlayer(state *SessionState, p *Projectile, emit func(Event)) (consumed, destroyed bool) {
	player := state.Player
	if player == nil || !player.Alive() || !player.Contains(p.X, p.Y) {
		return false, false
	}

	destroyed = player.TakeDamage(c.config.HostileShotDamage)
	emit(Event{Kind: EventUnitHit, Role: RolePlayer, X: p.X, Y: p.Y, Health: player.Health})
	return true, destroyed
}
