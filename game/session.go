package game

import (
	"math/rand"
	"time"
)

// SessionState holds everything that changes during one play session
type SessionState struct {
	Player      *Unit
	Hostiles    []*Unit
	Projectiles []*Projectile

	Score   int
	Wave    int
	Running bool
	Frame   int
}

// Session runs the simulation. It is driven by a single goroutine: the host
// calls Step once per displayed frame.
type Session struct {
	config          Config
	rng             *rand.Rand
	policy          Policy
	director        *Director
	collisionSystem *CollisionSystem
	listeners       []Listener

	state SessionState
}

// Option configures a Session
type Option func(*Session)

// WithPolicy replaces the hostile AI policy
func WithPolicy(p Policy) Option {
	return func(s *Session) {
		s.policy = p
	}
}

// WithListener subscribes a listener to session events
func WithListener(l Listener) Option {
	return func(s *Session) {
		s.listeners = append(s.listeners, l)
	}
}

// WithRand replaces the session random source
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) {
		s.rng = rng
	}
}

// NewSession creates a stopped session; call Start to begin playing
func NewSession(config Config, opts ...Option) *Session {
	s := &Session{
		config:          config,
		policy:          NewRandomPolicy(config),
		collisionSystem: NewCollisionSystem(config),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		seed := config.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		s.rng = rand.New(rand.NewSource(seed))
	}
	s.director = NewDirector(config, s.rng)
	return s
}

// AddListener subscribes a listener to session events
func (s *Session) AddListener(l Listener) {
	s.listeners = append(s.listeners, l)
}

// Config returns the session configuration
func (s *Session) Config() Config {
	return s.config
}

// State exposes the live session state. Callers outside the frame loop must
// treat it as read-only.
func (s *Session) State() *SessionState {
	return &s.state
}

// Running reports whether the session accepts frame updates
func (s *Session) Running() bool {
	return s.state.Running
}

// Snapshot returns the current render view without advancing the simulation
func (s *Session) Snapshot() Snapshot {
	return s.state.snapshot(s.config.Field())
}

// Start begins a fresh session. Calling it while running fully reinitializes.
func (s *Session) Start() {
	s.state = SessionState{
		Score:       0,
		Wave:        1,
		Projectiles: make([]*Projectile, 0, 64),
	}
	s.createPlayer()
	s.state.Hostiles = s.director.SpawnWave(s.state.Wave, s.config.Field(), s.state.Player.X, s.state.Player.Y)
	s.state.Running = true

	s.emit(Event{Kind: EventSessionStarted, Wave: s.state.Wave})
	s.emit(Event{Kind: EventWaveStarted, Wave: s.state.Wave})
}

// Stop halts frame updates; the state is kept for rendering
func (s *Session) Stop() {
	if !s.state.Running {
		return
	}
	s.state.Running = false
	s.emit(Event{Kind: EventSessionStopped, Score: s.state.Score, Wave: s.state.Wave})
}

// Reset is Stop followed by Start, keeping nothing from the old session
func (s *Session) Reset() {
	s.Stop()
	s.Start()
}

// createPlayer creates the player unit at the canonical start position
func (s *Session) createPlayer() {
	x, y := s.config.PlayerStart()
	s.state.Player = NewUnit(x, y, RolePlayer, s.config.Player)
}

// Step advances the simulation by one frame and returns the post-update snapshot.
// It is a no-op while the session is stopped.
func (s *Session) Step(ctrl ControlVector) Snapshot {
	field := s.config.Field()
	if !s.state.Running {
		return s.state.snapshot(field)
	}
	st := &s.state
	st.Frame++

	// Player
	player := st.Player
	player.Advance(ctrl, field)
	player.TickCooldown()
	if ctrl.Fire {
		s.fire(player)
	}

	// Hostiles; the collection is not mutated during this pass
	view := PolicyView{Field: field, PlayerX: player.X, PlayerY: player.Y, Frame: st.Frame}
	for _, h := range st.Hostiles {
		d := s.policy.Decide(h, view, s.rng)
		h.Advance(Toward(d.Facing), field)
		h.TickCooldown()
		if d.Fire {
			s.fire(h)
		}
	}

	// Projectiles
	for _, p := range st.Projectiles {
		p.Advance()
	}

	playerDestroyed := s.collisionSystem.Resolve(st, s.emit)

	// Wave progression
	if !playerDestroyed && len(st.Hostiles) == 0 {
		st.Wave++
		st.Hostiles = s.director.SpawnWave(st.Wave, field, player.X, player.Y)
		s.emit(Event{Kind: EventWaveStarted, Wave: st.Wave})
	}

	if playerDestroyed {
		st.Running = false
		s.emit(Event{Kind: EventGameOver, Score: st.Score, Wave: st.Wave})
	}

	return st.snapshot(field)
}

// fire shoots for a unit if its cooldown allows
func (s *Session) fire(u *Unit) {
	p, ok := u.Fire(s.config.ProjectileSpeed, s.config.ProjectileRadius)
	if !ok {
		return
	}
	s.state.Projectiles = append(s.state.Projectiles, p)
	s.emit(Event{Kind: EventShotFired, Role: u.Role, X: p.X, Y: p.Y})
}

func (s *Session) emit(e Event) {
	e.Frame = s.state.Frame
	for _, l := range s.listeners {
		l.OnEvent(e)
	}
}
