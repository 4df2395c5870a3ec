package game

// UnitView is the read-only render view of a unit
type UnitView struct {
	X         float64   `msgpack:"x"`
	Y         float64   `msgpack:"y"`
	Width     float64   `msgpack:"w"`
	Height    float64   `msgpack:"h"`
	Facing    Direction `msgpack:"f"`
	Health    int       `msgpack:"hp"`
	MaxHealth int       `msgpack:"mhp"`
	Role      Role      `msgpack:"r"`
}

// ProjectileView is the read-only render view of a projectile
type ProjectileView struct {
	X      float64 `msgpack:"x"`
	Y      float64 `msgpack:"y"`
	Radius float64 `msgpack:"rad"`
	Owner  Role    `msgpack:"o"`
}

// Snapshot is the post-update state handed to renderers once per frame.
// Renderers must treat it as read-only.
type Snapshot struct {
	Frame       int              `msgpack:"frame"`
	Field       Bounds           `msgpack:"field"`
	Player      UnitView         `msgpack:"player"`
	Hostiles    []UnitView       `msgpack:"hostiles"`
	Projectiles []ProjectileView `msgpack:"projectiles"`
	Score       int              `msgpack:"score"`
	Wave        int              `msgpack:"wave"`
	Remaining   int              `msgpack:"remaining"`
	Running     bool             `msgpack:"running"`
}

// FrameSink consumes one snapshot per frame
type FrameSink interface {
	Frame(Snapshot)
}

// FrameSinkFunc adapts a function to the FrameSink interface
type FrameSinkFunc func(Snapshot)

func (f FrameSinkFunc) Frame(s Snapshot) { f(s) }

func viewUnit(u *Unit) UnitView {
	return UnitView{
		X:         u.X,
		Y:         u.Y,
		Width:     u.Width,
		Height:    u.Height,
		Facing:    u.Facing,
		Health:    u.Health,
		MaxHealth: u.MaxHealth,
		Role:      u.Role,
	}
}

// snapshot copies the session state into a fresh Snapshot
func (s *SessionState) snapshot(field Bounds) Snapshot {
	snap := Snapshot{
		Frame:       s.Frame,
		Field:       field,
		Hostiles:    make([]UnitView, 0, len(s.Hostiles)),
		Projectiles: make([]ProjectileView, 0, len(s.Projectiles)),
		Score:       s.Score,
		Wave:        s.Wave,
		Remaining:   len(s.Hostiles),
		Running:     s.Running,
	}
	if s.Player != nil {
		snap.Player = viewUnit(s.Player)
	}
	for _, h := range s.Hostiles {
		snap.Hostiles = append(snap.Hostiles, viewUnit(h))
	}
	for _, p := range s.Projectiles {
		snap.Projectiles = append(snap.Projectiles, ProjectileView{X: p.X, Y: p.Y, Radius: p.Radius, Owner: p.Owner})
	}
	return snap
}
