package game

// Role identifies which side a unit or projectile belongs to
type Role int

const (
	RolePlayer Role = iota
	RoleHostile
)

func (r Role) String() string {
	switch r {
	case RolePlayer:
		return "player"
	case RoleHostile:
		return "hostile"
	default:
		return "unknown"
	}
}

// Direction is one of the four cardinal facings
type Direction int

const (
	DirUp Direction = iota
	DirRight
	DirDown
	DirLeft
)

// Directions lists the facings in clockwise order
var Directions = [4]Direction{DirUp, DirRight, DirDown, DirLeft}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return "unknown"
	}
}

// Vector returns the unit step along the facing (screen coordinates, y grows down)
func (d Direction) Vector() (float64, float64) {
	switch d {
	case DirUp:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

// Unit represents a tank, either the player or a hostile
type Unit struct {
	// Top-left corner in field coordinates
	X, Y float64

	// Fixed box size
	Width, Height float64

	// Current facing, also the firing axis
	Facing Direction

	// Distance moved per frame along each requested axis
	Speed float64

	// Health points, clamped at 0 on destruction
	Health    int
	MaxHealth int

	// Frames left before the unit may fire again
	Cooldown    int
	MaxCooldown int

	Role Role
}

// NewUnit creates a unit at the given position with the stats of its role
func NewUnit(x, y float64, role Role, stats UnitStats) *Unit {
	return &Unit{
		X:           x,
		Y:           y,
		Width:       stats.Width,
		Height:      stats.Height,
		Facing:      DirUp,
		Speed:       stats.Speed,
		Health:      stats.MaxHealth,
		MaxHealth:   stats.MaxHealth,
		MaxCooldown: stats.MaxCooldown,
		Role:        role,
	}
}

// Advance moves the unit by the requested intents and clamps it to the field.
// Axes are applied in the order up, down, left, right; each one sets the facing,
// so the last applied axis wins. Diagonal steps are not normalized.
func (u *Unit) Advance(ctrl ControlVector, field Bounds) {
	if ctrl.Up {
		u.Y -= u.Speed
		u.Facing = DirUp
	}
	if ctrl.Down {
		u.Y += u.Speed
		u.Facing = DirDown
	}
	if ctrl.Left {
		u.X -= u.Speed
		u.Facing = DirLeft
	}
	if ctrl.Right {
		u.X += u.Speed
		u.Facing = DirRight
	}
	u.X, u.Y = field.Clamp(u.X, u.Y, u.Width, u.Height)
}

// TickCooldown counts the fire cooldown down by one frame
func (u *Unit) TickCooldown() {
	if u.Cooldown > 0 {
		u.Cooldown--
	}
}

// Fire spawns a projectile from the edge the unit faces.
// It returns false while the cooldown is running.
func (u *Unit) Fire(speed, radius float64) (*Projectile, bool) {
	if u.Cooldown > 0 {
		return nil, false
	}

	var x, y float64
	switch u.Facing {
	case DirUp:
		x, y = u.X+u.Width/2, u.Y
	case DirRight:
		x, y = u.X+u.Width, u.Y+u.Height/2
	case DirDown:
		x, y = u.X+u.Width/2, u.Y+u.Height
	case DirLeft:
		x, y = u.X, u.Y+u.Height/2
	}
	dx, dy := u.Facing.Vector()

	u.Cooldown = u.MaxCooldown
	return &Projectile{
		X:      x,
		Y:      y,
		DX:     dx * speed,
		DY:     dy * speed,
		Radius: radius,
		Owner:  u.Role,
	}, true
}

// TakeDamage subtracts damage and reports whether the unit was destroyed.
// The unit stays in its collection; removal is up to the caller.
func (u *Unit) TakeDamage(amount int) bool {
	u.Health -= amount
	if u.Health <= 0 {
		u.Health = 0
		return true
	}
	return false
}

// Alive reports whether the unit still has health left
func (u *Unit) Alive() bool {
	return u.Health > 0
}

// Contains reports whether a point lies strictly inside the unit box
func (u *Unit) Contains(x, y float64) bool {
	return x > u.X && x < u.X+u.Width &&
		y > u.Y && y < u.Y+u.Height
}

// Projectile represents a fired shot
type Projectile struct {
	X, Y   float64
	DX, DY float64
	Radius float64
	Owner  Role
}

// Advance moves the projectile by its velocity
func (p *Projectile) Advance() {
	p.X += p.DX
	p.Y += p.DY
}

// OffField reports whether the projectile center left the field
func (p *Projectile) OffField(field Bounds) bool {
	return !field.Contains(p.X, p.Y)
}
