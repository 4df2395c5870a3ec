package game

// Config holds game configuration constants
type Config struct {
	// FieldWidth is the playfield width in pixels
	FieldWidth float64

	// FieldHeight is the playfield height in pixels
	FieldHeight float64

	// Player holds the stats of the player tank
	Player UnitStats

	// Hostile holds the stats of every hostile tank
	Hostile UnitStats

	// ProjectileSpeed is the distance a shot travels per frame
	ProjectileSpeed float64

	// ProjectileRadius is the radius of every shot
	ProjectileRadius float64

	// PlayerShotDamage is applied to a hostile hit by a player shot
	PlayerShotDamage int

	// HostileShotDamage is applied to the player when hit by a hostile shot
	HostileShotDamage int

	// KillScore is awarded for every destroyed hostile
	KillScore int

	// BaseWaveSize is added to the wave number to get the hostile count of a wave
	BaseWaveSize int

	// SpawnMinDistance is the minimum distance between a new hostile and the player
	SpawnMinDistance float64

	// SpawnMaxAttempts bounds the rejection sampling of a single hostile position
	SpawnMaxAttempts int

	// TurnChance is the per-frame probability that a hostile picks a new facing
	TurnChance float64

	// FireChance is the per-frame probability that a hostile tries to fire
	FireChance float64

	// Seed seeds the session random source (0 picks a time based seed)
	Seed int64
}

// UnitStats holds the per-role unit configuration
type UnitStats struct {
	Width       float64
	Height      float64
	Speed       float64
	MaxHealth   int
	MaxCooldown int
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		FieldWidth:  800,
		FieldHeight: 600,
		Player: UnitStats{
			Width:       40,
			Height:      40,
			Speed:       3,
			MaxHealth:   100,
			MaxCooldown: 15, // fast fire
		},
		Hostile: UnitStats{
			Width:       40,
			Height:      40,
			Speed:       1,
			MaxHealth:   30,
			MaxCooldown: 60,
		},
		ProjectileSpeed:   35.0, // step 5 scaled by shot speed 7
		ProjectileRadius:  4.0,
		PlayerShotDamage:  25,
		HostileShotDamage: 10,
		KillScore:         100,
		BaseWaveSize:      3,
		SpawnMinDistance:  100,
		SpawnMaxAttempts:  1000,
		TurnChance:        0.02,
		FireChance:        0.02,
	}
}

// Field returns the playfield bounds
func (c Config) Field() Bounds {
	return Bounds{Width: c.FieldWidth, Height: c.FieldHeight}
}

// Stats returns the unit stats for a role
func (c Config) Stats(role Role) UnitStats {
	if role == RolePlayer {
		return c.Player
	}
	return c.Hostile
}

// PlayerStart returns the canonical spawn position of the player tank
func (c Config) PlayerStart() (float64, float64) {
	return c.FieldWidth/2 - c.Player.Width/2, c.FieldHeight - c.Player.Height - 20
}

// WaveSize returns the number of hostiles spawned for a wave
func (c Config) WaveSize(wave int) int {
	return c.BaseWaveSize + wave
}

// Bounds describes the playfield rectangle anchored at the origin
type Bounds struct {
	Width  float64 `msgpack:"w"`
	Height float64 `msgpack:"h"`
}

// Contains reports whether a point lies on the field, edges included
func (b Bounds) Contains(x, y float64) bool {
	return x >= 0 && x <= b.Width && y >= 0 && y <= b.Height
}

// Clamp limits a box of the given size so that it stays fully on the field
func (b Bounds) Clamp(x, y, w, h float64) (float64, float64) {
	return max(0, min(b.Width-w, x)), max(0, min(b.Height-h, y))
}
