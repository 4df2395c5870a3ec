package game

import (
	"math"
	"math/rand"
)

// Director spawns hostile waves
type Director struct {
	config Config
	rng    *rand.Rand
}

// NewDirector creates a new spawn director sharing the session random source
func NewDirector(config Config, rng *rand.Rand) *Director {
	return &Director{
		config: config,
		rng:    rng,
	}
}

// SpawnWave creates the hostiles of a wave. Each one is placed uniformly in the
// top third of the field and resampled while it lands closer than
// SpawnMinDistance to the player position.
func (d *Director) SpawnWave(wave int, field Bounds, playerX, playerY float64) []*Unit {
	count := d.config.WaveSize(wave)
	stats := d.config.Hostile
	hostiles := make([]*Unit, 0, count)

	for i := 0; i < count; i++ {
		x, y := d.spawnPoint(field, stats, playerX, playerY)
		hostiles = append(hostiles, NewUnit(x, y, RoleHostile, stats))
	}
	return hostiles
}

// spawnPoint rejection-samples one position. After SpawnMaxAttempts the last
// sample is kept so a field too small to satisfy the distance cannot hang.
func (d *Director) spawnPoint(field Bounds, stats UnitStats, playerX, playerY float64) (float64, float64) {
	var x, y float64
	attempts := max(1, d.config.SpawnMaxAttempts)
	for i := 0; i < attempts; i++ {
		x = d.rng.Float64() * max(0, field.Width-stats.Width)
		y = d.rng.Float64() * (field.Height / 3)
		if math.Hypot(x-playerX, y-playerY) >= d.config.SpawnMinDistance {
			break
		}
	}
	return x, y
}
