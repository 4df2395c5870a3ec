package game

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawnWaveSize(t *testing.T) {
	config := DefaultConfig()
	d := NewDirector(config, rand.New(rand.NewSource(1)))
	px, py := config.PlayerStart()

	for wave, want := range map[int]int{1: 4, 2: 5, 5: 8} {
		hostiles := d.SpawnWave(wave, config.Field(), px, py)
		assert.Len(t, hostiles, want, "wave %d", wave)
	}
}

func TestSpawnPlacement(t *testing.T) {
	config := DefaultConfig()
	field := config.Field()
	d := NewDirector(config, rand.New(rand.NewSource(42)))

	// Player close to the top so the distance rule is exercised
	px, py := 380.0, 60.0

	for i := 0; i < 50; i++ {
		for _, h := range d.SpawnWave(3, field, px, py) {
			assert.Equal(t, RoleHostile, h.Role)
			assert.Equal(t, config.Hostile.MaxHealth, h.Health)
			assert.Equal(t, DirUp, h.Facing)
			assert.GreaterOrEqual(t, h.X, 0.0)
			assert.LessOrEqual(t, h.X, field.Width-h.Width)
			assert.GreaterOrEqual(t, h.Y, 0.0)
			assert.Less(t, h.Y, field.Height/3)
			assert.GreaterOrEqual(t, math.Hypot(h.X-px, h.Y-py), config.SpawnMinDistance)
		}
	}
}

func TestSpawnBoundedAttempts(t *testing.T) {
	config := DefaultConfig()
	config.SpawnMinDistance = 10_000
	config.SpawnMaxAttempts = 5
	d := NewDirector(config, rand.New(rand.NewSource(7)))

	hostiles := d.SpawnWave(1, config.Field(), 400, 100)
	require.Len(t, hostiles, 4, "an unsatisfiable distance still yields a full wave")
	for _, h := range hostiles {
		assert.Less(t, h.Y, config.FieldHeight/3)
	}
}

func TestSpawnDeterministic(t *testing.T) {
	config := DefaultConfig()
	a := NewDirector(config, rand.New(rand.NewSource(99))).SpawnWave(2, config.Field(), 380, 540)
	b := NewDirector(config, rand.New(rand.NewSource(99))).SpawnWave(2, config.Field(), 380, 540)

	require.Len(t, b, len(a))
	for i := range a {
		assert.Equal(t, a[i].X, b[i].X)
		assert.Equal(t, a[i].Y, b[i].Y)
	}
}
