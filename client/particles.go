package client

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"tankbattle/game"
)

// Particle is a single spark of a burst
type Particle struct {
	X, Y     float64
	VX, VY   float64 // pixels per second
	Age      float64 // seconds
	Lifetime float64 // seconds
	Size     float64
	Color    color.NRGBA
}

// Alive reports whether the particle is still shown
func (p *Particle) Alive() bool {
	return p.Age < p.Lifetime
}

// BurstStyle describes how a burst spreads
type BurstStyle struct {
	Count          int
	VelocityMin    float64
	VelocityMax    float64
	LifetimeMin    float64
	LifetimeMax    float64
	SizeMin        float64
	SizeMax        float64
	ColorBase      color.NRGBA
	ColorVariation color.NRGBA
}

var (
	// explosionBurst marks a destroyed tank
	explosionBurst = BurstStyle{
		Count:          40,
		VelocityMin:    60,
		VelocityMax:    180,
		LifetimeMin:    0.3,
		LifetimeMax:    0.8,
		SizeMin:        1.5,
		SizeMax:        4,
		ColorBase:      color.NRGBA{R: 255, G: 170, B: 40, A: 255},
		ColorVariation: color.NRGBA{R: 0, G: 80, B: 40},
	}

	// hitBurst marks a hit that did not destroy the tank
	hitBurst = BurstStyle{
		Count:          10,
		VelocityMin:    40,
		VelocityMax:    100,
		LifetimeMin:    0.1,
		LifetimeMax:    0.3,
		SizeMin:        1,
		SizeMax:        2,
		ColorBase:      color.NRGBA{R: 255, G: 240, B: 200, A: 255},
		ColorVariation: color.NRGBA{R: 0, G: 15, B: 55},
	}
)

// Particles holds the sparks of every live burst
type Particles struct {
	particles    []Particle
	maxParticles int
	rng          *rand.Rand
}

// NewParticles creates an empty particle set. rng only drives visuals.
func NewParticles(maxParticles int, rng *rand.Rand) *Particles {
	return &Particles{
		particles:    make([]Particle, 0, maxParticles),
		maxParticles: maxParticles,
		rng:          rng,
	}
}

// OnEvent implements game.Listener; hits and kills spawn bursts at the impact
func (ps *Particles) OnEvent(e game.Event) {
	switch e.Kind {
	case game.EventHostileDestroyed:
		ps.Burst(e.X, e.Y, explosionBurst)
	case game.EventUnitHit:
		if e.Health > 0 {
			ps.Burst(e.X, e.Y, hitBurst)
		} else if e.Role == game.RolePlayer {
			ps.Burst(e.X, e.Y, explosionBurst)
		}
	}
}

// Burst emits sparks in every direction from a point
func (ps *Particles) Burst(x, y float64, style BurstStyle) {
	for i := 0; i < style.Count && len(ps.particles) < ps.maxParticles; i++ {
		angle := ps.rng.Float64() * 2 * math.Pi
		speed := ps.between(style.VelocityMin, style.VelocityMax)
		ps.particles = append(ps.particles, Particle{
			X:        x,
			Y:        y,
			VX:       math.Cos(angle) * speed,
			VY:       math.Sin(angle) * speed,
			Lifetime: ps.between(style.LifetimeMin, style.LifetimeMax),
			Size:     ps.between(style.SizeMin, style.SizeMax),
			Color: color.NRGBA{
				R: ps.vary(style.ColorBase.R, style.ColorVariation.R),
				G: ps.vary(style.ColorBase.G, style.ColorVariation.G),
				B: ps.vary(style.ColorBase.B, style.ColorVariation.B),
				A: style.ColorBase.A,
			},
		})
	}
}

func (ps *Particles) between(lo, hi float64) float64 {
	return lo + ps.rng.Float64()*(hi-lo)
}

func (ps *Particles) vary(base, variation uint8) uint8 {
	v := float64(base) + (ps.rng.Float64()*2-1)*float64(variation)
	return uint8(math.Max(0, math.Min(255, v)))
}

// Update ages and moves every particle, dropping dead ones in place
func (ps *Particles) Update(dt float64) {
	alive := ps.particles[:0]
	for _, p := range ps.particles {
		p.Age += dt
		p.X += p.VX * dt
		p.Y += p.VY * dt
		if p.Alive() {
			alive = append(alive, p)
		}
	}
	ps.particles = alive
}

// Len returns the number of live particles
func (ps *Particles) Len() int {
	return len(ps.particles)
}

// Clear drops every particle
func (ps *Particles) Clear() {
	ps.particles = ps.particles[:0]
}

// Draw renders the particles, fading them out with age
func (ps *Particles) Draw(screen *ebiten.Image) {
	for _, p := range ps.particles {
		fade := math.Max(0, math.Min(1, 1-p.Age/p.Lifetime))
		c := p.Color
		c.A = uint8(float64(c.A) * fade)
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(p.Size), c, true)
	}
}
