package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
)

// ScriptContext is passed to AI scripts as input
type ScriptContext struct {
	// Unit state
	X        float64
	Y        float64
	Facing   Direction
	Health   int
	Cooldown int

	// Player position
	PlayerX float64
	PlayerY float64

	// Field size
	FieldWidth  float64
	FieldHeight float64

	Frame int

	// Random is drawn from the session random source so scripted runs stay reproducible
	Random float64
}

func (c ScriptContext) toJS() map[string]interface{} {
	return map[string]interface{}{
		"x":           c.X,
		"y":           c.Y,
		"facing":      int(c.Facing),
		"health":      c.Health,
		"cooldown":    c.Cooldown,
		"playerX":     c.PlayerX,
		"playerY":     c.PlayerY,
		"fieldWidth":  c.FieldWidth,
		"fieldHeight": c.FieldHeight,
		"frame":       c.Frame,
		"random":      c.Random,
	}
}

// BuildScriptContext creates a ScriptContext from a unit and the policy view
func BuildScriptContext(unit *Unit, view PolicyView, rng *rand.Rand) ScriptContext {
	return ScriptContext{
		X:           unit.X,
		Y:           unit.Y,
		Facing:      unit.Facing,
		Health:      unit.Health,
		Cooldown:    unit.Cooldown,
		PlayerX:     view.PlayerX,
		PlayerY:     view.PlayerY,
		FieldWidth:  view.Field.Width,
		FieldHeight: view.Field.Height,
		Frame:       view.Frame,
		Random:      rng.Float64(),
	}
}

// ScriptPolicy drives hostiles with a JavaScript decide function.
// Script failures fall back to another policy.
type ScriptPolicy struct {
	runner   *ScriptRunner
	fallback Policy
	name     string
	failures int
}

// NewScriptPolicy compiles a script policy
func NewScriptPolicy(name, code string, fallback Policy) (*ScriptPolicy, error) {
	runner, err := NewScriptRunner(name, code)
	if err != nil {
		return nil, fmt.Errorf("load script %s: %w", name, err)
	}
	return &ScriptPolicy{
		runner:   runner,
		fallback: fallback,
		name:     name,
	}, nil
}

// LoadScriptPolicy reads a script file and compiles it
func LoadScriptPolicy(path string, fallback Policy) (*ScriptPolicy, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return NewScriptPolicy(path, string(code), fallback)
}

// Decide runs the script, falling back on error
func (p *ScriptPolicy) Decide(unit *Unit, view PolicyView, rng *rand.Rand) Decision {
	decision, err := p.runner.Decide(BuildScriptContext(unit, view, rng))
	if err == nil {
		return decision
	}

	p.failures++
	if p.failures == 1 {
		slog.Warn("ai script failed, using fallback policy", "script", p.name, "error", err)
	}
	return p.fallback.Decide(unit, view, rng)
}

// Failures returns how many decisions fell back because of script errors
func (p *ScriptPolicy) Failures() int {
	return p.failures
}

// ExampleScript returns a script that drifts toward the player's column and
// fires when roughly lined up
func ExampleScript() string {
	return `
function decide(ctx) {
	var dx = ctx.playerX - ctx.x;
	var aligned = Math.abs(dx) < 20;
	if (aligned) {
		return { facing: "down", fire: ctx.random < 0.05 };
	}
	if (ctx.random < 0.03) {
		return { facing: dx < 0 ? "left" : "right", fire: false };
	}
	return { facing: ctx.facing, fire: false };
}
`
}
