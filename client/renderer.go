package client

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"tankbattle/game"
)

const (
	lineHeight    = 16.0
	hudMargin     = 10.0
	barrelWidth   = 6.0
	healthBarSize = 5.0
)

// Overlay carries frontend state drawn on top of the snapshot
type Overlay struct {
	// ShowControls draws the virtual joystick and buttons
	ShowControls bool

	// Knob is the joystick drag offset from its center
	KnobX, KnobY float64

	// Status is a short transient message (clipboard, fullscreen)
	Status string

	// Effects are drawn above the tanks; may be nil
	Effects *Particles
}

// Renderer draws snapshots
type Renderer struct {
	face   text.Face
	layout game.ControlLayout
}

// NewRenderer creates a new renderer
func NewRenderer(layout game.ControlLayout) *Renderer {
	return &Renderer{
		face:   text.NewGoXFace(basicfont.Face7x13),
		layout: layout,
	}
}

// Draw renders one snapshot
func (r *Renderer) Draw(screen *ebiten.Image, snap game.Snapshot, overlay Overlay) {
	screen.Fill(colorBackground)

	for _, h := range snap.Hostiles {
		r.drawTank(screen, h)
	}
	if snap.Player.Health > 0 || snap.Running {
		r.drawTank(screen, snap.Player)
	}
	for _, p := range snap.Projectiles {
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(p.Radius), StyleFor(p.Owner).Projectile, true)
	}
	if overlay.Effects != nil {
		overlay.Effects.Draw(screen)
	}

	r.drawLines(screen, hudMargin, hudMargin, HUDLines(snap), colorHUD)

	if overlay.ShowControls {
		r.drawControls(screen, overlay)
	}
	if !snap.Running {
		r.drawGameOver(screen, snap)
	}
	if overlay.Status != "" {
		w, _ := text.Measure(overlay.Status, r.face, lineHeight)
		r.drawLines(screen, snap.Field.Width-w-hudMargin, hudMargin, []string{overlay.Status}, colorHUD)
	}
}

// drawTank draws a tank body, its barrel and, for damaged tanks, a health bar
func (r *Renderer) drawTank(screen *ebiten.Image, u game.UnitView) {
	style := StyleFor(u.Role)
	vector.DrawFilledRect(screen, float32(u.X), float32(u.Y), float32(u.Width), float32(u.Height), style.Body, true)

	x0, y0, x1, y1 := BarrelLine(u)
	vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), barrelWidth, style.Barrel, true)

	if u.Role == game.RolePlayer || u.Health < u.MaxHealth {
		bx, by, bw, fill := HealthBar(u)
		vector.DrawFilledRect(screen, float32(bx), float32(by), float32(bw), healthBarSize, colorHealthBack, true)
		vector.DrawFilledRect(screen, float32(bx), float32(by), float32(fill), healthBarSize, colorHealthFront, true)
	}
}

// drawControls draws the virtual joystick and buttons
func (r *Renderer) drawControls(screen *ebiten.Image, overlay Overlay) {
	l := r.layout
	if l.JoystickRadius > 0 {
		vector.StrokeCircle(screen, float32(l.JoystickX), float32(l.JoystickY), float32(l.JoystickRadius), 2, colorControls, true)
		kx, ky := clampKnob(overlay.KnobX, overlay.KnobY, l.JoystickRadius)
		vector.DrawFilledCircle(screen, float32(l.JoystickX+kx), float32(l.JoystickY+ky), float32(l.JoystickRadius/3), colorControlsKnob, true)
	}
	for _, b := range l.Buttons {
		vector.StrokeRect(screen, float32(b.Bounds.X), float32(b.Bounds.Y), float32(b.Bounds.W), float32(b.Bounds.H), 2, colorControls, true)
		label := "FIRE"
		w, _ := text.Measure(label, r.face, lineHeight)
		r.drawLines(screen, b.Bounds.X+(b.Bounds.W-w)/2, b.Bounds.Y+b.Bounds.H/2-lineHeight/2, []string{label}, colorControlsKnob)
	}
}

// drawGameOver draws the game over overlay with the final score
func (r *Renderer) drawGameOver(screen *ebiten.Image, snap game.Snapshot) {
	vector.DrawFilledRect(screen, 0, 0, float32(snap.Field.Width), float32(snap.Field.Height), colorOverlay, false)

	lines := GameOverLines(snap)
	y := snap.Field.Height/2 - float64(len(lines))*lineHeight/2
	for _, line := range lines {
		w, _ := text.Measure(line, r.face, lineHeight)
		r.drawLines(screen, (snap.Field.Width-w)/2, y, []string{line}, colorHUD)
		y += lineHeight
	}
}

func (r *Renderer) drawLines(screen *ebiten.Image, x, y float64, lines []string, clr color.Color) {
	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, y+float64(i)*lineHeight)
		op.ColorScale.ScaleWithColor(clr)
		text.Draw(screen, line, r.face, op)
	}
}

// HUDLines returns the heads-up display text
func HUDLines(snap game.Snapshot) []string {
	return []string{
		fmt.Sprintf("Score: %d", snap.Score),
		fmt.Sprintf("Level: %d", snap.Wave),
		fmt.Sprintf("Health: %d", snap.Player.Health),
		fmt.Sprintf("Enemies: %d", snap.Remaining),
	}
}

// GameOverLines returns the text of the game over overlay
func GameOverLines(snap game.Snapshot) []string {
	if snap.Player.Health > 0 {
		return []string{
			"PAUSED",
			fmt.Sprintf("Score: %d", snap.Score),
			"Press R or tap to start a new game",
		}
	}
	return []string{
		"GAME OVER",
		fmt.Sprintf("Final score: %d", snap.Score),
		"Press R or tap to restart, C to copy the result",
	}
}

// BarrelLine returns the barrel segment from the tank center to its facing edge
func BarrelLine(u game.UnitView) (x0, y0, x1, y1 float64) {
	cx, cy := u.X+u.Width/2, u.Y+u.Height/2
	dx, dy := u.Facing.Vector()
	return cx, cy, cx + dx*u.Width/2, cy + dy*u.Height/2
}

// HealthBar returns the position, full width and filled width of the bar drawn above a tank
func HealthBar(u game.UnitView) (x, y, width, fill float64) {
	x, y, width = u.X, u.Y-healthBarSize-3, u.Width
	if u.MaxHealth > 0 {
		fill = width * float64(u.Health) / float64(u.MaxHealth)
	}
	return x, y, width, fill
}

func clampKnob(dx, dy, radius float64) (float64, float64) {
	d := math.Hypot(dx, dy)
	if d <= radius {
		return dx, dy
	}
	return dx * radius / d, dy * radius / d
}
