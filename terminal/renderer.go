package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"tankbattle/game"
)

// hudRows is the number of rows above the field
const hudRows = 1

var (
	stylePlayer     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleHostile    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleShot       = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleHostileHit = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleHUD        = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleBanner     = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
)

// Renderer draws snapshots as character cells, scaling the field to the screen
type Renderer struct {
	screen tcell.Screen
}

// NewRenderer creates a renderer on an initialized screen
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Frame implements game.FrameSink
func (r *Renderer) Frame(snap game.Snapshot) {
	r.Draw(snap)
	r.screen.Show()
}

// Draw renders a snapshot into the screen buffer without showing it
func (r *Renderer) Draw(snap game.Snapshot) {
	r.screen.Clear()
	w, h := r.screen.Size()
	grid := Grid{Cols: w, Rows: h - hudRows, Field: snap.Field}

	for _, u := range snap.Hostiles {
		r.drawUnit(grid, u, styleHostile)
	}
	if snap.Player.Health > 0 {
		r.drawUnit(grid, snap.Player, stylePlayer)
	}
	for _, p := range snap.Projectiles {
		col, row, ok := grid.Cell(p.X, p.Y)
		if !ok {
			continue
		}
		style := styleShot
		if p.Owner == game.RoleHostile {
			style = styleHostileHit
		}
		r.screen.SetContent(col, row+hudRows, '•', nil, style)
	}

	r.drawText(0, 0, HUDLine(snap), styleHUD)
	if !snap.Running {
		banner := BannerLine(snap)
		r.drawText(max(0, (w-len(banner))/2), hudRows+grid.Rows/2, banner, styleBanner)
	}
}

// drawUnit fills the cells covered by a unit and marks its facing in the middle
func (r *Renderer) drawUnit(grid Grid, u game.UnitView, style tcell.Style) {
	c0, r0, c1, r1 := grid.Span(u.X, u.Y, u.Width, u.Height)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			r.screen.SetContent(col, row+hudRows, '█', nil, style)
		}
	}
	r.screen.SetContent((c0+c1)/2, (r0+r1)/2+hudRows, FacingGlyph(u.Facing), nil, style.Reverse(true))
}

func (r *Renderer) drawText(x, y int, s string, style tcell.Style) {
	for i, ch := range []rune(s) {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}

// Grid maps field coordinates to terminal cells
type Grid struct {
	Cols, Rows int
	Field      game.Bounds
}

// Cell returns the cell containing a field point
func (g Grid) Cell(x, y float64) (col, row int, ok bool) {
	if g.Cols <= 0 || g.Rows <= 0 || !g.Field.Contains(x, y) {
		return 0, 0, false
	}
	col = min(g.Cols-1, int(x*float64(g.Cols)/g.Field.Width))
	row = min(g.Rows-1, int(y*float64(g.Rows)/g.Field.Height))
	return col, row, true
}

// Span returns the inclusive cell range covered by a box; small boxes cover at least one cell
func (g Grid) Span(x, y, w, h float64) (c0, r0, c1, r1 int) {
	c0, r0, _ = g.Cell(x, y)
	c1, r1, _ = g.Cell(min(g.Field.Width, x+w)-0.001, min(g.Field.Height, y+h)-0.001)
	return c0, r0, max(c0, c1), max(r0, r1)
}

// FacingGlyph returns the cell glyph of a facing
func FacingGlyph(d game.Direction) rune {
	switch d {
	case game.DirUp:
		return '^'
	case game.DirRight:
		return '>'
	case game.DirDown:
		return 'v'
	case game.DirLeft:
		return '<'
	default:
		return '?'
	}
}

// HUDLine returns the status line drawn above the field
func HUDLine(snap game.Snapshot) string {
	return fmt.Sprintf("Score %d  Level %d  Health %d  Enemies %d", snap.Score, snap.Wave, snap.Player.Health, snap.Remaining)
}

// BannerLine returns the message shown once the session stops
func BannerLine(snap game.Snapshot) string {
	if snap.Player.Health > 0 {
		return fmt.Sprintf(" PAUSED  score %d  r: new game  q: quit ", snap.Score)
	}
	return fmt.Sprintf(" GAME OVER  final score %d  r: restart  q: quit ", snap.Score)
}
