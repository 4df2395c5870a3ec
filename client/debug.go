package client

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"tankbattle/game"
)

// DebugState holds debug flags that persist across session restarts
type DebugState struct {
	ShowStats bool // Show tick rate and entity counts
}

// StatsLine returns the debug overlay text
func StatsLine(snap game.Snapshot, tps, fps float64) string {
	return fmt.Sprintf("TPS %.0f FPS %.0f frame %d shots %d", tps, fps, snap.Frame, len(snap.Projectiles))
}

func (d *DebugState) draw(screen *ebiten.Image, snap game.Snapshot) {
	if !d.ShowStats {
		return
	}
	ebitenutil.DebugPrintAt(screen, StatsLine(snap, ebiten.ActualTPS(), ebiten.ActualFPS()), int(hudMargin), int(snap.Field.Height)-20)
}
