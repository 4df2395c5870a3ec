package client

import (
	"fmt"

	"github.com/atotto/clipboard"

	"tankbattle/game"
)

// ResultLine formats a finished (or paused) session for sharing
func ResultLine(snap game.Snapshot) string {
	return fmt.Sprintf("Tank Battle: score %d, level %d, %d frames", snap.Score, snap.Wave, snap.Frame)
}

// CopyResult puts the result line on the system clipboard
func CopyResult(snap game.Snapshot) error {
	if err := clipboard.WriteAll(ResultLine(snap)); err != nil {
		return fmt.Errorf("copy result: %w", err)
	}
	return nil
}
