package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tankbattle/game"
)

func planSnapshot(playerX, playerY float64, hostiles ...game.UnitView) game.Snapshot {
	return game.Snapshot{
		Field:    game.Bounds{Width: 800, Height: 600},
		Player:   game.UnitView{X: playerX, Y: playerY, Width: 40, Height: 40, Health: 100},
		Hostiles: hostiles,
		Running:  true,
	}
}

func hostileAt(x, y float64) game.UnitView {
	return game.UnitView{X: x, Y: y, Width: 40, Height: 40, Health: 30, Role: game.RoleHostile}
}

func TestPlan(t *testing.T) {
	assert.Nil(t, plan(planSnapshot(380, 540)), "nothing to chase")

	assert.Equal(t, []game.Key{keyRight}, plan(planSnapshot(380, 540, hostileAt(600, 50))))
	assert.Equal(t, []game.Key{keyLeft}, plan(planSnapshot(380, 540, hostileAt(100, 50))))
	assert.Equal(t, []game.Key{keyUp, keyFire}, plan(planSnapshot(380, 540, hostileAt(385, 50))))

	// The closest hostile wins
	assert.Equal(t, []game.Key{keyLeft}, plan(planSnapshot(380, 540, hostileAt(700, 50), hostileAt(300, 80))))

	assert.Equal(t, []game.Key{keyDown}, plan(planSnapshot(380, 200, hostileAt(380, 50))), "backs off past the middle")

	dead := planSnapshot(380, 540, hostileAt(385, 50))
	dead.Player.Health = 0
	assert.Nil(t, plan(dead))
}

func TestRunStatsRecord(t *testing.T) {
	var rs runStats
	rs.record(game.Event{Kind: game.EventShotFired, Role: game.RolePlayer})
	rs.record(game.Event{Kind: game.EventShotFired, Role: game.RoleHostile})
	rs.record(game.Event{Kind: game.EventUnitHit, Role: game.RolePlayer})
	rs.record(game.Event{Kind: game.EventUnitHit, Role: game.RoleHostile})
	rs.record(game.Event{Kind: game.EventHostileDestroyed, Frame: 40})
	rs.record(game.Event{Kind: game.EventHostileDestroyed, Frame: 90})
	rs.record(game.Event{Kind: game.EventGameOver})

	assert.Equal(t, 1, rs.shots)
	assert.Equal(t, 1, rs.hostileShots)
	assert.Equal(t, 1, rs.playerHits)
	assert.Equal(t, 2, rs.kills)
	assert.Equal(t, 40, rs.firstKill)
	assert.True(t, rs.gameOver)
}

func TestRunSessionFrameLimit(t *testing.T) {
	rs, err := runSession(1, 7, 30, nil, nil, 1)
	require.NoError(t, err)

	assert.Equal(t, 30, rs.frames)
	assert.False(t, rs.gameOver)
	assert.GreaterOrEqual(t, rs.wave, 1)
	assert.Zero(t, rs.traced)
}

func TestRunSessionDeterministic(t *testing.T) {
	a, err := runSession(1, 11, 600, nil, nil, 1)
	require.NoError(t, err)
	b, err := runSession(1, 11, 600, nil, nil, 1)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Positive(t, a.shots, "the autopilot lines up and fires")
}

func TestRunSessionTrace(t *testing.T) {
	var buf bytes.Buffer
	rs, err := runSession(1, 5, 50, nil, &buf, 10)
	require.NoError(t, err)

	snaps, err := game.ReadTrace(&buf)
	require.NoError(t, err)
	assert.Len(t, snaps, rs.traced)
	assert.GreaterOrEqual(t, rs.traced, 5)
	assert.Equal(t, 1, snaps[0].Frame)
	assert.Equal(t, 11, snaps[1].Frame)
}

func TestScriptPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chase.js")
	require.NoError(t, os.WriteFile(path, []byte(game.ExampleScript()), 0o644))

	newPolicy, err := scriptPolicy(path)
	require.NoError(t, err)

	rs, err := runSession(1, 3, 120, newPolicy, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, 120, rs.frames)

	_, err = scriptPolicy(filepath.Join(t.TempDir(), "missing.js"))
	assert.Error(t, err)
}

func TestScriptPolicyCompileError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.js")
	require.NoError(t, os.WriteFile(path, []byte("function decide(ctx) {"), 0o644))

	newPolicy, err := scriptPolicy(path)
	require.NoError(t, err, "the file is only compiled per run")

	_, err = runSession(2, 3, 10, newPolicy, nil, 1)
	assert.ErrorContains(t, err, "run 2")
}

func TestFormatReport(t *testing.T) {
	a := runStats{runIndex: 1, seed: 42, frames: 3600, wave: 4, score: 900, shots: 30, kills: 9, firstKill: 120}
	b := runStats{runIndex: 2, seed: 43, frames: 800, wave: 2, score: 300, shots: 10, kills: 3, gameOver: true}

	run := formatRun(a)
	assert.Contains(t, run, "--- Run 1 (seed=42) ---")
	assert.Contains(t, run, "outcome=survived wave=4 score=900")
	assert.Contains(t, run, "accuracy=30%")
	assert.Contains(t, run, "first_kill=120")
	assert.Contains(t, formatRun(b), "outcome=destroyed")
	assert.Contains(t, formatRun(runStats{}), "accuracy=n/a")

	agg := formatAggregate([]runStats{a, b})
	assert.Contains(t, agg, "runs=2 destroyed=1")
	assert.Contains(t, agg, "score=600.0")
	assert.Contains(t, agg, "best_score=900 accuracy=30%")
}
