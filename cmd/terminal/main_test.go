package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tankbattle/game"
)

func newTestApp(t *testing.T) *app {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 31)
	t.Cleanup(screen.Fini)

	config := game.DefaultConfig()
	config.Seed = 1
	session := game.NewSession(config)
	session.Start()
	return newApp(screen, session, 100*time.Millisecond)
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestAppMovesWhileKeyHeld(t *testing.T) {
	a := newTestApp(t)
	start := time.Unix(1000, 0)
	x0 := a.session.State().Player.X

	assert.True(t, a.handleEvent(key('a'), start))
	snap := a.tick(start.Add(16 * time.Millisecond))
	assert.Equal(t, x0-3, snap.Player.X)
	assert.Equal(t, game.DirLeft, snap.Player.Facing)

	// The hold window has passed without a repeat
	snap = a.tick(start.Add(200 * time.Millisecond))
	assert.Equal(t, x0-3, snap.Player.X)
}

func TestAppEscapeStopsThenQuits(t *testing.T) {
	a := newTestApp(t)
	esc := tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)

	assert.True(t, a.handleEvent(esc, time.Now()))
	assert.False(t, a.session.Running())
	assert.False(t, a.handleEvent(esc, time.Now()))
}

func TestAppQuitKeys(t *testing.T) {
	a := newTestApp(t)
	assert.False(t, a.handleEvent(key('q'), time.Now()))
	assert.False(t, a.handleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), time.Now()))
}

func TestAppRestart(t *testing.T) {
	a := newTestApp(t)
	now := time.Now()
	for i := 0; i < 10; i++ {
		a.tick(now)
	}
	a.session.Stop()

	// Movement keys are ignored while stopped
	a.handleEvent(key('w'), now)
	assert.False(t, a.session.Running())

	assert.True(t, a.handleEvent(key('R'), now))
	assert.True(t, a.session.Running())
	assert.Equal(t, 0, a.session.State().Frame)
	assert.Equal(t, 0, a.session.State().Score)
	assert.Equal(t, 1, a.session.State().Wave)
}

func TestAppResizeRedraws(t *testing.T) {
	a := newTestApp(t)
	a.handleEvent(tcell.NewEventResize(80, 31), time.Now())

	ch, _, _, _ := a.screen.GetContent(0, 0)
	assert.Equal(t, 'S', ch, "HUD line starts with the score")
}

func TestSetupLogging(t *testing.T) {
	f, err := setupLogging("")
	require.NoError(t, err)
	assert.Nil(t, f)

	path := filepath.Join(t.TempDir(), "tank.log")
	f, err = setupLogging(path)
	require.NoError(t, err)
	require.NotNil(t, f)
	require.NoError(t, f.Close())

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestForwardEventsStopsWhenDone(t *testing.T) {
	poll := func() tcell.Event { return key('w') }
	events := make(chan tcell.Event, 2)
	done := make(chan struct{})
	finished := make(chan struct{})

	go func() {
		forwardEvents(poll, events, done)
		close(finished)
	}()

	<-events
	close(done)

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("forwarding kept blocking after the loop was done")
	}
}

func TestForwardEventsStopsOnNil(t *testing.T) {
	polled := 0
	poll := func() tcell.Event {
		polled++
		if polled > 2 {
			return nil
		}
		return key('a')
	}
	events := make(chan tcell.Event, 5)

	forwardEvents(poll, events, make(chan struct{}))
	assert.Len(t, events, 2)
}
