package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedControls ControlVector

func (f fixedControls) Resolve() ControlVector { return ControlVector(f) }

func TestSchedulerOnce(t *testing.T) {
	s, _ := newTestSession(t)

	var frames []int
	var snaps []Snapshot
	sched := NewScheduler(s, fixedControls{Left: true}, FrameSinkFunc(func(snap Snapshot) {
		snaps = append(snaps, snap)
	}))
	sched.BeforeFrame = func(frame int) { frames = append(frames, frame) }

	snap := sched.Once()
	sched.Once()

	assert.Equal(t, 1, snap.Frame)
	assert.Equal(t, []int{0, 1}, frames)
	require.Len(t, snaps, 2)
	assert.Equal(t, 374.0, snaps[1].Player.X)
	assert.Equal(t, 2, sched.Frames())
}

func TestSchedulerNilSinkAndControls(t *testing.T) {
	s, _ := newTestSession(t)
	sched := NewScheduler(s, nil, nil)

	snap := sched.Once()
	assert.Equal(t, 380.0, snap.Player.X)
}

func TestSchedulerRunFramesStopsOnGameOver(t *testing.T) {
	s, _ := newTestSession(t)
	sched := NewScheduler(s, nil, nil)
	sched.BeforeFrame = func(frame int) {
		if frame == 9 {
			s.State().Projectiles = append(s.State().Projectiles, &Projectile{
				X: s.State().Player.X + 20, Y: s.State().Player.Y + 20, Owner: RoleHostile,
			})
			s.State().Player.Health = 1
		}
	}

	n := sched.RunFrames(100)
	assert.Equal(t, 10, n)
	assert.False(t, s.Running())
	assert.Equal(t, 0, sched.RunFrames(5), "a stopped session steps nothing")
}

func TestSchedulerRunCancel(t *testing.T) {
	s, _ := newTestSession(t)
	sched := NewScheduler(s, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	sched.BeforeFrame = func(frame int) {
		if frame == 2 {
			cancel()
		}
	}

	err := sched.Run(ctx, time.Millisecond)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, sched.Frames())
	assert.True(t, s.Running())
}

func TestSchedulerRunEndsWithSession(t *testing.T) {
	s, _ := newTestSession(t)
	sched := NewScheduler(s, nil, nil)
	sched.BeforeFrame = func(frame int) {
		if frame == 4 {
			s.Stop()
		}
	}

	err := sched.Run(context.Background(), time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 5, sched.Frames())
}

func TestSchedulerRunDefaultsInterval(t *testing.T) {
	s, _ := newTestSession(t)
	sched := NewScheduler(s, nil, nil)
	sched.BeforeFrame = func(frame int) {
		if frame%2 == 1 {
			s.Stop()
		}
	}

	for _, interval := range []time.Duration{0, -time.Second} {
		s.Start()
		require.NotPanics(t, func() {
			assert.NoError(t, sched.Run(context.Background(), interval))
		})
	}
	assert.Equal(t, 4, sched.Frames())
}
