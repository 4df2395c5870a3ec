package game

import (
	"context"
	"time"
)

// DefaultInterval paces Run at about 60 frames per second
const DefaultInterval = 16 * time.Millisecond

// Scheduler is the cooperative frame loop for hosts without their own frame
// callback. Each frame resolves the controls, steps the session and hands the
// snapshot to the sink.
type Scheduler struct {
	session  *Session
	controls ControlSource
	sink     FrameSink

	// BeforeFrame runs at the start of every frame, before controls are resolved
	BeforeFrame func(frame int)

	frames int
}

// NewScheduler creates a scheduler. sink may be nil.
func NewScheduler(session *Session, controls ControlSource, sink FrameSink) *Scheduler {
	return &Scheduler{
		session:  session,
		controls: controls,
		sink:     sink,
	}
}

// Frames returns how many frames the scheduler has stepped
func (s *Scheduler) Frames() int {
	return s.frames
}

// Once steps a single frame
func (s *Scheduler) Once() Snapshot {
	if s.BeforeFrame != nil {
		s.BeforeFrame(s.frames)
	}

	var ctrl ControlVector
	if s.controls != nil {
		ctrl = s.controls.Resolve()
	}
	snap := s.session.Step(ctrl)
	s.frames++

	if s.sink != nil {
		s.sink.Frame(snap)
	}
	return snap
}

// RunFrames steps up to n frames back to back and stops early when the
// session stops. It returns the number of frames stepped.
func (s *Scheduler) RunFrames(n int) int {
	stepped := 0
	for stepped < n && s.session.Running() {
		s.Once()
		stepped++
	}
	return stepped
}

// Run steps one frame per interval until the session stops or the context is
// cancelled. The running flag and the context are checked at the top of every
// iteration. A non-positive interval uses DefaultInterval.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for s.session.Running() {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.Once()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}
