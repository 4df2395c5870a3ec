package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math"
	"os"
	"strings"

	"tankbattle/game"
)

// Key codes of the autopilot's virtual keyboard
const (
	keyUp game.Key = iota + 1
	keyDown
	keyLeft
	keyRight
	keyFire
)

func autopilotBindings() game.Bindings {
	return game.Bindings{
		keyUp:    game.ActionUp,
		keyDown:  game.ActionDown,
		keyLeft:  game.ActionLeft,
		keyRight: game.ActionRight,
		keyFire:  game.ActionFire,
	}
}

type runStats struct {
	runIndex int
	seed     int64

	frames   int
	wave     int
	score    int
	gameOver bool

	shots        int
	hostileShots int
	kills        int
	playerHits   int
	firstKill    int
	traced       int
}

// record counts one simulation event
func (rs *runStats) record(e game.Event) {
	switch e.Kind {
	case game.EventShotFired:
		if e.Role == game.RolePlayer {
			rs.shots++
		} else {
			rs.hostileShots++
		}
	case game.EventUnitHit:
		if e.Role == game.RolePlayer {
			rs.playerHits++
		}
	case game.EventHostileDestroyed:
		rs.kills++
		if rs.firstKill == 0 {
			rs.firstKill = e.Frame
		}
	case game.EventGameOver:
		rs.gameOver = true
	}
}

// autopilot plays the player tank: it lines up under the closest hostile,
// fires upwards, and backs off once it has climbed past the middle of the field.
type autopilot struct {
	input *game.InputAggregator
	last  game.Snapshot
}

func newAutopilot(first game.Snapshot) *autopilot {
	return &autopilot{
		input: game.NewInputAggregator(autopilotBindings(), game.ControlLayout{}),
		last:  first,
	}
}

// Frame implements game.FrameSink
func (a *autopilot) Frame(snap game.Snapshot) {
	a.last = snap
}

// steer presses the keys for the next frame
func (a *autopilot) steer(int) {
	a.input.Reset()
	for _, k := range plan(a.last) {
		a.input.KeyDown(k)
	}
}

// plan picks the keys to hold for the next frame
func plan(snap game.Snapshot) []game.Key {
	p := snap.Player
	if len(snap.Hostiles) == 0 || p.Health <= 0 {
		return nil
	}
	if p.Y+p.Height/2 < snap.Field.Height/2 {
		return []game.Key{keyDown}
	}

	center := p.X + p.Width/2
	target := snap.Hostiles[0]
	best := math.Inf(1)
	for _, h := range snap.Hostiles {
		if d := math.Abs(h.X + h.Width/2 - center); d < best {
			best, target = d, h
		}
	}

	dx := target.X + target.Width/2 - center
	switch {
	case dx > target.Width/4:
		return []game.Key{keyRight}
	case dx < -target.Width/4:
		return []game.Key{keyLeft}
	default:
		return []game.Key{keyUp, keyFire}
	}
}

// policyFactory builds a fresh hostile policy for every run
type policyFactory func(config game.Config) (game.Policy, error)

func scriptPolicy(path string) (policyFactory, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return func(config game.Config) (game.Policy, error) {
		return game.NewScriptPolicy(path, string(code), game.NewRandomPolicy(config))
	}, nil
}

// runSession plays one seeded session for up to frames frames. trace may be nil.
func runSession(runIndex int, seed int64, frames int, newPolicy policyFactory, trace io.Writer, every int) (runStats, error) {
	config := game.DefaultConfig()
	config.Seed = seed

	stats := runStats{runIndex: runIndex, seed: seed}
	opts := []game.Option{game.WithListener(game.ListenerFunc(stats.record))}
	if newPolicy != nil {
		policy, err := newPolicy(config)
		if err != nil {
			return stats, fmt.Errorf("run %d: %w", runIndex, err)
		}
		opts = append(opts, game.WithPolicy(policy))
	}

	session := game.NewSession(config, opts...)
	session.Start()

	pilot := newAutopilot(session.Snapshot())
	sinks := game.MultiSink{pilot}
	var rec *game.Recorder
	if trace != nil {
		rec = game.NewRecorder(trace, every)
		sinks = append(sinks, rec)
	}

	sched := game.NewScheduler(session, pilot.input, sinks)
	sched.BeforeFrame = pilot.steer
	stats.frames = sched.RunFrames(frames)

	final := session.Snapshot()
	stats.wave = final.Wave
	stats.score = final.Score

	if rec != nil {
		if err := rec.Err(); err != nil {
			return stats, fmt.Errorf("run %d trace: %w", runIndex, err)
		}
		stats.traced = rec.Frames()
	}
	return stats, nil
}

func formatRun(rs runStats) string {
	outcome := "survived"
	if rs.gameOver {
		outcome = "destroyed"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Fprintf(&sb, "frames=%d outcome=%s wave=%d score=%d\n", rs.frames, outcome, rs.wave, rs.score)
	fmt.Fprintf(&sb, "shots=%d kills=%d accuracy=%s hostile_shots=%d player_hits=%d first_kill=%s\n",
		rs.shots, rs.kills, percent(rs.kills, rs.shots), rs.hostileShots, rs.playerHits, frameString(rs.firstKill))
	if rs.traced > 0 {
		fmt.Fprintf(&sb, "traced_frames=%d\n", rs.traced)
	}
	return sb.String()
}

func formatAggregate(all []runStats) string {
	var frames, waves, scores, shots, kills, destroyed, bestScore int
	for _, rs := range all {
		frames += rs.frames
		waves += rs.wave
		scores += rs.score
		shots += rs.shots
		kills += rs.kills
		if rs.gameOver {
			destroyed++
		}
		bestScore = max(bestScore, rs.score)
	}

	var sb strings.Builder
	fmt.Fprintln(&sb, "=== Aggregate ===")
	fmt.Fprintf(&sb, "runs=%d destroyed=%d\n", len(all), destroyed)
	fmt.Fprintf(&sb, "avg_per_run: frames=%.1f wave=%.1f score=%.1f shots=%.1f kills=%.1f\n",
		avg(frames, len(all)), avg(waves, len(all)), avg(scores, len(all)), avg(shots, len(all)), avg(kills, len(all)))
	fmt.Fprintf(&sb, "best_score=%d accuracy=%s\n", bestScore, percent(kills, shots))
	return sb.String()
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func percent(part, whole int) string {
	if whole <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.0f%%", float64(part)/float64(whole)*100)
}

func frameString(frame int) string {
	if frame <= 0 {
		return "n/a"
	}
	return fmt.Sprint(frame)
}

func main() {
	var runs int
	var frames int
	var seedBase int64
	var seedStep int64
	var script string
	var tracePath string
	var every int

	flag.IntVar(&runs, "runs", 5, "number of headless sessions")
	flag.IntVar(&frames, "frames", 3600, "frame limit per session")
	flag.Int64Var(&seedBase, "seed-base", 42, "random seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&script, "script", "", "JavaScript file deciding hostile moves")
	flag.StringVar(&tracePath, "trace", "", "write a msgpack frame trace of every run to this file")
	flag.IntVar(&every, "every", 1, "trace every n-th frame")
	flag.Parse()

	if runs <= 0 {
		log.Fatal("-runs must be > 0")
	}
	if frames <= 0 {
		log.Fatal("-frames must be > 0")
	}

	var newPolicy policyFactory
	if script != "" {
		f, err := scriptPolicy(script)
		if err != nil {
			log.Fatalf("Failed to load AI script: %v", err)
		}
		newPolicy = f
	}

	var trace *bufio.Writer
	if tracePath != "" {
		f, err := os.Create(tracePath)
		if err != nil {
			log.Fatalf("Failed to create trace file: %v", err)
		}
		defer f.Close()
		trace = bufio.NewWriter(f)
		defer trace.Flush()
	}

	fmt.Println("=== Headless Tank Battle Report ===")
	fmt.Printf("runs=%d frames=%d seed_base=%d seed_step=%d\n\n", runs, frames, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		var w io.Writer
		if trace != nil {
			w = trace
		}
		stats, err := runSession(i+1, seed, frames, newPolicy, w, every)
		if err != nil {
			slog.Error("run failed", "run", i+1, "seed", seed, "error", err)
			continue
		}
		all = append(all, stats)
		fmt.Println(formatRun(stats))
	}

	fmt.Print(formatAggregate(all))
}
