package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"tankbattle/audio"
	"tankbattle/game"
	"tankbattle/terminal"
)

const frameInterval = game.DefaultInterval

// app owns the session and the screen; every method runs on the loop goroutine
type app struct {
	screen   tcell.Screen
	session  *game.Session
	keyboard *terminal.Keyboard
	renderer *terminal.Renderer
	sched    *game.Scheduler
}

func newApp(screen tcell.Screen, session *game.Session, hold time.Duration) *app {
	input := game.NewInputAggregator(terminal.DefaultBindings(), game.ControlLayout{})
	renderer := terminal.NewRenderer(screen)
	return &app{
		screen:   screen,
		session:  session,
		keyboard: terminal.NewKeyboard(input, hold),
		renderer: renderer,
		sched:    game.NewScheduler(session, input, renderer),
	}
}

// handleEvent applies one terminal event. It returns false when the user quits.
func (a *app) handleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q')) {
			return false
		}
		if ev.Key() == tcell.KeyEscape {
			if !a.session.Running() {
				return false
			}
			a.session.Stop()
			a.keyboard.Reset()
			return true
		}
		if !a.session.Running() {
			if ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && (ev.Rune() == 'r' || ev.Rune() == 'R')) {
				a.restart()
			}
			return true
		}
		a.keyboard.HandleEvent(ev, now)

	case *tcell.EventResize:
		a.screen.Sync()
		a.renderer.Frame(a.session.Snapshot())
	}
	return true
}

// tick releases expired keys and steps one frame
func (a *app) tick(now time.Time) game.Snapshot {
	a.keyboard.Expire(now)
	return a.sched.Once()
}

func (a *app) restart() {
	a.keyboard.Reset()
	a.session.Reset()
}

func (a *app) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go forwardEvents(a.screen.PollEvent, eventChan, done)

	for {
		select {
		case ev := <-eventChan:
			if !a.handleEvent(ev, time.Now()) {
				return
			}

		case now := <-ticker.C:
			a.tick(now)
		}
	}
}

// forwardEvents hands polled events to the loop until polling ends or the
// loop is done
func forwardEvents(poll func() tcell.Event, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// setupLogging sends slog output to a file; without one logs are discarded
// so they do not garble the screen
func setupLogging(path string) (*os.File, error) {
	if path == "" {
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return nil, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return f, nil
}

func main() {
	seed := flag.Int64("seed", 0, "random seed (0 picks one from the clock)")
	script := flag.String("script", "", "JavaScript file deciding hostile moves")
	mute := flag.Bool("mute", false, "disable sound effects")
	hold := flag.Duration("hold", terminal.DefaultHold, "how long a key press counts as held")
	logPath := flag.String("log", "", "write logs to this file")
	flag.Parse()

	logFile, err := setupLogging(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	config := game.DefaultConfig()
	config.Seed = *seed

	var opts []game.Option
	if *script != "" {
		policy, err := game.LoadScriptPolicy(*script, game.NewRandomPolicy(config))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load AI script: %v\n", err)
			os.Exit(1)
		}
		opts = append(opts, game.WithPolicy(policy))
	}
	session := game.NewSession(config, opts...)
	session.AddListener(game.ListenerFunc(func(e game.Event) {
		if e.Kind == game.EventGameOver {
			slog.Info("game over", "score", e.Score, "wave", e.Wave, "frame", e.Frame)
		}
	}))

	if !*mute {
		sounds := audio.NewSoundManager(audio.DefaultConfig())
		sounds.Attach(session)
		defer sounds.Cleanup()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	session.Start()
	newApp(screen, session, *hold).run()
}
