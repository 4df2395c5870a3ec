package main

import (
	"flag"
	"log"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"tankbattle/audio"
	"tankbattle/client"
	"tankbattle/game"
)

func main() {
	seed := flag.Int64("seed", 0, "random seed (0 picks one from the clock)")
	script := flag.String("script", "", "JavaScript file deciding hostile moves")
	mute := flag.Bool("mute", false, "disable sound effects")
	fullscreen := flag.Bool("fullscreen", false, "start in fullscreen mode")
	profileDir := flag.String("profile-dir", "", "capture CPU profiles of slow ticks into this directory")
	slowTick := flag.Duration("slow-tick", 12*time.Millisecond, "tick duration that triggers a profile capture")
	flag.Parse()

	config := game.DefaultConfig()
	config.Seed = *seed

	var opts []game.Option
	if *script != "" {
		policy, err := game.LoadScriptPolicy(*script, game.NewRandomPolicy(config))
		if err != nil {
			log.Fatalf("Failed to load AI script: %v", err)
		}
		opts = append(opts, game.WithPolicy(policy))
		log.Printf("Hostiles driven by %s\n", *script)
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

	var profiler *client.Profiler
	if *profileDir != "" {
		p, err := client.NewProfiler(*profileDir, *slowTick)
		if err != nil {
			log.Fatalf("Failed to create profiler: %v", err)
		}
		defer p.Wait()
		profiler = p
	}

	g := client.NewGame(session, profiler)

	ebiten.SetWindowSize(int(config.FieldWidth), int(config.FieldHeight))
	ebiten.SetWindowTitle("Tank Battle")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(*fullscreen)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
