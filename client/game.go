package client

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"tankbattle/game"
)

const (
	// statusTicks is how long a status message stays on screen
	statusTicks = 120

	maxParticles = 400
)

// Game adapts a simulation session to ebiten. ebiten's Update is the frame
// callback: one Update steps the session by exactly one frame.
type Game struct {
	session  *game.Session
	input    *game.InputAggregator
	poller   *InputPoller
	renderer *Renderer
	effects  *Particles
	profiler *Profiler
	debug    DebugState

	// copyResult puts the result on the clipboard
	copyResult func(game.Snapshot) error

	snap        game.Snapshot
	status      string
	statusTicks int
}

// NewGame creates the ebiten game for a session. profiler may be nil.
// The session is started if it is not running yet.
func NewGame(session *game.Session, profiler *Profiler) *Game {
	config := session.Config()
	layout := game.DefaultControlLayout(config.FieldWidth, config.FieldHeight)
	input := game.NewInputAggregator(DefaultBindings(), layout)

	g := &Game{
		session:    session,
		input:      input,
		poller:     NewInputPoller(input),
		renderer:   NewRenderer(layout),
		effects:    NewParticles(maxParticles, rand.New(rand.NewSource(time.Now().UnixNano()))),
		profiler:   profiler,
		copyResult: CopyResult,
	}
	session.AddListener(g.effects)
	if !session.Running() {
		session.Start()
	}
	g.snap = session.Snapshot()
	return g
}

// Update steps the simulation once per tick
func (g *Game) Update() error {
	g.poller.Poll()
	if err := g.handleCommands(); err != nil {
		return err
	}

	if g.session.Running() {
		start := time.Now()
		g.snap = g.session.Step(g.input.Resolve())
		if g.profiler != nil {
			g.profiler.Observe(time.Since(start), g.snap.Frame)
		}
	}

	g.effects.Update(1 / float64(ebiten.TPS()))

	if g.statusTicks > 0 {
		g.statusTicks--
		if g.statusTicks == 0 {
			g.status = ""
		}
	}
	return nil
}

// handleCommands processes keys that control the session rather than the tank
func (g *Game) handleCommands() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug.ShowStats = !g.debug.ShowStats
	}

	alt := ebiten.IsKeyPressed(ebiten.KeyAlt)
	enter := inpututil.IsKeyJustPressed(ebiten.KeyEnter)
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) || (alt && enter) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if !g.session.Running() {
			return ebiten.Termination
		}
		g.session.Stop()
		g.snap = g.session.Snapshot()
		return nil
	}

	if g.session.Running() {
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if err := g.copyResult(g.snap); err != nil {
			slog.Warn("clipboard unavailable", "error", err)
			g.setStatus("Clipboard unavailable")
		} else {
			g.setStatus("Result copied")
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) || enter || g.poller.Tapped() {
		g.restart()
	}
	return nil
}

// restart begins a fresh session
func (g *Game) restart() {
	g.poller.Reset()
	g.effects.Clear()
	g.session.Start()
	g.snap = g.session.Snapshot()
	g.status, g.statusTicks = "", 0
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusTicks = statusTicks
}

// Draw renders the last snapshot
func (g *Game) Draw(screen *ebiten.Image) {
	kx, ky := g.poller.Knob()
	g.renderer.Draw(screen, g.snap, Overlay{
		ShowControls: g.poller.TouchSeen(),
		KnobX:        kx,
		KnobY:        ky,
		Status:       g.status,
		Effects:      g.effects,
	})
	g.debug.draw(screen, g.snap)
}

// Layout returns the field size; ebiten scales it to the window
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	config := g.session.Config()
	return int(config.FieldWidth), int(config.FieldHeight)
}
