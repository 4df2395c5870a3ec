package audio

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"tankbattle/game"
)

// maxVoices caps how many effects play at once
const maxVoices = 16

// SoundManager plays sound effects in reaction to simulation events.
// Every method is safe to call before Initialize or after Cleanup; the game
// stays silent then.
type SoundManager struct {
	mu          sync.Mutex
	cfg         *Config
	mixer       *beep.Mixer
	initialized bool
	requested   [soundTypeCount]int
}

// NewSoundManager creates a new sound manager
func NewSoundManager(cfg *Config) *SoundManager {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &SoundManager{
		cfg:   cfg,
		mixer: &beep.Mixer{},
	}
}

// Initialize sets up the speaker. A disabled config is not an error.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	sm.initialized = false
}

// Play starts a sound effect
func (sm *SoundManager) Play(sound SoundType) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sound < 0 || sound >= soundTypeCount {
		return
	}
	sm.requested[sound]++

	if !sm.initialized {
		return
	}
	streamer := GetSoundEffect(sound, sm.cfg)
	if streamer == nil {
		return
	}

	speaker.Lock()
	defer speaker.Unlock()
	if sm.mixer.Len() >= maxVoices {
		return
	}
	sm.mixer.Add(streamer)
}

// Requested returns how many times a sound was asked for, played or not
func (sm *SoundManager) Requested(sound SoundType) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sound < 0 || sound >= soundTypeCount {
		return 0
	}
	return sm.requested[sound]
}

// OnEvent implements game.Listener
func (sm *SoundManager) OnEvent(e game.Event) {
	if sound, ok := SoundForEvent(e); ok {
		sm.Play(sound)
	}
}

// SoundForEvent maps a simulation event to its sound effect
func SoundForEvent(e game.Event) (SoundType, bool) {
	switch e.Kind {
	case game.EventShotFired:
		if e.Role == game.RolePlayer {
			return SoundShot, true
		}
		return SoundHostileShot, true
	case game.EventUnitHit:
		if e.Health > 0 {
			return SoundHit, true
		}
		// Destruction has its own sound
		return 0, false
	case game.EventHostileDestroyed:
		return SoundExplosion, true
	case game.EventWaveStarted:
		if e.Wave > 1 {
			return SoundWave, true
		}
		return 0, false
	case game.EventGameOver:
		return SoundGameOver, true
	default:
		return 0, false
	}
}

// Attach subscribes the manager to a session, initializing the speaker first.
// Initialization failures are logged and leave the game silent.
func (sm *SoundManager) Attach(session *game.Session) {
	if err := sm.Initialize(); err != nil {
		slog.Warn("audio disabled", "error", err)
	}
	session.AddListener(sm)
}
