package audio

// SoundType represents different sound effects
type SoundType int

const (
	SoundShot        SoundType = iota // Player shot
	SoundHostileShot                  // Hostile shot
	SoundHit                          // Any tank hit
	SoundExplosion                    // Hostile destroyed
	SoundWave                         // New wave
	SoundGameOver                     // Player destroyed
	soundTypeCount
)

func (s SoundType) String() string {
	switch s {
	case SoundShot:
		return "shot"
	case SoundHostileShot:
		return "hostile-shot"
	case SoundHit:
		return "hit"
	case SoundExplosion:
		return "explosion"
	case SoundWave:
		return "wave"
	case SoundGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Config holds audio settings
type Config struct {
	Enabled       bool
	MasterVolume  float64
	EffectVolumes map[SoundType]float64
	SampleRate    int
}

// DefaultConfig returns the default audio settings
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		MasterVolume: 0.5,
		EffectVolumes: map[SoundType]float64{
			SoundShot:        0.5,
			SoundHostileShot: 0.2,
			SoundHit:         0.6,
			SoundExplosion:   0.8,
			SoundWave:        0.6,
			SoundGameOver:    0.8,
		},
		SampleRate: 44100,
	}
}

// volume returns the effective volume of a sound
func (c *Config) volume(s SoundType) float64 {
	v, ok := c.EffectVolumes[s]
	if !ok {
		v = 1
	}
	return min(1, max(0, v*c.MasterVolume))
}
