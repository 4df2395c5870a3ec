package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	noise    *rand.Rand
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		noise:    rand.New(rand.NewSource(int64(freq*1000) + int64(duration))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.noise.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// sweep is a sine whose frequency slides linearly from one value to another
type sweep struct {
	from, to float64
	phase    float64
	duration int
	position int
	rate     beep.SampleRate
}

// NewSweep creates a frequency sweep
func NewSweep(from, to float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sweep{from: from, to: to, duration: rate.N(duration), rate: rate}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.duration {
			return i, i > 0
		}
		t := float64(s.position) / float64(s.duration)
		freq := s.from + (s.to-s.from)*t
		val := math.Sin(2 * math.Pi * s.phase)
		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/release envelope
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(0, total-att-rel)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps a stream in a linear volume; 0 is silent since log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

const (
	shotDuration      = 70 * time.Millisecond
	hitDuration       = 120 * time.Millisecond
	explosionDuration = 400 * time.Millisecond
	waveNoteDuration  = 110 * time.Millisecond
	gameOverNote      = 220 * time.Millisecond
)

// CreateShotSound generates a short downward blip
func CreateShotSound(cfg *Config, sound SoundType) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	from := 900.0
	if sound == SoundHostileShot {
		from = 500
	}
	s := NewSweep(from, from/2, shotDuration, rate)
	shaped := NewEnvelope(s, shotDuration, 2*time.Millisecond, 40*time.Millisecond, rate)
	return newVolume(shaped, cfg.volume(sound))
}

// CreateHitSound generates a harsh thud
func CreateHitSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	osc := NewOscillator(110, hitDuration, WaveSaw, rate)
	shaped := NewEnvelope(osc, hitDuration, 5*time.Millisecond, 80*time.Millisecond, rate)
	return newVolume(shaped, cfg.volume(SoundHit))
}

// CreateExplosionSound generates a noise burst over a low rumble
func CreateExplosionSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	noise := NewEnvelope(NewOscillator(0, explosionDuration, WaveNoise, rate), explosionDuration, 5*time.Millisecond, 300*time.Millisecond, rate)
	rumble := NewEnvelope(NewOscillator(60, explosionDuration, WaveSine, rate), explosionDuration, 5*time.Millisecond, 350*time.Millisecond, rate)

	mixed := beep.Mix(
		newVolume(noise, 0.6),
		newVolume(rumble, 0.4),
	)
	return newVolume(beep.Take(rate.N(explosionDuration), mixed), cfg.volume(SoundExplosion))
}

// CreateWaveSound generates a rising two-note chime
func CreateWaveSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	// E5 then A5
	n1 := NewEnvelope(NewOscillator(659.25, waveNoteDuration, WaveSquare, rate), waveNoteDuration, 5*time.Millisecond, 60*time.Millisecond, rate)
	n2 := NewEnvelope(NewOscillator(880.0, waveNoteDuration, WaveSquare, rate), waveNoteDuration, 5*time.Millisecond, 80*time.Millisecond, rate)

	return newVolume(beep.Seq(n1, n2), cfg.volume(SoundWave))
}

// CreateGameOverSound generates a falling three-note phrase
func CreateGameOverSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	notes := []float64{392.0, 329.63, 261.63} // G4 E4 C4
	parts := make([]beep.Streamer, 0, len(notes))
	for _, f := range notes {
		osc := NewOscillator(f, gameOverNote, WaveSaw, rate)
		parts = append(parts, NewEnvelope(osc, gameOverNote, 10*time.Millisecond, 150*time.Millisecond, rate))
	}
	return newVolume(beep.Seq(parts...), cfg.volume(SoundGameOver))
}

// GetSoundEffect returns the streamer of a sound effect
func GetSoundEffect(sound SoundType, cfg *Config) beep.Streamer {
	switch sound {
	case SoundShot, SoundHostileShot:
		return CreateShotSound(cfg, sound)
	case SoundHit:
		return CreateHitSound(cfg)
	case SoundExplosion:
		return CreateExplosionSound(cfg)
	case SoundWave:
		return CreateWaveSound(cfg)
	case SoundGameOver:
		return CreateGameOverSound(cfg)
	default:
		return nil
	}
}
