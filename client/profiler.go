package client

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"
)

// Profiler captures a CPU profile and an execution trace when a tick runs slow
type Profiler struct {
	mu          sync.Mutex
	wg          sync.WaitGroup
	isProfiling bool
	lastCapture time.Time
	profilesDir string
	captures    int

	// Threshold is the tick duration that triggers a capture
	Threshold time.Duration

	// Cooldown is the minimum time between two captures
	Cooldown time.Duration

	// CaptureDuration is how long each capture records
	CaptureDuration time.Duration
}

// NewProfiler creates a profiler writing into dir
func NewProfiler(dir string, threshold time.Duration) (*Profiler, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create profiles dir: %w", err)
	}

	return &Profiler{
		profilesDir:     dir,
		Threshold:       threshold,
		Cooldown:        10 * time.Second, // Don't capture more than once every 10 seconds
		CaptureDuration: 5 * time.Second,
	}, nil
}

// Observe reports one tick duration and starts a capture when it is slow.
// It returns true when a capture was started.
func (p *Profiler) Observe(tick time.Duration, frame int) bool {
	if tick < p.Threshold {
		return false
	}
	reason := fmt.Sprintf("frame%d-%dms", frame, tick.Milliseconds())
	if err := p.CaptureProfile(reason); err != nil {
		slog.Debug("profile capture skipped", "reason", reason, "error", err)
		return false
	}
	slog.Info("slow tick, capturing profile", "tick", tick, "frame", frame)
	return true
}

// CaptureProfile captures a CPU profile and trace in the background
func (p *Profiler) CaptureProfile(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isProfiling {
		return fmt.Errorf("already profiling")
	}
	if !p.lastCapture.IsZero() && time.Since(p.lastCapture) < p.Cooldown {
		return fmt.Errorf("capture on cooldown (last capture was %v ago)", time.Since(p.lastCapture))
	}

	p.isProfiling = true
	p.lastCapture = time.Now()
	baseName := fmt.Sprintf("slow-tick-%s-%s", p.lastCapture.Format("20060102-150405"), reason)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.captures++
			p.mu.Unlock()
		}()

		// Capture CPU profile and trace in parallel
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := p.captureCPUProfile(baseName); err != nil {
				slog.Error("capture cpu profile", "error", err)
			}
		}()
		go func() {
			defer wg.Done()
			if err := p.captureTrace(baseName); err != nil {
				slog.Error("capture trace", "error", err)
			}
		}()
		wg.Wait()

		p.logMemStats(baseName)
	}()

	return nil
}

// Wait blocks until the running capture, if any, has finished
func (p *Profiler) Wait() {
	p.wg.Wait()
}

// Captures returns how many captures have completed
func (p *Profiler) Captures() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.captures
}

func (p *Profiler) captureCPUProfile(baseName string) error {
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")

	file, err := os.Create(profilePath)
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return fmt.Errorf("failed to start CPU profile: %w", err)
	}
	time.Sleep(p.CaptureDuration)
	pprof.StopCPUProfile()

	slog.Info("cpu profile saved", "path", profilePath)
	return nil
}

func (p *Profiler) captureTrace(baseName string) error {
	tracePath := filepath.Join(p.profilesDir, baseName+".trace")

	file, err := os.Create(tracePath)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	defer file.Close()

	if err := trace.Start(file); err != nil {
		return fmt.Errorf("failed to start trace: %w", err)
	}
	time.Sleep(p.CaptureDuration)
	trace.Stop()

	slog.Info("trace saved", "path", tracePath)
	return nil
}

// logMemStats logs memory stats at the end of a capture
func (p *Profiler) logMemStats(baseName string) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	slog.Info("capture finished",
		"name", baseName,
		"view", "go tool pprof -http=:8080 "+filepath.Join(p.profilesDir, baseName+".cpu.prof"),
		"alloc_kb", m.Alloc/1024,
		"sys_kb", m.Sys/1024,
		"num_gc", m.NumGC,
		"heap_objects", m.HeapObjects,
	)
}
