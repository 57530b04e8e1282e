// Package profiling collects CPU and heap profiles of gradient rendering
// and keeps lightweight render timing stats.
//
// Work done inside Track carries pprof labels naming the document and the
// stage, so `go tool pprof -tagfocus stage=script` isolates the time spent
// in overlay scripts.
package profiling

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"sync"
)

// Label keys attached by Track.
const (
	LabelSource = "source"
	LabelStage  = "stage"
)

// Render stages passed to Track.
const (
	StagePaint  = "paint"
	StageScript = "script"
	StageLoad   = "load"
)

// ErrStopped is returned by Session.Stop on a session already stopped.
var ErrStopped = errors.New("profiling session already stopped")

// Config names the profile outputs. An empty path disables that profile.
type Config struct {
	CPUProfilePath string
	MemProfilePath string
}

// Enabled reports whether any profile is requested.
func (c Config) Enabled() bool {
	return c.CPUProfilePath != "" || c.MemProfilePath != ""
}

// Session is one profiling run. The CPU profile covers Start to Stop and
// the heap profile is written at Stop.
type Session struct {
	memPath string
	cpuFile *os.File
	stopped bool
	mu      sync.Mutex
}

// Start begins a session. It returns a nil session when cfg enables
// nothing; Stop on a nil session is a no-op.
func Start(cfg Config) (*Session, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	s := &Session{memPath: cfg.MemProfilePath}
	if cfg.CPUProfilePath == "" {
		return s, nil
	}

	f, err := os.Create(cfg.CPUProfilePath)
	if err != nil {
		return nil, fmt.Errorf("create CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("start CPU profile: %w", err)
	}
	s.cpuFile = f
	return s, nil
}

// Stop ends the CPU profile and writes the heap profile.
func (s *Session) Stop() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return ErrStopped
	}
	s.stopped = true

	var errs []error
	if s.cpuFile != nil {
		pprof.StopCPUProfile()
		if err := s.cpuFile.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close CPU profile: %w", err))
		}
		s.cpuFile = nil
	}
	if s.memPath != "" {
		if err := writeHeapProfile(s.memPath); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func writeHeapProfile(path string) error {
	runtime.GC()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create memory profile: %w", err)
	}
	defer f.Close()

	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("write memory profile: %w", err)
	}
	return nil
}

// Track runs fn with pprof labels for source and stage added to ctx.
// Nested calls keep the outer labels and override the stage.
func Track(ctx context.Context, source, stage string, fn func(context.Context) error) error {
	var err error
	pprof.Do(ctx, pprof.Labels(LabelSource, source, LabelStage, stage), func(ctx context.Context) {
		err = fn(ctx)
	})
	return err
}

