package render

import (
	"sync"

	"github.com/opd-ai/go-anglegradient/internal/gradient"
)

// Recorder is a gradient.Surface that keeps every draw call in memory.
// It is safe for concurrent use.
type Recorder struct {
	calls []gradient.LinearGradient
	mu    sync.Mutex
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// DrawLinearGradient implements gradient.Surface.
func (r *Recorder) DrawLinearGradient(g gradient.LinearGradient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, cloneGradient(g))
}

// Calls returns a copy of the recorded draw calls in order.
func (r *Recorder) Calls() []gradient.LinearGradient {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]gradient.LinearGradient, len(r.calls))
	for i, g := range r.calls {
		out[i] = cloneGradient(g)
	}
	return out
}

// Last returns the most recent draw call.
func (r *Recorder) Last() (gradient.LinearGradient, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return gradient.LinearGradient{}, false
	}
	return cloneGradient(r.calls[len(r.calls)-1]), true
}

// Len returns the number of recorded draw calls.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// Reset discards all recorded draw calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

func cloneGradient(g gradient.LinearGradient) gradient.LinearGradient {
	stops := make([]gradient.ColorStop, len(g.Stops))
	copy(stops, g.Stops)
	g.Stops = stops
	return g
}
