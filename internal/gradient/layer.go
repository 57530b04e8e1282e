package gradient

import "sync"

// RenderableLayer is a visual layer that knows when its content is stale.
// Toolkit bindings call RedrawIfNeeded from their draw callback.
type RenderableLayer interface {
	// RedrawIfNeeded paints the layer into surface if it was invalidated
	// since the last redraw and reports whether it painted.
	RedrawIfNeeded(surface Surface) bool
}

// AngleLayer owns a GradientSpec and repaints it on demand.
// The zero value is an empty layer that needs a redraw.
// AngleLayer is safe for concurrent use.
type AngleLayer struct {
	spec    GradientSpec
	clean   bool
	version uint64
	mu      sync.Mutex
}

// NewAngleLayer creates a layer holding spec.
func NewAngleLayer(spec GradientSpec) *AngleLayer {
	l := &AngleLayer{}
	l.SetSpec(spec)
	return l
}

// Spec returns a copy of the current spec.
func (l *AngleLayer) Spec() GradientSpec {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.spec.WithColorStops(l.spec.ColorStops)
}

// SetSpec replaces the layer's spec and marks the layer for redraw.
func (l *AngleLayer) SetSpec(spec GradientSpec) {
	spec = spec.WithColorStops(spec.ColorStops)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.spec = spec
	l.invalidateLocked()
}

// SetAngle replaces the spec with one using the new angle.
func (l *AngleLayer) SetAngle(degrees float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.spec = l.spec.WithAngle(degrees)
	l.invalidateLocked()
}

// SetColorStops replaces the spec with one using the new stops.
func (l *AngleLayer) SetColorStops(stops []ColorStop) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.spec = l.spec.WithColorStops(stops)
	l.invalidateLocked()
}

// SetBounds replaces the spec with one using the new bounds.
func (l *AngleLayer) SetBounds(bounds Rect) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.spec = l.spec.WithBounds(bounds)
	l.invalidateLocked()
}

// Invalidate marks the layer for redraw without changing its spec,
// e.g. after the surface it paints into was cleared.
func (l *AngleLayer) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.invalidateLocked()
}

// NeedsRedraw reports whether the next RedrawIfNeeded call will paint.
func (l *AngleLayer) NeedsRedraw() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.clean
}

// Version counts spec replacements and invalidations.
func (l *AngleLayer) Version() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.version
}

// RedrawIfNeeded implements RenderableLayer.
// The layer is marked clean even when the spec paints nothing, so a
// degenerate spec is not retried every frame.
func (l *AngleLayer) RedrawIfNeeded(surface Surface) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.clean || surface == nil {
		return false
	}
	l.clean = true
	return Paint(l.spec, surface)
}

func (l *AngleLayer) invalidateLocked() {
	l.clean = false
	l.version++
}
