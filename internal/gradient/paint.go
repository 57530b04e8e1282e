package gradient

// LinearGradient is a concrete two-point linear gradient fill of Bounds.
// Stops map offset 0 to Start and offset 1 to End; outside that range the
// first and last stop colors extend to the edges of Bounds.
type LinearGradient struct {
	Bounds Rect
	Start  Point
	End    Point
	Stops  []ColorStop
}

// Surface is a paint target that can fill a rectangle with a linear gradient.
//
// Surfaces are not required to be safe for concurrent use; callers that
// share one surface between goroutines serialize access themselves.
type Surface interface {
	DrawLinearGradient(g LinearGradient)
}

// Paint computes the endpoints for spec and issues one linear-gradient draw
// into surface. It reports whether anything was drawn: degenerate bounds
// and empty stop lists are silently skipped.
//
// Paint holds no cache; it must be called again whenever spec changes.
func Paint(spec GradientSpec, surface Surface) bool {
	if surface == nil || len(spec.ColorStops) == 0 || spec.Bounds.IsEmpty() {
		return false
	}
	start, end := ComputeEndpoints(spec)
	if start == end {
		return false
	}
	surface.DrawLinearGradient(LinearGradient{
		Bounds: spec.Bounds,
		Start:  start,
		End:    end,
		Stops:  cloneStops(spec.ColorStops),
	})
	return true
}
