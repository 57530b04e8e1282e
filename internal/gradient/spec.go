package gradient

import (
	"errors"
	"fmt"
	"image/color"
)

// ErrInvalidSpec is wrapped by every error returned from GradientSpec.Validate.
var ErrInvalidSpec = errors.New("invalid gradient spec")

// ColorStop is one (offset, color) pair along the gradient axis.
// Color channels are straight (not premultiplied) alpha.
type ColorStop struct {
	Offset float64
	Color  color.RGBA
}

// GradientSpec describes an angle gradient.
//
// A spec is a value: owning layers replace it wholesale whenever the angle,
// stops or bounds change instead of mutating one across renders.
type GradientSpec struct {
	// AngleDegrees is the gradient axis angle, normalized before use.
	AngleDegrees float64
	// ColorStops are ordered by non-decreasing offset. A single stop
	// paints a solid fill.
	ColorStops []ColorStop
	// Bounds is the rectangle to paint.
	Bounds Rect
}

// NewSpec returns a spec for the given angle, bounds and stops.
// The stops are copied.
func NewSpec(angleDegrees float64, bounds Rect, stops ...ColorStop) GradientSpec {
	return GradientSpec{
		AngleDegrees: angleDegrees,
		ColorStops:   cloneStops(stops),
		Bounds:       bounds,
	}
}

// SpecFromRadians is NewSpec with the angle given in radians.
func SpecFromRadians(radians float64, bounds Rect, stops ...ColorStop) GradientSpec {
	return NewSpec(DegreesFromRadians(radians), bounds, stops...)
}

// WithAngle returns a copy of s with a new angle.
func (s GradientSpec) WithAngle(degrees float64) GradientSpec {
	s.ColorStops = cloneStops(s.ColorStops)
	s.AngleDegrees = degrees
	return s
}

// WithColorStops returns a copy of s with new stops.
func (s GradientSpec) WithColorStops(stops []ColorStop) GradientSpec {
	s.ColorStops = cloneStops(stops)
	return s
}

// WithBounds returns a copy of s with new bounds.
func (s GradientSpec) WithBounds(bounds Rect) GradientSpec {
	s.ColorStops = cloneStops(s.ColorStops)
	s.Bounds = bounds
	return s
}

// NormalizedAngle returns the spec's angle mapped into [0, 360).
func (s GradientSpec) NormalizedAngle() float64 {
	return NormalizeAngle(s.AngleDegrees)
}

// IsSolid reports whether the spec degenerates to a solid fill.
func (s GradientSpec) IsSolid() bool {
	return len(s.ColorStops) == 1
}

// Validate checks the stop list and bounds. Painting never calls it;
// it is meant for loaders that accept specs from outside.
func (s GradientSpec) Validate() error {
	var errs []error
	if len(s.ColorStops) == 0 {
		errs = append(errs, errors.New("color stops: at least one stop is required"))
	}
	for i, stop := range s.ColorStops {
		if stop.Offset < 0 || stop.Offset > 1 {
			errs = append(errs, fmt.Errorf("color stops[%d]: offset %g outside [0, 1]", i, stop.Offset))
		}
		if i > 0 && stop.Offset < s.ColorStops[i-1].Offset {
			errs = append(errs, fmt.Errorf("color stops[%d]: offset %g is less than previous offset %g",
				i, stop.Offset, s.ColorStops[i-1].Offset))
		}
	}
	if s.Bounds.Width < 0 || s.Bounds.Height < 0 {
		errs = append(errs, fmt.Errorf("bounds: negative size %gx%g", s.Bounds.Width, s.Bounds.Height))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidSpec, errors.Join(errs...))
}

func cloneStops(stops []ColorStop) []ColorStop {
	if stops == nil {
		return nil
	}
	out := make([]ColorStop, len(stops))
	copy(out, stops)
	return out
}
