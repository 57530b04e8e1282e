// Package render provides the paint targets for angle gradients.
// This file implements the linear gradient pattern shared by all surfaces.
package render

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/opd-ai/go-anglegradient/internal/gradient"
)

// PatternExtend controls how a pattern is rendered outside the 0..1 range
// of its gradient line.
type PatternExtend int

const (
	// PatternExtendPad extends the edge colors. This is the default.
	PatternExtendPad PatternExtend = iota
	// PatternExtendNone leaves pixels outside the gradient line transparent.
	PatternExtendNone
	// PatternExtendRepeat tiles the pattern.
	PatternExtendRepeat
	// PatternExtendReflect tiles the pattern, reflecting at boundaries.
	PatternExtendReflect
)

// String returns the configuration name of the extend mode.
func (e PatternExtend) String() string {
	switch e {
	case PatternExtendPad:
		return "pad"
	case PatternExtendNone:
		return "none"
	case PatternExtendRepeat:
		return "repeat"
	case PatternExtendReflect:
		return "reflect"
	default:
		return fmt.Sprintf("PatternExtend(%d)", int(e))
	}
}

// ParseExtend parses "pad", "none", "repeat" or "reflect".
func ParseExtend(s string) (PatternExtend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pad":
		return PatternExtendPad, nil
	case "none":
		return PatternExtendNone, nil
	case "repeat":
		return PatternExtendRepeat, nil
	case "reflect":
		return PatternExtendReflect, nil
	default:
		return PatternExtendPad, fmt.Errorf("unknown extend mode %q (expected pad, none, repeat or reflect)", s)
	}
}

// PatternOptions configures how a LinearPattern maps positions to colors.
type PatternOptions struct {
	Extend        PatternExtend
	Interpolation Interpolation
}

// LinearPattern is an immutable color lookup along a gradient line.
// Offset 0 maps to the start point and offset 1 to the end point.
type LinearPattern struct {
	x0, y0, x1, y1 float64
	stops          []gradient.ColorStop
	opts           PatternOptions
}

// NewLinearPattern builds a pattern for g. Stops are copied and stably
// sorted by offset, so stops sharing an offset form a hard edge in the
// order they were given.
func NewLinearPattern(g gradient.LinearGradient, opts PatternOptions) *LinearPattern {
	stops := make([]gradient.ColorStop, len(g.Stops))
	copy(stops, g.Stops)
	sort.SliceStable(stops, func(i, j int) bool { return stops[i].Offset < stops[j].Offset })
	return &LinearPattern{
		x0:    g.Start.X,
		y0:    g.Start.Y,
		x1:    g.End.X,
		y1:    g.End.Y,
		stops: stops,
		opts:  opts,
	}
}

// Options returns the pattern's extend and interpolation settings.
func (p *LinearPattern) Options() PatternOptions {
	return p.opts
}

// Stops returns a copy of the sorted color stops.
func (p *LinearPattern) Stops() []gradient.ColorStop {
	out := make([]gradient.ColorStop, len(p.stops))
	copy(out, p.stops)
	return out
}

// Offset projects (x, y) onto the gradient line. The result is 0 at the
// start point, 1 at the end point and unbounded elsewhere.
func (p *LinearPattern) Offset(x, y float64) float64 {
	dx := p.x1 - p.x0
	dy := p.y1 - p.y0
	lengthSq := dx*dx + dy*dy
	if lengthSq == 0 {
		return 0
	}
	return ((x-p.x0)*dx + (y-p.y0)*dy) / lengthSq
}

// ColorAtPoint returns the color at (x, y).
func (p *LinearPattern) ColorAtPoint(x, y float64) color.RGBA {
	return p.ColorAt(p.Offset(x, y))
}

// ColorAt returns the color at offset t along the gradient line after
// applying the extend mode.
func (p *LinearPattern) ColorAt(t float64) color.RGBA {
	if len(p.stops) == 0 {
		return color.RGBA{}
	}
	t, ok := extendOffset(t, p.opts.Extend)
	if !ok {
		return color.RGBA{}
	}
	return p.lookup(t)
}

// lookup interpolates between the stops that bracket t. At a repeated
// offset the later stop wins.
func (p *LinearPattern) lookup(t float64) color.RGBA {
	first := p.stops[0]
	last := p.stops[len(p.stops)-1]
	if t <= first.Offset {
		return first.Color
	}
	if t >= last.Offset {
		return last.Color
	}

	for i := 0; i < len(p.stops)-1; i++ {
		before, after := p.stops[i], p.stops[i+1]
		if t >= after.Offset {
			continue
		}
		span := after.Offset - before.Offset
		if span <= 0 {
			return after.Color
		}
		return Blend(before.Color, after.Color, (t-before.Offset)/span, p.opts.Interpolation)
	}
	return last.Color
}

// extendOffset maps t into [0, 1] for the extend mode. It reports false
// when the position is left unpainted.
func extendOffset(t float64, extend PatternExtend) (float64, bool) {
	if math.IsNaN(t) {
		return 0, extend != PatternExtendNone
	}
	switch extend {
	case PatternExtendNone:
		if t < 0 || t > 1 {
			return 0, false
		}
		return t, true
	case PatternExtendRepeat:
		if math.IsInf(t, 0) {
			return 0, true
		}
		return t - math.Floor(t), true
	case PatternExtendReflect:
		if math.IsInf(t, 0) {
			return 0, true
		}
		m := math.Mod(math.Abs(t), 2)
		if m > 1 {
			m = 2 - m
		}
		return m, true
	default:
		return math.Max(0, math.Min(1, t)), true
	}
}
