package gradient

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Direction is one of the four axis-aligned gradient presets.
type Direction int

const (
	// DirectionRight runs left to right (0°).
	DirectionRight Direction = iota
	// DirectionDown runs top to bottom (90°).
	DirectionDown
	// DirectionLeft runs right to left (180°).
	DirectionLeft
	// DirectionUp runs bottom to top (270°).
	DirectionUp
)

// Angle returns the preset's angle in degrees.
func (d Direction) Angle() float64 {
	switch d {
	case DirectionRight:
		return 0
	case DirectionDown:
		return 90
	case DirectionLeft:
		return 180
	case DirectionUp:
		return 270
	default:
		return 90
	}
}

// IsVertical reports whether the preset runs along the Y axis.
func (d Direction) IsVertical() bool {
	return d == DirectionDown || d == DirectionUp
}

// String returns the preset name.
func (d Direction) String() string {
	switch d {
	case DirectionRight:
		return "right"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionUp:
		return "up"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection parses a preset name. Accepted names are "right", "down",
// "left", "up" and the edge-pair forms "left-to-right", "top-to-bottom",
// "right-to-left", "bottom-to-top". Integer strings use the numbering of
// the inspector-exposed raw values (0 up, 1 down, 2 left, 3 right).
// Anything else falls back to DirectionDown with ok set to false.
func ParseDirection(s string) (d Direction, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "right", "left-to-right", "lefttoright":
		return DirectionRight, true
	case "down", "top-to-bottom", "toptobottom":
		return DirectionDown, true
	case "left", "right-to-left", "righttoleft":
		return DirectionLeft, true
	case "up", "bottom-to-top", "bottomtotop":
		return DirectionUp, true
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return DirectionFromRaw(n)
	}
	return DirectionDown, false
}

// ParseMaskDirection is ParseDirection for fade masks. Names parse the
// same way; integer strings use the mask numbering (0 top-to-bottom,
// 1 bottom-to-top, 2 left-to-right, 3 right-to-left).
func ParseMaskDirection(s string) (d Direction, ok bool) {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return MaskDirectionFromRaw(n)
	}
	return ParseDirection(s)
}

// DirectionFromRaw maps an inspector raw value (0 up, 1 down, 2 left,
// 3 right) to a Direction. Out-of-range values give DirectionDown.
func DirectionFromRaw(raw int) (d Direction, ok bool) {
	switch raw {
	case 0:
		return DirectionUp, true
	case 1:
		return DirectionDown, true
	case 2:
		return DirectionLeft, true
	case 3:
		return DirectionRight, true
	default:
		return DirectionDown, false
	}
}

// MaskDirectionFromRaw maps a fade mask raw value (0 top-to-bottom,
// 1 bottom-to-top, 2 left-to-right, 3 right-to-left) to a Direction.
// Out-of-range values give DirectionDown.
func MaskDirectionFromRaw(raw int) (d Direction, ok bool) {
	switch raw {
	case 0:
		return DirectionDown, true
	case 1:
		return DirectionUp, true
	case 2:
		return DirectionRight, true
	case 3:
		return DirectionLeft, true
	default:
		return DirectionDown, false
	}
}

// DefaultColorStops returns the default shade: black at 20% opacity
// fading to fully transparent.
func DefaultColorStops() []ColorStop {
	return []ColorStop{
		{Offset: 0, Color: color.RGBA{A: uint8(math.Round(0.2 * 255))}},
		{Offset: 1, Color: color.RGBA{}},
	}
}

// DefaultSpec returns a top-to-bottom shade over bounds.
func DefaultSpec(bounds Rect) GradientSpec {
	return NewSpec(DirectionDown.Angle(), bounds, DefaultColorStops()...)
}

// MaskStops returns the stops of a fade-out mask: opaque black until the
// fade begins, then transparent at the far edge. The fade covers the last
// length units of the bounds along dir. A negative length counts as zero,
// so the mask stays opaque up to the far edge.
func MaskStops(dir Direction, length float64, bounds Rect) []ColorStop {
	return []ColorStop{
		{Offset: MaskStartLocation(dir, length, bounds), Color: color.RGBA{A: 255}},
		{Offset: 1, Color: color.RGBA{}},
	}
}

// MaskStartLocation returns the offset at which a fade of the given length
// starts: 1 - clamp(length/extent, 0, 1). Negative and NaN lengths give 1.
func MaskStartLocation(dir Direction, length float64, bounds Rect) float64 {
	if length < 0 || math.IsNaN(length) {
		return 1
	}
	extent := bounds.Width
	if dir.IsVertical() {
		extent = bounds.Height
	}
	if extent <= 0 {
		return 0
	}
	return 1 - math.Min(math.Max(length/extent, 0), 1)
}
