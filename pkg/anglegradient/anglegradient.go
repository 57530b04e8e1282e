package anglegradient

import (
	"image/color"

	"github.com/opd-ai/go-anglegradient/internal/gradient"
	"github.com/opd-ai/go-anglegradient/internal/render"
)

// Gradient model.
type (
	// GradientSpec describes an angle gradient: angle, stops and bounds.
	GradientSpec = gradient.GradientSpec
	// ColorStop is one (offset, color) pair along the gradient axis.
	ColorStop = gradient.ColorStop
	// Point is a 2D point in a Y-down coordinate system.
	Point = gradient.Point
	// Rect is an axis-aligned rectangle.
	Rect = gradient.Rect
	// LinearGradient is the concrete draw call handed to a Surface.
	LinearGradient = gradient.LinearGradient
	// Surface is a paint target for linear gradients.
	Surface = gradient.Surface
	// RenderableLayer is a visual layer that repaints when stale.
	RenderableLayer = gradient.RenderableLayer
	// AngleLayer owns a GradientSpec and repaints it on demand.
	AngleLayer = gradient.AngleLayer
	// Direction is one of the four axis-aligned presets.
	Direction = gradient.Direction
)

// Direction presets.
const (
	DirectionRight = gradient.DirectionRight
	DirectionDown  = gradient.DirectionDown
	DirectionLeft  = gradient.DirectionLeft
	DirectionUp    = gradient.DirectionUp
)

// Surfaces and fill options.
type (
	// SurfaceOptions configures extend mode, interpolation, rounded
	// corners and anti-aliasing.
	SurfaceOptions = render.SurfaceOptions
	// ImageSurface paints into an *image.RGBA.
	ImageSurface = render.ImageSurface
	// EbitenSurface paints into an *ebiten.Image.
	EbitenSurface = render.EbitenSurface
	// Recorder records draw calls instead of painting.
	Recorder = render.Recorder
	// PatternExtend controls colors beyond the gradient endpoints.
	PatternExtend = render.PatternExtend
	// Interpolation is the color space used between stops.
	Interpolation = render.Interpolation
)

// Extend modes and interpolation spaces.
const (
	ExtendPad     = render.PatternExtendPad
	ExtendNone    = render.PatternExtendNone
	ExtendRepeat  = render.PatternExtendRepeat
	ExtendReflect = render.PatternExtendReflect

	InterpolateRGB       = render.InterpolateRGB
	InterpolateLinearRGB = render.InterpolateLinearRGB
	InterpolateLab       = render.InterpolateLab
	InterpolateHCL       = render.InterpolateHCL
)

// ErrInvalidSpec is wrapped by errors from GradientSpec.Validate and by
// document loading errors.
var ErrInvalidSpec = gradient.ErrInvalidSpec

// NewSpec returns a spec for the given angle in degrees, bounds and stops.
func NewSpec(angleDegrees float64, bounds Rect, stops ...ColorStop) GradientSpec {
	return gradient.NewSpec(angleDegrees, bounds, stops...)
}

// SpecFromRadians is NewSpec with the angle in radians.
func SpecFromRadians(radians float64, bounds Rect, stops ...ColorStop) GradientSpec {
	return gradient.SpecFromRadians(radians, bounds, stops...)
}

// NewRect returns a rectangle.
func NewRect(x, y, width, height float64) Rect {
	return gradient.NewRect(x, y, width, height)
}

// ComputeEndpoints returns where the gradient axis of spec crosses the
// edges of its bounds.
func ComputeEndpoints(spec GradientSpec) (start, end Point) {
	return gradient.ComputeEndpoints(spec)
}

// Paint draws spec into surface and reports whether anything was drawn.
func Paint(spec GradientSpec, surface Surface) bool {
	return gradient.Paint(spec, surface)
}

// NormalizeAngle maps degrees into [0, 360). NaN and infinities give 0.
func NormalizeAngle(degrees float64) float64 {
	return gradient.NormalizeAngle(degrees)
}

// NewAngleLayer creates a layer holding spec.
func NewAngleLayer(spec GradientSpec) *AngleLayer {
	return gradient.NewAngleLayer(spec)
}

// ParseDirection parses a preset name or raw value.
func ParseDirection(s string) (Direction, bool) {
	return gradient.ParseDirection(s)
}

// ParseMaskDirection parses a preset name or a fade mask raw value.
func ParseMaskDirection(s string) (Direction, bool) {
	return gradient.ParseMaskDirection(s)
}

// DefaultColorStops returns the default 20% black to clear shade.
func DefaultColorStops() []ColorStop {
	return gradient.DefaultColorStops()
}

// MaskStops returns the stops of a fade mask covering the last length
// units of bounds along dir.
func MaskStops(dir Direction, length float64, bounds Rect) []ColorStop {
	return gradient.MaskStops(dir, length, bounds)
}

// NewImageSurface creates an image surface of the given size.
func NewImageSurface(width, height int, opts SurfaceOptions) *ImageSurface {
	return render.NewImageSurface(width, height, opts)
}

// NewRecorder creates an empty recording surface.
func NewRecorder() *Recorder {
	return render.NewRecorder()
}

// ParseColor parses a named, hex, rgb() or rgba() color string.
func ParseColor(s string) (color.RGBA, error) {
	return render.ParseColor(s)
}
