// Package config provides configuration parsing for angle gradient documents.
// A document describes one gradient in either Lua (a global "gradient"
// table) or YAML (a top-level "gradient" mapping) and resolves into a
// gradient spec plus the surface and output settings used to render it.
package config

import (
	"fmt"
	"image/color"
	"math"

	"github.com/opd-ai/go-anglegradient/internal/gradient"
	"github.com/opd-ai/go-anglegradient/internal/render"
)

// Document is the raw, format-independent content of a gradient document.
// Strings are kept unparsed so that environment expansion and validation
// can report on the values as written.
type Document struct {
	// Angle is the gradient angle in degrees. 0 runs left to right and
	// angles increase clockwise.
	Angle float64 `yaml:"angle"`
	// Direction is an optional preset ("up", "down", "left", "right",
	// "top-to-bottom", or a raw 0-3 value). It overrides Angle when set.
	Direction string `yaml:"direction,omitempty"`
	// X and Y position the gradient bounds in the output image.
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	// Width and Height size the gradient bounds.
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	// CornerRadius rounds the corners of the filled bounds.
	CornerRadius float64 `yaml:"corner_radius"`
	// Interpolation is the color space used between stops.
	Interpolation string `yaml:"interpolation"`
	// Extend controls colors beyond the gradient endpoints.
	Extend string `yaml:"extend"`
	// Background fills the output image before painting.
	Background string `yaml:"background,omitempty"`
	// Output is the PNG path rendered to.
	Output string `yaml:"output"`
	// MaskLength, when set, replaces Stops with an opaque-to-clear fade
	// covering the last MaskLength pixels along the direction.
	MaskLength *float64 `yaml:"mask_length,omitempty"`
	// Stops are the color stops in offset order.
	Stops []StopDocument `yaml:"stops"`
}

// StopDocument is a single color stop as written in a document.
type StopDocument struct {
	Offset float64 `yaml:"offset"`
	Color  string  `yaml:"color"`
}

// Config is a resolved gradient document, ready to render.
type Config struct {
	// Spec is the gradient to paint.
	Spec gradient.GradientSpec
	// Direction is the preset the angle came from, if any.
	Direction gradient.Direction
	// HasDirection reports whether the document used a direction preset.
	HasDirection bool
	// Surface configures how the gradient is filled.
	Surface render.SurfaceOptions
	// Background fills the output image before painting.
	Background color.RGBA
	// Output is the PNG path rendered to.
	Output string
}

// ImageSize returns the smallest image size that contains the bounds.
func (c *Config) ImageSize() (width, height int) {
	b := c.Spec.Bounds
	width = int(math.Ceil(math.Max(0, b.MaxX())))
	height = int(math.Ceil(math.Max(0, b.MaxY())))
	return width, height
}

// Resolve validates doc and converts it into a Config.
func Resolve(doc Document) (*Config, error) {
	if err := ValidateDocument(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", gradient.ErrInvalidSpec, err)
	}

	cfg := &Config{Output: doc.Output}
	angle := doc.Angle
	if doc.Direction != "" {
		dir, _ := parseDocumentDirection(&doc)
		cfg.Direction = dir
		cfg.HasDirection = true
		angle = dir.Angle()
	} else {
		cfg.Direction = gradient.DirectionDown
	}

	bounds := gradient.NewRect(doc.X, doc.Y, doc.Width, doc.Height)

	var stops []gradient.ColorStop
	switch {
	case doc.MaskLength != nil:
		stops = gradient.MaskStops(cfg.Direction, *doc.MaskLength, bounds)
		if !cfg.HasDirection {
			angle = cfg.Direction.Angle()
		}
	case len(doc.Stops) == 0:
		stops = gradient.DefaultColorStops()
	default:
		stops = make([]gradient.ColorStop, 0, len(doc.Stops))
		for _, s := range doc.Stops {
			c, err := render.ParseColor(s.Color)
			if err != nil {
				return nil, fmt.Errorf("stop at %v: %w", s.Offset, err)
			}
			stops = append(stops, gradient.ColorStop{Offset: s.Offset, Color: c})
		}
	}
	cfg.Spec = gradient.NewSpec(angle, bounds, stops...)

	var err error
	if cfg.Surface.Extend, err = render.ParseExtend(doc.Extend); err != nil {
		return nil, err
	}
	if cfg.Surface.Interpolation, err = render.ParseInterpolation(doc.Interpolation); err != nil {
		return nil, err
	}
	cfg.Surface.CornerRadius = doc.CornerRadius
	cfg.Surface.AntiAlias = true

	if doc.Background != "" {
		if cfg.Background, err = render.ParseColor(doc.Background); err != nil {
			return nil, fmt.Errorf("invalid background: %w", err)
		}
	}
	return cfg, nil
}

// parseDocumentDirection reads raw integer directions with the mask
// numbering when the document describes a fade mask.
func parseDocumentDirection(doc *Document) (gradient.Direction, bool) {
	if doc.MaskLength != nil {
		return gradient.ParseMaskDirection(doc.Direction)
	}
	return gradient.ParseDirection(doc.Direction)
}
