// Package render provides the paint targets for angle gradients.
package render

import (
	"fmt"
	"image/color"
	"math"
)

// SurfaceOptions configures how a surface fills a gradient.
type SurfaceOptions struct {
	// Extend controls colors beyond the gradient endpoints.
	Extend PatternExtend
	// Interpolation selects the color space used between stops.
	Interpolation Interpolation
	// CornerRadius rounds the corners of the filled bounds. Zero fills a
	// plain rectangle.
	CornerRadius float64
	// AntiAlias smooths triangle edges on GPU surfaces.
	AntiAlias bool
}

// PatternOptions returns the pattern settings carried by o.
func (o SurfaceOptions) PatternOptions() PatternOptions {
	return PatternOptions{Extend: o.Extend, Interpolation: o.Interpolation}
}

// Validate checks if the options have valid values.
func (o SurfaceOptions) Validate() error {
	if math.IsNaN(o.CornerRadius) || o.CornerRadius < 0 {
		return fmt.Errorf("corner radius must be non-negative, got %v", o.CornerRadius)
	}
	return nil
}

// Config holds the preview window options.
type Config struct {
	// Width is the window width in pixels.
	Width int
	// Height is the window height in pixels.
	Height int
	// Title is the window title.
	Title string
	// BackgroundColor fills the window behind the gradient.
	BackgroundColor color.RGBA
	// Backdrop selects how BackgroundColor is drawn.
	Backdrop BackgroundMode
	// Surface configures the gradient fill.
	Surface SurfaceOptions
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Width:           256,
		Height:          256,
		Title:           "anglegradient",
		BackgroundColor: color.RGBA{},
	}
}

// Validate checks if the Config has valid values.
// Returns an error if Width or Height are not positive.
func (c Config) Validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("width must be positive, got %d", c.Width)
	}
	if c.Height <= 0 {
		return fmt.Errorf("height must be positive, got %d", c.Height)
	}
	return c.Surface.Validate()
}
