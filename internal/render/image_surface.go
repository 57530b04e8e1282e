// Package render provides the paint targets for angle gradients.
// This file implements the CPU surface that rasterizes gradients into an
// in-memory image.
package render

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/opd-ai/go-anglegradient/internal/gradient"
)

// kappa is the cubic Bézier control distance for a quarter circle.
const kappa = 0.5522847498307936

// ImageSurface is a gradient.Surface backed by an *image.RGBA.
// Gradients are composited over the existing pixels. It is safe for
// concurrent use.
type ImageSurface struct {
	img  *image.RGBA
	opts SurfaceOptions
	mu   sync.Mutex
}

// NewImageSurface allocates a transparent width x height surface.
func NewImageSurface(width, height int, opts SurfaceOptions) *ImageSurface {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return NewImageSurfaceFor(image.NewRGBA(image.Rect(0, 0, width, height)), opts)
}

// NewImageSurfaceFor draws into an existing image.
func NewImageSurfaceFor(img *image.RGBA, opts SurfaceOptions) *ImageSurface {
	return &ImageSurface{img: img, opts: opts}
}

// Image returns the backing image. Callers must not draw into it while a
// gradient is being painted.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

// Options returns the surface options.
func (s *ImageSurface) Options() SurfaceOptions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opts
}

// SetOptions replaces the surface options for subsequent draws.
func (s *ImageSurface) SetOptions(opts SurfaceOptions) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts = opts
}

// Clear replaces every pixel with c, a straight-alpha color.
func (s *ImageSurface) Clear(c color.RGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()
	xdraw.Draw(s.img, s.img.Bounds(), image.NewUniform(Straight(c)), image.Point{}, xdraw.Src)
}

// DrawLinearGradient implements gradient.Surface. The bounds shape is
// rasterized with anti-aliased edges and each covered pixel takes the
// pattern color at its center.
func (s *ImageSurface) DrawLinearGradient(g gradient.LinearGradient) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if g.Bounds.IsEmpty() || len(g.Stops) == 0 {
		return
	}
	dst := s.img.Bounds()
	if dst.Empty() {
		return
	}

	z := vector.NewRasterizer(dst.Dx(), dst.Dy())
	z.DrawOp = xdraw.Over
	ox, oy := float32(dst.Min.X), float32(dst.Min.Y)
	appendShape(z, g.Bounds, s.opts.CornerRadius, ox, oy)

	src := &patternImage{
		pattern: NewLinearPattern(g, s.opts.PatternOptions()),
		bounds:  dst,
	}
	z.Draw(s.img, dst, src, dst.Min)
}

// WritePNG encodes the surface as PNG.
func (s *ImageSurface) WritePNG(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return png.Encode(w, s.img)
}

// SavePNG writes the surface to a PNG file at path.
func (s *ImageSurface) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	bw := bufio.NewWriter(f)
	if err := s.WritePNG(bw); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// appendShape adds the bounds outline to z, relative to (ox, oy).
// A positive radius is clamped to half the shorter side.
func appendShape(z *vector.Rasterizer, r gradient.Rect, radius float64, ox, oy float32) {
	x0 := float32(r.X) - ox
	y0 := float32(r.Y) - oy
	x1 := float32(r.MaxX()) - ox
	y1 := float32(r.MaxY()) - oy

	rad := float32(math.Min(radius, math.Min(r.Width, r.Height)/2))
	if !(rad > 0) {
		z.MoveTo(x0, y0)
		z.LineTo(x1, y0)
		z.LineTo(x1, y1)
		z.LineTo(x0, y1)
		z.ClosePath()
		return
	}

	k := rad * kappa
	z.MoveTo(x0+rad, y0)
	z.LineTo(x1-rad, y0)
	z.CubeTo(x1-rad+k, y0, x1, y0+rad-k, x1, y0+rad)
	z.LineTo(x1, y1-rad)
	z.CubeTo(x1, y1-rad+k, x1-rad+k, y1, x1-rad, y1)
	z.LineTo(x0+rad, y1)
	z.CubeTo(x0+rad-k, y1, x0, y1-rad+k, x0, y1-rad)
	z.LineTo(x0, y0+rad)
	z.CubeTo(x0, y0+rad-k, x0+rad-k, y0, x0+rad, y0)
	z.ClosePath()
}

// patternImage exposes a LinearPattern as an image source. Colors are
// sampled at pixel centers.
type patternImage struct {
	pattern *LinearPattern
	bounds  image.Rectangle
}

func (p *patternImage) ColorModel() color.Model { return color.NRGBAModel }

func (p *patternImage) Bounds() image.Rectangle { return p.bounds }

func (p *patternImage) At(x, y int) color.Color {
	c := p.pattern.ColorAtPoint(float64(x)+0.5, float64(y)+0.5)
	return Straight(c)
}
