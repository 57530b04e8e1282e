// Package render provides the paint targets for angle gradients.
// This file implements the GPU surface that draws gradients as
// vertex-colored triangle meshes on an Ebiten image.
package render

import (
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/opd-ai/go-anglegradient/internal/gradient"
)

// emptySubImage is a 1x1 white source for DrawTriangles; vertex colors
// supply the actual fill.
var emptySubImage = func() *ebiten.Image {
	img := ebiten.NewImage(1, 1)
	img.Fill(color.White)
	return img
}()

// EbitenSurface is a gradient.Surface that draws onto an *ebiten.Image.
// It is safe for concurrent use, but Ebiten itself only allows drawing
// from the game loop once it is running.
type EbitenSurface struct {
	target   *ebiten.Image
	opts     SurfaceOptions
	vertices []ebiten.Vertex
	mu       sync.Mutex
}

// NewEbitenSurface creates a surface drawing onto target.
func NewEbitenSurface(target *ebiten.Image, opts SurfaceOptions) *EbitenSurface {
	return &EbitenSurface{target: target, opts: opts}
}

// SetTarget changes the image subsequent gradients are drawn onto.
func (s *EbitenSurface) SetTarget(target *ebiten.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target = target
}

// Target returns the current target image.
func (s *EbitenSurface) Target() *ebiten.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target
}

// SetOptions replaces the surface options for subsequent draws.
func (s *EbitenSurface) SetOptions(opts SurfaceOptions) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts = opts
}

// DrawLinearGradient implements gradient.Surface.
func (s *EbitenSurface) DrawLinearGradient(g gradient.LinearGradient) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.target == nil {
		return
	}
	mesh, indices := GradientMesh(g, s.opts.PatternOptions())
	if len(indices) == 0 {
		return
	}

	s.vertices = s.vertices[:0]
	for _, v := range mesh {
		s.vertices = append(s.vertices, ebiten.Vertex{
			DstX:   v.X,
			DstY:   v.Y,
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: float32(v.Color.R) / 255,
			ColorG: float32(v.Color.G) / 255,
			ColorB: float32(v.Color.B) / 255,
			ColorA: float32(v.Color.A) / 255,
		})
	}

	s.target.DrawTriangles(s.vertices, indices, emptySubImage, &ebiten.DrawTrianglesOptions{
		AntiAlias:      s.opts.AntiAlias,
		ColorScaleMode: ebiten.ColorScaleModeStraightAlpha,
	})
}
