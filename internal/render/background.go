// Package render provides the paint targets for angle gradients.
// This file implements the preview window backdrops drawn behind the
// gradient canvas.
package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// BackgroundMode specifies how the window background is rendered.
type BackgroundMode int

const (
	// BackgroundModeSolid draws a solid background color.
	BackgroundModeSolid BackgroundMode = iota
	// BackgroundModeNone draws no background (fully transparent).
	BackgroundModeNone
	// BackgroundModeChecker draws a checkerboard under the background
	// color so translucent gradients stay visible.
	BackgroundModeChecker
)

// DefaultCheckerSize is the checkerboard cell size in pixels.
const DefaultCheckerSize = 8

var (
	checkerLight = color.RGBA{R: 204, G: 204, B: 204, A: 255}
	checkerDark  = color.RGBA{R: 153, G: 153, B: 153, A: 255}
)

// BackgroundRenderer draws the backdrop of the preview window.
type BackgroundRenderer interface {
	// Draw renders the background to the screen.
	Draw(screen *ebiten.Image)
	// Mode returns the background mode.
	Mode() BackgroundMode
}

// SolidBackground renders a solid color background.
type SolidBackground struct {
	color color.RGBA
}

// NewSolidBackground creates a new solid background renderer.
func NewSolidBackground(c color.RGBA) *SolidBackground {
	return &SolidBackground{color: c}
}

// Draw replaces every screen pixel with the background color.
func (sb *SolidBackground) Draw(screen *ebiten.Image) {
	screen.Fill(Straight(sb.color))
}

// Mode returns BackgroundModeSolid.
func (sb *SolidBackground) Mode() BackgroundMode {
	return BackgroundModeSolid
}

// Color returns the background color.
func (sb *SolidBackground) Color() color.RGBA {
	return sb.color
}

// NoneBackground renders no background (fully transparent).
type NoneBackground struct{}

// NewNoneBackground creates a new none/transparent background renderer.
func NewNoneBackground() *NoneBackground {
	return &NoneBackground{}
}

// Draw clears the screen with fully transparent color.
func (nb *NoneBackground) Draw(screen *ebiten.Image) {
	screen.Clear()
}

// Mode returns BackgroundModeNone.
func (nb *NoneBackground) Mode() BackgroundMode {
	return BackgroundModeNone
}

// CheckerBackground renders a checkerboard with the background color
// composited over it.
type CheckerBackground struct {
	color color.RGBA
	size  int
	tint  *ebiten.Image
}

// NewCheckerBackground creates a checkerboard renderer. A size below 1
// uses DefaultCheckerSize.
func NewCheckerBackground(c color.RGBA, size int) *CheckerBackground {
	if size < 1 {
		size = DefaultCheckerSize
	}
	return &CheckerBackground{color: c, size: size}
}

// Draw paints the checkerboard and blends the background color over it.
func (cb *CheckerBackground) Draw(screen *ebiten.Image) {
	screen.Fill(checkerLight)
	for _, cell := range checkerCells(screen.Bounds(), cb.size) {
		screen.SubImage(cell).(*ebiten.Image).Fill(checkerDark)
	}

	if cb.color.A == 0 {
		return
	}
	if cb.tint == nil {
		cb.tint = ebiten.NewImage(1, 1)
		cb.tint.Fill(Straight(cb.color))
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy()))
	screen.DrawImage(cb.tint, op)
}

// Mode returns BackgroundModeChecker.
func (cb *CheckerBackground) Mode() BackgroundMode {
	return BackgroundModeChecker
}

// Size returns the cell size in pixels.
func (cb *CheckerBackground) Size() int {
	return cb.size
}

// checkerCells returns the dark cells of a checkerboard covering bounds.
func checkerCells(bounds image.Rectangle, size int) []image.Rectangle {
	var cells []image.Rectangle
	for y := bounds.Min.Y; y < bounds.Max.Y; y += size {
		for x := bounds.Min.X; x < bounds.Max.X; x += size {
			if ((x-bounds.Min.X)/size+(y-bounds.Min.Y)/size)%2 == 0 {
				continue
			}
			cells = append(cells, image.Rect(x, y, x+size, y+size).Intersect(bounds))
		}
	}
	return cells
}

// NewBackgroundRenderer creates a BackgroundRenderer based on the mode and color.
// For BackgroundModeNone, the color is ignored.
func NewBackgroundRenderer(mode BackgroundMode, bgColor color.RGBA) BackgroundRenderer {
	switch mode {
	case BackgroundModeNone:
		return NewNoneBackground()
	case BackgroundModeChecker:
		return NewCheckerBackground(bgColor, DefaultCheckerSize)
	default:
		return NewSolidBackground(bgColor)
	}
}

// BackgroundModeFor picks a checkerboard for translucent colors and a
// solid fill otherwise.
func BackgroundModeFor(c color.RGBA) BackgroundMode {
	if c.A < 255 {
		return BackgroundModeChecker
	}
	return BackgroundModeSolid
}
