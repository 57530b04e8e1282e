// Package render provides the paint targets for angle gradients.
// This file implements the Ebiten preview window that displays a
// gradient layer and repaints it whenever the layer is invalidated.
package render

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/opd-ai/go-anglegradient/internal/gradient"
)

// ErrGameTerminated is returned when the game loop is terminated via context cancellation.
var ErrGameTerminated = errors.New("game terminated")

// redrawTracker is implemented by layers that can report pending changes,
// such as *gradient.AngleLayer.
type redrawTracker interface {
	NeedsRedraw() bool
}

// Game implements ebiten.Game and shows a single gradient layer.
// The layer is painted into an offscreen canvas, which is only cleared and
// repainted when the layer needs it.
type Game struct {
	config  Config
	layer   gradient.RenderableLayer
	canvas     *ebiten.Image
	surface    *EbitenSurface
	background BackgroundRenderer
	mu      sync.RWMutex
	running bool
	ctx     context.Context
}

// NewGame creates a new Game showing layer.
func NewGame(config Config, layer gradient.RenderableLayer) *Game {
	return &Game{
		config: config,
		layer:  layer,
	}
}

// SetContext sets a context for the game loop. When the context is cancelled,
// the game loop will terminate gracefully.
func (g *Game) SetContext(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ctx = ctx
}

// SetLayer replaces the displayed layer.
func (g *Game) SetLayer(layer gradient.RenderableLayer) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.layer = layer
	g.dropCanvasLocked()
}

// Layer returns the displayed layer.
func (g *Game) Layer() gradient.RenderableLayer {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.layer
}

// Update implements ebiten.Game.Update.
func (g *Game) Update() error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.ctx != nil {
		select {
		case <-g.ctx.Done():
			return ErrGameTerminated
		default:
		}
	}
	return nil
}

// Draw implements ebiten.Game.Draw.
func (g *Game) Draw(screen *ebiten.Image) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.background == nil {
		g.background = NewBackgroundRenderer(g.config.Backdrop, g.config.BackgroundColor)
	}
	g.background.Draw(screen)
	if g.layer == nil {
		return
	}

	if g.canvas == nil {
		g.canvas = ebiten.NewImage(g.config.Width, g.config.Height)
		g.surface = NewEbitenSurface(g.canvas, g.config.Surface)
		if l, ok := g.layer.(interface{ Invalidate() }); ok {
			l.Invalidate()
		}
	}

	if t, ok := g.layer.(redrawTracker); ok && t.NeedsRedraw() {
		g.canvas.Clear()
	}
	g.layer.RedrawIfNeeded(g.surface)
	screen.DrawImage(g.canvas, nil)
}

// Layout implements ebiten.Game.Layout.
// It returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.config.Width, g.config.Height
}

// Config returns the current configuration.
func (g *Game) Config() Config {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.config
}

// SetConfig updates the configuration in-place. The canvas is recreated on
// the next frame so size and surface changes take effect.
func (g *Game) SetConfig(config Config) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.config = config
	g.dropCanvasLocked()
}

func (g *Game) dropCanvasLocked() {
	if g.canvas != nil {
		g.canvas.Deallocate()
	}
	g.canvas = nil
	g.surface = nil
	g.background = nil
}

// Run starts the Ebiten game loop.
// This function blocks until the window is closed.
func (g *Game) Run() error {
	g.mu.Lock()
	cfg := g.config
	if err := cfg.Validate(); err != nil {
		g.mu.Unlock()
		return fmt.Errorf("invalid window config: %w", err)
	}
	g.running = true
	g.mu.Unlock()

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err := ebiten.RunGame(g)

	g.mu.Lock()
	g.running = false
	g.mu.Unlock()

	if errors.Is(err, ErrGameTerminated) {
		return nil
	}
	return err
}

// IsRunning returns whether the game loop is currently running.
func (g *Game) IsRunning() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.running
}
