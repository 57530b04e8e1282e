//go:build !noebiten

package anglegradient

import (
	"context"

	"github.com/opd-ai/go-anglegradient/internal/render"
)

// RunWindow opens a preview window showing the renderer's layer and blocks
// until the window is closed or ctx is cancelled. Combine it with Watch to
// see document edits live.
func (r *Renderer) RunWindow(ctx context.Context) error {
	r.mu.Lock()
	game := render.NewGame(windowConfig(r.cfg, r.configSource), r.layer)
	game.SetContext(ctx)
	r.game = game
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.game = nil
		r.mu.Unlock()
	}()

	r.opts.Logger.Info("opening preview window", "source", r.configSource)
	return game.Run()
}
