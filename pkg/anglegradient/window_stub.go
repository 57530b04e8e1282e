//go:build noebiten

package anglegradient

import "context"

// RunWindow is unavailable in builds tagged noebiten.
func (r *Renderer) RunWindow(ctx context.Context) error {
	return ErrWindowUnavailable
}
