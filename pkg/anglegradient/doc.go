// Package anglegradient provides the public API for painting linear
// gradients whose axis is given by an angle instead of explicit endpoints.
//
// # Basic Usage
//
// Compute the endpoints of a gradient and paint it into any [Surface]:
//
//	spec := anglegradient.NewSpec(45, anglegradient.NewRect(0, 0, 320, 160),
//		anglegradient.ColorStop{Offset: 0, Color: red},
//		anglegradient.ColorStop{Offset: 1, Color: blue},
//	)
//	surface := anglegradient.NewImageSurface(320, 160, anglegradient.SurfaceOptions{})
//	anglegradient.Paint(spec, surface)
//
// Angles are in degrees. 0 runs left to right and angles increase
// clockwise, so 90 runs top to bottom.
//
// # Layers
//
// [AngleLayer] owns a spec and repaints it only after it changes:
//
//	layer := anglegradient.NewAngleLayer(spec)
//	layer.SetAngle(90)
//	layer.RedrawIfNeeded(surface) // paints
//	layer.RedrawIfNeeded(surface) // no-op
//
// # Configuration Files
//
// [Renderer] loads a gradient document written in Lua or YAML and renders
// it to PNG:
//
//	r, err := anglegradient.New("sunset.yaml", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer r.Stop()
//	if err := r.Render(); err != nil {
//		log.Fatal(err)
//	}
//
// [Renderer.Watch] re-renders whenever the document changes on disk.
// Runtime errors while watching are reported through [ErrorHandler]:
//
//	r.SetErrorHandler(func(err error) {
//		log.Printf("gradient error: %v", err)
//	})
//
// The handler is called asynchronously; do not block in the handler.
//
// [Options.Script] runs a Lua script after the document is painted. The
// script draws into the same image through the angle_gradient_* functions.
// [Renderer.RunWindow] shows the layer in a preview window that follows
// reloads.
package anglegradient
