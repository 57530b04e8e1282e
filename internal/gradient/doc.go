// Package gradient implements angle-driven linear gradients.
//
// A gradient is described by a [GradientSpec]: an angle in degrees, an
// ordered list of color stops and the rectangle to paint. [ComputeEndpoints]
// turns the angle into the start and end points of a two-point linear
// gradient and [Paint] hands that gradient to a [Surface].
//
// # Orientation
//
// 0° runs left to right. Angles grow clockwise in a coordinate system whose
// Y axis points down, so 90° runs top to bottom, 180° right to left and
// 270° bottom to top. This convention is fixed; consumers depend on it.
//
// The endpoints lie on the edges of the bounds, on the line through the
// center of the bounds in the direction of the angle. Offset 0 of the color
// stops maps to the start point and offset 1 to the end point.
//
// Owning layers implement [RenderableLayer]; [AngleLayer] is the default
// implementation that keeps the current spec and repaints when it changes.
package gradient
