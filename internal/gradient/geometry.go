package gradient

import "math"

// axisEpsilon snaps direction components produced by floating-point
// rounding (cos 90° = 6e-17) to exact zero.
const axisEpsilon = 1e-12

// Point is a position in the coordinate space of the bounds being painted.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul scales p by s.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Length returns the Euclidean length of p.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Rect is an axis-aligned rectangle given by its origin and size.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// NewRect returns the rectangle with origin (x, y) and the given size.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Origin returns the top-left corner of r.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Center returns the center of r.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// MaxX returns the right edge of r.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MaxY returns the bottom edge of r.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// IsEmpty reports whether r has no area.
func (r Rect) IsEmpty() bool {
	return !(r.Width > 0) || !(r.Height > 0)
}

// Contains reports whether p lies inside r or on its boundary.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.MaxX() && p.Y >= r.Y && p.Y <= r.MaxY()
}

// NormalizeAngle maps degrees into [0, 360).
// NaN and infinite values are treated as 0.
func NormalizeAngle(degrees float64) float64 {
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return 0
	}
	a := math.Mod(degrees, 360)
	if a < 0 {
		a += 360
	}
	// -1e-20 + 360 rounds to 360.
	if a >= 360 {
		a = 0
	}
	return a
}

// DegreesFromRadians converts an angle in radians to degrees.
func DegreesFromRadians(radians float64) float64 {
	return radians * 180 / math.Pi
}

// directionVector returns the unit vector of the gradient axis for an angle
// in degrees. 0° points along +X, 90° along +Y (downwards).
func directionVector(degrees float64) Point {
	rad := NormalizeAngle(degrees) * math.Pi / 180
	d := Point{X: math.Cos(rad), Y: math.Sin(rad)}
	if math.Abs(d.X) < axisEpsilon {
		d.X = 0
	}
	if math.Abs(d.Y) < axisEpsilon {
		d.Y = 0
	}
	return d
}

// ComputeEndpoints returns the start (offset 0) and end (offset 1) points of
// the gradient axis described by spec.
//
// Both points lie on the perimeter of spec.Bounds on the line through its
// center at the spec's angle, so their midpoint is the center. Bounds with
// zero width or height yield start == end == the bounds origin; callers
// treat that as nothing to paint.
func ComputeEndpoints(spec GradientSpec) (start, end Point) {
	b := spec.Bounds
	if b.IsEmpty() {
		o := b.Origin()
		return o, o
	}

	d := directionVector(spec.AngleDegrees)
	c := b.Center()
	halfW, halfH := b.Width/2, b.Height/2

	tx, ty := math.Inf(1), math.Inf(1)
	if d.X != 0 {
		tx = halfW / math.Abs(d.X)
	}
	if d.Y != 0 {
		ty = halfH / math.Abs(d.Y)
	}

	if tx <= ty {
		// The axis leaves through the left and right edges.
		t := tx
		start = Point{X: b.X, Y: c.Y - t*d.Y}
		end = Point{X: b.MaxX(), Y: c.Y + t*d.Y}
		if d.X < 0 {
			start.X, end.X = end.X, start.X
		}
	} else {
		t := ty
		start = Point{X: c.X - t*d.X, Y: b.Y}
		end = Point{X: c.X + t*d.X, Y: b.MaxY()}
		if d.Y < 0 {
			start.Y, end.Y = end.Y, start.Y
		}
	}

	return clampToRect(start, b), clampToRect(end, b)
}

// clampToRect pulls p onto r, absorbing rounding error from the projection.
func clampToRect(p Point, r Rect) Point {
	return Point{
		X: math.Min(math.Max(p.X, r.X), r.MaxX()),
		Y: math.Min(math.Max(p.Y, r.Y), r.MaxY()),
	}
}
