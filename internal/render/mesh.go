package render

import (
	"image/color"
	"math"
	"sort"

	"github.com/opd-ai/go-anglegradient/internal/gradient"
)

const (
	// maxMeshPeriods bounds the repeat/reflect tiles tessellated per draw.
	maxMeshPeriods = 256
	// maxMeshVertices keeps indices within uint16.
	maxMeshVertices = math.MaxUint16
	// perceptualSubdivisions splits each band when the interpolation is
	// not linear in sRGB, so vertex-color blending stays close.
	perceptualSubdivisions = 8
)

// MeshVertex is a colored vertex of a gradient mesh.
type MeshVertex struct {
	X, Y  float32
	Color color.RGBA
}

// GradientMesh tessellates g into triangles whose vertex colors, blended
// linearly by the GPU, reproduce the gradient. The bounds rectangle is cut
// into bands perpendicular to the gradient line at every stop offset; each
// band is a convex polygon triangulated as a fan.
func GradientMesh(g gradient.LinearGradient, opts PatternOptions) ([]MeshVertex, []uint16) {
	if g.Bounds.IsEmpty() || len(g.Stops) == 0 {
		return nil, nil
	}
	pattern := NewLinearPattern(g, opts)

	rect := []gradient.Point{
		{X: g.Bounds.X, Y: g.Bounds.Y},
		{X: g.Bounds.MaxX(), Y: g.Bounds.Y},
		{X: g.Bounds.MaxX(), Y: g.Bounds.MaxY()},
		{X: g.Bounds.X, Y: g.Bounds.MaxY()},
	}
	offset := func(p gradient.Point) float64 { return pattern.Offset(p.X, p.Y) }

	tMin, tMax := math.Inf(1), math.Inf(-1)
	for _, p := range rect {
		t := offset(p)
		tMin = math.Min(tMin, t)
		tMax = math.Max(tMax, t)
	}

	subdivide := 1
	if !opts.Interpolation.IsLinearInRGB() {
		subdivide = perceptualSubdivisions
	}

	var vertices []MeshVertex
	var indices []uint16
	breaks := bandBreaks(pattern.stops, opts.Extend, tMin, tMax)
	for i := 0; i+1 < len(breaks); i++ {
		a, b := breaks[i], breaks[i+1]
		if b-a <= 1e-12 {
			continue
		}
		if opts.Extend == PatternExtendNone && ((a+b)/2 < 0 || (a+b)/2 > 1) {
			continue
		}
		step := (b - a) / float64(subdivide)
		for j := 0; j < subdivide; j++ {
			ta := a + float64(j)*step
			tb := ta + step
			if j == subdivide-1 {
				tb = b
			}
			poly := clipBand(rect, offset, ta, tb)
			if len(poly) < 3 || len(vertices)+len(poly) > maxMeshVertices {
				continue
			}

			// Sample just inside the band so hard edges pick the right side.
			eps := (tb - ta) * 1e-6
			ca := pattern.ColorAt(ta + eps)
			cb := pattern.ColorAt(tb - eps)

			base := uint16(len(vertices))
			for _, p := range poly {
				ratio := (offset(p) - ta) / (tb - ta)
				vertices = append(vertices, MeshVertex{
					X:     float32(p.X),
					Y:     float32(p.Y),
					Color: lerpRGBA(ca, cb, ratio),
				})
			}
			for k := 1; k+1 < len(poly); k++ {
				indices = append(indices, base, base+uint16(k), base+uint16(k+1))
			}
		}
	}
	return vertices, indices
}

// bandBreaks returns the sorted offsets in [tMin, tMax] at which the
// pattern's piecewise-linear color function changes slope.
func bandBreaks(stops []gradient.ColorStop, extend PatternExtend, tMin, tMax float64) []float64 {
	breaks := []float64{tMin, tMax}
	add := func(t float64) {
		if t > tMin && t < tMax {
			breaks = append(breaks, t)
		}
	}

	switch extend {
	case PatternExtendRepeat, PatternExtendReflect:
		first := math.Floor(tMin)
		last := math.Ceil(tMax)
		if last-first > maxMeshPeriods {
			last = first + maxMeshPeriods
		}
		for k := first; k <= last; k++ {
			add(k)
			mirrored := extend == PatternExtendReflect && math.Mod(math.Abs(k), 2) == 1
			for _, s := range stops {
				if mirrored {
					add(k + 1 - s.Offset)
				} else {
					add(k + s.Offset)
				}
			}
		}
	default:
		add(0)
		add(1)
		for _, s := range stops {
			add(s.Offset)
		}
	}

	sort.Float64s(breaks)
	return breaks
}

// clipBand clips the convex polygon to ta <= offset(p) <= tb.
func clipBand(poly []gradient.Point, offset func(gradient.Point) float64, ta, tb float64) []gradient.Point {
	poly = clipHalfPlane(poly, func(p gradient.Point) float64 { return offset(p) - ta })
	return clipHalfPlane(poly, func(p gradient.Point) float64 { return tb - offset(p) })
}

// clipHalfPlane keeps the part of poly where f >= 0 (Sutherland-Hodgman).
func clipHalfPlane(poly []gradient.Point, f func(gradient.Point) float64) []gradient.Point {
	if len(poly) == 0 {
		return nil
	}
	out := make([]gradient.Point, 0, len(poly)+2)
	for i, cur := range poly {
		next := poly[(i+1)%len(poly)]
		fc, fn := f(cur), f(next)
		if fc >= 0 {
			out = append(out, cur)
		}
		if (fc >= 0) != (fn >= 0) {
			out = append(out, cur.Add(next.Sub(cur).Mul(fc/(fc-fn))))
		}
	}
	return out
}

func lerpRGBA(a, b color.RGBA, ratio float64) color.RGBA {
	ratio = math.Max(0, math.Min(1, ratio))
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + ratio*(float64(y)-float64(x))))
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
