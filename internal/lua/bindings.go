// This file implements the angle_gradient_* functions that let Lua
// scripts build gradients and paint them into the active surface.
package lua

import (
	"fmt"
	"math"
	"sort"
	"sync"

	rt "github.com/arnodel/golua/runtime"

	"github.com/opd-ai/go-anglegradient/internal/gradient"
	"github.com/opd-ai/go-anglegradient/internal/render"
)

// ScriptGradient is the userdata behind a Lua gradient handle.
// Every change replaces the held spec instead of mutating it.
type ScriptGradient struct {
	spec gradient.GradientSpec
	mu   sync.Mutex
}

// Spec returns a copy of the gradient's current spec.
func (g *ScriptGradient) Spec() gradient.GradientSpec {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.spec.WithColorStops(g.spec.ColorStops)
}

// addStop inserts a stop after any stops with the same or a lower offset.
func (g *ScriptGradient) addStop(stop gradient.ColorStop) {
	g.mu.Lock()
	defer g.mu.Unlock()

	stops := g.spec.ColorStops
	i := sort.Search(len(stops), func(i int) bool { return stops[i].Offset > stop.Offset })
	next := make([]gradient.ColorStop, 0, len(stops)+1)
	next = append(next, stops[:i]...)
	next = append(next, stop)
	next = append(next, stops[i:]...)
	g.spec = g.spec.WithColorStops(next)
}

func (g *ScriptGradient) setAngle(degrees float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.spec = g.spec.WithAngle(degrees)
}

func (g *ScriptGradient) setBounds(bounds gradient.Rect) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.spec = g.spec.WithBounds(bounds)
}

// GradientBindings registers the angle_gradient_* functions in a runtime
// and holds the surface angle_gradient_paint draws into.
type GradientBindings struct {
	runtime *ScriptRuntime
	surface gradient.Surface
	mu      sync.RWMutex
}

// NewGradientBindings creates a new GradientBindings instance and registers
// all gradient functions in the provided Lua runtime.
func NewGradientBindings(runtime *ScriptRuntime) (*GradientBindings, error) {
	if runtime == nil {
		return nil, ErrNilRuntime
	}

	gb := &GradientBindings{runtime: runtime}
	gb.registerFunctions()
	return gb, nil
}

// SetSurface sets the surface painted by angle_gradient_paint.
// A nil surface makes painting a no-op.
func (gb *GradientBindings) SetSurface(surface gradient.Surface) {
	gb.mu.Lock()
	defer gb.mu.Unlock()
	gb.surface = surface
}

// Surface returns the active surface.
func (gb *GradientBindings) Surface() gradient.Surface {
	gb.mu.RLock()
	defer gb.mu.RUnlock()
	return gb.surface
}

func (gb *GradientBindings) registerFunctions() {
	// Geometry
	gb.runtime.SetGoFunction("angle_gradient_normalize", gb.normalize, 1, false)
	gb.runtime.SetGoFunction("angle_gradient_endpoints", gb.endpoints, 5, false)
	gb.runtime.SetGoFunction("angle_gradient_direction", gb.direction, 1, false)

	// Gradient handles
	gb.runtime.SetGoFunction("angle_gradient_create", gb.create, 5, false)
	gb.runtime.SetGoFunction("angle_gradient_add_color_stop", gb.addColorStop, 3, false)
	gb.runtime.SetGoFunction("angle_gradient_add_color_stop_rgba", gb.addColorStopRGBA, 6, false)
	gb.runtime.SetGoFunction("angle_gradient_set_angle", gb.setAngle, 2, false)
	gb.runtime.SetGoFunction("angle_gradient_set_bounds", gb.setBounds, 5, false)
	gb.runtime.SetGoFunction("angle_gradient_get_endpoints", gb.getEndpoints, 1, false)
	gb.runtime.SetGoFunction("angle_gradient_stop_count", gb.stopCount, 1, false)

	// Drawing
	gb.runtime.SetGoFunction("angle_gradient_paint", gb.paint, 1, false)
}

// getAllArgs combines Args() and Etc() to get all arguments including varargs
func getAllArgs(c *rt.GoCont) []rt.Value {
	return append(c.Args(), c.Etc()...)
}

// getFloatArg gets a float argument from the combined args slice
func getFloatArg(args []rt.Value, idx int) (float64, error) {
	if idx >= len(args) {
		return 0, fmt.Errorf("argument %d out of range (have %d)", idx, len(args))
	}
	if f, ok := args[idx].TryFloat(); ok {
		return f, nil
	}
	if i, ok := args[idx].TryInt(); ok {
		return float64(i), nil
	}
	return 0, fmt.Errorf("argument %d is not a number", idx)
}

// getStringArg gets a string argument from the combined args slice
func getStringArg(args []rt.Value, idx int) (string, error) {
	if idx >= len(args) {
		return "", fmt.Errorf("argument %d out of range (have %d)", idx, len(args))
	}
	if s, ok := args[idx].TryString(); ok {
		return s, nil
	}
	return "", fmt.Errorf("argument %d is not a string", idx)
}

// getRectArgs reads x, y, w, h starting at idx.
func getRectArgs(args []rt.Value, idx int) (gradient.Rect, error) {
	var v [4]float64
	for i, name := range []string{"x", "y", "w", "h"} {
		f, err := getFloatArg(args, idx+i)
		if err != nil {
			return gradient.Rect{}, fmt.Errorf("%s: %w", name, err)
		}
		v[i] = f
	}
	return gradient.NewRect(v[0], v[1], v[2], v[3]), nil
}

// getGradientArg extracts a ScriptGradient from a userdata argument.
func getGradientArg(args []rt.Value, idx int) (*ScriptGradient, error) {
	if idx >= len(args) {
		return nil, fmt.Errorf("missing argument at index %d", idx)
	}
	ud, ok := args[idx].TryUserData()
	if !ok {
		return nil, ErrInvalidGradient
	}
	g, ok := ud.Value().(*ScriptGradient)
	if !ok {
		return nil, ErrInvalidGradient
	}
	return g, nil
}

func pushEndpoints(t *rt.Thread, c *rt.GoCont, spec gradient.GradientSpec) (rt.Cont, error) {
	start, end := gradient.ComputeEndpoints(spec)
	return c.PushingNext(t.Runtime,
		rt.FloatValue(start.X), rt.FloatValue(start.Y),
		rt.FloatValue(end.X), rt.FloatValue(end.Y)), nil
}

// --- Geometry ---

// normalize handles angle_gradient_normalize(deg)
func (gb *GradientBindings) normalize(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	deg, err := getFloatArg(getAllArgs(c), 0)
	if err != nil {
		return nil, fmt.Errorf("angle_gradient_normalize: deg: %w", err)
	}
	return c.PushingNext1(t.Runtime, rt.FloatValue(gradient.NormalizeAngle(deg))), nil
}

// endpoints handles angle_gradient_endpoints(deg, x, y, w, h) -> x0, y0, x1, y1
func (gb *GradientBindings) endpoints(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)

	deg, err := getFloatArg(args, 0)
	if err != nil {
		return nil, fmt.Errorf("angle_gradient_endpoints: deg: %w", err)
	}
	bounds, err := getRectArgs(args, 1)
	if err != nil {
		return nil, fmt.Errorf("angle_gradient_endpoints: %w", err)
	}
	return pushEndpoints(t, c, gradient.NewSpec(deg, bounds))
}

// direction handles angle_gradient_direction(name) -> deg
// Unknown names return nil.
func (gb *GradientBindings) direction(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	if len(args) == 0 {
		return nil, fmt.Errorf("angle_gradient_direction: name: missing argument")
	}

	var (
		dir gradient.Direction
		ok  bool
	)
	if n, isInt := args[0].TryInt(); isInt {
		dir, ok = gradient.DirectionFromRaw(int(n))
	} else {
		name, err := getStringArg(args, 0)
		if err != nil {
			return nil, fmt.Errorf("angle_gradient_direction: name: %w", err)
		}
		dir, ok = gradient.ParseDirection(name)
	}
	if !ok {
		return c.PushingNext1(t.Runtime, rt.NilValue), nil
	}
	return c.PushingNext1(t.Runtime, rt.FloatValue(dir.Angle())), nil
}

// --- Gradient handles ---

// create handles angle_gradient_create(deg, x, y, w, h) -> gradient
func (gb *GradientBindings) create(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)

	deg, err := getFloatArg(args, 0)
	if err != nil {
		return nil, fmt.Errorf("angle_gradient_create: deg: %w", err)
	}
	bounds, err := getRectArgs(args, 1)
	if err != nil {
		return nil, fmt.Errorf("angle_gradient_create: %w", err)
	}

	g := &ScriptGradient{spec: gradient.NewSpec(deg, bounds)}
	ud := rt.NewUserData(g, nil)
	return c.PushingNext1(t.Runtime, rt.UserDataValue(ud)), nil
}

// clampOffset keeps stop offsets inside [0, 1].
func clampOffset(offset float64) float64 {
	if math.IsNaN(offset) {
		return 0
	}
	return math.Min(math.Max(offset, 0), 1)
}

// addColorStop handles angle_gradient_add_color_stop(gradient, offset, color)
// color is any string accepted by ParseColor.
func (gb *GradientBindings) addColorStop(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)

	g, err := getGradientArg(args, 0)
	if err != nil {
		return nil, fmt.Errorf("angle_gradient_add_color_stop: gradient: %w", err)
	}
	offset, err := getFloatArg(args, 1)
	if err != nil {
		return nil, fmt.Errorf("angle_gradient_add_color_stop: offset: %w", err)
	}
	s, err := getStringArg(args, 2)
	if err != nil {
		return nil, fmt.Errorf("angle_gradient_add_color_stop: color: %w", err)
	}
	col, err := render.ParseColor(s)
	if err != nil {
		return nil, fmt.Errorf("angle_gradient_add_color_stop: %w", err)
	}

	g.addStop(gradient.ColorStop{Offset: clampOffset(offset), Color: col})
	return c.Next(), nil
}

// addColorStopRGBA handles angle_gradient_add_color_stop_rgba(gradient, offset, r, g, b, a)
// Channels are in [0, 1] and clamped.
func (gb *GradientBindings) addColorStopRGBA(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)

	g, err := getGradientArg(args, 0)
	if err != nil {
		return nil, fmt.Errorf("angle_gradient_add_color_stop_rgba: gradient: %w", err)
	}
	offset, err := getFloatArg(args, 1)
	if err != nil {
		return nil, fmt.Errorf("angle_gradient_add_color_stop_rgba: offset: %w", err)
	}
	var ch [4]uint8
	for i, name := range []string{"r", "g", "b", "a"} {
		v, err := getFloatArg(args, 2+i)
		if err != nil {
			return nil, fmt.Errorf("angle_gradient_add_color_stop_rgba: %s: %w", name, err)
		}
		ch[i] = render.ClampToByte(v)
	}

	stop := gradient.ColorStop{Offset: clampOffset(offset)}
	stop.Color.R, stop.Color.G, stop.Color.B, stop.Color.A = ch[0], ch[1], ch[2], ch[3]
	g.addStop(stop)
	return c.Next(), nil
}

// setAngle handles angle_gradient_set_angle(gradient, deg)
func (gb *GradientBindings) setAngle(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)

	g, err := getGradientArg(args, 0)
	if err != nil {
		return nil, fmt.Errorf("angle_gradient_set_angle: gradient: %w", err)
	}
	deg, err := getFloatArg(args, 1)
	if err != nil {
		return nil, fmt.Errorf("angle_gradient_set_angle: deg: %w", err)
	}
	g.setAngle(deg)
	return c.Next(), nil
}

// setBounds handles angle_gradient_set_bounds(gradient, x, y, w, h)
func (gb *GradientBindings) setBounds(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)

	g, err := getGradientArg(args, 0)
	if err != nil {
		return nil, fmt.Errorf("angle_gradient_set_bounds: gradient: %w", err)
	}
	bounds, err := getRectArgs(args, 1)
	if err != nil {
		return nil, fmt.Errorf("angle_gradient_set_bounds: %w", err)
	}
	g.setBounds(bounds)
	return c.Next(), nil
}

// getEndpoints handles angle_gradient_get_endpoints(gradient) -> x0, y0, x1, y1
func (gb *GradientBindings) getEndpoints(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	g, err := getGradientArg(getAllArgs(c), 0)
	if err != nil {
		return nil, fmt.Errorf("angle_gradient_get_endpoints: gradient: %w", err)
	}
	return pushEndpoints(t, c, g.Spec())
}

// stopCount handles angle_gradient_stop_count(gradient) -> n
func (gb *GradientBindings) stopCount(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	g, err := getGradientArg(getAllArgs(c), 0)
	if err != nil {
		return nil, fmt.Errorf("angle_gradient_stop_count: gradient: %w", err)
	}
	return c.PushingNext1(t.Runtime, rt.IntValue(int64(len(g.Spec().ColorStops)))), nil
}

// --- Drawing ---

// paint handles angle_gradient_paint(gradient) -> bool
// It reports false when nothing was drawn: no active surface, no stops or
// degenerate bounds.
func (gb *GradientBindings) paint(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	g, err := getGradientArg(getAllArgs(c), 0)
	if err != nil {
		return nil, fmt.Errorf("angle_gradient_paint: gradient: %w", err)
	}
	surface := gb.Surface()
	if surface == nil {
		return c.PushingNext1(t.Runtime, rt.BoolValue(false)), nil
	}
	return c.PushingNext1(t.Runtime, rt.BoolValue(gradient.Paint(g.Spec(), surface))), nil
}
