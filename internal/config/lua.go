// Package config provides configuration parsing for angle gradient documents.
// This file implements the Lua document parser.

package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/arnodel/golua/lib"
	rt "github.com/arnodel/golua/runtime"
)

// Resource limits applied while a Lua document executes.
const (
	luaCPULimit    = 10_000_000
	luaMemoryLimit = 50 * 1024 * 1024 // 50 MB
)

// unsafeGlobals are removed from the Lua environment before a document runs.
var unsafeGlobals = []string{"io", "os", "dofile", "loadfile", "require", "package", "debug"}

// LuaConfigParser parses Lua gradient documents. A document assigns a
// table to the global "gradient":
//
//	gradient = {
//	    angle = 45,
//	    width = 256, height = 128,
//	    stops = { {0, "#ff0000"}, {1, "blue"} },
//	}
type LuaConfigParser struct {
	runtime *rt.Runtime
	cleanup func()
	mu      sync.Mutex
}

// NewLuaConfigParser creates a new LuaConfigParser with a fresh Lua runtime.
func NewLuaConfigParser() (*LuaConfigParser, error) {
	return NewLuaConfigParserWithOutput(io.Discard)
}

// NewLuaConfigParserWithOutput creates a LuaConfigParser with custom output
// for print().
func NewLuaConfigParserWithOutput(stdout io.Writer) (*LuaConfigParser, error) {
	if stdout == nil {
		stdout = os.Stdout
	}

	runtime := rt.New(stdout)
	cleanup := lib.LoadAll(runtime)
	for _, name := range unsafeGlobals {
		runtime.GlobalEnv().Set(rt.StringValue(name), rt.NilValue)
	}

	return &LuaConfigParser{
		runtime: runtime,
		cleanup: cleanup,
	}, nil
}

// Parse executes a Lua document and extracts the gradient table.
func (p *LuaConfigParser) Parse(content []byte) (Document, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	env := p.runtime.GlobalEnv()
	env.Set(rt.StringValue("gradient"), rt.NilValue)

	closure, err := p.runtime.CompileAndLoadLuaChunk("gradient", content, rt.TableValue(env))
	if err != nil {
		return Document{}, fmt.Errorf("failed to compile Lua configuration: %w", err)
	}

	if err := p.execute(closure); err != nil {
		return Document{}, fmt.Errorf("failed to execute Lua configuration: %w", err)
	}

	return p.extractDocument()
}

// execute runs closure under the document resource limits. golua aborts a
// context over its hard limits by panicking, so the panic becomes an error.
func (p *LuaConfigParser) execute(closure *rt.Closure) (err error) {
	p.runtime.PushContext(rt.RuntimeContextDef{
		HardLimits: rt.RuntimeResources{
			Cpu:    luaCPULimit,
			Memory: luaMemoryLimit,
		},
	})
	defer func() {
		p.runtime.PopContext()
		if r := recover(); r != nil {
			err = fmt.Errorf("resource limit exceeded: %v", r)
		}
	}()

	_, err = rt.Call1(p.runtime.MainThread(), rt.FunctionValue(closure))
	return err
}

// extractDocument reads the global gradient table over the defaults.
func (p *LuaConfigParser) extractDocument() (Document, error) {
	val := p.runtime.GlobalEnv().Get(rt.StringValue("gradient"))
	if val == rt.NilValue {
		return Document{}, ErrNoGradient
	}
	table, ok := val.TryTable()
	if !ok {
		return Document{}, fmt.Errorf("gradient is not a table")
	}

	doc := DefaultDocument()

	floats := []struct {
		key    string
		target *float64
	}{
		{"angle", &doc.Angle},
		{"x", &doc.X},
		{"y", &doc.Y},
		{"width", &doc.Width},
		{"height", &doc.Height},
		{"corner_radius", &doc.CornerRadius},
	}
	for _, f := range floats {
		if v := getTableFloat(table, f.key); v != nil {
			*f.target = *v
		}
	}
	if v := getTableFloat(table, "mask_length"); v != nil {
		doc.MaskLength = v
	}

	strs := []struct {
		key    string
		target *string
	}{
		{"interpolation", &doc.Interpolation},
		{"extend", &doc.Extend},
		{"background", &doc.Background},
		{"output", &doc.Output},
	}
	for _, s := range strs {
		if v := getTableString(table, s.key); v != nil {
			*s.target = *v
		}
	}

	// Direction accepts names as well as the raw 0-3 preset values.
	if v := getTableString(table, "direction"); v != nil {
		doc.Direction = *v
	} else if v := getTableInt(table, "direction"); v != nil {
		doc.Direction = strconv.Itoa(*v)
	}

	stopsVal := table.Get(rt.StringValue("stops"))
	if stopsVal != rt.NilValue {
		stopsTable, ok := stopsVal.TryTable()
		if !ok {
			return Document{}, fmt.Errorf("stops is not a table")
		}
		stops, err := extractStops(stopsTable)
		if err != nil {
			return Document{}, err
		}
		doc.Stops = stops
	}

	return doc, nil
}

// extractStops reads a Lua array of stops. Each stop is either positional
// {offset, color} or keyed {offset = ..., color = ...}.
func extractStops(table *rt.Table) ([]StopDocument, error) {
	var stops []StopDocument
	for i := int64(1); ; i++ {
		val := table.Get(rt.IntValue(i))
		if val == rt.NilValue {
			break
		}
		st, ok := val.TryTable()
		if !ok {
			return nil, fmt.Errorf("stops[%d] is not a table", i)
		}

		offset := getTableFloat(st, "offset")
		if offset == nil {
			offset = valueFloat(st.Get(rt.IntValue(1)))
		}
		if offset == nil {
			return nil, fmt.Errorf("stops[%d] has no numeric offset", i)
		}

		colorVal := st.Get(rt.StringValue("color"))
		if colorVal == rt.NilValue {
			colorVal = st.Get(rt.IntValue(2))
		}
		color, ok := valueColor(colorVal)
		if !ok {
			return nil, fmt.Errorf("stops[%d] has no color", i)
		}

		stops = append(stops, StopDocument{Offset: *offset, Color: color})
	}
	return stops, nil
}

// valueColor accepts a color string or a 0xRRGGBB integer.
func valueColor(val rt.Value) (string, bool) {
	if n, ok := val.TryInt(); ok {
		if n < 0 || n > 0xffffff {
			return "", false
		}
		return fmt.Sprintf("#%06x", n), true
	}
	if s, ok := val.TryString(); ok {
		return s, true
	}
	return "", false
}

func valueFloat(val rt.Value) *float64 {
	if n, ok := val.TryFloat(); ok {
		return &n
	}
	if n, ok := val.TryInt(); ok {
		f := float64(n)
		return &f
	}
	return nil
}

// Close releases resources associated with the parser's Lua runtime.
func (p *LuaConfigParser) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cleanup != nil {
		p.cleanup()
		p.cleanup = nil
	}
	return nil
}

// getTableString retrieves a string value from a Lua table.
// Returns nil if the key doesn't exist or is not a string.
func getTableString(table *rt.Table, key string) *string {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}

	if s, ok := val.TryString(); ok {
		return &s
	}

	return nil
}

// getTableFloat retrieves a float64 value from a Lua table.
// Returns nil if the key doesn't exist or is not a number.
func getTableFloat(table *rt.Table, key string) *float64 {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}
	return valueFloat(val)
}

// getTableInt retrieves an int value from a Lua table.
// Returns nil if the key doesn't exist or is not a number.
func getTableInt(table *rt.Table, key string) *int {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}

	if n, ok := val.TryInt(); ok {
		i := int(n)
		return &i
	}

	// Try float conversion (truncate)
	if f, ok := val.TryFloat(); ok {
		i := int(f)
		return &i
	}

	return nil
}
