// Package lua provides Golua integration for angle gradients.
// It implements a sandboxed Lua runtime with resource limits and the
// angle_gradient_* scripting API.
package lua

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"

	"github.com/arnodel/golua/lib"
	rt "github.com/arnodel/golua/runtime"
)

// sandboxedGlobals are removed from the environment of a sandboxed runtime.
var sandboxedGlobals = []string{"io", "os", "dofile", "loadfile", "require", "package", "debug"}

// RuntimeConfig contains configuration options for the Lua runtime.
type RuntimeConfig struct {
	// CPULimit is the CPU instruction limit for Lua execution.
	// 0 means unlimited.
	CPULimit uint64
	// MemoryLimit is the maximum memory in bytes that Lua can allocate.
	// 0 means unlimited.
	MemoryLimit uint64
	// Stdout is the writer for Lua print output.
	// If nil, output is only captured.
	Stdout io.Writer
	// Sandbox removes file, process and module loading access
	// (io, os, dofile, loadfile, require, package, debug).
	Sandbox bool
}

// DefaultConfig returns a RuntimeConfig with sensible default values.
// CPU limit: 10,000,000 instructions
// Memory limit: 50 MB
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		CPULimit:    10_000_000,
		MemoryLimit: 50 * 1024 * 1024, // 50 MB
		Stdout:      os.Stdout,
		Sandbox:     true,
	}
}

// ScriptRuntime wraps a Golua runtime for gradient scripts.
// It provides thread-safe access to Lua execution with resource limits.
type ScriptRuntime struct {
	config  RuntimeConfig
	runtime *rt.Runtime
	output  *bytes.Buffer
	cleanup func()
	mu      sync.RWMutex
}

// New creates a new ScriptRuntime with the specified configuration.
// The runtime is initialized with the Lua standard libraries, minus the
// sandboxed ones when config.Sandbox is set.
func New(config RuntimeConfig) (*ScriptRuntime, error) {
	output := &bytes.Buffer{}
	stdout := io.Writer(output)
	if config.Stdout != nil {
		// Capture output while also writing to configured stdout
		stdout = io.MultiWriter(config.Stdout, output)
	}

	runtime := rt.New(stdout)
	cleanup := lib.LoadAll(runtime)

	if config.Sandbox {
		env := runtime.GlobalEnv()
		for _, name := range sandboxedGlobals {
			env.Set(rt.StringValue(name), rt.NilValue)
		}
	}

	return &ScriptRuntime{
		config:  config,
		runtime: runtime,
		output:  output,
		cleanup: cleanup,
	}, nil
}

// LoadString compiles and loads a Lua code string.
// The returned Closure can be executed using Execute.
func (sr *ScriptRuntime) LoadString(name, code string) (*rt.Closure, error) {
	return sr.load(name, []byte(code))
}

// LoadFile reads and loads a Lua file from disk.
func (sr *ScriptRuntime) LoadFile(path string) (*rt.Closure, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read Lua file %s: %w", path, err)
	}
	return sr.load(path, content)
}

// LoadFileFromFS reads and loads a Lua file from a filesystem such as an
// embed.FS.
func (sr *ScriptRuntime) LoadFileFromFS(fsys fs.FS, path string) (*rt.Closure, error) {
	content, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read Lua file from FS %s: %w", path, err)
	}
	return sr.load(path, content)
}

func (sr *ScriptRuntime) load(name string, content []byte) (*rt.Closure, error) {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	closure, err := sr.runtime.CompileAndLoadLuaChunk(
		name,
		content,
		rt.TableValue(sr.runtime.GlobalEnv()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load Lua code %s: %w", name, err)
	}
	return closure, nil
}

// callLimited runs f inside a resource-limited context. golua aborts a
// context that exceeds its hard limits by panicking; the panic is returned
// as an error wrapping ErrResourceLimit. Must be called with sr.mu held.
func (sr *ScriptRuntime) callLimited(f func() (rt.Value, error)) (result rt.Value, err error) {
	sr.runtime.PushContext(rt.RuntimeContextDef{
		HardLimits: rt.RuntimeResources{
			Cpu:    sr.config.CPULimit,
			Memory: sr.config.MemoryLimit,
		},
	})
	defer func() {
		sr.runtime.PopContext()
		if r := recover(); r != nil {
			result, err = rt.NilValue, fmt.Errorf("%w: %v", ErrResourceLimit, r)
		}
	}()
	return f()
}

// Execute runs a compiled Lua closure within resource limits.
func (sr *ScriptRuntime) Execute(closure *rt.Closure) (rt.Value, error) {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	result, err := sr.callLimited(func() (rt.Value, error) {
		return rt.Call1(sr.runtime.MainThread(), rt.FunctionValue(closure))
	})
	if err != nil {
		return rt.NilValue, fmt.Errorf("Lua execution error: %w", err)
	}
	return result, nil
}

// ExecuteString compiles and executes a Lua code string.
func (sr *ScriptRuntime) ExecuteString(name, code string) (rt.Value, error) {
	closure, err := sr.LoadString(name, code)
	if err != nil {
		return rt.NilValue, err
	}
	return sr.Execute(closure)
}

// ExecuteFile loads and executes a Lua file.
func (sr *ScriptRuntime) ExecuteFile(path string) (rt.Value, error) {
	closure, err := sr.LoadFile(path)
	if err != nil {
		return rt.NilValue, err
	}
	return sr.Execute(closure)
}

// GetGlobal retrieves a global variable from the Lua environment.
func (sr *ScriptRuntime) GetGlobal(name string) rt.Value {
	sr.mu.RLock()
	defer sr.mu.RUnlock()

	return sr.runtime.GlobalEnv().Get(rt.StringValue(name))
}

// SetGlobal sets a global variable in the Lua environment.
func (sr *ScriptRuntime) SetGlobal(name string, value rt.Value) {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	sr.runtime.GlobalEnv().Set(rt.StringValue(name), value)
}

// SetGoFunction registers a Go function in the Lua global environment.
// The function is declared as memory-safe and CPU-safe for use with resource limits.
func (sr *ScriptRuntime) SetGoFunction(name string, fn rt.GoFunctionFunc, nArgs int, hasVarArgs bool) {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	goFunc := rt.NewGoFunction(fn, name, nArgs, hasVarArgs)
	rt.SolemnlyDeclareCompliance(rt.ComplyMemSafe|rt.ComplyCpuSafe, goFunc)
	sr.runtime.GlobalEnv().Set(rt.StringValue(name), rt.FunctionValue(goFunc))
}

// CallFunction calls a Lua function by name with the given arguments.
func (sr *ScriptRuntime) CallFunction(name string, args ...rt.Value) (rt.Value, error) {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	fn := sr.runtime.GlobalEnv().Get(rt.StringValue(name))
	if fn == rt.NilValue {
		return rt.NilValue, fmt.Errorf("function %s not found", name)
	}

	result, err := sr.callLimited(func() (rt.Value, error) {
		return rt.Call1(sr.runtime.MainThread(), fn, args...)
	})
	if err != nil {
		return rt.NilValue, fmt.Errorf("failed to call function %s: %w", name, err)
	}
	return result, nil
}

// Output returns the captured output from Lua print statements.
func (sr *ScriptRuntime) Output() string {
	sr.mu.RLock()
	defer sr.mu.RUnlock()

	return sr.output.String()
}

// ClearOutput clears the captured output buffer.
func (sr *ScriptRuntime) ClearOutput() {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	sr.output.Reset()
}

// Config returns the current runtime configuration.
func (sr *ScriptRuntime) Config() RuntimeConfig {
	sr.mu.RLock()
	defer sr.mu.RUnlock()

	return sr.config
}

// Close releases resources associated with the runtime.
// The runtime should not be used after calling Close.
func (sr *ScriptRuntime) Close() error {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	if sr.cleanup != nil {
		sr.cleanup()
		sr.cleanup = nil
	}
	return nil
}
