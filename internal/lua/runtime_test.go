package lua

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	rt "github.com/arnodel/golua/runtime"
)

func newTestRuntime(t *testing.T) *ScriptRuntime {
	t.Helper()
	config := DefaultConfig()
	config.Stdout = nil
	runtime, err := New(config)
	if err != nil {
		t.Fatalf("failed to create runtime: %v", err)
	}
	t.Cleanup(func() { runtime.Close() })
	return runtime
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.CPULimit != 10_000_000 {
		t.Errorf("expected CPULimit 10000000, got %d", config.CPULimit)
	}
	if config.MemoryLimit != 50*1024*1024 {
		t.Errorf("expected MemoryLimit %d, got %d", 50*1024*1024, config.MemoryLimit)
	}
	if config.Stdout != os.Stdout {
		t.Error("expected Stdout to be os.Stdout")
	}
	if !config.Sandbox {
		t.Error("expected Sandbox to be enabled")
	}
}

func TestNewWithCustomStdout(t *testing.T) {
	buf := &bytes.Buffer{}
	runtime, err := New(RuntimeConfig{
		CPULimit:    1_000_000,
		MemoryLimit: 10 * 1024 * 1024,
		Stdout:      buf,
	})
	if err != nil {
		t.Fatalf("failed to create runtime: %v", err)
	}
	defer runtime.Close()

	if _, err := runtime.ExecuteString("test", `print("hello from lua")`); err != nil {
		t.Fatalf("failed to execute Lua code: %v", err)
	}

	if got := buf.String(); got != "hello from lua\n" {
		t.Errorf("expected 'hello from lua\\n', got %q", got)
	}
	if got := runtime.Output(); got != "hello from lua\n" {
		t.Errorf("captured output = %q", got)
	}

	runtime.ClearOutput()
	if got := runtime.Output(); got != "" {
		t.Errorf("output after ClearOutput = %q", got)
	}
}

func TestExecuteString(t *testing.T) {
	runtime := newTestRuntime(t)

	tests := []struct {
		name       string
		code       string
		wantResult interface{}
		wantErr    bool
	}{
		{name: "return integer", code: "return 42", wantResult: int64(42)},
		{name: "return string", code: `return "hello"`, wantResult: "hello"},
		{name: "return calculation", code: "return 10 + 20 * 2", wantResult: int64(50)},
		{name: "return nil", code: "return nil", wantResult: nil},
		{name: "syntax error", code: "return {{invalid", wantErr: true},
		{name: "runtime error", code: `error("boom")`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := runtime.ExecuteString(tt.name, tt.code)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExecuteString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			switch expected := tt.wantResult.(type) {
			case int64:
				got, ok := rt.ToInt(result)
				if !ok || got != expected {
					t.Errorf("expected %d, got %v", expected, result)
				}
			case string:
				if result.AsString() != expected {
					t.Errorf("expected %q, got %q", expected, result.AsString())
				}
			case nil:
				if result != rt.NilValue {
					t.Errorf("expected nil, got %v", result)
				}
			}
		})
	}
}

func TestSandbox(t *testing.T) {
	runtime := newTestRuntime(t)

	for _, name := range sandboxedGlobals {
		if v := runtime.GetGlobal(name); v != rt.NilValue {
			t.Errorf("global %s is still set in a sandboxed runtime", name)
		}
	}
	if _, err := runtime.ExecuteString("escape", `return io.open("/etc/hostname")`); err == nil {
		t.Error("expected io access to fail")
	}

	open, err := New(RuntimeConfig{})
	if err != nil {
		t.Fatalf("failed to create runtime: %v", err)
	}
	defer open.Close()
	if v := open.GetGlobal("string"); v == rt.NilValue {
		t.Error("string library missing")
	}
	if v := open.GetGlobal("os"); v == rt.NilValue {
		t.Error("os library missing from an unsandboxed runtime")
	}
}

func TestExecuteFile(t *testing.T) {
	runtime := newTestRuntime(t)

	path := filepath.Join(t.TempDir(), "script.lua")
	if err := os.WriteFile(path, []byte("return 6 * 7"), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := runtime.ExecuteFile(path)
	if err != nil {
		t.Fatalf("ExecuteFile failed: %v", err)
	}
	if got, ok := rt.ToInt(result); !ok || got != 42 {
		t.Errorf("expected 42, got %v", result)
	}

	if _, err := runtime.ExecuteFile(filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadFileFromFS(t *testing.T) {
	runtime := newTestRuntime(t)

	testFS := fstest.MapFS{
		"scripts/hello.lua": &fstest.MapFile{Data: []byte(`return "Hello from embedded FS"`)},
	}

	closure, err := runtime.LoadFileFromFS(testFS, "scripts/hello.lua")
	if err != nil {
		t.Fatalf("LoadFileFromFS failed: %v", err)
	}
	result, err := runtime.Execute(closure)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.AsString() != "Hello from embedded FS" {
		t.Errorf("unexpected result %q", result.AsString())
	}

	if _, err := runtime.LoadFileFromFS(testFS, "scripts/nonexistent.lua"); err == nil {
		t.Error("expected error but got none")
	}
}

func TestSetAndGetGlobal(t *testing.T) {
	runtime := newTestRuntime(t)

	runtime.SetGlobal("myVar", rt.IntValue(999))
	got, ok := rt.ToInt(runtime.GetGlobal("myVar"))
	if !ok || got != 999 {
		t.Errorf("expected 999, got %v", got)
	}

	if value := runtime.GetGlobal("nonexistent"); value != rt.NilValue {
		t.Errorf("expected nil for non-existent global, got %v", value)
	}
}

func TestSetGoFunction(t *testing.T) {
	runtime := newTestRuntime(t)

	addFunc := func(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
		a, _ := c.IntArg(0)
		b, _ := c.IntArg(1)
		return c.PushingNext1(t.Runtime, rt.IntValue(a+b)), nil
	}
	runtime.SetGoFunction("add", addFunc, 2, false)

	result, err := runtime.ExecuteString("test", "return add(10, 20)")
	if err != nil {
		t.Fatalf("failed to execute Lua code: %v", err)
	}
	if got, ok := rt.ToInt(result); !ok || got != 30 {
		t.Errorf("expected 30, got %v", result)
	}
}

func TestCallFunction(t *testing.T) {
	runtime := newTestRuntime(t)

	if _, err := runtime.ExecuteString("setup", `
		function multiply(a, b)
			return a * b
		end
	`); err != nil {
		t.Fatalf("failed to define function: %v", err)
	}

	result, err := runtime.CallFunction("multiply", rt.IntValue(5), rt.IntValue(7))
	if err != nil {
		t.Fatalf("CallFunction() error = %v", err)
	}
	if got, ok := rt.ToInt(result); !ok || got != 35 {
		t.Errorf("expected 35, got %v", result)
	}

	if _, err := runtime.CallFunction("nonexistent"); err == nil {
		t.Error("expected error for non-existent function")
	}
}

func TestResourceLimits(t *testing.T) {
	runtime, err := New(RuntimeConfig{
		CPULimit:    100,
		MemoryLimit: 1 * 1024 * 1024,
	})
	if err != nil {
		t.Fatalf("failed to create runtime: %v", err)
	}
	defer runtime.Close()

	code := `
		local sum = 0
		for i = 1, 100000 do
			sum = sum + i
		end
		return sum
	`
	_, err = runtime.ExecuteString("heavy", code)
	if err == nil {
		t.Fatal("expected CPU limit error, got nil")
	}
	if !errors.Is(err, ErrResourceLimit) {
		t.Errorf("error %v does not wrap ErrResourceLimit", err)
	}
	if !strings.Contains(err.Error(), "execution") {
		t.Errorf("error %q does not mention execution", err)
	}
}

func TestConfigAndClose(t *testing.T) {
	config := RuntimeConfig{CPULimit: 5, MemoryLimit: 6}
	runtime, err := New(config)
	if err != nil {
		t.Fatalf("failed to create runtime: %v", err)
	}

	if got := runtime.Config(); got.CPULimit != 5 || got.MemoryLimit != 6 {
		t.Errorf("Config() = %+v", got)
	}
	if err := runtime.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := runtime.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
