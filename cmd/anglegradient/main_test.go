package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opd-ai/go-anglegradient/pkg/anglegradient"
)

const testDocument = `
gradient = {
    angle = 15 * 2,
    width = 40, height = 20,
    stops = { {0, "red"}, {1, "blue"} },
}
`

func writeDocument(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRunVersion(t *testing.T) {
	code, stdout, _ := runCLI("-v")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.Contains(stdout, anglegradient.VersionString) {
		t.Errorf("version output %q does not contain %s", stdout, anglegradient.VersionString)
	}
}

func TestRunUsageErrors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{"no document", nil, 1, "-c"},
		{"missing document", []string{"-c", "/nonexistent/gradient.yaml"}, 1, "not found"},
		{"unknown flag", []string{"-bogus"}, 2, "bogus"},
		{"bad angle", []string{"-angle", "steep"}, 2, "angle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(tt.args...)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(stderr, tt.wantErr) {
				t.Errorf("stderr %q does not mention %q", stderr, tt.wantErr)
			}
		})
	}
}

func TestRunHelp(t *testing.T) {
	if code, _, stderr := runCLI("-h"); code != 0 || !strings.Contains(stderr, "-watch") {
		t.Errorf("-h: exit code = %d, usage = %q", code, stderr)
	}
}

func TestRunRendersPNG(t *testing.T) {
	doc := writeDocument(t, "gradient.lua", testDocument)
	out := filepath.Join(t.TempDir(), "out.png")

	code, stdout, stderr := runCLI("-c", doc, "-o", out, "-angle", "90")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, out) {
		t.Errorf("stdout %q does not name the output", stdout)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("invalid PNG: %v", err)
	}
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 20 {
		t.Errorf("size = %v, want 40x20", img.Bounds())
	}
	// -angle 90 runs red at the top to blue at the bottom.
	if r, _, b, _ := img.At(20, 0).RGBA(); r < b {
		t.Errorf("top pixel is not red: %v", img.At(20, 0))
	}
}

func TestRunWritesProfiles(t *testing.T) {
	doc := writeDocument(t, "gradient.lua", testDocument)
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.prof")
	mem := filepath.Join(dir, "mem.prof")

	code, _, stderr := runCLI("-c", doc, "-o", filepath.Join(dir, "out.png"), "-cpuprofile", cpu, "-memprofile", mem)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}
	for _, path := range []string{cpu, mem} {
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Errorf("profile %s not written: %v", path, err)
		}
	}
}

func TestRunJSONLogs(t *testing.T) {
	doc := writeDocument(t, "gradient.lua", testDocument)
	out := filepath.Join(t.TempDir(), "out.png")

	code, _, stderr := runCLI("-c", doc, "-o", out, "-json")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stderr, `"msg":"rendered"`) {
		t.Errorf("stderr %q is not a JSON render log", stderr)
	}
}

func TestRunInvalidDocument(t *testing.T) {
	doc := writeDocument(t, "gradient.yaml", "gradient:\n  width: -5\n")
	code, _, stderr := runCLI("-c", doc)
	if code != 1 || !strings.Contains(stderr, "width") {
		t.Errorf("exit code = %d, stderr = %q", code, stderr)
	}
}

func TestRunCheck(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantCode int
		want     string
	}{
		{"valid", "gradient:\n  stops:\n    - [0, red]\n    - [1, blue]\n", 0, "ok"},
		{"warning", "gradient:\n  stops:\n    - [0, red]\n", 0, "solid fill"},
		{"error", "gradient:\n  height: -1\n", 1, "error: height"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := writeDocument(t, "gradient.yaml", tt.content)
			code, stdout, _ := runCLI("-check", "-c", doc)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(stdout, tt.want) {
				t.Errorf("stdout %q does not contain %q", stdout, tt.want)
			}
		})
	}
}

func TestRunConvert(t *testing.T) {
	doc := writeDocument(t, "gradient.lua", testDocument)

	code, stdout, stderr := runCLI("-convert", doc)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	for _, want := range []string{"gradient:", "angle: 30", "width: 40"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("converted document missing %q:\n%s", want, stdout)
		}
	}

	if code, _, _ := runCLI("-convert", "/nonexistent/gradient.lua"); code != 1 {
		t.Errorf("convert of a missing file exit code = %d, want 1", code)
	}
}
