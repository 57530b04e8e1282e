package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

const sampleLua = `
gradient = {
    angle = 30,
    width = 64, height = 32,
    interpolation = "hcl",
    stops = { {0, "red"}, {0.25, "#00ff00"}, {1, "rgba(0, 0, 255, 0.5)"} },
}
`

const sampleYAML = `
gradient:
  angle: 30
  width: 64
  height: 32
  interpolation: hcl
  stops:
    - [0, red]
    - [0.25, "#00ff00"]
    - [1, "rgba(0, 0, 255, 0.5)"]
`

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	p, err := NewParser()
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}
	t.Cleanup(func() { p.Close() })
	return p
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
		want    Format
		wantErr bool
	}{
		{"lua extension", "g.lua", "", FormatLua, false},
		{"yaml extension", "g.yaml", "", FormatYAML, false},
		{"yml extension", "G.YML", "", FormatYAML, false},
		{"lua content", "gradient.conf", sampleLua, FormatLua, false},
		{"yaml content", "gradient.conf", sampleYAML, FormatYAML, false},
		{"indented lua assignment", "", "  gradient = {}", FormatLua, false},
		{"comment mentioning gradient", "", "-- gradient settings\n", "", true},
		{"unknown", "notes.txt", "hello", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFormat(tt.path, []byte(tt.content))
			if (err != nil) != tt.wantErr {
				t.Fatalf("DetectFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUnknownFormat) {
				t.Errorf("error %v does not wrap ErrUnknownFormat", err)
			}
			if got != tt.want {
				t.Errorf("DetectFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParserLuaAndYAMLAgree(t *testing.T) {
	p := newTestParser(t)

	fromLua, err := p.Parse([]byte(sampleLua), FormatLua)
	if err != nil {
		t.Fatalf("Parse(lua) failed: %v", err)
	}
	fromYAML, err := p.Parse([]byte(sampleYAML), FormatYAML)
	if err != nil {
		t.Fatalf("Parse(yaml) failed: %v", err)
	}
	if diff := cmp.Diff(fromLua, fromYAML); diff != "" {
		t.Errorf("Lua and YAML configs differ (-lua +yaml):\n%s", diff)
	}

	if fromLua.Spec.AngleDegrees != 30 || len(fromLua.Spec.ColorStops) != 3 {
		t.Errorf("unexpected spec %+v", fromLua.Spec)
	}
	if got := fromLua.Spec.ColorStops[2].Color.A; got != 127 {
		t.Errorf("last stop alpha = %d, want 127", got)
	}
}

func TestParserParseFile(t *testing.T) {
	p := newTestParser(t)
	dir := t.TempDir()

	for name, content := range map[string]string{
		"g.lua":  sampleLua,
		"g.yaml": sampleYAML,
		"g.conf": sampleYAML,
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		cfg, err := p.ParseFile(path)
		if err != nil {
			t.Errorf("ParseFile(%s) failed: %v", name, err)
			continue
		}
		if w, h := cfg.ImageSize(); w != 64 || h != 32 {
			t.Errorf("%s: ImageSize() = %d, %d; want 64, 32", name, w, h)
		}
	}
}

func TestParserParseFileNotFound(t *testing.T) {
	p := newTestParser(t)
	_, err := p.ParseFile(filepath.Join(t.TempDir(), "missing.lua"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error %v does not wrap os.ErrNotExist", err)
	}
}

func TestParserParseFromFS(t *testing.T) {
	p := newTestParser(t)
	fsys := fstest.MapFS{
		"configs/g.lua":  {Data: []byte(sampleLua)},
		"configs/g.yaml": {Data: []byte(sampleYAML)},
	}

	for _, path := range []string{"configs/g.lua", "configs/g.yaml"} {
		if _, err := p.ParseFromFS(fsys, path); err != nil {
			t.Errorf("ParseFromFS(%s) failed: %v", path, err)
		}
	}
	if _, err := p.ParseFromFS(fsys, "configs/missing.lua"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParserParseReader(t *testing.T) {
	p := newTestParser(t)

	if _, err := p.ParseReader(strings.NewReader(sampleYAML), "yml"); err != nil {
		t.Errorf("ParseReader(yml) failed: %v", err)
	}
	if _, err := p.ParseReader(strings.NewReader(sampleLua), "lua"); err != nil {
		t.Errorf("ParseReader(lua) failed: %v", err)
	}
	if _, err := p.ParseReader(strings.NewReader(sampleLua), "toml"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ParseReader(toml) error = %v, want ErrUnknownFormat", err)
	}
}

func TestParserExpandsEnvironment(t *testing.T) {
	t.Setenv("TEST_GRADIENT_OUT", "/tmp/env.png")
	p := newTestParser(t)

	cfg, err := p.Parse([]byte("gradient:\n  output: ${TEST_GRADIENT_OUT}\n"), FormatYAML)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Output != "/tmp/env.png" {
		t.Errorf("Output = %q, want /tmp/env.png", cfg.Output)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "g.lua")
	if err := os.WriteFile(path, []byte(sampleLua), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err != nil {
		t.Errorf("LoadFile failed: %v", err)
	}
}
