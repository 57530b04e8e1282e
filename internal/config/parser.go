// Package config provides configuration parsing for angle gradient documents.
// This file implements the unified parser that detects the document format.

package config

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Format identifies a document syntax.
type Format string

const (
	// FormatLua is a Lua script assigning the global gradient table.
	FormatLua Format = "lua"
	// FormatYAML is a YAML mapping with a top-level gradient key.
	FormatYAML Format = "yaml"
)

// luaConfigPattern matches "gradient" followed by optional whitespace and
// "=" at the start of a line.
var luaConfigPattern = regexp.MustCompile(`(?m)^\s*gradient\s*=`)

// yamlConfigPattern matches a top-level "gradient:" key.
var yamlConfigPattern = regexp.MustCompile(`(?m)^gradient\s*:`)

// DetectFormat picks the format from the file extension, falling back to
// the content when the extension is not recognized.
func DetectFormat(path string, content []byte) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lua":
		return FormatLua, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}

	switch {
	case luaConfigPattern.Match(content):
		return FormatLua, nil
	case yamlConfigPattern.Match(content):
		return FormatYAML, nil
	default:
		return "", ErrUnknownFormat
	}
}

// ParseFormat converts a format name such as "lua", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lua":
		return FormatLua, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s (expected 'lua' or 'yaml')", ErrUnknownFormat, s)
	}
}

// Parser provides a unified interface for parsing gradient documents.
// It is safe for concurrent use.
type Parser struct {
	luaParser *LuaConfigParser
}

// NewParser creates a new Parser that can handle both Lua and YAML documents.
func NewParser() (*Parser, error) {
	luaParser, err := NewLuaConfigParser()
	if err != nil {
		return nil, fmt.Errorf("failed to create Lua parser: %w", err)
	}

	return &Parser{luaParser: luaParser}, nil
}

// ParseFile reads and parses a document, detecting the format.
// Returns a Config on success or an error if parsing fails.
func (p *Parser) ParseFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	format, err := DetectFormat(path, content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p.Parse(content, format)
}

// ParseFromFS reads and parses a document from a filesystem such as an
// embed.FS.
func (p *Parser) ParseFromFS(fsys fs.FS, path string) (*Config, error) {
	content, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config from FS %s: %w", path, err)
	}

	format, err := DetectFormat(path, content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p.Parse(content, format)
}

// ParseReader parses a document from an io.Reader.
// The format parameter must be "lua" or "yaml".
func (p *Parser) ParseReader(r io.Reader, format string) (*Config, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return p.Parse(content, f)
}

// Parse parses content in the given format, expands environment
// variables and resolves the result.
func (p *Parser) Parse(content []byte, format Format) (*Config, error) {
	doc, err := p.ParseDocument(content, format)
	if err != nil {
		return nil, err
	}
	ExpandEnvDocument(&doc)
	return Resolve(doc)
}

// ParseDocument parses content without expanding or resolving it.
func (p *Parser) ParseDocument(content []byte, format Format) (Document, error) {
	switch format {
	case FormatLua:
		return p.luaParser.Parse(content)
	case FormatYAML:
		return ParseYAML(content)
	default:
		return Document{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Close releases resources associated with the parser.
func (p *Parser) Close() error {
	if p.luaParser != nil {
		return p.luaParser.Close()
	}
	return nil
}

// LoadFile parses a single document with a temporary Parser.
func LoadFile(path string) (*Config, error) {
	p, err := NewParser()
	if err != nil {
		return nil, err
	}
	defer p.Close()
	return p.ParseFile(path)
}
