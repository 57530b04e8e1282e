// Package config provides configuration parsing for angle gradient documents.
// This file implements the YAML document parser.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// documentKeys lists the keys accepted inside the gradient mapping.
var documentKeys = sync.OnceValue(func() map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeOf(Document{})
	for i := 0; i < t.NumField(); i++ {
		if tag, _, _ := strings.Cut(t.Field(i).Tag.Get("yaml"), ","); tag != "" {
			keys[tag] = true
		}
	}
	return keys
})

// ParseYAML parses a YAML gradient document:
//
//	gradient:
//	  angle: 45
//	  width: 256
//	  height: 128
//	  stops:
//	    - {offset: 0, color: "#ff0000"}
//	    - [1, blue]
//
// Unknown keys are rejected.
func ParseYAML(content []byte) (Document, error) {
	var root struct {
		Gradient yaml.Node `yaml:"gradient"`
	}
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, ErrNoGradient
		}
		return Document{}, fmt.Errorf("failed to parse YAML configuration: %w", err)
	}

	node := &root.Gradient
	if node.Kind == 0 || node.Tag == "!!null" {
		return Document{}, ErrNoGradient
	}
	if node.Kind != yaml.MappingNode {
		return Document{}, fmt.Errorf("line %d: gradient is not a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if !documentKeys()[key.Value] {
			return Document{}, fmt.Errorf("line %d: unknown gradient key %q", key.Line, key.Value)
		}
	}

	doc := DefaultDocument()
	if err := node.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("failed to decode gradient: %w", err)
	}
	return doc, nil
}

// UnmarshalYAML accepts either a {offset, color} mapping or an
// [offset, color] pair.
func (s *StopDocument) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		if len(node.Content) != 2 {
			return fmt.Errorf("line %d: stop must be [offset, color]", node.Line)
		}
		if err := node.Content[0].Decode(&s.Offset); err != nil {
			return fmt.Errorf("line %d: invalid stop offset: %w", node.Line, err)
		}
		return node.Content[1].Decode(&s.Color)
	}

	type plain StopDocument
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*s = StopDocument(p)
	return nil
}

// EncodeYAML writes a document under the top-level gradient key.
func EncodeYAML(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]Document{"gradient": doc}); err != nil {
		return nil, fmt.Errorf("failed to encode YAML configuration: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
