// Package config provides configuration parsing for angle gradient documents.
// This file implements environment variable expansion support for configuration values.
package config

import (
	"os"
	"regexp"
	"strings"
)

// envVarPattern matches environment variable references in configuration values.
// Supports formats:
//   - ${VAR_NAME} - standard shell-like format
//   - ${VAR_NAME:-default} - with default value if unset or empty
//   - $VAR_NAME - simple format (word characters only)
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([a-zA-Z_][a-zA-Z0-9_]*)`)

// ExpandEnv expands environment variable references in a string.
// It supports the following formats:
//   - ${VAR_NAME} - replaced with value of VAR_NAME
//   - ${VAR_NAME:-default} - replaced with VAR_NAME's value, or "default" if unset/empty
//   - $VAR_NAME - replaced with value of VAR_NAME (simple format)
//
// Unknown or unset variables without defaults are replaced with empty string.
func ExpandEnv(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if strings.HasPrefix(match, "${") && strings.HasSuffix(match, "}") {
			inner := match[2 : len(match)-1]

			if name, def, ok := strings.Cut(inner, ":-"); ok {
				if val := os.Getenv(name); val != "" {
					return val
				}
				return def
			}
			return os.Getenv(inner)
		}
		return os.Getenv(match[1:])
	})
}

// ExpandEnvDocument expands environment variables in all string values of
// doc in place: direction, interpolation, extend, background, output and
// stop colors.
func ExpandEnvDocument(doc *Document) {
	if doc == nil {
		return
	}

	doc.Direction = ExpandEnv(doc.Direction)
	doc.Interpolation = ExpandEnv(doc.Interpolation)
	doc.Extend = ExpandEnv(doc.Extend)
	doc.Background = ExpandEnv(doc.Background)
	doc.Output = ExpandEnv(doc.Output)
	for i := range doc.Stops {
		doc.Stops[i].Color = ExpandEnv(doc.Stops[i].Color)
	}
}
