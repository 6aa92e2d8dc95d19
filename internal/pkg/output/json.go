// Package output provides utilities for consistent CLI output formatting.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Supported report formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// IsTTY returns true if stdout is connected to a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// MarshalJSON marshals v to JSON with formatting based on TTY detection.
// When stdout is a TTY, output is pretty-printed with 2-space indentation.
// When piped or redirected, output is compact single-line JSON.
func MarshalJSON(v any) ([]byte, error) {
	return MarshalJSONPretty(v, IsTTY())
}

// MarshalJSONPretty marshals v to JSON with explicit formatting control.
func MarshalJSONPretty(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// MarshalYAML marshals v to YAML with 2-space indentation.
func MarshalYAML(v any) ([]byte, error) {
	var sb strings.Builder
	enc := yaml.NewEncoder(&sb)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

// Marshal encodes v in the named structured format (json or yaml).
func Marshal(v any, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return MarshalJSON(v)
	case FormatYAML:
		return MarshalYAML(v)
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// ValidateFormat checks that format is one of table, json or yaml.
func ValidateFormat(format string) error {
	switch strings.ToLower(format) {
	case FormatTable, FormatJSON, FormatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (want table, json or yaml)", format)
	}
}
