// Package filtering parses search queries into a literal pattern and an anchoring mode.
package filtering

import (
	"fmt"
	"strings"
)

// PatternType selects where in a text a match is accepted.
type PatternType int

const (
	// PatternTypeContains accepts a match anywhere in the text.
	PatternTypeContains PatternType = iota
	// PatternTypePrefix accepts only a match at the start of the text.
	PatternTypePrefix
	// PatternTypeSuffix accepts only a match that ends at the end of the text.
	PatternTypeSuffix
)

// String returns the lowercase name of the pattern type.
func (t PatternType) String() string {
	switch t {
	case PatternTypeContains:
		return "contains"
	case PatternTypePrefix:
		return "prefix"
	case PatternTypeSuffix:
		return "suffix"
	default:
		return fmt.Sprintf("PatternType(%d)", int(t))
	}
}

// MarshalText encodes the type by name, for JSON and YAML reports.
func (t PatternType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a type name written by MarshalText.
func (t *PatternType) UnmarshalText(text []byte) error {
	parsed, err := ParsePatternType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParsePatternType parses a pattern type name as produced by String.
func ParsePatternType(name string) (PatternType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "contains":
		return PatternTypeContains, nil
	case "prefix":
		return PatternTypePrefix, nil
	case "suffix":
		return PatternTypeSuffix, nil
	default:
		return PatternTypeContains, fmt.Errorf("unknown pattern type %q (want contains, prefix or suffix)", name)
	}
}

// Query is a parsed search query: the literal bytes to look for and where they may occur.
type Query struct {
	Pattern string      `json:"pattern" yaml:"pattern"`
	Type    PatternType `json:"type" yaml:"type"`
}

// ParseQuery turns user input into a Query. With wildcards disabled the input is
// taken literally as a contains query; otherwise ParsePattern rules apply.
func ParseQuery(input string, wildcards bool) Query {
	if !wildcards {
		return Query{Pattern: input, Type: PatternTypeContains}
	}
	pattern, patternType := ParsePattern(input)
	return Query{Pattern: pattern, Type: patternType}
}

// ParsePattern parses a pattern string and returns the pattern with wildcards
// stripped and the detected pattern type.
//
// Pattern syntax:
//   - "error"    -> PatternTypeContains
//   - "*.log"    -> PatternTypeSuffix
//   - "GET *"    -> PatternTypePrefix
//   - "*error*"  -> PatternTypeContains (explicit)
//   - "\\*note"  -> PatternTypeContains with a literal "*"
func ParsePattern(input string) (pattern string, patternType PatternType) {
	if input == "" {
		return "", PatternTypeContains
	}

	// NUL stands in for escaped asterisks while wildcards are stripped
	const placeholder = "\x00"
	working := strings.ReplaceAll(input, `\*`, placeholder)

	leading := strings.HasPrefix(working, "*")
	trailing := strings.HasSuffix(working, "*")

	switch {
	case leading && trailing:
		patternType = PatternTypeContains
		working = strings.TrimSuffix(strings.TrimPrefix(working, "*"), "*")
	case leading:
		patternType = PatternTypeSuffix
		working = strings.TrimPrefix(working, "*")
	case trailing:
		patternType = PatternTypePrefix
		working = strings.TrimSuffix(working, "*")
	default:
		patternType = PatternTypeContains
	}

	return strings.ReplaceAll(working, placeholder, "*"), patternType
}
