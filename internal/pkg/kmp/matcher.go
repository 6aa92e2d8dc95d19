package kmp

import (
	"iter"
	"runtime"
	"slices"

	"github.com/endorses/kmpcat/internal/pkg/filtering"
)

// config holds the compile-time options of a Matcher.
type config struct {
	foldCase    bool
	concurrency int
}

// Option configures a Matcher at compile time.
type Option func(*config)

// WithFoldCase makes the matcher ASCII case-insensitive.
// The pattern is lowered once at compile time; each searched text is lowered into a copy.
func WithFoldCase() Option {
	return func(c *config) {
		c.foldCase = true
	}
}

// WithConcurrency bounds the number of texts MatchBatch searches in parallel.
// Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

func newConfig(opts []Option) config {
	cfg := config{concurrency: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Matcher is a compiled pattern: the pattern bytes and their failure function.
// A Matcher is immutable after Compile and safe for concurrent use.
type Matcher struct {
	// pattern is the (possibly case-folded) pattern being searched for.
	pattern []byte

	// lps is the failure function of pattern. Never mutated after Compile.
	lps []int

	cfg config
}

// Compile builds a Matcher for pattern.
// An empty pattern compiles to a Matcher that never matches.
func Compile(pattern string, opts ...Option) *Matcher {
	cfg := newConfig(opts)

	p := []byte(pattern)
	if cfg.foldCase {
		p = toLowerASCII(p)
	}

	return &Matcher{
		pattern: p,
		lps:     BuildFailureFunction(p),
		cfg:     cfg,
	}
}

// Pattern returns the pattern the matcher searches for.
// With case folding enabled this is the lowered pattern.
func (m *Matcher) Pattern() string {
	return string(m.pattern)
}

// Len returns the pattern length in bytes.
func (m *Matcher) Len() int {
	return len(m.pattern)
}

// FoldCase reports whether the matcher is case-insensitive.
func (m *Matcher) FoldCase() bool {
	return m.cfg.foldCase
}

// FailureFunction returns a copy of the matcher's failure function.
func (m *Matcher) FailureFunction() []int {
	return slices.Clone(m.lps)
}

// All returns a lazy sequence of match offsets in text.
func (m *Matcher) All(text []byte) iter.Seq[int] {
	if m.cfg.foldCase {
		text = toLowerASCII(text)
	}
	return All(text, m.pattern, m.lps)
}

// FindAll returns every match offset in text in increasing order.
func (m *Matcher) FindAll(text []byte) []int {
	matches := slices.Collect(m.All(text))
	if matches == nil {
		return []int{}
	}
	return matches
}

// FindAllString is FindAll over the bytes of text.
func (m *Matcher) FindAllString(text string) []int {
	return m.FindAll(stringBytes(text))
}

// Count returns the number of (possibly overlapping) matches in text.
func (m *Matcher) Count(text []byte) int {
	count := 0
	for range m.All(text) {
		count++
	}
	return count
}

// Index returns the offset of the first match in text, or -1.
func (m *Matcher) Index(text []byte) int {
	for pos := range m.All(text) {
		return pos
	}
	return -1
}

// Contains reports whether text contains the pattern.
func (m *Matcher) Contains(text []byte) bool {
	return m.Index(text) >= 0
}

// MatchType finds matches of the pattern anchored according to patternType:
// prefix keeps only a match at offset 0, suffix only a match ending at len(text),
// contains keeps every match.
func (m *Matcher) MatchType(text []byte, patternType filtering.PatternType) []int {
	switch patternType {
	case filtering.PatternTypePrefix:
		// The first match is the smallest offset, so stop after one
		if m.Index(text) == 0 {
			return []int{0}
		}
		return []int{}
	case filtering.PatternTypeSuffix:
		// Only the last len(pattern) bytes can hold a suffix match
		if len(m.pattern) == 0 || len(m.pattern) > len(text) {
			return []int{}
		}
		tail := len(text) - len(m.pattern)
		if m.Index(text[tail:]) == 0 {
			return []int{tail}
		}
		return []int{}
	default:
		return m.FindAll(text)
	}
}

// toLowerASCII returns a lowercased copy of b. Only A-Z are folded so byte offsets
// are preserved.
func toLowerASCII(b []byte) []byte {
	if len(b) == 0 {
		return b
	}

	result := make([]byte, len(b))
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			result[i] = c + 32
		} else {
			result[i] = c
		}
	}
	return result
}
