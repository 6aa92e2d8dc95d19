package kmp

import (
	"iter"
	"slices"
	"unsafe"
)

// Search returns the start offsets of every occurrence of pattern in text, in
// increasing order, overlapping occurrences included.
//
// Search is total: a nil text or pattern, an empty pattern, or a pattern longer
// than the text all yield an empty result rather than an error.
func Search[T comparable](text, pattern []T) []int {
	if text == nil || pattern == nil || len(pattern) == 0 || len(pattern) > len(text) {
		return []int{}
	}
	matches := slices.Collect(All(text, pattern, BuildFailureFunction(pattern)))
	if matches == nil {
		return []int{}
	}
	return matches
}

// SearchString is Search over the bytes of two strings. Offsets are byte offsets.
func SearchString(text, pattern string) []int {
	if len(pattern) == 0 || len(pattern) > len(text) {
		return []int{}
	}
	return Search(stringBytes(text), stringBytes(pattern))
}

// stringBytes views s as a byte slice without copying. The result must never be written.
func stringBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	// #nosec G103 -- read-only view, the scanner never writes to its inputs
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// All returns a lazy sequence of match offsets of pattern in text, driven by the
// precomputed failure function lps. The sequence is empty for the same degenerate
// inputs Search normalizes, and for a table whose length differs from the pattern.
//
// Callers that pass their own table are expected to have built it with
// BuildFailureFunction (or checked it with ValidateFailureFunction).
func All[T comparable](text, pattern []T, lps []int) iter.Seq[int] {
	return func(yield func(int) bool) {
		n, m := len(text), len(pattern)
		if m == 0 || m > n || len(lps) != m {
			return
		}

		i, j := 0, 0 // i indexes text, j indexes pattern
		for i < n {
			if text[i] == pattern[j] {
				i++
				j++
			}

			if j == m {
				// Full match ending at i
				if !yield(i - j) {
					return
				}
				j = lps[j-1]
			} else if i < n && text[i] != pattern[j] {
				if j != 0 {
					// Reuse the matched prefix-suffix instead of rescanning text
					j = lps[j-1]
				} else {
					i++
				}
			}
		}
	}
}
