// Package kmp provides an implementation of the Knuth-Morris-Pratt string matching algorithm.
// The algorithm finds every occurrence of a pattern in a text in O(n + m) time, where n is
// the text length and m is the pattern length, independent of how adversarial the input is.
//
// The package exposes two pure operations, BuildFailureFunction and Search, plus a compiled
// Matcher for callers that search many texts for the same pattern.
package kmp

import (
	"errors"
	"fmt"
)

// ErrInvalidFailureFunction is returned by ValidateFailureFunction when a table
// violates the prefix-suffix invariants and could drive the scanner out of range.
var ErrInvalidFailureFunction = errors.New("invalid failure function")

// ValidateFailureFunction checks that lps is a well-formed failure function:
// lps[0] == 0, 0 <= lps[i] <= i and lps[i] <= lps[i-1]+1.
// An empty table is valid (it belongs to the empty pattern).
func ValidateFailureFunction(lps []int) error {
	if len(lps) == 0 {
		return nil
	}
	if lps[0] != 0 {
		return fmt.Errorf("%w: lps[0] = %d, want 0", ErrInvalidFailureFunction, lps[0])
	}
	for i := 1; i < len(lps); i++ {
		switch {
		case lps[i] < 0:
			return fmt.Errorf("%w: lps[%d] = %d is negative", ErrInvalidFailureFunction, i, lps[i])
		case lps[i] > i:
			return fmt.Errorf("%w: lps[%d] = %d is not a proper prefix length", ErrInvalidFailureFunction, i, lps[i])
		case lps[i] > lps[i-1]+1:
			return fmt.Errorf("%w: lps[%d] = %d grows faster than lps[%d]+1", ErrInvalidFailureFunction, i, lps[i], i-1)
		}
	}
	return nil
}
