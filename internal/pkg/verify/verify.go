// Package verify runs fixed search and failure-function cases and reports observed
// against expected results.
package verify

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/endorses/kmpcat/internal/pkg/kmp"
	"github.com/endorses/kmpcat/internal/pkg/present"
)

// ErrFailed is returned by Summary.Err when at least one case failed.
var ErrFailed = errors.New("verification failed")

// SearchCase is a search with its expected match positions.
type SearchCase struct {
	Name    string
	Text    string
	Pattern string
	Want    []int
}

// FailureCase is a pattern with its expected failure function.
type FailureCase struct {
	Pattern string
	Want    []int
}

// SearchOutcome is the observed result of a SearchCase.
type SearchOutcome struct {
	Case    SearchCase
	Got     []int
	Pass    bool
	Elapsed time.Duration
}

// FailureOutcome is the observed result of a FailureCase. Invalid holds the
// validator's complaint, if any.
type FailureOutcome struct {
	Case    FailureCase
	Got     []int
	Invalid string
	Pass    bool
}

// Summary collects every outcome of a verification run.
type Summary struct {
	Searches         []SearchOutcome
	FailureFunctions []FailureOutcome
	Passed           int
	Failed           int
}

// Err returns an error wrapping ErrFailed if any case failed.
func (s Summary) Err() error {
	if s.Failed == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d of %d case(s)", ErrFailed, s.Failed, s.Passed+s.Failed)
}

// EdgeCases are the degenerate and overlap cases of the demonstration.
var EdgeCases = []SearchCase{
	{Name: "Empty pattern", Text: "test string", Pattern: "", Want: []int{}},
	{Name: "Pattern longer than text", Text: "short", Pattern: "this is a very long pattern", Want: []int{}},
	{Name: "Pattern not found", Text: "hello world", Pattern: "xyz", Want: []int{}},
	{Name: "Single character pattern", Text: "aaaaa", Pattern: "a", Want: []int{0, 1, 2, 3, 4}},
	{Name: "Pattern equals text", Text: "match", Pattern: "match", Want: []int{0}},
	{Name: "Overlapping patterns", Text: "AAAA", Pattern: "AA", Want: []int{0, 1, 2}},
}

// AlgorithmCases exercise the failure function during scanning.
var AlgorithmCases = []SearchCase{
	{Name: "Short string", Text: "ABABDABACDABABCABAB", Pattern: "ABABCABAB", Want: []int{10}},
	{Name: "Multiple occurrences", Text: "AAABAAABAAAB", Pattern: "AAAB", Want: []int{0, 4, 8}},
	{Name: "Self-overlapping pattern", Text: "ABABABAB", Pattern: "ABAB", Want: []int{0, 2, 4}},
	{Name: "Complex repeating pattern", Text: "AABAACAABAABAACAABA", Pattern: "AABAACAABA", Want: []int{0, 9}},
	{Name: "Repeated characters", Text: "aaaaaaaaaa", Pattern: "aaa", Want: []int{0, 1, 2, 3, 4, 5, 6, 7}},
	{Name: "Partial overlaps", Text: "ABABCABABA", Pattern: "ABA", Want: []int{0, 5, 7}},
	{Name: "Repeated words", Text: "hello hello hello", Pattern: "hello", Want: []int{0, 6, 12}},
	{Name: "Adjacent repeats", Text: "abcabc", Pattern: "abc", Want: []int{0, 3}},
}

// FailureCases are patterns with known failure functions.
var FailureCases = []FailureCase{
	{Pattern: "ABABCABAB", Want: []int{0, 0, 1, 2, 0, 1, 2, 3, 4}},
	{Pattern: "AAAA", Want: []int{0, 1, 2, 3}},
	{Pattern: "ABCDE", Want: []int{0, 0, 0, 0, 0}},
	{Pattern: "A", Want: []int{0}},
}

// Run verifies the built-in cases.
func Run() Summary {
	return RunCases(slices.Concat(EdgeCases, AlgorithmCases), FailureCases)
}

// RunCases verifies the given cases.
func RunCases(searches []SearchCase, failures []FailureCase) Summary {
	var s Summary

	for _, c := range searches {
		startTime := time.Now()
		got := kmp.SearchString(c.Text, c.Pattern)
		elapsed := time.Since(startTime)

		pass := slices.Equal(got, c.Want)
		s.Searches = append(s.Searches, SearchOutcome{Case: c, Got: got, Pass: pass, Elapsed: elapsed})
		s.count(pass)
	}

	for _, c := range failures {
		got := kmp.FailureFunction(c.Pattern)
		outcome := FailureOutcome{Case: c, Got: got}
		if err := kmp.ValidateFailureFunction(got); err != nil {
			outcome.Invalid = err.Error()
		}
		outcome.Pass = outcome.Invalid == "" && slices.Equal(got, c.Want)
		s.FailureFunctions = append(s.FailureFunctions, outcome)
		s.count(outcome.Pass)
	}

	return s
}

func (s *Summary) count(pass bool) {
	if pass {
		s.Passed++
	} else {
		s.Failed++
	}
}

// WriteSummary prints each case with its observed and expected result.
func WriteSummary(w io.Writer, s Summary) error {
	p := present.NewPrinter(w)

	for _, o := range s.Searches {
		p.Printf("%s\n", o.Case.Name)
		p.Printf("  Text: %q\n", o.Case.Text)
		p.Printf("  Pattern: %q\n", o.Case.Pattern)
		p.Printf("  Result: %s\n", present.FormatInts(o.Got))
		p.Printf("  Expected: %s\n", present.FormatInts(o.Case.Want))
		p.Printf("  Time: %s ms\n", present.FormatMillis(o.Elapsed))
		p.Printf("  Status: %s\n\n", p.Verdict(o.Pass))
	}

	for _, o := range s.FailureFunctions {
		p.Printf("LPS %q: %s expected %s %s\n",
			o.Case.Pattern, present.FormatInts(o.Got), present.FormatInts(o.Case.Want), p.Verdict(o.Pass))
		if o.Invalid != "" {
			p.Printf("  %s\n", o.Invalid)
		}
	}

	p.Printf("\n%d passed, %d failed\n", s.Passed, s.Failed)
	return p.Err()
}
