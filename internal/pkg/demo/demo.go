// Package demo narrates a walk through the search: failure functions, matches with
// context, edge cases and a performance table.
package demo

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/endorses/kmpcat/internal/pkg/bench"
	"github.com/endorses/kmpcat/internal/pkg/kmp"
	"github.com/endorses/kmpcat/internal/pkg/present"
	"github.com/endorses/kmpcat/internal/pkg/verify"
)

// Options tunes a demonstration run.
type Options struct {
	// ContextRadius is the snippet radius around each match.
	ContextRadius int

	// Bench configures the performance section.
	Bench bench.Config
}

// DefaultOptions returns the options used by `kmpcat demo`.
func DefaultOptions() Options {
	return Options{
		ContextRadius: present.DefaultContextRadius,
		Bench:         bench.DefaultConfig(),
	}
}

type textSample struct {
	title   string
	text    string
	pattern string
	preview int
}

var samples = []textSample{
	{
		title:   "DEMO 1: SHORT STRING TEST",
		text:    "ABABDABACDABABCABAB",
		pattern: "ABABCABAB",
	},
	{
		title: "DEMO 2: MEDIUM STRING TEST",
		text: "The Knuth-Morris-Pratt algorithm is an efficient string matching " +
			"algorithm that finds occurrences of a pattern within a text. " +
			"The algorithm preprocesses the pattern to create a failure function, " +
			"which allows it to skip unnecessary comparisons during the search. " +
			"This makes the algorithm very efficient for string searching tasks.",
		pattern: "algorithm",
		preview: 100,
	},
	{
		title: "DEMO 3: LONG STRING TEST",
		text: "In computer science, the Knuth-Morris-Pratt string-searching algorithm " +
			"(or KMP algorithm) searches for occurrences of a word within a main text " +
			"string by employing the observation that when a mismatch occurs, the word " +
			"itself embodies sufficient information to determine where the next match " +
			"could begin, thus bypassing re-examination of previously matched characters. " +
			"The algorithm was conceived by James H. Morris and independently discovered " +
			"by Donald Knuth and Vaughan Pratt. The three published it jointly in 1977. " +
			"The algorithm compares characters from left to right. When a mismatch occurs, " +
			"the algorithm uses a preprocessed table to skip some comparisons. This table " +
			"determines how many characters can be skipped based on what has already been " +
			"matched. The key insight is that if we have matched some prefix of the pattern " +
			"and then encounter a mismatch, we don't need to start over from the beginning. " +
			"Instead, we can use information from the pattern itself to determine the next " +
			"possible starting position for a match. This optimization is what makes KMP " +
			"algorithm so efficient compared to naive string matching approaches.",
		pattern: "algorithm",
		preview: 120,
	},
}

// Run writes the full demonstration to w.
func Run(ctx context.Context, w io.Writer, opts Options) error {
	p := present.NewPrinter(w)
	p.ContextRadius = opts.ContextRadius

	p.Printf("\n")
	p.Banner("KMP STRING MATCHING ALGORITHM - DEMONSTRATION")

	for _, s := range samples {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := runSample(p, s); err != nil {
			return err
		}
	}

	p.Heading("DEMO 4: EDGE CASES")
	if err := verify.WriteSummary(w, verify.RunCases(verify.EdgeCases, nil)); err != nil {
		return err
	}
	p.Printf("\n")

	p.Heading("DEMO 5: PERFORMANCE ANALYSIS")
	p.Printf("Search time for growing text sizes:\n\n")
	report, err := bench.Run(ctx, opts.Bench, nil)
	if err != nil {
		return fmt.Errorf("performance section: %w", err)
	}
	if err := bench.WriteTable(w, report); err != nil {
		return err
	}

	p.Printf("\n")
	p.Banner("DEMONSTRATION COMPLETED")
	return p.Err()
}

func runSample(p *present.Printer, s textSample) error {
	p.Heading(s.title)

	if s.preview > 0 && s.preview < len(s.text) {
		p.Printf("Text preview: %q\n", s.text[:s.preview]+"...")
		p.Printf("Full length: %d characters\n\n", len(s.text))
	} else {
		p.Printf("Text: %q\n", s.text)
		p.Printf("Length: %d characters\n\n", len(s.text))
	}

	if err := p.FailureFunction(s.pattern, kmp.FailureFunction(s.pattern)); err != nil {
		return err
	}

	startTime := time.Now()
	matches := kmp.SearchString(s.text, s.pattern)
	elapsed := time.Since(startTime)

	return p.Results(present.Result{
		Text:    s.text,
		Pattern: s.pattern,
		Matches: matches,
		Elapsed: elapsed,
	})
}
