package demo

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	opts := DefaultOptions()
	opts.Bench.Tolerance = 1000

	var buf bytes.Buffer
	require.NoError(t, Run(context.Background(), &buf, opts))

	out := buf.String()
	for _, want := range []string{
		"KMP STRING MATCHING ALGORITHM - DEMONSTRATION",
		"### DEMO 1: SHORT STRING TEST ###",
		"LPS Array: [0, 0, 1, 2, 0, 1, 2, 3, 4]",
		"Found 1 match(es) at position(s): [10]",
		"### DEMO 2: MEDIUM STRING TEST ###",
		"Text preview:",
		"LPS Array: [0, 0, 0, 0, 0, 0, 0, 0, 0]",
		"### DEMO 3: LONG STRING TEST ###",
		"Full length: 1131 characters",
		"Found 6 match(es) at position(s): [61, 79, 372, 523, 601, 1063]",
		"### DEMO 4: EDGE CASES ###",
		"6 passed, 0 failed",
		"### DEMO 5: PERFORMANCE ANALYSIS ###",
		"Text Size | Pattern | Matches | Time (ms) | Status",
		"DEMONSTRATION COMPLETED",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "FAIL")
	assert.Equal(t, 3, strings.Count(out, "Context snippets:"))
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, &bytes.Buffer{}, DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_InvalidBench(t *testing.T) {
	opts := DefaultOptions()
	opts.Bench.Sizes = nil

	err := Run(context.Background(), &bytes.Buffer{}, opts)
	assert.ErrorContains(t, err, "performance section")
}
