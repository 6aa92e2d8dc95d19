package bench

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/endorses/kmpcat/internal/pkg/kmp"
	"github.com/endorses/kmpcat/internal/pkg/output"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateText(t *testing.T) {
	text := GenerateText(1000, "test")
	assert.GreaterOrEqual(t, len(text), 1000)
	assert.True(t, strings.HasPrefix(text, "abc abc "))

	// Replay the rule on lengths alone: "test " goes in once the length reaches the
	// next multiple of 100, otherwise 4 bytes of "abc " filler. Each insertion adds
	// 5 bytes, so the filler overshoots by one more each time until 408 lands on 500.
	want := []int{}
	length, next := 0, 100
	for length < 1000 {
		if length >= next {
			want = append(want, length)
			length += len("test ")
			next += 100
		} else {
			length += len("abc ")
		}
	}
	assert.Equal(t, []int{100, 201, 302, 403, 500, 601, 702, 803, 900}, want)
	assert.Equal(t, want, kmp.SearchString(text, "test"))

	assert.Equal(t, "", GenerateText(0, "test"))
}

func TestGenerateAdversarial(t *testing.T) {
	assert.Equal(t, "AAAA", GenerateAdversarial(4, DefaultAdversarialPattern))
	assert.Equal(t, "", GenerateAdversarial(4, ""))
	assert.Equal(t, "", GenerateAdversarial(0, "x"))
	assert.Empty(t, kmp.SearchString(GenerateAdversarial(1000, DefaultAdversarialPattern), DefaultAdversarialPattern))
}

func TestRun(t *testing.T) {
	metrics := NewMetrics()
	cfg := Config{
		Pattern:   "test",
		Sizes:     []int{5000, 1000},
		Repeat:    3,
		Tolerance: 1000,
	}

	report, err := Run(context.Background(), cfg, metrics)
	require.NoError(t, err)

	_, err = uuid.Parse(report.RunID)
	assert.NoError(t, err)
	assert.Equal(t, ModeGenerated, report.Mode)
	require.Len(t, report.Rows, 2)

	// Rows are reported in increasing size order
	assert.Equal(t, 1000, report.Rows[0].Size)
	assert.Equal(t, 5000, report.Rows[1].Size)
	for _, row := range report.Rows {
		assert.Equal(t, len(kmp.SearchString(GenerateText(row.Size, "test"), "test")), row.Matches)
		assert.GreaterOrEqual(t, row.TextLength, row.Size)
	}
	assert.True(t, report.Linear)
	assert.NoError(t, report.Err())

	families, err := metrics.Gather()
	require.NoError(t, err)

	counts := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				counts[mf.GetName()] += m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				counts[mf.GetName()] += float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	assert.Equal(t, float64(6), counts["kmpcat_searches_total"])
	assert.Equal(t, float64(6), counts["kmpcat_search_duration_seconds"])
	assert.Equal(t, float64(3*(report.Rows[0].TextLength+report.Rows[1].TextLength)), counts["kmpcat_bytes_scanned_total"])

	var text bytes.Buffer
	require.NoError(t, metrics.WriteText(&text))
	assert.Contains(t, text.String(), "# TYPE kmpcat_searches_total counter")
	assert.Contains(t, text.String(), `kmpcat_searches_total{mode="generated"} 6`)
	assert.Contains(t, text.String(), `kmpcat_search_duration_seconds_count{mode="generated",size="1000"} 3`)
}

func TestRun_Adversarial(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pattern = DefaultAdversarialPattern
	cfg.Adversarial = true
	cfg.Tolerance = 1000

	report, err := Run(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, ModeAdversarial, report.Mode)
	for _, row := range report.Rows {
		assert.Equal(t, row.Size, row.TextLength)
		assert.Zero(t, row.Matches)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty pattern", mutate: func(c *Config) { c.Pattern = "" }},
		{name: "no sizes", mutate: func(c *Config) { c.Sizes = nil }},
		{name: "negative size", mutate: func(c *Config) { c.Sizes = []int{100, -1} }},
		{name: "zero repeat", mutate: func(c *Config) { c.Repeat = 0 }},
		{name: "zero tolerance", mutate: func(c *Config) { c.Tolerance = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			_, err := Run(context.Background(), cfg, nil)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, DefaultConfig(), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCheckLinear(t *testing.T) {
	rows := []Row{
		{Size: 100, TextLength: 100, Duration: time.Microsecond},
		{Size: 1000, TextLength: 1000, Duration: 10 * time.Microsecond},
		{Size: 10000, TextLength: 10000, Duration: 250 * time.Microsecond},
		{Size: 20000, TextLength: 20000, Duration: 700 * time.Microsecond},
	}

	violations := CheckLinear(rows, 3)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "size 20000")

	assert.Empty(t, CheckLinear(rows[:1], 3))
	assert.Empty(t, CheckLinear(nil, 3))
}

func TestCheckLinear_ZeroBase(t *testing.T) {
	rows := []Row{
		{Size: 10, TextLength: 10, Duration: 0},
		{Size: 100, TextLength: 100, Duration: 20 * time.Nanosecond},
	}
	assert.Empty(t, CheckLinear(rows, 3))
}

func TestReportErr(t *testing.T) {
	r := &Report{Linear: false, Violations: []string{"size 10"}}
	assert.ErrorIs(t, r.Err(), ErrNotLinear)
}

func TestWriteTable(t *testing.T) {
	report := &Report{
		RunID:     "run-1",
		Pattern:   "pattern-too-long",
		Tolerance: 3,
		Linear:    true,
		Rows: []Row{
			{Size: 100, TextLength: 104, Matches: 1, ElapsedMs: 0.0021, Fast: true},
			{Size: 500, TextLength: 504, Matches: 4, ElapsedMs: 9, Fast: false},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, report))

	out := buf.String()
	assert.Contains(t, out, "Text Size | Pattern | Matches | Time (ms) | Status")
	assert.Contains(t, out, "     104  | patter~ |       1 |    0.0021 | Fast")
	assert.Contains(t, out, "Check")
	assert.Contains(t, out, "Linear growth: PASS")
	assert.Contains(t, out, "run run-1")
}

func TestReportMarshal(t *testing.T) {
	report := &Report{
		RunID:   "run-1",
		Pattern: "test",
		Mode:    ModeGenerated,
		Rows:    []Row{newRow(100, 104, 1, 2*time.Millisecond)},
		Linear:  true,
	}

	data, err := output.MarshalYAML(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), "run_id: run-1")
	assert.Contains(t, string(data), "elapsed_ms: 2")
	assert.NotContains(t, string(data), "duration")

	data, err = output.MarshalJSONPretty(report, false)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"ns_per_byte":`)
}
