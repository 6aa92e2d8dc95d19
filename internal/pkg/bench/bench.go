// Package bench times repeated searches over synthetic texts of growing size and
// checks that the running time grows linearly with the text.
package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/endorses/kmpcat/internal/pkg/kmp"
	"github.com/endorses/kmpcat/internal/pkg/logger"
	"github.com/endorses/kmpcat/internal/pkg/present"
	"github.com/endorses/kmpcat/internal/pkg/version"
	"github.com/google/uuid"
)

var (
	// ErrInvalidConfig is returned by Run for an unusable configuration.
	ErrInvalidConfig = errors.New("invalid benchmark configuration")

	// ErrNotLinear marks a report whose timings grew faster than allowed.
	ErrNotLinear = errors.New("search time grew faster than linear")
)

// Modes of text generation.
const (
	ModeGenerated   = "generated"
	ModeAdversarial = "adversarial"
)

// fastMillisPerByte is the time budget per text byte under which a row is "fast".
const fastMillisPerByte = 0.01

// Config controls a benchmark run.
type Config struct {
	Pattern     string
	Sizes       []int
	Repeat      int
	Adversarial bool
	Tolerance   float64
}

// DefaultConfig mirrors the demonstration's performance table.
func DefaultConfig() Config {
	return Config{
		Pattern:   "test",
		Sizes:     []int{100, 500, 1000, 5000, 10000},
		Repeat:    5,
		Tolerance: 3,
	}
}

func (c Config) validate() error {
	if c.Pattern == "" {
		return fmt.Errorf("%w: empty pattern", ErrInvalidConfig)
	}
	if len(c.Sizes) == 0 {
		return fmt.Errorf("%w: no text sizes", ErrInvalidConfig)
	}
	for _, size := range c.Sizes {
		if size <= 0 {
			return fmt.Errorf("%w: text size %d must be positive", ErrInvalidConfig, size)
		}
	}
	if c.Repeat <= 0 {
		return fmt.Errorf("%w: repeat %d must be positive", ErrInvalidConfig, c.Repeat)
	}
	if c.Tolerance <= 0 {
		return fmt.Errorf("%w: tolerance %v must be positive", ErrInvalidConfig, c.Tolerance)
	}
	return nil
}

// Row is the measurement for one text size.
type Row struct {
	Size       int           `json:"size" yaml:"size"`
	TextLength int           `json:"text_length" yaml:"text_length"`
	Matches    int           `json:"matches" yaml:"matches"`
	Duration   time.Duration `json:"-" yaml:"-"`
	ElapsedMs  float64       `json:"elapsed_ms" yaml:"elapsed_ms"`
	NsPerByte  float64       `json:"ns_per_byte" yaml:"ns_per_byte"`
	Fast       bool          `json:"fast" yaml:"fast"`
}

// Report is the outcome of a benchmark run.
type Report struct {
	RunID      string       `json:"run_id" yaml:"run_id"`
	StartedAt  time.Time    `json:"started_at" yaml:"started_at"`
	Pattern    string       `json:"pattern" yaml:"pattern"`
	Mode       string       `json:"mode" yaml:"mode"`
	Repeat     int          `json:"repeat" yaml:"repeat"`
	Tolerance  float64      `json:"tolerance" yaml:"tolerance"`
	Rows       []Row        `json:"rows" yaml:"rows"`
	Linear     bool         `json:"linear" yaml:"linear"`
	Violations []string     `json:"violations,omitempty" yaml:"violations,omitempty"`
	Build      version.Info `json:"build" yaml:"build"`
}

// Err returns an error wrapping ErrNotLinear when the report failed the linearity check.
func (r *Report) Err() error {
	if r.Linear {
		return nil
	}
	return fmt.Errorf("%w: %d violation(s)", ErrNotLinear, len(r.Violations))
}

// Run measures search time for each configured size. Each size is searched
// cfg.Repeat times and the fastest run is kept; every run is recorded in metrics
// when metrics is non-nil.
func Run(ctx context.Context, cfg Config, metrics *Metrics) (*Report, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	mode := ModeGenerated
	if cfg.Adversarial {
		mode = ModeAdversarial
	}

	sizes := slices.Clone(cfg.Sizes)
	slices.Sort(sizes)

	report := &Report{
		RunID:     uuid.New().String(),
		StartedAt: time.Now(),
		Pattern:   cfg.Pattern,
		Mode:      mode,
		Repeat:    cfg.Repeat,
		Tolerance: cfg.Tolerance,
		Rows:      make([]Row, 0, len(sizes)),
		Build:     version.Get(),
	}
	log := logger.With("run_id", report.RunID, "mode", mode)

	pattern := []byte(cfg.Pattern)
	for _, size := range sizes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var text []byte
		if cfg.Adversarial {
			text = []byte(GenerateAdversarial(size, cfg.Pattern))
		} else {
			text = []byte(GenerateText(size, cfg.Pattern))
		}

		var (
			best    time.Duration = -1
			matches int
		)
		for i := 0; i < cfg.Repeat; i++ {
			startTime := time.Now()
			found := kmp.Search(text, pattern)
			elapsed := time.Since(startTime)

			matches = len(found)
			if best < 0 || elapsed < best {
				best = elapsed
			}
			if metrics != nil {
				metrics.observe(mode, size, len(text), elapsed)
			}
		}

		row := newRow(size, len(text), matches, best)
		report.Rows = append(report.Rows, row)
		log.Debug("Benchmark size measured",
			"size", size,
			"matches", matches,
			"duration", best)
	}

	report.Violations = CheckLinear(report.Rows, cfg.Tolerance)
	report.Linear = len(report.Violations) == 0
	if !report.Linear {
		log.Warn("Search time grew faster than linear", "violations", len(report.Violations))
	}

	return report, nil
}

func newRow(size, textLen, matches int, d time.Duration) Row {
	elapsedMs := float64(d) / float64(time.Millisecond)
	nsPerByte := 0.0
	if textLen > 0 {
		nsPerByte = float64(d.Nanoseconds()) / float64(textLen)
	}
	return Row{
		Size:       size,
		TextLength: textLen,
		Matches:    matches,
		Duration:   d,
		ElapsedMs:  elapsedMs,
		NsPerByte:  nsPerByte,
		Fast:       elapsedMs < float64(size)*fastMillisPerByte,
	}
}

// CheckLinear compares every row against the first one: the time ratio must stay
// below tolerance times the text length ratio. It returns one message per violation.
func CheckLinear(rows []Row, tolerance float64) []string {
	if len(rows) < 2 {
		return nil
	}

	base := rows[0]
	baseTime := max(base.Duration, time.Nanosecond)
	baseLen := max(base.TextLength, 1)

	var violations []string
	for _, row := range rows[1:] {
		sizeRatio := float64(row.TextLength) / float64(baseLen)
		timeRatio := float64(row.Duration) / float64(baseTime)
		if timeRatio >= sizeRatio*tolerance {
			violations = append(violations, fmt.Sprintf(
				"size %d: time grew %.1fx for %.1fx more text (limit %.1fx)",
				row.Size, timeRatio, sizeRatio, sizeRatio*tolerance))
		}
	}
	return violations
}

// WriteTable writes the report as a human-readable table.
func WriteTable(w io.Writer, report *Report) error {
	p := present.NewPrinter(w)

	p.Printf("Text Size | Pattern | Matches | Time (ms) | Status\n")
	p.Printf("%s\n", "-------------------------------------------------------")
	for _, row := range report.Rows {
		p.Printf("%8d  | %-7s | %7d | %9.4f | %s\n",
			row.TextLength, truncate(report.Pattern, 7), row.Matches, row.ElapsedMs, p.Speed(row.Fast))
	}

	p.Printf("\n%s %s (tolerance %.1fx)\n", p.Label("Linear growth:"), p.Verdict(report.Linear), report.Tolerance)
	for _, v := range report.Violations {
		p.Printf("  %s\n", v)
	}
	p.Printf("%s\n", p.Dim("run "+report.RunID))
	return p.Err()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "~"
}
