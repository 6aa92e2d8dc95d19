package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/endorses/kmpcat/internal/pkg/cmdutil"
	"github.com/endorses/kmpcat/internal/pkg/filtering"
	"github.com/endorses/kmpcat/internal/pkg/kmp"
	"github.com/endorses/kmpcat/internal/pkg/logger"
	"github.com/endorses/kmpcat/internal/pkg/output"
	"github.com/endorses/kmpcat/internal/pkg/present"
	"github.com/spf13/cobra"
)

// SearchCmd reports every occurrence of a pattern in text, files or stdin.
var SearchCmd = newSearchCmd()

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search PATTERN [FILE...]",
		Short: "Find every occurrence of a pattern",
		Long: `Find every occurrence of PATTERN, overlapping ones included, and print the
byte offset of each match with a snippet of surrounding text.

The text is read from --text, from each FILE, or from stdin when no FILE is
given ("-" also means stdin). Several files are searched in parallel.

With --wildcards a leading or trailing "*" anchors the pattern:
  "*.log"   matches only at the end of the text
  "GET *"   matches only at the start of the text
  "\*x"     matches a literal "*x"

Examples:
  kmpcat search ABABCABAB --text ABABDABACDABABCABAB
  kmpcat search -i error /var/log/syslog
  kmpcat search --count needle a.txt b.txt c.txt
  cat notes.md | kmpcat search --json TODO`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().StringP("text", "t", "", "search this text instead of files or stdin")
	cmd.Flags().BoolP("ignore-case", "i", false, "fold ASCII letters before matching")
	cmd.Flags().BoolP("wildcards", "w", false, "interpret leading/trailing * as anchors")
	cmd.Flags().IntP("context", "C", present.DefaultContextRadius, "bytes of context around each match")
	cmd.Flags().BoolP("count", "c", false, "print only the number of matches per input")
	cmd.Flags().Bool("report", false, "print a full report per input")
	cmd.Flags().Bool("json", false, "print results as JSON")
	cmd.Flags().IntP("parallel", "j", 0, "maximum inputs searched at once (0 = GOMAXPROCS)")

	cmd.MarkFlagsMutuallyExclusive("count", "report", "json")

	return cmd
}

// Options control a search run.
type Options struct {
	IgnoreCase    bool
	Wildcards     bool
	ContextRadius int
	Count         bool
	Report        bool
	JSON          bool
	Parallel      int
}

// Input is one named text to search.
type Input struct {
	Name string
	Data []byte
}

// Result is the machine-readable outcome for one input.
type Result struct {
	Name    string          `json:"name"`
	Query   filtering.Query `json:"query"`
	Count   int             `json:"count"`
	Matches []int           `json:"matches"`
}

const (
	textInputName  = "<text>"
	stdinInputName = "<stdin>"
)

func runSearch(cmd *cobra.Command, args []string) error {
	opts := Options{
		IgnoreCase:    cmdutil.GetBool(cmd, "ignore-case", "search.ignore_case"),
		Wildcards:     cmdutil.GetBool(cmd, "wildcards", "search.wildcards"),
		ContextRadius: cmdutil.GetInt(cmd, "context", "search.context"),
		Parallel:      cmdutil.GetInt(cmd, "parallel", "search.parallel"),
	}
	opts.Count, _ = cmd.Flags().GetBool("count")
	opts.Report, _ = cmd.Flags().GetBool("report")
	opts.JSON, _ = cmd.Flags().GetBool("json")

	var text *string
	if cmd.Flags().Changed("text") {
		t, _ := cmd.Flags().GetString("text")
		text = &t
	}

	inputs, err := ReadInputs(cmd.InOrStdin(), args[1:], text)
	if err != nil {
		return err
	}

	return Run(cmd.Context(), cmd.OutOrStdout(), args[0], inputs, opts)
}

// ReadInputs collects the texts to search. A non-nil text wins and cannot be
// combined with files; otherwise each file is read, "-" or no files meaning stdin.
func ReadInputs(stdin io.Reader, files []string, text *string) ([]Input, error) {
	if text != nil {
		if len(files) > 0 {
			return nil, errors.New("--text cannot be combined with FILE arguments")
		}
		return []Input{{Name: textInputName, Data: []byte(*text)}}, nil
	}

	if len(files) == 0 {
		files = []string{"-"}
	}

	inputs := make([]Input, 0, len(files))
	stdinRead := false
	for _, name := range files {
		if name == "-" {
			if stdinRead {
				return nil, errors.New("stdin given more than once")
			}
			stdinRead = true
			data, err := io.ReadAll(stdin)
			if err != nil {
				return nil, fmt.Errorf("read stdin: %w", err)
			}
			inputs = append(inputs, Input{Name: stdinInputName, Data: data})
			continue
		}

		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		inputs = append(inputs, Input{Name: name, Data: data})
	}
	return inputs, nil
}

// Run searches every input for rawPattern and writes the results to w.
func Run(ctx context.Context, w io.Writer, rawPattern string, inputs []Input, opts Options) error {
	query := filtering.ParseQuery(rawPattern, opts.Wildcards)

	var matcherOpts []kmp.Option
	if opts.IgnoreCase {
		matcherOpts = append(matcherOpts, kmp.WithFoldCase())
	}
	if opts.Parallel > 0 {
		matcherOpts = append(matcherOpts, kmp.WithConcurrency(opts.Parallel))
	}
	m := kmp.Compile(query.Pattern, matcherOpts...)

	startTime := time.Now()
	matches, err := find(ctx, m, query.Type, inputs)
	if err != nil {
		return err
	}
	elapsed := time.Since(startTime)

	logger.Debug("Search finished",
		"pattern_len", m.Len(),
		"type", query.Type.String(),
		"inputs", len(inputs),
		"duration", elapsed)

	results := make([]Result, len(inputs))
	for i, in := range inputs {
		results[i] = Result{
			Name:    in.Name,
			Query:   query,
			Count:   len(matches[i]),
			Matches: matches[i],
		}
	}

	switch {
	case opts.JSON:
		data, err := output.MarshalJSON(results)
		if err != nil {
			return fmt.Errorf("marshal results: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case opts.Count:
		return writeCounts(w, results)
	case opts.Report:
		return writeReports(w, query, inputs, results, elapsed, opts.ContextRadius)
	default:
		return writeMatches(w, query, inputs, results, opts.ContextRadius)
	}
}

// find runs unanchored queries as a parallel batch; anchored ones need at most
// one match per input and run inline.
func find(ctx context.Context, m *kmp.Matcher, patternType filtering.PatternType, inputs []Input) ([][]int, error) {
	if patternType == filtering.PatternTypeContains {
		texts := make([][]byte, len(inputs))
		for i, in := range inputs {
			texts[i] = in.Data
		}
		return m.MatchBatch(ctx, texts)
	}

	matches := make([][]int, len(inputs))
	for i, in := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		matches[i] = m.MatchType(in.Data, patternType)
	}
	return matches, nil
}

func writeCounts(w io.Writer, results []Result) error {
	for _, r := range results {
		var err error
		if len(results) > 1 {
			_, err = fmt.Fprintf(w, "%s:%d\n", r.Name, r.Count)
		} else {
			_, err = fmt.Fprintf(w, "%d\n", r.Count)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func writeMatches(w io.Writer, query filtering.Query, inputs []Input, results []Result, radius int) error {
	for i, r := range results {
		text := string(inputs[i].Data)
		for _, pos := range r.Matches {
			prefix := ""
			if len(results) > 1 {
				prefix = r.Name + ":"
			}
			snippet := present.Snippet(text, pos, len(query.Pattern), radius)
			if _, err := fmt.Fprintf(w, "%s%d: %s\n", prefix, pos, snippet); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeReports(w io.Writer, query filtering.Query, inputs []Input, results []Result, elapsed time.Duration, radius int) error {
	p := present.NewPrinter(w)
	p.ContextRadius = radius
	for i, r := range results {
		if len(results) > 1 {
			p.Heading(r.Name)
		}
		if err := p.Results(present.Result{
			Text:    string(inputs[i].Data),
			Pattern: query.Pattern,
			Matches: r.Matches,
			Elapsed: elapsed,
		}); err != nil {
			return err
		}
	}
	return nil
}
