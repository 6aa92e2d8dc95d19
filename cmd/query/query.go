package query

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/endorses/kmpcat/internal/pkg/cmdutil"
	"github.com/endorses/kmpcat/internal/pkg/filtering"
	"github.com/endorses/kmpcat/internal/pkg/kmp"
	"github.com/endorses/kmpcat/internal/pkg/logger"
	"github.com/endorses/kmpcat/internal/pkg/output"
	"github.com/endorses/kmpcat/internal/pkg/present"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// QueryCmd answers a stream of queries against one text.
var QueryCmd = newQueryCmd()

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query FILE",
		Short: "Answer queries read from stdin against one text",
		Long: `Load FILE once, then read one query per line from stdin and print the
match positions of each. Compiled patterns are kept in an LRU cache
(config key cache.size), so repeated queries skip preprocessing.

Each answer is one line: QUERY<TAB>COUNT<TAB>[POSITIONS], or a JSON object
per line with --json. Empty lines are skipped and a query line may be up
to 16 MiB long.

Examples:
  printf 'needle\nhay\nneedle\n' | kmpcat query haystack.txt
  kmpcat query -w --stats access.log < queries.txt`,
		Args: cobra.ExactArgs(1),
		RunE: runQuery,
	}

	cmd.Flags().BoolP("ignore-case", "i", false, "fold ASCII letters before matching")
	cmd.Flags().BoolP("wildcards", "w", false, "interpret leading/trailing * as anchors")
	cmd.Flags().Bool("json", false, "print one JSON object per answer")
	cmd.Flags().Bool("stats", false, "print cache statistics to stderr when done")

	return cmd
}

// Options control a query session.
type Options struct {
	IgnoreCase bool
	Wildcards  bool
	JSON       bool
	Stats      bool
	CacheSize  int
}

// MaxQueryLen is the longest query line accepted, in bytes.
const MaxQueryLen = 16 * 1024 * 1024

// Answer is the outcome of one query.
type Answer struct {
	Query   filtering.Query `json:"query"`
	Count   int             `json:"count"`
	Matches []int           `json:"matches"`
}

func runQuery(cmd *cobra.Command, args []string) error {
	opts := Options{
		IgnoreCase: cmdutil.GetBool(cmd, "ignore-case", "search.ignore_case"),
		Wildcards:  cmdutil.GetBool(cmd, "wildcards", "search.wildcards"),
		CacheSize:  viper.GetInt("cache.size"),
	}
	opts.JSON, _ = cmd.Flags().GetBool("json")
	opts.Stats, _ = cmd.Flags().GetBool("stats")

	text, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	return Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), text, opts)
}

// Run answers each line of queries against text until queries is exhausted or
// ctx is done.
func Run(ctx context.Context, queries io.Reader, w, stats io.Writer, text []byte, opts Options) error {
	size := opts.CacheSize
	if size <= 0 {
		size = kmp.DefaultCacheSize
	}
	cache, err := kmp.NewCache(size)
	if err != nil {
		return err
	}

	var matcherOpts []kmp.Option
	if opts.IgnoreCase {
		matcherOpts = append(matcherOpts, kmp.WithFoldCase())
	}

	scanner := bufio.NewScanner(queries)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxQueryLen)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}

		q := filtering.ParseQuery(line, opts.Wildcards)
		matches := cache.Get(q.Pattern, matcherOpts...).MatchType(text, q.Type)

		if err := writeAnswer(w, Answer{Query: q, Count: len(matches), Matches: matches}, line, opts.JSON); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read queries: %w", err)
	}

	s := cache.Stats()
	logger.Debug("Query session finished",
		"cached", s.Size,
		"hits", s.Hits,
		"misses", s.Misses,
		"evictions", s.Evictions)

	if opts.Stats {
		_, err := fmt.Fprintf(stats, "cache: size=%d hits=%d misses=%d evictions=%d last_compile=%s\n",
			s.Size, s.Hits, s.Misses, s.Evictions, s.LastCompileDuration)
		return err
	}
	return nil
}

func writeAnswer(w io.Writer, a Answer, line string, asJSON bool) error {
	if asJSON {
		data, err := output.MarshalJSONPretty(a, false)
		if err != nil {
			return fmt.Errorf("marshal answer: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	_, err := fmt.Fprintf(w, "%s\t%d\t%s\n", line, a.Count, present.FormatInts(a.Matches))
	return err
}
