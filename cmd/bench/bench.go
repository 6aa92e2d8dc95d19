package bench

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/endorses/kmpcat/internal/pkg/bench"
	"github.com/endorses/kmpcat/internal/pkg/cmdutil"
	"github.com/endorses/kmpcat/internal/pkg/output"
	"github.com/spf13/cobra"
)

// BenchCmd measures how search time grows with text size.
var BenchCmd = newBenchCmd()

func newBenchCmd() *cobra.Command {
	defaults := bench.DefaultConfig()
	defaultSizes := make([]string, len(defaults.Sizes))
	for i, size := range defaults.Sizes {
		defaultSizes[i] = strconv.Itoa(size)
	}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure search time against text size",
		Long: `Generate texts of increasing size, time a search of each and check that
the time grows linearly with the size of the text.

Sizes accept K, M and G suffixes. With --adversarial the texts repeat the
pattern's first byte, which maximises fallbacks through the failure function.

Examples:
  kmpcat bench
  kmpcat bench --sizes 10K,100K,1M --repeat 10 --format json
  kmpcat bench --adversarial --strict --metrics`,
		Args: cobra.NoArgs,
		RunE: runBench,
	}

	cmd.Flags().StringP("pattern", "p", "", fmt.Sprintf("pattern to search for (default %q, or %q with --adversarial)", defaults.Pattern, bench.DefaultAdversarialPattern))
	cmd.Flags().StringSlice("sizes", defaultSizes, "text sizes to measure")
	cmd.Flags().IntP("repeat", "r", defaults.Repeat, "timed runs per size; the fastest is kept")
	cmd.Flags().Bool("adversarial", false, "use worst-case texts")
	cmd.Flags().Float64("tolerance", defaults.Tolerance, "allowed slack of the linearity check")
	cmd.Flags().StringP("format", "f", output.FormatTable, "output format (table, json, yaml)")
	cmd.Flags().Bool("strict", false, "exit non-zero when growth is not linear")
	cmd.Flags().Bool("metrics", false, "append the Prometheus metrics of the run")

	return cmd
}

// Options control the bench command.
type Options struct {
	Config  bench.Config
	Format  string
	Strict  bool
	Metrics bool
}

func runBench(cmd *cobra.Command, _ []string) error {
	sizes, err := cmdutil.ParseSizes(cmdutil.GetStringSlice(cmd, "sizes", "bench.sizes"))
	if err != nil {
		return err
	}

	cfg := bench.Config{
		Pattern:     cmdutil.GetString(cmd, "pattern", "bench.pattern"),
		Sizes:       sizes,
		Repeat:      cmdutil.GetInt(cmd, "repeat", "bench.repeat"),
		Adversarial: cmdutil.GetBool(cmd, "adversarial", "bench.adversarial"),
		Tolerance:   cmdutil.GetFloat64(cmd, "tolerance", "bench.tolerance"),
	}
	if cfg.Pattern == "" {
		cfg.Pattern = bench.DefaultConfig().Pattern
		if cfg.Adversarial {
			cfg.Pattern = bench.DefaultAdversarialPattern
		}
	}

	opts := Options{
		Config: cfg,
		Format: cmdutil.GetString(cmd, "format", "bench.format"),
	}
	opts.Strict, _ = cmd.Flags().GetBool("strict")
	opts.Metrics, _ = cmd.Flags().GetBool("metrics")

	return Run(cmd.Context(), cmd.OutOrStdout(), opts)
}

// Run executes the benchmark and writes its report. With Strict set a
// non-linear report is returned as an error wrapping bench.ErrNotLinear.
func Run(ctx context.Context, w io.Writer, opts Options) error {
	if err := output.ValidateFormat(opts.Format); err != nil {
		return err
	}

	metrics := bench.NewMetrics()
	report, err := bench.Run(ctx, opts.Config, metrics)
	if err != nil {
		return err
	}

	if strings.EqualFold(opts.Format, output.FormatTable) {
		if err := bench.WriteTable(w, report); err != nil {
			return err
		}
	} else {
		data, err := output.Marshal(report, opts.Format)
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(string(data), "\n")); err != nil {
			return err
		}
	}

	if opts.Metrics {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := metrics.WriteText(w); err != nil {
			return err
		}
	}

	if opts.Strict {
		return report.Err()
	}
	return nil
}
