package lps

import (
	"fmt"
	"io"
	"strings"

	"github.com/endorses/kmpcat/internal/pkg/kmp"
	"github.com/endorses/kmpcat/internal/pkg/output"
	"github.com/endorses/kmpcat/internal/pkg/present"
	"github.com/spf13/cobra"
)

// LPSCmd prints the failure function of one or more patterns.
var LPSCmd = newLPSCmd()

func newLPSCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lps PATTERN...",
		Short: "Print the failure function (LPS array) of a pattern",
		Long: `Print the failure function of each PATTERN: entry i is the length of the
longest proper prefix of PATTERN[0..i] that is also a suffix of it.

Examples:
  kmpcat lps ABABCABAB
  kmpcat lps --json AAAA AABAACAABAA`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := output.FormatTable
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				format = output.FormatJSON
			}
			return Run(cmd.OutOrStdout(), args, format)
		},
	}

	cmd.Flags().Bool("json", false, "print results as JSON")

	return cmd
}

// Table is the failure function of one pattern.
type Table struct {
	Pattern string `json:"pattern" yaml:"pattern"`
	LPS     []int  `json:"lps" yaml:"lps"`
}

// Run writes the failure function of each pattern in format.
func Run(w io.Writer, patterns []string, format string) error {
	tables := make([]Table, len(patterns))
	for i, p := range patterns {
		tables[i] = Table{Pattern: p, LPS: kmp.FailureFunction(p)}
		if err := kmp.ValidateFailureFunction(tables[i].LPS); err != nil {
			return fmt.Errorf("pattern %q: %w", p, err)
		}
	}

	if format != output.FormatTable {
		data, err := output.Marshal(tables, format)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, strings.TrimRight(string(data), "\n"))
		return err
	}

	printer := present.NewPrinter(w)
	for _, t := range tables {
		if err := printer.FailureFunction(t.Pattern, t.LPS); err != nil {
			return err
		}
	}
	return nil
}
