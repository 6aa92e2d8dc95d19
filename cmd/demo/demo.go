package demo

import (
	"github.com/endorses/kmpcat/internal/pkg/cmdutil"
	"github.com/endorses/kmpcat/internal/pkg/demo"
	"github.com/endorses/kmpcat/internal/pkg/present"
	"github.com/spf13/cobra"
)

// DemoCmd walks through sample searches, edge cases and a performance table.
var DemoCmd = newDemoCmd()

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the guided demonstration",
		Long: `Print the failure function and matches for three sample texts of growing
length, the edge cases, and a table of search time against text size.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := demo.DefaultOptions()
			opts.ContextRadius = cmdutil.GetInt(cmd, "context", "search.context")
			opts.Bench.Repeat = cmdutil.GetInt(cmd, "repeat", "bench.repeat")
			opts.Bench.Tolerance = cmdutil.GetFloat64(cmd, "tolerance", "bench.tolerance")
			return demo.Run(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	defaults := demo.DefaultOptions()
	cmd.Flags().IntP("context", "C", present.DefaultContextRadius, "bytes of context around each match")
	cmd.Flags().IntP("repeat", "r", defaults.Bench.Repeat, "timed runs per size in the performance table")
	cmd.Flags().Float64("tolerance", defaults.Bench.Tolerance, "allowed slack of the linearity check")

	return cmd
}
