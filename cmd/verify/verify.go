package verify

import (
	"github.com/endorses/kmpcat/internal/pkg/verify"
	"github.com/spf13/cobra"
)

// VerifyCmd runs the built-in correctness cases.
var VerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check search and failure function results against known answers",
	Long: `Run the built-in edge cases, algorithm cases and failure function cases and
print each result next to its expected value. Exits non-zero if any case fails.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		summary := verify.Run()
		if err := verify.WriteSummary(cmd.OutOrStdout(), summary); err != nil {
			return err
		}
		return summary.Err()
	},
}
