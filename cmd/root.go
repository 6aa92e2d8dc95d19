package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/endorses/kmpcat/cmd/bench"
	"github.com/endorses/kmpcat/cmd/demo"
	"github.com/endorses/kmpcat/cmd/lps"
	"github.com/endorses/kmpcat/cmd/query"
	"github.com/endorses/kmpcat/cmd/search"
	"github.com/endorses/kmpcat/cmd/verify"
	"github.com/endorses/kmpcat/internal/pkg/cmdutil"
	"github.com/endorses/kmpcat/internal/pkg/kmp"
	"github.com/endorses/kmpcat/internal/pkg/logger"
	"github.com/endorses/kmpcat/internal/pkg/signals"
	"github.com/endorses/kmpcat/internal/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "kmpcat",
	Short: "kmpcat finds every occurrence of a pattern",
	Long: fmt.Sprintf(`kmpcat %s - exact substring search with the Knuth-Morris-Pratt algorithm

kmpcat reports every position where a pattern occurs in a text, overlapping
occurrences included, in time linear in the size of the input.`, version.GetVersion()),
	Version:           version.GetFullVersion(),
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signals.Context(context.Background())
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func addSubCommandPalettes() {
	rootCmd.AddCommand(search.SearchCmd)
	rootCmd.AddCommand(query.QueryCmd)
	rootCmd.AddCommand(lps.LPSCmd)
	rootCmd.AddCommand(bench.BenchCmd)
	rootCmd.AddCommand(verify.VerifyCmd)
	rootCmd.AddCommand(demo.DemoCmd)
}

func init() {
	cobra.OnInitialize(initConfig)

	logger.Initialize()

	addSubCommandPalettes()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/kmpcat/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "json", "log format (json, text)")
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	format := cmdutil.GetString(cmd, "log-format", "log.format")
	if format != "json" && format != "text" {
		return fmt.Errorf("unknown log format %q (want json or text)", format)
	}
	logger.SetOutput(cmd.ErrOrStderr(), format)

	if err := logger.SetLevel(cmdutil.GetString(cmd, "log-level", "log.level")); err != nil {
		return err
	}
	if used := viper.ConfigFileUsed(); used != "" {
		logger.Debug("Using config file", "path", used)
	}
	return nil
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		if path := defaultConfigFile(home); path != "" {
			viper.SetConfigFile(path)
		}
	}

	viper.SetEnvPrefix("KMPCAT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("cache.size", kmp.DefaultCacheSize)

	if viper.ConfigFileUsed() == "" {
		return
	}
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "Unable to read config file:", err)
	}
}

// defaultConfigFile returns ~/.config/kmpcat/config.yaml, else ~/.config/kmpcat.yaml,
// else "" when neither exists.
func defaultConfigFile(home string) string {
	candidates := []string{
		filepath.Join(home, ".config", "kmpcat", "config.yaml"),
		filepath.Join(home, ".config", "kmpcat.yaml"),
	}
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}
