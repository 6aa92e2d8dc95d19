// Package cmdutil provides shared utilities for CLI command implementations.
package cmdutil

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Precedence for all getters: an explicitly set flag, then the config
// key (config file or KMPCAT_* environment), then the flag default.

// GetString resolves a string setting for cmd.
func GetString(cmd *cobra.Command, flag, key string) string {
	if useConfig(cmd, flag, key) {
		return viper.GetString(key)
	}
	v, _ := cmd.Flags().GetString(flag)
	return v
}

// GetStringSlice resolves a string slice setting for cmd.
func GetStringSlice(cmd *cobra.Command, flag, key string) []string {
	if useConfig(cmd, flag, key) {
		// Check the actual value since an empty list in config means unset
		if v := viper.GetStringSlice(key); len(v) > 0 {
			return v
		}
	}
	v, _ := cmd.Flags().GetStringSlice(flag)
	return v
}

// GetInt resolves an int setting for cmd.
func GetInt(cmd *cobra.Command, flag, key string) int {
	if useConfig(cmd, flag, key) {
		return viper.GetInt(key)
	}
	v, _ := cmd.Flags().GetInt(flag)
	return v
}

// GetBool resolves a bool setting for cmd.
func GetBool(cmd *cobra.Command, flag, key string) bool {
	if useConfig(cmd, flag, key) {
		return viper.GetBool(key)
	}
	v, _ := cmd.Flags().GetBool(flag)
	return v
}

// GetFloat64 resolves a float64 setting for cmd.
func GetFloat64(cmd *cobra.Command, flag, key string) float64 {
	if useConfig(cmd, flag, key) {
		return viper.GetFloat64(key)
	}
	v, _ := cmd.Flags().GetFloat64(flag)
	return v
}

func useConfig(cmd *cobra.Command, flag, key string) bool {
	if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
		return false
	}
	return key != "" && viper.IsSet(key)
}

// ParseSizes parses every entry with ParseSizeString.
func ParseSizes(values []string) ([]int, error) {
	sizes := make([]int, 0, len(values))
	for _, v := range values {
		n, err := ParseSizeString(v)
		if err != nil {
			return nil, fmt.Errorf("size %q: %w", v, err)
		}
		sizes = append(sizes, int(n))
	}
	return sizes, nil
}

// ParseSizeString parses a size string (e.g., "100", "10K", "1M") and returns bytes.
// Supported suffixes: K/k (KiB), M/m (MiB), G/g (GiB).
func ParseSizeString(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty size string")
	}

	lastChar := s[len(s)-1]
	var multiplier int64 = 1

	switch lastChar {
	case 'K', 'k':
		multiplier = 1024
		s = s[:len(s)-1]
	case 'M', 'm':
		multiplier = 1024 * 1024
		s = s[:len(s)-1]
	case 'G', 'g':
		multiplier = 1024 * 1024 * 1024
		s = s[:len(s)-1]
	}

	var value int64
	if _, err := fmt.Sscanf(s, "%d", &value); err != nil {
		return 0, fmt.Errorf("invalid size value: %w", err)
	}
	if value < 0 {
		return 0, fmt.Errorf("negative size: %d", value)
	}

	return value * multiplier, nil
}
