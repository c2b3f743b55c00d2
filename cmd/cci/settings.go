package main

import (
	"fmt"
	"os"
	"strings"

	"fortio.org/safecast"
	"github.com/spf13/cobra"

	"cci/internal/driver"
	"cci/internal/project"
)

// config returns cci.toml values, or the defaults when there is no manifest.
func config() project.Config {
	if manifest != nil {
		return manifest.Config
	}
	return project.Default()
}

// colorEnabled resolves --color (or diagnostics.color) for f.
func colorEnabled(cmd *cobra.Command, f *os.File) bool {
	mode := config().Diagnostics.Color
	if cmd.Flags().Changed("color") {
		mode, _ = cmd.Flags().GetString("color")
	}
	switch strings.ToLower(mode) {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}

// driverOptions merges cci.toml with the command line; an explicitly set
// flag always wins.
func driverOptions(cmd *cobra.Command) (driver.Options, error) {
	cfg := config()
	flags := cmd.Flags()
	opts := driver.Options{
		MaxDiagnostics: cfg.Diagnostics.Max,
		Dedup:          cfg.Diagnostics.Dedup,
		QuietMultichar: cfg.Lexer.QuietMultichar,
		Jobs:           cfg.Build.Jobs,
	}
	toklen, err := safecast.Conv[uint32](cfg.Lexer.MaxTokenLength)
	if err != nil {
		return opts, fmt.Errorf("lexer.max_token_length: %w", err)
	}
	opts.MaxTokenLength = toklen

	if flags.Changed("max-diagnostics") {
		if opts.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return opts, err
		}
	}
	if flags.Changed("quiet-multichar") {
		if opts.QuietMultichar, err = flags.GetBool("quiet-multichar"); err != nil {
			return opts, err
		}
	}
	if flags.Changed("max-token-length") {
		if opts.MaxTokenLength, err = flags.GetUint32("max-token-length"); err != nil {
			return opts, err
		}
	}
	if opts.Timings, err = flags.GetBool("timings"); err != nil {
		return opts, err
	}
	return opts, nil
}

// openCache opens the token cache when cache.enabled (or --cache) asks for it.
func openCache(cmd *cobra.Command) (*driver.TokenCache, error) {
	cfg := config().Cache
	enabled := cfg.Enabled
	if f := cmd.Flags().Lookup("cache"); f != nil && f.Changed {
		enabled, _ = cmd.Flags().GetBool("cache")
	}
	if !enabled {
		return nil, nil
	}
	dir := cfg.Dir
	if dir == "" {
		var err error
		if dir, err = driver.DefaultCacheDir(); err != nil {
			return nil, err
		}
	}
	return driver.OpenTokenCache(dir)
}
