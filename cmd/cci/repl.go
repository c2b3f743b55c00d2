package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cci/internal/driver"
	"cci/internal/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive tokenizer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := driverOptions(cmd)
		if err != nil {
			return err
		}
		opts.Timings = false
		history := ""
		if dir, err := driver.DefaultCacheDir(); err == nil {
			history = filepath.Join(dir, "repl_history")
		}
		return repl.Run(cmd.Context(), cmd.OutOrStdout(), repl.Options{
			Driver:      opts,
			Color:       colorEnabled(cmd, os.Stdout),
			HistoryPath: history,
		})
	},
}
