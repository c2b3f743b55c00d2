package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cci/internal/diag"
	"cci/internal/diagfmt"
	"cci/internal/project"
	"cci/internal/source"
)

var (
	cleanups []func()
	manifest *project.Manifest // nil, если cci.toml не найден
)

func runCleanups() {
	// в обратном порядке, как defer
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	cleanups = nil
}

// prepareRun loads cci.toml and starts tracing and profiling before any
// subcommand runs.
func prepareRun(cmd *cobra.Command, args []string) error {
	if err := loadManifest(cmd); err != nil {
		return err
	}
	stopTrace, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, stopTrace)
	stopProf, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, stopProf)
	return nil
}

func loadManifest(cmd *cobra.Command) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		manifest, err = project.Load(path)
	} else {
		var wd string
		if wd, err = os.Getwd(); err != nil {
			return err
		}
		manifest, _, err = project.Discover(wd)
	}
	if err != nil {
		return err
	}
	if manifest == nil || len(manifest.Unknown) == 0 {
		return nil
	}
	fs := source.NewFileSet()
	bag := diag.NewBag(len(manifest.Unknown))
	manifest.ReportUnknown(fs, diag.BagReporter{Bag: bag})
	diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
		Color:     colorEnabled(cmd, os.Stderr),
		Context:   1,
		ShowFixes: true,
	})
	return nil
}
