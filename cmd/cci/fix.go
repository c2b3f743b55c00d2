package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cci/internal/diag"
	"cci/internal/fix"
	"cci/internal/lexer"
	"cci/internal/source"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] file.c...",
	Short: "Apply the suggested fixes from lexer diagnostics",
	Long: `Fix lexes the given files and applies every non-overlapping fix the lexer
suggested: closing quotes and comments, dropping stray characters.
With --manifest, unknown keys are also removed from cci.toml.`,
	RunE: runFix,
}

func init() {
	fixCmd.Flags().Bool("dry-run", false, "print the fixed sources instead of writing them")
	fixCmd.Flags().StringSlice("code", nil, "only apply fixes for these diagnostic codes (e.g. LEX1002)")
	fixCmd.Flags().Bool("manifest", false, "also remove unknown keys from cci.toml")
}

func runFix(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	withConfig, _ := cmd.Flags().GetBool("manifest")
	codeIDs, err := cmd.Flags().GetStringSlice("code")
	if err != nil {
		return err
	}
	var codes []diag.Code
	for _, id := range codeIDs {
		c, ok := diag.ParseCode(id)
		if !ok {
			return fmt.Errorf("unknown diagnostic code %q", id)
		}
		codes = append(codes, c)
	}
	if len(args) == 0 && !withConfig {
		return fmt.Errorf("nothing to fix: pass files or --manifest")
	}

	opts, err := driverOptions(cmd)
	if err != nil {
		return err
	}
	fs := source.NewFileSet()
	bag := diag.NewBag(0)
	for _, path := range args {
		id, err := fs.Load(path)
		if err != nil {
			return err
		}
		lexer.Tokenize(fs.Get(id), opts.LexerOptions(bag))
	}
	if withConfig && manifest != nil {
		manifest.ReportUnknown(fs, diag.BagReporter{Bag: bag})
	}

	res, err := fix.Apply(fs, bag.Items(), fix.Options{Codes: codes, DryRun: dryRun})
	if errors.Is(err, fix.ErrNoFixes) {
		fmt.Fprintln(cmd.OutOrStdout(), "no fixes to apply")
		return nil
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, a := range res.Applied {
		fmt.Fprintf(os.Stderr, "fixed %s: %s (%s)\n", a.Path, a.Title, a.Code.ID())
	}
	for _, s := range res.Skipped {
		fmt.Fprintf(os.Stderr, "skipped %s: %s: %s\n", s.Path, s.Title, s.Reason)
	}
	if dryRun {
		for _, f := range res.Files {
			fmt.Fprintf(out, "== %s (%d edits)\n%s", f.Path, f.Edits, f.Content)
			if n := len(f.Content); n > 0 && f.Content[n-1] != '\n' {
				fmt.Fprintln(out)
			}
		}
	}
	return nil
}
