package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cci/internal/diag"
	"cci/internal/diagfmt"
	"cci/internal/driver"
	"cci/internal/observ"
	"cci/internal/source"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.c|dir|->",
	Short: "Tokenize C source files",
	Long: `Tokenize breaks C sources into tokens. A directory is scanned recursively
for .c and .h files, which are lexed in parallel; "-" reads standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Bool("watch", false, "re-tokenize whenever the input changes")
	tokenizeCmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
	tokenizeCmd.Flags().Bool("cache", false, "reuse token streams from the on-disk cache")
	tokenizeCmd.Flags().Int("jobs", 0, "parallel workers for directories (0 = GOMAXPROCS)")
	tokenizeCmd.Flags().String("diag-format", "pretty", "diagnostics format on stderr (pretty|short|json)")
}

type tokenizeRun struct {
	cmd        *cobra.Command
	format     string
	diagFormat string
	opts       driver.Options
	out        io.Writer
	errOut     *os.File
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	opts, err := driverOptions(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("jobs") {
		if opts.Jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
			return err
		}
	}
	cache, err := openCache(cmd)
	if err != nil {
		return fmt.Errorf("token cache: %w", err)
	}
	opts.Cache = cache

	r, err := newTokenizeRun(cmd, format)
	if err != nil {
		return err
	}
	r.opts = opts
	path := args[0]

	watch, _ := cmd.Flags().GetBool("watch")
	if watch {
		if path == "-" {
			return fmt.Errorf("--watch needs a file or directory")
		}
		return driver.Watch(cmd.Context(), []string{path}, opts, r.onWatchResult)
	}

	if path == "-" {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		return r.single(driver.TokenizeSource(cmd.Context(), "<stdin>", content, opts))
	}

	st, err := os.Stat(path)
	if err != nil {
		return err
	}
	if st.IsDir() {
		return r.dir(path)
	}
	res, err := driver.Tokenize(cmd.Context(), path, opts)
	if err != nil {
		return err
	}
	return r.single(res)
}

func newTokenizeRun(cmd *cobra.Command, format string) (*tokenizeRun, error) {
	diagFormat := mustString(cmd, "diag-format")
	switch diagFormat {
	case "pretty", "short", "json":
	default:
		return nil, fmt.Errorf("unknown diagnostics format: %s", diagFormat)
	}
	return &tokenizeRun{
		cmd:        cmd,
		format:     format,
		diagFormat: diagFormat,
		out:        cmd.OutOrStdout(),
		errOut:     os.Stderr,
	}, nil
}

func (r *tokenizeRun) printDiagnostics(bag *diag.Bag, fs *source.FileSet) {
	if bag.Len() == 0 {
		return
	}
	bag.Sort()
	switch r.diagFormat {
	case "short":
		fmt.Fprintln(r.errOut, diag.FormatShort(bag.Items(), fs, true))
	case "json":
		_ = diagfmt.JSON(r.errOut, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeRelative,
			IncludeNotes:     true,
			IncludeFixes:     true,
		})
	default:
		diagfmt.Pretty(r.errOut, bag, fs, diagfmt.PrettyOpts{
			Color:     colorEnabled(r.cmd, r.errOut),
			Context:   2,
			ShowNotes: true,
			ShowFixes: true,
		})
	}
}

func (r *tokenizeRun) single(res *driver.TokenizeResult) error {
	r.printDiagnostics(res.Bag, res.FileSet)
	var err error
	if r.format == "json" {
		err = diagfmt.FormatTokensJSON(r.out, res.Tokens, res.FileSet)
	} else {
		err = diagfmt.FormatTokensPretty(r.out, res.Tokens, res.FileSet)
	}
	if err != nil {
		return err
	}
	if res.Bag.HasErrors() {
		return errHadErrors
	}
	return nil
}

type dirFileOutput struct {
	Path        string                    `json:"path"`
	Cached      bool                      `json:"cached,omitempty"`
	Tokens      []diagfmt.TokenOutput     `json:"tokens"`
	Diagnostics diagfmt.DiagnosticsOutput `json:"diagnostics"`
}

type dirOutput struct {
	Files  []dirFileOutput `json:"files"`
	Timing *observ.Report  `json:"timing,omitempty"`
}

func (r *tokenizeRun) dir(path string) error {
	mode, err := readUIMode(mustString(r.cmd, "ui"))
	if err != nil {
		return err
	}
	var res *driver.DirResult
	if shouldUseTUI(mode) {
		res, err = tokenizeDirWithUI(r.cmd.Context(), path, r.opts)
	} else {
		res, err = driver.TokenizeDir(r.cmd.Context(), path, r.opts)
	}
	if err != nil {
		return err
	}

	if r.format == "json" {
		out := dirOutput{Files: make([]dirFileOutput, 0, len(res.Files)), Timing: res.Timing}
		for _, f := range res.Files {
			out.Files = append(out.Files, dirFileOutput{
				Path:   f.Path,
				Cached: f.Cached,
				Tokens: diagfmt.BuildTokensOutput(f.Tokens, res.FileSet),
				Diagnostics: diagfmt.BuildDiagnosticsOutput(f.Bag, res.FileSet, diagfmt.JSONOpts{
					IncludePositions: true,
					PathMode:         diagfmt.PathModeRelative,
					IncludeNotes:     true,
					IncludeFixes:     true,
				}),
			})
		}
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}
	} else {
		for _, f := range res.Files {
			fmt.Fprintf(r.out, "== %s (%d tokens)\n", f.Path, len(f.Tokens))
			if err := diagfmt.FormatTokensPretty(r.out, f.Tokens, res.FileSet); err != nil {
				return err
			}
			r.printDiagnostics(f.Bag, res.FileSet)
		}
		if res.Timing != nil {
			printTimings(r.errOut, *res.Timing)
		}
	}
	if res.HasErrors() {
		return errHadErrors
	}
	return nil
}

func (r *tokenizeRun) onWatchResult(path string, res *driver.TokenizeResult, err error) {
	if err != nil {
		fmt.Fprintf(r.errOut, "[watch] %s: %v\n", path, err)
		return
	}
	fmt.Fprintf(r.errOut, "[watch] %s: %d tokens, %d errors\n", path, len(res.Tokens), res.Bag.Count(diag.SevError))
	if r.format == "json" {
		_ = diagfmt.FormatTokensJSON(r.out, res.Tokens, res.FileSet)
	}
	r.printDiagnostics(res.Bag, res.FileSet)
}

func printTimings(out io.Writer, rep observ.Report) {
	fmt.Fprintf(out, "total %.1f ms\n", rep.TotalMS)
	for _, p := range rep.Phases {
		line := fmt.Sprintf("  %-8s %8.1f ms", p.Name, p.DurationMS)
		if p.Items > 0 {
			line += fmt.Sprintf("  %d items", p.Items)
		}
		if p.Note != "" {
			line += "  // " + p.Note
		}
		fmt.Fprintln(out, strings.TrimRight(line, " "))
	}
}

func mustString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}
