package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cci/internal/version"
)

// errHadErrors is returned when the run itself succeeded but produced error
// diagnostics; they are already printed, so main only sets the exit code.
var errHadErrors = errors.New("errors reported")

var rootCmd = &cobra.Command{
	Use:               "cci",
	Short:             "C lexer and literal AST toolkit",
	Long:              `cci tokenizes C sources and builds typed AST nodes for their literals`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: prepareRun,
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(literalsCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics per file (0 = unbounded)")
	pf.Bool("timings", false, "show timing information")
	pf.Bool("quiet-multichar", false, "do not warn about multi-character constants")
	pf.Uint32("max-token-length", 0, "longest accepted token in bytes (0 = lexer default)")
	pf.String("config", "", "path to cci.toml (default: search upwards from the working directory)")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("cpu-profile", "", "write a CPU profile to file")
	pf.String("mem-profile", "", "write a heap profile to file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to file")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	runCleanups()
	if err != nil {
		if !errors.Is(err, errHadErrors) {
			fmt.Fprintf(os.Stderr, "cci: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- fd fits int
}
