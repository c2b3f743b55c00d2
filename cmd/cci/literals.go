package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cci/internal/diagfmt"
	"cci/internal/driver"
)

var literalsCmd = &cobra.Command{
	Use:   "literals [flags] file.c",
	Short: "Build typed AST nodes for every literal in a C file",
	Long: `Literals tokenizes a file and turns each integer, character and string
literal into an expression node; adjacent string literals are joined.`,
	Args: cobra.ExactArgs(1),
	RunE: runLiterals,
}

func init() {
	literalsCmd.Flags().String("format", "tree", "output format (tree|pretty|json)")
	literalsCmd.Flags().String("diag-format", "pretty", "diagnostics format on stderr (pretty|short|json)")
}

func runLiterals(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "tree", "pretty", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	r, err := newTokenizeRun(cmd, format)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd)
	if err != nil {
		return err
	}
	res, err := driver.Tokenize(cmd.Context(), args[0], opts)
	if err != nil {
		return err
	}

	nodes := driver.BuildLiterals(res)
	defer nodes.Exprs.Release()

	r.printDiagnostics(res.Bag, res.FileSet)

	out := r.out
	for _, root := range nodes.Roots {
		switch format {
		case "json":
			err = diagfmt.FormatExprJSON(out, nodes.Exprs, nodes.Types, root)
		case "pretty":
			err = diagfmt.FormatExprPretty(out, nodes.Exprs, nodes.Types, root, res.FileSet)
		default:
			err = diagfmt.FormatExprTree(out, nodes.Exprs, nodes.Types, root, res.FileSet)
		}
		if err != nil {
			return err
		}
	}
	if res.Bag.HasErrors() {
		return errHadErrors
	}
	return nil
}
