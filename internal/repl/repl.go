// Package repl is the interactive tokenizer behind `cci repl`: every input
// is lexed as its own virtual file and printed as tokens or literal trees.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"cci/internal/diag"
	"cci/internal/diagfmt"
	"cci/internal/driver"
)

const (
	prompt             = "cci> "
	continuationPrompt = "...> "
)

// Mode selects what Eval prints for an input.
type Mode uint8

const (
	ModeTokens Mode = iota
	ModeLiterals
)

func (m Mode) String() string {
	if m == ModeLiterals {
		return "literals"
	}
	return "tokens"
}

// Options configures a Session.
type Options struct {
	Driver      driver.Options
	Color       bool
	HistoryPath string // пусто: история не сохраняется
}

// Session holds the REPL state between inputs.
type Session struct {
	opts Options
	mode Mode
	json bool
	n    int // номер ввода, идёт в имя виртуального файла
}

func NewSession(opts Options) *Session {
	return &Session{opts: opts}
}

// Mode returns the current output mode.
func (s *Session) Mode() Mode { return s.mode }

// Eval lexes one complete input and writes tokens (or literal trees) followed
// by diagnostics to out.
func (s *Session) Eval(ctx context.Context, out io.Writer, input string) error {
	s.n++
	res := driver.TokenizeSource(ctx, fmt.Sprintf("<repl:%d>", s.n), []byte(input), s.opts.Driver)

	var err error
	switch s.mode {
	case ModeLiterals:
		err = s.printLiterals(out, res)
	default:
		if s.json {
			err = diagfmt.FormatTokensJSON(out, res.Tokens, res.FileSet)
		} else {
			err = diagfmt.FormatTokensPretty(out, res.Tokens, res.FileSet)
		}
	}
	if err != nil {
		return err
	}
	if res.Bag.Len() > 0 {
		res.Bag.Sort()
		diagfmt.Pretty(out, res.Bag, res.FileSet, diagfmt.PrettyOpts{
			Color:     s.opts.Color,
			Context:   0,
			PathMode:  diagfmt.PathModeBasename,
			ShowNotes: true,
			ShowFixes: true,
		})
	}
	return nil
}

func (s *Session) printLiterals(out io.Writer, res *driver.TokenizeResult) error {
	nodes := driver.BuildLiterals(res)
	defer nodes.Exprs.Release()
	if len(nodes.Roots) == 0 {
		_, err := fmt.Fprintln(out, "(no literals)")
		return err
	}
	for _, root := range nodes.Roots {
		var err error
		if s.json {
			err = diagfmt.FormatExprJSON(out, nodes.Exprs, nodes.Types, root)
		} else {
			err = diagfmt.FormatExprTree(out, nodes.Exprs, nodes.Types, root, res.FileSet)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

const helpText = `commands:
  :tokens     print the token stream (default)
  :literals   print literal expressions as AST trees
  :json       toggle JSON output
  :help       show this help
  :quit       leave (also Ctrl+D)
`

// Command runs a ":" command. quit reports that the session should end;
// unknown commands print an error and keep going.
func (s *Session) Command(out io.Writer, line string) (quit bool) {
	switch strings.TrimSpace(line) {
	case ":tokens":
		s.mode = ModeTokens
	case ":literals":
		s.mode = ModeLiterals
	case ":json":
		s.json = !s.json
		fmt.Fprintf(out, "json output: %t\n", s.json)
		return false
	case ":help":
		fmt.Fprint(out, helpText)
		return false
	case ":quit", ":q":
		return true
	default:
		fmt.Fprintf(out, "unknown command %q, try :help\n", line)
		return false
	}
	fmt.Fprintf(out, "mode: %s\n", s.mode)
	return false
}

// pending says why an input buffer is not complete yet.
type pending uint8

const (
	pendingNone    pending = iota
	pendingComment         // внутри незакрытого /* */
	pendingSplice          // строка кончается на '\' вне литерала и комментария
)

// classify lexes src the same way Eval does, so quotes and comments are
// honoured: "/*" inside a string literal opens nothing.
func classify(src string) pending {
	res := driver.TokenizeSource(context.Background(), "<repl>", []byte(src), driver.Options{})
	end := len(strings.TrimRight(src, " \t"))
	for _, d := range res.Bag.Items() {
		switch d.Code {
		case diag.LexUnterminatedBlockComment:
			return pendingComment
		case diag.LexUnknownChar:
			if int(d.Primary.End) == end && end > 0 && src[end-1] == '\\' {
				return pendingSplice
			}
		}
	}
	return pendingNone
}

// NeedsMoreInput reports whether src ends inside a block comment or with a
// line continuation, so the prompt should keep reading.
func NeedsMoreInput(src string) bool {
	return classify(src) != pendingNone
}

// appendLine adds one prompt line to buf. A trailing backslash on the text
// so far is spliced away with its newline, as translation phase 2 would.
func appendLine(buf *strings.Builder, input string) {
	if buf.Len() > 0 {
		prev := buf.String()
		if classify(prev) == pendingSplice {
			prev = strings.TrimRight(prev, " \t")
			buf.Reset()
			buf.WriteString(prev[:len(prev)-1])
		} else {
			buf.WriteByte('\n')
		}
	}
	buf.WriteString(input)
}

// Run drives a Session on the terminal with line editing and history.
func Run(ctx context.Context, out io.Writer, opts Options) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(Complete)

	if opts.HistoryPath != "" {
		if f, err := os.Open(opts.HistoryPath); err == nil {
			_, _ = line.ReadHistory(f)
			_ = f.Close()
		}
		defer saveHistory(line, opts.HistoryPath)
	}

	s := NewSession(opts)
	fmt.Fprintln(out, "cci repl: type C, get tokens. :help for commands, Ctrl+D to quit")

	var buf strings.Builder
	for {
		if ctx.Err() != nil {
			return nil
		}
		p := prompt
		if buf.Len() > 0 {
			p = continuationPrompt
		}
		input, err := line.Prompt(p)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				buf.Reset()
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}
		trimmed := strings.TrimSpace(input)
		if buf.Len() == 0 && strings.HasPrefix(trimmed, ":") {
			if s.Command(out, trimmed) {
				return nil
			}
			continue
		}
		if buf.Len() == 0 && trimmed == "" {
			continue
		}
		appendLine(&buf, input)
		src := buf.String()
		if NeedsMoreInput(src) {
			continue
		}
		buf.Reset()
		line.AppendHistory(src)
		if err := s.Eval(ctx, out, src); err != nil {
			return err
		}
	}
}

func saveHistory(line *liner.State, path string) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	if f, err := os.Create(path); err == nil {
		_, _ = line.WriteHistory(f)
		_ = f.Close()
	}
}
