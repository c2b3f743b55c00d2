package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cci/internal/diag"
	"cci/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, note, fix, gutter, caret, bold *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		fix:    color.New(color.FgGreen),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		bold:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.fix, p.gutter, p.caret, p.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	f, ok := fs.Lookup(d.Primary.File)
	if !ok {
		fmt.Fprintf(w, "%s %s: %s\n", p.severity(d.Severity).Sprint(d.Severity), d.Code.ID(), d.Message)
		return
	}
	start, _ := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s: %s %s\n",
		p.bold.Sprintf("%s:%d:%d", formatPath(f, fs, opts.PathMode), start.Line, start.Col),
		p.severity(d.Severity).Sprintf("%s %s", d.Severity, d.Code.ID()),
		p.bold.Sprint(d.Message))

	writeSnippet(w, f, fs, d.Primary, opts, p)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			nf, ok := fs.Lookup(n.Span.File)
			if !ok {
				fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("note:"), n.Msg)
				continue
			}
			ns, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"), formatPath(nf, fs, opts.PathMode), ns.Line, ns.Col, n.Msg)
		}
	}
	if opts.ShowFixes {
		for i, fix := range d.Fixes {
			fmt.Fprintf(w, "  %s %s\n", p.fix.Sprintf("fix #%d:", i+1), fix.Title)
			for _, edit := range fix.Edits {
				at := edit.Span.String()
				if ef, ok := fs.Lookup(edit.Span.File); ok {
					es, _ := fs.Resolve(edit.Span)
					at = fmt.Sprintf("%s:%d:%d", formatPath(ef, fs, opts.PathMode), es.Line, es.Col)
				}
				fmt.Fprintf(w, "    apply=%q at %s\n", edit.NewText, at)
				if !opts.ShowPreview {
					continue
				}
				preview, err := buildFixEditPreview(fs, edit)
				if err != nil {
					continue
				}
				fmt.Fprintln(w, "    preview:")
				for _, line := range preview.before {
					fmt.Fprintf(w, "      %s %s\n", p.err.Sprint("-"), expandTabs(line))
				}
				for _, line := range preview.after {
					fmt.Fprintf(w, "      %s %s\n", p.fix.Sprint("+"), expandTabs(line))
				}
			}
		}
	}
}

// writeSnippet prints the primary line with Context lines around it and a
// caret line under the span. Columns are measured in display cells.
func writeSnippet(w io.Writer, f *source.File, fs *source.FileSet, span source.Span, opts PrettyOpts, p palette) {
	start, end := fs.Resolve(span)
	ctx := uint32(max(opts.Context, 0)) // #nosec G115 -- non-negative int8
	first := uint32(1)
	if start.Line > ctx {
		first = start.Line - ctx
	}
	lines := uint32(len(f.LineIdx)) + 1 // #nosec G115 -- bounded by file size
	last := min(start.Line+ctx, max(lines, start.Line))
	gutterWidth := len(strconv.FormatUint(uint64(last), 10))

	for n := first; n <= last; n++ {
		line := f.GetLine(n)
		shown := expandTabs(line)
		if opts.Width > 0 {
			shown = runewidth.Truncate(shown, int(opts.Width), "…")
		}
		fmt.Fprintf(w, " %s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, n), shown)
		if n != start.Line {
			continue
		}

		col := int(start.Col) - 1
		col = min(col, len(line))
		stop := len(line)
		if end.Line == start.Line {
			stop = min(max(int(end.Col)-1, col), len(line))
		}
		pad := runewidth.StringWidth(expandTabs(line[:col]))
		width := max(runewidth.StringWidth(expandTabs(line[col:stop])), 1)
		marks := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, " %s %s%s\n", p.gutter.Sprintf("%*s |", gutterWidth, ""), strings.Repeat(" ", pad), p.caret.Sprint(marks))
	}
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
