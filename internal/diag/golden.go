package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"cci/internal/source"
)

// shortLine is one rendered row of FormatShort.
type shortLine struct {
	sev  string
	code string
	path string
	line uint32
	col  uint32
	msg  string
}

// FormatShort renders one line per diagnostic:
//
//	error LEX1002 dir/a.c:3:9 missing terminating " character
//
// Notes become their own "note" lines when includeNotes is set. Rows are sorted
// by position, so the output is stable across runs and usable in golden files.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	rows := make([]shortLine, 0, len(diags))
	for i := range diags {
		d := &diags[i]
		if row, ok := shortRow(fs, d.Primary, d.Severity.Label(), d.Code, d.Message); ok {
			rows = append(rows, row)
		}
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			if row, ok := shortRow(fs, n.Span, "note", d.Code, n.Msg); ok {
				rows = append(rows, row)
			}
		}
	}
	slices.SortStableFunc(rows, func(a, b shortLine) int {
		return cmp.Or(
			cmp.Compare(a.path, b.path),
			cmp.Compare(a.line, b.line),
			cmp.Compare(a.col, b.col),
			cmp.Compare(a.sev, b.sev),
			cmp.Compare(a.code, b.code),
			cmp.Compare(a.msg, b.msg),
		)
	})

	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", r.sev, r.code, r.path, r.line, r.col, r.msg)
	}
	return b.String()
}

func shortRow(fs *source.FileSet, span source.Span, sev string, code Code, msg string) (shortLine, bool) {
	file, ok := fs.Lookup(span.File)
	if !ok {
		return shortLine{}, false
	}
	start, _ := fs.Resolve(span)
	path := filepath.ToSlash(file.FormatPath("relative", fs.BaseDir()))
	return shortLine{
		sev:  sev,
		code: code.ID(),
		path: strings.TrimPrefix(path, "./"),
		line: start.Line,
		col:  start.Col,
		msg:  strings.Join(strings.Fields(msg), " "), // одна строка на запись
	}, true
}
