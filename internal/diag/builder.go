package diag

import (
	"fmt"
	"slices"

	"cci/internal/source"
)

// New builds a diagnostic without notes or fixes.
func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

// Newf is New with a formatted message.
func Newf(sev Severity, code Code, primary source.Span, format string, args ...any) Diagnostic {
	return New(sev, code, primary, fmt.Sprintf(format, args...))
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func NewWarning(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevWarning, code, primary, msg)
}

// WithNote returns d with one more note. Slices are clipped first, so two
// diagnostics derived from the same base never share a backing array.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(slices.Clip(d.Notes), Note{Span: sp, Msg: msg})
	return d
}

// WithFix returns d with one more fix; edits are copied.
func (d Diagnostic) WithFix(title string, edits ...FixEdit) Diagnostic {
	d.Fixes = append(slices.Clip(d.Fixes), Fix{Title: title, Edits: slices.Clone(edits)})
	return d
}
