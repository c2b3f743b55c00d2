package fix

import (
	"cci/internal/diag"
	"cci/internal/source"
)

// Insert places text at loc.
func Insert(loc source.Loc, text string) diag.FixEdit {
	return diag.FixEdit{Span: loc.To(loc), NewText: text}
}

// Delete removes the bytes covered by span.
func Delete(span source.Span) diag.FixEdit {
	return diag.FixEdit{Span: span}
}

// Replace swaps the bytes covered by span for text.
func Replace(span source.Span, text string) diag.FixEdit {
	return diag.FixEdit{Span: span, NewText: text}
}
