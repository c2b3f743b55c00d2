package diag

import "cci/internal/source"

// Одна и та же ошибка в одном месте: code и span. Сообщение не участвует,
// чтобы "unknown character '@'" из повторного прохода не двоилось.
type dedupKey struct {
	code Code
	span source.Span
}

// DedupReporter forwards the first diagnostic reported for each code and
// primary span and counts the rest.
type DedupReporter struct {
	next       Reporter
	seen       map[dedupKey]struct{}
	suppressed int
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[dedupKey]struct{})}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	if r == nil {
		return
	}
	key := dedupKey{code: code, span: primary}
	if _, dup := r.seen[key]; dup {
		r.suppressed++
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes, fixes)
	}
}

// Suppressed returns how many duplicates were dropped.
func (r *DedupReporter) Suppressed() int { return r.suppressed }
