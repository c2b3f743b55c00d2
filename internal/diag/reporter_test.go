package diag

import (
	"testing"

	"cci/internal/source"
)

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(10)
	b := ReportError(BagReporter{Bag: bag}, LexUnterminatedChar, source.Span{Start: 0, End: 2}, "unterminated").
		WithNote(source.Span{Start: 0, End: 1}, "opened here").
		WithFix("insert closing quote", FixEdit{Span: source.Span{Start: 2, End: 2}, NewText: "'"})
	b.Emit()
	b.Emit()

	if bag.Len() != 1 {
		t.Fatalf("Emit must report once, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if len(d.Notes) != 1 || len(d.Fixes) != 1 || d.Fixes[0].Edits[0].NewText != "'" {
		t.Fatalf("builder lost details: %+v", d)
	}
}

func TestComposedReporters(t *testing.T) {
	bag := NewBag(10)
	counter := &CountingReporter{Next: NewDedupReporter(BagReporter{Bag: bag})}
	r := MultiReporter{counter, NopReporter{}, nil}

	sp := source.Span{Start: 3, End: 4}
	r.Report(LexUnknownChar, SevError, sp, "unknown character '@'", nil, nil)
	r.Report(LexUnknownChar, SevError, sp, "unknown character '@'", nil, nil)
	r.Report(LexUnknownEscape, SevWarning, sp, "unknown escape", nil, nil)

	if counter.Errors != 2 || counter.Warnings != 1 {
		t.Fatalf("counter = %d/%d", counter.Errors, counter.Warnings)
	}
	if bag.Len() != 2 {
		t.Fatalf("dedup should leave 2 diagnostics, got %d", bag.Len())
	}
}
