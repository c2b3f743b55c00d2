package diag

import (
	"testing"

	"cci/internal/source"
)

func TestSeverityForms(t *testing.T) {
	tests := []struct {
		sev          Severity
		upper, lower string
	}{
		{SevInfo, "INFO", "info"},
		{SevWarning, "WARNING", "warning"},
		{SevError, "ERROR", "error"},
		{Severity(9), "Severity(9)", "severity(9)"},
	}
	for _, tt := range tests {
		if got := tt.sev.String(); got != tt.upper {
			t.Errorf("String(%d) = %q, want %q", tt.sev, got, tt.upper)
		}
		if got := tt.sev.Label(); got != tt.lower {
			t.Errorf("Label(%d) = %q, want %q", tt.sev, got, tt.lower)
		}
	}
	if !SevError.AtLeast(SevWarning) || SevInfo.AtLeast(SevWarning) || !SevWarning.AtLeast(SevWarning) {
		t.Fatal("AtLeast ordering broken")
	}
}

func TestBuilderDoesNotAliasNotes(t *testing.T) {
	base := New(SevError, LexUnterminatedChar, source.Span{Start: 0, End: 2}, "unterminated")
	// запас ёмкости: без Clip оба append записали бы в один массив
	base.Notes = make([]Note, 0, 4)
	a := base.WithNote(source.Span{}, "a")
	b := base.WithNote(source.Span{}, "b")
	if a.Notes[0].Msg != "a" || b.Notes[0].Msg != "b" {
		t.Fatalf("derived diagnostics share notes: %q %q", a.Notes[0].Msg, b.Notes[0].Msg)
	}

	edits := []FixEdit{{Span: source.Span{Start: 2, End: 2}, NewText: "'"}}
	f := base.WithFix("close", edits...)
	edits[0].NewText = "\""
	if f.Fixes[0].Edits[0].NewText != "'" {
		t.Fatalf("WithFix must copy edits, got %q", f.Fixes[0].Edits[0].NewText)
	}
	if len(base.Fixes) != 0 || len(base.Notes) != 0 {
		t.Fatalf("base diagnostic changed: %+v", base)
	}
}

func TestNewf(t *testing.T) {
	d := Newf(SevWarning, IOCacheError, source.Span{}, "token cache: %d bad entries", 3)
	if d.Message != "token cache: 3 bad entries" || d.Severity != SevWarning || d.Code != IOCacheError {
		t.Fatalf("Newf = %+v", d)
	}
	if w := NewWarning(LexMultibyteChar, source.Span{}, "m"); w.Severity != SevWarning {
		t.Fatalf("NewWarning severity = %s", w.Severity)
	}
}

func TestDedupReporterKeysOnCodeAndSpan(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Start: 1, End: 2}

	r.Report(LexUnknownChar, SevError, sp, "unknown character '@'", nil, nil)
	r.Report(LexUnknownChar, SevError, sp, "unknown character '@' again", nil, nil)
	r.Report(LexUnknownChar, SevError, source.Span{Start: 2, End: 3}, "unknown character '@'", nil, nil)
	r.Report(LexBadIdent, SevError, sp, "other code", nil, nil)

	if bag.Len() != 3 || r.Suppressed() != 1 {
		t.Fatalf("kept %d, suppressed %d; want 3 and 1", bag.Len(), r.Suppressed())
	}
	if bag.Items()[0].Message != "unknown character '@'" {
		t.Fatalf("first report must win, got %q", bag.Items()[0].Message)
	}

	var nilRep *DedupReporter
	nilRep.Report(LexUnknownChar, SevError, sp, "x", nil, nil)
}
