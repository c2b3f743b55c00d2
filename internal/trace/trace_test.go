package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "debug"} {
		l, err := ParseLevel(s)
		if err != nil || l.String() != s {
			t.Errorf("ParseLevel(%q) = %v, %v", s, l, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Errorf("expected error for unknown level")
	}
}

func TestLevelFiltersScopes(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelPhase, ScopeDriver, true},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
		{LevelError, ScopeDriver, false},
		{LevelOff, ScopeDriver, false},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestStreamTextNesting(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	root := Begin(tr, ScopeDriver, "tokenize", 0)
	pass := Begin(tr, ScopePass, "lex", root.ID())
	file := Begin(tr, ScopeFile, "file:a.c", pass.ID())
	file.WithCount("tokens", 12).End("")
	Begin(tr, ScopeNode, "filtered", file.ID()).End("")
	pass.End("ok")
	root.End("")
	if err := tr.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[2], "    → file:a.c") {
		t.Errorf("file span must be nested twice: %q", lines[2])
	}
	if !strings.Contains(lines[3], "{tokens=12}") {
		t.Errorf("extras missing: %q", lines[3])
	}
	if !strings.Contains(lines[4], "← lex") || !strings.Contains(lines[4], "(ok)") {
		t.Errorf("unexpected pass end: %q", lines[4])
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	s := Begin(tr, ScopePass, "lex", 0)
	s.WithExtra("files", "3").End("")
	Point(tr, ScopeDriver, "error", "boom", s.ID())
	if err := tr.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	dec := json.NewDecoder(&buf)
	var kinds []string
	for dec.More() {
		var ev map[string]any
		if err := dec.Decode(&ev); err != nil {
			t.Fatalf("invalid ndjson: %v", err)
		}
		kinds = append(kinds, ev["kind"].(string))
		if ev["kind"] == "end" {
			extra := ev["extra"].(map[string]any)
			if extra["files"] != "3" {
				t.Errorf("extra = %v", extra)
			}
		}
	}
	if strings.Join(kinds, ",") != "begin,end,point" {
		t.Fatalf("kinds = %v", kinds)
	}
}

func TestNopAndContext(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("empty context must yield Nop")
	}
	s := Begin(Nop, ScopeDriver, "x", 0)
	if s.ID() != 0 || s.End("") != 0 {
		t.Fatalf("spans on Nop must be inert")
	}

	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)
	ctx := WithTracer(context.Background(), tr)
	if FromContext(ctx) != Tracer(tr) {
		t.Fatalf("tracer not propagated")
	}
	root := Begin(tr, ScopeDriver, "root", 0)
	ctx = WithSpan(ctx, root)
	if CurrentSpan(ctx) != root.ID() {
		t.Fatalf("span not propagated")
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr != Nop {
		t.Fatalf("New(off) = %v, %v", tr, err)
	}
	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Output: &buf, OutputPath: "trace.ndjson"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if st, ok := tr.(*StreamTracer); !ok || st.format != FormatNDJSON {
		t.Fatalf("expected ndjson stream tracer, got %#v", tr)
	}
}
