package repl

import (
	"bytes"
	"context"
	"slices"
	"strings"
	"testing"

	"cci/internal/driver"
)

func newTestSession() *Session {
	return NewSession(Options{Driver: driver.Options{MaxDiagnostics: 50}})
}

func TestEval_Tokens(t *testing.T) {
	s := newTestSession()
	var out bytes.Buffer
	if err := s.Eval(context.Background(), &out, "int x = 42;"); err != nil {
		t.Fatalf("eval: %v", err)
	}
	got := out.String()
	for _, want := range []string{"int", "Ident", "IntConst", "\"42\"", ";"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestEval_ReportsDiagnostics(t *testing.T) {
	s := newTestSession()
	var out bytes.Buffer
	if err := s.Eval(context.Background(), &out, "a @ b"); err != nil {
		t.Fatalf("eval: %v", err)
	}
	if !strings.Contains(out.String(), "<repl:1>") {
		t.Errorf("diagnostic should name the virtual file:\n%s", out.String())
	}
}

func TestEval_Literals(t *testing.T) {
	s := newTestSession()
	var out bytes.Buffer
	if s.Command(&out, ":literals") {
		t.Fatal(":literals must not quit")
	}
	if s.Mode() != ModeLiterals {
		t.Fatalf("mode = %s, want literals", s.Mode())
	}
	out.Reset()
	if err := s.Eval(context.Background(), &out, `"ab" "c"`); err != nil {
		t.Fatalf("eval: %v", err)
	}
	if !strings.Contains(out.String(), "StringLiteral") {
		t.Errorf("expected a string literal node:\n%s", out.String())
	}

	out.Reset()
	if err := s.Eval(context.Background(), &out, "x + y"); err != nil {
		t.Fatalf("eval: %v", err)
	}
	if !strings.Contains(out.String(), "(no literals)") {
		t.Errorf("expected empty marker, got:\n%s", out.String())
	}
}

func TestEval_JSONToggle(t *testing.T) {
	s := newTestSession()
	var out bytes.Buffer
	s.Command(&out, ":json")
	if !strings.Contains(out.String(), "json output: true") {
		t.Fatalf("toggle message: %q", out.String())
	}
	out.Reset()
	if err := s.Eval(context.Background(), &out, "x"); err != nil {
		t.Fatalf("eval: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(out.String()), "[") {
		t.Errorf("expected a JSON array, got:\n%s", out.String())
	}
}

func TestCommand(t *testing.T) {
	tests := []struct {
		line string
		quit bool
		want string
	}{
		{":help", false, ":literals"},
		{":tokens", false, "mode: tokens"},
		{":nope", false, "unknown command"},
		{":quit", true, ""},
		{":q", true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			var out bytes.Buffer
			if got := newTestSession().Command(&out, tt.line); got != tt.quit {
				t.Fatalf("quit = %v, want %v", got, tt.quit)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output %q does not contain %q", out.String(), tt.want)
			}
		})
	}
}

func TestNeedsMoreInput(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"int x;", false},
		{"/* open", true},
		{"/* closed */ x", false},
		{"/* a */ /* b", true},
		{"// /* not a comment start", false},
		{"// c\n/* open", true},
		{"#define X \\", true},
		{"#define X \\  ", true},
		{"\"a\\\\\" x", false},
		{`char *s = "/*";`, false},
		{`'/*' x`, false},
		{"// tail \\", false},
		{"/* \\", true},
		{"", false},
	}
	for _, tt := range tests {
		if got := NeedsMoreInput(tt.src); got != tt.want {
			t.Errorf("NeedsMoreInput(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestAppendLine_SplicesContinuation(t *testing.T) {
	var buf strings.Builder
	appendLine(&buf, "int x = \\  ")
	appendLine(&buf, "42;")
	if got := buf.String(); got != "int x = 42;" {
		t.Fatalf("spliced buffer = %q", got)
	}

	buf.Reset()
	appendLine(&buf, "/* a")
	appendLine(&buf, "b */ y")
	if got := buf.String(); got != "/* a\nb */ y" {
		t.Fatalf("comment buffer = %q", got)
	}

	s := newTestSession()
	var out bytes.Buffer
	var src strings.Builder
	appendLine(&src, "x \\")
	appendLine(&src, "+ y")
	if err := s.Eval(context.Background(), &out, src.String()); err != nil {
		t.Fatalf("eval: %v", err)
	}
	if strings.Contains(out.String(), "LEX1001") {
		t.Errorf("spliced input must not report a stray backslash:\n%s", out.String())
	}
}

func TestComplete(t *testing.T) {
	got := Complete("unsigned sho")
	if !slices.Contains(got, "unsigned short") {
		t.Errorf("Complete keyword: %v", got)
	}
	if got := Complete(":li"); !slices.Equal(got, []string{":literals"}) {
		t.Errorf("Complete command: %v", got)
	}
	if got := Complete("x + "); got != nil {
		t.Errorf("Complete on empty word: %v", got)
	}
}
