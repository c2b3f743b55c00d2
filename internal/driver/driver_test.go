package driver_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"cci/internal/diag"
	"cci/internal/driver"
	"cci/internal/token"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func sameKinds(a, b []token.Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTokenize_File(t *testing.T) {
	p := writeFile(t, t.TempDir(), "a.c", "int x = 1;\n")
	res, err := driver.Tokenize(context.Background(), p, driver.Options{})
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	want := []token.Kind{token.KwInt, token.Ident, token.Assign, token.IntConst, token.Semicolon}
	if got := kinds(res.Tokens); !sameKinds(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", res.Bag.Items())
	}
	if res.FileSet.Len() != 1 || res.File.Path == "" {
		t.Fatalf("file set not populated")
	}
}

func TestTokenize_MissingFile(t *testing.T) {
	_, err := driver.Tokenize(context.Background(), filepath.Join(t.TempDir(), "nope.c"), driver.Options{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestTokenize_Timings(t *testing.T) {
	p := writeFile(t, t.TempDir(), "a.c", "x;")
	res, err := driver.Tokenize(context.Background(), p, driver.Options{Timings: true})
	if err != nil {
		t.Fatal(err)
	}
	items := res.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.ObsTimings || items[0].Severity != diag.SevInfo {
		t.Fatalf("expected one timings diagnostic, got %+v", items)
	}
	if len(items[0].Notes) != 1 || !strings.Contains(items[0].Notes[0].Msg, `"phases"`) {
		t.Fatalf("timings note = %+v", items[0].Notes)
	}
}

func TestTokenize_TimingsSurviveFullBag(t *testing.T) {
	p := writeFile(t, t.TempDir(), "a.c", "@ $")
	res, err := driver.Tokenize(context.Background(), p, driver.Options{MaxDiagnostics: 1, Timings: true})
	if err != nil {
		t.Fatal(err)
	}
	last := res.Bag.Items()[res.Bag.Len()-1]
	if last.Code != diag.ObsTimings {
		t.Fatalf("timings dropped from a full bag: %+v", res.Bag.Items())
	}
}

func TestTokenizeSource_ReportsErrors(t *testing.T) {
	res := driver.TokenizeSource(context.Background(), "<stdin>", []byte(`s = "abc`), driver.Options{})
	if !res.Bag.HasErrors() {
		t.Fatal("expected an error for the unterminated string")
	}
	if res.Bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Fatalf("code = %v", res.Bag.Items()[0].Code)
	}
}

func TestTokenizeDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.c", "int b;")
	writeFile(t, dir, "a.h", "int a;")
	writeFile(t, dir, "sub/c.c", "'x")
	writeFile(t, dir, "notes.txt", "int ignored;")
	writeFile(t, dir, ".hidden/d.c", "int d;")

	var mu sync.Mutex
	var events []driver.Event
	opts := driver.Options{
		Jobs:    2,
		Timings: true,
		Progress: driver.SinkFunc(func(ev driver.Event) {
			mu.Lock()
			events = append(events, ev)
			mu.Unlock()
		}),
	}
	res, err := driver.TokenizeDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("TokenizeDir: %v", err)
	}
	var names []string
	for _, f := range res.Files {
		rel, _ := filepath.Rel(dir, f.Path)
		names = append(names, filepath.ToSlash(rel))
	}
	if got := strings.Join(names, ","); got != "a.h,b.c,sub/c.c" {
		t.Fatalf("files = %s", got)
	}
	if !res.HasErrors() || res.Files[0].Bag.HasErrors() || !res.Files[2].Bag.HasErrors() {
		t.Fatal("only sub/c.c should carry errors")
	}
	if res.Timing == nil || len(res.Timing.Phases) != 2 {
		t.Fatalf("timing = %+v", res.Timing)
	}

	final := map[string]driver.Status{}
	for _, ev := range events {
		if ev.Stage == driver.StageLex && ev.Status != driver.StatusWorking {
			final[ev.File] = ev.Status
		}
	}
	if final[res.Files[1].Path] != driver.StatusDone || final[res.Files[2].Path] != driver.StatusError {
		t.Fatalf("final statuses = %v", final)
	}
}

func TestTokenizeDir_Empty(t *testing.T) {
	res, err := driver.TokenizeDir(context.Background(), t.TempDir(), driver.Options{})
	if err != nil || len(res.Files) != 0 || res.HasErrors() {
		t.Fatalf("empty dir: res=%+v err=%v", res, err)
	}
}

func TestTokenizeDir_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.c", "int a;")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := driver.TokenizeDir(ctx, dir, driver.Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestIsSourceFile(t *testing.T) {
	tests := map[string]bool{"a.c": true, "b.H": true, "c.cpp": false, "Makefile": false}
	for path, want := range tests {
		if got := driver.IsSourceFile(path); got != want {
			t.Errorf("IsSourceFile(%q) = %v, want %v", path, got, want)
		}
	}
}
