package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"cci/internal/diag"
	"cci/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("char *s = \"unterminated string\n")
	fileID := fs.AddVirtual("/home/user/project/src/test.c", content)
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 10, End: 30},
		"Unterminated string literal",
	))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/test.c"},
		{"Relative path", PathModeRelative, "src/test.c"},
		{"Basename only", PathModeBasename, "test.c:1:11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "ERROR LEX1002") {
				t.Errorf("Expected severity and code in output, got:\n%s", output)
			}
			if !strings.Contains(output, "Unterminated string") {
				t.Error("Expected error message in output")
			}
		})
	}
}

// TestPathModeAuto проверяет авто-режим выбора пути
func TestPathModeAuto(t *testing.T) {
	fs := source.NewFileSet()

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"Short path - as is", "test.c", "test.c"},
		{"Long absolute path - basename", "/very/long/absolute/path/to/some/nested/directory/file.c", "file.c:1:9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fileID := fs.AddVirtual(tt.path, []byte("int x = @@;\n"))

			bag := diag.NewBag(10)
			bag.Add(diag.New(diag.SevWarning, diag.LexUnknownChar, source.Span{File: fileID, Start: 8, End: 10}, "Test warning"))

			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeAuto})
			output := buf.String()

			if !strings.Contains(output, tt.expected) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.expected, output)
			}
			if strings.Contains(output, "/very/long") {
				t.Errorf("long absolute path must be shortened, got:\n%s", output)
			}
		})
	}
}

func TestPrettyCaretUnderline(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("caret.c", []byte("int a;\n\tx = 0x;\nint b;\n"))

	bag := diag.NewBag(2)
	// "0x" на второй строке, после таба
	bag.Add(diag.NewError(diag.LexBadNumber, source.Span{File: fileID, Start: 12, End: 14}, "malformed constant"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename})
	lines := strings.Split(buf.String(), "\n")

	want := []string{
		"caret.c:2:6: ERROR LEX1004: malformed constant",
		" 1 | int a;",
		" 2 |     x = 0x;",
		"   |         ^~",
		" 3 | int b;",
	}
	for i, w := range want {
		if i >= len(lines) || lines[i] != w {
			t.Fatalf("line %d = %q, want %q\nfull output:\n%s", i, safeLine(lines, i), w, buf.String())
		}
	}
}

func TestPrettyWideCharacters(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("wide.c", []byte("s = \"世\" @;\n"))

	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 10, End: 11}, "unknown character"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	lines := strings.Split(buf.String(), "\n")
	// `s = "世" ` занимает 9 ячеек
	if got := safeLine(lines, 2); got != "   |          ^" {
		t.Fatalf("caret line = %q\nfull output:\n%s", got, buf.String())
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("char *s = \"abc\n")
	fileID := fs.AddVirtual("test.c", content)

	bag := diag.NewBag(4)
	primary := source.Span{File: fileID, Start: 10, End: 14}
	d := diag.NewError(diag.LexUnterminatedString, primary, "unterminated string literal")
	d = d.WithNote(source.Span{File: fileID, Start: 10, End: 11}, "literal starts here")
	d = d.WithFix("insert closing quote", diag.FixEdit{Span: source.Span{File: fileID, Start: 14, End: 14}, NewText: "\""})
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true, ShowFixes: true})
	output := buf.String()

	if !strings.Contains(output, "note: test.c:1:11: literal starts here") {
		t.Fatalf("expected note with location, got:\n%s", output)
	}
	if !strings.Contains(output, "fix #1: insert closing quote") {
		t.Fatalf("expected first fix entry, got:\n%s", output)
	}
	if !strings.Contains(output, `apply="\"" at test.c:1:15`) {
		t.Fatalf("expected fix edit apply line, got:\n%s", output)
	}
	if strings.Contains(output, "preview:") {
		t.Fatalf("preview must be off unless requested, got:\n%s", output)
	}

	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if strings.Contains(buf.String(), "note:") || strings.Contains(buf.String(), "fix #1") {
		t.Fatalf("notes and fixes are opt-in, got:\n%s", buf.String())
	}
}

func TestPrettyFixPreview(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("int a = 42 // missing semicolon")
	fileID := fs.AddVirtual("example.c", content)

	bag := diag.NewBag(2)
	insertSpan := source.Span{File: fileID, Start: 10, End: 10}
	bag.Add(diag.New(diag.SevWarning, diag.LexUnknownChar, insertSpan, "missing semicolon").
		WithFix("insert semicolon", diag.FixEdit{Span: insertSpan, NewText: ";"}))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowFixes: true, ShowPreview: true})

	output := buf.String()
	if !strings.Contains(output, "preview:") {
		t.Fatalf("expected preview header in output, got:\n%s", output)
	}
	if !strings.Contains(output, "- int a = 42 // missing semicolon") {
		t.Fatalf("expected before line in preview, got:\n%s", output)
	}
	if !strings.Contains(output, "+ int a = 42; // missing semicolon") {
		t.Fatalf("expected after line in preview, got:\n%s", output)
	}
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("c.c", []byte("@\n"))
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 0, End: 1}, "unknown character"))

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatalf("plain output contains escape codes:\n%q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatalf("colored output has no escape codes:\n%q", colored.String())
	}
}

func safeLine(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return "<missing>"
}
