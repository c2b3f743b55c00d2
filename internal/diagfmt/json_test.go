package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"cci/internal/diag"
	"cci/internal/source"
)

func decodeOutput(t *testing.T, buf *bytes.Buffer) DiagnosticsOutput {
	t.Helper()
	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	return output
}

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("int main() {\n\tchar *s = \"unterminated\n}")
	fileID := fs.AddVirtual("test.c", content)

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LexUnterminatedString, source.Span{File: fileID, Start: 24, End: 37}, "Unterminated string literal"))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true, IncludeFixes: true}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	output := decodeOutput(t, &buf)

	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("Expected exactly one diagnostic, got %d/%d", output.Count, len(output.Diagnostics))
	}
	d := output.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "LEX1002" || d.Message != "Unterminated string literal" {
		t.Errorf("unexpected diagnostic header: %+v", d)
	}
	if d.Title != diag.LexUnterminatedString.Title() {
		t.Errorf("Expected code title, got %q", d.Title)
	}
	if d.Location.File != "test.c" || d.Location.StartByte != 24 || d.Location.EndByte != 37 {
		t.Errorf("unexpected location: %+v", d.Location)
	}
	// '"' стоит на второй строке после "\tchar *s = "
	if d.Location.StartLine != 2 || d.Location.StartCol != 12 {
		t.Errorf("Expected 2:12, got %d:%d", d.Location.StartLine, d.Location.StartCol)
	}
}

// TestJSONWithNotesAndFixes проверяет JSON с заметками и исправлениями
func TestJSONWithNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.c", []byte("int x = 4$2;"))

	bag := diag.NewBag(10)
	d := diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 9, End: 10}, "unknown character '$'").
		WithNote(source.Span{File: fileID, Start: 8, End: 11}, "inside this constant").
		WithFix("remove the character", diag.FixEdit{Span: source.Span{File: fileID, Start: 9, End: 10}})
	bag.Add(d)

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true, IncludeFixes: true}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	out := decodeOutput(t, &buf).Diagnostics[0]

	if len(out.Notes) != 1 || out.Notes[0].Message != "inside this constant" || out.Notes[0].Location.StartCol != 9 {
		t.Fatalf("unexpected notes: %+v", out.Notes)
	}
	if len(out.Fixes) != 1 || out.Fixes[0].Title != "remove the character" || len(out.Fixes[0].Edits) != 1 {
		t.Fatalf("unexpected fixes: %+v", out.Fixes)
	}
	edit := out.Fixes[0].Edits[0]
	if edit.NewText != "" || edit.OldText != "$" {
		t.Errorf("edit = %+v, want removal of \"$\"", edit)
	}
	if edit.BeforeLines != nil {
		t.Errorf("previews are opt-in")
	}
}

func TestJSONNotesOptIn(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("t.c", []byte("'a"))
	bag := diag.NewBag(4)
	sp := source.Span{File: fileID, Start: 0, End: 2}
	bag.Add(diag.NewError(diag.LexUnterminatedChar, sp, "unterminated").WithNote(sp, "starts here"))
	bag.Add(diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, "timings").WithNote(source.Span{}, "lex: 1ms"))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	out := decodeOutput(t, &buf)
	if len(out.Diagnostics[0].Notes) != 0 {
		t.Errorf("notes must be omitted unless requested")
	}
	if len(out.Diagnostics[1].Notes) != 1 {
		t.Errorf("timing diagnostics always carry their notes")
	}
}

// TestJSONWithoutPositions проверяет JSON без позиций строк/колонок
func TestJSONWithoutPositions(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.c", []byte("int x = 42;"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevInfo, diag.LexInfo, source.Span{File: fileID, Start: 4, End: 5}, "Info message"))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	d := decodeOutput(t, &buf).Diagnostics[0]

	if d.Location.StartLine != 0 {
		t.Errorf("Expected start_line to be omitted (0), got %d", d.Location.StartLine)
	}
	// байтовые позиции есть всегда
	if d.Location.StartByte != 4 {
		t.Errorf("Expected start_byte=4, got %d", d.Location.StartByte)
	}
}

// TestJSONMaxLimit проверяет ограничение количества диагностик
func TestJSONMaxLimit(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.c", []byte("@@@@@"))

	bag := diag.NewBag(10)
	for i := range uint32(5) {
		bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: i, End: i + 1}, "unknown character"))
	}

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{PathMode: PathModeBasename, Max: 3}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	output := decodeOutput(t, &buf)
	if output.Count != 3 || len(output.Diagnostics) != 3 {
		t.Errorf("Expected 3 diagnostics (limited), got %d/%d", output.Count, len(output.Diagnostics))
	}
}

// TestJSONPathModes проверяет различные режимы путей
func TestJSONPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/home/user/project")
	fileID := fs.AddVirtual("/home/user/project/src/main.c", []byte("@"))

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 0, End: 1}, "Error"))

	tests := []struct {
		name     string
		pathMode PathMode
		expected string
	}{
		{"Absolute", PathModeAbsolute, "/home/user/project/src/main.c"},
		{"Relative", PathModeRelative, "src/main.c"},
		{"Basename", PathModeBasename, "main.c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := JSON(&buf, bag, fs, JSONOpts{PathMode: tt.pathMode}); err != nil {
				t.Fatalf("JSON() error: %v", err)
			}
			if got := decodeOutput(t, &buf).Diagnostics[0].Location.File; got != tt.expected {
				t.Errorf("Expected file=%s, got %s", tt.expected, got)
			}
		})
	}
}

func TestJSONFixPreview(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("example.c", []byte("int a = 42 // missing semicolon"))

	bag := diag.NewBag(2)
	insertSpan := source.Span{File: fileID, Start: 10, End: 10}
	bag.Add(diag.New(diag.SevWarning, diag.LexUnknownChar, insertSpan, "missing semicolon").
		WithFix("insert semicolon", diag.FixEdit{Span: insertSpan, NewText: ";"}))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeFixes: true, IncludePreviews: true}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	d := decodeOutput(t, &buf).Diagnostics[0]
	if len(d.Fixes) != 1 || len(d.Fixes[0].Edits) != 1 {
		t.Fatalf("Expected one fix with one edit, got %+v", d.Fixes)
	}

	edit := d.Fixes[0].Edits[0]
	if len(edit.BeforeLines) != 1 || edit.BeforeLines[0] != "int a = 42 // missing semicolon" {
		t.Errorf("Unexpected before lines: %q", edit.BeforeLines)
	}
	if len(edit.AfterLines) != 1 || edit.AfterLines[0] != "int a = 42; // missing semicolon" {
		t.Errorf("Unexpected after lines: %q", edit.AfterLines)
	}
}
