package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("test.c", []byte("int a;"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}
	id2 := fs.Add("test.c", []byte("int b;"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	latestID, exists := fs.GetLatest("test.c")
	if !exists || latestID != id2 {
		t.Fatalf("GetLatest = %d,%v, want %d,true", latestID, exists, id2)
	}
	// старая версия остаётся доступной
	if got := string(fs.Get(id1).Content); got != "int a;" {
		t.Errorf("first version content = %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Len() = %d, want 2", fs.Len())
	}
}

func TestLookupOutOfRange(t *testing.T) {
	fs := NewFileSet()
	if _, ok := fs.Lookup(3); ok {
		t.Fatalf("Lookup on empty set must fail")
	}
	id := fs.AddVirtual("x.c", []byte("x"))
	f, ok := fs.Lookup(id)
	if !ok || f.Flags&FileVirtual == 0 {
		t.Fatalf("expected virtual file, got %+v ok=%v", f, ok)
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("r.c", []byte("ab\ncd\n\nxyz"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}}, // сам '\n' принадлежит первой строке
		{3, LineCol{2, 1}},
		{4, LineCol{2, 2}},
		{6, LineCol{3, 1}},
		{7, LineCol{4, 1}},
		{9, LineCol{4, 3}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("l.c", []byte("first\nsecond\nthird")))

	cases := map[uint32]string{0: "", 1: "first", 2: "second", 3: "third", 4: ""}
	for n, want := range cases {
		if got := f.GetLine(n); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestFileBytesBorrowsContent(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("b.c", []byte("a[i]")))

	b := f.Bytes(Span{File: f.ID, Start: 1, End: 3})
	if string(b) != "[i" {
		t.Fatalf("Bytes = %q", b)
	}
	if &b[0] != &f.Content[1] {
		t.Fatalf("Bytes must return a view into the file content")
	}
	if got := f.Bytes(Span{Start: 2, End: 100}); string(got) != "i]" {
		t.Fatalf("clamped Bytes = %q", got)
	}
}

func TestLoadNormalizesBOMAndCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.c")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFint\r\nx;\r\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "int\nx;\n" {
		t.Errorf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b, want BOM and CRLF bits", f.Flags)
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "nope.c")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()
	baseDir := filepath.Join(tmp, "base")
	target := filepath.Join(tmp, "other", "file.c")

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if want := normalizePath(target); got != want {
		t.Fatalf("expected absolute fallback %q, got %q", want, got)
	}
}

func TestRelativePathInsideBaseStaysRelative(t *testing.T) {
	tmp := t.TempDir()
	got, err := RelativePath(filepath.Join(tmp, "src", "main.c"), tmp)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if got != "src/main.c" {
		t.Fatalf("got %q, want src/main.c", got)
	}
}
