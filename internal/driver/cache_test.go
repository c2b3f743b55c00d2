package driver_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"cci/internal/driver"
)

func TestTokenCache_RoundTrip(t *testing.T) {
	cache, err := driver.OpenTokenCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	p := writeFile(t, t.TempDir(), "a.c", "int x = 'ab' + @;\n")
	opts := driver.Options{Cache: cache}

	first, err := driver.Tokenize(context.Background(), p, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached {
		t.Fatal("first run must miss")
	}
	second, err := driver.Tokenize(context.Background(), p, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached {
		t.Fatal("second run must hit")
	}
	if len(first.Tokens) != len(second.Tokens) {
		t.Fatalf("token count %d vs %d", len(first.Tokens), len(second.Tokens))
	}
	for i := range first.Tokens {
		a, b := first.Tokens[i], second.Tokens[i]
		if a.Kind != b.Kind || a.Span != b.Span || !bytes.Equal(a.Lexeme, b.Lexeme) {
			t.Fatalf("token %d differs: %+v vs %+v", i, a, b)
		}
	}
	if first.Bag.Len() == 0 || first.Bag.Len() != second.Bag.Len() {
		t.Fatalf("diagnostics %d vs %d", first.Bag.Len(), second.Bag.Len())
	}
	for i, d := range first.Bag.Items() {
		c := second.Bag.Items()[i]
		if d.Code != c.Code || d.Severity != c.Severity || d.Primary != c.Primary || d.Message != c.Message {
			t.Fatalf("diagnostic %d differs: %+v vs %+v", i, d, c)
		}
	}
	if hits, misses := cache.Stats(); hits != 1 || misses != 1 {
		t.Fatalf("stats = %d/%d", hits, misses)
	}
}

func TestTokenCache_OptionsChangeKey(t *testing.T) {
	cache, err := driver.OpenTokenCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	p := writeFile(t, t.TempDir(), "a.c", "'ab'")
	if _, err := driver.Tokenize(context.Background(), p, driver.Options{Cache: cache}); err != nil {
		t.Fatal(err)
	}
	quiet, err := driver.Tokenize(context.Background(), p, driver.Options{Cache: cache, QuietMultichar: true})
	if err != nil {
		t.Fatal(err)
	}
	if quiet.Cached || quiet.Bag.Len() != 0 {
		t.Fatalf("quiet run reused a noisy entry: cached=%v diags=%d", quiet.Cached, quiet.Bag.Len())
	}
}

func TestTokenCache_ContentChange(t *testing.T) {
	cache, err := driver.OpenTokenCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	p := writeFile(t, t.TempDir(), "a.c", "int a;")
	opts := driver.Options{Cache: cache}
	if _, err := driver.Tokenize(context.Background(), p, opts); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte("int a, b;"), 0o600); err != nil {
		t.Fatal(err)
	}
	res, err := driver.Tokenize(context.Background(), p, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.Cached || len(res.Tokens) != 5 {
		t.Fatalf("stale entry used: cached=%v tokens=%d", res.Cached, len(res.Tokens))
	}
}

func TestTokenCache_CorruptEntry(t *testing.T) {
	dir := t.TempDir()
	cache, err := driver.OpenTokenCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	p := writeFile(t, t.TempDir(), "a.c", "int a;")
	opts := driver.Options{Cache: cache}
	if _, err := driver.Tokenize(context.Background(), p, opts); err != nil {
		t.Fatal(err)
	}
	entries, _ := filepath.Glob(filepath.Join(dir, "tokens", "*", "*.mp"))
	if len(entries) != 1 {
		t.Fatalf("expected one cache entry, got %v", entries)
	}
	if err := os.WriteFile(entries[0], []byte{0xc1, 0x00}, 0o600); err != nil {
		t.Fatal(err)
	}
	res, err := driver.Tokenize(context.Background(), p, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.Cached || len(res.Tokens) != 3 || res.Bag.Len() != 1 {
		t.Fatalf("corrupt entry: cached=%v tokens=%d diags=%+v", res.Cached, len(res.Tokens), res.Bag.Items())
	}
	// перезаписанная запись не несёт предупреждение о битом кэше
	res, err = driver.Tokenize(context.Background(), p, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Cached || len(res.Tokens) != 3 || res.Bag.Len() != 0 {
		t.Fatalf("rewritten entry: cached=%v tokens=%d diags=%+v", res.Cached, len(res.Tokens), res.Bag.Items())
	}
}

func TestTokenCache_DropAll(t *testing.T) {
	dir := t.TempDir()
	cache, err := driver.OpenTokenCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll on empty cache: %v", err)
	}
	p := writeFile(t, t.TempDir(), "a.c", "int a;")
	opts := driver.Options{Cache: cache}
	if _, err := driver.Tokenize(context.Background(), p, opts); err != nil {
		t.Fatal(err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	res, err := driver.Tokenize(context.Background(), p, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.Cached {
		t.Fatal("entry survived DropAll")
	}
}

func TestDefaultCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	dir, err := driver.DefaultCacheDir()
	if err != nil || dir != filepath.Join("/tmp/xdg", "cci") {
		t.Fatalf("DefaultCacheDir = %q, %v", dir, err)
	}
}
