package driver_test

import (
	"context"
	"os"
	"testing"
	"time"

	"cci/internal/driver"
)

type watchHit struct {
	path   string
	tokens int
}

func TestWatch_RelexesOnWrite(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "a.c", "int a;")

	hits := make(chan watchHit, 16)
	w, err := driver.NewWatcher([]string{dir}, driver.Options{}, func(path string, res *driver.TokenizeResult, err error) {
		if err != nil {
			return
		}
		hits <- watchHit{path: path, tokens: len(res.Tokens)}
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	w.Debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	expect := func(tokens int) {
		t.Helper()
		select {
		case h := <-hits:
			if h.tokens != tokens {
				t.Fatalf("%s: %d tokens, want %d", h.path, h.tokens, tokens)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("no result with %d tokens", tokens)
		}
	}
	expect(3)

	if err := os.WriteFile(p, []byte("int a, b;"), 0o600); err != nil {
		t.Fatal(err)
	}
	expect(5)

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestWatch_MissingPath(t *testing.T) {
	if _, err := driver.NewWatcher([]string{"/definitely/not/here"}, driver.Options{}, nil); err == nil {
		t.Fatal("expected an error for a missing path")
	}
}
