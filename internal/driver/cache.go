package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"cci/internal/diag"
	"cci/internal/source"
	"cci/internal/token"
)

// Current schema version - increment when tokenPayload format changes
const tokenCacheSchemaVersion uint16 = 1

// ErrCacheSchema is returned by Load for entries written by another schema.
var ErrCacheSchema = errors.New("token cache schema mismatch")

// TokenCache хранит токены и диагностики файла на диске, ключ: SHA-256
// содержимого плюс отпечаток опций лексера.
// Thread-safe for concurrent access.
type TokenCache struct {
	mu     sync.RWMutex
	dir    string
	hits   atomic.Int64
	misses atomic.Int64
}

// Lexemes are not stored: they are views into the file and get rebuilt on load.
type cachedToken struct {
	_msgpack struct{} `msgpack:",as_array"`
	Kind     uint8
	Start    uint32
	End      uint32
}

type cachedSpan struct {
	_msgpack struct{} `msgpack:",as_array"`
	Start    uint32
	End      uint32
}

type cachedNote struct {
	Span cachedSpan
	Msg  string
}

type cachedEdit struct {
	Span    cachedSpan
	NewText string
}

type cachedFix struct {
	Title string
	Edits []cachedEdit
}

type cachedDiag struct {
	Severity uint8
	Code     uint16
	Message  string
	Primary  cachedSpan
	Notes    []cachedNote `msgpack:",omitempty"`
	Fixes    []cachedFix  `msgpack:",omitempty"`
}

type tokenPayload struct {
	Schema  uint16
	Options string
	Size    uint32
	Tokens  []cachedToken
	Diags   []cachedDiag
}

// DefaultCacheDir returns $XDG_CACHE_HOME/cci or ~/.cache/cci.
func DefaultCacheDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "cci"), nil
}

// OpenTokenCache opens (creating if needed) a cache rooted at dir;
// an empty dir means DefaultCacheDir.
func OpenTokenCache(dir string) (*TokenCache, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultCacheDir(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &TokenCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *TokenCache) Dir() string { return c.dir }

// Stats returns the hit and miss counters since the cache was opened.
func (c *TokenCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func cacheKey(file *source.File, fingerprint string) [32]byte {
	h := sha256.New()
	h.Write(file.Hash[:])
	h.Write([]byte(fingerprint))
	var key [32]byte
	copy(key[:], h.Sum(nil))
	return key
}

func (c *TokenCache) pathFor(key [32]byte) string {
	hexKey := hex.EncodeToString(key[:])
	// двухсимвольный подкаталог, чтобы не раздувать одну директорию
	return filepath.Join(c.dir, "tokens", hexKey[:2], hexKey+".mp")
}

// Store serializes the token stream and diagnostics of file.
func (c *TokenCache) Store(file *source.File, fingerprint string, toks []token.Token, diags []diag.Diagnostic) error {
	if c == nil {
		return nil
	}
	payload := tokenPayload{
		Schema:  tokenCacheSchemaVersion,
		Options: fingerprint,
		Size:    file.Size(),
		Tokens:  make([]cachedToken, len(toks)),
		Diags:   make([]cachedDiag, 0, len(diags)),
	}
	for i, tok := range toks {
		payload.Tokens[i] = cachedToken{Kind: uint8(tok.Kind), Start: tok.Span.Start, End: tok.Span.End}
	}
	for _, d := range diags {
		payload.Diags = append(payload.Diags, diagToCache(d))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(cacheKey(file, fingerprint))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }() // после rename файла уже нет

	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, p)
}

// Load returns the cached tokens for file. Lexemes are re-sliced from
// file.Content and spans carry file.ID, so the result is indistinguishable
// from a fresh scan.
func (c *TokenCache) Load(file *source.File, fingerprint string) ([]token.Token, []diag.Diagnostic, bool, error) {
	if c == nil {
		return nil, nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(cacheKey(file, fingerprint)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.misses.Add(1)
			return nil, nil, false, nil
		}
		return nil, nil, false, err
	}
	var payload tokenPayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		c.misses.Add(1)
		return nil, nil, false, fmt.Errorf("decode: %w", err)
	}
	if payload.Schema != tokenCacheSchemaVersion {
		c.misses.Add(1)
		return nil, nil, false, ErrCacheSchema
	}
	if payload.Options != fingerprint || payload.Size != file.Size() {
		c.misses.Add(1)
		return nil, nil, false, nil
	}

	toks := make([]token.Token, len(payload.Tokens))
	for i, ct := range payload.Tokens {
		if ct.End < ct.Start || ct.End > payload.Size {
			c.misses.Add(1)
			return nil, nil, false, fmt.Errorf("token %d: span [%d,%d) out of file", i, ct.Start, ct.End)
		}
		sp := source.Span{File: file.ID, Start: ct.Start, End: ct.End}
		toks[i] = token.Token{Kind: token.Kind(ct.Kind), Span: sp, Lexeme: file.Bytes(sp)}
	}
	diags := make([]diag.Diagnostic, len(payload.Diags))
	for i, cd := range payload.Diags {
		diags[i] = diagFromCache(cd, file.ID)
	}
	c.hits.Add(1)
	return toks, diags, true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *TokenCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог и удалим; новый Store создаст его заново
	tokens := filepath.Join(c.dir, "tokens")
	old := tokens + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(tokens, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

func spanToCache(sp source.Span) cachedSpan { return cachedSpan{Start: sp.Start, End: sp.End} }

func spanFromCache(cs cachedSpan, file source.FileID) source.Span {
	return source.Span{File: file, Start: cs.Start, End: cs.End}
}

func diagToCache(d diag.Diagnostic) cachedDiag {
	cd := cachedDiag{
		Severity: uint8(d.Severity),
		Code:     uint16(d.Code),
		Message:  d.Message,
		Primary:  spanToCache(d.Primary),
	}
	for _, n := range d.Notes {
		cd.Notes = append(cd.Notes, cachedNote{Span: spanToCache(n.Span), Msg: n.Msg})
	}
	for _, fx := range d.Fixes {
		cf := cachedFix{Title: fx.Title}
		for _, e := range fx.Edits {
			cf.Edits = append(cf.Edits, cachedEdit{Span: spanToCache(e.Span), NewText: e.NewText})
		}
		cd.Fixes = append(cd.Fixes, cf)
	}
	return cd
}

func diagFromCache(cd cachedDiag, file source.FileID) diag.Diagnostic {
	d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code), spanFromCache(cd.Primary, file), cd.Message)
	for _, n := range cd.Notes {
		d = d.WithNote(spanFromCache(n.Span, file), n.Msg)
	}
	for _, cf := range cd.Fixes {
		edits := make([]diag.FixEdit, len(cf.Edits))
		for i, e := range cf.Edits {
			edits[i] = diag.FixEdit{Span: spanFromCache(e.Span, file), NewText: e.NewText}
		}
		d = d.WithFix(cf.Title, edits...)
	}
	return d
}
