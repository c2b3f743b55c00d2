package driver

import (
	"context"
	"fmt"
	"time"

	"cci/internal/diag"
	"cci/internal/lexer"
	"cci/internal/observ"
	"cci/internal/source"
	"cci/internal/token"
	"cci/internal/trace"
)

// TokenizeResult holds the token stream of one translation unit.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token // без EOF
	Bag     *diag.Bag
	Cached  bool // tokens came from the TokenCache
}

// Tokenize loads path and scans it. Only I/O failures are returned as errors;
// lexical problems end up in the result's Bag.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "tokenize", trace.CurrentSpan(ctx))
	defer span.End(path)
	ctx = trace.WithSpan(ctx, span)

	var timer *observ.Timer
	if opts.Timings {
		timer = observ.NewTimer()
	}
	loadIdx := beginPhase(timer, "load")
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		opts.emit(Event{File: path, Stage: StageLoad, Status: StatusError, Err: err})
		return nil, fmt.Errorf("tokenize %s: %w", path, err)
	}
	file := fs.Get(fileID)
	endPhase(timer, loadIdx, 1, "")

	res := tokenizeFile(ctx, file, path, opts, timer)
	res.FileSet = fs
	if timer != nil {
		appendTimingDiagnostic(res.Bag, timingPayload{Kind: "tokenize", Path: path, Report: timer.Report()})
	}
	return res, nil
}

// TokenizeSource scans in-memory content registered under name (stdin, repl).
func TokenizeSource(ctx context.Context, name string, content []byte, opts Options) *TokenizeResult {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, content))
	res := tokenizeFile(ctx, file, name, opts, nil)
	res.FileSet = fs
	return res
}

// tokenizeFile is the per-file worker shared by Tokenize, TokenizeDir and Watch.
func tokenizeFile(ctx context.Context, file *source.File, display string, opts Options, timer *observ.Timer) *TokenizeResult {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, "lex", trace.CurrentSpan(ctx))
	started := time.Now()
	bag := diag.NewBag(opts.MaxDiagnostics)
	res := &TokenizeResult{File: file, Bag: bag}

	fp := opts.fingerprint()
	// предупреждения кэша не кладём в сам кэш
	var cacheWarns []diag.Diagnostic
	if opts.Cache != nil {
		toks, diags, ok, err := opts.Cache.Load(file, fp)
		switch {
		case err != nil:
			// битый кэш не мешает лексить заново
			cacheWarns = append(cacheWarns, cacheDiagnostic(file, err))
		case ok:
			for _, d := range diags {
				bag.Add(d)
			}
			res.Tokens, res.Cached = toks, true
			opts.emit(Event{
				File: display, Stage: StageCache, Status: statusFor(bag),
				Tokens: len(toks), Errors: bag.Count(diag.SevError), Elapsed: time.Since(started),
			})
			span.WithCount("tokens", len(toks)).WithExtra("cache", "hit").End(display)
			return res
		}
	}

	opts.emit(Event{File: display, Stage: StageLex, Status: StatusWorking})
	idx := beginPhase(timer, "lex")
	res.Tokens = lexer.Tokenize(file, opts.LexerOptions(bag))
	endPhase(timer, idx, len(res.Tokens), "")

	if opts.Cache != nil {
		if err := opts.Cache.Store(file, fp, res.Tokens, bag.Items()); err != nil {
			cacheWarns = append(cacheWarns, cacheDiagnostic(file, err))
		}
	}
	for _, d := range cacheWarns {
		bag.Add(d)
	}

	opts.emit(Event{
		File: display, Stage: StageLex, Status: statusFor(bag),
		Tokens: len(res.Tokens), Errors: bag.Count(diag.SevError), Elapsed: time.Since(started),
	})
	span.WithCount("tokens", len(res.Tokens)).WithCount("diags", bag.Len()).End(display)
	return res
}

func statusFor(bag *diag.Bag) Status {
	if bag.HasErrors() {
		return StatusError
	}
	return StatusDone
}

func cacheDiagnostic(file *source.File, err error) diag.Diagnostic {
	return diag.Newf(diag.SevWarning, diag.IOCacheError, source.Span{File: file.ID}, "token cache: %v", err)
}

func beginPhase(t *observ.Timer, name string) int {
	if t == nil {
		return -1
	}
	return t.Begin(name)
}

func endPhase(t *observ.Timer, idx, items int, note string) {
	if t != nil {
		t.End(idx, items, note)
	}
}
