package driver

import (
	"fmt"

	"cci/internal/diag"
	"cci/internal/lexer"
)

// Options configures a tokenize run. The zero value is usable.
type Options struct {
	MaxDiagnostics int  // per file; <= 0 means unbounded
	Dedup          bool // drop repeated diagnostics before they reach the bag
	QuietMultichar bool
	MaxTokenLength uint32
	Jobs           int // параллелизм TokenizeDir; 0 = GOMAXPROCS

	Cache    *TokenCache  // nil disables the on-disk cache
	Timings  bool         // append an ObsTimings diagnostic to the result bag
	Progress ProgressSink // may be nil
}

// LexerOptions wires bag into lexer options as a (possibly deduplicating) reporter.
func (o Options) LexerOptions(bag *diag.Bag) lexer.Options {
	adapter := &lexer.ReporterAdapter{Bag: bag, Dedup: o.Dedup}
	return lexer.Options{
		Reporter:       adapter.Reporter(),
		QuietMultichar: o.QuietMultichar,
		MaxTokenLength: o.MaxTokenLength,
	}
}

// fingerprint covers every option that changes the lexer's output, so
// cached results are never reused across incompatible runs.
func (o Options) fingerprint() string {
	return fmt.Sprintf("max=%d;dedup=%t;quiet=%t;toklen=%d",
		o.MaxDiagnostics, o.Dedup, o.QuietMultichar, o.MaxTokenLength)
}

func (o Options) emit(ev Event) {
	if o.Progress != nil {
		o.Progress.OnEvent(ev)
	}
}
