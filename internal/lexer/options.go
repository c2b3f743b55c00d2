package lexer

import (
	"cci/internal/diag"
	"cci/internal/source"
)

// DefaultMaxTokenLength bounds identifier and numeric runs.
const DefaultMaxTokenLength = 4096

type Options struct {
	Reporter diag.Reporter // может быть nil - тогда ошибки игнорируем (но продолжаем лексить)
	// QuietMultichar подавляет предупреждение о многосимвольных 'ab' константах.
	QuietMultichar bool
	// MaxTokenLength: 0 means DefaultMaxTokenLength.
	MaxTokenLength uint32
}

func (o Options) maxTokenLength() uint32 {
	if o.MaxTokenLength == 0 {
		return DefaultMaxTokenLength
	}
	return o.MaxTokenLength
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil, nil)
	}
}

func (lx *Lexer) warnLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevWarning, sp, msg, nil, nil)
	}
}
