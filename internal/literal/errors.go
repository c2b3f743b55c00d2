package literal

import (
	"errors"
	"fmt"

	"cci/internal/diag"
	"cci/internal/source"

	"fortio.org/safecast"
)

var (
	ErrOverflow       = errors.New("value out of range")
	ErrSyntax         = errors.New("invalid syntax")
	ErrMixedEncodings = errors.New("mixed encodings")
)

// Error describes why a lexeme could not be evaluated.
type Error struct {
	Code diag.Code
	Off  int // смещение внутри лексемы
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", e.Code.ID(), e.Off, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(code diag.Code, off int, sentinel error, format string, args ...any) *Error {
	return &Error{Code: code, Off: off, Msg: fmt.Sprintf(format, args...), Err: sentinel}
}

// Report sends err to r as a diagnostic over the lexeme span when err is an *Error.
// Other errors are reported as LitMalformed over the whole span.
func Report(r diag.Reporter, span source.Span, err error) {
	if r == nil || err == nil {
		return
	}
	var le *Error
	if !errors.As(err, &le) {
		r.Report(diag.LitMalformed, diag.SevError, span, err.Error(), nil, nil)
		return
	}
	at := span
	if off, convErr := safecast.Conv[uint32](le.Off); convErr == nil && off < span.Len() {
		at = source.Span{File: span.File, Start: span.Start + off, End: span.Start + off + 1}
	}
	r.Report(le.Code, diag.SevError, at, le.Msg, nil, nil)
}
