package lexer

import (
	"fmt"

	"cci/internal/diag"
	"cci/internal/token"
)

// Слово - максимальный прогон байтов до пробела, спецсимвола, кавычки или точки.
// Чистое слово [A-Za-z_][A-Za-z0-9_]* - ключевое слово или Ident,
// всё остальное (a$b, x@y, идентификаторы с не-ASCII) - LexBadIdent на весь прогон.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	clean := lx.scanWord()
	tok := lx.emit(token.Ident, start)

	if lx.tooLong(&tok) {
		return tok
	}
	if !clean {
		lx.errLex(diag.LexBadIdent, tok.Span, fmt.Sprintf("malformed identifier %q", tok.Lexeme))
		tok.Kind = token.Invalid
		return tok
	}
	if kw, ok := token.LookupKeywordBytes(tok.Lexeme); ok {
		tok.Kind = kw
	}
	return tok
}

// scanUnknown: прогон начинается с байта, который не может начать токен.
// Одиночная руна - LexUnknownChar, длинный прогон - LexBadIdent.
func (lx *Lexer) scanUnknown() token.Token {
	start := lx.cursor.Mark()
	r, _ := lx.peekRune()
	lx.bumpRune()
	single := lx.cursor.EOF() || isWordEnd(lx.cursor.Peek())
	if !single {
		lx.scanWord()
	}
	tok := lx.emit(token.Invalid, start)
	if single {
		diag.ReportError(lx.opts.Reporter, diag.LexUnknownChar, tok.Span, fmt.Sprintf("unknown character %q", r)).
			WithFix("remove the character", diag.FixEdit{Span: tok.Span}).
			Emit()
		return tok
	}
	if lx.tooLong(&tok) {
		return tok
	}
	lx.errLex(diag.LexBadIdent, tok.Span,
		fmt.Sprintf("malformed identifier %q: must start with a letter or '_'", tok.Lexeme))
	return tok
}

// scanWord двигает курсор до конца слова; true - все байты [A-Za-z0-9_].
func (lx *Lexer) scanWord() bool {
	clean := true
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if isWordEnd(b) {
			break
		}
		if !isIdentContinueByte(b) {
			clean = false
		}
		lx.bumpRune()
	}
	return clean
}

// tooLong репортит и помечает Invalid прогоны длиннее лимита.
func (lx *Lexer) tooLong(tok *token.Token) bool {
	if tok.Span.Len() <= lx.opts.maxTokenLength() {
		return false
	}
	tok.Kind = token.Invalid
	lx.errLex(diag.LexTokenTooLong, tok.Span,
		fmt.Sprintf("token is %d bytes long, limit is %d", tok.Span.Len(), lx.opts.maxTokenLength()))
	return true
}
