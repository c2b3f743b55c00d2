package lexer

import (
	"fmt"

	"cci/internal/diag"
	"cci/internal/source"
	"cci/internal/token"
)

// quotePrefixLen: длина префикса кодировки (L, u, U, u8) перед кавычкой, 0 если его нет.
func (lx *Lexer) quotePrefixLen() uint32 {
	rest := lx.cursor.Rest()
	switch {
	case len(rest) >= 3 && rest[0] == 'u' && rest[1] == '8' && isQuote(rest[2]):
		return 2
	case len(rest) >= 2 && (rest[0] == 'L' || rest[0] == 'u' || rest[0] == 'U') && isQuote(rest[1]):
		return 1
	}
	return 0
}

// scanQuoted сканирует 'c' или "s" (с префиксом длины prefixLen).
// Escape-последовательности учитываются при поиске закрывающей кавычки;
// перевод строки или EOF до неё - незакрытый литерал.
func (lx *Lexer) scanQuoted(prefixLen uint32) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Advance(prefixLen)
	quoteAt := lx.cursor.Mark()
	quote := lx.cursor.Bump()

	units := 0 // символов после декодирования: escape = 1, прочие байты по одному
	for {
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
			return lx.unterminated(start, quoteAt, quote)
		}
		b := lx.cursor.Peek()
		if b == quote {
			lx.cursor.Bump()
			break
		}
		if b == '\\' {
			escStart := lx.cursor.Mark()
			lx.cursor.Bump()
			if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
				return lx.unterminated(start, quoteAt, quote)
			}
			lx.scanEscape(escStart)
			units++
			continue
		}
		lx.cursor.Bump()
		units++
	}

	if quote == '\'' {
		tok := lx.emit(token.CharConst, start)
		switch {
		case units == 0:
			tok.Kind = token.Invalid
			lx.errLex(diag.LexEmptyChar, tok.Span, "empty character constant")
		case units > 1 && !lx.opts.QuietMultichar:
			lx.warnLex(diag.LexMultibyteChar, tok.Span,
				fmt.Sprintf("multi-character character constant %s (%d bytes)", tok.Lexeme, units))
		}
		return tok
	}

	tok := lx.emit(token.StringLit, start)
	if units == 0 {
		tok.Kind = token.Invalid
		lx.errLex(diag.LexEmptyString, tok.Span, "empty string literal")
	}
	return tok
}

// scanEscape: курсор стоит сразу после '\'. Неизвестная последовательность -
// предупреждение, литерал продолжается.
func (lx *Lexer) scanEscape(escStart Mark) {
	c := lx.cursor.Peek()
	switch {
	case c == '\'' || c == '"' || c == '?' || c == '\\' ||
		c == 'a' || c == 'b' || c == 'f' || c == 'n' || c == 'r' || c == 't' || c == 'v':
		lx.cursor.Bump()
		return
	case isOct(c):
		// до трёх восьмеричных цифр
		for i := 0; i < 3 && isOct(lx.cursor.Peek()); i++ {
			lx.cursor.Bump()
		}
		return
	case c == 'x':
		lx.cursor.Bump()
		n := lx.eatHex(-1)
		if n > 0 {
			return
		}
	case c == 'u' || c == 'U':
		want := 4
		if c == 'U' {
			want = 8
		}
		lx.cursor.Bump()
		if lx.eatHex(want) == want {
			return
		}
	default:
		lx.bumpRune()
	}
	if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
		// \x или \u оборваны концом строки: хватит ошибки о незакрытом литерале
		return
	}
	sp := lx.cursor.SpanFrom(escStart)
	lx.warnLex(diag.LexUnknownEscape, sp, fmt.Sprintf("unknown escape sequence %s", lx.file.Bytes(sp)))
}

// eatHex съедает до limit hex-цифр (limit < 0 - без ограничения).
func (lx *Lexer) eatHex(limit int) int {
	n := 0
	for (limit < 0 || n < limit) && !lx.cursor.EOF() && isHex(lx.cursor.Peek()) {
		lx.cursor.Bump()
		n++
	}
	return n
}

// unterminated: ошибка, Invalid-токен от начала литерала до первого пробела
// или спецсимвола после открывающей кавычки; сканирование продолжается оттуда.
func (lx *Lexer) unterminated(start, quoteAt Mark, quote byte) token.Token {
	lx.cursor.Reset(quoteAt)
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if isSpace(b) || isSpecial(b) {
			break
		}
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Invalid, start)

	code, msg := diag.LexUnterminatedString, "missing terminating \" character"
	if quote == '\'' {
		code, msg = diag.LexUnterminatedChar, "missing terminating ' character"
	}
	quoteLoc := source.Loc{File: lx.file.ID, Off: uint32(quoteAt)}
	insertAt := tok.Span.EndLoc()
	diag.ReportError(lx.opts.Reporter, code, tok.Span, msg).
		WithNote(quoteLoc.To(quoteLoc.Next(1)), "literal starts here").
		WithFix("insert closing quote", diag.FixEdit{Span: insertAt.To(insertAt), NewText: string(quote)}).
		Emit()
	return tok
}
