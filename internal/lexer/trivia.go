package lexer

import (
	"cci/internal/diag"
	"cci/internal/token"
)

// skipTrivia пропускает пробелы (' ', \t, \n, \r, \v, \f) и комментарии:
// - //... до \n (сам \n остаётся пробелом)
// - /* ... */ без вложенности, как в C
//
// Незакрытый блочный комментарий репортится и превращается в Invalid-токен до EOF.
func (lx *Lexer) skipTrivia() (token.Token, bool) {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if isSpace(b) {
			lx.cursor.Bump()
			continue
		}
		if b != '/' {
			break
		}
		_, b1, ok := lx.cursor.Peek2()
		if !ok {
			break
		}
		switch b1 {
		case '/':
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		case '*':
			start := lx.cursor.Mark()
			lx.cursor.Advance(2)
			if !lx.skipBlockComment() {
				sp := lx.cursor.SpanFrom(start)
				diag.ReportError(lx.opts.Reporter, diag.LexUnterminatedBlockComment, sp, "unterminated block comment").
					WithFix("close the comment", diag.FixEdit{Span: lx.emptySpan(), NewText: "*/"}).
					Emit()
				return lx.emit(token.Invalid, start), true
			}
		default:
			return token.Token{}, false
		}
	}
	return token.Token{}, false
}

// skipBlockComment съедает тело после "/*" вместе с "*/". false - дошли до EOF.
func (lx *Lexer) skipBlockComment() bool {
	for !lx.cursor.EOF() {
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '*' && b1 == '/' {
			lx.cursor.Advance(2)
			return true
		}
		lx.cursor.Bump()
	}
	return false
}
