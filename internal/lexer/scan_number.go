package lexer

import (
	"fmt"

	"cci/internal/diag"
	"cci/internal/token"
)

// Константа - прогон [0-9A-Za-z_.], классифицируется целиком:
//   - целое: [0-9]+ или 0[xX][0-9a-fA-F]+
//   - плавающее: цифры и ровно одна '.', опционально последний символ f/F
//
// Экспоненты и суффиксы u/l не поддерживаются: "1e5", "10u" → LexBadNumber.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && isNumberRunByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Invalid, start)
	if lx.tooLong(&tok) {
		return tok
	}
	kind, ok := classifyNumber(tok.Lexeme)
	if !ok {
		lx.errLex(diag.LexBadNumber, tok.Span, fmt.Sprintf("malformed numeric constant %q", tok.Lexeme))
		return tok
	}
	tok.Kind = kind
	return tok
}

func classifyNumber(b []byte) (token.Kind, bool) {
	if isIntegerConst(b) {
		return token.IntConst, true
	}
	if isFloatConst(b) {
		return token.FloatConst, true
	}
	return token.Invalid, false
}

func isIntegerConst(b []byte) bool {
	digit := isDec
	if len(b) > 2 && b[0] == '0' && (b[1] == 'x' || b[1] == 'X') {
		b = b[2:]
		digit = isHex
	}
	if len(b) == 0 {
		return false
	}
	for _, c := range b {
		if !digit(c) {
			return false
		}
	}
	return true
}

func isFloatConst(b []byte) bool {
	if n := len(b); n > 0 && (b[n-1] == 'f' || b[n-1] == 'F') {
		b = b[:n-1]
	}
	dots, digits := 0, 0
	for _, c := range b {
		switch {
		case c == '.':
			dots++
		case isDec(c):
			digits++
		default:
			return false
		}
	}
	return dots == 1 && digits > 0
}
