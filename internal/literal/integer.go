package literal

import (
	"errors"
	"strconv"

	"cci/internal/diag"
)

// ParseInteger evaluates an integer constant lexeme: decimal, octal with a
// leading 0, or hexadecimal with 0x/0X. Values above 2^64-1 are ErrOverflow.
func ParseInteger(lexeme []byte) (uint64, error) {
	if len(lexeme) == 0 {
		return 0, newError(diag.LitMalformed, 0, ErrSyntax, "empty integer constant")
	}
	digits, base, start := lexeme, 10, 0
	switch {
	case len(lexeme) >= 2 && lexeme[0] == '0' && (lexeme[1] == 'x' || lexeme[1] == 'X'):
		digits, base, start = lexeme[2:], 16, 2
		if len(digits) == 0 {
			return 0, newError(diag.LitBadDigit, 2, ErrSyntax, "hexadecimal constant has no digits")
		}
	case lexeme[0] == '0':
		base = 8
	}
	for i, c := range digits {
		if digitValue(c) >= base {
			return 0, newError(diag.LitBadDigit, start+i, ErrSyntax, "invalid digit %q in %s constant", c, baseName(base))
		}
	}
	v, err := strconv.ParseUint(string(digits), base, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, newError(diag.LitIntOverflow, 0, ErrOverflow, "integer constant %s is too large", lexeme)
		}
		return 0, newError(diag.LitMalformed, 0, ErrSyntax, "%v", err)
	}
	return v, nil
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return 99
	}
}

func baseName(base int) string {
	switch base {
	case 8:
		return "octal"
	case 16:
		return "hexadecimal"
	default:
		return "decimal"
	}
}
