package literal

import (
	"unicode/utf8"

	"cci/internal/ast"
	"cci/internal/diag"
)

// DecodeChar evaluates a character constant lexeme such as 'a', '\n', L'ж' or U'\U0001F600'.
//
// A plain constant with several characters ('ab') is folded the way GCC does
// it, each byte shifted into the low end of the value, up to four bytes.
// Prefixed constants must hold exactly one character that fits the encoding.
func DecodeChar(lexeme []byte) (uint32, ast.CharKind, error) {
	prefix, body, base, err := splitQuoted(lexeme, '\'')
	if err != nil {
		return 0, ast.CharAscii, err
	}
	if len(body) == 0 {
		return 0, ast.CharAscii, newError(diag.LitMalformed, base, ErrSyntax, "empty character constant")
	}
	switch prefix {
	case "", "u8":
		return decodePlainChar(body, base, prefix == "u8")
	case "u":
		v, err := decodeSingleChar(body, base, 0xFFFF)
		return v, ast.CharUTF16, err
	case "U":
		v, err := decodeSingleChar(body, base, 0xFFFFFFFF)
		return v, ast.CharUTF32, err
	default: // "L"
		v, err := decodeSingleChar(body, base, 0xFFFFFFFF)
		return v, ast.CharWide, err
	}
}

func decodePlainChar(body []byte, base int, single bool) (uint32, ast.CharKind, error) {
	var v uint32
	n := 0
	add := func(b uint32, off int) error {
		n++
		if n > 4 || (single && n > 1) {
			return newError(diag.LitCharOverflow, off, ErrOverflow, "character constant too long for its type")
		}
		v = v<<8 | b
		return nil
	}
	err := scanBody(body, base, false, func(u unit) error {
		if u.raw || u.value < utf8.RuneSelf {
			if u.value > 0xFF {
				return newError(diag.LitCharOverflow, u.off, ErrOverflow, "escape sequence out of range")
			}
			return add(u.value, u.off)
		}
		// \u в обычном символе: байты UTF-8
		for _, b := range utf8.AppendRune(nil, rune(u.value)) { // #nosec G115 -- validated code point
			if err := add(uint32(b), u.off); err != nil {
				return err
			}
		}
		return nil
	})
	return v, ast.CharAscii, err
}

func decodeSingleChar(body []byte, base int, limit uint32) (uint32, error) {
	var v uint32
	n := 0
	err := scanBody(body, base, true, func(u unit) error {
		n++
		if n > 1 {
			return newError(diag.LitCharOverflow, u.off, ErrOverflow, "character constant must contain a single character")
		}
		if u.value > limit {
			return newError(diag.LitCharOverflow, u.off, ErrOverflow, "character %#x does not fit in one code unit", u.value)
		}
		v = u.value
		return nil
	})
	return v, err
}
