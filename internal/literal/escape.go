package literal

import (
	"unicode/utf8"

	"cci/internal/diag"
)

// unit is one element of a literal body: a character or an escape sequence.
type unit struct {
	value uint32
	raw   bool // кодовая единица (\x, \ooo или байт как есть), а не кодовая точка
	off   int
}

// scanBody walks the body of a quoted literal. base is the offset of body
// inside the lexeme, used for error positions. With runes set, plain text is
// decoded as UTF-8 code points; otherwise every byte is a raw unit.
func scanBody(body []byte, base int, runes bool, fn func(u unit) error) error {
	for i := 0; i < len(body); {
		if body[i] == '\\' {
			u, next, err := decodeEscape(body, i, base)
			if err != nil {
				return err
			}
			if err := fn(u); err != nil {
				return err
			}
			i = next
			continue
		}
		if !runes {
			if err := fn(unit{value: uint32(body[i]), raw: true, off: base + i}); err != nil {
				return err
			}
			i++
			continue
		}
		r, size := utf8.DecodeRune(body[i:])
		if r == utf8.RuneError && size == 1 {
			return newError(diag.LitMalformed, base+i, ErrSyntax, "invalid UTF-8 byte %#x", body[i])
		}
		if err := fn(unit{value: uint32(r), off: base + i}); err != nil { // #nosec G115 -- r is a valid rune
			return err
		}
		i += size
	}
	return nil
}

var simpleEscapes = [256]byte{
	'\'': '\'', '"': '"', '?': '?', '\\': '\\',
	'a': '\a', 'b': '\b', 'f': '\f', 'n': '\n', 'r': '\r', 't': '\t', 'v': '\v',
}

// decodeEscape decodes the sequence starting at s[i] == '\\' and returns the
// index just past it.
func decodeEscape(s []byte, i, base int) (unit, int, error) {
	start := i
	i++
	if i >= len(s) {
		return unit{}, i, newError(diag.LitBadEscape, base+start, ErrSyntax, "incomplete escape sequence")
	}
	c := s[i]
	switch {
	case simpleEscapes[c] != 0:
		return unit{value: uint32(simpleEscapes[c]), off: base + start}, i + 1, nil

	case c >= '0' && c <= '7':
		var v uint32
		n := 0
		for n < 3 && i < len(s) && s[i] >= '0' && s[i] <= '7' {
			v = v<<3 | uint32(s[i]-'0')
			i++
			n++
		}
		return unit{value: v, raw: true, off: base + start}, i, nil

	case c == 'x':
		i++
		var v uint64
		n := 0
		for i < len(s) && digitValue(s[i]) < 16 {
			v = v<<4 | uint64(digitValue(s[i])) // #nosec G115 -- digitValue < 16
			if v > 0xFFFFFFFF {
				return unit{}, i, newError(diag.LitCharOverflow, base+start, ErrOverflow, "hex escape sequence out of range")
			}
			i++
			n++
		}
		if n == 0 {
			return unit{}, i, newError(diag.LitBadEscape, base+start, ErrSyntax, `\x used with no following hex digits`)
		}
		return unit{value: uint32(v), raw: true, off: base + start}, i, nil // #nosec G115 -- checked above

	case c == 'u' || c == 'U':
		want := 4
		if c == 'U' {
			want = 8
		}
		i++
		var v uint32
		for n := 0; n < want; n++ {
			if i >= len(s) || digitValue(s[i]) >= 16 {
				return unit{}, i, newError(diag.LitBadEscape, base+start, ErrSyntax, `\%c needs %d hex digits`, c, want)
			}
			v = v<<4 | uint32(digitValue(s[i])) // #nosec G115 -- digitValue < 16
			i++
		}
		if v > utf8.MaxRune || (v >= 0xD800 && v <= 0xDFFF) {
			return unit{}, i, newError(diag.LitBadEscape, base+start, ErrSyntax, "%#x is not a valid universal character", v)
		}
		return unit{value: v, off: base + start}, i, nil

	default:
		// неизвестная последовательность: лексер уже предупредил, значение - сам символ
		r, size := utf8.DecodeRune(s[i:])
		return unit{value: uint32(r), off: base + start}, i + size, nil // #nosec G115 -- rune is non-negative
	}
}

// splitQuoted separates the encoding prefix and the body of a quoted lexeme.
func splitQuoted(lexeme []byte, quote byte) (prefix string, body []byte, base int, err error) {
	p := 0
	for p < len(lexeme) && p < 2 && lexeme[p] != quote {
		p++
	}
	switch string(lexeme[:p]) {
	case "", "L", "u", "U", "u8":
	default:
		return "", nil, 0, newError(diag.LitMalformed, 0, ErrSyntax, "unknown encoding prefix %q", lexeme[:p])
	}
	if len(lexeme) < p+2 || lexeme[p] != quote || lexeme[len(lexeme)-1] != quote {
		return "", nil, 0, newError(diag.LitMalformed, 0, ErrSyntax, "literal is not enclosed in %c", quote)
	}
	return string(lexeme[:p]), lexeme[p+1 : len(lexeme)-1], p + 1, nil
}
