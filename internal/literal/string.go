package literal

import (
	"encoding/binary"
	"unicode/utf8"

	"cci/internal/ast"
	"cci/internal/diag"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// Value is an evaluated string literal: encoded code units in little-endian
// order with the terminating NUL included.
type Value struct {
	Bytes     []byte
	Kind      ast.StringKind
	CharWidth uint8
}

// Length returns the number of code units, NUL included.
func (v Value) Length() int {
	if v.CharWidth == 0 {
		return 0
	}
	return len(v.Bytes) / int(v.CharWidth)
}

func kindOfPrefix(prefix string) ast.StringKind {
	switch prefix {
	case "u8":
		return ast.StringUTF8
	case "u":
		return ast.StringUTF16
	case "U":
		return ast.StringUTF32
	case "L":
		return ast.StringWide
	default:
		return ast.StringAscii
	}
}

func encoderFor(kind ast.StringKind) *encoding.Encoder {
	switch kind {
	case ast.StringUTF16:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	case ast.StringUTF32, ast.StringWide:
		return utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM).NewEncoder()
	default:
		return nil
	}
}

// DecodeString evaluates one or more adjacent string literal lexemes as a
// single literal ("a" "b" is "ab"). Unprefixed fragments take the encoding
// of the prefixed ones; two different prefixes are ErrMixedEncodings.
func DecodeString(lexemes ...[]byte) (Value, error) {
	if len(lexemes) == 0 {
		return Value{}, newError(diag.LitMalformed, 0, ErrSyntax, "no string literal fragments")
	}
	type fragment struct {
		body []byte
		base int
	}
	frags := make([]fragment, 0, len(lexemes))
	kind, kindFrom := ast.StringAscii, -1
	for i, lx := range lexemes {
		prefix, body, base, err := splitQuoted(lx, '"')
		if err != nil {
			return Value{}, err
		}
		frags = append(frags, fragment{body: body, base: base})
		k := kindOfPrefix(prefix)
		if k == ast.StringAscii {
			continue
		}
		if kindFrom >= 0 && k != kind {
			return Value{}, newError(diag.LitMixedEncoding, 0, ErrMixedEncodings,
				"fragment %d is %s but fragment %d is %s", i, k, kindFrom, kind)
		}
		kind, kindFrom = k, i
	}

	b := stringBuilder{kind: kind, width: kind.CharWidth(), enc: encoderFor(kind)}
	for _, f := range frags {
		if err := scanBody(f.body, f.base, b.width > 1, b.add); err != nil {
			return Value{}, err
		}
	}
	if err := b.finish(); err != nil {
		return Value{}, err
	}
	return Value{Bytes: b.out, Kind: kind, CharWidth: b.width}, nil
}

type stringBuilder struct {
	kind    ast.StringKind
	width   uint8
	enc     *encoding.Encoder
	pending []byte // текст в UTF-8, ещё не прогнанный через кодировщик
	out     []byte
}

func (b *stringBuilder) add(u unit) error {
	if b.width == 1 {
		if u.raw || u.value < utf8.RuneSelf {
			if u.value > 0xFF {
				return newError(diag.LitCharOverflow, u.off, ErrOverflow, "escape sequence out of range")
			}
			b.out = append(b.out, byte(u.value))
			return nil
		}
		b.out = utf8.AppendRune(b.out, rune(u.value)) // #nosec G115 -- validated code point
		return nil
	}
	if !u.raw {
		b.pending = utf8.AppendRune(b.pending, rune(u.value)) // #nosec G115 -- validated code point
		return nil
	}
	if b.width == 2 && u.value > 0xFFFF {
		return newError(diag.LitCharOverflow, u.off, ErrOverflow, "escape sequence out of range for %s", b.kind)
	}
	if err := b.flush(); err != nil {
		return err
	}
	b.appendUnit(u.value)
	return nil
}

func (b *stringBuilder) appendUnit(v uint32) {
	if b.width == 2 {
		b.out = binary.LittleEndian.AppendUint16(b.out, uint16(v)) // #nosec G115 -- checked by caller
		return
	}
	b.out = binary.LittleEndian.AppendUint32(b.out, v)
}

func (b *stringBuilder) flush() error {
	if len(b.pending) == 0 {
		return nil
	}
	encoded, err := b.enc.Bytes(b.pending)
	if err != nil {
		return newError(diag.LitMalformed, 0, ErrSyntax, "encode %s: %v", b.kind, err)
	}
	b.out = append(b.out, encoded...)
	b.pending = b.pending[:0]
	return nil
}

func (b *stringBuilder) finish() error {
	if b.width == 1 {
		b.out = append(b.out, 0)
		return nil
	}
	if err := b.flush(); err != nil {
		return err
	}
	b.appendUnit(0)
	return nil
}
