package ast

import (
	"fmt"

	"cci/internal/source"
)

// CharKind is the encoding of a character constant ('a', u'a', U'a', L'a').
type CharKind uint8

const (
	CharAscii CharKind = iota
	CharUTF16
	CharUTF32
	CharWide
)

func (k CharKind) String() string {
	switch k {
	case CharAscii:
		return "ascii"
	case CharUTF16:
		return "utf16"
	case CharUTF32:
		return "utf32"
	case CharWide:
		return "wide"
	default:
		return fmt.Sprintf("CharKind(%d)", k)
	}
}

// StringKind is the encoding of a string literal ("s", u8"s", u"s", U"s", L"s").
type StringKind uint8

const (
	StringAscii StringKind = iota
	StringUTF8
	StringUTF16
	StringUTF32
	StringWide
)

func (k StringKind) String() string {
	switch k {
	case StringAscii:
		return "ascii"
	case StringUTF8:
		return "utf8"
	case StringUTF16:
		return "utf16"
	case StringUTF32:
		return "utf32"
	case StringWide:
		return "wide"
	default:
		return fmt.Sprintf("StringKind(%d)", k)
	}
}

// CharWidth returns the size in bytes of one code unit of kind k
// (wchar_t is 4 bytes, as on LP64 Unix).
func (k StringKind) CharWidth() uint8 {
	switch k {
	case StringUTF16:
		return 2
	case StringUTF32, StringWide:
		return 4
	default:
		return 1
	}
}

// CastKind tags what an implicit conversion does.
type CastKind uint8

const (
	CastLValueToRValue CastKind = iota
	CastArrayToPointerDecay
	CastAtomicToNonAtomic
)

func (k CastKind) String() string {
	switch k {
	case CastLValueToRValue:
		return "LValueToRValue"
	case CastArrayToPointerDecay:
		return "ArrayToPointerDecay"
	case CastAtomicToNonAtomic:
		return "AtomicToNonAtomic"
	default:
		return fmt.Sprintf("CastKind(%d)", k)
	}
}

// Payloads hold only scalars, handles and pool ranges: releasing an Exprs
// never has to visit individual nodes.

// poolRange addresses [Start, Start+Len) inside one of the Exprs pools.
type poolRange struct {
	Start uint32
	Len   uint32
}

// IntegerLiteralData holds the magnitude of an integer constant.
type IntegerLiteralData struct {
	Value uint64
}

// CharacterConstantData holds a decoded character constant.
type CharacterConstantData struct {
	Value uint32
	Kind  CharKind
}

type StringLiteralData struct {
	Kind      StringKind
	CharWidth uint8
	RQuote    source.Loc
	bytes     poolRange
	locs      poolRange
}

type ParenData struct {
	Inner  ExprID
	LParen source.Loc
	RParen source.Loc
}

type ArraySubscriptData struct {
	Base     ExprID
	Index    ExprID
	LBracket source.Loc
	RBracket source.Loc
}

// CastData is shared by every cast variant; Expr.Kind tells which one.
type CastData struct {
	Kind    CastKind
	Operand ExprID
}

// StringLiteralView is a read-only window onto a string literal. Bytes and Locs
// borrow the Exprs pools and are valid until Release.
type StringLiteralView struct {
	Kind      StringKind
	CharWidth uint8
	Bytes     []byte
	Locs      []source.Loc
	RQuote    source.Loc
}

// ByteLength is the size of the encoded content.
func (v StringLiteralView) ByteLength() uint32 {
	return uint32(len(v.Bytes)) // #nosec G115 -- pool ranges are uint32
}

// Length is the number of code units.
func (v StringLiteralView) Length() uint32 {
	return v.ByteLength() / uint32(v.CharWidth)
}

// UTF8 returns the content as text; only single-byte encodings have one.
func (v StringLiteralView) UTF8() (string, bool) {
	if v.CharWidth != 1 {
		return "", false
	}
	return string(v.Bytes), true
}
