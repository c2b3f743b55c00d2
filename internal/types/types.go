package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindVoid
	KindChar
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindPointer
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindVoid:
		return "void"
	case KindChar:
		return "char"
	case KindShort:
		return "short"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindPointer:
		return "pointer"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsInteger reports whether k is char, short, int or long.
func (k Kind) IsInteger() bool {
	return k >= KindChar && k <= KindLong
}

// IsArithmetic reports whether values of kind k support arithmetic conversions.
func (k Kind) IsArithmetic() bool {
	return k.IsInteger() || k == KindFloat || k == KindDouble
}

// Type is a compact descriptor for any supported type.
type Type struct {
	Kind     Kind
	Elem     QualType // for pointers and arrays
	Count    uint32   // for arrays
	Unsigned bool     // for integers
}

// Descriptor helpers ---------------------------------------------------------

// MakeInteger describes an integer kind with the given signedness.
func MakeInteger(k Kind, unsigned bool) Type {
	return Type{Kind: k, Unsigned: unsigned}
}

// MakePointer describes T*, keeping the qualifiers of the pointee.
func MakePointer(elem QualType) Type {
	return Type{Kind: KindPointer, Elem: elem}
}

// MakeArray describes T[count].
func MakeArray(elem QualType, count uint32) Type {
	return Type{Kind: KindArray, Elem: elem, Count: count}
}
