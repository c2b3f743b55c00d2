package types

import "strings"

// Quals is the set of C type qualifiers attached to a use of a type.
type Quals uint8

const (
	QualConst Quals = 1 << iota
	QualVolatile
	QualRestrict
	QualAtomic
)

func (q Quals) Has(other Quals) bool { return q&other == other }

func (q Quals) String() string {
	if q == 0 {
		return ""
	}
	parts := make([]string, 0, 4)
	if q.Has(QualConst) {
		parts = append(parts, "const")
	}
	if q.Has(QualVolatile) {
		parts = append(parts, "volatile")
	}
	if q.Has(QualRestrict) {
		parts = append(parts, "restrict")
	}
	if q.Has(QualAtomic) {
		parts = append(parts, "_Atomic")
	}
	return strings.Join(parts, " ")
}

// QualType is a TypeID plus the qualifiers of this particular use.
// Two QualTypes with the same ID but different Quals name the same
// unqualified type.
type QualType struct {
	ID    TypeID
	Quals Quals
}

// Unqualified wraps id with no qualifiers.
func Unqualified(id TypeID) QualType { return QualType{ID: id} }

// IsNull reports whether no type is attached.
func (q QualType) IsNull() bool { return q.ID == NoTypeID }

// With returns q with extra qualifiers added.
func (q QualType) With(extra Quals) QualType {
	q.Quals |= extra
	return q
}

// Without returns q with the given qualifiers removed.
func (q QualType) Without(drop Quals) QualType {
	q.Quals &^= drop
	return q
}
