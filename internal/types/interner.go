package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the base C types.
type Builtins struct {
	Invalid TypeID
	Void    TypeID
	Char    TypeID
	UChar   TypeID
	Short   TypeID
	UShort  TypeID
	Int     TypeID
	UInt    TypeID
	Long    TypeID
	ULong   TypeID
	Float   TypeID
	Double  TypeID
}

// Query is the read-only view of the type system used by AST factories.
type Query interface {
	// Valid reports whether id names an interned type.
	Valid(id TypeID) bool
	// IsPointer reports whether id is a pointer type.
	IsPointer(id TypeID) bool
}

// Interner provides stable TypeIDs by hashing structural descriptors.
type Interner struct {
	types    []Type
	index    map[typeKey]TypeID
	builtins Builtins
}

var _ Query = (*Interner)(nil)

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[typeKey]TypeID, 64),
	}
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Void = in.Intern(Type{Kind: KindVoid})
	in.builtins.Char = in.Intern(MakeInteger(KindChar, false))
	in.builtins.UChar = in.Intern(MakeInteger(KindChar, true))
	in.builtins.Short = in.Intern(MakeInteger(KindShort, false))
	in.builtins.UShort = in.Intern(MakeInteger(KindShort, true))
	in.builtins.Int = in.Intern(MakeInteger(KindInt, false))
	in.builtins.UInt = in.Intern(MakeInteger(KindInt, true))
	in.builtins.Long = in.Intern(MakeInteger(KindLong, false))
	in.builtins.ULong = in.Intern(MakeInteger(KindLong, true))
	in.builtins.Float = in.Intern(Type{Kind: KindFloat})
	in.builtins.Double = in.Intern(Type{Kind: KindDouble})
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Len returns the number of interned descriptors, the invalid sentinel included.
func (in *Interner) Len() int {
	return len(in.types)
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

// PointerTo interns elem*.
func (in *Interner) PointerTo(elem QualType) TypeID {
	return in.Intern(MakePointer(elem))
}

// ArrayOf interns elem[count].
func (in *Interner) ArrayOf(elem QualType, count uint32) TypeID {
	return in.Intern(MakeArray(elem, count))
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	key := typeKey(t)
	in.index[key] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

func (in *Interner) Valid(id TypeID) bool {
	_, ok := in.Lookup(id)
	return ok
}

func (in *Interner) IsPointer(id TypeID) bool {
	tt, ok := in.Lookup(id)
	return ok && tt.Kind == KindPointer
}

// IsArray reports whether id is an array type.
func (in *Interner) IsArray(id TypeID) bool {
	tt, ok := in.Lookup(id)
	return ok && tt.Kind == KindArray
}

// Decay returns the pointer type an array of id decays to; other types are returned as is.
func (in *Interner) Decay(id TypeID) TypeID {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindArray {
		return id
	}
	return in.PointerTo(tt.Elem)
}

// SizeOf returns the LP64 size in bytes; void and invalid ids have no size.
func (in *Interner) SizeOf(id TypeID) (uint32, bool) {
	tt, ok := in.Lookup(id)
	if !ok {
		return 0, false
	}
	switch tt.Kind {
	case KindChar:
		return 1, true
	case KindShort:
		return 2, true
	case KindInt, KindFloat:
		return 4, true
	case KindLong, KindDouble, KindPointer:
		return 8, true
	case KindArray:
		elem, ok := in.SizeOf(tt.Elem.ID)
		if !ok {
			return 0, false
		}
		total := uint64(elem) * uint64(tt.Count)
		n, err := safecast.Conv[uint32](total)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

type typeKey struct {
	Kind     Kind
	Elem     QualType
	Count    uint32
	Unsigned bool
}
