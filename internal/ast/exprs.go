package ast

import (
	"fmt"

	"cci/internal/source"
	"cci/internal/types"

	"fortio.org/safecast"
)

// Exprs is the allocation authority for the expression nodes of one
// translation unit. Every node, payload and string byte lives here and is
// released together by Release. Not safe for concurrent use; see SyncExprs.
type Exprs struct {
	nodes      *Arena[Expr]
	ints       *Arena[IntegerLiteralData]
	chars      *Arena[CharacterConstantData]
	strs       *Arena[StringLiteralData]
	parens     *Arena[ParenData]
	subscripts *Arena[ArraySubscriptData]
	casts      *Arena[CastData]

	bytes   []byte       // содержимое строковых литералов
	locs    []source.Loc // позиции фрагментов строковых литералов
	adopted []bool       // adopted[id-1]: узел уже чей-то ребёнок

	types    types.Query
	released bool
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint as the initial capacity.
// If capHint is 0, a default capacity of 1<<8 is used. q answers the type
// questions factories ask (is this a pointer?); it must not be nil.
func NewExprs(q types.Query, capHint uint) *Exprs {
	if q == nil {
		panic(contractf("NewExprs", "nil type query"))
	}
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/4 + 1
	return &Exprs{
		nodes:      NewArena[Expr](capHint),
		ints:       NewArena[IntegerLiteralData](small),
		chars:      NewArena[CharacterConstantData](small),
		strs:       NewArena[StringLiteralData](small),
		parens:     NewArena[ParenData](small),
		subscripts: NewArena[ArraySubscriptData](small),
		casts:      NewArena[CastData](small),
		adopted:    make([]bool, 0, capHint),
		types:      q,
	}
}

func (e *Exprs) new(kind ExprKind, vk ValueKind, ty types.QualType, span source.Span, payload PayloadID) ExprID {
	id := ExprID(e.nodes.Allocate(Expr{
		Kind:      kind,
		ValueKind: vk,
		Type:      ty,
		Span:      span,
		payload:   payload,
	}))
	e.adopted = append(e.adopted, false)
	return id
}

// Len returns the number of nodes allocated so far.
func (e *Exprs) Len() uint32 {
	return e.nodes.Len()
}

// Payloads returns how many payload records of the given kind are stored.
// All cast variants share one arena.
func (e *Exprs) Payloads(kind ExprKind) uint32 {
	switch {
	case kind == ExprIntegerLiteral:
		return e.ints.Len()
	case kind == ExprCharacterConstant:
		return e.chars.Len()
	case kind == ExprStringLiteral:
		return e.strs.Len()
	case kind == ExprParen:
		return e.parens.Len()
	case kind == ExprArraySubscript:
		return e.subscripts.Len()
	case kind.IsCast():
		return e.casts.Len()
	}
	return 0
}

// Get returns the header of the expression with the given ID.
func (e *Exprs) Get(id ExprID) (Expr, bool) {
	x := e.nodes.Get(uint32(id))
	if x == nil {
		return Expr{}, false
	}
	return *x, true
}

// MustGet panics with ErrContract when id does not name a node of this store.
func (e *Exprs) MustGet(id ExprID) Expr {
	x, ok := e.Get(id)
	if !ok {
		panic(contractf("MustGet", "expression %d out of range", id))
	}
	return x
}

// Adopted reports whether id already has a parent.
func (e *Exprs) Adopted(id ExprID) bool {
	return id.IsValid() && int(id) <= len(e.adopted) && e.adopted[id-1]
}

// ===== Проверки контракта (до любой аллокации) =====

func (e *Exprs) checkLive(op string) {
	if e.released {
		panic(contractf(op, "use of released expression store"))
	}
}

func (e *Exprs) checkType(op string, ty types.QualType) {
	if ty.IsNull() || !e.types.Valid(ty.ID) {
		panic(contractf(op, "null or unknown type %d", ty.ID))
	}
}

func (e *Exprs) checkSpan(op string, sp source.Span) {
	if sp.Empty() {
		panic(contractf(op, "empty span %s", sp))
	}
}

// checkChild validates that child can be adopted and returns its header.
func (e *Exprs) checkChild(op, role string, child ExprID) Expr {
	x, ok := e.Get(child)
	if !ok {
		panic(contractf(op, "%s %d is not a node of this store", role, child))
	}
	if e.adopted[child-1] {
		panic(contractf(op, "%s %d already has a parent", role, child))
	}
	return x
}

func (e *Exprs) adopt(children ...ExprID) {
	for _, c := range children {
		e.adopted[c-1] = true
	}
}

// ===== Фабрики =====

// NewIntegerLiteral stores value as given; integer constants are rvalues.
func (e *Exprs) NewIntegerLiteral(value uint64, ty types.QualType, span source.Span) ExprID {
	const op = "NewIntegerLiteral"
	e.checkLive(op)
	e.checkType(op, ty)
	e.checkSpan(op, span)
	payload := e.ints.Allocate(IntegerLiteralData{Value: value})
	return e.new(ExprIntegerLiteral, RValue, ty, span, PayloadID(payload))
}

// IntegerLiteral returns the integer literal data for the given expression ID.
func (e *Exprs) IntegerLiteral(id ExprID) (IntegerLiteralData, bool) {
	x, ok := e.Get(id)
	if !ok || x.Kind != ExprIntegerLiteral {
		return IntegerLiteralData{}, false
	}
	return *e.ints.Get(uint32(x.payload)), true
}

// NewCharacterConstant creates a character constant (an rvalue).
func (e *Exprs) NewCharacterConstant(value uint32, kind CharKind, ty types.QualType, span source.Span) ExprID {
	const op = "NewCharacterConstant"
	e.checkLive(op)
	e.checkType(op, ty)
	e.checkSpan(op, span)
	payload := e.chars.Allocate(CharacterConstantData{Value: value, Kind: kind})
	return e.new(ExprCharacterConstant, RValue, ty, span, PayloadID(payload))
}

// CharacterConstant returns the character constant data for the given expression ID.
func (e *Exprs) CharacterConstant(id ExprID) (CharacterConstantData, bool) {
	x, ok := e.Get(id)
	if !ok || x.Kind != ExprCharacterConstant {
		return CharacterConstantData{}, false
	}
	return *e.chars.Get(uint32(x.payload)), true
}

// NewStringLiteral copies content and fragment locations into the store.
// locs holds the position of every adjacent fragment ("a" "b"); the node spans
// from locs[0] through the closing quote of the last one. String literals are lvalues.
func (e *Exprs) NewStringLiteral(ty types.QualType, content []byte, kind StringKind, charWidth uint8, locs []source.Loc, rquote source.Loc) ExprID {
	const op = "NewStringLiteral"
	e.checkLive(op)
	e.checkType(op, ty)
	if len(locs) == 0 {
		panic(contractf(op, "no fragment locations"))
	}
	switch charWidth {
	case 1, 2, 4:
	default:
		panic(contractf(op, "char width %d", charWidth))
	}
	if len(content)%int(charWidth) != 0 {
		panic(contractf(op, "%d bytes is not a multiple of char width %d", len(content), charWidth))
	}
	first := locs[0]
	if rquote.File != first.File || rquote.Off < first.Off {
		panic(contractf(op, "closing quote %s before first fragment %s", rquote, first))
	}

	poolLen(len(e.bytes) + len(content))
	poolLen(len(e.locs) + len(locs))
	data := StringLiteralData{
		Kind:      kind,
		CharWidth: charWidth,
		RQuote:    rquote,
		bytes:     poolRange{Start: poolLen(len(e.bytes)), Len: poolLen(len(content))},
		locs:      poolRange{Start: poolLen(len(e.locs)), Len: poolLen(len(locs))},
	}
	e.bytes = append(e.bytes, content...)
	e.locs = append(e.locs, locs...)
	payload := e.strs.Allocate(data)
	return e.new(ExprStringLiteral, LValue, ty, first.Through(rquote), PayloadID(payload))
}

// StringLiteral returns a view of the string literal for the given expression ID.
func (e *Exprs) StringLiteral(id ExprID) (StringLiteralView, bool) {
	x, ok := e.Get(id)
	if !ok || x.Kind != ExprStringLiteral {
		return StringLiteralView{}, false
	}
	d := e.strs.Get(uint32(x.payload))
	b, l := d.bytes, d.locs
	return StringLiteralView{
		Kind:      d.Kind,
		CharWidth: d.CharWidth,
		Bytes:     e.bytes[b.Start : b.Start+b.Len : b.Start+b.Len],
		Locs:      e.locs[l.Start : l.Start+l.Len : l.Start+l.Len],
		RQuote:    d.RQuote,
	}, true
}

// NewParen wraps inner; value category and type are inherited from it.
func (e *Exprs) NewParen(inner ExprID, lparen, rparen source.Loc) ExprID {
	const op = "NewParen"
	e.checkLive(op)
	in := e.checkChild(op, "inner", inner)
	if rparen.File != lparen.File || rparen.Off < lparen.Off {
		panic(contractf(op, "')' at %s precedes '(' at %s", rparen, lparen))
	}
	e.adopt(inner)
	payload := e.parens.Allocate(ParenData{Inner: inner, LParen: lparen, RParen: rparen})
	return e.new(ExprParen, in.ValueKind, in.Type, lparen.Through(rparen), PayloadID(payload))
}

// Paren returns the paren data for the given expression ID.
func (e *Exprs) Paren(id ExprID) (ParenData, bool) {
	x, ok := e.Get(id)
	if !ok || x.Kind != ExprParen {
		return ParenData{}, false
	}
	return *e.parens.Get(uint32(x.payload)), true
}

// NewArraySubscript builds base[index]. base must already have pointer type
// (arrays reach here through an ArrayToPointerDecay cast) and index must not.
// Violations panic before anything is allocated.
func (e *Exprs) NewArraySubscript(base, index ExprID, vk ValueKind, ty types.QualType, lbracket, rbracket source.Loc) ExprID {
	const op = "NewArraySubscript"
	e.checkLive(op)
	e.checkType(op, ty)
	if base == index {
		panic(contractf(op, "base and index are the same node %d", base))
	}
	b := e.checkChild(op, "base", base)
	i := e.checkChild(op, "index", index)
	if !e.types.IsPointer(b.Type.ID) {
		panic(contractf(op, "base must have pointer type, got type %d", b.Type.ID))
	}
	if e.types.IsPointer(i.Type.ID) {
		panic(contractf(op, "index must not have pointer type"))
	}
	start := b.Span.StartLoc()
	if rbracket.File != start.File || rbracket.Off < start.Off {
		panic(contractf(op, "']' at %s precedes base at %s", rbracket, start))
	}
	e.adopt(base, index)
	payload := e.subscripts.Allocate(ArraySubscriptData{Base: base, Index: index, LBracket: lbracket, RBracket: rbracket})
	return e.new(ExprArraySubscript, vk, ty, start.Through(rbracket), PayloadID(payload))
}

// ArraySubscript returns the subscript data for the given expression ID.
func (e *Exprs) ArraySubscript(id ExprID) (ArraySubscriptData, bool) {
	x, ok := e.Get(id)
	if !ok || x.Kind != ExprArraySubscript {
		return ArraySubscriptData{}, false
	}
	return *e.subscripts.Get(uint32(x.payload)), true
}

// NewImplicitCast wraps operand; the cast has no text of its own, so its
// span is the operand's span.
func (e *Exprs) NewImplicitCast(vk ValueKind, ty types.QualType, kind CastKind, operand ExprID) ExprID {
	const op = "NewImplicitCast"
	e.checkLive(op)
	e.checkType(op, ty)
	o := e.checkChild(op, "operand", operand)
	e.adopt(operand)
	payload := e.casts.Allocate(CastData{Kind: kind, Operand: operand})
	return e.new(ExprImplicitCast, vk, ty, o.Span, PayloadID(payload))
}

// Cast returns the cast data of any cast variant.
func (e *Exprs) Cast(id ExprID) (CastData, bool) {
	x, ok := e.Get(id)
	if !ok || !x.Kind.IsCast() {
		return CastData{}, false
	}
	return *e.casts.Get(uint32(x.payload)), true
}

// ImplicitCast returns the cast data only for implicit casts.
func (e *Exprs) ImplicitCast(id ExprID) (CastData, bool) {
	x, ok := e.Get(id)
	if !ok || x.Kind != ExprImplicitCast {
		return CastData{}, false
	}
	return *e.casts.Get(uint32(x.payload)), true
}

// Release drops every node, payload and pool at once. Handles issued before
// Release must not be used afterwards; factories panic with ErrContract.
func (e *Exprs) Release() {
	e.nodes.Reset()
	e.ints.Reset()
	e.chars.Reset()
	e.strs.Reset()
	e.parens.Reset()
	e.subscripts.Reset()
	e.casts.Reset()
	e.bytes = nil
	e.locs = nil
	e.adopted = nil
	e.released = true
}

// Released reports whether Release has been called.
func (e *Exprs) Released() bool { return e.released }

func poolLen(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("expression pool overflow: %w", err))
	}
	return v
}
