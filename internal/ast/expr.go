package ast

import (
	"fmt"

	"cci/internal/source"
	"cci/internal/types"
)

type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprIntegerLiteral
	ExprCharacterConstant
	ExprStringLiteral
	ExprParen
	ExprArraySubscript
	ExprImplicitCast
)

func (k ExprKind) String() string {
	switch k {
	case ExprIntegerLiteral:
		return "IntegerLiteral"
	case ExprCharacterConstant:
		return "CharacterConstant"
	case ExprStringLiteral:
		return "StringLiteral"
	case ExprParen:
		return "ParenExpr"
	case ExprArraySubscript:
		return "ArraySubscriptExpr"
	case ExprImplicitCast:
		return "ImplicitCastExpr"
	default:
		return fmt.Sprintf("ExprKind(%d)", k)
	}
}

// IsCast reports whether k belongs to the cast family.
func (k ExprKind) IsCast() bool {
	return k == ExprImplicitCast
}

// ValueKind is the C value category of an expression.
type ValueKind uint8

const (
	LValue ValueKind = iota
	RValue
)

func (v ValueKind) String() string {
	if v == LValue {
		return "lvalue"
	}
	return "rvalue"
}

// Expr is the header shared by every node. The variant payload is reachable
// only through the checked accessors on Exprs, so a header can never be paired
// with the payload of another kind.
type Expr struct {
	Kind      ExprKind
	ValueKind ValueKind
	Type      types.QualType
	Span      source.Span
	payload   PayloadID
}

func (x Expr) IsIntegerLiteral() bool    { return x.Kind == ExprIntegerLiteral }
func (x Expr) IsCharacterConstant() bool { return x.Kind == ExprCharacterConstant }
func (x Expr) IsStringLiteral() bool     { return x.Kind == ExprStringLiteral }
func (x Expr) IsParen() bool             { return x.Kind == ExprParen }
func (x Expr) IsArraySubscript() bool    { return x.Kind == ExprArraySubscript }
func (x Expr) IsImplicitCast() bool      { return x.Kind == ExprImplicitCast }
func (x Expr) IsCast() bool              { return x.Kind.IsCast() }
