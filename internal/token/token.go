package token

import (
	"cci/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind   Kind
	Span   source.Span
	Lexeme []byte // view into source.File.Content, never a copy
}

// Text returns the lexeme as a string. It allocates; prefer Lexeme in hot paths.
func (t Token) Text() string { return string(t.Lexeme) }

// IsLiteral reports whether the token is a numeric, character or string literal.
func (t Token) IsLiteral() bool { return t.Kind.IsLiteral() }

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool { return t.Kind.IsSymbol() }

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsTypeName reports whether the token names a base type or a sign modifier.
func (t Token) IsTypeName() bool {
	switch t.Kind {
	case KwChar, KwShort, KwInt, KwLong, KwFloat, KwDouble, KwVoid, KwSigned, KwUnsigned:
		return true
	default:
		return false
	}
}
