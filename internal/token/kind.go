package token

import "strconv"

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token. Its lexeme covers the skipped bytes.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntConst is a decimal or hexadecimal integer constant.
	IntConst
	// FloatConst is a decimal floating constant with an optional f/F suffix.
	FloatConst
	// CharConst is a character constant including its quotes and prefix.
	CharConst
	// StringLit is a string literal including its quotes and prefix.
	StringLit

	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwDo represents the 'do' keyword.
	KwDo // do
	// KwTypedef represents the 'typedef' keyword.
	KwTypedef // typedef
	// KwBreak represents the 'break' keyword.
	KwBreak // break
	// KwCase represents the 'case' keyword.
	KwCase // case
	// KwContinue represents the 'continue' keyword.
	KwContinue // continue
	// KwDefault represents the 'default' keyword.
	KwDefault // default
	// KwEnum represents the 'enum' keyword.
	KwEnum // enum
	// KwExtern represents the 'extern' keyword.
	KwExtern // extern
	// KwGoto represents the 'goto' keyword.
	KwGoto // goto
	// KwInline represents the 'inline' keyword.
	KwInline // inline
	// KwRegister represents the 'register' keyword.
	KwRegister // register
	// KwRestrict represents the 'restrict' keyword.
	KwRestrict // restrict
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwSizeof represents the 'sizeof' keyword.
	KwSizeof // sizeof
	// KwStatic represents the 'static' keyword.
	KwStatic // static
	// KwAuto represents the 'auto' keyword.
	KwAuto // auto
	// KwStruct represents the 'struct' keyword.
	KwStruct // struct
	// KwSwitch represents the 'switch' keyword.
	KwSwitch // switch
	// KwUnion represents the 'union' keyword.
	KwUnion // union

	// базовые типы и квалификаторы
	KwChar     // char
	KwShort    // short
	KwInt      // int
	KwLong     // long
	KwFloat    // float
	KwDouble   // double
	KwVoid     // void
	KwSigned   // signed
	KwUnsigned // unsigned
	KwVolatile // volatile
	KwConst    // const

	PlusPlus      // ++
	MinusMinus    // --
	Arrow         // ->
	Assign        // =
	Plus          // +
	Minus         // -
	Star          // *
	Slash         // /
	Percent       // %
	PlusAssign    // +=
	MinusAssign   // -=
	StarAssign    // *=
	SlashAssign   // /=
	PercentAssign // %=
	Lt            // <
	Gt            // >
	LtEq          // <=
	GtEq          // >=
	EqEq          // ==
	BangEq        // !=
	Bang          // !
	AndAnd        // &&
	OrOr          // ||
	Tilde         // ~
	Amp           // &
	Pipe          // |
	Caret         // ^
	AmpAssign     // &=
	PipeAssign    // |=
	CaretAssign   // ^=
	Shl           // <<
	Shr           // >>
	ShlAssign     // <<=
	ShrAssign     // >>=
	LParen        // (
	RParen        // )
	LBracket      // [
	RBracket      // ]
	LBrace        // {
	RBrace        // }
	Dot           // .
	Ellipsis      // ...
	Comma         // ,
	Colon         // :
	Semicolon     // ;
	Question      // ?

	kindCount
)

var kindNames = [...]string{
	Invalid:    "Invalid",
	EOF:        "EOF",
	Ident:      "Ident",
	IntConst:   "IntConst",
	FloatConst: "FloatConst",
	CharConst:  "CharConst",
	StringLit:  "StringLit",
}

// String returns the kind name; keywords and symbols render as their spelling.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	if s, ok := spellings[k]; ok {
		return s
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsKeyword reports whether k is one of the reserved words.
func (k Kind) IsKeyword() bool {
	return k >= KwIf && k <= KwConst
}

// IsSymbol reports whether k is an operator or punctuation.
func (k Kind) IsSymbol() bool {
	return k >= PlusPlus && k <= Question
}

// IsLiteral reports whether k is a numeric, character or string literal.
func (k Kind) IsLiteral() bool {
	switch k {
	case IntConst, FloatConst, CharConst, StringLit:
		return true
	default:
		return false
	}
}
