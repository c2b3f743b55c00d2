package driver

import (
	"errors"
	"math"

	"fortio.org/safecast"

	"cci/internal/ast"
	"cci/internal/diag"
	"cci/internal/literal"
	"cci/internal/source"
	"cci/internal/token"
	"cci/internal/types"
)

// LiteralNodes are the AST nodes evaluated from the literal tokens of one file.
// Release Exprs when done.
type LiteralNodes struct {
	Exprs *ast.Exprs
	Types *types.Interner
	Roots []ast.ExprID // в порядке исходника
}

// BuildLiterals turns every integer, character and string token of res into
// an AST node, the way a parser would for primary expressions. Adjacent string
// tokens become a single StringLiteral. Decoding errors go to res.Bag and the
// offending literal is skipped. Floating constants have no node kind and are ignored.
func BuildLiterals(res *TokenizeResult) *LiteralNodes {
	in := types.NewInterner()
	out := &LiteralNodes{
		Types: in,
		Exprs: ast.NewExprs(in, uint(len(res.Tokens)/4+1)),
	}
	reporter := diag.BagReporter{Bag: res.Bag}
	b := in.Builtins()

	toks := res.Tokens
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		switch tok.Kind {
		case token.IntConst:
			v, err := literal.ParseInteger(tok.Lexeme)
			if err != nil {
				literal.Report(reporter, tok.Span, err)
				continue
			}
			ty := integerType(b, v, isDecimal(tok.Lexeme))
			out.Roots = append(out.Roots, out.Exprs.NewIntegerLiteral(v, types.Unqualified(ty), tok.Span))

		case token.CharConst:
			v, kind, err := literal.DecodeChar(tok.Lexeme)
			if err != nil {
				literal.Report(reporter, tok.Span, err)
				continue
			}
			ty := types.Unqualified(charType(b, kind))
			out.Roots = append(out.Roots, out.Exprs.NewCharacterConstant(v, kind, ty, tok.Span))

		case token.StringLit:
			j := i + 1
			for j < len(toks) && toks[j].Kind == token.StringLit {
				j++
			}
			if id, ok := buildString(out, reporter, toks[i:j]); ok {
				out.Roots = append(out.Roots, id)
			}
			i = j - 1
		}
	}
	return out
}

func buildString(out *LiteralNodes, r diag.Reporter, frags []token.Token) (ast.ExprID, bool) {
	lexemes := make([][]byte, len(frags))
	locs := make([]source.Loc, len(frags))
	for k, tok := range frags {
		lexemes[k] = tok.Lexeme
		locs[k] = tok.Span.StartLoc()
	}
	whole := frags[0].Span.Cover(frags[len(frags)-1].Span)
	v, err := literal.DecodeString(lexemes...)
	if err != nil {
		reportStringError(r, frags, whole, err)
		return ast.NoExprID, false
	}
	count, err := safecast.Conv[uint32](v.Length())
	if err != nil {
		literal.Report(r, whole, err)
		return ast.NoExprID, false
	}
	b := out.Types.Builtins()
	elem := types.Unqualified(stringElemType(b, v.Kind))
	ty := types.Unqualified(out.Types.ArrayOf(elem, count))
	last := frags[len(frags)-1].Span
	rquote := source.Loc{File: last.File, Off: last.End - 1}
	return out.Exprs.NewStringLiteral(ty, v.Bytes, v.Kind, v.CharWidth, locs, rquote), true
}

// reportStringError points at the fragment that fails on its own; an error
// that only exists in the concatenation (mixed prefixes) covers the group.
func reportStringError(r diag.Reporter, frags []token.Token, whole source.Span, err error) {
	if len(frags) > 1 {
		for _, tok := range frags {
			if _, fragErr := literal.DecodeString(tok.Lexeme); fragErr != nil {
				literal.Report(r, tok.Span, fragErr)
				return
			}
		}
		var le *literal.Error
		if errors.As(err, &le) {
			r.Report(le.Code, diag.SevError, whole, le.Msg, nil, nil)
			return
		}
	}
	literal.Report(r, frags[0].Span, err)
}

// integerType follows the C89 promotion list without long long:
// decimal int, long, unsigned long; octal/hex also try the unsigned types.
func integerType(b types.Builtins, v uint64, decimal bool) types.TypeID {
	switch {
	case v <= math.MaxInt32:
		return b.Int
	case !decimal && v <= math.MaxUint32:
		return b.UInt
	case v <= math.MaxInt64:
		return b.Long
	default:
		return b.ULong
	}
}

func isDecimal(lexeme []byte) bool {
	return len(lexeme) == 1 || lexeme[0] != '0'
}

func charType(b types.Builtins, kind ast.CharKind) types.TypeID {
	switch kind {
	case ast.CharUTF16:
		return b.UShort // char16_t
	case ast.CharUTF32:
		return b.UInt // char32_t
	default:
		// 'a' и L'a' имеют тип int (wchar_t = int)
		return b.Int
	}
}

func stringElemType(b types.Builtins, kind ast.StringKind) types.TypeID {
	switch kind {
	case ast.StringUTF16:
		return b.UShort
	case ast.StringUTF32:
		return b.UInt
	case ast.StringWide:
		return b.Int
	default:
		return b.Char
	}
}
