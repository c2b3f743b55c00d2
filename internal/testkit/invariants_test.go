package testkit

import (
	"strings"
	"testing"

	"cci/internal/ast"
	"cci/internal/lexer"
	"cci/internal/source"
	"cci/internal/token"
	"cci/internal/types"
)

func TestCheckTokenTiling(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.c", []byte("int /* c */ x; // tail\n\t'ab' @")))
	toks := lexer.Tokenize(file, lexer.Options{})
	if err := CheckTokenTiling(file, toks); err != nil {
		t.Fatalf("lexer output violates tiling: %v", err)
	}

	dropped := append([]token.Token(nil), toks[:1]...)
	dropped = append(dropped, toks[2:]...)
	if err := CheckTokenTiling(file, dropped); err == nil || !strings.Contains(err.Error(), "untokenized") {
		t.Fatalf("missing token not detected: %v", err)
	}

	swapped := append([]token.Token(nil), toks...)
	swapped[0], swapped[1] = swapped[1], swapped[0]
	if err := CheckTokenTiling(file, swapped); err == nil {
		t.Fatal("out-of-order tokens not detected")
	}

	bad := append([]token.Token(nil), toks...)
	bad[0].Lexeme = []byte("long")
	if err := CheckTokenTiling(file, bad); err == nil {
		t.Fatal("lexeme mismatch not detected")
	}
}

func TestCheckExprTree(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	charTy := types.QualType{ID: b.Char}
	intTy := types.QualType{ID: b.Int}
	ptrTy := types.QualType{ID: in.PointerTo(charTy)}

	e := ast.NewExprs(in, 0)
	base := e.NewIntegerLiteral(0, ptrTy, source.Span{Start: 0, End: 1})
	idx := e.NewIntegerLiteral(1, intTy, source.Span{Start: 2, End: 3})
	paren := e.NewParen(idx, source.Loc{Off: 1}, source.Loc{Off: 3})
	sub := e.NewArraySubscript(base, paren, ast.LValue, charTy, source.Loc{Off: 1}, source.Loc{Off: 4})
	root := e.NewImplicitCast(ast.RValue, charTy, ast.CastLValueToRValue, sub)

	if err := CheckExprTree(e, in, root); err != nil {
		t.Fatalf("valid tree rejected: %v", err)
	}
	if err := CheckExprTree(e, in, ast.ExprID(99)); err == nil {
		t.Fatal("dangling root not detected")
	}
}
