package testkit

import (
	"bytes"
	"fmt"

	"cci/internal/ast"
	"cci/internal/source"
	"cci/internal/token"
	"cci/internal/types"
)

// CheckTokenTiling runs the token-stream invariants on a lexed file:
// 1) tokens are ordered, non-empty and do not overlap
// 2) every Lexeme is exactly the file bytes under its Span
// 3) the gaps between tokens hold only trivia (whitespace and comments)
func CheckTokenTiling(file *source.File, toks []token.Token) error {
	if file == nil {
		return fmt.Errorf("nil file")
	}
	var prev uint32
	for i, tok := range toks {
		sp := tok.Span
		if sp.File != file.ID {
			return fmt.Errorf("token %d: span file mismatch: got=%d want=%d", i, sp.File, file.ID)
		}
		if sp.End <= sp.Start {
			return fmt.Errorf("token %d (%s): empty span %v", i, tok.Kind, sp)
		}
		if sp.End > file.Size() {
			return fmt.Errorf("token %d: span end beyond content: %d > %d", i, sp.End, file.Size())
		}
		if sp.Start < prev {
			return fmt.Errorf("token %d: span %v overlaps previous token ending at %d", i, sp, prev)
		}
		if !bytes.Equal(tok.Lexeme, file.Bytes(sp)) {
			return fmt.Errorf("token %d: lexeme %q differs from source %q", i, tok.Lexeme, file.Bytes(sp))
		}
		if err := checkTrivia(file.Content[prev:sp.Start]); err != nil {
			return fmt.Errorf("before token %d at %d: %w", i, sp.Start, err)
		}
		prev = sp.End
	}
	if err := checkTrivia(file.Content[prev:]); err != nil {
		return fmt.Errorf("after last token at %d: %w", prev, err)
	}
	return nil
}

func checkTrivia(gap []byte) error {
	for len(gap) > 0 {
		switch {
		case isSpace(gap[0]):
			gap = gap[1:]
		case bytes.HasPrefix(gap, []byte("//")):
			if i := bytes.IndexByte(gap, '\n'); i >= 0 {
				gap = gap[i:]
			} else {
				gap = nil
			}
		case bytes.HasPrefix(gap, []byte("/*")):
			i := bytes.Index(gap[2:], []byte("*/"))
			if i < 0 {
				return fmt.Errorf("unterminated comment left as trivia")
			}
			gap = gap[i+4:]
		default:
			return fmt.Errorf("untokenized bytes %q", gap)
		}
	}
	return nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

// CheckExprTree runs the structural invariants on the tree under root:
// 1) every reachable handle resolves and is reached exactly once
// 2) spans are well formed and stay in one file; a cast spans its operand
// 3) a ParenExpr has the type and value category of its operand
// 4) an ArraySubscriptExpr has a pointer base and a non-pointer index
func CheckExprTree(e *ast.Exprs, q types.Query, root ast.ExprID) error {
	if e == nil {
		return fmt.Errorf("nil expression store")
	}
	rootNode, ok := e.Get(root)
	if !ok {
		return fmt.Errorf("root %d does not resolve", root)
	}
	file := rootNode.Span.File
	seen := make(map[ast.ExprID]bool)
	var err error
	ast.Walk(e, root, func(id ast.ExprID, depth int) bool {
		if err != nil {
			return false
		}
		if seen[id] {
			err = fmt.Errorf("node %d reached twice (shared child)", id)
			return false
		}
		seen[id] = true
		x, ok := e.Get(id)
		if !ok {
			err = fmt.Errorf("node %d at depth %d does not resolve", id, depth)
			return false
		}
		if x.Span.End < x.Span.Start || x.Span.File != file {
			err = fmt.Errorf("node %d (%s): bad span %v", id, x.Kind, x.Span)
			return false
		}
		err = checkNode(e, q, id, x)
		return err == nil
	})
	return err
}

func checkNode(e *ast.Exprs, q types.Query, id ast.ExprID, x ast.Expr) error {
	switch x.Kind {
	case ast.ExprParen:
		d, _ := e.Paren(id)
		inner := e.MustGet(d.Inner)
		if inner.Type != x.Type || inner.ValueKind != x.ValueKind {
			return fmt.Errorf("paren %d: (%v, %s) differs from operand (%v, %s)", id, x.Type, x.ValueKind, inner.Type, inner.ValueKind)
		}
	case ast.ExprArraySubscript:
		d, _ := e.ArraySubscript(id)
		if base := e.MustGet(d.Base); !q.IsPointer(base.Type.ID) {
			return fmt.Errorf("subscript %d: base %d is not a pointer", id, d.Base)
		}
		if index := e.MustGet(d.Index); q.IsPointer(index.Type.ID) {
			return fmt.Errorf("subscript %d: index %d is a pointer", id, d.Index)
		}
	case ast.ExprImplicitCast:
		d, _ := e.ImplicitCast(id)
		if operand := e.MustGet(d.Operand); operand.Span != x.Span {
			return fmt.Errorf("cast %d: span %v differs from operand span %v", id, x.Span, operand.Span)
		}
	}
	return nil
}
