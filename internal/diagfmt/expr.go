package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"cci/internal/ast"
	"cci/internal/source"
	"cci/internal/types"
)

// TypeNamer spells a qualified type; *types.Interner implements it.
type TypeNamer interface {
	Format(qt types.QualType) string
}

type ExprNodeOutput struct {
	Kind      string           `json:"kind"`
	Type      string           `json:"type"`
	ValueKind string           `json:"value_kind"`
	Span      source.Span      `json:"span"`
	Fields    map[string]any   `json:"fields,omitempty"`
	Children  []ExprNodeOutput `json:"children,omitempty"`
}

func typeName(tn TypeNamer, qt types.QualType) string {
	if tn == nil {
		return fmt.Sprintf("type#%d", qt.ID)
	}
	return tn.Format(qt)
}

// exprLabel is the one-line description shared by the pretty and tree dumps:
// Kind[detail] 'type' category (span).
func exprLabel(e *ast.Exprs, tn TypeNamer, id ast.ExprID, fs *source.FileSet) string {
	x, ok := e.Get(id)
	if !ok {
		return fmt.Sprintf("<bad expr %d>", id)
	}
	label := x.Kind.String()
	if detail := exprDetail(e, id, x); detail != "" {
		label += " " + detail
	}
	return fmt.Sprintf("%s '%s' %s (span: %s)", label, typeName(tn, x.Type), x.ValueKind, formatSpan(x.Span, fs))
}

func exprDetail(e *ast.Exprs, id ast.ExprID, x ast.Expr) string {
	switch x.Kind {
	case ast.ExprIntegerLiteral:
		if d, ok := e.IntegerLiteral(id); ok {
			return strconv.FormatUint(d.Value, 10)
		}
	case ast.ExprCharacterConstant:
		if d, ok := e.CharacterConstant(id); ok {
			return fmt.Sprintf("%s %d", d.Kind, d.Value)
		}
	case ast.ExprStringLiteral:
		if v, ok := e.StringLiteral(id); ok {
			if s, ok := v.UTF8(); ok {
				return fmt.Sprintf("%s %q", v.Kind, s)
			}
			return fmt.Sprintf("%s len=%d", v.Kind, v.Length())
		}
	case ast.ExprImplicitCast:
		if d, ok := e.ImplicitCast(id); ok {
			return "<" + d.Kind.String() + ">"
		}
	}
	return ""
}

func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		if _, ok := fs.Lookup(span.File); ok {
			start, end := fs.Resolve(span)
			return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
		}
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}

// FormatExprPretty prints the expression rooted at root as an indented tree.
func FormatExprPretty(w io.Writer, e *ast.Exprs, tn TypeNamer, root ast.ExprID, fs *source.FileSet) error {
	if _, ok := e.Get(root); !ok {
		return fmt.Errorf("expression %d not found", root)
	}
	fmt.Fprintln(w, exprLabel(e, tn, root, fs))
	writeExprChildren(w, e, tn, root, fs, "")
	return nil
}

func writeExprChildren(w io.Writer, e *ast.Exprs, tn TypeNamer, id ast.ExprID, fs *source.FileSet, prefix string) {
	kids := e.Children(nil, id)
	for i, kid := range kids {
		branch, next := "├─ ", "│  "
		if i == len(kids)-1 {
			branch, next = "└─ ", "   "
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, branch, exprLabel(e, tn, kid, fs))
		writeExprChildren(w, e, tn, kid, fs, prefix+next)
	}
}

func buildExprNodeOutput(e *ast.Exprs, tn TypeNamer, id ast.ExprID) ExprNodeOutput {
	x, _ := e.Get(id)
	out := ExprNodeOutput{
		Kind:      x.Kind.String(),
		Type:      typeName(tn, x.Type),
		ValueKind: x.ValueKind.String(),
		Span:      x.Span,
	}
	switch x.Kind {
	case ast.ExprIntegerLiteral:
		if d, ok := e.IntegerLiteral(id); ok {
			out.Fields = map[string]any{"value": d.Value}
		}
	case ast.ExprCharacterConstant:
		if d, ok := e.CharacterConstant(id); ok {
			out.Fields = map[string]any{"value": d.Value, "encoding": d.Kind.String()}
		}
	case ast.ExprStringLiteral:
		if v, ok := e.StringLiteral(id); ok {
			out.Fields = map[string]any{
				"encoding":   v.Kind.String(),
				"char_width": v.CharWidth,
				"length":     v.Length(),
				"fragments":  len(v.Locs),
			}
			if s, ok := v.UTF8(); ok {
				out.Fields["text"] = s
			}
		}
	case ast.ExprImplicitCast:
		if d, ok := e.ImplicitCast(id); ok {
			out.Fields = map[string]any{"cast": d.Kind.String()}
		}
	}
	for _, kid := range e.Children(nil, id) {
		out.Children = append(out.Children, buildExprNodeOutput(e, tn, kid))
	}
	return out
}

// FormatExprJSON writes the expression rooted at root as nested JSON objects.
func FormatExprJSON(w io.Writer, e *ast.Exprs, tn TypeNamer, root ast.ExprID) error {
	if _, ok := e.Get(root); !ok {
		return fmt.Errorf("expression %d not found", root)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildExprNodeOutput(e, tn, root))
}
