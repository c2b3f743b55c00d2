package driver_test

import (
	"context"
	"testing"

	"cci/internal/ast"
	"cci/internal/diag"
	"cci/internal/driver"
	"cci/internal/testkit"
)

func TestBuildLiterals(t *testing.T) {
	src := `x = 42 + 0xFFFFFFFF + 'a' + u'b' + 1.5 + "ab" L"c" "d";`
	res := driver.TokenizeSource(context.Background(), "lit.c", []byte(src), driver.Options{})
	nodes := driver.BuildLiterals(res)
	defer nodes.Exprs.Release()

	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", res.Bag.Items())
	}
	if len(nodes.Roots) != 5 {
		t.Fatalf("expected 5 literal nodes, got %d", len(nodes.Roots))
	}
	b := nodes.Types.Builtins()
	e := nodes.Exprs

	if d, ok := e.IntegerLiteral(nodes.Roots[0]); !ok || d.Value != 42 || e.MustGet(nodes.Roots[0]).Type.ID != b.Int {
		t.Fatalf("42 = %+v", e.MustGet(nodes.Roots[0]))
	}
	if got := e.MustGet(nodes.Roots[1]).Type.ID; got != b.UInt {
		t.Fatalf("0xFFFFFFFF typed %v, want unsigned int", nodes.Types.Format(e.MustGet(nodes.Roots[1]).Type))
	}
	if d, ok := e.CharacterConstant(nodes.Roots[3]); !ok || d.Kind != ast.CharUTF16 || d.Value != 'b' {
		t.Fatalf("u'b' = %+v", d)
	}

	str := nodes.Roots[4]
	view, ok := e.StringLiteral(str)
	if !ok || view.Kind != ast.StringWide || view.Length() != 5 || len(view.Locs) != 3 {
		t.Fatalf("string view = %+v", view)
	}
	x := e.MustGet(str)
	if got := string(res.File.Bytes(x.Span)); got != `"ab" L"c" "d"` {
		t.Fatalf("string span covers %q", got)
	}
	for _, root := range nodes.Roots {
		if err := testkit.CheckExprTree(e, nodes.Types, root); err != nil {
			t.Fatal(err)
		}
	}
}

func TestBuildLiterals_Errors(t *testing.T) {
	src := `99999999999999999999, '\777', u"a" U"b", "\400"`
	res := driver.TokenizeSource(context.Background(), "lit.c", []byte(src), driver.Options{})
	nodes := driver.BuildLiterals(res)
	defer nodes.Exprs.Release()

	var codes []diag.Code
	for _, d := range res.Bag.Items() {
		codes = append(codes, d.Code)
	}
	want := []diag.Code{diag.LitIntOverflow, diag.LitCharOverflow, diag.LitMixedEncoding, diag.LitCharOverflow}
	if len(codes) != len(want) {
		t.Fatalf("codes = %v, want %v", codes, want)
	}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("codes = %v, want %v", codes, want)
		}
	}
	if len(nodes.Roots) != 0 {
		t.Fatalf("failed literals must not produce nodes, got %d", len(nodes.Roots))
	}
}
