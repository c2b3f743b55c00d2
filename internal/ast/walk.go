package ast

// Children appends the direct children of id to dst in source order.
func (e *Exprs) Children(dst []ExprID, id ExprID) []ExprID {
	x, ok := e.Get(id)
	if !ok {
		return dst
	}
	switch x.Kind {
	case ExprParen:
		return append(dst, e.parens.Get(uint32(x.payload)).Inner)
	case ExprArraySubscript:
		d := e.subscripts.Get(uint32(x.payload))
		return append(dst, d.Base, d.Index)
	case ExprImplicitCast:
		return append(dst, e.casts.Get(uint32(x.payload)).Operand)
	}
	return dst
}

// Walk visits root and its descendants in pre-order. When fn returns false
// the children of that node are skipped.
func Walk(e *Exprs, root ExprID, fn func(id ExprID, depth int) bool) {
	type frame struct {
		id    ExprID
		depth int
	}
	stack := []frame{{root, 0}}
	var kids []ExprID
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(top.id, top.depth) {
			continue
		}
		kids = e.Children(kids[:0], top.id)
		// в обратном порядке, чтобы base шёл раньше index
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{kids[i], top.depth + 1})
		}
	}
}

// Roots returns every node without a parent, in allocation order.
func (e *Exprs) Roots() []ExprID {
	var out []ExprID
	for i, adopted := range e.adopted {
		if !adopted {
			out = append(out, ExprID(i+1)) // #nosec G115 -- bounded by Arena.Len
		}
	}
	return out
}
