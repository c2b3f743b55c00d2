package ast

type (
	// ExprID is a handle to a node inside one Exprs store.
	ExprID uint32
	// PayloadID indexes the per-kind payload arena selected by Expr.Kind.
	PayloadID uint32
)

const (
	NoExprID    ExprID    = 0
	NoPayloadID PayloadID = 0
)

func (id ExprID) IsValid() bool    { return id != NoExprID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
