package ast

import "github.com/leapstack-labs/exprlex/pkg/token"

// Constructors derive a node's span from the tokens and children it is
// built from, the way a parser combines child spans.

// NewNum creates a literal from a Num token.
func NewNum(tok token.Token) *NumExpr {
	return &NumExpr{NodeInfo: NodeInfo{Span: tok.Span}, Value: tok.Num}
}

// NewVar creates a variable reference from a Symbol token.
func NewVar(tok token.Token) *VarExpr {
	return &VarExpr{NodeInfo: NodeInfo{Span: tok.Span}, Name: tok.Text}
}

// NewUnOp creates a prefix expression spanning the operator and operand.
func NewUnOp(op UnOp, opSpan token.Span, operand Expr) *UnOpExpr {
	return &UnOpExpr{
		NodeInfo: NodeInfo{Span: opSpan.Join(operand.GetSpan())},
		Op:       op,
		Operand:  operand,
	}
}

// NewBinOp creates an infix expression spanning both operands.
func NewBinOp(op BinOp, left, right Expr) *BinOpExpr {
	return &BinOpExpr{
		NodeInfo: NodeInfo{Span: left.GetSpan().Join(right.GetSpan())},
		Op:       op,
		Left:     left,
		Right:    right,
	}
}

// NewCall creates a call spanning from the callee name to the closing
// parenthesis.
func NewCall(name token.Token, closePar token.Span, args []Expr) *CallExpr {
	return &CallExpr{
		NodeInfo: NodeInfo{Span: name.Span.Join(closePar)},
		Name:     name.Text,
		Args:     args,
	}
}

// NewAssign creates an assignment spanning the target name and value.
func NewAssign(name token.Token, value Expr) *AssignItem {
	return &AssignItem{
		NodeInfo: NodeInfo{Span: name.Span.Join(value.GetSpan())},
		Name:     name.Text,
		Value:    value,
	}
}

// NewExprItem wraps an expression as a statement.
func NewExprItem(e Expr) *ExprItem {
	return &ExprItem{NodeInfo: NodeInfo{Span: e.GetSpan()}, Expr: e}
}

// Walk calls fn for n and then for each of its children, depth first.
// Children are skipped when fn returns false.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch n := n.(type) {
	case *AssignItem:
		Walk(n.Value, fn)
	case *ExprItem:
		Walk(n.Expr, fn)
	case *UnOpExpr:
		Walk(n.Operand, fn)
	case *BinOpExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *CallExpr:
		for _, a := range n.Args {
			Walk(a, fn)
		}
	}
}
