// Package ast defines the syntax tree a parser builds from lexer tokens:
// assignment and expression items over numbers, variables, unary and
// binary operators, and function calls.
//
// Nodes are plain data. Every child is owned by exactly one parent; the
// tree has no sharing and no cycles.
package ast

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/exprlex/pkg/token"
)

// Node is implemented by every syntax tree node.
type Node interface {
	GetSpan() token.Span
	String() string
}

// Item is a top-level statement.
type Item interface {
	Node
	itemNode()
}

// Expr is an expression.
type Expr interface {
	Node
	exprNode()
}

// NodeInfo provides the source span shared by all nodes.
type NodeInfo struct {
	Span token.Span
}

// GetSpan returns the node's source span.
func (n *NodeInfo) GetSpan() token.Span {
	return n.Span
}

// UnOp is a prefix operator.
type UnOp string

// Unary operators.
const (
	Plus  UnOp = "+"
	Minus UnOp = "-"
)

// BinOp is an infix operator.
type BinOp string

// Binary operators.
const (
	Add BinOp = "+"
	Sub BinOp = "-"
	Mul BinOp = "*"
	Div BinOp = "/"
	Mod BinOp = "%"
)

// UnOpFor returns the unary operator spelled by a token kind.
func UnOpFor(k token.Kind) (UnOp, bool) {
	switch k {
	case token.Plus:
		return Plus, true
	case token.Minus:
		return Minus, true
	}
	return "", false
}

// BinOpFor returns the binary operator spelled by a token kind.
func BinOpFor(k token.Kind) (BinOp, bool) {
	switch k {
	case token.Plus:
		return Add, true
	case token.Minus:
		return Sub, true
	case token.Star:
		return Mul, true
	case token.Slash:
		return Div, true
	case token.Percent:
		return Mod, true
	}
	return "", false
}

// ---------- Items ----------

// AssignItem binds the value of an expression to a name: name = value.
type AssignItem struct {
	NodeInfo
	Name  string
	Value Expr
}

func (*AssignItem) itemNode() {}

func (a *AssignItem) String() string {
	return "(= " + a.Name + " " + a.Value.String() + ")"
}

// ExprItem is a bare expression statement.
type ExprItem struct {
	NodeInfo
	Expr Expr
}

func (*ExprItem) itemNode() {}

func (e *ExprItem) String() string {
	return e.Expr.String()
}

// ---------- Expressions ----------

// NumExpr is a numeric literal.
type NumExpr struct {
	NodeInfo
	Value float64
}

func (*NumExpr) exprNode() {}

func (n *NumExpr) String() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

// VarExpr is a variable reference.
type VarExpr struct {
	NodeInfo
	Name string
}

func (*VarExpr) exprNode() {}

func (v *VarExpr) String() string {
	return v.Name
}

// UnOpExpr applies a prefix operator to an operand.
type UnOpExpr struct {
	NodeInfo
	Op      UnOp
	Operand Expr
}

func (*UnOpExpr) exprNode() {}

func (u *UnOpExpr) String() string {
	return "(" + string(u.Op) + " " + u.Operand.String() + ")"
}

// BinOpExpr applies an infix operator to two operands.
type BinOpExpr struct {
	NodeInfo
	Op    BinOp
	Left  Expr
	Right Expr
}

func (*BinOpExpr) exprNode() {}

func (b *BinOpExpr) String() string {
	return "(" + string(b.Op) + " " + b.Left.String() + " " + b.Right.String() + ")"
}

// CallExpr is a function call: name(args...).
type CallExpr struct {
	NodeInfo
	Name string
	Args []Expr
}

func (*CallExpr) exprNode() {}

func (c *CallExpr) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return c.Name + "(" + strings.Join(args, ", ") + ")"
}
