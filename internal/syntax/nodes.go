// Package syntax defines the Python statement and expression tree consumed by
// the checker, and a tree-sitter based front-end that produces it.
package syntax

// ----------------------------------------------------------------------------
// Interfaces
//
// The tree has two closed classes of nodes: statements and expressions.
// All nodes implement Node. The marker methods keep implementations inside
// this package so type switches over Stmt and Expr stay exhaustive.

// Node is the interface implemented by all tree nodes.
type Node interface {
	Pos() Pos // position of first character belonging to the node
	aNode()
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	aExpr()
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// ----------------------------------------------------------------------------
// Base node types

type node struct {
	pos Pos
}

func (n *node) Pos() Pos { return n.pos }
func (n *node) aNode()   {}

type expr struct{ node }

func (*expr) aExpr() {}

type stmt struct{ node }

func (*stmt) aStmt() {}

// ----------------------------------------------------------------------------
// File

// File is one parsed translation unit: its top-level statements in source order.
type File struct {
	node
	Filename string
	Stmts    []Stmt
}

// NewFile returns a File holding stmts.
func NewFile(filename string, stmts []Stmt) *File {
	return &File{node: node{pos: NewPos(filename, 1, 1)}, Filename: filename, Stmts: stmts}
}

// ----------------------------------------------------------------------------
// Statements

// AssignStmt is a plain assignment: t1 = t2 = ... = Value.
// Chained targets appear in source order.
type AssignStmt struct {
	stmt
	Targets []Expr
	Value   Expr
}

// AnnAssignStmt is an annotated assignment: Target: Annotation [= Value].
type AnnAssignStmt struct {
	stmt
	Target     Expr
	Annotation Expr
	Value      Expr // nil if no initializer
}

// OtherStmt stands for any statement form the checker does not inspect.
type OtherStmt struct {
	stmt
	Kind string // grammar node kind, e.g. "function_definition"
}

// ----------------------------------------------------------------------------
// Expressions

// Name is an identifier.
type Name struct {
	expr
	Value string
}

// Constant is a literal: number, string, bytes, True/False, None or `...`.
type Constant struct {
	expr
	Kind  ConstKind
	Value string // literal source text
}

// BinaryOp is X Op Y.
type BinaryOp struct {
	expr
	Op Operator
	X  Expr
	Y  Expr
}

// UnaryOp is Op X.
type UnaryOp struct {
	expr
	Op Operator
	X  Expr
}

// ListExpr is a list display: [Elems...].
type ListExpr struct {
	expr
	Elems []Expr
}

// TupleExpr is a tuple display, parenthesized or bare: (a, b) or a, b.
type TupleExpr struct {
	expr
	Elems []Expr
}

// SubscriptExpr is X[Index...]. In annotations it spells a generic type
// such as list[int] or tuple[int, str].
type SubscriptExpr struct {
	expr
	X     Expr
	Index []Expr
}

// SelectorExpr is X.Sel.
type SelectorExpr struct {
	expr
	X   Expr
	Sel *Name
}

// OtherExpr stands for any expression form the checker does not inspect.
type OtherExpr struct {
	expr
	Kind string
}

// ----------------------------------------------------------------------------
// Constructors

// NewAssign returns a plain assignment node.
func NewAssign(pos Pos, targets []Expr, value Expr) *AssignStmt {
	s := &AssignStmt{Targets: targets, Value: value}
	s.pos = pos
	return s
}

// NewAnnAssign returns an annotated assignment node; value may be nil.
func NewAnnAssign(pos Pos, target, annotation, value Expr) *AnnAssignStmt {
	s := &AnnAssignStmt{Target: target, Annotation: annotation, Value: value}
	s.pos = pos
	return s
}

// NewOtherStmt returns a placeholder for an uninspected statement.
func NewOtherStmt(pos Pos, kind string) *OtherStmt {
	s := &OtherStmt{Kind: kind}
	s.pos = pos
	return s
}

// NewName returns an identifier node.
func NewName(pos Pos, value string) *Name {
	n := &Name{Value: value}
	n.pos = pos
	return n
}

// NewConstant returns a literal node.
func NewConstant(pos Pos, kind ConstKind, value string) *Constant {
	c := &Constant{Kind: kind, Value: value}
	c.pos = pos
	return c
}

// NewBinaryOp returns x op y.
func NewBinaryOp(pos Pos, op Operator, x, y Expr) *BinaryOp {
	b := &BinaryOp{Op: op, X: x, Y: y}
	b.pos = pos
	return b
}

// NewUnaryOp returns op x.
func NewUnaryOp(pos Pos, op Operator, x Expr) *UnaryOp {
	u := &UnaryOp{Op: op, X: x}
	u.pos = pos
	return u
}

// NewList returns a list display.
func NewList(pos Pos, elems []Expr) *ListExpr {
	l := &ListExpr{Elems: elems}
	l.pos = pos
	return l
}

// NewTuple returns a tuple display.
func NewTuple(pos Pos, elems []Expr) *TupleExpr {
	t := &TupleExpr{Elems: elems}
	t.pos = pos
	return t
}

// NewSubscript returns x[index...].
func NewSubscript(pos Pos, x Expr, index []Expr) *SubscriptExpr {
	s := &SubscriptExpr{X: x, Index: index}
	s.pos = pos
	return s
}

// NewSelector returns x.sel.
func NewSelector(pos Pos, x Expr, sel *Name) *SelectorExpr {
	s := &SelectorExpr{X: x, Sel: sel}
	s.pos = pos
	return s
}

// NewOtherExpr returns a placeholder for an uninspected expression.
func NewOtherExpr(pos Pos, kind string) *OtherExpr {
	e := &OtherExpr{Kind: kind}
	e.pos = pos
	return e
}
