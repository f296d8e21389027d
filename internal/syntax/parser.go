package syntax

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// Maximum number of syntax errors reported for one file.
const maxErrors = 10

// SyntaxError represents a syntax error.
type SyntaxError struct {
	Pos Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// ErrorHandler is called for each syntax error.
type ErrorHandler func(pos Pos, msg string)

var python = sitter.NewLanguage(tree_sitter_python.Language())

// Parser converts Python source into a File using the tree-sitter grammar.
// Statements and expressions outside the checked subset are kept as
// OtherStmt and OtherExpr placeholders.
type Parser struct {
	filename string
	src      []byte
	readErr  error

	// Error handling
	errh   ErrorHandler
	errcnt int
	first  error // first error encountered
}

// NewParser creates a new Parser for the given source.
// The source is read eagerly; a read failure is reported by Parse.
func NewParser(filename string, src io.Reader, errh ErrorHandler) *Parser {
	p := &Parser{filename: filename, errh: errh}
	p.src, p.readErr = io.ReadAll(src)
	return p
}

// ErrorCount returns the number of syntax errors reported so far.
func (p *Parser) ErrorCount() int {
	return p.errcnt
}

// FirstError returns the first syntax error, or nil.
func (p *Parser) FirstError() error {
	return p.first
}

// Parse parses the whole source and returns its File. The result is never
// nil; on errors it holds whatever statements could be recovered.
func (p *Parser) Parse() *File {
	file := NewFile(p.filename, nil)
	if p.readErr != nil {
		p.errorAt(NewPos(p.filename, 1, 1), fmt.Sprintf("read error: %v", p.readErr))
		return file
	}

	tp := sitter.NewParser()
	defer tp.Close()
	if err := tp.SetLanguage(python); err != nil {
		p.errorAt(NewPos(p.filename, 1, 1), fmt.Sprintf("python language: %v", err))
		return file
	}

	tree := tp.Parse(p.src, nil)
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		p.errorAt(NewPos(p.filename, 1, 1), "unexpected empty tree")
		return file
	}
	if root.HasError() {
		p.syntaxErrors(root)
	}

	for _, n := range p.namedChildren(root) {
		file.Stmts = append(file.Stmts, p.stmt(n))
	}
	return file
}

// ----------------------------------------------------------------------------
// Error handling

func (p *Parser) errorAt(pos Pos, msg string) {
	if p.errcnt >= maxErrors {
		return
	}
	if p.errcnt == 0 {
		p.first = &SyntaxError{Pos: pos, Msg: msg}
	}
	p.errcnt++
	if p.errh != nil {
		p.errh(pos, msg)
	}
}

// syntaxErrors reports every MISSING node and every outermost ERROR node.
func (p *Parser) syntaxErrors(n *sitter.Node) {
	switch {
	case n.IsMissing():
		p.errorAt(p.pos(n), "syntax error: missing "+formatKind(n.Kind()))
		return
	case n.IsError():
		p.errorAt(p.pos(n), "syntax error: unexpected "+quoteSnippet(p.text(n)))
		return
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		if child := n.Child(i); child != nil {
			p.syntaxErrors(child)
		}
	}
}

func formatKind(kind string) string {
	trimmed := strings.TrimSpace(kind)
	if trimmed == "" {
		return "token"
	}
	for _, r := range trimmed {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return strings.ReplaceAll(trimmed, "_", " ")
		}
	}
	return fmt.Sprintf("'%s'", trimmed)
}

func quoteSnippet(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 20 {
		s = s[:17] + "..."
	}
	return fmt.Sprintf("%q", s)
}

// ----------------------------------------------------------------------------
// Node helpers

func (p *Parser) pos(n *sitter.Node) Pos {
	pt := n.StartPosition()
	return NewPos(p.filename, uint32(pt.Row)+1, uint32(pt.Column)+1)
}

func (p *Parser) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Utf8Text(p.src)
}

// namedChildren returns the named children of n, skipping comments.
func (p *Parser) namedChildren(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child == nil || child.Kind() == "comment" {
			continue
		}
		out = append(out, child)
	}
	return out
}

// ----------------------------------------------------------------------------
// Statements

func (p *Parser) stmt(n *sitter.Node) Stmt {
	if n.Kind() != "expression_statement" {
		return NewOtherStmt(p.pos(n), n.Kind())
	}
	children := p.namedChildren(n)
	if len(children) != 1 || children[0].Kind() != "assignment" {
		return NewOtherStmt(p.pos(n), n.Kind())
	}
	return p.assignment(children[0])
}

// assignment converts `a = b = v`, `x: T` and `x: T = v`.
func (p *Parser) assignment(n *sitter.Node) Stmt {
	pos := p.pos(n)
	left := n.ChildByFieldName("left")
	typ := n.ChildByFieldName("type")
	right := n.ChildByFieldName("right")

	if typ != nil {
		var value Expr
		if right != nil {
			value = p.expr(right)
		}
		return NewAnnAssign(pos, p.expr(left), p.expr(typ), value)
	}

	targets := []Expr{p.expr(left)}
	for right != nil && right.Kind() == "assignment" && right.ChildByFieldName("type") == nil {
		targets = append(targets, p.expr(right.ChildByFieldName("left")))
		right = right.ChildByFieldName("right")
	}
	if right == nil {
		return NewOtherStmt(pos, n.Kind())
	}
	return NewAssign(pos, targets, p.expr(right))
}

// ----------------------------------------------------------------------------
// Expressions

func (p *Parser) expr(n *sitter.Node) Expr {
	if n == nil {
		return NewOtherExpr(NoPos, "missing")
	}
	pos := p.pos(n)

	switch n.Kind() {
	case "identifier":
		return NewName(pos, p.text(n))

	case "integer":
		return p.number(n, IntConst)

	case "float":
		return p.number(n, FloatConst)

	case "string", "concatenated_string":
		return NewConstant(pos, p.stringKind(n), p.text(n))

	case "true", "false":
		return NewConstant(pos, BoolConst, p.text(n))

	case "none":
		return NewConstant(pos, NoneConst, p.text(n))

	case "ellipsis":
		return NewConstant(pos, EllipsisConst, p.text(n))

	case "binary_operator":
		op, ok := LookupBinary(p.text(n.ChildByFieldName("operator")))
		if !ok {
			return NewOtherExpr(pos, n.Kind())
		}
		return NewBinaryOp(pos, op, p.expr(n.ChildByFieldName("left")), p.expr(n.ChildByFieldName("right")))

	case "unary_operator":
		op, ok := LookupUnary(p.text(n.ChildByFieldName("operator")))
		if !ok {
			return NewOtherExpr(pos, n.Kind())
		}
		return NewUnaryOp(pos, op, p.expr(n.ChildByFieldName("argument")))

	case "not_operator":
		return NewUnaryOp(pos, Not, p.expr(n.ChildByFieldName("argument")))

	case "parenthesized_expression", "type":
		// Parentheses and annotation wrappers carry no meaning of their own.
		if children := p.namedChildren(n); len(children) == 1 {
			return p.expr(children[0])
		}
		return NewOtherExpr(pos, n.Kind())

	case "list":
		return NewList(pos, p.exprList(n))

	case "tuple", "expression_list", "pattern_list":
		return NewTuple(pos, p.exprList(n))

	case "subscript":
		var index []Expr
		for i := uint(0); i < n.ChildCount(); i++ {
			if n.FieldNameForChild(uint32(i)) == "subscript" {
				index = append(index, p.expr(n.Child(i)))
			}
		}
		return NewSubscript(pos, p.expr(n.ChildByFieldName("value")), index)

	case "generic_type":
		// list[int] inside an annotation: identifier followed by type_parameter.
		var base Expr
		var index []Expr
		for _, child := range p.namedChildren(n) {
			if child.Kind() == "type_parameter" {
				index = p.exprList(child)
				continue
			}
			base = p.expr(child)
		}
		if base == nil {
			return NewOtherExpr(pos, n.Kind())
		}
		return NewSubscript(pos, base, index)

	case "union_type":
		children := p.namedChildren(n)
		if len(children) != 2 {
			return NewOtherExpr(pos, n.Kind())
		}
		return NewBinaryOp(pos, BitOr, p.expr(children[0]), p.expr(children[1]))

	case "attribute":
		attr := n.ChildByFieldName("attribute")
		if attr == nil {
			return NewOtherExpr(pos, n.Kind())
		}
		return NewSelector(pos, p.expr(n.ChildByFieldName("object")), NewName(p.pos(attr), p.text(attr)))

	case "member_type":
		children := p.namedChildren(n)
		if len(children) != 2 || children[1].Kind() != "identifier" {
			return NewOtherExpr(pos, n.Kind())
		}
		return NewSelector(pos, p.expr(children[0]), NewName(p.pos(children[1]), p.text(children[1])))
	}

	return NewOtherExpr(pos, n.Kind())
}

func (p *Parser) exprList(n *sitter.Node) []Expr {
	children := p.namedChildren(n)
	list := make([]Expr, 0, len(children))
	for _, child := range children {
		list = append(list, p.expr(child))
	}
	return list
}

// number classifies a numeric literal; a j/J suffix makes it imaginary.
func (p *Parser) number(n *sitter.Node, kind ConstKind) Expr {
	text := p.text(n)
	if strings.HasSuffix(text, "j") || strings.HasSuffix(text, "J") {
		kind = ComplexConst
	}
	return NewConstant(p.pos(n), kind, text)
}

// stringKind reports BytesConst for literals with a b/B prefix.
// Implicit concatenation takes the kind of its first part.
func (p *Parser) stringKind(n *sitter.Node) ConstKind {
	text := p.text(n)
	if n.Kind() == "concatenated_string" {
		if children := p.namedChildren(n); len(children) > 0 {
			text = p.text(children[0])
		}
	}
	prefix := text
	if i := strings.IndexAny(text, `"'`); i >= 0 {
		prefix = text[:i]
	}
	if strings.ContainsAny(prefix, "bB") {
		return BytesConst
	}
	return StrConst
}
