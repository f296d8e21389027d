package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes a textual representation of the tree to w.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

// FprintAnnotated is like Fprint but appends note(e) to every expression
// line for which note returns a non-empty string.
func FprintAnnotated(w io.Writer, node Node, note func(Expr) string) {
	p := &printer{w: w, note: note}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
	note   func(Expr) string
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

// suffix returns the annotation for e, formatted as " (...)".
func (p *printer) suffix(e Expr) string {
	if p.note == nil {
		return ""
	}
	if s := p.note(e); s != "" {
		return " (" + s + ")"
	}
	return ""
}

func (p *printer) section(label string, nodes ...Node) {
	p.printf("%s:\n", label)
	p.indent++
	for _, n := range nodes {
		p.print(n)
	}
	p.indent--
}

func (p *printer) print(node Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *File:
		p.printf("File %s\n", n.Filename)
		p.indent++
		for _, s := range n.Stmts {
			p.print(s)
		}
		p.indent--

	case *AssignStmt:
		p.printf("AssignStmt %s\n", n.pos)
		p.indent++
		targets := make([]Node, len(n.Targets))
		for i, t := range n.Targets {
			targets[i] = t
		}
		p.section("Targets", targets...)
		p.section("Value", n.Value)
		p.indent--

	case *AnnAssignStmt:
		p.printf("AnnAssignStmt %s\n", n.pos)
		p.indent++
		p.section("Target", n.Target)
		p.section("Annotation", n.Annotation)
		if n.Value != nil {
			p.section("Value", n.Value)
		}
		p.indent--

	case *OtherStmt:
		p.printf("OtherStmt %s %s\n", n.pos, n.Kind)

	case *Name:
		p.printf("Name %s %q%s\n", n.pos, n.Value, p.suffix(n))

	case *Constant:
		p.printf("Constant %s %s %s%s\n", n.pos, n.Kind, n.Value, p.suffix(n))

	case *BinaryOp:
		p.printf("BinaryOp %s %s%s\n", n.pos, n.Op, p.suffix(n))
		p.indent++
		p.section("X", n.X)
		p.section("Y", n.Y)
		p.indent--

	case *UnaryOp:
		p.printf("UnaryOp %s %s%s\n", n.pos, n.Op, p.suffix(n))
		p.indent++
		p.print(n.X)
		p.indent--

	case *ListExpr:
		p.printf("ListExpr %s%s\n", n.pos, p.suffix(n))
		p.indent++
		for _, e := range n.Elems {
			p.print(e)
		}
		p.indent--

	case *TupleExpr:
		p.printf("TupleExpr %s%s\n", n.pos, p.suffix(n))
		p.indent++
		for _, e := range n.Elems {
			p.print(e)
		}
		p.indent--

	case *SubscriptExpr:
		p.printf("SubscriptExpr %s%s\n", n.pos, p.suffix(n))
		p.indent++
		p.section("X", n.X)
		index := make([]Node, len(n.Index))
		for i, e := range n.Index {
			index[i] = e
		}
		p.section("Index", index...)
		p.indent--

	case *SelectorExpr:
		p.printf("SelectorExpr %s .%s%s\n", n.pos, n.Sel.Value, p.suffix(n))
		p.indent++
		p.print(n.X)
		p.indent--

	case *OtherExpr:
		p.printf("OtherExpr %s %s%s\n", n.pos, n.Kind, p.suffix(n))

	default:
		p.printf("%T\n", node)
	}
}
