package types2

import (
	"fmt"
	"strings"

	"github.com/you-not-fish/typycheck/internal/syntax"
	"github.com/you-not-fish/typycheck/internal/types"
)

// typExpr evaluates an annotation to its declared type set and records it.
func (c *Checker) typExpr(e syntax.Expr) (*types.TypeSet, *TypeError) {
	set, err := c.typExprInternal(e)
	if err != nil {
		return nil, err
	}
	c.recordTypes(e, set)
	return set, nil
}

func (c *Checker) typExprInternal(e syntax.Expr) (*types.TypeSet, *TypeError) {
	switch e := e.(type) {
	case *syntax.Constant:
		if t := constantType(e); t != nil {
			return types.NewTypeSet(t), nil
		}

	case *syntax.Name:
		if t, ok := c.builtin(e.Value); ok {
			return types.NewTypeSet(t), nil
		}

	case *syntax.SelectorExpr:
		// typing.X for a plain X is never a builtin; fall through.

	case *syntax.BinaryOp:
		// Any operator unions its operands, as in value position.
		x, err := c.typExpr(e.X)
		if err != nil {
			return nil, err
		}
		y, err := c.typExpr(e.Y)
		if err != nil {
			return nil, err
		}
		set := x.Clone()
		set.AddAll(y)
		return set, nil

	case *syntax.SubscriptExpr:
		return c.genericType(e)
	}

	return c.unknownAnnotation(e)
}

// genericType resolves list[T], tuple[...], Optional[T] and Union[...],
// with or without a typing. prefix and in either capitalization.
func (c *Checker) genericType(e *syntax.SubscriptExpr) (*types.TypeSet, *TypeError) {
	switch genericName(e.X) {
	case "list", "List":
		if len(e.Index) != 1 {
			break
		}
		elem, err := c.typExpr(e.Index[0])
		if err != nil {
			return nil, err
		}
		return types.NewTypeSet(types.NewList(elem)), nil

	case "tuple", "Tuple":
		// tuple[()] is the empty tuple.
		if len(e.Index) == 1 {
			if t, ok := e.Index[0].(*syntax.TupleExpr); ok && len(t.Elems) == 0 {
				return types.NewTypeSet(types.NewTuple()), nil
			}
		}
		// tuple[T, ...] is a tuple of any length.
		if len(e.Index) == 2 && isEllipsis(e.Index[1]) {
			elem, err := c.typExpr(e.Index[0])
			if err != nil {
				return nil, err
			}
			return types.NewTypeSet(types.NewVariadicTuple(elem)), nil
		}
		elems := make([]*types.TypeSet, len(e.Index))
		for i, index := range e.Index {
			set, err := c.typExpr(index)
			if err != nil {
				return nil, err
			}
			elems[i] = set
		}
		return types.NewTypeSet(types.NewTuple(elems...)), nil

	case "Optional":
		if len(e.Index) != 1 {
			break
		}
		inner, err := c.typExpr(e.Index[0])
		if err != nil {
			return nil, err
		}
		set := inner.Clone()
		set.Add(types.Typ[types.None])
		return set, nil

	case "Union":
		set := types.NewTypeSet()
		for _, index := range e.Index {
			member, err := c.typExpr(index)
			if err != nil {
				return nil, err
			}
			set.AddAll(member)
		}
		return set, nil
	}

	return c.unknownAnnotation(e)
}

// builtin resolves an annotation name, consulting configured aliases.
func (c *Checker) builtin(name string) (types.Type, bool) {
	if t, ok := types.LookupBuiltin(name); ok {
		return t, true
	}
	if target, ok := c.conf.Aliases[name]; ok {
		return types.LookupBuiltin(target)
	}
	return nil, false
}

// unknownAnnotation contributes nothing in permissive mode and fails otherwise.
func (c *Checker) unknownAnnotation(e syntax.Expr) (*types.TypeSet, *TypeError) {
	if c.conf.Permissive {
		return types.NewTypeSet(), nil
	}
	s := exprString(e)
	return nil, c.errorf(e.Pos(), UnknownAnnotation, s, "unknown type annotation '%s'", s)
}

func isEllipsis(e syntax.Expr) bool {
	c, ok := e.(*syntax.Constant)
	return ok && c.Kind == syntax.EllipsisConst
}

// genericName returns the base name of a subscripted annotation:
// "X" for both X[...] and typing.X[...].
func genericName(e syntax.Expr) string {
	switch e := e.(type) {
	case *syntax.Name:
		return e.Value
	case *syntax.SelectorExpr:
		if x, ok := e.X.(*syntax.Name); ok && x.Value == "typing" {
			return e.Sel.Value
		}
	}
	return ""
}

// exprString renders an annotation for diagnostics.
func exprString(e syntax.Expr) string {
	var b strings.Builder
	writeExpr(&b, e)
	return b.String()
}

func writeExpr(b *strings.Builder, e syntax.Expr) {
	switch e := e.(type) {
	case *syntax.Name:
		b.WriteString(e.Value)
	case *syntax.Constant:
		b.WriteString(e.Value)
	case *syntax.SelectorExpr:
		writeExpr(b, e.X)
		b.WriteByte('.')
		b.WriteString(e.Sel.Value)
	case *syntax.SubscriptExpr:
		writeExpr(b, e.X)
		b.WriteByte('[')
		writeList(b, e.Index)
		b.WriteByte(']')
	case *syntax.BinaryOp:
		writeExpr(b, e.X)
		fmt.Fprintf(b, " %s ", e.Op)
		writeExpr(b, e.Y)
	case *syntax.UnaryOp:
		b.WriteString(e.Op.String())
		writeExpr(b, e.X)
	case *syntax.ListExpr:
		b.WriteByte('[')
		writeList(b, e.Elems)
		b.WriteByte(']')
	case *syntax.TupleExpr:
		b.WriteByte('(')
		writeList(b, e.Elems)
		b.WriteByte(')')
	case *syntax.OtherExpr:
		b.WriteString(e.Kind)
	default:
		fmt.Fprintf(b, "%T", e)
	}
}

func writeList(b *strings.Builder, list []syntax.Expr) {
	for i, e := range list {
		if i > 0 {
			b.WriteString(", ")
		}
		writeExpr(b, e)
	}
}
