package types2

import (
	"github.com/you-not-fish/typycheck/internal/syntax"
	"github.com/you-not-fish/typycheck/internal/types"
)

// expr infers the type set of a value expression and records it.
// An empty set means no type could be inferred.
func (c *Checker) expr(e syntax.Expr) *types.TypeSet {
	set := c.exprInternal(e)
	c.recordTypes(e, set)
	return set
}

// exprInternal is the main value inference function.
func (c *Checker) exprInternal(e syntax.Expr) *types.TypeSet {
	switch e := e.(type) {
	case *syntax.Constant:
		return types.NewTypeSet(constantType(e))

	case *syntax.Name:
		// A name already in the table carries its recorded set.
		if v := c.ctx.Lookup(e.Value); v != nil {
			return v.Types().Clone()
		}
		return types.NewTypeSet()

	case *syntax.BinaryOp:
		x := c.expr(e.X)
		y := c.expr(e.Y)
		set := x.Clone()
		set.AddAll(y)
		return set

	case *syntax.UnaryOp:
		return c.unary(e)

	case *syntax.ListExpr:
		elem := types.NewTypeSet()
		for _, el := range e.Elems {
			elem.AddAll(c.expr(el))
		}
		return types.NewTypeSet(types.NewList(elem))

	case *syntax.TupleExpr:
		elems := make([]*types.TypeSet, len(e.Elems))
		for i, el := range e.Elems {
			elems[i] = c.expr(el)
		}
		return types.NewTypeSet(types.NewTuple(elems...))
	}

	// Subscripts, attribute access, calls and everything else.
	return types.NewTypeSet()
}

// unary infers the set of a unary operation. "not" always yields bool;
// the arithmetic operators promote bool to int and keep the rest.
func (c *Checker) unary(e *syntax.UnaryOp) *types.TypeSet {
	x := c.expr(e.X)
	if e.Op == syntax.Not {
		return types.NewTypeSet(types.Typ[types.Bool])
	}
	set := types.NewTypeSet()
	for _, t := range x.Types() {
		if b, ok := t.(*types.Basic); ok && b.Kind() == types.Bool {
			t = types.Typ[types.Int]
		}
		set.Add(t)
	}
	return set
}

// constantType returns the type of a literal constant, or nil for
// literals outside the type model (complex numbers, Ellipsis).
func constantType(e *syntax.Constant) types.Type {
	switch e.Kind {
	case syntax.IntConst:
		return types.Typ[types.Int]
	case syntax.FloatConst:
		return types.Typ[types.Float]
	case syntax.StrConst:
		return types.Typ[types.Str]
	case syntax.BytesConst:
		return types.Typ[types.Bytes]
	case syntax.BoolConst:
		return types.Typ[types.Bool]
	case syntax.NoneConst:
		return types.Typ[types.None]
	}
	return nil
}
