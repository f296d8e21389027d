package types2

import (
	"github.com/you-not-fish/typycheck/internal/syntax"
	"github.com/you-not-fish/typycheck/internal/types"
)

// stmt infers the variable records produced by a single statement.
func (c *Checker) stmt(s syntax.Stmt) ([]*types.Var, *TypeError) {
	switch s := s.(type) {
	case *syntax.AssignStmt:
		return c.assignStmt(s)

	case *syntax.AnnAssignStmt:
		return c.annAssignStmt(s)

	case *syntax.OtherStmt:
		// Not inspected

	default:
		return nil, c.invalidAST(s, "unexpected statement %T", s)
	}
	return nil, nil
}

// assignStmt handles t1 = t2 = value. Every plain name target gets its
// own record carrying the value's set; other targets are skipped.
func (c *Checker) assignStmt(s *syntax.AssignStmt) ([]*types.Var, *TypeError) {
	value := c.expr(s.Value)

	var vars []*types.Var
	for _, target := range s.Targets {
		name, ok := target.(*syntax.Name)
		if !ok {
			continue
		}
		if value.Len() == 0 {
			if c.conf.Permissive {
				continue
			}
			return nil, c.errorf(name.Pos(), CannotInfer, name.Value,
				"cannot infer type of value assigned to '%s'", name.Value)
		}
		v := types.NewVar(name.Pos(), name.Value, value)
		c.recordDef(name, v)
		vars = append(vars, v)
	}
	return vars, nil
}

// annAssignStmt handles target: annotation = value. Every type of the value
// must be assignable to the annotation; the record carries the annotation's set.
func (c *Checker) annAssignStmt(s *syntax.AnnAssignStmt) ([]*types.Var, *TypeError) {
	declared, err := c.typExpr(s.Annotation)
	if err != nil {
		return nil, err
	}

	name, _ := s.Target.(*syntax.Name)
	label := ""
	if name != nil {
		label = name.Value
	}

	if s.Value == nil {
		return nil, c.errorf(s.Pos(), MissingInitializer, label, "Variable must have a value")
	}
	value := c.expr(s.Value)

	if declared.Len() == 0 {
		// Permissive mode and nothing usable in the annotation.
		declared = value
	} else if !value.AssignableTo(declared) {
		e := c.errorf(s.Pos(), AnnotationMismatch, label, "Value type does not match annotation")
		e.Expected, e.Got = declared, value
		return nil, e
	}

	if name == nil || declared.Len() == 0 {
		return nil, nil
	}
	v := types.NewVar(name.Pos(), name.Value, declared)
	c.recordDef(name, v)
	return []*types.Var{v}, nil
}
