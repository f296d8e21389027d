package types2

import (
	"errors"

	"github.com/you-not-fish/typycheck/internal/syntax"
	"github.com/you-not-fish/typycheck/internal/types"
)

// Checker is the type checker for one pass over one file.
type Checker struct {
	conf     *Config
	info     *Info
	filename string

	// Symbol table owned by this pass.
	ctx *types.Context

	first *TypeError // error that stopped the pass
}

// checkFile runs every statement through inference and folds the
// resulting records into the context, stopping at the first error.
func (c *Checker) checkFile(file *syntax.File) {
	if file == nil {
		return
	}
	for _, s := range file.Stmts {
		vars, err := c.stmt(s)
		if err != nil {
			c.report(err)
			return
		}
		for _, v := range vars {
			if err := c.ctx.Insert(v); err != nil {
				c.report(c.insertError(v, err))
				return
			}
		}
	}
}

// insertError converts a symbol table rejection into a TypeError.
func (c *Checker) insertError(v *types.Var, err error) *TypeError {
	var mismatch *types.MismatchError
	if errors.As(err, &mismatch) {
		return &TypeError{
			Pos:      v.Pos(),
			Kind:     TypeMismatch,
			Name:     mismatch.Name,
			Msg:      mismatch.Error(),
			Expected: mismatch.Expected,
			Got:      mismatch.Got,
			Err:      mismatch,
		}
	}
	return &TypeError{Pos: v.Pos(), Kind: CannotInfer, Name: v.Name(), Msg: err.Error(), Err: err}
}

// recordTypes records the inferred set for an expression.
func (c *Checker) recordTypes(e syntax.Expr, set *types.TypeSet) {
	if c.info != nil && e != nil {
		c.info.Types[e] = set
	}
}

// recordDef records the variable produced for a target name.
func (c *Checker) recordDef(name *syntax.Name, v *types.Var) {
	if c.info != nil {
		c.info.Defs[name] = v
	}
}
