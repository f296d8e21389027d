package types2

import (
	"github.com/you-not-fish/typycheck/internal/syntax"
	"github.com/you-not-fish/typycheck/internal/types"
)

// Config specifies the configuration for type checking.
type Config struct {
	// Error is called once, with the error that stops the check.
	// If nil, the error is only returned.
	Error ErrorHandler

	// Permissive relaxes inference: assignments whose value has no
	// inferable type are skipped, and annotations naming no known type
	// impose no constraint. Otherwise both are errors.
	Permissive bool

	// Aliases maps extra annotation names to builtin type names,
	// e.g. "Integer" -> "int".
	Aliases map[string]string
}

// Info holds the results of type checking.
type Info struct {
	// Types maps each inspected expression to its inferred type set.
	// Annotation expressions map to the declared set.
	Types map[syntax.Expr]*types.TypeSet

	// Defs maps each assignment target name to the record it produced.
	Defs map[*syntax.Name]*types.Var
}

// Check type-checks the statements of file in order.
// It returns the symbol table built so far and the first error, if any.
// Statements after the first error are not examined.
func Check(filename string, file *syntax.File, conf *Config, info *Info) (*types.Context, error) {
	if conf == nil {
		conf = &Config{}
	}

	// Initialize info maps if not provided
	if info != nil {
		if info.Types == nil {
			info.Types = make(map[syntax.Expr]*types.TypeSet)
		}
		if info.Defs == nil {
			info.Defs = make(map[*syntax.Name]*types.Var)
		}
	}

	c := &Checker{
		conf:     conf,
		info:     info,
		filename: filename,
		ctx:      types.NewContext(),
	}

	c.checkFile(file)

	if c.first != nil {
		return c.ctx, c.first
	}
	return c.ctx, nil
}
