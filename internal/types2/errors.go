// Package types2 infers variable types from Python assignments and checks
// them against a flat symbol table, stopping at the first conflict.
package types2

import (
	"fmt"

	"github.com/you-not-fish/typycheck/internal/syntax"
	"github.com/you-not-fish/typycheck/internal/types"
)

// ErrorKind classifies a TypeError.
type ErrorKind int

const (
	// TypeMismatch: a name was reassigned with a type outside its recorded set.
	TypeMismatch ErrorKind = iota
	// AnnotationMismatch: an annotated value has a type outside the annotation.
	AnnotationMismatch
	// MissingInitializer: an annotated assignment has no value.
	MissingInitializer
	// CannotInfer: no type could be inferred for an assigned value.
	CannotInfer
	// UnknownAnnotation: an annotation names no known type.
	UnknownAnnotation
	// InvalidAST: the tree contains a node the checker cannot handle.
	InvalidAST
)

var errorKindNames = [...]string{
	TypeMismatch:       "type mismatch",
	AnnotationMismatch: "annotation mismatch",
	MissingInitializer: "missing initializer",
	CannotInfer:        "cannot infer",
	UnknownAnnotation:  "unknown annotation",
	InvalidAST:         "invalid AST",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", k)
}

// TypeError represents a type checking error.
type TypeError struct {
	Pos  syntax.Pos
	Kind ErrorKind
	Name string // offending variable, if any
	Msg  string

	// Expected and Got are set for TypeMismatch and AnnotationMismatch.
	Expected *types.TypeSet
	Got      *types.TypeSet

	Err error // underlying cause, e.g. *types.MismatchError
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	if !e.Pos.IsValid() {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// Unwrap returns the underlying cause.
func (e *TypeError) Unwrap() error {
	return e.Err
}

// ErrorHandler is called with the error that stops a check.
type ErrorHandler func(pos syntax.Pos, msg string)

// errorf builds a TypeError at pos.
func (c *Checker) errorf(pos syntax.Pos, kind ErrorKind, name string, format string, args ...interface{}) *TypeError {
	return &TypeError{Pos: pos, Kind: kind, Name: name, Msg: fmt.Sprintf(format, args...)}
}

// invalidAST reports a node outside the closed statement set.
func (c *Checker) invalidAST(n syntax.Node, format string, args ...interface{}) *TypeError {
	return c.errorf(n.Pos(), InvalidAST, "", "invalid AST: "+format, args...)
}

// report records err as the error that ends the pass.
func (c *Checker) report(err *TypeError) {
	if c.first != nil {
		return
	}
	c.first = err
	if c.conf.Error != nil {
		c.conf.Error(err.Pos, err.Msg)
	}
}
