package types

import "github.com/you-not-fish/typycheck/internal/syntax"

// Var is a variable record: a name and the set of types admissible for it.
type Var struct {
	name  string
	types *TypeSet
	pos   syntax.Pos // first occurrence
}

// NewVar creates a variable record. The set is copied.
func NewVar(pos syntax.Pos, name string, types *TypeSet) *Var {
	return &Var{name: name, types: types.Clone(), pos: pos}
}

// Name returns the variable name.
func (v *Var) Name() string { return v.name }

// Types returns the admissible type set. Callers must not modify it.
func (v *Var) Types() *TypeSet { return v.types }

// Pos returns the position of the occurrence that produced the record.
func (v *Var) Pos() syntax.Pos { return v.pos }

// Equal reports whether v and o have the same name and type set.
func (v *Var) Equal(o *Var) bool {
	return v.name == o.name && v.types.Equal(o.types)
}

// String returns "name: t1 | t2".
func (v *Var) String() string {
	return v.name + ": " + v.types.String()
}

// The records below are reserved for module, class and function tables.
// No checking logic populates them yet; a Context keeps them empty.

// Function describes a function signature.
type Function struct {
	Name       string
	Args       []Type
	MappedArgs map[string]Type
	ReturnType *TypeSet
}

// Class describes a class with its methods and attributes.
type Class struct {
	Name       string
	Methods    []*Function
	Attributes []*Var
}

// Module describes an imported module.
type Module struct {
	Name      string
	Classes   []*Class
	Functions []*Function
	Variables []*Var
}
