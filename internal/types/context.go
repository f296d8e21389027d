package types

import (
	"fmt"
	"slices"
	"strings"
)

// MismatchError reports a variable recorded with one type set and seen
// again with a type outside it.
type MismatchError struct {
	Name     string
	Expected *TypeSet // recorded set
	Got      *TypeSet // newly observed set
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("Variable '%s' type mismatch. Expected: %s, got: %s", e.Name, e.Expected, e.Got)
}

// Context is the symbol table of one checking pass: variable records
// sorted by name with unique names.
//
// Lifecycle: created empty per pass, mutated only by Insert.
type Context struct {
	vars []*Var // sorted by name

	// Reserved; nothing populates these yet.
	modules   []*Module
	classes   []*Class
	functions []*Function
}

// NewContext returns an empty Context.
func NewContext() *Context {
	return &Context{}
}

// search binary-searches vars for name. It returns the index of the match,
// or the insertion point that keeps vars sorted, and whether it matched.
func (c *Context) search(name string) (int, bool) {
	lo, hi := 0, len(c.vars)
	for lo < hi {
		mid := lo + (hi-lo)/2
		switch probe := c.vars[mid].name; {
		case name < probe:
			hi = mid
		case name > probe:
			lo = mid + 1
		default:
			return mid, true
		}
	}
	return lo, false
}

// Lookup returns the record named name, or nil.
func (c *Context) Lookup(name string) *Var {
	if i, ok := c.search(name); ok {
		return c.vars[i]
	}
	return nil
}

// Exists reports whether a record named v.Name() exists and accepts v.
// A record accepts v when its type set equals v's or every type of v is
// assignable to one of its members. A record that does not accept v yields a *MismatchError.
// The recorded set is never changed.
func (c *Context) Exists(v *Var) (bool, error) {
	if len(c.vars) == 0 {
		return false, nil
	}
	i, ok := c.search(v.name)
	if !ok {
		return false, nil
	}
	stored := c.vars[i]
	if stored.types.Equal(v.types) {
		return true, nil
	}
	if !v.types.AssignableTo(stored.types) {
		return false, &MismatchError{Name: v.name, Expected: stored.types, Got: v.types}
	}
	return true, nil
}

// Insert adds v unless an accepting record already exists, keeping the
// table sorted. A mismatch is returned unchanged and leaves the table as
// it was.
func (c *Context) Insert(v *Var) error {
	if v.types.Len() == 0 {
		return fmt.Errorf("variable '%s' has no admissible type", v.name)
	}
	found, err := c.Exists(v)
	if err != nil {
		return err
	}
	if found {
		return nil
	}
	i, _ := c.search(v.name)
	c.vars = slices.Insert(c.vars, i, v)
	return nil
}

// Len returns the number of variable records.
func (c *Context) Len() int {
	return len(c.vars)
}

// Vars returns the records sorted by name.
func (c *Context) Vars() []*Var {
	return slices.Clone(c.vars)
}

// Names returns the variable names in sorted order.
func (c *Context) Names() []string {
	names := make([]string, len(c.vars))
	for i, v := range c.vars {
		names[i] = v.name
	}
	return names
}

// Modules returns the reserved module table.
func (c *Context) Modules() []*Module { return c.modules }

// Classes returns the reserved class table.
func (c *Context) Classes() []*Class { return c.classes }

// Functions returns the reserved function table.
func (c *Context) Functions() []*Function { return c.functions }

// String returns a string representation of the context for debugging.
func (c *Context) String() string {
	var buf strings.Builder
	buf.WriteString("context {\n")
	for _, v := range c.vars {
		fmt.Fprintf(&buf, "  %s\n", v)
	}
	buf.WriteString("}\n")
	return buf.String()
}
