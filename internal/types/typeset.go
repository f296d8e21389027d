package types

import (
	"slices"
	"strings"
)

// TypeSet is a union of admissible types. Members keep their first-seen
// order for display; equality and membership ignore order. Structurally
// identical types are stored once. A nil *TypeSet behaves as empty.
type TypeSet struct {
	types []Type
}

// NewTypeSet returns a set holding ts, duplicates dropped.
func NewTypeSet(ts ...Type) *TypeSet {
	s := &TypeSet{}
	for _, t := range ts {
		s.Add(t)
	}
	return s
}

// Add inserts t unless an identical type is already present.
// It reports whether the set changed.
func (s *TypeSet) Add(t Type) bool {
	if t == nil || s.Contains(t) {
		return false
	}
	s.types = append(s.types, t)
	return true
}

// AddAll inserts every member of o.
func (s *TypeSet) AddAll(o *TypeSet) {
	if o == nil {
		return
	}
	for _, t := range o.types {
		s.Add(t)
	}
}

// Len returns the number of members.
func (s *TypeSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.types)
}

// At returns the i'th member in insertion order.
func (s *TypeSet) At(i int) Type {
	return s.types[i]
}

// Types returns a copy of the members in insertion order.
func (s *TypeSet) Types() []Type {
	if s == nil {
		return nil
	}
	return slices.Clone(s.types)
}

// Sorted returns a copy of the members ordered by Compare.
func (s *TypeSet) Sorted() []Type {
	out := s.Types()
	slices.SortFunc(out, Compare)
	return out
}

// Contains reports whether a type identical to t is a member.
func (s *TypeSet) Contains(t Type) bool {
	if s == nil {
		return false
	}
	for _, m := range s.types {
		if Identical(m, t) {
			return true
		}
	}
	return false
}

// SubsetOf reports whether every member of s is a member of o.
func (s *TypeSet) SubsetOf(o *TypeSet) bool {
	if s == nil {
		return true
	}
	for _, t := range s.types {
		if !o.Contains(t) {
			return false
		}
	}
	return true
}

// AssignableTo reports whether every member of s is assignable to some
// member of o. Without variadic tuples in o it is SubsetOf.
func (s *TypeSet) AssignableTo(o *TypeSet) bool {
	if s == nil {
		return true
	}
	for _, t := range s.types {
		if !o.accepts(t) {
			return false
		}
	}
	return true
}

func (s *TypeSet) accepts(t Type) bool {
	if s == nil {
		return false
	}
	for _, m := range s.types {
		if Assignable(t, m) {
			return true
		}
	}
	return false
}

// Equal reports whether s and o hold the same members.
func (s *TypeSet) Equal(o *TypeSet) bool {
	return s.Len() == o.Len() && s.SubsetOf(o)
}

// Clone returns an independent copy of s.
func (s *TypeSet) Clone() *TypeSet {
	return &TypeSet{types: s.Types()}
}

// Strings returns the display token of each member in insertion order.
func (s *TypeSet) Strings() []string {
	out := make([]string, s.Len())
	for i := range out {
		out[i] = s.types[i].String()
	}
	return out
}

// String renders the set as its members' tokens joined by " | ".
func (s *TypeSet) String() string {
	return strings.Join(s.Strings(), " | ")
}
