package types

import "strings"

// List represents List[E]: a list whose elements were seen with the types
// in E.
type List struct {
	typ
	elem *TypeSet
}

// NewList creates a list type over the given element types.
// An empty element set is recorded as {object}.
func NewList(elem *TypeSet) *List {
	if elem.Len() == 0 {
		elem = NewTypeSet(Typ[Object])
	}
	return &List{elem: elem.Clone()}
}

// Elem returns the element type set.
func (l *List) Elem() *TypeSet {
	return l.elem
}

// String implements Type.
func (l *List) String() string {
	return "List[" + l.elem.String() + "]"
}

func (l *List) rank() int { return rankList }

// Tuple represents Tuple[A, B] with one type set per position, or the
// variable-length Tuple[E, ...] whose single set covers every position.
type Tuple struct {
	typ
	elems    []*TypeSet
	variadic bool
}

// NewTuple creates a tuple type. Positions with an empty set are recorded
// as {object}.
func NewTuple(elems ...*TypeSet) *Tuple {
	t := &Tuple{elems: make([]*TypeSet, len(elems))}
	for i, e := range elems {
		if e.Len() == 0 {
			e = NewTypeSet(Typ[Object])
		}
		t.elems[i] = e.Clone()
	}
	return t
}

// NewVariadicTuple creates Tuple[elem, ...]. An empty element set is
// recorded as {object}.
func NewVariadicTuple(elem *TypeSet) *Tuple {
	t := NewTuple(elem)
	t.variadic = true
	return t
}

// Variadic reports whether t has no fixed arity.
func (t *Tuple) Variadic() bool {
	return t.variadic
}

// Len returns the tuple arity, or 1 for a variadic tuple.
func (t *Tuple) Len() int {
	return len(t.elems)
}

// At returns the type set of position i.
func (t *Tuple) At(i int) *TypeSet {
	return t.elems[i]
}

// String implements Type.
func (t *Tuple) String() string {
	if len(t.elems) == 0 {
		return "Tuple[()]"
	}
	var buf strings.Builder
	buf.WriteString("Tuple[")
	for i, e := range t.elems {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(e.String())
	}
	if t.variadic {
		buf.WriteString(", ...")
	}
	buf.WriteString("]")
	return buf.String()
}

func (t *Tuple) rank() int { return rankTuple }
