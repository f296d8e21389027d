package types

// Identical reports whether x and y are structurally identical types.
func Identical(x, y Type) bool {
	if x == y {
		return true
	}
	if x == nil || y == nil {
		return false
	}

	switch x := x.(type) {
	case *Basic:
		if y, ok := y.(*Basic); ok {
			return x.kind == y.kind
		}
	case *List:
		if y, ok := y.(*List); ok {
			return x.elem.Equal(y.elem)
		}
	case *Tuple:
		if y, ok := y.(*Tuple); ok {
			return identicalTuples(x, y)
		}
	}
	return false
}

func identicalTuples(x, y *Tuple) bool {
	if x.variadic != y.variadic || len(x.elems) != len(y.elems) {
		return false
	}
	for i := range x.elems {
		if !x.elems[i].Equal(y.elems[i]) {
			return false
		}
	}
	return true
}

// Assignable reports whether a value of type v fits where t is declared:
// the types are identical, or t is a variadic tuple and every position of
// the tuple v fits t's element set.
func Assignable(v, t Type) bool {
	if Identical(v, t) {
		return true
	}
	tt, ok := t.(*Tuple)
	if !ok || !tt.variadic {
		return false
	}
	vt, ok := v.(*Tuple)
	if !ok {
		return false
	}
	for _, e := range vt.elems {
		if !e.AssignableTo(tt.elems[0]) {
			return false
		}
	}
	return true
}

// Compare orders types by a fixed total order: variants rank
// int < float < str < bool < None < bytes < object < List < Tuple, lists
// compare by element set, fixed tuples precede variadic ones, and tuples
// compare by arity, then position by position.
// Compare(x, y) == 0 exactly when Identical(x, y). Structured dumps list
// type sets in this order; it carries no subtyping meaning.
func Compare(x, y Type) int {
	if rx, ry := x.rank(), y.rank(); rx != ry {
		return cmpInt(rx, ry)
	}

	switch x := x.(type) {
	case *List:
		return compareSets(x.elem, y.(*List).elem)
	case *Tuple:
		y := y.(*Tuple)
		if x.variadic != y.variadic {
			if y.variadic {
				return -1
			}
			return 1
		}
		if len(x.elems) != len(y.elems) {
			return cmpInt(len(x.elems), len(y.elems))
		}
		for i := range x.elems {
			if c := compareSets(x.elems[i], y.elems[i]); c != 0 {
				return c
			}
		}
	}
	return 0
}

// compareSets orders type sets lexicographically by their sorted members.
func compareSets(a, b *TypeSet) int {
	as, bs := a.Sorted(), b.Sorted()
	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := Compare(as[i], bs[i]); c != 0 {
			return c
		}
	}
	return cmpInt(len(as), len(bs))
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
