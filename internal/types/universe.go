package types

import "sort"

// universe maps the builtin type names accepted in annotations to their types.
var universe = map[string]Type{
	"int":    Typ[Int],
	"float":  Typ[Float],
	"str":    Typ[Str],
	"bool":   Typ[Bool],
	"bytes":  Typ[Bytes],
	"object": Typ[Object],
}

// LookupBuiltin returns the type named by a builtin annotation token.
func LookupBuiltin(name string) (Type, bool) {
	t, ok := universe[name]
	return t, ok
}

// BuiltinNames returns the builtin annotation tokens, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(universe))
	for name := range universe {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
