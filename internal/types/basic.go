package types

// BasicKind describes the kind of basic type.
type BasicKind int

const (
	Invalid BasicKind = iota // invalid type

	Int
	Float
	Str
	Bool
	None
	Bytes
	Object // opaque or unknown value
)

// Basic represents a non-parameterized value type.
type Basic struct {
	typ
	kind BasicKind
	name string
}

// Kind returns the kind of the basic type.
func (b *Basic) Kind() BasicKind {
	return b.kind
}

// Name returns the display token of the basic type.
func (b *Basic) Name() string {
	return b.name
}

// String implements Type.
func (b *Basic) String() string {
	return b.name
}

func (b *Basic) rank() int {
	switch b.kind {
	case Int:
		return rankInt
	case Float:
		return rankFloat
	case Str:
		return rankStr
	case Bool:
		return rankBool
	case None:
		return rankNone
	case Bytes:
		return rankBytes
	}
	return rankObject
}

// Typ holds the predeclared basic types, indexed by BasicKind.
// Typ[Invalid] is nil.
var Typ = []*Basic{
	Invalid: nil,
	Int:     {kind: Int, name: "int"},
	Float:   {kind: Float, name: "float"},
	Str:     {kind: Str, name: "str"},
	Bool:    {kind: Bool, name: "bool"},
	None:    {kind: None, name: "None"},
	Bytes:   {kind: Bytes, name: "bytes"},
	Object:  {kind: Object, name: "object"},
}
