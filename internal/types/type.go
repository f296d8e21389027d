// Package types implements the value-type model, type sets, variable records
// and the flat symbol table used while checking one Python file.
package types

// Type is the interface implemented by all value types.
// The set of implementations is closed: *Basic, *List and *Tuple.
type Type interface {
	// String returns the display token used in diagnostics.
	String() string

	// rank returns the position of the type's variant in the total order.
	rank() int

	// aType is a marker method to restrict implementations to this package.
	aType()
}

// typ is a base struct for all type implementations.
type typ struct{}

func (typ) aType() {}

// Variant ranks, in the fixed order used by Compare.
const (
	rankInt = iota
	rankFloat
	rankStr
	rankBool
	rankNone
	rankBytes
	rankObject
	rankList
	rankTuple
)
