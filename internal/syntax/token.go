package syntax

import "fmt"

// Operator identifies the operator of a BinaryOp or UnaryOp node.
type Operator uint

const (
	_ Operator = iota

	// Binary arithmetic
	Add      // +
	Sub      // -
	Mul      // *
	MatMul   // @
	Div      // /
	FloorDiv // //
	Mod      // %
	Pow      // **

	// Binary bitwise
	LShift // <<
	RShift // >>
	BitOr  // |
	BitXor // ^
	BitAnd // &

	// Unary
	UAdd   // +x
	USub   // -x
	Invert // ~x
	Not    // not x
)

var operatorNames = [...]string{
	Add:      "+",
	Sub:      "-",
	Mul:      "*",
	MatMul:   "@",
	Div:      "/",
	FloorDiv: "//",
	Mod:      "%",
	Pow:      "**",
	LShift:   "<<",
	RShift:   ">>",
	BitOr:    "|",
	BitXor:   "^",
	BitAnd:   "&",
	UAdd:     "+",
	USub:     "-",
	Invert:   "~",
	Not:      "not",
}

// String returns the operator's source spelling.
func (op Operator) String() string {
	if int(op) < len(operatorNames) && operatorNames[op] != "" {
		return operatorNames[op]
	}
	return fmt.Sprintf("Operator(%d)", op)
}

// binaryOperators maps source spellings to binary operators.
var binaryOperators = map[string]Operator{
	"+":  Add,
	"-":  Sub,
	"*":  Mul,
	"@":  MatMul,
	"/":  Div,
	"//": FloorDiv,
	"%":  Mod,
	"**": Pow,
	"<<": LShift,
	">>": RShift,
	"|":  BitOr,
	"^":  BitXor,
	"&":  BitAnd,
}

// unaryOperators maps source spellings to unary operators.
var unaryOperators = map[string]Operator{
	"+":   UAdd,
	"-":   USub,
	"~":   Invert,
	"not": Not,
}

// LookupBinary returns the binary operator spelled s.
func LookupBinary(s string) (Operator, bool) {
	op, ok := binaryOperators[s]
	return op, ok
}

// LookupUnary returns the unary operator spelled s.
func LookupUnary(s string) (Operator, bool) {
	op, ok := unaryOperators[s]
	return op, ok
}

// ConstKind describes the syntactic class of a Constant.
type ConstKind uint

const (
	IntConst ConstKind = iota
	FloatConst
	ComplexConst
	StrConst
	BytesConst
	BoolConst
	NoneConst
	EllipsisConst
)

var constKindNames = [...]string{
	IntConst:      "int",
	FloatConst:    "float",
	ComplexConst:  "complex",
	StrConst:      "str",
	BytesConst:    "bytes",
	BoolConst:     "bool",
	NoneConst:     "None",
	EllipsisConst: "Ellipsis",
}

func (k ConstKind) String() string {
	if int(k) < len(constKindNames) {
		return constKindNames[k]
	}
	return fmt.Sprintf("ConstKind(%d)", k)
}
