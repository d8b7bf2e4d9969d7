package decl

import (
	"strconv"
)

// ConstKind enumerates constant value kinds.
type ConstKind uint8

const (
	ConstInt ConstKind = iota + 1
	ConstUint
	ConstFloat
	ConstBool
	ConstChar
	ConstString
	ConstNull
)

// String returns a human-readable name for the constant kind.
func (k ConstKind) String() string {
	switch k {
	case ConstInt:
		return "int"
	case ConstUint:
		return "uint"
	case ConstFloat:
		return "float"
	case ConstBool:
		return "bool"
	case ConstChar:
		return "char"
	case ConstString:
		return "string"
	case ConstNull:
		return "null"
	default:
		return "unknown"
	}
}

// Constant is a value already folded by the analyzer.
type Constant struct {
	Kind  ConstKind
	Int   int64
	Uint  uint64
	Float float64
	Bool  bool
	Char  rune
	Str   string
}

// String renders the constant for dumps.
func (c *Constant) String() string {
	if c == nil {
		return "<nil>"
	}
	switch c.Kind {
	case ConstInt:
		return strconv.FormatInt(c.Int, 10)
	case ConstUint:
		return strconv.FormatUint(c.Uint, 10) + "u"
	case ConstFloat:
		return strconv.FormatFloat(c.Float, 'g', -1, 64)
	case ConstBool:
		return strconv.FormatBool(c.Bool)
	case ConstChar:
		return strconv.QuoteRune(c.Char)
	case ConstString:
		return strconv.Quote(c.Str)
	case ConstNull:
		return "null"
	default:
		return "<invalid>"
	}
}
