package decl

import "sharpc/internal/source"

// ExprKind enumerates expression kinds.
type ExprKind uint8

const (
	// ExprLiteral represents a constant literal.
	ExprLiteral ExprKind = iota + 1
	// ExprName represents a simple name resolved to a local, parameter or member.
	ExprName
	// ExprThis represents the receiver.
	ExprThis
	// ExprMemberAccess represents target.member.
	ExprMemberAccess
	// ExprInvoke represents a method or delegate call.
	ExprInvoke
	// ExprBinary represents binary operators.
	ExprBinary
	// ExprUnary represents prefix and postfix unary operators.
	ExprUnary
	// ExprCast represents an explicit conversion to Expr.Type.
	ExprCast
	// ExprNew represents object creation of Expr.Type.
	ExprNew
	// ExprIndex represents element access.
	ExprIndex
	// ExprConditional represents cond ? a : b.
	ExprConditional
)

// String returns a human-readable name for the expression kind.
func (k ExprKind) String() string {
	switch k {
	case ExprLiteral:
		return "Literal"
	case ExprName:
		return "Name"
	case ExprThis:
		return "This"
	case ExprMemberAccess:
		return "MemberAccess"
	case ExprInvoke:
		return "Invoke"
	case ExprBinary:
		return "Binary"
	case ExprUnary:
		return "Unary"
	case ExprCast:
		return "Cast"
	case ExprNew:
		return "New"
	case ExprIndex:
		return "Index"
	case ExprConditional:
		return "Conditional"
	default:
		return "Unknown"
	}
}

// Expr represents a lowered expression. Type is the static type resolved by
// the analyzer; nothing downstream infers types.
type Expr struct {
	Kind ExprKind
	Type Typing
	Span source.Span
	Data ExprData
}

// ExprData is the interface for expression-specific data.
type ExprData interface {
	exprData()
}

// SymbolKind is what a name or member access resolved to.
type SymbolKind uint8

const (
	SymUnknown SymbolKind = iota
	SymLocal
	SymParam
	SymField
	SymProperty
	SymMethod
	SymType
	SymEnumMember
)

// String returns a human-readable name for the symbol kind.
func (k SymbolKind) String() string {
	switch k {
	case SymLocal:
		return "local"
	case SymParam:
		return "param"
	case SymField:
		return "field"
	case SymProperty:
		return "property"
	case SymMethod:
		return "method"
	case SymType:
		return "type"
	case SymEnumMember:
		return "enum-member"
	default:
		return "unknown"
	}
}

// Symbol is the resolved target of a name.
type Symbol struct {
	Kind     SymbolKind
	FullName string // full name for members and types, empty for locals
	Static   bool
}

// LiteralData holds data for ExprLiteral.
type LiteralData struct {
	Value Constant
}

func (LiteralData) exprData() {}

// NameData holds data for ExprName.
type NameData struct {
	Name   string
	Symbol Symbol
}

func (NameData) exprData() {}

// ThisData holds data for ExprThis.
type ThisData struct{}

func (ThisData) exprData() {}

// MemberAccessData holds data for ExprMemberAccess.
type MemberAccessData struct {
	Target *Expr
	Member string
	Symbol Symbol
}

func (MemberAccessData) exprData() {}

// InvokeData holds data for ExprInvoke.
type InvokeData struct {
	Callee   *Expr
	Args     []*Expr
	Delegate bool // callee is a delegate value, not a method group
}

func (InvokeData) exprData() {}

// BinaryData holds data for ExprBinary.
type BinaryData struct {
	Op    string
	Left  *Expr
	Right *Expr
}

func (BinaryData) exprData() {}

// UnaryData holds data for ExprUnary.
type UnaryData struct {
	Op      string
	Operand *Expr
	Postfix bool
}

func (UnaryData) exprData() {}

// CastData holds data for ExprCast.
type CastData struct {
	Value *Expr
}

func (CastData) exprData() {}

// NewData holds data for ExprNew.
type NewData struct {
	Args []*Expr
}

func (NewData) exprData() {}

// IndexData holds data for ExprIndex.
type IndexData struct {
	Target *Expr
	Index  *Expr
}

func (IndexData) exprData() {}

// ConditionalData holds data for ExprConditional.
type ConditionalData struct {
	Cond *Expr
	Then *Expr
	Else *Expr
}

func (ConditionalData) exprData() {}
