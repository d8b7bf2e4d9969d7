package analyzer

// NodeKind is the syntactic category of a node.
type NodeKind string

// Declaration kinds.
const (
	KindNamespace  NodeKind = "namespace"
	KindClass      NodeKind = "class"
	KindStruct     NodeKind = "struct"
	KindInterface  NodeKind = "interface"
	KindEnum       NodeKind = "enum"
	KindEnumMember NodeKind = "enum_member"
	KindField      NodeKind = "field"
	KindProperty   NodeKind = "property"
	KindAccessor   NodeKind = "accessor"
	KindMethod     NodeKind = "method"
	KindParameter  NodeKind = "parameter"
	KindDelegate   NodeKind = "delegate"
)

// Statement kinds.
const (
	KindBlock    NodeKind = "block"
	KindReturn   NodeKind = "return"
	KindAssign   NodeKind = "assign"
	KindIf       NodeKind = "if"
	KindWhile    NodeKind = "while"
	KindDo       NodeKind = "do"
	KindFor      NodeKind = "for"
	KindExprStmt NodeKind = "expr_stmt"
	KindLocal    NodeKind = "local"
	KindBreak    NodeKind = "break"
	KindContinue NodeKind = "continue"
)

// Expression kinds.
const (
	KindLiteral      NodeKind = "literal"
	KindName         NodeKind = "name"
	KindThis         NodeKind = "this"
	KindMemberAccess NodeKind = "member_access"
	KindInvoke       NodeKind = "invoke"
	KindBinary       NodeKind = "binary"
	KindUnary        NodeKind = "unary"
	KindCast         NodeKind = "cast"
	KindNew          NodeKind = "new"
	KindIndex        NodeKind = "index"
	KindConditional  NodeKind = "conditional"
)

// IsTypeDecl reports whether the kind declares a type.
func (k NodeKind) IsTypeDecl() bool {
	switch k {
	case KindClass, KindStruct, KindInterface, KindEnum:
		return true
	}
	return false
}

// Span is a byte range inside the unit.
type Span struct {
	Start uint32 `msgpack:"s" json:"start"`
	End   uint32 `msgpack:"e" json:"end"`
}

// TypeKind is the resolved category of a type reference.
type TypeKind string

const (
	TypePrimitive TypeKind = "primitive"
	TypeClass     TypeKind = "class"
	TypeStruct    TypeKind = "struct"
	TypeInterface TypeKind = "interface"
	TypeEnum      TypeKind = "enum"
	TypeDelegate  TypeKind = "delegate"
	TypeVoid      TypeKind = "void"
)

// TypeRef is a resolved static type. For arrays Name/FullName describe the
// element type and IsArray is set.
type TypeRef struct {
	Name        string   `msgpack:"name" json:"name"`
	FullName    string   `msgpack:"full,omitempty" json:"full_name,omitempty"`
	Kind        TypeKind `msgpack:"kind,omitempty" json:"kind,omitempty"`
	IsValueType bool     `msgpack:"value,omitempty" json:"is_value_type,omitempty"`
	IsArray     bool     `msgpack:"array,omitempty" json:"is_array,omitempty"`
	IsGeneric   bool     `msgpack:"generic,omitempty" json:"is_generic,omitempty"`
}

// Constant is a folded constant value. Kind is one of
// int, uint, float, bool, char, string, null.
type Constant struct {
	Kind  string  `msgpack:"kind" json:"kind"`
	Int   int64   `msgpack:"i,omitempty" json:"int,omitempty"`
	Uint  uint64  `msgpack:"u,omitempty" json:"uint,omitempty"`
	Float float64 `msgpack:"f,omitempty" json:"float,omitempty"`
	Bool  bool    `msgpack:"b,omitempty" json:"bool,omitempty"`
	Char  int32   `msgpack:"c,omitempty" json:"char,omitempty"`
	Str   string  `msgpack:"str,omitempty" json:"string,omitempty"`
}

// Symbol is the resolved target of a name, member access or invocation.
// Kind is one of local, param, field, property, method, type, enum_member,
// delegate.
type Symbol struct {
	Kind     string `msgpack:"kind" json:"kind"`
	FullName string `msgpack:"full,omitempty" json:"full_name,omitempty"`
	Static   bool   `msgpack:"static,omitempty" json:"static,omitempty"`
}

// Node is one analyzer node. Which slots are populated depends on Kind:
//
//	namespace       Name, Children
//	class/struct/.. Name, Path, Modifiers, Attributes, Generic, Children
//	enum_member     Name, Path, Const
//	field           Name, Path, Modifiers, Type, Const
//	property        Name, Path, Modifiers, Type, Const, Children (accessors)
//	accessor        Keyword, Body (nil for auto accessors)
//	method          Name, Path, Modifiers, Type (result), Params, Body
//	parameter       Name, Type
//	block           Children
//	return          Value
//	assign          Op, Target, Value
//	if              Cond, Then, Else
//	while, do       Cond, Body
//	for             Init, Cond, Post, Body
//	expr_stmt       Value
//	local           Name, Type, Value
//	literal         Type, Const
//	name            Name, Symbol, Type
//	member_access   Target, Name, Symbol, Type
//	invoke          Target (callee), Children (args), Symbol, Type
//	binary          Op, Left, Right, Type
//	unary           Op, Value, Postfix, Type
//	cast, new       Type, Value / Children (args)
//	index           Target, Value, Type
//	conditional     Cond, Then, Else, Type
type Node struct {
	Kind       NodeKind  `msgpack:"k" json:"kind"`
	Name       string    `msgpack:"n,omitempty" json:"name,omitempty"`
	Path       []string  `msgpack:"path,omitempty" json:"path,omitempty"`
	Span       Span      `msgpack:"sp" json:"span"`
	Modifiers  []string  `msgpack:"mods,omitempty" json:"modifiers,omitempty"`
	Attributes []string  `msgpack:"attrs,omitempty" json:"attributes,omitempty"`
	Generic    bool      `msgpack:"generic,omitempty" json:"generic,omitempty"`
	Type       *TypeRef  `msgpack:"t,omitempty" json:"type,omitempty"`
	Const      *Constant `msgpack:"const,omitempty" json:"const,omitempty"`
	Symbol     *Symbol   `msgpack:"sym,omitempty" json:"symbol,omitempty"`
	Keyword    string    `msgpack:"kw,omitempty" json:"keyword,omitempty"`
	Op         string    `msgpack:"op,omitempty" json:"op,omitempty"`
	Postfix    bool      `msgpack:"postfix,omitempty" json:"postfix,omitempty"`

	Children []*Node `msgpack:"ch,omitempty" json:"children,omitempty"`
	Params   []*Node `msgpack:"params,omitempty" json:"params,omitempty"`
	Init     []*Node `msgpack:"init,omitempty" json:"init,omitempty"`
	Post     []*Node `msgpack:"post,omitempty" json:"post,omitempty"`
	Body     *Node   `msgpack:"body,omitempty" json:"body,omitempty"`
	Target   *Node   `msgpack:"target,omitempty" json:"target,omitempty"`
	Value    *Node   `msgpack:"value,omitempty" json:"value,omitempty"`
	Left     *Node   `msgpack:"l,omitempty" json:"left,omitempty"`
	Right    *Node   `msgpack:"r,omitempty" json:"right,omitempty"`
	Cond     *Node   `msgpack:"cond,omitempty" json:"cond,omitempty"`
	Then     *Node   `msgpack:"then,omitempty" json:"then,omitempty"`
	Else     *Node   `msgpack:"else,omitempty" json:"else,omitempty"`
}

// Unit is the analyzer output for one compilation unit.
type Unit struct {
	Path  string  `msgpack:"path" json:"path"`
	Text  string  `msgpack:"text,omitempty" json:"text,omitempty"`
	Nodes []*Node `msgpack:"nodes" json:"nodes"`
}

// Walk visits n and every node below it in pre-order until fn returns false.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, group := range [][]*Node{n.Children, n.Params, n.Init, n.Post} {
		for _, c := range group {
			Walk(c, fn)
		}
	}
	for _, c := range []*Node{n.Body, n.Target, n.Value, n.Left, n.Right, n.Cond, n.Then, n.Else} {
		Walk(c, fn)
	}
}
