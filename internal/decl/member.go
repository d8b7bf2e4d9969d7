package decl

// MemberKind enumerates member variants.
type MemberKind uint8

const (
	// MemberField is typed storage with an optional constant initializer.
	MemberField MemberKind = iota + 1
	// MemberProperty is typed storage plus optional get/set bodies.
	MemberProperty
	// MemberMethod is a signature plus a body.
	MemberMethod
)

// String returns a human-readable name for the member kind.
func (k MemberKind) String() string {
	switch k {
	case MemberField:
		return "field"
	case MemberProperty:
		return "property"
	case MemberMethod:
		return "method"
	default:
		return "unknown"
	}
}

// Member is one member of a type declaration.
type Member struct {
	Kind   MemberKind
	Data   MemberData
	Origin Origin
}

// MemberData is the interface for member-specific payloads.
type MemberData interface {
	memberData()
	ident() *Identity
}

// Typing describes the declared type of a variable-like entity.
type Typing struct {
	TypeName     string
	TypeFullName string
	TypeFlatName string
	IsArray      bool
	IsGeneric    bool
	IsValueType  bool
	// Category of the referenced type when it is declared in the project.
	Category Category
}

// IsVoid reports whether the typing names the void type.
func (t Typing) IsVoid() bool {
	return t.TypeFullName == "System.Void" || t.TypeName == "void" || (t.TypeName == "" && t.TypeFullName == "")
}

// FieldData holds data for MemberField.
type FieldData struct {
	Identity
	Typing
	Init *Constant // nil if none
}

func (*FieldData) memberData()        {}
func (f *FieldData) ident() *Identity { return &f.Identity }

// PropertyData holds data for MemberProperty.
type PropertyData struct {
	Identity
	Typing
	HasGet bool
	HasSet bool
	Get    *Body // nil for auto or abstract accessors
	Set    *Body
	Init   *Constant
}

func (*PropertyData) memberData()        {}
func (p *PropertyData) ident() *Identity { return &p.Identity }

// Auto reports whether the property has no accessor bodies.
func (p *PropertyData) Auto() bool { return p.Get == nil && p.Set == nil }

// Param is a method parameter.
type Param struct {
	Name string
	Typing
}

// MethodData holds data for MemberMethod.
type MethodData struct {
	Identity
	Result Typing
	Params []Param
	Body   *Body // nil for abstract/extern methods
}

func (*MethodData) memberData()        {}
func (m *MethodData) ident() *Identity { return &m.Identity }

// NewField builds a field member.
func NewField(data *FieldData, origin Origin) Member {
	return Member{Kind: MemberField, Data: data, Origin: origin}
}

// NewProperty builds a property member.
func NewProperty(data *PropertyData, origin Origin) Member {
	return Member{Kind: MemberProperty, Data: data, Origin: origin}
}

// NewMethod builds a method member.
func NewMethod(data *MethodData, origin Origin) Member {
	return Member{Kind: MemberMethod, Data: data, Origin: origin}
}

// Ident returns the member identity.
func (m *Member) Ident() *Identity {
	if m == nil || m.Data == nil {
		return &Identity{}
	}
	return m.Data.ident()
}

// Name returns the simple member name.
func (m *Member) Name() string { return m.Ident().Name }

// Static reports whether the member is static or const.
func (m *Member) Static() bool {
	mods := m.Ident().Modifiers
	return mods.Has(ModStatic) || mods.Has(ModConst)
}

// Storage reports whether the member occupies storage in its owner.
func (m *Member) Storage() bool {
	switch m.Kind {
	case MemberField:
		return true
	case MemberProperty:
		p, ok := m.Data.(*PropertyData)
		return ok && p.Auto() && !p.Modifiers.Has(ModAbstract)
	default:
		return false
	}
}

// VarTyping returns the storage typing of a field or property.
func (m *Member) VarTyping() (Typing, bool) {
	switch d := m.Data.(type) {
	case *FieldData:
		return d.Typing, true
	case *PropertyData:
		return d.Typing, true
	default:
		return Typing{}, false
	}
}

// Body is a logical body: one method or accessor. A nil *Body means absent.
type Body struct {
	Stmts []*Stmt
}
