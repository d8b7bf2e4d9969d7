package decl

// Category is the fixed kind of a type declaration.
type Category uint8

const (
	// CategoryNone marks a typing that does not refer to a project type.
	CategoryNone Category = iota
	CategoryEnum
	CategoryInterface
	CategoryStruct
	CategoryClass
)

// String returns a human-readable name for the category.
func (c Category) String() string {
	switch c {
	case CategoryNone:
		return "none"
	case CategoryEnum:
		return "enum"
	case CategoryInterface:
		return "interface"
	case CategoryStruct:
		return "struct"
	case CategoryClass:
		return "class"
	default:
		return "unknown"
	}
}

// Aggregate reports whether the category is lowered to a C struct with storage.
func (c Category) Aggregate() bool {
	return c == CategoryStruct || c == CategoryClass
}

// Categories lists the categories in emission order.
var Categories = [...]Category{CategoryEnum, CategoryInterface, CategoryStruct, CategoryClass}

// TypeDecl is a type declaration: either one fragment produced by the lowerer
// or the canonical merged declaration held by the registry.
type TypeDecl struct {
	Identity
	cat         Category
	Members     []Member
	IsValueType bool
	IsGeneric   bool
	// Outer is the full name of the enclosing type for nested declarations.
	Outer  string
	Origin Origin
}

// NewTypeDecl creates a declaration of the given category. The category
// cannot be changed afterwards.
func NewTypeDecl(cat Category, id Identity, origin Origin) *TypeDecl {
	return &TypeDecl{
		Identity:    id,
		cat:         cat,
		IsValueType: cat == CategoryStruct || cat == CategoryEnum,
		Origin:      origin,
	}
}

// Category returns the declaration category.
func (d *TypeDecl) Category() Category {
	if d == nil {
		return CategoryNone
	}
	return d.cat
}

// Partial reports whether the declaration carries the partial modifier.
func (d *TypeDecl) Partial() bool {
	return d != nil && d.Modifiers.Has(ModPartial)
}

// Member looks up a member by simple name.
func (d *TypeDecl) Member(name string) (*Member, bool) {
	if d == nil {
		return nil, false
	}
	for i := range d.Members {
		if d.Members[i].Name() == name {
			return &d.Members[i], true
		}
	}
	return nil, false
}

// Fields returns the storage members (fields and auto-properties).
func (d *TypeDecl) Fields() []*Member {
	if d == nil {
		return nil
	}
	var out []*Member
	for i := range d.Members {
		if d.Members[i].Storage() {
			out = append(out, &d.Members[i])
		}
	}
	return out
}

// Clone returns a copy whose member slice can be mutated independently.
func (d *TypeDecl) Clone() *TypeDecl {
	if d == nil {
		return nil
	}
	cp := *d
	cp.Members = append([]Member(nil), d.Members...)
	cp.Attributes = append([]Attribute(nil), d.Attributes...)
	return &cp
}
