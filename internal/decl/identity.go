package decl

import (
	"strings"

	"sharpc/internal/source"
)

// Modifiers is a set of declaration modifiers.
type Modifiers uint32

const (
	ModPublic Modifiers = 1 << iota
	ModPrivate
	ModProtected
	ModInternal
	ModStatic
	ModAbstract
	ModPartial
	ModReadonly
	ModConst
	ModVirtual
	ModOverride
	ModSealed
	ModExtern
)

var modifierNames = [...]struct {
	mod  Modifiers
	name string
}{
	{ModPublic, "public"},
	{ModPrivate, "private"},
	{ModProtected, "protected"},
	{ModInternal, "internal"},
	{ModStatic, "static"},
	{ModAbstract, "abstract"},
	{ModPartial, "partial"},
	{ModReadonly, "readonly"},
	{ModConst, "const"},
	{ModVirtual, "virtual"},
	{ModOverride, "override"},
	{ModSealed, "sealed"},
	{ModExtern, "extern"},
}

// Has reports whether every flag in f is set.
func (m Modifiers) Has(f Modifiers) bool { return m&f == f }

// String renders modifiers in declaration order, space separated.
func (m Modifiers) String() string {
	var parts []string
	for _, mn := range modifierNames {
		if m.Has(mn.mod) {
			parts = append(parts, mn.name)
		}
	}
	return strings.Join(parts, " ")
}

// ParseModifier maps a source keyword to its flag.
func ParseModifier(s string) (Modifiers, bool) {
	for _, mn := range modifierNames {
		if mn.name == s {
			return mn.mod, true
		}
	}
	return 0, false
}

// Attribute is a resolved annotation reference, e.g. [Serializable].
type Attribute struct {
	Name     string
	FullName string
}

// Identity is the naming data shared by declarations and members.
type Identity struct {
	Name       string
	FullName   string
	FlatName   string
	Modifiers  Modifiers
	Attributes []Attribute
	Span       source.Span
}

// Origin positions a fragment or member in the source of the whole project.
// Ordering by origin is what makes merges independent of feed order.
type Origin struct {
	Unit   string // unit path as given to the driver
	Offset uint32 // byte offset of the declaring node
}

// Before reports whether o sorts strictly before other.
func (o Origin) Before(other Origin) bool {
	if o.Unit != other.Unit {
		return o.Unit < other.Unit
	}
	return o.Offset < other.Offset
}
