// Package lower turns analyzer units into declaration fragments: one
// decl.TypeDecl per type node, with member bodies lowered to the agnostic
// statement and expression variants.
package lower

import (
	"math"
	"strings"

	"fortio.org/safecast"

	"sharpc/internal/analyzer"
	"sharpc/internal/decl"
	"sharpc/internal/diag"
	"sharpc/internal/names"
	"sharpc/internal/source"
)

// Result is the output of lowering one unit.
type Result struct {
	Unit      string
	Fragments []*decl.TypeDecl // discovery order, nested types after their outer type
	Errors    []*StructureError
}

// Unit lowers every type declaration in u. Member-scoped failures are
// reported to rep and the offending member is dropped.
func Unit(u *analyzer.Unit, file source.FileID, rep diag.Reporter) *Result {
	l := &lowerer{unit: u, file: file, rep: rep}
	for _, n := range u.Nodes {
		l.lowerTop(n, nil)
	}
	return &Result{Unit: u.Path, Fragments: l.out, Errors: l.errs}
}

type lowerer struct {
	unit *analyzer.Unit
	file source.FileID
	rep  diag.Reporter
	out  []*decl.TypeDecl
	errs []*StructureError

	// full name of the member being lowered, for diagnostics
	member string
}

func (l *lowerer) span(sp analyzer.Span) source.Span {
	return source.Span{File: l.file, Start: sp.Start, End: sp.End}
}

func (l *lowerer) origin(n *analyzer.Node) decl.Origin {
	return decl.Origin{Unit: l.unit.Path, Offset: n.Span.Start}
}

func (l *lowerer) lowerTop(n *analyzer.Node, scope []string) {
	if n == nil {
		return
	}
	switch {
	case n.Kind == analyzer.KindNamespace:
		inner := append(append([]string(nil), scope...), splitDotted(n.Name)...)
		for _, c := range n.Children {
			l.lowerTop(c, inner)
		}
	case n.Kind.IsTypeDecl():
		l.lowerType(n, scope, "")
	default:
		l.member = names.FullName(append(append([]string(nil), scope...), n.Name)...)
		l.report(l.unsupported("declaration", n))
		l.member = ""
	}
}

func (l *lowerer) lowerType(n *analyzer.Node, scope []string, outer string) {
	path := n.Path
	if len(path) == 0 {
		path = append(append([]string(nil), scope...), n.Name)
	}
	full := names.FullName(path...)
	td := decl.NewTypeDecl(categoryOf(n.Kind), l.identity(n, full), l.origin(n))
	td.IsGeneric = n.Generic
	td.Outer = outer
	l.out = append(l.out, td)

	var nextEnum enumCursor
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		if c.Kind.IsTypeDecl() {
			l.lowerType(c, path, full)
			continue
		}
		l.member = memberFullName(full, c)
		var (
			m   decl.Member
			err *StructureError
		)
		switch c.Kind {
		case analyzer.KindEnumMember:
			m, err = l.lowerEnumMember(td, c, &nextEnum)
		case analyzer.KindField:
			m, err = l.lowerField(c)
		case analyzer.KindProperty:
			m, err = l.lowerProperty(c)
		case analyzer.KindMethod:
			m, err = l.lowerMethod(c)
		default:
			err = l.unsupported("member", c)
		}
		if err != nil {
			l.report(err)
		} else {
			td.Members = append(td.Members, m)
		}
		l.member = ""
	}
}

func (l *lowerer) identity(n *analyzer.Node, full string) decl.Identity {
	id := decl.Identity{
		Name:     n.Name,
		FullName: full,
		FlatName: names.Flatten(full),
		Span:     l.span(n.Span),
	}
	for _, kw := range n.Modifiers {
		if mod, ok := decl.ParseModifier(kw); ok {
			id.Modifiers |= mod
		}
	}
	for _, a := range n.Attributes {
		id.Attributes = append(id.Attributes, decl.Attribute{Name: lastSegment(a), FullName: a})
	}
	return id
}

// enumCursor is the value the next implicit enumerator takes. exhausted is
// set after an enumerator equal to MaxInt64.
type enumCursor struct {
	next      int64
	exhausted bool
}

func (l *lowerer) lowerEnumMember(td *decl.TypeDecl, n *analyzer.Node, cur *enumCursor) (decl.Member, *StructureError) {
	var init *decl.Constant
	if n.Const != nil {
		c, err := l.constant(n, n.Const)
		if err != nil {
			return decl.Member{}, err
		}
		init = c
	} else {
		if cur.exhausted {
			return decl.Member{}, l.malformed(n, "implicit enum value overflows int64")
		}
		init = &decl.Constant{Kind: decl.ConstInt, Int: cur.next}
	}
	var value int64
	switch init.Kind {
	case decl.ConstInt:
		value = init.Int
	case decl.ConstUint:
		v, err := safecast.Conv[int64](init.Uint)
		if err != nil {
			return decl.Member{}, l.malformed(n, "enum value %d overflows int64", init.Uint)
		}
		value = v
	default:
		return decl.Member{}, l.malformed(n, "enum value must be integral, got %s", init.Kind)
	}
	cur.exhausted = value == math.MaxInt64
	if !cur.exhausted {
		cur.next = value + 1
	}
	id := l.identity(n, l.member)
	id.Modifiers |= decl.ModConst | decl.ModPublic
	return decl.NewField(&decl.FieldData{
		Identity: id,
		Typing: decl.Typing{
			TypeName:     td.Name,
			TypeFullName: td.FullName,
			TypeFlatName: td.FlatName,
			IsValueType:  true,
			Category:     decl.CategoryEnum,
		},
		Init: init,
	}, l.origin(n)), nil
}

func (l *lowerer) lowerField(n *analyzer.Node) (decl.Member, *StructureError) {
	if n.Type == nil {
		return decl.Member{}, l.malformed(n, "field %s has no resolved type", n.Name)
	}
	data := &decl.FieldData{Identity: l.identity(n, l.member), Typing: typing(n.Type)}
	if n.Const != nil {
		c, err := l.constant(n, n.Const)
		if err != nil {
			return decl.Member{}, err
		}
		data.Init = c
	}
	return decl.NewField(data, l.origin(n)), nil
}

func (l *lowerer) lowerProperty(n *analyzer.Node) (decl.Member, *StructureError) {
	if n.Type == nil {
		return decl.Member{}, l.malformed(n, "property %s has no resolved type", n.Name)
	}
	data := &decl.PropertyData{Identity: l.identity(n, l.member), Typing: typing(n.Type)}
	for _, acc := range n.Children {
		if acc == nil {
			continue
		}
		if acc.Kind != analyzer.KindAccessor {
			return decl.Member{}, l.malformed(acc, "property child must be an accessor")
		}
		switch acc.Keyword {
		case "get":
			if data.HasGet {
				return decl.Member{}, l.malformed(acc, "duplicate get accessor")
			}
			data.HasGet = true
			body, err := l.lowerBody(acc.Body)
			if err != nil {
				return decl.Member{}, err
			}
			data.Get = body
		case "set":
			if data.HasSet {
				return decl.Member{}, l.malformed(acc, "duplicate set accessor")
			}
			data.HasSet = true
			body, err := l.lowerBody(acc.Body)
			if err != nil {
				return decl.Member{}, err
			}
			data.Set = body
		default:
			return decl.Member{}, l.unsupportedAccessor(acc)
		}
	}
	if n.Const != nil {
		c, err := l.constant(n, n.Const)
		if err != nil {
			return decl.Member{}, err
		}
		data.Init = c
	}
	return decl.NewProperty(data, l.origin(n)), nil
}

func (l *lowerer) lowerMethod(n *analyzer.Node) (decl.Member, *StructureError) {
	data := &decl.MethodData{Identity: l.identity(n, l.member)}
	if n.Type != nil {
		data.Result = typing(n.Type)
	}
	for _, p := range n.Params {
		if p == nil || p.Kind != analyzer.KindParameter {
			return decl.Member{}, l.malformed(p, "method parameter expected")
		}
		if p.Type == nil {
			return decl.Member{}, l.malformed(p, "parameter %s has no resolved type", p.Name)
		}
		data.Params = append(data.Params, decl.Param{Name: p.Name, Typing: typing(p.Type)})
	}
	body, err := l.lowerBody(n.Body)
	if err != nil {
		return decl.Member{}, err
	}
	data.Body = body
	return decl.NewMethod(data, l.origin(n)), nil
}

func (l *lowerer) constant(n *analyzer.Node, c *analyzer.Constant) (*decl.Constant, *StructureError) {
	out := &decl.Constant{}
	switch c.Kind {
	case "int":
		out.Kind, out.Int = decl.ConstInt, c.Int
	case "uint":
		out.Kind, out.Uint = decl.ConstUint, c.Uint
	case "float":
		out.Kind, out.Float = decl.ConstFloat, c.Float
	case "bool":
		out.Kind, out.Bool = decl.ConstBool, c.Bool
	case "char":
		out.Kind, out.Char = decl.ConstChar, rune(c.Char)
	case "string":
		out.Kind, out.Str = decl.ConstString, c.Str
	case "null":
		out.Kind = decl.ConstNull
	default:
		return nil, l.malformed(n, "unknown constant kind %q", c.Kind)
	}
	return out, nil
}

func typing(t *analyzer.TypeRef) decl.Typing {
	if t == nil {
		return decl.Typing{}
	}
	full := t.FullName
	if full == "" {
		full = t.Name
	}
	return decl.Typing{
		TypeName:     t.Name,
		TypeFullName: full,
		TypeFlatName: names.Flatten(full),
		IsArray:      t.IsArray,
		IsGeneric:    t.IsGeneric,
		IsValueType:  t.IsValueType,
		Category:     typeCategory(t.Kind),
	}
}

func categoryOf(k analyzer.NodeKind) decl.Category {
	switch k {
	case analyzer.KindEnum:
		return decl.CategoryEnum
	case analyzer.KindInterface:
		return decl.CategoryInterface
	case analyzer.KindStruct:
		return decl.CategoryStruct
	case analyzer.KindClass:
		return decl.CategoryClass
	default:
		return decl.CategoryNone
	}
}

func typeCategory(k analyzer.TypeKind) decl.Category {
	switch k {
	case analyzer.TypeEnum:
		return decl.CategoryEnum
	case analyzer.TypeInterface:
		return decl.CategoryInterface
	case analyzer.TypeStruct:
		return decl.CategoryStruct
	case analyzer.TypeClass:
		return decl.CategoryClass
	default:
		return decl.CategoryNone
	}
}

func memberFullName(owner string, n *analyzer.Node) string {
	if len(n.Path) > 0 {
		return names.FullName(n.Path...)
	}
	return names.Member(owner, n.Name)
}

func splitDotted(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ".")
}

func lastSegment(s string) string {
	return s[strings.LastIndex(s, ".")+1:]
}
