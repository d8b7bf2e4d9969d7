package c

import (
	"strings"

	"sharpc/internal/decl"
	"sharpc/internal/names"
	"sharpc/internal/source"
)

// ref is a resolved member reference together with the receiver it is
// accessed through.
type ref struct {
	owner *decl.TypeDecl
	m     *decl.Member
	// recv is the receiver as a C pointer expression; empty for static access.
	recv string
	// value is the receiver spelled for direct field access ("self->", "p.").
	value string
}

func (r *ref) iface() bool { return r.owner.Category() == decl.CategoryInterface }

// computed reports whether reads and writes go through accessor functions.
func (r *ref) computed() bool {
	return r.m.Kind == decl.MemberProperty && (r.iface() || !r.m.Storage())
}

// call spells a call of the owner function full (or interface slot) on r.
func (r *ref) call(full, slot string, args ...string) string {
	if r.iface() {
		return r.recv + "->" + slot + "(" + strings.Join(append([]string{r.recv}, args...), ", ") + ")"
	}
	if r.recv != "" && !r.m.Static() {
		args = append([]string{r.recv}, args...)
	}
	return names.Flatten(full) + "(" + strings.Join(args, ", ") + ")"
}

func (b *body) resolve(full string, sp source.Span) (*decl.TypeDecl, *decl.Member, error) {
	owner, m, ok := b.e.proj.MemberByFullName(full)
	if !ok {
		return nil, nil, &UnknownMemberError{Ref: full, Member: b.member, Span: sp}
	}
	return owner, m, nil
}

func memberSymbol(k decl.SymbolKind) bool {
	return k == decl.SymField || k == decl.SymProperty || k == decl.SymMethod
}

// memberRef resolves x when it names a field, property or method. ok is
// false for every other expression.
func (b *body) memberRef(x *decl.Expr) (*ref, bool, error) {
	switch data := x.Data.(type) {
	case decl.NameData:
		if !memberSymbol(data.Symbol.Kind) {
			return nil, false, nil
		}
		full := data.Symbol.FullName
		if full == "" {
			full = names.Member(b.owner.FullName, data.Name)
		}
		owner, m, err := b.resolve(full, x.Span)
		if err != nil {
			return nil, true, err
		}
		r := &ref{owner: owner, m: m}
		if m.Static() {
			return r, true, nil
		}
		if b.static {
			return nil, true, b.unsupported("instance member "+data.Name+" in static context", x.Span)
		}
		r.recv, r.value = "self", "self->"
		return r, true, nil

	case decl.MemberAccessData:
		if !memberSymbol(data.Symbol.Kind) && data.Symbol.Kind != decl.SymUnknown {
			return nil, false, nil
		}
		full := data.Symbol.FullName
		staticTarget := false
		if tn, ok := data.Target.Data.(decl.NameData); ok && tn.Symbol.Kind == decl.SymType {
			staticTarget = true
			if full == "" {
				full = names.Member(tn.Symbol.FullName, data.Member)
			}
		}
		if full == "" {
			full = names.Member(data.Target.Type.TypeFullName, data.Member)
		}
		owner, m, err := b.resolve(full, x.Span)
		if err != nil {
			return nil, true, err
		}
		r := &ref{owner: owner, m: m}
		if staticTarget || m.Static() {
			return r, true, nil
		}
		if err := b.receiver(r, data.Target); err != nil {
			return nil, true, err
		}
		return r, true, nil
	}
	return nil, false, nil
}

// receiver fills the pointer and value spellings of an instance receiver.
func (b *body) receiver(r *ref, target *decl.Expr) error {
	if _, ok := target.Data.(decl.ThisData); ok {
		if b.static {
			return b.unsupported("this in static context", target.Span)
		}
		r.recv, r.value = "self", "self->"
		return nil
	}
	t, err := b.expr(target)
	if err != nil {
		return err
	}
	if b.e.isPointer(target.Type) {
		r.recv, r.value = t, t+"->"
		return nil
	}
	switch target.Kind {
	case decl.ExprName, decl.ExprMemberAccess, decl.ExprIndex:
	default:
		return b.unsupported("member access on a value temporary", target.Span)
	}
	r.recv, r.value = "&"+t, t+"."
	return nil
}

// read spells a value read of a field or property reference.
func (b *body) read(r *ref, sp source.Span) (string, error) {
	id := r.m.Ident()
	switch {
	case r.m.Kind == decl.MemberMethod:
		return "", b.unsupported("method group "+id.Name+" as a value", sp)
	case r.computed():
		p := r.m.Data.(*decl.PropertyData)
		if !p.HasGet {
			return "", b.unsupported("read of write-only property "+p.Name, sp)
		}
		return r.call(names.Getter(r.owner.FullName, p.Name), "get_"+p.Name), nil
	case r.m.Static():
		return id.FlatName, nil
	default:
		return r.value + id.Name, nil
	}
}

func (b *body) exprs(list []*decl.Expr) ([]string, error) {
	out := make([]string, 0, len(list))
	for _, x := range list {
		s, err := b.expr(x)
		if err != nil {
			return nil, err
		}
		out = append(out, unparen(s))
	}
	return out, nil
}

var unsupportedOps = map[string]string{
	"??": "null-coalescing operator",
	"is": "type test",
	"as": "type conversion",
}

func (b *body) expr(x *decl.Expr) (string, error) {
	if x == nil {
		return "", b.unsupported("missing expression", source.NoSpan)
	}
	switch data := x.Data.(type) {
	case decl.LiteralData:
		s, err := literal(&data.Value, x.Type)
		if err != nil {
			return "", b.unsupported(err.Error(), x.Span)
		}
		if strings.HasPrefix(s, "-") {
			s = "(" + s + ")"
		}
		return s, nil

	case decl.NameData:
		switch data.Symbol.Kind {
		case decl.SymLocal, decl.SymParam:
			return data.Name, nil
		case decl.SymEnumMember:
			return b.enumMember(data.Symbol.FullName, x.Span)
		case decl.SymType:
			return "", b.unsupported("type "+data.Name+" as a value", x.Span)
		case decl.SymUnknown:
			return "", b.unsupported("unresolved name "+data.Name, x.Span)
		}
		r, _, err := b.memberRef(x)
		if err != nil {
			return "", err
		}
		return b.read(r, x.Span)

	case decl.ThisData:
		if b.static {
			return "", b.unsupported("this in static context", x.Span)
		}
		if b.owner.Category() == decl.CategoryStruct {
			return "(*self)", nil
		}
		return "self", nil

	case decl.MemberAccessData:
		if data.Symbol.Kind == decl.SymEnumMember {
			return b.enumMember(data.Symbol.FullName, x.Span)
		}
		r, ok, err := b.memberRef(x)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", b.unsupported("access of "+data.Symbol.Kind.String()+" "+data.Member, x.Span)
		}
		return b.read(r, x.Span)

	case decl.InvokeData:
		return b.invoke(x, data)

	case decl.BinaryData:
		if what, ok := unsupportedOps[data.Op]; ok {
			return "", b.unsupported(what, x.Span)
		}
		if data.Op == "+" && (isString(data.Left.Type) || isString(data.Right.Type)) {
			return "", b.unsupported("string concatenation", x.Span)
		}
		l, err := b.expr(data.Left)
		if err != nil {
			return "", err
		}
		r, err := b.expr(data.Right)
		if err != nil {
			return "", err
		}
		return "(" + l + " " + data.Op + " " + r + ")", nil

	case decl.UnaryData:
		v, err := b.expr(data.Operand)
		if err != nil {
			return "", err
		}
		if data.Postfix {
			return "(" + v + data.Op + ")", nil
		}
		return "(" + data.Op + v + ")", nil

	case decl.CastData:
		t, err := b.e.cType(x.Type, b.member)
		if err != nil {
			return "", err
		}
		v, err := b.expr(data.Value)
		if err != nil {
			return "", err
		}
		return "((" + t + ")" + v + ")", nil

	case decl.NewData:
		return b.creation(x, data)

	case decl.IndexData:
		if !data.Target.Type.IsArray {
			return "", b.unsupported("indexer", x.Span)
		}
		t, err := b.expr(data.Target)
		if err != nil {
			return "", err
		}
		i, err := b.expr(data.Index)
		if err != nil {
			return "", err
		}
		return t + "[" + unparen(i) + "]", nil

	case decl.ConditionalData:
		c, err := b.expr(data.Cond)
		if err != nil {
			return "", err
		}
		t, err := b.expr(data.Then)
		if err != nil {
			return "", err
		}
		f, err := b.expr(data.Else)
		if err != nil {
			return "", err
		}
		return "(" + c + " ? " + t + " : " + f + ")", nil
	}
	return "", b.unsupported(x.Kind.String()+" expression", x.Span)
}

func (b *body) enumMember(full string, sp source.Span) (string, error) {
	_, m, err := b.resolve(full, sp)
	if err != nil {
		return "", err
	}
	return m.Ident().FlatName, nil
}

func (b *body) invoke(x *decl.Expr, data decl.InvokeData) (string, error) {
	if data.Delegate {
		return "", b.unsupported("delegate invocation", x.Span)
	}
	r, ok, err := b.memberRef(data.Callee)
	if err != nil {
		return "", err
	}
	if !ok || r.m.Kind != decl.MemberMethod {
		return "", b.unsupported("invocation of a computed callee", x.Span)
	}
	args, err := b.exprs(data.Args)
	if err != nil {
		return "", err
	}
	return r.call(r.m.Ident().FullName, r.m.Name(), args...), nil
}

// creation lowers object and array creation. Objects are zero-initialised;
// constructors with arguments have no C counterpart.
func (b *body) creation(x *decl.Expr, data decl.NewData) (string, error) {
	t := x.Type
	if t.IsArray {
		if len(data.Args) != 1 {
			return "", b.unsupported("array creation without a single length", x.Span)
		}
		elem := t
		elem.IsArray = false
		et, err := b.e.elemType(elem, b.member)
		if err != nil {
			return "", err
		}
		n, err := b.expr(data.Args[0])
		if err != nil {
			return "", err
		}
		return "((" + et + "*)calloc((size_t)" + n + ", sizeof(" + et + ")))", nil
	}
	if len(data.Args) > 0 {
		return "", b.unsupported("constructor arguments", x.Span)
	}
	switch b.e.category(t) {
	case decl.CategoryStruct, decl.CategoryClass:
		s := "struct " + t.TypeFlatName
		if b.e.byValue(t) {
			return "((" + s + "){0})", nil
		}
		return "((" + s + "*)calloc(1, sizeof(" + s + ")))", nil
	}
	return "", b.unsupported("creation of "+t.TypeFullName, x.Span)
}
