package c

import (
	"errors"
	"strings"
	"testing"

	"sharpc/internal/decl"
	"sharpc/internal/diag"
	"sharpc/internal/names"
	"sharpc/internal/registry"
)

var (
	tInt    = decl.Typing{TypeName: "int", TypeFullName: "System.Int32", IsValueType: true}
	tDouble = decl.Typing{TypeName: "double", TypeFullName: "System.Double", IsValueType: true}
	tString = decl.Typing{TypeName: "string", TypeFullName: "System.String"}
	tBool   = decl.Typing{TypeName: "bool", TypeFullName: "System.Boolean", IsValueType: true}
)

func typeRef(full string, cat decl.Category) decl.Typing {
	return decl.Typing{
		TypeName:     full[strings.LastIndex(full, ".")+1:],
		TypeFullName: full,
		TypeFlatName: names.Flatten(full),
		IsValueType:  cat == decl.CategoryStruct || cat == decl.CategoryEnum,
		Category:     cat,
	}
}

func ident(full string, mods decl.Modifiers) decl.Identity {
	return decl.Identity{
		Name:      full[strings.LastIndex(full, ".")+1:],
		FullName:  full,
		FlatName:  names.Flatten(full),
		Modifiers: mods,
	}
}

type builder struct {
	d   *decl.TypeDecl
	off uint32
}

func newDecl(cat decl.Category, full string, offset uint32) *builder {
	return &builder{d: decl.NewTypeDecl(cat, ident(full, decl.ModPublic), decl.Origin{Unit: "test.cs", Offset: offset}), off: offset}
}

func (b *builder) origin() decl.Origin {
	b.off++
	return decl.Origin{Unit: "test.cs", Offset: b.off}
}

func (b *builder) field(name string, t decl.Typing, mods decl.Modifiers, init *decl.Constant) *builder {
	full := names.Member(b.d.FullName, name)
	b.d.Members = append(b.d.Members, decl.NewField(&decl.FieldData{Identity: ident(full, mods), Typing: t, Init: init}, b.origin()))
	return b
}

func (b *builder) property(p *decl.PropertyData) *builder {
	p.Identity = ident(names.Member(b.d.FullName, p.Name), p.Modifiers|decl.ModPublic)
	b.d.Members = append(b.d.Members, decl.NewProperty(p, b.origin()))
	return b
}

func (b *builder) method(name string, mods decl.Modifiers, result decl.Typing, params []decl.Param, body ...*decl.Stmt) *builder {
	full := names.Member(b.d.FullName, name)
	data := &decl.MethodData{Identity: ident(full, mods), Result: result, Params: params}
	if body != nil {
		data.Body = &decl.Body{Stmts: body}
	}
	b.d.Members = append(b.d.Members, decl.NewMethod(data, b.origin()))
	return b
}

func project(t *testing.T, decls ...*builder) *registry.Project {
	t.Helper()
	r := registry.New()
	for _, b := range decls {
		if err := r.Insert(b.d); err != nil {
			t.Fatalf("Insert(%s): %v", b.d.FullName, err)
		}
	}
	return r.Snapshot()
}

func mustEmit(t *testing.T, p *registry.Project, opts Options) *Output {
	t.Helper()
	out, err := Emit(p, opts)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	return out
}

func intConst(v int64) *decl.Constant { return &decl.Constant{Kind: decl.ConstInt, Int: v} }

func lit(v int64) *decl.Expr {
	return &decl.Expr{Kind: decl.ExprLiteral, Type: tInt, Data: decl.LiteralData{Value: *intConst(v)}}
}

func local(name string, t decl.Typing) *decl.Expr {
	return &decl.Expr{Kind: decl.ExprName, Type: t, Data: decl.NameData{Name: name, Symbol: decl.Symbol{Kind: decl.SymParam}}}
}

func memberName(name string, kind decl.SymbolKind, full string, t decl.Typing) *decl.Expr {
	return &decl.Expr{Kind: decl.ExprName, Type: t, Data: decl.NameData{Name: name, Symbol: decl.Symbol{Kind: kind, FullName: full}}}
}

func binary(op string, l, r *decl.Expr, t decl.Typing) *decl.Expr {
	return &decl.Expr{Kind: decl.ExprBinary, Type: t, Data: decl.BinaryData{Op: op, Left: l, Right: r}}
}

func ret(x *decl.Expr) *decl.Stmt {
	return &decl.Stmt{Kind: decl.StmtReturn, Data: decl.ReturnData{Value: x}}
}

func assign(target, value *decl.Expr) *decl.Stmt {
	return &decl.Stmt{Kind: decl.StmtAssign, Data: decl.AssignData{Op: "=", Target: target, Value: value}}
}

func before(t *testing.T, text, first, second string) {
	t.Helper()
	i, j := strings.Index(text, first), strings.Index(text, second)
	if i < 0 || j < 0 {
		t.Fatalf("missing %q (%d) or %q (%d) in:\n%s", first, i, second, j, text)
	}
	if i >= j {
		t.Fatalf("%q must precede %q in:\n%s", first, second, text)
	}
}

func TestEnumForwardDeclaredBeforeUse(t *testing.T) {
	color := newDecl(decl.CategoryEnum, "App.Color", 0).
		field("Red", typeRef("App.Color", decl.CategoryEnum), decl.ModConst, intConst(0)).
		field("Green", typeRef("App.Color", decl.CategoryEnum), decl.ModConst, intConst(1))
	user := newDecl(decl.CategoryClass, "App.User", 100).
		field("Color", typeRef("App.Color", decl.CategoryEnum), decl.ModPublic, nil)

	out := mustEmit(t, project(t, user, color), Options{Name: "App"})
	src := out.Source
	before(t, src, "enum App_Color;", "enum App_Color\n{")
	before(t, src, "struct App_User;", "struct App_User\n{")
	before(t, src, "enum App_Color\n{", "struct App_User\n{")
	for _, want := range []string{"\tApp_Color_Red = 0,\n", "\tApp_Color_Green = 1,\n", "\tenum App_Color Color;\n"} {
		if !strings.Contains(src, want) {
			t.Fatalf("missing %q in:\n%s", want, src)
		}
	}
	if out.Header != "" {
		t.Fatalf("exe project must not produce a header")
	}
	if files := out.Files(); len(files) != 1 || files[0].Name != "App.c" {
		t.Fatalf("unexpected files %+v", files)
	}
}

func TestEveryDeclarationForwardDeclared(t *testing.T) {
	p := project(t,
		newDecl(decl.CategoryInterface, "A.IShape", 0),
		newDecl(decl.CategoryStruct, "A.Point", 10).field("X", tInt, decl.ModPublic, nil),
		newDecl(decl.CategoryClass, "A.Node", 20).field("Next", typeRef("A.Node", decl.CategoryClass), decl.ModPublic, nil),
		newDecl(decl.CategoryEnum, "A.Kind", 30),
	)
	src := mustEmit(t, p, Options{Name: "A"}).Source
	for _, d := range p.All() {
		fwd := "struct " + d.FlatName + ";"
		if d.Category() == decl.CategoryEnum {
			fwd = "enum " + d.FlatName + ";"
		}
		if !strings.Contains(src, fwd) {
			t.Fatalf("missing forward declaration %q in:\n%s", fwd, src)
		}
	}
	// self reference by pointer is fine
	if !strings.Contains(src, "\tstruct A_Node* Next;\n") {
		t.Fatalf("class member must be a pointer:\n%s", src)
	}
	if !strings.Contains(src, "\tA_Kind__empty,\n") {
		t.Fatalf("empty enum needs a placeholder enumerator:\n%s", src)
	}
}

func TestValueCycleRejected(t *testing.T) {
	s1 := newDecl(decl.CategoryStruct, "S1", 0).field("b", typeRef("S2", decl.CategoryStruct), decl.ModPublic, nil)
	s2 := newDecl(decl.CategoryStruct, "S2", 10).field("a", typeRef("S1", decl.CategoryStruct), decl.ModPublic, nil)

	out, err := Emit(project(t, s1, s2), Options{Name: "x"})
	if out != nil {
		t.Fatalf("cycle must withhold output")
	}
	var ce *CycleError
	if !errors.As(err, &ce) {
		t.Fatalf("want CycleError, got %v", err)
	}
	if got, want := ce.Error(), "value containment cycle: S1.b -> S2.a -> S1"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if ce.Code() != diag.EmtValueCycle {
		t.Fatalf("unexpected code %v", ce.Code())
	}
}

func TestSelfValueCycleRejected(t *testing.T) {
	s := newDecl(decl.CategoryStruct, "S", 0).field("inner", typeRef("S", decl.CategoryStruct), decl.ModPublic, nil)
	_, err := Emit(project(t, s), Options{})
	var ce *CycleError
	if !errors.As(err, &ce) || len(ce.Chain) != 1 {
		t.Fatalf("want one-link cycle, got %v", err)
	}
}

func TestReferenceCycleAccepted(t *testing.T) {
	c1 := newDecl(decl.CategoryClass, "C1", 0).field("b", typeRef("C2", decl.CategoryClass), decl.ModPublic, nil)
	c2 := newDecl(decl.CategoryClass, "C2", 10).field("a", typeRef("C1", decl.CategoryClass), decl.ModPublic, nil)
	src := mustEmit(t, project(t, c1, c2), Options{}).Source
	if !strings.Contains(src, "\tstruct C2* b;\n") || !strings.Contains(src, "\tstruct C1* a;\n") {
		t.Fatalf("unexpected output:\n%s", src)
	}
}

func TestStructReferenceCycleAccepted(t *testing.T) {
	ref := func(full string) decl.Typing {
		t := typeRef(full, decl.CategoryStruct)
		t.IsValueType = false
		return t
	}
	s1 := newDecl(decl.CategoryStruct, "S1", 0).field("b", ref("S2"), decl.ModPublic, nil)
	s2 := newDecl(decl.CategoryStruct, "S2", 10).field("a", ref("S1"), decl.ModPublic, nil)
	src := mustEmit(t, project(t, s1, s2), Options{}).Source
	if !strings.Contains(src, "\tstruct S2* b;\n") || !strings.Contains(src, "\tstruct S1* a;\n") {
		t.Fatalf("by-reference struct members must be pointers:\n%s", src)
	}
	if strings.Contains(src, "\tstruct S2 b;") || strings.Contains(src, "\tstruct S1 a;") {
		t.Fatalf("by-reference struct member spelled inline:\n%s", src)
	}
}

func TestValueClassMemberIsContainment(t *testing.T) {
	val := func(full string) decl.Typing {
		t := typeRef(full, decl.CategoryClass)
		t.IsValueType = true
		return t
	}
	c1 := newDecl(decl.CategoryClass, "C1", 0).field("b", val("C2"), decl.ModPublic, nil)
	c2 := newDecl(decl.CategoryClass, "C2", 10).field("x", tInt, decl.ModPublic, nil)
	src := mustEmit(t, project(t, c1, c2), Options{}).Source
	if !strings.Contains(src, "\tstruct C2 b;\n") {
		t.Fatalf("value-typed class member must be inline:\n%s", src)
	}
	before(t, src, "struct C2\n{", "struct C1\n{")

	back := newDecl(decl.CategoryClass, "C2", 10).field("a", val("C1"), decl.ModPublic, nil)
	c1 = newDecl(decl.CategoryClass, "C1", 0).field("b", val("C2"), decl.ModPublic, nil)
	var ce *CycleError
	if _, err := Emit(project(t, c1, back), Options{}); !errors.As(err, &ce) {
		t.Fatalf("inline class pair must be a cycle, got %v", err)
	}
}

func TestStructEmbeddingClassFollowsIt(t *testing.T) {
	box := typeRef("G.Box", decl.CategoryClass)
	box.IsValueType = true
	wrap := newDecl(decl.CategoryStruct, "G.Wrap", 0).field("box", box, decl.ModPublic, nil)
	plain := newDecl(decl.CategoryStruct, "G.Plain", 5).field("x", tInt, decl.ModPublic, nil)
	boxDecl := newDecl(decl.CategoryClass, "G.Box", 10).field("x", tInt, decl.ModPublic, nil)
	src := mustEmit(t, project(t, wrap, plain, boxDecl), Options{}).Source
	before(t, src, "struct G_Box\n{", "struct G_Wrap\n{")
	before(t, src, "struct G_Plain\n{", "struct G_Box\n{")
}

func TestStaticSelfReferenceIsNotACycle(t *testing.T) {
	s := newDecl(decl.CategoryStruct, "S", 0).
		field("Zero", typeRef("S", decl.CategoryStruct), decl.ModStatic, nil).
		field("v", tInt, decl.ModPublic, nil)
	src := mustEmit(t, project(t, s), Options{}).Source
	if !strings.Contains(src, "struct S S_Zero;\n") {
		t.Fatalf("static storage must become a global:\n%s", src)
	}
}

func TestStructsDefinedBeforeContainers(t *testing.T) {
	outer := newDecl(decl.CategoryStruct, "G.Outer", 0).field("in", typeRef("G.Inner", decl.CategoryStruct), decl.ModPublic, nil)
	inner := newDecl(decl.CategoryStruct, "G.Inner", 10).field("x", tInt, decl.ModPublic, nil)
	holder := newDecl(decl.CategoryClass, "G.Holder", 20).field("o", typeRef("G.Outer", decl.CategoryStruct), decl.ModPublic, nil)

	src := mustEmit(t, project(t, outer, inner, holder), Options{}).Source
	before(t, src, "struct G_Inner\n{", "struct G_Outer\n{")
	before(t, src, "struct G_Outer\n{", "struct G_Holder\n{")
}

func TestInterfaceSlots(t *testing.T) {
	shape := newDecl(decl.CategoryInterface, "Geo.IShape", 0).
		method("Area", decl.ModPublic|decl.ModAbstract, tDouble, nil).
		method("Scale", decl.ModPublic|decl.ModAbstract, decl.Typing{}, []decl.Param{{Name: "k", Typing: tDouble}}).
		property(&decl.PropertyData{Identity: decl.Identity{Name: "Name"}, Typing: tString, HasGet: true})
	src := mustEmit(t, project(t, shape), Options{}).Source
	for _, want := range []string{
		"\tdouble (*Area)(void* self);\n",
		"\tvoid (*Scale)(void* self, double k);\n",
		"\tchar* (*get_Name)(void* self);\n",
	} {
		if !strings.Contains(src, want) {
			t.Fatalf("missing %q in:\n%s", want, src)
		}
	}
}

func TestLibraryHeaderSplit(t *testing.T) {
	counter := newDecl(decl.CategoryClass, "Lib.Counter", 0).
		field("Count", tInt, decl.ModStatic|decl.ModPublic, intConst(3)).
		field("Max", tInt, decl.ModConst|decl.ModPublic, intConst(10))
	out := mustEmit(t, project(t, counter), Options{Name: "Lib", Library: true, References: []string{"Core"}})

	files := out.Files()
	if len(files) != 2 || files[0].Name != "Lib.h" || files[1].Name != "Lib.c" {
		t.Fatalf("unexpected files %+v", files)
	}
	for _, want := range []string{
		"#ifndef LIB_H\n#define LIB_H\n",
		"#include \"Core.h\"\n",
		"struct Lib_Counter\n{\n\tuint8_t _reserved;\n};\n",
		"extern int32_t Lib_Counter_Count;\n",
		"extern const int32_t Lib_Counter_Max;\n",
		"#endif /* LIB_H */\n",
	} {
		if !strings.Contains(out.Header, want) {
			t.Fatalf("header missing %q:\n%s", want, out.Header)
		}
	}
	for _, want := range []string{
		"#include \"Lib.h\"\n",
		"int32_t Lib_Counter_Count = 3;\n",
		"const int32_t Lib_Counter_Max = 10;\n",
	} {
		if !strings.Contains(out.Source, want) {
			t.Fatalf("source missing %q:\n%s", want, out.Source)
		}
	}
	if strings.Contains(out.Source, "struct Lib_Counter\n{") {
		t.Fatalf("definitions belong in the header only")
	}
	if !strings.Contains(out.Header, "(dll, debug)") {
		t.Fatalf("banner must name kind and mode:\n%s", out.Header)
	}
}

func TestMethodBodies(t *testing.T) {
	valueRef := func() *decl.Expr { return memberName("value", decl.SymField, "App.Counter.value", tInt) }
	x := local("x", tInt)
	counter := newDecl(decl.CategoryClass, "App.Counter", 0).
		field("value", tInt, decl.ModPrivate, intConst(5)).
		method("Next", decl.ModPublic, tInt, nil,
			assign(valueRef(), binary("+", valueRef(), lit(1), tInt)),
			ret(valueRef()),
		).
		method("Twice", decl.ModPublic|decl.ModStatic, tInt, []decl.Param{{Name: "x", Typing: tInt}},
			ret(binary("*", x, lit(2), tInt)),
		).
		method("Sign", decl.ModPublic|decl.ModStatic, tInt, []decl.Param{{Name: "x", Typing: tInt}},
			&decl.Stmt{Kind: decl.StmtIf, Data: decl.IfData{
				Cond: binary(">", x, lit(0), tBool),
				Then: &decl.Stmt{Kind: decl.StmtBlock, Data: decl.BlockData{Stmts: []*decl.Stmt{ret(lit(1))}}},
				Else: ret(lit(-1)),
			}},
		).
		method("Extern", decl.ModPublic|decl.ModStatic|decl.ModExtern, decl.Typing{}, nil)

	src := mustEmit(t, project(t, counter), Options{Name: "App"}).Source
	for _, want := range []string{
		"int32_t App_Counter_Next(struct App_Counter* self)\n{\n\tself->value = self->value + 1;\n\treturn self->value;\n}\n",
		"int32_t App_Counter_Twice(int32_t x)\n{\n\treturn x * 2;\n}\n",
		"\tif (x > 0)\n\t{\n\t\treturn 1;\n\t}\n\telse\n\t{\n\t\treturn -1;\n\t}\n",
		"void App_Counter_Extern(void);\n",
		"int32_t App_Counter_Next(struct App_Counter* self);\n",
		"void App_Counter__init(struct App_Counter* self)\n{\n\tself->value = 5;\n}\n",
	} {
		if !strings.Contains(src, want) {
			t.Fatalf("missing %q in:\n%s", want, src)
		}
	}
	before(t, src, "/* prototypes */", "/* functions */")
}

func TestPropertyAccessors(t *testing.T) {
	backing := memberName("raw", decl.SymField, "P.Box.raw", tInt)
	value := local("value", tInt)
	box := newDecl(decl.CategoryClass, "P.Box", 0).
		field("raw", tInt, decl.ModPrivate, nil).
		property(&decl.PropertyData{
			Identity: decl.Identity{Name: "Size"},
			Typing:   tInt, HasGet: true, HasSet: true,
			Get: &decl.Body{Stmts: []*decl.Stmt{ret(backing)}},
			Set: &decl.Body{Stmts: []*decl.Stmt{assign(backing, value)}},
		}).
		method("Grow", decl.ModPublic, decl.Typing{}, nil,
			assign(memberName("Size", decl.SymProperty, "P.Box.Size", tInt),
				binary("*", memberName("Size", decl.SymProperty, "P.Box.Size", tInt), lit(2), tInt)),
		)

	src := mustEmit(t, project(t, box), Options{}).Source
	for _, want := range []string{
		"int32_t P_Box_get_Size(struct P_Box* self)\n{\n\treturn self->raw;\n}\n",
		"void P_Box_set_Size(struct P_Box* self, int32_t value)\n{\n\tself->raw = value;\n}\n",
		"\tP_Box_set_Size(self, P_Box_get_Size(self) * 2);\n",
	} {
		if !strings.Contains(src, want) {
			t.Fatalf("missing %q in:\n%s", want, src)
		}
	}
	if strings.Contains(src, "\tint32_t Size;\n") {
		t.Fatalf("computed property must not occupy storage:\n%s", src)
	}
}

func TestUnsupportedConstructsWithholdOutput(t *testing.T) {
	s := local("s", tString)
	widget := newDecl(decl.CategoryClass, "W.Widget", 0).
		method("Label", decl.ModPublic|decl.ModStatic, tString, []decl.Param{{Name: "s", Typing: tString}},
			ret(binary("+", s, s, tString))).
		method("Fire", decl.ModPublic|decl.ModStatic, decl.Typing{}, nil,
			&decl.Stmt{Kind: decl.StmtExpr, Data: decl.ExprStmtData{Expr: &decl.Expr{
				Kind: decl.ExprInvoke,
				Data: decl.InvokeData{Callee: local("cb", decl.Typing{}), Delegate: true},
			}}}).
		method("Fine", decl.ModPublic|decl.ModStatic, tInt, nil, ret(lit(0)))

	out, err := Emit(project(t, widget), Options{})
	if out != nil {
		t.Fatalf("unsupported constructs must withhold output")
	}
	var list ErrorList
	if !errors.As(err, &list) || len(list) != 2 {
		t.Fatalf("want both failing members reported, got %v", err)
	}
	var ue *UnsupportedError
	if !errors.As(list[0], &ue) || ue.Member != "W.Widget.Label" || ue.Variant != "string concatenation" {
		t.Fatalf("unexpected first error %v", list[0])
	}
	if !strings.Contains(list[1].Error(), "delegate invocation") {
		t.Fatalf("unexpected second error %v", list[1])
	}
}

func TestGenericRejected(t *testing.T) {
	bag := newDecl(decl.CategoryClass, "G.Bag", 0)
	bag.d.IsGeneric = true
	plain := newDecl(decl.CategoryClass, "G.Plain", 10).
		field("items", decl.Typing{TypeName: "List", TypeFullName: "System.List", IsGeneric: true}, decl.ModPublic, nil)

	_, err := Emit(project(t, bag, plain), Options{})
	var list ErrorList
	if !errors.As(err, &list) || len(list) != 2 {
		t.Fatalf("want two generic errors, got %v", err)
	}
	for _, e := range list {
		var ge *GenericError
		if !errors.As(e, &ge) || ge.Code() != diag.EmtGenericType {
			t.Fatalf("want GenericError, got %v", e)
		}
	}
}

func TestUnknownMemberReference(t *testing.T) {
	c := newDecl(decl.CategoryClass, "U.C", 0).
		method("Get", decl.ModPublic|decl.ModStatic, tInt, nil,
			ret(memberName("Limit", decl.SymField, "Ext.Config.Limit", tInt)))
	_, err := Emit(project(t, c), Options{})
	var um *UnknownMemberError
	if !errors.As(err, &um) || um.Ref != "Ext.Config.Limit" || um.Member != "U.C.Get" {
		t.Fatalf("want UnknownMemberError, got %v", err)
	}
}

func TestInstanceMemberInStaticContext(t *testing.T) {
	c := newDecl(decl.CategoryClass, "U.C", 0).
		field("n", tInt, decl.ModPublic, nil).
		method("Peek", decl.ModPublic|decl.ModStatic, tInt, nil,
			ret(memberName("n", decl.SymField, "U.C.n", tInt)))
	_, err := Emit(project(t, c), Options{})
	var ue *UnsupportedError
	if !errors.As(err, &ue) {
		t.Fatalf("want UnsupportedError, got %v", err)
	}
}

func TestObjectCreation(t *testing.T) {
	node := typeRef("N.Node", decl.CategoryClass)
	pt := typeRef("N.Pt", decl.CategoryStruct)
	arr := tInt
	arr.IsArray = true
	nodeDecl := newDecl(decl.CategoryClass, "N.Node", 0).
		method("Make", decl.ModPublic|decl.ModStatic, node, nil,
			ret(&decl.Expr{Kind: decl.ExprNew, Type: node, Data: decl.NewData{}})).
		method("Origin", decl.ModPublic|decl.ModStatic, pt, nil,
			ret(&decl.Expr{Kind: decl.ExprNew, Type: pt, Data: decl.NewData{}})).
		method("Buf", decl.ModPublic|decl.ModStatic, arr, nil,
			ret(&decl.Expr{Kind: decl.ExprNew, Type: arr, Data: decl.NewData{Args: []*decl.Expr{lit(8)}}}))
	ptDecl := newDecl(decl.CategoryStruct, "N.Pt", 50).field("x", tInt, decl.ModPublic, nil)

	src := mustEmit(t, project(t, nodeDecl, ptDecl), Options{}).Source
	for _, want := range []string{
		"\treturn (struct N_Node*)calloc(1, sizeof(struct N_Node));\n",
		"\treturn (struct N_Pt){0};\n",
		"\treturn (int32_t*)calloc((size_t)8, sizeof(int32_t));\n",
		"int32_t* N_Node_Buf(void)",
	} {
		if !strings.Contains(src, want) {
			t.Fatalf("missing %q in:\n%s", want, src)
		}
	}
}

func TestUnparen(t *testing.T) {
	cases := map[string]string{
		"(a + b)":         "a + b",
		"(a) + (b)":       "(a) + (b)",
		"x":               "x",
		"((int32_t)x)":    "(int32_t)x",
		`(")" + s)`:       `")" + s`,
		"f(a)":            "f(a)",
		"(a ? (b) : (c))": "a ? (b) : (c)",
	}
	for in, want := range cases {
		if got := unparen(in); got != want {
			t.Errorf("unparen(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestQuote(t *testing.T) {
	if got, want := quote("a\"b\n\x01\\"), `"a\"b\n\001\\"`; got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}
