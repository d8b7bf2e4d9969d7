package decl

import (
	"bytes"
	"strings"
	"testing"
)

func TestCategoryFixedByConstructor(t *testing.T) {
	d := NewTypeDecl(CategoryStruct, Identity{Name: "Point", FullName: "App.Point"}, Origin{})
	if d.Category() != CategoryStruct || !d.IsValueType {
		t.Fatalf("want value-type struct, got %s value=%v", d.Category(), d.IsValueType)
	}
	c := NewTypeDecl(CategoryClass, Identity{Name: "User"}, Origin{})
	if c.IsValueType {
		t.Fatalf("class must not be a value type")
	}
	if !CategoryClass.Aggregate() || CategoryInterface.Aggregate() {
		t.Fatalf("unexpected Aggregate results")
	}
}

func TestModifiers(t *testing.T) {
	var m Modifiers
	for _, kw := range []string{"public", "partial", "static"} {
		f, ok := ParseModifier(kw)
		if !ok {
			t.Fatalf("ParseModifier(%q) failed", kw)
		}
		m |= f
	}
	if !m.Has(ModPartial | ModStatic) {
		t.Fatalf("missing flags in %s", m)
	}
	if m.String() != "public static partial" {
		t.Fatalf("want %q, got %q", "public static partial", m.String())
	}
	if _, ok := ParseModifier("sync"); ok {
		t.Fatalf("unknown keyword accepted")
	}
}

func TestMemberStorage(t *testing.T) {
	field := NewField(&FieldData{Identity: Identity{Name: "Id"}}, Origin{})
	auto := NewProperty(&PropertyData{Identity: Identity{Name: "Name"}, HasGet: true, HasSet: true}, Origin{})
	computed := NewProperty(&PropertyData{Identity: Identity{Name: "Size"}, HasGet: true, Get: &Body{}}, Origin{})
	method := NewMethod(&MethodData{Identity: Identity{Name: "Run"}}, Origin{})
	static := NewField(&FieldData{Identity: Identity{Name: "Count", Modifiers: ModStatic}}, Origin{})

	cases := []struct {
		m       Member
		storage bool
		static  bool
	}{
		{field, true, false},
		{auto, true, false},
		{computed, false, false},
		{method, false, false},
		{static, true, true},
	}
	for _, tc := range cases {
		if got := tc.m.Storage(); got != tc.storage {
			t.Errorf("%s: Storage() = %v, want %v", tc.m.Name(), got, tc.storage)
		}
		if got := tc.m.Static(); got != tc.static {
			t.Errorf("%s: Static() = %v, want %v", tc.m.Name(), got, tc.static)
		}
	}

	d := NewTypeDecl(CategoryClass, Identity{Name: "User"}, Origin{})
	d.Members = []Member{field, auto, computed, method}
	if got := len(d.Fields()); got != 2 {
		t.Fatalf("want 2 storage members, got %d", got)
	}
	if m, ok := d.Member("Run"); !ok || m.Kind != MemberMethod {
		t.Fatalf("Member(Run) lookup failed")
	}
}

func TestOriginOrder(t *testing.T) {
	a := Origin{Unit: "a.cs", Offset: 90}
	b := Origin{Unit: "b.cs", Offset: 1}
	if !a.Before(b) || b.Before(a) || a.Before(a) {
		t.Fatalf("unexpected origin ordering")
	}
}

func TestDump(t *testing.T) {
	d := NewTypeDecl(CategoryClass, Identity{Name: "User", FullName: "App.User", FlatName: "App_User"}, Origin{})
	ret := &Stmt{Kind: StmtReturn, Data: ReturnData{Value: &Expr{
		Kind: ExprMemberAccess,
		Data: MemberAccessData{Target: &Expr{Kind: ExprThis, Data: ThisData{}}, Member: "id"},
	}}}
	d.Members = []Member{
		NewField(&FieldData{
			Identity: Identity{Name: "id", FlatName: "App_User_id"},
			Typing:   Typing{TypeName: "int", TypeFullName: "System.Int32", IsValueType: true},
			Init:     &Constant{Kind: ConstInt, Int: 7},
		}, Origin{}),
		NewProperty(&PropertyData{
			Identity: Identity{Name: "Id", FlatName: "App_User_Id"},
			Typing:   Typing{TypeFullName: "System.Int32"},
			HasGet:   true,
			Get:      &Body{Stmts: []*Stmt{ret}},
		}, Origin{}),
	}
	var buf bytes.Buffer
	if err := Dump(&buf, []*TypeDecl{d}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"class App.User (App_User)",
		"field id: System.Int32 (App_User_id) = 7",
		"property Id: System.Int32 (App_User_Id) get",
		"return this.id",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump misses %q:\n%s", want, out)
		}
	}
}
