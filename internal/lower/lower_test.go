package lower

import (
	"math"
	"strings"
	"testing"

	"sharpc/internal/analyzer"
	"sharpc/internal/decl"
	"sharpc/internal/diag"
)

var intType = &analyzer.TypeRef{Name: "int", FullName: "System.Int32", Kind: analyzer.TypePrimitive, IsValueType: true}

func lowerUnit(t *testing.T, nodes ...*analyzer.Node) (*Result, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(0)
	res := Unit(&analyzer.Unit{Path: "src/a.cs", Nodes: nodes}, 1, diag.BagReporter{Bag: bag})
	return res, bag
}

func TestNamespacedFieldNames(t *testing.T) {
	res, bag := lowerUnit(t, &analyzer.Node{
		Kind: analyzer.KindNamespace, Name: "App.Models",
		Children: []*analyzer.Node{{
			Kind: analyzer.KindClass, Name: "User", Span: analyzer.Span{Start: 10, End: 40},
			Children: []*analyzer.Node{{Kind: analyzer.KindField, Name: "Id", Type: intType, Span: analyzer.Span{Start: 20, End: 27}}},
		}},
	})
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %d", bag.Len())
	}
	if len(res.Fragments) != 1 {
		t.Fatalf("want 1 fragment, got %d", len(res.Fragments))
	}
	user := res.Fragments[0]
	if user.FullName != "App.Models.User" || user.Category() != decl.CategoryClass {
		t.Fatalf("unexpected declaration %s %s", user.Category(), user.FullName)
	}
	id := user.Members[0].Ident()
	if id.FullName != "App.Models.User.Id" {
		t.Fatalf("want fullName %q, got %q", "App.Models.User.Id", id.FullName)
	}
	if id.FlatName != "App_Models_User_Id" {
		t.Fatalf("want flatName %q, got %q", "App_Models_User_Id", id.FlatName)
	}
	if user.Members[0].Origin.Unit != "src/a.cs" || user.Members[0].Origin.Offset != 20 {
		t.Fatalf("unexpected origin %+v", user.Members[0].Origin)
	}
}

func TestBadAccessorIsMemberScoped(t *testing.T) {
	res, bag := lowerUnit(t,
		&analyzer.Node{
			Kind: analyzer.KindClass, Name: "Foo", Path: []string{"App", "Foo"},
			Children: []*analyzer.Node{
				{Kind: analyzer.KindProperty, Name: "Bad", Type: intType, Children: []*analyzer.Node{
					{Kind: analyzer.KindAccessor, Keyword: "fetch", Span: analyzer.Span{Start: 30, End: 35}},
				}},
				{Kind: analyzer.KindField, Name: "Ok", Type: intType},
			},
		},
		&analyzer.Node{Kind: analyzer.KindEnum, Name: "Color", Path: []string{"App", "Color"},
			Children: []*analyzer.Node{{Kind: analyzer.KindEnumMember, Name: "Red"}}},
	)
	if !bag.HasCode(diag.SynUnsupportedAccessor) {
		t.Fatalf("want SYN2001 diagnostic")
	}
	d := bag.Items()[0]
	if !strings.Contains(d.Message, `"fetch"`) || !strings.Contains(d.Message, "App.Foo.Bad") {
		t.Fatalf("diagnostic must name keyword and member, got %q", d.Message)
	}
	if d.Primary.Start != 30 || d.Primary.File != 1 {
		t.Fatalf("diagnostic must point at the accessor, got %v", d.Primary)
	}
	foo := res.Fragments[0]
	if len(foo.Members) != 1 || foo.Members[0].Name() != "Ok" {
		t.Fatalf("sibling member must survive, got %d members", len(foo.Members))
	}
	if len(res.Fragments) != 2 || len(res.Fragments[1].Members) != 1 {
		t.Fatalf("sibling declaration must survive")
	}
	if len(res.Errors) != 1 || res.Errors[0].Code != diag.SynUnsupportedAccessor {
		t.Fatalf("unexpected errors %+v", res.Errors)
	}
}

func TestPropertyAccessors(t *testing.T) {
	getBody := &analyzer.Node{Kind: analyzer.KindBlock, Children: []*analyzer.Node{{
		Kind:  analyzer.KindReturn,
		Value: &analyzer.Node{Kind: analyzer.KindMemberAccess, Name: "id", Type: intType, Target: &analyzer.Node{Kind: analyzer.KindThis}},
	}}}
	res, bag := lowerUnit(t, &analyzer.Node{
		Kind: analyzer.KindClass, Name: "User", Path: []string{"User"},
		Children: []*analyzer.Node{
			{Kind: analyzer.KindProperty, Name: "Id", Type: intType, Children: []*analyzer.Node{
				{Kind: analyzer.KindAccessor, Keyword: "get", Body: getBody},
				{Kind: analyzer.KindAccessor, Keyword: "set"},
			}},
			{Kind: analyzer.KindProperty, Name: "Name", Type: intType, Children: []*analyzer.Node{
				{Kind: analyzer.KindAccessor, Keyword: "get"},
				{Kind: analyzer.KindAccessor, Keyword: "set"},
			}},
		},
	})
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics")
	}
	members := res.Fragments[0].Members
	id := members[0].Data.(*decl.PropertyData)
	if !id.HasGet || !id.HasSet || id.Get == nil || id.Set != nil {
		t.Fatalf("unexpected accessors %+v", id)
	}
	ret := id.Get.Stmts[0].Data.(decl.ReturnData)
	if ret.Value.Type.TypeFullName != "System.Int32" {
		t.Fatalf("expression type must be copied, got %+v", ret.Value.Type)
	}
	if members[0].Storage() || !members[1].Storage() {
		t.Fatalf("only the auto property is storage")
	}
}

func TestConstantInitializers(t *testing.T) {
	res, _ := lowerUnit(t, &analyzer.Node{
		Kind: analyzer.KindClass, Name: "Cfg", Path: []string{"Cfg"},
		Children: []*analyzer.Node{
			{Kind: analyzer.KindField, Name: "Max", Type: intType, Modifiers: []string{"const"}, Const: &analyzer.Constant{Kind: "int", Int: 42}},
			{Kind: analyzer.KindField, Name: "Title", Type: &analyzer.TypeRef{Name: "string", FullName: "System.String"}, Const: &analyzer.Constant{Kind: "string", Str: "hi"}},
		},
	})
	maxField := res.Fragments[0].Members[0].Data.(*decl.FieldData)
	if maxField.Init == nil || maxField.Init.Kind != decl.ConstInt || maxField.Init.Int != 42 || !res.Fragments[0].Members[0].Static() {
		t.Fatalf("unexpected const field %+v", maxField)
	}
	title := res.Fragments[0].Members[1].Data.(*decl.FieldData)
	if title.Init.String() != `"hi"` {
		t.Fatalf("want %q, got %q", `"hi"`, title.Init.String())
	}
}

func TestEnumValues(t *testing.T) {
	res, _ := lowerUnit(t, &analyzer.Node{
		Kind: analyzer.KindEnum, Name: "Color", Path: []string{"App", "Color"},
		Children: []*analyzer.Node{
			{Kind: analyzer.KindEnumMember, Name: "Red"},
			{Kind: analyzer.KindEnumMember, Name: "Green", Const: &analyzer.Constant{Kind: "int", Int: 5}},
			{Kind: analyzer.KindEnumMember, Name: "Blue"},
		},
	})
	var got []int64
	for i := range res.Fragments[0].Members {
		got = append(got, res.Fragments[0].Members[i].Data.(*decl.FieldData).Init.Int)
	}
	if len(got) != 3 || got[0] != 0 || got[1] != 5 || got[2] != 6 {
		t.Fatalf("unexpected enum values %v", got)
	}
}

func TestEnumValueOverflow(t *testing.T) {
	res, bag := lowerUnit(t, &analyzer.Node{
		Kind: analyzer.KindEnum, Name: "Big", Path: []string{"App", "Big"},
		Children: []*analyzer.Node{
			{Kind: analyzer.KindEnumMember, Name: "Huge", Const: &analyzer.Constant{Kind: "uint", Uint: math.MaxUint64}},
			{Kind: analyzer.KindEnumMember, Name: "Max", Const: &analyzer.Constant{Kind: "int", Int: math.MaxInt64}},
			{Kind: analyzer.KindEnumMember, Name: "After"},
			{Kind: analyzer.KindEnumMember, Name: "Reset", Const: &analyzer.Constant{Kind: "uint", Uint: 7}},
			{Kind: analyzer.KindEnumMember, Name: "Next"},
		},
	})
	var errs []string
	for _, d := range bag.Items() {
		if d.Code != diag.SynMalformedNode {
			t.Fatalf("want SYN2003 only, got %v", d.Code)
		}
		errs = append(errs, d.Message)
	}
	if len(errs) != 2 || !strings.Contains(errs[0], "App.Big.Huge") || !strings.Contains(errs[1], "App.Big.After") {
		t.Fatalf("want overflow errors for Huge and After, got %q", errs)
	}
	members := res.Fragments[0].Members
	if len(members) != 3 || members[0].Name() != "Max" || members[1].Name() != "Reset" || members[2].Name() != "Next" {
		t.Fatalf("unexpected surviving members %d", len(members))
	}
	if got := members[2].Data.(*decl.FieldData).Init.Int; got != 8 {
		t.Fatalf("Next = %d, want 8", got)
	}
}

func TestUnsupportedStatementKind(t *testing.T) {
	res, bag := lowerUnit(t, &analyzer.Node{
		Kind: analyzer.KindClass, Name: "Job", Path: []string{"Job"},
		Children: []*analyzer.Node{
			{Kind: analyzer.KindMethod, Name: "Run", Body: &analyzer.Node{Kind: analyzer.KindBlock, Children: []*analyzer.Node{
				{Kind: "switch", Span: analyzer.Span{Start: 3, End: 9}},
			}}},
			{Kind: analyzer.KindMethod, Name: "Stop", Body: &analyzer.Node{Kind: analyzer.KindBlock}},
		},
	})
	if !bag.HasCode(diag.SynUnsupportedSyntax) {
		t.Fatalf("want SYN2002")
	}
	if msg := bag.Items()[0].Message; !strings.Contains(msg, `statement kind "switch"`) {
		t.Fatalf("unexpected message %q", msg)
	}
	if ms := res.Fragments[0].Members; len(ms) != 1 || ms[0].Name() != "Stop" {
		t.Fatalf("only Stop must survive")
	}
}

func TestNestedTypes(t *testing.T) {
	res, _ := lowerUnit(t, &analyzer.Node{
		Kind: analyzer.KindClass, Name: "Outer", Modifiers: []string{"partial"},
		Children: []*analyzer.Node{
			{Kind: analyzer.KindStruct, Name: "Inner", Children: []*analyzer.Node{{Kind: analyzer.KindField, Name: "X", Type: intType}}},
			{Kind: analyzer.KindField, Name: "Y", Type: intType},
		},
	})
	if len(res.Fragments) != 2 {
		t.Fatalf("want outer and nested fragment, got %d", len(res.Fragments))
	}
	outer, inner := res.Fragments[0], res.Fragments[1]
	if inner.FullName != "Outer.Inner" || inner.Outer != "Outer" || !inner.IsValueType {
		t.Fatalf("unexpected nested declaration %+v", inner)
	}
	if !outer.Partial() || inner.Partial() {
		t.Fatalf("nested registration is independent of the outer partial flag")
	}
	if len(outer.Members) != 1 || outer.Members[0].Ident().FullName != "Outer.Y" {
		t.Fatalf("nested type must not become a member")
	}
}

func TestLoopsAndExpressions(t *testing.T) {
	i := &analyzer.Node{Kind: analyzer.KindName, Name: "i", Type: intType, Symbol: &analyzer.Symbol{Kind: "local"}}
	body := &analyzer.Node{Kind: analyzer.KindBlock, Children: []*analyzer.Node{
		{Kind: analyzer.KindFor,
			Init: []*analyzer.Node{{Kind: analyzer.KindLocal, Name: "i", Type: intType, Value: &analyzer.Node{Kind: analyzer.KindLiteral, Type: intType, Const: &analyzer.Constant{Kind: "int"}}}},
			Cond: &analyzer.Node{Kind: analyzer.KindBinary, Op: "<", Left: i, Right: &analyzer.Node{Kind: analyzer.KindLiteral, Type: intType, Const: &analyzer.Constant{Kind: "int", Int: 10}}},
			Post: []*analyzer.Node{{Kind: analyzer.KindUnary, Op: "++", Postfix: true, Value: i}},
			Body: &analyzer.Node{Kind: analyzer.KindBlock, Children: []*analyzer.Node{{Kind: analyzer.KindBreak}}},
		},
	}}
	res, bag := lowerUnit(t, &analyzer.Node{
		Kind: analyzer.KindClass, Name: "Loop", Path: []string{"Loop"},
		Children: []*analyzer.Node{{Kind: analyzer.KindMethod, Name: "Run", Body: body}},
	})
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", bag.Items()[0].Message)
	}
	m := res.Fragments[0].Members[0].Data.(*decl.MethodData)
	loop := m.Body.Stmts[0].Data.(decl.LoopData)
	if loop.Kind != decl.LoopFor || len(loop.Init) != 1 || len(loop.Post) != 1 {
		t.Fatalf("unexpected loop %+v", loop)
	}
	if got := decl.ExprString(loop.Cond); got != "(i < 10)" {
		t.Fatalf("want (i < 10), got %q", got)
	}
	if !m.Result.IsVoid() {
		t.Fatalf("missing result type means void")
	}
}
