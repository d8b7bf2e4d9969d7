package registry

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"sharpc/internal/decl"
	"sharpc/internal/names"
)

var intTyping = decl.Typing{TypeName: "int", TypeFullName: "System.Int32", IsValueType: true}

func fragment(cat decl.Category, full, unit string, offset uint32, partial bool, members ...string) *decl.TypeDecl {
	id := decl.Identity{Name: full[strings.LastIndex(full, ".")+1:], FullName: full, FlatName: names.Flatten(full)}
	if partial {
		id.Modifiers |= decl.ModPartial
	}
	d := decl.NewTypeDecl(cat, id, decl.Origin{Unit: unit, Offset: offset})
	for i, name := range members {
		mfull := names.Member(full, name)
		d.Members = append(d.Members, decl.NewField(&decl.FieldData{
			Identity: decl.Identity{Name: name, FullName: mfull, FlatName: names.Flatten(mfull)},
			Typing:   intTyping,
		}, decl.Origin{Unit: unit, Offset: offset + uint32(i) + 1}))
	}
	return d
}

func memberNames(d *decl.TypeDecl) string {
	parts := make([]string, 0, len(d.Members))
	for i := range d.Members {
		parts = append(parts, d.Members[i].Name())
	}
	return strings.Join(parts, ",")
}

func mustInsert(t *testing.T, r *Registry, frags ...*decl.TypeDecl) {
	t.Helper()
	for _, f := range frags {
		if err := r.Insert(f); err != nil {
			t.Fatalf("Insert(%s): %v", f.FullName, err)
		}
	}
}

func TestPartialClassMergeAcrossUnits(t *testing.T) {
	for _, order := range [][]int{{0, 1}, {1, 0}} {
		frags := []*decl.TypeDecl{
			fragment(decl.CategoryClass, "Foo", "a.cs", 0, true, "A"),
			fragment(decl.CategoryClass, "Foo", "b.cs", 0, true, "B"),
		}
		r := New()
		for _, i := range order {
			mustInsert(t, r, frags[i])
		}
		p := r.Snapshot()
		if len(p.Classes()) != 1 {
			t.Fatalf("order %v: want one canonical Foo, got %d", order, len(p.Classes()))
		}
		if got := memberNames(p.Classes()[0]); got != "A,B" {
			t.Fatalf("order %v: want members A,B, got %s", order, got)
		}
	}
}

func permutations(n int) [][]int {
	if n == 1 {
		return [][]int{{0}}
	}
	var out [][]int
	for _, p := range permutations(n - 1) {
		for pos := 0; pos <= len(p); pos++ {
			next := append(append(append([]int(nil), p[:pos]...), n-1), p[pos:]...)
			out = append(out, next)
		}
	}
	return out
}

func TestMergeOrderIndependence(t *testing.T) {
	build := func() []*decl.TypeDecl {
		return []*decl.TypeDecl{
			fragment(decl.CategoryClass, "App.Foo", "c.cs", 10, true, "C1", "C2"),
			fragment(decl.CategoryClass, "App.Foo", "a.cs", 40, true, "A1"),
			fragment(decl.CategoryStruct, "App.Point", "b.cs", 5, false, "X", "Y"),
			fragment(decl.CategoryClass, "App.Foo", "b.cs", 90, true, "B1"),
			fragment(decl.CategoryClass, "App.Bar", "a.cs", 1, false, "Z"),
		}
	}
	var want string
	for _, perm := range permutations(5) {
		frags := build()
		r := New()
		for _, i := range perm {
			mustInsert(t, r, frags[i])
		}
		p := r.Snapshot()
		var sb strings.Builder
		for _, d := range p.All() {
			fmt.Fprintf(&sb, "%s[%s]@%s;", d.FullName, memberNames(d), d.Origin.Unit)
		}
		if want == "" {
			want = sb.String()
			continue
		}
		if sb.String() != want {
			t.Fatalf("permutation %v:\nwant %s\ngot  %s", perm, want, sb.String())
		}
	}
	if want != "App.Bar[Z]@a.cs;App.Foo[A1,B1,C1,C2]@a.cs;App.Point[X,Y]@b.cs;" {
		t.Fatalf("unexpected merged shape %s", want)
	}
}

func TestDuplicateDeclarations(t *testing.T) {
	cases := []struct {
		name        string
		first, next *decl.TypeDecl
		want        ConflictKind
	}{
		{"non-partial twice",
			fragment(decl.CategoryClass, "Foo", "a.cs", 0, false, "A"),
			fragment(decl.CategoryClass, "Foo", "b.cs", 0, false, "B"),
			ConflictDuplicateDecl},
		{"partial then non-partial",
			fragment(decl.CategoryClass, "Foo", "a.cs", 0, true, "A"),
			fragment(decl.CategoryClass, "Foo", "b.cs", 0, false, "B"),
			ConflictDuplicateDecl},
		{"category mismatch",
			fragment(decl.CategoryClass, "Foo", "a.cs", 0, true, "A"),
			fragment(decl.CategoryStruct, "Foo", "b.cs", 0, true, "B"),
			ConflictCategoryMismatch},
		{"enum twice",
			fragment(decl.CategoryEnum, "Color", "a.cs", 0, false, "Red"),
			fragment(decl.CategoryEnum, "Color", "b.cs", 0, false, "Blue"),
			ConflictDuplicateDecl},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := New()
			mustInsert(t, r, tc.first)
			err := r.Insert(tc.next)
			var ce *ConflictError
			if !errors.As(err, &ce) || ce.Kind != tc.want {
				t.Fatalf("want %s conflict, got %v", tc.want, err)
			}
			if got := memberNames(r.Snapshot().All()[0]); got != memberNames(tc.first) {
				t.Fatalf("failed insert must not change the registry, got members %s", got)
			}
		})
	}
}

func TestPartialEnumRejected(t *testing.T) {
	r := New()
	err := r.Insert(fragment(decl.CategoryEnum, "Color", "a.cs", 0, true, "Red"))
	var ce *ConflictError
	if !errors.As(err, &ce) || ce.Kind != ConflictPartialEnum {
		t.Fatalf("want partial enum conflict, got %v", err)
	}
	if r.Len() != 0 {
		t.Fatalf("registry must stay empty")
	}
}

func TestMemberCollisionIsTransactional(t *testing.T) {
	r := New()
	mustInsert(t, r, fragment(decl.CategoryClass, "Foo", "a.cs", 0, true, "A"))
	err := r.Insert(fragment(decl.CategoryClass, "Foo", "b.cs", 0, true, "C", "A"))
	var ce *ConflictError
	if !errors.As(err, &ce) || ce.Kind != ConflictDuplicateMember || ce.Member != "A" {
		t.Fatalf("want duplicate member A, got %v", err)
	}
	if got := memberNames(r.Snapshot().Classes()[0]); got != "A" {
		t.Fatalf("C must not be committed, got %s", got)
	}
	if _, ok := r.Table().Lookup("Foo_C"); ok {
		t.Fatalf("C must not be claimed in the names table")
	}
	// the declaration keeps accepting valid fragments
	mustInsert(t, r, fragment(decl.CategoryClass, "Foo", "b.cs", 0, true, "C"))
	if got := memberNames(r.Snapshot().Classes()[0]); got != "A,C" {
		t.Fatalf("want A,C, got %s", got)
	}
}

func TestFlatteningCollision(t *testing.T) {
	r := New()
	mustInsert(t, r, fragment(decl.CategoryClass, "App_Models.User", "a.cs", 0, false, "Id"))
	err := r.Insert(fragment(decl.CategoryClass, "App.Models_User", "b.cs", 0, false, "Name"))
	var ce *names.CollisionError
	if !errors.As(err, &ce) {
		t.Fatalf("want collision, got %v", err)
	}
	if ce.First != "App_Models.User" || ce.Second != "App.Models_User" {
		t.Fatalf("collision must name both full names, got %+v", ce)
	}
	if r.Len() != 1 {
		t.Fatalf("colliding declaration must not be registered")
	}
}

func TestSynthesisedAccessorCollision(t *testing.T) {
	d := fragment(decl.CategoryClass, "App.User", "a.cs", 0, false)
	d.Members = append(d.Members,
		decl.NewProperty(&decl.PropertyData{
			Identity: decl.Identity{Name: "Name", FullName: "App.User.Name"},
			HasGet:   true,
		}, decl.Origin{Unit: "a.cs", Offset: 1}),
		decl.NewMethod(&decl.MethodData{
			Identity: decl.Identity{Name: "get_Name", FullName: "App.User.get_Name"},
		}, decl.Origin{Unit: "a.cs", Offset: 2}),
	)
	var ce *names.CollisionError
	if err := New().Insert(d); !errors.As(err, &ce) || ce.Flat != "App_User_get_Name" {
		t.Fatalf("want collision on App_User_get_Name, got %v", err)
	}
}

func TestNestedRegistration(t *testing.T) {
	r := New()
	outer := fragment(decl.CategoryClass, "Outer", "a.cs", 0, true, "Y")
	inner := fragment(decl.CategoryStruct, "Outer.Inner", "a.cs", 5, false, "X")
	inner.Outer = "Outer"
	mustInsert(t, r, outer, inner, fragment(decl.CategoryClass, "Outer", "b.cs", 0, true, "Z"))
	p := r.Snapshot()
	if d, ok := p.Lookup("Outer.Inner"); !ok || d.Category() != decl.CategoryStruct || d.Outer != "Outer" {
		t.Fatalf("nested struct missing")
	}
	if d, _ := p.Lookup("Outer"); memberNames(d) != "Y,Z" {
		t.Fatalf("outer partial must merge independently of nested, got %s", memberNames(d))
	}
}

func TestSnapshotIsFrozen(t *testing.T) {
	r := New()
	mustInsert(t, r, fragment(decl.CategoryClass, "Foo", "a.cs", 0, true, "A"))
	p := r.Snapshot()
	mustInsert(t, r, fragment(decl.CategoryClass, "Foo", "b.cs", 0, true, "B"))
	if got := memberNames(p.Classes()[0]); got != "A" {
		t.Fatalf("snapshot changed after insert: %s", got)
	}
	owner, m, ok := p.MemberByFullName("Foo.A")
	if !ok || owner.FullName != "Foo" || m.Name() != "A" {
		t.Fatalf("MemberByFullName failed")
	}
	if n, ok := p.Ordinal("Foo"); !ok || n != 0 {
		t.Fatalf("ordinal of Foo = %d, %v", n, ok)
	}
}

func TestConcurrentInsert(t *testing.T) {
	r := New()
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			unit := fmt.Sprintf("u%02d.cs", i)
			if err := r.Insert(fragment(decl.CategoryClass, "Shared", unit, 0, true, fmt.Sprintf("M%02d", i))); err != nil {
				t.Errorf("Insert: %v", err)
			}
		}(i)
	}
	wg.Wait()
	d, _ := r.Snapshot().Lookup("Shared")
	if len(d.Members) != 16 || d.Members[0].Name() != "M00" || d.Members[15].Name() != "M15" {
		t.Fatalf("unexpected members %s", memberNames(d))
	}
}
