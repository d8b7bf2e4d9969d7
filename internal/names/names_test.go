package names

import (
	"errors"
	"testing"

	"sharpc/internal/source"
)

func TestFullNameAndFlatten(t *testing.T) {
	full := Member(FullName("App", "Models", "User"), "Id")
	if full != "App.Models.User.Id" {
		t.Fatalf("want %q, got %q", "App.Models.User.Id", full)
	}
	if got := Flatten(full); got != "App_Models_User_Id" {
		t.Fatalf("want %q, got %q", "App_Models_User_Id", got)
	}
	if FullName("", "Color") != "Color" {
		t.Fatalf("empty segments must be skipped")
	}
}

func TestFlattenDeterministic(t *testing.T) {
	for _, name := range []string{"A", "App.Color", "X.Y.Z.W", "App.Models.User.Id"} {
		if Flatten(name) != Flatten(name) {
			t.Fatalf("Flatten(%q) is not deterministic", name)
		}
	}
}

func TestFullNameNormalisesSegments(t *testing.T) {
	composed := FullName("Caf\u00e9")
	decomposed := FullName("Cafe\u0301")
	if composed != decomposed {
		t.Fatalf("NFC forms differ: %q vs %q", composed, decomposed)
	}
}

func TestTableDistinctNames(t *testing.T) {
	tbl := NewTable()
	seen := map[string]string{}
	for _, full := range []string{"App.User", "App.Models.User", "App.Models.User.Id", "Lib.User"} {
		flat, err := tbl.Register(full, source.Span{})
		if err != nil {
			t.Fatalf("Register(%q): %v", full, err)
		}
		if prev, ok := seen[flat]; ok {
			t.Fatalf("%q and %q share %q", prev, full, flat)
		}
		seen[flat] = full
	}
	if flat, err := tbl.Register("App.User", source.Span{}); err != nil || flat != "App_User" {
		t.Fatalf("re-registering the same name must succeed, got %q, %v", flat, err)
	}
	if tbl.Len() != 4 {
		t.Fatalf("want 4 entries, got %d", tbl.Len())
	}
}

func TestTableCollision(t *testing.T) {
	cases := []struct{ first, second string }{
		{"App_Models.User", "App.Models_User"},
		{"App.Models.User", "App_Models.User"},
		{"App.User.get_Name", "App.User_get.Name"},
	}
	for _, tc := range cases {
		tbl := NewTable()
		if _, err := tbl.Register(tc.first, source.Span{}); err != nil {
			t.Fatalf("first registration failed: %v", err)
		}
		if err := tbl.Check(tc.second, source.Span{}, false); err == nil {
			t.Fatalf("Check(%q) missed collision", tc.second)
		}
		_, err := tbl.Register(tc.second, source.Span{Start: 4, End: 8})
		var ce *CollisionError
		if !errors.As(err, &ce) {
			t.Fatalf("want *CollisionError, got %v", err)
		}
		if ce.First != tc.first || ce.Second != tc.second || ce.Flat != Flatten(tc.first) {
			t.Fatalf("unexpected collision %+v", ce)
		}
		if full, _ := tbl.Lookup(ce.Flat); full != tc.first {
			t.Fatalf("failed registration must not replace the owner, got %q", full)
		}
	}
}

func TestSynthesisedNames(t *testing.T) {
	if got := Flatten(Getter("App.User", "Name")); got != "App_User_get_Name" {
		t.Fatalf("getter: %q", got)
	}
	if got := Flatten(Setter("App.User", "Name")); got != "App_User_set_Name" {
		t.Fatalf("setter: %q", got)
	}
	if got := Flatten(Initializer("App.User")); got != "App_User__init" {
		t.Fatalf("init: %q", got)
	}
}

func TestReserveNeverShares(t *testing.T) {
	tbl := NewTable()
	if _, err := tbl.Register("App.User.get_Name", source.Span{}); err != nil {
		t.Fatal(err)
	}
	var ce *CollisionError
	if _, err := tbl.Reserve(Getter("App.User", "Name"), source.Span{}); !errors.As(err, &ce) {
		t.Fatalf("a method named get_Name must collide with the synthesised getter, got %v", err)
	}
	if _, err := tbl.Reserve(Initializer("App.User"), source.Span{}); err != nil {
		t.Fatalf("first reservation must succeed: %v", err)
	}
	if _, err := tbl.Reserve(Initializer("App.User"), source.Span{}); err == nil {
		t.Fatalf("second reservation of the same name must fail")
	}
}
