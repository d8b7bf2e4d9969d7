package source

import (
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("units/a.mp", []byte("class A {}"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}
	id2 := fs.Add("units/a.mp", []byte("class A { int x; }"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	latestID, exists := fs.GetLatest("units/a.mp")
	if !exists || latestID != id2 {
		t.Fatalf("Expected latest ID %d, got %d (exists=%v)", id2, latestID, exists)
	}
	if got := string(fs.Get(id1).Content); got != "class A {}" {
		t.Errorf("first unit content changed: %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Expected 2 units, got %d", fs.Len())
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()

	id := fs.AddVirtual("a.cs", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3} // позиции символов \n
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("Expected LineIdx length %d, got %d", len(expected), len(file.LineIdx))
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("Expected LineIdx[%d] = %d, got %d", i, val, file.LineIdx[i])
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("Expected FileVirtual flag to be set")
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("b.cs", []byte("class A\n{\n  int x;\n}\n"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{7, LineCol{Line: 1, Col: 8}},
		{8, LineCol{Line: 2, Col: 1}},
		{12, LineCol{Line: 3, Col: 3}},
	}
	for _, tt := range tests {
		got, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if got != tt.want {
			t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
	}
	if line := fs.Get(id).GetLine(3); line != "  int x;" {
		t.Errorf("GetLine(3) = %q", line)
	}
}

func TestResolveWithoutText(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("dump.mp", nil)
	if fs.Get(id).Flags&FileNoText == 0 {
		t.Fatal("expected FileNoText flag for empty content")
	}
	start, end := fs.Resolve(Span{File: id, Start: 4, End: 9})
	if start != (LineCol{Line: 1, Col: 5}) || end != (LineCol{Line: 1, Col: 10}) {
		t.Fatalf("unexpected positions %+v %+v", start, end)
	}
	if fs.Get(id).GetLine(1) != "" {
		t.Fatal("expected empty line for unit without text")
	}
}

func TestSpanBefore(t *testing.T) {
	a := Span{File: 0, Start: 10, End: 12}
	b := Span{File: 0, Start: 11, End: 12}
	c := Span{File: 1, Start: 0, End: 1}
	if !a.Before(b) || b.Before(a) {
		t.Fatal("expected a before b")
	}
	if !b.Before(c) {
		t.Fatal("expected lower file id first")
	}
	if a.Cover(b) != (Span{File: 0, Start: 10, End: 12}) {
		t.Fatalf("unexpected cover %v", a.Cover(b))
	}
}
