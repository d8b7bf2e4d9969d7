package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRingTracerKeepsLastEvents(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d"} {
		Point(r, ScopeUnit, name, "", 0)
	}
	got := r.Snapshot()
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	if got[0].Name != "b" || got[2].Name != "d" {
		t.Fatalf("unexpected order: %s..%s", got[0].Name, got[2].Name)
	}
	if got[0].Seq >= got[1].Seq {
		t.Fatalf("sequence is not monotonic")
	}
}

func TestLevelFiltersScopes(t *testing.T) {
	r := NewRingTracer(16, LevelPhase)
	span := Begin(r, ScopePhase, "lower", 0)
	Begin(r, ScopeUnit, "unit:a.cs", span.ID()).End("")
	span.End("")
	got := r.Snapshot()
	if len(got) != 2 {
		t.Fatalf("expected only phase events, got %d", len(got))
	}
	if got[1].Kind != KindSpanEnd || got[1].SpanID != span.ID() {
		t.Fatalf("unexpected end event: %+v", got[1])
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	st := NewStreamTracer(&buf, LevelUnit, FormatText)
	span := Begin(st, ScopePhase, "merge", 0)
	span.WithExtra("decls", "3").WithExtra("conflicts", "0")
	span.End("ok")
	out := buf.String()
	if !strings.Contains(out, "→ phase:merge") {
		t.Fatalf("missing begin line:\n%s", out)
	}
	if !strings.Contains(out, "{conflicts=0, decls=3}") {
		t.Fatalf("extra keys should be sorted:\n%s", out)
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	st := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(st, ScopeDecl, "insert", "App.User", 7)
	line := strings.TrimSpace(buf.String())
	if !strings.HasPrefix(line, "{") || !strings.Contains(line, `"scope":"decl"`) || !strings.Contains(line, `"parent_id":7`) {
		t.Fatalf("unexpected ndjson: %s", line)
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("expected nop tracer by default")
	}
	r := NewRingTracer(4, LevelDebug)
	ctx := WithTracer(context.Background(), r)
	span := Begin(FromContext(ctx), ScopeDriver, "build", 0)
	ctx = WithSpan(ctx, span)
	if CurrentSpan(ctx) != span.ID() {
		t.Fatalf("span id not propagated")
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	if l, err := ParseLevel("unit"); err != nil || l != LevelUnit {
		t.Fatalf("ParseLevel(unit) = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error")
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Fatalf("ParseFormat(ndjson) = %v, %v", f, err)
	}
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("off level should give disabled tracer")
	}
}
