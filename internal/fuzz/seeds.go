package fuzztests

import (
	"bytes"
	"testing"

	"sharpc/internal/analyzer"
)

const maxSeedBytes = 64 << 10 // ограничение для входов фаззера

var intRef = &analyzer.TypeRef{Name: "int", FullName: "System.Int32", Kind: analyzer.TypePrimitive, IsValueType: true}

// seedUnits covers every declaration category and a method body.
func seedUnits() []*analyzer.Unit {
	counter := &analyzer.Node{
		Kind: analyzer.KindClass, Name: "Counter", Modifiers: []string{"public", "partial"},
		Span: analyzer.Span{Start: 20, End: 120},
		Children: []*analyzer.Node{
			{Kind: analyzer.KindField, Name: "value", Type: intRef, Span: analyzer.Span{Start: 40, End: 50}},
			{Kind: analyzer.KindProperty, Name: "Value", Type: intRef, Modifiers: []string{"public"},
				Children: []*analyzer.Node{{Kind: analyzer.KindAccessor, Keyword: "get"}}},
			{Kind: analyzer.KindMethod, Name: "Next", Type: intRef, Modifiers: []string{"public"},
				Body: &analyzer.Node{Kind: analyzer.KindBlock, Children: []*analyzer.Node{{
					Kind: analyzer.KindReturn,
					Value: &analyzer.Node{
						Kind: analyzer.KindBinary, Op: "+", Type: intRef,
						Left: &analyzer.Node{Kind: analyzer.KindName, Name: "value", Type: intRef,
							Symbol: &analyzer.Symbol{Kind: "field", FullName: "App.Counter.value"}},
						Right: &analyzer.Node{Kind: analyzer.KindLiteral, Type: intRef,
							Const: &analyzer.Constant{Kind: "int", Int: 1}},
					},
				}}}},
		},
	}
	color := &analyzer.Node{
		Kind: analyzer.KindEnum, Name: "Color",
		Children: []*analyzer.Node{
			{Kind: analyzer.KindEnumMember, Name: "Red"},
			{Kind: analyzer.KindEnumMember, Name: "Blue", Const: &analyzer.Constant{Kind: "int", Int: 4}},
		},
	}
	point := &analyzer.Node{
		Kind: analyzer.KindStruct, Name: "Point",
		Children: []*analyzer.Node{
			{Kind: analyzer.KindField, Name: "X", Type: intRef},
			{Kind: analyzer.KindField, Name: "Y", Type: intRef},
		},
	}
	shape := &analyzer.Node{Kind: analyzer.KindInterface, Name: "IShape"}
	return []*analyzer.Unit{
		{Path: "app.cs", Nodes: []*analyzer.Node{{
			Kind: analyzer.KindNamespace, Name: "App",
			Children: []*analyzer.Node{counter, color, point, shape},
		}}},
		{Path: "empty.cs"},
	}
}

func addCorpusSeeds(f *testing.F, format analyzer.Format) {
	for _, u := range seedUnits() {
		var buf bytes.Buffer
		if err := analyzer.Encode(&buf, u, format); err != nil {
			f.Fatalf("encode seed %s: %v", u.Path, err)
		}
		f.Add(buf.Bytes())
	}
	f.Add([]byte{})
	if format == analyzer.FormatJSON {
		f.Add([]byte(`{"path":"x.cs","nodes":[null,{"kind":"class","name":"A","path":["A"],"span":{"start":0,"end":1}}]}`))
	}
}

func clampSeed(data []byte) []byte {
	if len(data) > maxSeedBytes {
		return data[:maxSeedBytes]
	}
	return data
}
