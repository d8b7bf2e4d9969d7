package c

import (
	"strings"

	"sharpc/internal/decl"
)

func (e *Emitter) emitEnum(d *decl.TypeDecl) {
	var sb strings.Builder
	sb.WriteString("enum " + d.FlatName + "\n{\n")
	n := 0
	for i := range d.Members {
		m := &d.Members[i]
		f, ok := m.Data.(*decl.FieldData)
		if !ok {
			e.fail(&UnsupportedError{Variant: m.Kind.String() + " in enum", Member: m.Ident().FullName, Span: m.Ident().Span})
			continue
		}
		sb.WriteString("\t" + f.FlatName)
		if f.Init != nil {
			lit, err := literal(f.Init, f.Typing)
			if err != nil {
				e.fail(&UnsupportedError{Variant: err.Error(), Member: f.FullName, Span: f.Span})
				continue
			}
			sb.WriteString(" = " + lit)
		}
		sb.WriteString(",\n")
		n++
	}
	if n == 0 {
		// C forbids empty enumerator lists
		sb.WriteString("\t" + d.FlatName + "__empty,\n")
	}
	sb.WriteString("};\n\n")
	e.defs.WriteString(sb.String())
}

// emitInterface lowers an interface to a struct of function pointers. Every
// slot takes the receiver as void* self.
func (e *Emitter) emitInterface(d *decl.TypeDecl) {
	var sb strings.Builder
	sb.WriteString("struct " + d.FlatName + "\n{\n")
	n := 0
	for i := range d.Members {
		m := &d.Members[i]
		slots, err := e.interfaceSlots(m)
		if err != nil {
			e.fail(err)
			continue
		}
		for _, s := range slots {
			sb.WriteString("\t" + s + ";\n")
			n++
		}
	}
	if n == 0 {
		sb.WriteString("\tuint8_t _reserved;\n")
	}
	sb.WriteString("};\n\n")
	e.defs.WriteString(sb.String())
}

func (e *Emitter) interfaceSlots(m *decl.Member) ([]string, error) {
	full := m.Ident().FullName
	switch data := m.Data.(type) {
	case *decl.MethodData:
		ret, err := e.cType(data.Result, full)
		if err != nil {
			return nil, err
		}
		params, err := e.paramList("void* self", data.Params, full)
		if err != nil {
			return nil, err
		}
		return []string{ret + " (*" + data.Name + ")(" + params + ")"}, nil
	case *decl.PropertyData:
		t, err := e.cType(data.Typing, full)
		if err != nil {
			return nil, err
		}
		var out []string
		if data.HasGet {
			out = append(out, t+" (*get_"+data.Name+")(void* self)")
		}
		if data.HasSet {
			out = append(out, "void (*set_"+data.Name+")(void* self, "+t+" value)")
		}
		return out, nil
	default:
		return nil, &UnsupportedError{Variant: m.Kind.String() + " in interface", Member: full, Span: m.Ident().Span}
	}
}

// emitAggregate writes the struct definition of a struct or class.
// Instance storage becomes fields; static storage becomes globals.
func (e *Emitter) emitAggregate(d *decl.TypeDecl) {
	var sb strings.Builder
	sb.WriteString("struct " + d.FlatName + "\n{\n")
	n := 0
	for i := range d.Members {
		m := &d.Members[i]
		if !m.Storage() {
			continue
		}
		t, _ := m.VarTyping()
		ct, err := e.cType(t, m.Ident().FullName)
		if err != nil {
			e.fail(withSpan(err, m))
			continue
		}
		if m.Static() {
			e.addGlobal(m, ct, t)
			continue
		}
		sb.WriteString("\t" + ct + " " + m.Name() + ";\n")
		n++
	}
	if n == 0 {
		sb.WriteString("\tuint8_t _reserved;\n")
	}
	sb.WriteString("};\n\n")
	e.defs.WriteString(sb.String())
}

func (e *Emitter) addGlobal(m *decl.Member, ct string, t decl.Typing) {
	id := m.Ident()
	g := global{decl: ct + " " + id.FlatName}
	if id.Modifiers.Has(decl.ModConst) {
		g.decl = "const " + g.decl
	}
	if init := storageInit(m); init != nil {
		lit, err := literal(init, t)
		if err != nil {
			e.fail(&UnsupportedError{Variant: err.Error(), Member: id.FullName, Span: id.Span})
			return
		}
		g.init = "= " + lit
	}
	e.globals = append(e.globals, g)
}

func storageInit(m *decl.Member) *decl.Constant {
	switch data := m.Data.(type) {
	case *decl.FieldData:
		return data.Init
	case *decl.PropertyData:
		return data.Init
	default:
		return nil
	}
}

func withSpan(err error, m *decl.Member) error {
	if ue, ok := err.(*UnsupportedError); ok && ue.Span.Empty() {
		ue.Span = m.Ident().Span
	}
	return err
}

func (e *Emitter) paramList(self string, params []decl.Param, member string) (string, error) {
	parts := make([]string, 0, len(params)+1)
	if self != "" {
		parts = append(parts, self)
	}
	for _, p := range params {
		t, err := e.cType(p.Typing, member)
		if err != nil {
			return "", err
		}
		parts = append(parts, t+" "+p.Name)
	}
	if len(parts) == 0 {
		return "void", nil
	}
	return strings.Join(parts, ", "), nil
}
