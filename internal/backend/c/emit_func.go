package c

import (
	"strings"

	"sharpc/internal/decl"
	"sharpc/internal/names"
)

// emitFunctions writes accessor and method bodies of one aggregate, then its
// instance initializer.
func (e *Emitter) emitFunctions(d *decl.TypeDecl) {
	self := "struct " + d.FlatName + "* self"
	for i := range d.Members {
		m := &d.Members[i]
		full := m.Ident().FullName
		recv := self
		if m.Static() {
			recv = ""
		}
		switch data := m.Data.(type) {
		case *decl.PropertyData:
			if data.Get == nil && data.Set == nil {
				continue
			}
			t, err := e.cType(data.Typing, full)
			if err != nil {
				e.fail(withSpan(err, m))
				continue
			}
			if data.Get != nil {
				params := recv
				if params == "" {
					params = "void"
				}
				sig := t + " " + names.Flatten(names.Getter(d.FullName, data.Name)) + "(" + params + ")"
				e.emitFunction(d, m, sig, data.Get)
			}
			if data.Set != nil {
				params := t + " value"
				if recv != "" {
					params = recv + ", " + params
				}
				sig := "void " + names.Flatten(names.Setter(d.FullName, data.Name)) + "(" + params + ")"
				e.emitFunction(d, m, sig, data.Set)
			}
		case *decl.MethodData:
			ret, err := e.cType(data.Result, full)
			if err != nil {
				e.fail(withSpan(err, m))
				continue
			}
			params, err := e.paramList(recv, data.Params, full)
			if err != nil {
				e.fail(withSpan(err, m))
				continue
			}
			sig := ret + " " + data.FlatName + "(" + params + ")"
			if data.Body == nil {
				e.protos = append(e.protos, sig)
				continue
			}
			e.emitFunction(d, m, sig, data.Body)
		}
	}
	e.emitInitializer(d)
}

func (e *Emitter) emitFunction(d *decl.TypeDecl, m *decl.Member, sig string, b *decl.Body) {
	fb := &body{e: e, owner: d, member: m.Ident().FullName, static: m.Static(), indent: 1}
	if err := fb.stmts(b.Stmts); err != nil {
		e.fail(err)
		return
	}
	e.protos = append(e.protos, sig)
	e.funcs.WriteString(sig + "\n{\n" + fb.sb.String() + "}\n\n")
}

// emitInitializer writes Owner__init for instance storage with constant
// initializers. Static storage is initialised at its global definition.
func (e *Emitter) emitInitializer(d *decl.TypeDecl) {
	var sb strings.Builder
	for i := range d.Members {
		m := &d.Members[i]
		if !m.Storage() || m.Static() {
			continue
		}
		init := storageInit(m)
		if init == nil {
			continue
		}
		t, _ := m.VarTyping()
		lit, err := literal(init, t)
		if err != nil {
			e.fail(&UnsupportedError{Variant: err.Error(), Member: m.Ident().FullName, Span: m.Ident().Span})
			continue
		}
		sb.WriteString("\tself->" + m.Name() + " = " + lit + ";\n")
	}
	if sb.Len() == 0 {
		return
	}
	sig := "void " + names.Flatten(names.Initializer(d.FullName)) + "(struct " + d.FlatName + "* self)"
	e.protos = append(e.protos, sig)
	e.funcs.WriteString(sig + "\n{\n" + sb.String() + "}\n\n")
}
