// Package c emits C source text from a merged project.
//
// Emission runs in two passes. The first validates the whole project
// (generic types, value-containment cycles) and fails before any text
// exists. The second renders definitions and bodies member by member;
// unsupported constructs are collected per member and withhold the output.
package c

import (
	"strings"
	"unicode"

	"sharpc/internal/decl"
	"sharpc/internal/registry"
)

// Options configures one project emission.
type Options struct {
	Name       string   // output stem, e.g. "App" for App.c / App.h
	Library    bool     // dll projects get a separate header
	References []string // referenced project stems, in manifest order
	Release    bool
	Kind       string // manifest kind for the banner (exe, winexe, dll)
}

// File is one emitted output file.
type File struct {
	Name    string
	Content string
}

// Output is the emitted text of one project.
type Output struct {
	Name   string
	Header string // library only
	Source string
}

// Files lists the output files in write order.
func (o *Output) Files() []File {
	if o == nil {
		return nil
	}
	var out []File
	if o.Header != "" {
		out = append(out, File{Name: o.Name + ".h", Content: o.Header})
	}
	return append(out, File{Name: o.Name + ".c", Content: o.Source})
}

type global struct {
	decl string // "int32_t App_User_Count"
	init string // "= 0" or empty
}

// Emitter holds the state of one emission.
type Emitter struct {
	proj  *registry.Project
	opts  Options
	graph map[string][]edge
	errs  ErrorList

	defs    strings.Builder
	globals []global
	protos  []string
	funcs   strings.Builder
}

// Emit validates p and renders it. On any error no output is returned; the
// error is an ErrorList.
func Emit(p *registry.Project, opts Options) (*Output, error) {
	if opts.Name == "" {
		opts.Name = "out"
	}
	e := &Emitter{proj: p, opts: opts}
	if err := e.validate(); err != nil {
		return nil, err
	}
	e.render()
	if len(e.errs) > 0 {
		return nil, e.errs
	}
	return e.assemble(), nil
}

// validate runs every whole-project check before any text is produced.
func (e *Emitter) validate() error {
	var errs ErrorList
	for _, d := range e.proj.All() {
		if d.IsGeneric {
			errs = append(errs, &GenericError{Decl: d.FullName, Span: d.Span})
			continue
		}
		for i := range d.Members {
			m := &d.Members[i]
			for _, t := range memberTypings(m) {
				if t.IsGeneric {
					errs = append(errs, &GenericError{Decl: d.FullName, Member: m.Name(), Type: t.TypeFullName, Span: m.Ident().Span})
					break
				}
			}
		}
	}
	e.graph = e.containment()
	for _, ce := range e.findCycles(e.graph) {
		errs = append(errs, ce)
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func memberTypings(m *decl.Member) []decl.Typing {
	switch d := m.Data.(type) {
	case *decl.FieldData:
		return []decl.Typing{d.Typing}
	case *decl.PropertyData:
		return []decl.Typing{d.Typing}
	case *decl.MethodData:
		out := []decl.Typing{d.Result}
		for _, p := range d.Params {
			out = append(out, p.Typing)
		}
		return out
	default:
		return nil
	}
}

func (e *Emitter) render() {
	for _, d := range e.proj.Enums() {
		e.emitEnum(d)
	}
	for _, d := range e.proj.Interfaces() {
		e.emitInterface(d)
	}
	// structs before classes unless a struct embeds a class by value
	aggregates := append(append([]*decl.TypeDecl(nil), e.proj.Structs()...), e.proj.Classes()...)
	for _, d := range e.definitionOrder(aggregates, e.graph) {
		e.emitAggregate(d)
	}
	// bodies follow discovery order, independent of definition order
	for _, d := range e.proj.All() {
		if d.Category().Aggregate() {
			e.emitFunctions(d)
		}
	}
}

func (e *Emitter) fail(err error) {
	e.errs = append(e.errs, err)
}

func (e *Emitter) assemble() *Output {
	out := &Output{Name: e.opts.Name}
	var fwd strings.Builder
	for _, d := range e.proj.All() {
		switch d.Category() {
		case decl.CategoryEnum:
			fwd.WriteString("enum " + d.FlatName + ";\n")
		case decl.CategoryInterface, decl.CategoryStruct, decl.CategoryClass:
			fwd.WriteString("struct " + d.FlatName + ";\n")
		}
	}

	var globalDefs, externs strings.Builder
	for _, g := range e.globals {
		globalDefs.WriteString(g.decl)
		if g.init != "" {
			globalDefs.WriteString(" " + g.init)
		}
		globalDefs.WriteString(";\n")
		externs.WriteString("extern " + g.decl + ";\n")
	}
	var protos strings.Builder
	for _, p := range e.protos {
		protos.WriteString(p + ";\n")
	}

	section := func(sb *strings.Builder, title, body string) {
		if body == "" {
			return
		}
		sb.WriteString("\n/* " + title + " */\n")
		sb.WriteString(body)
	}

	if !e.opts.Library {
		var src strings.Builder
		src.WriteString(e.banner())
		src.WriteString(e.includes())
		section(&src, "forward declarations", fwd.String())
		section(&src, "definitions", e.defs.String())
		section(&src, "globals", globalDefs.String())
		section(&src, "prototypes", protos.String())
		section(&src, "functions", e.funcs.String())
		out.Source = src.String()
		return out
	}

	guard := headerGuard(e.opts.Name)
	var hdr strings.Builder
	hdr.WriteString(e.banner())
	hdr.WriteString("#ifndef " + guard + "\n#define " + guard + "\n")
	hdr.WriteString(e.includes())
	section(&hdr, "forward declarations", fwd.String())
	section(&hdr, "definitions", e.defs.String())
	section(&hdr, "globals", externs.String())
	section(&hdr, "prototypes", protos.String())
	hdr.WriteString("\n#endif /* " + guard + " */\n")
	out.Header = hdr.String()

	var src strings.Builder
	src.WriteString(e.banner())
	src.WriteString("#include \"" + e.opts.Name + ".h\"\n")
	section(&src, "globals", globalDefs.String())
	section(&src, "functions", e.funcs.String())
	out.Source = src.String()
	return out
}

func (e *Emitter) banner() string {
	mode := "debug"
	if e.opts.Release {
		mode = "release"
	}
	kind := e.opts.Kind
	if kind == "" {
		kind = "exe"
		if e.opts.Library {
			kind = "dll"
		}
	}
	return "/* Code generated by sharpc. DO NOT EDIT. */\n/* project " + e.opts.Name + " (" + kind + ", " + mode + ") */\n\n"
}

var systemIncludes = []string{"stdint.h", "stdbool.h", "stddef.h", "stdlib.h"}

func (e *Emitter) includes() string {
	var sb strings.Builder
	for _, inc := range systemIncludes {
		sb.WriteString("#include <" + inc + ">\n")
	}
	for _, ref := range e.opts.References {
		sb.WriteString("#include \"" + ref + ".h\"\n")
	}
	return sb.String()
}

func headerGuard(name string) string {
	var sb strings.Builder
	for _, r := range name {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			sb.WriteRune(unicode.ToUpper(r))
		} else {
			sb.WriteByte('_')
		}
	}
	sb.WriteString("_H")
	return sb.String()
}
