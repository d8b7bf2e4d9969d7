package c

import (
	"sharpc/internal/decl"
)

// builtin C spellings, keyed by both keyword and System name.
var builtins = map[string]string{
	"void": "void", "System.Void": "void",
	"bool": "bool", "System.Boolean": "bool",
	"sbyte": "int8_t", "System.SByte": "int8_t",
	"byte": "uint8_t", "System.Byte": "uint8_t",
	"short": "int16_t", "System.Int16": "int16_t",
	"ushort": "uint16_t", "System.UInt16": "uint16_t",
	"int": "int32_t", "System.Int32": "int32_t",
	"uint": "uint32_t", "System.UInt32": "uint32_t",
	"long": "int64_t", "System.Int64": "int64_t",
	"ulong": "uint64_t", "System.UInt64": "uint64_t",
	"char": "uint16_t", "System.Char": "uint16_t",
	"float": "float", "System.Single": "float",
	"double": "double", "System.Double": "double",
	"string": "char*", "System.String": "char*",
	"object": "void*", "System.Object": "void*",
	"System.IntPtr": "intptr_t", "System.UIntPtr": "uintptr_t",
}

func builtinName(t decl.Typing) (string, bool) {
	if s, ok := builtins[t.TypeFullName]; ok {
		return s, true
	}
	if s, ok := builtins[t.TypeName]; ok && t.TypeFullName == "" {
		return s, true
	}
	return "", false
}

func isString(t decl.Typing) bool {
	s, ok := builtinName(t)
	return ok && s == "char*"
}

// category resolves the project category of a typing, preferring the
// project's own declaration over the analyzer hint.
func (e *Emitter) category(t decl.Typing) decl.Category {
	if d, ok := e.proj.Lookup(t.TypeFullName); ok {
		return d.Category()
	}
	return t.Category
}

// byValue reports whether storage of t embeds a struct or class inline.
// The containment graph, the type speller and member access all go
// through it, so a member that adds no graph edge is never spelled inline.
func (e *Emitter) byValue(t decl.Typing) bool {
	if t.IsArray || !t.IsValueType {
		return false
	}
	switch e.category(t) {
	case decl.CategoryStruct, decl.CategoryClass:
		return true
	}
	return false
}

// elemType spells the element (non-array) type.
func (e *Emitter) elemType(t decl.Typing, member string) (string, error) {
	if t.IsGeneric {
		return "", &UnsupportedError{Variant: "generic type " + t.TypeFullName, Member: member}
	}
	if s, ok := builtinName(t); ok {
		return s, nil
	}
	flat := t.TypeFlatName
	switch e.category(t) {
	case decl.CategoryEnum:
		return "enum " + flat, nil
	case decl.CategoryStruct, decl.CategoryClass:
		elem := t
		elem.IsArray = false
		if e.byValue(elem) {
			return "struct " + flat, nil
		}
		return "struct " + flat + "*", nil
	case decl.CategoryInterface:
		return "struct " + flat + "*", nil
	}
	if t.IsValueType {
		return "", &UnsupportedError{Variant: "external value type " + t.TypeFullName, Member: member}
	}
	// external reference types stay opaque
	return "void*", nil
}

// cType spells a storage, parameter or result type.
func (e *Emitter) cType(t decl.Typing, member string) (string, error) {
	if t.IsVoid() && !t.IsArray {
		return "void", nil
	}
	s, err := e.elemType(t, member)
	if err != nil {
		return "", err
	}
	if t.IsArray {
		s += "*"
	}
	return s, nil
}

// isPointer reports whether values of t are held through a C pointer.
func (e *Emitter) isPointer(t decl.Typing) bool {
	if t.IsArray {
		return true
	}
	switch e.category(t) {
	case decl.CategoryStruct, decl.CategoryClass:
		return !e.byValue(t)
	case decl.CategoryInterface:
		return true
	case decl.CategoryEnum:
		return false
	}
	return !t.IsValueType
}
