// Package registry merges declaration fragments into canonical declarations.
//
// The registry is the single synchronisation point of a build: lowering runs
// in parallel, Insert is serialised. The merged result does not depend on the
// order fragments arrive in: members are ordered by their origin, and
// declarations inside each category by their earliest origin.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"sharpc/internal/decl"
	"sharpc/internal/names"
	"sharpc/internal/source"
)

var errNoCategory = errors.New("fragment has no category")

// Registry holds the canonical declarations of one project.
type Registry struct {
	mu    sync.Mutex
	table *names.Table

	enums      []*decl.TypeDecl
	interfaces []*decl.TypeDecl
	structs    []*decl.TypeDecl
	classes    []*decl.TypeDecl

	index map[string]*entry
}

type part struct {
	origin decl.Origin
	attrs  []decl.Attribute
}

type entry struct {
	decl  *decl.TypeDecl
	parts []part // one per merged fragment, ordered by origin
}

// New creates an empty registry backed by a fresh names table.
func New() *Registry {
	return NewWithTable(names.NewTable())
}

// NewWithTable creates an empty registry sharing table.
func NewWithTable(table *names.Table) *Registry {
	return &Registry{table: table, index: make(map[string]*entry)}
}

// Table returns the project-wide names table.
func (r *Registry) Table() *names.Table { return r.table }

// Len returns the number of canonical declarations.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.index)
}

// Insert adds one fragment. A partial fragment merges into an existing
// partial declaration of the same full name and category; anything else
// creates a new canonical declaration. On error nothing is changed.
func (r *Registry) Insert(frag *decl.TypeDecl) error {
	if frag == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cat := frag.Category()
	if cat == decl.CategoryNone {
		return fmt.Errorf("%s: %w", frag.FullName, errNoCategory)
	}
	if cat == decl.CategoryEnum && frag.Partial() {
		return &ConflictError{Kind: ConflictPartialEnum, FullName: frag.FullName, Span: frag.Span}
	}

	if existing, ok := r.index[frag.FullName]; ok {
		target := existing.decl
		if !frag.Partial() || !target.Partial() {
			return &ConflictError{Kind: ConflictDuplicateDecl, FullName: frag.FullName, Span: frag.Span, Prior: target.Span}
		}
		if target.Category() != cat {
			return &ConflictError{
				Kind:     ConflictCategoryMismatch,
				FullName: frag.FullName,
				Span:     frag.Span,
				Prior:    target.Span,
				Detail:   fmt.Sprintf("%s vs %s", target.Category(), cat),
			}
		}
		return r.merge(existing, frag)
	}
	return r.create(frag)
}

func (r *Registry) create(frag *decl.TypeDecl) error {
	if err := checkMembers(frag, nil); err != nil {
		return err
	}
	claims := []claim{{full: frag.FullName, span: frag.Span}}
	if frag.Category().Aggregate() {
		claims = append(claims, claim{full: names.Initializer(frag.FullName), span: frag.Span, synthetic: true})
	}
	claims = append(claims, memberClaims(frag)...)
	if err := r.checkClaims(claims); err != nil {
		return err
	}

	// commit
	if err := r.commitClaims(claims); err != nil {
		return err
	}
	canonical := frag.Clone()
	canonical.FlatName = names.Flatten(canonical.FullName)
	sortMembers(canonical.Members)
	e := &entry{decl: canonical, parts: []part{{origin: frag.Origin, attrs: frag.Attributes}}}
	r.index[canonical.FullName] = e
	r.place(canonical)
	return nil
}

func (r *Registry) merge(e *entry, frag *decl.TypeDecl) error {
	target := e.decl
	if err := checkMembers(frag, target); err != nil {
		return err
	}
	claims := memberClaims(frag)
	if err := r.checkClaims(claims); err != nil {
		return err
	}

	// commit
	if err := r.commitClaims(claims); err != nil {
		return err
	}
	target.Members = append(target.Members, frag.Members...)
	sortMembers(target.Members)
	target.Modifiers |= frag.Modifiers
	target.IsGeneric = target.IsGeneric || frag.IsGeneric

	e.parts = append(e.parts, part{origin: frag.Origin, attrs: frag.Attributes})
	sort.SliceStable(e.parts, func(i, j int) bool { return e.parts[i].origin.Before(e.parts[j].origin) })
	target.Attributes = target.Attributes[:0]
	for _, p := range e.parts {
		target.Attributes = append(target.Attributes, p.attrs...)
	}

	if frag.Origin.Before(target.Origin) {
		target.Origin = frag.Origin
		target.Span = frag.Span
		target.Outer = frag.Outer
		r.reorder(target.Category())
	}
	return nil
}

// checkMembers rejects incoming members whose names repeat among themselves
// or on target.
func checkMembers(frag, target *decl.TypeDecl) error {
	seen := make(map[string]source.Span, len(frag.Members))
	for i := range frag.Members {
		m := &frag.Members[i]
		name := m.Name()
		if prior, ok := seen[name]; ok {
			return &ConflictError{Kind: ConflictDuplicateMember, FullName: frag.FullName, Member: name, Span: m.Ident().Span, Prior: prior}
		}
		if target != nil {
			if existing, ok := target.Member(name); ok {
				return &ConflictError{Kind: ConflictDuplicateMember, FullName: frag.FullName, Member: name, Span: m.Ident().Span, Prior: existing.Ident().Span}
			}
		}
		seen[name] = m.Ident().Span
	}
	return nil
}

func sortMembers(ms []decl.Member) {
	sort.SliceStable(ms, func(i, j int) bool {
		oi, oj := ms[i].Origin, ms[j].Origin
		if oi != oj {
			return oi.Before(oj)
		}
		return ms[i].Name() < ms[j].Name()
	})
}

func (r *Registry) slot(cat decl.Category) *[]*decl.TypeDecl {
	switch cat {
	case decl.CategoryEnum:
		return &r.enums
	case decl.CategoryInterface:
		return &r.interfaces
	case decl.CategoryStruct:
		return &r.structs
	case decl.CategoryClass:
		return &r.classes
	default:
		return nil
	}
}

func (r *Registry) place(d *decl.TypeDecl) {
	s := r.slot(d.Category())
	*s = append(*s, d)
	r.reorder(d.Category())
}

func (r *Registry) reorder(cat decl.Category) {
	s := r.slot(cat)
	sort.SliceStable(*s, func(i, j int) bool { return discoveredBefore((*s)[i], (*s)[j]) })
}

func discoveredBefore(a, b *decl.TypeDecl) bool {
	if a.Origin != b.Origin {
		return a.Origin.Before(b.Origin)
	}
	return a.FullName < b.FullName
}
