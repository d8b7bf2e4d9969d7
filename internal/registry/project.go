package registry

import (
	"sort"

	"fortio.org/safecast"

	"sharpc/internal/decl"
)

// Project is the frozen result of merging: the input of the emitter.
type Project struct {
	enums      []*decl.TypeDecl
	interfaces []*decl.TypeDecl
	structs    []*decl.TypeDecl
	classes    []*decl.TypeDecl
	all        []*decl.TypeDecl

	byName   map[string]*decl.TypeDecl
	ordinal  map[string]uint32
	byMember map[string]memberRef
}

type memberRef struct {
	owner *decl.TypeDecl
	index int
}

// Snapshot freezes the registry. Later inserts do not affect the snapshot.
func (r *Registry) Snapshot() *Project {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := &Project{
		byName:   make(map[string]*decl.TypeDecl, len(r.index)),
		ordinal:  make(map[string]uint32, len(r.index)),
		byMember: make(map[string]memberRef),
	}
	freeze := func(src []*decl.TypeDecl) []*decl.TypeDecl {
		out := make([]*decl.TypeDecl, len(src))
		for i, d := range src {
			out[i] = d.Clone()
		}
		return out
	}
	p.enums = freeze(r.enums)
	p.interfaces = freeze(r.interfaces)
	p.structs = freeze(r.structs)
	p.classes = freeze(r.classes)
	p.index()
	return p
}

func (p *Project) index() {
	p.all = make([]*decl.TypeDecl, 0, len(p.enums)+len(p.interfaces)+len(p.structs)+len(p.classes))
	for _, cat := range decl.Categories {
		p.all = append(p.all, p.ByCategory(cat)...)
	}
	sort.SliceStable(p.all, func(i, j int) bool { return discoveredBefore(p.all[i], p.all[j]) })
	for i, d := range p.all {
		p.byName[d.FullName] = d
		if n, err := safecast.Conv[uint32](i); err == nil {
			p.ordinal[d.FullName] = n
		}
		for mi := range d.Members {
			p.byMember[d.Members[mi].Ident().FullName] = memberRef{owner: d, index: mi}
		}
	}
}

// Enums returns enum declarations in discovery order.
func (p *Project) Enums() []*decl.TypeDecl { return p.enums }

// Interfaces returns interface declarations in discovery order.
func (p *Project) Interfaces() []*decl.TypeDecl { return p.interfaces }

// Structs returns struct declarations in discovery order.
func (p *Project) Structs() []*decl.TypeDecl { return p.structs }

// Classes returns class declarations in discovery order.
func (p *Project) Classes() []*decl.TypeDecl { return p.classes }

// ByCategory returns the declarations of cat in discovery order.
func (p *Project) ByCategory(cat decl.Category) []*decl.TypeDecl {
	switch cat {
	case decl.CategoryEnum:
		return p.enums
	case decl.CategoryInterface:
		return p.interfaces
	case decl.CategoryStruct:
		return p.structs
	case decl.CategoryClass:
		return p.classes
	default:
		return nil
	}
}

// All returns every declaration in discovery order across categories.
func (p *Project) All() []*decl.TypeDecl { return p.all }

// Len returns the number of declarations.
func (p *Project) Len() int { return len(p.all) }

// Lookup finds a declaration by full name.
func (p *Project) Lookup(fullName string) (*decl.TypeDecl, bool) {
	d, ok := p.byName[fullName]
	return d, ok
}

// Ordinal returns the discovery position of a declaration.
func (p *Project) Ordinal(fullName string) (uint32, bool) {
	n, ok := p.ordinal[fullName]
	return n, ok
}

// MemberByFullName finds a member and its owner.
func (p *Project) MemberByFullName(fullName string) (*decl.TypeDecl, *decl.Member, bool) {
	ref, ok := p.byMember[fullName]
	if !ok {
		return nil, nil, false
	}
	return ref.owner, &ref.owner.Members[ref.index], true
}
