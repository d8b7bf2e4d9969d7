package c

import (
	"sharpc/internal/decl"
)

// edge is a by-value containment edge from an aggregate to another.
type edge struct {
	link Link
	to   *decl.TypeDecl
	m    *decl.Member
}

// containment builds the value-containment graph over struct and class
// declarations. A member contributes an edge when it is non-static storage
// held by value (see byValue) and names a struct or class of the project.
// By-reference members never contribute.
func (e *Emitter) containment() map[string][]edge {
	g := make(map[string][]edge)
	for _, d := range e.proj.All() {
		if !d.Category().Aggregate() {
			continue
		}
		for i := range d.Members {
			m := &d.Members[i]
			if !m.Storage() || m.Static() {
				continue
			}
			t, ok := m.VarTyping()
			if !ok || !e.byValue(t) {
				continue
			}
			target, ok := e.proj.Lookup(t.TypeFullName)
			if !ok || !target.Category().Aggregate() {
				continue
			}
			g[d.FullName] = append(g[d.FullName], edge{
				link: Link{Owner: d.FullName, Member: m.Name(), Target: target.FullName},
				to:   target,
				m:    m,
			})
		}
	}
	return g
}

// findCycles reports every distinct cycle reachable by DFS, in discovery
// order of the declaration where the cycle is first entered.
func (e *Emitter) findCycles(g map[string][]edge) []*CycleError {
	const (
		white = iota
		grey
		black
	)
	color := make(map[string]int)
	var (
		stack []edge
		out   []*CycleError
	)

	var visit func(name string)
	visit = func(name string) {
		color[name] = grey
		for _, ed := range g[name] {
			switch color[ed.to.FullName] {
			case white:
				stack = append(stack, ed)
				visit(ed.to.FullName)
				stack = stack[:len(stack)-1]
			case grey:
				// back edge: the chain starts at the edge leaving ed.to
				i := len(stack)
				for j := range stack {
					if stack[j].link.Owner == ed.to.FullName {
						i = j
						break
					}
				}
				chain := make([]Link, 0, len(stack)-i+1)
				first := ed.m
				if i < len(stack) {
					first = stack[i].m
				}
				for _, s := range stack[i:] {
					chain = append(chain, s.link)
				}
				chain = append(chain, ed.link)
				out = append(out, &CycleError{Chain: chain, Span: first.Ident().Span})
			}
		}
		color[name] = black
	}

	for _, d := range e.proj.All() {
		if d.Category().Aggregate() && color[d.FullName] == white {
			visit(d.FullName)
		}
	}
	return out
}

// definitionOrder orders one category group so every by-value dependency
// inside the group is defined first. Ties keep discovery order. Must only be
// called on an acyclic graph.
func (e *Emitter) definitionOrder(group []*decl.TypeDecl, g map[string][]edge) []*decl.TypeDecl {
	inGroup := make(map[string]bool, len(group))
	for _, d := range group {
		inGroup[d.FullName] = true
	}
	indegree := make(map[string]int, len(group))
	for _, d := range group {
		for _, ed := range g[d.FullName] {
			if inGroup[ed.to.FullName] && ed.to.FullName != d.FullName {
				indegree[d.FullName]++
			}
		}
	}

	done := make(map[string]bool, len(group))
	out := make([]*decl.TypeDecl, 0, len(group))
	for len(out) < len(group) {
		progressed := false
		for _, d := range group {
			if done[d.FullName] || indegree[d.FullName] > 0 {
				continue
			}
			done[d.FullName] = true
			out = append(out, d)
			progressed = true
			// release everything that held d by value
			for _, other := range group {
				for _, ed := range g[other.FullName] {
					if ed.to.FullName == d.FullName && other.FullName != d.FullName {
						indegree[other.FullName]--
					}
				}
			}
			break
		}
		if !progressed {
			// graph was not acyclic; fall back to discovery order for the rest
			for _, d := range group {
				if !done[d.FullName] {
					out = append(out, d)
				}
			}
			break
		}
	}
	return out
}
