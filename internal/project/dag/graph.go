package dag

import (
	"fmt"
	"slices"
	"strings"

	"sharpc/internal/diag"
	"sharpc/internal/project"
	"sharpc/internal/source"
)

// Graph is the reference graph of a solution. Edges run from a referenced
// project to the projects that reference it, so Kahn order is build order.
type Graph struct {
	Edges   [][]ProjectID // Edges[dep] = зависимые проекты
	Indeg   []int         // число ссылок на проекты внутри решения
	Present []bool
}

// Node is one manifest of a solution with the reporter for its diagnostics.
type Node struct {
	Manifest *project.Manifest
	Span     source.Span // span of the manifest file, for diagnostics
	Reporter diag.Reporter
}

// Slot is the resolved node of an id.
type Slot struct {
	Node
	Present bool
	Broken  bool
}

// BuildGraph wires the reference edges. Duplicate project names are
// reported and the later manifest is ignored.
func BuildGraph(idx Index, nodes []Node) (Graph, []Slot) {
	count := len(idx.IDToName)
	g := Graph{
		Edges:   make([][]ProjectID, count),
		Indeg:   make([]int, count),
		Present: make([]bool, count),
	}
	slots := make([]Slot, count)

	for _, node := range nodes {
		if node.Manifest == nil {
			continue
		}
		id, ok := idx.NameToID[node.Manifest.Name]
		if !ok {
			continue
		}
		slot := &slots[int(id)]
		if slot.Present {
			diag.ReportError(node.Reporter, diag.CfgManifest, node.Span,
				fmt.Sprintf("duplicate project %q", node.Manifest.Name)).
				WithNote(slot.Span, "previous manifest "+slot.Manifest.Path).
				Emit()
			continue
		}
		slot.Node = node
		slot.Present = true
		g.Present[int(id)] = true
	}

	for to := range slots {
		slot := &slots[to]
		if !slot.Present {
			continue
		}
		seen := make(map[ProjectID]struct{}, len(slot.Manifest.References))
		for _, ref := range slot.Manifest.References {
			from, ok := idx.NameToID[ref]
			if !ok {
				continue
			}
			if _, dup := seen[from]; dup {
				continue
			}
			seen[from] = struct{}{}
			if int(from) == to {
				diag.ReportError(slot.Reporter, diag.CfgReferenceCycle, slot.Span,
					fmt.Sprintf("project %q references itself", ref)).Emit()
				continue
			}
			if !g.Present[int(from)] {
				continue
			}
			g.Edges[int(from)] = append(g.Edges[int(from)], toID(to))
			g.Indeg[to]++
		}
	}
	for i := range g.Edges {
		slices.Sort(g.Edges[i])
	}
	return g, slots
}

// ReportCycles reports every project left on a reference cycle.
func ReportCycles(idx Index, slots []Slot, topo *Topo) {
	if topo == nil || !topo.Cyclic || len(topo.Cycles) == 0 {
		return
	}
	names := make([]string, 0, len(topo.Cycles))
	for _, id := range topo.Cycles {
		names = append(names, idx.IDToName[int(id)])
	}
	summary := strings.Join(names, ", ")
	for _, id := range topo.Cycles {
		slot := &slots[int(id)]
		slot.Broken = true
		if !slot.Present || slot.Reporter == nil {
			continue
		}
		msg := fmt.Sprintf("project %q is on a reference cycle: %s", slot.Manifest.Name, summary)
		diag.ReportError(slot.Reporter, diag.CfgReferenceCycle, slot.Span, msg).Emit()
	}
}

// FailedDependency returns the first referenced project of slot that is
// broken, in manifest order.
func FailedDependency(idx Index, slots []Slot, id ProjectID) (string, bool) {
	slot := slots[int(id)]
	if !slot.Present {
		return "", false
	}
	for _, ref := range slot.Manifest.References {
		dep, ok := idx.NameToID[ref]
		if ok && slots[int(dep)].Broken {
			return ref, true
		}
	}
	return "", false
}
