package dag

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// Topo is the build order of a solution.
type Topo struct {
	Order   []ProjectID   // линейный порядок сборки
	Batches [][]ProjectID // волны проектов, не зависящих друг от друга
	Cyclic  bool
	Cycles  []ProjectID // проекты, оставшиеся в цикле
}

// ToposortKahn orders the present projects so every reference is built
// before the projects that use it. Ties break by id, i.e. by name.
func ToposortKahn(g Graph) *Topo {
	count := len(g.Edges)
	indeg := slices.Clone(g.Indeg)
	topo := &Topo{Order: make([]ProjectID, 0, count)}

	present := 0
	var wave []ProjectID
	for i := range count {
		if !g.Present[i] {
			continue
		}
		present++
		if indeg[i] == 0 {
			wave = append(wave, toID(i))
		}
	}

	for len(wave) > 0 {
		topo.Batches = append(topo.Batches, wave)
		var next []ProjectID
		for _, id := range wave {
			topo.Order = append(topo.Order, id)
			for _, to := range g.Edges[int(id)] {
				indeg[int(to)]--
				if indeg[int(to)] == 0 {
					next = append(next, to)
				}
			}
		}
		slices.Sort(next)
		wave = next
	}

	if len(topo.Order) != present {
		topo.Cyclic = true
		for i := range count {
			if g.Present[i] && indeg[i] > 0 {
				topo.Cycles = append(topo.Cycles, toID(i))
			}
		}
	}
	return topo
}

func toID(i int) ProjectID {
	id, err := safecast.Conv[ProjectID](i)
	if err != nil {
		panic(fmt.Errorf("project id overflow: %w", err))
	}
	return id
}
