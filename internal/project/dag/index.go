package dag

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"sharpc/internal/project"
)

// ProjectID is the dense id of a project inside one solution.
type ProjectID uint32

// Index maps project names to ids. Ids follow sorted name order so a
// solution builds identically however its manifests were listed.
type Index struct {
	NameToID map[string]ProjectID
	IDToName []string
}

// BuildIndex collects the names of all loaded manifests. References to
// projects outside the solution are not indexed; they are prebuilt headers.
func BuildIndex(manifests []*project.Manifest) Index {
	names := make([]string, 0, len(manifests))
	for _, m := range manifests {
		if m != nil && m.Name != "" {
			names = append(names, m.Name)
		}
	}
	slices.Sort(names)
	names = slices.Compact(names)

	idx := Index{NameToID: make(map[string]ProjectID, len(names)), IDToName: names}
	for i, name := range names {
		id, err := safecast.Conv[ProjectID](i)
		if err != nil {
			panic(fmt.Errorf("project id overflow: %w", err))
		}
		idx.NameToID[name] = id
	}
	return idx
}
