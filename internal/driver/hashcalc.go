package driver

import (
	"slices"

	"sharpc/internal/project"
	"sharpc/internal/project/dag"
	"sharpc/internal/version"
)

// contentHash digests everything a project build reads: the manifest, every
// unit dump and the compiler version.
func contentHash(m *project.Manifest, units []string) (project.Digest, error) {
	manifest, err := project.DigestFile(m.Path)
	if err != nil {
		return project.Digest{}, err
	}
	parts := make([]project.Digest, 0, len(units)+1)
	parts = append(parts, project.DigestBytes([]byte(version.Version)))
	sorted := slices.Clone(units)
	slices.Sort(sorted)
	for _, u := range sorted {
		d, err := project.DigestFile(u)
		if err != nil {
			return project.Digest{}, err
		}
		parts = append(parts, project.DigestBytes([]byte(u)), d)
	}
	return project.Combine(manifest, parts...), nil
}

// ComputeProjectHashes folds each project's content hash with the hashes of
// the projects it references, in build order. Cyclic solutions get no
// hashes.
func ComputeProjectHashes(idx dag.Index, slots []dag.Slot, topo *dag.Topo, content []project.Digest) []project.Digest {
	out := make([]project.Digest, len(slots))
	if topo == nil || topo.Cyclic {
		return out
	}
	for _, id := range topo.Order {
		slot := slots[int(id)]
		if !slot.Present {
			continue
		}
		deps := make([]project.Digest, 0, len(slot.Manifest.References))
		for _, ref := range slot.Manifest.References {
			if dep, ok := idx.NameToID[ref]; ok {
				deps = append(deps, out[int(dep)])
			}
		}
		out[int(id)] = project.Combine(content[int(id)], deps...)
	}
	return out
}
