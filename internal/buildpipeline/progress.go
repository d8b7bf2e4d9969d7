package buildpipeline

import (
	"path/filepath"
	"strings"

	"sharpc/internal/project"
)

// ProgressProjects returns the display names of the projects the manifests
// declare, in argument order. Unreadable manifests show as their path.
func ProgressProjects(manifests []string) []string {
	names := make([]string, 0, len(manifests))
	seen := make(map[string]struct{}, len(manifests))
	for _, path := range manifests {
		name := filepath.ToSlash(filepath.Clean(path))
		if m, err := project.Load(path); err == nil {
			name = m.Name
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// displayPath shortens file to a slash path relative to baseDir when it
// lies under it.
func displayPath(file, baseDir string) string {
	if file == "" {
		return file
	}
	path := filepath.Clean(file)
	base := strings.TrimSpace(baseDir)
	if base != "" {
		if abs, err := filepath.Abs(base); err == nil {
			base = abs
		}
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if rel, err := filepath.Rel(base, path); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
			path = rel
		}
	}
	return filepath.ToSlash(path)
}
