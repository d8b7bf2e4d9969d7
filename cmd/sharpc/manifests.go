package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"sharpc/internal/project"
)

const noManifestMessage = "no " + project.ManifestName + " found in the current directory or its parents"

// resolveManifests maps command arguments (manifest files or project
// directories) to manifest paths. No arguments means the nearest manifest
// above the working directory.
func resolveManifests(args []string) ([]string, error) {
	if len(args) == 0 {
		path, ok, err := project.FindManifest(".")
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.New(noManifestMessage)
		}
		return []string{path}, nil
	}
	out := make([]string, 0, len(args))
	seen := make(map[string]struct{}, len(args))
	for _, arg := range args {
		path, err := project.ResolveManifest(arg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", arg, err)
		}
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		out = append(out, path)
	}
	return out, nil
}

func formatPathForOutput(root, path string) string {
	if root == "" || path == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || len(rel) > 2 && rel[:3] == ".."+string(filepath.Separator) {
		return path
	}
	return filepath.ToSlash(rel)
}

func workingDir() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}
