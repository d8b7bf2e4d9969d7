package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file name of a project manifest.
const ManifestName = "sharpc.toml"

// The dialect and platform are fixed: anything else is rejected before lowering.
const (
	LanguageVersion = "3"
	Platform        = "anycpu"
)

// Kind is the project output kind.
type Kind string

const (
	KindExe    Kind = "exe"
	KindWinExe Kind = "winexe"
	KindDll    Kind = "dll"
)

// Library reports whether the project emits a header next to its source.
func (k Kind) Library() bool { return k == KindDll }

// Manifest is one parsed sharpc.toml.
type Manifest struct {
	Path string // absolute manifest path
	Dir  string // directory Units and Output are relative to

	Name            string
	Kind            Kind
	LanguageVersion string
	Platform        string
	Release         bool
	References      []string
	Units           []string // glob patterns
	Output          string   // output directory
}

var (
	// ErrProjectSectionMissing indicates that [project] is missing in a manifest.
	ErrProjectSectionMissing = errors.New("missing [project]")
	// ErrNoUnits indicates that [project].units matched nothing.
	ErrNoUnits = errors.New("no unit dumps match [project].units")
)

type manifestFile struct {
	Project struct {
		Name            string   `toml:"name"`
		Kind            string   `toml:"kind"`
		LanguageVersion string   `toml:"language_version"`
		Platform        string   `toml:"platform"`
		Release         bool     `toml:"release"`
		References      []string `toml:"references"`
		Units           []string `toml:"units"`
		Output          string   `toml:"output"`
	} `toml:"project"`
}

// Load parses a manifest. Missing optional keys get defaults; unknown keys
// are an error. Load does not validate values, see Validate.
func Load(path string) (*Manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve manifest path: %w", err)
	}
	var cfg manifestFile
	meta, err := toml.DecodeFile(abs, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("project") {
		return nil, fmt.Errorf("%s: %w", path, ErrProjectSectionMissing)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%s: unknown keys %s", path, strings.Join(keys, ", "))
	}

	p := cfg.Project
	m := &Manifest{
		Path:            abs,
		Dir:             filepath.Dir(abs),
		Name:            strings.TrimSpace(p.Name),
		Kind:            Kind(strings.ToLower(strings.TrimSpace(p.Kind))),
		LanguageVersion: strings.TrimSpace(p.LanguageVersion),
		Platform:        strings.ToLower(strings.TrimSpace(p.Platform)),
		Release:         p.Release,
		References:      p.References,
		Units:           p.Units,
		Output:          strings.TrimSpace(p.Output),
	}
	if !meta.IsDefined("project", "name") || m.Name == "" {
		m.Name = filepath.Base(m.Dir)
	}
	if !meta.IsDefined("project", "kind") {
		m.Kind = KindExe
	}
	if !meta.IsDefined("project", "language_version") {
		m.LanguageVersion = LanguageVersion
	}
	if !meta.IsDefined("project", "platform") {
		m.Platform = Platform
	}
	if len(m.Units) == 0 {
		m.Units = []string{"*.mp", "*.json"}
	}
	if m.Output == "" {
		m.Output = "out"
	}
	return m, nil
}

// Validate runs the configuration checks. The first failing check wins.
func (m *Manifest) Validate() error {
	if m.LanguageVersion != LanguageVersion {
		return &ConfigError{Kind: ConfigDialect, Path: m.Path, Value: m.LanguageVersion}
	}
	if m.Platform != Platform {
		return &ConfigError{Kind: ConfigPlatform, Path: m.Path, Value: m.Platform}
	}
	switch m.Kind {
	case KindExe, KindWinExe, KindDll:
	default:
		return &ConfigError{Kind: ConfigOutputKind, Path: m.Path, Value: string(m.Kind)}
	}
	if !IsValidProjectName(m.Name) {
		return &ConfigError{Kind: ConfigManifest, Path: m.Path, Value: m.Name, Detail: "project name must be a C identifier"}
	}
	for _, ref := range m.References {
		if !IsValidProjectName(ref) {
			return &ConfigError{Kind: ConfigManifest, Path: m.Path, Value: ref, Detail: "reference must name a project"}
		}
		if ref == m.Name {
			return &ConfigError{Kind: ConfigReferenceCycle, Path: m.Path, Value: ref, Detail: "project references itself"}
		}
	}
	return nil
}

// UnitPaths expands Units against Dir. The result is sorted and free of
// duplicates so unit ids are stable across runs.
func (m *Manifest) UnitPaths() ([]string, error) {
	var out []string
	for _, pattern := range m.Units {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(m.Dir, filepath.FromSlash(pattern))
		}
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("%s: bad unit pattern %q: %w", m.Path, pattern, err)
		}
		out = append(out, matches...)
	}
	slices.Sort(out)
	out = slices.Compact(out)
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: %w", m.Path, ErrNoUnits)
	}
	return out, nil
}

// OutputDir returns the absolute output directory.
func (m *Manifest) OutputDir() string {
	if filepath.IsAbs(m.Output) {
		return m.Output
	}
	return filepath.Join(m.Dir, filepath.FromSlash(m.Output))
}

// IsValidProjectName reports whether name can be used as an output stem and
// header guard.
func IsValidProjectName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
