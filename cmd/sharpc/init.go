package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"sharpc/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Create a sharpc.toml manifest",
	Long: `Create a project manifest (sharpc.toml) in the given directory, or in the
current directory when the argument is omitted. A missing directory is
created. Unit dumps (*.mp, *.json) placed next to the manifest are picked up
by default.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

// runInit writes a manifest named after the target directory. It refuses to
// overwrite an existing manifest.
func runInit(cmd *cobra.Command, args []string) error {
	kind, err := cmd.Flags().GetString("kind")
	if err != nil {
		return err
	}
	switch project.Kind(kind) {
	case project.KindExe, project.KindWinExe, project.KindDll:
	default:
		return fmt.Errorf("unsupported kind %q (expected exe|winexe|dll)", kind)
	}

	target := workingDir()
	if len(args) > 0 && args[0] != "." {
		target = args[0]
		if !filepath.IsAbs(target) {
			target = filepath.Join(workingDir(), target)
		}
	}
	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	manifestPath := filepath.Join(target, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}
	name := projectNameFromDir(target)
	if err := os.WriteFile(manifestPath, []byte(buildDefaultManifest(name, kind)), 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s project %s in %s\n", kind, name, formatPathForOutput(workingDir(), target))
	return nil
}

// projectNameFromDir turns a directory name into a C identifier: invalid
// characters become underscores, a leading digit gets a prefix.
func projectNameFromDir(dir string) string {
	base := strings.TrimSpace(filepath.Base(dir))
	var sb strings.Builder
	for _, r := range base {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	name := sb.String()
	if name == "" || strings.Trim(name, "_") == "" {
		return "Project"
	}
	if !project.IsValidProjectName(name) {
		name = "P" + name
	}
	return name
}

func buildDefaultManifest(name, kind string) string {
	return fmt.Sprintf(`# sharpc project manifest
[project]
name = %q
kind = %q
language_version = %q
platform = %q
units = ["*.mp", "*.json"]
output = "out"
`, name, kind, project.LanguageVersion, project.Platform)
}

func init() {
	initCmd.Flags().String("kind", string(project.KindExe), "output kind (exe|winexe|dll)")
}
