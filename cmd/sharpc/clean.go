package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sharpc/internal/driver"
	"sharpc/internal/project"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [manifest|dir]...",
	Short: "Remove project outputs and the unit cache",
	Long:  "Remove the output directory of every named project. With --cache the shared unit cache is dropped too.",
	RunE:  runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	dropCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return err
	}
	manifests, err := resolveManifests(args)
	if err != nil && !(dropCache && len(args) == 0) {
		return err
	}
	out := cmd.OutOrStdout()
	cwd := workingDir()
	for _, path := range manifests {
		m, err := project.Load(path)
		if err != nil {
			return err
		}
		dir := m.OutputDir()
		info, err := os.Stat(dir)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				fmt.Fprintf(out, "%s: output directory not found\n", m.Name)
				continue
			}
			return fmt.Errorf("failed to stat %q: %w", dir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%q is not a directory", dir)
		}
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("failed to remove %q: %w", dir, err)
		}
		fmt.Fprintf(out, "removed %s\n", formatPathForOutput(cwd, dir))
	}
	if dropCache {
		cache, err := driver.OpenDiskCache("sharpc")
		if err != nil {
			return err
		}
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("failed to drop cache: %w", err)
		}
		fmt.Fprintf(out, "dropped cache %s\n", cache.Dir())
	}
	return nil
}

func init() {
	cleanCmd.Flags().Bool("cache", false, "also drop the unit cache")
}
