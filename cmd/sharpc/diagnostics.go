package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sharpc/internal/diag"
	"sharpc/internal/diagfmt"
	"sharpc/internal/source"
)

type diagOptions struct {
	format    string // pretty|json
	color     bool
	fullPath  bool
	notes     bool
	timings   bool
	quiet     bool
	maxDiags  int
	contextLn int8
}

func readDiagOptions(cmd *cobra.Command) (diagOptions, error) {
	var opts diagOptions
	var err error
	root := cmd.Root().PersistentFlags()
	if opts.format, err = cmd.Flags().GetString("format"); err != nil {
		return opts, err
	}
	opts.format = strings.ToLower(strings.TrimSpace(opts.format))
	switch opts.format {
	case "pretty", "json":
	default:
		return opts, fmt.Errorf("unsupported format %q (must be pretty or json)", opts.format)
	}
	if opts.fullPath, err = cmd.Flags().GetBool("fullpath"); err != nil {
		return opts, err
	}
	if opts.notes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return opts, err
	}
	if opts.timings, err = root.GetBool("timings"); err != nil {
		return opts, err
	}
	if opts.quiet, err = root.GetBool("quiet"); err != nil {
		return opts, err
	}
	if opts.maxDiags, err = root.GetInt("max-diagnostics"); err != nil {
		return opts, err
	}
	if opts.color, err = useColor(cmd, os.Stderr); err != nil {
		return opts, err
	}
	opts.contextLn = 1
	return opts, nil
}

func addDiagFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
	cmd.Flags().Bool("fullpath", false, "print stored paths instead of relative ones")
	cmd.Flags().Bool("with-notes", true, "print diagnostic notes")
}

// printDiagnostics merges bags into one sorted stream. JSON goes to stdout
// so it can be piped; pretty output goes to w.
func printDiagnostics(w io.Writer, bags []*diag.Bag, fs *source.FileSet, opts diagOptions) error {
	merged := diag.NewBag(0)
	for _, b := range bags {
		merged.Merge(b)
	}
	merged.Sort()
	// a diagnostic reported by several projects prints once
	merged.Dedup()
	pathMode := diagfmt.PathModeAuto
	if opts.fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	if opts.format == "json" {
		return diagfmt.JSON(os.Stdout, merged, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     opts.notes,
		})
	}
	diagfmt.Pretty(w, merged, fs, diagfmt.PrettyOpts{
		Color:     opts.color,
		Context:   opts.contextLn,
		PathMode:  pathMode,
		ShowNotes: opts.notes,
		ShowInfo:  opts.timings,
	})
	return nil
}

func countErrors(bags []*diag.Bag) int {
	n := 0
	for _, b := range bags {
		for _, d := range b.Items() {
			if d.Severity == diag.SevError {
				n++
			}
		}
	}
	return n
}
