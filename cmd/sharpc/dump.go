package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sharpc/internal/decl"
	"sharpc/internal/diag"
	"sharpc/internal/driver"
	"sharpc/internal/project"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] [manifest|dir]",
	Short: "Print the merged declarations of one project",
	Long:  "Lower and merge one project, then print its declaration model (or, with --c, the emitted C) without writing anything.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDump,
}

func runDump(cmd *cobra.Command, args []string) error {
	opts, err := readDiagOptions(cmd)
	if err != nil {
		return err
	}
	emitC, err := cmd.Flags().GetBool("c")
	if err != nil {
		return err
	}
	jobs, err := cmd.Root().PersistentFlags().GetInt("jobs")
	if err != nil {
		return err
	}
	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}
	path, err := project.ResolveManifest(arg)
	if err != nil {
		return err
	}
	m, err := project.Load(path)
	if err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return err
	}
	req, err := driver.RequestFor(m)
	if err != nil {
		return err
	}
	req.OutDir = ""

	res, err := driver.Compile(cmd.Context(), req, driver.Options{Jobs: jobs, MaxDiagnostics: opts.maxDiags, Timings: opts.timings})
	if err != nil {
		return err
	}
	if perr := printDiagnostics(cmd.ErrOrStderr(), []*diag.Bag{res.Bag}, res.FileSet, opts); perr != nil {
		return perr
	}
	out := cmd.OutOrStdout()
	if emitC {
		if res.Output == nil {
			return errBuildFailed
		}
		for _, f := range res.Output.Files() {
			fmt.Fprintf(out, "// ---- %s\n%s", f.Name, f.Content)
		}
		if res.Failed() {
			return errBuildFailed
		}
		return nil
	}
	if res.Project == nil {
		return errBuildFailed
	}
	if err := decl.Dump(out, res.Project.All()); err != nil {
		return err
	}
	if res.Failed() {
		return errBuildFailed
	}
	return nil
}

func init() {
	dumpCmd.Flags().Bool("c", false, "print the emitted C instead of the declaration model")
	addDiagFlags(dumpCmd)
}
