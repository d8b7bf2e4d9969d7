package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"sharpc/internal/buildpipeline"
	"sharpc/internal/driver"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [manifest|dir]...",
	Short: "Build projects into C sources",
	Long:  "Build every project named on the command line, referenced projects first. Without arguments the nearest sharpc.toml is built.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSolution(cmd, args, true)
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [flags] [manifest|dir]...",
	Short: "Run the whole pipeline without writing outputs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSolution(cmd, args, false)
	},
}

var errBuildFailed = errors.New("build failed")

func runSolution(cmd *cobra.Command, args []string, write bool) error {
	opts, err := readDiagOptions(cmd)
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return fmt.Errorf("--ui: %w", err)
	}
	jobs, err := cmd.Root().PersistentFlags().GetInt("jobs")
	if err != nil {
		return err
	}
	manifests, err := resolveManifests(args)
	if err != nil {
		return err
	}
	cache, err := openCache(cmd)
	if err != nil {
		return err
	}

	req := buildpipeline.BuildRequest{
		Manifests:      manifests,
		Write:          write,
		Jobs:           jobs,
		MaxDiagnostics: opts.maxDiags,
		Cache:          cache,
		Timings:        opts.timings,
	}
	title := "sharpc build"
	if !write {
		title = "sharpc check"
	}
	var res buildpipeline.BuildResult
	if shouldUseTUI(mode) && !opts.quiet && opts.format == "pretty" {
		res, err = runBuildWithUI(cmd.Context(), title, buildpipeline.ProgressProjects(manifests), &req)
	} else {
		res, err = buildpipeline.Build(cmd.Context(), &req)
	}
	if res.Solution != nil {
		if perr := printDiagnostics(cmd.ErrOrStderr(), res.Solution.Bags(), res.Solution.FileSet, opts); perr != nil {
			return perr
		}
	}
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if opts.timings && opts.format == "pretty" {
		printStageTimings(out, res.Timings)
	}
	if res.Solution.Failed() {
		if opts.format == "pretty" {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d error(s)\n", countErrors(res.Solution.Bags()))
		}
		return errBuildFailed
	}
	if !opts.quiet && opts.format == "pretty" {
		printBuilt(out, res.Solution, write)
	}
	return nil
}

func openCache(cmd *cobra.Command) (*driver.DiskCache, error) {
	noCache, err := cmd.Root().PersistentFlags().GetBool("no-cache")
	if err != nil {
		return nil, err
	}
	if noCache {
		return nil, nil
	}
	cache, err := driver.OpenDiskCache("sharpc")
	if err != nil {
		// без кэша сборка всё равно работает
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: cache disabled: %v\n", err)
		return nil, nil
	}
	return cache, nil
}

func printBuilt(out io.Writer, sol *driver.SolutionResult, write bool) {
	cwd := workingDir()
	for _, p := range sol.Projects {
		switch {
		case p.UpToDate:
			fmt.Fprintf(out, "%s is up to date\n", p.Name)
		case !write:
			fmt.Fprintf(out, "checked %s (%d declarations)\n", p.Name, p.Project.Len())
		default:
			for _, f := range p.Written {
				fmt.Fprintf(out, "wrote %s\n", formatPathForOutput(cwd, f))
			}
		}
	}
}

func printStageTimings(out io.Writer, timings *buildpipeline.Timings) {
	for _, stage := range []buildpipeline.Stage{buildpipeline.StageLoad, buildpipeline.StageLower, buildpipeline.StageEmit, buildpipeline.StageWrite} {
		if timings.Has(stage) {
			fmt.Fprintf(out, "%s %.1f ms\n", stage, toMillis(timings.Duration(stage)))
		}
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func init() {
	for _, cmd := range []*cobra.Command{buildCmd, checkCmd} {
		cmd.Flags().String("ui", "auto", "progress interface (auto|on|off)")
		addDiagFlags(cmd)
	}
}
