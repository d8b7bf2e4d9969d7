// Package buildpipeline runs a solution build and reports its progress.
package buildpipeline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"sharpc/internal/driver"
)

// BuildRequest configures one solution build.
type BuildRequest struct {
	Manifests      []string
	Write          bool // false checks without touching the output directories
	Jobs           int
	MaxDiagnostics int
	Cache          *driver.DiskCache
	Timings        bool // append OBS7001 timing diagnostics per project
	Progress       ProgressSink
	// BaseDir shortens unit paths in progress events; empty uses the
	// working directory.
	BaseDir string
}

// BuildResult captures the solution outcome and stage timings.
type BuildResult struct {
	Solution *driver.SolutionResult
	Timings  *Timings
}

// Build compiles every manifest of req in reference order.
func Build(ctx context.Context, req *BuildRequest) (BuildResult, error) {
	result := BuildResult{Timings: &Timings{}}
	if ctx == nil {
		ctx = context.Background()
	}
	if req == nil {
		return result, errors.New("missing build request")
	}
	if len(req.Manifests) == 0 {
		return result, errors.New("no manifests to build")
	}

	base := req.BaseDir
	if base == "" {
		if cwd, err := os.Getwd(); err == nil {
			base = cwd
		}
	}
	names := ProgressProjects(req.Manifests)
	emitQueued(req.Progress, names)

	obs := &phaseObserver{sink: req.Progress, timings: result.Timings, baseDir: base}
	sol, err := driver.BuildSolution(ctx, req.Manifests, req.Write, driver.Options{
		Jobs:           req.Jobs,
		MaxDiagnostics: req.MaxDiagnostics,
		Cache:          req.Cache,
		Observer:       obs.OnPhase,
		Timings:        req.Timings,
	})
	result.Solution = sol
	if err != nil {
		return result, fmt.Errorf("build cancelled: %w", err)
	}
	finishProjects(req.Progress, names, sol)
	return result, nil
}

// finishProjects sends the final status of every project, built or not.
func finishProjects(sink ProgressSink, names []string, sol *driver.SolutionResult) {
	if sink == nil || sol == nil {
		return
	}
	built := make(map[string]*driver.Result, len(sol.Projects))
	for _, r := range sol.Projects {
		built[r.Name] = r
	}
	for _, name := range names {
		r, ok := built[name]
		switch {
		case !ok:
			emitProject(sink, name, StageLoad, StatusSkipped, nil)
		case r.UpToDate:
			emitProject(sink, name, StageWrite, StatusSkipped, nil)
		case r.Failed():
			emitProject(sink, name, StageEmit, StatusError, fmt.Errorf("%s failed", name))
		default:
			emitProject(sink, name, StageWrite, StatusDone, nil)
		}
	}
}
