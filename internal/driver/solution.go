package driver

import (
	"context"
	"errors"
	"fmt"
	"os"

	"fortio.org/safecast"

	"sharpc/internal/diag"
	"sharpc/internal/project"
	"sharpc/internal/project/dag"
	"sharpc/internal/source"
	"sharpc/internal/trace"
)

// SolutionResult is the outcome of building several manifests.
type SolutionResult struct {
	FileSet  *source.FileSet
	Bag      *diag.Bag // manifest and reference diagnostics
	Projects []*Result // build order; skipped projects are absent
}

// Failed reports whether any manifest or project failed.
func (s *SolutionResult) Failed() bool {
	if s.Bag.HasErrors() {
		return true
	}
	for _, r := range s.Projects {
		if r.Failed() {
			return true
		}
	}
	return false
}

// Bags returns the solution bag followed by every project bag.
func (s *SolutionResult) Bags() []*diag.Bag {
	out := []*diag.Bag{s.Bag}
	for _, r := range s.Projects {
		out = append(out, r.Bag)
	}
	return out
}

// BuildSolution loads and validates every manifest, then builds the projects
// in reference order. A project whose reference failed is skipped with a
// CFG5006 diagnostic. When write is false nothing is written to disk.
func BuildSolution(ctx context.Context, manifests []string, write bool, opts Options) (*SolutionResult, error) {
	if opts.FileSet == nil {
		opts.FileSet = source.NewFileSet()
	}
	out := &SolutionResult{FileSet: opts.FileSet, Bag: diag.NewBag(opts.MaxDiagnostics)}
	rep := diag.BagReporter{Bag: out.Bag}
	tracer := trace.FromContext(ctx)
	root := trace.Begin(tracer, trace.ScopeDriver, "solution", trace.CurrentSpan(ctx))
	defer root.End(fmt.Sprintf("%d manifests", len(manifests)))
	ctx = trace.WithSpan(ctx, root)

	var (
		loaded []*project.Manifest
		nodes  []dag.Node
	)
	for _, path := range manifests {
		content, _ := os.ReadFile(path)
		id := opts.FileSet.Add(path, content, 0)
		end, err := safecast.Conv[uint32](len(content))
		if err != nil {
			end = 0
		}
		span := source.Span{File: id, End: end}
		m, err := project.Load(path)
		if err != nil {
			diag.ReportError(rep, diag.CfgManifest, span, err.Error()).Emit()
			continue
		}
		if err := m.Validate(); err != nil {
			reportConfig(rep, span, err)
			continue
		}
		loaded = append(loaded, m)
		nodes = append(nodes, dag.Node{Manifest: m, Span: span, Reporter: rep})
	}

	idx := dag.BuildIndex(loaded)
	g, slots := dag.BuildGraph(idx, nodes)
	topo := dag.ToposortKahn(g)
	dag.ReportCycles(idx, slots, topo)

	requests := make([]Request, len(slots))
	content := make([]project.Digest, len(slots))
	for _, id := range topo.Order {
		slot := &slots[int(id)]
		req, err := RequestFor(slot.Manifest)
		if err != nil {
			diag.ReportError(rep, diag.CfgManifest, slot.Span, err.Error()).Emit()
			slot.Broken = true
			continue
		}
		if !write {
			req.OutDir = ""
		}
		units := make([]string, 0, len(req.Inputs))
		for _, in := range req.Inputs {
			units = append(units, in.Path)
		}
		if h, err := contentHash(slot.Manifest, units); err == nil {
			content[int(id)] = h
		}
		requests[int(id)] = req
	}
	hashes := ComputeProjectHashes(idx, slots, topo, content)

	for _, id := range topo.Order {
		slot := &slots[int(id)]
		if slot.Broken {
			continue
		}
		if dep, failed := dag.FailedDependency(idx, slots, id); failed {
			diag.ReportError(rep, diag.CfgDependency, slot.Span,
				fmt.Sprintf("project %q skipped: referenced project %q failed", slot.Manifest.Name, dep)).Emit()
			slot.Broken = true
			continue
		}
		req := requests[int(id)]
		req.Hash = hashes[int(id)]
		res, err := Compile(ctx, req, opts)
		if err != nil {
			return out, err
		}
		out.Projects = append(out.Projects, res)
		if res.Failed() {
			slot.Broken = true
		}
	}
	out.Bag.Sort()
	return out, nil
}

func reportConfig(rep diag.Reporter, span source.Span, err error) {
	var ce *project.ConfigError
	if errors.As(err, &ce) {
		diag.ReportError(rep, ce.Code(), span, ce.Error()).Emit()
		return
	}
	diag.ReportError(rep, diag.CfgManifest, span, err.Error()).Emit()
}
