package driver

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"sharpc/internal/analyzer"
	"sharpc/internal/backend/c"
	"sharpc/internal/diag"
	"sharpc/internal/lower"
	"sharpc/internal/observ"
	"sharpc/internal/project"
	"sharpc/internal/registry"
	"sharpc/internal/source"
	"sharpc/internal/trace"
)

// Input is one unit of a project: a dump on disk, or an already decoded
// unit when Unit is set.
type Input struct {
	Path string
	Unit *analyzer.Unit
}

// Request describes one project build.
type Request struct {
	Name       string
	Kind       project.Kind
	Release    bool
	References []string
	Inputs     []Input
	// OutDir receives the emitted files; empty means emit without writing.
	OutDir string
	// Hash identifies the inputs for the up-to-date check; zero disables it.
	Hash project.Digest
}

// RequestFor builds a request from a validated manifest.
func RequestFor(m *project.Manifest) (Request, error) {
	paths, err := m.UnitPaths()
	if err != nil {
		return Request{}, err
	}
	req := Request{
		Name:       m.Name,
		Kind:       m.Kind,
		Release:    m.Release,
		References: m.References,
		OutDir:     m.OutputDir(),
	}
	for _, p := range paths {
		req.Inputs = append(req.Inputs, Input{Path: p})
	}
	return req, nil
}

// Options tunes a build.
type Options struct {
	Jobs           int // <= 0 means GOMAXPROCS
	MaxDiagnostics int
	FileSet        *source.FileSet // shared across a solution; nil creates one
	Cache          *DiskCache
	Observer       PhaseObserver
	Timings        bool // append an OBS7001 timing diagnostic
}

// Result is the outcome of one project build. Output survives member-scoped
// lowering errors, which drop only the offending member; any other error
// clears it. Nothing is written while Failed reports true.
type Result struct {
	Name    string
	FileSet *source.FileSet
	Bag     *diag.Bag
	Project *registry.Project
	Output  *c.Output
	Written []string
	Timer   *observ.Timer
	// UpToDate is set when the cache proved the previous outputs current.
	UpToDate bool
}

// Failed reports whether the build produced errors.
func (r *Result) Failed() bool { return r == nil || r.Bag.HasErrors() }

type build struct {
	req    Request
	opts   Options
	fs     *source.FileSet
	bag    *diag.Bag
	rep    diag.Reporter
	timer  *observ.Timer
	tracer trace.Tracer
	jobs   int
}

// Compile runs load, lower, merge, emit and write for one project. The
// returned error is reserved for cancellation; every build failure is a
// diagnostic in Result.Bag.
func Compile(ctx context.Context, req Request, opts Options) (*Result, error) {
	fs := opts.FileSet
	if fs == nil {
		fs = source.NewFileSet()
	}
	bag := diag.NewBag(opts.MaxDiagnostics)
	dedup := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	b := &build{
		req:    req,
		opts:   opts,
		fs:     fs,
		bag:    bag,
		rep:    diag.NewLockedReporter(dedup),
		timer:  observ.NewTimer(),
		tracer: trace.FromContext(ctx),
		jobs:   opts.Jobs,
	}
	if b.jobs <= 0 {
		b.jobs = runtime.GOMAXPROCS(0)
	}
	res := &Result{Name: req.Name, FileSet: fs, Bag: bag, Timer: b.timer}

	root := trace.Begin(b.tracer, trace.ScopeDriver, "compile:"+req.Name, trace.CurrentSpan(ctx))
	defer root.End("")
	ctx = trace.WithSpan(ctx, root)

	if payload, ok := b.upToDate(); ok {
		res.UpToDate = true
		res.Written = payload.Files
		trace.Point(b.tracer, trace.ScopeDriver, "up-to-date", req.Name, root.ID())
		return res, nil
	}

	units, files, err := b.load(ctx)
	if err != nil {
		return res, err
	}
	reg, err := b.lowerAndMerge(ctx, units, files)
	if err != nil {
		return res, err
	}
	res.Project = reg.Snapshot()
	b.timer.Add("decls", res.Project.Len())

	if err := ctx.Err(); err != nil {
		return res, err
	}
	res.Output = b.emit(ctx, res.Project)
	if res.Output != nil && !res.Failed() && req.OutDir != "" {
		res.Written = b.write(ctx, res.Output)
	}
	if res.Failed() && !bag.OnlyMemberScoped() {
		res.Output = nil
	}

	b.timer.Add("duplicates", dedup.Suppressed())
	if opts.Timings {
		appendTimingDiagnostic(bag, req.Name, b.timer)
	}
	bag.Sort()
	return res, nil
}

// phase opens a trace span, a timer phase and the observer events for name.
func (b *build) phase(ctx context.Context, name string) (context.Context, func(note string)) {
	span := trace.Begin(b.tracer, trace.ScopePhase, name, trace.CurrentSpan(ctx))
	idx := b.timer.Begin(name)
	start := time.Now()
	errsBefore := b.bag.Len()
	b.opts.Observer.emit(PhaseEvent{Project: b.req.Name, Name: name, Status: PhaseStart})
	return trace.WithSpan(ctx, span), func(note string) {
		b.timer.End(idx, note)
		span.End(note)
		status := PhaseEnd
		if b.bag.Len() > errsBefore && b.bag.HasErrors() {
			status = PhaseFail
		}
		b.opts.Observer.emit(PhaseEvent{Project: b.req.Name, Name: name, Status: status, Elapsed: time.Since(start)})
	}
}

func (b *build) unitEvent(phase, unit string, status PhaseStatus, elapsed time.Duration) {
	b.opts.Observer.emit(PhaseEvent{Project: b.req.Name, Name: phase, Unit: unit, Status: status, Elapsed: elapsed})
}

func (b *build) load(ctx context.Context) ([]*analyzer.Unit, []source.FileID, error) {
	ctx, end := b.phase(ctx, "load")
	units := make([]*analyzer.Unit, len(b.req.Inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(b.jobs, len(b.req.Inputs))))
	for i, in := range b.req.Inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			u, err := b.loadUnit(in)
			if err != nil {
				diag.ReportError(b.rep, diag.IOLoadUnitError, source.NoSpan, "failed to load unit: "+err.Error()).Emit()
				b.unitEvent("load", in.Path, PhaseFail, time.Since(start))
				return nil
			}
			units[i] = u
			b.unitEvent("load", u.Path, PhaseEnd, time.Since(start))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		end("cancelled")
		return nil, nil, err
	}

	// file ids follow input order so diagnostics sort the same on every run
	files := make([]source.FileID, len(units))
	loaded := 0
	for i, u := range units {
		if u == nil {
			continue
		}
		var flags source.FileFlags
		if b.req.Inputs[i].Unit != nil {
			flags |= source.FileVirtual
		}
		files[i] = b.fs.Add(u.Path, []byte(u.Text), flags)
		loaded++
	}
	b.timer.Add("units", loaded)
	end(fmt.Sprintf("%d units", loaded))
	return units, files, nil
}

// lowerAndMerge lowers units in parallel. Fragments flow to a single
// reducer goroutine, the only writer of the registry.
func (b *build) lowerAndMerge(ctx context.Context, units []*analyzer.Unit, files []source.FileID) (*registry.Registry, error) {
	ctx, end := b.phase(ctx, "lower")
	reg := registry.New()

	var order []int
	for i, u := range units {
		if u != nil {
			order = append(order, i)
		}
	}
	batches := make(chan batch, b.jobs)
	red := &reducer{reg: reg, rep: b.rep, timer: b.timer, order: order}
	done := make(chan struct{})
	go func() {
		defer close(done)
		red.run(ctx, batches)
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, b.jobs))
	parent := trace.CurrentSpan(ctx)
	for _, i := range order {
		u := units[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			span := trace.Begin(b.tracer, trace.ScopeUnit, "unit:"+u.Path, parent)
			res := lower.Unit(u, files[i], b.rep)
			span.End(fmt.Sprintf("%d fragments, %d errors", len(res.Fragments), len(res.Errors)))
			status := PhaseEnd
			if len(res.Errors) > 0 {
				status = PhaseFail
			}
			b.unitEvent("lower", u.Path, status, time.Since(start))
			select {
			case batches <- batch{index: i, unit: u.Path, frags: res.Fragments}:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}
	err := g.Wait()
	close(batches)
	<-done
	if err != nil {
		end("cancelled")
		return nil, err
	}
	end(fmt.Sprintf("%d fragments", b.timer.Count("fragments")))
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return reg, nil
}

func (b *build) emit(ctx context.Context, p *registry.Project) *c.Output {
	_, end := b.phase(ctx, "emit")
	out, err := c.Emit(p, c.Options{
		Name:       b.req.Name,
		Library:    b.req.Kind.Library(),
		References: b.req.References,
		Release:    b.req.Release,
		Kind:       string(b.req.Kind),
	})
	if err != nil {
		reportError(b.rep, diag.EmtUnsupported, err)
		end("failed")
		return nil
	}
	end(fmt.Sprintf("%d files", len(out.Files())))
	return out
}

func (b *build) upToDate() (*ProjectPayload, bool) {
	var zero project.Digest
	if b.opts.Cache == nil || b.req.Hash == zero || b.req.OutDir == "" {
		return nil, false
	}
	return b.opts.Cache.UpToDate(b.req.Hash)
}
