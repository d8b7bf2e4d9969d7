package driver

import (
	"context"

	"sharpc/internal/decl"
	"sharpc/internal/diag"
	"sharpc/internal/observ"
	"sharpc/internal/registry"
)

// batch is the lowering result of one unit.
type batch struct {
	index int
	unit  string
	frags []*decl.TypeDecl
}

// reducer commits batches in unit order whatever order workers finish in,
// so conflict diagnostics name the same fragment on every run.
type reducer struct {
	reg   *registry.Registry
	rep   diag.Reporter
	timer *observ.Timer
	order []int // unit indexes expected, ascending
}

func (r *reducer) run(ctx context.Context, in <-chan batch) {
	pending := make(map[int]batch, len(r.order))
	next := 0
	for bt := range in {
		pending[bt.index] = bt
		for next < len(r.order) {
			ready, ok := pending[r.order[next]]
			if !ok {
				break
			}
			delete(pending, r.order[next])
			next++
			// cancellation is honoured between batches, never mid-insert
			if ctx.Err() != nil {
				continue
			}
			r.commit(ready)
		}
	}
}

func (r *reducer) commit(bt batch) {
	for _, frag := range bt.frags {
		r.timer.Add("fragments", 1)
		r.timer.Add("members", len(frag.Members))
		if err := r.reg.Insert(frag); err != nil {
			r.timer.Add("conflicts", 1)
			reportError(r.rep, diag.MrgDuplicateDecl, err)
		}
	}
}
