package diag

import "sharpc/internal/source"

// reportKey identifies a diagnostic for suppression. Severity is left out:
// the same code never changes severity.
type reportKey struct {
	code Code
	span source.Span
	msg  string
}

// DedupReporter forwards the first report of every code, span and message
// and counts the repeats. Unit load failures carry no span, so one missing
// path listed twice would otherwise print twice.
// Not safe for concurrent use; wrap it in a LockedReporter.
type DedupReporter struct {
	next    Reporter
	seen    map[reportKey]int
	repeats int
}

// NewDedupReporter wraps next.
func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[reportKey]int)}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r == nil {
		return
	}
	key := reportKey{code: code, span: primary, msg: msg}
	r.seen[key]++
	if r.seen[key] > 1 {
		r.repeats++
		return
	}
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes)
	}
}

// Suppressed returns how many reports were dropped as repeats.
func (r *DedupReporter) Suppressed() int {
	if r == nil {
		return 0
	}
	return r.repeats
}
