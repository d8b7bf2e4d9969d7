package lower

import (
	"fmt"

	"sharpc/internal/analyzer"
	"sharpc/internal/diag"
	"sharpc/internal/source"
)

// StructureError is a lowering failure scoped to one member: the member is
// dropped, its siblings are still lowered.
type StructureError struct {
	Code   diag.Code
	Node   analyzer.NodeKind
	Member string // full name of the owning member or declaration
	Span   source.Span
	Detail string
}

func (e *StructureError) Error() string {
	if e.Member == "" {
		return e.Detail
	}
	return fmt.Sprintf("%s: %s", e.Member, e.Detail)
}

func (l *lowerer) unsupportedAccessor(n *analyzer.Node) *StructureError {
	return &StructureError{
		Code:   diag.SynUnsupportedAccessor,
		Node:   n.Kind,
		Member: l.member,
		Span:   l.span(n.Span),
		Detail: fmt.Sprintf("unsupported accessor keyword %q", n.Keyword),
	}
}

func (l *lowerer) unsupported(what string, n *analyzer.Node) *StructureError {
	return &StructureError{
		Code:   diag.SynUnsupportedSyntax,
		Node:   n.Kind,
		Member: l.member,
		Span:   l.span(n.Span),
		Detail: fmt.Sprintf("unsupported %s kind %q", what, n.Kind),
	}
}

func (l *lowerer) malformed(n *analyzer.Node, format string, args ...any) *StructureError {
	var sp source.Span
	var kind analyzer.NodeKind
	if n != nil {
		sp = l.span(n.Span)
		kind = n.Kind
	}
	return &StructureError{
		Code:   diag.SynMalformedNode,
		Node:   kind,
		Member: l.member,
		Span:   sp,
		Detail: fmt.Sprintf("malformed %s node: %s", kind, fmt.Sprintf(format, args...)),
	}
}

func (l *lowerer) report(err *StructureError) {
	l.errs = append(l.errs, err)
	if l.rep == nil {
		return
	}
	diag.ReportError(l.rep, err.Code, err.Span, err.Error()).Emit()
}
