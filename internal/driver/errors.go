package driver

import (
	"errors"
	"fmt"

	"sharpc/internal/backend/c"
	"sharpc/internal/diag"
	"sharpc/internal/names"
	"sharpc/internal/project"
	"sharpc/internal/registry"
	"sharpc/internal/source"
)

// reportError converts a component error into diagnostics. Batches are
// unpacked; unknown errors fall back to code with an empty span.
func reportError(rep diag.Reporter, fallback diag.Code, err error) {
	if err == nil {
		return
	}
	var list c.ErrorList
	if errors.As(err, &list) {
		for _, e := range list {
			reportError(rep, fallback, e)
		}
		return
	}

	var (
		collision   *names.CollisionError
		conflict    *registry.ConflictError
		cycle       *c.CycleError
		unsupported *c.UnsupportedError
		generic     *c.GenericError
		unknown     *c.UnknownMemberError
		config      *project.ConfigError
	)
	switch {
	case errors.As(err, &collision):
		b := diag.ReportError(rep, diag.NamCollision, collision.SecondSpan, collision.Error())
		b.WithNote(collision.FirstSpan, fmt.Sprintf("%q first claimed %s", collision.First, collision.Flat))
		b.Emit()
	case errors.As(err, &conflict):
		b := diag.ReportError(rep, conflict.Code(), conflict.Span, conflict.Error())
		if !conflict.Prior.Empty() {
			b.WithNote(conflict.Prior, "previous declaration here")
		}
		b.Emit()
	case errors.As(err, &cycle):
		b := diag.ReportError(rep, cycle.Code(), cycle.Span, cycle.Error())
		for _, l := range cycle.Chain {
			b.WithNote(source.NoSpan, fmt.Sprintf("%s holds %s by value in %s", l.Owner, l.Target, l.Member))
		}
		b.Emit()
	case errors.As(err, &unsupported):
		diag.ReportError(rep, unsupported.Code(), unsupported.Span, unsupported.Error()).Emit()
	case errors.As(err, &generic):
		diag.ReportError(rep, generic.Code(), generic.Span, generic.Error()).Emit()
	case errors.As(err, &unknown):
		diag.ReportError(rep, unknown.Code(), unknown.Span, unknown.Error()).Emit()
	case errors.As(err, &config):
		diag.ReportError(rep, config.Code(), source.NoSpan, config.Error()).Emit()
	default:
		diag.ReportError(rep, fallback, source.NoSpan, err.Error()).Emit()
	}
}
