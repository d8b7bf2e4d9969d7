package registry

import (
	"fmt"

	"sharpc/internal/diag"
	"sharpc/internal/source"
)

// ConflictKind classifies merge conflicts.
type ConflictKind uint8

const (
	// ConflictDuplicateDecl: a full name declared twice where at least one
	// declaration is not partial.
	ConflictDuplicateDecl ConflictKind = iota + 1
	// ConflictDuplicateMember: a member name contributed twice to one type.
	ConflictDuplicateMember
	// ConflictCategoryMismatch: partial fragments disagree on the category.
	ConflictCategoryMismatch
	// ConflictPartialEnum: enums cannot be partial.
	ConflictPartialEnum
)

// String returns a human-readable name for the conflict kind.
func (k ConflictKind) String() string {
	switch k {
	case ConflictDuplicateDecl:
		return "duplicate declaration"
	case ConflictDuplicateMember:
		return "duplicate member"
	case ConflictCategoryMismatch:
		return "category mismatch"
	case ConflictPartialEnum:
		return "partial enum"
	default:
		return "conflict"
	}
}

// ConflictError is a fatal merge conflict for one declaration. The registry
// is left exactly as it was before the failed Insert.
type ConflictError struct {
	Kind     ConflictKind
	FullName string
	Member   string      // simple member name for ConflictDuplicateMember
	Span     source.Span // incoming fragment or member
	Prior    source.Span // existing declaration or member, zero if none
	Detail   string
}

func (e *ConflictError) Error() string {
	switch e.Kind {
	case ConflictDuplicateMember:
		return fmt.Sprintf("%s: member %q is already declared", e.FullName, e.Member)
	case ConflictCategoryMismatch:
		return fmt.Sprintf("%s: partial declarations disagree on category (%s)", e.FullName, e.Detail)
	case ConflictPartialEnum:
		return fmt.Sprintf("%s: enum cannot be partial", e.FullName)
	default:
		return fmt.Sprintf("%s: type is already declared", e.FullName)
	}
}

// Code maps the conflict to its diagnostic code.
func (e *ConflictError) Code() diag.Code {
	switch e.Kind {
	case ConflictDuplicateMember:
		return diag.MrgDuplicateMember
	case ConflictCategoryMismatch:
		return diag.MrgCategoryMismatch
	case ConflictPartialEnum:
		return diag.MrgPartialEnum
	default:
		return diag.MrgDuplicateDecl
	}
}
