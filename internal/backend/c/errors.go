package c

import (
	"fmt"
	"strings"

	"sharpc/internal/diag"
	"sharpc/internal/source"
)

// Link is one by-value containment edge: Owner holds Member of type Target.
type Link struct {
	Owner  string
	Member string
	Target string
}

// CycleError reports an aggregate that contains itself by value.
type CycleError struct {
	Chain []Link
	Span  source.Span // span of the first member in the chain
}

func (e *CycleError) Error() string {
	if len(e.Chain) == 0 {
		return "value containment cycle"
	}
	parts := make([]string, 0, len(e.Chain)+1)
	for _, l := range e.Chain {
		parts = append(parts, l.Owner+"."+l.Member)
	}
	parts = append(parts, e.Chain[len(e.Chain)-1].Target)
	return "value containment cycle: " + strings.Join(parts, " -> ")
}

// Code returns the diagnostic code.
func (e *CycleError) Code() diag.Code { return diag.EmtValueCycle }

// UnsupportedError names a construct the emitter cannot express in C and the
// member that owns it.
type UnsupportedError struct {
	Variant string
	Member  string
	Span    source.Span
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s: unsupported %s", e.Member, e.Variant)
}

// Code returns the diagnostic code.
func (e *UnsupportedError) Code() diag.Code { return diag.EmtUnsupported }

// GenericError reports a generic type or member that reached the backend.
// Generic instantiation happens upstream; nothing is erased here.
type GenericError struct {
	Decl   string
	Member string // empty when the declaration itself is generic
	Type   string
	Span   source.Span
}

func (e *GenericError) Error() string {
	if e.Member == "" {
		return fmt.Sprintf("%s: generic declaration cannot be emitted", e.Decl)
	}
	return fmt.Sprintf("%s.%s: generic type %s cannot be emitted", e.Decl, e.Member, e.Type)
}

// Code returns the diagnostic code.
func (e *GenericError) Code() diag.Code { return diag.EmtGenericType }

// UnknownMemberError reports a reference to a member that is not declared in
// the project.
type UnknownMemberError struct {
	Ref    string
	Member string
	Span   source.Span
}

func (e *UnknownMemberError) Error() string {
	return fmt.Sprintf("%s: reference to unknown member %s", e.Member, e.Ref)
}

// Code returns the diagnostic code.
func (e *UnknownMemberError) Code() diag.Code { return diag.EmtUnknownMember }

// ErrorList is a batch of emission errors. Any error withholds all output.
type ErrorList []error

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", l[0].Error(), len(l)-1)
	}
}

// Unwrap exposes the batch to errors.As / errors.Is.
func (l ErrorList) Unwrap() []error { return l }
