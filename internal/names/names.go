// Package names computes hierarchical full names and the flattened C
// identifiers derived from them, and guards flattening injectivity across a
// whole project.
package names

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"

	"sharpc/internal/source"
)

// Separator joins full-name segments.
const Separator = "."

// FullName joins the declared symbol path into a dotted full name.
// Segments are NFC-normalised so visually identical identifiers map to the
// same name.
func FullName(path ...string) string {
	parts := make([]string, 0, len(path))
	for _, seg := range path {
		if seg == "" {
			continue
		}
		parts = append(parts, norm.NFC.String(seg))
	}
	return strings.Join(parts, Separator)
}

// Member returns the full name of member name on owner.
func Member(owner, name string) string {
	if owner == "" {
		return norm.NFC.String(name)
	}
	return owner + Separator + norm.NFC.String(name)
}

// Flatten maps a full name to a C-safe identifier by replacing every
// separator with an underscore.
func Flatten(fullName string) string {
	return strings.ReplaceAll(fullName, Separator, "_")
}

// Getter, Setter and Initializer name identifiers synthesised by the emitter.
// They live in the owner's namespace so they go through the same table.
func Getter(owner, prop string) string { return Member(owner, "get_"+prop) }

// Setter returns the full name of the property setter function.
func Setter(owner, prop string) string { return Member(owner, "set_"+prop) }

// Initializer returns the full name of the instance field initializer.
func Initializer(owner string) string { return Member(owner, "_init") }

// CollisionError reports two distinct full names that flatten identically.
type CollisionError struct {
	Flat   string
	First  string
	Second string
	// Spans of the first and second registration, zero if synthesised.
	FirstSpan  source.Span
	SecondSpan source.Span
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("flattened name %q collides: %q and %q", e.Flat, e.First, e.Second)
}

type entry struct {
	full      string
	span      source.Span
	synthetic bool
}

// Table is a project-wide map from flat names back to the full name that
// claimed them. Safe for concurrent use.
type Table struct {
	mu     sync.Mutex
	byFlat map[string]entry
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{byFlat: make(map[string]entry)}
}

// Register claims Flatten(fullName) for a declared entity. Registering the
// same full name again is a no-op returning the same flat name; a different
// full name mapping to an already claimed flat name fails with
// *CollisionError.
func (t *Table) Register(fullName string, span source.Span) (string, error) {
	return t.claim(fullName, span, false)
}

// Reserve claims Flatten(fullName) for an identifier the emitter
// synthesises. A reservation never shares its flat name, not even with the
// same full name, since the declared entity and the synthesised one would be
// two C symbols.
func (t *Table) Reserve(fullName string, span source.Span) (string, error) {
	return t.claim(fullName, span, true)
}

func (t *Table) claim(fullName string, span source.Span, synthetic bool) (string, error) {
	flat := Flatten(fullName)
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.conflict(flat, fullName, span, synthetic); err != nil {
		return "", err
	}
	if _, ok := t.byFlat[flat]; !ok {
		t.byFlat[flat] = entry{full: fullName, span: span, synthetic: synthetic}
	}
	return flat, nil
}

// Check reports the collision Register (or Reserve, when synthetic is set)
// would produce, without claiming.
func (t *Table) Check(fullName string, span source.Span, synthetic bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.conflict(Flatten(fullName), fullName, span, synthetic)
}

func (t *Table) conflict(flat, fullName string, span source.Span, synthetic bool) error {
	prev, ok := t.byFlat[flat]
	if !ok {
		return nil
	}
	if prev.full == fullName && !prev.synthetic && !synthetic {
		return nil
	}
	return &CollisionError{Flat: flat, First: prev.full, Second: fullName, FirstSpan: prev.span, SecondSpan: span}
}

// Lookup returns the full name that claimed flat.
func (t *Table) Lookup(flat string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.byFlat[flat]
	return e.full, ok
}

// Len returns the number of claimed flat names.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.byFlat)
}
