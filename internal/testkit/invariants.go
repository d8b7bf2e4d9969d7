// Package testkit holds structural checks shared by tests and fuzzers.
package testkit

import (
	"errors"
	"fmt"
	"strings"

	"sharpc/internal/decl"
	"sharpc/internal/names"
	"sharpc/internal/registry"
)

// CheckProject validates a registry snapshot built from analyzer output
// that places members under their owner. On top of CheckNames it requires
// every member full name to extend the owner's full name.
func CheckProject(p *registry.Project) error {
	if err := CheckNames(p); err != nil {
		return err
	}
	var errs []error
	for _, d := range p.All() {
		for i := range d.Members {
			id := d.Members[i].Ident()
			if !strings.HasPrefix(id.FullName, d.FullName+names.Separator) {
				errs = append(errs, fmt.Errorf("member %q is outside %q", id.FullName, d.FullName))
			}
		}
	}
	return errors.Join(errs...)
}

// CheckNames holds for any snapshot, whatever paths the analyzer sent:
//  1. every flat name is the flattening of its full name;
//  2. flat names never repeat across declarations and members;
//  3. Lookup returns each declaration of All;
//  4. the category views and All agree on the declaration count.
func CheckNames(p *registry.Project) error {
	if p == nil {
		return errors.New("nil project")
	}
	var errs []error
	seen := make(map[string]string, p.Len())
	claim := func(id *decl.Identity) {
		if want := names.Flatten(id.FullName); id.FlatName != want {
			errs = append(errs, fmt.Errorf("%s: flat name %q, want %q", id.FullName, id.FlatName, want))
		}
		if prev, ok := seen[id.FlatName]; ok && prev != id.FullName {
			errs = append(errs, fmt.Errorf("flat name %q shared by %q and %q", id.FlatName, prev, id.FullName))
			return
		}
		seen[id.FlatName] = id.FullName
	}

	for _, d := range p.All() {
		claim(&d.Identity)
		if got, ok := p.Lookup(d.FullName); !ok || got != d {
			errs = append(errs, fmt.Errorf("%s: lookup does not return the declaration", d.FullName))
		}
		for i := range d.Members {
			claim(d.Members[i].Ident())
		}
	}

	views := len(p.Enums()) + len(p.Interfaces()) + len(p.Structs()) + len(p.Classes())
	if views != p.Len() || len(p.All()) != p.Len() {
		errs = append(errs, fmt.Errorf("category views hold %d declarations, All holds %d", views, p.Len()))
	}
	return errors.Join(errs...)
}
