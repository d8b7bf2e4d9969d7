package registry

import (
	"sharpc/internal/decl"
	"sharpc/internal/names"
	"sharpc/internal/source"
)

// claim is one flat name a fragment needs: a declared full name, or an
// identifier the emitter will synthesise.
type claim struct {
	full      string
	span      source.Span
	synthetic bool
}

func memberClaims(frag *decl.TypeDecl) []claim {
	var out []claim
	for i := range frag.Members {
		m := &frag.Members[i]
		id := m.Ident()
		out = append(out, claim{full: id.FullName, span: id.Span})
		if p, ok := m.Data.(*decl.PropertyData); ok {
			if p.HasGet {
				out = append(out, claim{full: names.Getter(frag.FullName, p.Name), span: id.Span, synthetic: true})
			}
			if p.HasSet {
				out = append(out, claim{full: names.Setter(frag.FullName, p.Name), span: id.Span, synthetic: true})
			}
		}
	}
	return out
}

// checkClaims validates claims against the table and against each other.
func (r *Registry) checkClaims(cs []claim) error {
	local := make(map[string]claim, len(cs))
	for _, c := range cs {
		if err := r.table.Check(c.full, c.span, c.synthetic); err != nil {
			return err
		}
		flat := names.Flatten(c.full)
		if prev, ok := local[flat]; ok && (prev.full != c.full || prev.synthetic || c.synthetic) {
			return &names.CollisionError{Flat: flat, First: prev.full, Second: c.full, FirstSpan: prev.span, SecondSpan: c.span}
		}
		local[flat] = c
	}
	return nil
}

func (r *Registry) commitClaims(cs []claim) error {
	for _, c := range cs {
		var err error
		if c.synthetic {
			_, err = r.table.Reserve(c.full, c.span)
		} else {
			_, err = r.table.Register(c.full, c.span)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
