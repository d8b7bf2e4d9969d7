package c

import (
	"strings"

	"sharpc/internal/decl"
	"sharpc/internal/names"
	"sharpc/internal/source"
)

// body renders one function body. The first unsupported construct aborts the
// member; sibling members keep emitting.
type body struct {
	e      *Emitter
	owner  *decl.TypeDecl
	member string
	static bool
	sb     strings.Builder
	indent int
}

func (b *body) unsupported(variant string, sp source.Span) error {
	return &UnsupportedError{Variant: variant, Member: b.member, Span: sp}
}

func (b *body) line(s string) {
	b.sb.WriteString(strings.Repeat("\t", b.indent))
	b.sb.WriteString(s)
	b.sb.WriteByte('\n')
}

func (b *body) stmts(list []*decl.Stmt) error {
	for _, s := range list {
		if err := b.stmt(s); err != nil {
			return err
		}
	}
	return nil
}

// block renders s inside braces, unwrapping a block statement.
func (b *body) block(s *decl.Stmt) error {
	b.line("{")
	b.indent++
	var err error
	if s != nil {
		if blk, ok := s.Data.(decl.BlockData); ok {
			err = b.stmts(blk.Stmts)
		} else {
			err = b.stmt(s)
		}
	}
	b.indent--
	b.line("}")
	return err
}

func (b *body) stmt(s *decl.Stmt) error {
	if s == nil {
		return nil
	}
	switch data := s.Data.(type) {
	case decl.ReturnData:
		if data.Value == nil {
			b.line("return;")
			return nil
		}
		v, err := b.expr(data.Value)
		if err != nil {
			return err
		}
		b.line("return " + unparen(v) + ";")

	case decl.AssignData:
		line, err := b.assign(s, data)
		if err != nil {
			return err
		}
		b.line(line + ";")

	case decl.IfData:
		cond, err := b.expr(data.Cond)
		if err != nil {
			return err
		}
		b.line("if (" + unparen(cond) + ")")
		if err := b.block(data.Then); err != nil {
			return err
		}
		if data.Else != nil {
			b.line("else")
			return b.block(data.Else)
		}

	case decl.LoopData:
		return b.loop(s, data)

	case decl.ExprStmtData:
		v, err := b.expr(data.Expr)
		if err != nil {
			return err
		}
		b.line(unparen(v) + ";")

	case decl.BlockData:
		b.line("{")
		b.indent++
		err := b.stmts(data.Stmts)
		b.indent--
		b.line("}")
		return err

	case decl.LocalData:
		t, err := b.e.cType(data.Typing, b.member)
		if err != nil {
			return err
		}
		if data.Value == nil {
			b.line(t + " " + data.Name + ";")
			return nil
		}
		v, err := b.expr(data.Value)
		if err != nil {
			return err
		}
		b.line(t + " " + data.Name + " = " + unparen(v) + ";")

	case decl.BreakData:
		b.line("break;")

	case decl.ContinueData:
		b.line("continue;")

	default:
		return b.unsupported(s.Kind.String()+" statement", s.Span)
	}
	return nil
}

func (b *body) loop(s *decl.Stmt, data decl.LoopData) error {
	cond := ""
	if data.Cond != nil {
		c, err := b.expr(data.Cond)
		if err != nil {
			return err
		}
		cond = unparen(c)
	}
	switch data.Kind {
	case decl.LoopWhile:
		if cond == "" {
			cond = "true"
		}
		b.line("while (" + cond + ")")
		return b.block(data.Body)

	case decl.LoopDo:
		if cond == "" {
			cond = "true"
		}
		b.line("do")
		if err := b.block(data.Body); err != nil {
			return err
		}
		b.line("while (" + cond + ");")
		return nil

	case decl.LoopFor:
		post := make([]string, 0, len(data.Post))
		for _, p := range data.Post {
			v, err := b.expr(p)
			if err != nil {
				return err
			}
			post = append(post, unparen(v))
		}
		// init statements get their own scope, as in the source language
		if len(data.Init) > 0 {
			b.line("{")
			b.indent++
			if err := b.stmts(data.Init); err != nil {
				return err
			}
		}
		b.line("for (; " + cond + "; " + strings.Join(post, ", ") + ")")
		if err := b.block(data.Body); err != nil {
			return err
		}
		if len(data.Init) > 0 {
			b.indent--
			b.line("}")
		}
		return nil

	default:
		return b.unsupported(data.Kind.String()+" loop", s.Span)
	}
}

func (b *body) assign(s *decl.Stmt, data decl.AssignData) (string, error) {
	value, err := b.expr(data.Value)
	if err != nil {
		return "", err
	}
	value = unparen(value)

	ref, ok, err := b.memberRef(data.Target)
	if err != nil {
		return "", err
	}
	if ok && ref.computed() {
		p, _ := ref.m.Data.(*decl.PropertyData)
		if !p.HasSet {
			return "", b.unsupported("assignment to read-only property "+p.Name, s.Span)
		}
		if data.Op != "=" {
			return "", b.unsupported("compound assignment to property "+p.Name, s.Span)
		}
		return ref.call(names.Setter(ref.owner.FullName, p.Name), "set_"+p.Name, value), nil
	}

	target, err := b.expr(data.Target)
	if err != nil {
		return "", err
	}
	return target + " " + data.Op + " " + value, nil
}

// unparen strips one pair of parentheses enclosing the whole expression.
func unparen(s string) string {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return s
	}
	depth := 0
	inStr := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case inStr:
			if ch == '\\' {
				i++
			} else if ch == '"' {
				inStr = false
			}
		case ch == '"':
			inStr = true
		case ch == '(':
			depth++
		case ch == ')':
			depth--
			if depth == 0 && i != len(s)-1 {
				return s
			}
		}
	}
	return s[1 : len(s)-1]
}
