package lower

import (
	"sharpc/internal/analyzer"
	"sharpc/internal/decl"
)

func (l *lowerer) requireExpr(parent, n *analyzer.Node, what string) (*decl.Expr, *StructureError) {
	if n == nil {
		return nil, l.malformed(parent, "missing %s", what)
	}
	return l.lowerExpr(n)
}

func (l *lowerer) lowerExprs(nodes []*analyzer.Node) ([]*decl.Expr, *StructureError) {
	out := make([]*decl.Expr, 0, len(nodes))
	for _, c := range nodes {
		e, err := l.lowerExpr(c)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// lowerExpr dispatches on the analyzer expression kind. The resolved static
// type is copied as is.
func (l *lowerer) lowerExpr(n *analyzer.Node) (*decl.Expr, *StructureError) {
	if n == nil {
		return nil, l.malformed(nil, "missing expression")
	}
	e := &decl.Expr{Type: typing(n.Type), Span: l.span(n.Span)}

	switch n.Kind {
	case analyzer.KindLiteral:
		if n.Const == nil {
			return nil, l.malformed(n, "literal without constant value")
		}
		c, err := l.constant(n, n.Const)
		if err != nil {
			return nil, err
		}
		e.Kind, e.Data = decl.ExprLiteral, decl.LiteralData{Value: *c}

	case analyzer.KindName:
		e.Kind, e.Data = decl.ExprName, decl.NameData{Name: n.Name, Symbol: symbol(n.Symbol)}

	case analyzer.KindThis:
		e.Kind, e.Data = decl.ExprThis, decl.ThisData{}

	case analyzer.KindMemberAccess:
		target, err := l.requireExpr(n, n.Target, "member access target")
		if err != nil {
			return nil, err
		}
		e.Kind, e.Data = decl.ExprMemberAccess, decl.MemberAccessData{Target: target, Member: n.Name, Symbol: symbol(n.Symbol)}

	case analyzer.KindInvoke:
		callee, err := l.requireExpr(n, n.Target, "callee")
		if err != nil {
			return nil, err
		}
		args, err := l.lowerExprs(n.Children)
		if err != nil {
			return nil, err
		}
		delegate := (n.Symbol != nil && n.Symbol.Kind == "delegate") ||
			(n.Target.Type != nil && n.Target.Type.Kind == analyzer.TypeDelegate)
		e.Kind, e.Data = decl.ExprInvoke, decl.InvokeData{Callee: callee, Args: args, Delegate: delegate}

	case analyzer.KindBinary:
		left, err := l.requireExpr(n, n.Left, "left operand")
		if err != nil {
			return nil, err
		}
		right, err := l.requireExpr(n, n.Right, "right operand")
		if err != nil {
			return nil, err
		}
		e.Kind, e.Data = decl.ExprBinary, decl.BinaryData{Op: n.Op, Left: left, Right: right}

	case analyzer.KindUnary:
		operand, err := l.requireExpr(n, n.Value, "operand")
		if err != nil {
			return nil, err
		}
		e.Kind, e.Data = decl.ExprUnary, decl.UnaryData{Op: n.Op, Operand: operand, Postfix: n.Postfix}

	case analyzer.KindCast:
		if n.Type == nil {
			return nil, l.malformed(n, "cast without target type")
		}
		value, err := l.requireExpr(n, n.Value, "cast operand")
		if err != nil {
			return nil, err
		}
		e.Kind, e.Data = decl.ExprCast, decl.CastData{Value: value}

	case analyzer.KindNew:
		if n.Type == nil {
			return nil, l.malformed(n, "object creation without type")
		}
		args, err := l.lowerExprs(n.Children)
		if err != nil {
			return nil, err
		}
		e.Kind, e.Data = decl.ExprNew, decl.NewData{Args: args}

	case analyzer.KindIndex:
		target, err := l.requireExpr(n, n.Target, "indexed value")
		if err != nil {
			return nil, err
		}
		index, err := l.requireExpr(n, n.Value, "index")
		if err != nil {
			return nil, err
		}
		e.Kind, e.Data = decl.ExprIndex, decl.IndexData{Target: target, Index: index}

	case analyzer.KindConditional:
		cond, err := l.requireExpr(n, n.Cond, "condition")
		if err != nil {
			return nil, err
		}
		then, err := l.requireExpr(n, n.Then, "then branch")
		if err != nil {
			return nil, err
		}
		els, err := l.requireExpr(n, n.Else, "else branch")
		if err != nil {
			return nil, err
		}
		e.Kind, e.Data = decl.ExprConditional, decl.ConditionalData{Cond: cond, Then: then, Else: els}

	default:
		return nil, l.unsupported("expression", n)
	}
	return e, nil
}

func symbol(s *analyzer.Symbol) decl.Symbol {
	if s == nil {
		return decl.Symbol{}
	}
	out := decl.Symbol{FullName: s.FullName, Static: s.Static}
	switch s.Kind {
	case "local":
		out.Kind = decl.SymLocal
	case "param":
		out.Kind = decl.SymParam
	case "field":
		out.Kind = decl.SymField
	case "property":
		out.Kind = decl.SymProperty
	case "method":
		out.Kind = decl.SymMethod
	case "type":
		out.Kind = decl.SymType
	case "enum_member":
		out.Kind = decl.SymEnumMember
	default:
		out.Kind = decl.SymUnknown
	}
	return out
}
