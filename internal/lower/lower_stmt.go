package lower

import (
	"sharpc/internal/analyzer"
	"sharpc/internal/decl"
)

// lowerBody lowers an accessor or method body. A nil node is an absent body.
// A non-block node is an expression-bodied member and becomes one statement.
func (l *lowerer) lowerBody(n *analyzer.Node) (*decl.Body, *StructureError) {
	if n == nil {
		return nil, nil
	}
	if n.Kind != analyzer.KindBlock {
		s, err := l.lowerStmt(n)
		if err != nil {
			return nil, err
		}
		return &decl.Body{Stmts: []*decl.Stmt{s}}, nil
	}
	stmts, err := l.lowerStmts(n.Children)
	if err != nil {
		return nil, err
	}
	return &decl.Body{Stmts: stmts}, nil
}

func (l *lowerer) lowerStmts(nodes []*analyzer.Node) ([]*decl.Stmt, *StructureError) {
	out := make([]*decl.Stmt, 0, len(nodes))
	for _, c := range nodes {
		s, err := l.lowerStmt(c)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// lowerStmt dispatches on the analyzer statement kind.
func (l *lowerer) lowerStmt(n *analyzer.Node) (*decl.Stmt, *StructureError) {
	if n == nil {
		return nil, l.malformed(nil, "missing statement")
	}
	sp := l.span(n.Span)

	switch n.Kind {
	case analyzer.KindBlock:
		stmts, err := l.lowerStmts(n.Children)
		if err != nil {
			return nil, err
		}
		return &decl.Stmt{Kind: decl.StmtBlock, Span: sp, Data: decl.BlockData{Stmts: stmts}}, nil

	case analyzer.KindReturn:
		var value *decl.Expr
		if n.Value != nil {
			v, err := l.lowerExpr(n.Value)
			if err != nil {
				return nil, err
			}
			value = v
		}
		return &decl.Stmt{Kind: decl.StmtReturn, Span: sp, Data: decl.ReturnData{Value: value}}, nil

	case analyzer.KindAssign:
		target, err := l.requireExpr(n, n.Target, "assignment target")
		if err != nil {
			return nil, err
		}
		value, err := l.requireExpr(n, n.Value, "assignment value")
		if err != nil {
			return nil, err
		}
		op := n.Op
		if op == "" {
			op = "="
		}
		return &decl.Stmt{Kind: decl.StmtAssign, Span: sp, Data: decl.AssignData{Op: op, Target: target, Value: value}}, nil

	case analyzer.KindIf:
		cond, err := l.requireExpr(n, n.Cond, "condition")
		if err != nil {
			return nil, err
		}
		then, err := l.lowerStmt(n.Then)
		if err != nil {
			return nil, err
		}
		var els *decl.Stmt
		if n.Else != nil {
			if els, err = l.lowerStmt(n.Else); err != nil {
				return nil, err
			}
		}
		return &decl.Stmt{Kind: decl.StmtIf, Span: sp, Data: decl.IfData{Cond: cond, Then: then, Else: els}}, nil

	case analyzer.KindWhile, analyzer.KindDo:
		kind := decl.LoopWhile
		if n.Kind == analyzer.KindDo {
			kind = decl.LoopDo
		}
		cond, err := l.requireExpr(n, n.Cond, "loop condition")
		if err != nil {
			return nil, err
		}
		body, err := l.lowerStmt(n.Body)
		if err != nil {
			return nil, err
		}
		return &decl.Stmt{Kind: decl.StmtLoop, Span: sp, Data: decl.LoopData{Kind: kind, Cond: cond, Body: body}}, nil

	case analyzer.KindFor:
		return l.lowerFor(n)

	case analyzer.KindExprStmt:
		e, err := l.requireExpr(n, n.Value, "expression")
		if err != nil {
			return nil, err
		}
		return &decl.Stmt{Kind: decl.StmtExpr, Span: sp, Data: decl.ExprStmtData{Expr: e}}, nil

	case analyzer.KindLocal:
		if n.Type == nil {
			return nil, l.malformed(n, "local %s has no resolved type", n.Name)
		}
		data := decl.LocalData{Name: n.Name, Typing: typing(n.Type)}
		if n.Value != nil {
			v, err := l.lowerExpr(n.Value)
			if err != nil {
				return nil, err
			}
			data.Value = v
		}
		return &decl.Stmt{Kind: decl.StmtLocal, Span: sp, Data: data}, nil

	case analyzer.KindBreak:
		return &decl.Stmt{Kind: decl.StmtBreak, Span: sp, Data: decl.BreakData{}}, nil

	case analyzer.KindContinue:
		return &decl.Stmt{Kind: decl.StmtContinue, Span: sp, Data: decl.ContinueData{}}, nil

	default:
		return nil, l.unsupported("statement", n)
	}
}

func (l *lowerer) lowerFor(n *analyzer.Node) (*decl.Stmt, *StructureError) {
	init, err := l.lowerStmts(n.Init)
	if err != nil {
		return nil, err
	}
	var cond *decl.Expr
	if n.Cond != nil {
		if cond, err = l.lowerExpr(n.Cond); err != nil {
			return nil, err
		}
	}
	post := make([]*decl.Expr, 0, len(n.Post))
	for _, p := range n.Post {
		e, err := l.lowerExpr(p)
		if err != nil {
			return nil, err
		}
		post = append(post, e)
	}
	body, err := l.lowerStmt(n.Body)
	if err != nil {
		return nil, err
	}
	return &decl.Stmt{
		Kind: decl.StmtLoop,
		Span: l.span(n.Span),
		Data: decl.LoopData{Kind: decl.LoopFor, Init: init, Cond: cond, Post: post, Body: body},
	}, nil
}
