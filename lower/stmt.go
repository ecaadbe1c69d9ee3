package lower

import (
	"github.com/dannys-code-corner/incan/ast"
	"github.com/dannys-code-corner/incan/ir"
	"github.com/dannys-code-corner/incan/symbols"
)

func (l *lowerer) lowerBlock(body []ast.Stmt) ([]ir.Stmt, error) {
	l.table.Push()
	defer l.table.Pop()
	out := make([]ir.Stmt, 0, len(body))
	for _, s := range body {
		lowered, err := l.lowerStmt(s)
		if err != nil {
			return nil, err
		}
		if lowered != nil {
			out = append(out, lowered)
		}
	}
	return out, nil
}

func (l *lowerer) lowerStmt(s ast.Stmt) (ir.Stmt, error) {
	switch s := s.(type) {
	case *ast.BindingStmt:
		return l.lowerBindingStmt(s)
	case *ast.ReturnStmt:
		return l.lowerReturnStmt(s)
	case *ast.IfStmt:
		return l.lowerIfStmt(s)
	case *ast.WhileStmt:
		cond, err := l.lowerExpr(s.Cond)
		if err != nil {
			return nil, err
		}
		body, err := l.lowerBlock(s.Body)
		if err != nil {
			return nil, err
		}
		return &ir.WhileStmt{Cond: cond, Body: body}, nil
	case *ast.ForStmt:
		return l.lowerForStmt(s)
	case *ast.MatchStmt:
		return l.lowerMatchStmt(s)
	case *ast.ExprStmt:
		v, err := l.lowerExpr(s.Value)
		if err != nil {
			return nil, err
		}
		return &ir.ExprStmt{Value: v}, nil
	case *ast.PassStmt:
		return &ir.PassStmt{}, nil
	case *ast.YieldStmt:
		var v ir.Expr
		var err error
		if s.Value != nil {
			if v, err = l.lowerExpr(s.Value); err != nil {
				return nil, err
			}
		}
		return &ir.YieldStmt{Value: v}, nil
	default:
		return nil, nil
	}
}

func (l *lowerer) lowerBindingStmt(s *ast.BindingStmt) (ir.Stmt, error) {
	value, err := l.lowerExpr(s.Value)
	if err != nil {
		return nil, err
	}
	declared := l.typeOf(s.Value)
	if s.TypeAnn != nil {
		declared = l.resolveType(s.TypeAnn)
	}
	conv := convertFor(value, declared)

	switch s.Kind {
	case ast.BindLet, ast.BindMut:
		_ = l.table.Declare(symbols.Entry{
			Kind: symbols.Value, Name: s.Name.Name, Type: declared,
			Mutable: s.Kind == ast.BindMut, Origin: l.pos(s.Name),
		}, l.handler)
		return &ir.LetStmt{Name: s.Name.Name, Mutable: s.Kind == ast.BindMut, Value: value, Conversion: conv, Typ: ir.OwnedType(declared)}, nil
	default: // BindInferred
		if existing, ok := l.table.Lookup(s.Name.Name); ok && existing.Kind == symbols.Value {
			return &ir.ReassignStmt{Name: s.Name.Name, Value: value, Conversion: conv, Typ: ir.OwnedType(declared)}, nil
		}
		_ = l.table.Declare(symbols.Entry{Kind: symbols.Value, Name: s.Name.Name, Type: declared, Origin: l.pos(s.Name)}, l.handler)
		return &ir.LetStmt{Name: s.Name.Name, Mutable: false, Value: value, Conversion: conv, Typ: ir.OwnedType(declared)}, nil
	}
}

func (l *lowerer) lowerReturnStmt(s *ast.ReturnStmt) (ir.Stmt, error) {
	if s.Value == nil {
		return &ir.ReturnStmt{}, nil
	}
	value, err := l.lowerExpr(s.Value)
	if err != nil {
		return nil, err
	}
	return &ir.ReturnStmt{Value: value, Conversion: convertFor(value, l.funcResult), Typ: ir.OwnedType(l.funcResult)}, nil
}

func (l *lowerer) lowerIfStmt(s *ast.IfStmt) (ir.Stmt, error) {
	cond, err := l.lowerExpr(s.Cond)
	if err != nil {
		return nil, err
	}
	body, err := l.lowerBlock(s.Body)
	if err != nil {
		return nil, err
	}
	out := &ir.IfStmt{Cond: cond, Body: body}
	if s.Elif != nil {
		elif, err := l.lowerIfStmt(s.Elif)
		if err != nil {
			return nil, err
		}
		out.Elif = elif.(*ir.IfStmt)
		return out, nil
	}
	if s.Else != nil {
		els, err := l.lowerBlock(s.Else)
		if err != nil {
			return nil, err
		}
		out.Else = els
	}
	return out, nil
}

func (l *lowerer) lowerForStmt(s *ast.ForStmt) (ir.Stmt, error) {
	iter, err := l.lowerExpr(s.Iter)
	if err != nil {
		return nil, err
	}
	l.table.Push()
	defer l.table.Pop()
	elemT := elementTypeOf(l.typeOf(s.Iter))
	_ = l.table.Declare(symbols.Entry{Kind: symbols.Value, Name: s.Var.Name, Type: elemT, Origin: l.pos(s.Var)}, l.handler)
	body := make([]ir.Stmt, 0, len(s.Body))
	for _, stmt := range s.Body {
		lowered, err := l.lowerStmt(stmt)
		if err != nil {
			return nil, err
		}
		if lowered != nil {
			body = append(body, lowered)
		}
	}
	return &ir.ForStmt{Var: s.Var.Name, Iter: iter, Body: body}, nil
}

func (l *lowerer) lowerMatchStmt(s *ast.MatchStmt) (ir.Stmt, error) {
	scrutT := l.typeOf(s.Scrutinee)
	scrutinee, err := l.lowerExpr(s.Scrutinee)
	if err != nil {
		return nil, err
	}
	arms := make([]ir.MatchArm, len(s.Arms))
	for i, arm := range s.Arms {
		lowered, err := l.lowerMatchArm(arm, scrutT)
		if err != nil {
			return nil, err
		}
		arms[i] = lowered
	}
	return &ir.MatchStmt{Scrutinee: scrutinee, Arms: arms}, nil
}
