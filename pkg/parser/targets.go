package parser

import (
	"github.com/spicery/pyast-json/pkg/ast"
	. "github.com/spicery/pyast-json/pkg/common"
)

func startOf(e ast.Expr) LineCol {
	pos := e.Position()
	return LineCol{LineNo: pos.Lineno, ColNo: pos.ColOffset}
}

// describe names an expression the way error messages refer to it.
func describe(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.Name:
		return "name"
	case *ast.Attribute:
		return "attribute"
	case *ast.Subscript:
		return "subscript"
	case *ast.Starred:
		return "starred"
	case *ast.Tuple:
		return "tuple"
	case *ast.List:
		return "list"
	case *ast.Call:
		return "function call"
	case *ast.Constant:
		switch v := n.Value.(type) {
		case ast.Bool, ast.NoneConst, ast.EllipsisConst:
			return v.Repr()
		}
		return "literal"
	case *ast.JoinedStr:
		return "f-string expression"
	case *ast.Compare:
		return "comparison"
	case *ast.Lambda:
		return "lambda"
	case *ast.IfExp:
		return "conditional expression"
	case *ast.NamedExpr:
		return "named expression"
	case *ast.Comp:
		switch n.CompKind {
		case ast.ListCompKind:
			return "list comprehension"
		case ast.SetCompKind:
			return "set comprehension"
		}
		return "generator expression"
	case *ast.DictComp:
		return "dict comprehension"
	case *ast.Dict:
		return "dict literal"
	case *ast.Set:
		return "set display"
	case *ast.Await:
		return "await expression"
	case *ast.Yield, *ast.YieldFrom:
		return "yield expression"
	}
	return "expression"
}

// setContext marks e and, for tuples, lists and starred expressions, its
// elements as an assignment or deletion target.
func (p *Parser) setContext(e ast.Expr, ctx ast.ExprContext) error {
	switch n := e.(type) {
	case *ast.Name:
		if n.Id == "__debug__" {
			return p.errorAtPos(startOf(e), "cannot %s __debug__", verb(ctx))
		}
		n.Ctx = ctx
	case *ast.Attribute:
		n.Ctx = ctx
	case *ast.Subscript:
		n.Ctx = ctx
	case *ast.Starred:
		if ctx == ast.Del {
			return p.errorAtPos(startOf(e), "cannot delete starred")
		}
		n.Ctx = ctx
		return p.setContext(n.Value, ctx)
	case *ast.Tuple:
		n.Ctx = ctx
		return p.setContextAll(n.Elts, ctx)
	case *ast.List:
		n.Ctx = ctx
		return p.setContextAll(n.Elts, ctx)
	default:
		return p.errorAtPos(startOf(e), "cannot %s %s", verb(ctx), describe(e))
	}
	return nil
}

func (p *Parser) setContextAll(elts []ast.Expr, ctx ast.ExprContext) error {
	for _, elt := range elts {
		if err := p.setContext(elt, ctx); err != nil {
			return err
		}
	}
	return nil
}

func verb(ctx ast.ExprContext) string {
	if ctx == ast.Del {
		return "delete"
	}
	return "assign to"
}

// readStarTarget reads one element of a target list: a possibly starred
// expression at the level that stops before "in" and "=".
func (p *Parser) readStarTarget() (ast.Expr, error) {
	if p.PeekToken().Is("*") {
		return p.readStarred(p.readStarTarget)
	}
	return p.MustReadBitwiseOr()
}

// readStarTargets reads the target list of a for loop or comprehension
// and marks it as a store target.
func (p *Parser) readStarTargets() (ast.Expr, error) {
	start := p.start()
	first, err := p.readStarTarget()
	if err != nil {
		return nil, err
	}
	target := first
	if p.PeekToken().Is(",") {
		elts := []ast.Expr{first}
		for p.TryReadToken(",") != nil {
			if !startsExpression(p.PeekToken()) {
				break
			}
			elt, err := p.readStarTarget()
			if err != nil {
				return nil, err
			}
			elts = append(elts, elt)
		}
		target = at(p, start, &ast.Tuple{Elts: elts})
	}
	if err := p.setContext(target, ast.Store); err != nil {
		return nil, err
	}
	return target, nil
}
