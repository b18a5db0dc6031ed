package parser

import (
	"github.com/spicery/pyast-json/pkg/ast"
	. "github.com/spicery/pyast-json/pkg/common"
)

// readCallArguments reads a parenthesized argument list of a call or class
// definition. A lone generator expression argument takes the position of
// the parentheses.
func (p *Parser) readCallArguments() ([]ast.Expr, []*ast.Keyword, error) {
	parenStart := p.start()
	p.GetToken()
	args := []ast.Expr{}
	keywords := []*ast.Keyword{}
	sawKeyword, sawDoubleStar := false, false
	for !p.PeekToken().Is(")") {
		start := p.start()
		switch {
		case p.PeekToken().Is("*"):
			if sawDoubleStar {
				return nil, nil, p.errorAt(p.PeekToken(), "iterable argument unpacking follows keyword argument unpacking")
			}
			starred, err := p.readStarred(p.MustReadExpression)
			if err != nil {
				return nil, nil, err
			}
			args = append(args, starred)
		case p.TryReadToken("**") != nil:
			value, err := p.MustReadExpression()
			if err != nil {
				return nil, nil, err
			}
			keywords = append(keywords, at(p, start, &ast.Keyword{Value: value}))
			sawDoubleStar = true
		case isName(p.PeekToken()) && p.PeekTokenAt(1).Is("="):
			name := p.GetToken()
			p.GetToken()
			value, err := p.MustReadExpression()
			if err != nil {
				return nil, nil, err
			}
			id := ast.Identifier(name.Text)
			keywords = append(keywords, at(p, start, &ast.Keyword{Arg: &id, Value: value}))
			sawKeyword = true
		default:
			arg, err := p.MustReadNamedExpression()
			if err != nil {
				return nil, nil, err
			}
			if p.startsComprehension() {
				generators, err := p.readComprehensionClauses()
				if err != nil {
					return nil, nil, err
				}
				if len(args) > 0 || len(keywords) > 0 || !p.PeekToken().Is(")") {
					return nil, nil, p.errorAtPos(startOf(arg), "Generator expression must be parenthesized")
				}
				p.GetToken()
				genexp := at(p, parenStart, &ast.Comp{CompKind: ast.GeneratorExpKind, Elt: arg, Generators: generators})
				return []ast.Expr{genexp}, keywords, nil
			}
			if token := p.PeekToken(); token.Is("=") {
				return nil, nil, p.errorAtPos(startOf(arg), "expression cannot contain assignment, perhaps you meant \"==\"?")
			}
			if sawDoubleStar {
				return nil, nil, p.errorAtPos(startOf(arg), "positional argument follows keyword argument unpacking")
			}
			if sawKeyword {
				return nil, nil, p.errorAtPos(startOf(arg), "positional argument follows keyword argument")
			}
			args = append(args, arg)
		}
		if p.TryReadToken(",") == nil {
			break
		}
	}
	if _, err := p.MustReadToken(")"); err != nil {
		return nil, nil, err
	}
	return args, keywords, nil
}

// readParameters reads a def or lambda parameter list up to, but not
// including, closer. Annotations are only accepted for def.
func (p *Parser) readParameters(closer string, annotations bool) (*ast.Arguments, error) {
	a := &ast.Arguments{
		PosOnlyArgs: []*ast.Arg{},
		Args:        []*ast.Arg{},
		KwOnlyArgs:  []*ast.Arg{},
		KwDefaults:  []ast.Expr{},
		Defaults:    []ast.Expr{},
	}
	seenSlash, seenStar := false, false
	for !p.PeekToken().Is(closer) {
		token := p.PeekToken()
		switch {
		case token.Is("/"):
			switch {
			case seenSlash:
				return nil, p.errorAt(token, "/ may appear only once")
			case seenStar:
				return nil, p.errorAt(token, "/ must be ahead of *")
			case len(a.Args) == 0:
				return nil, p.errorAt(token, "at least one argument must precede /")
			}
			p.GetToken()
			seenSlash = true
			a.PosOnlyArgs, a.Args = a.Args, []*ast.Arg{}
		case token.Is("**"):
			p.GetToken()
			kwarg, err := p.readParameter(annotations)
			if err != nil {
				return nil, err
			}
			a.Kwarg = kwarg
			if p.TryReadToken(",") != nil && !p.PeekToken().Is(closer) {
				return nil, p.errorAt(p.PeekToken(), "arguments cannot follow var-keyword argument")
			}
			return a, p.checkBareStar(a, seenStar, token)
		case token.Is("*"):
			if seenStar {
				return nil, p.errorAt(token, "* argument may appear only once")
			}
			p.GetToken()
			seenStar = true
			if next := p.PeekToken(); !next.Is(",") && !next.Is(closer) {
				vararg, err := p.readParameter(annotations)
				if err != nil {
					return nil, err
				}
				a.Vararg = vararg
			}
		default:
			arg, err := p.readParameter(annotations)
			if err != nil {
				return nil, err
			}
			var value ast.Expr
			if p.TryReadToken("=") != nil {
				if value, err = p.MustReadExpression(); err != nil {
					return nil, err
				}
			}
			if seenStar {
				a.KwOnlyArgs = append(a.KwOnlyArgs, arg)
				a.KwDefaults = append(a.KwDefaults, value)
			} else {
				if value == nil && len(a.Defaults) > 0 {
					return nil, p.errorAt(token, "non-default argument follows default argument")
				}
				a.Args = append(a.Args, arg)
				if value != nil {
					a.Defaults = append(a.Defaults, value)
				}
			}
		}
		if p.TryReadToken(",") == nil {
			break
		}
	}
	return a, p.checkBareStar(a, seenStar, p.PeekToken())
}

func (p *Parser) checkBareStar(a *ast.Arguments, seenStar bool, token *Token) error {
	if seenStar && a.Vararg == nil && len(a.KwOnlyArgs) == 0 {
		return p.errorAt(token, "named arguments must follow bare *")
	}
	return nil
}

func (p *Parser) readParameter(annotations bool) (*ast.Arg, error) {
	start := p.start()
	name, err := p.MustReadName()
	if err != nil {
		return nil, err
	}
	arg := &ast.Arg{Arg: ast.Identifier(name.Text)}
	if annotations && p.TryReadToken(":") != nil {
		if arg.Annotation, err = p.MustReadExpression(); err != nil {
			return nil, err
		}
	}
	return at(p, start, arg), nil
}
