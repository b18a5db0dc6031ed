package parser

import (
	"slices"

	"github.com/spicery/pyast-json/pkg/ast"
	. "github.com/spicery/pyast-json/pkg/common"
)

// Binary operators from loosest to tightest binding.
var binaryLevels = [][]string{
	{"|"},
	{"^"},
	{"&"},
	{"<<", ">>"},
	{"+", "-"},
	{"*", "/", "//", "%", "@"},
}

var unaryOperators = map[string]ast.UnaryOperator{
	"+": ast.UAdd,
	"-": ast.USub,
	"~": ast.Invert,
}

var compareOperators = map[string]ast.CmpOperator{
	"==": ast.Eq,
	"!=": ast.NotEq,
	"<":  ast.Lt,
	"<=": ast.LtE,
	">":  ast.Gt,
	">=": ast.GtE,
}

var expressionKeywords = map[string]bool{
	"True": true, "False": true, "None": true, "not": true, "lambda": true, "await": true,
}

var expressionOperators = map[string]bool{
	"(": true, "[": true, "{": true, "-": true, "+": true, "~": true, "...": true, "*": true,
}

// startsExpression reports whether token can begin a (possibly starred)
// expression.
func startsExpression(token *Token) bool {
	switch token.Type {
	case NameTokenType:
		return !keywords[token.Text] || expressionKeywords[token.Text]
	case NumberTokenType, StringTokenType:
		return true
	case OperatorTokenType:
		return expressionOperators[token.Text]
	}
	return false
}

func (p *Parser) startsComprehension() bool {
	token := p.PeekToken()
	return token.Is("for") || token.Is("async") && p.PeekTokenAt(1).Is("for")
}

// MustReadStarExpressions reads a comma-separated list of possibly starred
// expressions; more than one, or a trailing comma, makes a Tuple.
func (p *Parser) MustReadStarExpressions() (ast.Expr, error) {
	start := p.start()
	first, err := p.readStarExpression()
	if err != nil {
		return nil, err
	}
	if !p.PeekToken().Is(",") {
		return first, nil
	}
	elts := []ast.Expr{first}
	for p.TryReadToken(",") != nil {
		if !startsExpression(p.PeekToken()) {
			break
		}
		elt, err := p.readStarExpression()
		if err != nil {
			return nil, err
		}
		elts = append(elts, elt)
	}
	return at(p, start, &ast.Tuple{Elts: elts, Ctx: ast.Load}), nil
}

func (p *Parser) readStarExpression() (ast.Expr, error) {
	if p.PeekToken().Is("*") {
		return p.readStarred(p.MustReadBitwiseOr)
	}
	return p.MustReadExpression()
}

func (p *Parser) readStarNamedExpression() (ast.Expr, error) {
	if p.PeekToken().Is("*") {
		return p.readStarred(p.MustReadBitwiseOr)
	}
	return p.MustReadNamedExpression()
}

func (p *Parser) readStarred(operand func() (ast.Expr, error)) (ast.Expr, error) {
	start := p.start()
	p.GetToken()
	value, err := operand()
	if err != nil {
		return nil, err
	}
	return at(p, start, &ast.Starred{Value: value, Ctx: ast.Load}), nil
}

// MustReadNamedExpression reads an expression that may be an assignment
// expression "name := value".
func (p *Parser) MustReadNamedExpression() (ast.Expr, error) {
	start := p.start()
	if isName(p.PeekToken()) && p.PeekTokenAt(1).Is(":=") {
		name := p.GetToken()
		target := at(p, start, &ast.Name{Id: ast.Identifier(name.Text), Ctx: ast.Store})
		p.GetToken()
		value, err := p.MustReadExpression()
		if err != nil {
			return nil, err
		}
		return at(p, start, &ast.NamedExpr{Target: target, Value: value}), nil
	}
	e, err := p.MustReadExpression()
	if err != nil {
		return nil, err
	}
	if token := p.PeekToken(); token.Is(":=") {
		return nil, p.errorAtPos(startOf(e), "cannot use assignment expressions with %s", describe(e))
	}
	return e, nil
}

// MustReadExpression reads a conditional expression, a lambda or anything
// that binds tighter.
func (p *Parser) MustReadExpression() (ast.Expr, error) {
	if p.PeekToken().Is("lambda") {
		return p.readLambda()
	}
	start := p.start()
	body, err := p.readDisjunction()
	if err != nil {
		return nil, err
	}
	if p.TryReadToken("if") == nil {
		return body, nil
	}
	test, err := p.readDisjunction()
	if err != nil {
		return nil, err
	}
	if _, err := p.MustReadToken("else"); err != nil {
		return nil, err
	}
	orelse, err := p.MustReadExpression()
	if err != nil {
		return nil, err
	}
	return at(p, start, &ast.IfExp{Test: test, Body: body, Orelse: orelse}), nil
}

func (p *Parser) readLambda() (ast.Expr, error) {
	start := p.start()
	p.GetToken()
	args, err := p.readParameters(":", false)
	if err != nil {
		return nil, err
	}
	if _, err := p.MustReadToken(":"); err != nil {
		return nil, err
	}
	body, err := p.MustReadExpression()
	if err != nil {
		return nil, err
	}
	return at(p, start, &ast.Lambda{Args: args, Body: body}), nil
}

func (p *Parser) readDisjunction() (ast.Expr, error) {
	return p.readBoolOp("or", ast.Or, p.readConjunction)
}

func (p *Parser) readConjunction() (ast.Expr, error) {
	return p.readBoolOp("and", ast.And, p.readInversion)
}

// readBoolOp reads one or more operands joined by keyword; two or more
// become a single flat BoolOp.
func (p *Parser) readBoolOp(keyword string, op ast.BoolOperator, operand func() (ast.Expr, error)) (ast.Expr, error) {
	start := p.start()
	first, err := operand()
	if err != nil {
		return nil, err
	}
	if !p.PeekToken().Is(keyword) {
		return first, nil
	}
	values := []ast.Expr{first}
	for p.TryReadToken(keyword) != nil {
		value, err := operand()
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return at(p, start, &ast.BoolOp{Op: op, Values: values}), nil
}

func (p *Parser) readInversion() (ast.Expr, error) {
	start := p.start()
	if p.TryReadToken("not") == nil {
		return p.readComparison()
	}
	operand, err := p.readInversion()
	if err != nil {
		return nil, err
	}
	return at(p, start, &ast.UnaryOp{Op: ast.Not, Operand: operand}), nil
}

func (p *Parser) tryReadCompareOperator() (ast.CmpOperator, bool) {
	token := p.PeekToken()
	if op, ok := compareOperators[token.Text]; ok && token.Type == OperatorTokenType {
		p.GetToken()
		return op, true
	}
	switch {
	case token.Is("in"):
		p.GetToken()
		return ast.In, true
	case token.Is("not") && p.PeekTokenAt(1).Is("in"):
		p.GetToken()
		p.GetToken()
		return ast.NotIn, true
	case token.Is("is"):
		p.GetToken()
		if p.TryReadToken("not") != nil {
			return ast.IsNot, true
		}
		return ast.Is, true
	}
	return "", false
}

func (p *Parser) readComparison() (ast.Expr, error) {
	start := p.start()
	left, err := p.MustReadBitwiseOr()
	if err != nil {
		return nil, err
	}
	var ops []ast.CmpOperator
	var comparators []ast.Expr
	for {
		op, ok := p.tryReadCompareOperator()
		if !ok {
			break
		}
		right, err := p.MustReadBitwiseOr()
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
		comparators = append(comparators, right)
	}
	if len(ops) == 0 {
		return left, nil
	}
	return at(p, start, &ast.Compare{Left: left, Ops: ops, Comparators: comparators}), nil
}

// MustReadBitwiseOr reads a binary-operator expression; this is the level
// used for assignment and deletion targets.
func (p *Parser) MustReadBitwiseOr() (ast.Expr, error) {
	return p.readBinary(0)
}

func (p *Parser) readBinary(level int) (ast.Expr, error) {
	if level == len(binaryLevels) {
		return p.readFactor()
	}
	start := p.start()
	left, err := p.readBinary(level + 1)
	if err != nil {
		return nil, err
	}
	for {
		token := p.PeekToken()
		if token.Type != OperatorTokenType || !slices.Contains(binaryLevels[level], token.Text) {
			return left, nil
		}
		p.GetToken()
		right, err := p.readBinary(level + 1)
		if err != nil {
			return nil, err
		}
		left = at(p, start, &ast.BinOp{Left: left, Op: ast.BinaryOperators[token.Text], Right: right})
	}
}

func (p *Parser) readFactor() (ast.Expr, error) {
	start := p.start()
	token := p.PeekToken()
	if op, ok := unaryOperators[token.Text]; ok && token.Type == OperatorTokenType {
		p.GetToken()
		operand, err := p.readFactor()
		if err != nil {
			return nil, err
		}
		return at(p, start, &ast.UnaryOp{Op: op, Operand: operand}), nil
	}
	return p.readPower()
}

func (p *Parser) readPower() (ast.Expr, error) {
	start := p.start()
	base, err := p.readAwaitPrimary()
	if err != nil {
		return nil, err
	}
	if p.TryReadToken("**") == nil {
		return base, nil
	}
	exponent, err := p.readFactor()
	if err != nil {
		return nil, err
	}
	return at(p, start, &ast.BinOp{Left: base, Op: ast.Pow, Right: exponent}), nil
}

func (p *Parser) readAwaitPrimary() (ast.Expr, error) {
	start := p.start()
	if p.TryReadToken("await") == nil {
		return p.readPrimary()
	}
	value, err := p.readPrimary()
	if err != nil {
		return nil, err
	}
	return at(p, start, &ast.Await{Value: value}), nil
}

// readPrimary reads an atom followed by any attribute references, calls
// and subscripts.
func (p *Parser) readPrimary() (ast.Expr, error) {
	start := p.start()
	e, err := p.readAtom()
	if err != nil {
		return nil, err
	}
	for {
		token := p.PeekToken()
		switch {
		case token.Is("."):
			p.GetToken()
			name, err := p.MustReadName()
			if err != nil {
				return nil, err
			}
			e = at(p, start, &ast.Attribute{Value: e, Attr: ast.Identifier(name.Text), Ctx: ast.Load})
		case token.Is("("):
			args, keywords, err := p.readCallArguments()
			if err != nil {
				return nil, err
			}
			e = at(p, start, &ast.Call{Func: e, Args: args, Keywords: keywords})
		case token.Is("["):
			p.GetToken()
			index, err := p.readSlices()
			if err != nil {
				return nil, err
			}
			if _, err := p.MustReadToken("]"); err != nil {
				return nil, err
			}
			e = at(p, start, &ast.Subscript{Value: e, Index: index, Ctx: ast.Load})
		default:
			return e, nil
		}
	}
}

func (p *Parser) readSlices() (ast.Expr, error) {
	start := p.start()
	first, err := p.readSlice()
	if err != nil {
		return nil, err
	}
	if !p.PeekToken().Is(",") {
		return first, nil
	}
	elts := []ast.Expr{first}
	for p.TryReadToken(",") != nil {
		if p.PeekToken().Is("]") {
			break
		}
		elt, err := p.readSlice()
		if err != nil {
			return nil, err
		}
		elts = append(elts, elt)
	}
	return at(p, start, &ast.Tuple{Elts: elts, Ctx: ast.Load}), nil
}

func (p *Parser) endsSlicePart() bool {
	token := p.PeekToken()
	return token.Is(":") || token.Is("]") || token.Is(",")
}

func (p *Parser) readSlice() (ast.Expr, error) {
	start := p.start()
	var lower ast.Expr
	if !p.PeekToken().Is(":") {
		e, err := p.MustReadNamedExpression()
		if err != nil {
			return nil, err
		}
		if !p.PeekToken().Is(":") {
			return e, nil
		}
		lower = e
	}
	p.GetToken()
	n := &ast.Slice{Lower: lower}
	var err error
	if !p.endsSlicePart() {
		if n.Upper, err = p.MustReadExpression(); err != nil {
			return nil, err
		}
	}
	if p.TryReadToken(":") != nil && !p.endsSlicePart() {
		if n.Step, err = p.MustReadExpression(); err != nil {
			return nil, err
		}
	}
	return at(p, start, n), nil
}

func (p *Parser) readAtom() (ast.Expr, error) {
	start := p.start()
	token := p.PeekToken()
	switch token.Type {
	case NameTokenType:
		switch token.Text {
		case "True":
			p.GetToken()
			return at(p, start, &ast.Constant{Value: ast.Bool(true)}), nil
		case "False":
			p.GetToken()
			return at(p, start, &ast.Constant{Value: ast.Bool(false)}), nil
		case "None":
			p.GetToken()
			return at(p, start, &ast.Constant{Value: ast.NoneConst{}}), nil
		}
		if !isName(token) {
			return nil, p.unexpected(token)
		}
		p.GetToken()
		return at(p, start, &ast.Name{Id: ast.Identifier(token.Text), Ctx: ast.Load}), nil
	case NumberTokenType:
		p.GetToken()
		value, err := parseNumber(token.Text)
		if err != nil {
			return nil, p.errorAt(token, "%s", err.Error())
		}
		return at(p, start, &ast.Constant{Value: value}), nil
	case StringTokenType:
		return p.readStrings()
	}
	switch {
	case token.Is("("):
		return p.readGroup()
	case token.Is("["):
		return p.readList()
	case token.Is("{"):
		return p.readBraces()
	case token.Is("..."):
		p.GetToken()
		return at(p, start, &ast.Constant{Value: ast.EllipsisConst{}}), nil
	}
	return nil, p.unexpected(token)
}

// readGroup reads a parenthesized expression, a tuple display or a
// generator expression.
func (p *Parser) readGroup() (ast.Expr, error) {
	start := p.start()
	p.GetToken()
	if p.TryReadToken(")") != nil {
		return at(p, start, &ast.Tuple{Elts: []ast.Expr{}, Ctx: ast.Load}), nil
	}
	if p.PeekToken().Is("yield") {
		e, err := p.readYield()
		if err != nil {
			return nil, err
		}
		if _, err := p.MustReadToken(")"); err != nil {
			return nil, err
		}
		p.parenthesized[e] = true
		return e, nil
	}
	first, err := p.readStarNamedExpression()
	if err != nil {
		return nil, err
	}
	if p.startsComprehension() {
		return p.readComprehension(start, ast.GeneratorExpKind, first, ")")
	}
	if p.PeekToken().Is(",") {
		elts, err := p.readElements(first, ")")
		if err != nil {
			return nil, err
		}
		return at(p, start, &ast.Tuple{Elts: elts, Ctx: ast.Load}), nil
	}
	if _, err := p.MustReadToken(")"); err != nil {
		return nil, err
	}
	if _, ok := first.(*ast.Starred); ok {
		return nil, p.errorAtPos(startOf(first), "cannot use starred expression here")
	}
	p.parenthesized[first] = true
	return first, nil
}

// readElements reads the rest of a comma-separated display after its
// first element, including the closing bracket.
func (p *Parser) readElements(first ast.Expr, closer string) ([]ast.Expr, error) {
	elts := []ast.Expr{first}
	for p.TryReadToken(",") != nil {
		if p.PeekToken().Is(closer) {
			break
		}
		elt, err := p.readStarNamedExpression()
		if err != nil {
			return nil, err
		}
		elts = append(elts, elt)
	}
	if _, err := p.MustReadToken(closer); err != nil {
		return nil, err
	}
	return elts, nil
}

func (p *Parser) readList() (ast.Expr, error) {
	start := p.start()
	p.GetToken()
	if p.TryReadToken("]") != nil {
		return at(p, start, &ast.List{Elts: []ast.Expr{}, Ctx: ast.Load}), nil
	}
	first, err := p.readStarNamedExpression()
	if err != nil {
		return nil, err
	}
	if p.startsComprehension() {
		return p.readComprehension(start, ast.ListCompKind, first, "]")
	}
	elts, err := p.readElements(first, "]")
	if err != nil {
		return nil, err
	}
	return at(p, start, &ast.List{Elts: elts, Ctx: ast.Load}), nil
}

// readBraces reads a dict or set display or comprehension.
func (p *Parser) readBraces() (ast.Expr, error) {
	start := p.start()
	p.GetToken()
	if p.TryReadToken("}") != nil {
		return at(p, start, &ast.Dict{Keys: []ast.Expr{}, Values: []ast.Expr{}}), nil
	}
	if p.TryReadToken("**") != nil {
		value, err := p.MustReadBitwiseOr()
		if err != nil {
			return nil, err
		}
		return p.readDictItems(start, nil, value)
	}
	first, err := p.readStarNamedExpression()
	if err != nil {
		return nil, err
	}
	if p.TryReadToken(":") == nil {
		if p.startsComprehension() {
			return p.readComprehension(start, ast.SetCompKind, first, "}")
		}
		elts, err := p.readElements(first, "}")
		if err != nil {
			return nil, err
		}
		return at(p, start, &ast.Set{Elts: elts}), nil
	}
	if _, ok := first.(*ast.Starred); ok {
		return nil, p.errorAtPos(startOf(first), "cannot use a starred expression in a dictionary value")
	}
	value, err := p.MustReadExpression()
	if err != nil {
		return nil, err
	}
	if p.startsComprehension() {
		generators, err := p.readComprehensionClauses()
		if err != nil {
			return nil, err
		}
		if _, err := p.MustReadToken("}"); err != nil {
			return nil, err
		}
		return at(p, start, &ast.DictComp{Key: first, Value: value, Generators: generators}), nil
	}
	return p.readDictItems(start, first, value)
}

// readDictItems reads the remaining "key: value" and "**mapping" items of a
// dict display. A nil key stands for "**".
func (p *Parser) readDictItems(start LineCol, key, value ast.Expr) (ast.Expr, error) {
	n := &ast.Dict{Keys: []ast.Expr{key}, Values: []ast.Expr{value}}
	for p.TryReadToken(",") != nil {
		if p.PeekToken().Is("}") {
			break
		}
		if p.TryReadToken("**") != nil {
			value, err := p.MustReadBitwiseOr()
			if err != nil {
				return nil, err
			}
			n.Keys = append(n.Keys, nil)
			n.Values = append(n.Values, value)
			continue
		}
		key, err := p.MustReadExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.MustReadToken(":"); err != nil {
			return nil, err
		}
		value, err := p.MustReadExpression()
		if err != nil {
			return nil, err
		}
		n.Keys = append(n.Keys, key)
		n.Values = append(n.Values, value)
	}
	if _, err := p.MustReadToken("}"); err != nil {
		return nil, err
	}
	return at(p, start, n), nil
}

func (p *Parser) readComprehension(start LineCol, kind string, elt ast.Expr, closer string) (ast.Expr, error) {
	if _, ok := elt.(*ast.Starred); ok {
		return nil, p.errorAtPos(startOf(elt), "iterable unpacking cannot be used in comprehension")
	}
	generators, err := p.readComprehensionClauses()
	if err != nil {
		return nil, err
	}
	if _, err := p.MustReadToken(closer); err != nil {
		return nil, err
	}
	return at(p, start, &ast.Comp{CompKind: kind, Elt: elt, Generators: generators}), nil
}

func (p *Parser) readComprehensionClauses() ([]*ast.Comprehension, error) {
	var generators []*ast.Comprehension
	for p.startsComprehension() {
		clause := &ast.Comprehension{Ifs: []ast.Expr{}}
		if p.TryReadToken("async") != nil {
			clause.IsAsync = 1
		}
		p.GetToken()
		target, err := p.readStarTargets()
		if err != nil {
			return nil, err
		}
		if _, err := p.MustReadToken("in"); err != nil {
			return nil, err
		}
		iter, err := p.readDisjunction()
		if err != nil {
			return nil, err
		}
		clause.Target, clause.Iter = target, iter
		for p.TryReadToken("if") != nil {
			cond, err := p.readDisjunction()
			if err != nil {
				return nil, err
			}
			clause.Ifs = append(clause.Ifs, cond)
		}
		generators = append(generators, clause)
	}
	return generators, nil
}

func (p *Parser) readYield() (ast.Expr, error) {
	start := p.start()
	p.GetToken()
	if p.TryReadToken("from") != nil {
		value, err := p.MustReadExpression()
		if err != nil {
			return nil, err
		}
		return at(p, start, &ast.YieldFrom{Value: value}), nil
	}
	n := &ast.Yield{}
	if startsExpression(p.PeekToken()) {
		value, err := p.MustReadStarExpressions()
		if err != nil {
			return nil, err
		}
		n.Value = value
	}
	return at(p, start, n), nil
}
