package parser

import (
	"strings"

	"github.com/spicery/pyast-json/pkg/ast"
	. "github.com/spicery/pyast-json/pkg/common"
)

var augmentedOperators = map[string]ast.Operator{
	"+=": ast.Add, "-=": ast.Sub, "*=": ast.Mult, "@=": ast.MatMult,
	"/=": ast.Div, "%=": ast.Mod, "**=": ast.Pow, "<<=": ast.LShift,
	">>=": ast.RShift, "|=": ast.BitOr, "^=": ast.BitXor, "&=": ast.BitAnd,
	"//=": ast.FloorDiv,
}

// MustReadStatement reads one compound statement or one line of simple
// statements.
func (p *Parser) MustReadStatement() ([]ast.Stmt, error) {
	token := p.PeekToken()
	if token.Type == IndentTokenType {
		return nil, p.errorAt(token, "unexpected indent")
	}
	var stmt ast.Stmt
	var err error
	switch {
	case token.Is("if"):
		stmt, err = p.readIf()
	case token.Is("while"):
		stmt, err = p.readWhile()
	case token.Is("for"):
		stmt, err = p.readFor(p.start(), false)
	case token.Is("try"):
		stmt, err = p.readTry()
	case token.Is("with"):
		stmt, err = p.readWith(p.start(), false)
	case token.Is("def"):
		stmt, err = p.readFunctionDef(p.start(), nil, false)
	case token.Is("class"):
		stmt, err = p.readClassDef(nil)
	case token.Is("async"):
		stmt, err = p.readAsync(nil)
	case token.Is("@"):
		stmt, err = p.readDecorated()
	default:
		return p.readSimpleStatements()
	}
	if err != nil {
		return nil, err
	}
	return []ast.Stmt{stmt}, nil
}

// readSimpleStatements reads simple statements separated by semicolons up
// to the end of the line.
func (p *Parser) readSimpleStatements() ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	for {
		stmt, err := p.readSimpleStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		if p.TryReadToken(";") == nil {
			break
		}
		if p.atLineEnd() {
			break
		}
	}
	if err := p.mustReadNewline(); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) atLineEnd() bool {
	token := p.PeekToken()
	return token.Type == NewlineTokenType || token.Type == EndMarkerTokenType
}

func (p *Parser) atStatementEnd() bool {
	return p.atLineEnd() || p.PeekToken().Is(";")
}

func (p *Parser) mustReadNewline() error {
	token := p.PeekToken()
	switch token.Type {
	case NewlineTokenType:
		p.GetToken()
		return nil
	case EndMarkerTokenType:
		return nil
	}
	return p.unexpected(token)
}

func (p *Parser) readSimpleStatement() (ast.Stmt, error) {
	start := p.start()
	token := p.PeekToken()
	if token.Type != NameTokenType {
		return p.readExpressionStatement()
	}
	switch token.Text {
	case "pass":
		p.GetToken()
		return at(p, start, &ast.Pass{}), nil
	case "break":
		p.GetToken()
		return at(p, start, &ast.Break{}), nil
	case "continue":
		p.GetToken()
		return at(p, start, &ast.Continue{}), nil
	case "return":
		p.GetToken()
		n := &ast.Return{}
		if !p.atStatementEnd() {
			value, err := p.MustReadStarExpressions()
			if err != nil {
				return nil, err
			}
			n.Value = value
		}
		return at(p, start, n), nil
	case "raise":
		return p.readRaise()
	case "global", "nonlocal":
		return p.readNameList()
	case "del":
		return p.readDelete()
	case "assert":
		p.GetToken()
		test, err := p.MustReadExpression()
		if err != nil {
			return nil, err
		}
		n := &ast.Assert{Test: test}
		if p.TryReadToken(",") != nil {
			if n.Msg, err = p.MustReadExpression(); err != nil {
				return nil, err
			}
		}
		return at(p, start, n), nil
	case "import":
		return p.readImport()
	case "from":
		return p.readImportFrom()
	}
	return p.readExpressionStatement()
}

func (p *Parser) readRaise() (ast.Stmt, error) {
	start := p.start()
	p.GetToken()
	n := &ast.Raise{}
	if p.atStatementEnd() {
		return at(p, start, n), nil
	}
	var err error
	if n.Exc, err = p.MustReadExpression(); err != nil {
		return nil, err
	}
	if p.TryReadToken("from") != nil {
		if n.Cause, err = p.MustReadExpression(); err != nil {
			return nil, err
		}
	}
	return at(p, start, n), nil
}

func (p *Parser) readNameList() (ast.Stmt, error) {
	start := p.start()
	keyword := p.GetToken()
	var names []ast.Identifier
	for {
		name, err := p.MustReadName()
		if err != nil {
			return nil, err
		}
		names = append(names, ast.Identifier(name.Text))
		if p.TryReadToken(",") == nil {
			break
		}
	}
	if keyword.Text == "global" {
		return at(p, start, &ast.Global{Names: names}), nil
	}
	return at(p, start, &ast.Nonlocal{Names: names}), nil
}

func (p *Parser) readDelete() (ast.Stmt, error) {
	start := p.start()
	p.GetToken()
	var targets []ast.Expr
	for {
		target, err := p.MustReadBitwiseOr()
		if err != nil {
			return nil, err
		}
		if err := p.setContext(target, ast.Del); err != nil {
			return nil, err
		}
		targets = append(targets, target)
		if p.TryReadToken(",") == nil || p.atStatementEnd() {
			break
		}
	}
	return at(p, start, &ast.Delete{Targets: targets}), nil
}

func (p *Parser) readDottedName() (string, error) {
	name, err := p.MustReadName()
	if err != nil {
		return "", err
	}
	parts := []string{name.Text}
	for p.TryReadToken(".") != nil {
		name, err := p.MustReadName()
		if err != nil {
			return "", err
		}
		parts = append(parts, name.Text)
	}
	return strings.Join(parts, "."), nil
}

// readAlias reads "name [as asname]"; dotted names are allowed for plain
// imports only.
func (p *Parser) readAlias(dotted bool) (*ast.Alias, error) {
	start := p.start()
	var name string
	if dotted {
		dottedName, err := p.readDottedName()
		if err != nil {
			return nil, err
		}
		name = dottedName
	} else {
		token, err := p.MustReadName()
		if err != nil {
			return nil, err
		}
		name = token.Text
	}
	alias := &ast.Alias{Name: ast.Identifier(name)}
	if p.TryReadToken("as") != nil {
		asname, err := p.MustReadName()
		if err != nil {
			return nil, err
		}
		id := ast.Identifier(asname.Text)
		alias.Asname = &id
	}
	return at(p, start, alias), nil
}

func (p *Parser) readImport() (ast.Stmt, error) {
	start := p.start()
	p.GetToken()
	var names []*ast.Alias
	for {
		alias, err := p.readAlias(true)
		if err != nil {
			return nil, err
		}
		names = append(names, alias)
		if p.TryReadToken(",") == nil {
			break
		}
	}
	return at(p, start, &ast.Import{Names: names}), nil
}

func (p *Parser) readImportFrom() (ast.Stmt, error) {
	start := p.start()
	p.GetToken()
	level := 0
	for {
		if p.TryReadToken(".") != nil {
			level++
		} else if p.TryReadToken("...") != nil {
			level += 3
		} else {
			break
		}
	}
	n := &ast.ImportFrom{Level: &level}
	if isName(p.PeekToken()) {
		module, err := p.readDottedName()
		if err != nil {
			return nil, err
		}
		id := ast.Identifier(module)
		n.Module = &id
	} else if level == 0 {
		return nil, p.unexpected(p.PeekToken())
	}
	if _, err := p.MustReadToken("import"); err != nil {
		return nil, err
	}
	if star := p.PeekToken(); star.Is("*") {
		starStart := p.start()
		p.GetToken()
		n.Names = []*ast.Alias{at(p, starStart, &ast.Alias{Name: "*"})}
		return at(p, start, n), nil
	}
	parenthesized := p.TryReadToken("(") != nil
	for {
		alias, err := p.readAlias(false)
		if err != nil {
			return nil, err
		}
		n.Names = append(n.Names, alias)
		comma := p.TryReadToken(",")
		if comma == nil {
			break
		}
		if parenthesized && p.PeekToken().Is(")") {
			break
		}
		if !parenthesized && p.atStatementEnd() {
			return nil, p.errorAt(comma, "trailing comma not allowed without surrounding parentheses")
		}
	}
	if parenthesized {
		if _, err := p.MustReadToken(")"); err != nil {
			return nil, err
		}
	}
	return at(p, start, n), nil
}

func (p *Parser) readStarExpressionsOrYield() (ast.Expr, error) {
	if p.PeekToken().Is("yield") {
		return p.readYield()
	}
	return p.MustReadStarExpressions()
}

// readExpressionStatement reads an expression statement or any of the
// assignment forms that begin with an expression.
func (p *Parser) readExpressionStatement() (ast.Stmt, error) {
	start := p.start()
	first, err := p.readStarExpressionsOrYield()
	if err != nil {
		return nil, err
	}
	token := p.PeekToken()
	if token.Is(":") {
		return p.readAnnAssign(start, first)
	}
	if op, ok := augmentedOperators[token.Text]; ok && token.Type == OperatorTokenType {
		return p.readAugAssign(start, first, op)
	}
	if !token.Is("=") {
		return at(p, start, &ast.ExprStmt{Value: first}), nil
	}
	exprs := []ast.Expr{first}
	for p.TryReadToken("=") != nil {
		next, err := p.readStarExpressionsOrYield()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, next)
	}
	targets, value := exprs[:len(exprs)-1], exprs[len(exprs)-1]
	for _, target := range targets {
		if err := p.setContext(target, ast.Store); err != nil {
			return nil, err
		}
	}
	n := &ast.Assign{Targets: targets, Value: value}
	n.TypeComment = p.TryReadTypeComment()
	return at(p, start, n), nil
}

func (p *Parser) readAnnAssign(start LineCol, target ast.Expr) (ast.Stmt, error) {
	simple := 0
	switch target.(type) {
	case *ast.Name:
		if !p.parenthesized[target] {
			simple = 1
		}
	case *ast.Attribute, *ast.Subscript:
	case *ast.Tuple:
		return nil, p.errorAtPos(startOf(target), "only single target (not tuple) can be annotated")
	case *ast.List:
		return nil, p.errorAtPos(startOf(target), "only single target (not list) can be annotated")
	default:
		return nil, p.errorAtPos(startOf(target), "illegal target for annotation")
	}
	if err := p.setContext(target, ast.Store); err != nil {
		return nil, err
	}
	p.GetToken()
	annotation, err := p.MustReadExpression()
	if err != nil {
		return nil, err
	}
	n := &ast.AnnAssign{Target: target, Annotation: annotation, Simple: simple}
	if p.TryReadToken("=") != nil {
		if n.Value, err = p.readStarExpressionsOrYield(); err != nil {
			return nil, err
		}
	}
	return at(p, start, n), nil
}

func (p *Parser) readAugAssign(start LineCol, target ast.Expr, op ast.Operator) (ast.Stmt, error) {
	switch target.(type) {
	case *ast.Name, *ast.Attribute, *ast.Subscript:
	default:
		return nil, p.errorAtPos(startOf(target), "'%s' is an illegal expression for augmented assignment", describe(target))
	}
	if err := p.setContext(target, ast.Store); err != nil {
		return nil, err
	}
	p.GetToken()
	value, err := p.readStarExpressionsOrYield()
	if err != nil {
		return nil, err
	}
	return at(p, start, &ast.AugAssign{Target: target, Op: op, Value: value}), nil
}

// readBlock reads ':' and the suite that follows, returning the type
// comment written after the colon, if any.
func (p *Parser) readBlock() ([]ast.Stmt, *string, error) {
	if _, err := p.MustReadToken(":"); err != nil {
		return nil, nil, err
	}
	typeComment := p.TryReadTypeComment()
	if p.PeekToken().Type != NewlineTokenType {
		stmts, err := p.readSimpleStatements()
		return stmts, typeComment, err
	}
	p.GetToken()
	if typeComment == nil {
		// A signature comment may sit on its own line above the body.
		typeComment = p.TryReadTypeComment()
	}
	if token := p.PeekToken(); token.Type != IndentTokenType {
		return nil, nil, p.errorAt(token, "expected an indented block")
	}
	p.GetToken()
	var body []ast.Stmt
	for p.PeekToken().Type != DedentTokenType {
		stmts, err := p.MustReadStatement()
		if err != nil {
			return nil, nil, err
		}
		body = append(body, stmts...)
	}
	p.GetToken()
	return body, typeComment, nil
}

func (p *Parser) readElse() ([]ast.Stmt, error) {
	if p.TryReadToken("else") == nil {
		return []ast.Stmt{}, nil
	}
	body, _, err := p.readBlock()
	return body, err
}

// readIf reads an if statement; an elif chain becomes a nested If in
// orelse, positioned at its elif keyword.
func (p *Parser) readIf() (*ast.If, error) {
	start := p.start()
	p.GetToken()
	test, err := p.MustReadNamedExpression()
	if err != nil {
		return nil, err
	}
	body, _, err := p.readBlock()
	if err != nil {
		return nil, err
	}
	n := &ast.If{Test: test, Body: body, Orelse: []ast.Stmt{}}
	if p.PeekToken().Is("elif") {
		elif, err := p.readIf()
		if err != nil {
			return nil, err
		}
		n.Orelse = []ast.Stmt{elif}
	} else if n.Orelse, err = p.readElse(); err != nil {
		return nil, err
	}
	return at(p, start, n), nil
}

func (p *Parser) readWhile() (ast.Stmt, error) {
	start := p.start()
	p.GetToken()
	test, err := p.MustReadNamedExpression()
	if err != nil {
		return nil, err
	}
	body, _, err := p.readBlock()
	if err != nil {
		return nil, err
	}
	orelse, err := p.readElse()
	if err != nil {
		return nil, err
	}
	return at(p, start, &ast.While{Test: test, Body: body, Orelse: orelse}), nil
}

func (p *Parser) readFor(start LineCol, async bool) (ast.Stmt, error) {
	if _, err := p.MustReadToken("for"); err != nil {
		return nil, err
	}
	target, err := p.readStarTargets()
	if err != nil {
		return nil, err
	}
	if _, err := p.MustReadToken("in"); err != nil {
		return nil, err
	}
	iter, err := p.MustReadStarExpressions()
	if err != nil {
		return nil, err
	}
	body, typeComment, err := p.readBlock()
	if err != nil {
		return nil, err
	}
	orelse, err := p.readElse()
	if err != nil {
		return nil, err
	}
	n := &ast.For{Async: async, Target: target, Iter: iter, Body: body, Orelse: orelse, TypeComment: typeComment}
	return at(p, start, n), nil
}

func (p *Parser) readTry() (ast.Stmt, error) {
	start := p.start()
	p.GetToken()
	body, _, err := p.readBlock()
	if err != nil {
		return nil, err
	}
	n := &ast.Try{Body: body, Handlers: []*ast.ExceptHandler{}, Orelse: []ast.Stmt{}, Finalbody: []ast.Stmt{}}
	for p.PeekToken().Is("except") {
		if len(n.Handlers) > 0 && n.Handlers[len(n.Handlers)-1].Type == nil {
			last := n.Handlers[len(n.Handlers)-1]
			return nil, p.errorAtPos(LineCol{LineNo: last.Lineno, ColNo: last.ColOffset}, "default 'except:' must be last")
		}
		handler, err := p.readExceptHandler()
		if err != nil {
			return nil, err
		}
		n.Handlers = append(n.Handlers, handler)
	}
	if len(n.Handlers) > 0 {
		if n.Orelse, err = p.readElse(); err != nil {
			return nil, err
		}
	}
	if p.TryReadToken("finally") != nil {
		if n.Finalbody, _, err = p.readBlock(); err != nil {
			return nil, err
		}
	} else if len(n.Handlers) == 0 {
		return nil, p.errorAt(p.PeekToken(), "expected 'except' or 'finally' block")
	}
	return at(p, start, n), nil
}

func (p *Parser) readExceptHandler() (*ast.ExceptHandler, error) {
	start := p.start()
	p.GetToken()
	handler := &ast.ExceptHandler{}
	if !p.PeekToken().Is(":") {
		typ, err := p.MustReadExpression()
		if err != nil {
			return nil, err
		}
		if comma := p.PeekToken(); comma.Is(",") {
			return nil, p.errorAtPos(startOf(typ), "multiple exception types must be parenthesized")
		}
		handler.Type = typ
		if p.TryReadToken("as") != nil {
			name, err := p.MustReadName()
			if err != nil {
				return nil, err
			}
			id := ast.Identifier(name.Text)
			handler.Name = &id
		}
	}
	body, _, err := p.readBlock()
	if err != nil {
		return nil, err
	}
	handler.Body = body
	return at(p, start, handler), nil
}

func (p *Parser) readWith(start LineCol, async bool) (ast.Stmt, error) {
	if _, err := p.MustReadToken("with"); err != nil {
		return nil, err
	}
	var items []*ast.WithItem
	if p.PeekToken().Is("(") {
		items = p.tryReadParenthesizedWithItems()
	}
	if items == nil {
		for {
			item, err := p.readWithItem()
			if err != nil {
				return nil, err
			}
			items = append(items, item)
			if p.TryReadToken(",") == nil {
				break
			}
		}
	}
	body, typeComment, err := p.readBlock()
	if err != nil {
		return nil, err
	}
	return at(p, start, &ast.With{Async: async, Items: items, Body: body, TypeComment: typeComment}), nil
}

// tryReadParenthesizedWithItems reads "(item, ...)" when it is directly
// followed by ':'. Otherwise it rewinds and returns nil, leaving the
// parentheses to be read as part of an expression.
func (p *Parser) tryReadParenthesizedWithItems() []*ast.WithItem {
	saved := p.mark()
	p.GetToken()
	var items []*ast.WithItem
	for {
		item, err := p.readWithItem()
		if err != nil {
			p.reset(saved)
			return nil
		}
		items = append(items, item)
		if p.TryReadToken(",") == nil || p.PeekToken().Is(")") {
			break
		}
	}
	if p.TryReadToken(")") == nil || !p.PeekToken().Is(":") {
		p.reset(saved)
		return nil
	}
	return items
}

func (p *Parser) readWithItem() (*ast.WithItem, error) {
	contextExpr, err := p.MustReadExpression()
	if err != nil {
		return nil, err
	}
	item := &ast.WithItem{ContextExpr: contextExpr}
	if p.TryReadToken("as") != nil {
		target, err := p.readStarTarget()
		if err != nil {
			return nil, err
		}
		if err := p.setContext(target, ast.Store); err != nil {
			return nil, err
		}
		item.OptionalVars = target
	}
	return item, nil
}

func (p *Parser) readDecorated() (ast.Stmt, error) {
	var decorators []ast.Expr
	for p.TryReadToken("@") != nil {
		decorator, err := p.MustReadNamedExpression()
		if err != nil {
			return nil, err
		}
		decorators = append(decorators, decorator)
		if err := p.mustReadNewline(); err != nil {
			return nil, err
		}
	}
	token := p.PeekToken()
	switch {
	case token.Is("def"):
		return p.readFunctionDef(p.start(), decorators, false)
	case token.Is("class"):
		return p.readClassDef(decorators)
	case token.Is("async"):
		return p.readAsync(decorators)
	}
	return nil, p.unexpected(token)
}

func (p *Parser) readAsync(decorators []ast.Expr) (ast.Stmt, error) {
	start := p.start()
	p.GetToken()
	token := p.PeekToken()
	switch {
	case token.Is("def"):
		return p.readFunctionDef(start, decorators, true)
	case decorators != nil:
	case token.Is("for"):
		return p.readFor(start, true)
	case token.Is("with"):
		return p.readWith(start, true)
	}
	return nil, p.unexpected(token)
}

func (p *Parser) readFunctionDef(start LineCol, decorators []ast.Expr, async bool) (ast.Stmt, error) {
	if _, err := p.MustReadToken("def"); err != nil {
		return nil, err
	}
	name, err := p.MustReadName()
	if err != nil {
		return nil, err
	}
	if _, err := p.MustReadToken("("); err != nil {
		return nil, err
	}
	args, err := p.readParameters(")", true)
	if err != nil {
		return nil, err
	}
	if _, err := p.MustReadToken(")"); err != nil {
		return nil, err
	}
	n := &ast.FunctionDef{Async: async, Name: ast.Identifier(name.Text), Args: args, DecoratorList: decorators}
	if p.TryReadToken("->") != nil {
		if n.Returns, err = p.MustReadExpression(); err != nil {
			return nil, err
		}
	}
	if n.Body, n.TypeComment, err = p.readBlock(); err != nil {
		return nil, err
	}
	return at(p, start, n), nil
}

func (p *Parser) readClassDef(decorators []ast.Expr) (ast.Stmt, error) {
	start := p.start()
	p.GetToken()
	name, err := p.MustReadName()
	if err != nil {
		return nil, err
	}
	n := &ast.ClassDef{Name: ast.Identifier(name.Text), DecoratorList: decorators}
	if p.PeekToken().Is("(") {
		if n.Bases, n.Keywords, err = p.readCallArguments(); err != nil {
			return nil, err
		}
	}
	if n.Body, _, err = p.readBlock(); err != nil {
		return nil, err
	}
	return at(p, start, n), nil
}
