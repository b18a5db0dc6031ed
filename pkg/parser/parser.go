// Package parser turns Python source text into the syntax tree of package
// ast, using the positions and node shapes of CPython 3.10's ast.parse.
package parser

import (
	"fmt"
	"os"

	"github.com/spicery/pyast-json/pkg/ast"
	. "github.com/spicery/pyast-json/pkg/common"
	"github.com/spicery/pyast-json/pkg/tokenizer"
)

// Mode selects the start rule.
type Mode string

const (
	ExecMode Mode = "exec" // A module: a sequence of statements
	EvalMode Mode = "eval" // A single expression
)

// ParseMode validates a mode name; the empty string selects exec.
func ParseMode(name string) (Mode, error) {
	switch Mode(name) {
	case "", ExecMode:
		return ExecMode, nil
	case EvalMode:
		return EvalMode, nil
	}
	return "", fmt.Errorf("unknown mode: %s", name)
}

var keywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true, "assert": true,
	"async": true, "await": true, "break": true, "class": true, "continue": true,
	"def": true, "del": true, "elif": true, "else": true, "except": true,
	"finally": true, "for": true, "from": true, "global": true, "if": true,
	"import": true, "in": true, "is": true, "lambda": true, "nonlocal": true,
	"not": true, "or": true, "pass": true, "raise": true, "return": true,
	"try": true, "while": true, "with": true, "yield": true,
}

type Parser struct {
	tokens        []*Token
	pos           int
	lastEnd       LineCol // End of the last consumed token that carries text
	source        string
	filename      string
	parenthesized map[ast.Expr]bool
}

// Parse parses source in the given mode. Malformed input yields a
// *common.SyntaxError.
func Parse(source, filename string, mode Mode) (ast.Root, error) {
	tok := tokenizer.NewTokenizer(source).WithFilename(filename)
	tokens, err := tok.Tokenize()
	if err != nil {
		return nil, err
	}
	p := NewParser(tokens, source, filename)
	if mode == EvalMode {
		expression, err := p.ReadExpressionInput()
		if err != nil {
			return nil, err
		}
		return expression, nil
	}
	module, err := p.ReadFileInput()
	if err != nil {
		return nil, err
	}
	for _, ignore := range tok.TypeIgnores() {
		module.TypeIgnores = append(module.TypeIgnores, &ast.TypeIgnore{Lineno: ignore.Line, Tag: ignore.Tag})
	}
	return module, nil
}

// ParseFile reads and parses a file.
func ParseFile(filename string, mode Mode) (ast.Root, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Parse(string(data), filename, mode)
}

// NewParser creates a parser over an already tokenized source. The source
// text is only used to quote the offending line in errors.
func NewParser(tokens []*Token, source, filename string) *Parser {
	return &Parser{
		tokens:        tokens,
		source:        source,
		filename:      filename,
		parenthesized: map[ast.Expr]bool{},
	}
}

// ReadFileInput parses a whole module.
func (p *Parser) ReadFileInput() (*ast.Module, error) {
	module := &ast.Module{Body: []ast.Stmt{}, TypeIgnores: []*ast.TypeIgnore{}}
	for p.PeekToken().Type != EndMarkerTokenType {
		stmts, err := p.MustReadStatement()
		if err != nil {
			return nil, err
		}
		module.Body = append(module.Body, stmts...)
	}
	return module, nil
}

// ReadExpressionInput parses a single expression followed by the end of
// input.
func (p *Parser) ReadExpressionInput() (*ast.Expression, error) {
	if p.PeekToken().Type == IndentTokenType {
		return nil, p.errorAt(p.PeekToken(), "unexpected indent")
	}
	body, err := p.MustReadStarExpressions()
	if err != nil {
		return nil, err
	}
	for p.PeekToken().Type == NewlineTokenType {
		p.GetToken()
	}
	if token := p.PeekToken(); token.Type != EndMarkerTokenType {
		return nil, p.errorAt(token, "invalid syntax")
	}
	return &ast.Expression{Body: body}, nil
}

// PeekToken returns the next token without consuming it. Type comments are
// skipped; see TryReadTypeComment.
func (p *Parser) PeekToken() *Token {
	return p.PeekTokenAt(0)
}

// PeekTokenAt looks ahead n tokens, skipping type comments. Past the end it
// returns the ENDMARKER.
func (p *Parser) PeekTokenAt(n int) *Token {
	i := p.pos
	for {
		for i < len(p.tokens)-1 && p.tokens[i].Type == TypeCommentTokenType {
			i++
		}
		if n == 0 || i >= len(p.tokens)-1 {
			return p.tokens[i]
		}
		n--
		i++
	}
}

// GetToken consumes and returns the next token.
func (p *Parser) GetToken() *Token {
	for p.pos < len(p.tokens)-1 && p.tokens[p.pos].Type == TypeCommentTokenType {
		p.pos++
	}
	token := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	switch token.Type {
	case NewlineTokenType, IndentTokenType, DedentTokenType, EndMarkerTokenType:
	default:
		p.lastEnd = token.Span.End()
	}
	return token
}

// TryReadToken consumes the next token if it is the operator or keyword
// text.
func (p *Parser) TryReadToken(text string) *Token {
	if token := p.PeekToken(); token.Is(text) {
		return p.GetToken()
	}
	return nil
}

func (p *Parser) MustReadToken(text string) (*Token, error) {
	token := p.PeekToken()
	if !token.Is(text) {
		return nil, p.errorAt(token, "expected '%s'", text)
	}
	return p.GetToken(), nil
}

// TryReadTypeComment consumes a type comment if one comes next.
func (p *Parser) TryReadTypeComment() *string {
	if p.pos < len(p.tokens) && p.tokens[p.pos].Type == TypeCommentTokenType {
		comment := p.tokens[p.pos].Comment
		p.lastEnd = p.tokens[p.pos].Span.End()
		p.pos++
		return &comment
	}
	return nil
}

// MustReadName reads an identifier that is not a keyword.
func (p *Parser) MustReadName() (*Token, error) {
	token := p.PeekToken()
	if !isName(token) {
		return nil, p.errorAt(token, "invalid syntax")
	}
	return p.GetToken(), nil
}

func isName(token *Token) bool {
	return token.Type == NameTokenType && !keywords[token.Text]
}

func (p *Parser) start() LineCol {
	return p.PeekToken().Span.Start()
}

// at sets the span of n from start to the end of the last consumed token.
func at[T ast.Positioned](p *Parser, start LineCol, n T) T {
	n.Position().SetSpan(Span{
		StartLine:   start.LineNo,
		StartColumn: start.ColNo,
		EndLine:     p.lastEnd.LineNo,
		EndColumn:   p.lastEnd.ColNo,
	})
	return n
}

// mark saves the cursor so that a speculative parse can be undone.
type mark struct {
	pos     int
	lastEnd LineCol
}

func (p *Parser) mark() mark {
	return mark{pos: p.pos, lastEnd: p.lastEnd}
}

func (p *Parser) reset(m mark) {
	p.pos = m.pos
	p.lastEnd = m.lastEnd
}

func (p *Parser) errorAt(token *Token, format string, args ...any) error {
	return p.errorAtPos(token.Span.Start(), format, args...)
}

func (p *Parser) errorAtPos(where LineCol, format string, args ...any) error {
	err := NewSyntaxError(where, format, args...)
	err.Filename = p.filename
	err.Text = tokenizer.SourceLine(p.source, where.LineNo)
	return err
}

// unexpected reports the token the parser could not make sense of.
func (p *Parser) unexpected(token *Token) error {
	switch token.Type {
	case IndentTokenType:
		return p.errorAt(token, "unexpected indent")
	case DedentTokenType:
		return p.errorAt(token, "unindent does not match any outer indentation level")
	case EndMarkerTokenType:
		return p.errorAt(token, "unexpected EOF while parsing")
	}
	return p.errorAt(token, "invalid syntax")
}
