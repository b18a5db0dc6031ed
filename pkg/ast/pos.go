package ast

import "github.com/spicery/pyast-json/pkg/common"

// Pos carries the position attributes shared by statements, expressions and
// a few helper kinds. The end position is optional.
type Pos struct {
	Lineno       int
	ColOffset    int
	EndLineno    *int
	EndColOffset *int
}

// Positioned is implemented by every node that carries position attributes.
type Positioned interface {
	Node
	Position() *Pos
}

func (p *Pos) Position() *Pos { return p }

// SetSpan copies a source span into the position attributes.
func (p *Pos) SetSpan(span common.Span) {
	p.Lineno = span.StartLine
	p.ColOffset = span.StartColumn
	endLine, endCol := span.EndLine, span.EndColumn
	p.EndLineno = &endLine
	p.EndColOffset = &endCol
}

// Span returns the position as a source span; a missing end collapses onto
// the start.
func (p *Pos) Span() common.Span {
	span := common.Span{
		StartLine:   p.Lineno,
		StartColumn: p.ColOffset,
		EndLine:     p.Lineno,
		EndColumn:   p.ColOffset,
	}
	if p.EndLineno != nil {
		span.EndLine = *p.EndLineno
	}
	if p.EndColOffset != nil {
		span.EndColumn = *p.EndColOffset
	}
	return span
}

func (p *Pos) slot(name string) (Value, bool) {
	switch name {
	case "lineno":
		return Int(p.Lineno), true
	case "col_offset":
		return Int(p.ColOffset), true
	case "end_lineno":
		return optInt(p.EndLineno), true
	case "end_col_offset":
		return optInt(p.EndColOffset), true
	}
	return nil, false
}

// Root is a parse result: Module or Expression.
type Root interface {
	Node
	rootNode()
}

// Stmt is a statement node.
type Stmt interface {
	Positioned
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	Positioned
	exprNode()
}
