package common

import "fmt"

// LineCol is a position in the source. Lines are 1-based, columns are
// 0-based UTF-8 byte offsets, matching Python's lineno/col_offset.
type LineCol struct {
	LineNo int
	ColNo  int
}

// Span is the source extent of a token or node; the end column is exclusive.
type Span struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// SpanString renders the span as four space-separated numbers.
func (x *Span) SpanString() string {
	return fmt.Sprintf("%d %d %d %d", x.StartLine, x.StartColumn, x.EndLine, x.EndColumn)
}

func (x *Span) Start() LineCol {
	return LineCol{LineNo: x.StartLine, ColNo: x.StartColumn}
}

func (x *Span) End() LineCol {
	return LineCol{LineNo: x.EndLine, ColNo: x.EndColumn}
}

func (x *LineCol) Span(lineCol LineCol) Span {
	return Span{
		StartLine:   x.LineNo,
		StartColumn: x.ColNo,
		EndLine:     lineCol.LineNo,
		EndColumn:   lineCol.ColNo,
	}
}

func (x *LineCol) String() string {
	return fmt.Sprintf("line %d, column %d", x.LineNo, x.ColNo)
}
