package common

import "fmt"

// SyntaxError reports malformed source text. Line is 1-based and Column is
// a 0-based byte offset into Text, the offending source line.
type SyntaxError struct {
	Msg      string
	Filename string
	Line     int
	Column   int
	Text     string
}

func (e *SyntaxError) Error() string {
	name := e.Filename
	if name == "" {
		name = "<unknown>"
	}
	return fmt.Sprintf("%s (%s, line %d, column %d)", e.Msg, name, e.Line, e.Column)
}

// NewSyntaxError builds a SyntaxError positioned at the given location.
func NewSyntaxError(at LineCol, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Msg:    fmt.Sprintf(format, args...),
		Line:   at.LineNo,
		Column: at.ColNo,
	}
}
