package common

import "fmt"

// TokenType represents the different types of tokens.
type TokenType string

const (
	NameTokenType        TokenType = "NAME"         // Identifiers and keywords
	NumberTokenType      TokenType = "NUMBER"       // Integer, float and imaginary literals
	StringTokenType      TokenType = "STRING"       // String and bytes literals, prefix included
	OperatorTokenType    TokenType = "OP"           // Operators and delimiters
	NewlineTokenType     TokenType = "NEWLINE"      // End of a logical line
	IndentTokenType      TokenType = "INDENT"       // Increase of indentation
	DedentTokenType      TokenType = "DEDENT"       // Decrease of indentation
	TypeCommentTokenType TokenType = "TYPE_COMMENT" // `# type: ...` comments
	EndMarkerTokenType   TokenType = "ENDMARKER"    // End of input
)

// Token represents a single token of Python source code.
type Token struct {
	Text string    `json:"text"`
	Span Span      `json:"span"`
	Type TokenType `json:"type"`

	// String token fields
	Prefix string `json:"prefix,omitempty"` // Lower-cased string prefix, e.g. "rb" or "f"
	Quote  string `json:"quote,omitempty"`  // One of ' " ''' """
	Body   string `json:"body,omitempty"`   // Raw text between the quotes

	// Type comment fields
	Comment string `json:"comment,omitempty"` // Text after "type:", trimmed
}

// NewToken creates a new token with the basic required fields.
func NewToken(text string, tokenType TokenType, span Span) *Token {
	return &Token{
		Text: text,
		Type: tokenType,
		Span: span,
	}
}

// NewStringToken creates a string token, keeping the pieces the parser
// needs to decode it.
func NewStringToken(text, prefix, quote, body string, span Span) *Token {
	return &Token{
		Text:   text,
		Type:   StringTokenType,
		Span:   span,
		Prefix: prefix,
		Quote:  quote,
		Body:   body,
	}
}

// NewTypeCommentToken creates a TYPE_COMMENT token from the text following
// "type:".
func NewTypeCommentToken(text, comment string, span Span) *Token {
	return &Token{
		Text:    text,
		Type:    TypeCommentTokenType,
		Span:    span,
		Comment: comment,
	}
}

// Is reports whether the token is an operator or name with the given text.
func (t *Token) Is(text string) bool {
	return t != nil && (t.Type == OperatorTokenType || t.Type == NameTokenType) && t.Text == text
}

func (t *Token) String() string {
	switch t.Type {
	case NewlineTokenType, IndentTokenType, DedentTokenType, EndMarkerTokenType:
		return string(t.Type)
	}
	return fmt.Sprintf("'%s'", t.Text)
}
