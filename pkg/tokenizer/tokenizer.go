package tokenizer

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spicery/pyast-json/pkg/common"
)

const tabSize = 8

// TypeIgnore is a "# type: ignore" comment. Tag is the text following
// "ignore", e.g. "[attr-defined]".
type TypeIgnore struct {
	Line int
	Tag  string
}

// Tokenizer splits Python source into tokens, synthesising NEWLINE, INDENT
// and DEDENT from the line structure.
type Tokenizer struct {
	input       string
	filename    string
	pos         int // Byte offset into input
	line        int // Current line, 1-based
	lineStart   int // Byte offset of the start of the current line
	indents     []int
	brackets    []*common.Token // Open brackets, innermost last
	atLineStart bool
	lineHasCode bool // A token other than INDENT/DEDENT was emitted on this logical line
	tokens      []*common.Token
	typeIgnores []TypeIgnore
	skipped     int // Bytes of a leading BOM dropped from input
}

func NewTokenizer(input string) *Tokenizer {
	// A leading BOM is not part of the source text.
	trimmed := strings.TrimPrefix(input, "\uFEFF")
	return &Tokenizer{
		input:       trimmed,
		skipped:     len(input) - len(trimmed),
		line:        1,
		indents:     []int{0},
		atLineStart: true,
	}
}

// WithFilename sets the name reported in syntax errors.
func (t *Tokenizer) WithFilename(filename string) *Tokenizer {
	t.filename = filename
	return t
}

// TypeIgnores returns the "# type: ignore" comments seen by Tokenize.
func (t *Tokenizer) TypeIgnores() []TypeIgnore {
	return t.typeIgnores
}

// Tokenize reads the whole input. The last token is always ENDMARKER.
func (t *Tokenizer) Tokenize() ([]*common.Token, error) {
	if err := t.checkEncoding(); err != nil {
		return nil, err
	}
	for {
		if t.atLineStart && len(t.brackets) == 0 {
			blank, err := t.readIndentation()
			if err != nil {
				return nil, err
			}
			if blank {
				continue
			}
		}
		if t.pos >= len(t.input) {
			break
		}
		if err := t.readToken(); err != nil {
			return nil, err
		}
	}
	if len(t.brackets) > 0 {
		open := t.brackets[len(t.brackets)-1]
		return nil, t.errorAt(open.Span.Start(), "'%s' was never closed", open.Text)
	}
	here := t.here()
	if t.lineHasCode {
		t.push(common.NewToken("", common.NewlineTokenType, here.Span(here)))
	}
	for len(t.indents) > 1 {
		t.indents = t.indents[:len(t.indents)-1]
		t.push(common.NewToken("", common.DedentTokenType, here.Span(here)))
	}
	t.push(common.NewToken("", common.EndMarkerTokenType, here.Span(here)))
	return t.tokens, nil
}

func (t *Tokenizer) here() common.LineCol {
	return common.LineCol{LineNo: t.line, ColNo: t.pos - t.lineStart}
}

func (t *Tokenizer) push(token *common.Token) {
	t.tokens = append(t.tokens, token)
}

func (t *Tokenizer) peekByte(offset int) byte {
	if t.pos+offset < len(t.input) {
		return t.input[t.pos+offset]
	}
	return 0
}

// newline consumes a line break of any convention at the current position.
func (t *Tokenizer) newline() {
	if t.peekByte(0) == '\r' && t.peekByte(1) == '\n' {
		t.pos += 2
	} else {
		t.pos++
	}
	t.line++
	t.lineStart = t.pos
}

func isLineBreak(c byte) bool {
	return c == '\n' || c == '\r'
}

// readIndentation measures the indentation of a new line and emits INDENT
// or DEDENT tokens. It reports true for blank and comment-only lines, which
// it consumes entirely.
func (t *Tokenizer) readIndentation() (bool, error) {
	column := 0
	for t.pos < len(t.input) {
		switch t.input[t.pos] {
		case ' ':
			column++
		case '\t':
			column = (column/tabSize + 1) * tabSize
		case '\f':
			column = 0
		default:
			goto measured
		}
		t.pos++
	}
measured:
	c := t.peekByte(0)
	if t.pos >= len(t.input) {
		return false, nil
	}
	if c == '#' || isLineBreak(c) || (c == '\\' && isLineBreak(t.peekByte(1))) {
		if c == '#' {
			t.readComment()
		}
		if t.pos < len(t.input) {
			if t.peekByte(0) == '\\' {
				t.pos++
			}
			t.newline()
		}
		return true, nil
	}
	t.atLineStart = false
	here := t.here()
	current := t.indents[len(t.indents)-1]
	switch {
	case column > current:
		t.indents = append(t.indents, column)
		t.push(common.NewToken(t.input[t.lineStart:t.pos], common.IndentTokenType, common.Span{
			StartLine: here.LineNo, StartColumn: 0, EndLine: here.LineNo, EndColumn: here.ColNo,
		}))
	case column < current:
		for column < t.indents[len(t.indents)-1] {
			t.indents = t.indents[:len(t.indents)-1]
			t.push(common.NewToken("", common.DedentTokenType, here.Span(here)))
		}
		if column != t.indents[len(t.indents)-1] {
			return false, t.errorAt(here, "unindent does not match any outer indentation level")
		}
	}
	return false, nil
}

var typeCommentPattern = regexp.MustCompile(`^#\s*type:\s*(.*?)\s*$`)
var typeIgnorePattern = regexp.MustCompile(`^ignore(?:$|[^A-Za-z0-9_])`)

// readComment consumes a comment up to the line break. Type comments
// outside brackets become TYPE_COMMENT tokens; "type: ignore" comments are
// recorded wherever they appear.
func (t *Tokenizer) readComment() {
	start := t.here()
	end := t.pos
	for end < len(t.input) && !isLineBreak(t.input[end]) {
		end++
	}
	text := t.input[t.pos:end]
	t.pos = end
	match := typeCommentPattern.FindStringSubmatch(text)
	if match == nil {
		return
	}
	comment := match[1]
	if typeIgnorePattern.MatchString(comment) {
		_, tag, _ := strings.Cut(text, "ignore")
		t.typeIgnores = append(t.typeIgnores, TypeIgnore{Line: start.LineNo, Tag: strings.TrimRight(tag, " \t")})
		return
	}
	if len(t.brackets) > 0 {
		return
	}
	t.push(common.NewTypeCommentToken(text, comment, start.Span(t.here())))
}

func (t *Tokenizer) readToken() error {
	c := t.input[t.pos]
	switch {
	case c == ' ' || c == '\t' || c == '\f':
		t.pos++
		return nil
	case c == '#':
		t.readComment()
		return nil
	case c == '\\':
		if !isLineBreak(t.peekByte(1)) {
			return t.errorAt(t.here(), "unexpected character after line continuation character")
		}
		t.pos++
		t.newline()
		if t.pos >= len(t.input) {
			return t.errorAt(t.here(), "unexpected EOF while parsing")
		}
		return nil
	case isLineBreak(c):
		start := t.here()
		t.newline()
		if len(t.brackets) == 0 {
			t.push(common.NewToken("\n", common.NewlineTokenType, common.Span{
				StartLine: start.LineNo, StartColumn: start.ColNo, EndLine: start.LineNo, EndColumn: start.ColNo + 1,
			}))
			t.atLineStart = true
			t.lineHasCode = false
		}
		return nil
	case c >= '0' && c <= '9' || c == '.' && isDigit(t.peekByte(1)):
		return t.readNumber()
	case c == '\'' || c == '"':
		return t.readString(t.pos)
	}
	r, size := utf8.DecodeRuneInString(t.input[t.pos:])
	if isIdentifierStart(r) {
		return t.readName(size)
	}
	return t.readOperator(r)
}

func (t *Tokenizer) readName(size int) error {
	start := t.pos
	t.pos += size
	for t.pos < len(t.input) {
		r, size := utf8.DecodeRuneInString(t.input[t.pos:])
		if !isIdentifierContinue(r) {
			break
		}
		t.pos += size
	}
	word := t.input[start:t.pos]
	if q := t.peekByte(0); (q == '\'' || q == '"') && isStringPrefix(word) {
		return t.readString(start)
	}
	t.emit(word, common.NameTokenType, start)
	return nil
}

// emit pushes a token running from byte offset start to the current
// position, which must be on the same line.
func (t *Tokenizer) emit(text string, tokenType common.TokenType, start int) {
	t.lineHasCode = true
	t.push(common.NewToken(text, tokenType, common.Span{
		StartLine: t.line, StartColumn: start - t.lineStart, EndLine: t.line, EndColumn: t.pos - t.lineStart,
	}))
}

var operators = []string{
	"**=", "//=", ">>=", "<<=", "...",
	"->", ":=", "**", "//", "<<", ">>", "<=", ">=", "==", "!=", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "@=",
	"+", "-", "*", "/", "%", "@", "&", "|", "^", "~", "<", ">", "(", ")", "[", "]", "{", "}", ",", ":", ".", ";", "=",
}

var closers = map[string]string{")": "(", "]": "[", "}": "{"}

func (t *Tokenizer) readOperator(r rune) error {
	rest := t.input[t.pos:]
	for _, op := range operators {
		if !strings.HasPrefix(rest, op) {
			continue
		}
		start := t.pos
		t.pos += len(op)
		t.emit(op, common.OperatorTokenType, start)
		token := t.tokens[len(t.tokens)-1]
		switch op {
		case "(", "[", "{":
			t.brackets = append(t.brackets, token)
		case ")", "]", "}":
			if len(t.brackets) == 0 {
				return t.errorAt(token.Span.Start(), "unmatched '%s'", op)
			}
			open := t.brackets[len(t.brackets)-1]
			if open.Text != closers[op] {
				return t.errorAt(token.Span.Start(), "closing parenthesis '%s' does not match opening parenthesis '%s'", op, open.Text)
			}
			t.brackets = t.brackets[:len(t.brackets)-1]
		}
		return nil
	}
	if r == '!' {
		return t.errorAt(t.here(), "invalid syntax")
	}
	return t.errorAt(t.here(), "invalid character '%c' (U+%04X)", r, r)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentifierStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.Is(unicode.Nl, r)
}

func isIdentifierContinue(r rune) bool {
	return isIdentifierStart(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) || unicode.Is(unicode.Pc, r)
}

// checkEncoding rejects input that does not decode as UTF-8. The reported
// position counts bytes from the start of the original input.
func (t *Tokenizer) checkEncoding() error {
	if utf8.ValidString(t.input) {
		return nil
	}
	i := 0
	for i < len(t.input) {
		r, size := utf8.DecodeRuneInString(t.input[i:])
		if r == utf8.RuneError && size == 1 {
			break
		}
		i += size
	}
	line, start := 1, 0
	for j := 0; j < i; j++ {
		if c := t.input[j]; c == '\n' || c == '\r' && t.input[j+1] != '\n' {
			line++
			start = j + 1
		}
	}
	at := common.LineCol{LineNo: line, ColNo: i - start}
	c := t.input[i]
	reason := "invalid start byte"
	if c >= 0xc2 && c <= 0xf4 {
		reason = "invalid continuation byte"
		need := 3
		if c < 0xe0 {
			need = 1
		} else if c < 0xf0 {
			need = 2
		}
		rest := t.input[i+1:]
		if len(rest) > 0 && len(rest) < need && allContinuationBytes(rest) {
			return t.errorAt(at, "'utf-8' codec can't decode bytes in position %d-%d: unexpected end of data", i+t.skipped, len(t.input)-1+t.skipped)
		}
		if len(rest) == 0 {
			reason = "unexpected end of data"
		}
	}
	return t.errorAt(at, "'utf-8' codec can't decode byte 0x%02x in position %d: %s", c, i+t.skipped, reason)
}

func allContinuationBytes(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i]&0xc0 != 0x80 {
			return false
		}
	}
	return true
}

// errorAt builds a SyntaxError carrying the offending source line.
func (t *Tokenizer) errorAt(at common.LineCol, format string, args ...any) error {
	err := common.NewSyntaxError(at, format, args...)
	err.Filename = t.filename
	err.Text = SourceLine(t.input, at.LineNo)
	return err
}

// SourceLine returns the 1-based line of input without its line break.
func SourceLine(input string, line int) string {
	for current := 1; current < line; current++ {
		i := strings.IndexAny(input, "\r\n")
		if i < 0 {
			return ""
		}
		if input[i] == '\r' && i+1 < len(input) && input[i+1] == '\n' {
			i++
		}
		input = input[i+1:]
	}
	if i := strings.IndexAny(input, "\r\n"); i >= 0 {
		return input[:i]
	}
	return input
}
