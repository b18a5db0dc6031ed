package parser

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/spicery/pyast-json/pkg/ast"
	. "github.com/spicery/pyast-json/pkg/common"
	"github.com/spicery/pyast-json/pkg/tokenizer"
)

// parseNumber converts the text of a NUMBER token.
func parseNumber(text string) (ast.Scalar, error) {
	clean := strings.ReplaceAll(text, "_", "")
	lower := strings.ToLower(clean)
	switch {
	case strings.HasSuffix(lower, "j"):
		f, err := parseFloat(clean[:len(clean)-1])
		return ast.Imaginary(f), err
	case strings.HasPrefix(lower, "0x"), strings.HasPrefix(lower, "0o"), strings.HasPrefix(lower, "0b"):
		i, ok := new(big.Int).SetString(clean, 0)
		if !ok {
			return nil, fmt.Errorf("invalid literal %s", text)
		}
		return ast.BigInt{V: i}, nil
	case strings.ContainsAny(lower, ".e"):
		f, err := parseFloat(clean)
		return ast.Float(f), err
	}
	if len(clean) > 1 && clean[0] == '0' {
		if strings.Trim(clean, "0") != "" {
			return nil, errors.New("leading zeros in decimal integer literals are not permitted; use an 0o prefix for octal integers")
		}
		return ast.NewBigInt(0), nil
	}
	i, ok := new(big.Int).SetString(clean, 10)
	if !ok {
		return nil, fmt.Errorf("invalid decimal literal")
	}
	return ast.BigInt{V: i}, nil
}

// parseFloat accepts out-of-range values, which become infinity or zero.
func parseFloat(text string) (float64, error) {
	f, err := strconv.ParseFloat(text, 64)
	var numErr *strconv.NumError
	if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange {
		return f, nil
	}
	if err != nil {
		return 0, fmt.Errorf("invalid decimal literal")
	}
	return f, nil
}

// readStrings reads adjacent string literals, which concatenate into one
// constant, or into a JoinedStr when any of them is an f-string.
func (p *Parser) readStrings() (ast.Expr, error) {
	start := p.start()
	var tokens []*Token
	for p.PeekToken().Type == StringTokenType {
		tokens = append(tokens, p.GetToken())
	}
	span := Span{StartLine: start.LineNo, StartColumn: start.ColNo, EndLine: p.lastEnd.LineNo, EndColumn: p.lastEnd.ColNo}
	isBytes := strings.Contains(tokens[0].Prefix, "b")
	isFormatted := false
	for _, token := range tokens {
		if strings.Contains(token.Prefix, "b") != isBytes {
			return nil, p.errorAtPos(start, "cannot mix bytes and nonbytes literals")
		}
		if strings.Contains(token.Prefix, "f") {
			isFormatted = true
		}
	}
	if isFormatted {
		return p.readFormattedStrings(tokens, span)
	}
	var sb strings.Builder
	for _, token := range tokens {
		text, err := p.decodeToken(token, token.Body)
		if err != nil {
			return nil, err
		}
		sb.WriteString(text)
	}
	n := &ast.Constant{}
	if isBytes {
		n.Value = ast.Bytes(sb.String())
	} else {
		n.Value = ast.Str(sb.String())
		if tokens[0].Prefix == "u" {
			kind := "u"
			n.ConstKind = &kind
		}
	}
	n.SetSpan(span)
	return n, nil
}

func (p *Parser) decodeToken(token *Token, text string) (string, error) {
	isBytes := strings.Contains(token.Prefix, "b")
	if isBytes {
		for i := 0; i < len(text); i++ {
			if text[i] >= utf8.RuneSelf {
				return "", p.errorAt(token, "bytes can only contain ASCII literal characters")
			}
		}
	}
	if strings.Contains(token.Prefix, "r") {
		return text, nil
	}
	decoded, err := decodeEscapes(text, isBytes)
	if err != nil {
		return "", p.errorAt(token, "%s", err.Error())
	}
	return decoded, nil
}

func hexValue(s string) (rune, bool) {
	v, err := strconv.ParseUint(s, 16, 32)
	return rune(v), err == nil
}

// decodeEscapes interprets backslash escapes. Unrecognised escapes are kept
// verbatim, backslash included.
func decodeEscapes(s string, isBytes bool) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}
	var sb strings.Builder
	put := func(r rune) {
		switch {
		case isBytes:
			sb.WriteByte(byte(r))
		case utf16.IsSurrogate(r):
			sb.WriteString(ast.EncodeSurrogate(r))
		default:
			sb.WriteRune(r)
		}
	}
	for i := 0; i < len(s); {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			sb.WriteByte(c)
			i++
			continue
		}
		escapeStart := i
		i += 2
		switch e := s[i-1]; e {
		case '\n':
		case '\r':
			if i < len(s) && s[i] == '\n' {
				i++
			}
		case '\\', '\'', '"':
			sb.WriteByte(e)
		case 'a':
			sb.WriteByte('\a')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'v':
			sb.WriteByte('\v')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			value := rune(e - '0')
			for n := 1; n < 3 && i < len(s) && s[i] >= '0' && s[i] <= '7'; n++ {
				value = value*8 + rune(s[i]-'0')
				i++
			}
			if isBytes {
				value &= 0xff
			}
			put(value)
		case 'x':
			value, ok := rune(0), false
			if i+2 <= len(s) {
				value, ok = hexValue(s[i : i+2])
			}
			if !ok {
				if isBytes {
					return "", fmt.Errorf("(value error) invalid \\x escape at position %d", escapeStart)
				}
				return "", fmt.Errorf("(unicode error) 'unicodeescape' codec can't decode bytes in position %d-%d: truncated \\xXX escape", escapeStart, min(i+1, len(s)-1))
			}
			i += 2
			put(value)
		case 'u', 'U':
			if isBytes {
				sb.WriteByte('\\')
				sb.WriteByte(e)
				continue
			}
			width := 4
			if e == 'U' {
				width = 8
			}
			value, ok := rune(0), false
			if i+width <= len(s) {
				value, ok = hexValue(s[i : i+width])
			}
			if !ok {
				return "", fmt.Errorf("(unicode error) 'unicodeescape' codec can't decode bytes in position %d-%d: truncated \\%cXXXX escape", escapeStart, min(i+width-1, len(s)-1), e)
			}
			if value > utf8.MaxRune {
				return "", fmt.Errorf("(unicode error) 'unicodeescape' codec can't decode bytes in position %d-%d: illegal Unicode character", escapeStart, i+width-1)
			}
			i += width
			sb.WriteRune(value)
		case 'N':
			if isBytes {
				sb.WriteString(`\N`)
				continue
			}
			return "", fmt.Errorf("(unicode error) 'unicodeescape' codec can't decode bytes in position %d-%d: \\N{...} escapes are not supported", escapeStart, i-1)
		default:
			sb.WriteByte('\\')
			i--
		}
	}
	return sb.String(), nil
}

// fstringBuilder accumulates the values of a JoinedStr, merging adjacent
// literal text into a single constant.
type fstringBuilder struct {
	span    Span
	values  []ast.Expr
	literal strings.Builder
}

func (b *fstringBuilder) flush() {
	if b.literal.Len() == 0 {
		return
	}
	constant := &ast.Constant{Value: ast.Str(b.literal.String())}
	constant.SetSpan(b.span)
	b.values = append(b.values, constant)
	b.literal.Reset()
}

// joined closes the builder with the given span. A format spec takes the
// span of the string piece it was written in, and so does its trailing
// literal; earlier values keep the span of the whole concatenation.
func (b *fstringBuilder) joined(span Span) *ast.JoinedStr {
	b.span = span
	b.flush()
	n := &ast.JoinedStr{Values: b.values}
	if n.Values == nil {
		n.Values = []ast.Expr{}
	}
	n.SetSpan(span)
	return n
}

// readFormattedStrings builds the JoinedStr for a concatenation containing
// at least one f-string. Literal parts and replacement fields take the span
// of the whole concatenation; embedded expressions keep their own.
func (p *Parser) readFormattedStrings(tokens []*Token, span Span) (ast.Expr, error) {
	b := &fstringBuilder{span: span}
	for _, token := range tokens {
		if !strings.Contains(token.Prefix, "f") {
			text, err := p.decodeToken(token, token.Body)
			if err != nil {
				return nil, err
			}
			b.literal.WriteString(text)
			continue
		}
		f := &fstring{parser: p, token: token, body: token.Body, offset: len(token.Prefix) + len(token.Quote)}
		if _, err := f.readBody(0, b, 0); err != nil {
			return nil, err
		}
	}
	return b.joined(span), nil
}

// fstring scans the body of one f-string token.
type fstring struct {
	parser *Parser
	token  *Token
	body   string
	offset int // Byte offset of body within the token text
}

func (f *fstring) errorf(format string, args ...any) error {
	return f.parser.errorAt(f.token, "f-string: "+format, args...)
}

// locate maps an offset into the body to a source position.
func (f *fstring) locate(i int) LineCol {
	text := f.token.Text[:f.offset+i]
	line := f.token.Span.StartLine + strings.Count(text, "\n")
	if nl := strings.LastIndexByte(text, '\n'); nl >= 0 {
		return LineCol{LineNo: line, ColNo: len(text) - nl - 1}
	}
	return LineCol{LineNo: line, ColNo: f.token.Span.StartColumn + len(text)}
}

func (f *fstring) literal(b *fstringBuilder, text string) error {
	decoded, err := f.parser.decodeToken(f.token, text)
	if err != nil {
		return err
	}
	b.literal.WriteString(decoded)
	return nil
}

// readBody reads literal text and replacement fields from position i. At
// depth 0 it runs to the end of the body; inside a format spec it stops at
// the closing '}' and returns its position.
func (f *fstring) readBody(i int, b *fstringBuilder, depth int) (int, error) {
	body := f.body
	for i < len(body) {
		j := strings.IndexAny(body[i:], "{}")
		if j < 0 {
			return len(body), f.literal(b, body[i:])
		}
		if err := f.literal(b, body[i:i+j]); err != nil {
			return 0, err
		}
		i += j
		switch {
		case depth > 0 && body[i] == '}':
			return i, nil
		case depth == 0 && i+1 < len(body) && body[i+1] == body[i]:
			b.literal.WriteByte(body[i])
			i += 2
		case body[i] == '}':
			return 0, f.errorf("single '}' is not allowed")
		default:
			next, err := f.readReplacement(i+1, b, depth)
			if err != nil {
				return 0, err
			}
			i = next
		}
	}
	if depth > 0 {
		return 0, f.errorf("expecting '}'")
	}
	return i, nil
}

// scanExpression finds the end of the expression of a replacement field
// starting at i.
func (f *fstring) scanExpression(i int) (int, error) {
	body := f.body
	nesting := 0
	for i < len(body) {
		c := body[i]
		var next byte
		if i+1 < len(body) {
			next = body[i+1]
		}
		switch {
		case c == '\\':
			return 0, f.errorf("expression part cannot include a backslash")
		case c == '#':
			return 0, f.errorf("expression part cannot include '#'")
		case c == '\'' || c == '"':
			quote := body[i : i+1]
			if strings.HasPrefix(body[i:], strings.Repeat(quote, 3)) {
				quote = strings.Repeat(quote, 3)
			}
			end := strings.Index(body[i+len(quote):], quote)
			if end < 0 {
				return 0, f.errorf("unterminated string")
			}
			i += len(quote) + end + len(quote)
			continue
		case c == '(' || c == '[' || c == '{':
			nesting++
		case c == ')' || c == ']' || c == '}':
			if nesting == 0 {
				if c == '}' {
					return i, nil
				}
				return 0, f.errorf("unmatched '%c'", c)
			}
			nesting--
		case nesting > 0:
		case (c == '=' || c == '!' || c == '<' || c == '>') && next == '=':
			i += 2
			continue
		case c == '!' || c == ':' || c == '=':
			return i, nil
		}
		i++
	}
	return 0, f.errorf("expecting '}'")
}

// readReplacement reads a replacement field whose expression starts at i,
// just after '{', and returns the position after its closing '}'.
func (f *fstring) readReplacement(i int, b *fstringBuilder, depth int) (int, error) {
	if depth >= 2 {
		return 0, f.errorf("expressions nested too deeply")
	}
	body := f.body
	end, err := f.scanExpression(i)
	if err != nil {
		return 0, err
	}
	text := body[i:end]
	if strings.TrimSpace(text) == "" {
		return 0, f.errorf("empty expression not allowed")
	}
	value, err := f.parser.parseEmbedded(text, f.locate(i))
	if err != nil {
		return 0, err
	}
	field := &ast.FormattedValue{Value: value, Conversion: ast.ConversionNone}
	debug := ""
	if body[end] == '=' {
		end++
		for end < len(body) && strings.IndexByte(" \t\r\n\f", body[end]) >= 0 {
			end++
		}
		debug = body[i:end]
	}
	if end < len(body) && body[end] == '!' {
		if end+1 >= len(body) {
			return 0, f.errorf("expecting '}'")
		}
		switch body[end+1] {
		case 's', 'r', 'a':
			field.Conversion = int(body[end+1])
		default:
			return 0, f.errorf("invalid conversion character: expected 's', 'r', or 'a'")
		}
		end += 2
	}
	if end < len(body) && body[end] == ':' {
		spec := &fstringBuilder{span: b.span}
		if end, err = f.readBody(end+1, spec, depth+1); err != nil {
			return 0, err
		}
		field.FormatSpec = spec.joined(f.token.Span)
	}
	if end >= len(body) || body[end] != '}' {
		return 0, f.errorf("expecting '}'")
	}
	if debug != "" {
		b.literal.WriteString(debug)
		if field.Conversion == ast.ConversionNone && field.FormatSpec == nil {
			field.Conversion = ast.ConversionRepr
		}
	}
	b.flush()
	field.SetSpan(b.span)
	b.values = append(b.values, field)
	return end + 1, nil
}

// parseEmbedded parses the expression of a replacement field, which
// starts at where in the source, and moves its positions there.
func (p *Parser) parseEmbedded(text string, where LineCol) (ast.Expr, error) {
	source := "(" + text + ")"
	tokens, err := tokenizer.NewTokenizer(source).WithFilename(p.filename).Tokenize()
	if err != nil {
		return nil, p.errorAtPos(where, "f-string: %s", syntaxMessage(err))
	}
	sub := NewParser(tokens, source, p.filename)
	e, err := sub.MustReadStarExpressions()
	if err == nil && !sub.atLineEnd() {
		err = sub.unexpected(sub.PeekToken())
	}
	if err != nil {
		return nil, p.errorAtPos(where, "f-string: %s", syntaxMessage(err))
	}
	ast.Walk(e, ast.Python, func(n ast.Node) bool {
		if positioned, ok := n.(ast.Positioned); ok {
			shift(positioned.Position(), where)
		}
		return true
	})
	return e, nil
}

// shift relocates a position parsed from "(" + text + ")" to text's place
// in the enclosing source.
func shift(pos *ast.Pos, where LineCol) {
	if pos.Lineno == 1 {
		pos.ColOffset += where.ColNo - 1
	}
	pos.Lineno += where.LineNo - 1
	if pos.EndLineno != nil && pos.EndColOffset != nil {
		if *pos.EndLineno == 1 {
			*pos.EndColOffset += where.ColNo - 1
		}
		*pos.EndLineno += where.LineNo - 1
	}
}

func syntaxMessage(err error) string {
	var syntaxErr *SyntaxError
	if errors.As(err, &syntaxErr) {
		return syntaxErr.Msg
	}
	return err.Error()
}
