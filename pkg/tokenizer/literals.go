package tokenizer

import (
	"strings"

	"github.com/spicery/pyast-json/pkg/common"
)

var stringPrefixes = map[string]bool{
	"r": true, "u": true, "b": true, "f": true,
	"br": true, "rb": true, "fr": true, "rf": true,
}

func isStringPrefix(word string) bool {
	return len(word) <= 2 && stringPrefixes[strings.ToLower(word)]
}

// readString scans a string literal whose prefix (possibly empty) begins at
// byte offset start; t.pos is at the opening quote.
func (t *Tokenizer) readString(start int) error {
	startPos := common.LineCol{LineNo: t.line, ColNo: start - t.lineStart}
	prefix := strings.ToLower(t.input[start:t.pos])
	q := t.input[t.pos]
	quote := string(q)
	if t.peekByte(1) == q && t.peekByte(2) == q {
		quote = strings.Repeat(quote, 3)
	}
	t.pos += len(quote)
	bodyStart := t.pos
	triple := len(quote) == 3
	for {
		if t.pos >= len(t.input) {
			if triple {
				return t.errorAt(startPos, "unterminated triple-quoted string literal (detected at line %d)", t.line)
			}
			return t.errorAt(startPos, "unterminated string literal (detected at line %d)", startPos.LineNo)
		}
		c := t.input[t.pos]
		switch {
		case c == '\\':
			t.pos++
			if t.pos < len(t.input) && isLineBreak(t.input[t.pos]) {
				t.newline()
			} else if t.pos < len(t.input) {
				t.pos++
			}
			continue
		case isLineBreak(c):
			if !triple {
				return t.errorAt(startPos, "unterminated string literal (detected at line %d)", startPos.LineNo)
			}
			t.newline()
			continue
		case strings.HasPrefix(t.input[t.pos:], quote):
			body := t.input[bodyStart:t.pos]
			t.pos += len(quote)
			t.lineHasCode = true
			t.push(common.NewStringToken(t.input[start:t.pos], prefix, quote, body, startPos.Span(t.here())))
			return nil
		}
		t.pos++
	}
}

func isHexDigit(c byte) bool {
	return isDigit(c) || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

// readDigits consumes digits accepted by valid, allowing single underscores
// between them.
func (t *Tokenizer) readDigits(valid func(byte) bool) error {
	for {
		for t.pos < len(t.input) && valid(t.input[t.pos]) {
			t.pos++
		}
		if t.peekByte(0) != '_' {
			return nil
		}
		t.pos++
		if !valid(t.peekByte(0)) {
			return t.errorAt(t.here(), "invalid decimal literal")
		}
	}
}

// readNumber scans integer, float and imaginary literals. The token text is
// kept verbatim; conversion happens in the parser.
func (t *Tokenizer) readNumber() error {
	start := t.pos
	if t.peekByte(0) == '0' {
		var valid func(byte) bool
		name := ""
		switch t.peekByte(1) {
		case 'x', 'X':
			valid, name = isHexDigit, "hexadecimal"
		case 'o', 'O':
			valid, name = func(c byte) bool { return c >= '0' && c <= '7' }, "octal"
		case 'b', 'B':
			valid, name = func(c byte) bool { return c == '0' || c == '1' }, "binary"
		}
		if valid != nil {
			t.pos += 2
			if t.peekByte(0) == '_' {
				t.pos++
			}
			if !valid(t.peekByte(0)) {
				return t.errorAt(t.here(), "invalid %s literal", name)
			}
			if err := t.readDigits(valid); err != nil {
				return err
			}
			return t.finishNumber(start, name)
		}
	}
	if err := t.readDigits(isDigit); err != nil {
		return err
	}
	if t.peekByte(0) == '.' {
		t.pos++
		if err := t.readDigits(isDigit); err != nil {
			return err
		}
	}
	if c := t.peekByte(0); c == 'e' || c == 'E' {
		save := t.pos
		t.pos++
		if s := t.peekByte(0); s == '+' || s == '-' {
			t.pos++
		}
		if isDigit(t.peekByte(0)) {
			if err := t.readDigits(isDigit); err != nil {
				return err
			}
		} else {
			t.pos = save
		}
	}
	if c := t.peekByte(0); c == 'j' || c == 'J' {
		t.pos++
	}
	return t.finishNumber(start, "decimal")
}

// numberFollowers are the keywords that may touch the end of a number, as
// in "1if x else 2".
var numberFollowers = []string{"and", "else", "for", "if", "in", "is", "not", "or"}

func (t *Tokenizer) finishNumber(start int, kind string) error {
	if t.pos < len(t.input) {
		rest := t.input[t.pos:]
		if r := rune(rest[0]); r >= 0x80 || isIdentifierContinue(r) {
			if !startsWithAny(rest, numberFollowers) {
				return t.errorAt(t.here(), "invalid %s literal", kind)
			}
		}
	}
	t.emit(t.input[start:t.pos], common.NumberTokenType, start)
	return nil
}

func startsWithAny(s string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}
