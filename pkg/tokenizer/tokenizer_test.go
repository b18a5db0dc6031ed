package tokenizer

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/spicery/pyast-json/pkg/common"
)

func tokenize(t *testing.T, input string) []*common.Token {
	t.Helper()
	tokens, err := NewTokenizer(input).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	return tokens
}

// summary renders tokens as TYPE:text pairs for compact comparison.
func summary(tokens []*common.Token) []string {
	out := make([]string, len(tokens))
	for i, token := range tokens {
		out[i] = string(token.Type) + ":" + token.Text
	}
	return out
}

func TestSimpleAssignment(t *testing.T) {
	tokens := tokenize(t, "x = 1\n")
	expected := []string{"NAME:x", "OP:=", "NUMBER:1", "NEWLINE:\n", "ENDMARKER:"}
	if diff := cmp.Diff(expected, summary(tokens)); diff != "" {
		t.Errorf("Token mismatch (-want +got):\n%s", diff)
	}

	value := tokens[2]
	if value.Span != (common.Span{StartLine: 1, StartColumn: 4, EndLine: 1, EndColumn: 5}) {
		t.Errorf("Expected span 1 4 1 5, got %s", value.Span.SpanString())
	}
}

func TestMissingFinalNewline(t *testing.T) {
	tokens := tokenize(t, "pass")
	expected := []string{"NAME:pass", "NEWLINE:", "ENDMARKER:"}
	if diff := cmp.Diff(expected, summary(tokens)); diff != "" {
		t.Errorf("Token mismatch (-want +got):\n%s", diff)
	}
}

func TestIndentation(t *testing.T) {
	tokens := tokenize(t, "if x:\n    y\n\n    # comment\n    z\nw\n")
	expected := []string{
		"NAME:if", "NAME:x", "OP::", "NEWLINE:\n",
		"INDENT:    ", "NAME:y", "NEWLINE:\n",
		"NAME:z", "NEWLINE:\n",
		"DEDENT:", "NAME:w", "NEWLINE:\n",
		"ENDMARKER:",
	}
	if diff := cmp.Diff(expected, summary(tokens)); diff != "" {
		t.Errorf("Token mismatch (-want +got):\n%s", diff)
	}
}

func TestDedentAtEndOfInput(t *testing.T) {
	tokens := tokenize(t, "def f():\n    if x:\n        pass")
	got := summary(tokens)
	tail := got[len(got)-4:]
	expected := []string{"NEWLINE:", "DEDENT:", "DEDENT:", "ENDMARKER:"}
	if diff := cmp.Diff(expected, tail); diff != "" {
		t.Errorf("Token mismatch (-want +got):\n%s", diff)
	}
}

func TestBracketsJoinLines(t *testing.T) {
	tokens := tokenize(t, "f(a,\n  b)\n")
	expected := []string{"NAME:f", "OP:(", "NAME:a", "OP:,", "NAME:b", "OP:)", "NEWLINE:\n", "ENDMARKER:"}
	if diff := cmp.Diff(expected, summary(tokens)); diff != "" {
		t.Errorf("Token mismatch (-want +got):\n%s", diff)
	}
	if tokens[4].Span.StartLine != 2 || tokens[4].Span.StartColumn != 2 {
		t.Errorf("Expected b at line 2, column 2, got %s", tokens[4].Span.SpanString())
	}
}

func TestLineContinuation(t *testing.T) {
	tokens := tokenize(t, "x = 1 + \\\n    2\n")
	expected := []string{"NAME:x", "OP:=", "NUMBER:1", "OP:+", "NUMBER:2", "NEWLINE:\n", "ENDMARKER:"}
	if diff := cmp.Diff(expected, summary(tokens)); diff != "" {
		t.Errorf("Token mismatch (-want +got):\n%s", diff)
	}
}

func TestOperatorsAreLongestMatch(t *testing.T) {
	tokens := tokenize(t, "a **= b // c -> d := e ... f\n")
	var ops []string
	for _, token := range tokens {
		if token.Type == common.OperatorTokenType {
			ops = append(ops, token.Text)
		}
	}
	expected := []string{"**=", "//", "->", ":=", "..."}
	if diff := cmp.Diff(expected, ops); diff != "" {
		t.Errorf("Operator mismatch (-want +got):\n%s", diff)
	}
}

func TestNumbers(t *testing.T) {
	for _, text := range []string{"0", "1_000", "0x_FF", "0o17", "0b101", "3.14", ".5", "1.", "1e10", "1E-5", "2j", "1.5J", "1_0.0_1e+1_0"} {
		tokens := tokenize(t, text+"\n")
		if tokens[0].Type != common.NumberTokenType || tokens[0].Text != text {
			t.Errorf("Expected one NUMBER token %q, got %v", text, summary(tokens))
		}
	}
}

func TestInvalidDecimalLiteral(t *testing.T) {
	_, err := NewTokenizer("x = 1abc\n").Tokenize()
	var syntaxErr *common.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("Expected SyntaxError, got %v", err)
	}
	if syntaxErr.Msg != "invalid decimal literal" {
		t.Errorf("Expected 'invalid decimal literal', got %q", syntaxErr.Msg)
	}
}

func TestKeywordTouchingNumber(t *testing.T) {
	tokens := tokenize(t, "1if 1else 0x1for\n")
	expected := []string{"NUMBER:1", "NAME:if", "NUMBER:1", "NAME:else", "NUMBER:0x1f", "NAME:or", "NEWLINE:\n", "ENDMARKER:"}
	if diff := cmp.Diff(expected, summary(tokens)); diff != "" {
		t.Errorf("Token mismatch (-want +got):\n%s", diff)
	}

	for _, input := range []string{"1ex\n", "0x1g\n"} {
		_, err := NewTokenizer(input).Tokenize()
		var syntaxErr *common.SyntaxError
		if !errors.As(err, &syntaxErr) {
			t.Errorf("%q: expected SyntaxError, got %v", input, err)
		}
	}
}

func TestStrings(t *testing.T) {
	tokens := tokenize(t, `a = rb'\d' + F"x{y}" + '''multi
line''' + u"u"` + "\n")
	var strs []*common.Token
	for _, token := range tokens {
		if token.Type == common.StringTokenType {
			strs = append(strs, token)
		}
	}
	if len(strs) != 4 {
		t.Fatalf("Expected 4 string tokens, got %d", len(strs))
	}
	checks := []struct{ prefix, quote, body string }{
		{"rb", "'", `\d`},
		{"f", `"`, "x{y}"},
		{"", "'''", "multi\nline"},
		{"u", `"`, "u"},
	}
	for i, check := range checks {
		if strs[i].Prefix != check.prefix || strs[i].Quote != check.quote || strs[i].Body != check.body {
			t.Errorf("String %d: expected prefix %q quote %q body %q, got %q %q %q",
				i, check.prefix, check.quote, check.body, strs[i].Prefix, strs[i].Quote, strs[i].Body)
		}
	}
	if strs[2].Span.EndLine != 2 {
		t.Errorf("Expected triple-quoted string to end on line 2, got %d", strs[2].Span.EndLine)
	}
}

func TestNameFollowedByQuoteIsNotAlwaysAPrefix(t *testing.T) {
	tokens := tokenize(t, "x = abc'def'\n")
	if tokens[2].Type != common.NameTokenType || tokens[3].Type != common.StringTokenType {
		t.Errorf("Expected NAME then STRING, got %v", summary(tokens))
	}
}

func TestTypeComments(t *testing.T) {
	tz := NewTokenizer("x = []  # type: list[int]\ny = 1  # type: ignore[misc]  \nz = f(a,  # type: int\n  b)\n")
	tokens, err := tz.Tokenize()
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	var comments []string
	for _, token := range tokens {
		if token.Type == common.TypeCommentTokenType {
			comments = append(comments, token.Comment)
		}
	}
	if diff := cmp.Diff([]string{"list[int]"}, comments); diff != "" {
		t.Errorf("Type comment mismatch (-want +got):\n%s", diff)
	}
	expectedIgnores := []TypeIgnore{{Line: 2, Tag: "[misc]"}}
	if diff := cmp.Diff(expectedIgnores, tz.TypeIgnores()); diff != "" {
		t.Errorf("Type ignore mismatch (-want +got):\n%s", diff)
	}
}

func TestTypeIgnoreNeedsWordBoundary(t *testing.T) {
	tz := NewTokenizer("x = 1  # type: ignored\n")
	tokens, err := tz.Tokenize()
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if len(tz.TypeIgnores()) != 0 {
		t.Errorf("Expected no type ignores, got %v", tz.TypeIgnores())
	}
	if tokens[3].Type != common.TypeCommentTokenType || tokens[3].Comment != "ignored" {
		t.Errorf("Expected TYPE_COMMENT 'ignored', got %v", summary(tokens))
	}
}

func TestTokenizerErrors(t *testing.T) {
	tests := []struct {
		input   string
		message string
		line    int
		column  int
	}{
		{"x = (1,\n", "'(' was never closed", 1, 4},
		{"x = 1)\n", "unmatched ')'", 1, 5},
		{"x = [1)\n", "closing parenthesis ')' does not match opening parenthesis '['", 1, 6},
		{"if x:\n    y\n  z\n", "unindent does not match any outer indentation level", 3, 2},
		{"x = 'abc\n", "unterminated string literal (detected at line 1)", 1, 4},
		{"x = '''abc", "unterminated triple-quoted string literal (detected at line 1)", 1, 4},
		{"x = 1 \\ 2\n", "unexpected character after line continuation character", 1, 6},
		{"x = $\n", "invalid character '$' (U+0024)", 1, 4},
	}
	for _, test := range tests {
		_, err := NewTokenizer(test.input).WithFilename("t.py").Tokenize()
		var syntaxErr *common.SyntaxError
		if !errors.As(err, &syntaxErr) {
			t.Errorf("%q: expected SyntaxError, got %v", test.input, err)
			continue
		}
		if syntaxErr.Msg != test.message {
			t.Errorf("%q: expected message %q, got %q", test.input, test.message, syntaxErr.Msg)
		}
		if syntaxErr.Line != test.line || syntaxErr.Column != test.column {
			t.Errorf("%q: expected line %d column %d, got line %d column %d", test.input, test.line, test.column, syntaxErr.Line, syntaxErr.Column)
		}
		if syntaxErr.Filename != "t.py" {
			t.Errorf("%q: expected filename t.py, got %q", test.input, syntaxErr.Filename)
		}
	}
}

func TestInvalidUTF8(t *testing.T) {
	tests := []struct {
		input   string
		message string
		line    int
		column  int
	}{
		{"x = '\xff'\n", "'utf-8' codec can't decode byte 0xff in position 5: invalid start byte", 1, 5},
		{"a = 1\r\nb = '\xc3(\n", "'utf-8' codec can't decode byte 0xc3 in position 12: invalid continuation byte", 2, 5},
		{"c = 1\n# \xe2\x82", "'utf-8' codec can't decode bytes in position 8-9: unexpected end of data", 2, 2},
		{"\uFEFFx = '\x80'\n", "'utf-8' codec can't decode byte 0x80 in position 8: invalid start byte", 1, 5},
	}
	for _, test := range tests {
		_, err := NewTokenizer(test.input).WithFilename("t.py").Tokenize()
		var syntaxErr *common.SyntaxError
		if !errors.As(err, &syntaxErr) {
			t.Errorf("%q: expected SyntaxError, got %v", test.input, err)
			continue
		}
		if syntaxErr.Msg != test.message {
			t.Errorf("%q: expected message %q, got %q", test.input, test.message, syntaxErr.Msg)
		}
		if syntaxErr.Line != test.line || syntaxErr.Column != test.column {
			t.Errorf("%q: expected line %d column %d, got line %d column %d", test.input, test.line, test.column, syntaxErr.Line, syntaxErr.Column)
		}
	}
}

func TestByteOrderMarkIsSkipped(t *testing.T) {
	tokens := tokenize(t, "\uFEFFx\n")
	if tokens[0].Text != "x" || tokens[0].Span.StartColumn != 0 {
		t.Errorf("Expected x at column 0, got %v", summary(tokens))
	}
}

func TestSourceLine(t *testing.T) {
	input := "first\r\nsecond\rthird\nfourth"
	for line, expected := range map[int]string{1: "first", 2: "second", 3: "third", 4: "fourth", 5: ""} {
		if got := SourceLine(input, line); got != expected {
			t.Errorf("Line %d: expected %q, got %q", line, expected, got)
		}
	}
}
