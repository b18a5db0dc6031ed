package ast

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Scalar is a leaf value with no further structure. Repr is its canonical
// textual form, the one Python's repr() would produce.
type Scalar interface {
	Value
	Repr() string
}

// Identifier is a name: a variable, attribute, argument or module name.
type Identifier string

// Str is a str constant.
type Str string

// Bytes is a bytes constant; the string holds raw bytes, not UTF-8 text.
type Bytes string

// Int is a small integer such as a line number or a flag.
type Int int

// BigInt is an integer literal of arbitrary size.
type BigInt struct {
	V *big.Int
}

// Float is a float literal.
type Float float64

// Imaginary is a complex literal with a zero real part, e.g. 2j.
type Imaginary float64

// Bool is True or False.
type Bool bool

// NoneConst is the None literal.
type NoneConst struct{}

// EllipsisConst is the ... literal.
type EllipsisConst struct{}

func (Identifier) isValue()    {}
func (Str) isValue()           {}
func (Bytes) isValue()         {}
func (Int) isValue()           {}
func (BigInt) isValue()        {}
func (Float) isValue()         {}
func (Imaginary) isValue()     {}
func (Bool) isValue()          {}
func (NoneConst) isValue()     {}
func (EllipsisConst) isValue() {}

func (s Identifier) Repr() string { return reprStr(string(s)) }
func (s Str) Repr() string        { return reprStr(string(s)) }
func (b Bytes) Repr() string      { return reprBytes(string(b)) }
func (i Int) Repr() string        { return strconv.Itoa(int(i)) }
func (f Float) Repr() string      { return reprFloat(float64(f)) }
func (NoneConst) Repr() string    { return "None" }
func (EllipsisConst) Repr() string {
	return "Ellipsis"
}

func (i BigInt) Repr() string {
	if i.V == nil {
		return "0"
	}
	return i.V.String()
}

func (b Bool) Repr() string {
	if b {
		return "True"
	}
	return "False"
}

// Repr of a pure imaginary number drops the ".0" that a float would carry.
func (c Imaginary) Repr() string {
	text := reprFloat(float64(c))
	text = strings.TrimSuffix(text, ".0")
	return text + "j"
}

// NewBigInt wraps an int64.
func NewBigInt(v int64) BigInt {
	return BigInt{V: big.NewInt(v)}
}

// reprFloat uses the shortest digits that round-trip, switching to
// exponent notation outside 1e-4 <= |f| < 1e16.
func reprFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, expText, _ := strings.Cut(sci, "e")
	exp, err := strconv.Atoi(expText)
	if err != nil {
		return sci
	}
	if f != 0 && (exp < -4 || exp >= 16) {
		sign := "+"
		if exp < 0 {
			sign = "-"
			exp = -exp
		}
		return fmt.Sprintf("%se%s%02d", mantissa, sign, exp)
	}
	text := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(text, ".") {
		text += ".0"
	}
	return text
}

// reprStr quotes with single quotes unless the text contains a single quote
// and no double quote.
func reprStr(s string) string {
	quote := byte('\'')
	if strings.IndexByte(s, '\'') >= 0 && strings.IndexByte(s, '"') < 0 {
		quote = '"'
	}
	var sb strings.Builder
	sb.WriteByte(quote)
	for i := 0; i < len(s); {
		if r, ok := decodeSurrogate(s[i:]); ok {
			fmt.Fprintf(&sb, `\u%04x`, r)
			i += 3
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			fmt.Fprintf(&sb, `\x%02x`, s[i])
			i++
			continue
		}
		i += size
		switch {
		case r == rune(quote) || r == '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case r == '\t':
			sb.WriteString(`\t`)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r < ' ' || r == 0x7f:
			fmt.Fprintf(&sb, `\x%02x`, r)
		case r < 0x7f:
			sb.WriteRune(r)
		case unicode.IsPrint(r):
			sb.WriteRune(r)
		case r <= 0xff:
			fmt.Fprintf(&sb, `\x%02x`, r)
		case r <= 0xffff:
			fmt.Fprintf(&sb, `\u%04x`, r)
		default:
			fmt.Fprintf(&sb, `\U%08x`, r)
		}
	}
	sb.WriteByte(quote)
	return sb.String()
}

// EncodeSurrogate returns the three-byte form of a lone UTF-16 surrogate.
// Go strings have no valid encoding for one, so Str holds these bytes and
// reprStr turns them back into a \u escape.
func EncodeSurrogate(r rune) string {
	return string([]byte{0xed, byte(0x80 | (r>>6)&0x3f), byte(0x80 | r&0x3f)})
}

func decodeSurrogate(s string) (rune, bool) {
	if len(s) < 3 || s[0] != 0xed || s[1] < 0xa0 || s[1] > 0xbf || s[2]&0xc0 != 0x80 {
		return 0, false
	}
	return 0xd000 | rune(s[1]&0x3f)<<6 | rune(s[2]&0x3f), true
}

func reprBytes(b string) string {
	quote := byte('\'')
	if strings.IndexByte(b, '\'') >= 0 && strings.IndexByte(b, '"') < 0 {
		quote = '"'
	}
	var sb strings.Builder
	sb.WriteString("b")
	sb.WriteByte(quote)
	for i := 0; i < len(b); i++ {
		c := b[i]
		switch {
		case c == quote || c == '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case c == '\t':
			sb.WriteString(`\t`)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c < ' ' || c >= 0x7f:
			fmt.Fprintf(&sb, `\x%02x`, c)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte(quote)
	return sb.String()
}
