package ast

import (
	"math"
	"math/big"
	"testing"
)

func TestFloatRepr(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{-2.5, "-2.5"},
		{0.1, "0.1"},
		{1e16, "1e+16"},
		{1e15, "1000000000000000.0"},
		{1e-4, "0.0001"},
		{1e-5, "1e-05"},
		{1.5e-7, "1.5e-07"},
		{1e100, "1e+100"},
		{123456789.125, "123456789.125"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
		{math.NaN(), "nan"},
	}
	for _, test := range tests {
		if got := Float(test.value).Repr(); got != test.expected {
			t.Errorf("Float(%v): expected %s, got %s", test.value, test.expected, got)
		}
	}
}

func TestImaginaryRepr(t *testing.T) {
	tests := map[float64]string{
		0:     "0j",
		2:     "2j",
		1.5:   "1.5j",
		1e100: "1e+100j",
	}
	for value, expected := range tests {
		if got := Imaginary(value).Repr(); got != expected {
			t.Errorf("Imaginary(%v): expected %s, got %s", value, expected, got)
		}
	}
}

func TestStrRepr(t *testing.T) {
	tests := map[string]string{
		"":               "''",
		"x":              "'x'",
		"it's":           `"it's"`,
		`say "hi"`:       `'say "hi"'`,
		`both ' and "`:   `'both \' and "'`,
		"tab\there":      `'tab\there'`,
		"line\n":         `'line\n'`,
		`back\slash`:     `'back\\slash'`,
		"\x00\x7f":       `'\x00\x7f'`,
		"caf\u00e9":      "'caf\u00e9'",
		"\u00a0":         `'\xa0'`,
		"\u200b":         `'\u200b'`,
		"\U0001F600":     "'\U0001F600'",
		"\xff":           `'\xff'`,
		"\xed\xb2\x80":   `'\udc80'`,
		"a\xed\xa0\x80b": `'a\ud800b'`,
	}
	for input, expected := range tests {
		if got := Str(input).Repr(); got != expected {
			t.Errorf("Str(%q): expected %s, got %s", input, expected, got)
		}
	}
}

func TestEncodeSurrogate(t *testing.T) {
	for _, r := range []rune{0xd800, 0xdbff, 0xdc80, 0xdfff} {
		encoded := EncodeSurrogate(r)
		decoded, ok := decodeSurrogate(encoded)
		if !ok || decoded != r {
			t.Errorf("Expected %U to decode back, got %U (%v)", r, decoded, ok)
		}
	}
	if _, ok := decodeSurrogate("\xe2\x82\xac"); ok {
		t.Errorf("Expected a BMP character not to decode as a surrogate")
	}
}

func TestBytesRepr(t *testing.T) {
	tests := map[string]string{
		"":         "b''",
		"abc":      "b'abc'",
		"\x00\xff": `b'\x00\xff'`,
		"it's":     `b"it's"`,
		"\n\t":     `b'\n\t'`,
	}
	for input, expected := range tests {
		if got := Bytes(input).Repr(); got != expected {
			t.Errorf("Bytes(%q): expected %s, got %s", input, expected, got)
		}
	}
}

func TestSingletonReprs(t *testing.T) {
	huge, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	tests := []struct {
		value    Scalar
		expected string
	}{
		{Bool(true), "True"},
		{Bool(false), "False"},
		{NoneConst{}, "None"},
		{EllipsisConst{}, "Ellipsis"},
		{Int(-3), "-3"},
		{NewBigInt(42), "42"},
		{BigInt{V: huge}, "123456789012345678901234567890"},
		{BigInt{}, "0"},
		{Identifier("name"), "'name'"},
	}
	for _, test := range tests {
		if got := test.value.Repr(); got != test.expected {
			t.Errorf("%#v: expected %s, got %s", test.value, test.expected, got)
		}
	}
	if got := Absent.Repr(); got != "None" {
		t.Errorf("Absent: expected None, got %s", got)
	}
}
