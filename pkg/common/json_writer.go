package common

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf16"
)

// JSONStyle selects the separators used between items and after keys.
type JSONStyle struct {
	ItemSeparator string
	KeySeparator  string
}

var (
	// CompactStyle is the canonical single-line form.
	CompactStyle = JSONStyle{ItemSeparator: ",", KeySeparator: ":"}
	// PythonStyle matches the default separators of Python's json.dumps.
	PythonStyle = JSONStyle{ItemSeparator: ", ", KeySeparator: ": "}
)

// escapeJSONString escapes a string the way json.dumps does with
// ensure_ascii: everything outside printable ASCII becomes \uXXXX, with
// surrogate pairs above the BMP.
func escapeJSONString(sb *strings.Builder, value string) {
	for _, r := range value {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			switch {
			case r >= 0x20 && r <= 0x7E:
				sb.WriteRune(r)
			case r > 0xFFFF:
				r1, r2 := utf16.EncodeRune(r)
				fmt.Fprintf(sb, `\u%04x\u%04x`, r1, r2)
			default:
				fmt.Fprintf(sb, `\u%04x`, r)
			}
		}
	}
}

func appendQuoted(sb *strings.Builder, value string) {
	sb.WriteByte('"')
	escapeJSONString(sb, value)
	sb.WriteByte('"')
}

func appendJSON(sb *strings.Builder, v Value, style JSONStyle) {
	switch v := v.(type) {
	case *Object:
		sb.WriteByte('{')
		for i, m := range v.Members {
			if i > 0 {
				sb.WriteString(style.ItemSeparator)
			}
			appendQuoted(sb, m.Key)
			sb.WriteString(style.KeySeparator)
			appendJSON(sb, m.Value, style)
		}
		sb.WriteByte('}')
	case Array:
		sb.WriteByte('[')
		for i, item := range v {
			if i > 0 {
				sb.WriteString(style.ItemSeparator)
			}
			appendJSON(sb, item, style)
		}
		sb.WriteByte(']')
	case String:
		appendQuoted(sb, string(v))
	default:
		sb.WriteString("null")
	}
}

// appendIndentedJSON prints one member or item per line.
func appendIndentedJSON(sb *strings.Builder, v Value, currentIndent, indentDelta string) {
	nextIndent := currentIndent + indentDelta
	switch v := v.(type) {
	case *Object:
		if v.Len() == 0 {
			sb.WriteString("{}")
			return
		}
		sb.WriteString("{\n")
		for i, m := range v.Members {
			sb.WriteString(nextIndent)
			appendQuoted(sb, m.Key)
			sb.WriteString(": ")
			appendIndentedJSON(sb, m.Value, nextIndent, indentDelta)
			if i < len(v.Members)-1 {
				sb.WriteByte(',')
			}
			sb.WriteByte('\n')
		}
		sb.WriteString(currentIndent)
		sb.WriteByte('}')
	case Array:
		if len(v) == 0 {
			sb.WriteString("[]")
			return
		}
		sb.WriteString("[\n")
		for i, item := range v {
			sb.WriteString(nextIndent)
			appendIndentedJSON(sb, item, nextIndent, indentDelta)
			if i < len(v)-1 {
				sb.WriteByte(',')
			}
			sb.WriteByte('\n')
		}
		sb.WriteString(currentIndent)
		sb.WriteByte(']')
	default:
		appendJSON(sb, v, CompactStyle)
	}
}

// FormatJSON renders v on a single line.
func FormatJSON(v Value, style JSONStyle) string {
	var sb strings.Builder
	appendJSON(&sb, v, style)
	return sb.String()
}

// FormatIndentedJSON renders v with one member or item per line.
func FormatIndentedJSON(v Value, indentDelta string) string {
	var sb strings.Builder
	appendIndentedJSON(&sb, v, "", indentDelta)
	return sb.String()
}

// PrintJSON writes the document as one line, terminated by a newline.
func PrintJSON(root Value, indentDelta string, output io.Writer, options *PrintOptions) error {
	style := CompactStyle
	if options != nil && options.PythonSeparators {
		style = PythonStyle
	}
	_, err := fmt.Fprintln(output, FormatJSON(root, style))
	return err
}

// PrintIndentedJSON writes the document with one member per line.
func PrintIndentedJSON(root Value, indentDelta string, output io.Writer, options *PrintOptions) error {
	_, err := fmt.Fprintln(output, FormatIndentedJSON(root, indentDelta))
	return err
}
