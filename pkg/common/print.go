package common

import (
	"fmt"
	"io"
	"strings"
)

// PrintFunc renders a serialized document to output.
type PrintFunc func(root Value, indentDelta string, output io.Writer, options *PrintOptions) error

// TrimValue shortens a scalar for display purposes when trimming is enabled.
func TrimValue(value string, trimLength int) string {
	if trimLength > 0 && len(value) > trimLength {
		// Reserve space for Unicode ellipsis (1 character: "…")
		if trimLength >= 2 {
			return value[:trimLength-1] + "…"
		}
		// If trim length is too small for ellipsis, just truncate
		return value[:trimLength]
	}
	return value
}

func PickPrintFunc(format string) (PrintFunc, error) {
	switch strings.ToUpper(format) {
	case "", "JSON":
		return PrintJSON, nil
	case "INDENTED":
		return PrintIndentedJSON, nil
	case "YAML":
		return PrintYAML, nil
	case "ASCIITREE":
		return PrintAsciiTree, nil
	case "DOT":
		return PrintDOT, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}
