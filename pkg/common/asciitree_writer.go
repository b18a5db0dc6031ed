package common

import (
	"fmt"
	"io"

	asciitree "github.com/thediveo/go-asciitree"
)

type AsciiNode struct {
	Label    string      `asciitree:"label"`
	Props    []string    `asciitree:"properties"`
	Children []AsciiNode `asciitree:"children"`
}

// convertToTree turns an object into a labelled tree node. The label is the
// discriminator, string members become properties and nested objects or
// arrays become children labelled with their slot name.
func convertToTree(label string, v Value, typeKey string, options *PrintOptions) AsciiNode {
	switch v := v.(type) {
	case *Object:
		node := AsciiNode{Label: label}
		if kind, ok := v.Get(typeKey); ok {
			if s, ok := kind.(String); ok {
				node.Label = joinLabel(label, string(s))
			}
		}
		for _, m := range v.Members {
			if m.Key == typeKey {
				continue
			}
			switch mv := m.Value.(type) {
			case String:
				node.Props = append(node.Props, fmt.Sprintf("%s: %s", m.Key, TrimValue(string(mv), options.trim())))
			default:
				node.Children = append(node.Children, convertToTree(m.Key, mv, typeKey, options))
			}
		}
		return node
	case Array:
		node := AsciiNode{Label: label + " []"}
		for i, item := range v {
			node.Children = append(node.Children, convertToTree(fmt.Sprintf("[%d]", i), item, typeKey, options))
		}
		return node
	case String:
		return AsciiNode{Label: joinLabel(label, TrimValue(string(v), options.trim()))}
	}
	return AsciiNode{Label: label}
}

func joinLabel(slot, text string) string {
	if slot == "" {
		return text
	}
	return slot + ": " + text
}

func PrintAsciiTree(root Value, indentDelta string, output io.Writer, options *PrintOptions) error {
	_, err := fmt.Fprintln(output, asciitree.RenderFancy(convertToTree("", root, options.typeKey(), options)))
	return err
}
