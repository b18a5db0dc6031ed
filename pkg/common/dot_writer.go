package common

import (
	"fmt"
	"io"
	"strings"
)

func PrintDOT(root Value, indentDelta string, output io.Writer, options *PrintOptions) error {
	var sb strings.Builder

	// Initialize the DOT graph
	sb.WriteString("digraph G {\n")
	sb.WriteString("  bgcolor=\"transparent\";\n")
	sb.WriteString("  node [shape=\"box\", style=\"filled\", fontname=\"Ubuntu Mono\"];\n")

	// Recursively print the nodes and edges
	counter := 0
	printNodeDOT(&sb, root, "", "", &counter, options)

	// Close the graph
	sb.WriteString("}\n")
	_, err := io.WriteString(output, sb.String())
	return err
}

func printNodeDOT(sb *strings.Builder, v Value, parentID, edgeLabel string, counter *int, options *PrintOptions) {
	// Sequential identifiers keep the output stable between runs.
	nodeID := fmt.Sprintf("node_%d", *counter)
	*counter++

	typeKey := options.typeKey()
	label := ""
	kind := ""
	fillColor := "lightgray"
	var children []Member

	switch v := v.(type) {
	case *Object:
		var props []string
		for _, m := range v.Members {
			switch mv := m.Value.(type) {
			case String:
				if m.Key == typeKey {
					kind = string(mv)
					continue
				}
				props = append(props, fmt.Sprintf("%s: %s", m.Key, TrimValue(string(mv), options.trim())))
			default:
				children = append(children, m)
			}
		}
		label = kind
		if len(props) > 0 {
			label = label + "\\n" + strings.Join(props, "\\n")
		}
		if color, ok := kindColors[kind]; ok {
			fillColor = color
		} else {
			fillColor = "Honeydew"
		}
	case Array:
		label = "[]"
		fillColor = "PaleTurquoise"
		for i, item := range v {
			children = append(children, Member{Key: fmt.Sprintf("%d", i), Value: item})
		}
	case String:
		label = TrimValue(string(v), options.trim())
		fillColor = "lightgoldenrodyellow"
	}

	// Add the node definition to the DOT graph
	fmt.Fprintf(sb, "  \"%s\" [label=\"%s\", shape=\"box\", fillcolor=\"%s\"];\n", nodeID, escapeDOTValue(label), fillColor)

	// If there's a parent node, add an edge
	if parentID != "" {
		fmt.Fprintf(sb, "  \"%s\" -> \"%s\" [label=\"%s\"];\n", parentID, nodeID, escapeDOTValue(edgeLabel))
	}

	// Recurse for child nodes
	for _, child := range children {
		printNodeDOT(sb, child.Value, nodeID, child.Key, counter, options)
	}
}

func escapeDOTValue(value string) string {
	// Escape special characters for DOT format
	return strings.ReplaceAll(value, `"`, `\"`)
}

var kindColors = map[string]string{
	"Module":      "lightpink",
	"FunctionDef": "#FFD8E1",
	"ClassDef":    "#FFD8E1",
	"Call":        "lightgreen",
	"Name":        "Honeydew",
	"arguments":   "PaleTurquoise",
	"BinOp":       "#C0FFC0",
	"Constant":    "lightgoldenrodyellow",
}
