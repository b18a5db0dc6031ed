package common

import (
	"io"

	"gopkg.in/yaml.v3"
)

// toYAMLNode converts a document to a yaml.Node tree so that member order
// survives encoding. Every scalar is tagged !!str, which makes the encoder
// quote values such as "1" or "true" that would otherwise resolve to other
// types.
func toYAMLNode(v Value, options *PrintOptions) *yaml.Node {
	switch v := v.(type) {
	case *Object:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range v.Members {
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Key}
			node.Content = append(node.Content, key, toYAMLNode(m.Value, options))
		}
		return node
	case Array:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if len(v) == 0 {
			node.Style = yaml.FlowStyle
		}
		for _, item := range v {
			node.Content = append(node.Content, toYAMLNode(item, options))
		}
		return node
	case String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: TrimValue(string(v), options.trim())}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

func PrintYAML(root Value, indentDelta string, output io.Writer, options *PrintOptions) error {
	encoder := yaml.NewEncoder(output)
	indent := len(indentDelta)
	if options != nil && options.Indent > 0 {
		indent = options.Indent
	}
	if indent > 0 {
		encoder.SetIndent(indent)
	}
	if err := encoder.Encode(toYAMLNode(root, options)); err != nil {
		return err
	}
	return encoder.Close()
}
