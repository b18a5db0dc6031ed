package ast

// Children returns the nodes held directly by n's fields, in schema order,
// flattening sequences. Attributes are not visited.
func Children(n Node, schemas SchemaSource) []Node {
	schema, ok := schemas.Schema(n.Kind())
	if !ok {
		return nil
	}
	var children []Node
	for _, slot := range schema.Fields {
		value, ok := n.Slot(slot.Name)
		if !ok {
			continue
		}
		children = appendNodes(children, value)
	}
	return children
}

func appendNodes(nodes []Node, v Value) []Node {
	switch v := v.(type) {
	case Node:
		return append(nodes, v)
	case Seq:
		for _, item := range v {
			nodes = appendNodes(nodes, item)
		}
	}
	return nodes
}

// Walk visits n and its descendants depth-first. When visit returns false
// the children of that node are skipped.
func Walk(n Node, schemas SchemaSource, visit func(Node) bool) {
	if !visit(n) {
		return
	}
	for _, child := range Children(n, schemas) {
		Walk(child, schemas, visit)
	}
}
